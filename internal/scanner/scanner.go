package scanner

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/configdoc/configdoc/internal/annotate"
	"github.com/configdoc/configdoc/internal/docgen"
)

// Progress receives scan lifecycle notifications.
type Progress interface {
	// OnScanStart is called once with the number of files to parse.
	OnScanStart(totalFiles int)
	// OnFileDone is called after each file has been parsed and registered.
	OnFileDone(path string)
	// OnScanComplete is called once with the number of definitions seen.
	OnScanComplete(definitions int)
}

// noopProgress silences progress reporting.
type noopProgress struct{}

func (noopProgress) OnScanStart(int)    {}
func (noopProgress) OnFileDone(string)  {}
func (noopProgress) OnScanComplete(int) {}

// Scanner runs one build pass over a source tree.
type Scanner struct {
	discovery *Discovery
	registry  *docgen.Registry
	progress  Progress
	workers   int
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithProgress attaches a progress reporter.
func WithProgress(p Progress) Option {
	return func(s *Scanner) {
		if p != nil {
			s.progress = p
		}
	}
}

// WithWorkers caps the number of files parsed concurrently.
func WithWorkers(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.workers = n
		}
	}
}

// New creates a scanner that feeds definitions from discovered files into the
// registry.
func New(discovery *Discovery, registry *docgen.Registry, opts ...Option) *Scanner {
	s := &Scanner{
		discovery: discovery,
		registry:  registry,
		progress:  noopProgress{},
		workers:   runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run discovers files and parses them concurrently. Files finish in arbitrary
// order; the registry defers each generation request until its dependencies
// arrive, so completion order never changes the output. Structural errors
// abort the pass.
func (s *Scanner) Run(ctx context.Context) error {
	files, err := s.discovery.GoFiles()
	if err != nil {
		return fmt.Errorf("file discovery failed: %w", err)
	}
	s.progress.OnScanStart(len(files))

	var definitions atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, path := range files {
		path := path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			n, err := s.scanFile(path)
			if err != nil {
				return err
			}
			definitions.Add(int64(n))
			s.progress.OnFileDone(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	s.progress.OnScanComplete(int(definitions.Load()))
	return nil
}

// scanFile parses one file and dispatches each annotated struct to the
// registry as a registration or generation-request event.
func (s *Scanner) scanFile(path string) (int, error) {
	structs, err := annotate.ParseFile(path)
	if err != nil {
		return 0, err
	}

	for _, src := range structs {
		def, err := docgen.BuildDefinition(src)
		if err != nil {
			return 0, fmt.Errorf("%s:%d: %s: %w", src.File, src.Line, src.Name, err)
		}

		switch src.Directive.Kind {
		case annotate.KindGenerate:
			err = s.registry.RequestGeneration(def)
		default:
			err = s.registry.Register(def)
		}
		if err != nil {
			return 0, fmt.Errorf("%s:%d: %s: %w", src.File, src.Line, src.Name, err)
		}
	}
	return len(structs), nil
}
