package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/configdoc/configdoc/internal/config"
	"github.com/configdoc/configdoc/internal/docgen"
	"github.com/configdoc/configdoc/internal/scanner"
)

var (
	quietFlag  bool
	watchFlag  bool
	dryRunFlag bool
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Scan a source tree and update configuration docs",
	Long: `Generate scans the given project directory (default ".") for annotated
config structs and patches each generation target between its marker lines:

  [//]: # (CONFIG_DOCS_START)
  [//]: # (CONFIG_DOCS_END)

Target paths in directives are resolved relative to the project directory.

Examples:
  # Update docs for the current project
  configdoc generate

  # Preview without writing files
  configdoc generate --dry-run

  # Regenerate on every source change
  configdoc generate --watch
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress output")
	generateCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch for file changes and regenerate")
	generateCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Render without writing target files")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	rootDir := "."
	if len(args) == 1 {
		rootDir = args[0]
	}
	rootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return err
	}

	cfg, err := config.Load(rootDir, cfgFile)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted.")
		cancel()
	}()

	pass := func(ctx context.Context) error {
		return runPass(ctx, rootDir, cfg)
	}

	if err := pass(ctx); err != nil {
		return err
	}

	if !watchFlag {
		return nil
	}

	w, err := scanner.NewWatcher(rootDir, pass)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	log.Printf("Watching %s for changes. Press Ctrl+C to stop.", rootDir)
	w.Start(ctx)
	defer w.Stop()

	<-ctx.Done()
	return nil
}

// runPass executes one full scan-resolve-patch pass over a fresh registry.
func runPass(ctx context.Context, rootDir string, cfg *config.Config) error {
	registry := docgen.NewRegistry(func(def *docgen.DefinitionDoc, res *docgen.Resolved) error {
		rendered := docgen.Render(res, def.Format)
		target := def.Target
		if !filepath.IsAbs(target) {
			target = filepath.Join(rootDir, target)
		}
		if dryRunFlag {
			log.Printf("Would update %s (%s, %d rows)", target, def.Format, len(res.Rows))
			return nil
		}
		if err := docgen.PatchFile(target, rendered); err != nil {
			return err
		}
		if !quietFlag {
			log.Printf("Updated %s from %s (%s)", def.Target, def.Identifier, def.Format)
		}
		return nil
	})

	disc, err := scanner.NewDiscovery(rootDir, cfg.Paths.Include, cfg.Paths.Ignore)
	if err != nil {
		return fmt.Errorf("invalid path patterns: %w", err)
	}

	sc := scanner.New(disc, registry,
		scanner.WithWorkers(cfg.Scan.Workers),
		scanner.WithProgress(NewCLIProgressReporter(quietFlag)),
	)
	if err := sc.Run(ctx); err != nil {
		return err
	}

	// Deferred roots are not an error: their dependencies may simply live
	// outside the scanned tree. Surface them only in verbose mode.
	if verbose {
		for _, identifier := range registry.Unresolved() {
			log.Printf("Skipped %s: unresolved flatten references", identifier)
		}
	}
	return nil
}
