package annotate

import (
	"errors"
	"fmt"
	"go/ast"
	"strings"
)

// Kind discriminates the two configdoc directives.
type Kind string

const (
	// KindRegister inserts the definition into the registry and nothing else.
	KindRegister Kind = "register"

	// KindGenerate registers the definition and requests documentation
	// generation into a target file.
	KindGenerate Kind = "generate"
)

const directivePrefix = "//configdoc:"

var (
	// ErrMalformedDirective indicates an unparseable configdoc comment.
	ErrMalformedDirective = errors.New("malformed configdoc directive")

	// ErrMissingTarget indicates a generate directive without a target path.
	ErrMissingTarget = errors.New("generate directive requires target=<path>")
)

// Directive is a parsed configdoc magic comment, e.g.
//
//	//configdoc:register
//	//configdoc:generate target=docs/config.md format=grouped rename_all=kebab-case
type Directive struct {
	Kind      Kind
	Target    string // generate only
	Format    string // generate only, "" means flat
	RenameAll string // case-transform rule for all field names, "" means none
}

// parseDirective scans a doc comment group for a configdoc directive.
// At most one directive per definition is supported; the first one wins.
func parseDirective(doc *ast.CommentGroup) (Directive, bool, error) {
	if doc == nil {
		return Directive{}, false, nil
	}
	for _, comment := range doc.List {
		text := comment.Text
		if !strings.HasPrefix(text, directivePrefix) {
			continue
		}
		d, err := parseDirectiveLine(strings.TrimPrefix(text, directivePrefix))
		if err != nil {
			return Directive{}, false, err
		}
		return d, true, nil
	}
	return Directive{}, false, nil
}

func parseDirectiveLine(rest string) (Directive, error) {
	parts := strings.Fields(rest)
	if len(parts) == 0 {
		return Directive{}, fmt.Errorf("%w: missing verb", ErrMalformedDirective)
	}

	var d Directive
	switch Kind(parts[0]) {
	case KindRegister, KindGenerate:
		d.Kind = Kind(parts[0])
	default:
		return Directive{}, fmt.Errorf("%w: unknown verb %q", ErrMalformedDirective, parts[0])
	}

	for _, opt := range parts[1:] {
		key, value, found := strings.Cut(opt, "=")
		if !found || value == "" {
			return Directive{}, fmt.Errorf("%w: option %q is not key=value", ErrMalformedDirective, opt)
		}
		switch key {
		case "target":
			d.Target = value
		case "format":
			d.Format = value
		case "rename_all":
			d.RenameAll = value
		default:
			return Directive{}, fmt.Errorf("%w: unknown option %q", ErrMalformedDirective, key)
		}
	}

	if d.Kind == KindGenerate && d.Target == "" {
		return Directive{}, ErrMissingTarget
	}
	if d.Kind == KindRegister && (d.Target != "" || d.Format != "") {
		return Directive{}, fmt.Errorf("%w: register accepts only rename_all", ErrMalformedDirective)
	}
	return d, nil
}
