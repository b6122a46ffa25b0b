// Package docgen holds the configdoc core: it turns annotated struct records
// into documentation descriptors, accumulates them in a process-wide registry,
// resolves flatten references across definitions seen in any order, renders
// markdown tables, and splices them into marker-delimited file regions.
package docgen

import (
	"errors"
	"fmt"
)

// Format selects the rendered table layout.
type Format string

const (
	// FormatFlat renders a single table with a Group column.
	FormatFlat Format = "flat"

	// FormatGrouped renders one table per definition under its own heading.
	FormatGrouped Format = "grouped"
)

// ErrUnknownFormat indicates an unrecognized format option.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat parses a format option. Empty selects FormatFlat.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "":
		return FormatFlat, nil
	case FormatFlat, FormatGrouped:
		return Format(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FieldDoc is one documented field.
//
// Required and DefaultText are mutually exclusive: a field with a declared
// default is optional and carries the default's literal text, a field without
// one is required and DefaultText is empty.
type FieldDoc struct {
	Name        string // post rename-transform
	TypeText    string // literal rendering of the declared type
	Required    bool
	DefaultText string
	Details     string // doc comment text, "" if none
	Group       string // identifier of the owning definition
}

// DefinitionDoc is one documented struct definition. Fields and FlattenRefs
// preserve declaration order so table rows render in source order.
type DefinitionDoc struct {
	Identifier  string
	Fields      []FieldDoc
	FlattenRefs []string
	RenameRule  RenameRule

	// Target and Format carry the generation request. They are only set on
	// roots, i.e. definitions built from a generate directive.
	Target string
	Format Format
}

// Section is one grouped-mode table: a definition's identifier and the fields
// it contributes.
type Section struct {
	Identifier string
	Fields     []FieldDoc
}

// Resolved is a fully expanded generation request, the renderer's sole input.
// Rows lists every field in resolution order (dependencies before the root);
// Sections carries the same fields partitioned per definition for grouped mode.
type Resolved struct {
	Root     *DefinitionDoc
	Rows     []FieldDoc
	Sections []Section
}
