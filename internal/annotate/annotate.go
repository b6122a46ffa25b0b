// Package annotate is the annotation front-end for configdoc. It parses Go
// source files and surfaces every struct carrying a configdoc directive as a
// plain record: identifier, directive, and per-field name, type text,
// attributes, and doc lines. Downstream packages never touch the AST.
package annotate

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"reflect"
	"strings"
)

var (
	// ErrUnnamedField indicates a struct field without a name and without a
	// flatten attribute. Documented structs must use named fields only.
	ErrUnnamedField = errors.New("unnamed field")

	// ErrNotStruct indicates a configdoc directive on a non-struct type.
	ErrNotStruct = errors.New("directive on non-struct type")
)

// Attribute keys recognized in the `docs` struct tag.
const (
	AttrDefault     = "default"
	AttrDefaultExpr = "default_t"
	AttrFlatten     = "flatten"
	AttrRename      = "rename"
	AttrSkip        = "skip"
)

// tagKey is the struct tag key holding field attributes,
// e.g. `docs:"default=5432"`.
const tagKey = "docs"

// Field is one named struct field with its parsed attributes.
type Field struct {
	Name     string
	TypeText string            // literal rendering of the declared type
	Attrs    map[string]string // marker attributes map to ""
	DocLines []string          // doc comment lines above the field, in order
}

// HasAttr reports whether the attribute key is present, with or without a value.
func (f Field) HasAttr(key string) bool {
	_, ok := f.Attrs[key]
	return ok
}

// Struct is one annotated struct definition.
type Struct struct {
	Name      string
	Directive Directive
	Fields    []Field

	// File and Line locate the definition for diagnostics.
	File string
	Line int
}

// ParseFile parses a Go source file and returns every struct annotated with a
// configdoc directive. Files without directives return an empty slice.
func ParseFile(path string) ([]*Struct, error) {
	return parse(path, nil)
}

// ParseSource is ParseFile over in-memory source, used by tests.
func ParseSource(filename string, src []byte) ([]*Struct, error) {
	return parse(filename, src)
}

func parse(filename string, src []byte) ([]*Struct, error) {
	fset := token.NewFileSet()
	// parser.ParseFile takes src as any; a nil []byte boxed into the
	// interface is non-nil and would read as empty source, so pass a true
	// nil to make the parser read from disk.
	var source any
	if src != nil {
		source = src
	}
	file, err := parser.ParseFile(fset, filename, source, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	var structs []*Struct
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			doc := ts.Doc
			if doc == nil {
				doc = gen.Doc
			}
			directive, found, err := parseDirective(doc)
			if err != nil {
				return nil, fmt.Errorf("%s: type %s: %w", filename, ts.Name.Name, err)
			}
			if !found {
				continue
			}
			st, err := parseStruct(ts, directive, fset)
			if err != nil {
				return nil, fmt.Errorf("%s: type %s: %w", filename, ts.Name.Name, err)
			}
			structs = append(structs, st)
		}
	}
	return structs, nil
}

// parseStruct turns a directive-carrying TypeSpec into a Struct record.
func parseStruct(ts *ast.TypeSpec, directive Directive, fset *token.FileSet) (*Struct, error) {
	structType, ok := ts.Type.(*ast.StructType)
	if !ok {
		return nil, ErrNotStruct
	}

	pos := fset.Position(ts.Pos())
	st := &Struct{
		Name:      ts.Name.Name,
		Directive: directive,
		File:      pos.Filename,
		Line:      pos.Line,
	}

	for _, field := range structType.Fields.List {
		attrs := parseTag(field.Tag)
		docLines := docCommentLines(field.Doc)
		typeText := types.ExprString(field.Type)

		if len(field.Names) == 0 {
			// Embedded fields are only allowed as flatten references.
			if _, flatten := attrs[AttrFlatten]; !flatten {
				return nil, fmt.Errorf("%w: embedded field %s requires a flatten attribute", ErrUnnamedField, typeText)
			}
			st.Fields = append(st.Fields, Field{
				Name:     embeddedName(typeText),
				TypeText: typeText,
				Attrs:    attrs,
				DocLines: docLines,
			})
			continue
		}

		for _, name := range field.Names {
			st.Fields = append(st.Fields, Field{
				Name:     name.Name,
				TypeText: typeText,
				Attrs:    attrs,
				DocLines: docLines,
			})
		}
	}
	return st, nil
}

// parseTag extracts the `docs` tag as an attribute map. Entries are comma
// separated; each entry is either a bare marker (flatten, skip) or key=value.
// Values may not contain commas.
func parseTag(tag *ast.BasicLit) map[string]string {
	attrs := map[string]string{}
	if tag == nil {
		return attrs
	}
	raw := strings.Trim(tag.Value, "`")
	value, ok := reflect.StructTag(raw).Lookup(tagKey)
	if !ok {
		return attrs
	}
	for _, entry := range strings.Split(value, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if key, val, found := strings.Cut(entry, "="); found {
			attrs[key] = val
		} else {
			attrs[entry] = ""
		}
	}
	return attrs
}

// docCommentLines returns the field's doc comment as trimmed lines.
// CommentGroup.Text already strips comment markers and directive lines.
func docCommentLines(doc *ast.CommentGroup) []string {
	if doc == nil {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(strings.TrimSuffix(doc.Text(), "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// embeddedName derives a field name for an embedded type ("*pkg.Foo" -> "Foo").
func embeddedName(typeText string) string {
	name := strings.TrimPrefix(typeText, "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
