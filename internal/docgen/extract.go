package docgen

import (
	"strings"

	"github.com/configdoc/configdoc/internal/annotate"
)

// BuildDefinition turns an annotated struct record into a DefinitionDoc.
// Flatten fields contribute their type identifier to FlattenRefs instead of a
// FieldDoc; skipped fields contribute nothing. Field and reference order
// follows declaration order.
func BuildDefinition(src *annotate.Struct) (*DefinitionDoc, error) {
	rule, err := ParseRenameRule(src.Directive.RenameAll)
	if err != nil {
		return nil, err
	}
	format, err := ParseFormat(src.Directive.Format)
	if err != nil {
		return nil, err
	}

	def := &DefinitionDoc{
		Identifier: src.Name,
		RenameRule: rule,
		Target:     src.Directive.Target,
		Format:     format,
	}

	for _, field := range src.Fields {
		if field.HasAttr(annotate.AttrSkip) {
			continue
		}
		if field.HasAttr(annotate.AttrFlatten) {
			def.FlattenRefs = append(def.FlattenRefs, refIdentifier(field.TypeText))
			continue
		}
		def.Fields = append(def.Fields, extractField(field, rule, src.Name))
	}
	return def, nil
}

// extractField builds one FieldDoc. The owning definition's rename rule is
// applied here, at extraction time; a per-field rename attribute wins over it
// and is taken verbatim.
func extractField(field annotate.Field, rule RenameRule, owner string) FieldDoc {
	name := rule.Apply(field.Name)
	if rename, ok := field.Attrs[annotate.AttrRename]; ok {
		name = rename
	}

	doc := FieldDoc{
		Name:     name,
		TypeText: field.TypeText,
		Details:  strings.TrimSpace(strings.Join(field.DocLines, " ")),
		Group:    owner,
		Required: true,
	}

	// An untyped string default wins over a default expression when both are
	// present.
	if value, ok := field.Attrs[annotate.AttrDefault]; ok {
		doc.Required = false
		doc.DefaultText = value
	} else if expr, ok := field.Attrs[annotate.AttrDefaultExpr]; ok {
		doc.Required = false
		doc.DefaultText = expr
	}
	return doc
}

// refIdentifier reduces a declared type to the identifier used as a registry
// key: pointers and package qualifiers are stripped ("*pkg.Foo" -> "Foo").
func refIdentifier(typeText string) string {
	ref := strings.TrimPrefix(typeText, "*")
	if i := strings.LastIndex(ref, "."); i >= 0 {
		ref = ref[i+1:]
	}
	return ref
}
