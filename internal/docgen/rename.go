package docgen

import (
	"errors"
	"fmt"

	"github.com/iancoleman/strcase"
)

// RenameRule is a case-transformation policy applied to field names.
// The zero value leaves names unchanged.
type RenameRule string

const (
	RenameNone           RenameRule = ""
	RenameSnake          RenameRule = "snake_case"
	RenameCamel          RenameRule = "camelCase"
	RenamePascal         RenameRule = "PascalCase"
	RenameKebab          RenameRule = "kebab-case"
	RenameScreamingSnake RenameRule = "SCREAMING_SNAKE_CASE"
	RenameScreamingKebab RenameRule = "SCREAMING-KEBAB-CASE"
)

// ErrUnknownRenameRule indicates an unrecognized rename_all option.
var ErrUnknownRenameRule = errors.New("unknown rename_all rule")

// ParseRenameRule parses a rename_all option. Empty selects RenameNone.
func ParseRenameRule(s string) (RenameRule, error) {
	switch RenameRule(s) {
	case RenameNone, RenameSnake, RenameCamel, RenamePascal,
		RenameKebab, RenameScreamingSnake, RenameScreamingKebab:
		return RenameRule(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRenameRule, s)
	}
}

// Apply transforms a raw field identifier according to the rule.
func (r RenameRule) Apply(name string) string {
	switch r {
	case RenameSnake:
		return strcase.ToSnake(name)
	case RenameCamel:
		return strcase.ToLowerCamel(name)
	case RenamePascal:
		return strcase.ToCamel(name)
	case RenameKebab:
		return strcase.ToKebab(name)
	case RenameScreamingSnake:
		return strcase.ToScreamingSnake(name)
	case RenameScreamingKebab:
		return strcase.ToScreamingKebab(name)
	default:
		return name
	}
}
