package annotate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for annotate:
// - Finds structs carrying register and generate directives
// - Ignores structs without directives
// - Parses directive options (target, format, rename_all)
// - Rejects malformed directives and missing targets
// - Extracts field names, literal type text, docs tag attributes, doc lines
// - Strips the directive line from doc comments
// - Embedded fields require a flatten attribute

const sampleSource = `
package sample

// ServerConfig holds the HTTP server settings.
//
//configdoc:generate target=docs/config.md format=grouped rename_all=kebab-case
type ServerConfig struct {
	// Host name to bind.
	// Supports IPv4 and IPv6.
	ListenHost string

	// Port to bind.
	ListenPort uint16 ` + "`docs:\"default=8080\"`" + `

	// Request timeout.
	Timeout time.Duration ` + "`docs:\"default_t=30*time.Second\"`" + `

	Database DatabaseConfig ` + "`docs:\"flatten\"`" + `

	internalState string ` + "`docs:\"skip\"`" + `
}

//configdoc:register
type DatabaseConfig struct {
	DSN string
}

// Plain struct, not documented.
type Helper struct {
	Value int
}
`

func TestParseSource_Directives(t *testing.T) {
	t.Parallel()

	structs, err := ParseSource("sample.go", []byte(sampleSource))
	require.NoError(t, err)
	require.Len(t, structs, 2)

	server := structs[0]
	assert.Equal(t, "ServerConfig", server.Name)
	assert.Equal(t, KindGenerate, server.Directive.Kind)
	assert.Equal(t, "docs/config.md", server.Directive.Target)
	assert.Equal(t, "grouped", server.Directive.Format)
	assert.Equal(t, "kebab-case", server.Directive.RenameAll)

	db := structs[1]
	assert.Equal(t, "DatabaseConfig", db.Name)
	assert.Equal(t, KindRegister, db.Directive.Kind)
	assert.Empty(t, db.Directive.Target)
}

func TestParseSource_Fields(t *testing.T) {
	t.Parallel()

	structs, err := ParseSource("sample.go", []byte(sampleSource))
	require.NoError(t, err)

	fields := structs[0].Fields
	require.Len(t, fields, 5)

	host := fields[0]
	assert.Equal(t, "ListenHost", host.Name)
	assert.Equal(t, "string", host.TypeText)
	assert.Equal(t, []string{"Host name to bind.", "Supports IPv4 and IPv6."}, host.DocLines)
	assert.Empty(t, host.Attrs)

	port := fields[1]
	assert.Equal(t, "uint16", port.TypeText)
	assert.Equal(t, "8080", port.Attrs[AttrDefault])

	timeout := fields[2]
	assert.Equal(t, "time.Duration", timeout.TypeText)
	assert.Equal(t, "30*time.Second", timeout.Attrs[AttrDefaultExpr])

	flattened := fields[3]
	assert.Equal(t, "DatabaseConfig", flattened.TypeText)
	assert.True(t, flattened.HasAttr(AttrFlatten))

	skipped := fields[4]
	assert.True(t, skipped.HasAttr(AttrSkip))
}

func TestParseSource_DocCommentExcludesDirective(t *testing.T) {
	t.Parallel()

	src := `
package sample

// CacheConfig controls the cache.
//configdoc:register
type CacheConfig struct {
	// Size in entries.
	Size int
}
`
	structs, err := ParseSource("sample.go", []byte(src))
	require.NoError(t, err)
	require.Len(t, structs, 1)
	require.Len(t, structs[0].Fields, 1)
	assert.Equal(t, []string{"Size in entries."}, structs[0].Fields[0].DocLines)
}

func TestParseSource_EmbeddedFlatten(t *testing.T) {
	t.Parallel()

	src := `
package sample

//configdoc:register
type Config struct {
	DatabaseConfig ` + "`docs:\"flatten\"`" + `
}
`
	structs, err := ParseSource("sample.go", []byte(src))
	require.NoError(t, err)
	require.Len(t, structs[0].Fields, 1)
	assert.Equal(t, "DatabaseConfig", structs[0].Fields[0].Name)
	assert.True(t, structs[0].Fields[0].HasAttr(AttrFlatten))
}

func TestParseSource_EmbeddedWithoutFlattenRejected(t *testing.T) {
	t.Parallel()

	src := `
package sample

//configdoc:register
type Config struct {
	DatabaseConfig
}
`
	_, err := ParseSource("sample.go", []byte(src))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnnamedField)
}

func TestParseSource_DirectiveErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want error
	}{
		{
			name: "generate without target",
			src:  "package p\n\n//configdoc:generate format=flat\ntype A struct{}\n",
			want: ErrMissingTarget,
		},
		{
			name: "unknown verb",
			src:  "package p\n\n//configdoc:render target=x.md\ntype A struct{}\n",
			want: ErrMalformedDirective,
		},
		{
			name: "unknown option",
			src:  "package p\n\n//configdoc:generate target=x.md color=red\ntype A struct{}\n",
			want: ErrMalformedDirective,
		},
		{
			name: "register with target",
			src:  "package p\n\n//configdoc:register target=x.md\ntype A struct{}\n",
			want: ErrMalformedDirective,
		},
		{
			name: "directive on non-struct",
			src:  "package p\n\n//configdoc:register\ntype A int\n",
			want: ErrNotStruct,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseSource("sample.go", []byte(tt.src))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
