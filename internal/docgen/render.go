package docgen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Render produces the markdown for a resolved generation request. It is a
// pure function of its input; cell text is emitted exactly as extracted, with
// no escaping of markdown-significant characters.
func Render(res *Resolved, format Format) string {
	if format == FormatGrouped {
		return renderGrouped(res)
	}
	return renderFlat(res)
}

var flatHeader = []string{"Field Name", "Type", "Required", "Default", "Details", "Group"}

var groupedHeader = []string{"Field Name", "Type", "Required", "Default", "Details"}

// renderFlat renders a single table, one row per field in resolution order.
func renderFlat(res *Resolved) string {
	rows := make([][]string, 0, len(res.Rows))
	for _, f := range res.Rows {
		rows = append(rows, []string{
			f.Name, f.TypeText, requiredCell(f), defaultCell(f), f.Details, f.Group,
		})
	}
	return markdownTable(flatHeader, rows)
}

// renderGrouped renders one heading and table per section, dependencies in
// discovery order and the root last.
func renderGrouped(res *Resolved) string {
	var b strings.Builder
	for i, section := range res.Sections {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "## %s Configuration\n\n", section.Identifier)

		rows := make([][]string, 0, len(section.Fields))
		for _, f := range section.Fields {
			rows = append(rows, []string{
				f.Name, f.TypeText, requiredCell(f), defaultCell(f), f.Details,
			})
		}
		b.WriteString(markdownTable(groupedHeader, rows))
	}
	return b.String()
}

// markdownTable renders a pipe table. Borders are trimmed to top-less,
// bottom-less pipe rows, which is the markdown table shape.
func markdownTable(header []string, rows [][]string) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	table.AppendBulk(rows)
	table.Render()
	return strings.TrimRight(buf.String(), "\n")
}

func requiredCell(f FieldDoc) string {
	if f.Required {
		return "Yes"
	}
	return "No"
}

func defaultCell(f FieldDoc) string {
	if f.Required {
		return "-"
	}
	return f.DefaultText
}
