package postman

import (
	"fmt"
	"html"
	"strconv"
	"strings"
)

// RenderDescription builds the Markdown body shown for a request. Optional
// sections are omitted entirely when the descriptor has nothing for them.
func RenderDescription(d EndpointDescriptor, url string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n\n\n", d.Description)
	fmt.Fprintf(&b, "**URL**: `%s`\n\n", url)
	fmt.Fprintf(&b, "**Method**: `%s`\n\n", strings.ToUpper(d.Method))

	if len(d.Parameters) > 0 {
		b.WriteString("<br/>**Params:**\n")
		b.WriteString(renderTable(d.Parameters))
		b.WriteString("\n\n")
	}

	renderResponse(&b, d)

	return b.String()
}

func renderResponse(b *strings.Builder, d EndpointDescriptor) {
	fields, examples := d.hasFields(), d.hasExamples()
	if !fields && !examples {
		return
	}

	b.WriteString("<br/>**Response:**\n")

	if fields {
		sections := make([]string, 0, d.Success.Fields.Len())
		for pair := d.Success.Fields.Oldest(); pair != nil; pair = pair.Next() {
			sections = append(sections, fmt.Sprintf(" ***%s***\n\n%s\n\n", pair.Key, renderTable(pair.Value)))
		}
		b.WriteString(strings.Join(sections, "\n\n"))
		b.WriteString("\n\n")
	}

	// only the first example is rendered
	if examples {
		b.WriteString("<br/>**Success response example:**\n\n")
		b.WriteString("```json\n")
		b.WriteString(d.Success.Examples[0].Content)
		b.WriteString("\n```")
	}
}

type column struct {
	key     string
	value   func(Field) string
	present func(Field) bool
	raw     bool // apidoc already emits this as HTML
}

func always(Field) bool { return true }

var columns = []column{
	{key: "type", value: func(f Field) string { return f.Type }, present: always},
	{key: "optional", value: func(f Field) string { return strconv.FormatBool(f.Optional) }, present: always},
	{key: "field", value: func(f Field) string { return f.Name }, present: always},
	{key: "description", value: func(f Field) string { return f.Description }, present: always, raw: true},
	{
		key:     "defaultValue",
		value:   func(f Field) string { return f.DefaultValue },
		present: func(f Field) bool { return len(f.DefaultValue) > 0 },
	},
	{
		key:     "size",
		value:   func(f Field) string { return f.Size },
		present: func(f Field) bool { return len(f.Size) > 0 },
	},
	{
		key:     "allowedValues",
		value:   func(f Field) string { return strings.Join(f.AllowedValues, ", ") },
		present: func(f Field) bool { return len(f.AllowedValues) > 0 },
	},
}

// renderTable renders fields as an HTML table. The columns are taken from the
// first record; an empty list still yields an (empty) table.
func renderTable(fields []Field) string {
	var cols []column
	if len(fields) > 0 {
		for _, c := range columns {
			if c.present(fields[0]) {
				cols = append(cols, c)
			}
		}
	}

	var b strings.Builder
	b.WriteString("<table>\n<thead>\n<tr>")
	for _, c := range cols {
		fmt.Fprintf(&b, "<th>%s</th>", c.key)
	}
	b.WriteString("</tr>\n</thead>\n<tbody>\n")
	for _, f := range fields {
		b.WriteString("<tr>")
		for _, c := range cols {
			v := c.value(f)
			if !c.raw {
				v = html.EscapeString(v)
			}
			fmt.Fprintf(&b, "<td>%s</td>", v)
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n</table>")

	return b.String()
}
