package postman

import "strings"

const (
	paramSigil = ':'
	hostPrefix = "http://{{host}}"
)

// Template is a URL template whose positional parameters have been rewritten
// into braced placeholders.
type Template struct {
	Path   string
	Params []string // parameter names in order of appearance, duplicates kept
}

// Raw is the full Postman url, prefixed with the {{host}} variable.
func (t Template) Raw() string {
	return hostPrefix + t.Path
}

// Segments splits the path on '/'. A leading slash yields an empty first
// segment.
func (t Template) Segments() []string {
	return strings.Split(t.Path, "/")
}

// NormalizeURL rewrites every ":name" token of the template into "{name}".
// Tokens are consumed with maximal munch in a single pass, so ":id" never
// touches ":identifier".
func NormalizeURL(template string) (Template, error) {
	out := Template{Params: []string{}}

	if strings.IndexByte(template, paramSigil) < 0 {
		out.Path = template
		return out, nil
	}

	var b strings.Builder
	b.Grow(len(template) + 8)

	for i := 0; i < len(template); {
		if template[i] != paramSigil {
			b.WriteByte(template[i])
			i++
			continue
		}

		end := i + 1
		for end < len(template) && isIdentByte(template[end]) {
			end++
		}
		if end == i+1 {
			return Template{}, &MalformedTemplateError{Template: template, Offset: i}
		}

		name := template[i+1 : end]
		out.Params = append(out.Params, name)
		b.WriteByte('{')
		b.WriteString(name)
		b.WriteByte('}')
		i = end
	}

	out.Path = b.String()
	return out, nil
}

func isIdentByte(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}
