package versioning

import (
	"fmt"
	"strconv"
	"strings"
)

// versionTemplate is a parsed "{major}"/"{minor}" format string. "{{" and
// "}}" render as literal braces.
type versionTemplate struct {
	format string
	parts  []templatePart
}

type templatePart struct {
	literal string
	field   string
}

func parseTemplate(format string) (*versionTemplate, error) {
	t := &versionTemplate{format: format}
	var lit strings.Builder
	hasMajor := false
	for i := 0; i < len(format); i++ {
		c := format[i]
		switch {
		case c == '{' && i+1 < len(format) && format[i+1] == '{':
			lit.WriteByte('{')
			i++
		case c == '}' && i+1 < len(format) && format[i+1] == '}':
			lit.WriteByte('}')
			i++
		case c == '{':
			end := strings.IndexByte(format[i:], '}')
			if end < 0 {
				return nil, fmt.Errorf("%w: unclosed '{' in %q", ErrInvalidTemplate, format)
			}
			field := format[i+1 : i+end]
			if field != "major" && field != "minor" {
				return nil, fmt.Errorf("%w: unknown placeholder {%s} in %q", ErrInvalidTemplate, field, format)
			}
			hasMajor = hasMajor || field == "major"
			if lit.Len() > 0 {
				t.parts = append(t.parts, templatePart{literal: lit.String()})
				lit.Reset()
			}
			t.parts = append(t.parts, templatePart{field: field})
			i += end
		case c == '}':
			return nil, fmt.Errorf("%w: single '}' in %q", ErrInvalidTemplate, format)
		default:
			lit.WriteByte(c)
		}
	}
	if lit.Len() > 0 {
		t.parts = append(t.parts, templatePart{literal: lit.String()})
	}
	if !hasMajor {
		return nil, fmt.Errorf("%w: %q has no {major} placeholder", ErrInvalidTemplate, format)
	}
	return t, nil
}

// parsePrefixTemplate additionally requires the rendered prefix to be an
// absolute path.
func parsePrefixTemplate(format string) (*versionTemplate, error) {
	t, err := parseTemplate(format)
	if err != nil {
		return nil, err
	}
	if len(t.parts) == 0 || !strings.HasPrefix(t.parts[0].literal, "/") {
		return nil, fmt.Errorf("%w: prefix %q must start with /", ErrInvalidTemplate, format)
	}
	return t, nil
}

func (t *versionTemplate) render(v APIVersion) string {
	var b strings.Builder
	for _, p := range t.parts {
		switch p.field {
		case "major":
			b.WriteString(strconv.Itoa(v.Major))
		case "minor":
			b.WriteString(strconv.Itoa(v.Minor))
		default:
			b.WriteString(p.literal)
		}
	}
	return b.String()
}
