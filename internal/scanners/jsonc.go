package scanners

import (
	"encoding/json"
	"regexp"
	"strings"
)

var trailingComma = regexp.MustCompile(`,(\s*[}\]])`)

// ParseJSONC parses JSON that may carry // line comments, /* */ block
// comments, and trailing commas, as Windows Terminal and VS Code settings
// files do.
func ParseJSONC(content string) (map[string]any, error) {
	cleaned := trailingComma.ReplaceAllString(stripComments(content), "$1")
	var out map[string]any
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// stripComments removes comments while respecting string literals, so a
// "https://" inside a value survives.
func stripComments(content string) string {
	var b strings.Builder
	b.Grow(len(content))

	inString := false
	escaped := false
	for i := 0; i < len(content); i++ {
		c := content[i]

		if inString {
			b.WriteByte(c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}

		switch {
		case c == '"':
			inString = true
			b.WriteByte(c)
		case c == '/' && i+1 < len(content) && content[i+1] == '/':
			for i < len(content) && content[i] != '\n' {
				i++
			}
			if i < len(content) {
				b.WriteByte('\n')
			}
		case c == '/' && i+1 < len(content) && content[i+1] == '*':
			i += 2
			for i+1 < len(content) && !(content[i] == '*' && content[i+1] == '/') {
				i++
			}
			i++ // skip the closing '/'
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
