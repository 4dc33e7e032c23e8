// Package str holds string manipulation helpers.
package str

import "strings"

// ToScreamingSnakeCase converts an identifier (camelCase, PascalCase,
// kebab-case or snake_case) to SCREAMING_SNAKE_CASE. Acronyms are kept
// together: "XMLHttpRequest" becomes "XML_HTTP_REQUEST".
func ToScreamingSnakeCase(in string) string {
	in = strings.TrimSpace(in)
	if in == "" {
		return in
	}

	isLower := func(b byte) bool { return 'a' <= b && b <= 'z' }
	isUpper := func(b byte) bool { return 'A' <= b && b <= 'Z' }
	isDigit := func(b byte) bool { return '0' <= b && b <= '9' }

	var sb strings.Builder
	sb.Grow(len(in) + len(in)/3)

	pendingSep := false
	for i := 0; i < len(in); i++ {
		b := in[i]

		switch {
		case b == '_' || b == '-' || b == ' ':
			pendingSep = sb.Len() > 0
			continue
		case isUpper(b):
			if i > 0 {
				prev := in[i-1]
				nextIsLower := i+1 < len(in) && isLower(in[i+1])
				// boundary before an upper when leaving a word, or when an
				// acronym ends ("XMLHttp" splits before "Http")
				if isLower(prev) || isDigit(prev) || (isUpper(prev) && nextIsLower) {
					pendingSep = true
				}
			}
		case isDigit(b):
			if i > 0 && !isDigit(in[i-1]) {
				pendingSep = true
			}
		case isLower(b):
			if i > 0 && isDigit(in[i-1]) {
				pendingSep = true
			}
			b -= 'a' - 'A'
		}

		if pendingSep && sb.Len() > 0 {
			sb.WriteByte('_')
		}
		pendingSep = false
		sb.WriteByte(b)
	}

	return sb.String()
}
