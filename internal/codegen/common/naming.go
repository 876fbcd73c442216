// Package common holds naming helpers shared by the generator backends.
package common

import (
	"strings"
	"unicode"
)

// ToPascalCase converts identifiers like "INPUT_PROP" or "event-type" to
// "InputProp" / "EventType".
func ToPascalCase(s string) string {
	if s == "" {
		return ""
	}

	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})

	var result strings.Builder
	for _, word := range words {
		if len(word) > 0 {
			result.WriteString(strings.ToUpper(string(word[0])))
			if len(word) > 1 {
				result.WriteString(strings.ToLower(word[1:]))
			}
		}
	}

	return result.String()
}

// ToSnakeCase converts "EventType" to "event_type" and leaves all-caps runs
// intact ("INPUT_PROP" -> "input_prop", not "i_n_p_u_t_...").
func ToSnakeCase(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		isUpper := r >= 'A' && r <= 'Z'

		if i > 0 && isUpper {
			prevIsLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
			nextIsLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'

			// Underscore only at camelCase boundaries and at the end of an
			// acronym run ("XMLParser" -> "xml_parser").
			if prevIsLower || nextIsLower {
				b.WriteByte('_')
			}
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}
