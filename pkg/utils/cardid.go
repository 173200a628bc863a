package utils

import "strings"

// NormalizeCardID converts a raw NFC card identifier to its canonical form:
// uppercase hexadecimal with all separators stripped. Every comparison, lookup
// and persistence key uses this form.
func NormalizeCardID(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(raw) {
		if (r >= '0' && r <= '9') || (r >= 'A' && r <= 'F') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCardID renders a card identifier for display: the canonical form split
// into groups of four separated by spaces. Idempotent, since normalization
// strips the spaces formatting inserts.
func FormatCardID(raw string) string {
	id := NormalizeCardID(raw)
	var groups []string
	for i := 0; i < len(id); i += 4 {
		end := i + 4
		if end > len(id) {
			end = len(id)
		}
		groups = append(groups, id[i:end])
	}
	return strings.Join(groups, " ")
}
