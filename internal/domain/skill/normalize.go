package skill

import "strings"

// Normalize canonicalizes free text and skill names into a matchable form:
// lowercase, every rune outside [a-z0-9 +#._-] replaced by a space, whitespace
// runs collapsed, leading/trailing space trimmed. It is applied identically to
// resume text and skill display names so matching stays symmetric.
//
// Normalize(Normalize(x)) == Normalize(x) for every input, and it never fails:
// empty input yields the empty string.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isAllowed(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

func isAllowed(r rune) bool {
	if r >= 'a' && r <= 'z' {
		return true
	}
	if r >= '0' && r <= '9' {
		return true
	}
	switch r {
	case ' ', '+', '#', '.', '_', '-':
		return true
	}
	return false
}
