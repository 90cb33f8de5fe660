package app

// maxCallNumbers caps how many call numbers one request may resolve. The
// upstream chain is strictly sequential, so this bound is also the
// worst-case round-trip count per request.
const maxCallNumbers = 40

// SanitizeCallNumbers drops any call number containing a character outside
// [A-Za-z0-9] and truncates the rest to maxCallNumbers. Rejected entries are
// silently dropped; the response key set is the contract.
func SanitizeCallNumbers(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, cn := range raw {
		if cn == "" || !isAlphanumeric(cn) {
			continue
		}
		out = append(out, cn)
		if len(out) == maxCallNumbers {
			break
		}
	}
	return out
}

func isAlphanumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}
