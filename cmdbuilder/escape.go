package cmdbuilder

import "strings"

// safeToken reports whether s needs no quoting: non-empty and made of bytes
// that no POSIX shell treats specially outside quotes.
func safeToken(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case strings.IndexByte("_@%+=:,./-", c) >= 0:
		default:
			return false
		}
	}
	return true
}

// Quote escapes s so that shell tokenization reproduces it as a single
// argument. Safe tokens pass through untouched; everything else is wrapped
// in single quotes, with each embedded single quote rendered as `'\''`.
func Quote(s string) string {
	if safeToken(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// JoinLine quotes every element of argv and joins them with single spaces,
// yielding a command line whose re-tokenization reproduces argv exactly.
func JoinLine(argv []string) string {
	quoted := make([]string, len(argv))
	for i, a := range argv {
		quoted[i] = Quote(a)
	}
	return strings.Join(quoted, " ")
}
