package grammar

import (
	"github.com/ghettovoice/sipcodec/internal/constraints"
)

// Unescape unescapes s by converting each 3-byte encoded substring of the form "% HEXDIG HEXDIG" into the hex-decoded byte.
// Malformed escapes are kept as is.
func Unescape[T constraints.Byteseq](s T) T {
	if len(s) == 0 {
		return s
	}

	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			b = append(b, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
		} else {
			b = append(b, s[i])
		}
	}
	return T(b)
}

// Escape escapes s by replacing each char matched by shouldEscape callback to the hex form "% HEXDIG HEXDIG".
// A nil callback escapes everything except unreserved chars.
func Escape[T constraints.Byteseq](s T, shouldEscape func(c byte) bool) T {
	if len(s) == 0 {
		return s
	}

	if shouldEscape == nil {
		shouldEscape = func(c byte) bool { return !IsCharUnreserved(c) }
	}

	b := make([]byte, 0, len(s))
	for i := range len(s) {
		if c := s[i]; shouldEscape(c) {
			b = append(b, '%', upperhex[c>>4], upperhex[c&15])
		} else {
			b = append(b, c)
		}
	}
	return T(b)
}

const upperhex = "0123456789ABCDEF"

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

// IsCharUnreserved checks on unreserved rule.
func IsCharUnreserved(c byte) bool { return isUnreserved(c) }

// IsURIUserCharUnreserved checks on user-unreserved rule.
func IsURIUserCharUnreserved(c byte) bool { return c != '%' && isUserChar(c) }

// IsURIPasswdCharUnreserved checks on password chars except escaped.
func IsURIPasswdCharUnreserved(c byte) bool { return c != '%' && isPasswdChar(c) }

// IsURIParamCharUnreserved checks on paramchar except escaped.
func IsURIParamCharUnreserved(c byte) bool { return c != '%' && isParamChar(c) }

// IsURIHeaderCharUnreserved checks on hnv-unreserved rule.
func IsURIHeaderCharUnreserved(c byte) bool { return c != '%' && isHeaderChar(c) }
