package sipcodec

import (
	"bytes"
)

var (
	crlf     = []byte("\r\n")
	crlfCRLF = []byte("\r\n\r\n")
)

// FoldLWS joins folded header lines of a message.
//
// Every run of optional whitespace, CRLF and at least one whitespace in the header part of s
// is replaced with a single SP (RFC 3261 Section 25.1).
// The header part ends at the first empty line, the empty line and everything after it are kept untouched,
// so a body with empty lines of its own (multipart) is never changed.
// Without an empty line the whole input is taken as headers.
func FoldLWS[T ~string | ~[]byte](s T) T {
	src := []byte(s)
	end := bytes.Index(src, crlfCRLF)
	if end < 0 {
		end = len(src)
	}
	if !hasFolding(src[:end]) {
		return s
	}

	out := make([]byte, 0, len(src))
	for i := 0; i < end; {
		c := src[i]
		if c != ' ' && c != '\t' && c != '\r' {
			out = append(out, c)
			i++
			continue
		}
		if j, ok := matchFolding(src[:end], i); ok {
			out = append(out, ' ')
			i = j
			continue
		}
		// no folding can start inside this whitespace run
		j := i + 1
		for j < end && isWSP(src[j]) {
			j++
		}
		out = append(out, src[i:j]...)
		i = j
	}
	out = append(out, src[end:]...)
	return T(out)
}

// hasFolding reports whether there is CRLF followed by whitespace.
func hasFolding(hdrs []byte) bool {
	for i := 0; ; {
		j := bytes.Index(hdrs[i:], crlf)
		if j < 0 {
			return false
		}
		i += j + 2
		if i < len(hdrs) && isWSP(hdrs[i]) {
			return true
		}
	}
}

// matchFolding matches *(SP / HTAB) CRLF 1*(SP / HTAB) at i and returns the position after it.
func matchFolding(hdrs []byte, i int) (int, bool) {
	for i < len(hdrs) && isWSP(hdrs[i]) {
		i++
	}
	if i+2 >= len(hdrs) || hdrs[i] != '\r' || hdrs[i+1] != '\n' || !isWSP(hdrs[i+2]) {
		return 0, false
	}
	i += 2
	for i < len(hdrs) && isWSP(hdrs[i]) {
		i++
	}
	return i, true
}

func isWSP(c byte) bool { return c == ' ' || c == '\t' }

// trimLeadingCRLF drops CRLF pairs in front of the start-line.
func trimLeadingCRLF(src []byte) []byte {
	for bytes.HasPrefix(src, crlf) {
		src = src[2:]
	}
	return src
}
