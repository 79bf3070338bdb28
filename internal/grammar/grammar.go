// Package grammar implements the SIP ABNF (RFC 3261 Section 25) and the tel URI ABNF (RFC 3966)
// on top of the [abnf] operators.
//
// The parser produces a raw tree of [Node] values keyed by the ABNF rule names.
// It never interprets values, numeric fields are kept as digit strings of any width.
package grammar

//go:generate go tool errtrace -w .

import (
	"fmt"
	"strings"

	"github.com/ghettovoice/abnf"
)

type Error string

func (e Error) Error() string { return string(e) }

func (Error) Grammar() bool { return true }

const (
	ErrEmptyInput     Error = "empty input"
	ErrMalformedInput Error = "malformed input"
	ErrUnknownRule    Error = "unknown start rule"
	ErrNodeNotFound   Error = "node not found"
)

// MustGetNode returns the first node with the given key in the subtree of n.
// It panics if there is no such node, builders use it for nodes the grammar guarantees.
func MustGetNode(n *Node, k string) *Node {
	sn, ok := n.GetNode(k)
	if !ok {
		panic(fmt.Errorf("get node %q from node %q: %w", k, n.Key, ErrNodeNotFound))
	}
	return sn
}

// IsToken reports whether s matches the token rule.
func IsToken[T ~string | ~[]byte](s T) bool {
	return match(s, func(r *ruleSet) abnf.Operator { return r.token })
}

// IsHost reports whether s matches the host rule.
func IsHost[T ~string | ~[]byte](s T) bool {
	return match(s, func(r *ruleSet) abnf.Operator { return r.host })
}

// IsQuoted reports whether s is a single quoted-string.
func IsQuoted[T ~string | ~[]byte](s T) bool {
	return match(s, func(r *ruleSet) abnf.Operator { return r.qsNode })
}

// IsAbsoluteURI reports whether s matches the absoluteURI rule.
func IsAbsoluteURI[T ~string | ~[]byte](s T) bool {
	return match(s, func(r *ruleSet) abnf.Operator { return r.absoluteURI })
}

// IsUsername reports whether s contains only characters allowed unescaped or escaped in the user rule.
func IsUsername[T ~string | ~[]byte](s T) bool {
	if len(s) == 0 {
		return false
	}
	for i := range len(s) {
		if !isUserChar(s[i]) {
			return false
		}
	}
	return true
}

// IsTelNum reports whether s is a global or local tel number, RFC 3966 Section 3.
func IsTelNum[T ~string | ~[]byte](s T) bool {
	if len(s) == 0 {
		return false
	}
	if s[0] == '+' {
		return match(s, func(r *ruleSet) abnf.Operator { return r.globalNumberDigits })
	}
	return match(s, func(r *ruleSet) abnf.Operator { return r.localNumberDigits })
}

// IsGlobTelNum reports whether s is a global tel number.
func IsGlobTelNum[T ~string | ~[]byte](s T) bool {
	return IsTelNum(s) && s[0] == '+'
}

var telVisSepRpl = strings.NewReplacer(" ", "", "-", "", ".", "", "(", "", ")", "")

// CleanTelNum removes all visual separators.
func CleanTelNum[T ~string | ~[]byte](s T) T { return T(telVisSepRpl.Replace(string(s))) }

// IsTelURIParamName reports whether s matches the tel URI pname rule.
func IsTelURIParamName[T ~string | ~[]byte](s T) bool {
	return match(s, func(r *ruleSet) abnf.Operator { return r.telPname })
}

// Quote wraps s into a quoted-string.
// Only DQUOTE, backslash and control characters are escaped with a quoted-pair,
// CR and LF can not be represented and are dropped.
func Quote(s string) string {
	b := make([]byte, 0, len(s)+2)
	b = append(b, '"')
	for i := range len(s) {
		c := s[i]
		switch {
		case c == '\r' || c == '\n':
			continue
		case c == '"' || c == '\\' || (c < 0x20 && c != '\t') || c == 0x7f:
			b = append(b, '\\', c)
		default:
			b = append(b, c)
		}
	}
	return string(append(b, '"'))
}

// Unquote removes surrounding quotes and resolves quoted-pairs.
// A string that is not quoted is returned as is.
func Unquote(s string) string {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	s = s[1 : len(s)-1]
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b = append(b, s[i])
	}
	return string(b)
}

// IsCallID reports whether s matches the callid rule.
func IsCallID[T ~string | ~[]byte](s T) bool {
	return match(s, func(r *ruleSet) abnf.Operator { return r.callID })
}

// IsText reports whether s fits into a single header line, an empty s is a valid text.
func IsText[T ~string | ~[]byte](s T) bool {
	for i := range len(s) {
		if !isLineChar(s[i]) {
			return false
		}
	}
	return true
}
