package grammar

import (
	"braces.dev/errtrace"
	"github.com/ghettovoice/abnf"
)

// Rule is a name of a start rule.
type Rule string

// Start rules.
const (
	SIPMessage    Rule = "SIP_message"
	RequestLine   Rule = "Request_Line"
	StatusLine    Rule = "Status_Line"
	MessageHeader Rule = "message_header"
	RequestURI    Rule = "Request_URI"
	SIPURI        Rule = "SIP_URI"
	SIPSURI       Rule = "SIPS_URI"
	AbsoluteURI   Rule = "absoluteURI"
	TelURI        Rule = "telephone_uri"
	NameAddr      Rule = "name_addr"
	Hostport      Rule = "hostport"
	Encoding      Rule = "encoding"
	MediaRange    Rule = "media_range"
	Language      Rule = "language"
	ViaParm       Rule = "via_parm"
	ContactParam  Rule = "contact_param"
	WarningValue  Rule = "warning_value"
)

// IsValid reports whether the rule is a known start rule.
// Line rules (Request_Line, Status_Line and message_header) may be followed by a single CRLF.
func (r Rule) IsValid() bool {
	switch r {
	case SIPMessage, RequestLine, StatusLine, MessageHeader, RequestURI, SIPURI, SIPSURI, AbsoluteURI, TelURI,
		NameAddr, Hostport, Encoding, MediaRange, Language, ViaParm, ContactParam, WarningValue:
		return true
	}
	return false
}

// Parse parses the whole input with the given start rule.
// On a mismatch it returns a [*SyntaxError] pointing to the furthest position the grammar has reached.
func Parse[T ~string | ~[]byte](s T, rule Rule) (*Node, error) {
	if !rule.IsValid() {
		return nil, errtrace.Wrap(ErrUnknownRule)
	}
	src := []byte(s)
	if len(src) == 0 {
		return nil, errtrace.Wrap(newSyntaxError(src, 0, nil, ErrEmptyInput))
	}

	rs := getRuleSet()
	defer putRuleSet(rs)

	ns := abnf.NewNodes()
	defer ns.Free()

	if err := rs.start[rule](src, 0, ns); err == nil {
		n := ns.Best()
		if n.Len() == len(src) {
			return compact(n), nil
		}
		rs.tr.fail(n.Len(), "end of input")
	}

	pos := max(rs.tr.pos, 0)
	return nil, errtrace.Wrap(newSyntaxError(src, pos, rs.tr.exp, ErrMalformedInput))
}

// match reports whether the whole s matches the rule operator picked by fn.
func match[T ~string | ~[]byte](s T, fn func(r *ruleSet) abnf.Operator) bool {
	if len(s) == 0 {
		return false
	}
	rs := getRuleSet()
	defer putRuleSet(rs)

	ns := abnf.NewNodes()
	defer ns.Free()

	if err := fn(rs)([]byte(s), 0, ns); err != nil {
		return false
	}
	return ns.Best().Len() == len(s)
}

// ParseMessage parses a full SIP message.
func ParseMessage[T ~string | ~[]byte](s T) (*Node, error) { return errtrace.Wrap2(Parse(s, SIPMessage)) }

// ParseMessageHeader parses a single header line.
func ParseMessageHeader[T ~string | ~[]byte](s T) (*Node, error) {
	return errtrace.Wrap2(Parse(s, MessageHeader))
}

// ParseRequestURI parses a Request-URI.
func ParseRequestURI[T ~string | ~[]byte](s T) (*Node, error) {
	return errtrace.Wrap2(Parse(s, RequestURI))
}

// ParseTelURI parses a tel URI (RFC 3966).
func ParseTelURI[T ~string | ~[]byte](s T) (*Node, error) { return errtrace.Wrap2(Parse(s, TelURI)) }

// ParseNameAddr parses a name-addr.
func ParseNameAddr[T ~string | ~[]byte](s T) (*Node, error) { return errtrace.Wrap2(Parse(s, NameAddr)) }

// ParseHostport parses a hostport.
func ParseHostport[T ~string | ~[]byte](s T) (*Node, error) { return errtrace.Wrap2(Parse(s, Hostport)) }
