package header

import (
	"fmt"
	"io"
	"math"
	"time"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipcodec/internal/grammar"
	"github.com/ghettovoice/sipcodec/internal/types"
)

// RetryAfter represents the Retry-After header field.
// The Retry-After header field indicates how long the service is expected to be unavailable.
// Comment is kept without the enclosing parentheses.
type RetryAfter struct {
	Delay   Number
	Comment string
	Params  Params
}

// CanonicName returns the canonical name of the header.
func (*RetryAfter) CanonicName() Name { return "Retry-After" }

// CompactName returns the compact name of the header.
func (*RetryAfter) CompactName() Name { return "Retry-After" }

// RenderTo writes the header to the provided writer.
func (hdr *RetryAfter) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHeaderTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr *RetryAfter) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHeader(hdr, opts)
}

func (hdr *RetryAfter) String() string { return hdr.RenderValue() }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr *RetryAfter) Format(f fmt.State, verb rune) {
	type hideMethods RetryAfter
	type RetryAfter hideMethods
	formatHeader(f, verb, hdr, (*RetryAfter)(hdr))
}

func (hdr *RetryAfter) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *RetryAfter) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[*RetryAfter](data)
	if h == nil {
		*hdr = RetryAfter{}
	} else {
		*hdr = *h
	}
	return errtrace.Wrap(err)
}

// RenderValue returns the header value without the name prefix.
func (hdr *RetryAfter) RenderValue() string {
	if hdr == nil {
		return ""
	}
	s := hdr.Delay.String()
	if hdr.Comment != "" {
		s += " (" + hdr.Comment + ")"
	}
	return s + hdr.Params.String()
}

// Duration returns the delay as [time.Duration], ok is false when it overflows.
func (hdr *RetryAfter) Duration() (d time.Duration, ok bool) {
	if hdr == nil {
		return 0, false
	}
	v, ok := hdr.Delay.Uint64()
	if !ok || v > math.MaxInt64/uint64(time.Second) {
		return 0, false
	}
	return time.Duration(v) * time.Second, true
}

// Clone returns a copy of the header.
func (hdr *RetryAfter) Clone() Header {
	if hdr == nil {
		return hdr
	}
	hdr2 := *hdr
	hdr2.Params = hdr.Params.Clone()
	return &hdr2
}

// Equal compares this header with another for equality.
func (hdr *RetryAfter) Equal(val any) bool {
	var other *RetryAfter
	switch v := val.(type) {
	case RetryAfter:
		other = &v
	case *RetryAfter:
		other = v
	default:
		return false
	}
	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}
	return hdr.Delay.Equal(other.Delay) &&
		hdr.Comment == other.Comment &&
		compareParams(hdr.Params, other.Params, "duration")
}

// IsValid checks whether the header is syntactically valid.
func (hdr *RetryAfter) IsValid() bool { return hdr != nil && validateParams(hdr.Params) }

func buildFromRetryAfterNode(node *grammar.Node) *RetryAfter {
	hdr := &RetryAfter{
		Delay:  types.MustParseNumber(grammar.MustGetNode(node, "delta-seconds").Value),
		Params: buildParams(node.Children[1:]),
	}
	if c, ok := grammar.Child(node, "comment"); ok {
		hdr.Comment = trimComment(c.String())
	}
	return hdr
}

// trimComment strips the outer parentheses of a comment node text.
func trimComment(s string) string {
	if len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')' {
		return s[1 : len(s)-1]
	}
	return s
}
