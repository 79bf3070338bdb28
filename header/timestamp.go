package header

import (
	"fmt"
	"io"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipcodec/internal/grammar"
)

// Timestamp represents the Timestamp header field.
// Value and Delay are kept as the decimal text they were written with.
type Timestamp struct {
	Value string
	Delay string
}

// CanonicName returns the canonical name of the header.
func (*Timestamp) CanonicName() Name { return "Timestamp" }

// CompactName returns the compact name of the header.
func (*Timestamp) CompactName() Name { return "Timestamp" }

// RenderTo writes the header to the provided writer.
func (hdr *Timestamp) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHeaderTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr *Timestamp) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHeader(hdr, opts)
}

func (hdr *Timestamp) String() string { return hdr.RenderValue() }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr *Timestamp) Format(f fmt.State, verb rune) {
	type hideMethods Timestamp
	type Timestamp hideMethods
	formatHeader(f, verb, hdr, (*Timestamp)(hdr))
}

func (hdr *Timestamp) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *Timestamp) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[*Timestamp](data)
	if h == nil {
		*hdr = Timestamp{}
	} else {
		*hdr = *h
	}
	return errtrace.Wrap(err)
}

// RenderValue returns the header value without the name prefix.
func (hdr *Timestamp) RenderValue() string {
	if hdr == nil {
		return ""
	}
	if hdr.Delay == "" {
		return hdr.Value
	}
	return hdr.Value + " " + hdr.Delay
}

// Clone returns a copy of the header.
func (hdr *Timestamp) Clone() Header {
	if hdr == nil {
		return hdr
	}
	hdr2 := *hdr
	return &hdr2
}

// Equal compares this header with another for equality.
func (hdr *Timestamp) Equal(val any) bool {
	var other *Timestamp
	switch v := val.(type) {
	case Timestamp:
		other = &v
	case *Timestamp:
		other = v
	default:
		return false
	}
	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}
	return hdr.Value == other.Value && hdr.Delay == other.Delay
}

// IsValid checks whether the header is syntactically valid.
func (hdr *Timestamp) IsValid() bool {
	return hdr != nil && isDecimal(hdr.Value, true) && (hdr.Delay == "" || isDecimal(hdr.Delay, false))
}

func isDecimal(s string, intRequired bool) bool {
	intPart, frac, _ := strings.Cut(s, ".")
	if intRequired && intPart == "" || intPart+frac == "" {
		return false
	}
	for _, c := range intPart + frac {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func buildFromTimestampNode(node *grammar.Node) *Timestamp {
	hdr := &Timestamp{Value: grammar.MustGetNode(node, "timestamp-value").String()}
	if d, ok := grammar.Child(node, "delay"); ok {
		hdr.Delay = d.String()
	}
	return hdr
}
