package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipcodec/internal/grammar"
	"github.com/ghettovoice/sipcodec/internal/types"
)

// Expires represents the Expires header field.
// The Expires header field gives the relative time after which the message or content expires.
// A malformed value is taken as [DefaultExpires] seconds.
type Expires Number

// CanonicName returns the canonical name of the header.
func (Expires) CanonicName() Name { return "Expires" }

// CompactName returns the compact name of the header.
func (Expires) CompactName() Name { return "Expires" }

// RenderTo writes the header to the provided writer.
func (hdr Expires) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	return errtrace.Wrap2(renderHeaderTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr Expires) Render(opts *RenderOptions) string { return renderHeader(hdr, opts) }

// RenderValue returns the header value without the name prefix.
func (hdr Expires) RenderValue() string { return Number(hdr).String() }

func (hdr Expires) String() string { return hdr.RenderValue() }

// Value returns the header value as a [Number].
func (hdr Expires) Value() Number { return Number(hdr) }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr Expires) Format(f fmt.State, verb rune) {
	formatHeader(f, verb, hdr, Number(hdr))
}

// Clone returns a copy of the header.
func (hdr Expires) Clone() Header { return hdr }

// Equal compares this header with another for equality.
func (hdr Expires) Equal(val any) bool {
	switch v := val.(type) {
	case Expires:
		return Number(hdr).Equal(Number(v))
	case *Expires:
		return v != nil && Number(hdr).Equal(Number(*v))
	default:
		return false
	}
}

// IsValid checks whether the header is syntactically valid.
func (hdr Expires) IsValid() bool { return true }

func (hdr Expires) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *Expires) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[Expires](data)
	*hdr = h
	return errtrace.Wrap(err)
}

func buildFromExpiresNode(node *grammar.Node) Expires {
	if node.Key == "delta-seconds" {
		return Expires(types.MustParseNumber(node.Value))
	}
	return Expires(Num(DefaultExpires))
}
