package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"
)

// ContentLength represents the Content-Length header field.
// The Content-Length header field indicates the size of the message body in decimal number of octets.
type ContentLength Number

// CanonicName returns the canonical name of the header.
func (ContentLength) CanonicName() Name { return "Content-Length" }

// CompactName returns the compact name of the header.
func (ContentLength) CompactName() Name { return "l" }

// RenderTo writes the header to the provided writer.
func (hdr ContentLength) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	return errtrace.Wrap2(renderHeaderTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr ContentLength) Render(opts *RenderOptions) string { return renderHeader(hdr, opts) }

// RenderValue returns the header value without the name prefix.
func (hdr ContentLength) RenderValue() string { return Number(hdr).String() }

func (hdr ContentLength) String() string { return hdr.RenderValue() }

// Value returns the header value as a [Number].
func (hdr ContentLength) Value() Number { return Number(hdr) }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr ContentLength) Format(f fmt.State, verb rune) {
	formatHeader(f, verb, hdr, Number(hdr))
}

// Clone returns a copy of the header.
func (hdr ContentLength) Clone() Header { return hdr }

// Equal compares this header with another for equality.
func (hdr ContentLength) Equal(val any) bool {
	switch v := val.(type) {
	case ContentLength:
		return Number(hdr).Equal(Number(v))
	case *ContentLength:
		return v != nil && Number(hdr).Equal(Number(*v))
	default:
		return false
	}
}

// IsValid checks whether the header is syntactically valid.
func (hdr ContentLength) IsValid() bool { return true }

func (hdr ContentLength) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *ContentLength) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[ContentLength](data)
	*hdr = h
	return errtrace.Wrap(err)
}
