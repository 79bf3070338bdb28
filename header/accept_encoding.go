package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"
)

// AcceptEncoding represents the Accept-Encoding header field.
// The Accept-Encoding header field restricts the content-codings acceptable in the response.
type AcceptEncoding []EncodingRange

func (AcceptEncoding) CanonicName() Name { return "Accept-Encoding" }

func (AcceptEncoding) CompactName() Name { return "Accept-Encoding" }

// RenderTo writes the header to the provided writer.
func (hdr AcceptEncoding) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHeaderTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr AcceptEncoding) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHeader(hdr, opts)
}

func (hdr AcceptEncoding) String() string { return hdr.RenderValue() }

// RenderValue returns the header value without the name prefix.
func (hdr AcceptEncoding) RenderValue() string { return joinList(hdr, ", ") }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr AcceptEncoding) Format(f fmt.State, verb rune) {
	type hideMethods AcceptEncoding
	type AcceptEncoding hideMethods
	formatHeader(f, verb, hdr, AcceptEncoding(hdr))
}

// Clone returns a copy of the header.
func (hdr AcceptEncoding) Clone() Header { return cloneList(hdr, cloneEncodingRange) }

// Equal compares this header with another for equality.
func (hdr AcceptEncoding) Equal(val any) bool { return equalList(hdr, val, equalEncodingRange) }

// IsValid checks whether the header is syntactically valid.
func (hdr AcceptEncoding) IsValid() bool {
	for _, e := range hdr {
		if !e.IsValid() {
			return false
		}
	}
	return len(hdr) > 0
}

func (hdr AcceptEncoding) Split() []Header { return splitList(hdr) }

func (hdr AcceptEncoding) combine(other Header) (Header, bool) { return combineList(hdr, other) }

func (hdr AcceptEncoding) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *AcceptEncoding) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[AcceptEncoding](data)
	*hdr = h
	return errtrace.Wrap(err)
}
