package header

import (
	"fmt"
	"io"
	"slices"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipcodec/internal/grammar"
	"github.com/ghettovoice/sipcodec/internal/util"
)

// ContentEncoding represents the Content-Encoding header field.
// The Content-Encoding header field is used as a modifier to the media-type.
type ContentEncoding []string

func (ContentEncoding) CanonicName() Name { return "Content-Encoding" }

func (ContentEncoding) CompactName() Name { return "e" }

// RenderTo writes the header to the provided writer.
func (hdr ContentEncoding) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHeaderTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr ContentEncoding) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHeader(hdr, opts)
}

func (hdr ContentEncoding) String() string { return hdr.RenderValue() }

// RenderValue returns the header value without the name prefix.
func (hdr ContentEncoding) RenderValue() string { return joinStrings(hdr, ", ") }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr ContentEncoding) Format(f fmt.State, verb rune) {
	type hideMethods ContentEncoding
	type ContentEncoding hideMethods
	formatHeader(f, verb, hdr, ContentEncoding(hdr))
}

// Clone returns a copy of the header.
func (hdr ContentEncoding) Clone() Header { return slices.Clone(hdr) }

// Equal compares this header with another for equality.
func (hdr ContentEncoding) Equal(val any) bool { return equalList(hdr, val, util.EqFold[string, string]) }

// IsValid checks whether the header is syntactically valid.
func (hdr ContentEncoding) IsValid() bool {
	for _, e := range hdr {
		if !grammar.IsToken(e) {
			return false
		}
	}
	return len(hdr) > 0
}

func (hdr ContentEncoding) Split() []Header { return splitList(hdr) }

func (hdr ContentEncoding) combine(other Header) (Header, bool) { return combineList(hdr, other) }

func (hdr ContentEncoding) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *ContentEncoding) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[ContentEncoding](data)
	*hdr = h
	return errtrace.Wrap(err)
}
