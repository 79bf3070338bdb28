package header

import (
	"fmt"
	"io"
	"slices"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipcodec/internal/grammar"
	"github.com/ghettovoice/sipcodec/internal/util"
)

// ContentLanguage represents the Content-Language header field.
// The Content-Language header field lists the languages of the message body.
type ContentLanguage []string

func (ContentLanguage) CanonicName() Name { return "Content-Language" }

func (ContentLanguage) CompactName() Name { return "Content-Language" }

// RenderTo writes the header to the provided writer.
func (hdr ContentLanguage) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHeaderTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr ContentLanguage) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHeader(hdr, opts)
}

func (hdr ContentLanguage) String() string { return hdr.RenderValue() }

// RenderValue returns the header value without the name prefix.
func (hdr ContentLanguage) RenderValue() string { return joinStrings(hdr, ", ") }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr ContentLanguage) Format(f fmt.State, verb rune) {
	type hideMethods ContentLanguage
	type ContentLanguage hideMethods
	formatHeader(f, verb, hdr, ContentLanguage(hdr))
}

// Clone returns a copy of the header.
func (hdr ContentLanguage) Clone() Header { return slices.Clone(hdr) }

// Equal compares this header with another for equality.
func (hdr ContentLanguage) Equal(val any) bool { return equalList(hdr, val, util.EqFold[string, string]) }

// IsValid checks whether the header is syntactically valid.
func (hdr ContentLanguage) IsValid() bool {
	for _, e := range hdr {
		if !grammar.IsToken(e) {
			return false
		}
	}
	return len(hdr) > 0
}

func (hdr ContentLanguage) Split() []Header { return splitList(hdr) }

func (hdr ContentLanguage) combine(other Header) (Header, bool) { return combineList(hdr, other) }

func (hdr ContentLanguage) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *ContentLanguage) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[ContentLanguage](data)
	*hdr = h
	return errtrace.Wrap(err)
}
