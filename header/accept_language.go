package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"
)

// AcceptLanguage represents the Accept-Language header field.
// The Accept-Language header field lists the preferred languages of reason phrases, session descriptions and status responses.
type AcceptLanguage []LanguageRange

func (AcceptLanguage) CanonicName() Name { return "Accept-Language" }

func (AcceptLanguage) CompactName() Name { return "Accept-Language" }

// RenderTo writes the header to the provided writer.
func (hdr AcceptLanguage) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHeaderTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr AcceptLanguage) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHeader(hdr, opts)
}

func (hdr AcceptLanguage) String() string { return hdr.RenderValue() }

// RenderValue returns the header value without the name prefix.
func (hdr AcceptLanguage) RenderValue() string { return joinList(hdr, ", ") }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr AcceptLanguage) Format(f fmt.State, verb rune) {
	type hideMethods AcceptLanguage
	type AcceptLanguage hideMethods
	formatHeader(f, verb, hdr, AcceptLanguage(hdr))
}

// Clone returns a copy of the header.
func (hdr AcceptLanguage) Clone() Header { return cloneList(hdr, cloneLanguageRange) }

// Equal compares this header with another for equality.
func (hdr AcceptLanguage) Equal(val any) bool { return equalList(hdr, val, equalLanguageRange) }

// IsValid checks whether the header is syntactically valid.
func (hdr AcceptLanguage) IsValid() bool {
	for _, e := range hdr {
		if !e.IsValid() {
			return false
		}
	}
	return hdr != nil
}

func (hdr AcceptLanguage) Split() []Header { return splitList(hdr) }

func (hdr AcceptLanguage) combine(other Header) (Header, bool) { return combineList(hdr, other) }

func (hdr AcceptLanguage) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *AcceptLanguage) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[AcceptLanguage](data)
	*hdr = h
	return errtrace.Wrap(err)
}
