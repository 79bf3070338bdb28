package header

import (
	"fmt"
	"io"
	"slices"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipcodec/internal/grammar"
	"github.com/ghettovoice/sipcodec/internal/util"
)

// Unsupported represents the Unsupported header field.
// The Unsupported header field lists the features not supported by the UAS.
type Unsupported []string

func (Unsupported) CanonicName() Name { return "Unsupported" }

func (Unsupported) CompactName() Name { return "Unsupported" }

// RenderTo writes the header to the provided writer.
func (hdr Unsupported) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHeaderTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr Unsupported) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHeader(hdr, opts)
}

func (hdr Unsupported) String() string { return hdr.RenderValue() }

// RenderValue returns the header value without the name prefix.
func (hdr Unsupported) RenderValue() string { return joinStrings(hdr, ", ") }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr Unsupported) Format(f fmt.State, verb rune) {
	type hideMethods Unsupported
	type Unsupported hideMethods
	formatHeader(f, verb, hdr, Unsupported(hdr))
}

// Clone returns a copy of the header.
func (hdr Unsupported) Clone() Header { return slices.Clone(hdr) }

// Equal compares this header with another for equality.
func (hdr Unsupported) Equal(val any) bool { return equalList(hdr, val, util.EqFold[string, string]) }

// IsValid checks whether the header is syntactically valid.
func (hdr Unsupported) IsValid() bool {
	for _, e := range hdr {
		if !grammar.IsToken(e) {
			return false
		}
	}
	return len(hdr) > 0
}

func (hdr Unsupported) Split() []Header { return splitList(hdr) }

func (hdr Unsupported) combine(other Header) (Header, bool) { return combineList(hdr, other) }

func (hdr Unsupported) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *Unsupported) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[Unsupported](data)
	*hdr = h
	return errtrace.Wrap(err)
}
