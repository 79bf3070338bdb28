package header

import (
	"fmt"
	"io"
	"slices"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipcodec/internal/grammar"
	"github.com/ghettovoice/sipcodec/internal/util"
)

// Supported represents the Supported header field.
// The Supported header field enumerates all the extensions supported by the UAC or UAS.
type Supported []string

func (Supported) CanonicName() Name { return "Supported" }

func (Supported) CompactName() Name { return "k" }

// RenderTo writes the header to the provided writer.
func (hdr Supported) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHeaderTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr Supported) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHeader(hdr, opts)
}

func (hdr Supported) String() string { return hdr.RenderValue() }

// RenderValue returns the header value without the name prefix.
func (hdr Supported) RenderValue() string { return joinStrings(hdr, ", ") }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr Supported) Format(f fmt.State, verb rune) {
	type hideMethods Supported
	type Supported hideMethods
	formatHeader(f, verb, hdr, Supported(hdr))
}

// Clone returns a copy of the header.
func (hdr Supported) Clone() Header { return slices.Clone(hdr) }

// Equal compares this header with another for equality.
func (hdr Supported) Equal(val any) bool { return equalList(hdr, val, util.EqFold[string, string]) }

// IsValid checks whether the header is syntactically valid.
func (hdr Supported) IsValid() bool {
	for _, e := range hdr {
		if !grammar.IsToken(e) {
			return false
		}
	}
	return hdr != nil
}

func (hdr Supported) Split() []Header { return splitList(hdr) }

func (hdr Supported) combine(other Header) (Header, bool) { return combineList(hdr, other) }

func (hdr Supported) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *Supported) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[Supported](data)
	*hdr = h
	return errtrace.Wrap(err)
}
