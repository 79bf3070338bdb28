package header

import (
	"fmt"
	"io"
	"slices"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipcodec/internal/grammar"
	"github.com/ghettovoice/sipcodec/internal/util"
)

// Require represents the Require header field.
// The Require header field lists the option tags the UAS must support to process the request.
type Require []string

func (Require) CanonicName() Name { return "Require" }

func (Require) CompactName() Name { return "Require" }

// RenderTo writes the header to the provided writer.
func (hdr Require) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHeaderTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr Require) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHeader(hdr, opts)
}

func (hdr Require) String() string { return hdr.RenderValue() }

// RenderValue returns the header value without the name prefix.
func (hdr Require) RenderValue() string { return joinStrings(hdr, ", ") }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr Require) Format(f fmt.State, verb rune) {
	type hideMethods Require
	type Require hideMethods
	formatHeader(f, verb, hdr, Require(hdr))
}

// Clone returns a copy of the header.
func (hdr Require) Clone() Header { return slices.Clone(hdr) }

// Equal compares this header with another for equality.
func (hdr Require) Equal(val any) bool { return equalList(hdr, val, util.EqFold[string, string]) }

// IsValid checks whether the header is syntactically valid.
func (hdr Require) IsValid() bool {
	for _, e := range hdr {
		if !grammar.IsToken(e) {
			return false
		}
	}
	return len(hdr) > 0
}

func (hdr Require) Split() []Header { return splitList(hdr) }

func (hdr Require) combine(other Header) (Header, bool) { return combineList(hdr, other) }

func (hdr Require) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *Require) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[Require](data)
	*hdr = h
	return errtrace.Wrap(err)
}
