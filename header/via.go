package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"
)

// Via represents the Via header field.
// The Via header field indicates the path taken by the request so far and the path that should be followed in routing responses.
type Via []ViaHop

func (Via) CanonicName() Name { return "Via" }

func (Via) CompactName() Name { return "v" }

// RenderTo writes the header to the provided writer.
func (hdr Via) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHeaderTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr Via) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHeader(hdr, opts)
}

func (hdr Via) String() string { return hdr.RenderValue() }

// RenderValue returns the header value without the name prefix.
func (hdr Via) RenderValue() string { return joinList(hdr, ", ") }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr Via) Format(f fmt.State, verb rune) {
	type hideMethods Via
	type Via hideMethods
	formatHeader(f, verb, hdr, Via(hdr))
}

// Clone returns a copy of the header.
func (hdr Via) Clone() Header { return cloneList(hdr, cloneViaHop) }

// Equal compares this header with another for equality.
func (hdr Via) Equal(val any) bool { return equalList(hdr, val, equalViaHop) }

// IsValid checks whether the header is syntactically valid.
func (hdr Via) IsValid() bool {
	for _, e := range hdr {
		if !e.IsValid() {
			return false
		}
	}
	return len(hdr) > 0
}

func (hdr Via) Split() []Header { return splitList(hdr) }

func (hdr Via) combine(other Header) (Header, bool) { return combineList(hdr, other) }

func (hdr Via) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *Via) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[Via](data)
	*hdr = h
	return errtrace.Wrap(err)
}
