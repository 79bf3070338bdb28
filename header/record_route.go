package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"
)

// RecordRoute represents the Record-Route header field.
// The Record-Route header field is inserted by proxies that want to stay on the path of subsequent requests.
type RecordRoute []NameAddr

func (RecordRoute) CanonicName() Name { return "Record-Route" }

func (RecordRoute) CompactName() Name { return "Record-Route" }

// RenderTo writes the header to the provided writer.
func (hdr RecordRoute) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHeaderTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr RecordRoute) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHeader(hdr, opts)
}

func (hdr RecordRoute) String() string { return hdr.RenderValue() }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr RecordRoute) Format(f fmt.State, verb rune) {
	type hideMethods RecordRoute
	type RecordRoute hideMethods
	formatHeader(f, verb, hdr, RecordRoute(hdr))
}

// Clone returns a copy of the header.
func (hdr RecordRoute) Clone() Header { return cloneList(hdr, cloneNameAddr) }

// Equal compares this header with another for equality.
func (hdr RecordRoute) Equal(val any) bool { return equalList(hdr, val, equalNameAddr) }

// IsValid checks whether the header is syntactically valid.
func (hdr RecordRoute) IsValid() bool {
	for _, addr := range hdr {
		if !addr.IsValid() {
			return false
		}
	}
	return hdr != nil
}

// Split returns a header per address.
func (hdr RecordRoute) Split() []Header { return splitList(hdr) }

func (hdr RecordRoute) combine(other Header) (Header, bool) { return combineList(hdr, other) }

func (hdr RecordRoute) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *RecordRoute) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[RecordRoute](data)
	*hdr = h
	return errtrace.Wrap(err)
}

// RenderValue returns the header value without the name prefix.
func (hdr RecordRoute) RenderValue() string { return joinList(hdr, ", ") }
