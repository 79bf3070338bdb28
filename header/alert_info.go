package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"
)

// AlertInfo represents the Alert-Info header field.
// The Alert-Info header field specifies an alternative ring tone to the UAS or ringback tone to the UAC.
type AlertInfo []InfoAddr

func (AlertInfo) CanonicName() Name { return "Alert-Info" }

func (AlertInfo) CompactName() Name { return "Alert-Info" }

// RenderTo writes the header to the provided writer.
func (hdr AlertInfo) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHeaderTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr AlertInfo) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHeader(hdr, opts)
}

func (hdr AlertInfo) String() string { return hdr.RenderValue() }

// RenderValue returns the header value without the name prefix.
func (hdr AlertInfo) RenderValue() string { return joinList(hdr, ", ") }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr AlertInfo) Format(f fmt.State, verb rune) {
	type hideMethods AlertInfo
	type AlertInfo hideMethods
	formatHeader(f, verb, hdr, AlertInfo(hdr))
}

// Clone returns a copy of the header.
func (hdr AlertInfo) Clone() Header { return cloneList(hdr, cloneInfoAddr) }

// Equal compares this header with another for equality.
func (hdr AlertInfo) Equal(val any) bool { return equalList(hdr, val, equalInfoAddr) }

// IsValid checks whether the header is syntactically valid.
func (hdr AlertInfo) IsValid() bool {
	for _, e := range hdr {
		if !e.IsValid() {
			return false
		}
	}
	return len(hdr) > 0
}

func (hdr AlertInfo) Split() []Header { return splitList(hdr) }

func (hdr AlertInfo) combine(other Header) (Header, bool) { return combineList(hdr, other) }

func (hdr AlertInfo) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *AlertInfo) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[AlertInfo](data)
	*hdr = h
	return errtrace.Wrap(err)
}
