package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"
)

// CallInfo represents the Call-Info header field.
// The Call-Info header field provides additional information about the caller or callee.
type CallInfo []InfoAddr

func (CallInfo) CanonicName() Name { return "Call-Info" }

func (CallInfo) CompactName() Name { return "Call-Info" }

// RenderTo writes the header to the provided writer.
func (hdr CallInfo) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHeaderTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr CallInfo) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHeader(hdr, opts)
}

func (hdr CallInfo) String() string { return hdr.RenderValue() }

// RenderValue returns the header value without the name prefix.
func (hdr CallInfo) RenderValue() string { return joinList(hdr, ", ") }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr CallInfo) Format(f fmt.State, verb rune) {
	type hideMethods CallInfo
	type CallInfo hideMethods
	formatHeader(f, verb, hdr, CallInfo(hdr))
}

// Clone returns a copy of the header.
func (hdr CallInfo) Clone() Header { return cloneList(hdr, cloneInfoAddr) }

// Equal compares this header with another for equality.
func (hdr CallInfo) Equal(val any) bool { return equalList(hdr, val, equalInfoAddr) }

// IsValid checks whether the header is syntactically valid.
func (hdr CallInfo) IsValid() bool {
	for _, e := range hdr {
		if !e.IsValid() {
			return false
		}
	}
	return len(hdr) > 0
}

func (hdr CallInfo) Split() []Header { return splitList(hdr) }

func (hdr CallInfo) combine(other Header) (Header, bool) { return combineList(hdr, other) }

func (hdr CallInfo) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *CallInfo) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[CallInfo](data)
	*hdr = h
	return errtrace.Wrap(err)
}
