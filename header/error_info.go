package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"
)

// ErrorInfo represents the Error-Info header field.
// The Error-Info header field provides a pointer to additional information about the error status response.
type ErrorInfo []InfoAddr

func (ErrorInfo) CanonicName() Name { return "Error-Info" }

func (ErrorInfo) CompactName() Name { return "Error-Info" }

// RenderTo writes the header to the provided writer.
func (hdr ErrorInfo) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHeaderTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr ErrorInfo) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHeader(hdr, opts)
}

func (hdr ErrorInfo) String() string { return hdr.RenderValue() }

// RenderValue returns the header value without the name prefix.
func (hdr ErrorInfo) RenderValue() string { return joinList(hdr, ", ") }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr ErrorInfo) Format(f fmt.State, verb rune) {
	type hideMethods ErrorInfo
	type ErrorInfo hideMethods
	formatHeader(f, verb, hdr, ErrorInfo(hdr))
}

// Clone returns a copy of the header.
func (hdr ErrorInfo) Clone() Header { return cloneList(hdr, cloneInfoAddr) }

// Equal compares this header with another for equality.
func (hdr ErrorInfo) Equal(val any) bool { return equalList(hdr, val, equalInfoAddr) }

// IsValid checks whether the header is syntactically valid.
func (hdr ErrorInfo) IsValid() bool {
	for _, e := range hdr {
		if !e.IsValid() {
			return false
		}
	}
	return len(hdr) > 0
}

func (hdr ErrorInfo) Split() []Header { return splitList(hdr) }

func (hdr ErrorInfo) combine(other Header) (Header, bool) { return combineList(hdr, other) }

func (hdr ErrorInfo) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *ErrorInfo) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[ErrorInfo](data)
	*hdr = h
	return errtrace.Wrap(err)
}
