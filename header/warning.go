package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"
)

// Warning represents the Warning header field.
// The Warning header field carries additional information about the status of a response.
type Warning []WarningEntry

func (Warning) CanonicName() Name { return "Warning" }

func (Warning) CompactName() Name { return "Warning" }

// RenderTo writes the header to the provided writer.
func (hdr Warning) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHeaderTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr Warning) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHeader(hdr, opts)
}

func (hdr Warning) String() string { return hdr.RenderValue() }

// RenderValue returns the header value without the name prefix.
func (hdr Warning) RenderValue() string { return joinList(hdr, ", ") }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr Warning) Format(f fmt.State, verb rune) {
	type hideMethods Warning
	type Warning hideMethods
	formatHeader(f, verb, hdr, Warning(hdr))
}

// Clone returns a copy of the header.
func (hdr Warning) Clone() Header { return cloneList(hdr, cloneWarningEntry) }

// Equal compares this header with another for equality.
func (hdr Warning) Equal(val any) bool { return equalList(hdr, val, equalWarningEntry) }

// IsValid checks whether the header is syntactically valid.
func (hdr Warning) IsValid() bool {
	for _, e := range hdr {
		if !e.IsValid() {
			return false
		}
	}
	return len(hdr) > 0
}

func (hdr Warning) Split() []Header { return splitList(hdr) }

func (hdr Warning) combine(other Header) (Header, bool) { return combineList(hdr, other) }

func (hdr Warning) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *Warning) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[Warning](data)
	*hdr = h
	return errtrace.Wrap(err)
}
