package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"
)

// Server represents the Server header field.
// The Server header field contains information about the software used by the UAS to handle the request.
// Values are separated by SP, repeated headers combine into a single line.
type Server []Product

func (Server) CanonicName() Name { return "Server" }

func (Server) CompactName() Name { return "Server" }

// RenderTo writes the header to the provided writer.
func (hdr Server) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHeaderTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr Server) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHeader(hdr, opts)
}

func (hdr Server) String() string { return hdr.RenderValue() }

// RenderValue returns the header value without the name prefix.
func (hdr Server) RenderValue() string { return joinList(hdr, " ") }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr Server) Format(f fmt.State, verb rune) {
	type hideMethods Server
	type Server hideMethods
	formatHeader(f, verb, hdr, Server(hdr))
}

// Clone returns a copy of the header.
func (hdr Server) Clone() Header { return cloneList(hdr, cloneProduct) }

// Equal compares this header with another for equality.
func (hdr Server) Equal(val any) bool { return equalList(hdr, val, equalProduct) }

// IsValid checks whether the header is syntactically valid.
func (hdr Server) IsValid() bool {
	for _, e := range hdr {
		if !e.IsValid() {
			return false
		}
	}
	return len(hdr) > 0
}

func (hdr Server) combine(other Header) (Header, bool) { return combineList(hdr, other) }

func (hdr Server) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *Server) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[Server](data)
	*hdr = h
	return errtrace.Wrap(err)
}
