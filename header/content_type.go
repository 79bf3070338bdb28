package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"
)

// ContentType represents the Content-Type header field, the media type of the message body.
type ContentType MIMEType

// CanonicName returns the canonical name of the header.
func (*ContentType) CanonicName() Name { return "Content-Type" }

// CompactName returns the compact name of the header.
func (*ContentType) CompactName() Name { return "c" }

// RenderTo writes the header to the provided writer.
func (hdr *ContentType) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHeaderTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr *ContentType) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHeader(hdr, opts)
}

func (hdr *ContentType) String() string { return hdr.RenderValue() }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr *ContentType) Format(f fmt.State, verb rune) {
	type hideMethods ContentType
	type ContentType hideMethods
	formatHeader(f, verb, hdr, (*ContentType)(hdr))
}

func (hdr *ContentType) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *ContentType) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[*ContentType](data)
	if h == nil {
		*hdr = ContentType{}
	} else {
		*hdr = *h
	}
	return errtrace.Wrap(err)
}

// RenderValue returns the header value without the name prefix.
func (hdr *ContentType) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return MIMEType(*hdr).String()
}

// Clone returns a copy of the header.
func (hdr *ContentType) Clone() Header {
	if hdr == nil {
		return hdr
	}
	hdr2 := ContentType(MIMEType(*hdr).Clone())
	return &hdr2
}

// Equal compares this header with another for equality.
func (hdr *ContentType) Equal(val any) bool {
	var other *ContentType
	switch v := val.(type) {
	case ContentType:
		other = &v
	case *ContentType:
		other = v
	default:
		return false
	}
	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}
	return MIMEType(*hdr).Equal(MIMEType(*other))
}

// IsValid checks whether the header is syntactically valid.
func (hdr *ContentType) IsValid() bool { return hdr != nil && MIMEType(*hdr).IsValid() }
