package uri

import (
	"fmt"
	"io"
	"net/url"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipcodec/internal/grammar"
	"github.com/ghettovoice/sipcodec/internal/util"
)

// Any is an absoluteURI of a scheme other than sip, sips and tel (mailto:, http: and so on).
// A tel URI that does not match RFC 3966 is kept as Any too.
// The text after the colon is kept verbatim and rendered back unchanged.
type Any struct {
	Scheme string `json:"scheme"`
	Opaque string `json:"opaque"`
}

// Clone returns a copy of the Any URI.
func (u *Any) Clone() URI {
	if u == nil {
		return nil
	}
	u2 := *u
	return &u2
}

// URL converts the URI into [url.URL] for a hierarchical access to its parts.
func (u *Any) URL() (*url.URL, error) {
	return errtrace.Wrap2(url.Parse(u.String()))
}

// RenderTo writes the URI to the provided writer.
func (u *Any) RenderTo(w io.Writer, _ *RenderOptions) (num int, err error) {
	if u == nil {
		return 0, nil
	}
	return errtrace.Wrap2(fmt.Fprint(w, u.Scheme, ":", u.Opaque))
}

// Render returns the string representation of the URI.
func (u *Any) Render(opts *RenderOptions) string {
	if u == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	u.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

func (u *Any) String() string {
	if u == nil {
		return ""
	}
	return u.Render(nil)
}

// Format implements fmt.Formatter for custom formatting of the Any URI.
func (u *Any) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, u.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
		return
	default:
		type hideMethods Any
		type Any hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Any)(u))
		return
	}
}

// Equal compares this URI with another for equality.
// Both the scheme and the opaque part are compared case-insensitively.
func (u *Any) Equal(val any) bool {
	var other *Any
	switch v := val.(type) {
	case Any:
		other = &v
	case *Any:
		other = v
	default:
		return false
	}

	if u == other {
		return true
	} else if u == nil || other == nil {
		return false
	}
	return util.EqFold(u.Scheme, other.Scheme) && util.EqFold(u.Opaque, other.Opaque)
}

// IsValid checks whether the Any URI is syntactically valid.
func (u *Any) IsValid() bool {
	return u != nil && grammar.IsAbsoluteURI(u.String())
}

// MarshalText implements [encoding.TextMarshaler].
func (u *Any) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (u *Any) UnmarshalText(text []byte) error {
	u1, err := ParseAny(text)
	if err != nil {
		*u = Any{}
		return errtrace.Wrap(err)
	}
	*u = *u1
	return nil
}

// ParseAny parses an absoluteURI from the given input src (string or []byte).
func ParseAny[T ~string | ~[]byte](src T) (*Any, error) {
	node, err := grammar.Parse(src, grammar.AbsoluteURI)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return buildFromAbsoluteURINode(node), nil
}

func buildFromAbsoluteURINode(node *grammar.Node) *Any {
	return &Any{
		Scheme: grammar.MustGetNode(node, "scheme").String(),
		Opaque: grammar.MustGetNode(node, "opaque").String(),
	}
}
