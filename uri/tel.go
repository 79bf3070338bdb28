package uri

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipcodec/internal/grammar"
	"github.com/ghettovoice/sipcodec/internal/ioutil"
	"github.com/ghettovoice/sipcodec/internal/util"
)

// Tel implements "tel" URI for Telephone Numbers (RFC 3966).
type Tel struct {
	// Telephone number matching global-number-digits or local-number-digits ABNF. Required.
	Number string
	// URI's parameters in the wire order, values are stored unescaped.
	// A local number must have at least a "phone-context" parameter.
	Params Params
}

// IsGlob checks whether the telephone number is global or not.
// RFC 3966 Section 5.1.4.
func (u *Tel) IsGlob() bool { return u != nil && grammar.IsGlobTelNum(u.number()) }

// Clone returns a deep copy of the Tel URI.
func (u *Tel) Clone() URI {
	if u == nil {
		return nil
	}
	u2 := *u
	u2.Params = u.Params.Clone()
	return &u2
}

// RenderTo writes the Tel URI to the provided writer.
// Parameters are rendered in the order they are stored, values are re-escaped.
func (u *Tel) RenderTo(w io.Writer, _ *RenderOptions) (num int, err error) {
	if u == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Fprint("tel:", u.number())
	cw.Call(func(w io.Writer) (int, error) {
		return errtrace.Wrap2(u.Params.RenderEscapedTo(w, ";", escapeParam))
	})
	return errtrace.Wrap2(cw.Result())
}

func (u *Tel) number() string { return strings.ReplaceAll(u.Number, " ", "") }

// Render returns the string representation of the Tel URI.
func (u *Tel) Render(opts *RenderOptions) string {
	if u == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	u.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the string representation of the Tel URI.
func (u *Tel) String() string {
	if u == nil {
		return ""
	}
	return u.Render(nil)
}

// Format implements fmt.Formatter for custom formatting of the Tel URI.
func (u *Tel) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') {
			u.RenderTo(f, nil) //nolint:errcheck
			return
		}
		fmt.Fprint(f, u.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
		return
	default:
		type hideMethods Tel
		type Tel hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Tel)(u))
		return
	}
}

// Equal compares this Tel URI with another for equality according to RFC 3966 Section 4.
func (u *Tel) Equal(val any) bool {
	var other *Tel
	switch v := val.(type) {
	case Tel:
		other = &v
	case *Tel:
		other = v
	default:
		return false
	}

	if u == other {
		return true
	} else if u == nil || other == nil {
		return false
	}

	// Both must be either a local or a global number,
	// the numbers must be equal after removing all visual separators.
	return util.EqFold(grammar.CleanTelNum(u.number()), grammar.CleanTelNum(other.number())) &&
		u.compareParams(other.Params)
}

// compareParams compares tel URI parameters by name regardless of their order.
// A parameter present in one URI only makes them different.
// "ext" and a numeric "phone-context" are compared without visual separators.
func (u *Tel) compareParams(params Params) bool {
	if len(u.Params) != len(params) {
		return false
	}

	for _, p := range u.Params {
		v2, ok := params.Get(p.Name)
		if !ok {
			return false
		}
		v1 := p.Value
		switch util.LCase(p.Name) {
		case "ext", "phone-context":
			if grammar.IsTelNum(v1) {
				v1 = grammar.CleanTelNum(v1)
			}
			if grammar.IsTelNum(v2) {
				v2 = grammar.CleanTelNum(v2)
			}
		}
		if !util.EqFold(v1, v2) {
			return false
		}
	}
	return true
}

// IsValid checks whether the u is syntactically valid tel URI.
func (u *Tel) IsValid() bool {
	if u == nil || !grammar.IsTelNum(u.number()) {
		return false
	}
	if !u.IsGlob() {
		if ctx, ok := u.PhoneContext(); !ok || grammar.CleanTelNum(ctx) == "" {
			return false
		}
	}
	for _, p := range u.Params {
		if !grammar.IsTelURIParamName(p.Name) {
			return false
		}
	}
	return true
}

// ToSIP converts the Tel URI to a SIP URI according to RFC 3966 Section 5.1.7.
// A domain name phone-context becomes the host of the SIP URI.
func (u *Tel) ToSIP() *SIP {
	if u == nil {
		return nil
	}

	u2, _ := u.Clone().(*Tel)
	u2.Number = grammar.CleanTelNum(u2.Number)

	var host string
	if !u2.IsGlob() {
		if ctx, _ := u2.PhoneContext(); grammar.IsHost(ctx) && !grammar.IsGlobTelNum(ctx) {
			host = ctx
			u2.Params = u2.Params.Del("phone-context")
		} else if ctx != "" {
			u2.Params = u2.Params.Set("phone-context", grammar.CleanTelNum(ctx))
		}
	}
	if ext, _ := u2.Extension(); ext != "" {
		u2.Params = u2.Params.Set("ext", grammar.CleanTelNum(ext))
	}
	// RFC 3966 Section 4.
	// All parameter names and values SHOULD use lower-case characters, as
	// tel URIs may be used within contexts where comparisons are case-sensitive.
	return &SIP{
		User:   User(util.LCase(u2.Render(nil)[len("tel:"):])),
		Addr:   Host(host),
		Params: Params{}.Add("user", "phone"),
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (u *Tel) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (u *Tel) UnmarshalText(text []byte) error {
	u1, err := ParseTel(text)
	if err != nil {
		*u = Tel{}
		return errtrace.Wrap(err)
	}
	*u = *u1
	return nil
}

// PhoneContext returns the "phone-context" parameter.
func (u *Tel) PhoneContext() (string, bool) { return u.Params.Get("phone-context") }

// Extension returns the "ext" parameter.
func (u *Tel) Extension() (string, bool) { return u.Params.Get("ext") }

// ISDNSubAddr returns the "isub" parameter.
func (u *Tel) ISDNSubAddr() (string, bool) { return u.Params.Get("isub") }

// ParseTel parses a Tel URI from the given input src (string or []byte).
func ParseTel[T ~string | ~[]byte](src T) (*Tel, error) {
	n, err := grammar.ParseTelURI(src)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return buildFromTelURINode(n), nil
}

func buildFromTelURINode(node *grammar.Node) *Tel {
	sub := node.Children[0]
	u := &Tel{}
	if n, ok := grammar.Child(sub, "global-number-digits"); ok {
		u.Number = n.String()
	} else {
		u.Number = grammar.MustGetNode(sub, "local-number-digits").String()
	}
	if ps := grammar.ChildNodes(sub, "tel-param"); len(ps) > 0 {
		u.Params = buildFromEscapedParamNodes(ps, "pname", "pvalue")
	}
	return u
}
