package uri

import (
	"fmt"
	"io"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipcodec/internal/grammar"
	"github.com/ghettovoice/sipcodec/internal/ioutil"
	"github.com/ghettovoice/sipcodec/internal/types"
	"github.com/ghettovoice/sipcodec/internal/util"
)

// SIP represents a SIP or SIPS URI.
// Params and Headers keep the wire order, values are stored unescaped.
type SIP struct {
	User    UserInfo // username and passwd
	Addr    Addr     // host and port
	Params  Params   // parameters
	Headers Params   // headers
	Secured bool
}

// Clone returns a deep copy of the SIP URI.
func (u *SIP) Clone() URI {
	if u == nil {
		return nil
	}
	u2 := *u
	u2.Params = u.Params.Clone()
	u2.Headers = u.Headers.Clone()
	return &u2
}

// Scheme returns the URI scheme.
func (u *SIP) Scheme() string {
	if u == nil {
		return ""
	}
	return u.scheme()
}

func (u *SIP) scheme() string {
	if u.Secured {
		return "sips"
	}
	return "sip"
}

// RenderTo writes the SIP URI to the provided writer.
// User info, parameters and headers are re-escaped.
func (u *SIP) RenderTo(w io.Writer, _ *RenderOptions) (num int, err error) {
	if u == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Fprint(u.scheme(), ":")
	if !u.User.IsZero() {
		cw.Fprint(u.User, "@")
	}
	cw.Fprint(u.Addr)
	cw.Call(func(w io.Writer) (int, error) {
		return errtrace.Wrap2(u.Params.RenderEscapedTo(w, ";", escapeParam))
	})
	cw.Call(u.renderHeaders)
	return errtrace.Wrap2(cw.Result())
}

func (u *SIP) renderHeaders(w io.Writer) (num int, err error) {
	if len(u.Headers) == 0 {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString("?") //nolint:errcheck
	cw.Join(len(u.Headers), "&", func(w io.Writer, i int) (int, error) {
		h := u.Headers[i]
		return errtrace.Wrap2(fmt.Fprint(w, escapeHeader(h.Name), "=", escapeHeader(h.Value)))
	})
	return errtrace.Wrap2(cw.Result())
}

// Render returns the string representation of the SIP URI.
func (u *SIP) Render(opts *RenderOptions) string {
	if u == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	u.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the string representation of the SIP URI.
func (u *SIP) String() string {
	if u == nil {
		return ""
	}
	return u.Render(nil)
}

// Format implements fmt.Formatter for custom formatting of the SIP URI.
func (u *SIP) Format(f fmt.State, verb rune) {
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
		type hideMethods SIP
		type SIP hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*SIP)(u))
		return
	}
}

// Equal compares this SIP URI with another for equality according to RFC 3261 Section 19.1.4.
func (u *SIP) Equal(val any) bool {
	var other *SIP
	switch v := val.(type) {
	case SIP:
		other = &v
	case *SIP:
		other = v
	default:
		return false
	}

	if u == other {
		return true
	} else if u == nil || other == nil {
		return false
	}

	return u.Secured == other.Secured &&
		u.User.Equal(other.User) &&
		u.Addr.Equal(other.Addr) &&
		u.compareParams(other.Params) &&
		u.compareHeaders(other.Headers)
}

var sipURISpecParams = []string{"transport", "user", "method", "maddr", "ttl"}

func (u *SIP) compareParams(params Params) bool {
	// Any parameter appearing in both URIs must match, values case-insensitively.
	for _, p := range u.Params {
		if v, ok := params.Get(p.Name); ok {
			if mine, _ := u.Params.Get(p.Name); !util.EqFold(mine, v) {
				return false
			}
		}
	}
	// Special parameters appearing in one URI must appear in the other.
	for _, k := range sipURISpecParams {
		if u.Params.Has(k) != params.Has(k) {
			return false
		}
	}
	return true
}

func (u *SIP) compareHeaders(hdrs Params) bool {
	// URI header components are never ignored. Any present header component MUST be present
	// in both URIs and match for the URIs to match.
	if len(u.Headers) != len(hdrs) {
		return false
	}
	for _, h := range u.Headers {
		v, ok := hdrs.Get(h.Name)
		if !ok || !util.EqFold(h.Value, v) {
			return false
		}
	}
	return true
}

// IsValid checks whether the SIP URI is syntactically valid.
func (u *SIP) IsValid() bool {
	return u != nil && u.Addr.IsValid() && (u.User.IsZero() || u.User.IsValid())
}

// MarshalText implements [encoding.TextMarshaler].
func (u *SIP) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (u *SIP) UnmarshalText(text []byte) error {
	u1, err := ParseSIP(text)
	if err != nil {
		*u = SIP{}
		return errtrace.Wrap(err)
	}
	*u = *u1
	return nil
}

func (u *SIP) Transport() (TransportProto, bool) {
	tp, ok := u.Params.Get("transport")
	return TransportProto(tp), ok
}

func (u *SIP) UserType() (string, bool) {
	return u.Params.Get("user")
}

func (u *SIP) Method() (RequestMethod, bool) {
	mtd, ok := u.Params.Get("method")
	return RequestMethod(mtd), ok
}

func (u *SIP) MAddr() (string, bool) {
	return u.Params.Get("maddr")
}

// TTL returns the ttl parameter, values of any width are kept.
func (u *SIP) TTL() (types.Number, bool) {
	val, ok := u.Params.Get("ttl")
	if !ok {
		return types.Number{}, false
	}
	n, err := types.ParseNumber(val)
	return n, err == nil
}

func (u *SIP) LR() bool {
	return u.Params.Has("lr")
}

// ParseSIP parses a SIP or SIPS URI from the given input src (string or []byte).
func ParseSIP[T ~string | ~[]byte](src T) (*SIP, error) {
	rule := grammar.SIPURI
	if len(src) >= 4 && util.EqFold(string(src[:4]), "sips") {
		rule = grammar.SIPSURI
	}
	n, err := grammar.Parse(src, rule)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return buildFromSIPURINode(n), nil
}

func buildFromSIPURINode(node *grammar.Node) *SIP {
	u := &SIP{
		Addr:    types.AddrFromNode(grammar.MustGetNode(node, "hostport")),
		Secured: node.Key == "SIPS-URI",
	}
	if n, ok := grammar.Child(node, "userinfo"); ok {
		u.User = buildFromUserinfoNode(n)
	}
	if n, ok := grammar.Child(node, "uri-parameters"); ok {
		u.Params = buildFromEscapedParamNodes(n.Children, "pname", "pvalue")
	}
	if n, ok := grammar.Child(node, "headers"); ok {
		u.Headers = buildFromEscapedParamNodes(n.Children, "hname", "hvalue")
	}
	return u
}

func buildFromUserinfoNode(node *grammar.Node) UserInfo {
	usrname := grammar.Unescape(grammar.MustGetNode(node, "user").String())
	if passwdNode, ok := grammar.Child(node, "password"); ok {
		return UserPassword(usrname, grammar.Unescape(passwdNode.String()))
	}
	return User(usrname)
}

func buildFromEscapedParamNodes(nodes grammar.Nodes, nameKey, valKey string) Params {
	params := make(Params, 0, len(nodes))
	for _, n := range nodes {
		p := types.Param{Name: grammar.Unescape(grammar.MustGetNode(n, nameKey).String())}
		if vn, ok := grammar.Child(n, valKey); ok {
			p.Value, p.HasValue = grammar.Unescape(vn.String()), true
		}
		params = append(params, p)
	}
	return params
}

// UserInfo is a container for user credentials.
// It is typically used in [SIP] to store userinfo part.
type UserInfo struct {
	usrname, passwd string
	hasPasswd       bool
}

// User returns a [UserInfo] containing the provided username and no password.
func User(usrname string) UserInfo {
	return UserInfo{usrname: usrname}
}

// UserPassword returns a [UserInfo] containing the provided username and password.
func UserPassword(usrname, passwd string) UserInfo {
	return UserInfo{usrname: usrname, passwd: passwd, hasPasswd: true}
}

// Username returns the username from the UserInfo.
func (ui UserInfo) Username() string { return ui.usrname }

// Password returns the password, in case it is set, and a bool flag indicating whether it is set.
func (ui UserInfo) Password() (string, bool) { return ui.passwd, ui.hasPasswd }

// String returns the escaped form of the UserInfo.
func (ui UserInfo) String() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	sb.WriteString(grammar.Escape(ui.usrname, shouldEscapeUserChar))
	if ui.hasPasswd {
		sb.WriteString(":")
		sb.WriteString(grammar.Escape(ui.passwd, shouldEscapePasswdChar))
	}
	return sb.String()
}

// Equal compares this UserInfo with another for equality.
// User info is compared case-sensitively.
func (ui UserInfo) Equal(val any) bool {
	var other UserInfo
	switch v := val.(type) {
	case UserInfo:
		other = v
	case *UserInfo:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return ui.usrname == other.usrname && ui.passwd == other.passwd && ui.hasPasswd == other.hasPasswd
}

// IsValid checks whether the UserInfo is syntactically valid.
func (ui UserInfo) IsValid() bool { return ui.usrname != "" }

// IsZero checks whether the UserInfo is empty.
func (ui UserInfo) IsZero() bool { return ui.usrname == "" && ui.passwd == "" && !ui.hasPasswd }
