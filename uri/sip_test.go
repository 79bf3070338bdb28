package uri_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/sipcodec/internal/grammar"
	"github.com/ghettovoice/sipcodec/uri"
)

func TestSIP_Render(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		uri  *uri.SIP
		want string
	}{
		{"nil", (*uri.SIP)(nil), ""},
		{"zero", &uri.SIP{}, "sip:"},
		{"host and port", &uri.SIP{Addr: uri.HostPort("example.com", 5060)}, "sip:example.com:5060"},
		{"secured", &uri.SIP{Secured: true, Addr: uri.HostPort("example.com", 5060)}, "sips:example.com:5060"},
		{"ipv6", &uri.SIP{Addr: uri.HostPort("2001:db8::10", 5070)}, "sip:[2001:db8::10]:5070"},
		{
			"user with empty password",
			&uri.SIP{Addr: uri.Host("example.com"), User: uri.UserPassword("root", "")},
			"sip:root:@example.com",
		},
		{
			"user and password escaped",
			&uri.SIP{
				Addr: uri.Host("example.com"),
				User: uri.UserPassword("root@;field=123", "p@sswd;qwe"),
			},
			"sip:root%40;field=123:p%40sswd%3Bqwe@example.com",
		},
		{
			"params and headers in wire order",
			&uri.SIP{
				User:   uri.UserPassword("root", ""),
				Addr:   uri.Host("example.com"),
				Params: uri.Params{}.Add("transport", "UDP").AddFlag("lr"),
				Headers: uri.Params{}.
					Add("Subject", "Hello world!").
					Add("priority", "emergency").
					Add("x-hE@DER", ""),
			},
			"sip:root:@example.com;transport=UDP;lr?Subject=Hello%20world!&priority=emergency&x-hE%40DER=",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.uri.Render(nil); got != c.want {
				t.Errorf("uri.Render(nil) = %q, want %q", got, c.want)
			}
		})
	}
}

func TestSIP_RenderTo(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		uri     *uri.SIP
		wantRes string
	}{
		{"nil", (*uri.SIP)(nil), ""},
		{"zero", &uri.SIP{}, "sip:"},
		{
			"filled",
			&uri.SIP{Addr: uri.HostPort("example.com", 5060), Headers: uri.Params{}.Add("a", "b")},
			"sip:example.com:5060?a=b",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			var sb strings.Builder
			n, err := c.uri.RenderTo(&sb, nil)
			if err != nil {
				t.Fatalf("uri.RenderTo(sb, nil) error = %v, want nil", err)
			}
			if got := sb.String(); got != c.wantRes {
				t.Errorf("sb.String() = %q, want %q", got, c.wantRes)
			}
			if n != len(c.wantRes) {
				t.Errorf("uri.RenderTo(sb, nil) = %d, want %d", n, len(c.wantRes))
			}
		})
	}
}

func TestSIP_Equal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		uri  *uri.SIP
		val  any
		want bool
	}{
		{"nil ptr to nil", (*uri.SIP)(nil), nil, false},
		{"nil ptr to nil ptr", (*uri.SIP)(nil), (*uri.SIP)(nil), true},
		{"zero ptr to nil ptr", &uri.SIP{}, (*uri.SIP)(nil), false},
		{"zero ptr to zero val", &uri.SIP{}, uri.SIP{}, true},
		{
			"type mismatch",
			&uri.SIP{Addr: uri.HostPort("example.com", 5060)},
			"sip:example.com:5060",
			false,
		},
		{
			"secured to non-secured",
			&uri.SIP{Addr: uri.Host("example.com")},
			&uri.SIP{Secured: true, Addr: uri.Host("example.com")},
			false,
		},
		{
			"host case",
			&uri.SIP{Addr: uri.HostPort("example.com", 5060)},
			&uri.SIP{Addr: uri.HostPort("EXAMPLE.com", 5060)},
			true,
		},
		{
			"port differs",
			&uri.SIP{Addr: uri.HostPort("example.com", 5060)},
			&uri.SIP{Addr: uri.Host("example.com")},
			false,
		},
		{
			"user case",
			&uri.SIP{Addr: uri.Host("example.com"), User: uri.User("root")},
			&uri.SIP{Addr: uri.Host("example.com"), User: uri.User("ROOT")},
			false,
		},
		{
			"empty password differs from none",
			&uri.SIP{Addr: uri.Host("example.com"), User: uri.UserPassword("root", "")},
			&uri.SIP{Addr: uri.Host("example.com"), User: uri.User("root")},
			false,
		},
		{
			"param values case-insensitive",
			&uri.SIP{Addr: uri.Host("example.com"), Params: uri.Params{}.Add("transport", "tcp")},
			&uri.SIP{Addr: uri.Host("example.com"), Params: uri.Params{}.Add("TRANSPORT", "TCP")},
			true,
		},
		{
			"other params on one side ignored",
			&uri.SIP{Addr: uri.Host("example.com"), Params: uri.Params{}.Add("foo", "bar")},
			&uri.SIP{Addr: uri.Host("example.com"), Params: uri.Params{}.AddFlag("lr")},
			true,
		},
		{
			"common param differs",
			&uri.SIP{Addr: uri.Host("example.com"), Params: uri.Params{}.Add("foo", "bar")},
			&uri.SIP{Addr: uri.Host("example.com"), Params: uri.Params{}.Add("foo", "baz")},
			false,
		},
		{
			"special param on one side",
			&uri.SIP{Addr: uri.Host("example.com"), Params: uri.Params{}.Add("maddr", "10.0.0.1")},
			&uri.SIP{Addr: uri.Host("example.com")},
			false,
		},
		{
			"headers match",
			&uri.SIP{Addr: uri.Host("example.com"), Headers: uri.Params{}.Add("subject", "hi")},
			&uri.SIP{Addr: uri.Host("example.com"), Headers: uri.Params{}.Add("Subject", "HI")},
			true,
		},
		{
			"header on one side",
			&uri.SIP{Addr: uri.Host("example.com"), Headers: uri.Params{}.Add("subject", "hi")},
			&uri.SIP{Addr: uri.Host("example.com")},
			false,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.uri.Equal(c.val); got != c.want {
				t.Errorf("uri.Equal(%+v) = %v, want %v", c.val, got, c.want)
			}
		})
	}
}

func TestSIP_IsValid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		uri  *uri.SIP
		want bool
	}{
		{"nil", (*uri.SIP)(nil), false},
		{"zero", &uri.SIP{}, false},
		{"host", &uri.SIP{Addr: uri.Host("example.com")}, true},
		{"bad host", &uri.SIP{Addr: uri.Host("exa mple.com")}, false},
		{"empty user with password", &uri.SIP{Addr: uri.Host("example.com"), User: uri.UserPassword("", "x")}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.uri.IsValid(); got != c.want {
				t.Errorf("uri.IsValid() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestSIP_Clone(t *testing.T) {
	t.Parallel()

	u := &uri.SIP{
		User:    uri.User("alice"),
		Addr:    uri.Host("example.com"),
		Params:  uri.Params{}.Add("transport", "tcp"),
		Headers: uri.Params{}.Add("subject", "x"),
	}
	got := u.Clone().(*uri.SIP)
	if diff := cmp.Diff(got, u); diff != "" {
		t.Errorf("u.Clone() mismatch (-got +want):\n%v", diff)
	}
	got.Params[0].Value = "udp"
	if v, _ := u.Params.Get("transport"); v != "tcp" {
		t.Errorf("clone shares params with the source: transport = %q", v)
	}
	if (*uri.SIP)(nil).Clone() != nil {
		t.Error("nil.Clone() != nil")
	}
}

func TestSIP_Accessors(t *testing.T) {
	t.Parallel()

	u, err := uri.ParseSIP("sip:alice@example.com;transport=TCP;user=phone;method=INVITE;maddr=239.255.255.1;ttl=15;lr")
	if err != nil {
		t.Fatalf("uri.ParseSIP() error = %v, want nil", err)
	}
	if tp, ok := u.Transport(); !ok || tp != "TCP" {
		t.Errorf("u.Transport() = (%q, %v), want (\"TCP\", true)", tp, ok)
	}
	if v, ok := u.UserType(); !ok || v != "phone" {
		t.Errorf("u.UserType() = (%q, %v), want (\"phone\", true)", v, ok)
	}
	if m, ok := u.Method(); !ok || m != uri.RequestMethod("INVITE") {
		t.Errorf("u.Method() = (%q, %v), want (\"INVITE\", true)", m, ok)
	}
	if v, ok := u.MAddr(); !ok || v != "239.255.255.1" {
		t.Errorf("u.MAddr() = (%q, %v), want (\"239.255.255.1\", true)", v, ok)
	}
	if n, ok := u.TTL(); !ok || n.String() != "15" {
		t.Errorf("u.TTL() = (%v, %v), want (15, true)", n, ok)
	}
	if !u.LR() {
		t.Error("u.LR() = false, want true")
	}
}

func TestParseSIP(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		input   string
		want    *uri.SIP
		wantErr error
	}{
		{"empty", "", nil, grammar.ErrEmptyInput},
		{"not sip", "tel:+123", nil, grammar.ErrMalformedInput},
		{"sips", "SIPS:bob@biloxi.com", &uri.SIP{Secured: true, User: uri.User("bob"), Addr: uri.Host("biloxi.com")}, nil},
		{
			"escaped params",
			"sip:example.com;f%20oo=b%61r",
			&uri.SIP{Addr: uri.Host("example.com"), Params: uri.Params{}.Add("f oo", "bar")},
			nil,
		},
		{"bad host", "sip:example#.com", nil, grammar.ErrMalformedInput},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := uri.ParseSIP(c.input)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("uri.ParseSIP(%q) error = %v, want %v\ndiff (-got +want):\n%v", c.input, err, c.wantErr, diff)
			}
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("uri.ParseSIP(%q) mismatch (-got +want):\n%v", c.input, diff)
			}
		})
	}
}

func TestSIP_RoundTripText(t *testing.T) {
	t.Parallel()

	cases := []string{
		"sip:alice@atlanta.com",
		"sips:alice:secret@[2001:db8::10]:5061;transport=tls;lr",
		"sip:%21user@example.com;maddr=239.255.255.1?Subject=hi%20there&X=y",
		"sip:+1-212-555-1212:1234@gateway.com;user=phone",
	}

	for _, in := range cases {
		t.Run(in, func(t *testing.T) {
			t.Parallel()

			var u uri.SIP
			if err := u.UnmarshalText([]byte(in)); err != nil {
				t.Fatalf("u.UnmarshalText(%q) error = %v, want nil", in, err)
			}
			text, err := u.MarshalText()
			if err != nil {
				t.Fatalf("u.MarshalText() error = %v, want nil", err)
			}
			var u2 uri.SIP
			if err := u2.UnmarshalText(text); err != nil {
				t.Fatalf("u2.UnmarshalText(%q) error = %v, want nil", text, err)
			}
			if !u.Equal(&u2) {
				t.Errorf("round trip mismatch: %q != %q", u.String(), u2.String())
			}
		})
	}
}

func TestUserInfo(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		ui         uri.UserInfo
		wantString string
		wantValid  bool
		wantZero   bool
	}{
		{"zero", uri.UserInfo{}, "", false, true},
		{"user", uri.User("root"), "root", true, false},
		{"user with password", uri.UserPassword("root", "p@ss"), "root:p%40ss", true, false},
		{"empty password", uri.UserPassword("root", ""), "root:", true, false},
		{"password only", uri.UserPassword("", "x"), ":x", false, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.ui.String(); got != c.wantString {
				t.Errorf("ui.String() = %q, want %q", got, c.wantString)
			}
			if got := c.ui.IsValid(); got != c.wantValid {
				t.Errorf("ui.IsValid() = %v, want %v", got, c.wantValid)
			}
			if got := c.ui.IsZero(); got != c.wantZero {
				t.Errorf("ui.IsZero() = %v, want %v", got, c.wantZero)
			}
			if !c.ui.Equal(c.ui) {
				t.Error("ui.Equal(ui) = false, want true")
			}
		})
	}
}
