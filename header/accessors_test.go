package header_test

import (
	"net/netip"
	"testing"
	"time"

	"github.com/ghettovoice/sipcodec/header"
)

func TestNameAddr_Equal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		addr header.NameAddr
		val  any
		want bool
	}{
		{"zero to nil", header.NameAddr{}, nil, false},
		{"zero to zero", header.NameAddr{}, header.NameAddr{}, true},
		{"nil ptr", header.NameAddr{}, (*header.NameAddr)(nil), false},
		{
			"brackets ignored",
			header.NameAddr{URI: sipURI("alice", "example.com"), Bracketed: true},
			header.NameAddr{URI: sipURI("alice", "example.com")},
			true,
		},
		{
			"display name differs",
			header.NameAddr{DisplayName: "Alice", URI: sipURI("alice", "example.com")},
			header.NameAddr{DisplayName: "alice", URI: sipURI("alice", "example.com")},
			false,
		},
		{
			"tag on one side",
			header.NameAddr{URI: sipURI("alice", "example.com"), Params: params("tag", "1")},
			&header.NameAddr{URI: sipURI("alice", "example.com")},
			false,
		},
		{
			"extra param on one side",
			header.NameAddr{URI: sipURI("alice", "example.com"), Params: params("tag", "1", "foo", "bar")},
			&header.NameAddr{URI: sipURI("alice", "example.com"), Params: params("tag", "1")},
			true,
		},
		{
			"param case",
			header.NameAddr{URI: sipURI("alice", "example.com"), Params: params("foo", "BAR")},
			header.NameAddr{URI: sipURI("alice", "example.com"), Params: params("FOO", "bar")},
			true,
		},
		{
			"quoted param case",
			header.NameAddr{URI: sipURI("alice", "example.com"), Params: params("foo", `"BAR"`)},
			header.NameAddr{URI: sipURI("alice", "example.com"), Params: params("foo", `"bar"`)},
			false,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.addr.Equal(c.val); got != c.want {
				t.Errorf("addr.Equal(val) = %v, want %v", got, c.want)
			}
		})
	}
}

func TestNameAddr_Params(t *testing.T) {
	t.Parallel()

	hdr := mustParse(t, `Contact: "A" <sip:a@example.com>;expires=never;q=0.7, <sip:b@example.com>;expires=30`).(header.Contact)
	if len(hdr) != 2 {
		t.Fatalf("len(hdr) = %d, want 2", len(hdr))
	}

	if exp, ok := hdr[0].Expires(); !ok || !exp.Equal(header.Num(header.DefaultExpires)) {
		t.Errorf("hdr[0].Expires() = %v, %v, want %v, true", exp, ok, header.DefaultExpires)
	}
	if q, ok := hdr[0].Q(); !ok || q != 0.7 {
		t.Errorf("hdr[0].Q() = %v, %v, want 0.7, true", q, ok)
	}
	if exp, ok := hdr[1].Expires(); !ok || !exp.Equal(header.Num(30)) {
		t.Errorf("hdr[1].Expires() = %v, %v, want 30, true", exp, ok)
	}
	if _, ok := hdr[1].Q(); ok {
		t.Errorf("hdr[1].Q() ok = true, want false")
	}

	from := mustParse(t, `f: <sip:a@example.com>;tag="x y"`).(*header.From)
	if tag, ok := from.Tag(); !ok || tag != "x y" {
		t.Errorf("from.Tag() = %q, %v, want %q, true", tag, ok, "x y")
	}
}

func TestNameAddr_RoundTripText(t *testing.T) {
	t.Parallel()

	want := header.NameAddr{
		DisplayName: "Alice",
		URI:         sipURI("alice", "example.com"),
		Params:      params("tag", "abc"),
		Bracketed:   true,
	}
	text, err := want.MarshalText()
	if err != nil {
		t.Fatalf("addr.MarshalText() error = %v, want nil", err)
	}
	if got, exp := string(text), "Alice <sip:alice@example.com>;tag=abc"; got != exp {
		t.Errorf("addr.MarshalText() = %q, want %q", got, exp)
	}

	var got header.NameAddr
	if err := got.UnmarshalText(text); err != nil {
		t.Fatalf("got.UnmarshalText(text) error = %v, want nil", err)
	}
	if !got.Equal(want) {
		t.Errorf("got.UnmarshalText(text) = %+v, want %+v", got, want)
	}
}

func TestViaHop_Accessors(t *testing.T) {
	t.Parallel()

	hdr := mustParse(t, "Via: SIP/2.0/UDP [2001:db8::9:1]:5060;branch=z9hG4bKas;received=[2001:db8::9:255];rport=5061;ttl=16;maddr=224.2.0.1").(header.Via)
	hop := hdr[0]

	if b, ok := hop.Branch(); !ok || b != "z9hG4bKas" {
		t.Errorf("hop.Branch() = %q, %v, want %q, true", b, ok, "z9hG4bKas")
	}
	if ip, ok := hop.Received(); !ok || ip != netip.MustParseAddr("2001:db8::9:255") {
		t.Errorf("hop.Received() = %v, %v, want 2001:db8::9:255, true", ip, ok)
	}
	if p, ok := hop.RPort(); !ok || p != 5061 {
		t.Errorf("hop.RPort() = %d, %v, want 5061, true", p, ok)
	}
	if ttl, ok := hop.TTL(); !ok || !ttl.Equal(header.Num(16)) {
		t.Errorf("hop.TTL() = %v, %v, want 16, true", ttl, ok)
	}
	if m, ok := hop.MAddr(); !ok || m != "224.2.0.1" {
		t.Errorf("hop.MAddr() = %q, %v, want %q, true", m, ok, "224.2.0.1")
	}
	if port, ok := hop.Addr.Port(); !ok || !port.Equal(header.Num(5060)) {
		t.Errorf("hop.Addr.Port() = %v, %v, want 5060, true", port, ok)
	}
	if !hop.IsValid() {
		t.Errorf("hop.IsValid() = false, want true")
	}

	flag := mustParse(t, "Via: SIP/2.0/TCP example.com;rport").(header.Via)
	if p, ok := flag[0].RPort(); !ok || p != 0 {
		t.Errorf("flag[0].RPort() = %d, %v, want 0, true", p, ok)
	}
}

func TestCSeq_IsValid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		hdr  *header.CSeq
		want bool
	}{
		{"nil", nil, false},
		{"no method", &header.CSeq{SeqNum: header.Num(1)}, true},
		{"method", &header.CSeq{SeqNum: header.Num(1), Method: "INVITE"}, true},
		{"bad method", &header.CSeq{SeqNum: header.Num(1), Method: "IN VITE"}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.hdr.IsValid(); got != c.want {
				t.Errorf("hdr.IsValid() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestCSeq_Equal(t *testing.T) {
	t.Parallel()

	hdr := &header.CSeq{SeqNum: header.Num(1), Method: "INVITE"}
	if !hdr.Equal(header.CSeq{SeqNum: header.Num(1), Method: "INVITE"}) {
		t.Errorf("hdr.Equal(same value) = false, want true")
	}
	if hdr.Equal(&header.CSeq{SeqNum: header.Num(1), Method: "invite"}) {
		t.Errorf("hdr.Equal(lower case method) = true, want false")
	}
	if hdr.Equal((*header.CSeq)(nil)) {
		t.Errorf("hdr.Equal(nil) = true, want false")
	}
}

func TestDate(t *testing.T) {
	t.Parallel()

	hdr := mustParse(t, "Date: Thu, 21 Feb 2002 13:02:03 GMT").(*header.Date)
	got, ok := hdr.Time()
	if want := time.Date(2002, 2, 21, 13, 2, 3, 0, time.UTC); !ok || !got.Equal(want) {
		t.Errorf("hdr.Time() = %v, %v, want %v, true", got, ok, want)
	}
	if !hdr.IsValid() {
		t.Errorf("hdr.IsValid() = false, want true")
	}

	bad := mustParse(t, "Date: Thu, 31 Feb 2002 13:02:03 GMT").(*header.Date)
	if bad.IsValid() {
		t.Errorf("bad.IsValid() = true, want false")
	}
	if got, exp := bad.RenderValue(), "Thu, 31 Feb 2002 13:02:03 GMT"; got != exp {
		t.Errorf("bad.RenderValue() = %q, want %q", got, exp)
	}
}

func TestRetryAfter_Duration(t *testing.T) {
	t.Parallel()

	hdr := &header.RetryAfter{Delay: header.Num(120)}
	if d, ok := hdr.Duration(); !ok || d != 2*time.Minute {
		t.Errorf("hdr.Duration() = %v, %v, want 2m0s, true", d, ok)
	}

	huge := mustParse(t, "Retry-After: 99999999999999999999").(*header.RetryAfter)
	if _, ok := huge.Duration(); ok {
		t.Errorf("huge.Duration() ok = true, want false")
	}
}

func TestAuth_Param(t *testing.T) {
	t.Parallel()

	hdr := mustParse(t, `Authorization: Digest username="bob", realm="biloxi.com", algorithm=MD5`).(header.Authorization)
	if v, ok := hdr[0].Param("realm"); !ok || v != "biloxi.com" {
		t.Errorf("hdr[0].Param(realm) = %q, %v, want %q, true", v, ok, "biloxi.com")
	}
	if v, ok := hdr[0].Param("ALGORITHM"); !ok || v != "MD5" {
		t.Errorf("hdr[0].Param(ALGORITHM) = %q, %v, want %q, true", v, ok, "MD5")
	}
	if !hdr.IsValid() {
		t.Errorf("hdr.IsValid() = false, want true")
	}

	cln := header.Challenge{Scheme: "Digest", Params: params("realm", `"a.com"`)}
	if !cln.Equal(header.Challenge{Scheme: "digest", Params: params("REALM", `"a.com"`)}) {
		t.Errorf("cln.Equal(case variant) = false, want true")
	}
	if cln.Equal(header.Challenge{Scheme: "Digest", Params: params("realm", `"A.com"`)}) {
		t.Errorf("cln.Equal(quoted case variant) = true, want false")
	}

	info := mustParse(t, `Authentication-Info: qop=auth, nextnonce="abc"`).(*header.AuthenticationInfo)
	if v, ok := info.Param("nextnonce"); !ok || v != "abc" {
		t.Errorf("info.Param(nextnonce) = %q, %v, want %q, true", v, ok, "abc")
	}
	if got, exp := info.RenderValue(), `qop=auth, nextnonce="abc"`; got != exp {
		t.Errorf("info.RenderValue() = %q, want %q", got, exp)
	}
}

func TestWarningEntry_IsValid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		wrn  header.WarningEntry
		want bool
	}{
		{"zero", header.WarningEntry{}, false},
		{"host agent", header.WarningEntry{Code: header.Num(399), Agent: "example.com:5060", Text: "x"}, true},
		{"pseudonym agent", header.WarningEntry{Code: header.Num(399), Agent: "-", Text: ""}, true},
		{"code too long", header.WarningEntry{Code: header.Num(3999), Agent: "example.com"}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.wrn.IsValid(); got != c.want {
				t.Errorf("wrn.IsValid() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestAny_Clone(t *testing.T) {
	t.Parallel()

	hdr := &header.Any{Name: "X-Foo", Values: []string{"a"}}
	clone := hdr.Clone().(*header.Any)
	clone.Values[0] = "b"
	if hdr.Values[0] != "a" {
		t.Errorf("hdr.Values[0] = %q after clone modification, want %q", hdr.Values[0], "a")
	}
	if !header.IsExtension(hdr) || header.IsExtension(header.CallID("x")) {
		t.Errorf("header.IsExtension() gives wrong results")
	}
}
