package types_test

import (
	"errors"
	"net"
	"testing"

	"github.com/ghettovoice/sipcodec/internal/grammar"
	"github.com/ghettovoice/sipcodec/internal/types"
	"github.com/ghettovoice/sipcodec/internal/util"
)

func TestHost(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		host string
		want string
	}{
		{"empty", "", ""},
		{"domain", "ExAmplE.COM", "ExAmplE.COM"},
		{"IPv4", "192.168.0.1", "192.168.0.1"},
		{"IPv6", "2001:db8::9:1", "2001:db8::9:1"},
		{"IPv6 reference", "[2001:db8::9:1]", "2001:db8::9:1"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			addr := types.Host(c.host)
			if got := addr.Host(); got != c.want {
				t.Errorf("addr.Host() = %q, want %q", got, c.want)
			}
			if want := net.ParseIP(c.want); want != nil {
				if got := addr.IP(); !got.Equal(want) {
					t.Errorf("addr.IP() = %v, want %v", got, want)
				}
			}
			if got, ok := addr.Port(); ok {
				t.Errorf("addr.Port() = (%v, %v), want (0, false)", got, ok)
			}
		})
	}
}

func TestParseAddr(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		in       string
		wantHost string
		wantPort string
		wantErr  error
	}{
		{"empty", "", "", "", grammar.ErrEmptyInput},
		{"domain", "example.com", "example.com", "", nil},
		{"domain with port", "example.com:5060", "example.com", "5060", nil},
		{"IPv6 with port", "[2001:db8::1]:5061", "2001:db8::1", "5061", nil},
		{"wide port", "example.com:0000005060", "example.com", "5060", nil},
		{"garbage", "example.com:50x", "", "", grammar.ErrMalformedInput},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			addr, err := types.ParseAddr(c.in)
			if c.wantErr != nil {
				if !errors.Is(err, c.wantErr) {
					t.Fatalf("types.ParseAddr(%q) error = %v, want %v", c.in, err, c.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("types.ParseAddr(%q) error = %v, want nil", c.in, err)
			}
			if got := addr.Host(); got != c.wantHost {
				t.Errorf("types.ParseAddr(%q).Host() = %q, want %q", c.in, got, c.wantHost)
			}
			port, ok := addr.Port()
			if c.wantPort == "" {
				if ok {
					t.Errorf("types.ParseAddr(%q).Port() = (%v, true), want (0, false)", c.in, port)
				}
				return
			}
			if got := port.Digits(); !ok || got != c.wantPort {
				t.Errorf("types.ParseAddr(%q).Port() = (%q, %v), want (%q, true)", c.in, got, ok, c.wantPort)
			}
		})
	}
}

func TestAddr_String(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		addr types.Addr
		want string
	}{
		{"zero", types.Addr{}, ""},
		{"domain", types.Host("example.com"), "example.com"},
		{"domain with port", types.HostPort("example.com", 5060), "example.com:5060"},
		{"IPv6", types.Host("2001:db8::1"), "[2001:db8::1]"},
		{"IPv6 with port", types.HostPort("2001:db8::1", 5060), "[2001:db8::1]:5060"},
		{"wide port", types.HostNumPort("example.com", types.MustParseNumber("99999")), "example.com:99999"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.addr.String(); got != c.want {
				t.Errorf("addr.String() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestAddr_Equal(t *testing.T) {
	t.Parallel()

	addr := types.HostPort("Example.COM", 5060)
	cases := []struct {
		name string
		val  any
		want bool
	}{
		{"nil", nil, false},
		{"other type", "example.com:5060", false},
		{"nil ptr", (*types.Addr)(nil), false},
		{"case", types.HostPort("example.com", 5060), true},
		{"ptr", util.Ptr(types.HostPort("example.com", 5060)), true},
		{"no port", types.Host("example.com"), false},
		{"other port", types.HostPort("example.com", 5061), false},
		{"other host", types.HostPort("example.org", 5060), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := addr.Equal(c.val); got != c.want {
				t.Errorf("addr.Equal(%v) = %v, want %v", c.val, got, c.want)
			}
		})
	}

	if !types.Host("::1").Equal(types.Host("0:0:0:0:0:0:0:1")) {
		t.Error("IPv6 literals must compare by value")
	}
}

func TestAddr_IsValid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		addr types.Addr
		want bool
	}{
		{types.Addr{}, false},
		{types.Host("example.com"), true},
		{types.Host("192.0.2.1"), true},
		{types.Host("2001:db8::1"), true},
		{types.Host("exa mple"), false},
	}

	for _, c := range cases {
		t.Run(c.addr.String(), func(t *testing.T) {
			t.Parallel()

			if got := c.addr.IsValid(); got != c.want {
				t.Errorf("addr.IsValid() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestAddr_RoundTripText(t *testing.T) {
	t.Parallel()

	want := types.HostPort("2001:db8::1", 5060)
	text, err := want.MarshalText()
	if err != nil {
		t.Fatalf("addr.MarshalText() error = %v, want nil", err)
	}

	var got types.Addr
	if err := got.UnmarshalText(text); err != nil {
		t.Fatalf("addr.UnmarshalText(%q) error = %v, want nil", text, err)
	}
	if !got.Equal(want) {
		t.Errorf("addr.UnmarshalText(%q) = %v, want %v", text, got, want)
	}

	var empty types.Addr
	if err := empty.UnmarshalText(nil); err != nil {
		t.Errorf("addr.UnmarshalText(nil) error = %v, want nil", err)
	}
}
