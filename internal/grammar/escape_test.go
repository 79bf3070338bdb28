package grammar_test

import (
	"bytes"
	"testing"

	"github.com/ghettovoice/sipcodec/internal/grammar"
)

func TestEscape(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		str  string
		cb   func(byte) bool
		want string
	}{
		{"empty", "", nil, ""},
		{"unreserved", "abc-qwe!~*", nil, "abc-qwe!~*"},
		{"percent", "a%2B", nil, "a%252B"},
		{"escape all", "abc++qwe!", nil, "abc%2B%2Bqwe!"},
		{"user", "alice;x=1 b", func(c byte) bool { return !grammar.IsURIUserCharUnreserved(c) && !grammar.IsCharUnreserved(c) }, "alice;x=1%20b"},
		{"param", "a b[]", func(c byte) bool { return !grammar.IsURIParamCharUnreserved(c) }, "a%20b[]"},
		{"header", "a=b?c", func(c byte) bool { return !grammar.IsURIHeaderCharUnreserved(c) }, "a%3Db?c"},
		{"nul", "a\x00b", nil, "a%00b"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got, want := grammar.Escape(c.str, c.cb), c.want; got != want {
				t.Errorf("grammar.Escape(%q, %p) = %q, want %q", c.str, c.cb, got, want)
			}
		})
	}
}

func TestUnescape(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		str  string
		want string
	}{
		{"empty", "", ""},
		{"no unescape", "abc%ax%", "abc%ax%"},
		{"unescape all", "abc%E4%b8%96", "abc\xe4\xb8\x96"},
		{"nul", "a%00b", "a\x00b"},
		{"truncated", "abc%4", "abc%4"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got, want := grammar.Unescape(c.str), c.want; got != want {
				t.Errorf("grammar.Unescape(%q) = %q, want %q", c.str, got, want)
			}
		})
	}
}

func BenchmarkEscape(b *testing.B) {
	cases := []struct {
		name    string
		in, out any
	}{
		{"string", "abc++qwe!", "abc%2B%2Bqwe!"},
		{"bytes", []byte("abc++qwe!"), []byte("abc%2B%2Bqwe!")},
	}

	b.ResetTimer()
	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			b.ResetTimer()
			for b.Loop() {
				switch in := c.in.(type) {
				case string:
					want, _ := c.out.(string)
					if got := grammar.Escape(in, nil); got != want {
						b.Errorf("grammar.Escape(%q, nil) = %q, want %q", in, got, want)
					}
				case []byte:
					want, _ := c.out.([]byte)
					if got := grammar.Escape(in, nil); !bytes.Equal(got, want) {
						b.Errorf("grammar.Escape(%q, nil) = %q, want %q", in, got, want)
					}
				}
			}
		})
	}
}
