package grammar_test

import (
	"testing"

	"github.com/ghettovoice/sipcodec/internal/grammar"
)

func TestQuote(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		str  string
		want string
	}{
		{"empty", "", `""`},
		{"no quote", "abc", `"abc"`},
		{"with quote", `"ab"c"`, `"\"ab\"c\""`},
		{"with backslash quote", `ab\"c`, `"ab\\\"c"`},
		{"with nul", "a\x00b", "\"a\\\x00b\""},
		{"with crlf", "a\r\nb", `"ab"`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got, want := grammar.Quote(c.str), c.want; got != want {
				t.Errorf("grammar.Quote(%q) = %q, want %q", c.str, got, want)
			}
		})
	}
}

func TestUnquote(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		str  string
		want string
	}{
		{"empty", "", ""},
		{"empty quote", `""`, ""},
		{"no quote", "abc", "abc"},
		{"with quote", `"abc"`, "abc"},
		{"with backslash quote", `"\"ab\"c\\\""`, `"ab"c\"`},
		{"with nul", "\"a\\\x00b\"", "a\x00b"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got, want := grammar.Unquote(c.str), c.want; got != want {
				t.Errorf("grammar.Unquote(%q) = %q, want %q", c.str, got, want)
			}
		})
	}
}

func TestIsHost(t *testing.T) {
	t.Parallel()

	cases := []struct {
		str  string
		want bool
	}{
		{"", false},
		{"example.com", true},
		{"example.com.", true},
		{"a-b.example.com", true},
		{"-ab.example.com", false},
		{"example.123", false},
		{"192.0.2.1", true},
		{"192.0.2.256", false},
		{"192.0.2", false},
		{"[2001:db8::10]", true},
		{"[2001:db8::10", false},
		{"[example.com]", false},
		{"2001:db8::10", false},
	}

	for _, c := range cases {
		t.Run(c.str, func(t *testing.T) {
			t.Parallel()

			if got, want := grammar.IsHost(c.str), c.want; got != want {
				t.Errorf("grammar.IsHost(%q) = %v, want %v", c.str, got, want)
			}
		})
	}
}

func TestIsToken(t *testing.T) {
	t.Parallel()

	cases := []struct {
		str  string
		want bool
	}{
		{"", false},
		{"abc", true},
		{"a.b-c!%*_+`'~", true},
		{"a b", false},
		{"a:b", false},
		{"a/b", false},
	}

	for _, c := range cases {
		t.Run(c.str, func(t *testing.T) {
			t.Parallel()

			if got, want := grammar.IsToken(c.str), c.want; got != want {
				t.Errorf("grammar.IsToken(%q) = %v, want %v", c.str, got, want)
			}
		})
	}
}

func TestIsQuoted(t *testing.T) {
	t.Parallel()

	cases := []struct {
		str  string
		want bool
	}{
		{"", false},
		{`""`, true},
		{`"abc def"`, true},
		{`"ab\"c"`, true},
		{`"abc`, false},
		{`"a"b`, false},
		{`abc`, false},
	}

	for _, c := range cases {
		t.Run(c.str, func(t *testing.T) {
			t.Parallel()

			if got, want := grammar.IsQuoted(c.str), c.want; got != want {
				t.Errorf("grammar.IsQuoted(%q) = %v, want %v", c.str, got, want)
			}
		})
	}
}

func TestCanonicName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		want   string
		wantOk bool
	}{
		{"via", "Via", true},
		{"v", "Via", true},
		{"CALL-ID", "Call-ID", true},
		{"i", "Call-ID", true},
		{"cseq", "CSeq", true},
		{"www-authenticate", "WWW-Authenticate", true},
		{"X-Custom", "", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, ok := grammar.CanonicName(c.name)
			if got != c.want || ok != c.wantOk {
				t.Errorf("grammar.CanonicName(%q) = (%q, %v), want (%q, %v)", c.name, got, ok, c.want, c.wantOk)
			}
		})
	}
}

func TestIsTelNum(t *testing.T) {
	t.Parallel()

	cases := []struct {
		str  string
		want bool
	}{
		{"", false},
		{"abc", true},
		{"abc-11", true},
		{"abc-zz", false},
		{"123", true},
		{"123-0f-#*", true},
		{"123-0f-#*!", false},
		{"(123)33-55", true},
		{"(123) 33 55", false},
		{"+55(123)33-55", true},
		{"+55(abc)33-55", false},
		{"+", false},
	}

	for _, c := range cases {
		t.Run(c.str, func(t *testing.T) {
			t.Parallel()

			if got, want := grammar.IsTelNum(c.str), c.want; got != want {
				t.Errorf("grammar.IsTelNum(%q) = %v, want %v", c.str, got, want)
			}
		})
	}
}

func TestIsGlobTelNum(t *testing.T) {
	t.Parallel()

	cases := []struct {
		str  string
		want bool
	}{
		{"", false},
		{"123-44-55", false},
		{"+123-44-55", true},
		{"+1(123)-44-55", true},
	}

	for _, c := range cases {
		t.Run(c.str, func(t *testing.T) {
			t.Parallel()

			if got, want := grammar.IsGlobTelNum(c.str), c.want; got != want {
				t.Errorf("grammar.IsGlobTelNum(%q) = %v, want %v", c.str, got, want)
			}
		})
	}
}

func TestCleanTelNum(t *testing.T) {
	t.Parallel()

	if got, want := grammar.CleanTelNum("+1 (201) 555-01.23"), "+12015550123"; got != want {
		t.Errorf("grammar.CleanTelNum() = %q, want %q", got, want)
	}
	if got, want := grammar.CleanTelNum([]byte("12-34")), []byte("1234"); string(got) != string(want) {
		t.Errorf("grammar.CleanTelNum() = %q, want %q", got, want)
	}
}

func TestIsTelURIParamName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		str  string
		want bool
	}{
		{"", false},
		{"ext", true},
		{"phone-context", true},
		{"x_y", false},
		{"a=b", false},
	}

	for _, c := range cases {
		t.Run(c.str, func(t *testing.T) {
			t.Parallel()

			if got, want := grammar.IsTelURIParamName(c.str), c.want; got != want {
				t.Errorf("grammar.IsTelURIParamName(%q) = %v, want %v", c.str, got, want)
			}
		})
	}
}
