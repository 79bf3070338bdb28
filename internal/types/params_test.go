package types_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/sipcodec/internal/types"
)

func TestParams(t *testing.T) {
	t.Parallel()

	ps := types.Params{}.Add("transport", "tcp").AddFlag("lr").Add("Transport", "udp")

	if got, want := ps.String(), ";transport=tcp;lr;Transport=udp"; got != want {
		t.Errorf("ps.String() = %q, want %q", got, want)
	}
	if v, ok := ps.Get("TRANSPORT"); !ok || v != "tcp" {
		t.Errorf("ps.Get(\"TRANSPORT\") = (%q, %v), want (\"tcp\", true)", v, ok)
	}
	if v, ok := ps.Get("lr"); !ok || v != "" {
		t.Errorf("ps.Get(\"lr\") = (%q, %v), want (\"\", true)", v, ok)
	}
	if _, ok := ps.Get("maddr"); ok {
		t.Error("ps.Get(\"maddr\") ok = true, want false")
	}

	ps2 := ps.Clone().Set("lr", "on").Del("transport")
	want := types.Params{{Name: "lr", Value: "on", HasValue: true}}
	if diff := cmp.Diff(ps2, want); diff != "" {
		t.Errorf("ps.Set().Del() mismatch (-got +want):\n%s", diff)
	}
	if got, want := ps.String(), ";transport=tcp;lr;Transport=udp"; got != want {
		t.Errorf("clone has changed the source: ps.String() = %q, want %q", got, want)
	}
}

func TestParams_Equal(t *testing.T) {
	t.Parallel()

	ps := types.Params{}.Add("tag", "abc").AddFlag("lr")
	cases := []struct {
		name string
		val  any
		want bool
	}{
		{"nil", nil, false},
		{"same", types.Params{}.Add("TAG", "abc").AddFlag("lr"), true},
		{"value case", types.Params{}.Add("tag", "ABC").AddFlag("lr"), false},
		{"order", types.Params{}.AddFlag("lr").Add("tag", "abc"), false},
		{"flag vs empty value", types.Params{}.Add("tag", "abc").Add("lr", ""), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := ps.Equal(c.val); got != c.want {
				t.Errorf("ps.Equal(%v) = %v, want %v", c.val, got, c.want)
			}
		})
	}
}

func TestParams_RenderEscapedTo(t *testing.T) {
	t.Parallel()

	ps := types.Params{}.Add("a b", "c").AddFlag("d")
	var sb strings.Builder
	if _, err := ps.RenderEscapedTo(&sb, "&", func(s string) string { return "<" + s + ">" }); err != nil {
		t.Fatalf("ps.RenderEscapedTo() error = %v, want nil", err)
	}
	if got, want := sb.String(), "&<a b>=<c>&<d>"; got != want {
		t.Errorf("ps.RenderEscapedTo() = %q, want %q", got, want)
	}
}
