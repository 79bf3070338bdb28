package sipcodec_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/sipcodec"
)

func TestFoldLWS(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name, input, want string
	}{
		{"empty", "", ""},
		{"no folding", "A: b\r\nC: d\r\n\r\nbody", "A: b\r\nC: d\r\n\r\nbody"},
		{"single fold", "Subject: a\r\n b\r\n\r\n", "Subject: a b\r\n\r\n"},
		{"fold with tabs", "Subject: a \t\r\n\t\t b\r\n\r\n", "Subject: a b\r\n\r\n"},
		{"repeated folds", "Subject:  \r\n \r\n ...finally\r\n\r\n", "Subject:  ...finally\r\n\r\n"},
		{"no boundary", "Via: SIP/2.0/UDP h1,\r\n SIP/2.0/UDP h2", "Via: SIP/2.0/UDP h1, SIP/2.0/UDP h2"},
		{"trailing whitespace kept", "A: b  \r\nC: d\r\n\r\n", "A: b  \r\nC: d\r\n\r\n"},
		{"bare CR kept", "A: b\r c\r\n\r\n", "A: b\r c\r\n\r\n"},
		{
			"body untouched",
			"A: b\r\n c\r\n\r\nline1\r\n continued\r\n\r\n more",
			"A: b c\r\n\r\nline1\r\n continued\r\n\r\n more",
		},
		{
			"first boundary wins",
			"Content-Type: multipart/mixed;\r\n boundary=x\r\n\r\n--x\r\n\r\n folded?\r\n--x--",
			"Content-Type: multipart/mixed; boundary=x\r\n\r\n--x\r\n\r\n folded?\r\n--x--",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got := sipcodec.FoldLWS(c.input)
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("FoldLWS(%q) = %q, want %q\ndiff (-want +got):\n%v", c.input, got, c.want, diff)
			}
			if again := sipcodec.FoldLWS(got); again != got {
				t.Errorf("FoldLWS is not idempotent: %q then %q", got, again)
			}
			if gotBytes := sipcodec.FoldLWS([]byte(c.input)); string(gotBytes) != c.want {
				t.Errorf("FoldLWS([]byte(%q)) = %q, want %q", c.input, gotBytes, c.want)
			}
		})
	}
}
