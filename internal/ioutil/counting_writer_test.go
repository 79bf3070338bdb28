package ioutil_test

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipcodec/internal/ioutil"
)

type errorWriter struct {
	failAfter int
	written   int
}

func (ew *errorWriter) Write(p []byte) (n int, err error) {
	if ew.written >= ew.failAfter {
		return 0, errtrace.Wrap(errors.New("write failed"))
	}
	n = len(p)
	if ew.written+n > ew.failAfter {
		n = ew.failAfter - ew.written
	}
	ew.written += n
	if n < len(p) {
		return n, errtrace.Wrap(errors.New("write failed"))
	}
	return n, nil
}

func TestCountingWriter(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		write   func(cw *ioutil.CountingWriter)
		wantStr string
		wantNum int
	}{
		{"write", func(cw *ioutil.CountingWriter) { cw.Write([]byte("hello")) }, "hello", 5},
		{"write string", func(cw *ioutil.CountingWriter) { cw.WriteString("test") }, "test", 4},
		{"fprint", func(cw *ioutil.CountingWriter) { cw.Fprint("hello", " ", "world") }, "hello world", 11},
		{"fprintf", func(cw *ioutil.CountingWriter) { cw.Fprintf("number: %d", 42) }, "number: 42", 10},
		{
			"call chain",
			func(cw *ioutil.CountingWriter) {
				cw.Call(func(w io.Writer) (int, error) { return errtrace.Wrap2(fmt.Fprint(w, "a")) }).
					Call(func(w io.Writer) (int, error) { return errtrace.Wrap2(fmt.Fprint(w, "b")) })
			},
			"ab",
			2,
		},
		{
			"join",
			func(cw *ioutil.CountingWriter) {
				items := []string{"a", "b", "c"}
				cw.Join(len(items), ", ", func(w io.Writer, i int) (int, error) {
					return errtrace.Wrap2(io.WriteString(w, items[i]))
				})
			},
			"a, b, c",
			7,
		},
		{
			"join empty",
			func(cw *ioutil.CountingWriter) {
				cw.Join(0, ", ", func(io.Writer, int) (int, error) { return 0, nil })
			},
			"",
			0,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			var sb strings.Builder
			cw := ioutil.NewCountingWriter(&sb)
			c.write(cw)
			num, err := cw.Result()
			if err != nil {
				t.Fatalf("cw.Result() error = %v, want nil", err)
			}
			if num != c.wantNum {
				t.Errorf("cw.Result() num = %d, want %d", num, c.wantNum)
			}
			if got := sb.String(); got != c.wantStr {
				t.Errorf("sb.String() = %q, want %q", got, c.wantStr)
			}
		})
	}
}

func TestCountingWriter_ErrorPropagation(t *testing.T) {
	t.Parallel()

	cw := ioutil.NewCountingWriter(&errorWriter{failAfter: 5})

	if n, err := cw.Write([]byte("hello")); err != nil || n != 5 {
		t.Fatalf("cw.Write(hello) = (%d, %v), want (5, nil)", n, err)
	}
	if n, err := cw.Write([]byte(" world")); err == nil || n != 0 {
		t.Fatalf("cw.Write(world) = (%d, %v), want (0, error)", n, err)
	}
	if n, err := cw.WriteString("test"); err == nil || n != 0 {
		t.Fatalf("cw.WriteString(test) = (%d, %v), want (0, cached error)", n, err)
	}
	if got := cw.Count(); got != 5 {
		t.Errorf("cw.Count() = %d, want 5", got)
	}
}

func TestCountingWriter_CallErrorStopsChain(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	cw := ioutil.GetCountingWriter(&sb)
	defer ioutil.FreeCountingWriter(cw)

	cw.Call(func(w io.Writer) (int, error) { return errtrace.Wrap2(fmt.Fprint(w, "a")) }).
		Call(func(io.Writer) (int, error) { return 0, errtrace.Wrap(errors.New("render error")) }).
		Call(func(w io.Writer) (int, error) { return errtrace.Wrap2(fmt.Fprint(w, "b")) })

	num, err := cw.Result()
	if err == nil {
		t.Fatal("cw.Result() error = nil, want error")
	}
	if num != 1 {
		t.Errorf("cw.Result() num = %d, want 1", num)
	}
	if got := sb.String(); got != "a" {
		t.Errorf("sb.String() = %q, want %q", got, "a")
	}
}
