// Package log provides the slog loggers and value helpers of the codec.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"braces.dev/errtrace"
	"github.com/golang-cz/devslog"
	"github.com/phsym/console-slog"
	slogformatter "github.com/samber/slog-formatter"
	slogmulti "github.com/samber/slog-multi"

	"github.com/ghettovoice/sipcodec/header"
	"github.com/ghettovoice/sipcodec/internal/constraints"
	"github.com/ghettovoice/sipcodec/internal/grammar"
	"github.com/ghettovoice/sipcodec/uri"
)

var formatters = slogformatter.NewFormatterMiddleware(
	slogformatter.ErrorFormatter("error"),
	slogformatter.FormatByType(func(h header.Header) slog.Value {
		return slog.GroupValue(
			slog.String("name", string(h.CanonicName())),
			slog.String("value", h.RenderValue()),
			slog.Bool("extension", header.IsExtension(h)),
		)
	}),
	slogformatter.FormatByType(func(u uri.URI) slog.Value {
		return slog.GroupValue(
			slog.String("type", fmt.Sprintf("%T", u)),
			slog.String("value", u.Render(nil)),
		)
	}),
	slogformatter.FormatByType(func(e *grammar.SyntaxError) slog.Value {
		return slog.GroupValue(
			slog.Int("line", e.Line),
			slog.Int("column", e.Column),
			slog.Int("offset", e.Offset),
			slog.Any("expected", e.Expected),
		)
	}),
)

// untraced replaces errors wrapped by errtrace with the errors they wrap.
// A traced error resolves to a plain string before any formatter sees it.
var untraced = slogmulti.NewInlineMiddleware(
	func(ctx context.Context, lvl slog.Level, next func(context.Context, slog.Level) bool) bool {
		return next(ctx, lvl)
	},
	func(ctx context.Context, r slog.Record, next func(context.Context, slog.Record) error) error {
		r2 := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
		r.Attrs(func(a slog.Attr) bool {
			r2.AddAttrs(untraceAttr(a))
			return true
		})
		return next(ctx, r2)
	},
	func(attrs []slog.Attr, next func([]slog.Attr) slog.Handler) slog.Handler {
		out := make([]slog.Attr, len(attrs))
		for i, a := range attrs {
			out[i] = untraceAttr(a)
		}
		return next(out)
	},
	func(name string, next func(string) slog.Handler) slog.Handler { return next(name) },
)

func untraceAttr(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindAny:
		if err, ok := a.Value.Any().(error); ok {
			a.Value = slog.AnyValue(untrace(err))
		}
	case slog.KindGroup:
		grp := a.Value.Group()
		out := make([]slog.Attr, len(grp))
		for i, ga := range grp {
			out[i] = untraceAttr(ga)
		}
		a.Value = slog.GroupValue(out...)
	}
	return a
}

func untrace(err error) error {
	for {
		_, inner, ok := errtrace.UnwrapFrame(err)
		if !ok {
			return err
		}
		err = inner
	}
}

// NewHandler wraps h with the codec value formatters.
func NewHandler(h slog.Handler) slog.Handler {
	return slogmulti.Pipe(untraced, formatters).Handler(h)
}

// Console returns a logger writing colored single-line records to w.
func Console(w io.Writer, lvl slog.Leveler) *slog.Logger {
	return slog.New(NewHandler(
		console.NewHandler(w, &console.HandlerOptions{
			AddSource:  true,
			Level:      lvl,
			TimeFormat: time.RFC3339Nano,
		}),
	))
}

// Dev returns a logger writing multi-line records with sorted keys to w,
// handy to inspect parse trees while debugging.
func Dev(w io.Writer, lvl slog.Leveler) *slog.Logger {
	return slog.New(NewHandler(
		devslog.NewHandler(w, &devslog.Options{
			HandlerOptions: &slog.HandlerOptions{
				AddSource: true,
				Level:     lvl,
			},
			SortKeys:   true,
			TimeFormat: time.RFC3339Nano,
		}),
	))
}

type noopHandler struct{}

func (noopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (noopHandler) Handle(context.Context, slog.Record) error { return nil }

func (h noopHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h noopHandler) WithGroup(string) slog.Handler { return h }

// Noop is a noop logger.
var Noop = slog.New(noopHandler{})

type calcValue struct{ fn func() any }

func (v calcValue) LogValue() slog.Value {
	cv := v.fn()
	switch cv := cv.(type) {
	case slog.Value:
		return cv
	default:
		return slog.AnyValue(cv)
	}
}

// CalcValue returns a value logger that computes a value using a fn.
// The fn is only called when the record is actually handled.
func CalcValue(fn func() any) slog.LogValuer { return calcValue{fn} }

type stringValue[T constraints.Byteseq] struct {
	v   T
	max int
}

func (v stringValue[T]) LogValue() slog.Value {
	s := string(v.v)
	if v.max > 0 && len(s) > v.max {
		s = s[:v.max] + "..."
	}
	return slog.StringValue(s)
}

// ShortStringValue returns a value logger that formats v as string cut to max bytes.
// The conversion happens only when the record is handled.
func ShortStringValue[T constraints.Byteseq](v T, max int) slog.LogValuer {
	return stringValue[T]{v: v, max: max}
}
