package sipcodec

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipcodec/internal/ioutil"
	"github.com/ghettovoice/sipcodec/internal/util"
)

// StatusLine is the start-line of a response: SIP-Version SP Status-Code SP Reason-Phrase.
// The reason phrase may be empty, the separating SP is always written.
type StatusLine struct {
	Proto  Version
	Status Number
	Reason string
}

// RenderTo writes the status line without the terminating CRLF.
func (sl *StatusLine) RenderTo(w io.Writer, _ *RenderOptions) (num int, err error) {
	if sl == nil {
		return 0, nil
	}
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Fprint(sl.Proto, " ", sl.Status, " ", sl.Reason)
	return errtrace.Wrap2(cw.Result())
}

// Render returns the status line.
func (sl *StatusLine) Render(opts *RenderOptions) string {
	if sl == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	sl.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

func (sl *StatusLine) String() string { return sl.Render(nil) }

// Equal reports whether the status line is equal to another value.
func (sl *StatusLine) Equal(val any) bool {
	var other *StatusLine
	switch v := val.(type) {
	case StatusLine:
		other = &v
	case *StatusLine:
		other = v
	default:
		return false
	}
	if sl == other {
		return true
	} else if sl == nil || other == nil {
		return false
	}
	return sl.Proto.Equal(other.Proto) && sl.Status.Equal(other.Status) && sl.Reason == other.Reason
}

// Response represents a SIP response message.
type Response struct {
	Proto   Version
	Status  Number
	Reason  string
	Headers Headers
	Body    []byte
}

func (res *Response) line() *StatusLine {
	return &StatusLine{Proto: res.Proto, Status: res.Status, Reason: res.Reason}
}

func (res *Response) MessageHeaders() Headers {
	if res == nil {
		return nil
	}
	return res.Headers
}

func (res *Response) MessageBody() []byte {
	if res == nil {
		return nil
	}
	return res.Body
}

// RenderTo renders the SIP response to the given writer.
func (res *Response) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if res == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderMessageTo(w, res.line(), res.Headers, res.Body, opts))
}

// Render renders the SIP response to a string.
func (res *Response) Render(opts *RenderOptions) string {
	if res == nil {
		return ""
	}
	return renderMessage(res, opts)
}

// String returns the status line.
func (res *Response) String() string {
	if res == nil {
		return "<nil>"
	}
	return res.line().String()
}

// Format implements [fmt.Formatter] for custom formatting.
func (res *Response) Format(f fmt.State, verb rune) {
	switch verb {
	case 's', 'q':
		formatMessage(f, verb, res)
	default:
		type hideMethods Response
		type Response hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Response)(res))
	}
}

// LogValue implements [slog.LogValuer] for structured logging.
func (res *Response) LogValue() slog.Value {
	if res == nil {
		return slog.Value{}
	}
	attrs := make([]slog.Attr, 0, 7)
	attrs = append(attrs, slog.String("status", res.Status.String()), slog.String("reason", res.Reason))
	return slog.GroupValue(append(attrs, dialogAttrs(res.Headers)...)...)
}

// Clone returns a deep copy of the response.
func (res *Response) Clone() Message {
	if res == nil {
		return nil
	}
	res2 := *res
	res2.Headers = res.Headers.Clone()
	res2.Body = slices.Clone(res.Body)
	return &res2
}

// Equal returns whether the response is equal to another value.
func (res *Response) Equal(val any) bool {
	var other *Response
	switch v := val.(type) {
	case Response:
		other = &v
	case *Response:
		other = v
	default:
		return false
	}
	if res == other {
		return true
	} else if res == nil || other == nil {
		return false
	}
	return res.line().Equal(other.line()) &&
		res.Headers.Equal(other.Headers) &&
		bytes.Equal(res.Body, other.Body)
}
