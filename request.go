package sipcodec

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipcodec/internal/ioutil"
	"github.com/ghettovoice/sipcodec/internal/types"
	"github.com/ghettovoice/sipcodec/internal/util"
)

// RequestLine is the start-line of a request: Method SP Request-URI SP SIP-Version.
type RequestLine struct {
	Method RequestMethod
	URI    URI
	Proto  Version
}

// RenderTo writes the request line without the terminating CRLF.
func (rl *RequestLine) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if rl == nil {
		return 0, nil
	}
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Fprint(rl.Method, " ")
	if rl.URI != nil {
		cw.Call(func(w io.Writer) (int, error) {
			return errtrace.Wrap2(rl.URI.RenderTo(w, opts))
		})
	}
	cw.Fprint(" ", rl.Proto)
	return errtrace.Wrap2(cw.Result())
}

// Render returns the request line.
func (rl *RequestLine) Render(opts *RenderOptions) string {
	if rl == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	rl.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

func (rl *RequestLine) String() string { return rl.Render(nil) }

// Equal reports whether the request line is equal to another value.
// Methods are compared case-sensitively, URIs by RFC 3261 comparison rules.
func (rl *RequestLine) Equal(val any) bool {
	var other *RequestLine
	switch v := val.(type) {
	case RequestLine:
		other = &v
	case *RequestLine:
		other = v
	default:
		return false
	}
	if rl == other {
		return true
	} else if rl == nil || other == nil {
		return false
	}
	return rl.Method.Equal(other.Method) && rl.Proto.Equal(other.Proto) && types.IsEqual(rl.URI, other.URI)
}

// Request represents a SIP request message.
type Request struct {
	Method  RequestMethod
	URI     URI
	Proto   Version
	Headers Headers
	Body    []byte
}

func (req *Request) line() *RequestLine {
	return &RequestLine{Method: req.Method, URI: req.URI, Proto: req.Proto}
}

func (req *Request) MessageHeaders() Headers {
	if req == nil {
		return nil
	}
	return req.Headers
}

func (req *Request) MessageBody() []byte {
	if req == nil {
		return nil
	}
	return req.Body
}

// RenderTo renders the SIP request to the given writer.
func (req *Request) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if req == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderMessageTo(w, req.line(), req.Headers, req.Body, opts))
}

// Render renders the SIP request to a string.
func (req *Request) Render(opts *RenderOptions) string {
	if req == nil {
		return ""
	}
	return renderMessage(req, opts)
}

// String returns the request line.
func (req *Request) String() string {
	if req == nil {
		return "<nil>"
	}
	return req.line().String()
}

// Format implements [fmt.Formatter] for custom formatting.
func (req *Request) Format(f fmt.State, verb rune) {
	switch verb {
	case 's', 'q':
		formatMessage(f, verb, req)
	default:
		type hideMethods Request
		type Request hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Request)(req))
	}
}

// LogValue implements [slog.LogValuer] for structured logging.
func (req *Request) LogValue() slog.Value {
	if req == nil {
		return slog.Value{}
	}
	attrs := make([]slog.Attr, 0, 7)
	attrs = append(attrs, slog.String("method", string(req.Method)), slog.Any("uri", req.URI))
	return slog.GroupValue(append(attrs, dialogAttrs(req.Headers)...)...)
}

// Clone returns a deep copy of the request.
func (req *Request) Clone() Message {
	if req == nil {
		return nil
	}
	req2 := *req
	req2.URI = types.Clone[URI](req.URI)
	req2.Headers = req.Headers.Clone()
	req2.Body = slices.Clone(req.Body)
	return &req2
}

// Equal returns whether the request is equal to another value.
func (req *Request) Equal(val any) bool {
	var other *Request
	switch v := val.(type) {
	case Request:
		other = &v
	case *Request:
		other = v
	default:
		return false
	}
	if req == other {
		return true
	} else if req == nil || other == nil {
		return false
	}
	return req.line().Equal(other.line()) &&
		req.Headers.Equal(other.Headers) &&
		bytes.Equal(req.Body, other.Body)
}

// dialogAttrs returns log attributes of the headers identifying a transaction.
func dialogAttrs(hdrs Headers) []slog.Attr {
	var attrs []slog.Attr
	if via, ok := hdrs.Via(); ok && len(via) > 0 {
		attrs = append(attrs, slog.Any("Via", via[0]))
	}
	if from, ok := hdrs.From(); ok {
		attrs = append(attrs, slog.Any("From", from))
	}
	if to, ok := hdrs.To(); ok {
		attrs = append(attrs, slog.Any("To", to))
	}
	if callID, ok := hdrs.CallID(); ok {
		attrs = append(attrs, slog.Any("Call-ID", callID))
	}
	if cseq, ok := hdrs.CSeq(); ok {
		attrs = append(attrs, slog.Any("CSeq", cseq))
	}
	return attrs
}
