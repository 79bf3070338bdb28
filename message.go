package sipcodec

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipcodec/header"
	"github.com/ghettovoice/sipcodec/internal/grammar"
	"github.com/ghettovoice/sipcodec/internal/ioutil"
	"github.com/ghettovoice/sipcodec/internal/types"
	"github.com/ghettovoice/sipcodec/internal/util"
	"github.com/ghettovoice/sipcodec/uri"
)

// Message is a parsed SIP message: [*Request], [*Response] or [*UnknownMessage].
type Message interface {
	Renderer
	fmt.Stringer
	// MessageHeaders returns the message headers.
	MessageHeaders() Headers
	// MessageBody returns the message body.
	MessageBody() []byte
	// Clone returns a deep copy of the message.
	Clone() Message
	// Equal reports whether the message is equal to another value.
	Equal(val any) bool
}

// UnknownMessage is a message whose start-line is neither a Request-Line nor a Status-Line.
// It is never returned on success, only as [ParsedError.Parsed].
type UnknownMessage struct {
	StartLine string
	Headers   Headers
	Body      []byte
}

func (msg *UnknownMessage) MessageHeaders() Headers {
	if msg == nil {
		return nil
	}
	return msg.Headers
}

func (msg *UnknownMessage) MessageBody() []byte {
	if msg == nil {
		return nil
	}
	return msg.Body
}

// RenderTo writes the message to w.
func (msg *UnknownMessage) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if msg == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderMessageTo(w, msg.StartLine, msg.Headers, msg.Body, opts))
}

// Render returns the message as wire text.
func (msg *UnknownMessage) Render(opts *RenderOptions) string {
	if msg == nil {
		return ""
	}
	return renderMessage(msg, opts)
}

// String returns the start-line.
func (msg *UnknownMessage) String() string {
	if msg == nil {
		return "<nil>"
	}
	return msg.StartLine
}

// Format implements [fmt.Formatter] for custom formatting.
func (msg *UnknownMessage) Format(f fmt.State, verb rune) {
	switch verb {
	case 's', 'q':
		formatMessage(f, verb, msg)
	default:
		type hideMethods UnknownMessage
		type UnknownMessage hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*UnknownMessage)(msg))
	}
}

// Clone returns a deep copy of the message.
func (msg *UnknownMessage) Clone() Message {
	if msg == nil {
		return nil
	}
	msg2 := *msg
	msg2.Headers = msg.Headers.Clone()
	msg2.Body = slices.Clone(msg.Body)
	return &msg2
}

// Equal reports whether the message is equal to another value.
func (msg *UnknownMessage) Equal(val any) bool {
	var other *UnknownMessage
	switch v := val.(type) {
	case UnknownMessage:
		other = &v
	case *UnknownMessage:
		other = v
	default:
		return false
	}
	if msg == other {
		return true
	} else if msg == nil || other == nil {
		return false
	}
	return msg.StartLine == other.StartLine &&
		msg.Headers.Equal(other.Headers) &&
		bytes.Equal(msg.Body, other.Body)
}

// renderMessageTo writes the start-line, the headers, the empty line and the body.
func renderMessageTo(w io.Writer, startLine any, hdrs Headers, body []byte, opts *RenderOptions) (int, error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	if r, ok := startLine.(Renderer); ok {
		cw.Call(func(w io.Writer) (int, error) {
			return errtrace.Wrap2(r.RenderTo(w, opts))
		})
	} else {
		cw.Fprint(startLine) //nolint:errcheck
	}
	cw.WriteString("\r\n") //nolint:errcheck
	cw.Call(func(w io.Writer) (int, error) {
		return errtrace.Wrap2(hdrs.RenderTo(w, opts))
	})
	cw.WriteString("\r\n") //nolint:errcheck
	cw.Write(body)         //nolint:errcheck
	return errtrace.Wrap2(cw.Result())
}

func renderMessage(msg Message, opts *RenderOptions) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	msg.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// formatMessage prints the start-line for %s and %q, the "+" flag prints the whole message.
func formatMessage(f fmt.State, verb rune, msg Message) {
	s := msg.String()
	if f.Flag('+') {
		s = msg.Render(nil)
	}
	if verb == 'q' {
		s = strconv.Quote(s)
	}
	f.Write([]byte(s)) //nolint:errcheck
}

// buildResult is the outcome of turning a SIP-message node into a [Message].
type buildResult struct {
	msg Message
	// dupName is the first singular header found more than once, dupErr is the combiner error for it.
	dupName HeaderName
	dupErr  error
}

// buildMessage builds a message from a SIP-message node.
// A repeated singular header does not stop the build, the first occurrence is kept
// so that the partial message is as complete as possible.
func buildMessage(node *grammar.Node) buildResult {
	var res buildResult
	hdrs := make(Headers, 0, len(node.Children))
	var body []byte
	for _, n := range node.Children[1:] {
		if n.Key == "message-body" {
			body = n.Value
			continue
		}
		hdr := header.FromNode(n)
		if hdr == nil {
			continue
		}
		if err := hdrs.Append(hdr); err != nil && res.dupErr == nil {
			res.dupName, res.dupErr = hdr.CanonicName(), err
		}
	}
	body = cutBody(hdrs, body)

	sl := node.Children[0]
	switch sl.Key {
	case "Request-Line":
		rl := buildRequestLine(sl)
		res.msg = &Request{Method: rl.Method, URI: rl.URI, Proto: rl.Proto, Headers: hdrs, Body: body}
	case "Status-Line":
		stl := buildStatusLine(sl)
		res.msg = &Response{Proto: stl.Proto, Status: stl.Status, Reason: stl.Reason, Headers: hdrs, Body: body}
	default:
		res.msg = &UnknownMessage{StartLine: sl.String(), Headers: hdrs, Body: body}
	}
	return res
}

// cutBody returns a copy of the body limited by a structured Content-Length
// that does not exceed the available octets.
func cutBody(hdrs Headers, body []byte) []byte {
	body = slices.Clone(body)
	if body == nil {
		body = []byte{}
	}
	if cl, ok := hdrs.ContentLength(); ok {
		if n, ok := types.Number(cl).Uint64(); ok && n <= uint64(len(body)) {
			body = body[:n]
		}
	}
	return body
}

func buildVersion(node *grammar.Node) Version {
	major := grammar.MustGetNode(node, "major").Value
	minor := grammar.MustGetNode(node, "minor").Value
	return Version{
		Name:  grammar.MustGetNode(node, "version-name").String(),
		Major: types.MustParseNumber(major).WithWidth(len(major)),
		Minor: types.MustParseNumber(minor).WithWidth(len(minor)),
	}
}

func buildRequestLine(node *grammar.Node) *RequestLine {
	return &RequestLine{
		Method: RequestMethod(grammar.MustGetNode(node, "Method").String()),
		URI:    uri.FromNode(grammar.MustGetNode(node, "Request-URI")),
		Proto:  buildVersion(grammar.MustGetNode(node, "SIP-Version")),
	}
}

func buildStatusLine(node *grammar.Node) *StatusLine {
	code := grammar.MustGetNode(node, "Status-Code").Value
	return &StatusLine{
		Proto:  buildVersion(grammar.MustGetNode(node, "SIP-Version")),
		Status: types.MustParseNumber(code).WithWidth(len(code)),
		Reason: grammar.MustGetNode(node, "Reason-Phrase").String(),
	}
}
