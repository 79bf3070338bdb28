package sipcodec_test

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/sipcodec"
	"github.com/ghettovoice/sipcodec/header"
	"github.com/ghettovoice/sipcodec/internal/log"
	"github.com/ghettovoice/sipcodec/uri"
)

func sipURI(user, host string) *uri.SIP {
	u := &uri.SIP{Addr: uri.Host(host)}
	if user != "" {
		u.User = uri.User(user)
	}
	return u
}

func params(kvs ...string) header.Params {
	var ps header.Params
	for i := 0; i+1 < len(kvs); i += 2 {
		ps = ps.Add(kvs[i], kvs[i+1])
	}
	return ps
}

// buildMsg joins the start-line and the header lines with CRLF and appends the empty line and the body.
func buildMsg(startLine string, hdrs []string, body string) string {
	var sb strings.Builder
	sb.WriteString(startLine)
	sb.WriteString("\r\n")
	for _, h := range hdrs {
		sb.WriteString(h)
		sb.WriteString("\r\n")
	}
	sb.WriteString("\r\n")
	sb.WriteString(body)
	return sb.String()
}

func inviteHdrs() []string {
	return []string{
		"Via: SIP/2.0/UDP pc33.atlanta.com;branch=z9hG4bK776asdhds",
		"Max-Forwards: 70",
		"To: Bob <sip:bob@biloxi.com>",
		"From: Alice <sip:alice@atlanta.com>;tag=1928301774",
		"Call-ID: a84b4c76e66710@pc33.atlanta.com",
		"CSeq: 314159 INVITE",
		"Contact: <sip:alice@pc33.atlanta.com>",
		"Content-Type: application/sdp",
		"Content-Length: 4",
	}
}

// replaceHdr returns the header lines with the line of the given name prefix replaced, an empty line drops it.
func replaceHdr(hdrs []string, prefix, line string) []string {
	out := make([]string, 0, len(hdrs))
	for _, h := range hdrs {
		if strings.HasPrefix(h, prefix) {
			if line != "" {
				out = append(out, line)
			}
			continue
		}
		out = append(out, h)
	}
	return out
}

var inviteMsg = buildMsg("INVITE sip:bob@biloxi.com SIP/2.0", inviteHdrs(), "v=0\n")

func TestParseMessage_Request(t *testing.T) {
	t.Parallel()

	msg, err := sipcodec.ParseMessage(inviteMsg)
	if err != nil {
		t.Fatalf("ParseMessage(inviteMsg) error = %v, want nil", err)
	}
	req, ok := msg.(*sipcodec.Request)
	if !ok {
		t.Fatalf("ParseMessage(inviteMsg) = %T, want *sipcodec.Request", msg)
	}

	if req.Method != sipcodec.RequestMethodInvite {
		t.Errorf("req.Method = %q, want %q", req.Method, sipcodec.RequestMethodInvite)
	}
	if diff := cmp.Diff(sipcodec.URI(sipURI("bob", "biloxi.com")), req.URI); diff != "" {
		t.Errorf("req.URI mismatch (-want +got):\n%v", diff)
	}
	if !req.Proto.Equal(sipcodec.SIP20) {
		t.Errorf("req.Proto = %v, want %v", req.Proto, sipcodec.SIP20)
	}
	wantNames := []sipcodec.HeaderName{
		"Via", "Max-Forwards", "To", "From", "Call-ID", "CSeq", "Contact", "Content-Type", "Content-Length",
	}
	if diff := cmp.Diff(wantNames, req.Headers.Names()); diff != "" {
		t.Errorf("req.Headers.Names() mismatch (-want +got):\n%v", diff)
	}
	wantFrom := &header.From{
		DisplayName: "Alice",
		URI:         sipURI("alice", "atlanta.com"),
		Params:      params("tag", "1928301774"),
		Bracketed:   true,
	}
	if from, ok := req.Headers.From(); !ok {
		t.Error("req.Headers.From() ok = false, want true")
	} else if diff := cmp.Diff(wantFrom, from); diff != "" {
		t.Errorf("req.Headers.From() mismatch (-want +got):\n%v", diff)
	}
	if cseq, _ := req.Headers.CSeq(); cseq == nil || cseq.Method != sipcodec.RequestMethodInvite {
		t.Errorf("req.Headers.CSeq() = %v, want 314159 INVITE", cseq)
	}
	if got, want := string(req.Body), "v=0\n"; got != want {
		t.Errorf("req.Body = %q, want %q", got, want)
	}
	if got, want := req.String(), "INVITE sip:bob@biloxi.com SIP/2.0"; got != want {
		t.Errorf("req.String() = %q, want %q", got, want)
	}
	if got := req.Render(nil); got != inviteMsg {
		t.Errorf("req.Render(nil) = %q, want %q", got, inviteMsg)
	}
}

func TestParseMessage_Response(t *testing.T) {
	t.Parallel()

	// a response needs no mandatory headers and CSeq may omit the method
	msg, err := sipcodec.ParseMessage("SIP/2.0 200 OK\r\nCSeq: 1\r\n\r\n")
	if err != nil {
		t.Fatalf("ParseMessage() error = %v, want nil", err)
	}
	res, ok := msg.(*sipcodec.Response)
	if !ok {
		t.Fatalf("ParseMessage() = %T, want *sipcodec.Response", msg)
	}
	if got, want := res.Status, header.Num(200); !got.Equal(want) {
		t.Errorf("res.Status = %v, want %v", got, want)
	}
	if res.Reason != "OK" {
		t.Errorf("res.Reason = %q, want %q", res.Reason, "OK")
	}
	cseq, ok := res.Headers.CSeq()
	if !ok {
		t.Fatal("res.Headers.CSeq() ok = false, want true")
	}
	if want := (&header.CSeq{SeqNum: header.Num(1)}); !cseq.Equal(want) {
		t.Errorf("res.Headers.CSeq() = %v, want %v", cseq, want)
	}
	if len(res.Body) != 0 {
		t.Errorf("res.Body = %q, want empty", res.Body)
	}
}

func TestParseMessage_LeadingCRLF(t *testing.T) {
	t.Parallel()

	want, err := sipcodec.ParseMessage(inviteMsg)
	if err != nil {
		t.Fatalf("ParseMessage(inviteMsg) error = %v, want nil", err)
	}
	got, err := sipcodec.ParseMessage("\r\n\r\n" + inviteMsg)
	if err != nil {
		t.Fatalf("ParseMessage(CRLF CRLF inviteMsg) error = %v, want nil", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("message mismatch (-want +got):\n%v", diff)
	}
}

func TestParseMessage_CombineVia(t *testing.T) {
	t.Parallel()

	hdrs := append(inviteHdrs(), "v: SIP/2.0/TCP 192.0.2.1:5060;branch=z9hG4bK2")
	msg, err := sipcodec.ParseMessage(buildMsg("INVITE sip:bob@biloxi.com SIP/2.0", hdrs, "v=0\n"))
	if err != nil {
		t.Fatalf("ParseMessage() error = %v, want nil", err)
	}
	via, ok := msg.MessageHeaders().Via()
	if !ok {
		t.Fatal("Via() ok = false, want true")
	}
	want := header.Via{
		{
			Proto:     header.ProtoInfo{Name: "SIP", Version: "2.0"},
			Transport: "UDP",
			Addr:      header.Host("pc33.atlanta.com"),
			Params:    params("branch", "z9hG4bK776asdhds"),
		},
		{
			Proto:     header.ProtoInfo{Name: "SIP", Version: "2.0"},
			Transport: "TCP",
			Addr:      header.HostPort("192.0.2.1", 5060),
			Params:    params("branch", "z9hG4bK2"),
		},
	}
	if diff := cmp.Diff(want, via); diff != "" {
		t.Errorf("Via() mismatch (-want +got):\n%v", diff)
	}
	// both hops render on their own lines at the position of the first occurrence
	rendered := msg.Render(nil)
	wantLines := "Via: SIP/2.0/UDP pc33.atlanta.com;branch=z9hG4bK776asdhds\r\n" +
		"Via: SIP/2.0/TCP 192.0.2.1:5060;branch=z9hG4bK2\r\n" +
		"Max-Forwards: 70\r\n"
	if !strings.Contains(rendered, wantLines) {
		t.Errorf("msg.Render(nil) = %q, want it to contain %q", rendered, wantLines)
	}
}

func TestParseMessage_ParsedError(t *testing.T) {
	t.Parallel()

	const ruri = "INVITE sip:bob@biloxi.com SIP/2.0"

	cases := []struct {
		name       string
		input      string
		wantStatus uint
		wantReason string
		wantErr    error
	}{
		{
			"cseq out of range",
			buildMsg(ruri, replaceHdr(inviteHdrs(), "CSeq:", "CSeq: 4294967296 INVITE"), "v=0\n"),
			400, "Invalid CSeq sequence number", sipcodec.ErrInvalidMessage,
		},
		{
			"version not supported",
			buildMsg("INVITE sip:bob@biloxi.com SIP/7.0", inviteHdrs(), "v=0\n"),
			505, "Version Not Supported", sipcodec.ErrInvalidMessage,
		},
		{
			"lower case version name",
			buildMsg("INVITE sip:bob@biloxi.com sip/2.0", inviteHdrs(), "v=0\n"),
			505, "Version Not Supported", sipcodec.ErrInvalidMessage,
		},
		{
			"zero padded version",
			buildMsg("INVITE sip:bob@biloxi.com SIP/02.00", inviteHdrs(), "v=0\n"),
			505, "Version Not Supported", sipcodec.ErrInvalidMessage,
		},
		{
			"lower case response version",
			buildMsg("sip/2.0 200 OK", []string{"CSeq: 1 INVITE"}, ""),
			505, "Version Not Supported", sipcodec.ErrInvalidMessage,
		},
		{
			"cseq method mismatch",
			buildMsg("OPTIONS sip:bob@biloxi.com SIP/2.0", replaceHdr(inviteHdrs(), "CSeq:", "CSeq: 1 INVITE"), "v=0\n"),
			400, "CSeq Method does not match Request Method", sipcodec.ErrInvalidMessage,
		},
		{
			"cseq method case",
			buildMsg(ruri, replaceHdr(inviteHdrs(), "CSeq:", "CSeq: 1 invite"), "v=0\n"),
			400, "CSeq Method does not match Request Method", sipcodec.ErrInvalidMessage,
		},
		{
			"cseq without method in request",
			buildMsg(ruri, replaceHdr(inviteHdrs(), "CSeq:", "CSeq: 1"), "v=0\n"),
			400, "CSeq Method does not match Request Method", sipcodec.ErrInvalidMessage,
		},
		{
			"missing to",
			buildMsg(ruri, replaceHdr(inviteHdrs(), "To:", ""), "v=0\n"),
			400, "Missing To header", sipcodec.ErrInvalidMessage,
		},
		{
			"missing via",
			buildMsg(ruri, replaceHdr(inviteHdrs(), "Via:", ""), "v=0\n"),
			400, "Missing Via header", sipcodec.ErrInvalidMessage,
		},
		{
			"malformed max-forwards",
			buildMsg(ruri, replaceHdr(inviteHdrs(), "Max-Forwards:", "Max-Forwards: seventy"), "v=0\n"),
			400, "Malformed Max-Forwards header", sipcodec.ErrInvalidMessage,
		},
		{
			"malformed from",
			buildMsg(ruri, replaceHdr(inviteHdrs(), "From:", "From: <sip:alice@atlanta.com"), "v=0\n"),
			400, "Malformed From header", sipcodec.ErrInvalidMessage,
		},
		{
			"two cseq",
			buildMsg(ruri, append(inviteHdrs(), "CSeq: 314160 INVITE"), "v=0\n"),
			400, "Multiple CSeq values", sipcodec.ErrMultipleValues,
		},
		{
			"two to in compact form",
			buildMsg(ruri, append(inviteHdrs(), "t: sip:carol@chicago.com"), "v=0\n"),
			400, "Multiple To values", sipcodec.ErrMultipleValues,
		},
		{
			"malformed start-line",
			buildMsg("INVITE sip:bob@biloxi.com", inviteHdrs(), "v=0\n"),
			400, "Malformed start-line", sipcodec.ErrInvalidMessage,
		},
		{
			"malformed content-length",
			buildMsg("SIP/2.0 200 OK", []string{"CSeq: 1 INVITE", "Content-Length: -1"}, ""),
			400, "Malformed Content-Length header", sipcodec.ErrInvalidMessage,
		},
		{
			"malformed contact",
			buildMsg("SIP/2.0 200 OK", []string{"CSeq: 1 INVITE", "Contact: <sip:bob@biloxi.com"}, ""),
			400, "Malformed Contact header", sipcodec.ErrInvalidMessage,
		},
		{
			"response version",
			buildMsg("SIP/2.1 200 OK", []string{"CSeq: 1 INVITE"}, ""),
			505, "Version Not Supported", sipcodec.ErrInvalidMessage,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			msg, err := sipcodec.ParseMessage(c.input)
			if msg != nil {
				t.Errorf("ParseMessage() = %v, want nil", msg)
			}
			if diff := cmp.Diff(c.wantErr, err, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("ParseMessage() error mismatch (-want +got):\n%v", diff)
			}
			var perr *sipcodec.ParsedError
			if !errors.As(err, &perr) {
				t.Fatalf("ParseMessage() error = %v, want *sipcodec.ParsedError", err)
			}
			if perr.StatusCode != c.wantStatus || perr.ReasonPhrase != c.wantReason {
				t.Errorf("ParseMessage() error = %d %q, want %d %q",
					perr.StatusCode, perr.ReasonPhrase, c.wantStatus, c.wantReason)
			}
			if got, want := perr.Error(), fmt.Sprintf("%d %s", c.wantStatus, c.wantReason); got != want {
				t.Errorf("perr.Error() = %q, want %q", got, want)
			}
			if !sipcodec.IsGrammarError(err) {
				t.Error("IsGrammarError(err) = false, want true")
			}
			if perr.Parsed == nil {
				t.Fatal("perr.Parsed = nil, want partial message")
			}
			if !perr.Parsed.MessageHeaders().Has("CSeq") {
				t.Error("perr.Parsed has no CSeq header, want the partial tree with all headers")
			}
			var serr *sipcodec.SyntaxError
			if errors.As(err, &serr) {
				t.Errorf("ParseMessage() error = %v, want no *sipcodec.SyntaxError", err)
			}
		})
	}
}

func TestParseMessage_SyntaxError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		input    string
		wantLine int
		wantCol  int
		wantErr  error
	}{
		{"empty", "", 1, 1, sipcodec.ErrEmptyInput},
		{"only CRLF", "\r\n\r\n", 1, 1, sipcodec.ErrEmptyInput},
		{"no empty line", "INVITE sip:bob@biloxi.com SIP/2.0\r\nVia: x\r\n", 3, 1, nil},
		{"no header colon", "SIP/2.0 200 OK\r\nCSeq 1\r\n\r\n", 2, 6, nil},
		{"folded line", "SIP/2.0 200 OK\r\nSubject: a\r\n b\r\nbad line\r\n\r\n", 3, 5, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			_, err := sipcodec.ParseMessage(c.input)
			var serr *sipcodec.SyntaxError
			if !errors.As(err, &serr) {
				t.Fatalf("ParseMessage() error = %v, want *sipcodec.SyntaxError", err)
			}
			if serr.Line != c.wantLine || serr.Column != c.wantCol {
				t.Errorf("syntax error at %d:%d, want %d:%d", serr.Line, serr.Column, c.wantLine, c.wantCol)
			}
			if !serr.Folded {
				t.Error("serr.Folded = false, want true")
			}
			if !sipcodec.IsGrammarError(err) {
				t.Error("IsGrammarError(err) = false, want true")
			}
			if c.wantErr != nil && !errors.Is(err, c.wantErr) {
				t.Errorf("ParseMessage() error = %v, want %v", err, c.wantErr)
			}
			if msg := err.Error(); !strings.Contains(msg, fmt.Sprintf("line %d column %d", c.wantLine, c.wantCol)) ||
				!strings.Contains(msg, "<< EOM") {
				t.Errorf("err.Error() = %q, want position and folded input", msg)
			}
			var perr *sipcodec.ParsedError
			if errors.As(err, &perr) {
				t.Errorf("ParseMessage() error = %v, want no *sipcodec.ParsedError", err)
			}
		})
	}
}

func TestParse_FoldedSubject(t *testing.T) {
	t.Parallel()

	got, err := sipcodec.ParseRule("Subject:  \r\n \r\n ...finally", sipcodec.RuleMessageHeader)
	if err != nil {
		t.Fatalf("ParseRule() error = %v, want nil", err)
	}
	if diff := cmp.Diff(any(header.Subject("...finally")), got); diff != "" {
		t.Errorf("ParseRule() mismatch (-want +got):\n%v", diff)
	}
}

func TestParseRule(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		rule  sipcodec.Rule
		input string
		want  any
	}{
		{
			"request line", sipcodec.RuleRequestLine, "OPTIONS sip:carol@chicago.com SIP/2.0\r\n",
			&sipcodec.RequestLine{Method: "OPTIONS", URI: sipURI("carol", "chicago.com"), Proto: sipcodec.SIP20},
		},
		{
			"status line", sipcodec.RuleStatusLine, "SIP/2.0 180 Ringing",
			&sipcodec.StatusLine{Proto: sipcodec.SIP20, Status: header.Num(180), Reason: "Ringing"},
		},
		{
			"status line empty reason", sipcodec.RuleStatusLine, "SIP/2.0 200 ",
			&sipcodec.StatusLine{Proto: sipcodec.SIP20, Status: header.Num(200)},
		},
		{"accept", sipcodec.RuleMessageHeader, "Accept: */*", header.Accept{{MIMEType: header.MIMEType{Type: "*", Subtype: "*"}}}},
		{
			"unknown header", sipcodec.RuleMessageHeader, "X-Custom: some value",
			&header.Any{Name: "X-Custom", Values: []string{"some value"}},
		},
		{"request uri", sipcodec.RuleRequestURI, "sip:bob@biloxi.com", sipcodec.URI(sipURI("bob", "biloxi.com"))},
		{"sips uri", sipcodec.RuleSIPSURI, "sips:biloxi.com", &uri.SIP{Addr: uri.Host("biloxi.com"), Secured: true}},
		{"absolute uri", sipcodec.RuleAbsoluteURI, "tel:+1-201-555-0123", &uri.Tel{Number: "+1-201-555-0123"}},
		{
			"tel uri", sipcodec.RuleTelURI, "tel:7042;phone-context=example.com",
			&uri.Tel{Number: "7042", Params: uri.Params{}.Add("phone-context", "example.com")},
		},
		{
			"name addr", sipcodec.RuleNameAddr, `"Bob" <sip:bob@biloxi.com>`,
			header.NameAddr{DisplayName: "Bob", URI: sipURI("bob", "biloxi.com"), Bracketed: true},
		},
		{
			"contact param", sipcodec.RuleContactParam, "<sip:bob@192.0.2.4>;expires=60",
			header.NameAddr{URI: sipURI("bob", "192.0.2.4"), Params: params("expires", "60"), Bracketed: true},
		},
		{"hostport", sipcodec.RuleHostport, "biloxi.com:5060", header.HostPort("biloxi.com", 5060)},
		{"media range", sipcodec.RuleMediaRange, "*/*", header.MIMEType{Type: "*", Subtype: "*"}},
		{
			"media range params", sipcodec.RuleMediaRange, "text/html;level=1",
			header.MIMEType{Type: "text", Subtype: "html", Params: params("level", "1")},
		},
		{"encoding", sipcodec.RuleEncoding, "gzip;q=0.5", header.EncodingRange{Encoding: "gzip", Params: params("q", "0.5")}},
		{"language", sipcodec.RuleLanguage, "en-US", header.LanguageRange{Lang: "en-US"}},
		{
			"via parm", sipcodec.RuleViaParm, "SIP/2.0/UDP pc33.atlanta.com;branch=z9hG4bK776asdhds",
			header.ViaHop{
				Proto:     header.ProtoInfo{Name: "SIP", Version: "2.0"},
				Transport: "UDP",
				Addr:      header.Host("pc33.atlanta.com"),
				Params:    params("branch", "z9hG4bK776asdhds"),
			},
		},
		{
			"warning value", sipcodec.RuleWarningValue, `307 isi.edu "Session parameter 'foo' not understood"`,
			header.WarningEntry{Code: header.Num(307), Agent: "isi.edu", Text: "Session parameter 'foo' not understood"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := sipcodec.ParseRule(c.input, c.rule)
			if err != nil {
				t.Fatalf("ParseRule(%q, %q) error = %v, want nil", c.input, c.rule, err)
			}
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("ParseRule(%q, %q) mismatch (-want +got):\n%v", c.input, c.rule, diff)
			}
		})
	}
}

func TestParseRule_Errors(t *testing.T) {
	t.Parallel()

	if _, err := sipcodec.ParseRule("sip:bob@biloxi.com", "nope"); !errors.Is(err, sipcodec.ErrUnknownRule) {
		t.Errorf("ParseRule(unknown rule) error = %v, want %v", err, sipcodec.ErrUnknownRule)
	}

	// validation applies to full messages only
	got, err := sipcodec.ParseRule("INVITE sip:bob@biloxi.com SIP/7.0", sipcodec.RuleRequestLine)
	if err != nil {
		t.Fatalf("ParseRule(SIP/7.0 request line) error = %v, want nil", err)
	}
	rl, ok := got.(*sipcodec.RequestLine)
	if !ok {
		t.Fatalf("ParseRule() = %T, want *sipcodec.RequestLine", got)
	}
	if got, want := rl.String(), "INVITE sip:bob@biloxi.com SIP/7.0"; got != want {
		t.Errorf("rl.String() = %q, want %q", got, want)
	}

	_, err = sipcodec.ParseRule("biloxi.com:", sipcodec.RuleHostport)
	var serr *sipcodec.SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("ParseRule(bad hostport) error = %v, want *sipcodec.SyntaxError", err)
	}

	if sipcodec.IsGrammarError(errors.New("io failure")) {
		t.Error("IsGrammarError(io failure) = true, want false")
	}
}

func TestParse_Options(t *testing.T) {
	t.Parallel()

	loggers := []struct {
		name      string
		newLogger func(w io.Writer) *slog.Logger
	}{
		{"text", newTestLogger},
		{"console", func(w io.Writer) *slog.Logger { return log.Console(&syncWriter{w: w}, slog.LevelDebug) }},
		{"dev", func(w io.Writer) *slog.Logger { return log.Dev(&syncWriter{w: w}, slog.LevelDebug) }},
	}

	for _, c := range loggers {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			var buf strings.Builder
			logger := c.newLogger(&buf)

			got, err := sipcodec.Parse(inviteMsg, &sipcodec.ParseOptions{Logger: logger})
			if err != nil {
				t.Fatalf("Parse(inviteMsg) error = %v, want nil", err)
			}
			if _, ok := got.(*sipcodec.Request); !ok {
				t.Errorf("Parse(inviteMsg) = %T, want *sipcodec.Request", got)
			}
			if out := buf.String(); !strings.Contains(out, "parse input") || !strings.Contains(out, "message built") {
				t.Errorf("log output = %q, want parse input and message built records", out)
			}

			buf.Reset()
			if _, err := sipcodec.Parse("SIP/7.0 200 OK\r\n\r\n", &sipcodec.ParseOptions{Logger: logger}); err == nil {
				t.Fatal("Parse(SIP/7.0 response) error = nil, want error")
			}
			if !strings.Contains(buf.String(), "invalid message") {
				t.Errorf("log output = %q, want an invalid message record", buf.String())
			}

			buf.Reset()
			if _, err := sipcodec.Parse("SIP/2.0 200 OK\r\nbad\r\n\r\n", &sipcodec.ParseOptions{Logger: logger}); err == nil {
				t.Fatal("Parse(bad header) error = nil, want error")
			}
			if !strings.Contains(buf.String(), "syntax error") {
				t.Errorf("log output = %q, want a syntax error record", buf.String())
			}
		})
	}
}

func TestParse_LongValues(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", 4096)
	hdrs := replaceHdr(inviteHdrs(), "To:", fmt.Sprintf(`To: "%s" <sip:%s@biloxi.com>;tag=%s`, long, long, long))
	hdrs = replaceHdr(hdrs, "Call-ID:", "Call-ID: "+long)
	for i := range 50 {
		hdrs = append(hdrs, fmt.Sprintf("Via: SIP/2.0/TCP host%d.example.com;branch=z9hG4bK%d%s", i, i, long[:64]))
	}
	hdrs = append(hdrs, "X-Long: "+strings.Repeat("word ", 1000)+"end")
	input := buildMsg("INVITE sip:bob@biloxi.com SIP/2.0", hdrs, "v=0\n")

	msg, err := sipcodec.ParseMessage(input)
	if err != nil {
		t.Fatalf("ParseMessage(long message) error = %v, want nil", err)
	}
	to, _ := msg.MessageHeaders().To()
	if to == nil || to.DisplayName != long {
		t.Errorf("To display name was not kept whole")
	}
	if via, _ := msg.MessageHeaders().Via(); len(via) != 51 {
		t.Errorf("len(Via) = %d, want 51", len(via))
	}
	assertRoundTrip(t, msg)
}

// assertRoundTrip renders the message, parses the text again and compares both.
func assertRoundTrip(t *testing.T, msg sipcodec.Message) {
	t.Helper()

	text := msg.Render(nil)
	got, err := sipcodec.ParseMessage(text)
	if err != nil {
		t.Fatalf("ParseMessage(rendered) error = %v, want nil\nrendered:\n%s", err, text)
	}
	if diff := cmp.Diff(msg, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%v", diff)
	}
}

func TestParseMessage_RoundTrip(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
	}{
		{"invite", inviteMsg},
		{"compact names", buildMsg("INVITE sip:bob@biloxi.com SIP/2.0", []string{
			"v: SIP/2.0/UDP pc33.atlanta.com;branch=z9hG4bK776asdhds",
			"Max-Forwards: 70",
			"t: Bob <sip:bob@biloxi.com>",
			"f: <sip:alice@atlanta.com>;tag=1928301774",
			"i: a84b4c76e66710@pc33.atlanta.com",
			"CSeq: 314159 INVITE",
			"m: \"Alice\" <sip:alice@pc33.atlanta.com>;expires=60, sip:alice@192.0.2.1",
			"l: 0",
		}, "")},
		{"auth rows", buildMsg("SIP/2.0 401 Unauthorized", []string{
			"Via: SIP/2.0/UDP pc33.atlanta.com;branch=z9hG4bK776asdhds",
			"CSeq: 1 REGISTER",
			`WWW-Authenticate: Digest realm="atlanta.com", nonce="84a4cc6f3082121f32b42a2187831a9e", algorithm=MD5, qop="auth"`,
			`WWW-Authenticate: Digest realm="biloxi.com", nonce="1"`,
			`Proxy-Authenticate: Digest realm="atlanta.com", nonce="2"`,
			"Content-Length: 0",
		}, "")},
		{"user agent", buildMsg("SIP/2.0 200 OK", []string{
			"CSeq: 1 OPTIONS",
			"User-Agent: Softphone/1.0",
			"User-Agent: (Linux) Beta",
			"Server: Proxy/2.3",
			"Allow: INVITE, ACK",
			"Allow: BYE",
			"Accept: application/sdp;level=1, */*;q=0.5",
			"Warning: 307 isi.edu \"Session parameter 'foo' not understood\"",
			"X-Unknown: 1",
			"x-unknown: 2",
		}, "")},
		{"body longer than content-length", buildMsg("SIP/2.0 200 OK", []string{"CSeq: 1 INVITE", "Content-Length: 2"}, "abcdef")},
		{"unknown content-length", buildMsg("SIP/2.0 200 OK", []string{"CSeq: 1 INVITE"}, "abc\r\n\r\ndef")},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			msg, err := sipcodec.ParseMessage(c.input)
			if err != nil {
				t.Fatalf("ParseMessage() error = %v, want nil", err)
			}
			assertRoundTrip(t, msg)
		})
	}
}

func TestParseMessage_Body(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name, input, want string
	}{
		{"cut by content-length", buildMsg("SIP/2.0 200 OK", []string{"CSeq: 1 INVITE", "Content-Length: 2"}, "abcdef"), "ab"},
		{"content-length too big", buildMsg("SIP/2.0 200 OK", []string{"CSeq: 1 INVITE", "Content-Length: 100"}, "abc"), "abc"},
		{"no content-length", buildMsg("SIP/2.0 200 OK", []string{"CSeq: 1 INVITE"}, "a\r\n b\r\n\r\nc"), "a\r\n b\r\n\r\nc"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			msg, err := sipcodec.ParseMessage(c.input)
			if err != nil {
				t.Fatalf("ParseMessage() error = %v, want nil", err)
			}
			if got := string(msg.MessageBody()); got != c.want {
				t.Errorf("msg.MessageBody() = %q, want %q", got, c.want)
			}
		})
	}
}
