package grammar

import (
	"strings"

	"github.com/ghettovoice/abnf"
)

// knownHeaders lists the headers with a grammar of their own and their compact forms.
var knownHeaders = []struct {
	name, compact string
}{
	{"Accept", ""},
	{"Accept-Encoding", ""},
	{"Accept-Language", ""},
	{"Alert-Info", ""},
	{"Allow", ""},
	{"Authentication-Info", ""},
	{"Authorization", ""},
	{"Call-ID", "i"},
	{"Call-Info", ""},
	{"Contact", "m"},
	{"Content-Disposition", ""},
	{"Content-Encoding", "e"},
	{"Content-Language", ""},
	{"Content-Length", "l"},
	{"Content-Type", "c"},
	{"CSeq", ""},
	{"Date", ""},
	{"Error-Info", ""},
	{"Expires", ""},
	{"From", "f"},
	{"In-Reply-To", ""},
	{"Max-Forwards", ""},
	{"MIME-Version", ""},
	{"Min-Expires", ""},
	{"Organization", ""},
	{"Priority", ""},
	{"Proxy-Authenticate", ""},
	{"Proxy-Authorization", ""},
	{"Proxy-Require", ""},
	{"Record-Route", ""},
	{"Reply-To", ""},
	{"Require", ""},
	{"Retry-After", ""},
	{"Route", ""},
	{"Server", ""},
	{"Subject", "s"},
	{"Supported", "k"},
	{"Timestamp", ""},
	{"To", "t"},
	{"Unsupported", ""},
	{"User-Agent", ""},
	{"Via", "v"},
	{"Warning", ""},
	{"WWW-Authenticate", ""},
}

var canonicNames = func() map[string]string {
	m := make(map[string]string, 2*len(knownHeaders))
	for _, h := range knownHeaders {
		m[strings.ToLower(h.name)] = h.name
		if h.compact != "" {
			m[h.compact] = h.name
		}
	}
	return m
}()

// CanonicName returns the canonical name of a known header or its compact form.
func CanonicName(name string) (string, bool) {
	n, ok := canonicNames[strings.ToLower(name)]
	return n, ok
}

var (
	wkdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	months = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
)

func (r *ruleSet) initHeaders() {
	r.mediaRange = r.media("media-range", r.mParameter(true))
	r.mediaType = r.media("media-type", r.mParameter(false))
	// encoding = codings *(SEMI accept-param)
	r.encoding = abnf.Concat("encoding", r.tokenAs("codings"), r.params(r.genericParam))
	// language = language-range *(SEMI accept-param), language-range = ( ( 1*8ALPHA *( "-" 1*8ALPHA ) ) / "*" )
	r.language = abnf.Concat(
		"language",
		abnf.Concat("language-range", abnf.AltFirst("language-range-alt", r.char('*'), r.alphaTag())),
		r.params(r.genericParam),
	)
	// callid = word [ "@" word ]
	r.callID = abnf.Concat("callid", r.word, abnf.Optional("[@word]", abnf.Concat("@word", r.char('@'), r.word)))
	r.viaParm = r.viaParmOp()
	r.contactParam = r.addr("contact-param", r.genericParam)
	r.warningValue = r.warningValueOp()

	values := map[string]abnf.Operator{
		"Accept":              r.optList(abnf.Concat("accept-range", r.mediaRange, r.params(r.genericParam))),
		"Accept-Encoding":     r.optList(r.encoding),
		"Accept-Language":     r.optList(r.language),
		"Alert-Info":          r.list(r.info("alert-param")),
		"Allow":               r.optList(r.method),
		"Authentication-Info": r.list(r.authParam()),
		"Authorization":       r.authValue("credentials"),
		"Call-ID":             r.callID,
		"Call-Info":           r.list(r.info("info")),
		"Contact": abnf.AltFirst(
			"contact-value",
			abnf.Concat("STAR-value", abnf.Concat("STAR", r.char('*')), r.sws, lineEnd),
			r.list(r.contactParam),
		),
		"Content-Disposition": abnf.Concat("content-disposition", r.tokenAs("disp-type"), r.params(r.genericParam)),
		"Content-Encoding":    r.list(r.tokenAs("content-coding")),
		"Content-Language":    r.list(abnf.Concat("language-tag", r.alphaTag())),
		"Content-Length":      r.digitsAs("content-length"),
		"Content-Type":        r.mediaType,
		"CSeq":                r.cseq(),
		"Date":                r.sipDate(),
		"Error-Info":          r.list(r.info("error-uri")),
		// Expires = delta-seconds, any other value is kept as malformed-expires
		"Expires": abnf.AltFirst(
			"expires-value",
			abnf.Concat("delta-seconds-value", r.deltaSeconds, r.sws, lineEnd),
			r.run("malformed-expires", "", lineChars),
		),
		"From":                r.addr("from-spec", r.genericParam),
		"In-Reply-To":         r.list(r.callID),
		"Max-Forwards":        r.digitsAs("max-forwards"),
		"MIME-Version":        abnf.Concat("mime-version", r.digitsAs("major"), r.char('.'), r.digitsAs("minor")),
		"Min-Expires":         r.deltaSeconds,
		"Organization":        r.textValue("organization"),
		"Priority":            r.tokenAs("priority-value"),
		"Proxy-Authenticate":  r.authValue("challenge"),
		"Proxy-Authorization": r.authValue("credentials"),
		"Proxy-Require":       r.list(r.tokenAs("option-tag")),
		"Record-Route":        r.list(r.routeAddr("rec-route")),
		"Reply-To":            r.addr("rplyto-spec", r.genericParam),
		"Require":             r.list(r.tokenAs("option-tag")),
		"Retry-After":         r.retryAfter(),
		"Route":               r.list(r.routeAddr("route-param")),
		"Server":              r.serverVals(),
		"Subject":             r.textValue("subject"),
		"Supported":           r.optList(r.tokenAs("option-tag")),
		"Timestamp":           r.timestamp(),
		"To":                  r.addr("to-spec", r.genericParam),
		"Unsupported":         r.list(r.tokenAs("option-tag")),
		"User-Agent":          r.serverVals(),
		"Via":                 r.list(r.viaParm),
		"Warning":             r.list(r.warningValue),
		"WWW-Authenticate":    r.authValue("challenge"),
	}

	// message-header = known header / extension-header, a known header whose value
	// does not match its grammar is taken as extension-header
	ops := make([]abnf.Operator, 0, len(knownHeaders)+1)
	for _, h := range knownHeaders {
		names := []abnf.Operator{abnf.Literal(`"`+h.name+`"`, []byte(h.name))}
		if h.compact != "" {
			names = append(names, abnf.Literal(`"`+h.compact+`"`, []byte(h.compact)))
		}
		ops = append(ops, abnf.Concat(
			h.name,
			abnf.Concat("header-name", abnf.AltFirst("header-names", names[0], names[1:]...)),
			r.hcolon,
			values[h.name],
			r.sws,
			lineEnd,
		))
	}
	ops = append(ops, abnf.Concat(
		"extension-header",
		r.run("header-name", "header-name", tokenChars),
		r.hcolon,
		r.textValue("header-value"),
		r.sws,
		lineEnd,
	))
	r.headerLine = abnf.AltFirst("message-header", ops[0], ops[1:]...)
}

// media matches m-type SLASH m-subtype *(SEMI m-parameter).
func (r *ruleSet) media(key string, param abnf.Operator) abnf.Operator {
	return abnf.Concat(key, r.tokenAs("m-type"), r.slash, r.tokenAs("m-subtype"), r.params(param))
}

// mParameter matches m-parameter = m-attribute EQUAL m-value, m-value = token / quoted-string.
// In media-range the "q" attribute starts accept-params and is not an m-parameter.
func (r *ruleSet) mParameter(noQ bool) abnf.Operator {
	attr := r.tokenAs("pname")
	if noQ {
		tokenChar := tokenChars.op("token-char")
		attr = abnf.AltFirst(
			"m-attribute",
			abnf.Concat("pname", tokenChar, abnf.Repeat1Inf("1*token-char", tokenChar)),
			abnf.Concat("pname", tokenChars.without("qQ").op("token-char")),
		)
	}
	return abnf.Concat(
		"m-parameter",
		attr,
		r.equal,
		abnf.Concat("pvalue", abnf.AltFirst("m-value", r.quotedString, r.token)),
	)
}

// alphaTag matches 1*8ALPHA *( "-" 1*8ALPHA ).
func (r *ruleSet) alphaTag() abnf.Operator {
	alpha := alphaClass.op("ALPHA")
	return abnf.Concat(
		"alpha-tag",
		r.expect("ALPHA", abnf.Repeat("1*8ALPHA", 1, 8, alpha)),
		abnf.Repeat0Inf("*subtag", abnf.Concat("subtag", r.char('-'), abnf.Repeat("1*8ALPHA", 1, 8, alpha))),
	)
}

// info matches alert-param, info and error-uri = LAQUOT absoluteURI RAQUOT *( SEMI generic-param ).
func (r *ruleSet) info(key string) abnf.Operator {
	return abnf.Concat(key, r.laquot, r.addrSpecInBrackets, r.params(r.genericParam))
}

// cseq matches CSeq = 1*DIGIT [ LWS Method ], the method is optional in responses.
func (r *ruleSet) cseq() abnf.Operator {
	return abnf.Concat(
		"cseq",
		r.digitsAs("seq-num"),
		abnf.Optional("[Method]", abnf.Concat("LWS-Method", r.lws, r.method)),
	)
}

// sipDate matches SIP-date = wkday "," SP date1 SP time SP "GMT".
func (r *ruleSet) sipDate() abnf.Operator {
	digit := digitClass.op("DIGIT")
	fixed := func(key string, n uint) abnf.Operator {
		return abnf.Concat(key, r.expect("DIGIT", abnf.RepeatN(key+"-digits", n, digit)))
	}
	sp := r.char(' ')
	return abnf.Concat(
		"SIP-date",
		r.oneOf("wkday", wkdays),
		r.char(','),
		sp,
		fixed("day", 2),
		sp,
		r.oneOf("month", months),
		sp,
		fixed("year", 4),
		sp,
		fixed("hour", 2),
		r.char(':'),
		fixed("minute", 2),
		r.char(':'),
		fixed("second", 2),
		sp,
		r.lit("GMT"),
	)
}

// retryAfter matches Retry-After = delta-seconds [ comment ] *( SEMI retry-param ).
func (r *ruleSet) retryAfter() abnf.Operator {
	return abnf.Concat(
		"retry-after",
		r.deltaSeconds,
		abnf.Optional("[comment]", r.comment),
		r.params(r.genericParam),
	)
}

// serverVals matches server-val *(LWS server-val), server-val = product / comment.
func (r *ruleSet) serverVals() abnf.Operator {
	// product = token [SLASH product-version]
	product := abnf.Concat(
		"product",
		r.tokenAs("product-name"),
		abnf.Optional("[version]", abnf.Concat("SLASH-version", r.slash, r.tokenAs("product-version"))),
	)
	return abnf.Concat(
		"server-vals",
		abnf.AltFirst("server-val", product, r.comment),
		abnf.Repeat0Inf("*server-val", abnf.AltFirst(
			"LWS-server-val",
			abnf.Concat("LWS-product", r.lws, product),
			r.comment,
		)),
	)
}

// timestamp matches Timestamp = 1*(DIGIT) [ "." *(DIGIT) ] [ LWS delay ], delay = *(DIGIT) [ "." *(DIGIT) ].
func (r *ruleSet) timestamp() abnf.Operator {
	digits := abnf.Repeat0Inf("*DIGIT", digitClass.op("DIGIT"))
	frac := abnf.Concat("fraction", r.char('.'), digits)
	value := abnf.Concat("timestamp-value", r.digits, abnf.Optional("[fraction]", frac))
	delay := abnf.Concat("delay", abnf.AltFirst(
		"delay-alt",
		abnf.Concat("int-delay", r.digits, abnf.Optional("[fraction]", frac)),
		abnf.Concat("frac-delay", r.char('.'), r.digits),
	))
	return abnf.Concat("timestamp", value, abnf.Optional("[delay]", abnf.Concat("LWS-delay", r.lws, delay)))
}

// viaParmOp matches via-parm = sent-protocol LWS sent-by *( SEMI via-params ).
// The received parameter accepts a bare IPv6address.
func (r *ruleSet) viaParmOp() abnf.Operator {
	// sent-protocol = protocol-name SLASH protocol-version SLASH transport
	sentProtocol := abnf.Concat(
		"sent-protocol",
		r.tokenAs("protocol-name"),
		r.slash,
		r.tokenAs("protocol-version"),
		r.slash,
		r.tokenAs("transport"),
	)
	// sent-by = host [ COLON port ]
	sentBy := abnf.Concat(
		"sent-by",
		r.host,
		abnf.Optional("[port]", abnf.Concat("COLON-port", r.colon, r.digitsAs("port"))),
	)
	received := abnf.Concat(
		"generic-param",
		abnf.Concat("pname", abnf.Literal("received", []byte("received"))),
		r.equal,
		abnf.Concat("pvalue", r.ipv6Address),
	)
	return abnf.Concat(
		"via-parm",
		sentProtocol,
		r.lws,
		sentBy,
		r.params(abnf.AltFirst("via-param", received, r.genericParam)),
	)
}

// warningValueOp matches warning-value = warn-code SP warn-agent SP warn-text.
// The agent is a hostport if it is followed by SP, otherwise a pseudonym token.
func (r *ruleSet) warningValueOp() abnf.Operator {
	sp := r.char(' ')
	text := abnf.Concat("warn-text", r.qsNode)
	return abnf.Concat(
		"warning-value",
		abnf.Concat("warn-code", r.expect("DIGIT", abnf.RepeatN("3DIGIT", 3, digitClass.op("DIGIT")))),
		sp,
		abnf.AltFirst(
			"warn-agent-text",
			abnf.Concat("agent-text", abnf.Concat("warn-agent", r.hostport), sp, text),
			abnf.Concat("agent-text", abnf.Concat("warn-agent", r.token), sp, text),
		),
	)
}
