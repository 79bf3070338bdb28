package grammar

import (
	"net"

	"github.com/ghettovoice/abnf"
	"github.com/ghettovoice/abnf/pkg/abnf_core"
)

func (r *ruleSet) initURI() {
	r.hostname = r.hostnameOp()
	r.host = r.expect("host", abnf.AltFirst("host", r.ipv6Reference(), r.hostname, r.ipv4Address()))
	r.ipv6Address = r.ipv6AddressOp()
	// hostport = host [ ":" port ]
	r.hostport = abnf.Concat(
		"hostport",
		r.host,
		abnf.Optional("[port]", abnf.Concat("COLON-port", r.char(':'), r.digitsAs("port"))),
	)
	// user = 1*( unreserved / escaped / user-unreserved )
	r.user = r.escRun("user", "user", userChars, false)

	r.sipURI = r.sipURIOp("SIP-URI", "sip:", false)
	r.sipsURI = r.sipURIOp("SIPS-URI", "sips:", false)
	r.absoluteURI = r.absoluteURIOp(uricChars)

	// inside angle brackets a SIP URI must be followed by ">", otherwise it is taken as absoluteURI
	r.addrSpecInBrackets = r.followedBy("addr-spec", r.raquot, r.sipURI, r.sipsURI, r.absoluteURI)
	// name-addr = [ display-name ] LAQUOT addr-spec RAQUOT
	r.nameAddr = abnf.Concat(
		"name-addr",
		abnf.Optional("[display-name]", r.displayName()),
		r.laquot,
		r.addrSpecInBrackets,
	)
}

// followedBy matches the first of the URI forms that is followed by next,
// the matched URI is wrapped into a node with the given key.
func (r *ruleSet) followedBy(key string, next abnf.Operator, uris ...abnf.Operator) abnf.Operator {
	ops := make([]abnf.Operator, len(uris))
	for i, u := range uris {
		ops[i] = abnf.Concat(key+"-next", abnf.Concat(key, u), next)
	}
	return abnf.AltFirst(key+"-alt", ops[0], ops[1:]...)
}

// bareAddrSpec matches addr-spec outside of angle brackets.
// A SIP URI there has no parameters and headers, an absoluteURI stops at ";" and ",".
func (r *ruleSet) bareAddrSpec() abnf.Operator {
	return abnf.AltFirst(
		"addr-spec-alt",
		abnf.Concat("addr-spec", r.sipURIOp("SIP-URI", "sip:", true)),
		abnf.Concat("addr-spec", r.sipURIOp("SIPS-URI", "sips:", true)),
		abnf.Concat("addr-spec", r.absoluteURIOp(uricChars.without(";,"))),
	)
}

// hostnameOp matches hostname = *( domainlabel "." ) toplabel [ "." ].
func (r *ruleSet) hostnameOp() abnf.Operator {
	alnum := alphanumClass.op("alphanum")
	inner := abnf.Repeat0Inf("*label-char", tokenOrDash(alnum))
	// domainlabel = alphanum / alphanum *( alphanum / "-" ) alphanum
	domainlabel := abnf.Concat("domainlabel", alnum, abnf.Optional("[label-tail]", abnf.Concat("label-tail", inner, alnum)))
	// toplabel = ALPHA / ALPHA *( alphanum / "-" ) alphanum
	toplabel := abnf.Concat("toplabel", alphaClass.op("ALPHA"), abnf.Optional("[label-tail]", abnf.Concat("label-tail", inner, alnum)))
	dot := abnf.LiteralCS(".", []byte("."))
	return abnf.Concat(
		"hostname",
		abnf.Repeat0Inf("*domainlabel", abnf.Concat("domainlabel-dot", domainlabel, dot)),
		toplabel,
		abnf.Optional("[.]", dot),
	)
}

func tokenOrDash(alnum abnf.Operator) abnf.Operator {
	return abnf.AltFirst("label-char", alnum, abnf.LiteralCS("-", []byte("-")))
}

// ipv4Address matches IPv4address = dec-octet "." dec-octet "." dec-octet "." dec-octet.
func (r *ruleSet) ipv4Address() abnf.Operator {
	digit := abnf_core.Operators().DIGIT
	lit := func(s string) abnf.Operator { return abnf.LiteralCS(s, []byte(s)) }
	rng := func(lo, hi byte) abnf.Operator { return abnf.Range("range", []byte{lo}, []byte{hi}) }
	// dec-octet = "25" %x30-35 / "2" %x30-34 DIGIT / "1" 2DIGIT / %x31-39 DIGIT / DIGIT
	octet := abnf.Alt(
		"dec-octet",
		abnf.Concat("25x", lit("25"), rng('0', '5')),
		abnf.Concat("2xx", lit("2"), rng('0', '4'), digit),
		abnf.Concat("1xx", lit("1"), digit, digit),
		abnf.Concat("xx", rng('1', '9'), digit),
		digit,
	)
	dot := lit(".")
	return abnf.Concat("IPv4address", octet, dot, octet, dot, octet, dot, octet)
}

// ipv6AddressOp matches IPv6address = hexpart [ ":" IPv4address ].
// The grammar is loose about the number of groups, the match is checked as an IP address too.
func (r *ruleSet) ipv6AddressOp() abnf.Operator {
	colon := abnf.LiteralCS(":", []byte(":"))
	dcolon := abnf.LiteralCS("::", []byte("::"))
	// hex4 = 1*4HEXDIG
	hex4 := abnf.Repeat("hex4", 1, 4, abnf_core.Operators().HEXDIG)
	// hexseq = hex4 *( ":" hex4)
	hexseq := abnf.ConcatAll("hexseq", hex4, abnf.Repeat0Inf("*hex4", abnf.ConcatAll(":hex4", colon, hex4)))
	// hexpart = hexseq / hexseq "::" [ hexseq ] / "::" [ hexseq ]
	hexpart := abnf.Alt(
		"hexpart",
		hexseq,
		abnf.ConcatAll("hexseq::", hexseq, dcolon, abnf.Optional("[hexseq]", hexseq)),
		abnf.ConcatAll("::hexseq", dcolon, abnf.Optional("[hexseq]", hexseq)),
	)
	addr := abnf.ConcatAll("IPv6", hexpart, abnf.Optional("[IPv4]", abnf.Concat(":IPv4", colon, r.ipv4Address())))
	return valid("IPv6address", addr, func(v []byte) bool { return net.ParseIP(string(v)) != nil })
}

// ipv6Reference matches IPv6reference = "[" IPv6address "]".
func (r *ruleSet) ipv6Reference() abnf.Operator {
	return abnf.Concat("IPv6reference", r.char('['), r.expect("IPv6address", r.ipv6AddressOp()), r.char(']'))
}

// sipURIOp matches SIP-URI and SIPS-URI = scheme ":" [ userinfo ] hostport uri-parameters [ headers ].
func (r *ruleSet) sipURIOp(key, scheme string, bare bool) abnf.Operator {
	// userinfo = user [ ":" password ] "@"
	userinfo := abnf.Concat(
		"userinfo",
		r.user,
		abnf.Optional("[password]", abnf.Concat(":password", r.char(':'), r.escRun("password", "", passwdChars, true))),
		r.char('@'),
	)
	if bare {
		return abnf.Concat(key, r.lit(scheme), abnf.Optional("[userinfo]", userinfo), r.hostport)
	}

	// uri-parameters = *( ";" uri-parameter ), uri-parameter = pname [ "=" pvalue ]
	param := abnf.Concat(
		"uri-parameter",
		r.escRun("pname", "pname", paramChars, false),
		abnf.Optional("[pvalue]", abnf.Concat("=pvalue", r.char('='), r.escRun("pvalue", "pvalue", paramChars, false))),
	)
	params := abnf.Concat("uri-parameters", abnf.Repeat1Inf("1*uri-parameter", abnf.Concat(";uri-parameter", r.char(';'), param)))

	// headers = "?" header *( "&" header ), header = hname "=" hvalue
	header := abnf.Concat(
		"header",
		r.escRun("hname", "hname", headerChars, false),
		r.char('='),
		r.escRun("hvalue", "", headerChars, true),
	)
	headers := abnf.Concat(
		"headers",
		r.char('?'),
		header,
		abnf.Repeat0Inf("*header", abnf.Concat("&header", r.char('&'), header)),
	)

	return abnf.Concat(
		key,
		r.lit(scheme),
		abnf.Optional("[userinfo]", userinfo),
		r.hostport,
		abnf.Optional("[uri-parameters]", params),
		abnf.Optional("[headers]", headers),
	)
}

// absoluteURIOp matches absoluteURI = scheme ":" ( hier-part / opaque-part ).
// Both parts are kept as one opaque string of the given class.
func (r *ruleSet) absoluteURIOp(cc *charClass) abnf.Operator {
	// scheme = ALPHA *( ALPHA / DIGIT / "+" / "-" / "." )
	scheme := r.expect("scheme", abnf.Concat(
		"scheme",
		alphaClass.op("ALPHA"),
		abnf.Repeat0Inf("*scheme-char", schemeChars.op("scheme-char")),
	))
	return abnf.Concat("absoluteURI", scheme, r.char(':'), r.escRun("opaque", "uric", cc, false))
}

// requestURI matches Request-URI = SIP-URI / SIPS-URI / absoluteURI followed by next.
func (r *ruleSet) requestURI(next abnf.Operator) abnf.Operator {
	return r.followedBy("Request-URI", next, r.sipURI, r.sipsURI, r.absoluteURI)
}

// displayName matches display-name = *( token LWS ) / quoted-string.
// Trailing LWS of unquoted names is not part of the node.
func (r *ruleSet) displayName() abnf.Operator {
	return abnf.AltFirst(
		"display-name-alt",
		abnf.Concat("display-name", r.quotedString),
		abnf.Concat(
			"display-name",
			r.token,
			abnf.Repeat0Inf("*LWS-token", abnf.Concat("LWS-token", r.lws, r.token)),
		),
	)
}

// addr matches ( name-addr / addr-spec ) followed by header parameters.
func (r *ruleSet) addr(key string, param abnf.Operator) abnf.Operator {
	return abnf.Concat(
		key,
		abnf.AltFirst("addr-alt", r.nameAddr, r.bareAddrSpec()),
		r.params(param),
	)
}

// routeAddr matches rec-route and route-param = name-addr *( SEMI rr-param ).
func (r *ruleSet) routeAddr(key string) abnf.Operator {
	return abnf.Concat(key, r.nameAddr, r.params(r.genericParam))
}
