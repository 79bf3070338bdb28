package grammar

import (
	"slices"
	"strconv"
	"sync"

	"github.com/ghettovoice/abnf"
	"github.com/ghettovoice/abnf/pkg/abnf_core"
)

// tracker keeps the furthest input position where a labelled element failed to match
// and the labels expected there.
type tracker struct {
	pos int
	exp []string
}

func (t *tracker) reset() {
	t.pos = -1
	t.exp = t.exp[:0]
}

func (t *tracker) fail(pos int, exp string) {
	switch {
	case pos > t.pos:
		t.pos = pos
		t.exp = append(t.exp[:0], exp)
	case pos == t.pos && !slices.Contains(t.exp, exp):
		t.exp = append(t.exp, exp)
	}
}

// ruleSet holds the SIP grammar built from abnf operators.
// Labelled operators report their failures to the tracker, so a rule set serves one parse at a time.
type ruleSet struct {
	tr    tracker
	start map[Rule]abnf.Operator

	crlf, wsp, lws, sws, hcolon      abnf.Operator
	semi, comma, equal, slash, colon abnf.Operator
	laquot, raquot                   abnf.Operator

	token, word, digits                   abnf.Operator
	quotedString, qsNode, comment         abnf.Operator
	genericParam                          abnf.Operator
	host, hostname, ipv6Address, hostport abnf.Operator
	user                                  abnf.Operator
	sipURI, sipsURI, absoluteURI          abnf.Operator
	nameAddr, addrSpecInBrackets          abnf.Operator
	method, deltaSeconds, callID          abnf.Operator

	mediaRange, mediaType, encoding, language abnf.Operator
	viaParm, contactParam, warningValue       abnf.Operator
	headerLine                                abnf.Operator

	requestLine, statusLine, message abnf.Operator

	telURI, globalNumberDigits, localNumberDigits, telPname abnf.Operator
}

var ruleSets = sync.Pool{
	New: func() any { return newRuleSet() },
}

func getRuleSet() *ruleSet {
	r := ruleSets.Get().(*ruleSet) //nolint:forcetypeassert
	r.tr.reset()
	return r
}

func putRuleSet(r *ruleSet) { ruleSets.Put(r) }

func newRuleSet() *ruleSet {
	r := &ruleSet{}
	r.tr.reset()
	r.initCore()
	r.initURI()
	r.initGenericParam()
	r.initTel()
	r.initHeaders()
	r.initMessage()
	r.initStartRules()
	return r
}

// expect reports a failure of op to the tracker under the given label.
func (r *ruleSet) expect(exp string, op abnf.Operator) abnf.Operator {
	return func(in []byte, pos uint, ns *abnf.Nodes) error {
		if err := op(in, pos, ns); err != nil {
			r.tr.fail(int(pos), exp)
			return err //errtrace:skip
		}
		return nil
	}
}

// char matches a single octet exactly.
func (r *ruleSet) char(c byte) abnf.Operator {
	return r.expect(strconv.QuoteRune(rune(c)), abnf.LiteralCS(string(c), []byte{c}))
}

// lit matches a case-insensitive string, ABNF quoted strings are case-insensitive.
func (r *ruleSet) lit(s string) abnf.Operator {
	return r.expect(strconv.Quote(s), abnf.Literal(s, []byte(s)))
}

// run matches the longest run of at least one octet of the class.
// An empty label leaves failures unreported.
func (r *ruleSet) run(key, exp string, cc *charClass) abnf.Operator {
	op := abnf.Concat(key, abnf.Repeat1Inf("1*"+key, cc.op(key+"-char")))
	if exp == "" {
		return op
	}
	return r.expect(exp, op)
}

// escRun is like run but also accepts "%" HEXDIG HEXDIG escapes,
// an optional run may match nothing.
func (r *ruleSet) escRun(key, exp string, cc *charClass, optional bool) abnf.Operator {
	elem := abnf.AltFirst(key+"-char", cc.without("%").op(key+"-char"), r.escaped())
	if optional {
		return abnf.Concat(key, abnf.Repeat0Inf("*"+key, elem))
	}
	op := abnf.Concat(key, abnf.Repeat1Inf("1*"+key, elem))
	if exp == "" {
		return op
	}
	return r.expect(exp, op)
}

func (r *ruleSet) escaped() abnf.Operator {
	hex := abnf_core.Operators().HEXDIG
	return abnf.Concat("escaped", abnf.LiteralCS("%", []byte("%")), hex, hex)
}

// tokenAs matches a token under the given node key.
func (r *ruleSet) tokenAs(key string) abnf.Operator { return r.run(key, "token", tokenChars) }

// digitsAs matches 1*DIGIT under the given node key.
func (r *ruleSet) digitsAs(key string) abnf.Operator { return r.run(key, "DIGIT", digitClass) }

// sep matches SWS c SWS, the form of SEMI, COMMA, EQUAL, SLASH and friends.
func (r *ruleSet) sep(key string, c byte) abnf.Operator {
	return abnf.Concat(key, r.sws, r.char(c), r.sws)
}

// params matches *( SEMI param ).
func (r *ruleSet) params(param abnf.Operator) abnf.Operator {
	return abnf.Repeat0Inf("*params", abnf.Concat("SEMI-param", r.semi, param))
}

// list matches elem *( COMMA elem ).
func (r *ruleSet) list(elem abnf.Operator) abnf.Operator {
	return abnf.Concat("list", elem, abnf.Repeat0Inf("*COMMA-elem", abnf.Concat("COMMA-elem", r.comma, elem)))
}

// optList matches [ elem *( COMMA elem ) ].
func (r *ruleSet) optList(elem abnf.Operator) abnf.Operator {
	return abnf.Optional("[list]", r.list(elem))
}

// oneOf matches the first of the given strings.
func (r *ruleSet) oneOf(key string, vals []string) abnf.Operator {
	ops := make([]abnf.Operator, len(vals))
	for i, v := range vals {
		ops[i] = r.lit(v)
	}
	return abnf.AltFirst(key, ops[0], ops[1:]...)
}

// valid keeps the longest match of op accepted by fn.
func valid(key string, op abnf.Operator, fn func(v []byte) bool) abnf.Operator {
	return func(in []byte, pos uint, ns *abnf.Nodes) error {
		subns := abnf.NewNodes()
		defer subns.Free()
		if err := op(in, pos, subns); err != nil {
			return err //errtrace:skip
		}
		var best *abnf.Node
		for _, n := range subns.All() {
			if n.Len() > best.Len() && fn(n.Value) {
				best = n
			}
		}
		if best == nil {
			return abnf.ErrNotMatched //errtrace:skip
		}
		ns.Append(&abnf.Node{Key: key, Pos: pos, Value: best.Value, Children: abnf.Nodes{best}})
		return nil
	}
}

// eoi matches the end of input.
func eoi(in []byte, pos uint, ns *abnf.Nodes) error {
	if int(pos) < len(in) {
		return abnf.ErrNotMatched //errtrace:skip
	}
	ns.Append(&abnf.Node{Key: "EOI", Pos: pos, Value: in[pos:pos]})
	return nil
}

// lineEnd matches nothing at the end of input or before CRLF that does not start LWS.
func lineEnd(in []byte, pos uint, ns *abnf.Nodes) error {
	p := int(pos)
	if p < len(in) && (p+1 >= len(in) || in[p] != '\r' || in[p+1] != '\n' || p+2 < len(in) && isWSP(in[p+2])) {
		return abnf.ErrNotMatched //errtrace:skip
	}
	ns.Append(&abnf.Node{Key: "line-end", Pos: pos, Value: in[pos:pos]})
	return nil
}

// rest matches the remaining input.
func rest(key string) abnf.Operator {
	return func(in []byte, pos uint, ns *abnf.Nodes) error {
		ns.Append(&abnf.Node{Key: key, Pos: pos, Value: in[pos:]})
		return nil
	}
}

// line matches a start rule that may be followed by a single CRLF.
func (r *ruleSet) line(op abnf.Operator) abnf.Operator {
	return abnf.Concat("line", op, abnf.Optional("[CRLF]", r.crlf))
}
