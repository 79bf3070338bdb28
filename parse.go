package sipcodec

import (
	"errors"
	"log/slog"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipcodec/header"
	"github.com/ghettovoice/sipcodec/internal/grammar"
	"github.com/ghettovoice/sipcodec/internal/log"
	"github.com/ghettovoice/sipcodec/uri"
)

// maxLoggedInput is how much of the folded input a debug record carries.
const maxLoggedInput = 256

// ParseOptions are options of [Parse].
type ParseOptions struct {
	// StartRule is the grammar rule the whole input must match, [RuleSIPMessage] by default.
	StartRule Rule
	// Logger receives debug records of the parse stages, no logging by default.
	Logger *slog.Logger
}

func (o *ParseOptions) rule() Rule {
	if o == nil || o.StartRule == "" {
		return RuleSIPMessage
	}
	return o.StartRule
}

func (o *ParseOptions) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return log.Noop
	}
	return o.Logger
}

// Parse parses the input starting from the rule of the options.
//
// The result type depends on the rule:
//   - SIP_message gives [Message];
//   - Request_Line gives [*RequestLine], Status_Line gives [*StatusLine];
//   - message_header gives [Header];
//   - Request_URI, SIP_URI, SIPS_URI and absoluteURI give [URI];
//   - name_addr and contact_param give [header.NameAddr], via_parm gives [header.ViaHop],
//     warning_value gives [header.WarningEntry], media_range gives [header.MIMEType],
//     encoding gives [header.EncodingRange], language gives [header.LanguageRange],
//     hostport gives [header.Addr].
//
// A grammar mismatch gives [*SyntaxError]. A full message that violates RFC 3261
// gives [*ParsedError] holding the message as far as it was built.
func Parse[T ~string | ~[]byte](s T, opts *ParseOptions) (any, error) {
	rule, logger := opts.rule(), opts.logger()
	if !rule.IsValid() {
		return nil, errtrace.Wrap(ErrUnknownRule)
	}

	src := trimLeadingCRLF([]byte(s))
	folded := FoldLWS(src)
	logger.Debug("parse input",
		slog.String("rule", string(rule)),
		slog.Int("size", len(src)),
		slog.Int("folded_size", len(folded)),
		slog.Any("input", log.ShortStringValue(folded, maxLoggedInput)),
	)

	node, err := grammar.Parse(folded, rule)
	if err != nil {
		var serr *SyntaxError
		if errors.As(err, &serr) {
			serr.Folded = true
		}
		logger.Warn("syntax error", slog.String("rule", string(rule)), slog.Any("error", err))
		return nil, errtrace.Wrap(err)
	}

	if rule != RuleSIPMessage {
		return buildRule(node), nil
	}

	res := buildMessage(node)
	logger.Debug("message built",
		slog.String("start_line", res.msg.String()),
		slog.Int("headers", len(res.msg.MessageHeaders())),
		slog.Int("body_size", len(res.msg.MessageBody())),
	)
	if perr := validate(res); perr != nil {
		logger.Warn("invalid message",
			slog.Uint64("status", uint64(perr.StatusCode)),
			slog.String("reason", perr.ReasonPhrase),
			slog.Any("message", log.CalcValue(func() any { return res.msg.String() })),
		)
		return nil, errtrace.Wrap(perr)
	}
	return res.msg, nil
}

// ParseRule is like [Parse] with the given start rule.
func ParseRule[T ~string | ~[]byte](s T, rule Rule) (any, error) {
	return errtrace.Wrap2(Parse(s, &ParseOptions{StartRule: rule}))
}

// ParseMessage parses a full SIP message.
func ParseMessage[T ~string | ~[]byte](s T) (Message, error) {
	v, err := Parse(s, nil)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return v.(Message), nil //nolint:forcetypeassert
}

func buildRule(node *grammar.Node) any {
	switch node.Key {
	case "Request-Line":
		return buildRequestLine(node)
	case "Status-Line":
		return buildStatusLine(node)
	case "Request-URI", "SIP-URI", "SIPS-URI", "absoluteURI", "telephone-uri":
		return uri.FromNode(node)
	default:
		if v, ok := header.ValueFromNode(node); ok {
			return v
		}
		// message_header gives the canonical header name or extension-header
		return header.FromNode(node)
	}
}
