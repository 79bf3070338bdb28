package sipcodec

import (
	"github.com/ghettovoice/sipcodec/header"
	"github.com/ghettovoice/sipcodec/internal/grammar"
	"github.com/ghettovoice/sipcodec/internal/types"
	"github.com/ghettovoice/sipcodec/uri"
)

// Header represents a generic SIP header.
// See [header.Header].
type Header = header.Header

// HeaderName is a SIP header name.
// See [header.Name].
type HeaderName = header.Name

// URI represents a generic URI.
// See [uri.URI].
type URI = uri.URI

// Number is an unsigned decimal of any width.
// See [types.Number].
type Number = types.Number

// Version is a SIP-Version of a start-line.
type Version = types.Version

// SIP20 is SIP/2.0, the only version a valid message may carry.
var SIP20 = types.SIP20

// RequestMethod represents a SIP request method.
type RequestMethod = types.RequestMethod

// Request method constants.
const (
	RequestMethodAck       = types.RequestMethodAck
	RequestMethodBye       = types.RequestMethodBye
	RequestMethodCancel    = types.RequestMethodCancel
	RequestMethodInfo      = types.RequestMethodInfo
	RequestMethodInvite    = types.RequestMethodInvite
	RequestMethodMessage   = types.RequestMethodMessage
	RequestMethodNotify    = types.RequestMethodNotify
	RequestMethodOptions   = types.RequestMethodOptions
	RequestMethodPrack     = types.RequestMethodPrack
	RequestMethodPublish   = types.RequestMethodPublish
	RequestMethodRefer     = types.RequestMethodRefer
	RequestMethodRegister  = types.RequestMethodRegister
	RequestMethodSubscribe = types.RequestMethodSubscribe
	RequestMethodUpdate    = types.RequestMethodUpdate
)

// RenderOptions contains options for rendering messages, headers and URIs.
type RenderOptions = types.RenderOptions

// Renderer is implemented by every value that renders back to wire text.
type Renderer = types.Renderer

// Rule is a name of a grammar start rule.
type Rule = grammar.Rule

// Start rules accepted by [Parse].
const (
	RuleSIPMessage    = grammar.SIPMessage
	RuleRequestLine   = grammar.RequestLine
	RuleStatusLine    = grammar.StatusLine
	RuleMessageHeader = grammar.MessageHeader
	RuleRequestURI    = grammar.RequestURI
	RuleSIPURI        = grammar.SIPURI
	RuleSIPSURI       = grammar.SIPSURI
	RuleAbsoluteURI   = grammar.AbsoluteURI
	RuleTelURI        = grammar.TelURI
	RuleNameAddr      = grammar.NameAddr
	RuleHostport      = grammar.Hostport
	RuleEncoding      = grammar.Encoding
	RuleMediaRange    = grammar.MediaRange
	RuleLanguage      = grammar.Language
	RuleViaParm       = grammar.ViaParm
	RuleContactParam  = grammar.ContactParam
	RuleWarningValue  = grammar.WarningValue
)
