package header

import (
	"errors"
	"fmt"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipcodec/internal/grammar"
	"github.com/ghettovoice/sipcodec/internal/types"
)

// WarningEntry is a single warning-value of the Warning header.
// Agent is a host[:port] or a pseudonym token, Text is kept unquoted.
type WarningEntry struct {
	Code  Number
	Agent string
	Text  string
}

func (wrn WarningEntry) String() string {
	return fmt.Sprintf("%s %s %s", wrn.Code.WithWidth(3), wrn.Agent, grammar.Quote(wrn.Text))
}

func (wrn WarningEntry) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, wrn.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(wrn.String()))
	default:
		if !f.Flag('+') && !f.Flag('#') {
			fmt.Fprint(f, wrn.String())
			return
		}

		type hideMethods WarningEntry
		type WarningEntry hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), WarningEntry(wrn))
	}
}

func (wrn WarningEntry) Equal(val any) bool {
	var other WarningEntry
	switch v := val.(type) {
	case WarningEntry:
		other = v
	case *WarningEntry:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return wrn.Code.Equal(other.Code) && wrn.Agent == other.Agent && wrn.Text == other.Text
}

// IsValid checks the code is three digits and the agent is a hostport or a token.
func (wrn WarningEntry) IsValid() bool {
	if len(wrn.Code.Digits()) > 3 || wrn.Code.IsZero() {
		return false
	}
	if _, err := types.ParseAddr(wrn.Agent); err == nil {
		return true
	}
	return grammar.IsToken(wrn.Agent)
}

func (wrn WarningEntry) IsZero() bool {
	return wrn.Code.IsZero() && wrn.Agent == "" && wrn.Text == ""
}

func (wrn WarningEntry) MarshalText() ([]byte, error) {
	return []byte(wrn.String()), nil
}

func (wrn *WarningEntry) UnmarshalText(data []byte) error {
	node, err := grammar.Parse(data, grammar.WarningValue)
	if err != nil {
		*wrn = WarningEntry{}
		if errors.Is(err, grammar.ErrEmptyInput) {
			return nil
		}
		return errtrace.Wrap(err)
	}

	*wrn = buildFromWarningValueNode(node)
	return nil
}

func buildFromWarningValueNode(node *grammar.Node) WarningEntry {
	return WarningEntry{
		Code:  types.MustParseNumber(grammar.MustGetNode(node, "warn-code").Value).WithWidth(3),
		Agent: grammar.MustGetNode(node, "warn-agent").String(),
		Text:  grammar.Unquote(grammar.MustGetNode(node, "warn-text").String()),
	}
}

func buildFromWarningNodes(nodes grammar.Nodes) Warning {
	hdr := make(Warning, len(nodes))
	for i, n := range nodes {
		hdr[i] = buildFromWarningValueNode(n)
	}
	return hdr
}

func cloneWarningEntry(wrn WarningEntry) WarningEntry { return wrn }

func equalWarningEntry(a, b WarningEntry) bool { return a.Equal(b) }
