package types

import (
	"fmt"
	"strconv"

	"github.com/ghettovoice/sipcodec/internal/grammar"
	"github.com/ghettovoice/sipcodec/internal/util"
)

// ProtoInfo is a protocol name and version pair as it appears in Via sent-protocol.
type ProtoInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

func (p ProtoInfo) String() string { return p.Name + "/" + p.Version }

func (p ProtoInfo) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, p.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(p.String()))
		return
	default:
		if !f.Flag('+') && !f.Flag('#') {
			fmt.Fprint(f, p.String())
			return
		}

		type hideMethods ProtoInfo
		type ProtoInfo hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), ProtoInfo(p))
		return
	}
}

func (p ProtoInfo) Equal(val any) bool {
	var other ProtoInfo
	switch v := val.(type) {
	case ProtoInfo:
		other = v
	case *ProtoInfo:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return util.EqFold(p.Name, other.Name) && util.EqFold(p.Version, other.Version)
}

func (p ProtoInfo) IsValid() bool { return grammar.IsToken(p.Name) && grammar.IsToken(p.Version) }

func (p ProtoInfo) IsZero() bool { return p.Name == "" && p.Version == "" }

// Version is the SIP-Version of a start-line: "SIP" "/" 1*DIGIT "." 1*DIGIT.
// Major and minor are kept at full width, "SIP/7.0" and "SIP/2.00000000000000000000001"
// both parse and are rejected later by the validator.
type Version struct {
	Name  string `json:"name"`
	Major Number `json:"major"`
	Minor Number `json:"minor"`
}

// SIP20 is the only version the codec accepts on validation.
var SIP20 = Version{Name: "SIP", Major: NewNumber(uint(2))}

func (v Version) String() string { return v.Name + "/" + v.Major.String() + "." + v.Minor.String() }

// Equal compares versions, the name case-insensitively and the numbers numerically.
func (v Version) Equal(val any) bool {
	var other Version
	switch o := val.(type) {
	case Version:
		other = o
	case *Version:
		if o == nil {
			return false
		}
		other = *o
	default:
		return false
	}
	return util.EqFold(v.Name, other.Name) && v.Major.Equal(other.Major) && v.Minor.Equal(other.Minor)
}

func (v Version) IsZero() bool { return v.Name == "" && v.Major.IsZero() && v.Minor.IsZero() }
