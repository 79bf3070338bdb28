package types

import (
	"io"
	"slices"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipcodec/internal/ioutil"
	"github.com/ghettovoice/sipcodec/internal/util"
)

// Param is a single "name[=value]" parameter.
// HasValue is false when the parameter is present without a value ("lr", "rport").
type Param struct {
	Name     string `json:"name"`
	Value    string `json:"value,omitempty"`
	HasValue bool   `json:"has_value,omitempty"`
}

// String renders the parameter without a delimiter.
func (p Param) String() string {
	if !p.HasValue {
		return p.Name
	}
	return p.Name + "=" + p.Value
}

// Params is an ordered parameter list.
// The order of the wire is kept, lookups are case-insensitive and the first match wins.
type Params []Param

func (ps Params) index(name string) int {
	return slices.IndexFunc(ps, func(p Param) bool { return util.EqFold(p.Name, name) })
}

// Get returns the value of the first parameter with the given name.
// ok reports whether the parameter is present at all, with or without a value.
func (ps Params) Get(name string) (val string, ok bool) {
	if i := ps.index(name); i >= 0 {
		return ps[i].Value, true
	}
	return "", false
}

// Has checks whether a parameter with the given name is in the list.
func (ps Params) Has(name string) bool { return ps.index(name) >= 0 }

// Add appends a parameter with a value.
func (ps Params) Add(name, value string) Params {
	return append(ps, Param{Name: name, Value: value, HasValue: true})
}

// AddFlag appends a valueless parameter.
func (ps Params) AddFlag(name string) Params {
	return append(ps, Param{Name: name})
}

// Set replaces the value of the first parameter with the given name or appends a new one.
func (ps Params) Set(name, value string) Params {
	if i := ps.index(name); i >= 0 {
		ps[i].Value, ps[i].HasValue = value, true
		return ps
	}
	return ps.Add(name, value)
}

// Del removes all parameters with the given name.
func (ps Params) Del(name string) Params {
	return slices.DeleteFunc(ps, func(p Param) bool { return util.EqFold(p.Name, name) })
}

// Clone returns a copy of the list.
func (ps Params) Clone() Params { return slices.Clone(ps) }

// Equal compares two lists in order, names are case-insensitive.
func (ps Params) Equal(val any) bool {
	var other Params
	switch v := val.(type) {
	case Params:
		other = v
	case *Params:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return slices.EqualFunc(ps, other, func(p1, p2 Param) bool {
		return util.EqFold(p1.Name, p2.Name) && p1.HasValue == p2.HasValue && p1.Value == p2.Value
	})
}

// RenderTo writes the list as ";name[=value]" items.
func (ps Params) RenderTo(w io.Writer) (num int, err error) {
	return errtrace.Wrap2(ps.RenderEscapedTo(w, ";", nil))
}

// RenderEscapedTo writes every parameter prefixed by sep, names and values are passed through esc when it is not nil.
func (ps Params) RenderEscapedTo(w io.Writer, sep string, esc func(string) string) (num int, err error) {
	if len(ps) == 0 {
		return 0, nil
	}
	if esc == nil {
		esc = func(s string) string { return s }
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	for _, p := range ps {
		cw.WriteString(sep) //nolint:errcheck
		cw.WriteString(esc(p.Name)) //nolint:errcheck
		if p.HasValue {
			cw.WriteString("=") //nolint:errcheck
			cw.WriteString(esc(p.Value)) //nolint:errcheck
		}
	}
	return errtrace.Wrap2(cw.Result())
}

// String renders the list with ";" delimiters.
func (ps Params) String() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	ps.RenderTo(sb) //nolint:errcheck
	return sb.String()
}
