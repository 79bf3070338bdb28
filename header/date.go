package header

import (
	"fmt"
	"io"
	"slices"
	"time"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipcodec/internal/grammar"
	"github.com/ghettovoice/sipcodec/internal/types"
)

// Date represents the Date header field, a SIP-date in the RFC 1123 form.
// Fields are kept as written, so an out of range value survives parsing and fails [Date.IsValid].
type Date struct {
	Wkday  string
	Day    Number
	Month  string
	Year   Number
	Hour   Number
	Minute Number
	Second Number
}

// CanonicName returns the canonical name of the header.
func (*Date) CanonicName() Name { return "Date" }

// CompactName returns the compact name of the header.
func (*Date) CompactName() Name { return "Date" }

// RenderTo writes the header to the provided writer.
func (hdr *Date) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHeaderTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr *Date) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHeader(hdr, opts)
}

func (hdr *Date) String() string { return hdr.RenderValue() }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr *Date) Format(f fmt.State, verb rune) {
	type hideMethods Date
	type Date hideMethods
	formatHeader(f, verb, hdr, (*Date)(hdr))
}

func (hdr *Date) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *Date) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[*Date](data)
	if h == nil {
		*hdr = Date{}
	} else {
		*hdr = *h
	}
	return errtrace.Wrap(err)
}

var (
	wkdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	months = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
)

// NewDate creates a Date header from t converted to GMT.
func NewDate(t time.Time) *Date {
	t = t.UTC()
	return &Date{
		Wkday:  wkdays[t.Weekday()],
		Day:    Num(uint64(t.Day())).WithWidth(2),
		Month:  months[t.Month()-1],
		Year:   Num(uint64(t.Year())).WithWidth(4),
		Hour:   Num(uint64(t.Hour())).WithWidth(2),
		Minute: Num(uint64(t.Minute())).WithWidth(2),
		Second: Num(uint64(t.Second())).WithWidth(2),
	}
}

// RenderValue returns the header value without the name prefix.
func (hdr *Date) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return fmt.Sprintf("%s, %s %s %s %s:%s:%s GMT",
		hdr.Wkday, hdr.Day.WithWidth(2), hdr.Month, hdr.Year.WithWidth(4),
		hdr.Hour.WithWidth(2), hdr.Minute.WithWidth(2), hdr.Second.WithWidth(2))
}

// Time returns the date as [time.Time] in UTC.
// ok is false when the fields do not form a valid date.
func (hdr *Date) Time() (t time.Time, ok bool) {
	if hdr == nil {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC1123, hdr.RenderValue())
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// Clone returns a copy of the header.
func (hdr *Date) Clone() Header {
	if hdr == nil {
		return hdr
	}
	hdr2 := *hdr
	return &hdr2
}

// Equal compares this header with another for equality.
func (hdr *Date) Equal(val any) bool {
	var other *Date
	switch v := val.(type) {
	case Date:
		other = &v
	case *Date:
		other = v
	default:
		return false
	}
	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}
	return hdr.Wkday == other.Wkday &&
		hdr.Day.Equal(other.Day) &&
		hdr.Month == other.Month &&
		hdr.Year.Equal(other.Year) &&
		hdr.Hour.Equal(other.Hour) &&
		hdr.Minute.Equal(other.Minute) &&
		hdr.Second.Equal(other.Second)
}

// IsValid checks whether the header holds a valid calendar date.
func (hdr *Date) IsValid() bool {
	if hdr == nil || !slices.Contains(wkdays, hdr.Wkday) || !slices.Contains(months, hdr.Month) {
		return false
	}
	_, ok := hdr.Time()
	return ok
}

func buildFromDateNode(node *grammar.Node) *Date {
	num := func(key string, width int) Number {
		return types.MustParseNumber(grammar.MustGetNode(node, key).Value).WithWidth(width)
	}
	return &Date{
		Wkday:  grammar.MustGetNode(node, "wkday").String(),
		Day:    num("day", 2),
		Month:  grammar.MustGetNode(node, "month").String(),
		Year:   num("year", 4),
		Hour:   num("hour", 2),
		Minute: num("minute", 2),
		Second: num("second", 2),
	}
}
