package bonus

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("invalid calendar date")

const (
	dateLayout = "2006-01-02"
	// Date.prototype.toDateString() output written by the old site
	legacyDateLayout = "Mon Jan 02 2006"
)

// Date is a calendar day. The zero value means "never".
type Date struct {
	year  int
	month time.Month
	day   int
}

func DateOf(t time.Time, loc *time.Location) Date {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	for _, layout := range []string{dateLayout, legacyDateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t, nil), nil
		}
	}
	return Date{}, ErrInvalidDate
}

func (d Date) IsZero() bool { return d == Date{} }

func (d Date) Equal(other Date) bool { return d == other }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC).Format(dateLayout)
}
