package suppliers

import (
	"math/rand"
	"strings"
	"time"

	"github.com/Comcast/datagen/core"

	"github.com/gorhill/cronexpr"
)

// Layouts for the ISO date types.
const (
	ISOLayout       = "2006-01-02T15:04:05"
	ISOMillisLayout = "2006-01-02T15:04:05.000"
)

var strftime = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'b': "Jan",
	'B': "January",
	'd': "02",
	'e': "_2",
	'H': "15",
	'I': "03",
	'M': "04",
	'S': "05",
	'p': "PM",
	'a': "Mon",
	'A': "Monday",
	'z': "-0700",
	'Z': "MST",
	'j': "002",
	'f': "000000",
	'%': "%",
}

// Layout converts a strftime-style format ("%d-%m-%Y") to a Go time
// layout.  A format without any '%' is taken to be a Go layout
// already.
func Layout(format string) (string, error) {
	if !strings.Contains(format, "%") {
		return format, nil
	}
	var acc strings.Builder
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			acc.WriteByte(c)
			continue
		}
		if i+1 == len(format) {
			return "", core.Configf("date format %q ends with %%", format)
		}
		i++
		s, have := strftime[format[i]]
		if !have {
			return "", core.Configf("date format %q: unsupported directive %%%c", format, format[i])
		}
		acc.WriteString(s)
	}
	return acc.String(), nil
}

// Date returns a random time in [Start, Start+Duration) formatted
// with Layout.
type Date struct {
	Start    time.Time
	Duration time.Duration
	Layout   string
}

// NewDate makes a Date.  The duration can't be negative.
func NewDate(start time.Time, d time.Duration, layout string) (*Date, error) {
	if d < 0 {
		return nil, core.Configf("negative date duration %v", d)
	}
	return &Date{
		Start:    start,
		Duration: d,
		Layout:   layout,
	}, nil
}

// Next implements core.Supplier.
func (s *Date) Next(int) (interface{}, error) {
	t := s.Start
	if 0 < s.Duration {
		t = t.Add(time.Duration(rand.Int63n(int64(s.Duration))))
	}
	return t.Format(s.Layout), nil
}

// CronDate returns successive fire times of a cron expression after
// a start time.  Iteration i gives the (i+1)th fire time.
//
// Requests in non-decreasing order are cheap.  An earlier iteration
// means starting over from Start.
type CronDate struct {
	expr   *cronexpr.Expression
	start  time.Time
	layout string

	at   int
	last time.Time
}

// NewCronDate parses the expression and makes a CronDate.
func NewCronDate(expr string, start time.Time, layout string) (*CronDate, error) {
	e, err := cronexpr.Parse(expr)
	if err != nil {
		return nil, core.Configf("cron expression %q: %s", expr, err)
	}
	if e.Next(start).IsZero() {
		return nil, core.Configf("cron expression %q never fires after %s", expr, start)
	}
	return &CronDate{
		expr:   e,
		start:  start,
		layout: layout,
		at:     -1,
		last:   start,
	}, nil
}

// Next implements core.Supplier.
func (s *CronDate) Next(iteration int) (interface{}, error) {
	if iteration < 0 {
		return nil, core.Runtimef("negative iteration %d", iteration)
	}
	if iteration < s.at {
		s.at = -1
		s.last = s.start
	}
	for s.at < iteration {
		t := s.expr.Next(s.last)
		if t.IsZero() {
			return nil, core.Runtimef("cron schedule exhausted after %s", s.last)
		}
		s.last = t
		s.at++
	}
	return s.last.Format(s.layout), nil
}
