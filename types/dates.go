package types

import (
	"time"

	"github.com/Comcast/datagen/core"
	"github.com/Comcast/datagen/suppliers"
)

// now is replaced in tests.
var now = time.Now

const day = 24 * time.Hour

// Date supplies random dates in [start, start+duration_days).  The
// start defaults to now and is moved back offset days.  Dates are
// formatted with the format option (strftime or a Go layout).
func Date(fs *core.FieldSpec, l core.Loader) (core.Supplier, error) {
	p := paramsOf(fs, l)
	layout, err := suppliers.Layout(p.String("format", DateFormatDefault, "02-01-2006"))
	if err != nil {
		return nil, err
	}
	return date(p, layout)
}

// DateISO is Date with the ISO 8601 layout.
func DateISO(fs *core.FieldSpec, l core.Loader) (core.Supplier, error) {
	return date(paramsOf(fs, l), suppliers.ISOLayout)
}

// DateISOMillis is Date with the ISO 8601 layout with milliseconds.
func DateISOMillis(fs *core.FieldSpec, l core.Loader) (core.Supplier, error) {
	return date(paramsOf(fs, l), suppliers.ISOMillisLayout)
}

func date(p *params, layout string) (core.Supplier, error) {
	start, err := startTime(p, layout)
	if err != nil {
		return nil, err
	}
	offset, err := p.Float("offset", "", 0)
	if err != nil {
		return nil, err
	}
	days, err := p.Float("duration_days", DateDurationDaysDefault, 30)
	if err != nil {
		return nil, err
	}
	start = start.Add(-time.Duration(offset * float64(day)))
	return suppliers.NewDate(start, time.Duration(days*float64(day)), layout)
}

// startTime parses the start option with the layout, then with the
// ISO layouts and RFC 3339.  No start means now.
func startTime(p *params, layout string) (time.Time, error) {
	s := p.cfg.String("start", "")
	if s == "" {
		return now(), nil
	}
	for _, l := range []string{layout, suppliers.ISOLayout, suppliers.ISOMillisLayout, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(l, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, core.Configf("start %q doesn't match the date format", s)
}

// DateCron supplies the successive times a cron expression fires
// after the start.
func DateCron(fs *core.FieldSpec, l core.Loader) (core.Supplier, error) {
	expr, is := fs.Data.(string)
	if !is || expr == "" {
		return nil, core.Configf("date.cron needs a cron expression, not %v", fs.Data)
	}
	p := paramsOf(fs, l)
	layout, err := suppliers.Layout(p.String("format", "", suppliers.ISOLayout))
	if err != nil {
		return nil, err
	}
	start, err := startTime(p, layout)
	if err != nil {
		return nil, err
	}
	return suppliers.NewCronDate(expr, start, layout)
}
