package types

import (
	"path/filepath"
	"unicode/utf8"

	"github.com/Comcast/datagen/core"
	"github.com/Comcast/datagen/loader"
	"github.com/Comcast/datagen/suppliers"
)

// Defaults for CSV files when the registry has none.
const (
	defaultCSVThreshold  = 250 * 1000 * 1000
	defaultCSVBufferSize = 1000
)

// CSV supplies values from one column of a CSV file.
//
// The datafile is resolved against the data directory.  The column
// is a 1-based number, or a header name when headers is on.  The
// sample option draws random rows (sample_rows is the same thing,
// since a field only ever reads one column).  A count gives several
// values per call, which requires the file to be small enough to be
// held in memory.
func CSV(fs *core.FieldSpec, l core.Loader) (core.Supplier, error) {
	p := paramsOf(fs, l)

	datafile := p.cfg.String("datafile", "")
	if datafile == "" {
		return nil, core.Configf("csv needs a datafile")
	}
	if !filepath.IsAbs(datafile) {
		datafile = filepath.Join(l.DataDir(), datafile)
	}

	var opts suppliers.CSVOptions
	var err error
	delim := p.String("delimiter", CSVDelimiterDefault, ",")
	if opts.Delimiter, err = delimiter(delim); err != nil {
		return nil, err
	}
	if opts.Headers, err = p.Bool("headers", CSVHeadersDefault, false); err != nil {
		return nil, err
	}
	if opts.Threshold, err = p.Bytes("file_size_threshold", CSVFileSizeThresholdDefault, defaultCSVThreshold); err != nil {
		return nil, err
	}
	if opts.BufferSize, err = p.Int("csv_buffer_size", CSVBufferSizeDefault, defaultCSVBufferSize); err != nil {
		return nil, err
	}

	data, err := suppliers.LoadCSV(datafile, opts)
	if err != nil {
		return nil, err
	}

	col, have := p.cfg.Get("column")
	if !have {
		col = 1
	}
	column, err := data.Column(col)
	if err != nil {
		return nil, err
	}

	sample, err := p.Bool("sample", "", false)
	if err != nil {
		return nil, err
	}
	if !sample {
		if sample, err = p.Bool("sample_rows", "", false); err != nil {
			return nil, err
		}
	}

	var count core.Supplier
	if x, have := p.cfg.Get(loader.CountConfig); have {
		if count, err = loader.CountSupplier(l.Registry(), x); err != nil {
			return nil, err
		}
	}
	asList, err := p.Bool(loader.AsListConfig, "", false)
	if err != nil {
		return nil, err
	}

	return suppliers.NewCSV(data, column, sample, count, asList)
}

// delimiter interprets a delimiter option.  "\t" and "tab" mean a
// tab.
func delimiter(s string) (rune, error) {
	switch s {
	case `\t`, "tab":
		return '\t', nil
	}
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 || n != len(s) || r == utf8.RuneError {
		return 0, core.Configf("csv delimiter %q is not a single character", s)
	}
	return r, nil
}
