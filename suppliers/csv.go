package suppliers

import (
	"encoding/csv"
	"errors"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Comcast/datagen/core"
	"github.com/Comcast/datagen/util"

	"github.com/dustin/go-humanize"
)

// CSVOptions says how to read a CSV file.
type CSVOptions struct {
	// Delimiter separates fields.  Zero means ','.
	Delimiter rune

	// Headers means that the first row names the columns.
	Headers bool

	// Threshold is the file size above which the file is read
	// in chunks rather than all at once.
	Threshold uint64

	// BufferSize is the number of rows in a chunk.
	BufferSize int
}

// CSVData is the content of a CSV file.
//
// Values are addressed by iteration (row) and 0-based column.
type CSVData interface {
	// Path is the absolute path of the file.
	Path() string

	// Column resolves a 1-based column number or a header name
	// to a 0-based column index.
	Column(col interface{}) (int, error)

	// Get returns the value in the given column of the row for
	// the given iteration.
	Get(iteration, column int) (string, error)

	// Sample returns a random value from the given column.
	Sample(column int) (string, error)

	// Chunked reports whether the data is read in chunks, which
	// rules out sampling and multiple values per call.
	Chunked() bool
}

type cachedCSV struct {
	data CSVData
	opts CSVOptions
}

// csvCache maps an absolute path to its CSVData and the options it
// was read with.
//
// The cache is process-wide and is not synchronized.
var csvCache = map[string]cachedCSV{}

// ResetCSVCache forgets all loaded CSV data.
func ResetCSVCache() {
	csvCache = map[string]cachedCSV{}
}

// LoadCSV returns the CSVData for the file, which is read (or
// opened) only the first time any field asks for it.  Later calls
// for the same file get the same CSVData regardless of their
// options, with a warning if their headers or delimiter differ.
func LoadCSV(filename string, opts CSVOptions) (CSVData, error) {
	path, err := filepath.Abs(filename)
	if err != nil {
		return nil, core.Configf("CSV file %q: %s", filename, err)
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	if c, have := csvCache[path]; have {
		if c.opts.Headers != opts.Headers || c.opts.Delimiter != opts.Delimiter {
			util.Warnf("csv %s was first read with headers=%v delimiter=%q; ignoring headers=%v delimiter=%q",
				path, c.opts.Headers, c.opts.Delimiter, opts.Headers, opts.Delimiter)
		}
		return c.data, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, core.Configf("CSV file %q: %s", filename, err)
	}

	var d CSVData
	if 0 < opts.Threshold && opts.Threshold < uint64(info.Size()) {
		util.Logf("csv %s is %s; reading in chunks of %d rows", path,
			humanize.Bytes(uint64(info.Size())), opts.BufferSize)
		d, err = openChunkedCSV(path, opts)
	} else {
		d, err = loadFullCSV(path, opts)
	}
	if err != nil {
		return nil, err
	}
	csvCache[path] = cachedCSV{
		data: d,
		opts: opts,
	}
	return d, nil
}

func newCSVReader(r io.Reader, opts CSVOptions) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = opts.Delimiter
	cr.FieldsPerRecord = -1
	return cr
}

// resolveColumn is shared by both strategies.
func resolveColumn(path string, header []string, width int, col interface{}) (int, error) {
	if s, is := col.(string); is {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			col = n
		} else {
			for i, h := range header {
				if h == s {
					return i, nil
				}
			}
			return 0, core.Configf("CSV %s has no column named %q", path, s)
		}
	}
	n, ok := core.AsInt(col)
	if !ok {
		return 0, core.Configf("CSV column %v (%T) is not a number or name", col, col)
	}
	if n < 1 || width < n {
		return 0, core.Configf("CSV %s column %d not in [1, %d]", path, n, width)
	}
	return n - 1, nil
}

func cell(path string, row []string, iteration, column int) (string, error) {
	if len(row) <= column {
		return "", core.Runtimef("CSV %s row for iteration %d has only %d columns", path, iteration, len(row))
	}
	return row[column], nil
}

// fullCSV holds all of a file's rows in memory.
type fullCSV struct {
	path   string
	header []string
	rows   [][]string
}

func loadFullCSV(path string, opts CSVOptions) (*fullCSV, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.Configf("CSV file %q: %s", path, err)
	}
	defer f.Close()

	rows, err := newCSVReader(f, opts).ReadAll()
	if err != nil {
		return nil, core.Configf("CSV file %q: %s", path, err)
	}
	d := &fullCSV{
		path: path,
	}
	if opts.Headers && 0 < len(rows) {
		d.header, rows = rows[0], rows[1:]
	}
	if len(rows) == 0 {
		return nil, core.Configf("CSV file %q has no data", path)
	}
	d.rows = rows
	return d, nil
}

func (d *fullCSV) Path() string {
	return d.path
}

func (d *fullCSV) Column(col interface{}) (int, error) {
	width := len(d.header)
	if width == 0 {
		width = len(d.rows[0])
	}
	return resolveColumn(d.path, d.header, width, col)
}

func (d *fullCSV) Get(iteration, column int) (string, error) {
	return cell(d.path, d.rows[mod(iteration, len(d.rows))], iteration, column)
}

func (d *fullCSV) Sample(column int) (string, error) {
	i := rand.Intn(len(d.rows))
	return cell(d.path, d.rows[i], i, column)
}

func (d *fullCSV) Chunked() bool {
	return false
}

// chunkedCSV holds one chunk of rows at a time.  The file is opened
// again for every chunk.
type chunkedCSV struct {
	path   string
	opts   CSVOptions
	header []string
	width  int

	chunk int
	rows  [][]string
}

func openChunkedCSV(path string, opts CSVOptions) (*chunkedCSV, error) {
	if opts.BufferSize <= 0 {
		return nil, core.Configf("CSV buffer size %d isn't positive", opts.BufferSize)
	}
	d := &chunkedCSV{
		path:  path,
		opts:  opts,
		chunk: -1,
	}
	if err := d.load(0); err != nil {
		return nil, core.Configf("CSV file %q: %s", path, err)
	}
	if len(d.rows) == 0 {
		return nil, core.Configf("CSV file %q has no data", path)
	}
	d.width = len(d.header)
	if d.width == 0 {
		d.width = len(d.rows[0])
	}
	return d, nil
}

// load reads the given chunk.
func (d *chunkedCSV) load(chunk int) error {
	f, err := os.Open(d.path)
	if err != nil {
		return err
	}
	defer f.Close()

	cr := newCSVReader(f, d.opts)
	if d.opts.Headers {
		h, err := cr.Read()
		if err != nil && err != io.EOF {
			return err
		}
		d.header = h
	}

	for skip := chunk * d.opts.BufferSize; 0 < skip; skip-- {
		if _, err := cr.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
	}

	rows := make([][]string, 0, d.opts.BufferSize)
	for len(rows) < d.opts.BufferSize {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	util.Logf("csv %s chunk %d: %d rows", d.path, chunk, len(rows))
	d.chunk, d.rows = chunk, rows
	return nil
}

func (d *chunkedCSV) Path() string {
	return d.path
}

func (d *chunkedCSV) Column(col interface{}) (int, error) {
	return resolveColumn(d.path, d.header, d.width, col)
}

func (d *chunkedCSV) Get(iteration, column int) (string, error) {
	if iteration < 0 {
		return "", core.Runtimef("negative iteration %d", iteration)
	}
	chunk := iteration / d.opts.BufferSize
	if chunk != d.chunk {
		if chunk < d.chunk {
			util.Warnf("CSV %s rereading chunk %d after chunk %d", d.path, chunk, d.chunk)
		}
		if err := d.load(chunk); err != nil {
			return "", core.Runtimef("CSV %s: %s", d.path, err)
		}
	}
	offset := iteration - chunk*d.opts.BufferSize
	if len(d.rows) <= offset {
		return "", core.Runtimef("CSV %s has no row for iteration %d", d.path, iteration)
	}
	return cell(d.path, d.rows[offset], iteration, column)
}

func (d *chunkedCSV) Sample(int) (string, error) {
	return "", core.Runtimef("CSV %s is too big to sample", d.path)
}

func (d *chunkedCSV) Chunked() bool {
	return true
}

// CSV returns values from one column of CSVData.
type CSV struct {
	data   CSVData
	column int
	sample bool
	count  core.Supplier
	asList bool
}

// NewCSV makes a CSV supplier.
//
// A nil count means one value per call.  Chunked data can't be
// sampled and can't give more than one value per call.  Requesting
// either is a RuntimeError.
func NewCSV(data CSVData, column int, sample bool, count core.Supplier, asList bool) (*CSV, error) {
	if data.Chunked() {
		if sample {
			return nil, core.Runtimef("CSV %s is read in chunks and can't be sampled", data.Path())
		}
		if c, is := count.(*Constant); is {
			if n, _ := core.AsInt(c.Value); 1 < n {
				return nil, core.Runtimef("CSV %s is read in chunks and can't give %d values", data.Path(), n)
			}
		}
	}
	return &CSV{
		data:   data,
		column: column,
		sample: sample,
		count:  count,
		asList: asList,
	}, nil
}

// HandlesCount implements core.CountHandler.
func (s *CSV) HandlesCount() bool {
	return true
}

func (s *CSV) one(iteration int) (interface{}, error) {
	if s.sample {
		return s.data.Sample(s.column)
	}
	return s.data.Get(iteration, s.column)
}

// Next implements core.Supplier.
func (s *CSV) Next(iteration int) (interface{}, error) {
	n, err := CountOf(s.count, iteration)
	if err != nil {
		return nil, err
	}
	if n == 1 && !s.asList {
		return s.one(iteration)
	}
	if 1 < n && s.data.Chunked() {
		return nil, core.Runtimef("CSV %s is read in chunks and can't give %d values", s.data.Path(), n)
	}
	acc := make([]interface{}, n)
	for k := range acc {
		if acc[k], err = s.one(iteration + k); err != nil {
			return nil, err
		}
	}
	return acc, nil
}
