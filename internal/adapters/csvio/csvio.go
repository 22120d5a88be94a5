// Package csvio reads and writes the review tables exchanged over HTTP
package csvio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrNoHeader is returned when the input has no header row
var ErrNoHeader = errors.New("no columns to parse from file")

// Table is a header plus rows as wide as the header
type Table struct {
	Header []string
	Rows   [][]string
}

// Read decodes a comma separated table, dropping a UTF-8 or UTF-16 byte order mark
// Short rows are padded to the header width and a bare quote inside a field is kept literally,
// a row wider than the header is an error
func Read(r io.Reader) (*Table, error) {
	dec := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	cr := csv.NewReader(dec)
	cr.Comma = ','
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, err
	}

	t := &Table{Header: header}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("expected %d fields in line %d, saw %d", len(header), line, len(rec))
		}
		for len(rec) < len(header) {
			rec = append(rec, "")
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

// Len returns the number of data rows
func (t *Table) Len() int { return len(t.Rows) }

// Column returns the index of the first column named name
func (t *Table) Column(name string) (int, bool) {
	for i, c := range t.Header {
		if c == name {
			return i, true
		}
	}
	return -1, false
}

// ColumnFold is Column with case insensitive matching
func (t *Table) ColumnFold(name string) (int, bool) {
	for i, c := range t.Header {
		if strings.EqualFold(c, name) {
			return i, true
		}
	}
	return -1, false
}

// Values copies column idx out of every row
func (t *Table) Values(idx int) []string {
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		if idx < len(r) {
			out[i] = r[idx]
		}
	}
	return out
}

// Cell returns the value at row i, column idx or "" when idx is negative
func (t *Table) Cell(i, idx int) string {
	if idx < 0 || i >= len(t.Rows) || idx >= len(t.Rows[i]) {
		return ""
	}
	return t.Rows[i][idx]
}

// SetColumn overwrites column name in place or appends it at the end
func (t *Table) SetColumn(name string, vals []string) error {
	if len(vals) != len(t.Rows) {
		return fmt.Errorf("column %s has %d values for %d rows", name, len(vals), len(t.Rows))
	}
	idx, ok := t.Column(name)
	if !ok {
		t.Header = append(t.Header, name)
		idx = len(t.Header) - 1
	}
	for i := range t.Rows {
		for len(t.Rows[i]) <= idx {
			t.Rows[i] = append(t.Rows[i], "")
		}
		t.Rows[i][idx] = vals[i]
	}
	return nil
}

// Encode writes the table as CSV with a header row
func (t *Table) Encode() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FormatConfidence renders a probability with the shortest exact decimal form
func FormatConfidence(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
