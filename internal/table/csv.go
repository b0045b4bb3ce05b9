package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoColumns is returned when the input has no header row.
var ErrNoColumns = errors.New("no columns to parse from input")

const utf8BOM = "\ufeff"

// ReadCSV decodes comma-separated text with a header row. Short rows are
// padded with empty cells; rows wider than the header are rejected.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoColumns
	}
	if err != nil {
		return nil, err
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch {
		case len(rec) > len(header):
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: expected %d fields, saw %d", line, len(header), len(rec))
		case len(rec) < len(header):
			rec = append(rec, make([]string, len(header)-len(rec))...)
		}
		rows = append(rows, rec)
	}
	return New(header, rows)
}

// WriteCSV encodes t with a header row and no index column.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.columns); err != nil {
		return err
	}
	if err := cw.WriteAll(t.rows); err != nil {
		return err
	}
	return cw.Error()
}
