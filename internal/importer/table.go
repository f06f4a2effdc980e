package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

const bom = "\ufeff"

// Table is the raw, untyped content of one CSV file.
type Table struct {
	File    string
	Records [][]string
}

// ReadTable reads a CSV stream into a Table. Input that is not valid UTF-8
// is decoded as Latin-1. Cells are trimmed and blank lines skipped.
func ReadTable(name string, r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	data = bytes.TrimPrefix(data, []byte(bom))
	if !utf8.Valid(data) {
		data, err = charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("decoding %s as latin-1: %w", name, err)
		}
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s CSV: %w", name, err)
	}

	t := &Table{File: name}
	for _, rec := range records {
		blank := true
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
			if rec[i] != "" {
				blank = false
			}
		}
		if !blank {
			t.Records = append(t.Records, rec)
		}
	}
	return t, nil
}

// Header returns the first record, or nil for an empty table.
func (t *Table) Header() []string {
	if len(t.Records) == 0 {
		return nil
	}
	return t.Records[0]
}

// Body returns every record after the header.
func (t *Table) Body() [][]string {
	if len(t.Records) <= 1 {
		return nil
	}
	return t.Records[1:]
}

// Width is the number of cells in the first record.
func (t *Table) Width() int {
	return len(t.Header())
}

// Index returns the position of the named header column, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Header() {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumns reports whether the header contains every named column.
func (t *Table) HasColumns(names ...string) bool {
	for _, n := range names {
		if t.Index(n) < 0 {
			return false
		}
	}
	return true
}

// cell returns rec[i], or "" when the row is short or i is negative.
func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}
