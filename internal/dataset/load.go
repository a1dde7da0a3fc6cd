package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// ReadCSV parses a sensor csv file. Unknown columns are ignored, missing
// ones are reported later by Normalize and Project.
func ReadCSV(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading csv: %w", err)
	}
	return ParseCSV(data)
}

func ParseCSV(data []byte) (*Table, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDataset
	}

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, ErrEmptyDataset
	}
	headers := rows[0]
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	var records []*Record
	if err := gocsv.UnmarshalCSV(&rowsReader{rows: rows}, &records); err != nil {
		return nil, fmt.Errorf("error unmarshalling csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}
	markMissing(headers, rows[1:], records)

	return &Table{Header: headers, Records: records}, nil
}

// markMissing numbers the records and notes blank or non-finite numeric cells,
// which gocsv would otherwise decode as 0 or NaN.
func markMissing(headers []string, rows [][]string, records []*Record) {
	columns := make(map[string]int)
	for i, h := range headers {
		columns[h] = i
	}

	for i, r := range records {
		r.Row = i + 1
		if i >= len(rows) {
			continue
		}
		for _, name := range RequiredColumns[1:] {
			idx, ok := columns[name]
			if !ok || idx >= len(rows[i]) {
				continue
			}
			if isMissing(rows[i][idx]) {
				r.Missing = append(r.Missing, name)
			}
		}
	}
}

func isMissing(cell string) bool {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return true
	}
	f, err := strconv.ParseFloat(cell, 64)
	return err == nil && (math.IsNaN(f) || math.IsInf(f, 0))
}

func ReadFile(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer file.Close()

	return ReadCSV(file)
}

// rowsReader hands already split rows to gocsv so the trimmed header is used for field matching.
type rowsReader struct {
	rows [][]string
	pos  int
}

func (r *rowsReader) Read() ([]string, error) {
	if r.pos >= len(r.rows) {
		return nil, io.EOF
	}
	row := r.rows[r.pos]
	r.pos++
	return row, nil
}

func (r *rowsReader) ReadAll() ([][]string, error) {
	rest := r.rows[r.pos:]
	r.pos = len(r.rows)
	return rest, nil
}
