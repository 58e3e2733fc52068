package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

type csvLoader struct{}

func (csvLoader) CanLoad(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv")
}

func (csvLoader) Load(path string, opt LoadOptions) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	return ReadCSV(f, delim, opt.MaxRows)
}

// ReadCSV reads delimited text with a header row. Every present cell becomes
// a String value; records shorter than the header leave the trailing columns
// absent so they read as Missing.
func ReadCSV(r io.Reader, delim rune, maxRows int) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if delim != 0 {
		cr.Comma = delim
	}

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoHeader
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := uniqueHeader(header)
	if len(cols) == 0 {
		return nil, ErrNoHeader
	}
	if maxRows <= 0 {
		maxRows = math.MaxInt
	}

	ds := &Dataset{Columns: cols}
	total := 0
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", total+1, err)
		}
		total++
		if len(ds.Rows) >= maxRows {
			continue
		}
		row := NewRow()
		for j, cell := range rec {
			if j >= len(cols) {
				break
			}
			row.Set(cols[j], String(strings.TrimSpace(cell)))
		}
		ds.Rows = append(ds.Rows, row)
	}
	if len(ds.Rows) < total {
		ds.Warnings = append(ds.Warnings, truncatedWarning(len(ds.Rows), total))
	}
	return ds, nil
}

// uniqueHeader trims header names and suffixes repeats with _2, _3, ...
func uniqueHeader(header []string) []string {
	seen := map[string]int{}
	out := make([]string, 0, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if name == "" {
			name = "column_" + strconv.Itoa(i+1)
		}
		seen[name]++
		if n := seen[name]; n > 1 {
			name = name + "_" + strconv.Itoa(n)
		}
		out = append(out, name)
	}
	return out
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
