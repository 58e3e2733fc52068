package dataset

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

type xlsxLoader struct{}

func (xlsxLoader) CanLoad(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".xlsx")
}

func (xlsxLoader) Load(path string, opt LoadOptions) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet, err := pickSheet(f.GetSheetList(), opt.Sheet, opt.SheetIndex)
	if err != nil {
		return nil, fmt.Errorf("%w in workbook '%s'", err, filepath.Base(path))
	}
	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	defer rows.Close()

	// the header is the first row with any text; sheets often start lower
	var header []string
	for header == nil && rows.Next() {
		cells, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		if !blankRow(cells) {
			header = cells
		}
	}
	if header == nil {
		return nil, ErrNoHeader
	}
	cols := uniqueHeader(header)
	if len(cols) == 0 {
		return nil, ErrNoHeader
	}
	maxRows := opt.MaxRows
	if maxRows <= 0 {
		maxRows = math.MaxInt
	}

	ds := &Dataset{Name: fmt.Sprintf("%s (%s)", filepath.Base(path), sheet), Columns: cols}
	total := 0
	for rows.Next() {
		cells, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", total+1, err)
		}
		if blankRow(cells) {
			// fully empty sheet rows are layout, not records
			continue
		}
		total++
		if len(ds.Rows) >= maxRows {
			continue
		}
		row := NewRow()
		for j, cell := range cells {
			if j >= len(cols) {
				break
			}
			row.Set(cols[j], String(strings.TrimSpace(cell)))
		}
		ds.Rows = append(ds.Rows, row)
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(ds.Rows) < total {
		ds.Warnings = append(ds.Warnings, truncatedWarning(len(ds.Rows), total))
	}
	return ds, nil
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// pickSheet selects by name (case-insensitive) when given, else by 1-based
// index, defaulting to the first sheet.
func pickSheet(sheets []string, name string, index int) (string, error) {
	if len(sheets) == 0 {
		return "", fmt.Errorf("no sheets")
	}
	if name != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, name) {
				return s, nil
			}
		}
		return "", fmt.Errorf("sheet '%s' not found (available sheets: %s)", name, strings.Join(sheets, ", "))
	}
	if index <= 0 {
		index = 1
	}
	if index > len(sheets) {
		return "", fmt.Errorf("sheet index %d out of range (workbook has %d sheets)", index, len(sheets))
	}
	return sheets[index-1], nil
}
