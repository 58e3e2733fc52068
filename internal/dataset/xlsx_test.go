package dataset

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// writeWorkbook builds a two-sheet workbook: Sheet1 with cat/val and a
// "Data" sheet with a single numeric column.
func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	rows := [][]any{{"cat", "val", "val"}, {"A", 10}, {"B", 2.5, "x"}}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if _, err := f.NewSheet("Data"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	for i, v := range []any{"x", 1, 2, 3} {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetCellValue("Data", cell, v); err != nil {
			t.Fatalf("set cell: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "book.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	return path
}

func TestLoadXLSXDefaultSheet(t *testing.T) {
	path := writeWorkbook(t)
	ds, err := LoadFile(path, LoadOptions{})
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if ds.Name != "book.xlsx (Sheet1)" {
		t.Fatalf("name = %q", ds.Name)
	}
	if got := strings.Join(ds.Columns, ","); got != "cat,val,val_2" {
		t.Fatalf("columns = %s", got)
	}
	if ds.Len() != 2 {
		t.Fatalf("rows = %d", ds.Len())
	}
	if s, _ := ds.Rows[1].Get("val").Text(); s != "2.5" {
		t.Fatalf("val = %q", s)
	}
	if !ds.Rows[0].Get("val_2").IsMissing() {
		t.Fatalf("trailing empty cell should be missing")
	}
}

func TestLoadXLSXSheetSelection(t *testing.T) {
	path := writeWorkbook(t)
	ds, err := LoadFile(path, LoadOptions{Sheet: "data", MaxRows: 2})
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if ds.Len() != 2 || len(ds.Warnings) != 1 {
		t.Fatalf("rows=%d warnings=%v", ds.Len(), ds.Warnings)
	}
	ds, err = LoadFile(path, LoadOptions{SheetIndex: 2})
	if err != nil || ds.Len() != 3 || ds.Columns[0] != "x" {
		t.Fatalf("by index: %v %+v", err, ds)
	}
	_, err = LoadFile(path, LoadOptions{Sheet: "nope"})
	if err == nil || !strings.Contains(err.Error(), "available sheets: Sheet1, Data") {
		t.Fatalf("missing sheet err = %v", err)
	}
	if _, err := LoadFile(path, LoadOptions{SheetIndex: 5}); err == nil {
		t.Fatalf("expected out of range error")
	}
}

func TestLoadXLSXHeaderBelowBlankRows(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	cells := map[string]any{"A1": " ", "A3": "cat", "B3": "val", "A4": "A", "B4": 10, "A6": "B", "B6": 4}
	for cell, v := range cells {
		if err := f.SetCellValue("Sheet1", cell, v); err != nil {
			t.Fatalf("set %s: %v", cell, err)
		}
	}
	path := filepath.Join(t.TempDir(), "offset.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	ds, err := LoadFile(path, LoadOptions{})
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got := strings.Join(ds.Columns, ","); got != "cat,val" {
		t.Fatalf("columns = %s", got)
	}
	if ds.Len() != 2 {
		t.Fatalf("rows = %d", ds.Len())
	}
	if s, _ := ds.Rows[1].Get("val").Text(); s != "4" {
		t.Fatalf("second row val = %q", s)
	}
}

func TestLoadXLSXBlankSheetHasNoHeader(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetCellValue("Sheet1", "B2", ""); err != nil {
		t.Fatalf("set: %v", err)
	}
	path := filepath.Join(t.TempDir(), "blank.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := LoadFile(path, LoadOptions{}); !errors.Is(err, ErrNoHeader) {
		t.Fatalf("expected ErrNoHeader, got %v", err)
	}
}
