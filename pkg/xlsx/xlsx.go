package xlsx

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet is one named tabular sheet: a header row plus data rows. The
// package has no opinion on the content beyond "tabular".
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Write renders the sheets into a spreadsheet blob. The first sheet
// replaces the workbook's default sheet.
func Write(sheets ...Sheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.Name); err != nil {
				return nil, fmt.Errorf("rename sheet %s: %w", s.Name, err)
			}
		} else {
			if _, err := f.NewSheet(s.Name); err != nil {
				return nil, fmt.Errorf("new sheet %s: %w", s.Name, err)
			}
		}
		if err := writeSheet(f, s); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, s Sheet) error {
	all := make([][]string, 0, len(s.Rows)+1)
	if len(s.Header) > 0 {
		all = append(all, s.Header)
	}
	all = append(all, s.Rows...)

	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		vals := make([]interface{}, len(row))
		for j, v := range row {
			vals[j] = v
		}
		if err := f.SetSheetRow(s.Name, cell, &vals); err != nil {
			return fmt.Errorf("set row %d on %s: %w", i+1, s.Name, err)
		}
	}
	return nil
}

// Read returns the rows of a named sheet, header included. Used by tests
// to verify the export round-trips.
func Read(data []byte, sheet string) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	return rows, nil
}
