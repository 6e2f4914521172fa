package internal

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ParseXLSX reads the first sheet of a workbook. The first non-empty row names the
// columns, with the same names and value rules as the CSV format.
func ParseXLSX(path string) ([]ImportRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in file")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet: %w", err)
	}
	return recordsFromRows(rows), nil
}

func init() {
	RegisterParser("xlsx", ParserFunc(ParseXLSX))
}
