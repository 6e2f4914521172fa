package internal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ParseCSV reads a header row followed by comma separated rows. Quoted fields may
// contain commas. activeStatus and autoRenew are true only for the literal "true"
// (any case); an amount that does not parse as a number is left undefined.
func ParseCSV(path string) ([]ImportRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV: %w", err)
		}
		rows = append(rows, row)
	}
	return recordsFromRows(rows), nil
}

// recordsFromRows maps tabular rows onto records using the first non-blank row as
// header. Unknown columns are ignored.
func recordsFromRows(rows [][]string) []ImportRecord {
	var header []string
	var records []ImportRecord
	for _, row := range rows {
		if isBlankRow(row) {
			continue
		}
		if header == nil {
			header = make([]string, len(row))
			for i, h := range row {
				header[i] = strings.Trim(strings.TrimSpace(h), `"`)
			}
			continue
		}

		var rec ImportRecord
		for i, key := range header {
			value := ""
			if i < len(row) {
				value = strings.TrimSpace(row[i])
			}
			setImportField(&rec, key, value)
		}
		records = append(records, rec)
	}
	return records
}

func setImportField(rec *ImportRecord, key, value string) {
	switch key {
	case "id":
		rec.ID = value
	case "name":
		rec.Name = value
	case "provider":
		rec.Provider = value
	case "category":
		rec.Category = value
	case "icon":
		rec.Icon = value
	case "startDate":
		if d, err := ParseDate(value); err == nil {
			rec.StartDate = d
		}
	case "billingCycle":
		rec.BillingCycle = BillingCycle(strings.ToLower(value))
	case "amount":
		if amount, err := strconv.ParseFloat(value, 64); err == nil {
			rec.Amount = &amount
		}
	case "currency":
		rec.Currency = strings.ToUpper(value)
	case "notes":
		rec.Notes = value
	case "activeStatus":
		rec.ActiveStatus = strings.EqualFold(value, "true")
	case "autoRenew":
		rec.AutoRenew = strings.EqualFold(value, "true")
	case "usageCount":
		if n, err := strconv.Atoi(value); err == nil && n >= 0 {
			rec.UsageCount = n
		}
	}
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func init() {
	RegisterParser("csv", ParserFunc(ParseCSV))
}
