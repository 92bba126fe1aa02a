package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"prepedido/estimate"
)

// ValidationError represents a single field-level error on one row.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// CatalogImportResult is returned after parsing and validating a catalog file.
type CatalogImportResult struct {
	TotalRows int                     `json:"total_rows"`
	ValidRows int                     `json:"valid_rows"`
	ErrorRows int                     `json:"error_rows"`
	Errors    []ValidationError       `json:"errors"`
	Entries   []estimate.CatalogEntry `json:"-"`
	FileName  string                  `json:"-"`
}

// catalogColumns maps accepted header spellings to entry fields.
var catalogColumns = map[string]string{
	"código":         "code",
	"codigo":         "code",
	"code":           "code",
	"material":       "name",
	"nombre":         "name",
	"name":           "name",
	"unidad":         "unit",
	"unit":           "unit",
	"valor unit.":    "unit_price",
	"valor unitario": "unit_price",
	"precio":         "unit_price",
	"unit_price":     "unit_price",
}

var catalogFieldLabels = map[string]string{
	"code":       "Código",
	"name":       "Material",
	"unit":       "Unidad",
	"unit_price": "Valor unit.",
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}
	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the first sheet.
func parseExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}
	return rows[0], rows[1:], nil
}

// mapCatalogHeaders returns the field key of every column ("" when the
// header is not recognized).
func mapCatalogHeaders(headers []string) []string {
	mapped := make([]string, len(headers))
	for i, h := range headers {
		norm := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(h)), " *")
		mapped[i] = catalogColumns[strings.TrimSpace(norm)]
	}
	return mapped
}

// ParseCOPAmount reads a peso amount written as "$35.000", "35000" or
// "8.500,50". Dots are thousands separators and a comma marks decimals.
func ParseCOPAmount(s string) (float64, error) {
	s = strings.NewReplacer("$", "", " ", "", ".", "").Replace(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, ",", ".")
	return strconv.ParseFloat(s, 64)
}

// ParseCatalogFile parses and validates a .csv or .xlsx catalog. Rows with
// errors are reported and left out of Entries. A code repeated in the file
// is an error on every row after the first.
func ParseCatalogFile(file io.Reader, fileName string) (*CatalogImportResult, error) {
	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		headers, dataRows, err = parseCSV(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		headers, dataRows, err = parseExcel(file)
	default:
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	columnKeys := mapCatalogHeaders(headers)
	for _, required := range []string{"code", "name", "unit", "unit_price"} {
		found := false
		for _, k := range columnKeys {
			found = found || k == required
		}
		if !found {
			return nil, fmt.Errorf("missing column %q", catalogFieldLabels[required])
		}
	}

	result := &CatalogImportResult{TotalRows: len(dataRows), FileName: fileName}
	seen := make(map[string]int)

	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for header row
		data := make(map[string]string, 4)
		for colIdx, key := range columnKeys {
			if key != "" && colIdx < len(row) {
				data[key] = strings.TrimSpace(row[colIdx])
			}
		}

		var rowErrors []ValidationError
		for _, key := range []string{"code", "name", "unit", "unit_price"} {
			if data[key] == "" {
				label := catalogFieldLabels[key]
				rowErrors = append(rowErrors, ValidationError{Row: rowNum, Field: label, Message: label + " es obligatorio"})
			}
		}

		price, perr := ParseCOPAmount(data["unit_price"])
		if data["unit_price"] != "" && (perr != nil || price < 0) {
			rowErrors = append(rowErrors, ValidationError{Row: rowNum, Field: "Valor unit.", Message: fmt.Sprintf("valor inválido %q", data["unit_price"])})
		}
		if first, dup := seen[data["code"]]; dup && data["code"] != "" {
			rowErrors = append(rowErrors, ValidationError{Row: rowNum, Field: "Código", Message: fmt.Sprintf("código repetido (fila %d)", first)})
		}

		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
			result.ErrorRows++
			continue
		}
		seen[data["code"]] = rowNum
		result.Entries = append(result.Entries, estimate.CatalogEntry{
			Code:      data["code"],
			Name:      data["name"],
			Unit:      data["unit"],
			UnitPrice: price,
		})
	}
	result.ValidRows = result.TotalRows - result.ErrorRows
	return result, nil
}

// GenerateErrorReport creates a downloadable .xlsx file from validation errors.
func GenerateErrorReport(errors []ValidationError) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Errores"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DC2626"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})

	f.SetCellValue(sheet, "A1", "Fila")
	f.SetCellValue(sheet, "B1", "Campo")
	f.SetCellValue(sheet, "C1", "Error")
	f.SetCellStyle(sheet, "A1", "C1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 18)
	f.SetColWidth(sheet, "C", "C", 55)

	for i, e := range errors {
		row := strconv.Itoa(i + 2)
		f.SetCellValue(sheet, "A"+row, e.Row)
		f.SetCellValue(sheet, "B"+row, e.Field)
		f.SetCellValue(sheet, "C"+row, e.Message)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write error report: %w", err)
	}
	return buf.Bytes(), nil
}
