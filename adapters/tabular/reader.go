package tabular

import (
	"bytes"
	"encoding/csv"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"gbsaview/internal/errors"
)

// Table is a parsed tabular upload: a header row plus string cell rows keyed
// by header.
type Table struct {
	Headers []string
	Rows    []map[string]string
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// Column returns the raw string cells of the named column, in row order.
func (t *Table) Column(name string) []string {
	out := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		out = append(out, row[name])
	}
	return out
}

// Reader parses uploaded CSV and XLSX files into Tables.
type Reader struct{}

// NewReader creates a tabular upload reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read parses the upload into a Table, picking the parser from the filename
// extension. Unparseable or headerless input yields a FORMAT_ERROR.
func (r *Reader) Read(src io.Reader, filename string) (*Table, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx":
		return r.readXLSX(src, filename)
	default:
		return r.readCSV(src, filename)
	}
}

func (r *Reader) readCSV(src io.Reader, filename string) (*Table, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &errors.AppError{Code: errors.CodeFormatError, Message: "file is not valid CSV: " + filename, Cause: err}
	}
	if len(rows) < 2 {
		return nil, errors.FormatError("file must have a header row and at least one data row: " + filename)
	}
	return processRows(rows, filename)
}

func (r *Reader) readXLSX(src io.Reader, filename string) (*Table, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, &errors.AppError{Code: errors.CodeFormatError, Message: "could not read upload: " + filename, Cause: err}
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &errors.AppError{Code: errors.CodeFormatError, Message: "file is not a valid workbook: " + filename, Cause: err}
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &errors.AppError{Code: errors.CodeFormatError, Message: "could not read sheet " + sheet + ": " + filename, Cause: err}
	}
	if len(rows) < 2 {
		return nil, errors.FormatError("workbook must have a header row and at least one data row: " + filename)
	}
	return processRows(rows, filename)
}

// processRows converts raw string rows into Table form.
func processRows(rows [][]string, filename string) (*Table, error) {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	dataRows := make([]map[string]string, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		rowData := make(map[string]string)
		for j, cell := range rows[i] {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}
		dataRows = append(dataRows, rowData)
	}

	log.Printf("[tabular] %s parsed (%d columns, %d rows)", filename, len(headers), len(dataRows))
	return &Table{Headers: headers, Rows: dataRows}, nil
}
