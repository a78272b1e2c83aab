package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/xuri/excelize/v2"

	"gbsaview/internal/errors"
)

var tableHeader = []string{"Ligand", "Mean_dGbind", "StdDev", "Min_Best", "Max_Worst", "Frames"}

func tableRow(ss SeriesStats) []string {
	return []string{
		ss.Label,
		strconv.FormatFloat(ss.Summary.Mean, 'g', -1, 64),
		strconv.FormatFloat(ss.Summary.StdDev, 'g', -1, 64),
		strconv.FormatFloat(ss.Summary.Min, 'g', -1, 64),
		strconv.FormatFloat(ss.Summary.Max, 'g', -1, 64),
		strconv.Itoa(ss.Summary.Frames),
	}
}

// ComparisonCSV serializes the comparison statistics table, one row per
// series.
func ComparisonCSV(all []SeriesStats) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(tableHeader); err != nil {
		return nil, errors.Wrap(err, "csv header write failed")
	}
	for _, ss := range all {
		if err := w.Write(tableRow(ss)); err != nil {
			return nil, errors.Wrap(err, "csv row write failed")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.Wrap(err, "csv flush failed")
	}
	return buf.Bytes(), nil
}

// ComparisonWorkbook writes the same statistics table as an XLSX workbook on
// the default sheet.
func ComparisonWorkbook(all []SeriesStats) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(tableHeader))
	for i, h := range tableHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, errors.Wrap(err, "workbook header write failed")
	}

	for i, ss := range all {
		row := []interface{}{
			ss.Label,
			ss.Summary.Mean,
			ss.Summary.StdDev,
			ss.Summary.Min,
			ss.Summary.Max,
			ss.Summary.Frames,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, errors.Wrap(err, "workbook cell name failed")
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, errors.Wrap(err, "workbook row write failed")
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, errors.Wrap(err, "workbook serialization failed")
	}
	return buf.Bytes(), nil
}
