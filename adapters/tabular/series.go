package tabular

import (
	"fmt"
	"strconv"

	"gbsaview/domain/trajectory"
	"gbsaview/internal/errors"
)

// Schrödinger thermal_MMGBSA.csv column names.
const (
	EnergyColumn = "r_psp_MMGBSA_dG_Bind"
	LabelColumn  = "title"
)

// ExtractTrajectory pulls the binding energy series and a ligand label out of
// a parsed table. A missing energy column is a SCHEMA_ERROR; a missing label
// column degrades to the positional fallback "Ligand_<position>" (1-based)
// and never fails.
func ExtractTrajectory(table *Table, position int) (*trajectory.Trajectory, error) {
	if !table.HasColumn(EnergyColumn) {
		return nil, errors.SchemaError("column '" + EnergyColumn + "' not found")
	}

	raw := table.Column(EnergyColumn)
	samples := make([]float64, 0, len(raw))
	for i, cell := range raw {
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, errors.FormatError(fmt.Sprintf("row %d: non-numeric energy value %q", i+1, cell))
		}
		samples = append(samples, v)
	}

	return trajectory.New(extractLabel(table, position), samples)
}

func extractLabel(table *Table, position int) string {
	if table.HasColumn(LabelColumn) && len(table.Rows) > 0 {
		if label := table.Rows[0][LabelColumn]; label != "" {
			return label
		}
	}
	return fmt.Sprintf("Ligand_%d", position)
}
