// Package importer turns uploaded spreadsheets into chart options. The
// expected layout is a header row of column titles, then one row per data
// point: the first cell is the category label, the remaining cells are one
// numeric value per series.
package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/vizkit/vizkit/backend-go/internal/chart"
)

// FromXLSX reads the first sheet of an xlsx stream and builds line chart
// options from it. The caller decides the final kind; line is the safe
// default for any series-shaped data.
func FromXLSX(r io.Reader) (*chart.Options, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	return rowsToOptions(rows)
}

// rowsToOptions converts sheet rows to options. Exported data is column-major:
// each column after the first becomes one series.
func rowsToOptions(rows [][]string) (*chart.Options, error) {
	rows = trimEmptyRows(rows)
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet needs a header row and at least one data row")
	}

	header := rows[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("sheet needs a label column and at least one value column")
	}
	seriesCount := len(header) - 1

	labels := make([]string, 0, len(rows)-1)
	series := make([][]float64, seriesCount)

	for rowIdx, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		labels = append(labels, strings.TrimSpace(row[0]))

		for col := 0; col < seriesCount; col++ {
			cell := ""
			if col+1 < len(row) {
				cell = strings.TrimSpace(row[col+1])
			}
			if cell == "" {
				return nil, fmt.Errorf("row %d: missing value in column %q", rowIdx+2, header[col+1])
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: %q is not numeric", rowIdx+2, cell)
			}
			series[col] = append(series[col], v)
		}
	}

	data, err := json.Marshal(series)
	if err != nil {
		return nil, fmt.Errorf("marshal data: %w", err)
	}

	opts := &chart.Options{
		Kind:   chart.KindLine.String(),
		Data:   data,
		Labels: labels,
	}

	raw, err := json.Marshal(opts)
	if err != nil {
		return nil, fmt.Errorf("marshal options: %w", err)
	}
	if err := chart.ValidateOptions(raw); err != nil {
		return nil, err
	}
	return opts, nil
}

func trimEmptyRows(rows [][]string) [][]string {
	out := rows[:0]
	for _, row := range rows {
		empty := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				empty = false
				break
			}
		}
		if !empty {
			out = append(out, row)
		}
	}
	return out
}
