package chart

import "encoding/json"

// parsedData holds type-checked raw values. Exactly one field is populated,
// matching the kind that was validated against.
type parsedData struct {
	rows   [][]float64  // line/area/bar: one row per series
	values []float64    // pie
	pairs  [][2]float64 // scatter
}

// parseData type-checks raw JSON data against the declared chart kind and
// returns it in numeric form. It fails with *DataShapeError on the first
// violated rule; nothing downstream runs on malformed input.
func parseData(kind Kind, raw json.RawMessage) (*parsedData, error) {
	var elems []interface{}
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, shapeErr(kind, "data must be a JSON array")
	}
	if len(elems) == 0 {
		return nil, shapeErr(kind, "data must not be empty")
	}

	switch {
	case kind.IsSeries():
		rows, err := parseSeriesRows(kind, elems)
		if err != nil {
			return nil, err
		}
		return &parsedData{rows: rows}, nil

	case kind == KindPie:
		values := make([]float64, len(elems))
		for i, e := range elems {
			v, ok := e.(float64)
			if !ok {
				return nil, shapeErr(kind, "element %d is not a number", i)
			}
			if v < 0 {
				return nil, shapeErr(kind, "element %d is negative", i)
			}
			values[i] = v
		}
		return &parsedData{values: values}, nil

	case kind == KindScatter:
		pairs := make([][2]float64, len(elems))
		for i, e := range elems {
			pair, ok := e.([]interface{})
			if !ok || len(pair) != 2 {
				return nil, shapeErr(kind, "element %d is not an [x, y] pair", i)
			}
			x, xok := pair[0].(float64)
			y, yok := pair[1].(float64)
			if !xok || !yok {
				return nil, shapeErr(kind, "element %d has a non-numeric coordinate", i)
			}
			pairs[i] = [2]float64{x, y}
		}
		return &parsedData{pairs: pairs}, nil
	}

	return nil, shapeErr(kind, "unsupported chart kind")
}

// parseSeriesRows accepts either a flat numeric sequence (promoted to a
// single series) or a sequence of numeric sequences. Mixing the two shapes
// is rejected. Series lengths are free to differ; each is scaled against the
// shared index axis independently.
func parseSeriesRows(kind Kind, elems []interface{}) ([][]float64, error) {
	switch elems[0].(type) {
	case float64:
		row := make([]float64, len(elems))
		for i, e := range elems {
			v, ok := e.(float64)
			if !ok {
				return nil, shapeErr(kind, "element %d is not a number", i)
			}
			row[i] = v
		}
		return [][]float64{row}, nil

	case []interface{}:
		rows := make([][]float64, len(elems))
		for i, e := range elems {
			seq, ok := e.([]interface{})
			if !ok {
				return nil, shapeErr(kind, "element %d is not a series", i)
			}
			row := make([]float64, len(seq))
			for j, sv := range seq {
				v, ok := sv.(float64)
				if !ok {
					return nil, shapeErr(kind, "series %d element %d is not a number", i, j)
				}
				row[j] = v
			}
			rows[i] = row
		}
		return rows, nil
	}

	return nil, shapeErr(kind, "elements must be numbers or series of numbers")
}
