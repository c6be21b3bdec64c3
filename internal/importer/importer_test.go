package importer

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestRowsToOptions(t *testing.T) {
	rows := [][]string{
		{"Month", "Revenue", "Costs"},
		{"Jan", "120", "80"},
		{"Feb", "135.5", "82"},
		{"Mar", "150", "90"},
	}

	opts, err := rowsToOptions(rows)
	if err != nil {
		t.Fatal(err)
	}

	if opts.Kind != "line" {
		t.Errorf("kind = %q, want line", opts.Kind)
	}
	if want := []string{"Jan", "Feb", "Mar"}; !reflect.DeepEqual(opts.Labels, want) {
		t.Errorf("labels = %v, want %v", opts.Labels, want)
	}

	var data [][]float64
	if err := json.Unmarshal(opts.Data, &data); err != nil {
		t.Fatal(err)
	}
	want := [][]float64{{120, 135.5, 150}, {80, 82, 90}}
	if !reflect.DeepEqual(data, want) {
		t.Errorf("data = %v, want %v", data, want)
	}
}

func TestRowsToOptionsSkipsEmptyRows(t *testing.T) {
	rows := [][]string{
		{"Day", "Visits"},
		{"", ""},
		{"Mon", "10"},
		{"  ", ""},
		{"Tue", "12"},
	}

	opts, err := rowsToOptions(rows)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"Mon", "Tue"}; !reflect.DeepEqual(opts.Labels, want) {
		t.Errorf("labels = %v, want %v", opts.Labels, want)
	}
}

func TestRowsToOptionsErrors(t *testing.T) {
	cases := []struct {
		name string
		rows [][]string
	}{
		{"empty sheet", nil},
		{"header only", [][]string{{"Month", "Revenue"}}},
		{"no value columns", [][]string{{"Month"}, {"Jan"}}},
		{"non-numeric value", [][]string{{"Month", "Revenue"}, {"Jan", "lots"}}},
		{"missing value", [][]string{{"Month", "Revenue", "Costs"}, {"Jan", "120"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := rowsToOptions(tc.rows); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
