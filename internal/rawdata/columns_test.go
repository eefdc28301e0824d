package rawdata

import (
	"testing"
)

func TestColumnsTable(t *testing.T) {
	cols := Columns()
	if len(cols) != 13 {
		t.Fatalf("expected 13 columns, got %d", len(cols))
	}

	for i, c := range cols {
		if c.ColID != i+1 {
			t.Errorf("column %q: colId = %d, want %d", c.Name, c.ColID, i+1)
		}
	}

	// Spot-check the entries downstream tooling keys on.
	if cols[2].Name != "Time Since PowerOn" || cols[2].Unit != "Milliseconds" {
		t.Errorf("column 3 = %+v", cols[2])
	}
	if cols[4].Key != "temperature" || cols[4].Format != FormatFloat {
		t.Errorf("column 5 = %+v", cols[4])
	}
	if cols[9].Format != FormatBoolean {
		t.Errorf("column 10 = %+v, want boolean format", cols[9])
	}
}

func TestColumnsReturnsCopy(t *testing.T) {
	a := Columns()
	a[0].Name = "mutated"
	if Columns()[0].Name != "Sensor Index" {
		t.Error("Columns must not expose the shared table")
	}
}

func TestCanonicalColumnFor(t *testing.T) {
	cases := []struct {
		field string
		want  string
		ok    bool
	}{
		{"Raw temperature [deg C]", "Temperature", true},
		{"Temperature", "Temperature", true},
		{"Gas resistance [ohm]", "Resistance Gassensor", true},
		{"Raw humidity [%rH]", "Relative Humidity", true},
		{"error_code", "Error Code", true},
		{"Mystery Field", "", false},
	}
	for _, tc := range cases {
		got, ok := CanonicalColumnFor(tc.field)
		if got != tc.want || ok != tc.ok {
			t.Errorf("CanonicalColumnFor(%q) = %q, %v; want %q, %v", tc.field, got, ok, tc.want, tc.ok)
		}
	}
}
