// Package rawdata reconstructs decoded UDF records into the canonical
// .bmerawdata document: the fixed 13-column schema, the companion board
// configuration and label-info files, and the JSON container that downstream
// spreadsheet and CSV tooling consumes.
package rawdata

// Column formats used by the canonical schema.
const (
	FormatInteger = "integer"
	FormatFloat   = "float"
	FormatBoolean = "boolean"
)

// Column is one entry of the canonical column table. ColID is 1-based.
type Column struct {
	Name   string `json:"name"`
	Unit   string `json:"unit"`
	Format string `json:"format"`
	Key    string `json:"key"`
	ColID  int    `json:"colId"`
}

// Columns is the fixed canonical column table. Order, names, units and
// formats are part of the external contract and are never inferred from data.
func Columns() []Column {
	cols := make([]Column, len(canonicalColumns))
	copy(cols, canonicalColumns)
	return cols
}

var canonicalColumns = []Column{
	{Name: "Sensor Index", Unit: "", Format: FormatInteger, Key: "sensor_index", ColID: 1},
	{Name: "Sensor ID", Unit: "", Format: FormatInteger, Key: "sensor_id", ColID: 2},
	{Name: "Time Since PowerOn", Unit: "Milliseconds", Format: FormatInteger, Key: "timestamp_since_poweron", ColID: 3},
	{Name: "Real time clock", Unit: "Unix Timestamp: seconds since Jan 01 1970. (UTC); 0 = missing", Format: FormatInteger, Key: "real_time_clock", ColID: 4},
	{Name: "Temperature", Unit: "DegreesCelcius", Format: FormatFloat, Key: "temperature", ColID: 5},
	{Name: "Pressure", Unit: "Hectopascals", Format: FormatFloat, Key: "pressure", ColID: 6},
	{Name: "Relative Humidity", Unit: "Percent", Format: FormatFloat, Key: "relative_humidity", ColID: 7},
	{Name: "Resistance Gassensor", Unit: "Ohms", Format: FormatFloat, Key: "resistance_gassensor", ColID: 8},
	{Name: "Heater Profile Step Index", Unit: "", Format: FormatInteger, Key: "heater_profile_step_index", ColID: 9},
	{Name: "Scanning Mode Enabled", Unit: "", Format: FormatBoolean, Key: "scanning_enabled", ColID: 10},
	{Name: "Scanning Cycle Index", Unit: "", Format: FormatInteger, Key: "scanning_cycle_index", ColID: 11},
	{Name: "Label Tag", Unit: "", Format: FormatInteger, Key: "label_tag", ColID: 12},
	{Name: "Error Code", Unit: "", Format: FormatInteger, Key: "error_code", ColID: 13},
}

// fieldNameToColumn maps the field names boards declare in UDF metadata
// headers to canonical column names. Several header spellings map to the same
// column across firmware revisions.
var fieldNameToColumn = map[string]string{
	"Sensor Index":            "Sensor Index",
	"Sensor ID":               "Sensor ID",
	"Time Since PowerOn":      "Time Since PowerOn",
	"Real time clock":         "Real time clock",
	"Raw temperature [deg C]": "Temperature",
	"Temperature":             "Temperature",
	"Pressure [Pa]":           "Pressure",
	"Raw humidity [%rH]":      "Relative Humidity",
	"Humidity":                "Relative Humidity",
	"Gas resistance [ohm]":    "Resistance Gassensor",
	"Gas heater index":        "Heater Profile Step Index",
	"Scanning Mode Enabled":   "Scanning Mode Enabled",
	"Scanning Cycle Index":    "Scanning Cycle Index",
	"Label Tag":               "Label Tag",
	"error_code":              "Error Code",
}

// CanonicalColumnFor maps a metadata field name to its canonical column name.
func CanonicalColumnFor(fieldName string) (string, bool) {
	name, ok := fieldNameToColumn[fieldName]
	return name, ok
}
