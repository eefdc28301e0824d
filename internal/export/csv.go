// Package export serializes decoded UDF records: CSV for the generic
// descriptor-driven rows and HTML chart reports for the canonical board
// rows.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/mcalisterkm/bme-converter/internal/udf"
)

// WriteRecordsCSV writes descriptor-decoded records: one header row of
// ordered "<id>_<name>" keys, one row per record. Every row carries the same
// column set; missing values render as empty cells.
func WriteRecordsCSV(w io.Writer, keys []string, records []udf.Record) error {
	cw := csv.NewWriter(w)

	header := append([]string{"record_num"}, keys...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("export: write csv header: %w", err)
	}

	row := make([]string, len(header))
	for _, rec := range records {
		row[0] = strconv.Itoa(rec.Index)
		for i := range keys {
			row[i+1] = ""
			if i < len(rec.Values) {
				row[i+1] = rec.Values[i].String()
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: write csv record %d: %w", rec.Index, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCanonicalCSV writes fixed-offset decoded rows under the canonical
// column headers.
func WriteCanonicalCSV(w io.Writer, rows []udf.CanonicalRow) error {
	cw := csv.NewWriter(w)

	header := []string{
		"Sensor Index", "Sensor ID", "Time Since PowerOn", "Real time clock",
		"Temperature", "Pressure", "Relative Humidity", "Resistance Gassensor",
		"Heater Profile Step Index", "Scanning Mode Enabled",
		"Scanning Cycle Index", "Label Tag", "Error Code",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("export: write csv header: %w", err)
	}

	for i, r := range rows {
		scanning := "0"
		if r.ScanningModeEnabled {
			scanning = "1"
		}
		record := []string{
			strconv.Itoa(int(r.SensorIndex)),
			strconv.FormatUint(uint64(r.SensorID), 10),
			strconv.FormatInt(r.TimeSincePowerOn, 10),
			strconv.FormatInt(r.RealTimeClock, 10),
			formatFloat32(r.Temperature),
			formatFloat32(r.Pressure),
			formatFloat32(r.RelativeHumidity),
			formatFloat32(r.GasResistance),
			strconv.Itoa(int(r.HeaterProfileStepIndex)),
			scanning,
			strconv.Itoa(int(r.ScanningCycleIndex)),
			strconv.FormatUint(uint64(r.LabelTag), 10),
			strconv.Itoa(int(r.ErrorCode)),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("export: write csv record %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat32(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}
