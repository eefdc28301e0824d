package rawdata

import (
	"github.com/mcalisterkm/bme-converter/internal/udf"
)

// Rows maps fixed-offset decoded records into ordered 13-element value
// arrays matching the canonical column order.
func Rows(rows []udf.CanonicalRow) [][]any {
	block := make([][]any, 0, len(rows))
	for _, r := range rows {
		block = append(block, []any{
			int(r.SensorIndex),
			int64(r.SensorID),
			r.TimeSincePowerOn,
			r.RealTimeClock,
			r.Temperature,
			r.Pressure,
			r.RelativeHumidity,
			r.GasResistance,
			int(r.HeaterProfileStepIndex),
			r.ScanningModeEnabled,
			int(r.ScanningCycleIndex),
			int64(r.LabelTag),
			int(r.ErrorCode),
		})
	}
	return block
}

// Build assembles the complete rawdata document: config sections passed
// through from the board configuration, the header sourced from label info,
// the fixed column table, and the decoded data block.
func Build(cfg *BoardConfig, li *LabelInfo, rows []udf.CanonicalRow) *Document {
	return &Document{
		ConfigHeader:  cfg.ConfigHeader,
		ConfigBody:    cfg.ConfigBody,
		RawDataHeader: HeaderFrom(li),
		RawDataBody: Body{
			DataColumns: Columns(),
			DataBlock:   Rows(rows),
		},
	}
}
