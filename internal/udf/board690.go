package udf

import (
	"encoding/binary"
	"math"

	"github.com/mcalisterkm/bme-converter/internal/monitoring"
)

// Board690 is the fixed-offset layout for the one empirically characterised
// board family: a 28-byte leading header followed by 61-byte records. It is
// used when field descriptors do not reliably map to the physical layout.
//
// RECORD STRUCTURE (61 bytes, little-endian, offsets within the record):
//
//	[0-1]   marker (0x00FF)
//	[2-9]   time since power-on, u64 nanoseconds
//	[12]    heater profile step index, u8
//	[15-18] gas resistance, f32 ohms
//	[21-24] relative humidity, f32 percent
//	[27-30] pressure, f32 hPa
//	[33-36] temperature, f32 degrees C
//	[39]    scanning cycle index, u8
//	[45-48] sensor id, u32
//	[51-54] label tag, u32
//	[53]    error code, s8
//	[60]    sensor index, u8
//
// The board carries no real-time clock and does not encode the scanning-mode
// flag; both are emitted as constants (0 and 1). This is a deliberate
// constant-value policy pending hardware documentation, not a decode rule.
const (
	Board690HeaderSize = 28
	Board690RecordSize = 61

	board690OffTimeSincePowerOn = 2
	board690OffHeaterStep       = 12
	board690OffGasResistance    = 15
	board690OffHumidity         = 21
	board690OffPressure         = 27
	board690OffTemperature      = 33
	board690OffScanningCycle    = 39
	board690OffSensorID         = 45
	board690OffLabelTag         = 51
	board690OffErrorCode        = 53
	board690OffSensorIndex      = 60

	board690ConstRealTimeClock = 0
	board690ConstScanningMode  = true
)

// Board690Framing is the explicit fallback framing for this board family,
// for best-effort callers when marker-scan inference fails.
var Board690Framing = Fixed{Header: Board690HeaderSize, Record: Board690RecordSize}

// CanonicalRow is one record decoded under the Board690 layout, in the
// 13-column canonical schema consumed by the raw-data export format.
type CanonicalRow struct {
	SensorIndex            uint8
	SensorID               uint32
	TimeSincePowerOn       int64 // milliseconds
	RealTimeClock          int64 // unix seconds; constant 0, board has no RTC
	Temperature            float32
	Pressure               float32
	RelativeHumidity       float32
	GasResistance          float32
	HeaterProfileStepIndex uint8
	ScanningModeEnabled    bool // constant true, not physically encoded
	ScanningCycleIndex     uint8
	LabelTag               uint32
	ErrorCode              int8
}

// DecodeBoard690 slices the payload into 61-byte records starting at the
// framing header offset and decodes each under the fixed layout. Records
// shorter than 61 bytes are skipped, not errors; the skip count is returned
// so callers can surface the diagnostic.
func DecodeBoard690(payload []byte, framing Framing) ([]CanonicalRow, int) {
	record := framing.Record
	if record <= 0 {
		record = Board690RecordSize
	}

	var rows []CanonicalRow
	skipped := 0
	for offset := framing.Header; offset < len(payload); offset += record {
		end := offset + record
		if end > len(payload) {
			end = len(payload)
		}
		window := payload[offset:end]
		if len(window) < Board690RecordSize {
			skipped++
			continue
		}
		rows = append(rows, decodeBoard690Record(window))
	}

	if skipped > 0 {
		monitoring.Logf("udf: skipped %d short record(s) under board_690 layout", skipped)
	}
	return rows, skipped
}

func decodeBoard690Record(w []byte) CanonicalRow {
	timeNs := binary.LittleEndian.Uint64(w[board690OffTimeSincePowerOn : board690OffTimeSincePowerOn+8])

	return CanonicalRow{
		SensorIndex:            w[board690OffSensorIndex],
		SensorID:               binary.LittleEndian.Uint32(w[board690OffSensorID : board690OffSensorID+4]),
		TimeSincePowerOn:       int64(timeNs / 1_000_000),
		RealTimeClock:          board690ConstRealTimeClock,
		Temperature:            math.Float32frombits(binary.LittleEndian.Uint32(w[board690OffTemperature : board690OffTemperature+4])),
		Pressure:               math.Float32frombits(binary.LittleEndian.Uint32(w[board690OffPressure : board690OffPressure+4])),
		RelativeHumidity:       math.Float32frombits(binary.LittleEndian.Uint32(w[board690OffHumidity : board690OffHumidity+4])),
		GasResistance:          math.Float32frombits(binary.LittleEndian.Uint32(w[board690OffGasResistance : board690OffGasResistance+4])),
		HeaterProfileStepIndex: w[board690OffHeaterStep],
		ScanningModeEnabled:    board690ConstScanningMode,
		ScanningCycleIndex:     w[board690OffScanningCycle],
		LabelTag:               binary.LittleEndian.Uint32(w[board690OffLabelTag : board690OffLabelTag+4]),
		ErrorCode:              int8(w[board690OffErrorCode]),
	}
}
