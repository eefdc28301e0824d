package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/mcalisterkm/bme-converter/internal/udf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRecordsCSV(t *testing.T) {
	keys := []string{"0_Sensor Index", "1_Temperature"}
	records := []udf.Record{
		{Index: 0, Keys: keys, Values: []udf.Value{
			{Kind: udf.KindUint, Uint: 2},
			{Kind: udf.KindFloat, Float: 23.5},
		}},
		{Index: 1, Keys: keys, Values: []udf.Value{
			{Kind: udf.KindUint, Uint: 3},
			{Kind: udf.KindMissing},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRecordsCSV(&buf, keys, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"record_num", "0_Sensor Index", "1_Temperature"}, rows[0])
	assert.Equal(t, []string{"0", "2", "23.5"}, rows[1])
	assert.Equal(t, []string{"1", "3", ""}, rows[2])
}

func TestWriteRecordsCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRecordsCSV(&buf, []string{"0_A"}, nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1, "header only")
}

func TestWriteCanonicalCSV(t *testing.T) {
	rows := []udf.CanonicalRow{
		{
			SensorIndex:            2,
			SensorID:               7,
			TimeSincePowerOn:       1234,
			Temperature:            23.5,
			Pressure:               1013.25,
			RelativeHumidity:       41.25,
			GasResistance:          52341.5,
			HeaterProfileStepIndex: 3,
			ScanningModeEnabled:    true,
			ScanningCycleIndex:     1,
			LabelTag:               1001,
			ErrorCode:              -2,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCanonicalCSV(&buf, rows))

	out, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "Sensor Index", out[0][0])
	assert.Equal(t, "Error Code", out[0][12])
	assert.Equal(t, []string{
		"2", "7", "1234", "0",
		"23.5", "1013.25", "41.25", "52341.5",
		"3", "1", "1", "1001", "-2",
	}, out[1])
}
