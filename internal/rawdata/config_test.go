package rawdata

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `{
	"configHeader": {"dateCreated": "1700000000", "appVersion": "2.1.5", "boardType": "board_8", "boardMode": "burn_in", "boardLayout": "grouped"},
	"configBody": {
		"heaterProfiles": [
			{"id": "heater_411", "timeBase": 140, "temperatureTimeVectors": [[100, 2], [320, 5]]}
		],
		"dutyCycleProfiles": [
			{"id": "duty_5_10", "numberScanningCycles": 5, "numberSleepingCycles": 10}
		],
		"sensorConfigurations": [
			{"sensorIndex": 0, "heaterProfile": "heater_411", "dutyCycleProfile": "duty_5_10"}
		]
	}
}`

func TestParseBoardConfig(t *testing.T) {
	cfg, err := ParseBoardConfig([]byte(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "board_8", cfg.BoardType())

	profiles := cfg.HeaterProfiles()
	require.Len(t, profiles, 1)
	assert.Equal(t, "heater_411", profiles[0].ID)

	duty := cfg.DutyCycleProfiles()
	require.Len(t, duty, 1)
	assert.Equal(t, 5, duty[0].NumberScanningCycles)

	sensors := cfg.SensorConfigurations()
	require.Len(t, sensors, 1)
	assert.Equal(t, "heater_411", sensors[0].HeaterProfile)
}

func TestParseBoardConfigInvalid(t *testing.T) {
	_, err := ParseBoardConfig([]byte("not json"))
	assert.Error(t, err)
}

func TestHeaterProfileSteps(t *testing.T) {
	p := HeaterProfile{
		ID:                     "heater_411",
		TimeBase:               140,
		TemperatureTimeVectors: [][2]int{{100, 2}, {320, 5}},
	}

	steps := p.Steps()
	require.Len(t, steps, 2)

	assert.Equal(t, HeaterStep{Step: 1, TemperatureC: 100, TimeUnits: 2, TimeMs: 280, TimeSeconds: 0.28}, steps[0])
	assert.Equal(t, HeaterStep{Step: 2, TemperatureC: 320, TimeUnits: 5, TimeMs: 700, TimeSeconds: 0.7}, steps[1])
}

func TestBoardConfigUnknownType(t *testing.T) {
	cfg, err := ParseBoardConfig([]byte(`{"configHeader": {}, "configBody": {}}`))
	require.NoError(t, err)
	assert.Equal(t, "unknown", cfg.BoardType())
	assert.Empty(t, cfg.HeaterProfiles())
}

func TestFindBoardConfig(t *testing.T) {
	dir := filepath.Join("data", "session1")
	udfPath := filepath.Join(dir, "capture.udf")

	sibling := filepath.Join(dir, ConfigFileName)
	parent := filepath.Join("data", ConfigFileName)

	got := FindBoardConfig(udfPath, func(p string) bool { return p == sibling })
	assert.Equal(t, sibling, got)

	got = FindBoardConfig(udfPath, func(p string) bool { return p == parent })
	assert.Equal(t, parent, got)

	got = FindBoardConfig(udfPath, func(string) bool { return false })
	assert.Equal(t, "", got)
}
