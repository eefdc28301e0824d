package rawdata

import (
	"encoding/json"
	"fmt"
	"path/filepath"
)

// ConfigFileName is the board configuration companion file searched for next
// to a UDF file and in its parent directory.
const ConfigFileName = "BoardConfiguration.bmeconfig"

// BoardConfig is a parsed .bmeconfig file. Header and Body are retained raw
// for verbatim pass-through into the rawdata document; the typed accessors
// below decode only the sections the converter presents.
type BoardConfig struct {
	ConfigHeader json.RawMessage `json:"configHeader"`
	ConfigBody   json.RawMessage `json:"configBody"`
}

// HeaterProfile is one heater profile definition from the config body.
// TemperatureTimeVectors pairs a set-point temperature with a dwell time in
// timeBase units.
type HeaterProfile struct {
	ID                     string   `json:"id"`
	TimeBase               int      `json:"timeBase"`
	TemperatureTimeVectors [][2]int `json:"temperatureTimeVectors"`
}

// HeaterStep is one decoded heater profile step with absolute times.
type HeaterStep struct {
	Step         int
	TemperatureC int
	TimeUnits    int
	TimeMs       int
	TimeSeconds  float64
}

// Steps decodes the profile's temperature/time vectors into absolute
// millisecond dwell times (timeBase × timeUnits).
func (p HeaterProfile) Steps() []HeaterStep {
	steps := make([]HeaterStep, 0, len(p.TemperatureTimeVectors))
	for i, v := range p.TemperatureTimeVectors {
		ms := v[1] * p.TimeBase
		steps = append(steps, HeaterStep{
			Step:         i + 1,
			TemperatureC: v[0],
			TimeUnits:    v[1],
			TimeMs:       ms,
			TimeSeconds:  float64(ms) / 1000.0,
		})
	}
	return steps
}

// DutyCycleProfile is one duty-cycle profile definition.
type DutyCycleProfile struct {
	ID                   string `json:"id"`
	NumberScanningCycles int    `json:"numberScanningCycles"`
	NumberSleepingCycles int    `json:"numberSleepingCycles"`
}

// SensorConfiguration binds one sensor to its heater and duty-cycle profiles.
type SensorConfiguration struct {
	SensorIndex      int    `json:"sensorIndex"`
	HeaterProfile    string `json:"heaterProfile"`
	DutyCycleProfile string `json:"dutyCycleProfile"`
}

type configHeader struct {
	BoardType string `json:"boardType"`
}

type configBody struct {
	HeaterProfiles       []HeaterProfile       `json:"heaterProfiles"`
	DutyCycleProfiles    []DutyCycleProfile    `json:"dutyCycleProfiles"`
	SensorConfigurations []SensorConfiguration `json:"sensorConfigurations"`
}

// ParseBoardConfig parses .bmeconfig bytes.
func ParseBoardConfig(data []byte) (*BoardConfig, error) {
	var cfg BoardConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("rawdata: parse board config: %w", err)
	}
	return &cfg, nil
}

// LoadBoardConfig parses a .bmeconfig file.
func LoadBoardConfig(path string) (*BoardConfig, error) {
	data, err := readCompanionFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseBoardConfig(data)
	if err != nil {
		return nil, fmt.Errorf("rawdata: %s: %w", path, err)
	}
	return cfg, nil
}

// FindBoardConfig locates the board configuration file for a UDF file: same
// directory first, then the parent. Returns "" when neither exists.
func FindBoardConfig(udfPath string, exists func(string) bool) string {
	dir := filepath.Dir(udfPath)
	for _, candidate := range []string{
		filepath.Join(dir, ConfigFileName),
		filepath.Join(filepath.Dir(dir), ConfigFileName),
	} {
		if exists(candidate) {
			return candidate
		}
	}
	return ""
}

// BoardType returns the board family from the config header, or "unknown".
func (c *BoardConfig) BoardType() string {
	var h configHeader
	if err := json.Unmarshal(c.ConfigHeader, &h); err != nil || h.BoardType == "" {
		return "unknown"
	}
	return h.BoardType
}

// HeaterProfiles decodes the heater profiles from the config body.
func (c *BoardConfig) HeaterProfiles() []HeaterProfile {
	return c.body().HeaterProfiles
}

// DutyCycleProfiles decodes the duty-cycle profiles from the config body.
func (c *BoardConfig) DutyCycleProfiles() []DutyCycleProfile {
	return c.body().DutyCycleProfiles
}

// SensorConfigurations decodes the per-sensor profile bindings.
func (c *BoardConfig) SensorConfigurations() []SensorConfiguration {
	return c.body().SensorConfigurations
}

func (c *BoardConfig) body() configBody {
	var b configBody
	// A config body that does not decode presents as empty sections; it
	// never fails the conversion.
	_ = json.Unmarshal(c.ConfigBody, &b)
	return b
}
