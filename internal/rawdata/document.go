package rawdata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config-file loading guard, matching the limits applied to JSON config
// inputs elsewhere in the toolchain.
const maxCompanionFileSize = 8 * 1024 * 1024

// Document is the complete .bmerawdata JSON structure. The config header and
// body are passed through from the board configuration file unchanged.
type Document struct {
	ConfigHeader  json.RawMessage `json:"configHeader"`
	ConfigBody    json.RawMessage `json:"configBody"`
	RawDataHeader Header          `json:"rawDataHeader"`
	RawDataBody   Body            `json:"rawDataBody"`
}

// Header is the rawDataHeader section, sourced from the label-info file.
type Header struct {
	CounterPowerOnOff int    `json:"counterPowerOnOff"`
	SeedPowerOnOff    string `json:"seedPowerOnOff"`
	CounterFileLimit  int    `json:"counterFileLimit"`
	FirmwareVersion   string `json:"firmwareVersion"`
	BoardID           string `json:"boardId"`
}

// Body is the rawDataBody section: the fixed column table plus one ordered
// value array per decoded record, matching column order.
type Body struct {
	DataColumns []Column `json:"dataColumns"`
	DataBlock   [][]any  `json:"dataBlock"`
}

// Marshal renders the document as tab-indented JSON, the formatting the
// board vendor's own files use.
func (d *Document) Marshal() ([]byte, error) {
	return json.MarshalIndent(d, "", "\t")
}

// WriteFile marshals the document and writes it to path.
func (d *Document) WriteFile(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return fmt.Errorf("rawdata: marshal: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadDocument parses a .bmerawdata file.
func ReadDocument(path string) (*Document, error) {
	data, err := readCompanionFile(path)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("rawdata: parse %s: %w", path, err)
	}
	return &doc, nil
}

// readCompanionFile reads a JSON companion file with extension and size
// validation.
func readCompanionFile(path string) ([]byte, error) {
	clean := filepath.Clean(path)

	info, err := os.Stat(clean)
	if err != nil {
		return nil, fmt.Errorf("rawdata: stat %s: %w", path, err)
	}
	if info.Size() > maxCompanionFileSize {
		return nil, fmt.Errorf("rawdata: %s too large: %d bytes (max %d)", path, info.Size(), maxCompanionFileSize)
	}

	data, err := os.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("rawdata: read %s: %w", path, err)
	}
	return data, nil
}
