package rawdata

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// LabelInfo is a parsed .bmelabelinfo companion file.
type LabelInfo struct {
	LabelInfoHeader  LabelInfoHeader `json:"labelInfoHeader"`
	LabelInformation []Label         `json:"labelInformation"`
}

// LabelInfoHeader carries the power-cycle identity the rawdata header is
// sourced from.
type LabelInfoHeader struct {
	CounterPowerOnOff int    `json:"counterPowerOnOff"`
	SeedPowerOnOff    string `json:"seedPowerOnOff"`
	FirmwareVersion   string `json:"firmwareVersion"`
	BoardID           string `json:"boardId"`
}

// Label is one tag definition.
type Label struct {
	LabelTag         int    `json:"labelTag"`
	LabelName        string `json:"labelName"`
	LabelDescription string `json:"labelDescription"`
}

// ParseLabelInfo parses .bmelabelinfo bytes.
func ParseLabelInfo(data []byte) (*LabelInfo, error) {
	var li LabelInfo
	if err := json.Unmarshal(data, &li); err != nil {
		return nil, fmt.Errorf("rawdata: parse label info: %w", err)
	}
	return &li, nil
}

// LoadLabelInfo parses a .bmelabelinfo file.
func LoadLabelInfo(path string) (*LabelInfo, error) {
	data, err := readCompanionFile(path)
	if err != nil {
		return nil, err
	}
	li, err := ParseLabelInfo(data)
	if err != nil {
		return nil, fmt.Errorf("rawdata: %s: %w", path, err)
	}
	return li, nil
}

// FindLabelInfo locates the label-info file sharing the UDF file's base name,
// trying the .bmelabelinfo and .labelinfo extensions. Returns "" when
// neither exists.
func FindLabelInfo(udfPath string, exists func(string) bool) string {
	stem := strings.TrimSuffix(udfPath, filepath.Ext(udfPath))
	for _, candidate := range []string{stem + ".bmelabelinfo", stem + ".labelinfo"} {
		if exists(candidate) {
			return candidate
		}
	}
	return ""
}

// Lookup builds the tag → label index used to annotate exports.
func (li *LabelInfo) Lookup() map[int]Label {
	lookup := make(map[int]Label, len(li.LabelInformation))
	for _, l := range li.LabelInformation {
		lookup[l.LabelTag] = l
	}
	return lookup
}

// HeaderFrom sources the rawDataHeader from a label-info file. A nil li or
// missing header fields fall back to the defaults the board family ships
// with; counterFileLimit is always 1 since the converter emits one file per
// power cycle.
func HeaderFrom(li *LabelInfo) Header {
	h := Header{
		CounterPowerOnOff: 1,
		SeedPowerOnOff:    "unknown",
		CounterFileLimit:  1,
		FirmwareVersion:   "3.1.0",
		BoardID:           "unknown",
	}
	if li == nil {
		return h
	}
	if li.LabelInfoHeader.CounterPowerOnOff != 0 {
		h.CounterPowerOnOff = li.LabelInfoHeader.CounterPowerOnOff
	}
	if li.LabelInfoHeader.SeedPowerOnOff != "" {
		h.SeedPowerOnOff = li.LabelInfoHeader.SeedPowerOnOff
	}
	if li.LabelInfoHeader.FirmwareVersion != "" {
		h.FirmwareVersion = li.LabelInfoHeader.FirmwareVersion
	}
	if li.LabelInfoHeader.BoardID != "" {
		h.BoardID = li.LabelInfoHeader.BoardID
	}
	return h
}
