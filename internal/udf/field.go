package udf

import (
	"regexp"
	"strconv"
	"strings"
)

// FieldDescriptor is one declared field from the metadata header. The id is a
// declaration-order identifier and is not guaranteed to equal a physical byte
// offset. Size is authoritative when the type spec is unrecognized.
type FieldDescriptor struct {
	ID       int
	Name     string
	Size     int    // bytes
	TypeSpec string // comma-separated primitive tokens, e.g. "f" or "f,u8"

	// Present only in the richer 8-token header variant. Unused by decoding
	// but preserved so exports can reproduce the header verbatim.
	Flags  string
	Val1   string
	Val2   string
	Status string
}

// Key returns the record key for this field, "<id>_<name>". Names repeat
// across descriptors; prefixing the id keeps keys unique.
func (f FieldDescriptor) Key() string {
	return strconv.Itoa(f.ID) + "_" + f.Name
}

// primitive byte widths for recognized type-spec tokens. "f" is IEEE-754
// single precision. Anything absent from this table decodes as raw hex.
var typeWidths = map[string]int{
	"u8":  1,
	"s8":  1,
	"u16": 2,
	"s16": 2,
	"u32": 4,
	"s32": 4,
	"f":   4,
}

// Header field-line grammar. The full 8-token form is
// "id: name: size: type: flags: val1: val2: status"; older headers emit only
// the first four tokens.
var (
	fieldLineFull  = regexp.MustCompile(`^(\d+):\s*([^:]+):\s*(\d+):\s*([^:]+):\s*([^:]+):\s*([^:]+):\s*([^:]+):\s*(.+)$`)
	fieldLineShort = regexp.MustCompile(`^(\d+):\s*([^:]+):\s*(\d+):\s*([^:]+?)\s*$`)
)

// ParseMetadata parses the header text into a version string and ordered
// field descriptors. The first non-empty line is the version, free-form and
// opaque. Lines that do not match the field grammar are skipped so a single
// malformed line never aborts the header.
func ParseMetadata(text string) (string, []FieldDescriptor) {
	version := ""
	var fields []FieldDescriptor

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if version == "" {
			version = line
			continue
		}

		if m := fieldLineFull.FindStringSubmatch(line); m != nil {
			f, ok := descriptorFromMatch(m)
			if !ok {
				continue
			}
			f.Flags = strings.TrimSpace(m[5])
			f.Val1 = strings.TrimSpace(m[6])
			f.Val2 = strings.TrimSpace(m[7])
			f.Status = strings.TrimSpace(m[8])
			fields = append(fields, f)
			continue
		}
		if m := fieldLineShort.FindStringSubmatch(line); m != nil {
			if f, ok := descriptorFromMatch(m); ok {
				fields = append(fields, f)
			}
		}
	}

	return version, fields
}

func descriptorFromMatch(m []string) (FieldDescriptor, bool) {
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return FieldDescriptor{}, false
	}
	size, err := strconv.Atoi(m[3])
	if err != nil {
		return FieldDescriptor{}, false
	}
	return FieldDescriptor{
		ID:       id,
		Name:     strings.TrimSpace(m[2]),
		Size:     size,
		TypeSpec: strings.TrimSpace(m[4]),
	}, true
}

// typeTokens splits a type spec into its trimmed component tokens.
func typeTokens(spec string) []string {
	parts := strings.Split(spec, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
