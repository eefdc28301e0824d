package udf

import (
	"testing"
)

func TestParseMetadataFullForm(t *testing.T) {
	text := "Board data file version: 2.0.0\r\n" +
		"0: Sensor Index: 1: u8: none: 0: 0: active\r\n" +
		"1: Gas resistance [ohm]: 4: f: none: 0: 0: active\r\n"

	version, fields := ParseMetadata(text)

	if version != "Board data file version: 2.0.0" {
		t.Errorf("version = %q", version)
	}
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}

	f := fields[1]
	if f.ID != 1 || f.Name != "Gas resistance [ohm]" || f.Size != 4 || f.TypeSpec != "f" {
		t.Errorf("unexpected descriptor: %+v", f)
	}
	if f.Flags != "none" || f.Status != "active" {
		t.Errorf("rich tokens not preserved: %+v", f)
	}
	if got := f.Key(); got != "1_Gas resistance [ohm]" {
		t.Errorf("Key() = %q", got)
	}
}

func TestParseMetadataShortForm(t *testing.T) {
	text := "1.0\n0: Sensor Index: 1: u8\n1: Temperature: 4: f\n"

	version, fields := ParseMetadata(text)

	if version != "1.0" {
		t.Errorf("version = %q", version)
	}
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[0].Key() != "0_Sensor Index" || fields[1].Key() != "1_Temperature" {
		t.Errorf("keys = %q, %q", fields[0].Key(), fields[1].Key())
	}
}

func TestParseMetadataSkipsMalformedLines(t *testing.T) {
	text := "1.0\n" +
		"not a field line\n" +
		"0: Sensor Index: 1: u8\n" +
		"x: broken: y: z\n" +
		"\n" +
		"1: Temperature: 4: f\n"

	_, fields := ParseMetadata(text)

	if len(fields) != 2 {
		t.Fatalf("malformed lines must be skipped, got %d fields", len(fields))
	}
	if fields[0].ID != 0 || fields[1].ID != 1 {
		t.Errorf("unexpected ids: %d, %d", fields[0].ID, fields[1].ID)
	}
}

func TestParseMetadataEmpty(t *testing.T) {
	version, fields := ParseMetadata("")
	if version != "" || len(fields) != 0 {
		t.Errorf("empty header should yield nothing, got %q / %d fields", version, len(fields))
	}
}

func TestSplitFindsDelimiter(t *testing.T) {
	raw := []byte("1.0\r\n0: Sensor Index: 1: u8\r\n\r\n\r\n\x00\xffpayload")

	f, err := Split(raw)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if f.Version != "1.0" {
		t.Errorf("version = %q", f.Version)
	}
	if len(f.Fields) != 1 {
		t.Errorf("expected 1 field, got %d", len(f.Fields))
	}
	if string(f.Payload) != "\x00\xffpayload" {
		t.Errorf("payload = %q", f.Payload)
	}
}

func TestSplitNoDelimiter(t *testing.T) {
	_, err := Split([]byte("just some text without a delimiter"))
	if err != ErrNoDelimiter {
		t.Fatalf("expected ErrNoDelimiter, got %v", err)
	}
}

func TestSplitDropsInvalidUTF8(t *testing.T) {
	raw := []byte("1.0\r\n0: Sen\xffsor: 1: u8\r\n\r\n\r\n")

	f, err := Split(raw)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if len(f.Fields) != 1 || f.Fields[0].Name != "Sensor" {
		t.Errorf("invalid byte should be dropped, got %+v", f.Fields)
	}
}
