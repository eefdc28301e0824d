package udf

import (
	"encoding/binary"
	"math"
	"reflect"
	"testing"
)

func TestChunkDecoderKeys(t *testing.T) {
	fields := []FieldDescriptor{
		{ID: 0, Name: "Temperature", Size: 4, TypeSpec: "f"},
		{ID: 1, Name: "Pressure", Size: 4, TypeSpec: "f"},
	}
	// 15-byte record: 2 marker bytes, three 4-byte chunks, one trailing byte.
	d := NewChunkDecoder(fields, Framing{Header: 0, Record: 15})

	want := []string{"Temperature", "Pressure", "f2", "byte_0"}
	if !reflect.DeepEqual(d.Keys(), want) {
		t.Errorf("keys = %v, want %v", d.Keys(), want)
	}
}

func TestChunkDecoderFloatAndIntCoercion(t *testing.T) {
	// One 10-byte record: marker, a sane float chunk, then a chunk whose
	// float reading is NaN.
	window := make([]byte, 10)
	window[0] = 0x00
	window[1] = 0xFF
	binary.LittleEndian.PutUint32(window[2:], math.Float32bits(23.456789))
	binary.LittleEndian.PutUint32(window[6:], 0x7FC00001) // quiet NaN bits

	d := NewChunkDecoder(nil, Framing{Header: 0, Record: 10})
	records := d.Decode(window)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	vals := records[0].Values
	if len(vals) != 2 {
		t.Fatalf("expected 2 values, got %d", len(vals))
	}
	if vals[0].Kind != KindFloat || math.Abs(vals[0].Float-23.456789) > 1e-6 {
		t.Errorf("chunk 0 = %+v, want float 23.456789", vals[0])
	}
	if vals[1].Kind != KindUint || vals[1].Uint != 0x7FC00001 {
		t.Errorf("chunk 1 = %+v, want uint 0x7fc00001", vals[1])
	}
}

func TestChunkDecoderRejectsHugeFloats(t *testing.T) {
	window := make([]byte, 6)
	window[0] = 0x00
	window[1] = 0xFF
	bits := math.Float32bits(3e20) // finite but past the plausibility bound
	binary.LittleEndian.PutUint32(window[2:], bits)

	d := NewChunkDecoder(nil, Framing{Header: 0, Record: 6})
	records := d.Decode(window)
	v := records[0].Values[0]
	if v.Kind != KindUint || v.Uint != uint64(bits) {
		t.Errorf("value = %+v, want uint %d", v, bits)
	}
}

func TestChunkDecoderTrailingBytes(t *testing.T) {
	// 9-byte record: marker, one chunk, three trailing u8 bytes.
	window := []byte{0x00, 0xFF, 0, 0, 0, 0, 11, 22, 33}
	d := NewChunkDecoder(nil, Framing{Header: 0, Record: 9})

	records := d.Decode(window)
	vals := records[0].Values
	if len(vals) != 4 {
		t.Fatalf("expected 4 values, got %d", len(vals))
	}
	for i, want := range []uint64{11, 22, 33} {
		v := vals[i+1]
		if v.Kind != KindUint || v.Uint != want {
			t.Errorf("trailing byte %d = %+v, want %d", i, v, want)
		}
	}
}

func TestChunkDecoderRoundsToMicroPrecision(t *testing.T) {
	window := make([]byte, 6)
	window[0] = 0x00
	window[1] = 0xFF
	binary.LittleEndian.PutUint32(window[2:], math.Float32bits(0.1))

	d := NewChunkDecoder(nil, Framing{Header: 0, Record: 6})
	v := d.Decode(window)[0].Values[0]
	if v.Kind != KindFloat || v.Float != 0.1 {
		t.Errorf("value = %+v, want exactly 0.1 after rounding", v)
	}
}
