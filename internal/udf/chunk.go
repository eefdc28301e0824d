package udf

import (
	"encoding/binary"
	"math"
	"strconv"
)

// Float plausibility bound for the chunked decoder. Real sensor readings are
// many orders of magnitude smaller; a 4-byte chunk whose float interpretation
// exceeds this is treated as an integer instead.
const chunkFloatLimit = 1e20

// ChunkDecoder is the exploratory decode mode for boards whose descriptors do
// not map to the physical layout at all. Each record window is read past its
// 2-byte marker as consecutive 4-byte chunks, coercing each chunk to a float
// when the bits form a sane single-precision value and to an unsigned integer
// otherwise. Trailing bytes that do not fill a chunk decode as individual u8.
//
// Chunk names come from the field descriptors when available, positionally,
// else "f<n>"; trailing bytes are named "byte_<n>". This mode is a heuristic
// aid for layout discovery, not a contract.
type ChunkDecoder struct {
	fields  []FieldDescriptor
	framing Framing
	keys    []string
}

// NewChunkDecoder builds a chunked decoder for the given framing.
func NewChunkDecoder(fields []FieldDescriptor, framing Framing) *ChunkDecoder {
	d := &ChunkDecoder{fields: fields, framing: framing}
	d.keys = d.buildKeys()
	return d
}

// Keys returns the chunk names for one record window.
func (d *ChunkDecoder) Keys() []string { return d.keys }

// Decode walks the payload exactly as Decoder.Decode does, one full record
// window per step, leaving any ragged tail undecoded.
func (d *ChunkDecoder) Decode(payload []byte) []Record {
	if d.framing.Record <= 0 {
		return nil
	}

	var records []Record
	index := 0
	for offset := d.framing.Header; offset+d.framing.Record <= len(payload); offset += d.framing.Record {
		window := payload[offset : offset+d.framing.Record]
		records = append(records, Record{
			Index:  index,
			Keys:   d.keys,
			Values: decodeChunks(window),
		})
		index++
	}
	return records
}

func (d *ChunkDecoder) buildKeys() []string {
	if d.framing.Record < len(Marker) {
		return nil
	}
	var keys []string
	chunks := (d.framing.Record - len(Marker)) / 4
	for i := 0; i < chunks; i++ {
		if i < len(d.fields) {
			keys = append(keys, d.fields[i].Name)
		} else {
			keys = append(keys, "f"+strconv.Itoa(i))
		}
	}
	rest := (d.framing.Record - len(Marker)) % 4
	for i := 0; i < rest; i++ {
		keys = append(keys, "byte_"+strconv.Itoa(i))
	}
	return keys
}

func decodeChunks(window []byte) []Value {
	var values []Value
	offset := len(Marker)
	for offset+4 <= len(window) {
		bits := binary.LittleEndian.Uint32(window[offset : offset+4])
		f := float64(math.Float32frombits(bits))
		if !math.IsNaN(f) && math.Abs(f) <= chunkFloatLimit {
			// Round to microprecision so CSV output is stable across runs.
			values = append(values, floatValue(math.Round(f*1e6)/1e6))
		} else {
			values = append(values, uintValue(uint64(bits)))
		}
		offset += 4
	}
	for ; offset < len(window); offset++ {
		values = append(values, uintValue(uint64(window[offset])))
	}
	return values
}
