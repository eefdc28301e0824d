package udf

import (
	"encoding/binary"
	"encoding/hex"
	"math"
)

// Record holds one physical record's decoded values. Keys aliases the
// decoder's shared key slice; Values is parallel to it. Every record decoded
// from one file carries the same key set.
type Record struct {
	Index  int
	Keys   []string
	Values []Value
}

// Get returns the value for a record key.
func (r Record) Get(key string) (Value, bool) {
	for i, k := range r.Keys {
		if k == key {
			return r.Values[i], true
		}
	}
	return Value{}, false
}

// Decoder slices a payload into records per an inferred framing and decodes
// each record by walking the field descriptors in declaration order. It does
// not re-synchronize on marker bytes after the first record; drift from an
// incorrect framing hypothesis must be caught by downstream sanity checks.
type Decoder struct {
	fields  []FieldDescriptor
	framing Framing
	keys    []string
}

// NewDecoder builds a descriptor-driven decoder for the given framing.
func NewDecoder(fields []FieldDescriptor, framing Framing) *Decoder {
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.Key()
	}
	return &Decoder{fields: fields, framing: framing, keys: keys}
}

// Keys returns the ordered record keys, "<id>_<name>" per descriptor.
func (d *Decoder) Keys() []string { return d.keys }

// Decode walks the payload in record-size steps starting at the header size
// and decodes every complete record window. A ragged tail shorter than one
// record is ignored. Decode is a pure function of the payload bytes.
func (d *Decoder) Decode(payload []byte) []Record {
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
			Values: d.decodeWindow(window),
		})
		index++
	}
	return records
}

// decodeWindow consumes Size bytes per field at a running cursor. The cursor
// advances by the declared size even when the window is exhausted, so later
// fields keep their declared offsets.
func (d *Decoder) decodeWindow(window []byte) []Value {
	values := make([]Value, len(d.fields))
	cursor := 0
	for i, f := range d.fields {
		if cursor+f.Size > len(window) {
			values[i] = Value{Kind: KindMissing}
			cursor += f.Size
			continue
		}
		values[i] = decodeField(window[cursor:cursor+f.Size], f)
		cursor += f.Size
	}
	return values
}

// decodeField interprets one field's bytes under its type spec. Failures are
// recovered locally by substituting the raw hex representation; a malformed
// field never aborts the record.
func decodeField(data []byte, f FieldDescriptor) Value {
	tokens := typeTokens(f.TypeSpec)

	if len(tokens) == 1 {
		width, ok := typeWidths[tokens[0]]
		if !ok || width != len(data) {
			// Unrecognized token, or a declared size that contradicts the
			// token width: the size is authoritative, keep the raw bytes.
			return hexValue(hex.EncodeToString(data))
		}
		return decodePrimitive(data, tokens[0])
	}

	// Compound spec: components decode at increasing sub-offsets within the
	// field's byte range. An unrecognized component takes the remaining bytes
	// as hex and ends the walk, following the declared size invariant.
	var parts []Value
	sub := 0
	for _, tok := range tokens {
		width, ok := typeWidths[tok]
		if !ok {
			parts = append(parts, hexValue(hex.EncodeToString(data[sub:])))
			break
		}
		if sub+width > len(data) {
			parts = append(parts, Value{Kind: KindMissing})
			continue
		}
		parts = append(parts, decodePrimitive(data[sub:sub+width], tok))
		sub += width
	}

	switch len(parts) {
	case 0:
		return Value{Kind: KindMissing}
	case 1:
		return parts[0]
	default:
		return Value{Kind: KindTuple, Tuple: parts}
	}
}

// decodePrimitive decodes a single little-endian primitive. data is exactly
// the token's width.
func decodePrimitive(data []byte, token string) Value {
	switch token {
	case "u8":
		return uintValue(uint64(data[0]))
	case "s8":
		return intValue(int64(int8(data[0])))
	case "u16":
		return uintValue(uint64(binary.LittleEndian.Uint16(data)))
	case "s16":
		return intValue(int64(int16(binary.LittleEndian.Uint16(data))))
	case "u32":
		return uintValue(uint64(binary.LittleEndian.Uint32(data)))
	case "s32":
		return intValue(int64(int32(binary.LittleEndian.Uint32(data))))
	case "f":
		return floatValue(float64(math.Float32frombits(binary.LittleEndian.Uint32(data))))
	default:
		return hexValue(hex.EncodeToString(data))
	}
}
