package udf

import (
	"strconv"
	"strings"
)

// Kind discriminates the variants a decoded field value can take.
type Kind int

const (
	// KindMissing marks a field whose bytes were truncated out of the record
	// window. The cursor still advances past its nominal size.
	KindMissing Kind = iota
	KindUint
	KindInt
	KindFloat
	// KindRawHex holds the field's bytes as a lowercase hex string, used for
	// unrecognized type tokens and for decode failures.
	KindRawHex
	// KindTuple holds the component values of a compound type spec.
	KindTuple
)

// Value is the tagged variant produced for each decoded field. Exactly one of
// the payload fields is meaningful, selected by Kind.
type Value struct {
	Kind  Kind
	Uint  uint64
	Int   int64
	Float float64
	Hex   string
	Tuple []Value
}

func uintValue(v uint64) Value   { return Value{Kind: KindUint, Uint: v} }
func intValue(v int64) Value     { return Value{Kind: KindInt, Int: v} }
func floatValue(v float64) Value { return Value{Kind: KindFloat, Float: v} }
func hexValue(s string) Value    { return Value{Kind: KindRawHex, Hex: s} }

// String renders the value for CSV and log output.
func (v Value) String() string {
	switch v.Kind {
	case KindUint:
		return strconv.FormatUint(v.Uint, 10)
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindRawHex:
		return v.Hex
	case KindTuple:
		parts := make([]string, len(v.Tuple))
		for i, t := range v.Tuple {
			parts[i] = t.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	default:
		return ""
	}
}
