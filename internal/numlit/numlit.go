// Package numlit checks decimal number literals against the width of the
// primitive type they initialize.
package numlit

import (
	"errors"
	"fmt"
	"strconv"
)

var ErrRange = errors.New("out of range")

// Width describes how a primitive type stores numbers.
type Width struct {
	Bits  int
	Float bool
}

var widths = map[string]Width{
	"byte":   {Bits: 8},
	"short":  {Bits: 16},
	"int":    {Bits: 32},
	"long":   {Bits: 64},
	"float":  {Bits: 32, Float: true},
	"double": {Bits: 64, Float: true},
}

// WidthOf returns the width of a numeric primitive type name.
func WidthOf(primitive string) (Width, bool) {
	w, ok := widths[primitive]
	return w, ok
}

// ParseInt parses a decimal integer literal that must fit in bits.
func ParseInt(lit string, bits int) (int64, error) {
	v, err := strconv.ParseInt(lit, 10, bits)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange {
			return 0, fmt.Errorf("integer literal %s: %w", lit, ErrRange)
		}
		return 0, fmt.Errorf("invalid integer literal %s", lit)
	}
	return v, nil
}

// ParseFloat parses a decimal literal that must be finite at the given
// precision. Values too small to represent round to zero.
func ParseFloat(lit string, bits int) (float64, error) {
	v, err := strconv.ParseFloat(lit, bits)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange {
			return 0, fmt.Errorf("float literal %s: %w", lit, ErrRange)
		}
		return 0, fmt.Errorf("invalid float literal %s", lit)
	}
	return v, nil
}

// Fits reports whether lit, written as an integer or a decimal fraction,
// is representable in w.
func Fits(lit string, w Width) bool {
	if w.Float {
		_, err := ParseFloat(lit, w.Bits)
		return err == nil
	}
	_, err := ParseInt(lit, w.Bits)
	return err == nil
}
