// Package quant converts tensor values between floating point and 8-bit
// fixed point representations using a linear scale and bias.
package quant

import (
	"errors"
	"math"
)

// ErrZeroScale is returned when a transform with a zero scale has to be inverted.
var ErrZeroScale = errors.New("quant: zero scale has no inverse")

// Quantizer maps a float value onto its integer representation:
//
//	quantized = round(value*scale + bias)
//
// A Quantizer is an immutable value and safe for concurrent use.
type Quantizer struct {
	scale float32
	bias  float32
}

// NewQuantizer returns a Quantizer applying the given scale and bias.
func NewQuantizer(scale, bias float32) Quantizer {
	return Quantizer{scale: scale, bias: bias}
}

// QuantizerZeroToOne maps [0,1] onto [0,255].
func QuantizerZeroToOne() Quantizer {
	return NewQuantizer(255, 0)
}

// QuantizerNegativeOneToOne maps [-1,1] onto [0,255].
func QuantizerNegativeOneToOne() Quantizer {
	return NewQuantizer(127.5, 127.5)
}

func (q Quantizer) Scale() float32 { return q.scale }
func (q Quantizer) Bias() float32  { return q.bias }

// Quantize applies the transform. The result is not clamped; values outside
// the intended domain produce integers outside [0,255].
func (q Quantizer) Quantize(v float32) int {
	return int(math.Round(float64(v*q.scale + q.bias)))
}

// QuantizeUint8 is Quantize saturated to the byte range.
func (q Quantizer) QuantizeUint8(v float32) uint8 {
	return clampUint8(q.Quantize(v))
}

// QuantizeSlice quantizes src into dst with byte saturation and reports how
// many values had to be clamped. dst must be at least len(src).
func (q Quantizer) QuantizeSlice(dst []uint8, src []float32) (clamped int) {
	_ = dst[:len(src)]
	for i, v := range src {
		n := q.Quantize(v)
		if n < 0 || n > math.MaxUint8 {
			clamped++
		}
		dst[i] = clampUint8(n)
	}
	return clamped
}

// Inverse returns the Dequantizer that undoes q.
func (q Quantizer) Inverse() (Dequantizer, error) {
	if q.scale == 0 {
		return Dequantizer{}, ErrZeroScale
	}
	return NewDequantizer(1/q.scale, -q.bias/q.scale), nil
}

func clampUint8(n int) uint8 {
	switch {
	case n < 0:
		return 0
	case n > math.MaxUint8:
		return math.MaxUint8
	default:
		return uint8(n)
	}
}
