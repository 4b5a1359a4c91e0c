package quant

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrEmptyRange = errors.New("quant: range upper bound must exceed lower bound")
	ErrNoValues   = errors.New("quant: no values")
)

// FitRange returns the transform pair mapping [lo,hi] onto [0,255] and back.
func FitRange(lo, hi float32) (Quantizer, Dequantizer, error) {
	if !(hi > lo) {
		return Quantizer{}, Dequantizer{}, ErrEmptyRange
	}
	d := NewDequantizer((hi-lo)/math.MaxUint8, lo)
	q, err := d.Inverse()
	if err != nil {
		return Quantizer{}, Dequantizer{}, err
	}
	return q, d, nil
}

// FitValues is FitRange over the observed minimum and maximum of values.
// Constant input is fitted to [v, v+1] so that v quantizes to 0.
func FitValues(values []float32) (Quantizer, Dequantizer, error) {
	if len(values) == 0 {
		return Quantizer{}, Dequantizer{}, ErrNoValues
	}
	xs := widen(values)
	lo, hi := float32(floats.Min(xs)), float32(floats.Max(xs))
	if hi == lo {
		hi = lo + 1
	}
	return FitRange(lo, hi)
}

// RoundTripStats summarises the absolute error of quantizing and then
// dequantizing a set of values through the byte representation.
type RoundTripStats struct {
	Count   int
	Clamped int
	Max     float64
	Mean    float64
	StdDev  float64
}

// MeasureRoundTrip pushes every value through q.QuantizeUint8 and d.Dequantize.
func MeasureRoundTrip(q Quantizer, d Dequantizer, values []float32) (RoundTripStats, error) {
	if len(values) == 0 {
		return RoundTripStats{}, ErrNoValues
	}
	errs := make([]float64, len(values))
	st := RoundTripStats{Count: len(values)}
	for i, v := range values {
		n := q.Quantize(v)
		if n < 0 || n > math.MaxUint8 {
			st.Clamped++
		}
		back := d.Dequantize(int(clampUint8(n)))
		errs[i] = math.Abs(float64(back) - float64(v))
	}
	st.Max = floats.Max(errs)
	if len(errs) == 1 {
		st.Mean = errs[0]
		return st, nil
	}
	st.Mean, st.StdDev = stat.MeanStdDev(errs, nil)
	return st, nil
}

func widen(values []float32) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}
