package quant

import (
	"errors"
	"math"
	"testing"
)

func TestFitRange(t *testing.T) {
	t.Parallel()

	q, d, err := FitRange(-2, 6)
	if err != nil {
		t.Fatalf("FitRange() error = %v", err)
	}
	if got := q.QuantizeUint8(-2); got != 0 {
		t.Fatalf("QuantizeUint8(-2) = %d, want 0", got)
	}
	if got := q.QuantizeUint8(6); got != 255 {
		t.Fatalf("QuantizeUint8(6) = %d, want 255", got)
	}
	if got := d.Dequantize(255); math.Abs(float64(got-6)) > 1e-4 {
		t.Fatalf("Dequantize(255) = %v, want 6", got)
	}

	if _, _, err := FitRange(1, 1); !errors.Is(err, ErrEmptyRange) {
		t.Fatalf("FitRange(1, 1) error = %v, want ErrEmptyRange", err)
	}
}

func TestFitValues(t *testing.T) {
	t.Parallel()

	q, d, err := FitValues([]float32{0.5, -1, 3, 2})
	if err != nil {
		t.Fatalf("FitValues() error = %v", err)
	}
	if got := q.QuantizeUint8(-1); got != 0 {
		t.Fatalf("QuantizeUint8(min) = %d, want 0", got)
	}
	if got := q.QuantizeUint8(3); got != 255 {
		t.Fatalf("QuantizeUint8(max) = %d, want 255", got)
	}
	if d.Bias() != -1 {
		t.Fatalf("Dequantizer bias = %v, want -1", d.Bias())
	}

	if _, _, err := FitValues(nil); !errors.Is(err, ErrNoValues) {
		t.Fatalf("FitValues(nil) error = %v, want ErrNoValues", err)
	}
}

func TestFitValuesConstant(t *testing.T) {
	t.Parallel()

	for _, v := range []float32{0, -3.5, 42} {
		q, d, err := FitValues([]float32{v, v, v})
		if err != nil {
			t.Fatalf("FitValues(%v...) error = %v", v, err)
		}
		if got := q.QuantizeUint8(v); got != 0 {
			t.Fatalf("QuantizeUint8(%v) = %d, want 0", v, got)
		}
		if got := d.Dequantize(0); math.Abs(float64(got-v)) > 1e-5 {
			t.Fatalf("Dequantize(0) = %v, want %v", got, v)
		}
	}
}

func TestMeasureRoundTrip(t *testing.T) {
	t.Parallel()

	st, err := MeasureRoundTrip(QuantizerZeroToOne(), DequantizerZeroToOne(), []float32{0, 0.5, 1, 2})
	if err != nil {
		t.Fatalf("MeasureRoundTrip() error = %v", err)
	}
	if st.Count != 4 || st.Clamped != 1 {
		t.Fatalf("Count/Clamped = %d/%d, want 4/1", st.Count, st.Clamped)
	}
	if math.Abs(st.Max-1) > 1e-6 {
		t.Fatalf("Max = %v, want 1", st.Max)
	}
	if st.Mean <= 0 || st.StdDev <= 0 {
		t.Fatalf("Mean/StdDev = %v/%v, want positive", st.Mean, st.StdDev)
	}

	st, err = MeasureRoundTrip(QuantizerZeroToOne(), DequantizerZeroToOne(), []float32{1})
	if err != nil {
		t.Fatalf("MeasureRoundTrip(single) error = %v", err)
	}
	if st.StdDev != 0 {
		t.Fatalf("single StdDev = %v, want 0", st.StdDev)
	}
}
