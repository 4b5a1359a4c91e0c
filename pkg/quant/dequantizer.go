package quant

// Dequantizer maps an integer back to floating point:
//
//	value = quantized*scale + bias
//
// A Dequantizer is an immutable value and safe for concurrent use.
type Dequantizer struct {
	scale float32
	bias  float32
}

// NewDequantizer returns a Dequantizer applying the given scale and bias.
func NewDequantizer(scale, bias float32) Dequantizer {
	return Dequantizer{scale: scale, bias: bias}
}

// DequantizerZeroToOne maps [0,255] onto [0,1].
func DequantizerZeroToOne() Dequantizer {
	return NewDequantizer(1.0/255.0, 0)
}

// DequantizerNegativeOneToOne maps [0,255] onto [-1,1].
func DequantizerNegativeOneToOne() Dequantizer {
	return NewDequantizer(2.0/255.0, -1)
}

func (d Dequantizer) Scale() float32 { return d.scale }
func (d Dequantizer) Bias() float32  { return d.bias }

func (d Dequantizer) Dequantize(v int) float32 {
	return float32(v)*d.scale + d.bias
}

// DequantizeSlice writes the dequantized form of src into dst.
// dst must be at least len(src).
func (d Dequantizer) DequantizeSlice(dst []float32, src []uint8) {
	_ = dst[:len(src)]
	for i, v := range src {
		dst[i] = float32(v)*d.scale + d.bias
	}
}

// Inverse returns the Quantizer that undoes d.
func (d Dequantizer) Inverse() (Quantizer, error) {
	if d.scale == 0 {
		return Quantizer{}, ErrZeroScale
	}
	return NewQuantizer(1/d.scale, -d.bias/d.scale), nil
}
