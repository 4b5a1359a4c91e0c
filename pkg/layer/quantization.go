package layer

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/ETS-Android5/tensorio-android/pkg/quant"
)

// Standard ranges recognised in layer descriptions.
const (
	StandardZeroToOne        = "[0,1]"
	StandardNegativeOneToOne = "[-1,1]"
)

var ErrInvalidQuantization = errors.New("layer: invalid quantization")

// ParseStandard accepts a standard range either in its bracket form or by
// name ("zero-to-one", "negative-one-to-one").
func ParseStandard(s string) (string, error) {
	switch s {
	case StandardZeroToOne, "zero-to-one", "zero_to_one":
		return StandardZeroToOne, nil
	case StandardNegativeOneToOne, "negative-one-to-one", "negative_one_to_one":
		return StandardNegativeOneToOne, nil
	default:
		return "", fmt.Errorf("%w: unknown standard %q", ErrInvalidQuantization, s)
	}
}

// Quantization holds the parameters of a linear transform between a model's
// uint8 representation and the caller's floating point values. Either
// Standard names a preset or Scale and Bias are given explicitly.
type Quantization struct {
	Standard string
	Scale    float32
	Bias     float32
}

type quantizationJSON struct {
	Standard *string  `json:"standard,omitempty"`
	Scale    *float32 `json:"scale,omitempty"`
	Bias     *float32 `json:"bias,omitempty"`
}

func (p *Quantization) UnmarshalJSON(b []byte) error {
	var raw quantizationJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch {
	case raw.Standard != nil && (raw.Scale != nil || raw.Bias != nil):
		return fmt.Errorf("%w: standard and scale/bias are mutually exclusive", ErrInvalidQuantization)
	case raw.Standard != nil:
		std, err := ParseStandard(*raw.Standard)
		if err != nil {
			return err
		}
		*p = Quantization{Standard: std}
	case raw.Scale != nil && raw.Bias != nil:
		*p = Quantization{Scale: *raw.Scale, Bias: *raw.Bias}
	default:
		return fmt.Errorf("%w: need standard or both scale and bias", ErrInvalidQuantization)
	}
	return nil
}

func (p Quantization) MarshalJSON() ([]byte, error) {
	if p.Standard != "" {
		return json.Marshal(quantizationJSON{Standard: &p.Standard})
	}
	return json.Marshal(quantizationJSON{Scale: &p.Scale, Bias: &p.Bias})
}

// Quantizer returns the float to uint8 transform. Explicit parameters are
// applied as round(value*scale + bias).
func (p Quantization) Quantizer() quant.Quantizer {
	switch p.Standard {
	case StandardZeroToOne:
		return quant.QuantizerZeroToOne()
	case StandardNegativeOneToOne:
		return quant.QuantizerNegativeOneToOne()
	default:
		return quant.NewQuantizer(p.Scale, p.Bias)
	}
}

// Dequantizer returns the uint8 to float transform. Explicit parameters are
// applied as value*scale + bias.
func (p Quantization) Dequantizer() quant.Dequantizer {
	switch p.Standard {
	case StandardZeroToOne:
		return quant.DequantizerZeroToOne()
	case StandardNegativeOneToOne:
		return quant.DequantizerNegativeOneToOne()
	default:
		return quant.NewDequantizer(p.Scale, p.Bias)
	}
}
