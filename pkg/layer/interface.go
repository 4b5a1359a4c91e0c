package layer

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/ETS-Android5/tensorio-android/pkg/quant"
)

var ErrInvalidInterface = errors.New("layer: invalid interface")

// Interface describes one named input or output tensor of a model.
//
// It is a tagged variant: DType selects the element encoding, and only a
// UInt8 interface carries the quantization parameters used to move between
// its bytes and the caller's float values.
type Interface struct {
	Name  string   `json:"name"`
	Shape []int    `json:"shape,omitempty"`
	DType DataType `json:"dtype"`

	// Quantize applies to UInt8 inputs, Dequantize to UInt8 outputs.
	Quantize   *Quantization `json:"quantize,omitempty"`
	Dequantize *Quantization `json:"dequantize,omitempty"`
}

// Validate checks the invariants a decoded interface must satisfy.
func (i Interface) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidInterface)
	}
	if !i.DType.Valid() {
		return fmt.Errorf("%w: %s: missing or unknown dtype", ErrInvalidInterface, i.Name)
	}
	if !i.DType.Quantized() && (i.Quantize != nil || i.Dequantize != nil) {
		return fmt.Errorf("%w: %s: %v layers cannot be quantized", ErrInvalidInterface, i.Name, i.DType)
	}
	for _, d := range i.Shape {
		if d == 0 || d < -1 {
			return fmt.Errorf("%w: %s: bad dimension %d in shape %v", ErrInvalidInterface, i.Name, d, i.Shape)
		}
	}
	return nil
}

func (i *Interface) UnmarshalJSON(b []byte) error {
	type plain Interface
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	if err := Interface(p).Validate(); err != nil {
		return err
	}
	*i = Interface(p)
	return nil
}

// Quantizer returns the input transform, if this interface has one.
func (i Interface) Quantizer() (quant.Quantizer, bool) {
	if !i.DType.Quantized() || i.Quantize == nil {
		return quant.Quantizer{}, false
	}
	return i.Quantize.Quantizer(), true
}

// Dequantizer returns the output transform, if this interface has one.
func (i Interface) Dequantizer() (quant.Dequantizer, bool) {
	if !i.DType.Quantized() || i.Dequantize == nil {
		return quant.Dequantizer{}, false
	}
	return i.Dequantize.Dequantizer(), true
}

// Elements is the per-example element count: the product of the shape with
// batch (-1) dimensions skipped. It is 0 when no shape is declared.
func (i Interface) Elements() int {
	if len(i.Shape) == 0 {
		return 0
	}
	n := 1
	for _, d := range i.Shape {
		if d > 0 {
			n *= d
		}
	}
	return n
}

// ParseInterfaces decodes a JSON array of interfaces and rejects duplicate names.
func ParseInterfaces(data []byte) ([]Interface, error) {
	var out []Interface
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	if err := CheckUnique(out); err != nil {
		return nil, err
	}
	return out, nil
}

// CheckUnique rejects interface lists that name the same tensor twice.
func CheckUnique(ifaces []Interface) error {
	seen := make(map[string]struct{}, len(ifaces))
	for _, i := range ifaces {
		if _, ok := seen[i.Name]; ok {
			return fmt.Errorf("%w: duplicate name %q", ErrInvalidInterface, i.Name)
		}
		seen[i.Name] = struct{}{}
	}
	return nil
}
