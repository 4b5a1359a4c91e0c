// Package layer describes the tensors a model reads and writes: their element
// type, their shape, and the transform applied when they are quantized.
package layer

import "fmt"

// DataType identifies how the elements of a raw tensor buffer are encoded.
// The set is closed; the zero value is not a valid type.
type DataType uint8

const (
	DataTypeUnknown DataType = iota
	UInt8
	Float32
	Int32
	Int64
)

var dataTypeNames = [...]string{
	DataTypeUnknown: "unknown",
	UInt8:           "uint8",
	Float32:         "float32",
	Int32:           "int32",
	Int64:           "int64",
}

// ParseDataType accepts the lower-case names used in layer descriptions.
func ParseDataType(s string) (DataType, error) {
	for dt := UInt8; dt <= Int64; dt++ {
		if dataTypeNames[dt] == s {
			return dt, nil
		}
	}
	return DataTypeUnknown, fmt.Errorf("layer: unknown data type %q", s)
}

func (dt DataType) Valid() bool {
	return dt >= UInt8 && dt <= Int64
}

func (dt DataType) String() string {
	if int(dt) < len(dataTypeNames) {
		return dataTypeNames[dt]
	}
	return fmt.Sprintf("DataType(%d)", uint8(dt))
}

// ElemSize is the encoded width of one element in bytes, or 0 for an invalid type.
func (dt DataType) ElemSize() int {
	switch dt {
	case UInt8:
		return 1
	case Float32, Int32:
		return 4
	case Int64:
		return 8
	default:
		return 0
	}
}

// Quantized reports whether values of this type pass through a quantizer.
func (dt DataType) Quantized() bool {
	return dt == UInt8
}

func (dt DataType) MarshalText() ([]byte, error) {
	if !dt.Valid() {
		return nil, fmt.Errorf("layer: cannot encode %v", dt)
	}
	return []byte(dataTypeNames[dt]), nil
}

func (dt *DataType) UnmarshalText(b []byte) error {
	v, err := ParseDataType(string(b))
	if err != nil {
		return err
	}
	*dt = v
	return nil
}
