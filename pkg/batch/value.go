// Package batch groups per-example tensor values into ordered batches that
// share a fixed key schema.
package batch

// Value is one per-example tensor. The set of implementations is closed:
// Float32s, Int32s, Int64s, Bytes and Pixels.
type Value interface {
	// Len is the number of scalar elements held.
	Len() int
	isValue()
}

// Float32s holds floating point data: features, labels, normalised pixels.
type Float32s []float32

// Int32s holds 32-bit integer data such as class indices.
type Int32s []int32

// Int64s holds 64-bit integer data such as token ids.
type Int64s []int64

// Bytes holds data that is already in a model's uint8 representation.
type Bytes []byte

// Pixels is a decoded image in interleaved channel order.
type Pixels struct {
	Width    int
	Height   int
	Channels int
	Data     []byte
}

func (v Float32s) Len() int { return len(v) }
func (v Int32s) Len() int   { return len(v) }
func (v Int64s) Len() int   { return len(v) }
func (v Bytes) Len() int    { return len(v) }
func (p Pixels) Len() int   { return len(p.Data) }

func (Float32s) isValue() {}
func (Int32s) isValue()   {}
func (Int64s) isValue()   {}
func (Bytes) isValue()    {}
func (Pixels) isValue()   {}

// Kind names the concrete type of v.
func Kind(v Value) string {
	switch v.(type) {
	case Float32s:
		return "float32"
	case Int32s:
		return "int32"
	case Int64s:
		return "int64"
	case Bytes:
		return "bytes"
	case Pixels:
		return "pixels"
	default:
		return "nil"
	}
}
