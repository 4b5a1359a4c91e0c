// Package tensorbuf packs per-example values into the little-endian byte
// buffers a model consumes and decodes the buffers it produces.
package tensorbuf

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/ETS-Android5/tensorio-android/pkg/batch"
	"github.com/ETS-Android5/tensorio-android/pkg/layer"
)

var (
	ErrTypeMismatch  = errors.New("tensorbuf: value type does not match layer")
	ErrShapeMismatch = errors.New("tensorbuf: element count does not match layer shape")
	ErrNoQuantizer   = errors.New("tensorbuf: uint8 layer has no quantize parameters")
	ErrShortBuffer   = errors.New("tensorbuf: buffer length is not a multiple of the element size")
	ErrUnknownKey    = errors.New("tensorbuf: layer is not part of the batch")
)

// Stats reports what happened while packing.
type Stats struct {
	Elements int
	// Clamped counts quantized values that fell outside [0,255].
	Clamped int
}

// Pack encodes v for iface. Float values bound for a uint8 layer go through
// the layer's quantizer and are saturated to the byte range.
func Pack(iface layer.Interface, v batch.Value) ([]byte, Stats, error) {
	if v == nil {
		return nil, Stats{}, fmt.Errorf("%w: %s: nil value", ErrTypeMismatch, iface.Name)
	}
	if n := iface.Elements(); n > 0 && v.Len() != n {
		return nil, Stats{}, fmt.Errorf("%w: %s: got %d elements, want %d", ErrShapeMismatch, iface.Name, v.Len(), n)
	}
	dst := make([]byte, v.Len()*iface.DType.ElemSize())
	st, err := packInto(dst, iface, v)
	if err != nil {
		return nil, Stats{}, err
	}
	return dst, st, nil
}

func packInto(dst []byte, iface layer.Interface, v batch.Value) (Stats, error) {
	st := Stats{Elements: v.Len()}
	switch iface.DType {
	case layer.UInt8:
		switch v := v.(type) {
		case batch.Float32s:
			q, ok := iface.Quantizer()
			if !ok {
				return Stats{}, fmt.Errorf("%w: %s", ErrNoQuantizer, iface.Name)
			}
			st.Clamped = q.QuantizeSlice(dst, v)
			return st, nil
		case batch.Bytes:
			copy(dst, v)
			return st, nil
		case batch.Pixels:
			copy(dst, v.Data)
			return st, nil
		}
	case layer.Float32:
		if v, ok := v.(batch.Float32s); ok {
			for i, f := range v {
				binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(f))
			}
			return st, nil
		}
	case layer.Int32:
		if v, ok := v.(batch.Int32s); ok {
			for i, n := range v {
				binary.LittleEndian.PutUint32(dst[i*4:], uint32(n))
			}
			return st, nil
		}
	case layer.Int64:
		if v, ok := v.(batch.Int64s); ok {
			for i, n := range v {
				binary.LittleEndian.PutUint64(dst[i*8:], uint64(n))
			}
			return st, nil
		}
	default:
		return Stats{}, fmt.Errorf("%w: %s: invalid dtype %v", ErrTypeMismatch, iface.Name, iface.DType)
	}
	return Stats{}, fmt.Errorf("%w: %s: cannot pack %s into %v", ErrTypeMismatch, iface.Name, batch.Kind(v), iface.DType)
}

// PackBatch packs, for every interface, the batch column of the same name by
// concatenating each item's encoding in insertion order.
func PackBatch(ifaces []layer.Interface, b *batch.Batch) (map[string][]byte, Stats, error) {
	out := make(map[string][]byte, len(ifaces))
	var total Stats
	for _, iface := range ifaces {
		col := b.Column(iface.Name)
		if col == nil {
			return nil, Stats{}, fmt.Errorf("%w: %s", ErrUnknownKey, iface.Name)
		}
		var buf []byte
		for i, v := range col {
			raw, st, err := Pack(iface, v)
			if err != nil {
				return nil, Stats{}, fmt.Errorf("item %d: %w", i, err)
			}
			buf = append(buf, raw...)
			total.Elements += st.Elements
			total.Clamped += st.Clamped
		}
		out[iface.Name] = buf
	}
	return out, total, nil
}
