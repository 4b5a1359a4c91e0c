package tensorbuf

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ETS-Android5/tensorio-android/pkg/batch"
	"github.com/ETS-Android5/tensorio-android/pkg/layer"
)

// Unpack decodes a model output buffer. A uint8 layer with dequantize
// parameters yields Float32s; without them the raw Bytes are returned.
func Unpack(iface layer.Interface, raw []byte) (batch.Value, error) {
	size := iface.DType.ElemSize()
	if size == 0 {
		return nil, fmt.Errorf("%w: %s: invalid dtype %v", ErrTypeMismatch, iface.Name, iface.DType)
	}
	if len(raw)%size != 0 {
		return nil, fmt.Errorf("%w: %s: %d bytes of %v", ErrShortBuffer, iface.Name, len(raw), iface.DType)
	}
	n := len(raw) / size

	switch iface.DType {
	case layer.UInt8:
		d, ok := iface.Dequantizer()
		if !ok {
			return batch.Bytes(append([]byte(nil), raw...)), nil
		}
		out := make(batch.Float32s, n)
		d.DequantizeSlice(out, raw)
		return out, nil
	case layer.Float32:
		out := make(batch.Float32s, n)
		for i := range out {
			out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
		}
		return out, nil
	case layer.Int32:
		out := make(batch.Int32s, n)
		for i := range out {
			out[i] = int32(binary.LittleEndian.Uint32(raw[i*4:]))
		}
		return out, nil
	default:
		out := make(batch.Int64s, n)
		for i := range out {
			out[i] = int64(binary.LittleEndian.Uint64(raw[i*8:]))
		}
		return out, nil
	}
}
