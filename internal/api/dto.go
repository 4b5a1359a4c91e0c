package api

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/ETS-Android5/tensorio-android/pkg/batch"
	"github.com/ETS-Android5/tensorio-android/pkg/layer"
)

type ErrorBody struct {
	Message string   `json:"message"`
	Type    string   `json:"type"`
	Missing []string `json:"missing,omitempty"`
	Extra   []string `json:"extra,omitempty"`
}

type QuantizeRequest struct {
	Quantization *layer.Quantization `json:"quantization"`
	Values       []float32           `json:"values"`
}

type QuantizeResponse struct {
	Values []int `json:"values"`
	// Clamped counts values outside [0,255]. They are returned unclamped.
	Clamped int `json:"clamped"`
}

type DequantizeRequest struct {
	Quantization *layer.Quantization `json:"quantization"`
	Values       []int               `json:"values"`
}

type DequantizeResponse struct {
	Values []float32 `json:"values"`
}

type CreateBatchRequest struct {
	Keys []string `json:"keys"`
}

type BatchResponse struct {
	ID        string   `json:"id"`
	Object    string   `json:"object"`
	Keys      []string `json:"keys"`
	Size      int      `json:"size"`
	CreatedAt int64    `json:"created_at"`
}

type DeleteBatchResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

type AddItemRequest struct {
	Values map[string]ValueDTO `json:"values"`
}

type PackBatchRequest struct {
	Interfaces []layer.Interface `json:"interfaces"`
}

type PackBatchResponse struct {
	ID       string            `json:"id"`
	Buffers  map[string][]byte `json:"buffers"`
	Elements int               `json:"elements"`
	Clamped  int               `json:"clamped"`
}

// ValueDTO is the wire form of a batch.Value:
//
//	{"type": "float32", "data": [0.5, 1]}
//	{"type": "bytes", "data": "AAEC"}
//	{"type": "pixels", "width": 1, "height": 1, "channels": 3, "data": "AAEC"}
type ValueDTO struct {
	Type     string          `json:"type"`
	Data     json.RawMessage `json:"data"`
	Width    int             `json:"width,omitempty"`
	Height   int             `json:"height,omitempty"`
	Channels int             `json:"channels,omitempty"`
}

func (v ValueDTO) toValue() (batch.Value, error) {
	if len(v.Data) == 0 {
		return nil, newInvalidRequest("value data is required")
	}
	switch v.Type {
	case "float32":
		return decodeAs[batch.Float32s](v)
	case "int32":
		return decodeAs[batch.Int32s](v)
	case "int64":
		return decodeAs[batch.Int64s](v)
	case "bytes":
		return decodeAs[batch.Bytes](v)
	case "pixels":
		var out []byte
		if err := v.decode(&out); err != nil {
			return nil, err
		}
		if v.Width <= 0 || v.Height <= 0 || v.Channels <= 0 || v.Width*v.Height*v.Channels != len(out) {
			return nil, newInvalidRequest(fmt.Sprintf("pixels: %dx%dx%d does not match %d bytes", v.Width, v.Height, v.Channels, len(out)))
		}
		return batch.Pixels{Width: v.Width, Height: v.Height, Channels: v.Channels, Data: out}, nil
	default:
		return nil, newInvalidRequest(fmt.Sprintf("unknown value type %q", v.Type))
	}
}

func decodeAs[T batch.Value](v ValueDTO) (batch.Value, error) {
	var out T
	if err := v.decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func (v ValueDTO) decode(dst any) error {
	if err := json.Unmarshal(v.Data, dst); err != nil {
		return newInvalidRequest(fmt.Sprintf("%s data: %v", v.Type, err))
	}
	return nil
}
