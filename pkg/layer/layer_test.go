package layer

import (
	"errors"
	"testing"

	"github.com/goccy/go-json"
)

func TestParseDataType(t *testing.T) {
	t.Parallel()

	for _, dt := range []DataType{UInt8, Float32, Int32, Int64} {
		got, err := ParseDataType(dt.String())
		if err != nil {
			t.Fatalf("ParseDataType(%q) error = %v", dt.String(), err)
		}
		if got != dt {
			t.Fatalf("ParseDataType(%q) = %v, want %v", dt.String(), got, dt)
		}
	}
	if _, err := ParseDataType("float16"); err == nil {
		t.Fatal("ParseDataType(float16) succeeded, want error")
	}
	if DataTypeUnknown.Valid() {
		t.Fatal("zero DataType reported valid")
	}
}

func TestDataTypeElemSize(t *testing.T) {
	t.Parallel()

	want := map[DataType]int{UInt8: 1, Float32: 4, Int32: 4, Int64: 8, DataTypeUnknown: 0}
	for dt, n := range want {
		if got := dt.ElemSize(); got != n {
			t.Fatalf("%v.ElemSize() = %d, want %d", dt, got, n)
		}
	}
}

func TestQuantizationJSON(t *testing.T) {
	t.Parallel()

	var std Quantization
	if err := json.Unmarshal([]byte(`{"standard":"[-1,1]"}`), &std); err != nil {
		t.Fatalf("unmarshal standard: %v", err)
	}
	if got := std.Quantizer().Quantize(1); got != 255 {
		t.Fatalf("standard [-1,1] Quantize(1) = %d, want 255", got)
	}
	if got := std.Dequantizer().Dequantize(0); got != -1 {
		t.Fatalf("standard [-1,1] Dequantize(0) = %v, want -1", got)
	}

	var explicit Quantization
	if err := json.Unmarshal([]byte(`{"scale":255,"bias":0}`), &explicit); err != nil {
		t.Fatalf("unmarshal scale/bias: %v", err)
	}
	if got := explicit.Quantizer().Quantize(0.5); got < 127 || got > 128 {
		t.Fatalf("Quantize(0.5) = %d, want 127 or 128", got)
	}

	bad := []string{
		`{"standard":"[0,2]"}`,
		`{"standard":"[0,1]","scale":1,"bias":0}`,
		`{"scale":1}`,
		`{}`,
	}
	for _, in := range bad {
		var q Quantization
		if err := json.Unmarshal([]byte(in), &q); !errors.Is(err, ErrInvalidQuantization) {
			t.Fatalf("unmarshal %s error = %v, want ErrInvalidQuantization", in, err)
		}
	}
}

func TestParseInterfaces(t *testing.T) {
	t.Parallel()

	ifaces, err := ParseInterfaces([]byte(`[
		{"name":"image","shape":[-1,4,4,3],"dtype":"uint8","quantize":{"standard":"[0,1]"}},
		{"name":"labels","shape":[1],"dtype":"float32"}
	]`))
	if err != nil {
		t.Fatalf("ParseInterfaces() error = %v", err)
	}
	if len(ifaces) != 2 {
		t.Fatalf("len = %d, want 2", len(ifaces))
	}
	if got := ifaces[0].Elements(); got != 48 {
		t.Fatalf("image Elements() = %d, want 48", got)
	}
	if _, ok := ifaces[0].Quantizer(); !ok {
		t.Fatal("image has no quantizer")
	}
	if _, ok := ifaces[0].Dequantizer(); ok {
		t.Fatal("image reports a dequantizer")
	}
	if _, ok := ifaces[1].Quantizer(); ok {
		t.Fatal("float32 labels report a quantizer")
	}
}

func TestParseInterfacesRejects(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"duplicate":       `[{"name":"a","dtype":"int32"},{"name":"a","dtype":"int64"}]`,
		"missing name":    `[{"dtype":"int32"}]`,
		"missing dtype":   `[{"name":"a"}]`,
		"quantized float": `[{"name":"a","dtype":"float32","quantize":{"standard":"[0,1]"}}]`,
		"zero dim":        `[{"name":"a","dtype":"int32","shape":[0]}]`,
	}
	for name, in := range tests {
		if _, err := ParseInterfaces([]byte(in)); err == nil {
			t.Fatalf("%s: ParseInterfaces succeeded, want error", name)
		}
	}
}

func TestParseStandard(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"[0,1]":               StandardZeroToOne,
		"zero-to-one":         StandardZeroToOne,
		"[-1,1]":              StandardNegativeOneToOne,
		"negative_one_to_one": StandardNegativeOneToOne,
	}
	for in, want := range tests {
		got, err := ParseStandard(in)
		if err != nil || got != want {
			t.Fatalf("ParseStandard(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseStandard("[0,255]"); !errors.Is(err, ErrInvalidQuantization) {
		t.Fatalf("ParseStandard([0,255]) error = %v", err)
	}
}
