package rawfile

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenMapsContents(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "input.u8")
	want := []byte{0, 1, 2, 253, 254, 255}
	if err := os.WriteFile(path, want, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if !bytes.Equal(f.Bytes(), want) {
		t.Fatalf("Bytes() = %v, want %v", f.Bytes(), want)
	}
	if f.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", f.Len(), len(want))
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	if f.Bytes() != nil {
		t.Fatal("Bytes() not cleared after Close")
	}
}

func TestOpenEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.f32")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() { _ = f.Close() }()
	if f.Len() != 0 || f.Mapped() {
		t.Fatalf("empty file: Len=%d Mapped=%v", f.Len(), f.Mapped())
	}
}

func TestOpenMissing(t *testing.T) {
	t.Parallel()

	if _, err := Open(filepath.Join(t.TempDir(), "nope")); !os.IsNotExist(err) {
		t.Fatalf("Open(missing) error = %v, want not-exist", err)
	}
}
