package mmap

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/shapestone/shape-delim/internal/scan"
)

func TestMap(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "stream.bin")

	content := []byte{0x01, 0x02, 0x00, 0x03, 0x00, 0x04}
	if err := os.WriteFile(testFile, content, 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	data, cleanup, err := Map(testFile)
	if err != nil {
		t.Fatalf("Map() error = %v", err)
	}
	defer cleanup()

	if !bytes.Equal(data, content) {
		t.Fatalf("Map() data = %v, want %v", data, content)
	}

	tokens := scan.Split(data, 0x00)
	want := [][]byte{{0x01, 0x02}, {0x03}, {0x04}}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i := range want {
		if !bytes.Equal(tokens[i], want[i]) {
			t.Errorf("token[%d] = %v, want %v", i, tokens[i], want[i])
		}
	}
}

func TestMap_EmptyFile(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "empty.bin")
	if err := os.WriteFile(testFile, []byte{}, 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	data, cleanup, err := Map(testFile)
	if err != nil {
		t.Fatalf("Map() error = %v", err)
	}
	defer cleanup()

	if len(data) != 0 {
		t.Errorf("Map() returned %d bytes for empty file, want 0", len(data))
	}
}

func TestMap_NonexistentFile(t *testing.T) {
	if _, _, err := Map("/nonexistent/stream.bin"); err == nil {
		t.Error("Map() expected error for nonexistent file")
	}
}
