//go:build !unix

package mmap

import (
	"fmt"
	"os"
)

// Map reads a file into memory on platforms without mmap.
// The cleanup function is a no-op kept for API parity with the unix build.
func Map(filename string) ([]byte, func(), error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, func() {}, nil
}
