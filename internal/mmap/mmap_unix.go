//go:build unix

package mmap

import (
	"fmt"
	"os"
	"syscall"
)

// Map memory-maps a file read-only.
// Returns the mapped bytes and a cleanup function that must be called to
// unmap the file. The bytes must not be used after cleanup.
//
// The whole stream is addressable without being read into the heap; the OS
// pages it in as tokens are sliced out of it.
func Map(filename string) ([]byte, func(), error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}

	size := stat.Size()
	if size == 0 {
		// mmap rejects zero-length mappings
		return []byte{}, func() { f.Close() }, nil
	}

	data, err := syscall.Mmap(
		int(f.Fd()),
		0,
		int(size),
		syscall.PROT_READ,
		syscall.MAP_SHARED,
	)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to mmap file: %w", err)
	}

	cleanup := func() {
		_ = syscall.Munmap(data)
		f.Close()
	}

	return data, cleanup, nil
}
