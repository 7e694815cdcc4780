// Package fixture generates the sample NUL-delimited streams used by the
// demos, benchmarks and tests.
package fixture

import (
	"bufio"
	"io"
	"os"

	"github.com/bradfitz/iter"
	"github.com/pkg/errors"
)

// maxRun is the last run length index; runs are 0..=i for i in [1, maxRun].
const maxRun = 0x0F

// Pattern returns one iteration of the sample stream.
//
// For every i in 1..15 it holds the bytes 0x00..i; a NUL follows every run
// with an even i. Each run therefore starts with a delimiter of its own.
func Pattern() []byte {
	var out []byte
	for i := 1; i <= maxRun; i++ {
		for b := range iter.N(i + 1) {
			out = append(out, byte(b))
		}
		if i%2 == 0 {
			out = append(out, 0x00)
		}
	}
	return out
}

// Write writes iterations copies of Pattern to w.
func Write(w io.Writer, iterations int) error {
	bw := bufio.NewWriter(w)
	pattern := Pattern()
	for n := range iter.N(iterations) {
		if _, err := bw.Write(pattern); err != nil {
			return errors.Wrapf(err, "write iteration %d", n)
		}
	}
	return errors.Wrap(bw.Flush(), "flush fixture")
}

// TempFile writes the sample stream to a new temporary file and rewinds it.
// The caller is responsible for closing and removing the file.
func TempFile(iterations int) (*os.File, error) {
	f, err := os.CreateTemp("", "shape-delim-*.bin")
	if err != nil {
		return nil, errors.Wrap(err, "create fixture file")
	}
	if err := Write(f, iterations); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, errors.Wrap(err, "rewind fixture file")
	}
	return f, nil
}
