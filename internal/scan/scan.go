// Package scan implements the single-delimiter tokenization step.
//
// Step is a pure function of the bytes it is given: it never retains the
// region and never allocates. Callers own the buffer and decide what to do
// with an Incomplete result.
package scan

import (
	"encoding/binary"
	"fmt"
	"math/bits"
)

// Outcome is the result class of a tokenization step.
type Outcome int

const (
	// Incomplete means no delimiter was found in the available bytes.
	// More input is required before a token can be resolved.
	Incomplete Outcome = iota
	// Resolved means a token was split off the front of the region.
	Resolved
	// Exhausted means the input has ended and nothing is left to emit.
	Exhausted
)

// String returns the string representation of Outcome.
func (o Outcome) String() string {
	switch o {
	case Incomplete:
		return "incomplete"
	case Resolved:
		return "resolved"
	case Exhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("Outcome(%d)", o)
	}
}

// Result describes the outcome of Step or Flush.
type Result struct {
	Outcome Outcome
	// Token is the resolved token. It aliases the region passed in.
	Token []byte
	// Advance is how many bytes of the region were consumed, delimiter included.
	Advance int
	// Scanned is how many leading bytes of the region are known to be
	// delimiter-free. Only meaningful for Incomplete.
	Scanned int
}

// Step resolves at most one token from region.
//
// The first from bytes of region are assumed to contain no delimiter; the
// search resumes after them. A match always consumes the delimiter, so an
// empty token still advances by one byte.
func Step(region []byte, from int, delim byte) Result {
	if from < 0 || from > len(region) {
		from = 0
	}

	p := IndexByte(region[from:], delim)
	if p < 0 {
		return Result{Outcome: Incomplete, Scanned: len(region)}
	}

	p += from
	return Result{
		Outcome: Resolved,
		Token:   region[:p],
		Advance: p + 1,
	}
}

// Flush resolves the remainder of region once the input is exhausted.
// A non-empty region becomes the final token; an empty one ends the sequence.
func Flush(region []byte) Result {
	if len(region) == 0 {
		return Result{Outcome: Exhausted}
	}
	return Result{
		Outcome: Resolved,
		Token:   region,
		Advance: len(region),
	}
}

// Split applies Step repeatedly to data that is already complete and
// returns every token. Tokens alias data.
func Split(data []byte, delim byte) [][]byte {
	tokens := make([][]byte, 0, 16)
	for {
		res := Step(data, 0, delim)
		if res.Outcome == Incomplete {
			res = Flush(data)
		}
		if res.Outcome == Exhausted {
			return tokens
		}
		tokens = append(tokens, res.Token)
		data = data[res.Advance:]
	}
}

const (
	loMask = 0x0101010101010101
	hiMask = 0x8080808080808080
)

// IndexByte returns the index of the first delim in b, or -1.
//
// Eight bytes are tested at a time with the SWAR zero-byte trick: after
// XOR with the broadcast delimiter a matching byte becomes zero, and
// ((x - 0x01..01) & ^x & 0x80..80) has its high bit set for every zero byte.
func IndexByte(b []byte, delim byte) int {
	broadcast := uint64(delim) * loMask
	i := 0

	for ; i+8 <= len(b); i += 8 {
		x := binary.LittleEndian.Uint64(b[i:i+8]) ^ broadcast
		if found := (x - loMask) & ^x & hiMask; found != 0 {
			return i + bits.TrailingZeros64(found)/8
		}
	}

	for ; i < len(b); i++ {
		if b[i] == delim {
			return i
		}
	}
	return -1
}

