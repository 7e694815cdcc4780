package delim

import (
	"io"

	"github.com/pkg/errors"
)

// DefaultChunkSize is the read size used by ReaderSource when none is given.
const DefaultChunkSize = 8

// Source supplies a stream as a sequence of chunks.
//
// NextChunk returns the next chunk of bytes in stream order. It returns
// io.EOF itself, not wrapped, once the stream is exhausted; a final
// non-empty chunk may come together with io.EOF. Any other error is a fetch
// failure, including one that wraps io.EOF. A Tokenizer never calls
// NextChunk again after it has seen io.EOF.
//
// The Tokenizer copies every chunk into its own buffer, so a Source may
// reuse the returned slice on the next call.
type Source interface {
	NextChunk() ([]byte, error)
}

// SourceFunc adapts an ordinary function to the Source interface.
type SourceFunc func() ([]byte, error)

// NextChunk calls f.
func (f SourceFunc) NextChunk() ([]byte, error) {
	return f()
}

// ReaderSource reads an io.Reader in bounded-size chunks.
//
// Example:
//
//	file, _ := os.Open("stream.bin")
//	defer file.Close()
//
//	tok := delim.NewTokenizer(delim.NewReaderSource(file, 4096))
type ReaderSource struct {
	r      io.Reader
	buf    []byte
	offset int64
	eof    bool
	err    error // read failure held back until the bytes read with it are delivered
}

// NewReaderSource returns a Source reading at most chunkSize bytes per chunk
// from r. A chunkSize <= 0 selects DefaultChunkSize.
func NewReaderSource(r io.Reader, chunkSize int) *ReaderSource {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &ReaderSource{
		r:   r,
		buf: make([]byte, chunkSize),
	}
}

// NextChunk performs one bounded read.
// The returned slice is only valid until the next call.
func (s *ReaderSource) NextChunk() ([]byte, error) {
	if s.eof {
		return nil, io.EOF
	}
	if err := s.err; err != nil {
		s.err = nil
		return nil, err
	}

	for empty := 0; empty < maxEmptyChunks; empty++ {
		n, err := s.r.Read(s.buf)
		s.offset += int64(n)

		if err == io.EOF {
			s.eof = true
			if n == 0 {
				return nil, io.EOF
			}
			return s.buf[:n], io.EOF
		}
		if err != nil {
			err = errors.Wrapf(err, "read chunk at offset %d", s.offset)
			if n > 0 {
				s.err = err
				return s.buf[:n], nil
			}
			return nil, err
		}
		if n > 0 {
			return s.buf[:n], nil
		}
		// (0, nil) is allowed by io.Reader and means nothing happened; read again.
	}
	return nil, io.ErrNoProgress
}

// Offset returns the number of bytes read from the underlying reader.
func (s *ReaderSource) Offset() int64 {
	return s.offset
}

// NewBytesSource returns a Source that delivers data in chunks of chunkSize
// bytes. A chunkSize <= 0 delivers data as a single chunk.
func NewBytesSource(data []byte, chunkSize int) Source {
	if chunkSize <= 0 {
		chunkSize = len(data)
	}

	var chunks [][]byte
	for len(data) > 0 {
		n := chunkSize
		if n > len(data) {
			n = len(data)
		}
		chunks = append(chunks, data[:n])
		data = data[n:]
	}
	return Chunks(chunks...)
}

// Chunks returns a Source that replays the given chunks in order and then
// reports io.EOF.
func Chunks(chunks ...[]byte) Source {
	i := 0
	return SourceFunc(func() ([]byte, error) {
		if i >= len(chunks) {
			return nil, io.EOF
		}
		chunk := chunks[i]
		i++
		return chunk, nil
	})
}
