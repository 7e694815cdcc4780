package delim

import (
	"fmt"
	"io"
	"iter"

	"github.com/go-logr/logr"

	"github.com/shapestone/shape-delim/internal/bufpool"
	"github.com/shapestone/shape-delim/internal/scan"
)

// maxEmptyChunks is how many consecutive empty chunks a source may return
// before the tokenizer gives up with io.ErrNoProgress.
const maxEmptyChunks = 100

// Tokenizer splits a chunked byte stream into delimiter-separated tokens.
//
// It pulls a chunk from its Source only when the buffered bytes do not
// contain a delimiter, so memory stays bounded by the longest unresolved
// token plus one chunk. Tokens are returned in stream order, without the
// delimiter. The sequence is forward-only and cannot be restarted.
//
// A Tokenizer is not safe for concurrent use. Abandoning one before the end
// of the stream is safe; nothing needs to be closed.
//
// Example usage:
//
//	tok := delim.NewTokenizer(delim.NewReaderSource(file, 4096))
//	for tok.Scan() {
//	    fmt.Printf("%x\n", tok.Token())
//	}
//	if err := tok.Err(); err != nil {
//	    // handle error
//	}
type Tokenizer struct {
	src  Source
	opts Options
	log  logr.Logger

	buf     []byte
	cursor  int   // start of the unscanned region in buf
	scanned int   // leading bytes of buf[cursor:] known to hold no delimiter
	base    int64 // stream offset of buf[0]

	exhausted bool
	done      bool
	err       error // terminal error, returned by every later call

	token   []byte
	scanErr error
}

// NewTokenizer creates a Tokenizer over src with default options
// (NUL delimiter, no token size limit).
func NewTokenizer(src Source) *Tokenizer {
	return NewTokenizerWithOptions(src, DefaultOptions())
}

// NewTokenizerWithOptions creates a Tokenizer over src with custom options.
//
// Example:
//
//	opts := delim.DefaultOptions()
//	opts.Delimiter = '\n'
//	opts.MaxTokenSize = 1 << 20
//	tok := delim.NewTokenizerWithOptions(src, opts)
func NewTokenizerWithOptions(src Source, opts Options) *Tokenizer {
	return &Tokenizer{
		src:  src,
		opts: opts,
		log:  opts.Logger.WithName("tokenizer"),
	}
}

// NextToken returns the next token, or io.EOF once the stream is exhausted
// and every token has been returned.
//
// The returned slice is owned by the caller. An empty, non-nil slice is a
// valid token (two adjacent delimiters). Bytes after the last delimiter are
// returned as a final token; a stream ending on a delimiter has no trailing
// empty token.
//
// If the source fails, NextToken returns a *SourceError and keeps its
// buffered state, so a later call retries the fetch. A *TokenError is
// terminal.
func (t *Tokenizer) NextToken() ([]byte, error) {
	if t.done {
		return nil, io.EOF
	}
	if t.err != nil {
		return nil, t.err
	}

	for {
		t.checkState()
		region := t.buf[t.cursor:]

		res := scan.Step(region, t.scanned, t.opts.Delimiter)
		if res.Outcome == scan.Incomplete && t.exhausted {
			res = scan.Flush(region)
			if res.Outcome == scan.Resolved {
				t.log.V(1).Info("flushing trailing token", "remaining", len(region))
			}
		}

		switch res.Outcome {
		case scan.Resolved:
			if t.tooLarge(len(res.Token)) {
				return nil, t.fail(len(res.Token))
			}
			token := make([]byte, len(res.Token))
			copy(token, res.Token)
			t.cursor += res.Advance
			t.scanned = 0
			return token, nil

		case scan.Exhausted:
			t.finish()
			return nil, io.EOF
		}

		t.scanned = res.Scanned
		if t.tooLarge(t.scanned) {
			return nil, t.fail(t.scanned)
		}
		if err := t.fill(); err != nil {
			return nil, err
		}
	}
}

// Scan advances the tokenizer to the next token, which is then available
// through Token. It returns false at the end of the stream or on the first
// error; Err reports the error, or nil at the end of the stream.
func (t *Tokenizer) Scan() bool {
	if t.scanErr != nil {
		return false
	}

	token, err := t.NextToken()
	if err != nil {
		t.token = nil
		if err != io.EOF {
			t.scanErr = err
		}
		return false
	}

	t.token = token
	return true
}

// Token returns the token produced by the last successful call to Scan.
func (t *Tokenizer) Token() []byte {
	return t.token
}

// Err returns the first error encountered by Scan, or nil.
func (t *Tokenizer) Err() error {
	return t.scanErr
}

// All returns an iterator over the remaining tokens.
// Iteration stops after the last token, or after yielding the first error.
//
// Example:
//
//	for token, err := range tok.All() {
//	    if err != nil {
//	        return err
//	    }
//	    process(token)
//	}
func (t *Tokenizer) All() iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		for {
			token, err := t.NextToken()
			if err == io.EOF {
				return
			}
			if !yield(token, err) || err != nil {
				return
			}
		}
	}
}

// Buffered returns the number of bytes currently held in the buffer,
// including bytes of already emitted tokens not yet compacted away.
func (t *Tokenizer) Buffered() int {
	return len(t.buf)
}

// Offset returns the stream offset of the first byte not yet emitted.
func (t *Tokenizer) Offset() int64 {
	return t.base + int64(t.cursor)
}

// fill pulls chunks until at least one byte arrives or the source ends.
func (t *Tokenizer) fill() error {
	t.log.V(1).Info("more data needed", "buffered", len(t.buf)-t.cursor, "scanned", t.scanned)

	for empty := 0; empty < maxEmptyChunks; empty++ {
		chunk, err := t.src.NextChunk()
		if len(chunk) > 0 {
			t.appendChunk(chunk)
		}

		if err == io.EOF {
			t.exhausted = true
			t.log.V(1).Info("source exhausted", "offset", t.end())
			return nil
		}
		if err != nil {
			t.log.Error(err, "chunk source failed", "offset", t.end())
			return &SourceError{Offset: t.end(), Err: err}
		}
		if len(chunk) > 0 {
			return nil
		}
	}

	return &SourceError{Offset: t.end(), Err: io.ErrNoProgress}
}

// appendChunk drops the consumed prefix of the buffer and appends chunk.
func (t *Tokenizer) appendChunk(chunk []byte) {
	if t.buf == nil {
		t.buf = bufpool.Get()
	}
	if t.cursor > 0 {
		n := copy(t.buf, t.buf[t.cursor:])
		t.buf = t.buf[:n]
		t.base += int64(t.cursor)
		t.cursor = 0
	}
	t.buf = append(t.buf, chunk...)
}

// end returns the stream offset just past the last buffered byte.
func (t *Tokenizer) end() int64 {
	return t.base + int64(len(t.buf))
}

func (t *Tokenizer) tooLarge(size int) bool {
	return t.opts.MaxTokenSize > 0 && size > t.opts.MaxTokenSize
}

// fail records a terminal TokenError and releases the buffer.
func (t *Tokenizer) fail(size int) error {
	t.err = &TokenError{
		Offset: t.Offset(),
		Size:   size,
		Err:    ErrTokenTooLarge,
	}
	t.log.Error(t.err, "token rejected", "maxTokenSize", t.opts.MaxTokenSize)
	t.release()
	return t.err
}

// finish marks the sequence terminal and releases the buffer.
func (t *Tokenizer) finish() {
	t.done = true
	t.log.V(1).Info("done", "offset", t.Offset())
	t.release()
}

func (t *Tokenizer) release() {
	t.base += int64(t.cursor)
	bufpool.Put(t.buf)
	t.buf = nil
	t.cursor = 0
	t.scanned = 0
}

// checkState panics if the cursor has left the buffer.
func (t *Tokenizer) checkState() {
	if t.cursor < 0 || t.cursor > len(t.buf) || t.scanned > len(t.buf)-t.cursor {
		panic(fmt.Errorf("%w: cursor %d, scanned %d, buffer %d",
			ErrMalformedState, t.cursor, t.scanned, len(t.buf)))
	}
}
