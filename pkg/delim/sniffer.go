package delim

import (
	"io"
)

// candidates are the delimiters DetectDelimiter considers, in tie-break order.
var candidates = []byte{0x00, '\n', 0x1E, '\t', '|', ','}

// Sniffer guesses which delimiter a stream uses from a sample of its first
// bytes.
type Sniffer struct {
	sample     []byte
	candidates []byte
	delimiter  byte
	analyzed   bool
}

// NewSniffer creates a Sniffer over sample. With no candidates given, it
// considers NUL, newline, the ASCII record separator, tab, pipe and comma.
func NewSniffer(sample []byte, candidate ...byte) *Sniffer {
	if len(candidate) == 0 {
		candidate = candidates
	}
	return &Sniffer{
		sample:     sample,
		candidates: candidate,
	}
}

// DetectDelimiter returns the candidate that occurs most often in the
// sample. Earlier candidates win ties. If no candidate occurs at all, it
// returns DefaultDelimiter.
func (s *Sniffer) DetectDelimiter() byte {
	if !s.analyzed {
		s.delimiter = s.detect()
		s.analyzed = true
	}
	return s.delimiter
}

func (s *Sniffer) detect() byte {
	var counts [256]int
	for _, b := range s.sample {
		counts[b]++
	}

	best := DefaultDelimiter
	bestCount := 0
	for _, c := range s.candidates {
		if counts[c] > bestCount {
			best = c
			bestCount = counts[c]
		}
	}
	return best
}

// SniffSource reads up to n bytes from src to pick a delimiter, then returns
// it with a Source that replays the sampled bytes before the rest of the
// stream. An error met while sampling is replayed after the sampled bytes.
func SniffSource(src Source, n int) (byte, Source) {
	var sample []byte
	var sampleErr error
	for empty := 0; len(sample) < n && empty < maxEmptyChunks; {
		chunk, err := src.NextChunk()
		sample = append(sample, chunk...)
		if err != nil {
			sampleErr = err
			break
		}
		if len(chunk) == 0 {
			empty++
		}
	}

	d := NewSniffer(sample).DetectDelimiter()

	replayed, eof := false, false
	replay := SourceFunc(func() ([]byte, error) {
		if eof {
			return nil, io.EOF
		}
		if !replayed {
			replayed = true
			if len(sample) > 0 || sampleErr != nil {
				eof = sampleErr == io.EOF
				return sample, sampleErr
			}
		}
		return src.NextChunk()
	})
	return d, replay
}
