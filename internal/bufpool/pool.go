// Package bufpool recycles the byte buffers that back incremental tokenizers.
package bufpool

import "sync"

const (
	// defaultCapacity is the starting capacity of a pooled buffer.
	defaultCapacity = 512

	// maxCapacity bounds what is returned to the pool; a tokenizer that grew
	// its buffer for one very long token should not pin that memory.
	maxCapacity = 64 * 1024
)

var bufferPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, 0, defaultCapacity)
		return &b
	},
}

// Get returns an empty buffer that may have spare capacity.
func Get() []byte {
	p := bufferPool.Get().(*[]byte)
	return (*p)[:0]
}

// Put returns buf to the pool. The caller must not use buf afterwards.
func Put(buf []byte) {
	if buf == nil || cap(buf) > maxCapacity {
		return
	}
	buf = buf[:0]
	bufferPool.Put(&buf)
}
