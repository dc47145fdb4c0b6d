// Package chunk splits a file into contiguous byte ranges, one per worker.
package chunk

import "fmt"

// Chunk is the byte range [Start, Start+Length) of the input.
type Chunk struct {
	Start  int64
	Length int64
}

// End returns the offset one past the last byte of c.
func (c Chunk) End() int64 { return c.Start + c.Length }

func (c Chunk) String() string {
	return fmt.Sprintf("[%d,%d)", c.Start, c.End())
}

// Split partitions [0, size) into n chunks. All chunks have size/n bytes,
// except the last, which also takes the remainder. n is clamped to [1, size]
// so that no chunk is empty; an empty file has no chunks.
func Split(size int64, n int) []Chunk {
	if size <= 0 {
		return nil
	}
	if n < 1 {
		n = 1
	}
	if int64(n) > size {
		n = int(size)
	}
	length := size / int64(n)
	chunks := make([]Chunk, n)
	for i := range chunks {
		chunks[i] = Chunk{Start: int64(i) * length, Length: length}
	}
	chunks[n-1].Length = size - chunks[n-1].Start
	return chunks
}
