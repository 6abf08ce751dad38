// Package accel provides utilities for splitting scans into fixed-size batches.
package accel

// DefaultBatchSize is used when a non-positive size is requested
const DefaultBatchSize = 256

// Span is a half-open range [Start, End) of item indexes
type Span struct {
	Start int
	End   int
}

// Len returns the number of items in the span
func (s Span) Len() int {
	return s.End - s.Start
}

// Batch splits item ranges into spans of at most Size items
type Batch struct {
	size int
}

// NewBatch creates a new batch helper with the given size
func NewBatch(size int) *Batch {
	if size <= 0 {
		size = DefaultBatchSize
	}
	return &Batch{size: size}
}

// Size returns the batch size
func (b *Batch) Size() int {
	return b.size
}

// Spans covers [0, n) with consecutive spans in ascending order.
// The last span may be shorter than Size. n <= 0 yields no spans.
func (b *Batch) Spans(n int) []Span {
	if n <= 0 {
		return nil
	}
	spans := make([]Span, 0, (n+b.size-1)/b.size)
	for start := 0; start < n; start += b.size {
		end := start + b.size
		if end > n {
			end = n
		}
		spans = append(spans, Span{Start: start, End: end})
	}
	return spans
}
