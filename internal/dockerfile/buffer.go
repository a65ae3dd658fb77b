package dockerfile

// Default staging capacity in bytes.
const DefaultCapacity = 4096

// Fixed-capacity staging area for unconsumed input.
//
// Bytes live in a contiguous arena between head and tail. Appending rotates
// the unconsumed span to the start of the arena when tail space runs out, so
// the buffered bytes are always viewable as one slice. Bytes are evicted only
// from the head, via consume, once the parser has fully accounted for them.
type buffer struct {
	data []byte
	head int
	tail int
}

// Creates a staging buffer with the given fixed capacity.
func newBuffer(capacity int) *buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &buffer{data: make([]byte, capacity)}
}

// Returns the currently buffered, unconsumed bytes.
//
// The slice aliases the arena and is invalidated by the next fill or consume.
func (b *buffer) view() []byte {
	return b.data[b.head:b.tail]
}

// Number of buffered bytes.
func (b *buffer) size() int {
	return b.tail - b.head
}

// Total fixed capacity.
func (b *buffer) capacity() int {
	return len(b.data)
}

// Appends as many bytes from p as fit and returns the number appended.
//
// When the tail of the arena is exhausted but head space has been freed by
// earlier consumes, the unconsumed span is rotated to the front first.
func (b *buffer) fill(p []byte) int {
	if len(p) > len(b.data)-b.tail && b.head > 0 {
		copy(b.data, b.data[b.head:b.tail])
		b.tail -= b.head
		b.head = 0
	}
	n := copy(b.data[b.tail:], p)
	b.tail += n
	return n
}

// Irreversibly evicts the first n buffered bytes.
func (b *buffer) consume(n int) {
	if n < 0 || n > b.size() {
		panic("dockerfile: consume out of range")
	}
	b.head += n
	if b.head == b.tail {
		b.head, b.tail = 0, 0
	}
}
