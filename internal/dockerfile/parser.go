package dockerfile

import "fmt"

// Incremental Dockerfile parser.
//
// A Parser owns one fixed-capacity staging buffer and nothing else. Chunks
// are fed in arrival order via [Parser.Push]; completed instructions come
// back as soon as their text is fully buffered, and partially recognized
// trailing bytes are retained for the next call. The instance is not safe
// for concurrent use.
type Parser struct {
	buf   *buffer
	final bool
}

// Creates a parser with the default staging capacity.
func New() *Parser {
	return NewWithCapacity(DefaultCapacity)
}

// Creates a parser with a fixed staging capacity in bytes.
//
// The capacity bounds the longest single instruction (including a heredoc
// body) the parser can hold before its end is found. Non-positive values
// fall back to [DefaultCapacity].
func NewWithCapacity(capacity int) *Parser {
	return &Parser{buf: newBuffer(capacity)}
}

// Feeds one chunk of input and returns the instructions completed by it, in
// stream order.
//
// final asserts that no further bytes will arrive, which lets end-of-input
// act as a line terminator for trailing content. Pushing an empty final
// chunk after all data has been consumed is a valid flush and yields an
// empty result.
//
// Malformed input never fails a Push; unrecognized lines degrade to
// [Unparsed] records. The only error is [ErrLineTooLong], returned when a
// single instruction fills the staging buffer without its end in sight.
func (p *Parser) Push(chunk []byte, final bool) ([]Instruction, error) {
	var out []Instruction
	for {
		n := p.buf.fill(chunk)
		chunk = chunk[n:]
		if len(chunk) == 0 && final {
			p.final = true
		}

		consumed := p.drain(&out)

		if len(chunk) == 0 {
			return out, nil
		}
		if n == 0 && consumed == 0 {
			return out, fmt.Errorf("%w: instruction exceeds the %d-byte staging capacity",
				ErrLineTooLong, p.buf.capacity())
		}
	}
}

// Runs the grammar against the buffered view until the buffer is exhausted
// or no further complete instruction can be recognized, then commits the
// consumed byte count. Returns the number of bytes consumed.
func (p *Parser) drain(out *[]Instruction) int {
	view := p.buf.view()
	consumed := 0

	for consumed < len(view) {
		inst, n, st := matchLine(view[consumed:], p.final)
		switch st {
		case matched:
			if inst != nil {
				*out = append(*out, inst)
			}
			consumed += n
		case incomplete:
			p.buf.consume(consumed)
			return consumed
		default:
			// The fallback recognizer is total for any complete line, so a
			// rejection here means a recognizer contradicted its own
			// guarantees. That is a defect, not input validation.
			panic("dockerfile: grammar rejected a complete line")
		}
	}

	p.buf.consume(consumed)
	return consumed
}
