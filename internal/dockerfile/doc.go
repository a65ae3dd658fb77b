// Package dockerfile incrementally parses Dockerfile-syntax text into
// structured instruction records.
//
// A [Parser] consumes a byte stream chunk by chunk; chunk boundaries need
// not align with line or instruction boundaries, and the resulting
// instruction sequence is identical for every way of splitting the same
// document. Working memory is bounded by a fixed-capacity staging buffer
// that retains only bytes whose instruction end has not yet been seen.
//
// The grammar recognizes FROM instructions in full (flags, image reference,
// AS alias); every other instruction is captured as an opaque keyword and
// body, with backslash line continuation and heredoc bodies expanded and
// trailing # comments removed. Lines matching no form are preserved as
// [Unparsed] records rather than rejected, so degraded input degrades to
// data.
//
// Example usage:
//
//	p := dockerfile.New()
//	for chunk := range chunks {
//	    instrs, err := p.Push(chunk, false)
//	    if err != nil {
//	        return err
//	    }
//	    handle(instrs)
//	}
//	instrs, err := p.Push(nil, true)
package dockerfile
