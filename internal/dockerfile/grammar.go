package dockerfile

import "bytes"

// Outcome of a single match attempt against a byte view.
//
// incomplete means the view ended before the recognizer could prove where
// the construct ends; it is an ordinary signal to wait for more input, not
// an error. rejected means the construct is definitely not present at the
// current position and the next recognizer should be tried.
type status int

const (
	matched status = iota
	incomplete
	rejected
)

// Read cursor over a byte view.
//
// Recognizers copy the cursor before speculative reads and restore it on
// rejection, so backtracking is a struct assignment. final marks that no
// further bytes will ever arrive, which lets end-of-view act as a line
// terminator instead of an incomplete signal.
type cursor struct {
	buf   []byte
	pos   int
	final bool
}

func (c *cursor) empty() bool {
	return c.pos >= len(c.buf)
}

func isHorizWS(b byte) bool {
	return b == ' ' || b == '\t'
}

func isAlnum(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// Consumes bytes while pred holds, requiring at least min.
//
// Running off the end of a non-final view is incomplete: more matching bytes
// could still arrive, and committing early would make the result depend on
// chunk boundaries.
func (c *cursor) takeWhile(pred func(byte) bool, min int) ([]byte, status) {
	start := c.pos
	for c.pos < len(c.buf) && pred(c.buf[c.pos]) {
		c.pos++
	}
	if c.pos == len(c.buf) && !c.final {
		return nil, incomplete
	}
	if c.pos-start < min {
		return nil, rejected
	}
	return c.buf[start:c.pos], matched
}

// Consumes horizontal whitespace, requiring at least min bytes.
func (c *cursor) ws(min int) status {
	_, st := c.takeWhile(isHorizWS, min)
	return st
}

// Matches s case-insensitively (ASCII).
func (c *cursor) literalFold(s string) status {
	for i := 0; i < len(s); i++ {
		if c.pos+i >= len(c.buf) {
			if c.final {
				return rejected
			}
			return incomplete
		}
		if lower(c.buf[c.pos+i]) != lower(s[i]) {
			return rejected
		}
	}
	c.pos += len(s)
	return matched
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// Consumes one whitespace-delimited token of at least one byte.
func (c *cursor) token() ([]byte, status) {
	return c.takeWhile(func(b byte) bool {
		return b != ' ' && b != '\t' && b != '\r' && b != '\n'
	}, 1)
}

// Consumes a line ending: "\n" or "\r\n". Does not accept end-of-view.
func (c *cursor) lineEnding() status {
	if c.empty() {
		if !c.final {
			return incomplete
		}
		return rejected
	}
	switch c.buf[c.pos] {
	case '\n':
		c.pos++
		return matched
	case '\r':
		if c.pos+1 >= len(c.buf) {
			if !c.final {
				return incomplete
			}
			return rejected
		}
		if c.buf[c.pos+1] == '\n' {
			c.pos += 2
			return matched
		}
	}
	return rejected
}

// Consumes a line terminator: a line ending, or end-of-view once the stream
// is final.
func (c *cursor) terminator() status {
	if c.empty() && c.final {
		return matched
	}
	return c.lineEnding()
}

// Consumes the content of the current physical line, stopping before its
// line ending. A bare '\r' not followed by '\n' is ordinary content.
//
// If the view ends before a line ending and the stream is not final, the
// line's extent is unknowable and the result is incomplete. Once final,
// the remaining bytes are the content.
func (c *cursor) restOfLine() ([]byte, status) {
	start := c.pos
	for c.pos < len(c.buf) {
		switch c.buf[c.pos] {
		case '\n':
			return c.buf[start:c.pos], matched
		case '\r':
			if c.pos+1 >= len(c.buf) {
				if !c.final {
					return nil, incomplete
				}
			} else if c.buf[c.pos+1] == '\n' {
				return c.buf[start:c.pos], matched
			}
		}
		c.pos++
	}
	if !c.final {
		return nil, incomplete
	}
	return c.buf[start:], matched
}

// Consumes optional trailing whitespace, an optional '#' comment, and the
// line terminator. Shared tail of every instruction form.
func (c *cursor) commentLineEnd() status {
	if st := c.ws(0); st != matched {
		return st
	}
	if !c.empty() && c.buf[c.pos] == '#' {
		if _, st := c.restOfLine(); st != matched {
			return st
		}
	}
	return c.terminator()
}

// Attempts to match one line at the head of view.
//
// Returns the instruction (nil for a discarded blank or comment-only line),
// the number of bytes the match used, and the attempt's status. Recognizers
// are tried in order: blank/comment, FROM, generic instruction, fallback.
// The fallback is total for any complete line, so a rejected result with a
// terminator in view never escapes to the caller.
func matchLine(view []byte, final bool) (Instruction, int, status) {
	in := cursor{buf: view, final: final}

	if n, st := matchBlankComment(in); st != rejected {
		return nil, n, st
	}

	lead := in
	if st := lead.ws(0); st != matched {
		return nil, 0, st
	}
	if inst, n, st := matchFrom(lead); st != rejected {
		return inst, n, st
	}
	if inst, n, st := matchGeneric(lead); st != rejected {
		return inst, n, st
	}

	return matchFallback(in)
}

// Matches a line holding nothing but whitespace and an optional comment.
func matchBlankComment(in cursor) (int, status) {
	if st := in.ws(0); st != matched {
		return 0, st
	}
	if !in.empty() && in.buf[in.pos] == '#' {
		if _, st := in.restOfLine(); st != matched {
			return 0, st
		}
	}
	if st := in.terminator(); st != matched {
		return 0, st
	}
	return in.pos, matched
}

// Matches a FROM instruction: the case-insensitive FROM keyword, zero or
// more --flag tokens (consumed, not retained), the image reference, and an
// optional case-insensitive AS clause binding a stage alias.
func matchFrom(in cursor) (Instruction, int, status) {
	if st := in.literalFold("FROM"); st != matched {
		return nil, 0, st
	}

	// Flag tokens, each introduced by "--" after whitespace.
	for {
		save := in
		if st := in.ws(1); st != matched {
			if st == incomplete {
				return nil, 0, incomplete
			}
			in = save
			break
		}
		if in.empty() || in.buf[in.pos] != '-' {
			in = save
			break
		}
		if st := in.literalFold("--"); st != matched {
			if st == incomplete {
				return nil, 0, incomplete
			}
			in = save
			break
		}
		if _, st := in.token(); st != matched {
			if st == incomplete {
				return nil, 0, incomplete
			}
			in = save
			break
		}
	}

	if st := in.ws(1); st != matched {
		return nil, 0, st
	}
	src, st := in.token()
	if st != matched {
		return nil, 0, st
	}

	alias, st := matchAlias(&in)
	if st == incomplete {
		return nil, 0, incomplete
	}

	if st := in.commentLineEnd(); st != matched {
		return nil, 0, st
	}
	return From{Source: string(src), Alias: alias}, in.pos, matched
}

// Matches the optional "AS name" clause. Rejection restores the cursor and
// yields an empty alias; incomplete propagates so the decision is deferred
// until enough bytes have arrived.
func matchAlias(in *cursor) (string, status) {
	save := *in
	if st := in.ws(1); st != matched {
		*in = save
		return "", st
	}
	if st := in.literalFold("AS"); st != matched {
		*in = save
		return "", st
	}
	if st := in.ws(1); st != matched {
		*in = save
		return "", st
	}
	name, st := in.token()
	if st != matched {
		*in = save
		return "", st
	}
	return string(name), matched
}

// Matches a generic instruction: an alphanumeric keyword, whitespace, and a
// body formed by a heredoc or by backslash line continuation.
func matchGeneric(in cursor) (Instruction, int, status) {
	kw, st := in.takeWhile(isAlnum, 0)
	if st != matched {
		return nil, 0, st
	}
	if st := in.ws(1); st != matched {
		return nil, 0, st
	}

	if inst, n, st := matchHeredoc(in, kw); st != rejected {
		return inst, n, st
	}
	return matchContinuation(in, kw)
}

// Matches a heredoc body.
//
// The remainder of the instruction's first physical line must contain a "<<"
// marker followed by an alphanumeric delimiter word, optionally a ">"
// redirect target, and a line ending. The body is every subsequent line,
// verbatim, up to but not including a line that is exactly the delimiter.
// Interior lines are never re-parsed as instructions.
func matchHeredoc(in cursor, kw []byte) (Instruction, int, status) {
	// Locate "<<" before the end of the current line. Text preceding the
	// marker (such as a command prefix) is consumed and not retained.
	for {
		if in.empty() {
			if !in.final {
				return nil, 0, incomplete
			}
			return nil, 0, rejected
		}
		b := in.buf[in.pos]
		if b == '\n' {
			return nil, 0, rejected
		}
		if b == '\r' && in.pos+1 < len(in.buf) && in.buf[in.pos+1] == '\n' {
			return nil, 0, rejected
		}
		if b == '<' {
			if in.pos+1 >= len(in.buf) {
				if !in.final {
					return nil, 0, incomplete
				}
				return nil, 0, rejected
			}
			if in.buf[in.pos+1] == '<' {
				in.pos += 2
				break
			}
		}
		in.pos++
	}

	delim, st := in.takeWhile(isAlnum, 1)
	if st != matched {
		return nil, 0, st
	}
	if st := in.ws(0); st != matched {
		return nil, 0, st
	}

	if !in.empty() && in.buf[in.pos] == '>' {
		// Redirect form: <<WORD > target. The target must be non-empty and
		// the line must end with a real line ending.
		in.pos++
		target, st := in.restOfLine()
		if st != matched {
			return nil, 0, st
		}
		if len(target) == 0 {
			return nil, 0, rejected
		}
		if st := in.lineEnding(); st != matched {
			return nil, 0, st
		}
	} else {
		if st := in.lineEnding(); st != matched {
			return nil, 0, st
		}
	}

	bodyStart := in.pos
	for {
		lineStart := in.pos
		content, st := in.restOfLine()
		if st != matched {
			return nil, 0, st
		}
		st = in.terminator()
		if st != matched {
			return nil, 0, st
		}
		if bytes.Equal(content, delim) {
			body := in.buf[bodyStart:lineStart]
			return Generic{Keyword: string(kw), Body: string(body)}, in.pos, matched
		}
		if in.empty() {
			if !in.final {
				return nil, 0, incomplete
			}
			// Final input exhausted without the delimiter line.
			return nil, 0, rejected
		}
	}
}

// Matches a continuation body: one or more physical lines joined by a
// trailing backslash. Each line's trailing '#' comment is stripped before
// the backslash check, parts are trimmed, and the parts are joined with a
// single space.
func matchContinuation(in cursor, kw []byte) (Instruction, int, status) {
	var body []byte
	first := true
	for {
		content, st := in.restOfLine()
		if st != matched {
			return nil, 0, st
		}

		seg := content
		if i := bytes.IndexByte(seg, '#'); i >= 0 {
			seg = seg[:i]
		}
		seg = bytes.TrimRight(seg, " \t")

		cont := false
		if n := len(seg); n > 0 && seg[n-1] == '\\' {
			cont = true
			seg = bytes.TrimRight(seg[:n-1], " \t")
		}
		if !first {
			seg = bytes.TrimLeft(seg, " \t")
		}
		if len(seg) > 0 {
			if len(body) > 0 {
				body = append(body, ' ')
			}
			body = append(body, seg...)
		}

		if st := in.terminator(); st != matched {
			return nil, 0, st
		}
		if !cont || in.empty() && in.final {
			break
		}
		if in.empty() {
			return nil, 0, incomplete
		}
		first = false
	}
	return Generic{Keyword: string(kw), Body: string(body)}, in.pos, matched
}

// Captures a whole line no other recognizer matched, terminator included in
// the consumed count but excluded from the raw text.
func matchFallback(in cursor) (Instruction, int, status) {
	raw, st := in.restOfLine()
	if st != matched {
		return nil, 0, st
	}
	if st := in.terminator(); st != matched {
		return nil, 0, st
	}
	return Unparsed{Raw: string(raw)}, in.pos, matched
}
