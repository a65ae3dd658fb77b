package dockerfile

// One structural unit recognized from the input stream.
//
// The concrete types are [From], [Generic], and [Unparsed]. The interface is
// sealed; consumers dispatch with a type switch.
type Instruction interface {
	instruction()
}

// A FROM instruction: a base-image reference and an optional stage name
// bound via an AS clause.
type From struct {
	Source string // Image reference, byte-exact as written.
	Alias  string // Stage name from the AS clause, or empty.
}

// Any other instruction, captured as an opaque keyword and body.
//
// The body is the continuation-joined or heredoc-expanded text following the
// keyword, with trailing comments removed. No semantic validation is applied.
type Generic struct {
	Keyword string
	Body    string
}

// A line no instruction form matched, captured verbatim so that no input is
// silently dropped. Malformed or unknown directives surface here instead of
// failing the parse.
type Unparsed struct {
	Raw string
}

func (From) instruction()     {}
func (Generic) instruction()  {}
func (Unparsed) instruction() {}
