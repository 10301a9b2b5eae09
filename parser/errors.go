package parser

import (
	"fmt"

	"solparse/grammar"
)

// ParserError is returned by strict parses whose input contained
// syntax errors. The message repeats the first collected error; the
// full list, in source order, is carried alongside.
type ParserError struct {
	Message string
	Errors  []grammar.SyntaxError
}

func newParserError(errs []grammar.SyntaxError) *ParserError {
	return &ParserError{
		Message: errs[0].Error(),
		Errors:  errs,
	}
}

func (e *ParserError) Error() string {
	return e.Message
}

// ReductionError reports that the parse tree could not be reduced to
// an AST: an expression shape outside the dispatch table, a production
// the reducer does not know, a forbidden catch-clause identifier, or
// reduction depth exhaustion. It is raised regardless of the
// tolerance setting, since it marks an internal inconsistency rather
// than bad input.
type ReductionError struct {
	Message string
	Line    int
	Column  int
}

func (e *ReductionError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s (%d:%d)", e.Message, e.Line, e.Column)
	}
	return e.Message
}

// reductionErr builds a ReductionError positioned at the start of the
// offending parse-tree node.
func reductionErr(cst *grammar.Node, format string, args ...any) *ReductionError {
	e := &ReductionError{Message: fmt.Sprintf(format, args...)}
	if tok := cst.StartToken(); tok != nil {
		e.Line = tok.Pos.Line
		e.Column = tok.Pos.Column
	}
	return e
}
