package parser

import (
	"encoding/json"
	"fmt"
	"os"

	"solparse/ast"
	"solparse/grammar"
)

// ParseResult bundles one parse: the reduced tree, the syntax errors
// collected along the way, and the token list when one was requested.
type ParseResult struct {
	AST    *ast.SourceUnit
	Tokens []Token
	Errors []grammar.SyntaxError
}

// HasErrors reports whether the parse collected syntax errors. A
// tolerant parse returns a tree even then.
func (r *ParseResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// MarshalJSON renders the AST, merging the token list into the root
// object when one was retained.
func (r *ParseResult) MarshalJSON() ([]byte, error) {
	if r.AST == nil {
		return []byte("null"), nil
	}
	raw, err := json.Marshal(r.AST)
	if err != nil {
		return nil, err
	}
	if len(r.Tokens) == 0 {
		return raw, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	toks, err := json.Marshal(r.Tokens)
	if err != nil {
		return nil, err
	}
	fields["tokens"] = toks
	return json.Marshal(fields)
}

// Parse reduces Solidity source text to a typed AST. With Tolerant
// set, syntax errors are attached to the SourceUnit and a tree is
// still returned; otherwise they become a *ParserError. A
// *ReductionError reports an unreducible parse tree and is returned
// regardless of the tolerance setting.
func Parse(src string, opts Options) (*ParseResult, error) {
	unit, toks, errs := grammar.Build(src)

	root, err := reduceUnit(unit, opts)
	if err != nil {
		return nil, err
	}

	if !opts.Tolerant && len(errs) > 0 {
		return nil, newParserError(errs)
	}

	if len(errs) > 0 {
		root.Errors = make([]ast.Diagnostic, len(errs))
		for i, e := range errs {
			root.Errors[i] = ast.Diagnostic{Message: e.Message, Line: e.Line, Column: e.Column}
		}
	}

	result := &ParseResult{AST: root, Errors: errs}
	if opts.Tokens {
		result.Tokens = describeTokens(toks, opts)
	}
	return result, nil
}

// ParseFile reads path and parses its contents.
func ParseFile(path string, opts Options) (*ParseResult, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(src), opts)
}

// reduceUnit runs the tree reduction behind a recover boundary. The
// reducer reports inconsistencies by error return, but a tree shape it
// never anticipated could still fault a lookup; any such panic comes
// back as a *ReductionError rather than unwinding into the caller.
func reduceUnit(unit *grammar.Node, opts Options) (root *ast.SourceUnit, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if re, ok := rec.(*ReductionError); ok {
				err = re
				return
			}
			err = &ReductionError{Message: fmt.Sprintf("internal error: %v", rec)}
		}
	}()
	return newReducer(opts).reduceSourceUnit(unit)
}
