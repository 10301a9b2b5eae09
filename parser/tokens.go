package parser

import (
	"solparse/ast"
	"solparse/grammar"
	"solparse/token"
)

// Token is one scanned token as surfaced to callers, under the same
// loc and range conventions as AST nodes.
type Token struct {
	Type  string        `json:"type"`
	Value string        `json:"value,omitempty"`
	Rng   *ast.Range    `json:"range,omitempty"`
	Loc   *ast.Location `json:"loc,omitempty"`
}

// Tokenize scans src without parsing it. Strict mode fails on lexical
// errors; tolerant mode returns whatever tokens the scanner produced.
func Tokenize(src string, opts Options) ([]Token, error) {
	s := grammar.NewScanner(src)
	toks := s.ScanTokens()
	if errs := s.Errors(); len(errs) > 0 && !opts.Tolerant {
		return nil, newParserError(errs)
	}
	return describeTokens(toks, opts), nil
}

// describeTokens converts scanner tokens to the caller-facing form,
// dropping the EOF sentinel.
func describeTokens(toks []*token.Token, opts Options) []Token {
	out := make([]Token, 0, len(toks))
	for _, t := range toks {
		if t.Type == token.EOF {
			continue
		}
		desc := Token{Type: string(t.Type), Value: t.Value}
		if opts.Range {
			desc.Rng = &ast.Range{t.Pos.Offset, t.EndOffset()}
		}
		if opts.Loc {
			desc.Loc = &ast.Location{
				Start: ast.Position{Line: t.Pos.Line, Column: t.Pos.Column},
				End:   ast.Position{Line: t.Pos.Line, Column: t.Pos.Column + len(t.Value)},
			}
		}
		out = append(out, desc)
	}
	return out
}
