package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"solparse/parser"
	"solparse/token"
)

// SemanticTokenTypes is the legend advertised at initialize time;
// token type indices below refer into this slice.
var SemanticTokenTypes = []string{
	"keyword",
	"variable",
	"number",
	"string",
	"operator",
}

// SemanticTokenModifiers is advertised but currently unused: scanner
// tokens carry no declaration/readonly information.
var SemanticTokenModifiers = []string{
	"declaration",
	"readonly",
}

const (
	tokenKeyword = iota
	tokenVariable
	tokenNumber
	tokenString
	tokenOperator
)

// SemanticToken is one decoded entry. Line and StartChar are 0-based,
// per the wire format.
type SemanticToken struct {
	Line      uint32
	StartChar uint32
	Length    uint32
	TokenType int
}

// TextDocumentSemanticTokensFull highlights the whole document from
// the scanner's token stream. Unknown documents yield empty data.
func (h *Handler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	h.mu.RLock()
	text, ok := h.docs[params.TextDocument.URI]
	h.mu.RUnlock()
	if !ok {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}

	return &protocol.SemanticTokens{Data: encodeSemanticTokens(collectSemanticTokens(text))}, nil
}

// collectSemanticTokens classifies every scanned token. The scan is
// always tolerant here: a half-typed document should still highlight.
func collectSemanticTokens(text string) []SemanticToken {
	scanned, err := parser.Tokenize(text, parser.Options{Tolerant: true, Loc: true})
	if err != nil {
		return nil
	}

	var tokens []SemanticToken
	for _, t := range scanned {
		kind, ok := classifyToken(token.Type(t.Type))
		if !ok || t.Loc == nil {
			continue
		}
		tokens = append(tokens, SemanticToken{
			Line:      uint32(t.Loc.Start.Line - 1),
			StartChar: uint32(t.Loc.Start.Column),
			Length:    uint32(len(t.Value)),
			TokenType: kind,
		})
	}
	return tokens
}

func classifyToken(typ token.Type) (int, bool) {
	switch typ {
	case token.KEYWORD, token.BOOL:
		return tokenKeyword, true
	case token.IDENT:
		return tokenVariable, true
	case token.NUMBER, token.HEX_NUMBER, token.VERSION:
		return tokenNumber, true
	case token.STRING, token.HEX:
		return tokenString, true
	case token.PUNCTUATOR, token.VERSION_OP:
		return tokenOperator, true
	default:
		return 0, false
	}
}

// encodeSemanticTokens packs tokens into the LSP delta-encoded wire
// format: each entry is relative to the previous token's line and,
// within a line, its start character.
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)

	var prevLine, prevStart uint32
	for _, t := range tokens {
		deltaLine := t.Line - prevLine
		deltaStart := t.StartChar
		if deltaLine == 0 {
			deltaStart = t.StartChar - prevStart
		}
		data = append(data, deltaLine, deltaStart, t.Length, uint32(t.TokenType), 0)
		prevLine = t.Line
		prevStart = t.StartChar
	}

	return data
}
