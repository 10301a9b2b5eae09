package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestUpdateDocumentCleanSource(t *testing.T) {
	handler := NewHandler()

	diagnostics := handler.UpdateDocument("file:///a.sol", `
pragma solidity ^0.8.0;
contract Foo {
    uint256 a;
}
`)

	assert.Empty(t, diagnostics)
}

func TestUpdateDocumentSyntaxError(t *testing.T) {
	handler := NewHandler()

	diagnostics := handler.UpdateDocument("file:///a.sol", `contract Foo {
    string s = "unterminated;
}
`)

	require.NotEmpty(t, diagnostics)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diagnostics[0].Severity)
	assert.Equal(t, uint32(1), diagnostics[0].Range.Start.Line)
	assert.Equal(t, "solparse", *diagnostics[0].Source)
}

func TestUpdateDocumentBadPragmaConstraint(t *testing.T) {
	handler := NewHandler()

	diagnostics := handler.UpdateDocument("file:///a.sol", "pragma solidity not-a-version;\ncontract C {}\n")

	require.Len(t, diagnostics, 1)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *diagnostics[0].Severity)
	assert.Contains(t, diagnostics[0].Message, "version constraint")
}

func TestSemanticTokensFull(t *testing.T) {
	handler := NewHandler()
	uri := protocol.DocumentUri("file:///a.sol")
	handler.UpdateDocument(uri, "contract C { uint256 a = 1; }")

	tokens, err := handler.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	require.NotNil(t, tokens)
	require.NotEmpty(t, tokens.Data)

	// First token is the contract keyword at 0:0.
	assert.Equal(t, uint32(0), tokens.Data[0])
	assert.Equal(t, uint32(0), tokens.Data[1])
	assert.Equal(t, uint32(len("contract")), tokens.Data[2])
	assert.Equal(t, uint32(tokenKeyword), tokens.Data[3])
}

func TestSemanticTokensUnknownDocument(t *testing.T) {
	handler := NewHandler()

	tokens, err := handler.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///missing.sol"},
	})
	require.NoError(t, err)
	assert.Empty(t, tokens.Data)
}

func TestEncodeSemanticTokensDeltas(t *testing.T) {
	data := encodeSemanticTokens([]SemanticToken{
		{Line: 0, StartChar: 0, Length: 8, TokenType: tokenKeyword},
		{Line: 0, StartChar: 9, Length: 1, TokenType: tokenVariable},
		{Line: 2, StartChar: 4, Length: 7, TokenType: tokenNumber},
	})

	require.Len(t, data, 15)
	// Same line: start is relative to the previous token.
	assert.Equal(t, []uint32{0, 9, 1, tokenVariable, 0}, data[5:10])
	// New line: start is absolute again.
	assert.Equal(t, []uint32{2, 4, 7, tokenNumber, 0}, data[10:15])
}
