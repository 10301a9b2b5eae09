// Package lsp implements the language-server handlers backing
// solparse-lsp: tolerant reparse on every document change, published
// as diagnostics, plus scanner-token semantic highlighting.
package lsp

import (
	"fmt"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"solparse/parser"
)

// Handler implements the LSP methods for Solidity documents. Document
// text is kept in memory keyed by URI; every open/change reparses the
// document tolerantly and republishes its diagnostics.
type Handler struct {
	mu   sync.RWMutex
	docs map[protocol.DocumentUri]string
	opts parser.Options
}

func NewHandler() *Handler {
	opts := parser.DefaultOptions()
	opts.Tolerant = true
	return &Handler{
		docs: make(map[protocol.DocumentUri]string),
		opts: opts,
	}
}

// Initialize advertises the server's capabilities: full-document sync
// and full-document semantic tokens.
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// TextDocumentDidOpen stores the opened document and publishes its
// diagnostics.
func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	diagnostics := h.UpdateDocument(params.TextDocument.URI, params.TextDocument.Text)
	publishDiagnostics(ctx, params.TextDocument.URI, diagnostics)
	return nil
}

// TextDocumentDidChange applies a full-sync content change and
// republishes diagnostics. Incremental events are rejected; the
// server only advertises full sync.
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	for _, change := range params.ContentChanges {
		whole, ok := change.(protocol.TextDocumentContentChangeEventWhole)
		if !ok {
			return fmt.Errorf("unsupported incremental change for %s", params.TextDocument.URI)
		}
		diagnostics := h.UpdateDocument(params.TextDocument.URI, whole.Text)
		publishDiagnostics(ctx, params.TextDocument.URI, diagnostics)
	}
	return nil
}

// TextDocumentDidClose drops the document from the store and clears
// its diagnostics on the client.
func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	h.mu.Lock()
	delete(h.docs, params.TextDocument.URI)
	h.mu.Unlock()

	publishDiagnostics(ctx, params.TextDocument.URI, []protocol.Diagnostic{})
	return nil
}

// UpdateDocument replaces the stored text for uri and returns the
// diagnostics of a fresh tolerant parse.
func (h *Handler) UpdateDocument(uri protocol.DocumentUri, text string) []protocol.Diagnostic {
	h.mu.Lock()
	h.docs[uri] = text
	h.mu.Unlock()

	return h.diagnose(text)
}

// diagnose runs one tolerant parse and converts its findings: syntax
// errors as errors, unparseable pragma constraints as warnings. A
// reduction failure surfaces as a single diagnostic at its position
// rather than taking the server down.
func (h *Handler) diagnose(text string) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	result, err := parser.Parse(text, h.opts)
	if err != nil {
		if re, ok := err.(*parser.ReductionError); ok {
			return append(diagnostics, reductionDiagnostic(re))
		}
		return diagnostics
	}

	diagnostics = append(diagnostics, syntaxDiagnostics(result.Errors)...)
	diagnostics = append(diagnostics, pragmaDiagnostics(result.AST)...)
	return diagnostics
}

func publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	if ctx == nil {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
