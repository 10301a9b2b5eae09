package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"solparse/internal/lsp"
)

const lsName = "solparse"

var handler protocol.Handler

func main() {
	commonlog.Configure(1, nil)

	solHandler := lsp.NewHandler()

	handler = protocol.Handler{
		Initialize:                     solHandler.Initialize,
		Initialized:                    solHandler.Initialized,
		Shutdown:                       solHandler.Shutdown,
		SetTrace:                       solHandler.SetTrace,
		TextDocumentDidOpen:            solHandler.TextDocumentDidOpen,
		TextDocumentDidChange:          solHandler.TextDocumentDidChange,
		TextDocumentDidClose:           solHandler.TextDocumentDidClose,
		TextDocumentSemanticTokensFull: solHandler.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Println("Starting solparse LSP server...")

	if err := s.RunStdio(); err != nil {
		log.Println("Error starting solparse LSP server:", err)
		os.Exit(1)
	}
}
