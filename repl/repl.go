// Package repl implements the interactive AST explorer behind
// `solparse repl`: type a Solidity snippet, then inspect its AST,
// parse tree, tokens and diagnostics.
package repl

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"solparse/grammar"
	"solparse/parser"
)

const (
	historyFile = ".solparse_history"
	promptMain  = "sol> "
	promptCont  = "...> "
	banner      = "solparse REPL. Ctrl+C cancels input, Ctrl+D exits. Type :help for commands."
	helpText    = `
REPL commands:
  :help            Show this help
  :quit / :exit    Exit the REPL
  :load <file>     Load a file as the current snippet
  :ast             Print the current snippet's AST as JSON
  :cst             Print the current snippet's parse tree
  :tokens          Print the current snippet's token list
  :errors          Print the current snippet's syntax errors

Anything else is parsed as Solidity source. Input continues across
lines until every bracket is closed.
`
)

// session holds the REPL's only state: the last accepted snippet and
// its parse.
type session struct {
	source string
	result *parser.ParseResult
	opts   parser.Options
}

// Run drives the interactive loop until EOF or :quit.
func Run(opts parser.Options) error {
	fmt.Println(banner)

	opts.Tolerant = true
	opts.Tokens = true

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	// Load history (best-effort).
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	s := &session{opts: opts}

	for {
		code, ok := readSnippet(ln)
		if !ok {
			fmt.Println()
			break
		}
		if strings.TrimSpace(code) == "" {
			continue
		}
		ln.AppendHistory(code)

		if strings.HasPrefix(strings.TrimSpace(code), ":") {
			if quit := s.command(strings.TrimSpace(code)); quit {
				break
			}
			continue
		}

		s.eval(code)
	}

	// Save history (best-effort).
	if f, err := os.Create(histPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
	return nil
}

// readSnippet accumulates lines until every bracket opened in the
// input has been closed, so multi-line contracts paste naturally.
func readSnippet(ln *liner.State) (string, bool) {
	var lines []string
	prompt := promptMain

	for {
		line, err := ln.Prompt(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return "", true // Ctrl+C drops the pending input
			}
			return "", false // EOF
		}
		lines = append(lines, line)
		code := strings.Join(lines, "\n")
		if bracketDepth(code) <= 0 {
			return code, true
		}
		prompt = promptCont
	}
}

// bracketDepth counts unclosed brackets using the real scanner, so
// braces inside strings and comments don't miscount.
func bracketDepth(src string) int {
	depth := 0
	for _, t := range grammar.NewScanner(src).ScanTokens() {
		switch t.Value {
		case "{", "(", "[":
			depth++
		case "}", ")", "]":
			depth--
		}
	}
	return depth
}

// eval parses a snippet and reports a one-line summary; the result
// stays around for the inspection commands.
func (s *session) eval(code string) {
	result, err := parser.Parse(code, s.opts)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	s.source = code
	s.result = result

	if result.HasErrors() {
		fmt.Printf("parsed with %d syntax error(s); see :errors\n", len(result.Errors))
		return
	}
	fmt.Printf("ok: %d top-level declaration(s)\n", len(result.AST.Children))
}

// command dispatches a ':'-prefixed REPL command. It returns true
// when the REPL should exit.
func (s *session) command(code string) bool {
	fields := strings.Fields(code)
	switch fields[0] {
	case ":quit", ":exit":
		return true
	case ":help":
		fmt.Print(helpText)
	case ":load":
		if len(fields) != 2 {
			fmt.Println("usage: :load <file>")
			break
		}
		src, err := os.ReadFile(fields[1])
		if err != nil {
			fmt.Printf("cannot read %s: %v\n", fields[1], err)
			break
		}
		s.eval(string(src))
	case ":ast":
		if s.result == nil {
			fmt.Println("nothing parsed yet")
			break
		}
		out, err := json.MarshalIndent(s.result.AST, "", "  ")
		if err != nil {
			fmt.Printf("error: %v\n", err)
			break
		}
		fmt.Println(string(out))
	case ":cst":
		if s.source == "" {
			fmt.Println("nothing parsed yet")
			break
		}
		tree, _, _ := grammar.Build(s.source)
		fmt.Println(tree.String())
	case ":tokens":
		if s.result == nil {
			fmt.Println("nothing parsed yet")
			break
		}
		for _, t := range s.result.Tokens {
			fmt.Printf("%-16s %q\n", t.Type, t.Value)
		}
	case ":errors":
		if s.result == nil {
			fmt.Println("nothing parsed yet")
			break
		}
		if len(s.result.Errors) == 0 {
			fmt.Println("no syntax errors")
			break
		}
		for _, e := range s.result.Errors {
			fmt.Println(e.Error())
		}
	default:
		fmt.Printf("unknown command %s (try :help)\n", fields[0])
	}
	return false
}
