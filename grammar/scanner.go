package grammar

import (
	"fmt"

	"solparse/token"
)

// SyntaxError is a recoverable lexical or structural error. Line is
// one-based, Column zero-based, both pointing at the offending token.
type SyntaxError struct {
	Message string
	Line    int
	Column  int
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("%s (%d:%d)", e.Message, e.Line, e.Column)
}

// pragma payload scanning state. After `pragma <name>` everything up to
// the closing semicolon is tokenized as VERSION / VERSION_OP payload
// tokens instead of ordinary operators and numbers, so constraint
// strings like `^0.8.0 <0.9.0` survive unmangled.
type pragmaState int

const (
	pragmaOff pragmaState = iota
	pragmaName
	pragmaValue
)

type Scanner struct {
	source      string
	tokens      []*token.Token
	start       int
	current     int
	line        int
	startLine   int
	column      int
	startColumn int
	pragma      pragmaState
	errors      []SyntaxError
}

func NewScanner(source string) *Scanner {
	return &Scanner{
		source: source,
		line:   1,
	}
}

// ScanTokens scans the whole source and returns the token slice,
// terminated by an EOF token. Errors never abort the scan; they are
// collected and available through Errors.
func (s *Scanner) ScanTokens() []*token.Token {
	for !s.isAtEnd() {
		s.start = s.current
		s.startLine = s.line
		s.startColumn = s.column
		s.scanToken()
	}
	s.tokens = append(s.tokens, &token.Token{
		Type: token.EOF,
		Pos:  token.Position{Offset: s.current, Line: s.line, Column: s.column},
	})
	return s.tokens
}

func (s *Scanner) Errors() []SyntaxError {
	return s.errors
}

func (s *Scanner) scanToken() {
	c := s.advance()

	// Whitespace is never significant, not even inside pragma payloads.
	switch c {
	case ' ', '\r', '\t', '\n':
		return
	}

	if s.pragma == pragmaValue {
		s.scanPragmaToken(c)
		return
	}

	switch c {
	// Simple single-character tokens
	case '(', ')', '{', '}', '[', ']', ';', ',', '?':
		s.addToken(token.PUNCTUATOR)

	// Operators with potential multi-character variants
	case '+':
		s.scanPlusOperator()
	case '-':
		s.scanMinusOperator()
	case '*':
		s.scanStarOperator()
	case '%':
		s.matchNext('=')
		s.addToken(token.PUNCTUATOR)
	case '=':
		s.scanEqualOperator()
	case '!':
		s.matchNext('=')
		s.addToken(token.PUNCTUATOR)
	case '<':
		s.scanLessOperator()
	case '>':
		s.scanGreaterOperator()
	case '&':
		s.scanAmpersandOperator()
	case '|':
		s.scanPipeOperator()
	case '^':
		s.matchNext('=')
		s.addToken(token.PUNCTUATOR)
	case '~':
		s.addToken(token.PUNCTUATOR)
	case ':':
		s.matchNext('=')
		s.addToken(token.PUNCTUATOR)
	case '.':
		if isDigit(s.peek()) {
			s.scanNumber()
		} else {
			s.addToken(token.PUNCTUATOR)
		}
	case '/':
		s.scanSlashOperator()

	// String literals
	case '"', '\'':
		s.scanString(c)

	default:
		s.scanDefault(c)
	}
}

// Operator scanning methods.

func (s *Scanner) scanPlusOperator() {
	if !s.matchNext('+') {
		s.matchNext('=')
	}
	s.addToken(token.PUNCTUATOR)
}

func (s *Scanner) scanMinusOperator() {
	if !s.matchNext('-') && !s.matchNext('=') {
		s.matchNext('>')
	}
	s.addToken(token.PUNCTUATOR)
}

func (s *Scanner) scanStarOperator() {
	if !s.matchNext('*') {
		s.matchNext('=')
	}
	s.addToken(token.PUNCTUATOR)
}

func (s *Scanner) scanEqualOperator() {
	// `=:` is the legacy assembly stack assignment, `=>` the mapping
	// arrow; both must win over a bare `=`.
	if !s.matchNext('=') && !s.matchNext('>') {
		s.matchNext(':')
	}
	s.addToken(token.PUNCTUATOR)
}

func (s *Scanner) scanLessOperator() {
	// <, <=, <<, <<=
	s.matchNext('<')
	s.matchNext('=')
	s.addToken(token.PUNCTUATOR)
}

func (s *Scanner) scanGreaterOperator() {
	if s.matchNext('>') {
		if s.matchNext('>') {
			s.matchNext('=') // >>>=
		} else {
			s.matchNext('=') // >>=
		}
	} else {
		s.matchNext('=')
	}
	s.addToken(token.PUNCTUATOR)
}

func (s *Scanner) scanAmpersandOperator() {
	if !s.matchNext('&') {
		s.matchNext('=')
	}
	s.addToken(token.PUNCTUATOR)
}

func (s *Scanner) scanPipeOperator() {
	if !s.matchNext('|') {
		s.matchNext('=')
	}
	s.addToken(token.PUNCTUATOR)
}

func (s *Scanner) scanSlashOperator() {
	if s.matchNext('/') {
		s.scanLineComment()
	} else if s.matchNext('*') {
		s.scanBlockComment()
	} else {
		s.matchNext('=')
		s.addToken(token.PUNCTUATOR)
	}
}

func (s *Scanner) scanDefault(c byte) {
	if isDigit(c) {
		s.scanNumber()
	} else if isIdentStart(c) {
		s.scanIdentifier()
	} else {
		s.reportError(fmt.Sprintf("unexpected character %q", c))
	}
}

// Comments are trivia: they never become tokens, but line counting
// still has to see every byte they cover.

func (s *Scanner) scanLineComment() {
	for s.peek() != '\n' && !s.isAtEnd() {
		s.advance()
	}
}

func (s *Scanner) scanBlockComment() {
	for !s.isAtEnd() {
		if s.peek() == '*' && s.peekNext() == '/' {
			s.advance()
			s.advance()
			return
		}
		s.advance()
	}
	s.reportError("unterminated block comment")
}

func (s *Scanner) scanIdentifier() {
	for isIdentPart(s.peek()) {
		s.advance()
	}
	text := s.source[s.start:s.current]

	// `hex"..."` and `unicode"..."` are single literal tokens; the
	// prefix is part of the token text.
	if quote := s.peek(); (quote == '"' || quote == '\'') && (text == "hex" || text == "unicode") {
		s.advance()
		s.scanStringBody(quote)
		if text == "hex" {
			s.addToken(token.HEX)
		} else {
			s.addToken(token.STRING)
		}
		return
	}

	s.addToken(lookupIdentifier(text))
}

func (s *Scanner) scanNumber() {
	first := s.source[s.start]
	if first == '0' && (s.peek() == 'x' || s.peek() == 'X') {
		s.advance()
		if !isHexDigit(s.peek()) && s.peek() != '_' {
			s.reportError("expected hex digits after 0x")
			s.addToken(token.ILLEGAL)
			return
		}
		for isHexDigit(s.peek()) || s.peek() == '_' {
			s.advance()
		}
		s.addToken(token.HEX_NUMBER)
		return
	}

	for isDigit(s.peek()) || s.peek() == '_' {
		s.advance()
	}
	if first != '.' && s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) || s.peek() == '_' {
			s.advance()
		}
	}
	if s.peek() == 'e' || s.peek() == 'E' {
		next := s.peekNext()
		if isDigit(next) {
			s.advance()
		} else if (next == '+' || next == '-') && s.current+2 < len(s.source) && isDigit(s.source[s.current+2]) {
			s.advance()
			s.advance()
		}
		for isDigit(s.peek()) || s.peek() == '_' {
			s.advance()
		}
	}
	s.addToken(token.NUMBER)
}

func (s *Scanner) scanString(quote byte) {
	s.scanStringBody(quote)
	s.addToken(token.STRING)
}

// scanStringBody consumes up to and including the closing quote. The
// opening quote has already been consumed. Solidity string literals
// cannot span lines, so an unescaped newline ends the literal with an
// error and leaves a best-effort token behind.
func (s *Scanner) scanStringBody(quote byte) {
	for !s.isAtEnd() {
		c := s.peek()
		if c == quote {
			s.advance()
			return
		}
		if c == '\n' {
			break
		}
		if c == '\\' && s.current+1 < len(s.source) {
			s.advance()
		}
		s.advance()
	}
	s.reportError("unterminated string literal")
}

// Pragma payload tokens: version operators, constraint literals and the
// `||` alternative separator. Anything else that can legally appear in
// a pragma value (string literals, plain words) is scanned normally.

func (s *Scanner) scanPragmaToken(c byte) {
	switch c {
	case ';':
		s.addToken(token.PUNCTUATOR)
	case '"', '\'':
		s.scanString(c)
	case '^', '~':
		s.addToken(token.VERSION_OP)
	case '<', '>', '=', '!':
		s.matchNext('=')
		s.addToken(token.VERSION_OP)
	case '|':
		if s.matchNext('|') {
			s.addToken(token.VERSION_OP)
		} else {
			s.reportError("unexpected character '|' in pragma directive")
		}
	default:
		if !isVersionChar(c) {
			s.reportError(fmt.Sprintf("unexpected character %q in pragma directive", c))
			return
		}
		for isVersionChar(s.peek()) {
			s.advance()
		}
		s.addToken(token.VERSION)
	}
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	if c == '\n' {
		s.line++
		s.column = 0
	} else if !isContinuation(c) {
		// Columns count runes, offsets count bytes.
		s.column++
	}
	return c
}

func (s *Scanner) matchNext(expected byte) bool {
	if s.isAtEnd() || s.source[s.current] != expected {
		return false
	}
	s.advance()
	return true
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *Scanner) addToken(tokenType token.Type) {
	value := s.source[s.start:s.current]
	s.tokens = append(s.tokens, &token.Token{
		Type:  tokenType,
		Value: value,
		Pos:   token.Position{Offset: s.start, Line: s.startLine, Column: s.startColumn},
	})
	s.trackPragma(tokenType, value)
}

// trackPragma drives the pragma payload mode: `pragma` opens it, the
// directive name arms it, `;` closes it.
func (s *Scanner) trackPragma(tokenType token.Type, value string) {
	if value == ";" {
		s.pragma = pragmaOff
		return
	}
	switch s.pragma {
	case pragmaOff:
		if tokenType == token.KEYWORD && value == "pragma" {
			s.pragma = pragmaName
		}
	case pragmaName:
		if tokenType == token.IDENT || tokenType == token.KEYWORD {
			s.pragma = pragmaValue
		}
	}
}

func (s *Scanner) reportError(message string) {
	s.errors = append(s.errors, SyntaxError{
		Message: message,
		Line:    s.startLine,
		Column:  s.startColumn,
	})
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

// Helper functions.

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') ||
		('a' <= c && c <= 'f') ||
		('A' <= c && c <= 'F')
}

func isIdentStart(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_' || c == '$'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isVersionChar(c byte) bool {
	return isIdentPart(c) || c == '.' || c == '*' || c == '+' || c == '-'
}

func isContinuation(c byte) bool {
	return c&0xC0 == 0x80
}

func lookupIdentifier(text string) token.Type {
	if text == "true" || text == "false" {
		return token.BOOL
	}
	if isKeyword(text) {
		return token.KEYWORD
	}
	return token.IDENT
}
