package grammar

import (
	"sort"

	"solparse/token"
)

// Expression nesting the builder tolerates before giving up on a
// subexpression. Deep enough that the reducer's own depth limit is the
// one callers actually hit.
const maxExprNesting = 8192

// Build scans src and builds the parse tree for a full source unit.
// Errors never abort the build: the returned tree is the best effort,
// and the error slice carries everything the scanner and the builder
// recorded, ordered by position.
func Build(src string) (*Node, []*token.Token, []SyntaxError) {
	scanner := NewScanner(src)
	tokens := scanner.ScanTokens()
	unit, buildErrs := BuildTokens(tokens)

	errs := append(scanner.Errors(), buildErrs...)
	sort.SliceStable(errs, func(i, j int) bool {
		if errs[i].Line != errs[j].Line {
			return errs[i].Line < errs[j].Line
		}
		return errs[i].Column < errs[j].Column
	})
	return unit, tokens, errs
}

// BuildTokens builds the parse tree for a pre-scanned token slice. The
// slice must be EOF-terminated, as ScanTokens leaves it.
func BuildTokens(tokens []*token.Token) (*Node, []SyntaxError) {
	b := newBuilder(tokens)
	unit := b.buildSourceUnit()
	return unit, b.errors
}

type builder struct {
	tokens []*token.Token
	pos    int
	errors []SyntaxError
	depth  int
}

func newBuilder(tokens []*token.Token) *builder {
	if len(tokens) == 0 {
		tokens = []*token.Token{{Type: token.EOF, Pos: token.Position{Line: 1}}}
	}
	return &builder{tokens: tokens}
}

// --- token cursor ---

func (b *builder) peek() *token.Token {
	return b.tokens[b.pos]
}

func (b *builder) peekAt(offset int) *token.Token {
	i := b.pos + offset
	if i >= len(b.tokens) {
		return b.tokens[len(b.tokens)-1]
	}
	return b.tokens[i]
}

func (b *builder) previous() *token.Token {
	if b.pos == 0 {
		return b.tokens[0]
	}
	return b.tokens[b.pos-1]
}

func (b *builder) advance() *token.Token {
	t := b.peek()
	if t.Type != token.EOF {
		b.pos++
	}
	return t
}

func (b *builder) isAtEnd() bool {
	return b.peek().Type == token.EOF
}

func (b *builder) check(value string) bool {
	t := b.peek()
	return t.Type != token.EOF && t.Value == value
}

func (b *builder) checkType(typ token.Type) bool {
	return b.peek().Type == typ
}

func (b *builder) checkAny(values ...string) bool {
	for _, v := range values {
		if b.check(v) {
			return true
		}
	}
	return false
}

// checkIdentifier covers plain identifiers and the keywords the
// grammar re-admits by position (`from`, `error`, `global`, ...).
func (b *builder) checkIdentifier() bool {
	return b.isIdentifierAt(0)
}

func (b *builder) isIdentifierAt(offset int) bool {
	t := b.peekAt(offset)
	if t.Type == token.IDENT {
		return true
	}
	return t.Type == token.KEYWORD && identifierKeywords[t.Value]
}

// term consumes the current token and wraps it as a terminal node.
func (b *builder) term() *Node {
	return NewTerminal(b.advance())
}

// expect consumes a terminal with the given text. When the token is
// missing it records the error and synthesizes the terminal at the
// current position, so downstream child shapes stay intact.
func (b *builder) expect(value string, message string) *Node {
	if b.check(value) {
		return b.term()
	}
	b.errorAtCurrent(message)
	return NewTerminal(&token.Token{Type: token.PUNCTUATOR, Value: value, Pos: b.peek().Pos})
}

func (b *builder) errorAtCurrent(message string) {
	t := b.peek()
	b.errors = append(b.errors, SyntaxError{Message: message, Line: t.Pos.Line, Column: t.Pos.Column})
}

// mark and restore implement bounded backtracking for the few places
// the grammar needs more than one token of lookahead (declaration
// versus expression statements). restore also rolls back any errors
// the speculative parse recorded.
func (b *builder) mark() (int, int) {
	return b.pos, len(b.errors)
}

func (b *builder) restore(pos, errs int) {
	b.pos = pos
	b.errors = b.errors[:errs]
}

func (b *builder) failedSince(errs int) bool {
	return len(b.errors) > errs
}

// synchronize skips ahead to a statement boundary after an error.
func (b *builder) synchronize() {
	for !b.isAtEnd() {
		if b.previous().Value == ";" {
			return
		}
		switch b.peek().Value {
		case "}", "{", "contract", "interface", "library", "function", "modifier",
			"struct", "enum", "event", "if", "for", "while", "do", "return", "emit",
			"pragma", "import", "using":
			return
		}
		b.advance()
	}
}

// --- source unit ---

func (b *builder) buildSourceUnit() *Node {
	unit := NewNode(RuleSourceUnit)
	for !b.isAtEnd() {
		start := b.pos
		unit.Add(b.buildTopLevelDeclaration())
		if b.pos == start {
			// No progress: drop the offending token and carry on.
			b.advance()
		}
	}
	// The EOF terminal is part of the tree; reduction skips it.
	unit.Add(b.term())
	return unit
}

func (b *builder) buildTopLevelDeclaration() *Node {
	switch {
	case b.check("pragma"):
		return b.buildPragmaDirective()
	case b.check("import"):
		return b.buildImportDirective()
	case b.checkAny("abstract", "contract", "interface", "library"):
		return b.buildContractDefinition()
	case b.check("struct"):
		return b.buildStructDefinition()
	case b.check("enum"):
		return b.buildEnumDefinition()
	case b.checkAny("function", "constructor", "fallback", "receive"):
		return b.buildFunctionDefinition()
	case b.check("using"):
		return b.buildUsingForDeclaration()
	case b.check("error") && b.isIdentifierAt(1) && b.peekAt(2).Value == "(":
		return b.buildCustomErrorDefinition()
	case b.check("type") && b.isIdentifierAt(1) && b.peekAt(2).Value == "is":
		return b.buildTypeDefinition()
	case b.canStartTypeName():
		return b.buildFileLevelConstant()
	default:
		b.errorAtCurrent("expected pragma, import or definition")
		b.synchronize()
		return nil
	}
}

func (b *builder) canStartTypeName() bool {
	t := b.peek()
	if t.Type == token.KEYWORD && (isElementaryTypeName(t.Value) || t.Value == "mapping" || t.Value == "function") {
		return true
	}
	return b.checkIdentifier()
}

// --- pragma ---

func (b *builder) buildPragmaDirective() *Node {
	n := NewNode(RulePragmaDirective)
	n.Add(b.term()) // pragma

	name := NewNode(RulePragmaName)
	if b.checkType(token.IDENT) || b.checkType(token.KEYWORD) {
		name.Add(NewNode(RuleIdentifier, b.term()))
	} else {
		b.errorAtCurrent("expected pragma name")
	}
	n.Add(name)

	n.Add(b.buildPragmaValue())
	n.Add(b.expect(";", "expected ';' after pragma directive"))
	return n
}

// buildPragmaValue collects the payload tokens the scanner produced in
// pragma mode. When they all look like version constraints the value
// is shaped as a version production; otherwise the raw terminals are
// kept and the value text is their concatenation.
func (b *builder) buildPragmaValue() *Node {
	value := NewNode(RulePragmaValue)

	var payload []*token.Token
	for !b.isAtEnd() && !b.check(";") && b.pragmaPayloadToken() {
		payload = append(payload, b.advance())
	}

	if len(payload) == 0 {
		b.errorAtCurrent("expected pragma value")
		return value
	}
	if version := buildVersion(payload); version != nil {
		value.Add(version)
		return value
	}
	for _, t := range payload {
		value.Add(NewTerminal(t))
	}
	return value
}

func (b *builder) pragmaPayloadToken() bool {
	switch b.peek().Type {
	case token.VERSION, token.VERSION_OP, token.STRING, token.NUMBER, token.IDENT:
		return true
	}
	return false
}

// buildVersion shapes `^0.8.0 <0.9.0 || 1.0.0` payloads: constraint
// nodes interleaved with `||` terminals. A nil return means the
// payload is not a version expression.
func buildVersion(payload []*token.Token) *Node {
	version := NewNode(RuleVersion)
	constraint := (*Node)(nil)
	flush := func() {
		if constraint != nil {
			version.Add(constraint)
			constraint = nil
		}
	}
	for _, t := range payload {
		switch t.Type {
		case token.VERSION_OP:
			if t.Value == "||" {
				flush()
				version.Add(NewTerminal(t))
				continue
			}
			flush()
			constraint = NewNode(RuleVersionConstraint, NewNode(RuleVersionOperator, NewTerminal(t)))
		case token.VERSION:
			if constraint == nil {
				constraint = NewNode(RuleVersionConstraint)
			}
			constraint.Add(NewTerminal(t))
			flush()
		default:
			return nil
		}
	}
	flush()
	if version.Count() == 0 {
		return nil
	}
	return version
}

// --- imports ---

func (b *builder) buildImportDirective() *Node {
	n := NewNode(RuleImportDirective)
	n.Add(b.term()) // import

	switch {
	case b.checkType(token.STRING):
		n.Add(b.buildImportPath())
		if b.check("as") {
			n.Add(b.term())
			n.Add(b.buildIdentifier())
		}

	case b.check("{"):
		n.Add(b.term())
		for {
			decl := NewNode(RuleImportDeclaration)
			decl.Add(b.buildIdentifier())
			if b.check("as") {
				decl.Add(b.term())
				decl.Add(b.buildIdentifier())
			}
			n.Add(decl)
			if !b.check(",") {
				break
			}
			n.Add(b.term())
		}
		n.Add(b.expect("}", "expected '}' to close import symbol list"))
		n.Add(b.expect("from", "expected 'from' after import symbols"))
		n.Add(b.buildImportPath())

	case b.check("*"):
		n.Add(b.term())
		if b.check("as") {
			n.Add(b.term())
			n.Add(b.buildIdentifier())
		}
		n.Add(b.expect("from", "expected 'from' after import alias"))
		n.Add(b.buildImportPath())

	default:
		n.Add(b.buildIdentifier())
		if b.check("as") {
			n.Add(b.term())
			n.Add(b.buildIdentifier())
		}
		n.Add(b.expect("from", "expected 'from' after import alias"))
		n.Add(b.buildImportPath())
	}

	n.Add(b.expect(";", "expected ';' after import directive"))
	return n
}

func (b *builder) buildImportPath() *Node {
	if b.checkType(token.STRING) {
		return NewNode(RuleImportPath, b.term())
	}
	b.errorAtCurrent("expected import path string")
	return NewNode(RuleImportPath, NewTerminal(&token.Token{Type: token.STRING, Value: `""`, Pos: b.peek().Pos}))
}

// --- contracts ---

func (b *builder) buildContractDefinition() *Node {
	n := NewNode(RuleContractDefinition)
	if b.check("abstract") {
		n.Add(b.term())
	}
	if b.checkAny("contract", "interface", "library") {
		n.Add(b.term())
	} else {
		b.errorAtCurrent("expected 'contract', 'interface' or 'library'")
		n.Add(NewTerminal(&token.Token{Type: token.KEYWORD, Value: "contract", Pos: b.peek().Pos}))
	}
	n.Add(b.buildIdentifier())

	if b.check("is") {
		n.Add(b.term())
		for {
			n.Add(b.buildInheritanceSpecifier())
			if !b.check(",") {
				break
			}
			n.Add(b.term())
		}
	}

	n.Add(b.expect("{", "expected '{' to start contract body"))
	for !b.check("}") && !b.isAtEnd() {
		start := b.pos
		n.Add(b.buildContractPart())
		if b.pos == start {
			b.advance()
		}
	}
	n.Add(b.expect("}", "expected '}' to close contract body"))
	return n
}

func (b *builder) buildInheritanceSpecifier() *Node {
	n := NewNode(RuleInheritanceSpecifier)
	n.Add(b.buildUserDefinedTypeName())
	if b.check("(") {
		n.Add(b.term())
		if !b.check(")") {
			n.Add(b.buildExpressionList())
		}
		n.Add(b.expect(")", "expected ')' to close base constructor arguments"))
	}
	return n
}

func (b *builder) buildContractPart() *Node {
	var inner *Node
	switch {
	case b.check("using"):
		inner = b.buildUsingForDeclaration()
	case b.check("struct"):
		inner = b.buildStructDefinition()
	case b.check("modifier"):
		inner = b.buildModifierDefinition()
	case b.check("function") && b.peekAt(1).Value == "(":
		// `function (` opens either a function-typed state variable
		// or an unnamed function; probe the variable form first.
		pos, errs := b.mark()
		inner = b.buildStateVariableDeclaration()
		if b.failedSince(errs) {
			b.restore(pos, errs)
			inner = b.buildFunctionDefinition()
		}
	case b.checkAny("function", "constructor", "fallback", "receive"):
		inner = b.buildFunctionDefinition()
	case b.check("event"):
		inner = b.buildEventDefinition()
	case b.check("enum"):
		inner = b.buildEnumDefinition()
	case b.check("error") && b.isIdentifierAt(1) && b.peekAt(2).Value == "(":
		inner = b.buildCustomErrorDefinition()
	case b.check("type") && b.isIdentifierAt(1) && b.peekAt(2).Value == "is":
		inner = b.buildTypeDefinition()
	default:
		inner = b.buildStateVariableDeclaration()
	}
	if inner == nil {
		return nil
	}
	return NewNode(RuleContractPart, inner)
}

func (b *builder) buildStateVariableDeclaration() *Node {
	n := NewNode(RuleStateVariableDeclaration)
	n.Add(b.buildTypeName())
	for {
		if b.checkAny("public", "internal", "private", "constant", "immutable") {
			n.Add(b.term())
			continue
		}
		if b.check("override") {
			n.Add(b.buildOverrideSpecifier())
			continue
		}
		break
	}
	n.Add(b.buildIdentifier())
	if b.check("=") {
		n.Add(b.term())
		n.Add(b.buildExpression())
	}
	n.Add(b.expect(";", "expected ';' after state variable declaration"))
	return n
}

func (b *builder) buildFileLevelConstant() *Node {
	n := NewNode(RuleFileLevelConstant)
	n.Add(b.buildTypeName())
	n.Add(b.expect("constant", "expected 'constant' in file level constant"))
	n.Add(b.buildIdentifier())
	n.Add(b.expect("=", "expected '=' in file level constant"))
	n.Add(b.buildExpression())
	n.Add(b.expect(";", "expected ';' after file level constant"))
	return n
}

func (b *builder) buildUsingForDeclaration() *Node {
	n := NewNode(RuleUsingForDeclaration)
	n.Add(b.term()) // using

	object := NewNode(RuleUsingForObject)
	if b.check("{") {
		object.Add(b.term())
		for {
			directive := NewNode(RuleUsingForObjectDirective, b.buildUserDefinedTypeName())
			if b.check("as") {
				directive.Add(b.term())
				directive.Add(b.buildUserDefinableOperator())
			}
			object.Add(directive)
			if !b.check(",") {
				break
			}
			object.Add(b.term())
		}
		object.Add(b.expect("}", "expected '}' to close using directive list"))
	} else {
		object.Add(b.buildUserDefinedTypeName())
	}
	n.Add(object)

	n.Add(b.expect("for", "expected 'for' in using declaration"))
	if b.check("*") {
		n.Add(b.term())
	} else {
		n.Add(b.buildTypeName())
	}
	if b.check("global") {
		n.Add(b.term())
	}
	n.Add(b.expect(";", "expected ';' after using declaration"))
	return n
}

var userDefinableOperators = map[string]bool{
	"|": true, "&": true, "^": true, "~": true, "+": true, "-": true,
	"*": true, "/": true, "%": true, "==": true, "!=": true,
	"<": true, ">": true, "<=": true, ">=": true,
}

func (b *builder) buildUserDefinableOperator() *Node {
	if userDefinableOperators[b.peek().Value] {
		return NewNode(RuleUserDefinableOperators, b.term())
	}
	b.errorAtCurrent("expected operator after 'as' in using directive")
	return NewNode(RuleUserDefinableOperators)
}

func (b *builder) buildStructDefinition() *Node {
	n := NewNode(RuleStructDefinition)
	n.Add(b.term()) // struct
	n.Add(b.buildIdentifier())
	n.Add(b.expect("{", "expected '{' to start struct body"))
	for !b.check("}") && !b.isAtEnd() {
		start := b.pos
		n.Add(b.buildVariableDeclaration())
		n.Add(b.expect(";", "expected ';' after struct member"))
		if b.pos == start {
			b.advance()
		}
	}
	n.Add(b.expect("}", "expected '}' to close struct body"))
	return n
}

func (b *builder) buildModifierDefinition() *Node {
	n := NewNode(RuleModifierDefinition)
	n.Add(b.term()) // modifier
	n.Add(b.buildIdentifier())
	if b.check("(") {
		n.Add(b.buildParameterList())
	}
	for {
		if b.check("virtual") {
			n.Add(b.term())
			continue
		}
		if b.check("override") {
			n.Add(b.buildOverrideSpecifier())
			continue
		}
		break
	}
	if b.check(";") {
		n.Add(b.term())
	} else {
		n.Add(b.buildBlock())
	}
	return n
}

func (b *builder) buildFunctionDefinition() *Node {
	n := NewNode(RuleFunctionDefinition)

	descriptor := NewNode(RuleFunctionDescriptor)
	descriptor.Add(b.term()) // function | constructor | fallback | receive
	if descriptor.Child(0).Text() == "function" && b.checkIdentifier() {
		descriptor.Add(b.buildIdentifier())
	}
	n.Add(descriptor)

	n.Add(b.buildParameterList())
	n.Add(b.buildModifierList())
	if b.check("returns") {
		returns := NewNode(RuleReturnParameters, b.term(), b.buildParameterList())
		n.Add(returns)
	}
	if b.check(";") {
		n.Add(b.term())
	} else {
		n.Add(b.buildBlock())
	}
	return n
}

func (b *builder) buildModifierList() *Node {
	n := NewNode(RuleModifierList)
	for {
		switch {
		case b.checkAny("external", "internal", "public", "private", "virtual"):
			n.Add(b.term())
		case b.checkAny("pure", "view", "payable", "constant"):
			n.Add(NewNode(RuleStateMutability, b.term()))
		case b.check("override"):
			n.Add(b.buildOverrideSpecifier())
		case b.checkIdentifier():
			n.Add(b.buildModifierInvocation())
		default:
			return n
		}
	}
}

func (b *builder) buildModifierInvocation() *Node {
	n := NewNode(RuleModifierInvocation)
	n.Add(b.buildIdentifier())
	if b.check("(") {
		n.Add(b.term())
		if !b.check(")") {
			n.Add(b.buildExpressionList())
		}
		n.Add(b.expect(")", "expected ')' to close modifier arguments"))
	}
	return n
}

func (b *builder) buildOverrideSpecifier() *Node {
	n := NewNode(RuleOverrideSpecifier)
	n.Add(b.term()) // override
	if b.check("(") {
		n.Add(b.term())
		for {
			n.Add(b.buildUserDefinedTypeName())
			if !b.check(",") {
				break
			}
			n.Add(b.term())
		}
		n.Add(b.expect(")", "expected ')' to close override list"))
	}
	return n
}

func (b *builder) buildEventDefinition() *Node {
	n := NewNode(RuleEventDefinition)
	n.Add(b.term()) // event
	n.Add(b.buildIdentifier())

	params := NewNode(RuleEventParameterList)
	params.Add(b.expect("(", "expected '(' after event name"))
	if !b.check(")") {
		for {
			param := NewNode(RuleEventParameter)
			param.Add(b.buildTypeName())
			if b.check("indexed") {
				param.Add(b.term())
			}
			if b.checkIdentifier() {
				param.Add(b.buildIdentifier())
			}
			params.Add(param)
			if !b.check(",") {
				break
			}
			params.Add(b.term())
		}
	}
	params.Add(b.expect(")", "expected ')' to close event parameters"))
	n.Add(params)

	if b.check("anonymous") {
		n.Add(b.term())
	}
	n.Add(b.expect(";", "expected ';' after event definition"))
	return n
}

func (b *builder) buildEnumDefinition() *Node {
	n := NewNode(RuleEnumDefinition)
	n.Add(b.term()) // enum
	n.Add(b.buildIdentifier())
	n.Add(b.expect("{", "expected '{' to start enum body"))
	if !b.check("}") {
		for {
			if b.checkIdentifier() {
				n.Add(NewNode(RuleEnumValue, b.buildIdentifier()))
			}
			if !b.check(",") {
				break
			}
			n.Add(b.term())
		}
	}
	n.Add(b.expect("}", "expected '}' to close enum body"))
	return n
}

func (b *builder) buildCustomErrorDefinition() *Node {
	n := NewNode(RuleCustomErrorDefinition)
	n.Add(b.term()) // error
	n.Add(b.buildIdentifier())
	n.Add(b.buildParameterList())
	n.Add(b.expect(";", "expected ';' after error definition"))
	return n
}

func (b *builder) buildTypeDefinition() *Node {
	n := NewNode(RuleTypeDefinition)
	n.Add(b.term()) // type
	n.Add(b.buildIdentifier())
	n.Add(b.expect("is", "expected 'is' in type definition"))
	if b.checkType(token.KEYWORD) && isElementaryTypeName(b.peek().Value) {
		n.Add(NewNode(RuleElementaryTypeName, b.term()))
	} else {
		b.errorAtCurrent("expected elementary type in type definition")
		n.Add(NewNode(RuleElementaryTypeName, NewTerminal(&token.Token{Type: token.KEYWORD, Value: "uint", Pos: b.peek().Pos})))
	}
	n.Add(b.expect(";", "expected ';' after type definition"))
	return n
}

// --- parameters ---

func (b *builder) buildParameterList() *Node {
	n := NewNode(RuleParameterList)
	n.Add(b.expect("(", "expected '(' to open parameter list"))
	if !b.check(")") {
		for {
			param := NewNode(RuleParameter)
			param.Add(b.buildTypeName())
			if b.checkAny("memory", "storage", "calldata") {
				param.Add(NewNode(RuleStorageLocation, b.term()))
			}
			if b.checkIdentifier() {
				param.Add(b.buildIdentifier())
			}
			n.Add(param)
			if !b.check(",") {
				break
			}
			n.Add(b.term())
		}
	}
	n.Add(b.expect(")", "expected ')' to close parameter list"))
	return n
}

func (b *builder) buildVariableDeclaration() *Node {
	n := NewNode(RuleVariableDeclaration)
	n.Add(b.buildTypeName())
	if b.checkAny("memory", "storage", "calldata") {
		n.Add(NewNode(RuleStorageLocation, b.term()))
	}
	n.Add(b.buildIdentifier())
	return n
}

func (b *builder) buildIdentifier() *Node {
	if b.checkIdentifier() {
		return NewNode(RuleIdentifier, b.term())
	}
	b.errorAtCurrent("expected identifier")
	return NewNode(RuleIdentifier, NewTerminal(&token.Token{Type: token.IDENT, Pos: b.peek().Pos}))
}

func (b *builder) buildUserDefinedTypeName() *Node {
	n := NewNode(RuleUserDefinedTypeName)
	n.Add(b.buildIdentifier())
	for b.check(".") {
		n.Add(b.term())
		n.Add(b.buildIdentifier())
	}
	return n
}
