package grammar

import "solparse/token"

func (b *builder) buildBlock() *Node {
	n := NewNode(RuleBlock)
	n.Add(b.expect("{", "expected '{' to open block"))
	for !b.isAtEnd() && !b.check("}") {
		start := b.pos
		n.Add(b.buildStatement())
		if b.pos == start {
			b.advance()
		}
	}
	n.Add(b.expect("}", "expected '}' to close block"))
	return n
}

func (b *builder) buildStatement() *Node {
	var inner *Node
	switch {
	case b.check("if"):
		inner = b.buildIfStatement()
	case b.check("try"):
		inner = b.buildTryStatement()
	case b.check("while"):
		inner = b.buildWhileStatement()
	case b.check("for"):
		inner = b.buildForStatement()
	case b.check("{"):
		inner = b.buildBlock()
	case b.check("assembly"):
		inner = b.buildInlineAssemblyStatement()
	case b.check("do"):
		inner = b.buildDoWhileStatement()
	case b.check("continue"):
		inner = NewNode(RuleContinueStatement, b.term(), b.expect(";", "expected ';' after 'continue'"))
	case b.check("break"):
		inner = NewNode(RuleBreakStatement, b.term(), b.expect(";", "expected ';' after 'break'"))
	case b.check("return"):
		inner = b.buildReturnStatement()
	case b.check("throw"):
		inner = NewNode(RuleThrowStatement, b.term(), b.expect(";", "expected ';' after 'throw'"))
	case b.check("emit"):
		inner = b.buildEmitStatement()
	case b.check("unchecked"):
		inner = b.buildUncheckedStatement()
	case b.check("revert") && b.isIdentifierAt(1):
		// `revert E(...)` is a revert statement; `revert(...)` is a
		// plain call to the builtin.
		inner = b.buildRevertStatement()
	default:
		inner = b.buildSimpleStatement()
	}
	return NewNode(RuleStatement, inner)
}

func (b *builder) buildIfStatement() *Node {
	n := NewNode(RuleIfStatement)
	n.Add(b.term()) // if
	n.Add(b.expect("(", "expected '(' after 'if'"))
	n.Add(b.buildExpression())
	n.Add(b.expect(")", "expected ')' after if condition"))
	n.Add(b.buildStatement())
	if b.check("else") {
		n.Add(b.term())
		n.Add(b.buildStatement())
	}
	return n
}

func (b *builder) buildTryStatement() *Node {
	n := NewNode(RuleTryStatement)
	n.Add(b.term()) // try
	n.Add(b.buildExpression())
	if b.check("returns") {
		n.Add(NewNode(RuleReturnParameters, b.term(), b.buildParameterList()))
	}
	n.Add(b.buildBlock())
	for b.check("catch") {
		n.Add(b.buildCatchClause())
	}
	return n
}

func (b *builder) buildCatchClause() *Node {
	n := NewNode(RuleCatchClause)
	n.Add(b.term()) // catch
	if b.checkIdentifier() {
		n.Add(b.buildIdentifier())
	}
	if b.check("(") {
		n.Add(b.buildParameterList())
	}
	n.Add(b.buildBlock())
	return n
}

func (b *builder) buildWhileStatement() *Node {
	n := NewNode(RuleWhileStatement)
	n.Add(b.term()) // while
	n.Add(b.expect("(", "expected '(' after 'while'"))
	n.Add(b.buildExpression())
	n.Add(b.expect(")", "expected ')' after while condition"))
	n.Add(b.buildStatement())
	return n
}

func (b *builder) buildDoWhileStatement() *Node {
	n := NewNode(RuleDoWhileStatement)
	n.Add(b.term()) // do
	n.Add(b.buildStatement())
	n.Add(b.expect("while", "expected 'while' after do body"))
	n.Add(b.expect("(", "expected '(' after 'while'"))
	n.Add(b.buildExpression())
	n.Add(b.expect(")", "expected ')' after while condition"))
	n.Add(b.expect(";", "expected ';' after do-while statement"))
	return n
}

// buildForStatement keeps the init and condition slots positional:
// each is either the parsed clause or a bare ';' terminal.
func (b *builder) buildForStatement() *Node {
	n := NewNode(RuleForStatement)
	n.Add(b.term()) // for
	n.Add(b.expect("(", "expected '(' after 'for'"))
	if b.check(";") {
		n.Add(b.term())
	} else {
		n.Add(b.buildSimpleStatement())
	}
	if b.check(";") {
		n.Add(b.term())
	} else {
		n.Add(b.buildExpressionStatement())
	}
	if !b.check(")") {
		n.Add(b.buildExpression())
	}
	n.Add(b.expect(")", "expected ')' to close for clauses"))
	n.Add(b.buildStatement())
	return n
}

func (b *builder) buildReturnStatement() *Node {
	n := NewNode(RuleReturnStatement)
	n.Add(b.term()) // return
	if !b.check(";") {
		n.Add(b.buildExpression())
	}
	n.Add(b.expect(";", "expected ';' after return statement"))
	return n
}

func (b *builder) buildEmitStatement() *Node {
	n := NewNode(RuleEmitStatement)
	n.Add(b.term()) // emit
	n.Add(b.buildFunctionCallShape("expected event invocation after 'emit'"))
	n.Add(b.expect(";", "expected ';' after emit statement"))
	return n
}

func (b *builder) buildRevertStatement() *Node {
	n := NewNode(RuleRevertStatement)
	n.Add(b.term()) // revert
	n.Add(b.buildFunctionCallShape("expected error invocation after 'revert'"))
	n.Add(b.expect(";", "expected ';' after revert statement"))
	return n
}

// buildFunctionCallShape parses an expression that must end in a call
// and reshapes it into a functionCall production. A non-call gets the
// call shape synthesized around it so reduction still sees one.
func (b *builder) buildFunctionCallShape(message string) *Node {
	expr := b.buildExpression()
	if expr.Rule == RuleExpression && expr.Count() == 4 &&
		expr.Child(1).Text() == "(" && expr.Child(3).Text() == ")" {
		call := NewNode(RuleFunctionCall)
		call.Children = expr.Children
		return call
	}
	b.errorAtCurrent(message)
	at := b.peek().Pos
	call := NewNode(RuleFunctionCall)
	call.Add(expr)
	call.Add(NewTerminal(&token.Token{Type: token.PUNCTUATOR, Value: "(", Pos: at}))
	call.Add(NewNode(RuleFunctionCallArguments))
	call.Add(NewTerminal(&token.Token{Type: token.PUNCTUATOR, Value: ")", Pos: at}))
	return call
}

func (b *builder) buildUncheckedStatement() *Node {
	n := NewNode(RuleUncheckedStatement)
	n.Add(b.term()) // unchecked
	n.Add(b.buildBlock())
	return n
}

func (b *builder) buildInlineAssemblyStatement() *Node {
	n := NewNode(RuleInlineAssemblyStatement)
	n.Add(b.term()) // assembly
	if b.checkType(token.STRING) {
		n.Add(b.term())
	}
	if b.check("(") {
		n.Add(b.term())
		n.Add(NewNode(RuleInlineAssemblyStatementFlag, b.buildStringLiteral()))
		n.Add(b.expect(")", "expected ')' after assembly flags"))
	}
	n.Add(b.buildAssemblyBlock())
	return n
}

func (b *builder) buildSimpleStatement() *Node {
	n := NewNode(RuleSimpleStatement)
	if decl := b.buildVariableDeclarationStatement(); decl != nil {
		n.Add(decl)
	} else {
		n.Add(b.buildExpressionStatement())
	}
	return n
}

func (b *builder) buildExpressionStatement() *Node {
	n := NewNode(RuleExpressionStatement)
	n.Add(b.buildExpression())
	n.Add(b.expect(";", "expected ';' after expression"))
	return n
}

// buildVariableDeclarationStatement speculatively parses the
// declaration head and returns nil, cursor untouched, when the
// lookahead turns out to be an expression statement instead.
func (b *builder) buildVariableDeclarationStatement() *Node {
	n := NewNode(RuleVariableDeclarationStatement)
	switch {
	case b.check("var"):
		n.Add(b.term())
		n.Add(b.buildIdentifierList())
	case b.check("("):
		pos, errs := b.mark()
		open := b.term()
		list := b.buildVariableDeclarationList()
		if b.failedSince(errs) || !b.check(")") {
			b.restore(pos, errs)
			return nil
		}
		n.Add(open)
		n.Add(list)
		n.Add(b.term()) // )
	default:
		if !b.canStartTypeName() {
			return nil
		}
		pos, errs := b.mark()
		decl := b.buildVariableDeclaration()
		if b.failedSince(errs) {
			b.restore(pos, errs)
			return nil
		}
		n.Add(decl)
	}
	if b.check("=") {
		n.Add(b.term())
		n.Add(b.buildExpression())
	}
	n.Add(b.expect(";", "expected ';' after variable declaration"))
	return n
}

func (b *builder) buildIdentifierList() *Node {
	n := NewNode(RuleIdentifierList)
	n.Add(b.expect("(", "expected '(' after 'var'"))
	for !b.isAtEnd() && !b.check(")") {
		if b.check(",") {
			n.Add(b.term())
			continue
		}
		if !b.checkIdentifier() {
			break
		}
		n.Add(b.buildIdentifier())
		if !b.check(",") {
			break
		}
		n.Add(b.term())
	}
	n.Add(b.expect(")", "expected ')' to close identifier list"))
	return n
}

func (b *builder) buildVariableDeclarationList() *Node {
	n := NewNode(RuleVariableDeclarationList)
	for {
		if b.canStartTypeName() {
			n.Add(b.buildVariableDeclaration())
		}
		if !b.check(",") {
			break
		}
		n.Add(b.term())
	}
	return n
}

func (b *builder) buildStringLiteral() *Node {
	n := NewNode(RuleStringLiteral)
	if !b.checkType(token.STRING) {
		b.errorAtCurrent("expected string literal")
		n.Add(NewTerminal(&token.Token{Type: token.STRING, Value: `""`, Pos: b.peek().Pos}))
		return n
	}
	for b.checkType(token.STRING) {
		n.Add(b.term())
	}
	return n
}
