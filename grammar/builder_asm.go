package grammar

import "solparse/token"

func (b *builder) buildAssemblyBlock() *Node {
	n := NewNode(RuleAssemblyBlock)
	n.Add(b.expect("{", "expected '{' to open assembly block"))
	for !b.isAtEnd() && !b.check("}") {
		start := b.pos
		n.Add(b.buildAssemblyItem())
		if b.pos == start {
			b.advance()
		}
	}
	n.Add(b.expect("}", "expected '}' to close assembly block"))
	return n
}

func (b *builder) buildAssemblyItem() *Node {
	n := NewNode(RuleAssemblyItem)
	switch {
	case b.check("{"):
		n.Add(b.buildAssemblyBlock())
	case b.check("let"):
		n.Add(b.buildAssemblyLocalDefinition())
	case b.check("function"):
		n.Add(b.buildAssemblyFunctionDefinition())
	case b.check("switch"):
		n.Add(b.buildAssemblySwitch())
	case b.check("for"):
		n.Add(b.buildAssemblyFor())
	case b.check("if"):
		n.Add(b.buildAssemblyIf())
	case b.checkAny("break", "continue", "leave"):
		n.Add(b.term())
	case b.checkType(token.STRING):
		n.Add(b.buildStringLiteral())
	case b.checkType(token.HEX):
		n.Add(b.buildHexLiteral())
	case b.check("("):
		n.Add(b.buildAssemblyAssignment())
	case b.checkIdentifier():
		n.Add(b.buildAssemblyIdentifierItem())
	default:
		n.Add(b.buildAssemblyExpressionOrStack())
	}
	return n
}

// buildAssemblyIdentifierItem disambiguates the identifier-led items:
// labels, assignments, member writes, calls and bare identifiers.
func (b *builder) buildAssemblyIdentifierItem() *Node {
	next := b.peekAt(1).Value
	switch {
	case next == ":":
		return NewNode(RuleLabelDefinition, b.buildIdentifier(), b.term())
	case next == ":=" || next == ",":
		return b.buildAssemblyAssignment()
	case next == ".":
		member := b.buildAssemblyMember()
		if b.check(":=") {
			target := NewNode(RuleAssemblyIdentifierOrList, member)
			return NewNode(RuleAssemblyAssignment, target, b.term(), b.buildAssemblyExpression())
		}
		return b.wrapAssemblyStack(NewNode(RuleAssemblyExpression, member))
	case next == "(" || next == "=:":
		return b.buildAssemblyExpressionOrStack()
	default:
		return b.buildIdentifier()
	}
}

// buildAssemblyExpressionOrStack parses an expression item and folds a
// trailing '=:' into the legacy stack assignment form.
func (b *builder) buildAssemblyExpressionOrStack() *Node {
	return b.wrapAssemblyStack(b.buildAssemblyExpression())
}

func (b *builder) wrapAssemblyStack(expr *Node) *Node {
	if !b.check("=:") {
		return expr
	}
	return NewNode(RuleAssemblyStackAssignment, expr, b.term(), b.buildIdentifier())
}

func (b *builder) buildAssemblyExpression() *Node {
	n := NewNode(RuleAssemblyExpression)
	t := b.peek()
	switch {
	case t.Type == token.NUMBER || t.Type == token.HEX_NUMBER || t.Type == token.BOOL ||
		t.Type == token.STRING || t.Type == token.HEX:
		n.Add(b.buildAssemblyLiteral())
	case b.checkIdentifier() && b.peekAt(1).Value == ".":
		n.Add(b.buildAssemblyMember())
	case b.checkIdentifier() || b.checkAny("return", "address", "byte"):
		n.Add(b.buildAssemblyCall())
	default:
		b.errorAtCurrent("expected assembly expression")
		n.Add(NewNode(RuleAssemblyCall,
			NewNode(RuleIdentifier, NewTerminal(&token.Token{Type: token.IDENT, Pos: t.Pos}))))
	}
	return n
}

func (b *builder) buildAssemblyCall() *Node {
	n := NewNode(RuleAssemblyCall)
	if b.checkAny("return", "address", "byte") {
		n.Add(b.term())
	} else {
		n.Add(b.buildIdentifier())
	}
	if b.check("(") {
		n.Add(b.term())
		if !b.check(")") {
			for {
				n.Add(b.buildAssemblyExpression())
				if !b.check(",") {
					break
				}
				n.Add(b.term())
			}
		}
		n.Add(b.expect(")", "expected ')' to close assembly call"))
	}
	return n
}

func (b *builder) buildAssemblyLiteral() *Node {
	n := NewNode(RuleAssemblyLiteral)
	switch b.peek().Type {
	case token.STRING:
		n.Add(b.buildStringLiteral())
	case token.HEX:
		n.Add(b.buildHexLiteral())
	default:
		n.Add(b.term()) // number, hex number or boolean
	}
	return n
}

func (b *builder) buildAssemblyMember() *Node {
	n := NewNode(RuleAssemblyMember)
	n.Add(b.buildIdentifier())
	n.Add(b.expect(".", "expected '.' in assembly member access"))
	n.Add(b.buildIdentifier())
	return n
}

func (b *builder) buildAssemblyLocalDefinition() *Node {
	n := NewNode(RuleAssemblyLocalDefinition)
	n.Add(b.term()) // let
	n.Add(b.buildAssemblyIdentifierOrList())
	if b.check(":=") {
		n.Add(b.term())
		n.Add(b.buildAssemblyExpression())
	}
	return n
}

func (b *builder) buildAssemblyAssignment() *Node {
	n := NewNode(RuleAssemblyAssignment)
	n.Add(b.buildAssemblyIdentifierOrList())
	n.Add(b.expect(":=", "expected ':=' in assembly assignment"))
	n.Add(b.buildAssemblyExpression())
	return n
}

func (b *builder) buildAssemblyIdentifierOrList() *Node {
	n := NewNode(RuleAssemblyIdentifierOrList)
	switch {
	case b.check("("):
		n.Add(b.term())
		n.Add(b.buildAssemblyIdentifierList())
		n.Add(b.expect(")", "expected ')' to close identifier list"))
	case b.checkIdentifier() && b.peekAt(1).Value == ".":
		n.Add(b.buildAssemblyMember())
	case b.checkIdentifier() && b.peekAt(1).Value == ",":
		n.Add(b.buildAssemblyIdentifierList())
	default:
		n.Add(b.buildIdentifier())
	}
	return n
}

func (b *builder) buildAssemblyIdentifierList() *Node {
	n := NewNode(RuleAssemblyIdentifierList)
	for {
		n.Add(b.buildIdentifier())
		if !b.check(",") {
			break
		}
		n.Add(b.term())
	}
	return n
}

func (b *builder) buildAssemblyFunctionDefinition() *Node {
	n := NewNode(RuleAssemblyFunctionDefinition)
	n.Add(b.term()) // function
	n.Add(b.buildIdentifier())
	n.Add(b.expect("(", "expected '(' after assembly function name"))
	if !b.check(")") {
		n.Add(b.buildAssemblyIdentifierList())
	}
	n.Add(b.expect(")", "expected ')' to close assembly function parameters"))
	if b.check("->") {
		n.Add(NewNode(RuleAssemblyFunctionReturns, b.term(), b.buildAssemblyIdentifierList()))
	}
	n.Add(b.buildAssemblyBlock())
	return n
}

func (b *builder) buildAssemblySwitch() *Node {
	n := NewNode(RuleAssemblySwitch)
	n.Add(b.term()) // switch
	n.Add(b.buildAssemblyExpression())
	for b.checkAny("case", "default") {
		n.Add(b.buildAssemblyCase())
	}
	return n
}

func (b *builder) buildAssemblyCase() *Node {
	n := NewNode(RuleAssemblyCase)
	if b.check("case") {
		n.Add(b.term())
		n.Add(b.buildAssemblyLiteral())
	} else {
		n.Add(b.term()) // default
	}
	n.Add(b.buildAssemblyBlock())
	return n
}

// buildAssemblyFor keeps the four clauses positional after the 'for'
// keyword; reduction reads them by index.
func (b *builder) buildAssemblyFor() *Node {
	n := NewNode(RuleAssemblyFor)
	n.Add(b.term()) // for
	n.Add(b.buildAssemblyBlockOrExpression())
	n.Add(b.buildAssemblyExpression())
	n.Add(b.buildAssemblyBlockOrExpression())
	n.Add(b.buildAssemblyBlock())
	return n
}

func (b *builder) buildAssemblyBlockOrExpression() *Node {
	if b.check("{") {
		return b.buildAssemblyBlock()
	}
	return b.buildAssemblyExpression()
}

func (b *builder) buildAssemblyIf() *Node {
	n := NewNode(RuleAssemblyIf)
	n.Add(b.term()) // if
	n.Add(b.buildAssemblyExpression())
	n.Add(b.buildAssemblyBlock())
	return n
}
