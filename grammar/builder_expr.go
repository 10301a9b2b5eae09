package grammar

import "solparse/token"

// binaryPrecedence orders the infix operators; the ternary '?' sits
// between the assignments and the boolean ops so `a = c ? x : y`
// groups the conditional first.
var binaryPrecedence = map[string]int{
	"=": 1, "|=": 1, "^=": 1, "&=": 1, "<<=": 1, ">>=": 1, ">>>=": 1,
	"+=": 1, "-=": 1, "*=": 1, "/=": 1, "%=": 1,
	"?":  2,
	"||": 3,
	"&&": 4,
	"==": 5, "!=": 5,
	"<": 6, ">": 6, "<=": 6, ">=": 6,
	"|": 7,
	"^": 8,
	"&": 9,
	"<<": 10, ">>": 10, ">>>": 10,
	"+": 11, "-": 11,
	"*": 12, "/": 12, "%": 12,
	"**": 13,
}

func rightAssoc(op string) bool {
	return op == "**" || binaryPrecedence[op] == 1
}

func (b *builder) buildExpression() *Node {
	return b.parseExpression(1)
}

func (b *builder) parseExpression(minPrec int) *Node {
	if b.depth >= maxExprNesting {
		b.errorAtCurrent("expression nesting too deep")
		return NewNode(RuleExpression, NewNode(RulePrimaryExpression,
			NewNode(RuleIdentifier, NewTerminal(&token.Token{Type: token.IDENT, Pos: b.peek().Pos}))))
	}
	b.depth++
	defer func() { b.depth-- }()

	left := b.parseUnary()
	for {
		op := b.peek()
		prec, ok := binaryPrecedence[op.Value]
		if !ok || op.Type == token.EOF || prec < minPrec {
			break
		}
		if op.Value == "?" {
			q := b.term()
			trueExpr := b.parseExpression(1)
			colon := b.expect(":", "expected ':' in conditional expression")
			falseExpr := b.parseExpression(prec)
			left = NewNode(RuleExpression, left, q, trueExpr, colon, falseExpr)
			continue
		}
		next := prec + 1
		if rightAssoc(op.Value) {
			next = prec
		}
		opTerm := b.term()
		left = NewNode(RuleExpression, left, opTerm, b.parseExpression(next))
	}
	return left
}

func (b *builder) parseUnary() *Node {
	switch {
	case b.check("new"):
		n := NewNode(RuleExpression, b.term(), b.buildTypeName())
		return b.parsePostfix(n)
	case b.checkAny("!", "~", "delete", "after", "+", "-", "++", "--"):
		// Unary binds looser than '**' but tighter than the rest.
		op := b.term()
		return NewNode(RuleExpression, op, b.parseExpression(13))
	case b.check("("):
		return b.parsePostfix(b.buildParenOrTuple())
	case b.check("["):
		array := NewNode(RulePrimaryExpression, b.buildArrayLiteral())
		return b.parsePostfix(NewNode(RuleExpression, array))
	default:
		return b.parsePostfix(NewNode(RuleExpression, b.buildPrimaryExpression()))
	}
}

func (b *builder) parsePostfix(left *Node) *Node {
	for {
		switch {
		case b.checkAny("++", "--"):
			left = NewNode(RuleExpression, left, b.term())
		case b.check("."):
			dot := b.term()
			left = NewNode(RuleExpression, left, dot, b.memberName())
		case b.check("("):
			open := b.term()
			args := b.buildFunctionCallArguments()
			closing := b.expect(")", "expected ')' to close call arguments")
			left = NewNode(RuleExpression, left, open, args, closing)
		case b.check("["):
			left = b.parseIndexSuffix(left)
		case b.check("{") && b.isIdentifierAt(1) && b.peekAt(2).Value == ":":
			open := b.term()
			nvl := b.buildNameValueList()
			closing := b.expect("}", "expected '}' to close call options")
			left = NewNode(RuleExpression, left, open, nvl, closing)
		default:
			return left
		}
	}
}

// parseIndexSuffix covers plain indexing and the four slice layouts:
// a[i], a[:], a[s:], a[:e] and a[s:e].
func (b *builder) parseIndexSuffix(left *Node) *Node {
	open := b.term() // [
	if b.check(":") {
		colon := b.term()
		if b.check("]") {
			return NewNode(RuleExpression, left, open, colon, b.term())
		}
		end := b.buildExpression()
		return NewNode(RuleExpression, left, open, colon, end,
			b.expect("]", "expected ']' to close index range"))
	}
	first := b.buildExpression()
	if b.check(":") {
		colon := b.term()
		if b.check("]") {
			return NewNode(RuleExpression, left, open, first, colon, b.term())
		}
		end := b.buildExpression()
		return NewNode(RuleExpression, left, open, first, colon, end,
			b.expect("]", "expected ']' to close index range"))
	}
	return NewNode(RuleExpression, left, open, first,
		b.expect("]", "expected ']' to close index access"))
}

func (b *builder) memberName() *Node {
	t := b.peek()
	if b.checkIdentifier() || (t.Type == token.KEYWORD && (t.Value == "address" || t.Value == "payable")) {
		return NewNode(RuleIdentifier, b.term())
	}
	b.errorAtCurrent("expected member name after '.'")
	return NewNode(RuleIdentifier, NewTerminal(&token.Token{Type: token.IDENT, Pos: t.Pos}))
}

func (b *builder) buildPrimaryExpression() *Node {
	n := NewNode(RulePrimaryExpression)
	t := b.peek()
	switch {
	case t.Type == token.BOOL:
		n.Add(b.term())
	case t.Type == token.NUMBER || t.Type == token.HEX_NUMBER:
		n.Add(b.buildNumberLiteral())
	case t.Type == token.HEX:
		n.Add(b.buildHexLiteral())
	case t.Type == token.STRING:
		n.Add(b.buildStringLiteral())
	case (t.Value == "type" || t.Value == "payable") && b.peekAt(1).Value == "(":
		n.Add(b.term())
	case t.Type == token.KEYWORD && isElementaryTypeName(t.Value):
		n.Add(b.buildTypeName())
	case b.checkIdentifier():
		n.Add(b.buildIdentifier())
	default:
		b.errorAtCurrent("expected expression")
		n.Add(NewNode(RuleIdentifier, NewTerminal(&token.Token{Type: token.IDENT, Pos: t.Pos})))
	}
	return n
}

func (b *builder) buildNumberLiteral() *Node {
	n := NewNode(RuleNumberLiteral)
	n.Add(b.term())
	if t := b.peek(); t.Type == token.KEYWORD && numberUnits[t.Value] {
		n.Add(b.term())
	}
	return n
}

func (b *builder) buildHexLiteral() *Node {
	n := NewNode(RuleHexLiteral)
	if !b.checkType(token.HEX) {
		b.errorAtCurrent("expected hex string literal")
		n.Add(NewTerminal(&token.Token{Type: token.HEX, Value: `hex""`, Pos: b.peek().Pos}))
		return n
	}
	for b.checkType(token.HEX) {
		n.Add(b.term())
	}
	return n
}

// buildParenOrTuple resolves the `(`-ambiguity: a single expression in
// parentheses keeps the three-child parenthesized shape, anything with
// commas or empty slots becomes a tupleExpression.
func (b *builder) buildParenOrTuple() *Node {
	open := b.term() // (
	if b.check(")") {
		tuple := NewNode(RuleTupleExpression, open, b.term())
		return NewNode(RuleExpression, NewNode(RulePrimaryExpression, tuple))
	}
	var first *Node
	if !b.check(",") {
		first = b.buildExpression()
	}
	if first != nil && b.check(")") {
		return NewNode(RuleExpression, open, first, b.term())
	}
	tuple := NewNode(RuleTupleExpression)
	tuple.Add(open)
	tuple.Add(first)
	for b.check(",") {
		tuple.Add(b.term())
		if !b.check(",") && !b.check(")") {
			tuple.Add(b.buildExpression())
		}
	}
	tuple.Add(b.expect(")", "expected ')' to close tuple"))
	return NewNode(RuleExpression, NewNode(RulePrimaryExpression, tuple))
}

func (b *builder) buildArrayLiteral() *Node {
	n := NewNode(RuleTupleExpression)
	n.Add(b.term()) // [
	if !b.check("]") {
		for {
			if !b.check(",") && !b.check("]") {
				n.Add(b.buildExpression())
			}
			if !b.check(",") {
				break
			}
			n.Add(b.term())
		}
	}
	n.Add(b.expect("]", "expected ']' to close array literal"))
	return n
}

func (b *builder) buildFunctionCallArguments() *Node {
	n := NewNode(RuleFunctionCallArguments)
	switch {
	case b.check("{"):
		n.Add(b.term())
		if !b.check("}") {
			n.Add(b.buildNameValueList())
		}
		n.Add(b.expect("}", "expected '}' to close named arguments"))
	case b.check(")"):
	default:
		n.Add(b.buildExpressionList())
	}
	return n
}

func (b *builder) buildExpressionList() *Node {
	n := NewNode(RuleExpressionList)
	for {
		n.Add(b.buildExpression())
		if !b.check(",") {
			break
		}
		n.Add(b.term())
	}
	return n
}

func (b *builder) buildNameValueList() *Node {
	n := NewNode(RuleNameValueList)
	for {
		nv := NewNode(RuleNameValue)
		nv.Add(b.buildIdentifier())
		nv.Add(b.expect(":", "expected ':' after argument name"))
		nv.Add(b.buildExpression())
		n.Add(nv)
		if !b.check(",") {
			break
		}
		n.Add(b.term())
		if b.checkAny("}", ")") {
			break
		}
	}
	return n
}
