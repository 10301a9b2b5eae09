package parser

import (
	"strings"

	"solparse/ast"
	"solparse/grammar"
	"solparse/token"
)

// The expression grammar collapses every operator form into one
// production, so expression kinds are recovered structurally: child
// count first, then literal token text at fixed offsets. The full
// shape table lives in reduceExpression; everything it does not match
// is a reduction error, never a silent guess.

var unaryOps = map[string]bool{
	"-":      true,
	"+":      true,
	"++":     true,
	"--":     true,
	"~":      true,
	"after":  true,
	"delete": true,
	"!":      true,
}

var binaryOps = map[string]bool{
	"+":    true,
	"-":    true,
	"*":    true,
	"/":    true,
	"**":   true,
	"%":    true,
	"<<":   true,
	">>":   true,
	">>>":  true,
	"&&":   true,
	"||":   true,
	"&":    true,
	"|":    true,
	"^":    true,
	"<":    true,
	">":    true,
	"<=":   true,
	">=":   true,
	"==":   true,
	"!=":   true,
	"=":    true,
	"|=":   true,
	"^=":   true,
	"&=":   true,
	"<<=":  true,
	">>=":  true,
	">>>=": true,
	"+=":   true,
	"-=":   true,
	"*=":   true,
	"/=":   true,
	"%=":   true,
}

// reduceExpression dispatches the collapsed expression production.
// Shapes are keyed on (child count, literal tokens at fixed offsets);
// the sub-expression positions follow from the matched shape.
func (r *reducer) reduceExpression(cst *grammar.Node) (ast.Expression, error) {
	if cst == nil {
		return nil, reductionErr(nil, "missing expression")
	}
	if err := r.descend(cst); err != nil {
		return nil, err
	}
	defer r.ascend()

	exprs := cst.All(grammar.RuleExpression)

	switch cst.Count() {
	case 1:
		if child := cst.Child(0); child != nil && child.Rule == grammar.RulePrimaryExpression {
			return r.reducePrimaryExpression(child)
		}

	case 2:
		if tokenAt(cst, 0) == "new" {
			typeName, err := r.reduceTypeName(cst.First(grammar.RuleTypeName))
			if err != nil {
				return nil, err
			}
			n := &ast.NewExpression{TypeName: typeName}
			r.finish(n, cst)
			return n, nil
		}
		if op := tokenAt(cst, 0); unaryOps[op] && len(exprs) == 1 {
			sub, err := r.reduceExpression(exprs[0])
			if err != nil {
				return nil, err
			}
			n := &ast.UnaryOperation{Operator: op, SubExpression: sub, IsPrefix: true}
			r.finish(n, cst)
			return n, nil
		}
		if op := tokenAt(cst, 1); (op == "++" || op == "--") && len(exprs) == 1 {
			sub, err := r.reduceExpression(exprs[0])
			if err != nil {
				return nil, err
			}
			n := &ast.UnaryOperation{Operator: op, SubExpression: sub, IsPrefix: false}
			r.finish(n, cst)
			return n, nil
		}

	case 3:
		if tokenAt(cst, 0) == "(" && tokenAt(cst, 2) == ")" && len(exprs) == 1 {
			inner, err := r.reduceExpression(exprs[0])
			if err != nil {
				return nil, err
			}
			n := &ast.TupleExpression{Components: []ast.Expression{inner}, IsArray: false}
			r.finish(n, cst)
			return n, nil
		}
		if tokenAt(cst, 1) == "." && len(exprs) == 1 {
			expr, err := r.reduceExpression(exprs[0])
			if err != nil {
				return nil, err
			}
			n := &ast.MemberAccess{
				Expression: expr,
				MemberName: cst.First(grammar.RuleIdentifier).Text(),
			}
			r.finish(n, cst)
			return n, nil
		}
		if op := tokenAt(cst, 1); binaryOps[op] && len(exprs) == 2 {
			left, err := r.reduceExpression(exprs[0])
			if err != nil {
				return nil, err
			}
			right, err := r.reduceExpression(exprs[1])
			if err != nil {
				return nil, err
			}
			n := &ast.BinaryOperation{Operator: op, Left: left, Right: right}
			r.finish(n, cst)
			return n, nil
		}

	case 4:
		if tokenAt(cst, 1) == "(" && tokenAt(cst, 3) == ")" {
			return r.reduceCallShape(cst)
		}
		if tokenAt(cst, 1) == "[" && tokenAt(cst, 3) == "]" && len(exprs) >= 1 {
			base, err := r.reduceExpression(exprs[0])
			if err != nil {
				return nil, err
			}
			if tokenAt(cst, 2) == ":" {
				n := &ast.IndexRangeAccess{Base: base}
				r.finish(n, cst)
				return n, nil
			}
			if len(exprs) == 2 {
				index, err := r.reduceExpression(exprs[1])
				if err != nil {
					return nil, err
				}
				n := &ast.IndexAccess{Base: base, Index: index}
				r.finish(n, cst)
				return n, nil
			}
		}
		if tokenAt(cst, 1) == "{" && tokenAt(cst, 3) == "}" && len(exprs) == 1 {
			expr, err := r.reduceExpression(exprs[0])
			if err != nil {
				return nil, err
			}
			arguments, err := r.reduceNameValueList(cst.First(grammar.RuleNameValueList))
			if err != nil {
				return nil, err
			}
			n := &ast.NameValueExpression{Expression: expr, Arguments: arguments}
			r.finish(n, cst)
			return n, nil
		}

	case 5:
		if tokenAt(cst, 1) == "?" && tokenAt(cst, 3) == ":" && len(exprs) == 3 {
			condition, err := r.reduceExpression(exprs[0])
			if err != nil {
				return nil, err
			}
			trueExpr, err := r.reduceExpression(exprs[1])
			if err != nil {
				return nil, err
			}
			falseExpr, err := r.reduceExpression(exprs[2])
			if err != nil {
				return nil, err
			}
			n := &ast.Conditional{
				Condition:       condition,
				TrueExpression:  trueExpr,
				FalseExpression: falseExpr,
			}
			r.finish(n, cst)
			return n, nil
		}
		if tokenAt(cst, 1) == "[" && tokenAt(cst, 2) == ":" && tokenAt(cst, 4) == "]" && len(exprs) == 2 {
			base, err := r.reduceExpression(exprs[0])
			if err != nil {
				return nil, err
			}
			indexEnd, err := r.reduceExpression(exprs[1])
			if err != nil {
				return nil, err
			}
			n := &ast.IndexRangeAccess{Base: base, IndexEnd: indexEnd}
			r.finish(n, cst)
			return n, nil
		}
		if tokenAt(cst, 1) == "[" && tokenAt(cst, 3) == ":" && tokenAt(cst, 4) == "]" && len(exprs) == 2 {
			base, err := r.reduceExpression(exprs[0])
			if err != nil {
				return nil, err
			}
			indexStart, err := r.reduceExpression(exprs[1])
			if err != nil {
				return nil, err
			}
			n := &ast.IndexRangeAccess{Base: base, IndexStart: indexStart}
			r.finish(n, cst)
			return n, nil
		}

	case 6:
		if tokenAt(cst, 1) == "[" && tokenAt(cst, 3) == ":" && tokenAt(cst, 5) == "]" && len(exprs) == 3 {
			base, err := r.reduceExpression(exprs[0])
			if err != nil {
				return nil, err
			}
			indexStart, err := r.reduceExpression(exprs[1])
			if err != nil {
				return nil, err
			}
			indexEnd, err := r.reduceExpression(exprs[2])
			if err != nil {
				return nil, err
			}
			n := &ast.IndexRangeAccess{Base: base, IndexStart: indexStart, IndexEnd: indexEnd}
			r.finish(n, cst)
			return n, nil
		}
	}

	return nil, reductionErr(cst, "Unrecognized expression")
}

// reducePrimaryExpression reduces the leaf production. Boolean tokens
// become literals; the `type` and `payable` keywords in call position
// become plain identifiers; elementary type names in expression
// position reduce through the type grammar, which is why type names
// satisfy the expression interface.
func (r *reducer) reducePrimaryExpression(cst *grammar.Node) (ast.Expression, error) {
	child := cst.Child(0)
	if child == nil {
		return nil, reductionErr(cst, "Unrecognized expression")
	}
	if child.IsTerminal() {
		if child.Tok.Type == token.BOOL {
			n := &ast.BooleanLiteral{Value: child.Tok.Value == "true"}
			r.finish(n, cst)
			return n, nil
		}
		n := &ast.Identifier{Name: child.Tok.Value}
		r.finish(n, cst)
		return n, nil
	}
	switch child.Rule {
	case grammar.RuleNumberLiteral:
		return r.reduceNumberLiteral(child), nil
	case grammar.RuleHexLiteral:
		return r.reduceHexLiteral(child), nil
	case grammar.RuleStringLiteral:
		return r.reduceStringLiteral(child), nil
	case grammar.RuleIdentifier:
		return r.reduceIdentifier(child), nil
	case grammar.RuleTupleExpression:
		return r.reduceTupleExpression(child)
	case grammar.RuleTypeName:
		t, err := r.reduceTypeName(child)
		if err != nil {
			return nil, err
		}
		if expr, ok := t.(ast.Expression); ok {
			return expr, nil
		}
	}
	return nil, reductionErr(cst, "Unrecognized expression")
}

func (r *reducer) reduceIdentifier(cst *grammar.Node) *ast.Identifier {
	n := &ast.Identifier{Name: cst.Text()}
	r.finish(n, cst)
	return n
}

func (r *reducer) reduceNumberLiteral(cst *grammar.Node) *ast.NumberLiteral {
	n := &ast.NumberLiteral{Number: tokenAt(cst, 0)}
	if cst.Count() == 2 {
		n.Subdenomination = strp(tokenAt(cst, 1))
	}
	r.finish(n, cst)
	return n
}

// reduceStringLiteral reduces a run of adjacent string fragments. Each
// fragment records whether it was unicode-prefixed, and only the quote
// escape matching the fragment's own quote style is unescaped.
func (r *reducer) reduceStringLiteral(cst *grammar.Node) *ast.StringLiteral {
	parts := []string{}
	isUnicode := []bool{}
	for _, frag := range cst.Children {
		if frag.Tok == nil {
			continue
		}
		text := frag.Tok.Value
		unicode := strings.HasPrefix(text, "unicode")
		if unicode {
			text = text[len("unicode"):]
		}
		singleQuoted := len(text) > 0 && text[0] == '\''
		value := unquote(text)
		if singleQuoted {
			value = strings.ReplaceAll(value, `\'`, `'`)
		} else {
			value = strings.ReplaceAll(value, `\"`, `"`)
		}
		parts = append(parts, value)
		isUnicode = append(isUnicode, unicode)
	}
	n := &ast.StringLiteral{
		Value:     strings.Join(parts, ""),
		Parts:     parts,
		IsUnicode: isUnicode,
	}
	r.finish(n, cst)
	return n
}

// reduceHexLiteral strips the hex"..." wrapper from each fragment and
// concatenates the digit runs.
func (r *reducer) reduceHexLiteral(cst *grammar.Node) *ast.HexLiteral {
	parts := []string{}
	for _, frag := range cst.Children {
		if frag.Tok == nil {
			continue
		}
		text := frag.Tok.Value
		if len(text) >= 5 {
			parts = append(parts, text[4:len(text)-1])
		} else {
			parts = append(parts, "")
		}
	}
	n := &ast.HexLiteral{Value: strings.Join(parts, ""), Parts: parts}
	r.finish(n, cst)
	return n
}

func (r *reducer) reduceTupleExpression(cst *grammar.Node) (*ast.TupleExpression, error) {
	inner := []*grammar.Node{}
	if cst.Count() > 2 {
		inner = cst.Children[1 : cst.Count()-1]
	}
	slots, err := mapCommasToNulls(inner)
	if err != nil {
		return nil, err
	}
	components := []ast.Expression{}
	for _, slot := range slots {
		if slot == nil {
			components = append(components, nil)
			continue
		}
		expr, err := r.reduceExpression(slot)
		if err != nil {
			return nil, err
		}
		components = append(components, expr)
	}
	n := &ast.TupleExpression{Components: components, IsArray: tokenAt(cst, 0) == "["}
	r.finish(n, cst)
	return n, nil
}

// reduceCallShape reduces the call layout `callee ( arguments )`,
// shared by four-child call expressions and the functionCall
// production behind emit and revert statements.
func (r *reducer) reduceCallShape(cst *grammar.Node) (*ast.FunctionCall, error) {
	callee, err := r.reduceExpression(cst.Child(0))
	if err != nil {
		return nil, err
	}
	arguments, names, identifiers, err := r.reduceCallArguments(cst.First(grammar.RuleFunctionCallArguments))
	if err != nil {
		return nil, err
	}
	n := &ast.FunctionCall{
		Expression:  callee,
		Arguments:   arguments,
		Names:       names,
		Identifiers: identifiers,
	}
	r.finish(n, cst)
	return n, nil
}

// reduceCallArguments flattens the argument production: a plain list
// fills arguments only, a braces form fills the parallel name and
// identifier lists too, and an empty form leaves all three empty.
func (r *reducer) reduceCallArguments(argsNode *grammar.Node) ([]ast.Expression, []string, []*ast.Identifier, error) {
	arguments := []ast.Expression{}
	names := []string{}
	identifiers := []*ast.Identifier{}
	if argsNode == nil {
		return arguments, names, identifiers, nil
	}
	if exprList := argsNode.First(grammar.RuleExpressionList); exprList != nil {
		args, err := r.reduceExpressionList(exprList)
		if err != nil {
			return nil, nil, nil, err
		}
		return args, names, identifiers, nil
	}
	if nvl := argsNode.First(grammar.RuleNameValueList); nvl != nil {
		for _, nameValue := range nvl.All(grammar.RuleNameValue) {
			arg, err := r.reduceExpression(nameValue.First(grammar.RuleExpression))
			if err != nil {
				return nil, nil, nil, err
			}
			identNode := nameValue.First(grammar.RuleIdentifier)
			arguments = append(arguments, arg)
			names = append(names, identNode.Text())
			identifiers = append(identifiers, r.reduceIdentifier(identNode))
		}
	}
	return arguments, names, identifiers, nil
}

func (r *reducer) reduceNameValueList(cst *grammar.Node) (*ast.NameValueList, error) {
	names := []string{}
	identifiers := []*ast.Identifier{}
	arguments := []ast.Expression{}
	if cst != nil {
		for _, nameValue := range cst.All(grammar.RuleNameValue) {
			arg, err := r.reduceExpression(nameValue.First(grammar.RuleExpression))
			if err != nil {
				return nil, err
			}
			identNode := nameValue.First(grammar.RuleIdentifier)
			names = append(names, identNode.Text())
			identifiers = append(identifiers, r.reduceIdentifier(identNode))
			arguments = append(arguments, arg)
		}
	}
	n := &ast.NameValueList{Names: names, Identifiers: identifiers, Arguments: arguments}
	r.finish(n, cst)
	return n, nil
}

func (r *reducer) reduceExpressionList(cst *grammar.Node) ([]ast.Expression, error) {
	out := []ast.Expression{}
	for _, exprNode := range cst.All(grammar.RuleExpression) {
		expr, err := r.reduceExpression(exprNode)
		if err != nil {
			return nil, err
		}
		out = append(out, expr)
	}
	return out, nil
}

// mapCommasToNulls turns a comma-separated child run into a slot list
// where elided items read as nil: `(a, , b)` keeps its hole and a
// trailing comma adds one.
func mapCommasToNulls(children []*grammar.Node) ([]*grammar.Node, error) {
	if len(children) == 0 {
		return []*grammar.Node{}, nil
	}
	slots := []*grammar.Node{}
	expectingItem := true
	for _, child := range children {
		if expectingItem {
			if child.Text() == "," {
				slots = append(slots, nil)
			} else {
				slots = append(slots, child)
				expectingItem = false
			}
		} else {
			if child.Text() != "," {
				return nil, reductionErr(child, "expected comma")
			}
			expectingItem = true
		}
	}
	if expectingItem {
		slots = append(slots, nil)
	}
	return slots, nil
}
