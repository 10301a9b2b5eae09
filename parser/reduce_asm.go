package parser

import (
	"solparse/ast"
	"solparse/grammar"
	"solparse/token"
)

// reduceAssemblyItem dispatches any node of the assembly grammar
// family. Yul reuses the string and hex literal productions, but with
// its own value rules, so those reduce here rather than through the
// expression path.
func (r *reducer) reduceAssemblyItem(cst *grammar.Node) (ast.AssemblyItem, error) {
	if cst == nil {
		return nil, reductionErr(nil, "missing assembly item")
	}
	if err := r.descend(cst); err != nil {
		return nil, err
	}
	defer r.ascend()

	switch cst.Rule {
	case grammar.RuleAssemblyItem:
		return r.reduceAssemblyItemInner(cst)
	case grammar.RuleAssemblyBlock:
		return r.reduceAssemblyBlock(cst)
	case grammar.RuleAssemblyExpression:
		return r.reduceAssemblyExpression(cst)
	case grammar.RuleAssemblyCall:
		return r.reduceAssemblyCall(cst)
	case grammar.RuleAssemblyLiteral:
		return r.reduceAssemblyLiteral(cst)
	case grammar.RuleAssemblyMember:
		return r.reduceAssemblyMember(cst)
	case grammar.RuleAssemblyLocalDefinition:
		return r.reduceAssemblyLocalDefinition(cst)
	case grammar.RuleAssemblyAssignment:
		return r.reduceAssemblyAssignment(cst)
	case grammar.RuleAssemblyStackAssignment:
		return r.reduceAssemblyStackAssignment(cst)
	case grammar.RuleLabelDefinition:
		return r.reduceLabelDefinition(cst), nil
	case grammar.RuleAssemblySwitch:
		return r.reduceAssemblySwitch(cst)
	case grammar.RuleAssemblyCase:
		return r.reduceAssemblyCase(cst)
	case grammar.RuleAssemblyFunctionDefinition:
		return r.reduceAssemblyFunctionDefinition(cst)
	case grammar.RuleAssemblyFor:
		return r.reduceAssemblyFor(cst)
	case grammar.RuleAssemblyIf:
		return r.reduceAssemblyIf(cst)
	case grammar.RuleIdentifier:
		// A bare name in operation position is a call without parens.
		n := &ast.AssemblyCall{FunctionName: cst.Text(), Arguments: []ast.AssemblyItem{}}
		r.finish(n, cst)
		return n, nil
	case grammar.RuleHexLiteral:
		return r.reduceHexLiteral(cst), nil
	}
	return nil, reductionErr(cst, "unknown production %q", cst.Rule)
}

// reduceAssemblyItemInner unwraps the item production. String
// literals in item position keep their raw multi-fragment text as a
// single part, unlike the expression-level reduction.
func (r *reducer) reduceAssemblyItemInner(cst *grammar.Node) (ast.AssemblyItem, error) {
	child := cst.Child(0)
	if child == nil {
		return nil, reductionErr(cst, "empty assembly item")
	}
	if child.IsTerminal() {
		switch child.Tok.Value {
		case "break":
			n := &ast.Break{}
			r.finish(n, cst)
			return n, nil
		case "continue":
			n := &ast.Continue{}
			r.finish(n, cst)
			return n, nil
		}
		// `leave` and the other bare keywords read as calls.
		n := &ast.AssemblyCall{FunctionName: child.Tok.Value, Arguments: []ast.AssemblyItem{}}
		r.finish(n, cst)
		return n, nil
	}
	switch child.Rule {
	case grammar.RuleHexLiteral:
		return r.reduceHexLiteral(child), nil
	case grammar.RuleStringLiteral:
		value := unquote(child.Text())
		n := &ast.StringLiteral{Value: value, Parts: []string{value}, IsUnicode: []bool{false}}
		r.finish(n, cst)
		return n, nil
	}
	return r.reduceAssemblyItem(child)
}

func (r *reducer) reduceAssemblyBlock(cst *grammar.Node) (*ast.AssemblyBlock, error) {
	if cst == nil {
		return nil, reductionErr(nil, "missing assembly block")
	}
	operations := []ast.AssemblyItem{}
	for _, itemNode := range cst.All(grammar.RuleAssemblyItem) {
		op, err := r.reduceAssemblyItem(itemNode)
		if err != nil {
			return nil, err
		}
		operations = append(operations, op)
	}
	n := &ast.AssemblyBlock{Operations: operations}
	r.finish(n, cst)
	return n, nil
}

func (r *reducer) reduceAssemblyExpression(cst *grammar.Node) (ast.AssemblyItem, error) {
	child := cst.Child(0)
	if child == nil {
		return nil, reductionErr(cst, "empty assembly expression")
	}
	return r.reduceAssemblyItem(child)
}

func (r *reducer) reduceAssemblyCall(cst *grammar.Node) (*ast.AssemblyCall, error) {
	arguments := []ast.AssemblyItem{}
	for _, exprNode := range cst.All(grammar.RuleAssemblyExpression) {
		arg, err := r.reduceAssemblyItem(exprNode)
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, arg)
	}
	n := &ast.AssemblyCall{FunctionName: cst.Child(0).Text(), Arguments: arguments}
	r.finish(n, cst)
	return n, nil
}

func (r *reducer) reduceAssemblyLiteral(cst *grammar.Node) (ast.AssemblyItem, error) {
	if cst == nil {
		return nil, reductionErr(nil, "missing assembly literal")
	}
	child := cst.Child(0)
	if child == nil {
		return nil, reductionErr(cst, "empty assembly literal")
	}
	if child.IsTerminal() {
		switch child.Tok.Type {
		case token.BOOL:
			n := &ast.BooleanLiteral{Value: child.Tok.Value == "true"}
			r.finish(n, cst)
			return n, nil
		case token.HEX_NUMBER:
			n := &ast.HexNumber{Value: cst.Text()}
			r.finish(n, cst)
			return n, nil
		case token.NUMBER:
			n := &ast.DecimalNumber{Value: cst.Text()}
			r.finish(n, cst)
			return n, nil
		}
	} else {
		switch child.Rule {
		case grammar.RuleStringLiteral:
			value := unquote(cst.Text())
			n := &ast.StringLiteral{Value: value, Parts: []string{value}, IsUnicode: []bool{false}}
			r.finish(n, cst)
			return n, nil
		case grammar.RuleHexLiteral:
			return r.reduceHexLiteral(child), nil
		}
	}
	return nil, reductionErr(cst, "unknown assembly literal")
}

func (r *reducer) reduceAssemblyMember(cst *grammar.Node) (*ast.AssemblyMemberAccess, error) {
	ids := cst.All(grammar.RuleIdentifier)
	if len(ids) < 2 {
		return nil, reductionErr(cst, "assembly member access needs two identifiers")
	}
	n := &ast.AssemblyMemberAccess{
		Expression: r.reduceIdentifier(ids[0]),
		MemberName: r.reduceIdentifier(ids[1]),
	}
	r.finish(n, cst)
	return n, nil
}

// reduceAssemblyTargetNames reduces the left side of let bindings and
// assignments: one identifier, one member access, or a parenthesized
// identifier list.
func (r *reducer) reduceAssemblyTargetNames(list *grammar.Node) ([]ast.AssemblyItem, error) {
	if list == nil {
		return []ast.AssemblyItem{}, nil
	}
	if ident := list.First(grammar.RuleIdentifier); ident != nil {
		return []ast.AssemblyItem{r.reduceIdentifier(ident)}, nil
	}
	if member := list.First(grammar.RuleAssemblyMember); member != nil {
		m, err := r.reduceAssemblyMember(member)
		if err != nil {
			return nil, err
		}
		return []ast.AssemblyItem{m}, nil
	}
	names := []ast.AssemblyItem{}
	if ids := list.First(grammar.RuleAssemblyIdentifierList); ids != nil {
		for _, ident := range ids.All(grammar.RuleIdentifier) {
			names = append(names, r.reduceIdentifier(ident))
		}
	}
	return names, nil
}

func (r *reducer) reduceAssemblyLocalDefinition(cst *grammar.Node) (*ast.AssemblyLocalDefinition, error) {
	names, err := r.reduceAssemblyTargetNames(cst.First(grammar.RuleAssemblyIdentifierOrList))
	if err != nil {
		return nil, err
	}
	var expression ast.AssemblyItem
	if exprNode := cst.First(grammar.RuleAssemblyExpression); exprNode != nil {
		expression, err = r.reduceAssemblyExpression(exprNode)
		if err != nil {
			return nil, err
		}
	}
	n := &ast.AssemblyLocalDefinition{Names: names, Expression: expression}
	r.finish(n, cst)
	return n, nil
}

func (r *reducer) reduceAssemblyAssignment(cst *grammar.Node) (*ast.AssemblyAssignment, error) {
	names, err := r.reduceAssemblyTargetNames(cst.First(grammar.RuleAssemblyIdentifierOrList))
	if err != nil {
		return nil, err
	}
	exprNode := cst.First(grammar.RuleAssemblyExpression)
	if exprNode == nil {
		return nil, reductionErr(cst, "assembly assignment has no expression")
	}
	expression, err := r.reduceAssemblyExpression(exprNode)
	if err != nil {
		return nil, err
	}
	n := &ast.AssemblyAssignment{Names: names, Expression: expression}
	r.finish(n, cst)
	return n, nil
}

func (r *reducer) reduceAssemblyStackAssignment(cst *grammar.Node) (*ast.AssemblyStackAssignment, error) {
	exprNode := cst.First(grammar.RuleAssemblyExpression)
	if exprNode == nil {
		return nil, reductionErr(cst, "stack assignment has no expression")
	}
	expression, err := r.reduceAssemblyExpression(exprNode)
	if err != nil {
		return nil, err
	}
	n := &ast.AssemblyStackAssignment{
		Name:       cst.First(grammar.RuleIdentifier).Text(),
		Expression: expression,
	}
	r.finish(n, cst)
	return n, nil
}

func (r *reducer) reduceLabelDefinition(cst *grammar.Node) *ast.LabelDefinition {
	n := &ast.LabelDefinition{Name: cst.First(grammar.RuleIdentifier).Text()}
	r.finish(n, cst)
	return n
}

func (r *reducer) reduceAssemblySwitch(cst *grammar.Node) (*ast.AssemblySwitch, error) {
	exprNode := cst.First(grammar.RuleAssemblyExpression)
	if exprNode == nil {
		return nil, reductionErr(cst, "assembly switch has no expression")
	}
	expression, err := r.reduceAssemblyExpression(exprNode)
	if err != nil {
		return nil, err
	}
	cases := []*ast.AssemblyCase{}
	for _, caseNode := range cst.All(grammar.RuleAssemblyCase) {
		c, err := r.reduceAssemblyCase(caseNode)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	n := &ast.AssemblySwitch{Expression: expression, Cases: cases}
	r.finish(n, cst)
	return n, nil
}

func (r *reducer) reduceAssemblyCase(cst *grammar.Node) (*ast.AssemblyCase, error) {
	var value ast.AssemblyItem
	if tokenAt(cst, 0) == "case" {
		v, err := r.reduceAssemblyLiteral(cst.First(grammar.RuleAssemblyLiteral))
		if err != nil {
			return nil, err
		}
		value = v
	}
	blockNode := cst.First(grammar.RuleAssemblyBlock)
	if blockNode == nil {
		return nil, reductionErr(cst, "assembly case has no block")
	}
	block, err := r.reduceAssemblyBlock(blockNode)
	if err != nil {
		return nil, err
	}
	n := &ast.AssemblyCase{Value: value, Block: block, Default: value == nil}
	r.finish(n, cst)
	return n, nil
}

func (r *reducer) reduceAssemblyFunctionDefinition(cst *grammar.Node) (*ast.AssemblyFunctionDefinition, error) {
	arguments := []ast.AssemblyItem{}
	if ids := cst.First(grammar.RuleAssemblyIdentifierList); ids != nil {
		for _, ident := range ids.All(grammar.RuleIdentifier) {
			arguments = append(arguments, r.reduceIdentifier(ident))
		}
	}

	returnArguments := []ast.AssemblyItem{}
	if returns := cst.First(grammar.RuleAssemblyFunctionReturns); returns != nil {
		if ids := returns.First(grammar.RuleAssemblyIdentifierList); ids != nil {
			for _, ident := range ids.All(grammar.RuleIdentifier) {
				returnArguments = append(returnArguments, r.reduceIdentifier(ident))
			}
		}
	}

	blockNode := cst.First(grammar.RuleAssemblyBlock)
	if blockNode == nil {
		return nil, reductionErr(cst, "assembly function has no body")
	}
	body, err := r.reduceAssemblyBlock(blockNode)
	if err != nil {
		return nil, err
	}

	n := &ast.AssemblyFunctionDefinition{
		Name:            cst.First(grammar.RuleIdentifier).Text(),
		Arguments:       arguments,
		ReturnArguments: returnArguments,
		Body:            body,
	}
	r.finish(n, cst)
	return n, nil
}

func (r *reducer) reduceAssemblyFor(cst *grammar.Node) (*ast.AssemblyFor, error) {
	pre, err := r.reduceAssemblyItem(cst.Child(1))
	if err != nil {
		return nil, err
	}
	condition, err := r.reduceAssemblyItem(cst.Child(2))
	if err != nil {
		return nil, err
	}
	post, err := r.reduceAssemblyItem(cst.Child(3))
	if err != nil {
		return nil, err
	}
	body, err := r.reduceAssemblyBlock(cst.Child(4))
	if err != nil {
		return nil, err
	}
	n := &ast.AssemblyFor{Pre: pre, Condition: condition, Post: post, Body: body}
	r.finish(n, cst)
	return n, nil
}

func (r *reducer) reduceAssemblyIf(cst *grammar.Node) (*ast.AssemblyIf, error) {
	exprNode := cst.First(grammar.RuleAssemblyExpression)
	if exprNode == nil {
		return nil, reductionErr(cst, "assembly if has no condition")
	}
	condition, err := r.reduceAssemblyExpression(exprNode)
	if err != nil {
		return nil, err
	}
	blockNode := cst.First(grammar.RuleAssemblyBlock)
	if blockNode == nil {
		return nil, reductionErr(cst, "assembly if has no body")
	}
	body, err := r.reduceAssemblyBlock(blockNode)
	if err != nil {
		return nil, err
	}
	n := &ast.AssemblyIf{Condition: condition, Body: body}
	r.finish(n, cst)
	return n, nil
}
