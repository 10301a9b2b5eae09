package parser

import (
	"solparse/ast"
	"solparse/grammar"
	"solparse/token"
)

func (r *reducer) reduceBlock(cst *grammar.Node) (*ast.Block, error) {
	statements := []ast.Statement{}
	for _, stmtNode := range cst.All(grammar.RuleStatement) {
		stmt, err := r.reduceStatement(stmtNode)
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	n := &ast.Block{Statements: statements}
	r.finish(n, cst)
	return n, nil
}

// reduceStatement unwraps the statement production and dispatches on
// the inner rule.
func (r *reducer) reduceStatement(cst *grammar.Node) (ast.Statement, error) {
	if cst == nil {
		return nil, reductionErr(nil, "missing statement")
	}
	if err := r.descend(cst); err != nil {
		return nil, err
	}
	defer r.ascend()

	inner := cst.Child(0)
	if inner == nil {
		return nil, reductionErr(cst, "empty statement production")
	}
	switch inner.Rule {
	case grammar.RuleIfStatement:
		return r.reduceIfStatement(inner)
	case grammar.RuleTryStatement:
		return r.reduceTryStatement(inner)
	case grammar.RuleWhileStatement:
		return r.reduceWhileStatement(inner)
	case grammar.RuleForStatement:
		return r.reduceForStatement(inner)
	case grammar.RuleBlock:
		return r.reduceBlock(inner)
	case grammar.RuleInlineAssemblyStatement:
		return r.reduceInlineAssemblyStatement(inner)
	case grammar.RuleDoWhileStatement:
		return r.reduceDoWhileStatement(inner)
	case grammar.RuleContinueStatement:
		return r.reduceContinueStatement(inner), nil
	case grammar.RuleBreakStatement:
		return r.reduceBreakStatement(inner), nil
	case grammar.RuleReturnStatement:
		return r.reduceReturnStatement(inner)
	case grammar.RuleThrowStatement:
		return r.reduceThrowStatement(inner), nil
	case grammar.RuleEmitStatement:
		return r.reduceEmitStatement(inner)
	case grammar.RuleRevertStatement:
		return r.reduceRevertStatement(inner)
	case grammar.RuleUncheckedStatement:
		return r.reduceUncheckedStatement(inner)
	case grammar.RuleSimpleStatement:
		return r.reduceSimpleStatement(inner)
	}
	return nil, reductionErr(cst, "unknown production %q", inner.Rule)
}

func (r *reducer) reduceSimpleStatement(cst *grammar.Node) (ast.Statement, error) {
	inner := cst.Child(0)
	if inner == nil {
		return nil, reductionErr(cst, "empty statement production")
	}
	switch inner.Rule {
	case grammar.RuleVariableDeclarationStatement:
		return r.reduceVariableDeclarationStatement(inner)
	case grammar.RuleExpressionStatement:
		return r.reduceExpressionStatement(inner)
	}
	return nil, reductionErr(cst, "unknown production %q", inner.Rule)
}

func (r *reducer) reduceExpressionStatement(cst *grammar.Node) (*ast.ExpressionStatement, error) {
	if cst == nil {
		return nil, nil
	}
	expr, err := r.reduceExpression(cst.First(grammar.RuleExpression))
	if err != nil {
		return nil, err
	}
	n := &ast.ExpressionStatement{Expression: expr}
	r.finish(n, cst)
	return n, nil
}

func (r *reducer) reduceIfStatement(cst *grammar.Node) (*ast.IfStatement, error) {
	condition, err := r.reduceExpression(cst.First(grammar.RuleExpression))
	if err != nil {
		return nil, err
	}

	branches := cst.All(grammar.RuleStatement)
	if len(branches) == 0 {
		return nil, reductionErr(cst, "if statement has no body")
	}
	trueBody, err := r.reduceStatement(branches[0])
	if err != nil {
		return nil, err
	}
	var falseBody ast.Statement
	if len(branches) > 1 {
		falseBody, err = r.reduceStatement(branches[1])
		if err != nil {
			return nil, err
		}
	}

	n := &ast.IfStatement{Condition: condition, TrueBody: trueBody, FalseBody: falseBody}
	r.finish(n, cst)
	return n, nil
}

func (r *reducer) reduceTryStatement(cst *grammar.Node) (*ast.TryStatement, error) {
	expression, err := r.reduceExpression(cst.First(grammar.RuleExpression))
	if err != nil {
		return nil, err
	}

	var returnParameters []*ast.VariableDeclaration
	if returnsNode := cst.First(grammar.RuleReturnParameters); returnsNode != nil {
		rp, err := r.reduceReturnParameters(returnsNode)
		if err != nil {
			return nil, err
		}
		returnParameters = rp
	}

	blockNode := cst.First(grammar.RuleBlock)
	if blockNode == nil {
		return nil, reductionErr(cst, "try statement has no body")
	}
	body, err := r.reduceBlock(blockNode)
	if err != nil {
		return nil, err
	}

	catchClauses := []*ast.CatchClause{}
	for _, clauseNode := range cst.All(grammar.RuleCatchClause) {
		clause, err := r.reduceCatchClause(clauseNode)
		if err != nil {
			return nil, err
		}
		catchClauses = append(catchClauses, clause)
	}

	n := &ast.TryStatement{
		Expression:       expression,
		ReturnParameters: returnParameters,
		Body:             body,
		CatchClauses:     catchClauses,
	}
	r.finish(n, cst)
	return n, nil
}

// reduceCatchClause accepts the bare catch plus the two named forms.
// Only Error and Panic are valid clause kinds.
func (r *reducer) reduceCatchClause(cst *grammar.Node) (*ast.CatchClause, error) {
	var parameters []*ast.VariableDeclaration
	if pl := cst.First(grammar.RuleParameterList); pl != nil {
		params, err := r.reduceParameterList(pl)
		if err != nil {
			return nil, err
		}
		parameters = params
	}

	var kind *string
	if ident := cst.First(grammar.RuleIdentifier); ident != nil {
		text := ident.Text()
		if text != "Error" && text != "Panic" {
			return nil, reductionErr(cst, "Expected 'Error' or 'Panic' identifier in catch clause")
		}
		kind = strp(text)
	}

	blockNode := cst.First(grammar.RuleBlock)
	if blockNode == nil {
		return nil, reductionErr(cst, "catch clause has no body")
	}
	body, err := r.reduceBlock(blockNode)
	if err != nil {
		return nil, err
	}

	n := &ast.CatchClause{
		IsReasonStringType: kind != nil && *kind == "Error",
		Kind:               kind,
		Parameters:         parameters,
		Body:               body,
	}
	r.finish(n, cst)
	return n, nil
}

func (r *reducer) reduceWhileStatement(cst *grammar.Node) (*ast.WhileStatement, error) {
	condition, err := r.reduceExpression(cst.First(grammar.RuleExpression))
	if err != nil {
		return nil, err
	}
	body, err := r.reduceStatement(cst.First(grammar.RuleStatement))
	if err != nil {
		return nil, err
	}
	n := &ast.WhileStatement{Condition: condition, Body: body}
	r.finish(n, cst)
	return n, nil
}

func (r *reducer) reduceDoWhileStatement(cst *grammar.Node) (*ast.DoWhileStatement, error) {
	body, err := r.reduceStatement(cst.First(grammar.RuleStatement))
	if err != nil {
		return nil, err
	}
	condition, err := r.reduceExpression(cst.First(grammar.RuleExpression))
	if err != nil {
		return nil, err
	}
	n := &ast.DoWhileStatement{Condition: condition, Body: body}
	r.finish(n, cst)
	return n, nil
}

// reduceForStatement reduces the three optional header slots. The
// loop expression is always wrapped in an expression statement, even
// when absent, and that wrapper carries no source span of its own.
func (r *reducer) reduceForStatement(cst *grammar.Node) (*ast.ForStatement, error) {
	var initExpression ast.Statement
	if simple := cst.First(grammar.RuleSimpleStatement); simple != nil {
		init, err := r.reduceSimpleStatement(simple)
		if err != nil {
			return nil, err
		}
		initExpression = init
	}

	var condition ast.Expression
	if es := cst.First(grammar.RuleExpressionStatement); es != nil {
		stmt, err := r.reduceExpressionStatement(es)
		if err != nil {
			return nil, err
		}
		condition = stmt.Expression
	}

	loopExpression := &ast.ExpressionStatement{}
	if exprNode := cst.First(grammar.RuleExpression); exprNode != nil {
		expr, err := r.reduceExpression(exprNode)
		if err != nil {
			return nil, err
		}
		loopExpression.Expression = expr
	}
	ast.Attach(loopExpression, nil, nil)

	body, err := r.reduceStatement(cst.First(grammar.RuleStatement))
	if err != nil {
		return nil, err
	}

	n := &ast.ForStatement{
		InitExpression:      initExpression,
		ConditionExpression: condition,
		LoopExpression:      loopExpression,
		Body:                body,
	}
	r.finish(n, cst)
	return n, nil
}

func (r *reducer) reduceContinueStatement(cst *grammar.Node) *ast.ContinueStatement {
	n := &ast.ContinueStatement{}
	r.finish(n, cst)
	return n
}

func (r *reducer) reduceBreakStatement(cst *grammar.Node) *ast.BreakStatement {
	n := &ast.BreakStatement{}
	r.finish(n, cst)
	return n
}

func (r *reducer) reduceReturnStatement(cst *grammar.Node) (*ast.ReturnStatement, error) {
	var expression ast.Expression
	if exprNode := cst.First(grammar.RuleExpression); exprNode != nil {
		expr, err := r.reduceExpression(exprNode)
		if err != nil {
			return nil, err
		}
		expression = expr
	}
	n := &ast.ReturnStatement{Expression: expression}
	r.finish(n, cst)
	return n, nil
}

func (r *reducer) reduceThrowStatement(cst *grammar.Node) *ast.ThrowStatement {
	n := &ast.ThrowStatement{}
	r.finish(n, cst)
	return n
}

func (r *reducer) reduceEmitStatement(cst *grammar.Node) (*ast.EmitStatement, error) {
	callNode := cst.First(grammar.RuleFunctionCall)
	if callNode == nil {
		return nil, reductionErr(cst, "emit statement has no call")
	}
	eventCall, err := r.reduceCallShape(callNode)
	if err != nil {
		return nil, err
	}
	n := &ast.EmitStatement{EventCall: eventCall}
	r.finish(n, cst)
	return n, nil
}

func (r *reducer) reduceRevertStatement(cst *grammar.Node) (*ast.RevertStatement, error) {
	callNode := cst.First(grammar.RuleFunctionCall)
	if callNode == nil {
		return nil, reductionErr(cst, "revert statement has no call")
	}
	revertCall, err := r.reduceCallShape(callNode)
	if err != nil {
		return nil, err
	}
	n := &ast.RevertStatement{RevertCall: revertCall}
	r.finish(n, cst)
	return n, nil
}

func (r *reducer) reduceUncheckedStatement(cst *grammar.Node) (*ast.UncheckedStatement, error) {
	blockNode := cst.First(grammar.RuleBlock)
	if blockNode == nil {
		return nil, reductionErr(cst, "unchecked statement has no block")
	}
	block, err := r.reduceBlock(blockNode)
	if err != nil {
		return nil, err
	}
	n := &ast.UncheckedStatement{Block: block}
	r.finish(n, cst)
	return n, nil
}

// reduceVariableDeclarationStatement covers the three declaration
// forms: a single typed declaration, the legacy `var (a, b)` target
// list, and a parenthesized declaration list. Elided tuple slots stay
// nil in Variables.
func (r *reducer) reduceVariableDeclarationStatement(cst *grammar.Node) (*ast.VariableDeclarationStatement, error) {
	variables := []ast.Node{}
	if decl := cst.First(grammar.RuleVariableDeclaration); decl != nil {
		v, err := r.reduceVariableDeclaration(decl)
		if err != nil {
			return nil, err
		}
		variables = append(variables, v)
	} else if identList := cst.First(grammar.RuleIdentifierList); identList != nil {
		vars, err := r.reduceIdentifierList(identList)
		if err != nil {
			return nil, err
		}
		variables = vars
	} else if declList := cst.First(grammar.RuleVariableDeclarationList); declList != nil {
		vars, err := r.reduceVariableDeclarationList(declList)
		if err != nil {
			return nil, err
		}
		variables = vars
	}

	var initialValue ast.Expression
	if exprNode := cst.First(grammar.RuleExpression); exprNode != nil {
		expr, err := r.reduceExpression(exprNode)
		if err != nil {
			return nil, err
		}
		initialValue = expr
	}

	n := &ast.VariableDeclarationStatement{Variables: variables, InitialValue: initialValue}
	r.finish(n, cst)
	return n, nil
}

// reduceIdentifierList reduces the `var (a, , b)` target list. Named
// slots become untyped declarations spanning their identifier; elided
// slots stay nil.
func (r *reducer) reduceIdentifierList(cst *grammar.Node) ([]ast.Node, error) {
	inner := []*grammar.Node{}
	if cst.Count() > 2 {
		inner = cst.Children[1 : cst.Count()-1]
	}
	slots, err := mapCommasToNulls(inner)
	if err != nil {
		return nil, err
	}
	variables := []ast.Node{}
	for _, slot := range slots {
		if slot == nil {
			variables = append(variables, nil)
			continue
		}
		decl := &ast.VariableDeclaration{
			Name:       strp(slot.Text()),
			Identifier: r.reduceIdentifier(slot),
			IsStateVar: false,
			IsIndexed:  false,
		}
		r.finish(decl, slot)
		variables = append(variables, decl)
	}
	return variables, nil
}

func (r *reducer) reduceVariableDeclarationList(cst *grammar.Node) ([]ast.Node, error) {
	slots, err := mapCommasToNulls(cst.Children)
	if err != nil {
		return nil, err
	}
	variables := []ast.Node{}
	for _, slot := range slots {
		if slot == nil {
			variables = append(variables, nil)
			continue
		}
		decl, err := r.reduceVariableDeclaration(slot)
		if err != nil {
			return nil, err
		}
		variables = append(variables, decl)
	}
	return variables, nil
}

// reduceInlineAssemblyStatement reads the optional dialect string and
// the optional parenthesized flag list ahead of the block. Both are
// stored unquoted.
func (r *reducer) reduceInlineAssemblyStatement(cst *grammar.Node) (*ast.InlineAssemblyStatement, error) {
	var language *string
	for _, child := range cst.Children {
		if child.Tok != nil && child.Tok.Type == token.STRING {
			language = strp(unquote(child.Tok.Value))
			break
		}
	}

	flags := []string{}
	if flagNode := cst.First(grammar.RuleInlineAssemblyStatementFlag); flagNode != nil {
		flags = append(flags, unquote(flagNode.First(grammar.RuleStringLiteral).Text()))
	}

	blockNode := cst.First(grammar.RuleAssemblyBlock)
	if blockNode == nil {
		return nil, reductionErr(cst, "inline assembly has no block")
	}
	body, err := r.reduceAssemblyBlock(blockNode)
	if err != nil {
		return nil, err
	}

	n := &ast.InlineAssemblyStatement{Language: language, Flags: flags, Body: body}
	r.finish(n, cst)
	return n, nil
}
