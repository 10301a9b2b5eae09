package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solparse/ast"
	"solparse/grammar"
)

// parseBody parses a function body and returns its statements.
func parseBody(t *testing.T, body string) []ast.Statement {
	t.Helper()
	fn := firstFunction(t, `contract C { function f() public { `+body+` } }`)
	require.NotNil(t, fn.Body)
	return fn.Body.Statements
}

func singleStmt(t *testing.T, body string) ast.Statement {
	t.Helper()
	stmts := parseBody(t, body)
	require.Len(t, stmts, 1)
	return stmts[0]
}

func TestParseIfStatement(t *testing.T) {
	stmt, ok := singleStmt(t, `if (x > 1) { y = 2; } else { y = 3; }`).(*ast.IfStatement)
	require.True(t, ok)

	cond, ok := stmt.Condition.(*ast.BinaryOperation)
	require.True(t, ok)
	assert.Equal(t, ">", cond.Operator)

	trueBody, ok := stmt.TrueBody.(*ast.Block)
	require.True(t, ok)
	assert.Len(t, trueBody.Statements, 1)

	falseBody, ok := stmt.FalseBody.(*ast.Block)
	require.True(t, ok)
	assert.Len(t, falseBody.Statements, 1)
}

func TestParseIfWithoutElse(t *testing.T) {
	stmt, ok := singleStmt(t, `if (ready) run();`).(*ast.IfStatement)
	require.True(t, ok)
	assert.Nil(t, stmt.FalseBody)

	// An unbraced branch is the statement itself, not a block.
	_, ok = stmt.TrueBody.(*ast.ExpressionStatement)
	assert.True(t, ok, "expected an expression statement, got %T", stmt.TrueBody)
}

func TestParseElseIfChain(t *testing.T) {
	stmt, ok := singleStmt(t, `if (a) { } else if (b) { } else { }`).(*ast.IfStatement)
	require.True(t, ok)

	chained, ok := stmt.FalseBody.(*ast.IfStatement)
	require.True(t, ok, "expected the else branch to be an if statement, got %T", stmt.FalseBody)
	assert.NotNil(t, chained.FalseBody)
}

func TestParseWhileStatement(t *testing.T) {
	stmt, ok := singleStmt(t, `while (i < n) { i++; }`).(*ast.WhileStatement)
	require.True(t, ok)

	cond, ok := stmt.Condition.(*ast.BinaryOperation)
	require.True(t, ok)
	assert.Equal(t, "<", cond.Operator)

	body, ok := stmt.Body.(*ast.Block)
	require.True(t, ok)
	assert.Len(t, body.Statements, 1)
}

func TestParseDoWhileStatement(t *testing.T) {
	stmt, ok := singleStmt(t, `do { i++; } while (i < n);`).(*ast.DoWhileStatement)
	require.True(t, ok)
	_, ok = stmt.Body.(*ast.Block)
	assert.True(t, ok)
	_, ok = stmt.Condition.(*ast.BinaryOperation)
	assert.True(t, ok)
}

func TestParseForStatement(t *testing.T) {
	stmt, ok := singleStmt(t, `for (uint256 i = 0; i < 10; i++) { sum += i; }`).(*ast.ForStatement)
	require.True(t, ok)

	init, ok := stmt.InitExpression.(*ast.VariableDeclarationStatement)
	require.True(t, ok, "expected a declaration init, got %T", stmt.InitExpression)
	require.Len(t, init.Variables, 1)

	cond, ok := stmt.ConditionExpression.(*ast.BinaryOperation)
	require.True(t, ok)
	assert.Equal(t, "<", cond.Operator)

	require.NotNil(t, stmt.LoopExpression)
	loop, ok := stmt.LoopExpression.Expression.(*ast.UnaryOperation)
	require.True(t, ok)
	assert.Equal(t, "++", loop.Operator)
	assert.False(t, loop.IsPrefix)

	_, ok = stmt.Body.(*ast.Block)
	assert.True(t, ok)
}

func TestParseForStatementEmptyHeader(t *testing.T) {
	stmt, ok := singleStmt(t, `for (;;) {}`).(*ast.ForStatement)
	require.True(t, ok)
	assert.Nil(t, stmt.InitExpression)
	assert.Nil(t, stmt.ConditionExpression)

	// The loop slot always carries its wrapper statement; an empty
	// slot leaves the inner expression nil and the wrapper unspanned.
	require.NotNil(t, stmt.LoopExpression)
	assert.Nil(t, stmt.LoopExpression.Expression)
	assert.Nil(t, stmt.LoopExpression.Loc)
	assert.NotNil(t, stmt.Loc)
}

func TestParseReturnStatements(t *testing.T) {
	bare, ok := singleStmt(t, `return;`).(*ast.ReturnStatement)
	require.True(t, ok)
	assert.Nil(t, bare.Expression)

	valued, ok := singleStmt(t, `return x + 1;`).(*ast.ReturnStatement)
	require.True(t, ok)
	_, ok = valued.Expression.(*ast.BinaryOperation)
	assert.True(t, ok)
}

func TestParseBreakContinueThrow(t *testing.T) {
	loop, ok := singleStmt(t, `while (true) { break; continue; }`).(*ast.WhileStatement)
	require.True(t, ok)
	body := loop.Body.(*ast.Block)
	require.Len(t, body.Statements, 2)
	_, ok = body.Statements[0].(*ast.BreakStatement)
	assert.True(t, ok)
	_, ok = body.Statements[1].(*ast.ContinueStatement)
	assert.True(t, ok)

	_, ok = singleStmt(t, `throw;`).(*ast.ThrowStatement)
	assert.True(t, ok)
}

func TestParseEmitStatement(t *testing.T) {
	stmt, ok := singleStmt(t, `emit Transfer(from, to, 1);`).(*ast.EmitStatement)
	require.True(t, ok)
	require.NotNil(t, stmt.EventCall)

	callee, ok := stmt.EventCall.Expression.(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "Transfer", callee.Name)
	assert.Len(t, stmt.EventCall.Arguments, 3)
}

func TestParseEmitQualifiedEvent(t *testing.T) {
	stmt, ok := singleStmt(t, `emit Vault.Deposit(amount);`).(*ast.EmitStatement)
	require.True(t, ok)

	callee, ok := stmt.EventCall.Expression.(*ast.MemberAccess)
	require.True(t, ok)
	assert.Equal(t, "Deposit", callee.MemberName)
}

func TestParseRevertStatement(t *testing.T) {
	stmt, ok := singleStmt(t, `revert Unauthorized(msg.sender);`).(*ast.RevertStatement)
	require.True(t, ok)
	require.NotNil(t, stmt.RevertCall)

	callee, ok := stmt.RevertCall.Expression.(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "Unauthorized", callee.Name)
	assert.Len(t, stmt.RevertCall.Arguments, 1)
}

func TestParseRevertBuiltinCallIsExpression(t *testing.T) {
	// Only the named-error form is a revert statement; the builtin
	// call keeps its expression shape.
	stmt, ok := singleStmt(t, `revert("nope");`).(*ast.ExpressionStatement)
	require.True(t, ok)

	call, ok := stmt.Expression.(*ast.FunctionCall)
	require.True(t, ok)
	callee, ok := call.Expression.(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "revert", callee.Name)
}

func TestParseUncheckedStatement(t *testing.T) {
	stmt, ok := singleStmt(t, `unchecked { x = x + 1; }`).(*ast.UncheckedStatement)
	require.True(t, ok)
	require.NotNil(t, stmt.Block)
	assert.Len(t, stmt.Block.Statements, 1)
}

func TestParseNestedBlockStatement(t *testing.T) {
	stmt, ok := singleStmt(t, `{ x = 1; }`).(*ast.Block)
	require.True(t, ok)
	assert.Len(t, stmt.Statements, 1)
}

func TestParseTryStatement(t *testing.T) {
	stmt, ok := singleStmt(t, `try token.transfer(to, 1) returns (bool ok) {
		count = 1;
	} catch Error(string memory reason) {
		count = 2;
	} catch Panic(uint256 code) {
		count = 3;
	} catch {
		count = 4;
	}`).(*ast.TryStatement)
	require.True(t, ok)

	_, ok = stmt.Expression.(*ast.FunctionCall)
	require.True(t, ok, "expected the tried expression to be a call, got %T", stmt.Expression)
	require.Len(t, stmt.ReturnParameters, 1)
	require.NotNil(t, stmt.ReturnParameters[0].Name)
	assert.Equal(t, "ok", *stmt.ReturnParameters[0].Name)
	require.NotNil(t, stmt.Body)

	require.Len(t, stmt.CatchClauses, 3)

	errClause := stmt.CatchClauses[0]
	require.NotNil(t, errClause.Kind)
	assert.Equal(t, "Error", *errClause.Kind)
	assert.True(t, errClause.IsReasonStringType)
	require.Len(t, errClause.Parameters, 1)
	assert.Equal(t, "string", elementaryName(t, errClause.Parameters[0].TypeName))

	panicClause := stmt.CatchClauses[1]
	require.NotNil(t, panicClause.Kind)
	assert.Equal(t, "Panic", *panicClause.Kind)
	assert.False(t, panicClause.IsReasonStringType)

	bareClause := stmt.CatchClauses[2]
	assert.Nil(t, bareClause.Kind)
	assert.Nil(t, bareClause.Parameters)
	assert.False(t, bareClause.IsReasonStringType)
}

func TestParseCatchWithDataParameter(t *testing.T) {
	stmt, ok := singleStmt(t, `try f() {} catch (bytes memory data) {}`).(*ast.TryStatement)
	require.True(t, ok)
	require.Len(t, stmt.CatchClauses, 1)

	clause := stmt.CatchClauses[0]
	assert.Nil(t, clause.Kind)
	assert.False(t, clause.IsReasonStringType)
	require.Len(t, clause.Parameters, 1)
	assert.Equal(t, "bytes", elementaryName(t, clause.Parameters[0].TypeName))
}

func TestParseCatchRejectsUnknownKind(t *testing.T) {
	src := `contract C { function f() public {
		try g() {} catch Failure(uint256 code) {}
	} }`
	result, err := Parse(src, DefaultOptions())
	require.Error(t, err)
	assert.Nil(t, result)

	rerr, ok := err.(*ReductionError)
	require.True(t, ok, "expected a reduction error, got %T", err)
	assert.Contains(t, rerr.Message, "Expected 'Error' or 'Panic' identifier in catch clause")
}

func TestParseVariableDeclarationStatement(t *testing.T) {
	stmt, ok := singleStmt(t, `uint256 x = price + 1;`).(*ast.VariableDeclarationStatement)
	require.True(t, ok)
	require.Len(t, stmt.Variables, 1)

	decl, ok := stmt.Variables[0].(*ast.VariableDeclaration)
	require.True(t, ok)
	require.NotNil(t, decl.Name)
	assert.Equal(t, "x", *decl.Name)
	assert.Equal(t, "uint256", elementaryName(t, decl.TypeName))

	_, ok = stmt.InitialValue.(*ast.BinaryOperation)
	assert.True(t, ok)
}

func TestParseDeclarationWithStorageLocation(t *testing.T) {
	stmt, ok := singleStmt(t, `bytes memory buf;`).(*ast.VariableDeclarationStatement)
	require.True(t, ok)
	require.Len(t, stmt.Variables, 1)

	decl := stmt.Variables[0].(*ast.VariableDeclaration)
	require.NotNil(t, decl.StorageLocation)
	assert.Equal(t, "memory", *decl.StorageLocation)
	assert.Nil(t, stmt.InitialValue)
}

func TestParseTupleDeclaration(t *testing.T) {
	stmt, ok := singleStmt(t, `(uint256 a, uint256 b) = pair();`).(*ast.VariableDeclarationStatement)
	require.True(t, ok)
	require.Len(t, stmt.Variables, 2)

	first := stmt.Variables[0].(*ast.VariableDeclaration)
	require.NotNil(t, first.Name)
	assert.Equal(t, "a", *first.Name)
	second := stmt.Variables[1].(*ast.VariableDeclaration)
	require.NotNil(t, second.Name)
	assert.Equal(t, "b", *second.Name)

	_, ok = stmt.InitialValue.(*ast.FunctionCall)
	assert.True(t, ok)
}

func TestParseTupleDeclarationKeepsElidedSlots(t *testing.T) {
	stmt, ok := singleStmt(t, `(, uint256 b) = pair();`).(*ast.VariableDeclarationStatement)
	require.True(t, ok)

	// The skipped slot stays in the list as a nil entry so positions
	// line up with the returned tuple.
	require.Len(t, stmt.Variables, 2)
	assert.Nil(t, stmt.Variables[0])
	decl, ok := stmt.Variables[1].(*ast.VariableDeclaration)
	require.True(t, ok)
	require.NotNil(t, decl.Name)
	assert.Equal(t, "b", *decl.Name)
}

func TestParseVarDeclarationList(t *testing.T) {
	stmt, ok := singleStmt(t, `var (a, b) = pair();`).(*ast.VariableDeclarationStatement)
	require.True(t, ok)
	require.Len(t, stmt.Variables, 2)

	// The legacy var form declares untyped names.
	first := stmt.Variables[0].(*ast.VariableDeclaration)
	assert.Nil(t, first.TypeName)
	require.NotNil(t, first.Name)
	assert.Equal(t, "a", *first.Name)
	second := stmt.Variables[1].(*ast.VariableDeclaration)
	require.NotNil(t, second.Name)
	assert.Equal(t, "b", *second.Name)
}

func TestParseInlineAssembly(t *testing.T) {
	stmt, ok := singleStmt(t, `assembly { }`).(*ast.InlineAssemblyStatement)
	require.True(t, ok)
	assert.Nil(t, stmt.Language)
	assert.NotNil(t, stmt.Flags)
	assert.Empty(t, stmt.Flags)
	require.NotNil(t, stmt.Body)
	assert.Empty(t, stmt.Body.Operations)
}

func TestParseInlineAssemblyDialect(t *testing.T) {
	stmt, ok := singleStmt(t, `assembly "evmasm" { }`).(*ast.InlineAssemblyStatement)
	require.True(t, ok)
	require.NotNil(t, stmt.Language)
	assert.Equal(t, "evmasm", *stmt.Language)
}

func TestParseInlineAssemblyFlags(t *testing.T) {
	stmt, ok := singleStmt(t, `assembly ("memory-safe") { }`).(*ast.InlineAssemblyStatement)
	require.True(t, ok)
	assert.Nil(t, stmt.Language)
	assert.Equal(t, []string{"memory-safe"}, stmt.Flags)
}

func TestStatementDispatchRejectsUnknownProduction(t *testing.T) {
	r := newReducer(DefaultOptions())
	cst := grammar.NewNode(grammar.RuleStatement, grammar.NewNode(grammar.Rule("bogus")))

	_, err := r.reduceStatement(cst)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown production "bogus"`)

	_, err = r.reduceStatement(nil)
	require.Error(t, err)
	assert.Equal(t, "missing statement", err.Error())
}
