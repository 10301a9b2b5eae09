package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solparse/ast"
)

// parseAsmOps parses an assembly body and returns its operations.
func parseAsmOps(t *testing.T, body string) []ast.AssemblyItem {
	t.Helper()
	stmt, ok := singleStmt(t, `assembly { `+body+` }`).(*ast.InlineAssemblyStatement)
	require.True(t, ok)
	require.NotNil(t, stmt.Body)
	return stmt.Body.Operations
}

func singleAsmOp(t *testing.T, body string) ast.AssemblyItem {
	t.Helper()
	ops := parseAsmOps(t, body)
	require.Len(t, ops, 1)
	return ops[0]
}

func TestParseAssemblyLetBinding(t *testing.T) {
	op, ok := singleAsmOp(t, `let x := add(1, 2)`).(*ast.AssemblyLocalDefinition)
	require.True(t, ok)

	require.Len(t, op.Names, 1)
	name, ok := op.Names[0].(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "x", name.Name)

	call, ok := op.Expression.(*ast.AssemblyCall)
	require.True(t, ok)
	assert.Equal(t, "add", call.FunctionName)
	require.Len(t, call.Arguments, 2)
	assert.Equal(t, "1", call.Arguments[0].(*ast.DecimalNumber).Value)
	assert.Equal(t, "2", call.Arguments[1].(*ast.DecimalNumber).Value)
}

func TestParseAssemblyLetWithoutValue(t *testing.T) {
	op, ok := singleAsmOp(t, `let x`).(*ast.AssemblyLocalDefinition)
	require.True(t, ok)
	require.Len(t, op.Names, 1)
	assert.Nil(t, op.Expression)
}

func TestParseAssemblyLetMultipleNames(t *testing.T) {
	op, ok := singleAsmOp(t, `let a, b := pair()`).(*ast.AssemblyLocalDefinition)
	require.True(t, ok)
	require.Len(t, op.Names, 2)
	assert.Equal(t, "a", op.Names[0].(*ast.Identifier).Name)
	assert.Equal(t, "b", op.Names[1].(*ast.Identifier).Name)
}

func TestParseAssemblyCall(t *testing.T) {
	op, ok := singleAsmOp(t, `mstore(0x40, ptr)`).(*ast.AssemblyCall)
	require.True(t, ok)
	assert.Equal(t, "mstore", op.FunctionName)
	require.Len(t, op.Arguments, 2)

	assert.Equal(t, "0x40", op.Arguments[0].(*ast.HexNumber).Value)

	// A bare name in argument position reads as a call with no
	// arguments, the way the grammar routes identifiers.
	arg, ok := op.Arguments[1].(*ast.AssemblyCall)
	require.True(t, ok)
	assert.Equal(t, "ptr", arg.FunctionName)
	assert.Empty(t, arg.Arguments)
}

func TestParseAssemblyBareIdentifier(t *testing.T) {
	op, ok := singleAsmOp(t, `stop`).(*ast.AssemblyCall)
	require.True(t, ok)
	assert.Equal(t, "stop", op.FunctionName)
	assert.NotNil(t, op.Arguments)
	assert.Empty(t, op.Arguments)
}

func TestParseAssemblyLeaveBreakContinue(t *testing.T) {
	leave, ok := singleAsmOp(t, `leave`).(*ast.AssemblyCall)
	require.True(t, ok)
	assert.Equal(t, "leave", leave.FunctionName)

	ops := parseAsmOps(t, `for { } lt(i, 10) { } { break continue }`)
	require.Len(t, ops, 1)
	body := ops[0].(*ast.AssemblyFor).Body
	require.Len(t, body.Operations, 2)
	_, ok = body.Operations[0].(*ast.Break)
	assert.True(t, ok)
	_, ok = body.Operations[1].(*ast.Continue)
	assert.True(t, ok)
}

func TestParseAssemblyAssignment(t *testing.T) {
	op, ok := singleAsmOp(t, `x := calldataload(4)`).(*ast.AssemblyAssignment)
	require.True(t, ok)

	require.Len(t, op.Names, 1)
	assert.Equal(t, "x", op.Names[0].(*ast.Identifier).Name)

	call, ok := op.Expression.(*ast.AssemblyCall)
	require.True(t, ok)
	assert.Equal(t, "calldataload", call.FunctionName)
}

func TestParseAssemblyMultiAssignment(t *testing.T) {
	op, ok := singleAsmOp(t, `a, b := pair()`).(*ast.AssemblyAssignment)
	require.True(t, ok)
	require.Len(t, op.Names, 2)
	assert.Equal(t, "a", op.Names[0].(*ast.Identifier).Name)
	assert.Equal(t, "b", op.Names[1].(*ast.Identifier).Name)
}

func TestParseAssemblyMemberAssignment(t *testing.T) {
	op, ok := singleAsmOp(t, `x.slot := v`).(*ast.AssemblyAssignment)
	require.True(t, ok)

	require.Len(t, op.Names, 1)
	member, ok := op.Names[0].(*ast.AssemblyMemberAccess)
	require.True(t, ok)
	assert.Equal(t, "x", member.Expression.Name)
	assert.Equal(t, "slot", member.MemberName.Name)
}

func TestParseAssemblyMemberRead(t *testing.T) {
	op, ok := singleAsmOp(t, `let y := x.offset`).(*ast.AssemblyLocalDefinition)
	require.True(t, ok)

	member, ok := op.Expression.(*ast.AssemblyMemberAccess)
	require.True(t, ok)
	assert.Equal(t, "offset", member.MemberName.Name)
}

func TestParseAssemblyStackAssignment(t *testing.T) {
	op, ok := singleAsmOp(t, `add(1, 2) =: x`).(*ast.AssemblyStackAssignment)
	require.True(t, ok)
	assert.Equal(t, "x", op.Name)

	call, ok := op.Expression.(*ast.AssemblyCall)
	require.True(t, ok)
	assert.Equal(t, "add", call.FunctionName)
}

func TestParseAssemblySwitch(t *testing.T) {
	op, ok := singleAsmOp(t, `switch shift
	case 0 { result := 1 }
	default { result := 2 }`).(*ast.AssemblySwitch)
	require.True(t, ok)

	cond, ok := op.Expression.(*ast.AssemblyCall)
	require.True(t, ok)
	assert.Equal(t, "shift", cond.FunctionName)

	require.Len(t, op.Cases, 2)

	first := op.Cases[0]
	assert.False(t, first.Default)
	assert.Equal(t, "0", first.Value.(*ast.DecimalNumber).Value)
	require.NotNil(t, first.Block)
	assert.Len(t, first.Block.Operations, 1)

	fallback := op.Cases[1]
	assert.True(t, fallback.Default)
	assert.Nil(t, fallback.Value)
	require.NotNil(t, fallback.Block)
}

func TestParseAssemblyFor(t *testing.T) {
	op, ok := singleAsmOp(t, `for { let i := 0 } lt(i, 10) { i := add(i, 1) } { }`).(*ast.AssemblyFor)
	require.True(t, ok)

	pre, ok := op.Pre.(*ast.AssemblyBlock)
	require.True(t, ok)
	require.Len(t, pre.Operations, 1)
	_, ok = pre.Operations[0].(*ast.AssemblyLocalDefinition)
	assert.True(t, ok)

	cond, ok := op.Condition.(*ast.AssemblyCall)
	require.True(t, ok)
	assert.Equal(t, "lt", cond.FunctionName)

	post, ok := op.Post.(*ast.AssemblyBlock)
	require.True(t, ok)
	assert.Len(t, post.Operations, 1)

	require.NotNil(t, op.Body)
	assert.Empty(t, op.Body.Operations)
}

func TestParseAssemblyIf(t *testing.T) {
	op, ok := singleAsmOp(t, `if eq(a, b) { revert(0, 0) }`).(*ast.AssemblyIf)
	require.True(t, ok)

	cond, ok := op.Condition.(*ast.AssemblyCall)
	require.True(t, ok)
	assert.Equal(t, "eq", cond.FunctionName)

	require.NotNil(t, op.Body)
	require.Len(t, op.Body.Operations, 1)
	call, ok := op.Body.Operations[0].(*ast.AssemblyCall)
	require.True(t, ok)
	assert.Equal(t, "revert", call.FunctionName)
}

func TestParseAssemblyFunctionDefinition(t *testing.T) {
	op, ok := singleAsmOp(t, `function twice(v) -> r { r := add(v, v) }`).(*ast.AssemblyFunctionDefinition)
	require.True(t, ok)

	assert.Equal(t, "twice", op.Name)
	require.Len(t, op.Arguments, 1)
	assert.Equal(t, "v", op.Arguments[0].(*ast.Identifier).Name)
	require.Len(t, op.ReturnArguments, 1)
	assert.Equal(t, "r", op.ReturnArguments[0].(*ast.Identifier).Name)
	require.NotNil(t, op.Body)
	assert.Len(t, op.Body.Operations, 1)
}

func TestParseAssemblyFunctionWithoutReturns(t *testing.T) {
	op, ok := singleAsmOp(t, `function noop() { }`).(*ast.AssemblyFunctionDefinition)
	require.True(t, ok)
	assert.NotNil(t, op.Arguments)
	assert.Empty(t, op.Arguments)
	assert.NotNil(t, op.ReturnArguments)
	assert.Empty(t, op.ReturnArguments)
}

func TestParseAssemblyLabel(t *testing.T) {
	ops := parseAsmOps(t, `loop: pop(x)`)
	require.Len(t, ops, 2)

	label, ok := ops[0].(*ast.LabelDefinition)
	require.True(t, ok)
	assert.Equal(t, "loop", label.Name)

	_, ok = ops[1].(*ast.AssemblyCall)
	assert.True(t, ok)
}

func TestParseAssemblyLiterals(t *testing.T) {
	boolean, ok := singleAsmOp(t, `let v := true`).(*ast.AssemblyLocalDefinition)
	require.True(t, ok)
	assert.True(t, boolean.Expression.(*ast.BooleanLiteral).Value)

	hexNum, ok := singleAsmOp(t, `let v := 0xff`).(*ast.AssemblyLocalDefinition)
	require.True(t, ok)
	assert.Equal(t, "0xff", hexNum.Expression.(*ast.HexNumber).Value)

	decimal, ok := singleAsmOp(t, `let v := 42`).(*ast.AssemblyLocalDefinition)
	require.True(t, ok)
	assert.Equal(t, "42", decimal.Expression.(*ast.DecimalNumber).Value)

	str, ok := singleAsmOp(t, `let v := "abc"`).(*ast.AssemblyLocalDefinition)
	require.True(t, ok)
	lit := str.Expression.(*ast.StringLiteral)
	assert.Equal(t, "abc", lit.Value)
	assert.Equal(t, []string{"abc"}, lit.Parts)
	assert.Equal(t, []bool{false}, lit.IsUnicode)

	hexData, ok := singleAsmOp(t, `let v := hex"00ff"`).(*ast.AssemblyLocalDefinition)
	require.True(t, ok)
	hexLit := hexData.Expression.(*ast.HexLiteral)
	assert.Equal(t, "00ff", hexLit.Value)
	assert.Equal(t, []string{"00ff"}, hexLit.Parts)
}

func TestParseAssemblyStringItem(t *testing.T) {
	op, ok := singleAsmOp(t, `"abc"`).(*ast.StringLiteral)
	require.True(t, ok)
	assert.Equal(t, "abc", op.Value)
	assert.Equal(t, []string{"abc"}, op.Parts)
}

func TestParseAssemblyNestedBlock(t *testing.T) {
	op, ok := singleAsmOp(t, `{ let x := 1 }`).(*ast.AssemblyBlock)
	require.True(t, ok)
	require.Len(t, op.Operations, 1)
	_, ok = op.Operations[0].(*ast.AssemblyLocalDefinition)
	assert.True(t, ok)
}
