package ast

// Block is a braced statement sequence.
type Block struct {
	base
	Statements []Statement `json:"statements"`
}

// ExpressionStatement wraps an expression used as a statement. The
// expression is nil only in the synthesized loop-expression slot of a
// ForStatement without a post clause.
type ExpressionStatement struct {
	base
	Expression Expression `json:"expression"`
}

// IfStatement is `if (condition) trueBody [else falseBody]`.
type IfStatement struct {
	base
	Condition Expression `json:"condition"`
	TrueBody  Statement  `json:"trueBody"`
	FalseBody Statement  `json:"falseBody"`
}

// WhileStatement is `while (condition) body`.
type WhileStatement struct {
	base
	Condition Expression `json:"condition"`
	Body      Statement  `json:"body"`
}

// DoWhileStatement is `do body while (condition);`.
type DoWhileStatement struct {
	base
	Condition Expression `json:"condition"`
	Body      Statement  `json:"body"`
}

// ForStatement is `for (init; condition; loop) body`. InitExpression
// and ConditionExpression are nil when their clause is empty;
// LoopExpression is always present as an ExpressionStatement whose
// Expression may be nil.
type ForStatement struct {
	base
	InitExpression      Statement            `json:"initExpression"`
	ConditionExpression Expression           `json:"conditionExpression"`
	LoopExpression      *ExpressionStatement `json:"loopExpression"`
	Body                Statement            `json:"body"`
}

// ContinueStatement is `continue;` in statement position.
type ContinueStatement struct {
	base
}

// BreakStatement is `break;` in statement position.
type BreakStatement struct {
	base
}

// Continue is the assembly-level `continue`.
type Continue struct {
	base
}

// Break is the assembly-level `break`.
type Break struct {
	base
}

// ReturnStatement is `return [expression];`.
type ReturnStatement struct {
	base
	Expression Expression `json:"expression"`
}

// EmitStatement is `emit EventName(args);`.
type EmitStatement struct {
	base
	EventCall *FunctionCall `json:"eventCall"`
}

// RevertStatement is `revert ErrorName(args);`.
type RevertStatement struct {
	base
	RevertCall *FunctionCall `json:"revertCall"`
}

// ThrowStatement is the legacy `throw;`.
type ThrowStatement struct {
	base
}

// VariableDeclarationStatement declares one or more local variables,
// including the tuple form. Variables contains nils for omitted tuple
// slots, as in `(, uint b) = f();`.
type VariableDeclarationStatement struct {
	base
	Variables    []Node     `json:"variables"`
	InitialValue Expression `json:"initialValue"`
}

// UncheckedStatement is an `unchecked { ... }` block.
type UncheckedStatement struct {
	base
	Block *Block `json:"block"`
}

// TryStatement is `try expression [returns (...)] block catch ...`.
type TryStatement struct {
	base
	Expression       Expression             `json:"expression"`
	ReturnParameters []*VariableDeclaration `json:"returnParameters"`
	Body             *Block                 `json:"body"`
	CatchClauses     []*CatchClause         `json:"catchClauses"`
}

// CatchClause is one catch arm. Kind is nil for the parameterless
// form, otherwise "Error" or "Panic"; IsReasonStringType is true for
// the Error form.
type CatchClause struct {
	base
	IsReasonStringType bool                   `json:"isReasonStringType"`
	Kind               *string                `json:"kind"`
	Parameters         []*VariableDeclaration `json:"parameters"`
	Body               *Block                 `json:"body"`
}

// InlineAssemblyStatement is an `assembly { ... }` block, optionally
// with a dialect string and flags like ("memory-safe").
type InlineAssemblyStatement struct {
	base
	Language *string        `json:"language"`
	Flags    []string       `json:"flags"`
	Body     *AssemblyBlock `json:"body"`
}

func (*Block) NodeType() NodeType                        { return KindBlock }
func (*ExpressionStatement) NodeType() NodeType          { return KindExpressionStatement }
func (*IfStatement) NodeType() NodeType                  { return KindIfStatement }
func (*WhileStatement) NodeType() NodeType               { return KindWhileStatement }
func (*DoWhileStatement) NodeType() NodeType             { return KindDoWhileStatement }
func (*ForStatement) NodeType() NodeType                 { return KindForStatement }
func (*ContinueStatement) NodeType() NodeType            { return KindContinueStatement }
func (*BreakStatement) NodeType() NodeType               { return KindBreakStatement }
func (*Continue) NodeType() NodeType                     { return KindContinue }
func (*Break) NodeType() NodeType                        { return KindBreak }
func (*ReturnStatement) NodeType() NodeType              { return KindReturnStatement }
func (*EmitStatement) NodeType() NodeType                { return KindEmitStatement }
func (*RevertStatement) NodeType() NodeType              { return KindRevertStatement }
func (*ThrowStatement) NodeType() NodeType               { return KindThrowStatement }
func (*VariableDeclarationStatement) NodeType() NodeType { return KindVariableDeclarationStatement }
func (*UncheckedStatement) NodeType() NodeType           { return KindUncheckedStatement }
func (*TryStatement) NodeType() NodeType                 { return KindTryStatement }
func (*CatchClause) NodeType() NodeType                  { return KindCatchClause }
func (*InlineAssemblyStatement) NodeType() NodeType      { return KindInlineAssemblyStatement }

func (*Block) isStmt()                        {}
func (*ExpressionStatement) isStmt()          {}
func (*IfStatement) isStmt()                  {}
func (*WhileStatement) isStmt()               {}
func (*DoWhileStatement) isStmt()             {}
func (*ForStatement) isStmt()                 {}
func (*ContinueStatement) isStmt()            {}
func (*BreakStatement) isStmt()               {}
func (*ReturnStatement) isStmt()              {}
func (*EmitStatement) isStmt()                {}
func (*RevertStatement) isStmt()              {}
func (*ThrowStatement) isStmt()               {}
func (*VariableDeclarationStatement) isStmt() {}
func (*UncheckedStatement) isStmt()           {}
func (*TryStatement) isStmt()                 {}
func (*InlineAssemblyStatement) isStmt()      {}
