package ast

// Children returns the node's direct child nodes in field order,
// skipping absent optional children and omitted tuple slots. The
// switch is exhaustive over the closed node set; traversal never
// reflects over struct fields.
func Children(n Node) []Node {
	var out []Node
	switch v := n.(type) {
	case *SourceUnit:
		out = append(out, v.Children...)
	case *PragmaDirective:
	case *ImportDirective:
		out = appendNode(out, v.PathLiteral)
		out = appendNode(out, v.UnitAliasIdentifier)
		for _, pair := range v.SymbolAliasesIdentifiers {
			out = appendNode(out, pair[0])
			out = appendNode(out, pair[1])
		}
	case *ContractDefinition:
		for _, b := range v.BaseContracts {
			out = appendNode(out, b)
		}
		out = append(out, v.Children...)
	case *InheritanceSpecifier:
		out = appendNode(out, v.BaseName)
		out = appendExprs(out, v.Arguments)
	case *StateVariableDeclaration:
		for _, d := range v.Variables {
			out = appendNode(out, d)
		}
		out = appendExpr(out, v.InitialValue)
	case *StateVariableDeclarationVariable:
		out = appendVarDeclChildren(out, &v.VariableDeclaration)
		for _, o := range v.Override {
			out = appendNode(out, o)
		}
	case *VariableDeclaration:
		out = appendVarDeclChildren(out, v)
	case *UsingForDeclaration:
		out = appendType(out, v.TypeName)
	case *StructDefinition:
		out = appendVarDecls(out, v.Members)
	case *ModifierDefinition:
		out = appendVarDecls(out, v.Parameters)
		for _, o := range v.Override {
			out = appendNode(out, o)
		}
		out = appendNode(out, v.Body)
	case *ModifierInvocation:
		out = appendExprs(out, v.Arguments)
	case *FunctionDefinition:
		out = appendVarDecls(out, v.Parameters)
		for _, m := range v.Modifiers {
			out = appendNode(out, m)
		}
		out = appendVarDecls(out, v.ReturnParameters)
		out = appendNode(out, v.Body)
		for _, o := range v.Override {
			out = appendNode(out, o)
		}
	case *EventDefinition:
		out = appendVarDecls(out, v.Parameters)
	case *CustomErrorDefinition:
		out = appendVarDecls(out, v.Parameters)
	case *TypeDefinition:
		out = appendNode(out, v.Definition)
	case *EnumValue:
	case *EnumDefinition:
		for _, m := range v.Members {
			out = appendNode(out, m)
		}
	case *FileLevelConstant:
		out = appendType(out, v.TypeName)
		out = appendExpr(out, v.InitialValue)

	case *ElementaryTypeName, *UserDefinedTypeName:
	case *Mapping:
		out = appendType(out, v.KeyType)
		out = appendNode(out, v.KeyName)
		out = appendType(out, v.ValueType)
		out = appendNode(out, v.ValueName)
	case *ArrayTypeName:
		out = appendType(out, v.BaseTypeName)
		out = appendExpr(out, v.Length)
	case *FunctionTypeName:
		out = appendVarDecls(out, v.ParameterTypes)
		out = appendVarDecls(out, v.ReturnTypes)

	case *Block:
		for _, s := range v.Statements {
			out = appendStmt(out, s)
		}
	case *ExpressionStatement:
		out = appendExpr(out, v.Expression)
	case *IfStatement:
		out = appendExpr(out, v.Condition)
		out = appendStmt(out, v.TrueBody)
		out = appendStmt(out, v.FalseBody)
	case *WhileStatement:
		out = appendExpr(out, v.Condition)
		out = appendStmt(out, v.Body)
	case *DoWhileStatement:
		out = appendExpr(out, v.Condition)
		out = appendStmt(out, v.Body)
	case *ForStatement:
		out = appendStmt(out, v.InitExpression)
		out = appendExpr(out, v.ConditionExpression)
		out = appendNode(out, v.LoopExpression)
		out = appendStmt(out, v.Body)
	case *ContinueStatement, *BreakStatement, *Continue, *Break, *ThrowStatement:
	case *ReturnStatement:
		out = appendExpr(out, v.Expression)
	case *EmitStatement:
		out = appendNode(out, v.EventCall)
	case *RevertStatement:
		out = appendNode(out, v.RevertCall)
	case *VariableDeclarationStatement:
		for _, d := range v.Variables {
			out = appendNode(out, d)
		}
		out = appendExpr(out, v.InitialValue)
	case *UncheckedStatement:
		out = appendNode(out, v.Block)
	case *TryStatement:
		out = appendExpr(out, v.Expression)
		out = appendVarDecls(out, v.ReturnParameters)
		out = appendNode(out, v.Body)
		for _, c := range v.CatchClauses {
			out = appendNode(out, c)
		}
	case *CatchClause:
		out = appendVarDecls(out, v.Parameters)
		out = appendNode(out, v.Body)
	case *InlineAssemblyStatement:
		out = appendNode(out, v.Body)

	case *Identifier, *BooleanLiteral, *NumberLiteral, *StringLiteral,
		*HexLiteral, *HexNumber, *DecimalNumber:
	case *BinaryOperation:
		out = appendExpr(out, v.Left)
		out = appendExpr(out, v.Right)
	case *UnaryOperation:
		out = appendExpr(out, v.SubExpression)
	case *NewExpression:
		out = appendType(out, v.TypeName)
	case *Conditional:
		out = appendExpr(out, v.Condition)
		out = appendExpr(out, v.TrueExpression)
		out = appendExpr(out, v.FalseExpression)
	case *MemberAccess:
		out = appendExpr(out, v.Expression)
	case *IndexAccess:
		out = appendExpr(out, v.Base)
		out = appendExpr(out, v.Index)
	case *IndexRangeAccess:
		out = appendExpr(out, v.Base)
		out = appendExpr(out, v.IndexStart)
		out = appendExpr(out, v.IndexEnd)
	case *TupleExpression:
		out = appendExprs(out, v.Components)
	case *FunctionCall:
		out = appendExpr(out, v.Expression)
		out = appendExprs(out, v.Arguments)
		for _, id := range v.Identifiers {
			out = appendNode(out, id)
		}
	case *NameValueExpression:
		out = appendExpr(out, v.Expression)
		out = appendNode(out, v.Arguments)
	case *NameValueList:
		for _, id := range v.Identifiers {
			out = appendNode(out, id)
		}
		out = appendExprs(out, v.Arguments)

	case *AssemblyBlock:
		out = appendItems(out, v.Operations)
	case *AssemblyCall:
		out = appendItems(out, v.Arguments)
	case *AssemblyLocalDefinition:
		out = appendItems(out, v.Names)
		out = appendItem(out, v.Expression)
	case *AssemblyAssignment:
		out = appendItems(out, v.Names)
		out = appendItem(out, v.Expression)
	case *AssemblyStackAssignment:
		out = appendItem(out, v.Expression)
	case *LabelDefinition:
	case *AssemblySwitch:
		out = appendItem(out, v.Expression)
		for _, c := range v.Cases {
			out = appendNode(out, c)
		}
	case *AssemblyCase:
		out = appendItem(out, v.Value)
		out = appendNode(out, v.Block)
	case *AssemblyFunctionDefinition:
		out = appendItems(out, v.Arguments)
		out = appendItems(out, v.ReturnArguments)
		out = appendNode(out, v.Body)
	case *AssemblyFor:
		out = appendItem(out, v.Pre)
		out = appendItem(out, v.Condition)
		out = appendItem(out, v.Post)
		out = appendNode(out, v.Body)
	case *AssemblyIf:
		out = appendItem(out, v.Condition)
		out = appendNode(out, v.Body)
	case *AssemblyMemberAccess:
		out = appendNode(out, v.Expression)
		out = appendNode(out, v.MemberName)
	}
	return out
}

func appendVarDeclChildren(out []Node, v *VariableDeclaration) []Node {
	out = appendType(out, v.TypeName)
	out = appendNode(out, v.Identifier)
	out = appendExpr(out, v.Expression)
	return out
}

func appendVarDecls(out []Node, ds []*VariableDeclaration) []Node {
	for _, d := range ds {
		out = appendNode(out, d)
	}
	return out
}

// appendNode adds a concrete node unless its pointer is nil. The
// argument is typed Node so every pointer kind can pass through; the
// callers above never wrap a nil pointer into a non-nil interface.
func appendNode(out []Node, n Node) []Node {
	if n == nil || isNil(n) {
		return out
	}
	return append(out, n)
}

func appendExpr(out []Node, e Expression) []Node {
	if e == nil {
		return out
	}
	return append(out, e)
}

func appendExprs(out []Node, es []Expression) []Node {
	for _, e := range es {
		out = appendExpr(out, e)
	}
	return out
}

func appendStmt(out []Node, s Statement) []Node {
	if s == nil {
		return out
	}
	return append(out, s)
}

func appendType(out []Node, t TypeName) []Node {
	if t == nil {
		return out
	}
	return append(out, t)
}

func appendItem(out []Node, it AssemblyItem) []Node {
	if it == nil {
		return out
	}
	return append(out, it)
}

func appendItems(out []Node, its []AssemblyItem) []Node {
	for _, it := range its {
		out = appendItem(out, it)
	}
	return out
}

// isNil catches a typed-nil pointer passed through the Node interface,
// e.g. a nil *Block stored in an interface field.
func isNil(n Node) bool {
	switch v := n.(type) {
	case *Block:
		return v == nil
	case *Identifier:
		return v == nil
	case *StringLiteral:
		return v == nil
	case *FunctionCall:
		return v == nil
	case *AssemblyBlock:
		return v == nil
	case *NameValueList:
		return v == nil
	case *ExpressionStatement:
		return v == nil
	case *ElementaryTypeName:
		return v == nil
	case *UserDefinedTypeName:
		return v == nil
	case *InheritanceSpecifier:
		return v == nil
	case *ModifierInvocation:
		return v == nil
	case *StateVariableDeclarationVariable:
		return v == nil
	case *VariableDeclaration:
		return v == nil
	case *EnumValue:
		return v == nil
	case *CatchClause:
		return v == nil
	case *AssemblyCase:
		return v == nil
	}
	return false
}

// Walk traverses the subtree rooted at n in source order, calling
// enter before a node's children and exit after them. A false return
// from enter prunes the node: neither its children nor its exit
// callback run. Either callback may be nil.
func Walk(n Node, enter func(Node) bool, exit func(Node)) {
	if n == nil {
		return
	}
	if enter != nil && !enter(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, enter, exit)
	}
	if exit != nil {
		exit(n)
	}
}

// VisitFunc is a visitor callback. The return value matters only for
// enter callbacks: false prunes descent into the node.
type VisitFunc func(Node) bool

// Visit walks the tree invoking callbacks from the visitor map. Keys
// are node-kind names ("FunctionCall"), optionally suffixed ":exit"
// for the post-order callback. Kinds without an entry are descended
// into silently.
func Visit(n Node, visitor map[string]VisitFunc) {
	Walk(n,
		func(nd Node) bool {
			if fn, ok := visitor[string(nd.NodeType())]; ok {
				return fn(nd)
			}
			return true
		},
		func(nd Node) {
			if fn, ok := visitor[string(nd.NodeType())+":exit"]; ok {
				fn(nd)
			}
		})
}
