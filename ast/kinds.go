package ast

// The closed node-kind set. Visitor callbacks are keyed by these
// values (see Visit), so the strings are part of the public surface
// and must not change.
const (
	KindSourceUnit                 NodeType = "SourceUnit"
	KindPragmaDirective            NodeType = "PragmaDirective"
	KindImportDirective            NodeType = "ImportDirective"
	KindContractDefinition         NodeType = "ContractDefinition"
	KindInheritanceSpecifier       NodeType = "InheritanceSpecifier"
	KindStateVariableDeclaration   NodeType = "StateVariableDeclaration"
	KindUsingForDeclaration        NodeType = "UsingForDeclaration"
	KindStructDefinition           NodeType = "StructDefinition"
	KindModifierDefinition         NodeType = "ModifierDefinition"
	KindModifierInvocation         NodeType = "ModifierInvocation"
	KindFunctionDefinition         NodeType = "FunctionDefinition"
	KindEventDefinition            NodeType = "EventDefinition"
	KindCustomErrorDefinition      NodeType = "CustomErrorDefinition"
	KindRevertStatement            NodeType = "RevertStatement"
	KindEnumValue                  NodeType = "EnumValue"
	KindEnumDefinition             NodeType = "EnumDefinition"
	KindVariableDeclaration        NodeType = "VariableDeclaration"
	KindUserDefinedTypeName        NodeType = "UserDefinedTypeName"
	KindMapping                    NodeType = "Mapping"
	KindArrayTypeName              NodeType = "ArrayTypeName"
	KindFunctionTypeName           NodeType = "FunctionTypeName"
	KindBlock                      NodeType = "Block"
	KindExpressionStatement        NodeType = "ExpressionStatement"
	KindIfStatement                NodeType = "IfStatement"
	KindWhileStatement             NodeType = "WhileStatement"
	KindForStatement               NodeType = "ForStatement"
	KindInlineAssemblyStatement    NodeType = "InlineAssemblyStatement"
	KindDoWhileStatement           NodeType = "DoWhileStatement"
	KindContinueStatement          NodeType = "ContinueStatement"
	KindBreak                      NodeType = "Break"
	KindContinue                   NodeType = "Continue"
	KindBreakStatement             NodeType = "BreakStatement"
	KindReturnStatement            NodeType = "ReturnStatement"
	KindEmitStatement              NodeType = "EmitStatement"
	KindThrowStatement             NodeType = "ThrowStatement"
	KindVariableDeclarationStatement NodeType = "VariableDeclarationStatement"
	KindElementaryTypeName         NodeType = "ElementaryTypeName"
	KindFunctionCall               NodeType = "FunctionCall"
	KindAssemblyBlock              NodeType = "AssemblyBlock"
	KindAssemblyCall               NodeType = "AssemblyCall"
	KindAssemblyLocalDefinition    NodeType = "AssemblyLocalDefinition"
	KindAssemblyAssignment         NodeType = "AssemblyAssignment"
	KindAssemblyStackAssignment    NodeType = "AssemblyStackAssignment"
	KindLabelDefinition            NodeType = "LabelDefinition"
	KindAssemblySwitch             NodeType = "AssemblySwitch"
	KindAssemblyCase               NodeType = "AssemblyCase"
	KindAssemblyFunctionDefinition NodeType = "AssemblyFunctionDefinition"
	KindAssemblyFor                NodeType = "AssemblyFor"
	KindAssemblyIf                 NodeType = "AssemblyIf"
	KindTupleExpression            NodeType = "TupleExpression"
	KindNameValueExpression        NodeType = "NameValueExpression"
	KindBooleanLiteral             NodeType = "BooleanLiteral"
	KindNumberLiteral              NodeType = "NumberLiteral"
	KindIdentifier                 NodeType = "Identifier"
	KindBinaryOperation            NodeType = "BinaryOperation"
	KindUnaryOperation             NodeType = "UnaryOperation"
	KindNewExpression              NodeType = "NewExpression"
	KindConditional                NodeType = "Conditional"
	KindStringLiteral              NodeType = "StringLiteral"
	KindHexLiteral                 NodeType = "HexLiteral"
	KindHexNumber                  NodeType = "HexNumber"
	KindDecimalNumber              NodeType = "DecimalNumber"
	KindMemberAccess               NodeType = "MemberAccess"
	KindIndexAccess                NodeType = "IndexAccess"
	KindIndexRangeAccess           NodeType = "IndexRangeAccess"
	KindNameValueList              NodeType = "NameValueList"
	KindUncheckedStatement         NodeType = "UncheckedStatement"
	KindTryStatement               NodeType = "TryStatement"
	KindCatchClause                NodeType = "CatchClause"
	KindFileLevelConstant          NodeType = "FileLevelConstant"
	KindAssemblyMemberAccess       NodeType = "AssemblyMemberAccess"
	KindTypeDefinition             NodeType = "TypeDefinition"
)
