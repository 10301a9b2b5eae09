package ast

// ElementaryTypeName is a built-in type. StateMutability is non-nil
// only for `address payable`.
// Example: `uint256`, `address payable`, `bytes32`
type ElementaryTypeName struct {
	base
	Name            string  `json:"name"`
	StateMutability *string `json:"stateMutability"`
}

// UserDefinedTypeName references a user-declared type by its possibly
// dotted path.
// Example: `IERC20`, `Lib.Data`
type UserDefinedTypeName struct {
	base
	NamePath string `json:"namePath"`
}

// Mapping is a mapping type; KeyName/ValueName carry the optional
// names of the 0.8.18+ named-mapping form.
// Example: `mapping(address owner => uint256 balance)`
type Mapping struct {
	base
	KeyType   TypeName    `json:"keyType"`
	KeyName   *Identifier `json:"keyName"`
	ValueType TypeName    `json:"valueType"`
	ValueName *Identifier `json:"valueName"`
}

// ArrayTypeName is an array type; Length is nil for dynamic arrays.
// Example: `uint256[]`, `bytes32[4]`
type ArrayTypeName struct {
	base
	BaseTypeName TypeName   `json:"baseTypeName"`
	Length       Expression `json:"length"`
}

// FunctionTypeName is a function type as used for variables of
// function type.
// Example: `function (uint) external returns (bool)`
type FunctionTypeName struct {
	base
	ParameterTypes  []*VariableDeclaration `json:"parameterTypes"`
	ReturnTypes     []*VariableDeclaration `json:"returnTypes"`
	Visibility      string                 `json:"visibility"`
	StateMutability *string                `json:"stateMutability"`
}

func (*ElementaryTypeName) NodeType() NodeType  { return KindElementaryTypeName }
func (*UserDefinedTypeName) NodeType() NodeType { return KindUserDefinedTypeName }
func (*Mapping) NodeType() NodeType             { return KindMapping }
func (*ArrayTypeName) NodeType() NodeType       { return KindArrayTypeName }
func (*FunctionTypeName) NodeType() NodeType    { return KindFunctionTypeName }

func (*ElementaryTypeName) isTypeName()  {}
func (*UserDefinedTypeName) isTypeName() {}
func (*Mapping) isTypeName()             {}
func (*ArrayTypeName) isTypeName()       {}
func (*FunctionTypeName) isTypeName()    {}

// Type names double as primary expressions, e.g. the tuple of types in
// `abi.decode(data, (uint, address))` or `uint[]` in `new uint[](n)`.
func (*ElementaryTypeName) isExpr()  {}
func (*UserDefinedTypeName) isExpr() {}
func (*Mapping) isExpr()             {}
func (*ArrayTypeName) isExpr()       {}
func (*FunctionTypeName) isExpr()    {}
