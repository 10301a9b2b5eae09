package ast

// ContractDefinition covers contracts, interfaces and libraries; Kind
// records which of the three introduced it.
// Example: `contract ERC20 is IERC20, Context { ... }`
type ContractDefinition struct {
	base
	Name          string                  `json:"name"`
	BaseContracts []*InheritanceSpecifier `json:"baseContracts"`
	Kind          string                  `json:"kind"`
	Children      []Node                  `json:"children"`
}

// InheritanceSpecifier is one entry of a contract's `is` list,
// optionally with constructor arguments.
// Example: `Ownable(msg.sender)` in `contract C is Ownable(msg.sender)`
type InheritanceSpecifier struct {
	base
	BaseName  *UserDefinedTypeName `json:"baseName"`
	Arguments []Expression         `json:"arguments"`
}

// VariableDeclaration represents a declared variable anywhere it can
// occur: parameter, local, struct member or event field. It is a pure
// value node holding no back-reference to its owner. Name and the
// tri-state fields are nil where the source form has no slot for them
// (an unnamed parameter, a local without storage keywords).
type VariableDeclaration struct {
	base
	TypeName        TypeName    `json:"typeName"`
	Name            *string     `json:"name"`
	Identifier      *Identifier `json:"identifier"`
	StorageLocation *string     `json:"storageLocation"`
	IsStateVar      bool        `json:"isStateVar"`
	IsIndexed       bool        `json:"isIndexed"`
	IsDeclaredConst *bool       `json:"isDeclaredConst"`
	Expression      Expression  `json:"expression"`
	Visibility      *string     `json:"visibility"`
}

// StateVariableDeclarationVariable is the state-variable
// specialization of VariableDeclaration: it additionally carries the
// immutability flag and the override list. Its node kind stays
// "VariableDeclaration".
type StateVariableDeclarationVariable struct {
	VariableDeclaration
	IsImmutable bool                   `json:"isImmutable"`
	Override    []*UserDefinedTypeName `json:"override"`
}

// StateVariableDeclaration wraps the variables of one state-variable
// statement inside a contract body.
// Example: `uint256 public totalSupply = 0;`
type StateVariableDeclaration struct {
	base
	Variables    []*StateVariableDeclarationVariable `json:"variables"`
	InitialValue Expression                          `json:"initialValue"`
}

// UsingForDeclaration binds a library or a set of free functions to a
// type; TypeName is nil for the wildcard `*` form.
// Example: `using SafeMath for uint256;`
// Example: `using {add as +} for Fixed global;`
type UsingForDeclaration struct {
	base
	TypeName    TypeName  `json:"typeName"`
	Functions   []string  `json:"functions"`
	Operators   []*string `json:"operators"`
	LibraryName *string   `json:"libraryName"`
	IsGlobal    bool      `json:"isGlobal"`
}

// StructDefinition declares a struct at file or contract level.
type StructDefinition struct {
	base
	Name    string                 `json:"name"`
	Members []*VariableDeclaration `json:"members"`
}

// ModifierDefinition declares a function modifier. Body is nil for
// bodiless virtual modifiers.
type ModifierDefinition struct {
	base
	Name       string                 `json:"name"`
	Parameters []*VariableDeclaration `json:"parameters"`
	IsVirtual  bool                   `json:"isVirtual"`
	Override   []*UserDefinedTypeName `json:"override"`
	Body       *Block                 `json:"body"`
}

// ModifierInvocation is one entry of a function's modifier list.
// Arguments distinguishes `mod` (empty slice) from `mod()` (nil).
type ModifierInvocation struct {
	base
	Name      string       `json:"name"`
	Arguments []Expression `json:"arguments"`
}

// FunctionDefinition covers all four descriptor forms: `function`,
// `constructor`, `fallback` and `receive`. Classification is encoded
// in the three Is* booleans, of which at most one is true; Name is nil
// for the keyword forms and "" for the legacy unnamed-function fallback.
type FunctionDefinition struct {
	base
	Name             *string                `json:"name"`
	Parameters       []*VariableDeclaration `json:"parameters"`
	Modifiers        []*ModifierInvocation  `json:"modifiers"`
	StateMutability  *string                `json:"stateMutability"`
	Visibility       string                 `json:"visibility"`
	ReturnParameters []*VariableDeclaration `json:"returnParameters"`
	Body             *Block                 `json:"body"`
	Override         []*UserDefinedTypeName `json:"override"`
	IsConstructor    bool                   `json:"isConstructor"`
	IsReceiveEther   bool                   `json:"isReceiveEther"`
	IsFallback       bool                   `json:"isFallback"`
	IsVirtual        bool                   `json:"isVirtual"`
}

// EventDefinition declares an event; indexed fields are flagged on the
// individual parameters.
// Example: `event Transfer(address indexed from, address indexed to, uint256 value);`
type EventDefinition struct {
	base
	Name        string                 `json:"name"`
	Parameters  []*VariableDeclaration `json:"parameters"`
	IsAnonymous bool                   `json:"isAnonymous"`
}

// CustomErrorDefinition declares a custom error type.
// Example: `error InsufficientBalance(uint256 available, uint256 required);`
type CustomErrorDefinition struct {
	base
	Name       string                 `json:"name"`
	Parameters []*VariableDeclaration `json:"parameters"`
}

// TypeDefinition declares a user-defined value type over an
// elementary type.
// Example: `type Price is uint128;`
type TypeDefinition struct {
	base
	Name       string              `json:"name"`
	Definition *ElementaryTypeName `json:"definition"`
}

// EnumValue is a single member of an enum.
type EnumValue struct {
	base
	Name string `json:"name"`
}

// EnumDefinition declares an enum at file or contract level.
type EnumDefinition struct {
	base
	Name    string       `json:"name"`
	Members []*EnumValue `json:"members"`
}

func (*ContractDefinition) NodeType() NodeType       { return KindContractDefinition }
func (*InheritanceSpecifier) NodeType() NodeType     { return KindInheritanceSpecifier }
func (*VariableDeclaration) NodeType() NodeType      { return KindVariableDeclaration }
func (*StateVariableDeclaration) NodeType() NodeType { return KindStateVariableDeclaration }
func (*UsingForDeclaration) NodeType() NodeType      { return KindUsingForDeclaration }
func (*StructDefinition) NodeType() NodeType         { return KindStructDefinition }
func (*ModifierDefinition) NodeType() NodeType       { return KindModifierDefinition }
func (*ModifierInvocation) NodeType() NodeType       { return KindModifierInvocation }
func (*FunctionDefinition) NodeType() NodeType       { return KindFunctionDefinition }
func (*EventDefinition) NodeType() NodeType          { return KindEventDefinition }
func (*CustomErrorDefinition) NodeType() NodeType    { return KindCustomErrorDefinition }
func (*TypeDefinition) NodeType() NodeType           { return KindTypeDefinition }
func (*EnumValue) NodeType() NodeType                { return KindEnumValue }
func (*EnumDefinition) NodeType() NodeType           { return KindEnumDefinition }
