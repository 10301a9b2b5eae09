package ast

// AssemblyBlock is a braced sequence of assembly items.
type AssemblyBlock struct {
	base
	Operations []AssemblyItem `json:"operations"`
}

// AssemblyCall is an opcode or function application; a bare identifier
// in expression position is also a call with no arguments.
// Example: `mstore(0x40, add(ptr, 0x20))`
type AssemblyCall struct {
	base
	FunctionName string         `json:"functionName"`
	Arguments    []AssemblyItem `json:"arguments"`
}

// AssemblyLocalDefinition is a `let` binding; Expression is nil for a
// bare declaration.
// Example: `let x, y := f()`
type AssemblyLocalDefinition struct {
	base
	Names      []AssemblyItem `json:"names"`
	Expression AssemblyItem   `json:"expression"`
}

// AssemblyAssignment is `names := expression`.
type AssemblyAssignment struct {
	base
	Names      []AssemblyItem `json:"names"`
	Expression AssemblyItem   `json:"expression"`
}

// AssemblyStackAssignment is the legacy `=: name` form.
type AssemblyStackAssignment struct {
	base
	Name       string       `json:"name"`
	Expression AssemblyItem `json:"expression"`
}

// LabelDefinition is the legacy `name:` jump label.
type LabelDefinition struct {
	base
	Name string `json:"name"`
}

// AssemblySwitch is `switch expression case ... default ...`.
type AssemblySwitch struct {
	base
	Expression AssemblyItem    `json:"expression"`
	Cases      []*AssemblyCase `json:"cases"`
}

// AssemblyCase is one switch arm; Value is nil and Default true for
// the `default` arm.
type AssemblyCase struct {
	base
	Value   AssemblyItem   `json:"value"`
	Block   *AssemblyBlock `json:"block"`
	Default bool           `json:"default"`
}

// AssemblyFunctionDefinition is a Yul function.
// Example: `function alloc(size) -> ptr { ... }`
type AssemblyFunctionDefinition struct {
	base
	Name            string         `json:"name"`
	Arguments       []AssemblyItem `json:"arguments"`
	ReturnArguments []AssemblyItem `json:"returnArguments"`
	Body            *AssemblyBlock `json:"body"`
}

// AssemblyFor is `for pre condition post body`.
type AssemblyFor struct {
	base
	Pre       AssemblyItem   `json:"pre"`
	Condition AssemblyItem   `json:"condition"`
	Post      AssemblyItem   `json:"post"`
	Body      *AssemblyBlock `json:"body"`
}

// AssemblyIf is `if condition body`.
type AssemblyIf struct {
	base
	Condition AssemblyItem   `json:"condition"`
	Body      *AssemblyBlock `json:"body"`
}

// AssemblyMemberAccess is a dotted reference like `ptr.slot`.
type AssemblyMemberAccess struct {
	base
	Expression *Identifier `json:"expression"`
	MemberName *Identifier `json:"memberName"`
}

func (*AssemblyBlock) NodeType() NodeType              { return KindAssemblyBlock }
func (*AssemblyCall) NodeType() NodeType               { return KindAssemblyCall }
func (*AssemblyLocalDefinition) NodeType() NodeType    { return KindAssemblyLocalDefinition }
func (*AssemblyAssignment) NodeType() NodeType         { return KindAssemblyAssignment }
func (*AssemblyStackAssignment) NodeType() NodeType    { return KindAssemblyStackAssignment }
func (*LabelDefinition) NodeType() NodeType            { return KindLabelDefinition }
func (*AssemblySwitch) NodeType() NodeType             { return KindAssemblySwitch }
func (*AssemblyCase) NodeType() NodeType               { return KindAssemblyCase }
func (*AssemblyFunctionDefinition) NodeType() NodeType { return KindAssemblyFunctionDefinition }
func (*AssemblyFor) NodeType() NodeType                { return KindAssemblyFor }
func (*AssemblyIf) NodeType() NodeType                 { return KindAssemblyIf }
func (*AssemblyMemberAccess) NodeType() NodeType       { return KindAssemblyMemberAccess }

func (*AssemblyBlock) isAsmItem()              {}
func (*AssemblyCall) isAsmItem()               {}
func (*AssemblyLocalDefinition) isAsmItem()    {}
func (*AssemblyAssignment) isAsmItem()         {}
func (*AssemblyStackAssignment) isAsmItem()    {}
func (*LabelDefinition) isAsmItem()            {}
func (*AssemblySwitch) isAsmItem()             {}
func (*AssemblyCase) isAsmItem()               {}
func (*AssemblyFunctionDefinition) isAsmItem() {}
func (*AssemblyFor) isAsmItem()                {}
func (*AssemblyIf) isAsmItem()                 {}
func (*AssemblyMemberAccess) isAsmItem()       {}

// Literals, identifiers and the loop-control keywords are shared with
// the statement/expression grammars.
func (*Identifier) isAsmItem()     {}
func (*StringLiteral) isAsmItem()  {}
func (*HexLiteral) isAsmItem()     {}
func (*HexNumber) isAsmItem()      {}
func (*DecimalNumber) isAsmItem()  {}
func (*BooleanLiteral) isAsmItem() {}
func (*Break) isAsmItem()          {}
func (*Continue) isAsmItem()       {}
