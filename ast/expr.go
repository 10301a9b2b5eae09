package ast

// Identifier is a name reference.
type Identifier struct {
	base
	Name string `json:"name"`
}

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	base
	Value bool `json:"value"`
}

// NumberLiteral is a number together with its optional subdenomination
// unit.
// Example: `1 ether`, `0x20`, `2.5e10`
type NumberLiteral struct {
	base
	Number          string  `json:"number"`
	Subdenomination *string `json:"subdenomination"`
}

// StringLiteral is one or more adjacent string fragments, concatenated
// into Value with quotes stripped and quote escapes resolved. Parts
// keeps the individual fragments and IsUnicode which of them carried
// the `unicode` prefix.
// Example: `"hello " "world"`
type StringLiteral struct {
	base
	Value     string   `json:"value"`
	Parts     []string `json:"parts"`
	IsUnicode []bool   `json:"isUnicode"`
}

// HexLiteral is one or more adjacent `hex"..."` fragments; Value is
// the concatenated hex digits.
type HexLiteral struct {
	base
	Value string   `json:"value"`
	Parts []string `json:"parts"`
}

// HexNumber is a hexadecimal number in assembly context.
type HexNumber struct {
	base
	Value string `json:"value"`
}

// DecimalNumber is a decimal number in assembly context.
type DecimalNumber struct {
	base
	Value string `json:"value"`
}

// BinaryOperation covers arithmetic, logical, comparison, bitwise and
// assignment operators, compound assignments included. The operator
// vocabulary is fixed and disjoint from the unary one.
type BinaryOperation struct {
	base
	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

// UnaryOperation is a prefix or postfix unary operator application.
// Example: `!ok`, `delete m[k]`, `i++`
type UnaryOperation struct {
	base
	Operator      string     `json:"operator"`
	SubExpression Expression `json:"subExpression"`
	IsPrefix      bool       `json:"isPrefix"`
}

// NewExpression is `new T`; in source it is always the callee of a
// surrounding FunctionCall.
// Example: `new uint[](3)`, `new Token()`
type NewExpression struct {
	base
	TypeName TypeName `json:"typeName"`
}

// Conditional is the ternary operator.
type Conditional struct {
	base
	Condition       Expression `json:"condition"`
	TrueExpression  Expression `json:"trueExpression"`
	FalseExpression Expression `json:"falseExpression"`
}

// MemberAccess is `expression.member`.
type MemberAccess struct {
	base
	Expression Expression `json:"expression"`
	MemberName string     `json:"memberName"`
}

// IndexAccess is `base[index]`.
type IndexAccess struct {
	base
	Base  Expression `json:"base"`
	Index Expression `json:"index"`
}

// IndexRangeAccess is a slice `base[start:end]`; either bound may be
// nil for the open forms.
// Example: `data[4:]`, `data[:32]`, `data[4:32]`
type IndexRangeAccess struct {
	base
	Base       Expression `json:"base"`
	IndexStart Expression `json:"indexStart"`
	IndexEnd   Expression `json:"indexEnd"`
}

// TupleExpression is a parenthesized tuple or a bracketed array
// literal. Components may contain nils for omitted slots, as in
// `(, a)` on the left of a tuple assignment.
type TupleExpression struct {
	base
	Components []Expression `json:"components"`
	IsArray    bool         `json:"isArray"`
}

// FunctionCall applies arguments to a callee expression. For named
// arguments (`f({a: 1})`), Names and Identifiers run parallel to
// Arguments.
type FunctionCall struct {
	base
	Expression  Expression    `json:"expression"`
	Arguments   []Expression  `json:"arguments"`
	Names       []string      `json:"names"`
	Identifiers []*Identifier `json:"identifiers"`
}

// NameValueExpression is a call-options expression:
// `expression{name: value, ...}` as in `f{value: 1 ether}(x)`.
type NameValueExpression struct {
	base
	Expression Expression     `json:"expression"`
	Arguments  *NameValueList `json:"arguments"`
}

// NameValueList is the braced name/value sequence of a
// NameValueExpression; the three slices run parallel.
type NameValueList struct {
	base
	Names       []string      `json:"names"`
	Identifiers []*Identifier `json:"identifiers"`
	Arguments   []Expression  `json:"arguments"`
}

func (*Identifier) NodeType() NodeType          { return KindIdentifier }
func (*BooleanLiteral) NodeType() NodeType      { return KindBooleanLiteral }
func (*NumberLiteral) NodeType() NodeType       { return KindNumberLiteral }
func (*StringLiteral) NodeType() NodeType       { return KindStringLiteral }
func (*HexLiteral) NodeType() NodeType          { return KindHexLiteral }
func (*HexNumber) NodeType() NodeType           { return KindHexNumber }
func (*DecimalNumber) NodeType() NodeType       { return KindDecimalNumber }
func (*BinaryOperation) NodeType() NodeType     { return KindBinaryOperation }
func (*UnaryOperation) NodeType() NodeType      { return KindUnaryOperation }
func (*NewExpression) NodeType() NodeType       { return KindNewExpression }
func (*Conditional) NodeType() NodeType         { return KindConditional }
func (*MemberAccess) NodeType() NodeType        { return KindMemberAccess }
func (*IndexAccess) NodeType() NodeType         { return KindIndexAccess }
func (*IndexRangeAccess) NodeType() NodeType    { return KindIndexRangeAccess }
func (*TupleExpression) NodeType() NodeType     { return KindTupleExpression }
func (*FunctionCall) NodeType() NodeType        { return KindFunctionCall }
func (*NameValueExpression) NodeType() NodeType { return KindNameValueExpression }
func (*NameValueList) NodeType() NodeType       { return KindNameValueList }

func (*Identifier) isExpr()          {}
func (*BooleanLiteral) isExpr()      {}
func (*NumberLiteral) isExpr()       {}
func (*StringLiteral) isExpr()       {}
func (*HexLiteral) isExpr()          {}
func (*HexNumber) isExpr()           {}
func (*DecimalNumber) isExpr()       {}
func (*BinaryOperation) isExpr()     {}
func (*UnaryOperation) isExpr()      {}
func (*NewExpression) isExpr()       {}
func (*Conditional) isExpr()         {}
func (*MemberAccess) isExpr()        {}
func (*IndexAccess) isExpr()         {}
func (*IndexRangeAccess) isExpr()    {}
func (*TupleExpression) isExpr()     {}
func (*FunctionCall) isExpr()        {}
func (*NameValueExpression) isExpr() {}
