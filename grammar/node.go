package grammar

import (
	"strings"

	"solparse/token"
)

// Rule tags a parse-tree node with the grammar production it was built
// from. Terminals carry no rule; the production set below is closed,
// and downstream reduction dispatches on it.
type Rule string

const (
	RuleSourceUnit        Rule = "sourceUnit"
	RulePragmaDirective   Rule = "pragmaDirective"
	RulePragmaName        Rule = "pragmaName"
	RulePragmaValue       Rule = "pragmaValue"
	RuleVersion           Rule = "version"
	RuleVersionConstraint Rule = "versionConstraint"
	RuleVersionOperator   Rule = "versionOperator"
	RuleImportDirective   Rule = "importDirective"
	RuleImportDeclaration Rule = "importDeclaration"
	RuleImportPath        Rule = "importPath"

	RuleContractDefinition       Rule = "contractDefinition"
	RuleInheritanceSpecifier     Rule = "inheritanceSpecifier"
	RuleContractPart             Rule = "contractPart"
	RuleStateVariableDeclaration Rule = "stateVariableDeclaration"
	RuleFileLevelConstant        Rule = "fileLevelConstant"
	RuleCustomErrorDefinition    Rule = "customErrorDefinition"
	RuleTypeDefinition           Rule = "typeDefinition"
	RuleUsingForDeclaration      Rule = "usingForDeclaration"
	RuleUsingForObject           Rule = "usingForObject"
	RuleUsingForObjectDirective  Rule = "usingForObjectDirective"
	RuleUserDefinableOperators   Rule = "userDefinableOperators"
	RuleStructDefinition         Rule = "structDefinition"
	RuleModifierDefinition       Rule = "modifierDefinition"
	RuleModifierInvocation       Rule = "modifierInvocation"
	RuleModifierList             Rule = "modifierList"
	RuleFunctionDefinition       Rule = "functionDefinition"
	RuleFunctionDescriptor       Rule = "functionDescriptor"
	RuleReturnParameters         Rule = "returnParameters"
	RuleEventDefinition          Rule = "eventDefinition"
	RuleEnumValue                Rule = "enumValue"
	RuleEnumDefinition           Rule = "enumDefinition"
	RuleOverrideSpecifier        Rule = "overrideSpecifier"

	RuleParameterList             Rule = "parameterList"
	RuleParameter                 Rule = "parameter"
	RuleEventParameterList        Rule = "eventParameterList"
	RuleEventParameter            Rule = "eventParameter"
	RuleFunctionTypeParameterList Rule = "functionTypeParameterList"
	RuleFunctionTypeParameter     Rule = "functionTypeParameter"
	RuleVariableDeclaration       Rule = "variableDeclaration"

	RuleTypeName            Rule = "typeName"
	RuleUserDefinedTypeName Rule = "userDefinedTypeName"
	RuleMapping             Rule = "mapping"
	RuleMappingKey          Rule = "mappingKey"
	RuleMappingKeyName      Rule = "mappingKeyName"
	RuleMappingValueName    Rule = "mappingValueName"
	RuleFunctionTypeName    Rule = "functionTypeName"
	RuleStorageLocation     Rule = "storageLocation"
	RuleStateMutability     Rule = "stateMutability"
	RuleElementaryTypeName  Rule = "elementaryTypeName"

	RuleBlock                        Rule = "block"
	RuleStatement                    Rule = "statement"
	RuleExpressionStatement          Rule = "expressionStatement"
	RuleIfStatement                  Rule = "ifStatement"
	RuleTryStatement                 Rule = "tryStatement"
	RuleCatchClause                  Rule = "catchClause"
	RuleWhileStatement               Rule = "whileStatement"
	RuleSimpleStatement              Rule = "simpleStatement"
	RuleUncheckedStatement           Rule = "uncheckedStatement"
	RuleForStatement                 Rule = "forStatement"
	RuleInlineAssemblyStatement      Rule = "inlineAssemblyStatement"
	RuleInlineAssemblyStatementFlag  Rule = "inlineAssemblyStatementFlag"
	RuleDoWhileStatement             Rule = "doWhileStatement"
	RuleContinueStatement            Rule = "continueStatement"
	RuleBreakStatement               Rule = "breakStatement"
	RuleReturnStatement              Rule = "returnStatement"
	RuleThrowStatement               Rule = "throwStatement"
	RuleEmitStatement                Rule = "emitStatement"
	RuleRevertStatement              Rule = "revertStatement"
	RuleVariableDeclarationStatement Rule = "variableDeclarationStatement"
	RuleVariableDeclarationList      Rule = "variableDeclarationList"
	RuleIdentifierList               Rule = "identifierList"

	RuleExpression            Rule = "expression"
	RulePrimaryExpression     Rule = "primaryExpression"
	RuleExpressionList        Rule = "expressionList"
	RuleNameValueList         Rule = "nameValueList"
	RuleNameValue             Rule = "nameValue"
	RuleFunctionCallArguments Rule = "functionCallArguments"
	RuleFunctionCall          Rule = "functionCall"
	RuleTupleExpression       Rule = "tupleExpression"
	RuleIdentifier            Rule = "identifier"
	RuleNumberLiteral         Rule = "numberLiteral"
	RuleStringLiteral         Rule = "stringLiteral"
	RuleHexLiteral            Rule = "hexLiteral"

	RuleAssemblyBlock              Rule = "assemblyBlock"
	RuleAssemblyItem               Rule = "assemblyItem"
	RuleAssemblyExpression         Rule = "assemblyExpression"
	RuleAssemblyMember             Rule = "assemblyMember"
	RuleAssemblyCall               Rule = "assemblyCall"
	RuleAssemblyLocalDefinition    Rule = "assemblyLocalDefinition"
	RuleAssemblyAssignment         Rule = "assemblyAssignment"
	RuleAssemblyIdentifierOrList   Rule = "assemblyIdentifierOrList"
	RuleAssemblyIdentifierList     Rule = "assemblyIdentifierList"
	RuleAssemblyStackAssignment    Rule = "assemblyStackAssignment"
	RuleLabelDefinition            Rule = "labelDefinition"
	RuleAssemblySwitch             Rule = "assemblySwitch"
	RuleAssemblyCase               Rule = "assemblyCase"
	RuleAssemblyFunctionDefinition Rule = "assemblyFunctionDefinition"
	RuleAssemblyFunctionReturns    Rule = "assemblyFunctionReturns"
	RuleAssemblyFor                Rule = "assemblyFor"
	RuleAssemblyIf                 Rule = "assemblyIf"
	RuleAssemblyLiteral            Rule = "assemblyLiteral"
)

// Node is a concrete parse-tree node. Interior nodes carry a Rule and
// children; terminals carry the scanned token. Punctuation and keyword
// terminals stay in Children, so child counts and child text encode
// which grammar alternative matched.
type Node struct {
	Rule     Rule
	Children []*Node
	Tok      *token.Token
}

func NewNode(rule Rule, children ...*Node) *Node {
	n := &Node{Rule: rule}
	for _, c := range children {
		n.Add(c)
	}
	return n
}

func NewTerminal(tok *token.Token) *Node {
	return &Node{Tok: tok}
}

// Add appends a child, ignoring nils so optional clauses simply leave
// no trace in the child list.
func (n *Node) Add(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

func (n *Node) IsTerminal() bool {
	return n.Tok != nil
}

func (n *Node) Count() int {
	return len(n.Children)
}

// Child returns the i-th child or nil when out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// Text returns the node's source text with every terminal concatenated
// and no separators, the way ANTLR's getText renders a subtree.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	if n.Tok != nil {
		return n.Tok.Value
	}
	var b strings.Builder
	n.writeText(&b)
	return b.String()
}

func (n *Node) writeText(b *strings.Builder) {
	if n.Tok != nil {
		b.WriteString(n.Tok.Value)
		return
	}
	for _, c := range n.Children {
		c.writeText(b)
	}
}

// First returns the first direct child built from rule, or nil. Like
// the generated context accessors this never recurses.
func (n *Node) First(rule Rule) *Node {
	for _, c := range n.Children {
		if c.Rule == rule {
			return c
		}
	}
	return nil
}

// All returns the direct children built from rule, in order.
func (n *Node) All(rule Rule) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Rule == rule {
			out = append(out, c)
		}
	}
	return out
}

// HasTerminal reports whether a direct child is a terminal with the
// given text.
func (n *Node) HasTerminal(value string) bool {
	for _, c := range n.Children {
		if c.Tok != nil && c.Tok.Value == value {
			return true
		}
	}
	return false
}

// StartToken returns the first token under the node, nil for childless
// interior nodes.
func (n *Node) StartToken() *token.Token {
	if n == nil {
		return nil
	}
	if n.Tok != nil {
		return n.Tok
	}
	for _, c := range n.Children {
		if t := c.StartToken(); t != nil {
			return t
		}
	}
	return nil
}

// StopToken returns the last token under the node.
func (n *Node) StopToken() *token.Token {
	if n == nil {
		return nil
	}
	if n.Tok != nil {
		return n.Tok
	}
	for i := len(n.Children) - 1; i >= 0; i-- {
		if t := n.Children[i].StopToken(); t != nil {
			return t
		}
	}
	return nil
}
