package grammar

import "solparse/token"

// buildTypeName parses a type with any number of array suffixes. Array
// types nest leftward: uint[2][] is ((uint[2])[]).
func (b *builder) buildTypeName() *Node {
	n := b.buildBaseTypeName()
	for b.check("[") {
		array := NewNode(RuleTypeName)
		array.Add(n)
		array.Add(b.term())
		if !b.check("]") {
			array.Add(b.buildExpression())
		}
		array.Add(b.expect("]", "expected ']' to close array type"))
		n = array
	}
	return n
}

func (b *builder) buildBaseTypeName() *Node {
	t := b.peek()
	switch {
	case t.Value == "address" && b.peekAt(1).Value == "payable":
		return NewNode(RuleTypeName, b.term(), b.term())
	case t.Type == token.KEYWORD && isElementaryTypeName(t.Value):
		return NewNode(RuleTypeName, NewNode(RuleElementaryTypeName, b.term()))
	case t.Value == "mapping":
		return NewNode(RuleTypeName, b.buildMapping())
	case t.Value == "function":
		return NewNode(RuleTypeName, b.buildFunctionTypeName())
	case b.checkIdentifier():
		return NewNode(RuleTypeName, b.buildUserDefinedTypeName())
	default:
		b.errorAtCurrent("expected type name")
		return NewNode(RuleTypeName, NewNode(RuleElementaryTypeName,
			NewTerminal(&token.Token{Type: token.KEYWORD, Value: "uint", Pos: t.Pos})))
	}
}

func (b *builder) buildMapping() *Node {
	n := NewNode(RuleMapping)
	n.Add(b.term()) // mapping
	n.Add(b.expect("(", "expected '(' after 'mapping'"))
	n.Add(b.buildMappingKey())
	if b.checkIdentifier() {
		n.Add(NewNode(RuleMappingKeyName, b.buildIdentifier()))
	}
	n.Add(b.expect("=>", "expected '=>' in mapping type"))
	n.Add(b.buildTypeName())
	if b.checkIdentifier() {
		n.Add(NewNode(RuleMappingValueName, b.buildIdentifier()))
	}
	n.Add(b.expect(")", "expected ')' to close mapping type"))
	return n
}

// mappingKey admits elementary types and user-defined type paths, not
// full type names: no nested mappings or arrays on the key side.
func (b *builder) buildMappingKey() *Node {
	n := NewNode(RuleMappingKey)
	t := b.peek()
	switch {
	case t.Type == token.KEYWORD && isElementaryTypeName(t.Value):
		n.Add(NewNode(RuleElementaryTypeName, b.term()))
	case b.checkIdentifier():
		n.Add(b.buildUserDefinedTypeName())
	default:
		b.errorAtCurrent("expected mapping key type")
		n.Add(NewNode(RuleElementaryTypeName,
			NewTerminal(&token.Token{Type: token.KEYWORD, Value: "uint", Pos: t.Pos})))
	}
	return n
}

func (b *builder) buildFunctionTypeName() *Node {
	n := NewNode(RuleFunctionTypeName)
	n.Add(b.term()) // function
	n.Add(b.buildFunctionTypeParameterList())
	for {
		if b.checkAny("internal", "external") {
			n.Add(b.term())
			continue
		}
		if b.checkAny("pure", "view", "payable", "constant") {
			n.Add(NewNode(RuleStateMutability, b.term()))
			continue
		}
		break
	}
	if b.check("returns") {
		n.Add(b.term())
		n.Add(b.buildFunctionTypeParameterList())
	}
	return n
}

func (b *builder) buildFunctionTypeParameterList() *Node {
	n := NewNode(RuleFunctionTypeParameterList)
	n.Add(b.expect("(", "expected '(' in function type"))
	if !b.check(")") {
		for {
			param := NewNode(RuleFunctionTypeParameter)
			param.Add(b.buildTypeName())
			if b.checkAny("memory", "storage", "calldata") {
				param.Add(NewNode(RuleStorageLocation, b.term()))
			}
			n.Add(param)
			if !b.check(",") {
				break
			}
			n.Add(b.term())
		}
	}
	n.Add(b.expect(")", "expected ')' in function type"))
	return n
}
