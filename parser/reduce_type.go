package parser

import (
	"solparse/ast"
	"solparse/grammar"
)

// reduceAnyTypeName dispatches a node of any type-name production.
// The generic reducer funnels through here; typed callers go straight
// to the concrete reducers.
func (r *reducer) reduceAnyTypeName(cst *grammar.Node) (ast.TypeName, error) {
	switch cst.Rule {
	case grammar.RuleTypeName:
		return r.reduceTypeName(cst)
	case grammar.RuleElementaryTypeName:
		return r.reduceElementaryTypeName(cst), nil
	case grammar.RuleUserDefinedTypeName:
		return r.reduceUserDefinedTypeName(cst), nil
	case grammar.RuleMapping:
		return r.reduceMapping(cst)
	case grammar.RuleFunctionTypeName:
		return r.reduceFunctionTypeName(cst)
	}
	return nil, reductionErr(cst, "unknown production %q", cst.Rule)
}

// reduceTypeName disambiguates the typeName production by child
// count: more than two children is an array suffix, exactly two is an
// elementary name with a mutability tag (`address payable`), and a
// single child delegates to the concrete type production.
func (r *reducer) reduceTypeName(cst *grammar.Node) (ast.TypeName, error) {
	if cst == nil {
		return nil, nil
	}
	if err := r.descend(cst); err != nil {
		return nil, err
	}
	defer r.ascend()

	switch {
	case cst.Count() > 2:
		var length ast.Expression
		if cst.Count() == 4 {
			exprNode := cst.First(grammar.RuleExpression)
			if exprNode == nil {
				return nil, reductionErr(cst, "a type name with 4 children should have an expression")
			}
			l, err := r.reduceExpression(exprNode)
			if err != nil {
				return nil, err
			}
			length = l
		}
		base, err := r.reduceTypeName(cst.First(grammar.RuleTypeName))
		if err != nil {
			return nil, err
		}
		n := &ast.ArrayTypeName{BaseTypeName: base, Length: length}
		r.finish(n, cst)
		return n, nil
	case cst.Count() == 2:
		n := &ast.ElementaryTypeName{
			Name:            tokenAt(cst, 0),
			StateMutability: strp(tokenAt(cst, 1)),
		}
		r.finish(n, cst)
		return n, nil
	}

	if child := cst.Child(0); child != nil {
		switch child.Rule {
		case grammar.RuleElementaryTypeName:
			return r.reduceElementaryTypeName(child), nil
		case grammar.RuleUserDefinedTypeName:
			return r.reduceUserDefinedTypeName(child), nil
		case grammar.RuleMapping:
			return r.reduceMapping(child)
		case grammar.RuleFunctionTypeName:
			return r.reduceFunctionTypeName(child)
		}
	}
	return nil, reductionErr(cst, "unhandled type name case")
}

func (r *reducer) reduceElementaryTypeName(cst *grammar.Node) *ast.ElementaryTypeName {
	n := &ast.ElementaryTypeName{Name: cst.Text()}
	r.finish(n, cst)
	return n
}

func (r *reducer) reduceUserDefinedTypeName(cst *grammar.Node) *ast.UserDefinedTypeName {
	n := &ast.UserDefinedTypeName{NamePath: cst.Text()}
	r.finish(n, cst)
	return n
}

func (r *reducer) reduceMapping(cst *grammar.Node) (*ast.Mapping, error) {
	keyNode := cst.First(grammar.RuleMappingKey)
	if keyNode == nil {
		return nil, reductionErr(cst, "mapping has no key type")
	}
	var keyType ast.TypeName
	if elementary := keyNode.First(grammar.RuleElementaryTypeName); elementary != nil {
		keyType = r.reduceElementaryTypeName(elementary)
	} else if udtn := keyNode.First(grammar.RuleUserDefinedTypeName); udtn != nil {
		keyType = r.reduceUserDefinedTypeName(udtn)
	} else {
		return nil, reductionErr(keyNode, "expected mapping key to be an elementary or user defined type name")
	}

	valueType, err := r.reduceTypeName(cst.First(grammar.RuleTypeName))
	if err != nil {
		return nil, err
	}

	var keyName, valueName *ast.Identifier
	if wrapper := cst.First(grammar.RuleMappingKeyName); wrapper != nil {
		if ident := wrapper.First(grammar.RuleIdentifier); ident != nil {
			keyName = r.reduceIdentifier(ident)
		}
	}
	if wrapper := cst.First(grammar.RuleMappingValueName); wrapper != nil {
		if ident := wrapper.First(grammar.RuleIdentifier); ident != nil {
			valueName = r.reduceIdentifier(ident)
		}
	}

	n := &ast.Mapping{
		KeyType:   keyType,
		KeyName:   keyName,
		ValueType: valueType,
		ValueName: valueName,
	}
	r.finish(n, cst)
	return n, nil
}

func (r *reducer) reduceFunctionTypeName(cst *grammar.Node) (*ast.FunctionTypeName, error) {
	lists := cst.All(grammar.RuleFunctionTypeParameterList)

	parameterTypes := []*ast.VariableDeclaration{}
	if len(lists) > 0 {
		params, err := r.reduceFunctionTypeParameterList(lists[0])
		if err != nil {
			return nil, err
		}
		parameterTypes = params
	}
	returnTypes := []*ast.VariableDeclaration{}
	if len(lists) > 1 {
		returns, err := r.reduceFunctionTypeParameterList(lists[1])
		if err != nil {
			return nil, err
		}
		returnTypes = returns
	}

	visibility := "default"
	switch {
	case cst.HasTerminal("internal"):
		visibility = "internal"
	case cst.HasTerminal("external"):
		visibility = "external"
	}

	var stateMutability *string
	if sm := cst.First(grammar.RuleStateMutability); sm != nil {
		stateMutability = strp(sm.Text())
	}

	n := &ast.FunctionTypeName{
		ParameterTypes:  parameterTypes,
		ReturnTypes:     returnTypes,
		Visibility:      visibility,
		StateMutability: stateMutability,
	}
	r.finish(n, cst)
	return n, nil
}

func (r *reducer) reduceFunctionTypeParameterList(cst *grammar.Node) ([]*ast.VariableDeclaration, error) {
	parameters := []*ast.VariableDeclaration{}
	if cst == nil {
		return parameters, nil
	}
	for _, paramNode := range cst.All(grammar.RuleFunctionTypeParameter) {
		param, err := r.reduceFunctionTypeParameter(paramNode)
		if err != nil {
			return nil, err
		}
		parameters = append(parameters, param)
	}
	return parameters, nil
}

// reduceFunctionTypeParameter reduces one parameter of a function
// type. These parameters carry no name.
func (r *reducer) reduceFunctionTypeParameter(cst *grammar.Node) (*ast.VariableDeclaration, error) {
	typeName, err := r.reduceTypeName(cst.First(grammar.RuleTypeName))
	if err != nil {
		return nil, err
	}
	var storageLocation *string
	if loc := cst.First(grammar.RuleStorageLocation); loc != nil {
		storageLocation = strp(loc.Text())
	}
	n := &ast.VariableDeclaration{
		TypeName:        typeName,
		StorageLocation: storageLocation,
		IsStateVar:      false,
		IsIndexed:       false,
	}
	r.finish(n, cst)
	return n, nil
}
