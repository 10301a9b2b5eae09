package parser

import (
	"solparse/ast"
	"solparse/grammar"
)

// reduceContractDefinition reduces a contract, interface or library.
// The kind is the literal first token, so `abstract contract` reads
// "abstract".
func (r *reducer) reduceContractDefinition(cst *grammar.Node) (*ast.ContractDefinition, error) {
	kind := tokenAt(cst, 0)
	name := cst.First(grammar.RuleIdentifier).Text()

	baseContracts := []*ast.InheritanceSpecifier{}
	for _, specNode := range cst.All(grammar.RuleInheritanceSpecifier) {
		spec, err := r.reduceInheritanceSpecifier(specNode)
		if err != nil {
			return nil, err
		}
		baseContracts = append(baseContracts, spec)
	}

	children := []ast.Node{}
	for _, part := range cst.All(grammar.RuleContractPart) {
		member, err := r.reduceContractPart(part, name)
		if err != nil {
			return nil, err
		}
		children = append(children, member)
	}

	n := &ast.ContractDefinition{
		Name:          name,
		BaseContracts: baseContracts,
		Kind:          kind,
		Children:      children,
	}
	r.finish(n, cst)
	return n, nil
}

// reduceContractPart unwraps the member production and threads the
// enclosing contract name through to function classification.
func (r *reducer) reduceContractPart(cst *grammar.Node, contractName string) (ast.Node, error) {
	inner := cst.Child(0)
	if inner == nil {
		return nil, reductionErr(cst, "empty contract part")
	}
	if inner.Rule == grammar.RuleFunctionDefinition {
		return r.reduceFunctionDefinition(inner, contractName)
	}
	return r.reduce(inner)
}

func (r *reducer) reduceInheritanceSpecifier(cst *grammar.Node) (*ast.InheritanceSpecifier, error) {
	arguments := []ast.Expression{}
	if exprList := cst.First(grammar.RuleExpressionList); exprList != nil {
		args, err := r.reduceExpressionList(exprList)
		if err != nil {
			return nil, err
		}
		arguments = args
	}
	n := &ast.InheritanceSpecifier{
		BaseName:  r.reduceUserDefinedTypeName(cst.First(grammar.RuleUserDefinedTypeName)),
		Arguments: arguments,
	}
	r.finish(n, cst)
	return n, nil
}

// reduceStateVariableDeclaration wraps the single declared variable in
// the one-element declaration statement form. Both nodes span the
// whole declaration, and the initializer is recorded on both.
func (r *reducer) reduceStateVariableDeclaration(cst *grammar.Node) (*ast.StateVariableDeclaration, error) {
	typeName, err := r.reduceTypeName(cst.First(grammar.RuleTypeName))
	if err != nil {
		return nil, err
	}

	var expression ast.Expression
	if exprNode := cst.First(grammar.RuleExpression); exprNode != nil {
		expression, err = r.reduceExpression(exprNode)
		if err != nil {
			return nil, err
		}
	}

	visibility := "default"
	switch {
	case cst.HasTerminal("internal"):
		visibility = "internal"
	case cst.HasTerminal("public"):
		visibility = "public"
	case cst.HasTerminal("private"):
		visibility = "private"
	}

	isDeclaredConst := cst.HasTerminal("constant")
	identNode := cst.First(grammar.RuleIdentifier)

	decl := &ast.StateVariableDeclarationVariable{
		VariableDeclaration: ast.VariableDeclaration{
			TypeName:        typeName,
			Name:            strp(identNode.Text()),
			Identifier:      r.reduceIdentifier(identNode),
			IsStateVar:      true,
			IsDeclaredConst: &isDeclaredConst,
			Visibility:      strp(visibility),
			Expression:      expression,
		},
		IsImmutable: cst.HasTerminal("immutable"),
		Override:    r.reduceOverrideList(cst.First(grammar.RuleOverrideSpecifier)),
	}
	r.finish(decl, cst)

	n := &ast.StateVariableDeclaration{
		Variables:    []*ast.StateVariableDeclarationVariable{decl},
		InitialValue: expression,
	}
	r.finish(n, cst)
	return n, nil
}

func (r *reducer) reduceFileLevelConstant(cst *grammar.Node) (*ast.FileLevelConstant, error) {
	typeName, err := r.reduceTypeName(cst.First(grammar.RuleTypeName))
	if err != nil {
		return nil, err
	}
	exprNode := cst.First(grammar.RuleExpression)
	if exprNode == nil {
		return nil, reductionErr(cst, "file level constant has no initializer")
	}
	initialValue, err := r.reduceExpression(exprNode)
	if err != nil {
		return nil, err
	}
	n := &ast.FileLevelConstant{
		TypeName:        typeName,
		Name:            cst.First(grammar.RuleIdentifier).Text(),
		InitialValue:    initialValue,
		IsDeclaredConst: true,
		IsImmutable:     false,
	}
	r.finish(n, cst)
	return n, nil
}

// reduceUsingForDeclaration covers both directive forms: `using Lib
// for T` carries a library name and empty function lists, while
// `using {f, g as +} for T` carries per-entry functions and operators
// and no library name. A `*` target leaves TypeName nil.
func (r *reducer) reduceUsingForDeclaration(cst *grammar.Node) (*ast.UsingForDeclaration, error) {
	var typeName ast.TypeName
	if typeNode := cst.First(grammar.RuleTypeName); typeNode != nil {
		t, err := r.reduceTypeName(typeNode)
		if err != nil {
			return nil, err
		}
		typeName = t
	}

	object := cst.First(grammar.RuleUsingForObject)
	if object == nil {
		return nil, reductionErr(cst, "using-for declaration has no object")
	}

	n := &ast.UsingForDeclaration{
		TypeName:  typeName,
		IsGlobal:  cst.HasTerminal("global"),
		Functions: []string{},
		Operators: []*string{},
	}
	if library := object.First(grammar.RuleUserDefinedTypeName); library != nil {
		n.LibraryName = strp(library.Text())
	} else {
		for _, directive := range object.All(grammar.RuleUsingForObjectDirective) {
			n.Functions = append(n.Functions, directive.First(grammar.RuleUserDefinedTypeName).Text())
			var operator *string
			if ops := directive.First(grammar.RuleUserDefinableOperators); ops != nil {
				operator = strp(ops.Text())
			}
			n.Operators = append(n.Operators, operator)
		}
	}
	r.finish(n, cst)
	return n, nil
}

func (r *reducer) reduceStructDefinition(cst *grammar.Node) (*ast.StructDefinition, error) {
	members := []*ast.VariableDeclaration{}
	for _, memberNode := range cst.All(grammar.RuleVariableDeclaration) {
		member, err := r.reduceVariableDeclaration(memberNode)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	n := &ast.StructDefinition{
		Name:    cst.First(grammar.RuleIdentifier).Text(),
		Members: members,
	}
	r.finish(n, cst)
	return n, nil
}

func (r *reducer) reduceModifierDefinition(cst *grammar.Node) (*ast.ModifierDefinition, error) {
	var parameters []*ast.VariableDeclaration
	if pl := cst.First(grammar.RuleParameterList); pl != nil {
		params, err := r.reduceParameterList(pl)
		if err != nil {
			return nil, err
		}
		parameters = params
	}

	var body *ast.Block
	if blockNode := cst.First(grammar.RuleBlock); blockNode != nil {
		b, err := r.reduceBlock(blockNode)
		if err != nil {
			return nil, err
		}
		body = b
	}

	n := &ast.ModifierDefinition{
		Name:       cst.First(grammar.RuleIdentifier).Text(),
		Parameters: parameters,
		IsVirtual:  cst.HasTerminal("virtual"),
		Override:   r.reduceOverrideList(cst.First(grammar.RuleOverrideSpecifier)),
		Body:       body,
	}
	r.finish(n, cst)
	return n, nil
}

// reduceModifierInvocation reduces an attached modifier. Arguments
// distinguishes the bare form from an empty call: `m` reduces to an
// empty slice and `m()` to nil.
func (r *reducer) reduceModifierInvocation(cst *grammar.Node) (*ast.ModifierInvocation, error) {
	var arguments []ast.Expression
	if exprList := cst.First(grammar.RuleExpressionList); exprList != nil {
		args, err := r.reduceExpressionList(exprList)
		if err != nil {
			return nil, err
		}
		arguments = args
	} else if cst.Count() == 1 {
		arguments = []ast.Expression{}
	}
	n := &ast.ModifierInvocation{
		Name:      cst.First(grammar.RuleIdentifier).Text(),
		Arguments: arguments,
	}
	r.finish(n, cst)
	return n, nil
}

// reduceFunctionDefinition classifies the definition from the first
// descriptor token and fills the shared fields per form. The legacy
// spellings fold into the same flags the dedicated keywords set: a
// function named after its enclosing contract is a constructor, and a
// function with an empty name is a fallback.
func (r *reducer) reduceFunctionDefinition(cst *grammar.Node, contractName string) (*ast.FunctionDefinition, error) {
	descriptor := cst.First(grammar.RuleFunctionDescriptor)
	if descriptor == nil {
		return nil, reductionErr(cst, "function definition has no descriptor")
	}

	var body *ast.Block
	if blockNode := cst.First(grammar.RuleBlock); blockNode != nil {
		b, err := r.reduceBlock(blockNode)
		if err != nil {
			return nil, err
		}
		body = b
	}

	modifierList := cst.First(grammar.RuleModifierList)
	hasMod := func(keyword string) bool {
		return modifierList != nil && modifierList.HasTerminal(keyword)
	}

	modifiers := []*ast.ModifierInvocation{}
	var stateMutability *string
	var override []*ast.UserDefinedTypeName
	if modifierList != nil {
		for _, modNode := range modifierList.All(grammar.RuleModifierInvocation) {
			mod, err := r.reduceModifierInvocation(modNode)
			if err != nil {
				return nil, err
			}
			modifiers = append(modifiers, mod)
		}
		if sm := modifierList.First(grammar.RuleStateMutability); sm != nil {
			stateMutability = strp(sm.Text())
		}
		override = r.reduceOverrideList(modifierList.First(grammar.RuleOverrideSpecifier))
	}

	var name *string
	parameters := []*ast.VariableDeclaration{}
	var returnParameters []*ast.VariableDeclaration
	visibility := "default"
	isConstructor, isFallback, isReceiveEther := false, false, false

	returnsNode := cst.First(grammar.RuleReturnParameters)
	switch tokenAt(descriptor, 0) {
	case "constructor":
		params, err := r.reduceParameterList(cst.First(grammar.RuleParameterList))
		if err != nil {
			return nil, err
		}
		parameters = params
		switch {
		case hasMod("internal"):
			visibility = "internal"
		case hasMod("public"):
			visibility = "public"
		}
		isConstructor = true
	case "fallback":
		params, err := r.reduceParameterList(cst.First(grammar.RuleParameterList))
		if err != nil {
			return nil, err
		}
		parameters = params
		if returnsNode != nil {
			rp, err := r.reduceReturnParameters(returnsNode)
			if err != nil {
				return nil, err
			}
			returnParameters = rp
		}
		visibility = "external"
		isFallback = true
	case "receive":
		// A receive function takes no parameters; whatever the list
		// production matched is not reduced.
		visibility = "external"
		isReceiveEther = true
	case "function":
		text := ""
		if identNode := descriptor.First(grammar.RuleIdentifier); identNode != nil {
			text = identNode.Text()
		}
		name = strp(text)
		params, err := r.reduceParameterList(cst.First(grammar.RuleParameterList))
		if err != nil {
			return nil, err
		}
		parameters = params
		if returnsNode != nil {
			rp, err := r.reduceReturnParameters(returnsNode)
			if err != nil {
				return nil, err
			}
			returnParameters = rp
		}
		switch {
		case hasMod("external"):
			visibility = "external"
		case hasMod("internal"):
			visibility = "internal"
		case hasMod("public"):
			visibility = "public"
		case hasMod("private"):
			visibility = "private"
		}
		isConstructor = contractName != "" && text == contractName
		isFallback = text == ""
	}

	n := &ast.FunctionDefinition{
		Name:             name,
		Parameters:       parameters,
		Modifiers:        modifiers,
		StateMutability:  stateMutability,
		Visibility:       visibility,
		ReturnParameters: returnParameters,
		Body:             body,
		Override:         override,
		IsConstructor:    isConstructor,
		IsReceiveEther:   isReceiveEther,
		IsFallback:       isFallback,
		IsVirtual:        hasMod("virtual"),
	}
	r.finish(n, cst)
	return n, nil
}

func (r *reducer) reduceEventDefinition(cst *grammar.Node) (*ast.EventDefinition, error) {
	parameters := []*ast.VariableDeclaration{}
	if pl := cst.First(grammar.RuleEventParameterList); pl != nil {
		for _, paramNode := range pl.All(grammar.RuleEventParameter) {
			param, err := r.reduceEventParameter(paramNode)
			if err != nil {
				return nil, err
			}
			parameters = append(parameters, param)
		}
	}
	n := &ast.EventDefinition{
		Name:        cst.First(grammar.RuleIdentifier).Text(),
		Parameters:  parameters,
		IsAnonymous: cst.HasTerminal("anonymous"),
	}
	r.finish(n, cst)
	return n, nil
}

// reduceEventParameter reduces one event parameter to the shared
// variable-declaration form. Only event parameters can be indexed.
func (r *reducer) reduceEventParameter(cst *grammar.Node) (*ast.VariableDeclaration, error) {
	typeName, err := r.reduceTypeName(cst.First(grammar.RuleTypeName))
	if err != nil {
		return nil, err
	}
	var name *string
	var identifier *ast.Identifier
	if identNode := cst.First(grammar.RuleIdentifier); identNode != nil {
		name = strp(identNode.Text())
		identifier = r.reduceIdentifier(identNode)
	}
	n := &ast.VariableDeclaration{
		TypeName:   typeName,
		Name:       name,
		Identifier: identifier,
		IsStateVar: false,
		IsIndexed:  cst.HasTerminal("indexed"),
	}
	r.finish(n, cst)
	return n, nil
}

func (r *reducer) reduceEnumDefinition(cst *grammar.Node) (*ast.EnumDefinition, error) {
	members := []*ast.EnumValue{}
	for _, valueNode := range cst.All(grammar.RuleEnumValue) {
		members = append(members, r.reduceEnumValue(valueNode))
	}
	n := &ast.EnumDefinition{
		Name:    cst.First(grammar.RuleIdentifier).Text(),
		Members: members,
	}
	r.finish(n, cst)
	return n, nil
}

func (r *reducer) reduceEnumValue(cst *grammar.Node) *ast.EnumValue {
	n := &ast.EnumValue{Name: cst.First(grammar.RuleIdentifier).Text()}
	r.finish(n, cst)
	return n
}

func (r *reducer) reduceCustomErrorDefinition(cst *grammar.Node) (*ast.CustomErrorDefinition, error) {
	parameters, err := r.reduceParameterList(cst.First(grammar.RuleParameterList))
	if err != nil {
		return nil, err
	}
	n := &ast.CustomErrorDefinition{
		Name:       cst.First(grammar.RuleIdentifier).Text(),
		Parameters: parameters,
	}
	r.finish(n, cst)
	return n, nil
}

func (r *reducer) reduceTypeDefinition(cst *grammar.Node) (*ast.TypeDefinition, error) {
	n := &ast.TypeDefinition{
		Name:       cst.First(grammar.RuleIdentifier).Text(),
		Definition: r.reduceElementaryTypeName(cst.First(grammar.RuleElementaryTypeName)),
	}
	r.finish(n, cst)
	return n, nil
}

// reduceParameterList reduces the parenthesized parameter production
// to its declarations. A nil list reduces to an empty slice.
func (r *reducer) reduceParameterList(cst *grammar.Node) ([]*ast.VariableDeclaration, error) {
	parameters := []*ast.VariableDeclaration{}
	if cst == nil {
		return parameters, nil
	}
	for _, paramNode := range cst.All(grammar.RuleParameter) {
		param, err := r.reduceParameter(paramNode)
		if err != nil {
			return nil, err
		}
		parameters = append(parameters, param)
	}
	return parameters, nil
}

func (r *reducer) reduceParameter(cst *grammar.Node) (*ast.VariableDeclaration, error) {
	typeName, err := r.reduceTypeName(cst.First(grammar.RuleTypeName))
	if err != nil {
		return nil, err
	}
	var storageLocation *string
	if loc := cst.First(grammar.RuleStorageLocation); loc != nil {
		storageLocation = strp(loc.Text())
	}
	var name *string
	var identifier *ast.Identifier
	if identNode := cst.First(grammar.RuleIdentifier); identNode != nil {
		name = strp(identNode.Text())
		identifier = r.reduceIdentifier(identNode)
	}
	n := &ast.VariableDeclaration{
		TypeName:        typeName,
		Name:            name,
		Identifier:      identifier,
		StorageLocation: storageLocation,
		IsStateVar:      false,
		IsIndexed:       false,
	}
	r.finish(n, cst)
	return n, nil
}

func (r *reducer) reduceReturnParameters(cst *grammar.Node) ([]*ast.VariableDeclaration, error) {
	return r.reduceParameterList(cst.First(grammar.RuleParameterList))
}

func (r *reducer) reduceVariableDeclaration(cst *grammar.Node) (*ast.VariableDeclaration, error) {
	typeName, err := r.reduceTypeName(cst.First(grammar.RuleTypeName))
	if err != nil {
		return nil, err
	}
	var storageLocation *string
	if loc := cst.First(grammar.RuleStorageLocation); loc != nil {
		storageLocation = strp(loc.Text())
	}
	identNode := cst.First(grammar.RuleIdentifier)
	n := &ast.VariableDeclaration{
		TypeName:        typeName,
		Name:            strp(identNode.Text()),
		Identifier:      r.reduceIdentifier(identNode),
		StorageLocation: storageLocation,
		IsStateVar:      false,
		IsIndexed:       false,
	}
	r.finish(n, cst)
	return n, nil
}

// reduceOverrideList keeps the nil-versus-empty distinction: no
// override specifier reduces to nil, a bare `override` to an empty
// list, and `override(A, B)` to the named bases.
func (r *reducer) reduceOverrideList(spec *grammar.Node) []*ast.UserDefinedTypeName {
	if spec == nil {
		return nil
	}
	out := []*ast.UserDefinedTypeName{}
	for _, udtn := range spec.All(grammar.RuleUserDefinedTypeName) {
		out = append(out, r.reduceUserDefinedTypeName(udtn))
	}
	return out
}
