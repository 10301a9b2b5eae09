package parser

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solparse/ast"
)

// firstMember parses src and returns the first member of its first
// contract.
func firstMember(t *testing.T, src string) ast.Node {
	t.Helper()
	contract := firstContract(t, parseUnit(t, src))
	require.NotEmpty(t, contract.Children)
	return contract.Children[0]
}

func firstFunction(t *testing.T, src string) *ast.FunctionDefinition {
	t.Helper()
	member := firstMember(t, src)
	fn, ok := member.(*ast.FunctionDefinition)
	require.True(t, ok, "first member should be a function, got %T", member)
	return fn
}

func elementaryName(t *testing.T, tn ast.TypeName) string {
	t.Helper()
	elem, ok := tn.(*ast.ElementaryTypeName)
	require.True(t, ok, "expected an elementary type, got %T", tn)
	return elem.Name
}

func TestParseFunctionDefinition(t *testing.T) {
	fn := firstFunction(t, `contract C {
		function transfer(address to, uint256 amount) public returns (bool) {}
	}`)

	require.NotNil(t, fn.Name)
	assert.Equal(t, "transfer", *fn.Name)
	assert.Equal(t, "public", fn.Visibility)
	assert.Nil(t, fn.StateMutability)
	assert.False(t, fn.IsConstructor)
	assert.False(t, fn.IsFallback)
	assert.False(t, fn.IsReceiveEther)
	assert.False(t, fn.IsVirtual)
	assert.NotNil(t, fn.Body)
	assert.NotNil(t, fn.Modifiers)
	assert.Empty(t, fn.Modifiers)

	require.Len(t, fn.Parameters, 2)
	assert.Equal(t, "address", elementaryName(t, fn.Parameters[0].TypeName))
	require.NotNil(t, fn.Parameters[0].Name)
	assert.Equal(t, "to", *fn.Parameters[0].Name)
	assert.Equal(t, "uint256", elementaryName(t, fn.Parameters[1].TypeName))
	require.NotNil(t, fn.Parameters[1].Name)
	assert.Equal(t, "amount", *fn.Parameters[1].Name)

	require.Len(t, fn.ReturnParameters, 1)
	assert.Equal(t, "bool", elementaryName(t, fn.ReturnParameters[0].TypeName))
	assert.Nil(t, fn.ReturnParameters[0].Name)
}

func TestParseFunctionWithoutBody(t *testing.T) {
	fn := firstFunction(t, `interface I {
		function totalSupply() external view returns (uint256);
	}`)
	assert.Nil(t, fn.Body)
	assert.Equal(t, "external", fn.Visibility)
	require.NotNil(t, fn.StateMutability)
	assert.Equal(t, "view", *fn.StateMutability)
}

func TestParseFunctionVisibility(t *testing.T) {
	cases := map[string]string{
		"":         "default",
		"external": "external",
		"internal": "internal",
		"public":   "public",
		"private":  "private",
	}
	for keyword, want := range cases {
		src := fmt.Sprintf(`contract C { function f() %s {} }`, keyword)
		assert.Equal(t, want, firstFunction(t, src).Visibility, "keyword %q", keyword)
	}
}

func TestParseFunctionStateMutability(t *testing.T) {
	for _, keyword := range []string{"pure", "view", "payable"} {
		src := fmt.Sprintf(`contract C { function f() public %s {} }`, keyword)
		fn := firstFunction(t, src)
		require.NotNil(t, fn.StateMutability, "keyword %q", keyword)
		assert.Equal(t, keyword, *fn.StateMutability)
	}
	assert.Nil(t, firstFunction(t, `contract C { function f() public {} }`).StateMutability)
}

func TestParseConstructor(t *testing.T) {
	fn := firstFunction(t, `contract C { constructor(uint256 supply) public {} }`)
	assert.True(t, fn.IsConstructor)
	assert.Nil(t, fn.Name)
	assert.Equal(t, "public", fn.Visibility)
	require.Len(t, fn.Parameters, 1)
	assert.Equal(t, "uint256", elementaryName(t, fn.Parameters[0].TypeName))

	assert.Equal(t, "internal", firstFunction(t, `contract C { constructor() internal {} }`).Visibility)
	assert.Equal(t, "default", firstFunction(t, `contract C { constructor() {} }`).Visibility)
}

func TestParseLegacyConstructor(t *testing.T) {
	// Before the constructor keyword, a function named after its
	// contract was the constructor.
	fn := firstFunction(t, `contract Token { function Token() public {} }`)
	assert.True(t, fn.IsConstructor)
	require.NotNil(t, fn.Name)
	assert.Equal(t, "Token", *fn.Name)

	other := firstFunction(t, `contract Vault { function Token() public {} }`)
	assert.False(t, other.IsConstructor, "name only counts inside the matching contract")
}

func TestParseFallbackFunction(t *testing.T) {
	fn := firstFunction(t, `contract C { fallback() {} }`)
	assert.True(t, fn.IsFallback)
	assert.Nil(t, fn.Name)
	assert.Equal(t, "external", fn.Visibility, "fallback is external even when unstated")

	typed := firstFunction(t, `contract C {
		fallback(bytes calldata input) external returns (bytes memory) {}
	}`)
	require.Len(t, typed.Parameters, 1)
	require.NotNil(t, typed.Parameters[0].StorageLocation)
	assert.Equal(t, "calldata", *typed.Parameters[0].StorageLocation)
	require.Len(t, typed.ReturnParameters, 1)
	require.NotNil(t, typed.ReturnParameters[0].StorageLocation)
	assert.Equal(t, "memory", *typed.ReturnParameters[0].StorageLocation)
}

func TestParseLegacyFallback(t *testing.T) {
	fn := firstFunction(t, `contract C { function() external {} }`)
	assert.True(t, fn.IsFallback)
	// The unnamed legacy form keeps a name pointer to the empty
	// string rather than dropping the field.
	require.NotNil(t, fn.Name)
	assert.Equal(t, "", *fn.Name)
	assert.False(t, fn.IsConstructor)
}

func TestParseReceiveFunction(t *testing.T) {
	fn := firstFunction(t, `contract C { receive() external payable {} }`)
	assert.True(t, fn.IsReceiveEther)
	assert.Nil(t, fn.Name)
	assert.Equal(t, "external", fn.Visibility)
	require.NotNil(t, fn.StateMutability)
	assert.Equal(t, "payable", *fn.StateMutability)
	assert.NotNil(t, fn.Parameters)
	assert.Empty(t, fn.Parameters)
	assert.Nil(t, fn.ReturnParameters)
}

func TestParseVirtualAndOverride(t *testing.T) {
	virtual := firstFunction(t, `contract C { function f() public virtual {} }`)
	assert.True(t, virtual.IsVirtual)
	assert.Nil(t, virtual.Override)

	// A bare override keeps an empty list so it stays distinguishable
	// from no override at all.
	bare := firstFunction(t, `contract C { function f() public override {} }`)
	assert.NotNil(t, bare.Override)
	assert.Empty(t, bare.Override)

	named := firstFunction(t, `contract C { function f() public override(Base, IBase) {} }`)
	require.Len(t, named.Override, 2)
	assert.Equal(t, "Base", named.Override[0].NamePath)
	assert.Equal(t, "IBase", named.Override[1].NamePath)
}

func TestParseModifierInvocations(t *testing.T) {
	fn := firstFunction(t, `contract C {
		function f() public onlyOwner guarded() limited(1, 2) {}
	}`)
	require.Len(t, fn.Modifiers, 3)

	// The bare form carries an empty argument list while the empty
	// call carries none, matching how the two are written.
	bare := fn.Modifiers[0]
	assert.Equal(t, "onlyOwner", bare.Name)
	assert.NotNil(t, bare.Arguments)
	assert.Empty(t, bare.Arguments)

	empty := fn.Modifiers[1]
	assert.Equal(t, "guarded", empty.Name)
	assert.Nil(t, empty.Arguments)

	called := fn.Modifiers[2]
	assert.Equal(t, "limited", called.Name)
	assert.Len(t, called.Arguments, 2)
}

func TestParseModifierDefinition(t *testing.T) {
	member := firstMember(t, `contract C {
		modifier onlyOwner {
			_;
		}
	}`)
	mod, ok := member.(*ast.ModifierDefinition)
	require.True(t, ok, "expected a modifier definition, got %T", member)
	assert.Equal(t, "onlyOwner", mod.Name)
	assert.Nil(t, mod.Parameters, "no parameter list at all leaves the field nil")
	assert.False(t, mod.IsVirtual)
	assert.Nil(t, mod.Override)

	require.NotNil(t, mod.Body)
	require.Len(t, mod.Body.Statements, 1)
	stmt, ok := mod.Body.Statements[0].(*ast.ExpressionStatement)
	require.True(t, ok)
	placeholder, ok := stmt.Expression.(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "_", placeholder.Name)
}

func TestParseModifierDefinitionWithParameters(t *testing.T) {
	member := firstMember(t, `contract C {
		modifier limited(uint256 max) virtual override {
			_;
		}
	}`)
	mod, ok := member.(*ast.ModifierDefinition)
	require.True(t, ok)
	require.Len(t, mod.Parameters, 1)
	assert.Equal(t, "uint256", elementaryName(t, mod.Parameters[0].TypeName))
	assert.True(t, mod.IsVirtual)
	assert.NotNil(t, mod.Override)
	assert.Empty(t, mod.Override)
}

func TestParseEventDefinition(t *testing.T) {
	member := firstMember(t, `contract C {
		event Transfer(address indexed from, address indexed to, uint256 value);
	}`)
	event, ok := member.(*ast.EventDefinition)
	require.True(t, ok, "expected an event definition, got %T", member)
	assert.Equal(t, "Transfer", event.Name)
	assert.False(t, event.IsAnonymous)

	require.Len(t, event.Parameters, 3)
	assert.True(t, event.Parameters[0].IsIndexed)
	require.NotNil(t, event.Parameters[0].Name)
	assert.Equal(t, "from", *event.Parameters[0].Name)
	assert.True(t, event.Parameters[1].IsIndexed)
	assert.False(t, event.Parameters[2].IsIndexed)
	require.NotNil(t, event.Parameters[2].Name)
	assert.Equal(t, "value", *event.Parameters[2].Name)
}

func TestParseAnonymousEventWithUnnamedParameter(t *testing.T) {
	member := firstMember(t, `contract C { event Ping(uint256) anonymous; }`)
	event, ok := member.(*ast.EventDefinition)
	require.True(t, ok)
	assert.True(t, event.IsAnonymous)
	require.Len(t, event.Parameters, 1)
	assert.Nil(t, event.Parameters[0].Name)
	assert.Nil(t, event.Parameters[0].Identifier)
}

func TestParseEnumDefinition(t *testing.T) {
	member := firstMember(t, `contract C { enum State { Created, Locked, Inactive } }`)
	enum, ok := member.(*ast.EnumDefinition)
	require.True(t, ok, "expected an enum definition, got %T", member)
	assert.Equal(t, "State", enum.Name)
	require.Len(t, enum.Members, 3)
	assert.Equal(t, "Created", enum.Members[0].Name)
	assert.Equal(t, "Locked", enum.Members[1].Name)
	assert.Equal(t, "Inactive", enum.Members[2].Name)

	empty, ok := firstMember(t, `contract C { enum Empty {} }`).(*ast.EnumDefinition)
	require.True(t, ok)
	assert.NotNil(t, empty.Members)
	assert.Empty(t, empty.Members)
}

func TestParseStructDefinition(t *testing.T) {
	member := firstMember(t, `contract C {
		struct Point {
			uint256 x;
			uint256 y;
		}
	}`)
	st, ok := member.(*ast.StructDefinition)
	require.True(t, ok, "expected a struct definition, got %T", member)
	assert.Equal(t, "Point", st.Name)
	require.Len(t, st.Members, 2)
	require.NotNil(t, st.Members[0].Name)
	assert.Equal(t, "x", *st.Members[0].Name)
	assert.Equal(t, "uint256", elementaryName(t, st.Members[0].TypeName))
	require.NotNil(t, st.Members[1].Name)
	assert.Equal(t, "y", *st.Members[1].Name)
}

func TestParseUsingForLibrary(t *testing.T) {
	member := firstMember(t, `contract C { using SafeMath for uint256; }`)
	using, ok := member.(*ast.UsingForDeclaration)
	require.True(t, ok, "expected a using-for declaration, got %T", member)
	require.NotNil(t, using.LibraryName)
	assert.Equal(t, "SafeMath", *using.LibraryName)
	assert.Equal(t, "uint256", elementaryName(t, using.TypeName))
	assert.NotNil(t, using.Functions)
	assert.Empty(t, using.Functions)
	assert.NotNil(t, using.Operators)
	assert.Empty(t, using.Operators)
	assert.False(t, using.IsGlobal)
}

func TestParseUsingForWildcard(t *testing.T) {
	member := firstMember(t, `contract C { using SafeMath for *; }`)
	using, ok := member.(*ast.UsingForDeclaration)
	require.True(t, ok)
	assert.Nil(t, using.TypeName, "a * target carries no type name")
}

func TestParseUsingForDirectives(t *testing.T) {
	unit := parseUnit(t, `using {add, sub as -} for Fixed global;`)
	require.Len(t, unit.Children, 1)
	using, ok := unit.Children[0].(*ast.UsingForDeclaration)
	require.True(t, ok, "expected a using-for declaration, got %T", unit.Children[0])

	assert.Nil(t, using.LibraryName)
	assert.True(t, using.IsGlobal)
	udtn, ok := using.TypeName.(*ast.UserDefinedTypeName)
	require.True(t, ok)
	assert.Equal(t, "Fixed", udtn.NamePath)

	// Functions and operators stay aligned by index; entries without
	// an `as` clause carry a nil operator.
	require.Equal(t, []string{"add", "sub"}, using.Functions)
	require.Len(t, using.Operators, 2)
	assert.Nil(t, using.Operators[0])
	require.NotNil(t, using.Operators[1])
	assert.Equal(t, "-", *using.Operators[1])
}

func TestParseCustomErrorDefinition(t *testing.T) {
	member := firstMember(t, `contract C { error Unauthorized(address caller); }`)
	errDef, ok := member.(*ast.CustomErrorDefinition)
	require.True(t, ok, "expected an error definition, got %T", member)
	assert.Equal(t, "Unauthorized", errDef.Name)
	require.Len(t, errDef.Parameters, 1)
	assert.Equal(t, "address", elementaryName(t, errDef.Parameters[0].TypeName))
	require.NotNil(t, errDef.Parameters[0].Name)
	assert.Equal(t, "caller", *errDef.Parameters[0].Name)
}

func TestParseFileLevelCustomError(t *testing.T) {
	unit := parseUnit(t, `error Empty();`)
	require.Len(t, unit.Children, 1)
	errDef, ok := unit.Children[0].(*ast.CustomErrorDefinition)
	require.True(t, ok)
	assert.Equal(t, "Empty", errDef.Name)
	assert.NotNil(t, errDef.Parameters)
	assert.Empty(t, errDef.Parameters)
}

func TestParseTypeDefinition(t *testing.T) {
	unit := parseUnit(t, `type Price is uint128;`)
	require.Len(t, unit.Children, 1)
	typeDef, ok := unit.Children[0].(*ast.TypeDefinition)
	require.True(t, ok, "expected a type definition, got %T", unit.Children[0])
	assert.Equal(t, "Price", typeDef.Name)
	require.NotNil(t, typeDef.Definition)
	assert.Equal(t, "uint128", typeDef.Definition.Name)
}

func TestParseFileLevelConstant(t *testing.T) {
	unit := parseUnit(t, `uint256 constant MAX_SUPPLY = 1000000;`)
	require.Len(t, unit.Children, 1)
	constant, ok := unit.Children[0].(*ast.FileLevelConstant)
	require.True(t, ok, "expected a file level constant, got %T", unit.Children[0])
	assert.Equal(t, "MAX_SUPPLY", constant.Name)
	assert.Equal(t, "uint256", elementaryName(t, constant.TypeName))
	assert.True(t, constant.IsDeclaredConst)
	assert.False(t, constant.IsImmutable)

	value, ok := constant.InitialValue.(*ast.NumberLiteral)
	require.True(t, ok)
	assert.Equal(t, "1000000", value.Number)
}

func TestParseImmutableStateVariable(t *testing.T) {
	member := firstMember(t, `contract C { address public immutable owner; }`)
	decl, ok := member.(*ast.StateVariableDeclaration)
	require.True(t, ok)
	require.Len(t, decl.Variables, 1)

	v := decl.Variables[0]
	assert.True(t, v.IsImmutable)
	require.NotNil(t, v.Visibility)
	assert.Equal(t, "public", *v.Visibility)
	require.NotNil(t, v.IsDeclaredConst)
	assert.False(t, *v.IsDeclaredConst)
	assert.Nil(t, decl.InitialValue)
}

func TestParseStateVariableOverride(t *testing.T) {
	member := firstMember(t, `contract C { uint256 public override(Base) supply; }`)
	decl, ok := member.(*ast.StateVariableDeclaration)
	require.True(t, ok)
	require.Len(t, decl.Variables, 1)
	require.Len(t, decl.Variables[0].Override, 1)
	assert.Equal(t, "Base", decl.Variables[0].Override[0].NamePath)
}

func TestParseMappingType(t *testing.T) {
	member := firstMember(t, `contract C { mapping(address => uint256) balances; }`)
	decl, ok := member.(*ast.StateVariableDeclaration)
	require.True(t, ok)
	require.Len(t, decl.Variables, 1)

	m, ok := decl.Variables[0].TypeName.(*ast.Mapping)
	require.True(t, ok, "expected a mapping, got %T", decl.Variables[0].TypeName)
	assert.Equal(t, "address", elementaryName(t, m.KeyType))
	assert.Equal(t, "uint256", elementaryName(t, m.ValueType))
	assert.Nil(t, m.KeyName)
	assert.Nil(t, m.ValueName)
}

func TestParseNamedMappingType(t *testing.T) {
	member := firstMember(t, `contract C { mapping(address owner => uint256 balance) balances; }`)
	decl, ok := member.(*ast.StateVariableDeclaration)
	require.True(t, ok)

	m, ok := decl.Variables[0].TypeName.(*ast.Mapping)
	require.True(t, ok)
	require.NotNil(t, m.KeyName)
	assert.Equal(t, "owner", m.KeyName.Name)
	require.NotNil(t, m.ValueName)
	assert.Equal(t, "balance", m.ValueName.Name)
}

func TestParseNestedMappingType(t *testing.T) {
	member := firstMember(t, `contract C { mapping(address => mapping(address => uint256)) allowed; }`)
	decl, ok := member.(*ast.StateVariableDeclaration)
	require.True(t, ok)

	outer, ok := decl.Variables[0].TypeName.(*ast.Mapping)
	require.True(t, ok)
	inner, ok := outer.ValueType.(*ast.Mapping)
	require.True(t, ok, "expected the value type to be a mapping, got %T", outer.ValueType)
	assert.Equal(t, "uint256", elementaryName(t, inner.ValueType))
}

func TestParseArrayStateVariables(t *testing.T) {
	dynamic := firstMember(t, `contract C { uint256[] values; }`)
	decl, ok := dynamic.(*ast.StateVariableDeclaration)
	require.True(t, ok)
	arr, ok := decl.Variables[0].TypeName.(*ast.ArrayTypeName)
	require.True(t, ok, "expected an array type, got %T", decl.Variables[0].TypeName)
	assert.Equal(t, "uint256", elementaryName(t, arr.BaseTypeName))
	assert.Nil(t, arr.Length)

	fixed := firstMember(t, `contract C { bytes32[4] slots; }`)
	decl, ok = fixed.(*ast.StateVariableDeclaration)
	require.True(t, ok)
	arr, ok = decl.Variables[0].TypeName.(*ast.ArrayTypeName)
	require.True(t, ok)
	length, ok := arr.Length.(*ast.NumberLiteral)
	require.True(t, ok)
	assert.Equal(t, "4", length.Number)
}

func TestParseFunctionTypeParameter(t *testing.T) {
	fn := firstFunction(t, `contract C {
		function run(function (uint256) external returns (bool) callback) public {}
	}`)
	require.Len(t, fn.Parameters, 1)

	fnType, ok := fn.Parameters[0].TypeName.(*ast.FunctionTypeName)
	require.True(t, ok, "expected a function type, got %T", fn.Parameters[0].TypeName)
	assert.Equal(t, "external", fnType.Visibility)
	require.Len(t, fnType.ParameterTypes, 1)
	assert.Equal(t, "uint256", elementaryName(t, fnType.ParameterTypes[0].TypeName))
	require.Len(t, fnType.ReturnTypes, 1)
	assert.Equal(t, "bool", elementaryName(t, fnType.ReturnTypes[0].TypeName))
}

func TestParseFunctionTypeStateVariable(t *testing.T) {
	member := firstMember(t, `contract C { function (uint256) external returns (bool) callback; }`)
	decl, ok := member.(*ast.StateVariableDeclaration)
	require.True(t, ok, "expected a state variable, got %T", member)
	require.Len(t, decl.Variables, 1)
	require.NotNil(t, decl.Variables[0].Name)
	assert.Equal(t, "callback", *decl.Variables[0].Name)

	fnType, ok := decl.Variables[0].TypeName.(*ast.FunctionTypeName)
	require.True(t, ok, "expected a function type, got %T", decl.Variables[0].TypeName)
	assert.Equal(t, "external", fnType.Visibility)
}
