package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ident(name string) *Identifier {
	id := &Identifier{Name: name}
	Attach(id, nil, nil)
	return id
}

func addition(left, right Expression) *BinaryOperation {
	op := &BinaryOperation{Operator: "+", Left: left, Right: right}
	Attach(op, nil, nil)
	return op
}

func TestWalkVisitsNodesDepthFirst(t *testing.T) {
	tree := addition(ident("a"), addition(ident("b"), ident("c")))

	var order []NodeType
	Walk(tree, func(n Node) bool {
		order = append(order, n.NodeType())
		return true
	}, nil)

	assert.Equal(t, []NodeType{
		KindBinaryOperation,
		KindIdentifier,
		KindBinaryOperation,
		KindIdentifier,
		KindIdentifier,
	}, order)
}

func TestWalkExitRunsPostOrder(t *testing.T) {
	tree := addition(ident("a"), ident("b"))

	var events []string
	Walk(tree,
		func(n Node) bool {
			events = append(events, "enter "+string(n.NodeType()))
			return true
		},
		func(n Node) {
			events = append(events, "exit "+string(n.NodeType()))
		})

	assert.Equal(t, []string{
		"enter BinaryOperation",
		"enter Identifier",
		"exit Identifier",
		"enter Identifier",
		"exit Identifier",
		"exit BinaryOperation",
	}, events)
}

func TestWalkPrunesSubtreeOnFalse(t *testing.T) {
	inner := addition(ident("a"), ident("b"))
	tree := addition(inner, ident("c"))

	var seen []string
	exits := 0
	Walk(tree,
		func(n Node) bool {
			if n == Node(inner) {
				seen = append(seen, "pruned")
				return false
			}
			seen = append(seen, string(n.NodeType()))
			return true
		},
		func(n Node) {
			exits++
		})

	// The inner addition is pruned: its identifiers are never entered
	// and its own exit callback does not run.
	assert.Equal(t, []string{"BinaryOperation", "pruned", "Identifier"}, seen)
	assert.Equal(t, 2, exits, "only the root and the right identifier exit")
}

func TestVisitDispatchesByKindName(t *testing.T) {
	tree := addition(ident("a"), ident("b"))

	names := []string{}
	var exitAfter []string
	Visit(tree, map[string]VisitFunc{
		"Identifier": func(n Node) bool {
			id, ok := n.(*Identifier)
			require.True(t, ok)
			names = append(names, id.Name)
			return true
		},
		"BinaryOperation:exit": func(n Node) bool {
			exitAfter = append(exitAfter, names...)
			return true
		},
	})

	assert.Equal(t, []string{"a", "b"}, names)
	assert.Equal(t, []string{"a", "b"}, exitAfter, "exit fires after both identifiers")
}

func TestVisitEnterCanPrune(t *testing.T) {
	tree := addition(ident("a"), ident("b"))

	count := 0
	Visit(tree, map[string]VisitFunc{
		"BinaryOperation": func(n Node) bool { return false },
		"Identifier": func(n Node) bool {
			count++
			return true
		},
	})

	assert.Zero(t, count, "pruned root should hide the identifiers")
}

func TestChildrenSkipsOmittedTupleSlots(t *testing.T) {
	tuple := &TupleExpression{Components: []Expression{nil, ident("x"), nil}}
	Attach(tuple, nil, nil)

	kids := Children(tuple)
	require.Len(t, kids, 1)
	assert.Equal(t, KindIdentifier, kids[0].NodeType())
}

func TestChildrenToleratesAbsentOptionalFields(t *testing.T) {
	fname := "f"
	fn := &FunctionDefinition{
		Name:       &fname,
		Parameters: []*VariableDeclaration{},
		Modifiers:  []*ModifierInvocation{},
		Visibility: "default",
	}
	Attach(fn, nil, nil)

	assert.Empty(t, Children(fn), "bodiless function has no children")

	loop := &ForStatement{Body: &Block{Statements: []Statement{}}}
	Attach(loop, nil, nil)
	kids := Children(loop)
	require.Len(t, kids, 1)
	assert.Equal(t, KindBlock, kids[0].NodeType())
}

func TestChildrenCoversFunctionOrdering(t *testing.T) {
	name := "amount"
	param := &VariableDeclaration{
		TypeName: &ElementaryTypeName{Name: "uint256"},
		Name:     &name,
	}
	Attach(param.TypeName, nil, nil)
	Attach(param, nil, nil)

	body := &Block{Statements: []Statement{}}
	Attach(body, nil, nil)

	fname := "transfer"
	fn := &FunctionDefinition{
		Name:       &fname,
		Parameters: []*VariableDeclaration{param},
		Modifiers:  []*ModifierInvocation{},
		Visibility: "public",
		Body:       body,
	}
	Attach(fn, nil, nil)

	kids := Children(fn)
	require.Len(t, kids, 2)
	assert.Equal(t, KindVariableDeclaration, kids[0].NodeType())
	assert.Equal(t, KindBlock, kids[1].NodeType())
}
