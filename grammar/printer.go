package grammar

import (
	"fmt"
	"strings"

	"solparse/token"
)

func indent(level int) string {
	return strings.Repeat("    ", level)
}

// String renders the subtree one node per line with children indented
// under their parent: rule names bare, terminals quoted, the EOF
// sentinel as <EOF>. The output reads as an anatomy of the source:
//
//	sourceUnit
//	    contractDefinition
//	        "contract"
//	        identifier
//	            "C"
//	        "{"
//	        "}"
//	    <EOF>
func (n *Node) String() string {
	var b strings.Builder
	n.writeTree(&b, 0)
	return strings.TrimSuffix(b.String(), "\n")
}

func (n *Node) StringWithIndent(level int) string {
	var b strings.Builder
	n.writeTree(&b, level)
	return b.String()
}

func (n *Node) writeTree(b *strings.Builder, level int) {
	if n == nil {
		return
	}
	b.WriteString(indent(level))
	if n.Tok != nil {
		b.WriteString(terminalLabel(n.Tok))
		b.WriteByte('\n')
		return
	}
	b.WriteString(string(n.Rule))
	b.WriteByte('\n')
	for _, c := range n.Children {
		c.writeTree(b, level+1)
	}
}

func terminalLabel(t *token.Token) string {
	if t.Type == token.EOF {
		return "<EOF>"
	}
	return fmt.Sprintf("%q", t.Value)
}
