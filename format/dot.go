package format

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/rebeccalang/rebecca/rbc/parser"
)

// DefaultDPI is the rendering density declared in every exported
// graph header.
const DefaultDPI = 50

// DOTEncoder serializes a syntax tree as a Graphviz document: one
// record per node, then one record per parent-child edge, both in
// pre-order. Node shapes follow the token kind and node colors follow
// the syntactic role.
type DOTEncoder struct {
	w    io.Writer
	tree *parser.Tree
	DPI  int
}

func NewDOTEncoder(w io.Writer) *DOTEncoder {
	return &DOTEncoder{w: w, DPI: DefaultDPI}
}

func (e *DOTEncoder) Encode(tree *parser.Tree) error {
	e.tree = tree
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *DOTEncoder) MarshalText() ([]byte, error) {
	if e.tree == nil || e.tree.Root == nil {
		return nil, fmt.Errorf("encode graph: empty tree")
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G{\n")
	fmt.Fprintf(&buf, "\tgraph [dpi=%d];\n\n", e.DPI)
	writeNodes(&buf, e.tree.Root)
	buf.WriteString("\n")
	writeEdges(&buf, e.tree.Root)
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

// writeNodes emits one record per node. The label shows the node's
// text alone when it matches the canonical spelling of its kind, and
// adds the kind on a second line when it does not.
func writeNodes(buf *bytes.Buffer, n *parser.Node) {
	text := n.Text()
	kindName := n.Kind().String()

	if text == kindName {
		fmt.Fprintf(buf, "\tn%d [shape=%s color=%s label=\"%s\"]\n",
			n.ID, borderShape(n.Kind()), roleColor(n.Role()), escapeLabel(text))
	} else {
		fmt.Fprintf(buf, "\tn%d [shape=%s color=%s label=\"%s\\n%s\"]\n",
			n.ID, borderShape(n.Kind()), roleColor(n.Role()), escapeLabel(text), escapeLabel(kindName))
	}

	for _, child := range n.Children {
		writeNodes(buf, child)
	}
}

func writeEdges(buf *bytes.Buffer, n *parser.Node) {
	for _, child := range n.Children {
		fmt.Fprintf(buf, "\tn%d -> n%d\n", n.ID, child.ID)
	}

	for _, child := range n.Children {
		writeEdges(buf, child)
	}
}

// borderShape picks the node outline from the token kind. Structural
// punctuation disappears into borderless labels, names get boxes,
// everything else a diamond.
func borderShape(kind parser.TokenKind) string {
	switch kind {
	case parser.TokenColon,
		parser.TokenSemicolon,
		parser.TokenDoubleQuote,
		parser.TokenSingleQuote,
		parser.TokenEOF,
		parser.TokenEq:
		return "none"
	case parser.TokenName:
		return "rectangle"
	default:
		return "diamond"
	}
}

// roleColor picks the node color from the syntactic role.
func roleColor(role parser.Role) string {
	switch role {
	case parser.RoleVarDef:
		return "yellow"
	case parser.RoleRuleDef:
		return "cyan"
	case parser.RoleRuleRef:
		return "red"
	case parser.RoleVarRef:
		return "green"
	default:
		return "black"
	}
}

var labelEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
)

func escapeLabel(text string) string {
	return labelEscaper.Replace(text)
}
