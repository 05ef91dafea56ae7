package format

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/rebeccalang/rebecca/rbc/parser"
)

// plusTree builds the tree  '+' -> [a, b]  with NAME leaves.
func plusTree(t *testing.T) (*parser.Tree, *parser.Node, *parser.Node, *parser.Node) {
	t.Helper()

	tree := parser.NewTree()
	root := tree.AddChild(tree.NewMarker(parser.TokenPlus))

	aTok := parser.Token{Kind: parser.TokenName, Text: "a"}
	a := tree.AddChild(tree.NewNode(&aTok))
	tree.Parent()

	bTok := parser.Token{Kind: parser.TokenName, Text: "b"}
	b := tree.AddChild(tree.NewNode(&bTok))
	tree.Parent()

	return tree, root, a, b
}

func TestDOTEncoderPlusTree(t *testing.T) {
	tree, root, a, b := plusTree(t)

	var buf bytes.Buffer
	if err := NewDOTEncoder(&buf).Encode(tree); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "digraph G{\n") {
		t.Errorf("Expected digraph header, got %q", out)
	}
	if !strings.Contains(out, "graph [dpi=50];") {
		t.Errorf("Expected dpi=50 in header, got %q", out)
	}
	if !strings.HasSuffix(out, "}\n") {
		t.Errorf("Expected closing brace, got %q", out)
	}

	// Exactly two edges, both from the root.
	edges := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "->") {
			edges++
			if !strings.Contains(line, fmt.Sprintf("n%d ->", root.ID)) {
				t.Errorf("Edge from non-root node: %q", line)
			}
		}
	}
	if edges != 2 {
		t.Errorf("Expected 2 edges, got %d", edges)
	}
	for _, leaf := range []*parser.Node{a, b} {
		if strings.Contains(out, fmt.Sprintf("n%d ->", leaf.ID)) {
			t.Errorf("Leaf n%d has outgoing edges", leaf.ID)
		}
	}

	// Leaves are rectangles, the root a diamond.
	for _, leaf := range []*parser.Node{a, b} {
		if !strings.Contains(out, fmt.Sprintf("n%d [shape=rectangle", leaf.ID)) {
			t.Errorf("Expected rectangle shape for leaf n%d", leaf.ID)
		}
	}
	if !strings.Contains(out, fmt.Sprintf("n%d [shape=diamond", root.ID)) {
		t.Errorf("Expected diamond shape for root n%d", root.ID)
	}
}

func TestDOTEncoderDualLabel(t *testing.T) {
	tree, root, a, _ := plusTree(t)

	var buf bytes.Buffer
	if err := NewDOTEncoder(&buf).Encode(tree); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	out := buf.String()

	// "a" differs from its canonical kind name NAME: two-line label.
	if !strings.Contains(out, fmt.Sprintf(`n%d [shape=rectangle color=black label="a\nNAME"]`, a.ID)) {
		t.Errorf("Expected dual label for leaf, got %q", out)
	}
	// The marker's text is the canonical spelling: single label.
	if !strings.Contains(out, fmt.Sprintf(`n%d [shape=diamond color=black label="+"]`, root.ID)) {
		t.Errorf("Expected single label for marker, got %q", out)
	}
}

func TestDOTEncoderRoleColors(t *testing.T) {
	tests := []struct {
		role parser.Role
		want string
	}{
		{parser.RoleVarDef, "yellow"},
		{parser.RoleRuleDef, "cyan"},
		{parser.RoleRuleRef, "red"},
		{parser.RoleVarRef, "green"},
		{parser.RoleNone, "black"},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			tree := parser.NewTree()
			tok := parser.Token{Kind: parser.TokenName, Text: "x", Role: tt.role}
			n := tree.AddChild(tree.NewNode(&tok))

			var buf bytes.Buffer
			if err := NewDOTEncoder(&buf).Encode(tree); err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if !strings.Contains(buf.String(), fmt.Sprintf("n%d [shape=rectangle color=%s ", n.ID, tt.want)) {
				t.Errorf("Expected color %s, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestDOTEncoderDeterministic(t *testing.T) {
	tree, _, _, _ := plusTree(t)

	var first, second bytes.Buffer
	if err := NewDOTEncoder(&first).Encode(tree); err != nil {
		t.Fatalf("first Encode failed: %v", err)
	}
	if err := NewDOTEncoder(&second).Encode(tree); err != nil {
		t.Fatalf("second Encode failed: %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Errorf("Exports differ:\n%s\n---\n%s", first.String(), second.String())
	}
}

func TestDOTEncoderEscapesLabels(t *testing.T) {
	tree := parser.NewTree()
	tok := parser.Token{Kind: parser.TokenLiteral, Text: `say "hi"`}
	tree.AddChild(tree.NewNode(&tok))

	var buf bytes.Buffer
	if err := NewDOTEncoder(&buf).Encode(tree); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.Contains(buf.String(), `say \"hi\"`) {
		t.Errorf("Expected escaped quotes, got %q", buf.String())
	}
}

func TestDOTEncoderEmptyTree(t *testing.T) {
	var buf bytes.Buffer
	if err := NewDOTEncoder(&buf).Encode(parser.NewTree()); err == nil {
		t.Errorf("Expected error for empty tree, got nil")
	}
}

func TestDOTEncoderCustomDPI(t *testing.T) {
	tree, _, _, _ := plusTree(t)

	var buf bytes.Buffer
	e := NewDOTEncoder(&buf)
	e.DPI = 120
	if err := e.Encode(tree); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.Contains(buf.String(), "graph [dpi=120];") {
		t.Errorf("Expected dpi=120, got %q", buf.String())
	}
}
