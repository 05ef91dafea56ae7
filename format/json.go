package format

import (
	"encoding/json"
	"io"

	"github.com/rebeccalang/rebecca/rbc/parser"
)

type ASTJSONEncoder struct {
	w    io.Writer
	tree *parser.Tree
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(tree *parser.Tree) error {
	e.tree = tree
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *ASTJSONEncoder) MarshalText() ([]byte, error) {
	if e.tree == nil || e.tree.Root == nil {
		return json.Marshal(nil)
	}
	return json.MarshalIndent(nodeToJSON(e.tree.Root), "", "  ")
}

type astJSONNode struct {
	ID       uint64         `json:"id"`
	Kind     string         `json:"kind"`
	Role     string         `json:"role,omitempty"`
	Text     string         `json:"text"`
	Value    int            `json:"value,omitempty"`
	Span     *astJSONSpan   `json:"span,omitempty"`
	Children []*astJSONNode `json:"children,omitempty"`
}

type astJSONSpan struct {
	Start astJSONPosition `json:"start"`
	End   astJSONPosition `json:"end"`
}

type astJSONPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func nodeToJSON(n *parser.Node) *astJSONNode {
	jn := &astJSONNode{
		ID:   n.ID,
		Kind: n.Kind().String(),
		Text: n.Text(),
	}

	if role := n.Role(); role != parser.RoleNone {
		jn.Role = role.String()
	}

	if tok := n.Token; tok != nil {
		jn.Value = tok.Value
		if tok.Span.Start.Line != 0 || tok.Span.End.Line != 0 {
			jn.Span = &astJSONSpan{
				Start: astJSONPosition{Line: tok.Span.Start.Line, Column: tok.Span.Start.Column},
				End:   astJSONPosition{Line: tok.Span.End.Line, Column: tok.Span.End.Column},
			}
		}
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*astJSONNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = nodeToJSON(child)
		}
	}

	return jn
}
