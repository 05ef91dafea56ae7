package parser

import (
	"fmt"
	"sync/atomic"
)

// nodeIDs numbers every node created in this process. Ids stay unique
// across trees, so nodes keep their identity when one tree is spliced
// into another.
var nodeIDs atomic.Uint64

// Node is the structural unit of the syntax tree. It owns its Token
// and its children; Parent is a back-reference only and is nil for the
// root.
type Node struct {
	ID       uint64
	Token    *Token
	Children []*Node
	Parent   *Node
}

// Tree assembles nodes incrementally. Current is the cursor where the
// next edit applies; it is nil only while the tree is still empty.
// Size counts the nodes created through this tree's constructors.
type Tree struct {
	Root    *Node
	Current *Node
	Size    uint64
}

func NewTree() *Tree {
	return &Tree{}
}

// NewRootedTree returns a tree whose root is a marker node of the
// given kind.
func NewRootedTree(kind TokenKind) *Tree {
	t := NewTree()
	t.AddChild(t.NewMarker(kind))
	return t
}

// NewNode creates a node carrying a copy of tok. The node is not yet
// attached to the tree.
func (t *Tree) NewNode(tok *Token) *Node {
	if t == nil {
		panic("parser: NewNode on nil tree")
	}
	if tok == nil {
		panic("parser: NewNode of nil token")
	}
	if tok.Text == "" {
		panic("parser: NewNode of token without text")
	}
	copied := *tok
	t.Size++
	return &Node{
		ID:    nodeIDs.Add(1),
		Token: &copied,
	}
}

// NewMarker creates a node whose token is synthesized from the kind's
// canonical spelling. Markers label structure the source has no single
// lexeme for.
func (t *Tree) NewMarker(kind TokenKind) *Node {
	if t == nil {
		panic("parser: NewMarker on nil tree")
	}
	t.Size++
	return &Node{
		ID:    nodeIDs.Add(1),
		Token: &Token{Kind: kind, Text: kind.String()},
	}
}

// AddChild inserts n under the current node and moves the cursor to n.
// On an empty tree n becomes the root. Returns the new current node.
func (t *Tree) AddChild(n *Node) *Node {
	if t == nil {
		panic("parser: AddChild on nil tree")
	}
	if n == nil {
		panic("parser: AddChild of nil node")
	}
	if n.Token == nil || n.Token.Text == "" {
		panic("parser: AddChild of node without token text")
	}

	if t.Current == nil {
		t.Root = n
		t.Current = n
		return t.Current
	}

	t.Current.Children = append(t.Current.Children, n)
	n.Parent = t.Current
	t.Current = n
	return t.Current
}

// Parent moves the cursor one level up.
func (t *Tree) Parent() {
	if t == nil {
		panic("parser: Parent on nil tree")
	}
	if t.Current == nil {
		panic("parser: Parent on empty tree")
	}
	if t.Current.Parent == nil {
		panic("parser: Parent above the root")
	}
	t.Current = t.Current.Parent
}

// InsertParent splices n between the current node and its parent: n
// takes over the current node's slot, the current node becomes n's
// sole child with its subtree intact, and the cursor ends on n. If the
// current node was the root, n becomes the new root.
func (t *Tree) InsertParent(n *Node) {
	if t == nil {
		panic("parser: InsertParent on nil tree")
	}
	if t.Current == nil {
		panic("parser: InsertParent on empty tree")
	}
	if n == nil {
		panic("parser: InsertParent of nil node")
	}
	if n.Token == nil || n.Token.Text == "" {
		panic("parser: InsertParent of node without token text")
	}

	old := t.Current

	if old.Parent != nil {
		parent := old.Parent
		// The splice always rewrites the last child slot; callers
		// may only rebase the most recently inserted child.
		parent.Children[len(parent.Children)-1] = n
		n.Parent = parent
	}

	t.Current = n
	t.AddChild(old)
	t.Parent()

	if old == t.Root {
		t.Root = n
	}
}

// AppendTree transplants the children of other.Current under
// t.Current in their original order, then redirects other's cursor to
// t's. other must be treated as merged afterwards; the stale children
// of its former current node are not detached.
func (t *Tree) AppendTree(other *Tree) {
	if t == nil {
		panic("parser: AppendTree on nil tree")
	}
	if other == nil {
		panic("parser: AppendTree of nil tree")
	}
	if t.Current == nil || other.Current == nil {
		panic("parser: AppendTree of empty tree")
	}
	if t.Current == other.Current {
		panic("parser: AppendTree with shared current node")
	}

	children := make([]*Node, len(other.Current.Children))
	copy(children, other.Current.Children)

	for _, child := range children {
		t.AddChild(child)
		t.Parent()
	}

	other.Current = t.Current
}

// Child returns the i-th child of n.
func (n *Node) Child(i int) *Node {
	if n == nil {
		panic("parser: Child of nil node")
	}
	if i < 0 || i >= len(n.Children) {
		panic(fmt.Sprintf("parser: child index %d out of range [0,%d)", i, len(n.Children)))
	}
	return n.Children[i]
}

func (n *Node) Text() string {
	if n.Token != nil {
		return n.Token.Text
	}
	return ""
}

func (n *Node) Kind() TokenKind {
	if n.Token != nil {
		return n.Token.Kind
	}
	return TokenUnknown
}

func (n *Node) Role() Role {
	if n.Token != nil {
		return n.Token.Role
	}
	return RoleNone
}

func (n *Node) String() string {
	return n.stringIndent(0)
}

func (n *Node) stringIndent(indent int) string {
	prefix := ""
	for i := 0; i < indent; i++ {
		prefix += "  "
	}

	result := prefix + n.Text()
	if name := n.Kind().String(); name != n.Text() {
		result += " (" + name + ")"
	}
	result += "\n"

	for _, child := range n.Children {
		result += child.stringIndent(indent + 1)
	}
	return result
}
