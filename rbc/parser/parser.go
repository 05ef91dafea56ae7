package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

// ParseError is a diagnostic collected while parsing a grammar file.
// Warnings point at suspicious but buildable input, such as a
// reference to a name no definition introduces.
type ParseError struct {
	Span    Span
	Message string
	Warning bool
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Span.Start, e.Message)
}

// Parser reads grammar declarations and drives the tree builder. The
// tree primitives only ever see well-formed input: anything malformed
// is reported as a ParseError and skipped here.
type Parser struct {
	file   string
	reader io.Reader
	input  []byte
	tokens []Token
	pos    int
	tree   *Tree
	errors []ParseError
	vars   map[string]bool
	rules  map[string]bool
}

func ParseGrammar(r io.Reader, opts ...Option) *Parser {
	p := &Parser{
		reader: r,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parser) readAll() error {
	if p.input != nil {
		return nil
	}
	data, err := io.ReadAll(p.reader)
	if err != nil {
		return err
	}
	p.input = data
	return nil
}

// Finish parses the whole input and returns the tree together with
// the collected diagnostics. The tree is never nil: an empty or fully
// malformed grammar still produces a rooted tree.
func (p *Parser) Finish() (*Tree, []ParseError) {
	if err := p.readAll(); err != nil {
		p.errors = append(p.errors, ParseError{Message: fmt.Sprintf("read input: %v", err)})
		p.input = []byte{}
	}
	p.tokens = Tokenize(p.input, p.file)
	p.pos = 0
	p.scanDefinitions()
	p.parseFile()
	return p.tree, p.errors
}

// scanDefinitions records which names the grammar defines before the
// real parse runs, so references resolve regardless of declaration
// order.
func (p *Parser) scanDefinitions() {
	p.vars = make(map[string]bool)
	p.rules = make(map[string]bool)
	for i := 0; i+1 < len(p.tokens); i++ {
		if p.tokens[i].Kind != TokenName {
			continue
		}
		switch p.tokens[i+1].Kind {
		case TokenEq:
			p.vars[p.tokens[i].Text] = true
		case TokenColon:
			p.rules[p.tokens[i].Text] = true
		}
	}
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Kind: TokenEOF, Text: "EOF"}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekN(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return Token{Kind: TokenEOF, Text: "EOF"}
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) expect(kind TokenKind) *Token {
	tok := p.peek()
	if tok.Kind == kind {
		p.advance()
		return &tok
	}
	p.errorf(tok.Span, "expected %q, got %q", kind.String(), tok.Text)
	return nil
}

func (p *Parser) errorf(span Span, format string, args ...any) {
	p.errors = append(p.errors, ParseError{
		Span:    span,
		Message: fmt.Sprintf(format, args...),
	})
}

func (p *Parser) warnf(span Span, format string, args ...any) {
	p.errors = append(p.errors, ParseError{
		Span:    span,
		Message: fmt.Sprintf(format, args...),
		Warning: true,
	})
}

// skipDefinition advances past the next semicolon so the parse can
// resume at the following definition.
func (p *Parser) skipDefinition() {
	for !p.check(TokenEOF) {
		if p.advance().Kind == TokenSemicolon {
			return
		}
	}
}

// ascendTo walks the cursor back up to n. Error recovery uses it to
// leave the tree in a known position no matter how deep a definition
// failed.
func (p *Parser) ascendTo(n *Node) {
	for p.tree.Current != n && p.tree.Current.Parent != nil {
		p.tree.Parent()
	}
}

func (p *Parser) parseFile() {
	rootTok := p.rootToken()
	p.tree = NewTree()
	p.tree.AddChild(p.tree.NewNode(&rootTok))
	root := p.tree.Current

	for !p.check(TokenEOF) {
		switch {
		case p.check(TokenName) && p.peekN(1).Kind == TokenEq:
			p.parseVariable()
		case p.check(TokenName) && p.peekN(1).Kind == TokenColon:
			p.parseRule()
		default:
			tok := p.peek()
			p.errorf(tok.Span, "expected definition, got %q", tok.Text)
			p.skipDefinition()
		}
		p.ascendTo(root)
	}

	eof := p.peek()
	p.tree.AddChild(p.tree.NewNode(&eof))
	p.tree.Parent()
}

// rootToken picks the root node for the whole grammar: the name from
// the grammar header when present, the file name otherwise.
func (p *Parser) rootToken() Token {
	if p.check(TokenGrammar) {
		p.advance()
		if name := p.expect(TokenName); name != nil {
			p.expect(TokenSemicolon)
			return *name
		}
		p.skipDefinition()
	}

	name := strings.TrimSuffix(filepath.Base(p.file), ".rbc")
	if name == "" || name == "." {
		name = "grammar"
	}
	return Token{Kind: TokenName, Text: name}
}

// parseVariable handles `name = value ;`. The name goes in first and
// is rebased under the later-discovered "=" node.
func (p *Parser) parseVariable() {
	name := p.advance()
	name.Role = RoleVarDef
	p.tree.AddChild(p.tree.NewNode(&name))

	eq := p.advance()
	p.tree.InsertParent(p.tree.NewNode(&eq))

	value := p.peek()
	switch value.Kind {
	case TokenLiteral:
		if value.Text == "" {
			p.errorf(value.Span, "empty literal in definition of %q", name.Text)
			p.advance()
		} else {
			p.advance()
			p.tree.AddChild(p.tree.NewNode(&value))
			p.tree.Parent()
		}
	case TokenNumber:
		p.advance()
		p.tree.AddChild(p.tree.NewNode(&value))
		p.tree.Parent()
	default:
		p.errorf(value.Span, "expected literal or number, got %q", value.Text)
		p.skipDefinition()
		return
	}

	p.expect(TokenSemicolon)
	p.tree.Parent()
}

// parseRule handles `name : alternative { | alternative } ;`. The
// name is rebased under the ":" node once the colon shows up; each
// alternative is assembled in its own scratch tree and spliced in
// under a "|" marker.
func (p *Parser) parseRule() {
	name := p.advance()
	name.Role = RoleRuleDef
	p.tree.AddChild(p.tree.NewNode(&name))

	colon := p.advance()
	p.tree.InsertParent(p.tree.NewNode(&colon))

	for {
		p.parseAlternative()
		if p.check(TokenPipe) {
			p.advance()
			continue
		}
		break
	}

	p.expect(TokenSemicolon)
	p.tree.Parent()
}

func (p *Parser) parseAlternative() {
	scratch := NewRootedTree(TokenPipe)

	if p.check(TokenEpsilon) {
		tok := p.advance()
		scratch.AddChild(scratch.NewNode(&tok))
		scratch.Parent()
	} else {
		for p.atElement() {
			p.parseElement(scratch)
		}
		if len(scratch.Root.Children) == 0 {
			p.warnf(p.peek().Span, "empty alternative, use epsilon to match nothing")
		}
	}

	p.tree.AddChild(p.tree.NewMarker(TokenPipe))
	p.tree.AppendTree(scratch)
	p.tree.Parent()
}

func (p *Parser) atElement() bool {
	switch p.peek().Kind {
	case TokenName, TokenLiteral, TokenNumber, TokenLParen:
		return true
	}
	return false
}

// parseElement adds one element under t's current node and returns
// with the cursor back where it started. A trailing *, + or ? is
// discovered after the element it modifies and rebases it the same
// way "=" rebases a variable name.
func (p *Parser) parseElement(t *Tree) {
	tok := p.peek()
	switch tok.Kind {
	case TokenName:
		p.advance()
		tok.Role = p.referenceRole(tok)
		t.AddChild(t.NewNode(&tok))
	case TokenLiteral:
		if tok.Text == "" {
			p.errorf(tok.Span, "empty literal")
			p.advance()
			return
		}
		p.advance()
		t.AddChild(t.NewNode(&tok))
	case TokenNumber:
		p.advance()
		t.AddChild(t.NewNode(&tok))
	case TokenLParen:
		p.advance()
		t.AddChild(t.NewMarker(TokenLParen))
		for p.atElement() {
			p.parseElement(t)
		}
		p.expect(TokenRParen)
	}

	if p.atSuffix() {
		op := p.advance()
		t.InsertParent(t.NewNode(&op))
	}
	t.Parent()
}

func (p *Parser) atSuffix() bool {
	switch p.peek().Kind {
	case TokenStar, TokenPlus, TokenQuestion:
		return true
	}
	return false
}

// referenceRole classifies a name used inside a rule body. Variables
// shadow rules when a name is defined as both.
func (p *Parser) referenceRole(tok Token) Role {
	if p.vars[tok.Text] {
		return RoleVarRef
	}
	if p.rules[tok.Text] {
		return RoleRuleRef
	}
	p.warnf(tok.Span, "reference to undefined name %q", tok.Text)
	return RoleNone
}
