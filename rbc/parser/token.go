package parser

import "fmt"

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Span struct {
	Start Position
	End   Position
}

type TokenKind int

const (
	TokenUnknown TokenKind = iota

	// Carriers of source text
	TokenName
	TokenNumber
	TokenLiteral

	// Keywords
	TokenGrammar
	TokenEpsilon

	// Operators and punctuation
	TokenEq
	TokenColon
	TokenSemicolon
	TokenPipe
	TokenStar
	TokenPlus
	TokenQuestion
	TokenLParen
	TokenRParen
	TokenSingleQuote
	TokenDoubleQuote

	TokenEOF
)

// tokenKindNames holds the canonical spelling of each kind. The graph
// exporter prints it alongside a node's text whenever the two differ,
// so keyword and punctuation entries must match their source spelling
// exactly.
var tokenKindNames = map[TokenKind]string{
	TokenUnknown:     "UNKNOWN",
	TokenName:        "NAME",
	TokenNumber:      "NUMBER",
	TokenLiteral:     "LITERAL",
	TokenGrammar:     "grammar",
	TokenEpsilon:     "epsilon",
	TokenEq:          "=",
	TokenColon:       ":",
	TokenSemicolon:   ";",
	TokenPipe:        "|",
	TokenStar:        "*",
	TokenPlus:        "+",
	TokenQuestion:    "?",
	TokenLParen:      "(",
	TokenRParen:      ")",
	TokenSingleQuote: "'",
	TokenDoubleQuote: "\"",
	TokenEOF:         "EOF",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Role classifies what a name token means inside a grammar. It never
// influences parsing; the graph exporter uses it to pick node colors.
type Role int

const (
	RoleNone Role = iota
	RoleRuleDef
	RoleRuleRef
	RoleVarDef
	RoleVarRef
)

var roleNames = map[Role]string{
	RoleNone:    "none",
	RoleRuleDef: "rule-def",
	RoleRuleRef: "rule-ref",
	RoleVarDef:  "var-def",
	RoleVarRef:  "var-ref",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "none"
}

type Token struct {
	Kind  TokenKind
	Span  Span
	Text  string
	Value int
	Role  Role
}

// stableWords maps the lexemes whose meaning never depends on context.
// The word EOF is among them: writing EOF in a grammar produces the end
// marker itself.
var stableWords = map[string]TokenKind{
	"grammar": TokenGrammar,
	"epsilon": TokenEpsilon,
	"EOF":     TokenEOF,
}

func LookupStableWord(text string) TokenKind {
	if kind, ok := stableWords[text]; ok {
		return kind
	}
	return TokenName
}
