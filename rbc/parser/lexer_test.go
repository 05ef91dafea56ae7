package parser

import (
	"testing"
)

func TestLexerNewLexer(t *testing.T) {
	lexer := NewLexer([]byte("digit = '0' ;"), "test.rbc")
	pos := lexer.Position()

	if pos.File != "test.rbc" {
		t.Errorf("File = %q, want %q", pos.File, "test.rbc")
	}
	if pos.Line != 1 {
		t.Errorf("Line = %d, want %d", pos.Line, 1)
	}
	if pos.Column != 1 {
		t.Errorf("Column = %d, want %d", pos.Column, 1)
	}
	if pos.Offset != 0 {
		t.Errorf("Offset = %d, want %d", pos.Offset, 0)
	}
}

func TestLexerStableWords(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"grammar", TokenGrammar},
		{"epsilon", TokenEpsilon},
		{"EOF", TokenEOF},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), "test.rbc")
			tok := lexer.NextToken()
			if tok.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tok.Kind, tt.kind)
			}
			if tok.Text != tt.input {
				t.Errorf("Text = %q, want %q", tok.Text, tt.input)
			}
		})
	}
}

func TestLexerNames(t *testing.T) {
	tests := []string{
		"foo",
		"Bar",
		"_private",
		"snake_case",
		"with123Numbers",
		"grammarlike",
		"epsilonish",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			lexer := NewLexer([]byte(input), "test.rbc")
			tok := lexer.NextToken()
			if tok.Kind != TokenName {
				t.Errorf("Kind = %v, want %v", tok.Kind, TokenName)
			}
			if tok.Text != input {
				t.Errorf("Text = %q, want %q", tok.Text, input)
			}
		})
	}
}

func TestLexerOperators(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"=", TokenEq},
		{":", TokenColon},
		{";", TokenSemicolon},
		{"|", TokenPipe},
		{"*", TokenStar},
		{"+", TokenPlus},
		{"?", TokenQuestion},
		{"(", TokenLParen},
		{")", TokenRParen},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), "test.rbc")
			tok := lexer.NextToken()
			if tok.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tok.Kind, tt.kind)
			}
			if tok.Text != tt.input {
				t.Errorf("Text = %q, want %q", tok.Text, tt.input)
			}
		})
	}
}

func TestLexerNumbers(t *testing.T) {
	tests := []struct {
		input string
		value int
	}{
		{"0", 0},
		{"7", 7},
		{"123", 123},
		{"0042", 42},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), "test.rbc")
			tok := lexer.NextToken()
			if tok.Kind != TokenNumber {
				t.Errorf("Kind = %v, want %v", tok.Kind, TokenNumber)
			}
			if tok.Text != tt.input {
				t.Errorf("Text = %q, want %q", tok.Text, tt.input)
			}
			if tok.Value != tt.value {
				t.Errorf("Value = %d, want %d", tok.Value, tt.value)
			}
		})
	}
}

func TestLexerLiterals(t *testing.T) {
	tests := []struct {
		input string
		text  string
	}{
		{"'0123456789'", "0123456789"},
		{`"hello world"`, "hello world"},
		{"'+'", "+"},
		{`"it's"`, "it's"},
		{"''", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), "test.rbc")
			tok := lexer.NextToken()
			if tok.Kind != TokenLiteral {
				t.Errorf("Kind = %v, want %v", tok.Kind, TokenLiteral)
			}
			if tok.Text != tt.text {
				t.Errorf("Text = %q, want %q", tok.Text, tt.text)
			}
		})
	}
}

func TestLexerUnterminatedLiteral(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
		text  string
	}{
		{"'abc", TokenSingleQuote, "'"},
		{`"abc`, TokenDoubleQuote, `"`},
		{"'abc\nd'", TokenSingleQuote, "'"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), "test.rbc")
			tok := lexer.NextToken()
			if tok.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tok.Kind, tt.kind)
			}
			if tok.Text != tt.text {
				t.Errorf("Text = %q, want %q", tok.Text, tt.text)
			}
		})
	}
}

func TestLexerSkipsComments(t *testing.T) {
	lexer := NewLexer([]byte("# a comment\ndigit"), "test.rbc")
	tok := lexer.NextToken()
	if tok.Kind != TokenName {
		t.Errorf("Kind = %v, want %v", tok.Kind, TokenName)
	}
	if tok.Text != "digit" {
		t.Errorf("Text = %q, want %q", tok.Text, "digit")
	}
}

func TestLexerSkipsWhitespace(t *testing.T) {
	lexer := NewLexer([]byte("   \t\r\n  x"), "test.rbc")
	tok := lexer.NextToken()
	if tok.Kind != TokenName {
		t.Errorf("Kind = %v, want %v", tok.Kind, TokenName)
	}
}

func TestLexerEOF(t *testing.T) {
	lexer := NewLexer([]byte(""), "test.rbc")
	tok := lexer.NextToken()
	if tok.Kind != TokenEOF {
		t.Errorf("Kind = %v, want %v", tok.Kind, TokenEOF)
	}
	if tok.Text != "EOF" {
		t.Errorf("Text = %q, want %q", tok.Text, "EOF")
	}
}

func TestLexerPositionTracking(t *testing.T) {
	lexer := NewLexer([]byte("foo\nbar"), "test.rbc")

	tok1 := lexer.NextToken()
	if tok1.Span.Start.Line != 1 || tok1.Span.Start.Column != 1 {
		t.Errorf("First token at (%d, %d), want (1, 1)", tok1.Span.Start.Line, tok1.Span.Start.Column)
	}

	tok2 := lexer.NextToken()
	if tok2.Span.Start.Line != 2 || tok2.Span.Start.Column != 1 {
		t.Errorf("Second token at (%d, %d), want (2, 1)", tok2.Span.Start.Line, tok2.Span.Start.Column)
	}
}

func TestLexerSequence(t *testing.T) {
	input := "number : digit+ ;"
	lexer := NewLexer([]byte(input), "test.rbc")

	expected := []TokenKind{
		TokenName,
		TokenColon,
		TokenName,
		TokenPlus,
		TokenSemicolon,
		TokenEOF,
	}

	for i, want := range expected {
		tok := lexer.NextToken()
		if tok.Kind != want {
			t.Errorf("Token %d: Kind = %v, want %v", i, tok.Kind, want)
		}
	}
}

func TestLexerUnknownCharacter(t *testing.T) {
	lexer := NewLexer([]byte("@"), "test.rbc")
	tok := lexer.NextToken()
	if tok.Kind != TokenUnknown {
		t.Errorf("Kind = %v, want %v", tok.Kind, TokenUnknown)
	}
	if tok.Text != "@" {
		t.Errorf("Text = %q, want %q", tok.Text, "@")
	}
}

func TestTokenize(t *testing.T) {
	tokens := Tokenize([]byte("a = '1' ;"), "test.rbc")

	expected := []TokenKind{TokenName, TokenEq, TokenLiteral, TokenSemicolon, TokenEOF}
	if len(tokens) != len(expected) {
		t.Fatalf("len(tokens) = %d, want %d", len(tokens), len(expected))
	}
	for i, want := range expected {
		if tokens[i].Kind != want {
			t.Errorf("Token %d: Kind = %v, want %v", i, tokens[i].Kind, want)
		}
	}
}

func TestTokenizeStopsAtEOFWord(t *testing.T) {
	tokens := Tokenize([]byte("a EOF b"), "test.rbc")

	if len(tokens) != 2 {
		t.Fatalf("len(tokens) = %d, want %d", len(tokens), 2)
	}
	if tokens[1].Kind != TokenEOF {
		t.Errorf("Kind = %v, want %v", tokens[1].Kind, TokenEOF)
	}
	if tokens[1].Text != "EOF" {
		t.Errorf("Text = %q, want %q", tokens[1].Text, "EOF")
	}
}
