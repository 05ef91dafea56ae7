package parser

import "strconv"

// Lexer splits grammar source into tokens. Whitespace and # comments
// never surface as tokens; the stream always ends with an explicit EOF
// token whose text is "EOF".
type Lexer struct {
	input  []byte
	file   string
	pos    int
	line   int
	column int
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		pos:    0,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) skipTrivia() {
	for {
		ch := l.peek()
		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
			l.advance()
			continue
		}
		if ch == '#' {
			for l.peek() != 0 && l.peek() != '\n' {
				l.advance()
			}
			continue
		}
		break
	}
}

func (l *Lexer) NextToken() Token {
	l.skipTrivia()
	startPos := l.Position()

	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Span: Span{Start: startPos, End: startPos}, Text: "EOF"}
	}

	ch := l.peek()

	if isNameStart(ch) {
		return l.scanName(startPos)
	}

	if isDigit(ch) {
		return l.scanNumber(startPos)
	}

	if ch == '\'' || ch == '"' {
		return l.scanLiteral(startPos)
	}

	return l.scanOperator(startPos)
}

// Tokenize runs the lexer over src until and including the EOF token.
func Tokenize(src []byte, file string) []Token {
	lexer := NewLexer(src, file)
	var tokens []Token
	for {
		tok := lexer.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens
		}
	}
}

func (l *Lexer) scanName(start Position) Token {
	for isNameChar(l.peek()) {
		l.advance()
	}
	end := l.Position()
	text := string(l.input[start.Offset:end.Offset])
	return Token{
		Kind: LookupStableWord(text),
		Span: Span{Start: start, End: end},
		Text: text,
	}
}

func (l *Lexer) scanNumber(start Position) Token {
	for isDigit(l.peek()) {
		l.advance()
	}
	end := l.Position()
	text := string(l.input[start.Offset:end.Offset])
	value, err := strconv.Atoi(text)
	if err != nil {
		return Token{
			Kind: TokenUnknown,
			Span: Span{Start: start, End: end},
			Text: text,
		}
	}
	return Token{
		Kind:  TokenNumber,
		Span:  Span{Start: start, End: end},
		Text:  text,
		Value: value,
	}
}

// scanLiteral reads a quoted charset or literal. The quotes are not
// part of the token text. An unterminated literal falls back to the
// bare quote glyph so the parser can report it at the right place.
func (l *Lexer) scanLiteral(start Position) Token {
	quote := l.advance()
	for l.peek() != 0 && l.peek() != quote && l.peek() != '\n' {
		l.advance()
	}
	if l.peek() != quote {
		kind := TokenSingleQuote
		if quote == '"' {
			kind = TokenDoubleQuote
		}
		end := l.Position()
		return Token{
			Kind: kind,
			Span: Span{Start: start, End: end},
			Text: string(quote),
		}
	}
	text := string(l.input[start.Offset+1 : l.pos])
	l.advance()
	end := l.Position()
	return Token{
		Kind: TokenLiteral,
		Span: Span{Start: start, End: end},
		Text: text,
	}
}

func (l *Lexer) scanOperator(start Position) Token {
	ch := l.advance()

	var kind TokenKind
	switch ch {
	case '=':
		kind = TokenEq
	case ':':
		kind = TokenColon
	case ';':
		kind = TokenSemicolon
	case '|':
		kind = TokenPipe
	case '*':
		kind = TokenStar
	case '+':
		kind = TokenPlus
	case '?':
		kind = TokenQuestion
	case '(':
		kind = TokenLParen
	case ')':
		kind = TokenRParen
	default:
		kind = TokenUnknown
	}

	end := l.Position()
	return Token{
		Kind: kind,
		Span: Span{Start: start, End: end},
		Text: string(l.input[start.Offset:end.Offset]),
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isNameStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isNameChar(ch byte) bool {
	return isNameStart(ch) || isDigit(ch)
}
