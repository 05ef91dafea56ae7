package format

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/rebeccalang/rebecca/rbc/parser"
)

// TokenTextWriter dumps a token stream as aligned columns, one token
// per line. Colors are off by default; the CLI enables them when
// stdout is a terminal.
type TokenTextWriter struct {
	w     io.Writer
	Color bool
}

func NewTokenTextWriter(w io.Writer) *TokenTextWriter {
	return &TokenTextWriter{w: w}
}

func (tw *TokenTextWriter) Write(tokens []parser.Token) error {
	tab := tabwriter.NewWriter(tw.w, 0, 0, 2, ' ', 0)
	for _, tok := range tokens {
		text := tok.Text
		if tok.Kind == parser.TokenLiteral {
			text = fmt.Sprintf("%q", text)
		}
		fmt.Fprintf(tab, "%d:%d\t%s\t%s\n",
			tok.Span.Start.Line, tok.Span.Start.Column, tw.kindLabel(tok.Kind), text)
	}
	return tab.Flush()
}

func (tw *TokenTextWriter) kindLabel(kind parser.TokenKind) string {
	c := tw.kindColor(kind)
	if !tw.Color {
		c.DisableColor()
	}
	return c.Sprint(kindTag(kind))
}

func (tw *TokenTextWriter) kindColor(kind parser.TokenKind) *color.Color {
	switch kind {
	case parser.TokenName:
		return color.New(color.FgCyan)
	case parser.TokenNumber, parser.TokenLiteral:
		return color.New(color.FgGreen)
	case parser.TokenGrammar, parser.TokenEpsilon:
		return color.New(color.FgYellow)
	case parser.TokenEOF:
		return color.New(color.FgBlue)
	case parser.TokenUnknown:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgMagenta)
	}
}

// kindTag names a kind for the text dump. Punctuation and operators
// share one tag; their glyph is already in the text column.
func kindTag(kind parser.TokenKind) string {
	switch kind {
	case parser.TokenName:
		return "NAME"
	case parser.TokenNumber:
		return "NUMBER"
	case parser.TokenLiteral:
		return "LITERAL"
	case parser.TokenGrammar, parser.TokenEpsilon:
		return "KEYWORD"
	case parser.TokenEOF:
		return "EOF"
	case parser.TokenUnknown:
		return "UNKNOWN"
	default:
		return "OP"
	}
}

// TokenJSONWriter dumps a token stream as one JSON array.
type TokenJSONWriter struct {
	w io.Writer
}

func NewTokenJSONWriter(w io.Writer) *TokenJSONWriter {
	return &TokenJSONWriter{w: w}
}

type jsonToken struct {
	Kind   string `json:"kind"`
	Text   string `json:"text"`
	Value  int    `json:"value,omitempty"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

func (jw *TokenJSONWriter) Write(tokens []parser.Token) error {
	records := make([]jsonToken, len(tokens))
	for i, tok := range tokens {
		records[i] = jsonToken{
			Kind:   kindTag(tok.Kind),
			Text:   tok.Text,
			Value:  tok.Value,
			Line:   tok.Span.Start.Line,
			Column: tok.Span.Start.Column,
		}
	}
	text, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	if _, err := jw.w.Write(text); err != nil {
		return err
	}
	_, err = io.WriteString(jw.w, "\n")
	return err
}
