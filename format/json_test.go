package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rebeccalang/rebecca/rbc/parser"
)

func TestASTJSONEncoder(t *testing.T) {
	tree, _, _, _ := plusTree(t)

	var buf bytes.Buffer
	if err := NewASTJSONEncoder(&buf).Encode(tree); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var root astJSONNode
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	if root.Kind != "+" {
		t.Errorf("Expected root kind %q, got %q", "+", root.Kind)
	}
	if len(root.Children) != 2 {
		t.Fatalf("Expected 2 children, got %d", len(root.Children))
	}
	if root.Children[0].Text != "a" || root.Children[1].Text != "b" {
		t.Errorf("Expected children a, b, got %q, %q",
			root.Children[0].Text, root.Children[1].Text)
	}
	if root.Children[0].Kind != "NAME" {
		t.Errorf("Expected leaf kind NAME, got %q", root.Children[0].Kind)
	}
}

func TestASTJSONEncoderRoles(t *testing.T) {
	tree := parser.NewTree()
	tok := parser.Token{Kind: parser.TokenName, Text: "digit", Role: parser.RoleVarDef}
	tree.AddChild(tree.NewNode(&tok))

	var buf bytes.Buffer
	if err := NewASTJSONEncoder(&buf).Encode(tree); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var root astJSONNode
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if root.Role != "var-def" {
		t.Errorf("Expected role var-def, got %q", root.Role)
	}
}

func TestTokenTextWriter(t *testing.T) {
	tokens := parser.Tokenize([]byte("digit = '09' ;"), "test.rbc")

	var buf bytes.Buffer
	if err := NewTokenTextWriter(&buf).Write(tokens); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != len(tokens) {
		t.Fatalf("Expected %d lines, got %d", len(tokens), len(lines))
	}
	if !strings.Contains(lines[0], "NAME") || !strings.Contains(lines[0], "digit") {
		t.Errorf("Expected NAME digit in first line, got %q", lines[0])
	}
	if !strings.Contains(lines[2], `"09"`) {
		t.Errorf("Expected quoted literal in third line, got %q", lines[2])
	}
	if !strings.Contains(lines[len(lines)-1], "EOF") {
		t.Errorf("Expected EOF in last line, got %q", lines[len(lines)-1])
	}
}

func TestTokenJSONWriter(t *testing.T) {
	tokens := parser.Tokenize([]byte("max = 255 ;"), "test.rbc")

	var buf bytes.Buffer
	if err := NewTokenJSONWriter(&buf).Write(tokens); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var records []jsonToken
	if err := json.Unmarshal(buf.Bytes(), &records); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if len(records) != len(tokens) {
		t.Fatalf("Expected %d records, got %d", len(tokens), len(records))
	}
	if records[2].Kind != "NUMBER" || records[2].Value != 255 {
		t.Errorf("Expected NUMBER 255, got %s %d", records[2].Kind, records[2].Value)
	}
	if records[len(records)-1].Kind != "EOF" {
		t.Errorf("Expected trailing EOF record, got %s", records[len(records)-1].Kind)
	}
}
