package parser

import "testing"

func TestTokenKindString(t *testing.T) {
	tests := []struct {
		kind TokenKind
		want string
	}{
		{TokenName, "NAME"},
		{TokenNumber, "NUMBER"},
		{TokenLiteral, "LITERAL"},
		{TokenGrammar, "grammar"},
		{TokenEq, "="},
		{TokenPipe, "|"},
		{TokenEOF, "EOF"},
		{TokenUnknown, "UNKNOWN"},
		{TokenKind(999), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("TokenKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestLookupStableWord(t *testing.T) {
	tests := []struct {
		text string
		want TokenKind
	}{
		{"grammar", TokenGrammar},
		{"epsilon", TokenEpsilon},
		{"EOF", TokenEOF},
		{"eof", TokenName},
		{"anything", TokenName},
	}

	for _, tt := range tests {
		if got := LookupStableWord(tt.text); got != tt.want {
			t.Errorf("LookupStableWord(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestRoleString(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleNone, "none"},
		{RoleRuleDef, "rule-def"},
		{RoleRuleRef, "rule-ref"},
		{RoleVarDef, "var-def"},
		{RoleVarRef, "var-ref"},
		{Role(999), "none"},
	}

	for _, tt := range tests {
		if got := tt.role.String(); got != tt.want {
			t.Errorf("Role(%d).String() = %q, want %q", tt.role, got, tt.want)
		}
	}
}

func TestPositionString(t *testing.T) {
	with := Position{File: "calc.rbc", Line: 3, Column: 7}
	if got := with.String(); got != "calc.rbc:3:7" {
		t.Errorf("String() = %q, want %q", got, "calc.rbc:3:7")
	}

	without := Position{Line: 3, Column: 7}
	if got := without.String(); got != "3:7" {
		t.Errorf("String() = %q, want %q", got, "3:7")
	}
}
