// Package parser provides the frontend for Rebecca grammar files: a
// lexer for .rbc source, a cursor-based syntax tree builder, and a
// parser that turns grammar declarations into trees.
//
// # Overview
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Input     │────▶│   Lexer     │────▶│   Parser    │
//	│  (bytes)    │     │  (tokens)   │     │   (Tree)    │
//	└─────────────┘     └─────────────┘     └─────────────┘
//
// A grammar file declares named token variables and production rules:
//
//	grammar calc ;
//
//	# token variables bind a name to a charset or number
//	digit = '0123456789' ;
//
//	# rules list alternatives separated by |
//	number : digit+ ;
//	expr   : number ('+' number)* | epsilon ;
//
// # Tree Building
//
// The Tree type assembles nodes incrementally around a cursor, the
// Current node. Four primitives cover every shape the grammar needs:
//
//   - AddChild inserts below the cursor and descends. The first
//     insertion into an empty tree becomes the root.
//   - Parent ascends one level.
//   - InsertParent splices a new node between the cursor and its
//     parent. This is how an operator discovered after its operand
//     ends up above it: the name of `digit = ...` goes in first and
//     is rebased under "=" when the equals sign is read.
//   - AppendTree transplants the children of another tree's cursor
//     under this tree's cursor. Each rule alternative is built in a
//     scratch tree and spliced in once complete.
//
// The builder trusts its caller: passing a nil node, a token without
// text, or ascending above the root is a programming error and
// panics. Malformed grammar input never reaches the builder; the
// parser reports it as a ParseError and recovers at the next
// semicolon.
//
// Parsing the calc grammar above yields:
//
//	calc
//	├── =
//	│   ├── digit (var-def)
//	│   └── 0123456789 (LITERAL)
//	├── :
//	│   ├── number (rule-def)
//	│   └── |
//	│       └── +
//	│           └── digit (var-ref)
//	├── :
//	│   ├── expr (rule-def)
//	│   ├── |
//	│   │   ├── number (rule-ref)
//	│   │   └── *
//	│   │       └── (
//	│   │           ├── + (LITERAL)
//	│   │           └── number (rule-ref)
//	│   └── |
//	│       └── epsilon
//	└── EOF
//
// # Roles
//
// Name tokens carry a Role describing their grammatical function:
// rule-def, rule-ref, var-def, var-ref, or none. Roles are resolved
// from a pre-scan of the token stream, never from declaration order,
// and are used only to classify nodes in the exported graph.
//
// # Example Usage
//
//	p := parser.ParseGrammar(file, parser.WithFile("calc.rbc"))
//	tree, errs := p.Finish()
//	for _, err := range errs {
//		fmt.Println(err)
//	}
//	fmt.Print(tree.Root)
//
// A Tree is not safe for concurrent use; build and read it from one
// goroutine.
package parser
