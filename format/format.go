// Package format renders syntax trees and token streams of the
// Rebecca grammar language into their output formats: Graphviz DOT
// for visual debugging, JSON for tooling, and aligned text for the
// terminal.
package format

import (
	"encoding"

	"github.com/rebeccalang/rebecca/rbc/parser"
)

// Encoder is implemented by every tree output format.
type Encoder interface {
	encoding.TextMarshaler
	Encode(tree *parser.Tree) error
}
