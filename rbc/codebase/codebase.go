// Package codebase tracks the grammar files of a project, keeps their
// parse results current, and serves the symbol lookups behind the
// language server and the web viewer.
package codebase

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/rebeccalang/rebecca/rbc/parser"
)

var log = commonlog.GetLogger("rebecca.codebase")

type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	files   map[string]*FileInfo
}

// FileInfo is one grammar file's last known content and parse result.
type FileInfo struct {
	Path    string
	Content []byte
	Tree    *parser.Tree
	Errors  []parser.ParseError
	Symbols []Symbol
}

type SymbolKind int

const (
	SymbolRule SymbolKind = iota
	SymbolVariable
)

func (k SymbolKind) String() string {
	if k == SymbolVariable {
		return "variable"
	}
	return "rule"
}

// Symbol is a rule or variable definition in a grammar file.
type Symbol struct {
	Name string
	Kind SymbolKind
	Span parser.Span
}

func New(rootDir string) *Codebase {
	return &Codebase{
		rootDir: rootDir,
		files:   make(map[string]*FileInfo),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

// ScanAll walks the root directory and parses every .rbc file.
func (c *Codebase) ScanAll() error {
	return filepath.Walk(c.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && path != c.rootDir {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == ".rbc" {
			c.ScanFile(path)
		}
		return nil
	})
}

func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return c.UpdateFile(path, content)
}

// UpdateFile reparses one file from the given content, which may be
// newer than what is on disk (editor buffers arrive here too).
func (c *Codebase) UpdateFile(path string, content []byte) error {
	p := parser.ParseGrammar(bytes.NewReader(content), parser.WithFile(filepath.Base(path)))
	tree, errs := p.Finish()

	symbols := collectSymbols(content, path)

	log.Debugf("updated %s: %d symbols, %d diagnostics", path, len(symbols), len(errs))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = &FileInfo{
		Path:    path,
		Content: content,
		Tree:    tree,
		Errors:  errs,
		Symbols: symbols,
	}
	return nil
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Files returns the tracked paths in sorted order.
func (c *Codebase) Files() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	paths := make([]string, 0, len(c.files))
	for path := range c.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Complete returns the symbols across all files whose name starts
// with prefix, sorted by name. An empty prefix matches everything.
func (c *Codebase) Complete(prefix string) []Symbol {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var matches []Symbol
	for _, f := range c.files {
		for _, sym := range f.Symbols {
			if strings.HasPrefix(sym.Name, prefix) {
				matches = append(matches, sym)
			}
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Name != matches[j].Name {
			return matches[i].Name < matches[j].Name
		}
		return matches[i].Kind < matches[j].Kind
	})
	return matches
}

// collectSymbols pulls rule and variable definitions out of the token
// stream: a NAME is a definition when the next token is ":" or "=".
// Working on tokens instead of the tree keeps symbols available even
// when the grammar has parse errors further down.
func collectSymbols(content []byte, path string) []Symbol {
	tokens := parser.Tokenize(content, filepath.Base(path))

	var symbols []Symbol
	for i := 0; i+1 < len(tokens); i++ {
		if tokens[i].Kind != parser.TokenName {
			continue
		}
		switch tokens[i+1].Kind {
		case parser.TokenColon:
			symbols = append(symbols, Symbol{
				Name: tokens[i].Text,
				Kind: SymbolRule,
				Span: tokens[i].Span,
			})
		case parser.TokenEq:
			symbols = append(symbols, Symbol{
				Name: tokens[i].Text,
				Kind: SymbolVariable,
				Span: tokens[i].Span,
			})
		}
	}
	return symbols
}
