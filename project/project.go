// Package project locates and loads the rebecca.toml manifest that
// describes a grammar project: which grammar file is the main one and
// how exported graphs should be rendered.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const ManifestName = "rebecca.toml"

type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Grammar GrammarConfig `toml:"grammar"`
	Graph   GraphConfig   `toml:"graph"`
}

type GrammarConfig struct {
	Main string `toml:"main"`
}

type GraphConfig struct {
	DPI      int    `toml:"dpi"`
	Format   string `toml:"format"`
	Renderer string `toml:"renderer"`
	Output   string `toml:"output"`
}

// DefaultConfig returns the settings used when a manifest omits them.
func DefaultConfig() Config {
	return Config{
		Graph: GraphConfig{
			DPI:      50,
			Format:   "png",
			Renderer: "dot",
			Output:   "out",
		},
	}
}

// Find walks up from startDir looking for a rebecca.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads the manifest at path. Missing keys fall back to
// DefaultConfig.
func Load(path string) (*Manifest, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: parse TOML: %w", path, err)
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, nil
}

// LoadFrom finds and loads the manifest governing startDir. The
// second return value reports whether a manifest exists at all.
func LoadFrom(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// MainGrammar resolves the [grammar].main entry against the project
// root and checks that the file exists.
func (m *Manifest) MainGrammar() (string, error) {
	main := strings.TrimSpace(m.Config.Grammar.Main)
	if main == "" {
		return "", fmt.Errorf("%s: missing [grammar].main", m.Path)
	}
	path := filepath.Join(m.Root, filepath.FromSlash(main))
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: [grammar].main does not exist: %s", m.Path, path)
		}
		return "", fmt.Errorf("%s: stat [grammar].main: %w", m.Path, err)
	}
	return path, nil
}

// OutputPath places an exported artifact for the given grammar file
// in the manifest's output directory.
func (m *Manifest) OutputPath(grammarPath, ext string) string {
	base := strings.TrimSuffix(filepath.Base(grammarPath), filepath.Ext(grammarPath))
	return filepath.Join(m.Root, m.Config.Graph.Output, base+ext)
}
