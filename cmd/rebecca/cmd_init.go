package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

//go:embed init/rebecca.toml
var manifestTemplate string

//go:embed init/grammar.rbc
var grammarTemplate string

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new Rebecca grammar project",
		Long: `Initialize a new Rebecca grammar project.

If a directory is provided, creates it and initializes the project
there. Otherwise, initializes in the current directory.

This command creates:
  - rebecca.toml naming grammar.rbc as the main grammar
  - grammar.rbc with a small example grammar

Existing files are left untouched.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(dir)
		},
	}
}

func runInit(dir string) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
		fmt.Printf("Created %s/\n", dir)
	}

	files := []struct {
		name    string
		content string
	}{
		{"rebecca.toml", manifestTemplate},
		{"grammar.rbc", grammarTemplate},
	}

	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("%s already exists, skipping\n", f.name)
			continue
		}
		if err := os.WriteFile(path, []byte(f.content), 0644); err != nil {
			return fmt.Errorf("create %s: %w", f.name, err)
		}
		fmt.Printf("Created %s\n", path)
	}

	return nil
}
