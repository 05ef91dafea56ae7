package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rebeccalang/rebecca/rbc/parser"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <path>...",
		Short: "Parse grammar files and report diagnostics",
		Long: `Parse grammar files and report diagnostics.

Directories are searched recursively for .rbc files. The exit status
is nonzero when any file has parse errors; warnings alone pass.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var files []string
			for _, arg := range args {
				found, err := collectGrammarFiles(arg)
				if err != nil {
					return err
				}
				files = append(files, found...)
			}
			if len(files) == 0 {
				return fmt.Errorf("no .rbc files found")
			}

			totalErrors := 0
			for _, file := range files {
				totalErrors += checkFile(file)
			}
			if totalErrors > 0 {
				return fmt.Errorf("%d errors in %d files", totalErrors, len(files))
			}
			fmt.Printf("%d files ok\n", len(files))
			return nil
		},
	}
}

func collectGrammarFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() && filepath.Ext(p) == ".rbc" {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", path, err)
	}
	return files, nil
}

func checkFile(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		return 1
	}

	p := parser.ParseGrammar(bytes.NewReader(data), parser.WithFile(path))
	_, errs := p.Finish()

	errors := 0
	for _, e := range errs {
		if e.Warning {
			fmt.Fprintf(os.Stderr, "%s: warning: %s\n", e.Span.Start, e.Message)
		} else {
			fmt.Fprintf(os.Stderr, "%s: error: %s\n", e.Span.Start, e.Message)
			errors++
		}
	}
	return errors
}
