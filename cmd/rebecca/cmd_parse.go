package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rebeccalang/rebecca/format"
	"github.com/rebeccalang/rebecca/rbc/parser"
)

func newParseCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a grammar file and dump the syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read grammar file: %w", err)
			}

			p := parser.ParseGrammar(bytes.NewReader(data), parser.WithFile(args[0]))
			tree, errs := p.Finish()

			errors := 0
			for _, e := range errs {
				if e.Warning {
					fmt.Fprintf(os.Stderr, "%s: warning: %s\n", e.Span.Start, e.Message)
				} else {
					fmt.Fprintf(os.Stderr, "%s: error: %s\n", e.Span.Start, e.Message)
					errors++
				}
			}

			switch outputFormat {
			case "text":
				fmt.Print(tree.Root.String())
			case "json":
				if err := format.NewASTJSONEncoder(os.Stdout).Encode(tree); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				fmt.Println()
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			if errors > 0 {
				return fmt.Errorf("%d parse errors in %s", errors, args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")

	return cmd
}
