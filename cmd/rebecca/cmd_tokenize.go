package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rebeccalang/rebecca/format"
	"github.com/rebeccalang/rebecca/rbc/parser"
)

func newTokenizeCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "tokenize <file>",
		Short: "Tokenize a grammar file and dump the token stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read grammar file: %w", err)
			}

			tokens := parser.Tokenize(data, args[0])

			switch outputFormat {
			case "text":
				tw := format.NewTokenTextWriter(os.Stdout)
				tw.Color = term.IsTerminal(int(os.Stdout.Fd()))
				return tw.Write(tokens)
			case "json":
				return format.NewTokenJSONWriter(os.Stdout).Write(tokens)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")

	return cmd
}
