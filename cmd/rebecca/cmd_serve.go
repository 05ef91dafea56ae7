package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rebeccalang/rebecca/format"
	"github.com/rebeccalang/rebecca/project"
	"github.com/rebeccalang/rebecca/render"
	"github.com/rebeccalang/rebecca/ui"
)

func newServeCmd() *cobra.Command {
	var addr string
	var rootDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web viewer for the project's grammars",
		RunE: func(cmd *cobra.Command, args []string) error {
			dpi := format.DefaultDPI
			renderCommand := "dot"
			if manifest, ok, err := project.LoadFrom(rootDir); err != nil {
				return err
			} else if ok {
				dpi = manifest.Config.Graph.DPI
				renderCommand = manifest.Config.Graph.Renderer
				if !cmd.Flags().Changed("root") {
					rootDir = manifest.Root
				}
			}

			var runner render.Runner
			g := &render.Graphviz{Command: renderCommand}
			if g.Available() {
				runner = g
			} else {
				fmt.Printf("Renderer %q not found, pages will show DOT source\n", renderCommand)
			}

			server, err := ui.NewServer(rootDir, runner, dpi)
			if err != nil {
				return fmt.Errorf("create server: %w", err)
			}

			displayAddr := addr
			if strings.HasPrefix(addr, ":") {
				displayAddr = "localhost" + addr
			}
			fmt.Printf("Starting server at http://%s\n", displayAddr)
			return http.ListenAndServe(addr, server)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "address to listen on")
	cmd.Flags().StringVar(&rootDir, "root", ".", "directory to scan for grammars")

	return cmd
}
