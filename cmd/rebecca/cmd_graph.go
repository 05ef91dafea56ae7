package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/rebeccalang/rebecca/format"
	"github.com/rebeccalang/rebecca/project"
	"github.com/rebeccalang/rebecca/rbc/codebase"
	"github.com/rebeccalang/rebecca/rbc/parser"
	"github.com/rebeccalang/rebecca/render"
)

var graphLog = commonlog.GetLogger("rebecca.graph")

func newGraphCmd() *cobra.Command {
	var outPath string
	var dpi int
	var doRender bool
	var imageFormat string
	var watch bool

	cmd := &cobra.Command{
		Use:   "graph [file]",
		Short: "Export a grammar's syntax tree as a Graphviz document",
		Long: `Export a grammar's syntax tree as a Graphviz document.

Without a file argument the grammar named by [grammar].main in the
nearest rebecca.toml is exported. With --render the DOT document is
also rasterized by the configured Graphviz binary.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest, haveManifest, err := project.LoadFrom(".")
			if err != nil {
				return err
			}

			var grammarPath string
			if len(args) > 0 {
				grammarPath = args[0]
			} else {
				if !haveManifest {
					return fmt.Errorf("no grammar file given and no %s found", project.ManifestName)
				}
				grammarPath, err = manifest.MainGrammar()
				if err != nil {
					return err
				}
			}

			cfg := project.DefaultConfig()
			if haveManifest {
				cfg = manifest.Config
			}
			if !cmd.Flags().Changed("dpi") {
				dpi = cfg.Graph.DPI
			}
			if !cmd.Flags().Changed("format") {
				imageFormat = cfg.Graph.Format
			}

			if outPath == "" {
				if haveManifest {
					outPath = manifest.OutputPath(grammarPath, ".dot")
				} else {
					outPath = strings.TrimSuffix(grammarPath, filepath.Ext(grammarPath)) + ".dot"
				}
			}

			export := func() error {
				return exportGraph(grammarPath, outPath, dpi, doRender, imageFormat, cfg.Graph.Renderer)
			}

			if err := export(); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			abs, err := filepath.Abs(grammarPath)
			if err != nil {
				return fmt.Errorf("resolve grammar path: %w", err)
			}
			watcher := codebase.NewFileWatcher(codebase.New(filepath.Dir(abs)))
			watcher.OnChange = func(path string) {
				if path != abs {
					return
				}
				if err := export(); err != nil {
					fmt.Fprintf(os.Stderr, "%v\n", err)
				}
			}
			fmt.Printf("Watching %s, press Ctrl-C to stop\n", grammarPath)
			watcher.Start()
			select {}
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output path for the DOT document")
	cmd.Flags().IntVar(&dpi, "dpi", format.DefaultDPI, "rendering density written into the graph header")
	cmd.Flags().BoolVar(&doRender, "render", false, "also rasterize the document with Graphviz")
	cmd.Flags().StringVarP(&imageFormat, "format", "f", "png", "image format for --render")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-export whenever the grammar file changes")

	return cmd
}

func exportGraph(grammarPath, outPath string, dpi int, doRender bool, imageFormat, renderer string) error {
	data, err := os.ReadFile(grammarPath)
	if err != nil {
		return fmt.Errorf("read grammar file: %w", err)
	}

	p := parser.ParseGrammar(bytes.NewReader(data), parser.WithFile(grammarPath))
	tree, errs := p.Finish()
	for _, e := range errs {
		if e.Warning {
			fmt.Fprintf(os.Stderr, "%s: warning: %s\n", e.Span.Start, e.Message)
		} else {
			fmt.Fprintf(os.Stderr, "%s: error: %s\n", e.Span.Start, e.Message)
		}
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	enc := format.NewDOTEncoder(f)
	enc.DPI = dpi
	if err := enc.Encode(tree); err != nil {
		f.Close()
		return fmt.Errorf("export graph: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	graphLog.Infof("exported %s (%d nodes)", outPath, tree.Size)

	if !doRender {
		return nil
	}

	g := &render.Graphviz{Command: renderer}
	if !g.Available() {
		return fmt.Errorf("renderer %q not found on PATH", renderer)
	}
	imagePath := strings.TrimSuffix(outPath, filepath.Ext(outPath)) + "." + imageFormat
	if err := g.RenderFile(outPath, imagePath, imageFormat); err != nil {
		return err
	}
	fmt.Printf("Rendered %s\n", imagePath)
	return nil
}
