// Package render shells out to Graphviz to turn exported DOT
// documents into images. It is a boundary package: the toolchain's
// contract is the DOT document itself, rendering is an optional side
// effect injected where wanted.
package render

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
)

// Runner rasterizes a DOT document. Implementations other than
// Graphviz exist only in tests.
type Runner interface {
	// RenderFile reads a DOT file and writes the rendered image to
	// outPath in the given format (png, svg, ...).
	RenderFile(dotPath, outPath, format string) error

	// Render rasterizes an in-memory DOT document.
	Render(dot []byte, format string) ([]byte, error)
}

// Graphviz runs the dot command.
type Graphviz struct {
	// Command is the renderer binary, "dot" when empty.
	Command string
}

func (g *Graphviz) command() string {
	if g.Command == "" {
		return "dot"
	}
	return g.Command
}

// Available reports whether the renderer binary is on PATH.
func (g *Graphviz) Available() bool {
	_, err := exec.LookPath(g.command())
	return err == nil
}

func (g *Graphviz) RenderFile(dotPath, outPath, format string) error {
	cmd := exec.Command(g.command(), "-T"+format, dotPath, "-o", outPath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("render %s: %w", dotPath, err)
	}
	return nil
}

func (g *Graphviz) Render(dot []byte, format string) ([]byte, error) {
	cmd := exec.Command(g.command(), "-T"+format)
	cmd.Stdin = bytes.NewReader(dot)
	var out, errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut
	if err := cmd.Run(); err != nil {
		if errOut.Len() > 0 {
			return nil, fmt.Errorf("render graph: %w: %s", err, errOut.String())
		}
		return nil, fmt.Errorf("render graph: %w", err)
	}
	return out.Bytes(), nil
}
