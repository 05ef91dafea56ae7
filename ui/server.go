// Package ui serves a small web viewer over a grammar codebase: a
// file listing, per-file diagnostics, and the exported syntax graph
// rendered inline when Graphviz is installed.
package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rebeccalang/rebecca/format"
	"github.com/rebeccalang/rebecca/rbc/codebase"
	"github.com/rebeccalang/rebecca/render"
)

//go:embed templates
var embeddedFS embed.FS

type Server struct {
	codebase  *codebase.Codebase
	runner    render.Runner
	templates *template.Template
	mux       *http.ServeMux
	dpi       int
}

// NewServer builds a viewer over the grammar files under rootDir.
// runner may be nil; pages then show DOT source instead of images.
func NewServer(rootDir string, runner render.Runner, dpi int) (*Server, error) {
	tmpl, err := template.New("").ParseFS(embeddedFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		codebase:  codebase.New(rootDir),
		runner:    runner,
		templates: tmpl,
		mux:       http.NewServeMux(),
		dpi:       dpi,
	}

	if err := s.codebase.ScanAll(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", rootDir, err)
	}

	s.mux.HandleFunc("GET /g/{path...}", s.handleGrammar)
	s.mux.HandleFunc("GET /dot/{path...}", s.handleDOT)
	s.mux.HandleFunc("GET /", s.handleIndex)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

type indexFile struct {
	Name     string
	Symbols  int
	Errors   int
	Warnings int
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	// Rescan so new and deleted files show up on refresh.
	s.codebase.ScanAll()

	var files []indexFile
	for _, path := range s.codebase.Files() {
		info := s.codebase.GetFile(path)
		if info == nil {
			continue
		}
		entry := indexFile{
			Name:    s.relName(path),
			Symbols: len(info.Symbols),
		}
		for _, e := range info.Errors {
			if e.Warning {
				entry.Warnings++
			} else {
				entry.Errors++
			}
		}
		files = append(files, entry)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	data := struct {
		Root  string
		Files []indexFile
	}{
		Root:  s.codebase.RootDir(),
		Files: files,
	}
	s.render(w, "index.html", data)
}

type diagnosticView struct {
	Position string
	Message  string
	Warning  bool
}

type grammarView struct {
	Name        string
	Diagnostics []diagnosticView
	SVG         template.HTML
	DOT         string
	RenderError string
}

func (s *Server) handleGrammar(w http.ResponseWriter, r *http.Request) {
	path, info := s.lookup(r.PathValue("path"))
	if info == nil {
		http.Error(w, "grammar not found", http.StatusNotFound)
		return
	}

	data := grammarView{Name: s.relName(path)}
	for _, e := range info.Errors {
		data.Diagnostics = append(data.Diagnostics, diagnosticView{
			Position: e.Span.Start.String(),
			Message:  e.Message,
			Warning:  e.Warning,
		})
	}

	var buf bytes.Buffer
	enc := format.NewDOTEncoder(&buf)
	enc.DPI = s.dpi
	if err := enc.Encode(info.Tree); err != nil {
		data.RenderError = err.Error()
		s.render(w, "grammar.html", data)
		return
	}

	if s.runner != nil {
		svg, err := s.runner.Render(buf.Bytes(), "svg")
		if err != nil {
			data.RenderError = err.Error()
			data.DOT = buf.String()
		} else {
			data.SVG = template.HTML(stripSVGProlog(svg))
		}
	} else {
		data.DOT = buf.String()
	}

	s.render(w, "grammar.html", data)
}

func (s *Server) handleDOT(w http.ResponseWriter, r *http.Request) {
	_, info := s.lookup(r.PathValue("path"))
	if info == nil {
		http.Error(w, "grammar not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	enc := format.NewDOTEncoder(w)
	enc.DPI = s.dpi
	if err := enc.Encode(info.Tree); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// lookup resolves a request path to a tracked grammar file, reparsing
// it first so edits show up on refresh.
func (s *Server) lookup(rel string) (string, *codebase.FileInfo) {
	rel = filepath.Clean(filepath.FromSlash(rel))
	if rel == "." || strings.HasPrefix(rel, "..") {
		return "", nil
	}
	path := filepath.Join(s.codebase.RootDir(), rel)
	if s.codebase.GetFile(path) == nil {
		return "", nil
	}
	s.codebase.ScanFile(path)
	return path, s.codebase.GetFile(path)
}

func (s *Server) relName(path string) string {
	rel, err := filepath.Rel(s.codebase.RootDir(), path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// stripSVGProlog drops the XML declaration and doctype that dot puts
// before the svg element, so the output can be inlined into HTML.
func stripSVGProlog(svg []byte) []byte {
	if i := bytes.Index(svg, []byte("<svg")); i >= 0 {
		return svg[i:]
	}
	return svg
}
