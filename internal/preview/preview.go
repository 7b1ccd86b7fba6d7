// SPDX-FileCopyrightText: © 2025 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package preview is the authoring preview server. It converts source
// documents on every request so a reload always shows the current file,
// and exposes the conversion metrics.
package preview

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/klauspost/compress/gzhttp"

	"codeberg.org/readeck/aeopress/internal/metrics"
	"codeberg.org/readeck/aeopress/internal/page"
	"codeberg.org/readeck/aeopress/pkg/aeoml"
	"codeberg.org/readeck/aeopress/pkg/jsonld"
	"codeberg.org/readeck/aeopress/pkg/xmltree"
)

// Server serves a source directory.
type Server struct {
	*chi.Mux
	dir   string
	shell *page.Shell
}

// New returns a server for the given source directory.
func New(dir string) (*Server, error) {
	shell, err := page.NewShell()
	if err != nil {
		return nil, err
	}

	s := &Server{
		Mux:   chi.NewRouter(),
		dir:   dir,
		shell: shell,
	}

	s.Use(
		middleware.RequestID,
		middleware.Recoverer,
		Logger(),
		metrics.Middleware,
		compressResponse,
	)

	s.Get("/", s.serveIndex)
	s.Get("/{name}.html", s.servePage)
	s.Get("/{name}.jsonld", s.serveGraph)
	s.Handle("/metrics", metrics.Handler())

	return s, nil
}

// compressResponse returns a gzipped response for some content types.
func compressResponse(next http.Handler) http.Handler {
	w, err := gzhttp.NewWrapper(
		gzhttp.CompressionLevel(5),
		gzhttp.ContentTypes([]string{
			"text/html", "application/ld+json", "text/plain",
		}),
		gzhttp.MinSize(1024),
	)
	if err != nil {
		panic(err)
	}
	return w(next)
}

// ListenAndServe runs the server until the context is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s,
	}

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(sctx) //nolint:errcheck
	}()

	slog.Info("starting preview server",
		slog.String("addr", addr),
		slog.String("dir", s.dir),
	)

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// convert converts one source document. It records the conversion in
// the metrics, with the root type when one was reached.
func (s *Server) convert(name string) (*aeoml.Result, error) {
	start := time.Now()
	res, err := s.loadDocument(name)

	root := ""
	if res != nil {
		root, _ = res.JSONLD.Get("@type").(string)
	}
	metrics.ObserveConversion(root, err, time.Since(start))

	return res, err
}

func (s *Server) loadDocument(name string) (*aeoml.Result, error) {
	fd, err := os.Open(filepath.Join(s.dir, name+".xml"))
	if err != nil {
		return nil, err
	}
	defer fd.Close() //nolint:errcheck

	doc, err := xmltree.Parse(fd)
	if err != nil {
		return nil, err
	}
	return aeoml.Transform(doc)
}

// sources returns the document names of the source directory, sorted.
func (s *Server) sources() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(s.dir, "*.xml"))
	if err != nil {
		return nil, err
	}

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = strings.TrimSuffix(filepath.Base(f), ".xml")
	}
	slices.Sort(names)
	return names, nil
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	names, err := s.sources()
	if err != nil {
		Err(w, r, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.shell.RenderPage(w, "index", page.Index(names)); err != nil {
		Log(r).Error("template error", slog.Any("err", err))
	}
}

func (s *Server) servePage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !validName(name) {
		Status(w, r, http.StatusNotFound)
		return
	}

	res, err := s.convert(name)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		Status(w, r, http.StatusNotFound)
		return
	case err != nil:
		Err(w, r, http.StatusUnprocessableEntity, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.shell.RenderPage(w, name, res); err != nil {
		Log(r).Error("template error", slog.Any("err", err))
	}
}

func (s *Server) serveGraph(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !validName(name) {
		Status(w, r, http.StatusNotFound)
		return
	}

	res, err := s.convert(name)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		Status(w, r, http.StatusNotFound)
		return
	case err != nil:
		Err(w, r, http.StatusUnprocessableEntity, err)
		return
	}

	w.Header().Set("Content-Type", "application/ld+json")
	if err := jsonld.Encode(w, res.JSONLD); err != nil {
		Log(r).Error("encoding error", slog.Any("err", err))
	}
}

// validName rejects names that could escape the source directory.
func validName(name string) bool {
	if name == "" {
		return false
	}
	return !strings.ContainsAny(name, `/\.`)
}

// Err logs an error and sends its text with the given status. The
// authoring loop reads conversion errors in the browser.
func Err(w http.ResponseWriter, r *http.Request, status int, err error) {
	Log(r).Error("preview error", slog.Any("err", err))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	fmt.Fprintln(w, err)
}

// Status sends a text plain response with the given status code.
func Status(w http.ResponseWriter, _ *http.Request, status int) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	fmt.Fprintln(w, http.StatusText(status))
}

// Log returns a log entry including the request ID.
func Log(r *http.Request) *slog.Logger {
	return slog.With(slog.String("@id", middleware.GetReqID(r.Context())))
}
