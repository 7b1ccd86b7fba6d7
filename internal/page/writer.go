// SPDX-FileCopyrightText: © 2025 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package page

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/klauspost/compress/gzip"

	"codeberg.org/readeck/aeopress/pkg/aeoml"
	"codeberg.org/readeck/aeopress/pkg/jsonld"
)

// Writer writes every artifact of converted documents into one directory.
type Writer struct {
	dir      string
	markdown bool
	compress bool
	shell    *Shell
	md       *converter.Converter
}

// WriterOption is a Writer configuration option.
type WriterOption func(*Writer)

// WithMarkdown enables the markdown rendition.
func WithMarkdown(enabled bool) WriterOption {
	return func(w *Writer) {
		w.markdown = enabled
	}
}

// WithCompression enables gzip siblings next to every written file.
func WithCompression(enabled bool) WriterOption {
	return func(w *Writer) {
		w.compress = enabled
	}
}

// NewWriter returns a Writer for the given destination directory.
func NewWriter(dir string, options ...WriterOption) (*Writer, error) {
	shell, err := NewShell()
	if err != nil {
		return nil, err
	}

	w := &Writer{
		dir:   dir,
		shell: shell,
	}
	for _, opt := range options {
		opt(w)
	}

	if w.markdown {
		w.md = converter.NewConverter(converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		))
	}

	return w, nil
}

// Dir returns the destination directory.
func (w *Writer) Dir() string {
	return w.dir
}

// WriteDocument writes the page, the JSON-LD file and the optional
// markdown rendition for one converted document, and returns the created
// paths.
func (w *Writer) WriteDocument(name string, res *aeoml.Result) ([]string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, err
	}

	written := []string{}
	buf := new(bytes.Buffer)

	if err := w.shell.RenderPage(buf, name, res); err != nil {
		return nil, err
	}
	files, err := w.writeFile(name+".html", buf.Bytes())
	if err != nil {
		return nil, err
	}
	written = append(written, files...)

	if res.JSONLD != nil {
		buf.Reset()
		if err := jsonld.Encode(buf, res.JSONLD); err != nil {
			return nil, err
		}
		if files, err = w.writeFile(name+".jsonld", buf.Bytes()); err != nil {
			return nil, err
		}
		written = append(written, files...)
	}

	if w.markdown {
		md, err := w.md.ConvertString(res.HTML)
		if err != nil {
			return nil, err
		}
		if files, err = w.writeFile(name+".md", []byte(md+"\n")); err != nil {
			return nil, err
		}
		written = append(written, files...)
	}

	return written, nil
}

func (w *Writer) writeFile(name string, data []byte) ([]string, error) {
	// name may carry subdirectories when a source tree is nested.
	p := filepath.Join(w.dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return nil, err
	}
	res := []string{p}

	if w.compress {
		fd, err := os.Create(p + ".gz")
		if err != nil {
			return nil, err
		}
		defer fd.Close() //nolint:errcheck

		gw, err := gzip.NewWriterLevel(fd, gzip.BestCompression)
		if err != nil {
			return nil, err
		}
		if _, err := gw.Write(data); err != nil {
			return nil, err
		}
		if err := gw.Close(); err != nil {
			return nil, err
		}
		res = append(res, p+".gz")
	}

	return res, nil
}
