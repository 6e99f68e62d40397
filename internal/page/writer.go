package page

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
)

// Writer renders pages into the static directory that the http server serves.
type Writer struct {
	fs          afs.Service
	root        string
	externalURL string
}

// NewWriter creates a writer rooted at dir. externalURL is the public base address that page file
// names are appended to.
func NewWriter(dir string, externalURL string) (*Writer, error) {
	root, errRoot := filepath.Abs(dir)
	if errRoot != nil {
		return nil, errors.Join(errRoot, ErrWrite)
	}

	return &Writer{
		fs:          afs.New(),
		root:        root,
		externalURL: strings.TrimSuffix(externalURL, "/"),
	}, nil
}

// Init makes sure the root directory exists.
func (w *Writer) Init(ctx context.Context) error {
	exists, errExists := w.fs.Exists(ctx, w.location(""))
	if errExists != nil {
		return errors.Join(errExists, ErrWrite)
	}

	if exists {
		return nil
	}

	if errCreate := w.fs.Create(ctx, w.location(""), os.ModeDir|0o755, true); errCreate != nil {
		return errors.Join(errCreate, ErrWrite)
	}

	return nil
}

// Root is the absolute directory pages are written into.
func (w *Writer) Root() string {
	return w.root
}

// URL returns the public link for a page file name.
func (w *Writer) URL(name string) string {
	return w.externalURL + "/" + url.PathEscape(name)
}

// Write renders p and stores it under name, replacing any previous content. The public URL of the
// page is returned.
func (w *Writer) Write(ctx context.Context, name string, p Page) (string, error) {
	body, errRender := Render(p)
	if errRender != nil {
		return "", errRender
	}

	if errUpload := w.fs.Upload(ctx, w.location(name), 0o644, bytes.NewReader(body)); errUpload != nil {
		return "", errors.Join(errUpload, ErrWrite)
	}

	return w.URL(name), nil
}

func (w *Writer) location(name string) string {
	target := url.URL{Scheme: "file", Path: filepath.ToSlash(filepath.Join(w.root, name))}

	return target.String()
}
