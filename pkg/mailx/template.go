package mailx

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"sync"
)

// Templates stores named html/templates for message bodies.
type Templates struct {
	mu        sync.RWMutex
	templates map[string]*template.Template
}

func NewTemplates() *Templates {
	return &Templates{templates: make(map[string]*template.Template)}
}

// Register parses src and stores it under name.
func (t *Templates) Register(name, src string) error {
	tmpl, err := template.New(name).Parse(src)
	if err != nil {
		return fmt.Errorf("mailx: parse template %q: %w", name, err)
	}

	t.mu.Lock()
	t.templates[name] = tmpl
	t.mu.Unlock()
	return nil
}

// RegisterFS registers every file in fsys matching pattern, named by file name.
func (t *Templates) RegisterFS(fsys fs.FS, pattern string) error {
	names, err := fs.Glob(fsys, pattern)
	if err != nil {
		return err
	}
	for _, name := range names {
		src, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		if err := t.Register(name, string(src)); err != nil {
			return err
		}
	}
	return nil
}

// Render executes the named template with data.
func (t *Templates) Render(name string, data any) (string, error) {
	t.mu.RLock()
	tmpl, ok := t.templates[name]
	t.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("%w: %s", ErrTemplateMissing, name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("mailx: render template %q: %w", name, err)
	}
	return buf.String(), nil
}
