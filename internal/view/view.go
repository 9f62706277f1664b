// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package view renders application state into HTML fragments.
//
// Each View owns a mount point: the markup of its last render. Render
// replaces it wholesale. Update renders the new markup, diffs it against
// the mounted one by the stable data-key attribute of each element, and
// returns the patches a client needs to apply; nodes that did not change
// produce no patch.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(
	template.New("views").Funcs(template.FuncMap{
		"quantity":  FormatQuantity,
		"add":       func(a, b int) int { return a + b },
		"previewOf": previewOf,
	}).ParseFS(templateFS, "templates/*.html"),
)

// View renders values of type T with one named template.
type View[T any] struct {
	name string

	// errorMessage and message are the defaults for RenderError and
	// RenderMessage called with an empty string.
	errorMessage string
	message      string

	// isEmpty reports data that should render the error message instead.
	isEmpty func(T) bool

	mu     sync.Mutex
	markup template.HTML
	nodes  snapshot
}

// Render replaces the mounted markup with data rendered through the view's
// template. Empty data renders the default error message.
func (v *View[T]) Render(data T) error {
	if v.isEmpty != nil && v.isEmpty(data) {
		v.RenderError("")
		return nil
	}
	markup, err := execute(v.name, data)
	if err != nil {
		return err
	}
	v.mount(markup)
	return nil
}

// Update renders data and returns the keyed patches between the mounted
// markup and the new one. When the mount shows no keyed content (a spinner
// or a message), the whole markup is replaced with a single OpReplace
// patch.
func (v *View[T]) Update(data T) ([]Patch, error) {
	if v.isEmpty != nil && v.isEmpty(data) {
		return nil, nil
	}
	markup, err := execute(v.name, data)
	if err != nil {
		return nil, err
	}
	next, err := parseSnapshot(markup)
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	var patches []Patch
	if len(v.nodes.order) == 0 {
		patches = []Patch{{Op: OpReplace, HTML: string(markup)}}
	} else {
		patches = diff(v.nodes, next, string(markup))
	}
	v.markup = markup
	v.nodes = next
	return patches, nil
}

// RenderSpinner mounts the loading indicator.
func (v *View[T]) RenderSpinner() {
	v.mountStatic("spinner", nil)
}

// RenderError mounts an error message; "" uses the view's default.
func (v *View[T]) RenderError(msg string) {
	if msg == "" {
		msg = v.errorMessage
	}
	v.mountStatic("error", msg)
}

// RenderMessage mounts an informational message; "" uses the view's
// default.
func (v *View[T]) RenderMessage(msg string) {
	if msg == "" {
		msg = v.message
	}
	v.mountStatic("message", msg)
}

// Markup returns the mounted markup.
func (v *View[T]) Markup() template.HTML {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.markup
}

func (v *View[T]) mountStatic(name string, data any) {
	markup, err := execute(name, data)
	if err != nil {
		// The static templates take no user data; a failure here is a bug
		// in the embedded templates.
		panic(err)
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.markup = markup
	v.nodes = snapshot{}
}

func (v *View[T]) mount(markup template.HTML) {
	nodes, err := parseSnapshot(markup)
	if err != nil {
		nodes = snapshot{}
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.markup = markup
	v.nodes = nodes
}

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return template.HTML(strings.TrimSpace(buf.String())), nil
}

// parseSnapshot collects every element carrying a data-key attribute.
func parseSnapshot(markup template.HTML) (snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(markup)))
	if err != nil {
		return snapshot{}, fmt.Errorf("parsing markup: %w", err)
	}

	s := snapshot{nodes: map[string]node{}}
	doc.Find("[" + keyAttr + "]").Each(func(_ int, sel *goquery.Selection) {
		key, _ := sel.Attr(keyAttr)
		if key == "" {
			return
		}
		if _, dup := s.nodes[key]; dup {
			return
		}
		s.nodes[key] = readNode(sel)
		s.order = append(s.order, key)
	})
	return s, nil
}
