// File: render.go
// Title: Diagnostic Rendering
// Description: Renders diagnostics through the i18n message catalogs that
//              are embedded in this package.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package diag

import (
	"embed"
	"io/fs"

	"github.com/msto63/vmel/foundation/core/i18n"
	mdwstringx "github.com/msto63/vmel/foundation/utils/stringx"
)

//go:embed locales/*.toml locales/*.yaml
var embedded embed.FS

// DefaultLocale is the catalog every other locale falls back to
const DefaultLocale = "en"

// Catalogs returns the embedded message catalogs
func Catalogs() fs.FS {
	sub, err := fs.Sub(embedded, "locales")
	if err != nil {
		panic(err) // the directory is part of the binary
	}
	return sub
}

// Renderer turns diagnostics into display messages
type Renderer struct {
	messages *i18n.Manager
}

// NewRenderer loads the embedded catalogs, applies catalogs from dir when
// it is set and selects locale. An empty locale selects DefaultLocale.
func NewRenderer(locale, dir string) (*Renderer, error) {
	messages, err := i18n.New(i18n.Options{
		DefaultLocale: DefaultLocale,
		FS:            Catalogs(),
		Dir:           dir,
	})
	if err != nil {
		return nil, err
	}
	if !mdwstringx.IsBlank(locale) {
		if err := messages.SetLocale(locale); err != nil {
			return nil, err
		}
	}
	return &Renderer{messages: messages}, nil
}

// Locale returns the active catalog locale
func (r *Renderer) Locale() string {
	return r.messages.CurrentLocale()
}

// Render returns the message for d. A diagnostic without catalog entry, or
// with a broken template, falls back to d.String().
func (r *Renderer) Render(d Diagnostic) string {
	msg, err := r.messages.TryT(string(d.ID), map[string]interface{}{
		"Text": d.Text,
		"Line": d.Line,
	})
	if err != nil {
		return d.String()
	}
	return msg
}

// RenderAll renders every diagnostic in order
func (r *Renderer) RenderAll(items []Diagnostic) []string {
	result := make([]string, len(items))
	for i, d := range items {
		result[i] = r.Render(d)
	}
	return result
}
