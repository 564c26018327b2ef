// Package i18n loads message catalogs and renders localized templates.
//
// Package: i18n
// Title: Message Catalogs
// Description: Loads TOML and YAML catalogs from any fs.FS, resolves dot
//              separated keys with fallback to the default locale and renders
//              text/template messages with a per-locale template cache.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with TOML/YAML support
// - 2025-07-26 v0.1.1: Fixed template cache collision issue
// - 2026-10-18 v0.2.0: fs.FS sources with layered overrides, removed watching and plurals
//
// Catalog files are named after their locale, for example en.toml or de.yaml:
//
//	[syntax]
//	naked_declaration = "naked declaration of '{{.Text}}' on line {{.Line}}"
//
// Usage:
//
//	m, err := i18n.New(i18n.Options{DefaultLocale: "en", FS: catalogs})
//	msg := m.T("syntax.naked_declaration", map[string]interface{}{"Text": "$a", "Line": 3})
package i18n
