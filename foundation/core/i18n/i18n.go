// File: i18n.go
// Title: Core Internationalization Implementation
// Description: Implements the Manager which loads catalogs from fs.FS
//              sources and renders translations as text templates.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with TOML/YAML support
// - 2025-07-26 v0.1.1: Fixed template cache collision issue
// - 2026-10-18 v0.2.0: fs.FS loading, layered catalogs, cache keyed by locale

package i18n

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"text/template"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/vmel/foundation/core/error"
	mdwstringx "github.com/msto63/vmel/foundation/utils/stringx"
)

// Options defines configuration options for the i18n manager
type Options struct {
	DefaultLocale string // Default locale (e.g., "en")
	FS            fs.FS  // Catalog source, read from its root
	Dir           string // Optional directory whose catalogs override FS
}

// TranslationData represents the structure of a translation file
type TranslationData map[string]interface{}

// Manager manages message catalogs for an application
type Manager struct {
	mu            sync.RWMutex
	defaultLocale string
	currentLocale string
	translations  map[string]TranslationData    // locale -> translations
	templates     map[string]*template.Template // locale + key -> compiled template
}

// New creates a manager and loads the catalogs named in options
func New(options Options) (*Manager, error) {
	locale := NormalizeLocale(options.DefaultLocale)
	if mdwstringx.IsBlank(locale) {
		return nil, mdwerror.New("default locale cannot be empty").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("i18n.New")
	}

	m := &Manager{
		defaultLocale: locale,
		currentLocale: locale,
		translations:  make(map[string]TranslationData),
		templates:     make(map[string]*template.Template),
	}

	if options.FS != nil {
		if err := m.Load(options.FS); err != nil {
			return nil, err
		}
	}
	if !mdwstringx.IsBlank(options.Dir) {
		if err := m.LoadDir(options.Dir); err != nil {
			return nil, err
		}
	}

	if _, ok := m.translations[m.defaultLocale]; !ok {
		return nil, mdwerror.Newf("default locale '%s' not found", m.defaultLocale).
			WithCode(mdwerror.CodeNotFound).
			WithOperation("i18n.New")
	}
	return m, nil
}

// LoadDir loads every catalog in dir, overriding existing keys
func (m *Manager) LoadDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return mdwerror.New("locales directory not found").
			WithCode(mdwerror.CodeNotFound).
			WithOperation("i18n.LoadDir").
			WithDetail("directory", dir)
	}
	return m.Load(os.DirFS(dir))
}

// Load reads every *.toml, *.yaml and *.yml file at the root of fsys. Keys
// already known for a locale are overridden by the new catalog.
func (m *Manager) Load(fsys fs.FS) error {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return mdwerror.Wrap(err, "failed to read catalogs").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("i18n.Load")
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(path.Ext(name))
		if ext != ".toml" && ext != ".yaml" && ext != ".yml" {
			continue
		}
		locale := NormalizeLocale(strings.TrimSuffix(name, path.Ext(name)))
		if locale == "" {
			continue
		}

		data, err := loadCatalog(fsys, name, ext)
		if err != nil {
			return err
		}
		m.merge(locale, data)
	}
	return nil
}

func loadCatalog(fsys fs.FS, name, ext string) (TranslationData, error) {
	content, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to read catalog").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("i18n.loadCatalog").
			WithDetail("file", name)
	}

	var data TranslationData
	if ext == ".toml" {
		err = toml.Unmarshal(content, &data)
	} else {
		err = yaml.Unmarshal(content, &data)
	}
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to parse catalog").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("i18n.loadCatalog").
			WithDetail("file", name)
	}
	return data, nil
}

func (m *Manager) merge(locale string, data TranslationData) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.translations[locale]
	if !ok {
		existing = make(TranslationData)
		m.translations[locale] = existing
	}
	mergeInto(existing, data)

	prefix := locale + "\x00"
	for key := range m.templates {
		if strings.HasPrefix(key, prefix) {
			delete(m.templates, key)
		}
	}
}

func mergeInto(dst, src map[string]interface{}) {
	for k, v := range src {
		if srcMap, ok := v.(map[string]interface{}); ok {
			if dstMap, ok := dst[k].(map[string]interface{}); ok {
				mergeInto(dstMap, srcMap)
				continue
			}
			copied := make(map[string]interface{}, len(srcMap))
			mergeInto(copied, srcMap)
			dst[k] = copied
			continue
		}
		dst[k] = v
	}
}

// T translates a key. A missing key yields the key itself.
func (m *Manager) T(key string, data map[string]interface{}) string {
	translation, err := m.TryT(key, data)
	if err != nil && translation == "" {
		return key
	}
	return translation
}

// TryT translates a key in the current locale and reports a missing key or
// a broken template as an error
func (m *Manager) TryT(key string, data map[string]interface{}) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	locale, translation := m.lookup(key, m.currentLocale)
	if translation == "" {
		return "", mdwerror.New("translation not found").
			WithCode(mdwerror.CodeNotFound).
			WithOperation("i18n.TryT").
			WithDetail("key", key)
	}
	if data == nil {
		return translation, nil
	}

	rendered, err := m.render(locale, key, translation, data)
	if err != nil {
		return translation, mdwerror.Wrap(err, "template rendering failed").
			WithCode(mdwerror.CodeInvalidOperation).
			WithOperation("i18n.TryT").
			WithDetail("key", key)
	}
	return rendered, nil
}

// lookup returns the locale that provided the translation and its text
func (m *Manager) lookup(key, locale string) (string, string) {
	if translations, ok := m.translations[locale]; ok {
		if value := getNestedValue(translations, key); value != "" {
			return locale, value
		}
	}
	if locale != m.defaultLocale {
		if translations, ok := m.translations[m.defaultLocale]; ok {
			if value := getNestedValue(translations, key); value != "" {
				return m.defaultLocale, value
			}
		}
	}
	return "", ""
}

func getNestedValue(data map[string]interface{}, key string) string {
	keys := strings.Split(key, ".")
	current := data

	for i, k := range keys {
		value, ok := current[k]
		if !ok {
			return ""
		}
		if i == len(keys)-1 {
			switch v := value.(type) {
			case string:
				return v
			case map[string]interface{}:
				return ""
			default:
				return fmt.Sprintf("%v", v)
			}
		}
		next, ok := value.(map[string]interface{})
		if !ok {
			return ""
		}
		current = next
	}
	return ""
}

func (m *Manager) render(locale, key, text string, data map[string]interface{}) (string, error) {
	cacheKey := locale + "\x00" + key
	tmpl, ok := m.templates[cacheKey]
	if !ok {
		var err error
		tmpl, err = template.New(key).Option("missingkey=zero").Parse(text)
		if err != nil {
			return "", err
		}
		m.templates[cacheKey] = tmpl
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return "", err
	}
	return result.String(), nil
}

// SetLocale switches the current locale
func (m *Manager) SetLocale(locale string) error {
	normalized := NormalizeLocale(locale)
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.translations[normalized]; !ok {
		return mdwerror.Newf("locale '%s' not available", locale).
			WithCode(mdwerror.CodeNotFound).
			WithOperation("i18n.SetLocale")
	}
	m.currentLocale = normalized
	return nil
}

// CurrentLocale returns the active locale
func (m *Manager) CurrentLocale() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentLocale
}

// DefaultLocale returns the fallback locale
func (m *Manager) DefaultLocale() string {
	return m.defaultLocale
}

// Locales returns the loaded locales in sorted order
func (m *Manager) Locales() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	locales := make([]string, 0, len(m.translations))
	for locale := range m.translations {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}

// HasLocale reports whether a catalog for locale was loaded
func (m *Manager) HasLocale(locale string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.translations[NormalizeLocale(locale)]
	return ok
}

// HasTranslation reports whether key resolves in the current locale or the
// default locale
func (m *Manager) HasTranslation(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, value := m.lookup(key, m.currentLocale)
	return value != ""
}
