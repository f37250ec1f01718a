package theme

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
)

// DefaultCacheSize bounds the number of memoized style sheets.
const DefaultCacheSize = 256

// Manager holds the base templates and memoizes assembled style sheets.
type Manager struct {
	templatesMap  map[string]*TemplateInfo
	templatesList []string
	cache         *lru.Cache[string, string]
	logger        zerolog.Logger
}

// NewManager creates a new theme manager and loads templates/*.css from fsys.
func NewManager(fsys fs.FS, logger zerolog.Logger) (*Manager, error) {
	cache, err := lru.New[string, string](DefaultCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create stylesheet cache: %w", err)
	}

	m := &Manager{
		templatesMap:  make(map[string]*TemplateInfo),
		templatesList: []string{},
		cache:         cache,
		logger:        logger.With().Str("component", "theme").Logger(),
	}

	if err := m.loadTemplates(fsys); err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	return m, nil
}

func (m *Manager) loadTemplates(fsys fs.FS) error {
	entries, err := fs.ReadDir(fsys, "templates")
	if err != nil {
		return fmt.Errorf("read templates directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".css") {
			continue
		}

		cssContent, err := fs.ReadFile(fsys, path.Join("templates", entry.Name()))
		if err != nil {
			m.logger.Warn().Err(err).Str("file", entry.Name()).Msg("failed to read template")
			continue
		}

		info, err := ParseTemplate(strings.TrimSuffix(entry.Name(), ".css"), string(cssContent))
		if err != nil {
			m.logger.Warn().Err(err).Str("file", entry.Name()).Msg("skipping template")
			continue
		}
		if _, dup := m.templatesMap[info.Name]; dup {
			m.logger.Warn().Str("file", entry.Name()).Str("template", info.Name).Msg("duplicate template name")
			continue
		}

		m.templatesMap[info.Name] = &info
		m.templatesList = append(m.templatesList, info.Name)
	}

	if len(m.templatesList) == 0 {
		return fmt.Errorf("no usable templates found")
	}

	m.templatesList = sortTemplates(m.templatesList)

	m.logger.Info().Int("count", len(m.templatesList)).Strs("templates", m.templatesList).Msg("loaded theme templates")
	return nil
}

func sortTemplates(templates []string) []string {
	preferredOrder := []string{"app", "minimal"}
	var sorted []string
	var others []string

	for _, preferred := range preferredOrder {
		for _, t := range templates {
			if t == preferred {
				sorted = append(sorted, t)
				break
			}
		}
	}

	for _, t := range templates {
		found := false
		for _, preferred := range preferredOrder {
			if t == preferred {
				found = true
				break
			}
		}
		if !found {
			others = append(others, t)
		}
	}

	sort.Strings(others)

	return append(sorted, others...)
}

// GetTemplate returns a template by name, or nil if not found.
func (m *Manager) GetTemplate(name string) *TemplateInfo {
	return m.templatesMap[name]
}

// ListTemplates returns a list of all template names, default first.
func (m *Manager) ListTemplates() []string {
	return append([]string(nil), m.templatesList...)
}

// DefaultTemplate returns the name used when a requested template is unknown.
func (m *Manager) DefaultTemplate() string {
	return m.templatesList[0]
}

// ResolveTemplate maps name to a loaded template, falling back to the default.
func (m *Manager) ResolveTemplate(name string) string {
	if _, ok := m.templatesMap[name]; ok {
		return name
	}
	return m.DefaultTemplate()
}

// Stylesheet returns the assembled sheet for a template, accent and mode.
func (m *Manager) Stylesheet(templateName, accent string, mode BackgroundMode) string {
	templateName = m.ResolveTemplate(templateName)
	mode = ParseMode(string(mode))

	key := templateName + "\x00" + accent + "\x00" + string(mode)
	if css, ok := m.cache.Get(key); ok {
		return css
	}

	css := Assemble(m.templatesMap[templateName].CSS, accent, mode)
	m.cache.Add(key, css)
	return css
}

// Assemble returns the sheet for accent and mode on the default template.
func (m *Manager) Assemble(accent string, mode BackgroundMode) string {
	return m.Stylesheet(m.DefaultTemplate(), accent, mode)
}

// Palette resolves an accent color for reuse outside the style sheet.
func (m *Manager) Palette(accent string) Palette {
	return NewPalette(accent)
}
