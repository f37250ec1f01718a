package theme

import (
	"encoding/json"
	"html"
	"net/http"
	"strings"
)

// Handler handles theme-related HTTP requests.
type Handler struct {
	manager           *Manager
	defaultAccent     string
	defaultBackground BackgroundMode
}

// NewHandler creates a new theme handler. The defaults apply when a request
// omits the accent or background query parameters.
func NewHandler(manager *Manager, defaultAccent string, defaultBackground BackgroundMode) *Handler {
	return &Handler{
		manager:           manager,
		defaultAccent:     defaultAccent,
		defaultBackground: ParseMode(string(defaultBackground)),
	}
}

func (h *Handler) selection(r *http.Request) (templateName, accent string, mode BackgroundMode) {
	q := r.URL.Query()

	accent = h.defaultAccent
	if v := q.Get("accent"); v != "" {
		accent = v
	}
	mode = h.defaultBackground
	if v := q.Get("background"); v != "" {
		mode = ParseMode(v)
	}
	templateName = h.manager.ResolveTemplate(q.Get("template"))
	return templateName, accent, mode
}

// HandleTheme serves the assembled CSS for the requested accent and background.
func (h *Handler) HandleTheme(w http.ResponseWriter, r *http.Request) {
	templateName, accent, mode := h.selection(r)
	themeCSS := h.manager.Stylesheet(templateName, accent, mode)

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write([]byte(themeCSS))
}

// HandlePalette returns the resolved accent palette as JSON.
func (h *Handler) HandlePalette(w http.ResponseWriter, r *http.Request) {
	_, accent, _ := h.selection(r)
	writeJSON(w, h.manager.Palette(accent))
}

// HandleBackgrounds returns every background mode.
func (h *Handler) HandleBackgrounds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, Backgrounds())
}

// HandleTemplates returns every loaded base template.
func (h *Handler) HandleTemplates(w http.ResponseWriter, r *http.Request) {
	type TemplateResponse struct {
		Name        string `json:"name"`
		Display     string `json:"display"`
		Description string `json:"description,omitempty"`
		Default     bool   `json:"default"`
	}

	names := h.manager.ListTemplates()
	resp := make([]TemplateResponse, 0, len(names))
	for _, name := range names {
		info := h.manager.GetTemplate(name)
		resp = append(resp, TemplateResponse{
			Name:        info.Name,
			Display:     info.Display,
			Description: info.Description,
			Default:     name == h.manager.DefaultTemplate(),
		})
	}
	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// GenerateTemplateMenuHTML generates HTML for the template selection menu.
func (h *Handler) GenerateTemplateMenuHTML(currentTemplate string) string {
	var builder strings.Builder
	for _, name := range h.manager.ListTemplates() {
		info := h.manager.GetTemplate(name)
		builder.WriteString(`<button data-template="`)
		builder.WriteString(html.EscapeString(name))
		builder.WriteString(`"`)
		if name == currentTemplate {
			builder.WriteString(` class="active"`)
		}
		builder.WriteString(`>`)
		builder.WriteString(html.EscapeString(info.Display))
		builder.WriteString(`</button>`)
	}
	return builder.String()
}

// GenerateBackgroundMenuHTML generates HTML for the background selection menu.
func (h *Handler) GenerateBackgroundMenuHTML(current BackgroundMode) string {
	current = ParseMode(string(current))

	var builder strings.Builder
	for _, info := range Backgrounds() {
		builder.WriteString(`<button data-background="`)
		builder.WriteString(info.Name)
		builder.WriteString(`" data-kind="`)
		builder.WriteString(info.Kind)
		builder.WriteString(`"`)
		if BackgroundMode(info.Name) == current {
			builder.WriteString(` class="active"`)
		}
		builder.WriteString(`>`)
		builder.WriteString(info.Display)
		builder.WriteString(`</button>`)
	}
	return builder.String()
}
