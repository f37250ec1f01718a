package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"backdrop/model"
	"backdrop/theme"
)

const maxPreviewBody = 64 << 10

type Server struct {
	themes   *theme.Manager
	ws       *WSConnectionManager
	upgrader websocket.Upgrader
	defaults model.Selection
	logger   zerolog.Logger
}

// NewServer creates the preview API. defaults fill in any field a preview
// request leaves empty.
func NewServer(themes *theme.Manager, defaults model.Selection, logger zerolog.Logger) *Server {
	return &Server{
		themes: themes,
		ws:     NewWSConnectionManager(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		defaults: defaults,
		logger:   logger.With().Str("component", "api").Logger(),
	}
}

func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/preview", s.handlePreview)
	mux.HandleFunc("/api/ws", s.handleWS)
	mux.HandleFunc("/api/export/theme.css", s.handleExportCSS)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"status":  "ok",
		"clients": s.ws.Len(),
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// normalize fills empty fields from the defaults and maps the background
// and template to registered values. Nothing here can fail.
func (s *Server) normalize(sel model.Selection) model.Selection {
	if sel.Accent == "" {
		sel.Accent = s.defaults.Accent
	}
	if sel.Background == "" {
		sel.Background = s.defaults.Background
	}
	if sel.Template == "" {
		sel.Template = s.defaults.Template
	}
	sel.Background = string(theme.ParseMode(sel.Background))
	sel.Template = s.themes.ResolveTemplate(sel.Template)
	return sel
}

// ---------- live preview ----------

type previewResponse struct {
	Selection model.Selection `json:"selection"`
	Palette   theme.Palette   `json:"palette"`
	Delivered int             `json:"delivered"`
}

// handlePreview assembles the sheet for a selection and pushes it to every
// connected preview client. The selection is not stored.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var sel model.Selection
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPreviewBody)).Decode(&sel); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	sel = s.normalize(sel)

	css := s.themes.Stylesheet(sel.Template, sel.Accent, theme.BackgroundMode(sel.Background))
	palette := s.themes.Palette(sel.Accent)

	delivered := s.ws.Broadcast(model.ThemeUpdate{
		Type:      model.UpdateTheme,
		Selection: &sel,
		CSS:       css,
		Palette:   &palette,
	})

	s.logger.Debug().
		Str("accent", sel.Accent).
		Str("background", sel.Background).
		Str("template", sel.Template).
		Bool("fallback", palette.Fallback).
		Int("delivered", delivered).
		Msg("preview broadcast")

	s.writeJSON(w, http.StatusOK, previewResponse{
		Selection: sel,
		Palette:   palette,
		Delivered: delivered,
	})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	id := s.ws.Add(conn)
	defer func() {
		s.ws.Remove(conn)
		conn.Close()
		s.logger.Debug().Str("client", id).Msg("preview client disconnected")
	}()
	s.logger.Debug().Str("client", id).Msg("preview client connected")

	if err := s.ws.WriteJSON(conn, model.ThemeUpdate{Type: model.UpdateHello, ClientID: id}); err != nil {
		return
	}

	// Clients only listen; drain reads so close frames are processed.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// ---------- export API ----------

func (s *Server) handleExportCSS(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sel := s.normalize(model.Selection{
		Accent:     q.Get("accent"),
		Background: q.Get("background"),
		Template:   q.Get("template"),
	})

	css := s.themes.Stylesheet(sel.Template, sel.Accent, theme.BackgroundMode(sel.Background))

	filename := fmt.Sprintf("theme-%s-%s.css", sel.Template, sel.Background)
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write([]byte(css))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("writeJSON")
	}
}
