package model

import "backdrop/theme"

// Selection is an accent color plus background mode, as chosen by a user
// and persisted by whatever settings store the host application uses.
type Selection struct {
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Template   string `json:"template,omitempty"`
}

type UpdateType string

const (
	UpdateHello UpdateType = "hello"
	UpdateTheme UpdateType = "theme"
)

// ThemeUpdate is pushed to preview clients over the websocket.
type ThemeUpdate struct {
	Type      UpdateType     `json:"type"`
	ClientID  string         `json:"client_id,omitempty"`
	Selection *Selection     `json:"selection,omitempty"`
	CSS       string         `json:"css,omitempty"`
	Palette   *theme.Palette `json:"palette,omitempty"`
}
