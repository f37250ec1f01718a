package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backdrop/model"
	"backdrop/theme"
)

const testTemplate = "/* Template: app */\n/* @theme:variables */\n/* @theme:background */\n/* @theme:overlay */\n.btn { color: var(--accent-foreground); }\n"

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	m, err := theme.NewManager(fstest.MapFS{
		"templates/app.css": {Data: []byte(testTemplate)},
	}, zerolog.Nop())
	require.NoError(t, err)

	s := NewServer(m, model.Selection{Accent: "#6366f1", Background: "aurora", Template: "app"}, zerolog.Nop())
	mux := http.NewServeMux()
	s.Register(mux)

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return s, ts
}

func dialPreview(t *testing.T, ts *httptest.Server) (*websocket.Conn, model.ThemeUpdate) {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	var hello model.ThemeUpdate
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&hello))
	return conn, hello
}

func postPreview(t *testing.T, ts *httptest.Server, body string) (*http.Response, previewResponse) {
	t.Helper()

	resp, err := http.Post(ts.URL+"/api/preview", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out previewResponse
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestPreview_MethodNotAllowed(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/preview")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, http.MethodPost, resp.Header.Get("Allow"))
}

func TestPreview_InvalidJSON(t *testing.T) {
	_, ts := newTestServer(t)

	resp, _ := postPreview(t, ts, "{not json")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPreview_NormalizesSelection(t *testing.T) {
	_, ts := newTestServer(t)

	resp, out := postPreview(t, ts, `{"background": "Lava", "template": "missing"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, model.Selection{Accent: "#6366f1", Background: "default", Template: "app"}, out.Selection)
	assert.Equal(t, "#6366f1", out.Palette.Accent)
	assert.Equal(t, 0, out.Delivered)
}

func TestPreview_BroadcastsToClients(t *testing.T) {
	s, ts := newTestServer(t)

	conn, hello := dialPreview(t, ts)
	assert.Equal(t, model.UpdateHello, hello.Type)
	assert.NotEmpty(t, hello.ClientID)
	assert.Equal(t, 1, s.ws.Len())

	resp, out := postPreview(t, ts, `{"accent": "#ffffff", "background": "space"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, out.Delivered)
	assert.Equal(t, theme.ForegroundDark, out.Palette.Foreground)

	var update model.ThemeUpdate
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&update))

	assert.Equal(t, model.UpdateTheme, update.Type)
	require.NotNil(t, update.Selection)
	assert.Equal(t, "space", update.Selection.Background)
	assert.Equal(t, "app", update.Selection.Template)
	require.NotNil(t, update.Palette)
	assert.Equal(t, [3]int{255, 255, 255}, update.Palette.RGB)
	assert.Contains(t, update.CSS, "--accent-foreground: #09090b;")
	assert.Contains(t, update.CSS, theme.SurfaceSelector+"::before")
	assert.NotContains(t, update.CSS, "@theme:")
}

func TestWS_ClientRemovedOnClose(t *testing.T) {
	s, ts := newTestServer(t)

	conn, _ := dialPreview(t, ts)
	require.Equal(t, 1, s.ws.Len())

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	conn.Close()

	assert.Eventually(t, func() bool { return s.ws.Len() == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestExportCSS(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/export/theme.css?accent=%23000000&background=ocean")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/css; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="theme-app-ocean.css"`, resp.Header.Get("Content-Disposition"))

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "animation: backdrop-ocean-shift 20s ease infinite;")
	assert.Contains(t, buf.String(), "--accent-foreground: #ffffff;")
}
