package theme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const anchoredBase = `/* Template: test */
/* @theme:variables */
body { margin: 0; }
/* @theme:background */
/* @theme:overlay */
.static-rule { color: red; }
`

func TestVariables(t *testing.T) {
	got := Variables(Resolve("#6366f1"))
	want := ":root {\n" +
		"  --accent: #6366f1;\n" +
		"  --accent-rgb: 99, 102, 241;\n" +
		"  --accent-glow: rgba(99, 102, 241, 0.15);\n" +
		"  --accent-glow-strong: rgba(99, 102, 241, 0.35);\n" +
		"  --accent-foreground: #ffffff;\n" +
		"}\n"
	assert.Equal(t, want, got)
}

func TestAssemble_SplicesAnchors(t *testing.T) {
	css := Assemble(anchoredBase, "#ffffff", ModeSnow)

	for _, anchor := range []string{AnchorVariables, AnchorBackground, AnchorOverlay} {
		assert.NotContains(t, css, anchor)
	}

	vars := strings.Index(css, "--accent: #ffffff;")
	body := strings.Index(css, "body { margin: 0; }")
	bg := strings.Index(css, "linear-gradient(180deg, #0f172a 0%, #1e293b 100%)")
	overlay := strings.Index(css, SurfaceSelector+"::before")
	static := strings.Index(css, ".static-rule")

	require.True(t, vars >= 0 && body >= 0 && bg >= 0 && overlay >= 0 && static >= 0, css)
	assert.Less(t, vars, body)
	assert.Less(t, body, bg)
	assert.Less(t, bg, overlay)
	assert.Less(t, overlay, static)
	assert.Contains(t, css, "--accent-foreground: #09090b;")
}

func TestAssemble_NoOverlayLeavesAnchorEmpty(t *testing.T) {
	css := Assemble(anchoredBase, "#000000", ModeGrid)

	assert.NotContains(t, css, AnchorOverlay)
	assert.NotContains(t, css, "::before")
	assert.Contains(t, css, "background-size: 32px 32px;")
	assert.Contains(t, css, "--accent-foreground: #ffffff;")
}

func TestAssemble_MissingAnchorsArePrepended(t *testing.T) {
	base := ".static-rule { color: red; }\n"
	css := Assemble(base, "#123456", ModeForest)

	want := Variables(Resolve("#123456")) + Render(ModeForest)
	overlay, _ := Overlay(ModeForest)
	want += overlay + "\n" + base

	assert.Equal(t, want, css)
}

func TestAssemble_EmptyBase(t *testing.T) {
	css := Assemble("", "#123456", ModeAurora)
	assert.Equal(t, Variables(Resolve("#123456"))+Render(ModeAurora), css)
}

func TestAssemble_MalformedAccentAndMode(t *testing.T) {
	css := Assemble(anchoredBase, "rgb(10, 20, 30)", "neon")

	assert.Contains(t, css, "--accent: #ffffff;")
	assert.Contains(t, css, "--accent-glow: rgba(255, 255, 255, 0.15);")
	assert.Contains(t, css, "--accent-foreground: #09090b;")
	assert.Equal(t, Assemble(anchoredBase, "#ffffff", ModeDefault), css)
}

func TestAssemble_Deterministic(t *testing.T) {
	for _, mode := range Modes() {
		assert.Equal(t, Assemble(anchoredBase, "#22c55e", mode), Assemble(anchoredBase, "#22c55e", mode), mode)
	}
}
