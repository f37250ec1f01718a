package theme

import (
	"fmt"
	"strings"
)

// Anchors in a base template where generated fragments are spliced.
const (
	AnchorVariables  = "/* @theme:variables */"
	AnchorBackground = "/* @theme:background */"
	AnchorOverlay    = "/* @theme:overlay */"
)

// Glow alphas applied to the accent RGB.
const (
	glowAlpha       = 0.15
	glowStrongAlpha = 0.35
)

// Variables renders the :root custom properties for a resolved accent.
func Variables(res Resolution) string {
	var b strings.Builder
	b.WriteString(":root {\n")
	fmt.Fprintf(&b, "  --accent: %s;\n", res.Accent)
	fmt.Fprintf(&b, "  --accent-rgb: %s;\n", res.RGB.Components())
	fmt.Fprintf(&b, "  --accent-glow: %s;\n", res.RGB.RGBA(glowAlpha))
	fmt.Fprintf(&b, "  --accent-glow-strong: %s;\n", res.RGB.RGBA(glowStrongAlpha))
	fmt.Fprintf(&b, "  --accent-foreground: %s;\n", res.Foreground)
	b.WriteString("}\n")
	return b.String()
}

// Assemble builds the full style sheet for accent and mode on top of base.
// Fragments whose anchor is absent from base are prepended in anchor order.
func Assemble(base, accent string, mode BackgroundMode) string {
	res := Resolve(accent)
	v := Lookup(mode)

	pieces := []struct {
		anchor   string
		fragment string
	}{
		{AnchorVariables, Variables(res)},
		{AnchorBackground, v.Base},
		{AnchorOverlay, v.Overlay},
	}

	var head strings.Builder
	out := base
	for _, p := range pieces {
		if strings.Contains(out, p.anchor) {
			out = strings.Replace(out, p.anchor, strings.TrimSuffix(p.fragment, "\n"), 1)
			continue
		}
		head.WriteString(p.fragment)
	}

	if head.Len() == 0 {
		return out
	}
	if out == "" {
		return head.String()
	}
	return head.String() + "\n" + out
}
