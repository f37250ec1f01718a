package theme

import "strings"

// TemplateMetadata represents metadata parsed from CSS template files.
type TemplateMetadata struct {
	Template    string
	Display     string
	Description string
}

// TemplateInfo contains a loaded base template and its metadata.
type TemplateInfo struct {
	Name        string
	Display     string
	Description string
	CSS         string
}

// Palette is the resolved accent as exposed to other consumers.
type Palette struct {
	Accent     string  `json:"accent"`
	RGB        [3]int  `json:"rgb"`
	Luma       float64 `json:"luma"`
	Foreground string  `json:"foreground"`
	Glow       string  `json:"glow"`
	GlowStrong string  `json:"glow_strong"`
	Fallback   bool    `json:"fallback"`
}

// NewPalette derives the palette for an accent color.
func NewPalette(accent string) Palette {
	res := Resolve(accent)
	return Palette{
		Accent:     res.Accent,
		RGB:        [3]int{int(res.RGB.R), int(res.RGB.G), int(res.RGB.B)},
		Luma:       res.RGB.Luma(),
		Foreground: res.Foreground,
		Glow:       res.RGB.RGBA(glowAlpha),
		GlowStrong: res.RGB.RGBA(glowStrongAlpha),
		Fallback:   res.Fallback,
	}
}

// BackgroundInfo describes one background mode for menus and the API.
type BackgroundInfo struct {
	Name         string  `json:"name"`
	Display      string  `json:"display"`
	Kind         string  `json:"kind"`
	Animated     bool    `json:"animated"`
	Overlay      bool    `json:"overlay"`
	CycleSeconds float64 `json:"cycle_seconds,omitempty"`
}

// Backgrounds describes every registered background mode in menu order.
func Backgrounds() []BackgroundInfo {
	out := make([]BackgroundInfo, 0, len(allModes))
	for _, mode := range allModes {
		v := Lookup(mode)
		out = append(out, BackgroundInfo{
			Name:         string(v.Mode),
			Display:      v.Display,
			Kind:         v.Kind.String(),
			Animated:     v.Kind == KindAnimated || strings.Contains(v.Overlay, "animation:"),
			Overlay:      v.HasOverlay(),
			CycleSeconds: v.Cycle.Seconds(),
		})
	}
	return out
}
