package theme

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SurfaceSelector is the root element every background fragment targets.
const SurfaceSelector = ".app-surface"

// BackgroundMode identifies one background treatment of the app surface.
type BackgroundMode string

const (
	ModeDefault BackgroundMode = "default"
	ModeSolid   BackgroundMode = "solid"
	ModeSoft    BackgroundMode = "soft"
	ModeGrid    BackgroundMode = "grid"
	ModeDots    BackgroundMode = "dots"
	ModeMosaic  BackgroundMode = "mosaic"
	ModeAurora  BackgroundMode = "aurora"
	ModeOcean   BackgroundMode = "ocean"
	ModeSunset  BackgroundMode = "sunset"
	ModeSnow    BackgroundMode = "snow"
	ModeSpace   BackgroundMode = "space"
	ModeForest  BackgroundMode = "forest"
)

var allModes = []BackgroundMode{
	ModeDefault, ModeSolid, ModeSoft, ModeGrid, ModeDots, ModeMosaic,
	ModeAurora, ModeOcean, ModeSunset, ModeSnow, ModeSpace, ModeForest,
}

// Modes returns every background mode in menu order.
func Modes() []BackgroundMode {
	return append([]BackgroundMode(nil), allModes...)
}

// ParseMode normalizes s. Unknown values map to ModeDefault.
func ParseMode(s string) BackgroundMode {
	m := BackgroundMode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range allModes {
		if m == known {
			return m
		}
	}
	return ModeDefault
}

// Kind is the shape of a variant's fragment.
type Kind int

const (
	KindStatic Kind = iota
	KindAnimated
	KindLayered
)

func (k Kind) String() string {
	switch k {
	case KindAnimated:
		return "animated"
	case KindLayered:
		return "layered"
	default:
		return "static"
	}
}

// Variant is the resolved treatment for one BackgroundMode.
type Variant struct {
	Mode    BackgroundMode
	Display string
	Kind    Kind
	// Cycle is the base animation period; zero for non-animated bases.
	Cycle time.Duration
	Base  string
	// Overlay is empty unless Kind is KindLayered.
	Overlay string
}

// HasOverlay reports whether the variant carries decorative layers.
func (v Variant) HasOverlay() bool {
	return v.Overlay != ""
}

// Lookup returns the variant for mode. It is total: anything outside
// the enumeration resolves to the ModeDefault variant.
func Lookup(mode BackgroundMode) Variant {
	switch mode {
	case ModeSolid:
		return staticVariant(mode, "Solid",
			"background: #0c0c0f;",
		)
	case ModeSoft:
		return staticVariant(mode, "Soft",
			"background: linear-gradient(135deg, #18181b 0%, #1f1f24 50%, #111114 100%);",
		)
	case ModeGrid:
		return staticVariant(mode, "Grid",
			"background-color: #09090b;",
			"background-image: linear-gradient(rgba(255, 255, 255, 0.04) 1px, transparent 1px), linear-gradient(90deg, rgba(255, 255, 255, 0.04) 1px, transparent 1px);",
			"background-size: 32px 32px;",
		)
	case ModeDots:
		return staticVariant(mode, "Dots",
			"background-color: #09090b;",
			"background-image: radial-gradient(rgba(255, 255, 255, 0.08) 1px, transparent 1px);",
			"background-size: 24px 24px;",
		)
	case ModeMosaic:
		return staticVariant(mode, "Mosaic",
			"background-color: #0b0b10;",
			"background-image: conic-gradient(from 45deg at 50% 50%, rgba(255, 255, 255, 0.035) 0deg 90deg, transparent 90deg 180deg, rgba(255, 255, 255, 0.035) 180deg 270deg, transparent 270deg 360deg), linear-gradient(135deg, var(--accent-glow) 0%, transparent 60%);",
			"background-size: 40px 40px, 100% 100%;",
		)
	case ModeAurora:
		return animatedVariant(mode, "Aurora", 15*time.Second,
			"#0f172a", "#134e4a", "#1e1b4b", "#064e3b")
	case ModeOcean:
		return animatedVariant(mode, "Ocean", 20*time.Second,
			"#082f49", "#0c4a6e", "#164e63", "#0f172a")
	case ModeSunset:
		return animatedVariant(mode, "Sunset", 12*time.Second,
			"#431407", "#7c2d12", "#831843", "#4c1d95")
	case ModeSnow:
		return layeredVariant(mode, "Snow",
			staticBase("background: linear-gradient(180deg, #0f172a 0%, #1e293b 100%);"),
			layer{
				name:  "near",
				image: "radial-gradient(2px 2px at 20px 30px, rgba(255, 255, 255, 0.9), transparent), radial-gradient(2px 2px at 90px 120px, rgba(255, 255, 255, 0.8), transparent), radial-gradient(3px 3px at 150px 60px, rgba(255, 255, 255, 0.7), transparent), radial-gradient(2px 2px at 40px 170px, rgba(255, 255, 255, 0.8), transparent)",
				size:  "200px 200px",
				cycle: 14 * time.Second,
				to:    "0 200px",
			},
			layer{
				name:    "far",
				image:   "radial-gradient(1px 1px at 50px 80px, rgba(255, 255, 255, 0.6), transparent), radial-gradient(1px 1px at 210px 40px, rgba(255, 255, 255, 0.5), transparent), radial-gradient(2px 2px at 130px 250px, rgba(255, 255, 255, 0.5), transparent), radial-gradient(1px 1px at 270px 190px, rgba(255, 255, 255, 0.6), transparent)",
				size:    "300px 300px",
				opacity: "0.6",
				cycle:   23 * time.Second,
				delay:   -7 * time.Second,
				to:      "0 300px",
			},
		)
	case ModeSpace:
		return layeredVariant(mode, "Space",
			staticBase("background: radial-gradient(ellipse at bottom, #1b2735 0%, #090a0f 100%);"),
			layer{
				name:  "near",
				image: "radial-gradient(1.5px 1.5px at 30px 40px, #ffffff, transparent), radial-gradient(1px 1px at 120px 200px, rgba(255, 255, 255, 0.9), transparent), radial-gradient(2px 2px at 210px 90px, rgba(199, 210, 254, 0.9), transparent)",
				size:  "250px 250px",
				cycle: 60 * time.Second,
				to:    "250px 250px",
			},
			layer{
				name:    "far",
				image:   "radial-gradient(1px 1px at 60px 310px, rgba(255, 255, 255, 0.7), transparent), radial-gradient(1px 1px at 280px 70px, rgba(255, 255, 255, 0.6), transparent), radial-gradient(1px 1px at 350px 230px, rgba(165, 180, 252, 0.7), transparent), radial-gradient(1px 1px at 150px 150px, rgba(255, 255, 255, 0.5), transparent)",
				size:    "400px 400px",
				opacity: "0.7",
				cycle:   95 * time.Second,
				delay:   -31 * time.Second,
				to:      "-400px 400px",
			},
		)
	case ModeForest:
		return layeredVariant(mode, "Forest",
			staticBase("background: linear-gradient(180deg, #022c22 0%, #052e16 55%, #0a1f14 100%);"),
			layer{
				name:     "silhouette",
				image:    `url("data:image/svg+xml,%3Csvg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 600 220'%3E%3Cpath fill='%23021a12' fill-opacity='0.9' d='M0 220V150l30-50 30 50V120l40-80 40 80v-30l35-60 35 60v40l45-90 45 90v-20l30-55 30 55V110l40-70 40 70v30l35-60 35 60v-10l30-50 30 50v70z'/%3E%3C/svg%3E")`,
				size:     "600px 220px",
				position: "bottom left",
				repeat:   "repeat-x",
			},
			layer{
				name:    "fireflies",
				image:   "radial-gradient(2px 2px at 40px 60px, rgba(250, 204, 21, 0.8), transparent), radial-gradient(2px 2px at 180px 140px, rgba(253, 224, 71, 0.6), transparent), radial-gradient(3px 3px at 260px 40px, rgba(250, 204, 21, 0.5), transparent)",
				size:    "320px 320px",
				opacity: "0.8",
				cycle:   19 * time.Second,
				delay:   -5 * time.Second,
				to:      "320px -320px",
			},
		)
	default:
		return Variant{
			Mode:    ModeDefault,
			Display: "Default",
			Kind:    KindStatic,
			Base:    staticBase("background: radial-gradient(circle at top, #18181b 0%, #09090b 60%);"),
		}
	}
}

// Render returns the base fragment for mode.
func Render(mode BackgroundMode) string {
	return Lookup(mode).Base
}

// Overlay returns the decorative overlay fragment for mode, if it has one.
func Overlay(mode BackgroundMode) (string, bool) {
	v := Lookup(mode)
	return v.Overlay, v.HasOverlay()
}

func staticVariant(mode BackgroundMode, display string, decls ...string) Variant {
	return Variant{
		Mode:    mode,
		Display: display,
		Kind:    KindStatic,
		Base:    staticBase(decls...),
	}
}

func staticBase(decls ...string) string {
	var b strings.Builder
	b.WriteString(SurfaceSelector)
	b.WriteString(" {\n")
	for _, d := range decls {
		b.WriteString("  ")
		b.WriteString(d)
		b.WriteString("\n")
	}
	b.WriteString("}\n")
	return b.String()
}

func animatedVariant(mode BackgroundMode, display string, cycle time.Duration, stops ...string) Variant {
	keyframes := "backdrop-" + string(mode) + "-shift"

	var b strings.Builder
	fmt.Fprintf(&b, "%s {\n", SurfaceSelector)
	fmt.Fprintf(&b, "  background: linear-gradient(-45deg, %s);\n", strings.Join(stops, ", "))
	b.WriteString("  background-size: 400% 400%;\n")
	fmt.Fprintf(&b, "  animation: %s %s ease infinite;\n", keyframes, seconds(cycle))
	b.WriteString("}\n")
	fmt.Fprintf(&b, "@keyframes %s {\n", keyframes)
	b.WriteString("  0% { background-position: 0% 50%; }\n")
	b.WriteString("  50% { background-position: 100% 50%; }\n")
	b.WriteString("  100% { background-position: 0% 50%; }\n")
	b.WriteString("}\n")
	writeReducedMotion(&b, SurfaceSelector)

	return Variant{
		Mode:    mode,
		Display: display,
		Kind:    KindAnimated,
		Cycle:   cycle,
		Base:    b.String(),
	}
}

// layer is one decorative pseudo-element. A zero cycle means static.
type layer struct {
	name     string
	image    string
	size     string
	position string
	repeat   string
	opacity  string
	cycle    time.Duration
	delay    time.Duration
	// to is the background-position reached at the end of one cycle.
	to string
}

var pseudoElements = [...]string{"::before", "::after"}

func layeredVariant(mode BackgroundMode, display, base string, layers ...layer) Variant {
	if len(layers) > len(pseudoElements) {
		layers = layers[:len(pseudoElements)]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s {\n  position: relative;\n  isolation: isolate;\n}\n", SurfaceSelector)
	fmt.Fprintf(&b, "%s > * {\n  position: relative;\n  z-index: 1;\n}\n", SurfaceSelector)

	selectors := make([]string, len(layers))
	for i := range layers {
		selectors[i] = SurfaceSelector + pseudoElements[i]
	}
	fmt.Fprintf(&b, "%s {\n", strings.Join(selectors, ",\n"))
	b.WriteString("  content: \"\";\n")
	b.WriteString("  position: absolute;\n")
	b.WriteString("  inset: 0;\n")
	b.WriteString("  z-index: 0;\n")
	b.WriteString("  pointer-events: none;\n")
	b.WriteString("}\n")

	var animated []string
	for i, l := range layers {
		fmt.Fprintf(&b, "%s {\n", selectors[i])
		fmt.Fprintf(&b, "  background-image: %s;\n", l.image)
		fmt.Fprintf(&b, "  background-size: %s;\n", l.size)
		repeat := l.repeat
		if repeat == "" {
			repeat = "repeat"
		}
		fmt.Fprintf(&b, "  background-repeat: %s;\n", repeat)
		if l.position != "" {
			fmt.Fprintf(&b, "  background-position: %s;\n", l.position)
		}
		if l.opacity != "" {
			fmt.Fprintf(&b, "  opacity: %s;\n", l.opacity)
		}
		if l.cycle > 0 {
			name := "backdrop-" + string(mode) + "-" + l.name
			fmt.Fprintf(&b, "  animation: %s %s linear %s infinite;\n", name, seconds(l.cycle), seconds(l.delay))
			animated = append(animated, selectors[i])
		}
		b.WriteString("}\n")
	}

	for _, l := range layers {
		if l.cycle <= 0 {
			continue
		}
		name := "backdrop-" + string(mode) + "-" + l.name
		fmt.Fprintf(&b, "@keyframes %s {\n", name)
		b.WriteString("  from { background-position: 0 0; }\n")
		fmt.Fprintf(&b, "  to { background-position: %s; }\n", l.to)
		b.WriteString("}\n")
	}
	if len(animated) > 0 {
		writeReducedMotion(&b, strings.Join(animated, ",\n"))
	}

	return Variant{
		Mode:    mode,
		Display: display,
		Kind:    KindLayered,
		Base:    base,
		Overlay: b.String(),
	}
}

func writeReducedMotion(b *strings.Builder, selector string) {
	b.WriteString("@media (prefers-reduced-motion: reduce) {\n")
	fmt.Fprintf(b, "  %s {\n    animation: none;\n  }\n", strings.ReplaceAll(selector, "\n", "\n  "))
	b.WriteString("}\n")
}

func seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64) + "s"
}
