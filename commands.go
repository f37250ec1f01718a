package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"backdrop/storage"
	"backdrop/theme"
)

var (
	renderAccent     string
	renderBackground string
	renderTemplate   string
	renderOut        string
	renderAll        bool
	paletteJSON      bool
	backgroundsJSON  bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a style sheet",
	Long:  "Render the style sheet for an accent and background to stdout, or write it under --out/themes/<template>/<background>.css.",
	Args:  cobra.NoArgs,
	RunE:  runRender,
}

var paletteCmd = &cobra.Command{
	Use:   "palette [accent]",
	Short: "Show the resolved palette for an accent color",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPalette,
}

var backgroundsCmd = &cobra.Command{
	Use:   "backgrounds",
	Short: "List background modes",
	Args:  cobra.NoArgs,
	RunE:  runBackgrounds,
}

func init() {
	renderCmd.Flags().StringVar(&renderAccent, "accent", "", "Accent color as #RRGGBB (default from config)")
	renderCmd.Flags().StringVar(&renderBackground, "background", "", "Background mode (default from config)")
	renderCmd.Flags().StringVar(&renderTemplate, "template", "", "Base template (default from config)")
	renderCmd.Flags().StringVar(&renderOut, "out", "", "Directory to write style sheets into instead of stdout")
	renderCmd.Flags().BoolVar(&renderAll, "all", false, "Render every background mode (requires --out or uses the data dir)")

	paletteCmd.Flags().BoolVar(&paletteJSON, "json", false, "Output as JSON")
	backgroundsCmd.Flags().BoolVar(&backgroundsJSON, "json", false, "Output as JSON")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	accent := cfg.Accent
	if cmd.Flags().Changed("accent") {
		accent = renderAccent
	}
	background := cfg.Background
	if cmd.Flags().Changed("background") {
		background = renderBackground
	}
	templateName := cfg.Template
	if cmd.Flags().Changed("template") {
		templateName = renderTemplate
	}

	themeManager, err := theme.NewManager(templatesFS, logger)
	if err != nil {
		return fmt.Errorf("initialize theme manager: %w", err)
	}
	templateName = themeManager.ResolveTemplate(templateName)

	if theme.Resolve(accent).Fallback {
		logger.Warn().Str("accent", accent).Msg("accent is not #RRGGBB, using fallback")
	}

	if renderOut == "" && !renderAll {
		_, err := io.WriteString(cmd.OutOrStdout(), themeManager.Stylesheet(templateName, accent, theme.BackgroundMode(background)))
		return err
	}

	outDir := renderOut
	if outDir == "" {
		outDir = cfg.DataDir
	}
	store := storage.New(outDir)
	if err := store.EnsureDirs(); err != nil {
		return fmt.Errorf("ensure output dir: %w", err)
	}

	modes := []theme.BackgroundMode{theme.ParseMode(background)}
	if renderAll {
		modes = theme.Modes()
	}

	paths, err := renderModes(cmd.Context(), store, themeManager, templateName, accent, modes)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	logger.Info().Int("count", len(paths)).Str("dir", outDir).Msg("rendered style sheets")
	return nil
}

// renderModes writes one sheet per mode concurrently. Paths are returned in
// the order of modes.
func renderModes(ctx context.Context, store *storage.Store, m *theme.Manager, templateName, accent string, modes []theme.BackgroundMode) ([]string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	paths := make([]string, len(modes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, mode := range modes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			css := m.Stylesheet(templateName, accent, mode)
			p, err := store.SaveStylesheet(templateName, string(mode), css)
			if err != nil {
				return fmt.Errorf("save %s: %w", mode, err)
			}
			paths[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func runPalette(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	accent := cfg.Accent
	if len(args) == 1 {
		accent = args[0]
	}
	p := theme.NewPalette(accent)

	if paletteJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	}

	printPalette(cmd.OutOrStdout(), accent, p)
	return nil
}

func printPalette(out io.Writer, input string, p theme.Palette) {
	swatch := lipgloss.NewStyle().
		Background(lipgloss.Color(p.Accent)).
		Foreground(lipgloss.Color(p.Foreground)).
		Bold(true).
		Padding(0, 2).
		Render("Aa")
	label := lipgloss.NewStyle().Faint(true)

	fmt.Fprintf(out, "%s  %s\n", swatch, p.Accent)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  %s\trgb(%d, %d, %d)\n", label.Render("RGB:"), p.RGB[0], p.RGB[1], p.RGB[2])
	fmt.Fprintf(w, "  %s\t%.1f\n", label.Render("Luma:"), p.Luma)
	fmt.Fprintf(w, "  %s\t%s\n", label.Render("Foreground:"), p.Foreground)
	fmt.Fprintf(w, "  %s\t%s\n", label.Render("Glow:"), p.Glow)
	fmt.Fprintf(w, "  %s\t%s\n", label.Render("Glow strong:"), p.GlowStrong)
	if p.Fallback {
		fmt.Fprintf(w, "  %s\t%q is not #RRGGBB, using fallback\n", label.Render("Note:"), input)
	}
	w.Flush()
}

func runBackgrounds(cmd *cobra.Command, args []string) error {
	infos := theme.Backgrounds()

	if backgroundsJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tDISPLAY\tKIND\tCYCLE\tOVERLAY")
	fmt.Fprintln(w, "----\t-------\t----\t-----\t-------")
	for _, info := range infos {
		cycle := "-"
		if info.CycleSeconds > 0 {
			cycle = fmt.Sprintf("%gs", info.CycleSeconds)
		}
		overlay := "no"
		if info.Overlay {
			overlay = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", info.Name, info.Display, info.Kind, cycle, overlay)
	}
	return w.Flush()
}
