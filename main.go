package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"backdrop/api"
	"backdrop/config"
	"backdrop/logging"
	"backdrop/model"
	"backdrop/theme"
)

//go:embed templates
var templatesFS embed.FS

//go:embed web/index.html
var webFS embed.FS

var (
	dataDir    string
	listen     string
	listenPort int
	logLevel   string
	appVersion = "0.2.0"
)

var rootCmd = &cobra.Command{
	Use:   "backdrop",
	Short: "backdrop – accent and background theme generator",
	Long:  "Backdrop builds application style sheets from an accent color and a background mode, and serves a live preview.",
	Run:   run,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long:  "Manage backdrop configuration files.",
}

var configGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a default configuration file",
	Long:  "Generate a default backdrop.config file in the specified data directory (or current directory if not specified).",
	Run:   runConfigGenerate,
}

func init() {
	wd, _ := os.Getwd()
	rootCmd.Version = appVersion
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", wd, "Data directory (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	rootCmd.Flags().StringVar(&listen, "listen", "all", "IP address to listen on (default: all)")
	rootCmd.Flags().IntVar(&listenPort, "listen-port", 8080, "Port to listen on (default: 8080)")

	configCmd.AddCommand(configGenerateCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(renderCmd, paletteCmd, backgroundsCmd)
}

// loadConfig reads the config from --data-dir and applies the flags that
// were explicitly set.
func loadConfig(cmd *cobra.Command) (config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(dataDir)
	if err != nil {
		return config.Config{}, logging.New(os.Stderr, logLevel), err
	}

	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = dataDir
	} else if cfg.DataDir == "" || cfg.DataDir == "." {
		cfg.DataDir = dataDir
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	dataDirAbs, err := filepath.Abs(cfg.DataDir)
	if err != nil {
		return config.Config{}, logging.New(os.Stderr, cfg.LogLevel), fmt.Errorf("resolve data dir: %w", err)
	}
	cfg.DataDir = dataDirAbs

	return cfg, logging.New(os.Stderr, cfg.LogLevel), nil
}

func run(cmd *cobra.Command, args []string) {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	if cmd.Flags().Changed("listen") || cmd.Flags().Changed("listen-port") {
		if listen != "" && listen != "all" {
			cfg.ListenAddr = net.JoinHostPort(listen, fmt.Sprint(listenPort))
		} else {
			cfg.ListenAddr = fmt.Sprintf(":%d", listenPort)
		}
	}

	themeManager, err := theme.NewManager(templatesFS, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("initialize theme manager")
	}
	defaultBackground := theme.ParseMode(cfg.Background)
	themeHandler := theme.NewHandler(themeManager, cfg.Accent, defaultBackground)

	indexHTML, err := webFS.ReadFile("web/index.html")
	if err != nil {
		logger.Fatal().Err(err).Msg("read index.html")
	}
	indexTemplate := template.Must(template.New("index").Parse(string(indexHTML)))

	mux := http.NewServeMux()

	apiServer := api.NewServer(themeManager, model.Selection{
		Accent:     cfg.Accent,
		Background: string(defaultBackground),
		Template:   cfg.Template,
	}, logger)
	apiServer.Register(mux)

	mux.HandleFunc("/api/theme", themeHandler.HandleTheme)
	mux.HandleFunc("/api/palette", themeHandler.HandlePalette)
	mux.HandleFunc("/api/backgrounds", themeHandler.HandleBackgrounds)
	mux.HandleFunc("/api/templates", themeHandler.HandleTemplates)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		templateName := themeManager.ResolveTemplate(cfg.Template)
		accent := theme.Resolve(cfg.Accent).Accent

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err := indexTemplate.Execute(w, map[string]any{
			"Title":              "backdrop",
			"ThemeCSS":           template.CSS(themeManager.Stylesheet(templateName, cfg.Accent, defaultBackground)),
			"Accent":             accent,
			"TemplateMenuHTML":   template.HTML(themeHandler.GenerateTemplateMenuHTML(templateName)),
			"BackgroundMenuHTML": template.HTML(themeHandler.GenerateBackgroundMenuHTML(defaultBackground)),
			"CurrentTemplate":    templateName,
			"CurrentBackground":  string(defaultBackground),
			"AppVersion":         appVersion,
			"Year":               time.Now().Year(),
		})
		if err != nil {
			logger.Error().Err(err).Msg("render index")
		}
	})

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	printListeningAddresses(logger, cfg.ListenAddr)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func runConfigGenerate(cmd *cobra.Command, args []string) {
	logger := logging.New(os.Stderr, logLevel)

	dataDirAbs, err := filepath.Abs(dataDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("resolve data dir")
	}

	cfg := config.Default()
	cfg.DataDir = dataDirAbs

	cfgPath := config.Path(dataDirAbs)
	if _, err := os.Stat(cfgPath); err == nil {
		logger.Fatal().Str("path", cfgPath).Msg("config file already exists")
	}

	if err := config.Save(cfg); err != nil {
		logger.Fatal().Err(err).Msg("failed to save config")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated default config file: %s\n", cfgPath)
}

func printListeningAddresses(logger zerolog.Logger, addr string) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		logger.Info().Msgf("listening on http://%s", addr)
		return
	}

	if host == "" || host == "0.0.0.0" || host == "::" {
		addrs, err := net.InterfaceAddrs()
		if err != nil {
			logger.Info().Msgf("listening on http://0.0.0.0:%s", port)
			return
		}
		logger.Info().Msg("listening on:")
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
				if ipnet.IP.To4() != nil {
					logger.Info().Msgf("  http://%s:%s", ipnet.IP.String(), port)
				}
			}
		}
		logger.Info().Msgf("  http://localhost:%s", port)
		logger.Info().Msgf("  http://127.0.0.1:%s", port)
		return
	}

	logger.Info().Msgf("listening on http://%s", net.JoinHostPort(host, port))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
