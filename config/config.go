package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// FileName is the config file looked up inside the data directory.
const FileName = "backdrop.config"

// EnvPrefix prefixes environment overrides, e.g. BACKDROP_ACCENT.
const EnvPrefix = "BACKDROP"

type Config struct {
	DataDir    string `json:"data_dir" mapstructure:"data_dir"`
	ListenAddr string `json:"listen_addr" mapstructure:"listen_addr"`
	Accent     string `json:"accent" mapstructure:"accent"`
	Background string `json:"background" mapstructure:"background"`
	Template   string `json:"template" mapstructure:"template"`
	LogLevel   string `json:"log_level" mapstructure:"log_level"`
}

func Default() Config {
	return Config{
		DataDir:    ".",
		ListenAddr: ":8080",
		Accent:     "#6366f1",
		Background: "default",
		Template:   "app",
		LogLevel:   "info",
	}
}

// Path returns the config file location for dataDir.
func Path(dataDir string) string {
	return filepath.Join(dataDir, FileName)
}

// Load reads the config from dataDir, applying BACKDROP_* environment
// overrides. A missing file is not an error.
func Load(dataDir string) (Config, error) {
	def := Default()

	v := viper.New()
	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("listen_addr", def.ListenAddr)
	v.SetDefault("accent", def.Accent)
	v.SetDefault("background", def.Background)
	v.SetDefault("template", def.Template)
	v.SetDefault("log_level", def.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfgPath := Path(dataDir)
	if _, err := os.Stat(cfgPath); err == nil {
		v.SetConfigFile(cfgPath)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("stat config %s: %w", cfgPath, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if cfg.DataDir == "" {
		cfg.DataDir = def.DataDir
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = def.ListenAddr
	}
	if cfg.Accent == "" {
		cfg.Accent = def.Accent
	}
	if cfg.Background == "" {
		cfg.Background = def.Background
	}
	if cfg.Template == "" {
		cfg.Template = def.Template
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}

	return cfg, nil
}

func Save(cfg Config) error {
	cfgPath := Path(cfg.DataDir)

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return err
	}

	tmp := cfgPath + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, cfgPath)
}
