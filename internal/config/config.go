package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/coolctl/internal/remote"
)

// Config captures everything coolctl reads from config.toml.
type Config struct {
	APIURL         string
	PollInterval   time.Duration
	CredentialPath string
	LogFile        string
	LogLevel       string
	Presets        []Preset
}

// Preset binds a key to a command schedule.
type Preset struct {
	Key       string
	Label     string
	Intervals remote.Intervals
}

const (
	defaultConfigPath     = "~/.config/coolctl/config.toml"
	defaultAPIURL         = "http://127.0.0.1:8080"
	defaultPollInterval   = 3 * time.Second
	defaultCredentialPath = "~/.config/coolctl/credential.toml"
	defaultLogFile        = "~/.local/state/coolctl/coolctl.log"
	defaultLogLevel       = "info"
)

// DefaultPresets are used when config.toml defines none: cool at 22°C and off.
func DefaultPresets() []Preset {
	return []Preset{
		{Key: "c", Label: "Cool 22°C", Intervals: remote.Cooling(22)},
		{Key: "o", Label: "Off", Intervals: remote.Off()},
	}
}

// ReservedKeys are bound to global UI actions and cannot name a preset.
var ReservedKeys = []string{"q", "?", "T", "L", "G", "j", "k"}

type rawPreset struct {
	Key       string         `toml:"key"`
	Label     string         `toml:"label"`
	Intervals map[string]any `toml:"intervals"`
}

type rawConfig struct {
	APIURL         string      `toml:"api_url"`
	PollInterval   string      `toml:"poll_interval"`
	CredentialPath string      `toml:"credential_path"`
	LogFile        string      `toml:"log_file"`
	LogLevel       string      `toml:"log_level"`
	Presets        []rawPreset `toml:"presets"`
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fromRaw(rawConfig{})
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return fromRaw(raw)
}

func fromRaw(raw rawConfig) (Config, error) {
	cfg := Config{
		APIURL:   strings.TrimSpace(raw.APIURL),
		LogLevel: strings.ToLower(strings.TrimSpace(raw.LogLevel)),
	}
	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}

	cfg.PollInterval = defaultPollInterval
	if value := strings.TrimSpace(raw.PollInterval); value != "" {
		d, err := time.ParseDuration(value)
		if err != nil {
			return Config{}, fmt.Errorf("parse poll_interval: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("poll_interval must be positive, got %s", value)
		}
		cfg.PollInterval = d
	}

	var err error
	if cfg.CredentialPath, err = expandOr(raw.CredentialPath, defaultCredentialPath); err != nil {
		return Config{}, err
	}
	if cfg.LogFile, err = expandOr(raw.LogFile, defaultLogFile); err != nil {
		return Config{}, err
	}

	if len(raw.Presets) == 0 {
		cfg.Presets = DefaultPresets()
		return cfg, nil
	}
	seen := make(map[string]bool, len(raw.Presets))
	for i, p := range raw.Presets {
		key := strings.TrimSpace(p.Key)
		if utf8.RuneCountInString(key) != 1 {
			return Config{}, fmt.Errorf("preset %d: key must be a single character, got %q", i+1, p.Key)
		}
		if slices.Contains(ReservedKeys, key) {
			return Config{}, fmt.Errorf("preset %d: key %q is reserved", i+1, key)
		}
		if seen[key] {
			return Config{}, fmt.Errorf("preset %d: duplicate key %q", i+1, key)
		}
		seen[key] = true
		label := strings.TrimSpace(p.Label)
		if label == "" {
			label = key
		}
		intervals := remote.Intervals(p.Intervals)
		if intervals == nil {
			intervals = remote.Off()
		}
		cfg.Presets = append(cfg.Presets, Preset{Key: key, Label: label, Intervals: intervals})
	}
	return cfg, nil
}

// Preset returns the preset bound to key.
func (c Config) Preset(key string) (Preset, bool) {
	for _, p := range c.Presets {
		if p.Key == key {
			return p, true
		}
	}
	return Preset{}, false
}

func expandOr(value, fallback string) (string, error) {
	if strings.TrimSpace(value) == "" {
		value = fallback
	}
	return expandPath(value)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
