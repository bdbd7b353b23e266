// Package config loads application configuration from YAML, with
// optional overrides from git config.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/asp2131/rusty-scv/internal/theme"
	"github.com/asp2131/rusty-scv/internal/utils"
	"gopkg.in/yaml.v3"
)

const defaultFilePerms = 0o600

// Frame rate bounds. Values outside this range are clamped.
const (
	MinFrameRate = 10
	MaxFrameRate = 120
)

// Animation speed bounds. Zero freezes animations entirely.
const (
	MinAnimationSpeed = 0.0
	MaxAnimationSpeed = 5.0
)

// AppConfig defines the global scv configuration options.
type AppConfig struct {
	Theme          string  // Theme name: see AvailableThemes in internal/theme
	GitHubToken    string  // Optional token for authenticated GitHub API calls
	AnimationSpeed float64 // Multiplier applied to all animation deltas (default: 1.0)
	FrameRate      int     // Render loop ticks per second (default: 60)
	DataDir        string  // Class and student data location (default: ~/.scv)
	ReposDir       string  // Where student repositories are cloned (default: {data_dir}/repos)
	DebugLog       string
	ShowIcons      bool // Render Nerd Font icons next to repository entries (default: true)
	AutoRefresh    bool // Refresh the repository screen when cloned repos change on disk (default: true)
}

// DefaultConfig returns the default configuration values.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Theme:          theme.DefaultName(),
		GitHubToken:    "",
		AnimationSpeed: 1.0,
		FrameRate:      60,
		ShowIcons:      true,
		AutoRefresh:    true,
	}
}

func coerceBool(value any, defaultVal bool) bool {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case string:
		text := strings.ToLower(strings.TrimSpace(v))
		switch text {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultVal
}

func coerceInt(value any, defaultVal int) int {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return defaultVal
	case int:
		return v
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return defaultVal
		}
		if i, err := strconv.Atoi(text); err == nil {
			return i
		}
	}
	return defaultVal
}

func coerceFloat(value any, defaultVal float64) float64 {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return defaultVal
		}
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func parseConfig(data map[string]any) *AppConfig {
	cfg := DefaultConfig()

	if themeName, ok := data["theme"].(string); ok {
		if normalized := NormalizeThemeName(themeName); normalized != "" {
			cfg.Theme = normalized
		}
	}

	if token, ok := data["github_token"].(string); ok {
		cfg.GitHubToken = strings.TrimSpace(token)
	}

	cfg.AnimationSpeed = clampFloat(coerceFloat(data["animation_speed"], cfg.AnimationSpeed), MinAnimationSpeed, MaxAnimationSpeed)
	cfg.FrameRate = clampInt(coerceInt(data["frame_rate"], cfg.FrameRate), MinFrameRate, MaxFrameRate)

	if dataDir, ok := data["data_dir"].(string); ok {
		dataDir = strings.TrimSpace(dataDir)
		if dataDir != "" {
			cfg.DataDir = dataDir
		}
	}
	if reposDir, ok := data["repos_dir"].(string); ok {
		reposDir = strings.TrimSpace(reposDir)
		if reposDir != "" {
			cfg.ReposDir = reposDir
		}
	}
	if debugLog, ok := data["debug_log"].(string); ok {
		debugLog = strings.TrimSpace(debugLog)
		if debugLog != "" {
			cfg.DebugLog = debugLog
		}
	}

	cfg.ShowIcons = coerceBool(data["show_icons"], cfg.ShowIcons)
	cfg.AutoRefresh = coerceBool(data["auto_refresh"], cfg.AutoRefresh)

	return cfg
}

// NormalizeThemeName lowercases and validates a theme name. Underscore
// separators are accepted as aliases for hyphens. Returns "" for
// unknown names.
func NormalizeThemeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "_", "-")
	switch name {
	case theme.NeonNightName,
		theme.CyberpunkName,
		theme.OceanBreezeName,
		theme.ForestDarkName,
		theme.SunsetGlowName:
		return name
	default:
		return ""
	}
}

func getConfigDir() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

// configBase returns the directory scv configuration must live in.
func configBase() string {
	return filepath.Clean(filepath.Join(getConfigDir(), "scv"))
}

// resolveConfigPath validates an explicit config path, or returns the
// default candidates when path is empty.
func resolveConfigPath(path string) ([]string, error) {
	base := configBase()

	if path == "" {
		return []string{
			filepath.Join(base, "config.yaml"),
			filepath.Join(base, "config.yml"),
		}, nil
	}

	expanded, err := expandPath(path)
	if err != nil {
		return nil, err
	}
	absPath, err := filepath.Abs(expanded)
	if err != nil {
		return nil, err
	}
	if !isPathWithin(base, absPath) {
		return nil, fmt.Errorf("config path must reside inside %s", base)
	}
	return []string{absPath}, nil
}

// LoadConfig reads the application configuration from a YAML file and
// applies any scv.* overrides found in git config.
func LoadConfig(configPath string) (*AppConfig, error) {
	paths, err := resolveConfigPath(configPath)
	if err != nil {
		return DefaultConfig(), err
	}

	data := map[string]any{}

	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		// #nosec G304 -- path is constrained to the config directory after validation
		raw, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		if err := yaml.Unmarshal(raw, &data); err != nil {
			data = map[string]any{}
		}
		break
	}

	if overrides, err := loadGitConfigOverrides(); err == nil {
		for key, value := range overrides {
			data[key] = value
		}
	}

	cfg := parseConfig(data)
	if err := resolveDirs(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// configPayload is the on-disk YAML shape.
type configPayload struct {
	Theme          string  `yaml:"theme"`
	GitHubToken    string  `yaml:"github_token,omitempty"`
	AnimationSpeed float64 `yaml:"animation_speed"`
	FrameRate      int     `yaml:"frame_rate"`
	DataDir        string  `yaml:"data_dir,omitempty"`
	ReposDir       string  `yaml:"repos_dir,omitempty"`
	DebugLog       string  `yaml:"debug_log,omitempty"`
	ShowIcons      bool    `yaml:"show_icons"`
	AutoRefresh    bool    `yaml:"auto_refresh"`
}

// SaveConfig writes cfg as YAML. An empty configPath targets the
// default location, creating the config directory if needed.
func SaveConfig(cfg *AppConfig, configPath string) error {
	paths, err := resolveConfigPath(configPath)
	if err != nil {
		return err
	}
	path := paths[0]

	if err := os.MkdirAll(filepath.Dir(path), utils.DefaultDirPerms); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	payload := configPayload{
		Theme:          cfg.Theme,
		GitHubToken:    cfg.GitHubToken,
		AnimationSpeed: cfg.AnimationSpeed,
		FrameRate:      cfg.FrameRate,
		DataDir:        cfg.DataDir,
		ReposDir:       cfg.ReposDir,
		DebugLog:       cfg.DebugLog,
		ShowIcons:      cfg.ShowIcons,
		AutoRefresh:    cfg.AutoRefresh,
	}

	raw, err := yaml.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, raw, defaultFilePerms); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// resolveDirs fills in and expands DataDir and ReposDir.
func resolveDirs(cfg *AppConfig) error {
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".scv")
	} else {
		expanded, err := expandPath(cfg.DataDir)
		if err != nil {
			return err
		}
		cfg.DataDir = expanded
	}

	if cfg.ReposDir == "" {
		cfg.ReposDir = filepath.Join(cfg.DataDir, "repos")
	} else {
		expanded, err := expandPath(cfg.ReposDir)
		if err != nil {
			return err
		}
		cfg.ReposDir = expanded
	}

	return nil
}

func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return os.ExpandEnv(path), nil
}

func isPathWithin(base, target string) bool {
	base = filepath.Clean(base)
	target = filepath.Clean(target)

	rel, err := filepath.Rel(base, target)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return false
	}
	return true
}
