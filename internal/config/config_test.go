package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asp2131/rusty-scv/internal/theme"
)

// disableGitConfig keeps tests independent of the host git setup.
func disableGitConfig(t *testing.T) {
	t.Helper()
	prev := gitConfigMock
	gitConfigMock = func([]string) (string, error) { return "", nil }
	t.Cleanup(func() { gitConfigMock = prev })
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, theme.NeonNightName, cfg.Theme)
	assert.Empty(t, cfg.GitHubToken)
	assert.InDelta(t, 1.0, cfg.AnimationSpeed, 1e-9)
	assert.Equal(t, 60, cfg.FrameRate)
	assert.Empty(t, cfg.DataDir)
	assert.Empty(t, cfg.ReposDir)
	assert.Empty(t, cfg.DebugLog)
	assert.True(t, cfg.ShowIcons)
	assert.True(t, cfg.AutoRefresh)
}

func TestParseConfig(t *testing.T) {
	cfg := parseConfig(map[string]any{
		"theme":           "cyberpunk",
		"github_token":    "  ghp_abc123  ",
		"animation_speed": 2,
		"frame_rate":      "90",
		"data_dir":        "/tmp/scv-data",
		"repos_dir":       "/tmp/scv-repos",
		"debug_log":       "/tmp/scv.log",
		"show_icons":      "off",
		"auto_refresh":    false,
	})

	assert.Equal(t, "cyberpunk", cfg.Theme)
	assert.Equal(t, "ghp_abc123", cfg.GitHubToken)
	assert.InDelta(t, 2.0, cfg.AnimationSpeed, 1e-9)
	assert.Equal(t, 90, cfg.FrameRate)
	assert.Equal(t, "/tmp/scv-data", cfg.DataDir)
	assert.Equal(t, "/tmp/scv-repos", cfg.ReposDir)
	assert.Equal(t, "/tmp/scv.log", cfg.DebugLog)
	assert.False(t, cfg.ShowIcons)
	assert.False(t, cfg.AutoRefresh)
}

func TestParseConfigClampsRanges(t *testing.T) {
	cfg := parseConfig(map[string]any{
		"frame_rate":      500,
		"animation_speed": "25",
	})
	assert.Equal(t, MaxFrameRate, cfg.FrameRate)
	assert.InDelta(t, MaxAnimationSpeed, cfg.AnimationSpeed, 1e-9)

	cfg = parseConfig(map[string]any{
		"frame_rate":      2,
		"animation_speed": -1.5,
	})
	assert.Equal(t, MinFrameRate, cfg.FrameRate)
	assert.InDelta(t, MinAnimationSpeed, cfg.AnimationSpeed, 1e-9)
}

func TestParseConfigIgnoresUnknownTheme(t *testing.T) {
	cfg := parseConfig(map[string]any{"theme": "hotdog-stand"})
	assert.Equal(t, theme.NeonNightName, cfg.Theme)
}

func TestNormalizeThemeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"neon-night", "neon-night"},
		{"NEON_NIGHT", "neon-night"},
		{"  ocean_breeze  ", "ocean-breeze"},
		{"sunset-glow", "sunset-glow"},
		{"solarized-dark", ""},
		{"", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, NormalizeThemeName(tc.input), "input %q", tc.input)
	}
}

func TestCoerceFloat(t *testing.T) {
	assert.InDelta(t, 1.5, coerceFloat(1.5, 0), 1e-9)
	assert.InDelta(t, 3.0, coerceFloat(3, 0), 1e-9)
	assert.InDelta(t, 0.5, coerceFloat("0.5", 0), 1e-9)
	assert.InDelta(t, 2.0, coerceFloat("", 2.0), 1e-9)
	assert.InDelta(t, 2.0, coerceFloat("not-a-number", 2.0), 1e-9)
	assert.InDelta(t, 2.0, coerceFloat(nil, 2.0), 1e-9)
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	disableGitConfig(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, theme.NeonNightName, cfg.Theme)
	assert.Equal(t, 60, cfg.FrameRate)
	require.NotEmpty(t, cfg.DataDir)
	assert.Equal(t, ".scv", filepath.Base(cfg.DataDir))
	assert.Equal(t, filepath.Join(cfg.DataDir, "repos"), cfg.ReposDir)
}

func TestLoadConfigReadsYAMLFile(t *testing.T) {
	disableGitConfig(t)
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	scvDir := filepath.Join(configHome, "scv")
	require.NoError(t, os.MkdirAll(scvDir, 0o750))
	yamlContent := "theme: forest-dark\nframe_rate: 30\nanimation_speed: 0.5\nshow_icons: false\ndata_dir: /tmp/scv-test-data\n"
	require.NoError(t, os.WriteFile(filepath.Join(scvDir, "config.yaml"), []byte(yamlContent), 0o600))

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "forest-dark", cfg.Theme)
	assert.Equal(t, 30, cfg.FrameRate)
	assert.InDelta(t, 0.5, cfg.AnimationSpeed, 1e-9)
	assert.False(t, cfg.ShowIcons)
	assert.Equal(t, "/tmp/scv-test-data", cfg.DataDir)
	assert.Equal(t, filepath.Join("/tmp/scv-test-data", "repos"), cfg.ReposDir)
}

func TestLoadConfigInvalidYAMLFallsBackToDefaults(t *testing.T) {
	disableGitConfig(t)
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	scvDir := filepath.Join(configHome, "scv")
	require.NoError(t, os.MkdirAll(scvDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(scvDir, "config.yaml"), []byte("{not yaml::"), 0o600))

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, theme.NeonNightName, cfg.Theme)
}

func TestLoadConfigRejectsPathOutsideConfigDir(t *testing.T) {
	disableGitConfig(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := LoadConfig("/etc/passwd")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must reside inside")
}

func TestGitConfigOverridesFile(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	scvDir := filepath.Join(configHome, "scv")
	require.NoError(t, os.MkdirAll(scvDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(scvDir, "config.yaml"), []byte("theme: forest-dark\n"), 0o600))

	prev := gitConfigMock
	gitConfigMock = func(args []string) (string, error) {
		return "scv.theme cyberpunk\nscv.frame_rate 90\n", nil
	}
	t.Cleanup(func() { gitConfigMock = prev })

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "cyberpunk", cfg.Theme)
	assert.Equal(t, 90, cfg.FrameRate)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	disableGitConfig(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Theme = "sunset-glow"
	cfg.FrameRate = 30
	cfg.DataDir = "/tmp/scv-save-test"

	require.NoError(t, SaveConfig(cfg, ""))

	loaded, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "sunset-glow", loaded.Theme)
	assert.Equal(t, 30, loaded.FrameRate)
	assert.Equal(t, "/tmp/scv-save-test", loaded.DataDir)
}

func TestIsPathWithin(t *testing.T) {
	assert.True(t, isPathWithin("/a/b", "/a/b"))
	assert.True(t, isPathWithin("/a/b", "/a/b/c.yaml"))
	assert.False(t, isPathWithin("/a/b", "/a"))
	assert.False(t, isPathWithin("/a/b", "/a/bc"))
	assert.False(t, isPathWithin("/a/b", "/etc/passwd"))
}
