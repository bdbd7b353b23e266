package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGitConfigOutput(t *testing.T) {
	output := "scv.theme ocean-breeze\nscv.frame_rate 45\nscv.debug_log /tmp/with spaces.log\n"
	got := parseGitConfigOutput(output)

	require.Len(t, got, 3)
	assert.Equal(t, "ocean-breeze", got["theme"])
	assert.Equal(t, "45", got["frame_rate"])
	assert.Equal(t, "/tmp/with spaces.log", got["debug_log"])
}

func TestParseGitConfigOutputEmpty(t *testing.T) {
	assert.Empty(t, parseGitConfigOutput(""))
	assert.Empty(t, parseGitConfigOutput("\n\n"))
	// Lines without a value are skipped.
	assert.Empty(t, parseGitConfigOutput("scv.flagonly\n"))
}

func TestLoadGitConfigOverridesError(t *testing.T) {
	prev := gitConfigMock
	gitConfigMock = func([]string) (string, error) {
		return "", errors.New("git not installed")
	}
	t.Cleanup(func() { gitConfigMock = prev })

	_, err := loadGitConfigOverrides()
	require.Error(t, err)
}

func TestResolveGitHubTokenPrecedence(t *testing.T) {
	prev := gitConfigMock
	gitConfigMock = func(args []string) (string, error) {
		return "token-from-git\n", nil
	}
	t.Cleanup(func() { gitConfigMock = prev })

	t.Setenv("GITHUB_TOKEN", "")

	// Configured token wins.
	cfg := &AppConfig{GitHubToken: "token-from-config"}
	assert.Equal(t, "token-from-config", ResolveGitHubToken(cfg))

	// Environment beats git config.
	t.Setenv("GITHUB_TOKEN", "token-from-env")
	assert.Equal(t, "token-from-env", ResolveGitHubToken(&AppConfig{}))

	// Git config is the last resort.
	t.Setenv("GITHUB_TOKEN", "")
	assert.Equal(t, "token-from-git", ResolveGitHubToken(&AppConfig{}))
	assert.Equal(t, "token-from-git", ResolveGitHubToken(nil))
}

func TestResolveGitHubTokenEmpty(t *testing.T) {
	prev := gitConfigMock
	gitConfigMock = func([]string) (string, error) { return "", nil }
	t.Cleanup(func() { gitConfigMock = prev })

	t.Setenv("GITHUB_TOKEN", "")
	assert.Empty(t, ResolveGitHubToken(&AppConfig{}))
}
