package config

import (
	"os"
	"os/exec"
	"strings"
)

// gitConfigMock allows tests to mock git config output.
var gitConfigMock func(args []string) (string, error)

// runGitConfig executes git config and returns raw output.
func runGitConfig(args []string) (string, error) {
	if gitConfigMock != nil {
		return gitConfigMock(args)
	}

	cmd := exec.Command("git", args...)
	output, err := cmd.Output()
	if err != nil {
		// git config returns exit code 1 when key not found (not an error)
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			return "", nil
		}
		return "", err
	}
	return string(output), nil
}

// parseGitConfigOutput parses git config output into a key/value map.
// Input format: "scv.theme cyberpunk\nscv.frame_rate 90\n"
func parseGitConfigOutput(output string) map[string]any {
	configMap := make(map[string]any)
	if output == "" {
		return configMap
	}

	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line == "" {
			continue
		}

		// SplitN with 2 so values containing spaces survive.
		parts := strings.SplitN(line, " ", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimPrefix(parts[0], "scv.")
		configMap[key] = parts[1]
	}

	return configMap
}

// loadGitConfigOverrides reads scv.* keys from git config. A plain
// lookup lets git merge system, global, and local scopes itself.
func loadGitConfigOverrides() (map[string]any, error) {
	output, err := runGitConfig([]string{"config", "--get-regexp", `^scv\.`})
	if err != nil {
		return nil, err
	}
	return parseGitConfigOutput(output), nil
}

// ResolveGitHubToken returns the token for GitHub API calls: the
// configured token, then $GITHUB_TOKEN, then git config github.token.
// Returns "" when none is set; the API works unauthenticated at a
// lower rate limit.
func ResolveGitHubToken(cfg *AppConfig) string {
	if cfg != nil && cfg.GitHubToken != "" {
		return cfg.GitHubToken
	}
	if token := strings.TrimSpace(os.Getenv("GITHUB_TOKEN")); token != "" {
		return token
	}
	output, err := runGitConfig([]string{"config", "--get", "github.token"})
	if err != nil {
		return ""
	}
	return strings.TrimSpace(output)
}
