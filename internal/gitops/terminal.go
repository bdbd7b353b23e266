package gitops

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/asp2131/rusty-scv/internal/log"
	"github.com/asp2131/rusty-scv/internal/models"
)

// goos is overridable in tests.
var goos = runtime.GOOS

// OpenTerminal spawns a terminal window (or tmux window when running
// inside tmux) at the student's repository path. The child process is
// detached so quitting the TUI doesn't take the terminal with it.
func (s *Service) OpenTerminal(ctx context.Context, className string, student models.Student) error {
	path := s.RepoPath(className, student.GitHubUsername)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("repository not found at %s", path)
	}

	name, args, err := terminalCommand(path)
	if err != nil {
		return err
	}

	log.Printf("open terminal: %s %v", name, args)

	cmd, err := prepareAllowedCommand(ctx, name, args...)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	return cmd.Process.Release()
}

func terminalCommand(path string) (string, []string, error) {
	if os.Getenv("TMUX") != "" {
		return "tmux", []string{"new-window", "-c", path}, nil
	}

	switch goos {
	case "darwin":
		return "open", []string{"-a", "Terminal", path}, nil
	case "linux":
		return "gnome-terminal", []string{"--working-directory=" + path}, nil
	case "windows":
		return "cmd", []string{"/C", "start", "cmd", "/K", "cd", "/d", path}, nil
	default:
		return "", nil, fmt.Errorf("opening a terminal is not supported on %s", goos)
	}
}
