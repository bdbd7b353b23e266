// Package gitops runs local git operations on cloned student
// repositories under the repos directory, laid out as
// {repos_dir}/{class}/{github_username}.
package gitops

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/asp2131/rusty-scv/internal/log"
	"github.com/asp2131/rusty-scv/internal/models"
	"github.com/asp2131/rusty-scv/internal/utils"
)

// LookupPath is used to find executables in PATH. It's exposed as a package variable
// so tests can mock it and avoid depending on system binaries being installed.
var LookupPath = exec.LookPath

// Service orchestrates git subprocesses for the UI. Concurrent
// operations are bounded by a counting semaphore so a large roster
// cannot fork-bomb the machine.
type Service struct {
	reposDir  string
	semaphore chan struct{}
}

// NewService constructs a Service rooted at reposDir and sets up
// concurrency limits.
func NewService(reposDir string) *Service {
	limit := runtime.NumCPU() * 2
	if limit < 4 {
		limit = 4
	}
	if limit > 32 {
		limit = 32
	}

	// Counting semaphore: the channel starts full, acquire takes a
	// token, release returns it.
	semaphore := make(chan struct{}, limit)
	for i := 0; i < limit; i++ {
		semaphore <- struct{}{}
	}

	return &Service{
		reposDir:  reposDir,
		semaphore: semaphore,
	}
}

// EnsureGit verifies the git binary is reachable.
func (s *Service) EnsureGit() error {
	if _, err := LookupPath("git"); err != nil {
		return fmt.Errorf("git not found in PATH: %w", err)
	}
	return nil
}

// ReposDir returns the root directory repositories are cloned under.
func (s *Service) ReposDir() string {
	return s.reposDir
}

// RepoPath returns where a student's repository is (or would be) cloned.
func (s *Service) RepoPath(className, githubUsername string) string {
	return filepath.Join(s.reposDir, className, githubUsername)
}

func prepareAllowedCommand(ctx context.Context, name string, args ...string) (*exec.Cmd, error) {
	switch name {
	case "git":
		// #nosec G204 -- arguments for git come from internal logic and are not shell interpolated
		return exec.CommandContext(ctx, "git", args...), nil
	case "tmux", "open", "gnome-terminal", "cmd":
		// #nosec G204 -- terminal openers receive only a vetted repository path
		return exec.CommandContext(ctx, name, args...), nil
	default:
		return nil, fmt.Errorf("unsupported command %q", name)
	}
}

func (s *Service) acquireSemaphore() {
	<-s.semaphore
}

func (s *Service) releaseSemaphore() {
	s.semaphore <- struct{}{}
}

// runGit executes one git command and returns its trimmed stdout.
func (s *Service) runGit(ctx context.Context, cwd string, args ...string) (string, error) {
	s.acquireSemaphore()
	defer s.releaseSemaphore()

	log.Printf("run: git %s (cwd=%s)", strings.Join(args, " "), cwd)

	cmd, err := prepareAllowedCommand(ctx, "git", args...)
	if err != nil {
		return "", err
	}
	if cwd != "" {
		cmd.Dir = cwd
	}

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr := strings.TrimSpace(string(exitErr.Stderr))
			if stderr != "" {
				return "", fmt.Errorf("git %s failed: %s", args[0], stderr)
			}
			return "", fmt.Errorf("git %s failed: exit %d", args[0], exitErr.ExitCode())
		}
		return "", fmt.Errorf("git %s failed: %w", args[0], err)
	}

	return strings.TrimSpace(string(output)), nil
}

// RepoExists reports whether a student's checkout is present on disk.
func (s *Service) RepoExists(className string, student models.Student) bool {
	info, err := os.Stat(s.RepoPath(className, student.GitHubUsername))
	return err == nil && info.IsDir()
}

// Clone checks out a student's Pages repository. Cloning over an
// existing checkout is an error.
func (s *Service) Clone(ctx context.Context, className string, student models.Student) error {
	path := s.RepoPath(className, student.GitHubUsername)
	if s.RepoExists(className, student) {
		return fmt.Errorf("repository already exists at %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), utils.DefaultDirPerms); err != nil {
		return fmt.Errorf("create class directory: %w", err)
	}

	_, err := s.runGit(ctx, "", "clone", student.RepoURL(), path)
	return err
}

// Pull updates a cloned repository from origin main.
func (s *Service) Pull(ctx context.Context, className string, student models.Student) error {
	path := s.RepoPath(className, student.GitHubUsername)
	if !s.RepoExists(className, student) {
		return fmt.Errorf("repository not found at %s", path)
	}

	_, err := s.runGit(ctx, path, "pull", "origin", "main")
	return err
}

// Clean discards local changes and untracked files so the checkout
// matches HEAD again.
func (s *Service) Clean(ctx context.Context, className string, student models.Student) error {
	path := s.RepoPath(className, student.GitHubUsername)
	if !s.RepoExists(className, student) {
		return fmt.Errorf("repository not found at %s", path)
	}

	if _, err := s.runGit(ctx, path, "reset", "--hard", "HEAD"); err != nil {
		return err
	}
	_, err := s.runGit(ctx, path, "clean", "-fd")
	return err
}

// CloneAll clones every student's repository, bounded by the service
// semaphore, and reports one result per student in roster order.
func (s *Service) CloneAll(ctx context.Context, className string, students []models.Student) []models.OpResult {
	results := make([]models.OpResult, len(students))

	var wg sync.WaitGroup
	for i, student := range students {
		wg.Add(1)
		go func(i int, student models.Student) {
			defer wg.Done()
			result := models.OpResult{Username: student.Username}
			if err := s.Clone(ctx, className, student); err != nil {
				result.Err = err.Error()
			}
			results[i] = result
		}(i, student)
	}
	wg.Wait()

	return results
}

// Statuses reports the local checkout state for each student.
func (s *Service) Statuses(className string, students []models.Student) []models.RepoStatus {
	statuses := make([]models.RepoStatus, 0, len(students))
	for _, student := range students {
		statuses = append(statuses, models.RepoStatus{
			Student: student,
			Path:    s.RepoPath(className, student.GitHubUsername),
			Cloned:  s.RepoExists(className, student),
		})
	}
	return statuses
}
