package gitops

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asp2131/rusty-scv/internal/models"
)

func TestNewService(t *testing.T) {
	service := NewService(t.TempDir())

	assert.NotNil(t, service)
	assert.NotNil(t, service.semaphore)

	expectedSlots := runtime.NumCPU() * 2
	if expectedSlots < 4 {
		expectedSlots = 4
	}
	if expectedSlots > 32 {
		expectedSlots = 32
	}

	// Semaphore should have the expected number of slots
	count := 0
	for i := 0; i < expectedSlots; i++ {
		select {
		case <-service.semaphore:
			count++
		default:
			// Can't drain more from semaphore
		}
	}
	assert.Equal(t, expectedSlots, count)
}

func TestRepoPath(t *testing.T) {
	service := NewService("/data/repos")

	path := service.RepoPath("CS101", "octocat")

	assert.Equal(t, filepath.Join("/data/repos", "CS101", "octocat"), path)
	assert.Equal(t, "/data/repos", service.ReposDir())
}

func TestEnsureGit(t *testing.T) {
	origLookup := LookupPath
	defer func() { LookupPath = origLookup }()

	t.Run("git found", func(t *testing.T) {
		LookupPath = func(string) (string, error) { return "/usr/bin/git", nil }
		assert.NoError(t, NewService(t.TempDir()).EnsureGit())
	})

	t.Run("git missing", func(t *testing.T) {
		LookupPath = func(string) (string, error) { return "", exec.ErrNotFound }
		err := NewService(t.TempDir()).EnsureGit()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "git not found in PATH")
	})
}

func TestPrepareAllowedCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("git allowed", func(t *testing.T) {
		cmd, err := prepareAllowedCommand(ctx, "git", "status")
		require.NoError(t, err)
		assert.Contains(t, cmd.Args, "status")
	})

	t.Run("terminal openers allowed", func(t *testing.T) {
		for _, name := range []string{"tmux", "open", "gnome-terminal", "cmd"} {
			_, err := prepareAllowedCommand(ctx, name)
			assert.NoError(t, err, name)
		}
	})

	t.Run("anything else rejected", func(t *testing.T) {
		_, err := prepareAllowedCommand(ctx, "rm", "-rf", "/")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unsupported command "rm"`)
	})
}

func TestCloneExistingRepository(t *testing.T) {
	service := NewService(t.TempDir())
	student := models.Student{Username: "ana", GitHubUsername: "ana"}

	path := service.RepoPath("CS101", "ana")
	require.NoError(t, os.MkdirAll(path, 0o750))

	err := service.Clone(context.Background(), "CS101", student)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "repository already exists at")
	assert.Contains(t, err.Error(), path)
}

func TestPullMissingRepository(t *testing.T) {
	service := NewService(t.TempDir())
	student := models.Student{Username: "ana", GitHubUsername: "ana"}

	err := service.Pull(context.Background(), "CS101", student)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "repository not found at")
}

func TestCleanMissingRepository(t *testing.T) {
	service := NewService(t.TempDir())
	student := models.Student{Username: "ana", GitHubUsername: "ana"}

	err := service.Clean(context.Background(), "CS101", student)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "repository not found at")
}

func TestOpenTerminalMissingRepository(t *testing.T) {
	service := NewService(t.TempDir())
	student := models.Student{Username: "ana", GitHubUsername: "ana"}

	err := service.OpenTerminal(context.Background(), "CS101", student)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "repository not found at")
}

func TestCloneAllReportsPerStudent(t *testing.T) {
	service := NewService(t.TempDir())
	students := []models.Student{
		{Username: "ana", GitHubUsername: "ana"},
		{Username: "bob", GitHubUsername: "bob"},
	}

	// Pre-create both checkouts so every clone fails fast without
	// touching the network.
	for _, s := range students {
		require.NoError(t, os.MkdirAll(service.RepoPath("CS101", s.GitHubUsername), 0o750))
	}

	results := service.CloneAll(context.Background(), "CS101", students)

	require.Len(t, results, 2)
	assert.Equal(t, "ana", results[0].Username)
	assert.Equal(t, "bob", results[1].Username)
	for _, r := range results {
		assert.False(t, r.Ok())
		assert.Contains(t, r.Err, "repository already exists at")
	}
}

func TestStatuses(t *testing.T) {
	service := NewService(t.TempDir())
	students := []models.Student{
		{Username: "ana", GitHubUsername: "ana"},
		{Username: "bob", GitHubUsername: "bob"},
	}

	require.NoError(t, os.MkdirAll(service.RepoPath("CS101", "ana"), 0o750))

	statuses := service.Statuses("CS101", students)

	require.Len(t, statuses, 2)
	assert.True(t, statuses[0].Cloned)
	assert.Equal(t, service.RepoPath("CS101", "ana"), statuses[0].Path)
	assert.False(t, statuses[1].Cloned)
}

func TestRunGit(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	service := NewService(t.TempDir())
	ctx := context.Background()

	t.Run("version", func(t *testing.T) {
		output, err := service.runGit(ctx, "", "--version")
		require.NoError(t, err)
		assert.Contains(t, output, "git version")
	})

	t.Run("failure includes stderr", func(t *testing.T) {
		_, err := service.runGit(ctx, t.TempDir(), "rev-parse", "--git-dir")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "git rev-parse failed")
	})
}

func TestTerminalCommand(t *testing.T) {
	origGoos := goos
	defer func() { goos = origGoos }()

	t.Run("tmux wins when inside tmux", func(t *testing.T) {
		t.Setenv("TMUX", "/tmp/tmux-1000/default,1234,0")
		name, args, err := terminalCommand("/repos/CS101/ana")
		require.NoError(t, err)
		assert.Equal(t, "tmux", name)
		assert.Equal(t, []string{"new-window", "-c", "/repos/CS101/ana"}, args)
	})

	t.Run("per platform", func(t *testing.T) {
		t.Setenv("TMUX", "")
		tests := []struct {
			goos string
			name string
			args []string
		}{
			{"darwin", "open", []string{"-a", "Terminal", "/repos/CS101/ana"}},
			{"linux", "gnome-terminal", []string{"--working-directory=/repos/CS101/ana"}},
			{"windows", "cmd", []string{"/C", "start", "cmd", "/K", "cd", "/d", "/repos/CS101/ana"}},
		}
		for _, tt := range tests {
			goos = tt.goos
			name, args, err := terminalCommand("/repos/CS101/ana")
			require.NoError(t, err, tt.goos)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.args, args)
		}
	})

	t.Run("unsupported platform", func(t *testing.T) {
		t.Setenv("TMUX", "")
		goos = "plan9"
		_, _, err := terminalCommand("/repos/CS101/ana")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not supported on plan9")
	})
}
