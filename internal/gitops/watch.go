package gitops

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/asp2131/rusty-scv/internal/log"
)

// RepoWatchDebounce is the minimum gap between refreshes triggered by
// filesystem changes under the repos directory.
const RepoWatchDebounce = 600 * time.Millisecond

// RepoWatchService watches the cloned repositories tree and coalesces
// bursts of filesystem events (a clone touches thousands of files)
// into single refresh signals for the UI.
type RepoWatchService struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	events      chan struct{}
	done        chan struct{}
	lastRefresh time.Time
	waiting     bool
	closed      bool
}

// NewRepoWatchService starts watching reposDir and every directory
// below it. The directory is created if missing so the watch can be
// established before the first clone.
func NewRepoWatchService(reposDir string) (*RepoWatchService, error) {
	if err := os.MkdirAll(reposDir, 0o750); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	s := &RepoWatchService{
		watcher: watcher,
		events:  make(chan struct{}, 1),
		done:    make(chan struct{}),
	}

	if err := s.addWatchTree(reposDir); err != nil {
		watcher.Close()
		return nil, err
	}

	go s.run()
	return s, nil
}

// NextEvent returns a channel that receives when repositories changed
// on disk. The caller owns scheduling: after consuming an event it
// calls ResetWaiting once the refresh completed.
func (s *RepoWatchService) NextEvent() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.waiting = true
	return s.events
}

// ResetWaiting marks the previous event as handled so new filesystem
// activity can signal again.
func (s *RepoWatchService) ResetWaiting() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.waiting = false
}

// Signal requests a refresh, dropping the event if one is already
// pending.
func (s *RepoWatchService) Signal() {
	select {
	case s.events <- struct{}{}:
	default:
	}
}

// ShouldRefresh reports whether enough time passed since the last
// refresh, and records the new refresh time when it did.
func (s *RepoWatchService) ShouldRefresh() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if now.Sub(s.lastRefresh) < RepoWatchDebounce {
		return false
	}
	s.lastRefresh = now
	return true
}

// Close stops the watcher goroutine and releases the inotify handles.
func (s *RepoWatchService) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	close(s.done)
	return s.watcher.Close()
}

func (s *RepoWatchService) run() {
	for {
		select {
		case <-s.done:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			s.handleEvent(event)
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("repo watch error: %v", err)
		}
	}
}

func (s *RepoWatchService) handleEvent(event fsnotify.Event) {
	if shouldIgnorePath(event.Name) {
		return
	}

	// New directories (fresh clones in particular) must join the watch
	// tree or later changes inside them go unseen.
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := s.addWatchTree(event.Name); err != nil {
				log.Printf("repo watch add %s: %v", event.Name, err)
			}
		}
	}

	if !s.ShouldRefresh() {
		return
	}
	s.Signal()
}

func (s *RepoWatchService) addWatchTree(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Races with clone/clean are expected; skip what vanished.
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if shouldIgnorePath(path) {
			return filepath.SkipDir
		}
		if err := s.watcher.Add(path); err != nil {
			log.Printf("repo watch add %s: %v", path, err)
		}
		return nil
	})
}

// shouldIgnorePath filters out git internals, which churn constantly
// during clones and pulls without representing content changes worth a
// separate refresh.
func shouldIgnorePath(path string) bool {
	base := filepath.Base(path)
	if base == ".git" {
		return true
	}
	sep := string(filepath.Separator)
	return strings.Contains(path, sep+".git"+sep)
}
