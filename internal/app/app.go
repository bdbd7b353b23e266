// Package app owns the screen navigation and animation runtime: the
// navigation stack, the per-frame clock, the async task registry, and
// the event router that ties screens to the store, GitHub, and git
// collaborators.
package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/asp2131/rusty-scv/internal/anim"
	"github.com/asp2131/rusty-scv/internal/app/screen"
	"github.com/asp2131/rusty-scv/internal/config"
	"github.com/asp2131/rusty-scv/internal/github"
	"github.com/asp2131/rusty-scv/internal/gitops"
	"github.com/asp2131/rusty-scv/internal/log"
	"github.com/asp2131/rusty-scv/internal/models"
	"github.com/asp2131/rusty-scv/internal/store"
	"github.com/asp2131/rusty-scv/internal/theme"
)

// Model is the bubbletea model for the whole application. All UI
// state lives here and mutates only on the update goroutine;
// collaborator calls run as commands and come back as messages.
type Model struct {
	cfg        *config.AppConfig
	configPath string
	thm        *theme.Theme

	// Collaborators
	store *store.Store
	gh    *github.Client
	git   *gitops.Service
	watch *gitops.RepoWatchService

	// Runtime
	stack   *navStack
	tasks   *taskRegistry
	clock   *anim.Clock
	spinner spinner.Model
	banner  banner
	help    helpOverlay

	// Session context, rebuilt into a screen.Context each cycle.
	selected *models.Class

	width    int
	height   int
	quitting bool

	ctx    context.Context
	cancel context.CancelFunc
}

// NewModel wires the collaborators and seeds the stack with the main
// menu. configPath is the --config-file value, empty for the default
// location.
func NewModel(cfg *config.AppConfig, configPath string) *Model {
	ctx, cancel := context.WithCancel(context.Background())

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		cfg:        cfg,
		configPath: configPath,
		thm:        theme.GetTheme(cfg.Theme),
		store:      store.New(cfg.DataDir),
		gh:         github.NewClient(config.ResolveGitHubToken(cfg)),
		git:        gitops.NewService(cfg.ReposDir),
		tasks:      newTaskRegistry(),
		clock:      anim.NewClock(cfg.AnimationSpeed),
		spinner:    sp,
		ctx:        ctx,
		cancel:     cancel,
	}
	sp.Style = lipgloss.NewStyle().Foreground(m.thm.Accent)
	m.spinner = sp

	if cfg.AutoRefresh {
		watch, err := gitops.NewRepoWatchService(cfg.ReposDir)
		if err != nil {
			log.Printf("repo watch disabled: %v", err)
		} else {
			m.watch = watch
		}
	}

	root, err := newScreen(screen.KindMainMenu, m.screenContext())
	if err != nil {
		// The main menu needs no context; this cannot happen.
		panic(err)
	}
	m.stack = newNavStack(root)
	return m
}

// screenContext rebuilds the read-only session context screens get on
// construction and on every tick.
func (m *Model) screenContext() screen.Context {
	return screen.Context{
		Class:          m.selected,
		Theme:          m.thm,
		ThemeName:      m.cfg.Theme,
		ShowIcons:      m.cfg.ShowIcons,
		Spinner:        m.spinner.View(),
		AnimationSpeed: m.cfg.AnimationSpeed,
		FrameRate:      m.cfg.FrameRate,
		DataDir:        m.cfg.DataDir,
		ReposDir:       m.cfg.ReposDir,
	}
}

// frameCmd schedules the next animation frame at the configured rate.
func (m *Model) frameCmd() tea.Cmd {
	rate := m.cfg.FrameRate
	if rate <= 0 {
		rate = 60
	}
	return tea.Tick(time.Second/time.Duration(rate), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Init starts the frame clock, the spinner, and the repos watcher.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.frameCmd(), m.spinner.Tick, m.watchCmd())
}

// Update is the single dispatch site of the event router.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case frameMsg:
		return m.handleFrame(time.Time(msg))

	case taskResultMsg:
		return m, m.handleTaskResult(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case repoWatchMsg:
		return m.handleRepoWatch()
	}

	return m, nil
}

// handleKey routes one key press: the help overlay swallows everything
// while visible; otherwise the topmost screen gets the key and its
// intent, if any, is applied to the stack.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		m.cancel()
		return m, tea.Quit
	}

	if m.help.visible {
		m.help.handleKey(msg)
		return m, nil
	}
	if msg.String() == "?" && !m.topTakesText() {
		m.help.toggle(m.width, m.height)
		return m, nil
	}

	slot := m.stack.TopSlot()
	top := m.stack.Top()
	ev := top.HandleKey(msg)
	return m, m.applyEvent(ev, slot, top)
}

// topTakesText reports whether the topmost screen owns a text input,
// in which case printable keys belong to it.
func (m *Model) topTakesText() bool {
	switch m.stack.Top().Kind() {
	case screen.KindCreateClass, screen.KindAddStudents:
		return true
	default:
		return false
	}
}

// handleFrame is one tick: expire the banner, advance the topmost
// screen's animations, start any data load it asked for, and schedule
// the next frame. Paused screens beneath the top do not tick.
func (m *Model) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	m.banner.expire(now)
	delta := m.clock.Tick(now)

	slot := m.stack.TopSlot()
	top := m.stack.Top()
	cmds := []tea.Cmd{m.frameCmd()}
	if req := top.Tick(delta, m.screenContext()); req != screen.RequestNone {
		if cmd := m.startRequest(req, slot, top); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

// handleRepoWatch refreshes clone status when checkouts changed on
// disk and the repository screen is visible, then re-arms the wait.
func (m *Model) handleRepoWatch() (tea.Model, tea.Cmd) {
	if m.watch != nil {
		m.watch.ResetWaiting()
	}
	if m.stack.Top().Kind() == screen.KindRepositoryManagement {
		m.stack.Top().Refresh()
	}
	return m, m.watchCmd()
}

// View renders the topmost screen with the banner overlay above it.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	if m.help.visible {
		return m.help.view(m.thm, m.width, m.height)
	}

	if !m.banner.active() {
		return m.stack.Top().View(m.width, m.height)
	}

	bannerView := m.banner.view(m.thm, m.width)
	contentHeight := m.height - lipgloss.Height(bannerView)
	if contentHeight < 0 {
		contentHeight = 0
	}
	return bannerView + "\n" + m.stack.Top().View(m.width, contentHeight)
}

// Close releases resources owned by the model. Call after the program
// returns.
func (m *Model) Close() {
	m.cancel()
	if m.watch != nil {
		_ = m.watch.Close()
	}
}

// Selected returns the session's selected class, if any.
func (m *Model) Selected() *models.Class {
	return m.selected
}
