package screen

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	devicons "github.com/epilande/go-devicons"

	"github.com/asp2131/rusty-scv/internal/models"
	"github.com/asp2131/rusty-scv/internal/theme"
)

// repoDirInfo satisfies fs.FileInfo for icon lookup on directories
// that may not exist locally yet.
type repoDirInfo struct{ name string }

func (i repoDirInfo) Name() string       { return i.name }
func (i repoDirInfo) Size() int64        { return 0 }
func (i repoDirInfo) Mode() os.FileMode  { return os.ModeDir | 0o755 }
func (i repoDirInfo) ModTime() time.Time { return time.Time{} }
func (i repoDirInfo) IsDir() bool        { return true }
func (i repoDirInfo) Sys() any           { return nil }

func repoIcon(name string) string {
	if name == "" {
		return ""
	}
	return devicons.IconForInfo(repoDirInfo{name: name}).Icon
}

const (
	repoModeRoster = iota
	repoModeActions
)

// RepositoryManagement drives git operations for a class roster. It
// has two modes: the roster with per-student clone state, and an
// action menu for one selected student.
type RepositoryManagement struct {
	thm       *theme.Theme
	class     models.Class
	spinner   string
	showIcons bool

	mode     int
	roster   *Menu
	actions  *Menu
	statuses []models.RepoStatus
	selected models.Student
	loaded   bool

	loading      bool
	needsRefresh bool
	errMsg       string
}

// NewRepositoryManagement builds the roster view; clone states load
// on the first tick.
func NewRepositoryManagement(ctx Context) *RepositoryManagement {
	return &RepositoryManagement{
		thm:          ctx.Theme,
		class:        *ctx.Class,
		showIcons:    ctx.ShowIcons,
		needsRefresh: true,
	}
}

// Kind returns the screen kind.
func (s *RepositoryManagement) Kind() Kind { return KindRepositoryManagement }

// HandleKey routes keys to the active mode.
func (s *RepositoryManagement) HandleKey(msg tea.KeyMsg) *Event {
	if s.mode == repoModeActions {
		return s.handleActionsKey(msg)
	}
	return s.handleRosterKey(msg)
}

func (s *RepositoryManagement) handleRosterKey(msg tea.KeyMsg) *Event {
	switch msg.String() {
	case keyUp, "k":
		if s.roster != nil {
			s.roster.MoveUp()
		}
		return nil
	case keyDown, "j":
		if s.roster != nil {
			s.roster.MoveDown()
		}
		return nil
	case keyEnter:
		if s.roster == nil {
			return nil
		}
		return s.dispatchRoster(s.roster.Cursor())
	case "a":
		if len(s.statuses) == 0 {
			return nil
		}
		return &Event{Op: OpCloneAllRepos, Class: &s.class}
	case "r":
		return RefreshData()
	case keyEsc:
		return GoBack()
	}
	return nil
}

func (s *RepositoryManagement) dispatchRoster(index int) *Event {
	switch {
	case index == 0:
		if len(s.statuses) == 0 {
			return nil
		}
		return &Event{Op: OpCloneAllRepos, Class: &s.class}
	case index-1 < len(s.statuses):
		s.selected = s.statuses[index-1].Student
		s.enterActions()
		return nil
	default:
		return GoBack()
	}
}

func (s *RepositoryManagement) enterActions() {
	s.mode = repoModeActions
	s.actions = NewMenu([]MenuItem{
		{Title: "Clone Repository", Hotkey: "c"},
		{Title: "Pull Latest Changes", Hotkey: "p"},
		{Title: "Clean Repository", Desc: "discard local changes", Hotkey: "x", Danger: true},
		{Title: "Open in Terminal", Hotkey: "t"},
		{Title: "Back"},
	})
}

func (s *RepositoryManagement) handleActionsKey(msg tea.KeyMsg) *Event {
	switch msg.String() {
	case keyUp, "k":
		s.actions.MoveUp()
		return nil
	case keyDown, "j":
		s.actions.MoveDown()
		return nil
	case keyEnter:
		return s.dispatchAction(s.actions.Cursor())
	case keyEsc:
		s.mode = repoModeRoster
		return nil
	default:
		if idx := s.actions.HotkeyIndex(msg.String()); idx >= 0 {
			s.actions.SetCursor(idx)
			return s.dispatchAction(idx)
		}
	}
	return nil
}

func (s *RepositoryManagement) dispatchAction(index int) *Event {
	student := s.selected
	switch index {
	case 0:
		return &Event{Op: OpCloneRepo, Student: &student, Class: &s.class}
	case 1:
		return &Event{Op: OpPullRepo, Student: &student, Class: &s.class}
	case 2:
		return &Event{Op: OpCleanRepo, Student: &student, Class: &s.class}
	case 3:
		return &Event{Op: OpOpenTerminal, Student: &student, Class: &s.class}
	default:
		s.mode = repoModeRoster
		return nil
	}
}

// Tick animates the active menu and keeps clone states fresh.
func (s *RepositoryManagement) Tick(delta time.Duration, ctx Context) DataRequest {
	s.thm = ctx.Theme
	s.spinner = ctx.Spinner
	s.showIcons = ctx.ShowIcons
	if s.mode == repoModeActions && s.actions != nil {
		s.actions.Tick(delta)
	} else if s.roster != nil {
		s.roster.Tick(delta)
	}
	if s.needsRefresh && !s.loading {
		s.loading = true
		return RequestRepoStatuses
	}
	return RequestNone
}

// Apply installs loaded clone states.
func (s *RepositoryManagement) Apply(result any) {
	r, ok := result.(RepoStatusesResult)
	if !ok {
		return
	}
	s.loading = false
	s.needsRefresh = false
	if r.Err != "" {
		s.errMsg = r.Err
		return
	}
	s.errMsg = ""
	s.statuses = r.Statuses
	s.loaded = true
	s.rebuildRoster()
}

func (s *RepositoryManagement) rebuildRoster() {
	cursor := 0
	if s.roster != nil {
		cursor = s.roster.Cursor()
	}

	items := make([]MenuItem, 0, len(s.statuses)+2)
	items = append(items, MenuItem{Title: "Clone All Repositories", Hotkey: "a"})
	for _, status := range s.statuses {
		title := status.Student.Username
		if s.showIcons {
			title = repoIcon(status.Student.GitHubUsername) + " " + title
		}
		desc := notClonedMark(s.showIcons)
		if status.Cloned {
			desc = clonedMark(s.showIcons)
		}
		items = append(items, MenuItem{Title: title, Desc: desc})
	}
	items = append(items, MenuItem{Title: "Back"})

	s.roster = NewMenu(items)
	s.roster.SetCursor(cursor)
}

// Refresh marks the clone states stale.
func (s *RepositoryManagement) Refresh() {
	s.needsRefresh = true
}

// View renders the active mode.
func (s *RepositoryManagement) View(width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle(s.thm).Render("Repositories: " + s.class.Name))
	b.WriteString("\n\n")

	switch {
	case s.errMsg != "":
		b.WriteString(errorStyle(s.thm).Render(s.errMsg))
		b.WriteString("\n\n")
		b.WriteString(footerStyle(s.thm).Render("r to retry • Esc to go back"))
	case !s.loaded:
		b.WriteString(loadingLine(s.thm, s.spinner, "Checking repositories..."))
	case s.mode == repoModeActions:
		b.WriteString(s.actionsView())
	default:
		b.WriteString(s.rosterView())
	}

	return place(width, height, b.String())
}

func (s *RepositoryManagement) rosterView() string {
	var b strings.Builder
	if len(s.statuses) == 0 {
		b.WriteString(subtitleStyle(s.thm).Render("No students in this class"))
		b.WriteString("\n\n")
		b.WriteString(footerStyle(s.thm).Render("Esc to go back"))
		return b.String()
	}
	cloned := 0
	for _, status := range s.statuses {
		if status.Cloned {
			cloned++
		}
	}
	b.WriteString(subtitleStyle(s.thm).Render(fmt.Sprintf("%d of %d cloned", cloned, len(s.statuses))))
	b.WriteString("\n\n")
	b.WriteString(s.roster.View(s.thm))
	b.WriteString("\n\n")
	b.WriteString(footerStyle(s.thm).Render("Enter to select • a clone all • r refresh • Esc back"))
	return b.String()
}

func (s *RepositoryManagement) actionsView() string {
	var b strings.Builder
	b.WriteString(textStyle(s.thm).Render("Student: " + s.selected.Username))
	b.WriteString("\n\n")
	b.WriteString(s.actions.View(s.thm))
	b.WriteString("\n\n")
	b.WriteString(footerStyle(s.thm).Render("Enter to run • Esc back to roster"))
	return b.String()
}
