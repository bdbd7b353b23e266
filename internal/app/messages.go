package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/asp2131/rusty-scv/internal/app/screen"
	"github.com/asp2131/rusty-scv/internal/models"
)

// Message types for the Bubble Tea loop.
type (
	// frameMsg drives the animation clock at the configured frame rate.
	frameMsg time.Time

	// taskResultMsg carries one finished collaborator call back to the
	// loop. The payload is inert data; the token gates delivery.
	taskResultMsg struct {
		token   uint64
		payload any
	}

	// repoWatchMsg reports filesystem changes under the repos tree.
	repoWatchMsg struct{}
)

// Router-level task outcomes. These never reach a screen's Apply on
// success; the router owns the resulting navigation and banner.
type (
	classCreatedOutcome struct {
		name string
		err  string
	}

	classDeletedOutcome struct {
		name string
		err  string
	}

	studentsAddedOutcome struct {
		added int
		errs  []string
	}

	studentRemovedOutcome struct {
		username string
		err      string
	}

	gitOpOutcome struct {
		action   string // "clone", "pull", "clean"
		username string
		err      string
	}

	cloneAllOutcome struct {
		results []models.OpResult
	}

	terminalOutcome struct {
		err string
	}

	exportOutcome struct {
		path string
		err  string
	}
)

// handleTaskResult gates a finished task through the registry and
// routes its payload. Results whose owning screen is gone are dropped;
// an input-produced navigation earlier in the same cycle already
// mutated the stack, so the identity check here realizes the
// input-first ordering guarantee.
func (m *Model) handleTaskResult(msg taskResultMsg) tea.Cmd {
	task, ok := m.tasks.Resolve(msg.token)
	if !ok {
		return nil
	}
	if m.stack.At(task.slot) != task.screen {
		return nil
	}

	switch payload := msg.payload.(type) {
	case screen.ClassesResult,
		screen.StudentsResult,
		screen.CountResult,
		screen.RepoStatusesResult,
		screen.WeekActivityResult,
		screen.LatestActivityResult,
		screen.DiskUsageResult:
		task.screen.Apply(payload)
		return nil
	case classCreatedOutcome:
		return m.handleClassCreated(task, payload)
	case classDeletedOutcome:
		return m.handleClassDeleted(task, payload)
	case studentsAddedOutcome:
		return m.handleStudentsAdded(task, payload)
	case studentRemovedOutcome:
		return m.handleStudentRemoved(task, payload)
	case gitOpOutcome:
		return m.handleGitOp(task, payload)
	case cloneAllOutcome:
		return m.handleCloneAll(task, payload)
	case terminalOutcome:
		if payload.err != "" {
			m.banner.showError(payload.err)
		}
		return nil
	case exportOutcome:
		if payload.err != "" {
			m.banner.showError(payload.err)
			return nil
		}
		m.banner.showSuccess("Exported activity to " + payload.path)
		return nil
	default:
		return nil
	}
}

// handleClassCreated finishes the create-class flow: on success the
// prompt pops and the class list beneath refreshes (pushed first when
// the prompt was opened straight from the main menu); on failure the
// prompt keeps the typed input and shows the message.
func (m *Model) handleClassCreated(task pendingTask, outcome classCreatedOutcome) tea.Cmd {
	if outcome.err != "" {
		task.screen.Apply(screen.CreateClassResult{Err: outcome.err})
		return nil
	}

	m.popScreen()
	if m.stack.Top().Kind() != screen.KindClassSelection {
		if list, err := newScreen(screen.KindClassSelection, m.screenContext()); err == nil {
			m.stack.Push(list)
		}
	}
	m.stack.Top().Refresh()
	m.banner.showSuccess("Created class: " + outcome.name)
	return nil
}

// handleClassDeleted pops the confirm modal and the deleted class's
// management screen, landing on a refreshed class list.
func (m *Model) handleClassDeleted(task pendingTask, outcome classDeletedOutcome) tea.Cmd {
	if outcome.err != "" {
		task.screen.Apply(screen.DeleteClassResult{Err: outcome.err})
		return nil
	}

	m.selected = nil
	m.popScreen() // confirm modal
	if m.stack.Top().Kind() == screen.KindClassManagement {
		m.popScreen()
	}
	m.stack.Top().Refresh()
	m.banner.showSuccess("Deleted class: " + outcome.name)
	return nil
}

func (m *Model) handleStudentsAdded(task pendingTask, outcome studentsAddedOutcome) tea.Cmd {
	if outcome.added == 0 && len(outcome.errs) > 0 {
		task.screen.Apply(screen.AddStudentsResult{Err: outcome.errs[0]})
		return nil
	}

	m.popScreen()
	m.stack.Top().Refresh()
	label := fmt.Sprintf("Added %d students", outcome.added)
	if outcome.added == 1 {
		label = "Added 1 student"
	}
	if len(outcome.errs) > 0 {
		m.banner.showError(fmt.Sprintf("%s; %d failed: %s", label, len(outcome.errs), outcome.errs[0]))
		return nil
	}
	m.banner.showSuccess(label)
	return nil
}

func (m *Model) handleStudentRemoved(task pendingTask, outcome studentRemovedOutcome) tea.Cmd {
	if outcome.err != "" {
		m.banner.showError(outcome.err)
		return nil
	}
	task.screen.Refresh()
	m.banner.showSuccess("Removed student: " + outcome.username)
	return nil
}

func (m *Model) handleGitOp(task pendingTask, outcome gitOpOutcome) tea.Cmd {
	task.screen.Refresh()
	if outcome.err != "" {
		m.banner.showError(outcome.err)
		return nil
	}
	switch outcome.action {
	case "clone":
		m.banner.showSuccess("Cloned " + outcome.username)
	case "pull":
		m.banner.showSuccess("Pulled latest for " + outcome.username)
	case "clean":
		m.banner.showSuccess("Cleaned " + outcome.username)
	}
	return nil
}

func (m *Model) handleCloneAll(task pendingTask, outcome cloneAllOutcome) tea.Cmd {
	task.screen.Refresh()
	cloned, failed := 0, 0
	firstErr := ""
	for _, result := range outcome.results {
		if result.Ok() {
			cloned++
			continue
		}
		failed++
		if firstErr == "" {
			firstErr = result.Err
		}
	}
	if failed > 0 {
		m.banner.showError(fmt.Sprintf("Cloned %d, %d failed: %s", cloned, failed, firstErr))
		return nil
	}
	m.banner.showSuccess(fmt.Sprintf("Cloned %d repositories", cloned))
	return nil
}
