package screen

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/asp2131/rusty-scv/internal/models"
	"github.com/asp2131/rusty-scv/internal/theme"
)

func testContext(class *models.Class) Context {
	name := theme.DefaultName()
	return Context{
		Class:          class,
		Theme:          theme.GetTheme(name),
		ThemeName:      name,
		ShowIcons:      true,
		Spinner:        "*",
		AnimationSpeed: 1.0,
		FrameRate:      60,
		DataDir:        "/tmp/scv-test",
		ReposDir:       "/tmp/scv-test/repos",
	}
}

func testClass() *models.Class {
	return &models.Class{ID: 7, Name: "CS101", CreatedAt: time.Now()}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyEnterMsg() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }

func keyEscMsg() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEsc} }

func tabKey() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyTab} }

// settle runs enough ticks for entrance animations to finish.
func settle(s Screen, ctx Context) {
	for range 20 {
		s.Tick(100*time.Millisecond, ctx)
	}
}

func TestKindRequiresClass(t *testing.T) {
	needsClass := []Kind{
		KindClassManagement, KindStudentManagement, KindAddStudents,
		KindRemoveStudent, KindRepositoryManagement, KindGitHubActivity,
		KindWeekView, KindLatestActivity, KindConfirmDeleteClass,
	}
	for _, kind := range needsClass {
		if !kind.RequiresClass() {
			t.Errorf("%s should require a class", kind)
		}
	}

	standalone := []Kind{KindMainMenu, KindClassSelection, KindCreateClass, KindSettings}
	for _, kind := range standalone {
		if kind.RequiresClass() {
			t.Errorf("%s should not require a class", kind)
		}
	}
}

func TestKindStringIsUnique(t *testing.T) {
	seen := make(map[string]Kind)
	for kind := KindMainMenu; kind <= KindConfirmDeleteClass; kind++ {
		name := kind.String()
		if name == "unknown" {
			t.Errorf("kind %d has no name", kind)
		}
		if prev, ok := seen[name]; ok {
			t.Errorf("kinds %d and %d share the name %q", prev, kind, name)
		}
		seen[name] = kind
	}
}
