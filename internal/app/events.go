package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/asp2131/rusty-scv/internal/anim"
	"github.com/asp2131/rusty-scv/internal/app/screen"
	"github.com/asp2131/rusty-scv/internal/config"
	"github.com/asp2131/rusty-scv/internal/log"
	"github.com/asp2131/rusty-scv/internal/models"
	"github.com/asp2131/rusty-scv/internal/theme"
)

// applyEvent consumes the single intent the topmost screen emitted
// this cycle. slot and scr identify the emitting screen so async work
// it triggers is registered against its stack position.
func (m *Model) applyEvent(ev *screen.Event, slot int, scr screen.Screen) tea.Cmd {
	if ev == nil {
		return nil
	}
	log.Printf("event %s from %s", ev.Op, scr.Kind())

	switch ev.Op {
	case screen.OpNavigate:
		m.pushScreen(ev.Target, ev.Class)
		return nil
	case screen.OpBack:
		m.goBack()
		return nil
	case screen.OpQuit:
		m.quitting = true
		m.cancel()
		return tea.Quit
	case screen.OpShowError:
		m.banner.showError(ev.Message)
		return nil
	case screen.OpShowSuccess:
		m.banner.showSuccess(ev.Message)
		return nil
	case screen.OpRefreshData:
		scr.Refresh()
		return nil
	case screen.OpSelectClass:
		m.pushScreen(screen.KindClassManagement, ev.Class)
		return nil
	case screen.OpCreateClass:
		return m.createClassCmd(slot, scr, ev.Name)
	case screen.OpDeleteClass:
		return m.deleteClassCmd(slot, scr, ev.ID, ev.Name)
	case screen.OpAddStudents:
		return m.addStudentsCmd(slot, scr, ev.Class.ID, ev.Names)
	case screen.OpRemoveStudent:
		return m.removeStudentCmd(slot, scr, *ev.Student)
	case screen.OpCloneRepo:
		return m.gitOpCmd(slot, scr, "clone", *ev.Class, *ev.Student)
	case screen.OpPullRepo:
		return m.gitOpCmd(slot, scr, "pull", *ev.Class, *ev.Student)
	case screen.OpCleanRepo:
		return m.gitOpCmd(slot, scr, "clean", *ev.Class, *ev.Student)
	case screen.OpCloneAllRepos:
		return m.cloneAllCmd(slot, scr, *ev.Class)
	case screen.OpOpenTerminal:
		return m.openTerminalCmd(slot, scr, *ev.Class, *ev.Student)
	case screen.OpExportActivity:
		return m.exportActivityCmd(slot, scr, *ev.Class, ev.Days, ev.Activities)
	case screen.OpSetTheme:
		m.setTheme(ev.Name)
		return nil
	case screen.OpSetAnimationSpeed:
		m.cfg.AnimationSpeed = ev.Value
		m.clock = anim.NewClock(ev.Value)
		m.saveConfig()
		return nil
	case screen.OpSetFrameRate:
		m.cfg.FrameRate = int(ev.Value)
		m.saveConfig()
		return nil
	default:
		return nil
	}
}

// pushScreen constructs and pushes a screen of the given kind. A
// construction failure (missing class context) keeps the current
// screen and surfaces the message instead of aborting anything.
func (m *Model) pushScreen(kind screen.Kind, class *models.Class) {
	if class != nil {
		m.selected = class
	}
	scr, err := newScreen(kind, m.screenContext())
	if err != nil {
		log.Printf("push %s rejected: %v", kind, err)
		m.banner.showError(err.Error())
		return
	}
	m.stack.Push(scr)
}

// goBack pops the topmost screen and refreshes the revealed one so
// its cached data catches up with whatever the popped screen changed.
func (m *Model) goBack() {
	if _, ok := m.popScreen(); ok {
		m.stack.Top().Refresh()
	}
}

// popScreen removes the topmost screen and forgets its pending tasks.
func (m *Model) popScreen() (screen.Screen, bool) {
	popped, ok := m.stack.Pop()
	if ok {
		m.tasks.DropScreen(popped)
	}
	return popped, ok
}

func (m *Model) setTheme(name string) {
	normalized := config.NormalizeThemeName(name)
	if normalized == "" {
		m.banner.showError("Unknown theme: " + name)
		return
	}
	m.cfg.Theme = normalized
	m.thm = theme.GetTheme(normalized)
	m.saveConfig()
}

func (m *Model) saveConfig() {
	if err := config.SaveConfig(m.cfg, m.configPath); err != nil {
		m.banner.showError("Could not save config: " + err.Error())
	}
}
