package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shirou/gopsutil/v4/disk"

	"github.com/asp2131/rusty-scv/internal/app/screen"
	"github.com/asp2131/rusty-scv/internal/export"
	"github.com/asp2131/rusty-scv/internal/github"
	"github.com/asp2131/rusty-scv/internal/log"
	"github.com/asp2131/rusty-scv/internal/models"
)

// beginTask registers a task owned by the screen at slot and wraps the
// work in a command that carries the correlation token back with the
// result. The work function runs off the update goroutine and must
// only return inert data.
func (m *Model) beginTask(kind taskKind, slot int, scr screen.Screen, work func() any) tea.Cmd {
	token := m.tasks.Begin(kind, slot, scr)
	return func() tea.Msg {
		return taskResultMsg{token: token, payload: work()}
	}
}

// startRequest turns a screen's data request into a collaborator call.
// The emitting screen already set its loading flag; the result arrives
// as a taskResultMsg on a later tick.
func (m *Model) startRequest(req screen.DataRequest, slot int, scr screen.Screen) tea.Cmd {
	class := m.selected
	if class == nil && req != screen.RequestClasses && req != screen.RequestDiskUsage {
		log.Printf("data request %d without a selected class", req)
		return nil
	}

	switch req {
	case screen.RequestClasses:
		return m.beginTask(taskDatabase, slot, scr, m.loadClasses)
	case screen.RequestStudents:
		classID := class.ID
		return m.beginTask(taskDatabase, slot, scr, func() any {
			students, err := m.store.ListStudents(classID)
			if err != nil {
				return screen.StudentsResult{Err: err.Error()}
			}
			return screen.StudentsResult{Students: students}
		})
	case screen.RequestStudentCount:
		classID := class.ID
		return m.beginTask(taskDatabase, slot, scr, func() any {
			count, err := m.store.CountStudents(classID)
			if err != nil {
				return screen.CountResult{Err: err.Error()}
			}
			return screen.CountResult{Count: count}
		})
	case screen.RequestRepoStatuses:
		snapshot := *class
		return m.beginTask(taskDatabase, slot, scr, func() any {
			students, err := m.store.ListStudents(snapshot.ID)
			if err != nil {
				return screen.RepoStatusesResult{Err: err.Error()}
			}
			return screen.RepoStatusesResult{Statuses: m.git.Statuses(snapshot.Name, students)}
		})
	case screen.RequestWeekActivity:
		snapshot := *class
		return m.beginTask(taskGitHub, slot, scr, func() any {
			return m.loadWeekActivity(snapshot)
		})
	case screen.RequestLatestActivity:
		snapshot := *class
		return m.beginTask(taskGitHub, slot, scr, func() any {
			return m.loadLatestActivity(snapshot)
		})
	case screen.RequestDiskUsage:
		dataDir := m.cfg.DataDir
		return m.beginTask(taskDatabase, slot, scr, func() any {
			usage, err := disk.Usage(dataDir)
			if err != nil {
				return screen.DiskUsageResult{Path: dataDir, Err: err.Error()}
			}
			return screen.DiskUsageResult{Path: dataDir, Used: usage.Used, Total: usage.Total}
		})
	default:
		return nil
	}
}

func (m *Model) loadClasses() any {
	classes, err := m.store.ListClasses()
	if err != nil {
		return screen.ClassesResult{Err: err.Error()}
	}
	counts := make(map[int64]int, len(classes))
	for _, class := range classes {
		count, err := m.store.CountStudents(class.ID)
		if err != nil {
			return screen.ClassesResult{Err: err.Error()}
		}
		counts[class.ID] = count
	}
	return screen.ClassesResult{Classes: classes, Counts: counts}
}

func (m *Model) loadWeekActivity(class models.Class) any {
	students, err := m.store.ListStudents(class.ID)
	if err != nil {
		return screen.WeekActivityResult{Err: err.Error()}
	}

	now := time.Now()
	days := make([]string, 0, 5)
	for _, day := range github.PastWeekdays(now, 5) {
		days = append(days, github.WeekdayLabel(day))
	}

	activities := make([]models.WeekActivity, 0, len(students))
	for _, student := range students {
		activities = append(activities, m.gh.WeekActivity(m.ctx, student, now))
	}
	return screen.WeekActivityResult{Days: days, Activities: activities}
}

func (m *Model) loadLatestActivity(class models.Class) any {
	students, err := m.store.ListStudents(class.ID)
	if err != nil {
		return screen.LatestActivityResult{Err: err.Error()}
	}

	activities := make([]models.WeekActivity, 0, len(students))
	for _, student := range students {
		activity := models.WeekActivity{Student: student}
		latest, err := m.gh.LatestCommit(m.ctx, student.GitHubUsername)
		switch {
		case err != nil:
			activity.Err = err.Error()
		case latest != nil:
			activity.LatestCommit = &latest.Date
		}
		activities = append(activities, activity)
	}
	return screen.LatestActivityResult{Activities: activities}
}

// Op commands. Each snapshots its inputs before the goroutine starts.

func (m *Model) createClassCmd(slot int, scr screen.Screen, name string) tea.Cmd {
	return m.beginTask(taskDatabase, slot, scr, func() any {
		class, err := m.store.CreateClass(name)
		if err != nil {
			return classCreatedOutcome{name: name, err: err.Error()}
		}
		return classCreatedOutcome{name: class.Name}
	})
}

func (m *Model) deleteClassCmd(slot int, scr screen.Screen, id int64, name string) tea.Cmd {
	return m.beginTask(taskDatabase, slot, scr, func() any {
		if err := m.store.DeleteClass(id); err != nil {
			return classDeletedOutcome{name: name, err: err.Error()}
		}
		return classDeletedOutcome{name: name}
	})
}

func (m *Model) addStudentsCmd(slot int, scr screen.Screen, classID int64, names []string) tea.Cmd {
	return m.beginTask(taskDatabase, slot, scr, func() any {
		outcome := studentsAddedOutcome{}
		for _, name := range names {
			if _, err := m.store.AddStudent(classID, name); err != nil {
				outcome.errs = append(outcome.errs, err.Error())
				continue
			}
			outcome.added++
		}
		return outcome
	})
}

func (m *Model) removeStudentCmd(slot int, scr screen.Screen, student models.Student) tea.Cmd {
	return m.beginTask(taskDatabase, slot, scr, func() any {
		if err := m.store.DeleteStudent(student.ID); err != nil {
			return studentRemovedOutcome{username: student.Username, err: err.Error()}
		}
		return studentRemovedOutcome{username: student.Username}
	})
}

func (m *Model) gitOpCmd(slot int, scr screen.Screen, action string, class models.Class, student models.Student) tea.Cmd {
	return m.beginTask(taskGitOp, slot, scr, func() any {
		var err error
		switch action {
		case "clone":
			err = m.git.Clone(m.ctx, class.Name, student)
		case "pull":
			err = m.git.Pull(m.ctx, class.Name, student)
		case "clean":
			err = m.git.Clean(m.ctx, class.Name, student)
		}
		outcome := gitOpOutcome{action: action, username: student.Username}
		if err != nil {
			outcome.err = err.Error()
		}
		return outcome
	})
}

func (m *Model) cloneAllCmd(slot int, scr screen.Screen, class models.Class) tea.Cmd {
	return m.beginTask(taskGitOp, slot, scr, func() any {
		students, err := m.store.ListStudents(class.ID)
		if err != nil {
			return cloneAllOutcome{results: []models.OpResult{{Err: err.Error()}}}
		}
		return cloneAllOutcome{results: m.git.CloneAll(m.ctx, class.Name, students)}
	})
}

func (m *Model) openTerminalCmd(slot int, scr screen.Screen, class models.Class, student models.Student) tea.Cmd {
	return m.beginTask(taskGitOp, slot, scr, func() any {
		if err := m.git.OpenTerminal(m.ctx, class.Name, student); err != nil {
			return terminalOutcome{err: err.Error()}
		}
		return terminalOutcome{}
	})
}

func (m *Model) exportActivityCmd(slot int, scr screen.Screen, class models.Class, days []string, activities []models.WeekActivity) tea.Cmd {
	outDir := m.cfg.DataDir
	return m.beginTask(taskDatabase, slot, scr, func() any {
		path, err := export.WriteWeekActivity(class.Name, days, activities, outDir)
		if err != nil {
			return exportOutcome{err: err.Error()}
		}
		return exportOutcome{path: path}
	})
}

// watchCmd blocks on the repos watcher until checkouts change on
// disk. Re-armed by Update after every repoWatchMsg.
func (m *Model) watchCmd() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	events := m.watch.NextEvent()
	done := m.ctx.Done()
	return func() tea.Msg {
		select {
		case <-events:
			return repoWatchMsg{}
		case <-done:
			return nil
		}
	}
}
