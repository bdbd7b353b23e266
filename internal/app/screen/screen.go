// Package screen implements the application's screen variants: each
// screen owns its widgets and cached data, turns key presses into
// events, and advances its own animations once per tick. Screens never
// perform I/O; they emit data requests the router executes.
package screen

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/asp2131/rusty-scv/internal/models"
	"github.com/asp2131/rusty-scv/internal/theme"
)

// Screen is one full-terminal view. HandleKey returns at most one
// event per key; Tick advances animations and may ask for data; View
// renders without mutating state. Results arrive through Apply after
// the router has matched their correlation token.
type Screen interface {
	// Kind returns the screen's variant identifier.
	Kind() Kind

	// HandleKey processes one key press. Unrecognized keys return nil.
	HandleKey(msg tea.KeyMsg) *Event

	// Tick advances owned animations by delta and returns a data
	// request when the screen needs a load and none is in flight.
	Tick(delta time.Duration, ctx Context) DataRequest

	// Apply delivers an asynchronous result to the screen.
	Apply(result any)

	// Refresh marks the screen's cached data stale so the next Tick
	// requests a reload.
	Refresh()

	// View renders the screen at the given size.
	View(width, height int) string
}

// Kind identifies a screen variant.
type Kind int

// Screen variant constants.
const (
	KindMainMenu Kind = iota
	KindClassSelection
	KindCreateClass
	KindClassManagement
	KindStudentManagement
	KindAddStudents
	KindRemoveStudent
	KindRepositoryManagement
	KindGitHubActivity
	KindWeekView
	KindLatestActivity
	KindSettings
	KindConfirmDeleteClass
)

// String returns a human-readable name for the screen kind.
func (k Kind) String() string {
	switch k {
	case KindMainMenu:
		return "main-menu"
	case KindClassSelection:
		return "class-selection"
	case KindCreateClass:
		return "create-class"
	case KindClassManagement:
		return "class-management"
	case KindStudentManagement:
		return "student-management"
	case KindAddStudents:
		return "add-students"
	case KindRemoveStudent:
		return "remove-student"
	case KindRepositoryManagement:
		return "repository-management"
	case KindGitHubActivity:
		return "github-activity"
	case KindWeekView:
		return "week-view"
	case KindLatestActivity:
		return "latest-activity"
	case KindSettings:
		return "settings"
	case KindConfirmDeleteClass:
		return "confirm-delete-class"
	default:
		return "unknown"
	}
}

// RequiresClass reports whether screens of this kind need a class in
// their construction context.
func (k Kind) RequiresClass() bool {
	switch k {
	case KindClassManagement, KindStudentManagement, KindAddStudents,
		KindRemoveStudent, KindRepositoryManagement, KindGitHubActivity,
		KindWeekView, KindLatestActivity, KindConfirmDeleteClass:
		return true
	default:
		return false
	}
}

// Context is the read-only session state the router hands to screens
// at construction and again on every tick. Screens keep at most a
// copy; the router rebuilds it each cycle.
type Context struct {
	Class          *models.Class
	Theme          *theme.Theme
	ThemeName      string
	ShowIcons      bool
	Spinner        string // current spinner frame for loading states
	AnimationSpeed float64
	FrameRate      int
	DataDir        string
	ReposDir       string
}

// Op enumerates the intents a screen can emit.
type Op int

// Event operations.
const (
	OpNavigate Op = iota + 1
	OpBack
	OpQuit
	OpShowError
	OpShowSuccess
	OpRefreshData
	OpSelectClass
	OpCreateClass
	OpDeleteClass
	OpAddStudents
	OpRemoveStudent
	OpCloneRepo
	OpPullRepo
	OpCleanRepo
	OpCloneAllRepos
	OpOpenTerminal
	OpExportActivity
	OpSetTheme
	OpSetAnimationSpeed
	OpSetFrameRate
)

// String returns a human-readable name for the operation.
func (o Op) String() string {
	switch o {
	case OpNavigate:
		return "navigate"
	case OpBack:
		return "back"
	case OpQuit:
		return "quit"
	case OpShowError:
		return "show-error"
	case OpShowSuccess:
		return "show-success"
	case OpRefreshData:
		return "refresh-data"
	case OpSelectClass:
		return "select-class"
	case OpCreateClass:
		return "create-class"
	case OpDeleteClass:
		return "delete-class"
	case OpAddStudents:
		return "add-students"
	case OpRemoveStudent:
		return "remove-student"
	case OpCloneRepo:
		return "clone-repo"
	case OpPullRepo:
		return "pull-repo"
	case OpCleanRepo:
		return "clean-repo"
	case OpCloneAllRepos:
		return "clone-all-repos"
	case OpOpenTerminal:
		return "open-terminal"
	case OpExportActivity:
		return "export-activity"
	case OpSetTheme:
		return "set-theme"
	case OpSetAnimationSpeed:
		return "set-animation-speed"
	case OpSetFrameRate:
		return "set-frame-rate"
	default:
		return "unknown"
	}
}

// Event is a single navigation or data intent. A screen emits at most
// one per key press; the router consumes it exactly once.
type Event struct {
	Op      Op
	Target  Kind // destination for OpNavigate
	Class   *models.Class
	Student *models.Student
	Name    string   // class name, theme name
	Names   []string // usernames for OpAddStudents
	ID      int64    // class id for OpDeleteClass
	Message string   // banner text for OpShowError / OpShowSuccess
	Value   float64  // new setting for OpSetAnimationSpeed / OpSetFrameRate

	// Export payload: the table the user is looking at, carried so the
	// writer does not refetch.
	Days       []string
	Activities []models.WeekActivity
}

// NavigateTo builds a push intent toward the given kind.
func NavigateTo(target Kind) *Event {
	return &Event{Op: OpNavigate, Target: target}
}

// NavigateToClass builds a push intent carrying the class context the
// target requires.
func NavigateToClass(target Kind, class models.Class) *Event {
	c := class
	return &Event{Op: OpNavigate, Target: target, Class: &c}
}

// GoBack builds a pop intent.
func GoBack() *Event { return &Event{Op: OpBack} }

// Quit builds a terminate intent.
func Quit() *Event { return &Event{Op: OpQuit} }

// ShowError builds an error banner intent.
func ShowError(message string) *Event {
	return &Event{Op: OpShowError, Message: message}
}

// ShowSuccess builds a success banner intent.
func ShowSuccess(message string) *Event {
	return &Event{Op: OpShowSuccess, Message: message}
}

// RefreshData builds a reload intent for the emitting screen.
func RefreshData() *Event { return &Event{Op: OpRefreshData} }

// SelectClass builds a selection intent that also navigates to the
// class management screen.
func SelectClass(class models.Class) *Event {
	c := class
	return &Event{Op: OpSelectClass, Class: &c}
}

// DataRequest names the load a screen wants the router to run.
type DataRequest int

// Data requests a Tick can return. RequestNone means the screen has
// what it needs.
const (
	RequestNone DataRequest = iota
	RequestClasses
	RequestStudents
	RequestStudentCount
	RequestRepoStatuses
	RequestWeekActivity
	RequestLatestActivity
	RequestDiskUsage
)

// Result payloads delivered through Apply. Errors travel as strings so
// results stay inert data across the async boundary.
type (
	// ClassesResult carries the class list with per-class student counts.
	ClassesResult struct {
		Classes []models.Class
		Counts  map[int64]int
		Err     string
	}

	// StudentsResult carries a class roster.
	StudentsResult struct {
		Students []models.Student
		Err      string
	}

	// CountResult carries a student count.
	CountResult struct {
		Count int
		Err   string
	}

	// RepoStatusesResult carries local checkout states.
	RepoStatusesResult struct {
		Statuses []models.RepoStatus
		Err      string
	}

	// WeekActivityResult carries the weekday commit table.
	WeekActivityResult struct {
		Days       []string
		Activities []models.WeekActivity
		Err        string
	}

	// LatestActivityResult carries last-commit times per student.
	LatestActivityResult struct {
		Activities []models.WeekActivity
		Err        string
	}

	// DiskUsageResult carries data-directory usage.
	DiskUsageResult struct {
		Path  string
		Used  uint64
		Total uint64
		Err   string
	}

	// CreateClassResult is delivered on failure so the screen keeps the
	// typed input; successful creates navigate away instead.
	CreateClassResult struct {
		Err string
	}

	// AddStudentsResult is delivered on failure so the screen keeps the
	// typed input.
	AddStudentsResult struct {
		Err string
	}

	// DeleteClassResult is delivered on failure so the modal leaves its
	// waiting state; successful deletes pop the modal instead.
	DeleteClassResult struct {
		Err string
	}
)

// Key constants shared across variants.
const (
	keyEnter = "enter"
	keyEsc   = "esc"
	keyCtrlC = "ctrl+c"
	keyUp    = "up"
	keyDown  = "down"
)
