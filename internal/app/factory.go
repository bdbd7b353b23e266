package app

import (
	"fmt"

	"github.com/asp2131/rusty-scv/internal/app/screen"
)

// newScreen is the single construction site for screen variants. A
// kind that requires a class rejects a context without one; the caller
// keeps the current screen and surfaces the message instead of
// pushing.
func newScreen(kind screen.Kind, ctx screen.Context) (screen.Screen, error) {
	if kind.RequiresClass() && ctx.Class == nil {
		return nil, fmt.Errorf("screen %s requires a selected class", kind)
	}

	switch kind {
	case screen.KindMainMenu:
		return screen.NewMainMenu(ctx), nil
	case screen.KindClassSelection:
		return screen.NewClassSelection(ctx), nil
	case screen.KindCreateClass:
		return screen.NewCreateClass(ctx), nil
	case screen.KindClassManagement:
		return screen.NewClassManagement(ctx), nil
	case screen.KindStudentManagement:
		return screen.NewStudentManagement(ctx), nil
	case screen.KindAddStudents:
		return screen.NewAddStudents(ctx), nil
	case screen.KindRemoveStudent:
		return screen.NewRemoveStudent(ctx), nil
	case screen.KindRepositoryManagement:
		return screen.NewRepositoryManagement(ctx), nil
	case screen.KindGitHubActivity:
		return screen.NewGitHubActivity(ctx), nil
	case screen.KindWeekView:
		return screen.NewWeekView(ctx), nil
	case screen.KindLatestActivity:
		return screen.NewLatestActivity(ctx), nil
	case screen.KindSettings:
		return screen.NewSettings(ctx), nil
	case screen.KindConfirmDeleteClass:
		return screen.NewConfirmDeleteClass(ctx), nil
	default:
		return nil, fmt.Errorf("unknown screen kind %d", kind)
	}
}
