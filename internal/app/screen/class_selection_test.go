package screen

import (
	"strings"
	"testing"
	"time"

	"github.com/asp2131/rusty-scv/internal/models"
)

func classesFixture() ClassesResult {
	return ClassesResult{
		Classes: []models.Class{
			{ID: 1, Name: "CS101"},
			{ID: 2, Name: "CS202"},
		},
		Counts: map[int64]int{1: 1, 2: 12},
	}
}

func TestClassSelectionLoadsOnFirstTick(t *testing.T) {
	ctx := testContext(nil)
	scr := NewClassSelection(ctx)

	if req := scr.Tick(time.Millisecond, ctx); req != RequestClasses {
		t.Fatalf("first tick should request classes, got %v", req)
	}
	if req := scr.Tick(time.Millisecond, ctx); req != RequestNone {
		t.Fatalf("no second request while one is in flight, got %v", req)
	}
}

func TestClassSelectionSelect(t *testing.T) {
	ctx := testContext(nil)
	scr := NewClassSelection(ctx)
	scr.Tick(time.Millisecond, ctx)
	scr.Apply(classesFixture())

	scr.HandleKey(keyRunes("j"))
	ev := scr.HandleKey(keyEnterMsg())
	if ev == nil || ev.Op != OpSelectClass {
		t.Fatalf("expected selection event, got %+v", ev)
	}
	if ev.Class == nil || ev.Class.Name != "CS202" {
		t.Fatalf("expected CS202 selected, got %+v", ev.Class)
	}
}

func TestClassSelectionEmptyList(t *testing.T) {
	ctx := testContext(nil)
	scr := NewClassSelection(ctx)
	scr.Tick(time.Millisecond, ctx)
	scr.Apply(ClassesResult{})

	if ev := scr.HandleKey(keyEnterMsg()); ev != nil {
		t.Fatalf("enter on an empty list should be inert, got %+v", ev)
	}
	if !strings.Contains(scr.View(80, 24), "No classes yet.") {
		t.Error("view should render the empty placeholder")
	}

	ev := scr.HandleKey(keyRunes("n"))
	if ev == nil || ev.Op != OpNavigate || ev.Target != KindCreateClass {
		t.Fatalf("n should navigate to create-class, got %+v", ev)
	}
}

func TestClassSelectionViewShowsCounts(t *testing.T) {
	ctx := testContext(nil)
	scr := NewClassSelection(ctx)
	scr.Tick(time.Millisecond, ctx)
	scr.Apply(classesFixture())
	settle(scr, ctx)

	view := scr.View(80, 24)
	if !strings.Contains(view, "CS101") || !strings.Contains(view, "1 student") {
		t.Error("view should show CS101 with its singular count")
	}
	if !strings.Contains(view, "CS202") || !strings.Contains(view, "12 students") {
		t.Error("view should show CS202 with its plural count")
	}
}

func TestClassSelectionErrorAndRetry(t *testing.T) {
	ctx := testContext(nil)
	scr := NewClassSelection(ctx)
	scr.Tick(time.Millisecond, ctx)
	scr.Apply(ClassesResult{Err: "open store: permission denied"})

	if !strings.Contains(scr.View(80, 24), "permission denied") {
		t.Error("view should surface the load error")
	}

	ev := scr.HandleKey(keyRunes("r"))
	if ev == nil || ev.Op != OpRefreshData {
		t.Fatalf("r should request a reload, got %+v", ev)
	}
}
