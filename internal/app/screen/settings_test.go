package screen

import (
	"strings"
	"testing"
	"time"
)

func TestSettingsCycleTheme(t *testing.T) {
	scr := NewSettings(testContext(nil))

	ev := scr.HandleKey(keyRunes("l"))
	if ev == nil || ev.Op != OpSetTheme || ev.Name != "cyberpunk" {
		t.Fatalf("expected theme change to cyberpunk, got %+v", ev)
	}

	// Cycling left from the first theme wraps to the last.
	scr.HandleKey(keyRunes("h"))
	ev = scr.HandleKey(keyRunes("h"))
	if ev == nil || ev.Op != OpSetTheme || ev.Name != "sunset-glow" {
		t.Fatalf("expected wrap to sunset-glow, got %+v", ev)
	}
}

func TestSettingsAdjustAnimationSpeed(t *testing.T) {
	scr := NewSettings(testContext(nil))
	scr.HandleKey(keyRunes("j"))

	ev := scr.HandleKey(keyRunes("l"))
	if ev == nil || ev.Op != OpSetAnimationSpeed || ev.Value != 1.25 {
		t.Fatalf("expected speed 1.25, got %+v", ev)
	}

	for range 40 {
		ev = scr.HandleKey(keyRunes("l"))
	}
	if ev == nil || ev.Value != speedMax {
		t.Fatalf("speed should clamp at %v, got %+v", speedMax, ev)
	}
}

func TestSettingsAdjustFrameRate(t *testing.T) {
	scr := NewSettings(testContext(nil))
	scr.HandleKey(keyRunes("j"))
	scr.HandleKey(keyRunes("j"))

	ev := scr.HandleKey(keyRunes("l"))
	if ev == nil || ev.Op != OpSetFrameRate || ev.Value != 70 {
		t.Fatalf("expected rate 70, got %+v", ev)
	}

	for range 20 {
		ev = scr.HandleKey(keyRunes("h"))
	}
	if ev == nil || ev.Value != rateMin {
		t.Fatalf("rate should clamp at %v, got %+v", rateMin, ev)
	}
}

func TestSettingsDiskUsage(t *testing.T) {
	ctx := testContext(nil)
	scr := NewSettings(ctx)

	if req := scr.Tick(time.Millisecond, ctx); req != RequestDiskUsage {
		t.Fatalf("first tick should request disk usage, got %v", req)
	}
	if req := scr.Tick(time.Millisecond, ctx); req != RequestNone {
		t.Fatalf("no second request while one is in flight, got %v", req)
	}

	scr.Apply(DiskUsageResult{Path: ctx.DataDir, Used: 40 << 30, Total: 100 << 30})
	view := scr.View(80, 24)
	if !strings.Contains(view, "Disk free:") {
		t.Error("view should show the disk usage line")
	}
	if !strings.Contains(view, ctx.DataDir) {
		t.Error("view should show the resolved data dir")
	}
}

func TestSettingsTickMirrorsContext(t *testing.T) {
	ctx := testContext(nil)
	scr := NewSettings(ctx)

	ctx.ThemeName = "forest-dark"
	ctx.AnimationSpeed = 2.0
	ctx.FrameRate = 30
	scr.Tick(time.Millisecond, ctx)

	view := scr.View(80, 24)
	if !strings.Contains(view, "forest-dark") {
		t.Error("view should show the theme from the session context")
	}
	if !strings.Contains(view, "2.00x") {
		t.Error("view should show the speed from the session context")
	}
	if !strings.Contains(view, "30 fps") {
		t.Error("view should show the frame rate from the session context")
	}
}

func TestHumanBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{in: 512, want: "512 B"},
		{in: 2048, want: "2.0 KB"},
		{in: 5 << 30, want: "5.0 GB"},
	}
	for _, tt := range tests {
		if got := humanBytes(tt.in); got != tt.want {
			t.Errorf("humanBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
