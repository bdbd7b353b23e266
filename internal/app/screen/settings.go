package screen

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/asp2131/rusty-scv/internal/anim"
	"github.com/asp2131/rusty-scv/internal/theme"
)

// Settings rows, in display order.
const (
	settingTheme = iota
	settingAnimationSpeed
	settingFrameRate
	settingCount
)

// Animation-speed adjustment bounds. The config layer clamps again on
// save; these keep the UI arrows inside the same range.
const (
	speedStep = 0.25
	speedMin  = 0.25
	speedMax  = 5.0
	rateStep  = 10
	rateMin   = 10
	rateMax   = 120
)

// Settings adjusts the theme, animation speed, and frame rate, and
// shows the resolved data paths with their disk usage. Every change is
// emitted as an intent; the router applies and persists it.
type Settings struct {
	thm     *theme.Theme
	spinner string

	cursor    int
	themeName string
	speed     float64
	rate      int
	dataDir   string
	reposDir  string

	usage        *DiskUsageResult
	loading      bool
	needsRefresh bool
}

// NewSettings builds the settings screen seeded from the session
// context; disk usage loads on the first tick.
func NewSettings(ctx Context) *Settings {
	return &Settings{
		thm:          ctx.Theme,
		themeName:    ctx.ThemeName,
		speed:        ctx.AnimationSpeed,
		rate:         ctx.FrameRate,
		dataDir:      ctx.DataDir,
		reposDir:     ctx.ReposDir,
		needsRefresh: true,
	}
}

// Kind returns the screen kind.
func (s *Settings) Kind() Kind { return KindSettings }

// HandleKey moves between rows or adjusts the selected value.
func (s *Settings) HandleKey(msg tea.KeyMsg) *Event {
	switch msg.String() {
	case keyUp, "k":
		if s.cursor > 0 {
			s.cursor--
		}
		return nil
	case keyDown, "j":
		if s.cursor < settingCount-1 {
			s.cursor++
		}
		return nil
	case "right", "l", keyEnter:
		return s.adjust(1)
	case "left", "h":
		return s.adjust(-1)
	case keyEsc, "q":
		return GoBack()
	}
	return nil
}

// adjust shifts the selected row by direction and emits the matching
// intent. The local copy changes too so the UI reacts before the
// router's next context rebuild.
func (s *Settings) adjust(direction int) *Event {
	switch s.cursor {
	case settingTheme:
		s.themeName = cycleTheme(s.themeName, direction)
		return &Event{Op: OpSetTheme, Name: s.themeName}
	case settingAnimationSpeed:
		s.speed = anim.Clamp(s.speed+float64(direction)*speedStep, speedMin, speedMax)
		return &Event{Op: OpSetAnimationSpeed, Value: s.speed}
	case settingFrameRate:
		s.rate = clampRate(s.rate + direction*rateStep)
		return &Event{Op: OpSetFrameRate, Value: float64(s.rate)}
	}
	return nil
}

func cycleTheme(current string, direction int) string {
	names := theme.AvailableThemes()
	for i, name := range names {
		if name == current {
			next := (i + direction + len(names)) % len(names)
			return names[next]
		}
	}
	return theme.DefaultName()
}

func clampRate(v int) int {
	switch {
	case v < rateMin:
		return rateMin
	case v > rateMax:
		return rateMax
	default:
		return v
	}
}

// Tick mirrors the session context and keeps disk usage fresh.
func (s *Settings) Tick(delta time.Duration, ctx Context) DataRequest {
	s.thm = ctx.Theme
	s.spinner = ctx.Spinner
	s.themeName = ctx.ThemeName
	s.speed = ctx.AnimationSpeed
	s.rate = ctx.FrameRate
	s.dataDir = ctx.DataDir
	s.reposDir = ctx.ReposDir
	if s.needsRefresh && !s.loading {
		s.loading = true
		return RequestDiskUsage
	}
	return RequestNone
}

// Apply installs a disk usage reading.
func (s *Settings) Apply(result any) {
	r, ok := result.(DiskUsageResult)
	if !ok {
		return
	}
	s.loading = false
	s.needsRefresh = false
	s.usage = &r
}

// Refresh marks the disk usage stale.
func (s *Settings) Refresh() {
	s.needsRefresh = true
}

// View renders the adjustable rows and resolved paths.
func (s *Settings) View(width, height int) string {
	rows := []struct {
		label string
		value string
	}{
		{"Theme", s.themeName},
		{"Animation speed", fmt.Sprintf("%.2fx", s.speed)},
		{"Frame rate", fmt.Sprintf("%d fps", s.rate)},
	}

	labelStyle := textStyle(s.thm).Width(18)
	valueStyle := lipgloss.NewStyle().Foreground(s.thm.Accent).Bold(true)

	var b strings.Builder
	b.WriteString(titleStyle(s.thm).Render("Settings"))
	b.WriteString("\n\n")

	for i, row := range rows {
		marker := "  "
		value := valueStyle.Render("  " + row.value + "  ")
		if i == s.cursor {
			marker = "> "
			value = valueStyle.Render("< " + row.value + " >")
		}
		b.WriteString(marker + labelStyle.Render(row.label) + value)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(subtitleStyle(s.thm).Render("Data dir:  " + s.dataDir))
	b.WriteString("\n")
	b.WriteString(subtitleStyle(s.thm).Render("Repos dir: " + s.reposDir))
	b.WriteString("\n")
	b.WriteString(s.usageLine())
	b.WriteString("\n\n")
	b.WriteString(footerStyle(s.thm).Render("j/k to move • h/l to adjust • Esc to go back"))

	return place(width, height, b.String())
}

func (s *Settings) usageLine() string {
	switch {
	case s.usage == nil:
		return loadingLine(s.thm, s.spinner, "Reading disk usage...")
	case s.usage.Err != "":
		return errorStyle(s.thm).Render("Disk usage: " + s.usage.Err)
	default:
		return subtitleStyle(s.thm).Render(fmt.Sprintf(
			"Disk free:  %s of %s", humanBytes(s.usage.Total-s.usage.Used), humanBytes(s.usage.Total)))
	}
}

// humanBytes formats a byte count in the largest whole unit.
func humanBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
