// Package theme provides theme definitions and management for the TUI.
package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines all colors used in the application UI.
type Theme struct {
	Background lipgloss.Color
	Surface    lipgloss.Color
	Accent     lipgloss.Color
	AccentFg   lipgloss.Color // Foreground color for text on Accent background
	Secondary  lipgloss.Color
	Border     lipgloss.Color
	MutedFg    lipgloss.Color
	TextFg     lipgloss.Color
	SuccessFg  lipgloss.Color
	WarnFg     lipgloss.Color
	ErrorFg    lipgloss.Color
	InfoFg     lipgloss.Color
	Highlight  lipgloss.Color
	Selection  lipgloss.Color

	// Commit-activity heat colors, from no commits to many.
	ActivityNone   lipgloss.Color
	ActivityLow    lipgloss.Color
	ActivityMedium lipgloss.Color
	ActivityHigh   lipgloss.Color
	ActivityMax    lipgloss.Color
}

// Theme names.
const (
	NeonNightName   = "neon-night"
	CyberpunkName   = "cyberpunk"
	OceanBreezeName = "ocean-breeze"
	ForestDarkName  = "forest-dark"
	SunsetGlowName  = "sunset-glow"
)

// NeonNight returns the default theme (deep black background, electric
// blue and hot pink accents).
func NeonNight() *Theme {
	return &Theme{
		Background:     lipgloss.Color("#0A0A0A"), // Deep space
		Surface:        lipgloss.Color("#1A1A1A"), // Dark gray panels
		Accent:         lipgloss.Color("#00D4FF"), // Electric blue
		AccentFg:       lipgloss.Color("#0A0A0A"), // Dark text on accent
		Secondary:      lipgloss.Color("#FF1B8D"), // Hot pink
		Border:         lipgloss.Color("#444444"), // Medium gray
		MutedFg:        lipgloss.Color("#AAAAAA"), // Light gray
		TextFg:         lipgloss.Color("#FFFFFF"), // White
		SuccessFg:      lipgloss.Color("#00FF94"), // Neon green
		WarnFg:         lipgloss.Color("#FFB800"), // Amber
		ErrorFg:        lipgloss.Color("#FF6B6B"), // Coral red
		InfoFg:         lipgloss.Color("#00D4FF"), // Electric blue
		Highlight:      lipgloss.Color("#FF1B8D"), // Hot pink
		Selection:      lipgloss.Color("#00D4FF"), // Electric blue
		ActivityNone:   lipgloss.Color("#282828"),
		ActivityLow:    lipgloss.Color("#0064FF"),
		ActivityMedium: lipgloss.Color("#00B4FF"),
		ActivityHigh:   lipgloss.Color("#00FFB4"),
		ActivityMax:    lipgloss.Color("#00FF50"),
	}
}

// Cyberpunk returns a high-contrast magenta/green terminal theme.
func Cyberpunk() *Theme {
	return &Theme{
		Background:     lipgloss.Color("#000000"), // Black
		Surface:        lipgloss.Color("#140014"), // Dark purple
		Accent:         lipgloss.Color("#FF00FF"), // Magenta
		AccentFg:       lipgloss.Color("#000000"), // Dark text on accent
		Secondary:      lipgloss.Color("#00FFFF"), // Cyan
		Border:         lipgloss.Color("#FF00FF"), // Magenta
		MutedFg:        lipgloss.Color("#80FF80"), // Light green
		TextFg:         lipgloss.Color("#00FF00"), // Green
		SuccessFg:      lipgloss.Color("#00FF00"), // Lime green
		WarnFg:         lipgloss.Color("#FFA500"), // Orange
		ErrorFg:        lipgloss.Color("#FF0000"), // Red
		InfoFg:         lipgloss.Color("#00FFFF"), // Cyan
		Highlight:      lipgloss.Color("#FFFF00"), // Yellow
		Selection:      lipgloss.Color("#FF00FF"), // Magenta
		ActivityNone:   lipgloss.Color("#320032"),
		ActivityLow:    lipgloss.Color("#FF0064"),
		ActivityMedium: lipgloss.Color("#FF00C8"),
		ActivityHigh:   lipgloss.Color("#FF64FF"),
		ActivityMax:    lipgloss.Color("#FFC8FF"),
	}
}

// OceanBreeze returns a calm blue/turquoise theme.
func OceanBreeze() *Theme {
	return &Theme{
		Background:     lipgloss.Color("#0C141F"), // Dark blue
		Surface:        lipgloss.Color("#17202A"), // Navy
		Accent:         lipgloss.Color("#3498DB"), // Blue
		AccentFg:       lipgloss.Color("#0C141F"), // Dark text on accent
		Secondary:      lipgloss.Color("#1ABC9C"), // Turquoise
		Border:         lipgloss.Color("#34495E"), // Dark gray-blue
		MutedFg:        lipgloss.Color("#95A5A6"), // Gray-blue
		TextFg:         lipgloss.Color("#ECF0F1"), // Light blue-white
		SuccessFg:      lipgloss.Color("#2ECC71"), // Green
		WarnFg:         lipgloss.Color("#F1C40F"), // Yellow
		ErrorFg:        lipgloss.Color("#E74C3C"), // Red
		InfoFg:         lipgloss.Color("#3498DB"), // Blue
		Highlight:      lipgloss.Color("#1ABC9C"), // Turquoise
		Selection:      lipgloss.Color("#3498DB"), // Blue
		ActivityNone:   lipgloss.Color("#1E2832"),
		ActivityLow:    lipgloss.Color("#3498DB"),
		ActivityMedium: lipgloss.Color("#1ABC9C"),
		ActivityHigh:   lipgloss.Color("#2ECC71"),
		ActivityMax:    lipgloss.Color("#9BE398"),
	}
}

// ForestDark returns a muted green theme.
func ForestDark() *Theme {
	return &Theme{
		Background:     lipgloss.Color("#122012"), // Dark green
		Surface:        lipgloss.Color("#1C2A1C"), // Forest green
		Accent:         lipgloss.Color("#4CAF50"), // Green
		AccentFg:       lipgloss.Color("#122012"), // Dark text on accent
		Secondary:      lipgloss.Color("#8BC34A"), // Light green
		Border:         lipgloss.Color("#385723"), // Dark green border
		MutedFg:        lipgloss.Color("#A5D6A7"), // Light green
		TextFg:         lipgloss.Color("#E8F5E9"), // Light green-white
		SuccessFg:      lipgloss.Color("#4CAF50"), // Green
		WarnFg:         lipgloss.Color("#FFC107"), // Amber
		ErrorFg:        lipgloss.Color("#F44336"), // Red
		InfoFg:         lipgloss.Color("#2196F3"), // Blue
		Highlight:      lipgloss.Color("#8BC34A"), // Light green
		Selection:      lipgloss.Color("#4CAF50"), // Green
		ActivityNone:   lipgloss.Color("#283228"),
		ActivityLow:    lipgloss.Color("#4CAF50"),
		ActivityMedium: lipgloss.Color("#8BC34A"),
		ActivityHigh:   lipgloss.Color("#AED581"),
		ActivityMax:    lipgloss.Color("#DCEDC8"),
	}
}

// SunsetGlow returns a warm orange/amber theme.
func SunsetGlow() *Theme {
	return &Theme{
		Background:     lipgloss.Color("#211108"), // Dark brown
		Surface:        lipgloss.Color("#33190C"), // Brown
		Accent:         lipgloss.Color("#FF5722"), // Orange
		AccentFg:       lipgloss.Color("#211108"), // Dark text on accent
		Secondary:      lipgloss.Color("#FF9800"), // Amber
		Border:         lipgloss.Color("#795548"), // Brown border
		MutedFg:        lipgloss.Color("#BCAAA4"), // Warm gray
		TextFg:         lipgloss.Color("#FFF5EE"), // Warm white
		SuccessFg:      lipgloss.Color("#8BC34A"), // Light green
		WarnFg:         lipgloss.Color("#FFC107"), // Yellow
		ErrorFg:        lipgloss.Color("#F44336"), // Red
		InfoFg:         lipgloss.Color("#673AB7"), // Purple
		Highlight:      lipgloss.Color("#FF9800"), // Amber
		Selection:      lipgloss.Color("#FF5722"), // Orange
		ActivityNone:   lipgloss.Color("#3C281E"),
		ActivityLow:    lipgloss.Color("#FF5722"),
		ActivityMedium: lipgloss.Color("#FF9800"),
		ActivityHigh:   lipgloss.Color("#FFC107"),
		ActivityMax:    lipgloss.Color("#FFEB3B"),
	}
}

// GetTheme returns a theme by name, or NeonNight if not found.
func GetTheme(name string) *Theme {
	switch name {
	case CyberpunkName:
		return Cyberpunk()
	case OceanBreezeName:
		return OceanBreeze()
	case ForestDarkName:
		return ForestDark()
	case SunsetGlowName:
		return SunsetGlow()
	default:
		return NeonNight()
	}
}

// DefaultName returns the default theme name.
func DefaultName() string {
	return NeonNightName
}

// AvailableThemes returns a list of available theme names.
func AvailableThemes() []string {
	return []string{
		NeonNightName,
		CyberpunkName,
		OceanBreezeName,
		ForestDarkName,
		SunsetGlowName,
	}
}

// ActivityLevel buckets a daily commit count for heat coloring.
type ActivityLevel int

const (
	ActivityLevelNone ActivityLevel = iota
	ActivityLevelLow
	ActivityLevelMedium
	ActivityLevelHigh
	ActivityLevelMax
)

// ActivityLevelForCount maps a commit count to its heat bucket.
func ActivityLevelForCount(count int) ActivityLevel {
	switch {
	case count <= 0:
		return ActivityLevelNone
	case count <= 2:
		return ActivityLevelLow
	case count <= 5:
		return ActivityLevelMedium
	case count <= 10:
		return ActivityLevelHigh
	default:
		return ActivityLevelMax
	}
}

// ActivityColor returns the heat color for the given level.
func (t *Theme) ActivityColor(level ActivityLevel) lipgloss.Color {
	switch level {
	case ActivityLevelLow:
		return t.ActivityLow
	case ActivityLevelMedium:
		return t.ActivityMedium
	case ActivityLevelHigh:
		return t.ActivityHigh
	case ActivityLevelMax:
		return t.ActivityMax
	default:
		return t.ActivityNone
	}
}

// Scale multiplies each RGB channel of a #RRGGBB color by factor,
// clamped to [0,1]. Colors that are not hex strings come back as-is.
func Scale(c lipgloss.Color, factor float64) lipgloss.Color {
	s := string(c)
	if len(s) != 7 || s[0] != '#' {
		return c
	}
	if factor < 0 {
		factor = 0
	}
	if factor > 1 {
		factor = 1
	}

	var r, g, b int
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return c
	}
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X",
		int(float64(r)*factor),
		int(float64(g)*factor),
		int(float64(b)*factor),
	))
}
