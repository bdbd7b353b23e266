package app

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/asp2131/rusty-scv/internal/theme"
)

// bannerDuration is how long a success or error banner stays up
// before the frame clock retires it.
const bannerDuration = 3 * time.Second

// banner is the router-owned transient overlay for ShowSuccess and
// ShowError intents. Screens never hold a reference to it; they emit
// intents and the router mutates this.
type banner struct {
	text  string
	isErr bool
	until time.Time
}

func (b *banner) showSuccess(text string) {
	b.text = text
	b.isErr = false
	b.until = time.Now().Add(bannerDuration)
}

func (b *banner) showError(text string) {
	b.text = text
	b.isErr = true
	b.until = time.Now().Add(bannerDuration)
}

// expire clears the banner once its deadline passed.
func (b *banner) expire(now time.Time) {
	if b.text != "" && now.After(b.until) {
		b.text = ""
	}
}

func (b *banner) active() bool {
	return b.text != ""
}

// view renders the banner wrapped to the surface width.
func (b *banner) view(thm *theme.Theme, width int) string {
	if !b.active() {
		return ""
	}

	color := thm.SuccessFg
	label := "✓ "
	if b.isErr {
		color = thm.ErrorFg
		label = "✗ "
	}

	wrapWidth := width - 6
	if wrapWidth < 10 {
		wrapWidth = 10
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Foreground(color).
		Padding(0, 1).
		Render(label + wordwrap.String(b.text, wrapWidth))
}
