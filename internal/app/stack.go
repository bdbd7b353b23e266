package app

import (
	"github.com/asp2131/rusty-scv/internal/app/screen"
)

// navStack is the ordered sequence of live screens. The root screen is
// permanent: the stack is never empty while the program runs, and only
// the topmost screen receives input, animates, and renders.
type navStack struct {
	screens []screen.Screen
}

func newNavStack(root screen.Screen) *navStack {
	return &navStack{screens: []screen.Screen{root}}
}

// Push makes scr the new topmost screen.
func (s *navStack) Push(scr screen.Screen) {
	s.screens = append(s.screens, scr)
}

// Pop removes the topmost screen and reports whether anything was
// removed. Popping the root is a no-op.
func (s *navStack) Pop() (screen.Screen, bool) {
	if len(s.screens) <= 1 {
		return nil, false
	}
	top := s.screens[len(s.screens)-1]
	s.screens = s.screens[:len(s.screens)-1]
	return top, true
}

// Top returns the screen that receives input and renders.
func (s *navStack) Top() screen.Screen {
	return s.screens[len(s.screens)-1]
}

// TopSlot returns the topmost screen's slot index.
func (s *navStack) TopSlot() int {
	return len(s.screens) - 1
}

// At returns the screen at slot, or nil when the slot is gone.
func (s *navStack) At(slot int) screen.Screen {
	if slot < 0 || slot >= len(s.screens) {
		return nil
	}
	return s.screens[slot]
}

// Len returns the number of live screens.
func (s *navStack) Len() int {
	return len(s.screens)
}
