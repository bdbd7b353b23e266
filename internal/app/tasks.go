package app

import (
	"github.com/asp2131/rusty-scv/internal/app/screen"
)

// taskKind classifies an in-flight asynchronous operation.
type taskKind int

const (
	taskDatabase taskKind = iota
	taskGitHub
	taskGitOp
)

// pendingTask records one in-flight collaborator call: which slot
// issued it and which screen occupied that slot at the time. Delivery
// checks both, so a result whose owner was popped (or replaced by a
// different screen in the same slot) is discarded.
type pendingTask struct {
	kind   taskKind
	slot   int
	screen screen.Screen
}

// taskRegistry tracks in-flight tasks by correlation token. Tokens are
// only created and resolved on the update goroutine; task goroutines
// carry their token inside the result message and never touch the
// registry.
type taskRegistry struct {
	next    uint64
	pending map[uint64]pendingTask
}

func newTaskRegistry() *taskRegistry {
	return &taskRegistry{pending: make(map[uint64]pendingTask)}
}

// Begin registers a task for the screen at slot and returns its
// correlation token.
func (r *taskRegistry) Begin(kind taskKind, slot int, scr screen.Screen) uint64 {
	r.next++
	r.pending[r.next] = pendingTask{kind: kind, slot: slot, screen: scr}
	return r.next
}

// Resolve removes the token's entry and returns it. A token that was
// never registered (or already resolved) reports false; duplicate
// deliveries are dropped this way.
func (r *taskRegistry) Resolve(token uint64) (pendingTask, bool) {
	task, ok := r.pending[token]
	if ok {
		delete(r.pending, token)
	}
	return task, ok
}

// DropScreen forgets every pending task owned by scr. Called on pop;
// the task goroutines still run to completion, but their results no
// longer match a registry entry and fall on the floor.
func (r *taskRegistry) DropScreen(scr screen.Screen) {
	for token, task := range r.pending {
		if task.screen == scr {
			delete(r.pending, token)
		}
	}
}

// Outstanding reports the number of unresolved tasks.
func (r *taskRegistry) Outstanding() int {
	return len(r.pending)
}
