// Package sched runs one-shot deferred tasks: delayed message sends and
// standup flushes. A task fires on its own goroutine via time.AfterFunc,
// so no request handler sleeps holding anything; callers that need the
// original blocking contract wait on the task's Done channel instead.
package sched

import (
	"sync"
	"time"
)

// Task is a handle to one scheduled function. Done is closed after the
// function returns. There is no cancellation yet; a cancel would slot in
// here as a second channel without touching callers.
type Task struct {
	Done <-chan struct{}
}

// Scheduler tracks in-flight tasks so a graceful shutdown (or a test)
// can wait for them.
type Scheduler struct {
	wg sync.WaitGroup
}

func New() *Scheduler {
	return &Scheduler{}
}

// After schedules fn to run once d has elapsed. A non-positive delay
// fires immediately (still on a separate goroutine).
func (s *Scheduler) After(d time.Duration, fn func()) *Task {
	done := make(chan struct{})
	s.wg.Add(1)
	time.AfterFunc(d, func() {
		defer s.wg.Done()
		defer close(done)
		fn()
	})
	return &Task{Done: done}
}

// Wait blocks until every scheduled task has finished.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}
