package runtime

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gammazero/workerpool"
	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
)

type delayedTask struct {
	key string
	due time.Time
	seq uint64
	fn  func()
}

func (t *delayedTask) run() {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("task %s panic: %v", t.key, r)
		}
	}()
	t.fn()
}

/**
 * scheduler keeps at most one pending task per key: scheduling a key again
 * replaces the previous task, which is how debouncing works. Due tasks are
 * fired by runOnce, one after another, either inline or on a single worker,
 * so two tasks never run at the same time.
 */
type scheduler struct {
	mu sync.Mutex

	now   func() time.Time
	seq   uint64
	tasks map[string]*delayedTask

	// nil means due tasks run inline in runOnce
	wp *workerpool.WorkerPool
}

func newScheduler(now func() time.Time, asyncFlag bool) *scheduler {
	s := &scheduler{now: now, tasks: make(map[string]*delayedTask)}
	if asyncFlag {
		s.wp = workerpool.New(1)
	}
	return s
}

func (s *scheduler) schedule(key string, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.tasks[key] = &delayedTask{key: key, due: s.now().Add(delay), seq: s.seq, fn: fn}
}

func (s *scheduler) cancel(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[key]; !exists {
		return false
	}
	delete(s.tasks, key)
	return true
}

func (s *scheduler) pending(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.tasks[key]
	return exists
}

// runOnce fires every task whose due time has passed, earliest first.
func (s *scheduler) runOnce() int {
	s.mu.Lock()
	now := s.now()
	due := make([]*delayedTask, 0, len(s.tasks))
	for key, t := range s.tasks {
		if t.due.After(now) {
			continue
		}
		due = append(due, t)
		delete(s.tasks, key)
	}
	s.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].seq < due[j].seq
		}
		return due[i].due.Before(due[j].due)
	})

	for _, t := range due {
		if s.wp != nil {
			s.wp.Submit(t.run)
		} else {
			t.run()
		}
	}
	return len(due)
}

// stopWait drops pending tasks and waits for fired ones to finish.
func (s *scheduler) stopWait(ctx context.Context) error {
	s.mu.Lock()
	s.tasks = make(map[string]*delayedTask)
	s.mu.Unlock()

	if s.wp == nil {
		return nil
	}

	doneCh := make(chan struct{})
	go func() {
		s.wp.StopWait()
		close(doneCh)
	}()
	select {
	case <-doneCh:
		return nil
	case <-ctx.Done():
		return errors.Annotatef(ctx.Err(), "wait for running tasks")
	}
}
