package clock

import (
	"sort"
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
}

// Scheduler runs deferred callbacks. Callbacks are not cancellable once fired.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type Timer interface {
	Stop() bool
}

type RealClock struct{}

func NewRealClock() *RealClock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

func (c *RealClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// MockClock is a virtual clock. Deferred callbacks fire only from Advance/Set,
// in due-time order, on the caller's goroutine.
type MockClock struct {
	mu          sync.Mutex
	currentTime time.Time
	seq         int
	tasks       []*mockTask
}

type mockTask struct {
	clock *MockClock
	due   time.Time
	seq   int
	fn    func()
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{currentTime: t}
}

func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentTime
}

func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	c.currentTime = t
	c.mu.Unlock()
	c.fireDue()
}

func (c *MockClock) Add(d time.Duration) {
	c.Advance(d)
}

// Advance moves virtual time forward, firing every task that becomes due.
// A task is fired with the clock set to its due time, so callbacks that
// read Now() observe the scheduled instant.
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.currentTime.Add(d)
	c.mu.Unlock()

	for {
		task := c.popDue(target)
		if task == nil {
			break
		}
		task.fn()
	}

	c.mu.Lock()
	if target.After(c.currentTime) {
		c.currentTime = target
	}
	c.mu.Unlock()
}

func (c *MockClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	task := &mockTask{clock: c, due: c.currentTime.Add(d), seq: c.seq, fn: fn}
	c.tasks = append(c.tasks, task)
	return task
}

// Pending reports the number of scheduled tasks that have not fired.
func (c *MockClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tasks)
}

func (c *MockClock) fireDue() {
	c.mu.Lock()
	now := c.currentTime
	c.mu.Unlock()
	for {
		task := c.popDue(now)
		if task == nil {
			return
		}
		task.fn()
	}
}

func (c *MockClock) popDue(limit time.Time) *mockTask {
	c.mu.Lock()
	defer c.mu.Unlock()

	sort.SliceStable(c.tasks, func(i, j int) bool {
		if c.tasks[i].due.Equal(c.tasks[j].due) {
			return c.tasks[i].seq < c.tasks[j].seq
		}
		return c.tasks[i].due.Before(c.tasks[j].due)
	})
	if len(c.tasks) == 0 || c.tasks[0].due.After(limit) {
		return nil
	}
	task := c.tasks[0]
	c.tasks = c.tasks[1:]
	if task.due.After(c.currentTime) {
		c.currentTime = task.due
	}
	return task
}

func (t *mockTask) Stop() bool {
	c := t.clock
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, task := range c.tasks {
		if task == t {
			c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
			return true
		}
	}
	return false
}
