package scheduler

import (
	"sync"
	"time"
)

// Virtual is a Scheduler driven by a manual clock. Nothing runs until Advance
// is called; callbacks then run on the caller's goroutine in due-time order,
// ties broken by arming order.
type Virtual struct {
	mu    sync.Mutex
	now   time.Time
	seq   uint64
	tasks []*virtualTask
}

type virtualTask struct {
	at       time.Time
	seq      uint64
	fn       func()
	done     bool
	canceled bool
	owner    *Virtual
}

// NewVirtual creates a virtual scheduler whose clock starts at start.
func NewVirtual(start time.Time) *Virtual {
	return &Virtual{now: start}
}

// Now returns the virtual clock. It only moves inside Advance.
func (v *Virtual) Now() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.now
}

// Schedule arms fn to run once Advance reaches now+delay. Negative delays
// count as zero.
func (v *Virtual) Schedule(delay time.Duration, fn func()) Handle { //nolint:ireturn
	v.mu.Lock()
	defer v.mu.Unlock()

	if delay < 0 {
		delay = 0
	}

	v.seq++

	task := &virtualTask{
		at:    v.now.Add(delay),
		seq:   v.seq,
		fn:    fn,
		owner: v,
	}

	v.tasks = append(v.tasks, task)

	return task
}

// Advance moves the clock forward by d, running every callback that comes due
// on the way. Callbacks may arm further callbacks; those run too if they fall
// inside the window.
func (v *Virtual) Advance(d time.Duration) {
	v.mu.Lock()
	target := v.now.Add(d)
	v.mu.Unlock()

	for {
		task := v.nextDue(target)
		if task == nil {
			break
		}

		task.fn()
	}

	v.mu.Lock()
	v.now = target
	v.mu.Unlock()
}

// Pending returns the number of armed callbacks that have neither run nor
// been cancelled.
func (v *Virtual) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return len(v.tasks)
}

// nextDue pops the earliest live task due at or before target and moves the
// clock to its due time.
func (v *Virtual) nextDue(target time.Time) *virtualTask {
	v.mu.Lock()
	defer v.mu.Unlock()

	idx := -1

	for i, task := range v.tasks {
		if task.at.After(target) {
			continue
		}

		if idx < 0 || task.at.Before(v.tasks[idx].at) ||
			(task.at.Equal(v.tasks[idx].at) && task.seq < v.tasks[idx].seq) {
			idx = i
		}
	}

	if idx < 0 {
		return nil
	}

	task := v.tasks[idx]
	v.tasks = append(v.tasks[:idx], v.tasks[idx+1:]...)
	task.done = true

	if task.at.After(v.now) {
		v.now = task.at
	}

	return task
}

func (t *virtualTask) Cancel() bool {
	v := t.owner

	v.mu.Lock()
	defer v.mu.Unlock()

	if t.done || t.canceled {
		return false
	}

	t.canceled = true

	for i, task := range v.tasks {
		if task == t {
			v.tasks = append(v.tasks[:i], v.tasks[i+1:]...)

			break
		}
	}

	return true
}
