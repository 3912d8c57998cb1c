package scheduler

import "time"

// minDelay keeps a task that returns zero from firing forever within one Advance.
const minDelay = time.Millisecond

// TaskFunc runs a task and returns the delay until its next run.
type TaskFunc func() time.Duration

// Task is a persistent, self re-arming behaviour with its own next-fire time.
type Task struct {
	Name     string
	Priority int

	fn       TaskFunc
	next     time.Duration
	seq      int
	sched    *Scheduler
	running  bool
	override *time.Duration
}

// Next returns the virtual time the task fires at next.
func (t *Task) Next() time.Duration {
	return t.next
}

// Reschedule re-arms the task to fire after d from the scheduler's current time.
// Called from within the task's own callback it replaces the returned delay.
func (t *Task) Reschedule(d time.Duration) {
	if t == nil || t.sched == nil {
		return
	}
	if d < minDelay {
		d = minDelay
	}
	if t.running {
		t.override = &d
		return
	}
	t.next = t.sched.now + d
}

// Scheduler fires tasks against a virtual clock. It is not safe for concurrent use;
// everything runs on the goroutine that calls Advance.
type Scheduler struct {
	now   time.Duration
	tasks []*Task
	seq   int
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the scheduler's virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Add registers a task that first fires after delay. Higher priority tasks fire
// first when several are due at the same instant.
func (s *Scheduler) Add(name string, priority int, delay time.Duration, fn TaskFunc) *Task {
	if fn == nil {
		return nil
	}
	if delay < 0 {
		delay = 0
	}
	s.seq++
	t := &Task{
		Name:     name,
		Priority: priority,
		fn:       fn,
		next:     s.now + delay,
		seq:      s.seq,
		sched:    s,
	}
	s.tasks = append(s.tasks, t)
	return t
}

// Advance moves the clock forward by d, firing every task that comes due on the
// way in due-time order. Returns the number of callbacks run.
func (s *Scheduler) Advance(d time.Duration) int {
	if d < 0 {
		d = 0
	}
	target := s.now + d
	fired := 0
	for {
		t := s.nextDue(target)
		if t == nil {
			break
		}
		if t.next > s.now {
			s.now = t.next
		}
		s.run(t)
		fired++
	}
	s.now = target
	return fired
}

func (s *Scheduler) run(t *Task) {
	t.running = true
	t.override = nil
	delay := t.fn()
	t.running = false

	if t.override != nil {
		delay = *t.override
		t.override = nil
	}
	if delay < minDelay {
		delay = minDelay
	}
	t.next = s.now + delay
}

func (s *Scheduler) nextDue(target time.Duration) *Task {
	var best *Task
	for _, t := range s.tasks {
		if t.next > target {
			continue
		}
		if best == nil || before(t, best) {
			best = t
		}
	}
	return best
}

func before(a, b *Task) bool {
	if a.next != b.next {
		return a.next < b.next
	}
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	return a.seq < b.seq
}
