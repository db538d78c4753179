// Package scheduler runs the engine's periodic jobs under one cancellable
// abstraction: named jobs, explicit Start/Stop, and a persisted next-due
// timestamp per job so a process restart resumes the schedule instead of
// resetting it.
package scheduler

import (
	"log"
	"sync"
	"time"

	"launchops/internal/store"
)

// job is one named scheduled task with its own cadence.
type job struct {
	name    string
	fn      func()
	nextDue time.Time
	// reschedule computes the due time following a fire at now.
	reschedule func(now time.Time) time.Time
	// initial computes the first due time when nothing usable is persisted.
	initial func(now time.Time) time.Time
}

// Scheduler owns the timer goroutines for all registered jobs.
type Scheduler struct {
	store store.Store
	now   func() time.Time

	mu      sync.Mutex
	jobs    []*job
	stop    chan struct{}
	wg      sync.WaitGroup
	started bool
	stopped bool
}

// New creates a scheduler persisting its schedule into the given store.
func New(s store.Store) *Scheduler {
	return &Scheduler{store: s, now: time.Now, stop: make(chan struct{})}
}

// WithClock overrides the scheduler's time source. Must be called before
// Start.
func (s *Scheduler) WithClock(now func() time.Time) *Scheduler {
	s.now = now
	return s
}

// AddInterval registers a job firing every d, first at now+d.
func (s *Scheduler) AddInterval(name string, d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, &job{
		name:       name,
		fn:         fn,
		initial:    func(now time.Time) time.Time { return now.Add(d) },
		reschedule: func(now time.Time) time.Time { return now.Add(d) },
	})
}

// AddDailyAt registers a job firing at the next hour:00 (today if not yet
// past, else tomorrow), then every 24 hours.
func (s *Scheduler) AddDailyAt(name string, hour int, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, &job{
		name:       name,
		fn:         fn,
		initial:    func(now time.Time) time.Time { return NextDaily(now, hour) },
		reschedule: func(now time.Time) time.Time { return now.Add(24 * time.Hour) },
	})
}

// NextDaily returns the next occurrence of hour:00 after now: today if the
// hour has not yet passed, else tomorrow.
func NextDaily(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

// Start resumes each job from its persisted next-due time when that time is
// still in the future, otherwise schedules it fresh, and launches the timer
// goroutines.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	persisted := s.loadSchedule()
	now := s.now()
	for _, j := range s.jobs {
		if due, ok := persisted[j.name]; ok && due.After(now) {
			j.nextDue = due
			log.Printf("scheduler: %s resumes at %s", j.name, due.Format(time.RFC3339))
		} else {
			j.nextDue = j.initial(now)
		}
	}
	s.persistSchedule()

	for _, j := range s.jobs {
		s.wg.Add(1)
		go s.run(j)
	}
}

// Stop cancels all job timers and waits for running fires to return. Safe
// to call more than once.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started || s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.mu.Unlock()

	close(s.stop)
	s.wg.Wait()
}

func (s *Scheduler) run(j *job) {
	defer s.wg.Done()
	for {
		s.mu.Lock()
		due := j.nextDue
		s.mu.Unlock()

		timer := time.NewTimer(due.Sub(s.now()))
		select {
		case <-s.stop:
			timer.Stop()
			return
		case <-timer.C:
			j.fn()
			s.mu.Lock()
			j.nextDue = j.reschedule(s.now())
			s.persistSchedule()
			s.mu.Unlock()
		}
	}
}

// loadSchedule reads the persisted name -> next-due map. A missing or
// unreadable record just means nothing resumes.
func (s *Scheduler) loadSchedule() map[string]time.Time {
	sched, err := store.Object[map[string]time.Time](s.store, store.KeySchedule)
	if err != nil {
		if err != store.ErrNotFound {
			log.Printf("scheduler: load schedule failed: %v", err)
		}
		return nil
	}
	return sched
}

// persistSchedule writes the current next-due map. Caller holds s.mu.
func (s *Scheduler) persistSchedule() {
	sched := make(map[string]time.Time, len(s.jobs))
	for _, j := range s.jobs {
		sched[j.name] = j.nextDue
	}
	if err := store.SaveObject(s.store, store.KeySchedule, sched); err != nil {
		log.Printf("scheduler: persist schedule failed: %v", err)
	}
}

// NextDue returns a job's scheduled fire time, for the admin CLI and tests.
func (s *Scheduler) NextDue(name string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, j := range s.jobs {
		if j.name == name {
			return j.nextDue, true
		}
	}
	return time.Time{}, false
}
