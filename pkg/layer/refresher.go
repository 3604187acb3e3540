package layer

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// TaskFunc is a unit of work run by the Refresher.
type TaskFunc func() error

// Refresher runs a task on a cron schedule, independently of the call-driven
// reload cadence. The daemon uses it to refresh every instance's calibration
// even while no joints are being located.
type Refresher struct {
	Task    TaskFunc
	OnError func(err error)

	parser cron.Parser

	mu       sync.Mutex
	schedule cron.Schedule
	nextRun  time.Time
	running  bool

	rescheduleCh chan cron.Schedule
	stopCh       chan struct{}
	doneCh       chan struct{}
}

func NewRefresher(task TaskFunc, onError func(err error)) *Refresher {
	if task == nil {
		panic("task function cannot be nil")
	}
	return &Refresher{
		Task:         task,
		OnError:      onError,
		parser:       cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
		rescheduleCh: make(chan cron.Schedule, 1),
	}
}

// Schedule sets the cron expression, e.g. "@every 1s". An empty expression
// clears the schedule.
func (r *Refresher) Schedule(expr string) error {
	var sh cron.Schedule
	if expr != "" {
		var err error
		sh, err = r.parser.Parse(expr)
		if err != nil {
			return fmt.Errorf("invalid refresh schedule %q: %w", expr, err)
		}
	}

	r.mu.Lock()
	running := r.running
	if !running {
		// Drop a schedule sent to a loop that stopped before reading it.
		select {
		case <-r.rescheduleCh:
		default:
		}
		r.setScheduleLocked(sh)
	}
	r.mu.Unlock()

	if running {
		// Keep only the latest pending schedule.
		select {
		case <-r.rescheduleCh:
		default:
		}
		r.rescheduleCh <- sh
	}
	return nil
}

func (r *Refresher) setScheduleLocked(sh cron.Schedule) {
	r.schedule = sh
	if sh == nil {
		r.nextRun = time.Time{}
		return
	}
	r.nextRun = sh.Next(time.Now())
}

// Start runs the refresh loop in the background. It is a no-op when the
// loop is already running. A stopped Refresher can be started again.
func (r *Refresher) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}
	r.running = true
	r.stopCh = make(chan struct{})
	r.doneCh = make(chan struct{})
	go r.run(r.stopCh, r.doneCh)
}

// Stop ends the refresh loop and waits for it to return. A task that is
// running finishes first.
func (r *Refresher) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	close(r.stopCh)
	done := r.doneCh
	r.mu.Unlock()

	<-done
}

func (r *Refresher) Status() (nextRun time.Time, running bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nextRun, r.running
}

func (r *Refresher) run(stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer func() {
		close(doneCh)
		logrus.Debug("calibration refresher stopped")
	}()

	logrus.Debug("calibration refresher started")

	for {
		r.mu.Lock()
		nextRun := r.nextRun
		r.mu.Unlock()

		var timerC <-chan time.Time
		var timer *time.Timer
		if !nextRun.IsZero() {
			wait := time.Until(nextRun)
			if wait < 0 {
				wait = 0
			}
			timer = time.NewTimer(wait)
			timerC = timer.C
		}

		select {
		case <-timerC:
			if err := r.Task(); err != nil && r.OnError != nil {
				r.OnError(err)
			}
			r.mu.Lock()
			if r.schedule != nil {
				r.nextRun = r.schedule.Next(time.Now())
			}
			r.mu.Unlock()
		case sh := <-r.rescheduleCh:
			if timer != nil {
				timer.Stop()
			}
			r.mu.Lock()
			r.setScheduleLocked(sh)
			r.mu.Unlock()
		case <-stopCh:
			if timer != nil {
				timer.Stop()
			}
			// Keep a schedule that arrived with the stop for the next Start.
			select {
			case sh := <-r.rescheduleCh:
				r.mu.Lock()
				r.setScheduleLocked(sh)
				r.mu.Unlock()
			default:
			}
			return
		}
	}
}
