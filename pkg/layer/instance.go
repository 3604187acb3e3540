package layer

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/charlie0129/handfix/pkg/calibration"
	"github.com/charlie0129/handfix/pkg/events"
	"github.com/charlie0129/handfix/pkg/xrmath"
)

// Instance is the per-instance context of the layer. It owns a calibration
// snapshot and a reload counter that are never shared with other instances.
//
// Apply and Reset must not be called concurrently on the same Instance; the
// host serializes calls into an instance. Reloads running in the background
// publish a new snapshot atomically, so Apply always sees one consistent
// calibration for a whole batch.
type Instance struct {
	id      string
	loader  *calibration.Loader
	async   bool
	hub     *events.Hub
	counter ReloadCounter

	state     atomic.Pointer[calibration.State]
	reloading atomic.Bool
	inflight  sync.WaitGroup
	reloads   atomic.Uint64
}

type Option func(*Instance)

// WithLocator sets where the calibration file is looked up. By default it is
// read from HAND_TRACKING_CONFIG_PATH.
func WithLocator(l calibration.Locator) Option {
	return func(i *Instance) {
		i.loader = calibration.NewLoader(l)
	}
}

// WithReloadEvery sets how many transformed batches separate two reloads.
// Zero disables call-driven reloads.
func WithReloadEvery(every uint16) Option {
	return func(i *Instance) {
		i.counter = NewReloadCounter(every)
	}
}

// WithSynchronousReload makes a due reload run inline, on the call that
// triggered it, before the batch is transformed. The file read then blocks
// that call.
func WithSynchronousReload() Option {
	return func(i *Instance) {
		i.async = false
	}
}

func WithEventHub(h *events.Hub) Option {
	return func(i *Instance) {
		i.hub = h
	}
}

// NewInstance creates an instance with the factory calibration.
func NewInstance(id string, opts ...Option) *Instance {
	i := &Instance{
		id:      id,
		loader:  calibration.NewLoader(nil),
		async:   true,
		counter: NewReloadCounter(DefaultReloadEvery),
	}
	for _, opt := range opts {
		opt(i)
	}
	def := calibration.Default()
	i.state.Store(&def)
	return i
}

func (i *Instance) ID() string {
	return i.id
}

// Calibration returns the current calibration snapshot.
func (i *Instance) Calibration() calibration.State {
	return *i.state.Load()
}

// Reloads returns how many reloads have been attempted.
func (i *Instance) Reloads() uint64 {
	return i.reloads.Load()
}

// Apply corrects every pose of batch in place.
//
// When the upstream query did not succeed or the batch is not active, the
// batch is left untouched and StatusPassThrough is returned.
func (i *Instance) Apply(batch []xrmath.Pose, upstreamSucceeded, batchActive bool) Status {
	return i.apply(len(batch), func(j int) *xrmath.Pose { return &batch[j] }, upstreamSucceeded, batchActive)
}

func (i *Instance) apply(n int, pose func(int) *xrmath.Pose, upstreamSucceeded, batchActive bool) Status {
	if !upstreamSucceeded || !batchActive {
		return StatusPassThrough
	}

	if i.counter.Tick() {
		i.triggerReload()
	}

	// One snapshot for the whole batch.
	state := i.Calibration()
	rotation := state.Rotation()

	for j := 0; j < n; j++ {
		p := pose(j)
		*p = xrmath.Transform(*p, rotation, state.Translation)
	}

	return StatusSuccess
}

func (i *Instance) triggerReload() {
	if !i.async {
		_, _ = i.Reload()
		return
	}

	if !i.reloading.CompareAndSwap(false, true) {
		logrus.WithField("instance", i.id).Debug("calibration reload already in progress, skipping")
		return
	}

	i.inflight.Add(1)
	go func() {
		defer i.inflight.Done()
		defer i.reloading.Store(false)
		_, _ = i.Reload()
	}()
}

// Reload re-reads the calibration source and publishes the merged result.
// Errors are logged and returned for callers that care, the current
// calibration stays in effect when the source is unavailable.
func (i *Instance) Reload() (calibration.Report, error) {
	i.reloads.Add(1)

	prev := i.state.Load()
	next, report, err := i.loader.Reload(*prev)

	ev := events.ReloadEvent{
		Instance: i.id,
		Path:     report.Path,
		Applied:  report.Applied,
		Errors:   len(report.Errors),
		Ts:       time.Now().Unix(),
	}
	if err != nil {
		ev.Failure = err.Error()
	}

	if next != *prev {
		// Lose against a concurrent Reset or reload rather than resurrect
		// a calibration derived from a stale snapshot.
		if !i.state.CompareAndSwap(prev, &next) {
			logrus.WithField("instance", i.id).Debug("calibration changed during reload, discarding result")
			return report, err
		}
		logrus.WithFields(next.LogrusFields()).WithField("instance", i.id).Info("calibration updated")
	}

	i.hub.Publish(events.CalibrationReloaded, ev)

	return report, err
}

// Wait blocks until background reloads started so far have finished.
func (i *Instance) Wait() {
	i.inflight.Wait()
}

// Reset restores the factory calibration and zeroes the reload counter, so
// a new host instance does not inherit the state of a destroyed one.
func (i *Instance) Reset() {
	def := calibration.Default()
	i.state.Store(&def)
	i.counter.Reset()

	logrus.WithField("instance", i.id).Debug("layer instance reset")
	i.hub.Publish(events.InstanceReset, events.InstanceEvent{Instance: i.id, Ts: time.Now().Unix()})
}
