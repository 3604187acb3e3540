package layer

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/handfix/pkg/events"
)

// ErrInstanceNotFound is returned for an unknown instance id.
var ErrInstanceNotFound = errors.New("layer instance not found")

type entry struct {
	mu   sync.Mutex
	inst *Instance
}

// Registry keeps the live layer instances. Calls into one instance are
// serialized, different instances run independently.
type Registry struct {
	mu        sync.RWMutex
	instances map[string]*entry
	opts      func() []Option
	hub       *events.Hub
}

// NewRegistry returns a Registry creating instances with the options
// returned by opts, evaluated on every Create.
func NewRegistry(hub *events.Hub, opts func() []Option) *Registry {
	if opts == nil {
		opts = func() []Option { return nil }
	}
	return &Registry{
		instances: make(map[string]*entry),
		opts:      opts,
		hub:       hub,
	}
}

// Create starts a new instance and returns its id.
func (r *Registry) Create() string {
	id := uuid.NewString()
	opts := append([]Option{WithEventHub(r.hub)}, r.opts()...)
	inst := NewInstance(id, opts...)

	r.mu.Lock()
	r.instances[id] = &entry{inst: inst}
	r.mu.Unlock()

	logrus.WithField("instance", id).Info("layer instance created")
	r.hub.Publish(events.InstanceCreated, events.InstanceEvent{Instance: id, Ts: time.Now().Unix()})

	return id
}

func (r *Registry) get(id string) (*entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.instances[id]
	if !ok {
		return nil, ErrInstanceNotFound
	}
	return e, nil
}

// Get returns the instance without taking its lock. Only use it for
// methods that are safe concurrently with Apply, such as Calibration.
func (r *Registry) Get(id string) (*Instance, error) {
	e, err := r.get(id)
	if err != nil {
		return nil, err
	}
	return e.inst, nil
}

// Do runs fn with exclusive access to the instance.
func (r *Registry) Do(id string, fn func(*Instance) error) error {
	e, err := r.get(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.inst)
}

// Destroy resets the instance and forgets it.
func (r *Registry) Destroy(id string) error {
	r.mu.Lock()
	e, ok := r.instances[id]
	delete(r.instances, id)
	r.mu.Unlock()
	if !ok {
		return ErrInstanceNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.inst.Wait()
	e.inst.Reset()

	logrus.WithField("instance", id).Info("layer instance destroyed")
	return nil
}

// List returns the ids of live instances, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.instances))
	for id := range r.instances {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ReloadAll reloads the calibration of every live instance. It returns the
// number of instances whose reload failed.
func (r *Registry) ReloadAll() int {
	failed := 0
	for _, id := range r.List() {
		err := r.Do(id, func(inst *Instance) error {
			_, err := inst.Reload()
			return err
		})
		if err != nil && !errors.Is(err, ErrInstanceNotFound) {
			failed++
		}
	}
	return failed
}
