package events

import "encoding/json"

// Event names.
const (
	CalibrationReloaded = "calibration.reloaded"
	InstanceCreated     = "instance.created"
	InstanceReset       = "instance.reset"
)

// Event is a named JSON payload, streamed to clients as SSE.
type Event struct {
	Name string          `json:"name"`
	Data json.RawMessage `json:"data"`
}

// ReloadEvent is the payload of calibration.reloaded.
type ReloadEvent struct {
	Instance string   `json:"instance"`
	Path     string   `json:"path,omitempty"`
	Applied  []string `json:"applied,omitempty"`
	Errors   int      `json:"errors"`
	Failure  string   `json:"failure,omitempty"`
	Ts       int64    `json:"ts"`
}

// InstanceEvent is the payload of instance.created and instance.reset.
type InstanceEvent struct {
	Instance string `json:"instance"`
	Ts       int64  `json:"ts"`
}

// DecodeAs unmarshals the payload of e into T. An empty payload yields the
// zero value.
func DecodeAs[T any](e Event) (T, error) {
	var v T
	if len(e.Data) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(e.Data, &v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}
