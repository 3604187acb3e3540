package types

import (
	"github.com/charlie0129/handfix/pkg/calibration"
	"github.com/charlie0129/handfix/pkg/layer"
)

// LocateRequest carries a joint batch already located by the upstream
// provider, together with the result the provider returned.
// This struct is shared between the daemon and client packages.
type LocateRequest struct {
	Tracker  layer.TrackerHandle   `json:"tracker"`
	Info     layer.LocateInfo      `json:"info"`
	Result   layer.Result          `json:"result"`
	IsActive bool                  `json:"isActive"`
	Joints   []layer.JointLocation `json:"joints"`
}

// LocateResponse is the batch after correction and the result the layer
// returns to the application.
type LocateResponse struct {
	Result   layer.Result          `json:"result"`
	IsActive bool                  `json:"isActive"`
	Joints   []layer.JointLocation `json:"joints"`
}

type InstanceResponse struct {
	ID string `json:"id"`
}

// ReloadResponse reports an explicit calibration reload. Error is set when
// the source was unavailable; the calibration then stays as it was.
type ReloadResponse struct {
	Report      calibration.Report `json:"report"`
	Calibration calibration.State  `json:"calibration"`
	Error       string             `json:"error,omitempty"`
}
