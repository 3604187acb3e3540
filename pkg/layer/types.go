package layer

import (
	"fmt"

	"github.com/charlie0129/handfix/pkg/xrmath"
)

// Result is the status code exchanged with the host runtime. Zero is
// success, negative values are errors, positive values are qualified
// successes which are not treated as success by the transform.
type Result int32

const (
	ResultSuccess                  Result = 0
	ResultErrorValidationFailure   Result = -1
	ResultErrorRuntimeFailure      Result = -2
	ResultErrorFunctionUnsupported Result = -7
	ResultErrorHandleInvalid       Result = -12
)

func (r Result) String() string {
	switch r {
	case ResultSuccess:
		return "XR_SUCCESS"
	case ResultErrorValidationFailure:
		return "XR_ERROR_VALIDATION_FAILURE"
	case ResultErrorRuntimeFailure:
		return "XR_ERROR_RUNTIME_FAILURE"
	case ResultErrorFunctionUnsupported:
		return "XR_ERROR_FUNCTION_UNSUPPORTED"
	case ResultErrorHandleInvalid:
		return "XR_ERROR_HANDLE_INVALID"
	default:
		return fmt.Sprintf("XrResult(%d)", int32(r))
	}
}

// Status is what Apply did with a batch.
type Status int

const (
	// StatusPassThrough means the batch was left untouched because the
	// upstream query failed or the batch was not active.
	StatusPassThrough Status = iota
	// StatusSuccess means every joint in the batch was transformed.
	StatusSuccess
)

func (s Status) String() string {
	switch s {
	case StatusPassThrough:
		return "pass-through"
	case StatusSuccess:
		return "success"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// TrackerHandle is the opaque hand tracker handle owned by the host.
type TrackerHandle uint64

// LocateInfo describes where and when joints are located. The transform does
// not look at it, it is handed through to the upstream provider.
type LocateInfo struct {
	BaseSpace uint64 `json:"baseSpace"`
	Time      int64  `json:"time"`
}

// JointLocation is one tracked joint as reported by the provider.
type JointLocation struct {
	Flags  uint64      `json:"flags"`
	Pose   xrmath.Pose `json:"pose"`
	Radius float64     `json:"radius"`
}

// HandJointLocations is the batch filled in by a locate call.
type HandJointLocations struct {
	IsActive bool            `json:"isActive"`
	Joints   []JointLocation `json:"joints"`
}

// LocateHandJointsFunc locates hand joints. It is both the shape of the
// upstream provider and of the function this package exposes.
type LocateHandJointsFunc func(tracker TrackerHandle, info *LocateInfo, locations *HandJointLocations) Result

// DestroyInstanceFunc tears down a host instance.
type DestroyInstanceFunc func() Result
