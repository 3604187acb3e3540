package layer

import (
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/handfix/pkg/xrmath"
)

// Names of the host functions this layer implements.
const (
	FuncLocateHandJoints = "xrLocateHandJointsEXT"
	FuncDestroyInstance  = "xrDestroyInstance"
)

// ShimFunction maps a host function name to the implementation that should
// replace it in the host's dispatch chain.
type ShimFunction struct {
	Name string
	Fn   any
}

// Next holds the next implementations in the host's dispatch chain, which
// the shims call into.
type Next struct {
	LocateHandJoints LocateHandJointsFunc
	DestroyInstance  DestroyInstanceFunc
}

// LocateHandJoints calls next and corrects the joints it located.
//
// A failed or inactive upstream result is returned unchanged with the
// locations untouched. Otherwise the joints are transformed in place and
// ResultSuccess is returned.
func (i *Instance) LocateHandJoints(next LocateHandJointsFunc, tracker TrackerHandle, info *LocateInfo, locations *HandJointLocations) Result {
	if next == nil {
		return ResultErrorFunctionUnsupported
	}

	result := next(tracker, info, locations)
	if locations == nil {
		return result
	}

	status := i.apply(
		len(locations.Joints),
		func(j int) *xrmath.Pose { return &locations.Joints[j].Pose },
		result == ResultSuccess,
		locations.IsActive,
	)
	if status == StatusPassThrough {
		return result
	}

	return ResultSuccess
}

// DestroyInstance resets the instance, then lets the rest of the chain tear
// the host instance down.
func (i *Instance) DestroyInstance(next DestroyInstanceFunc) Result {
	i.Reset()

	if next == nil {
		logrus.WithField("instance", i.id).Warn("no next xrDestroyInstance in chain")
		return ResultSuccess
	}
	return next()
}

// Shims returns the functions this layer substitutes into the host's
// dispatch chain, each bound to next.
func (i *Instance) Shims(next Next) []ShimFunction {
	return []ShimFunction{
		{
			Name: FuncDestroyInstance,
			Fn: DestroyInstanceFunc(func() Result {
				return i.DestroyInstance(next.DestroyInstance)
			}),
		},
		{
			Name: FuncLocateHandJoints,
			Fn: LocateHandJointsFunc(func(tracker TrackerHandle, info *LocateInfo, locations *HandJointLocations) Result {
				return i.LocateHandJoints(next.LocateHandJoints, tracker, info, locations)
			}),
		},
	}
}

// LookupShim returns the implementation registered under name.
func LookupShim(shims []ShimFunction, name string) (any, bool) {
	for _, s := range shims {
		if s.Name == name {
			return s.Fn, true
		}
	}
	return nil, false
}
