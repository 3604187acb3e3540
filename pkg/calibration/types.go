package calibration

import (
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/handfix/pkg/xrmath"
)

// Keys recognized in a calibration source.
const (
	KeyYaw          = "yaw"
	KeyPitch        = "pitch"
	KeyTranslationX = "translation_x"
	KeyTranslationY = "translation_y"
	KeyTranslationZ = "translation_z"
)

// State is the correction applied to every joint pose.
type State struct {
	YawDeg      float64        `json:"yaw"`
	PitchDeg    float64        `json:"pitch"`
	Translation xrmath.Vector3 `json:"translation"`
}

// Default returns the factory calibration: the tracker is mounted upside
// down, looking forward, 25cm below and 35cm in front of the viewer.
func Default() State {
	return State{
		YawDeg:   180,
		PitchDeg: -90,
		Translation: xrmath.Vector3{
			X: 0,
			Y: -0.25,
			Z: -0.35,
		},
	}
}

// Rotation returns the quaternion for the state's yaw and pitch.
func (s State) Rotation() xrmath.Quaternion {
	return xrmath.FromEuler(s.YawDeg, s.PitchDeg)
}

// IsKey reports whether key names a calibration field.
func IsKey(key string) bool {
	var s State
	return s.set(key, 0)
}

// set assigns value to the field named by key. It reports false for keys
// that are not calibration fields.
func (s *State) set(key string, value float64) bool {
	switch key {
	case KeyYaw:
		s.YawDeg = value
	case KeyPitch:
		s.PitchDeg = value
	case KeyTranslationX:
		s.Translation.X = value
	case KeyTranslationY:
		s.Translation.Y = value
	case KeyTranslationZ:
		s.Translation.Z = value
	default:
		return false
	}
	return true
}

func (s State) LogrusFields() logrus.Fields {
	return logrus.Fields{
		KeyYaw:          s.YawDeg,
		KeyPitch:        s.PitchDeg,
		KeyTranslationX: s.Translation.X,
		KeyTranslationY: s.Translation.Y,
		KeyTranslationZ: s.Translation.Z,
	}
}
