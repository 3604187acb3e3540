package config

import "github.com/sirupsen/logrus"

// Config is the daemon configuration. The calibration itself is not part of
// it: that lives in the file pointed to by HAND_TRACKING_CONFIG_PATH.
type Config interface {
	// ReloadEvery is the number of located batches between two calibration
	// reloads of an instance. Zero disables call-driven reloads.
	ReloadEvery() int
	// AsyncReload tells whether a due reload runs off the locate call.
	AsyncReload() bool
	// RefreshSchedule is a cron expression for time-based reloads of all
	// instances. Empty disables it.
	RefreshSchedule() string
	AllowNonRootAccess() bool

	LogrusFields() logrus.Fields

	// Load reads the configuration from the source.
	Load() error
}
