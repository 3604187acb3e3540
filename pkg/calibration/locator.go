package calibration

import (
	"github.com/caarlos0/env/v11"
	pkgerrors "github.com/pkg/errors"
)

// EnvPath is the environment variable holding the calibration file path.
const EnvPath = "HAND_TRACKING_CONFIG_PATH"

// Locator tells the loader where the calibration source lives. It is asked
// again on every reload so a changed location takes effect on the next cycle.
type Locator interface {
	// Locate returns the path, or ok=false when no location is configured.
	Locate() (path string, ok bool, err error)
}

type envSource struct {
	Path string `env:"HAND_TRACKING_CONFIG_PATH"`
}

// EnvLocator resolves the path from HAND_TRACKING_CONFIG_PATH.
type EnvLocator struct{}

func (EnvLocator) Locate() (string, bool, error) {
	var src envSource
	if err := env.Parse(&src); err != nil {
		return "", false, pkgerrors.Wrapf(err, "failed to parse %s", EnvPath)
	}
	return src.Path, src.Path != "", nil
}

// StaticLocator always returns the same path. An empty path means unset.
type StaticLocator string

func (s StaticLocator) Locate() (string, bool, error) {
	return string(s), s != "", nil
}
