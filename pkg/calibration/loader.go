package calibration

import (
	"os"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Loader reloads a State from the source its Locator points to.
type Loader struct {
	locator Locator
}

// NewLoader returns a Loader. A nil locator reads HAND_TRACKING_CONFIG_PATH.
func NewLoader(locator Locator) *Loader {
	if locator == nil {
		locator = EnvLocator{}
	}
	return &Loader{locator: locator}
}

// Reload reads the source and merges it on top of prev.
//
// When the source is unavailable, prev is returned as-is together with an
// error wrapping ErrSourceUnavailable. Bad lines are logged and skipped, they
// do not make Reload fail. A read error part way through still merges the
// lines read before it.
func (l *Loader) Reload(prev State) (State, Report, error) {
	path, ok, err := l.locator.Locate()
	if err != nil {
		logrus.Warnf("failed to locate calibration source: %v", err)
		return prev, Report{}, pkgerrors.Wrap(ErrSourceUnavailable, err.Error())
	}
	if !ok {
		logrus.Warnf("%s environment variable not set", EnvPath)
		return prev, Report{}, pkgerrors.Wrapf(ErrSourceUnavailable, "%s not set", EnvPath)
	}

	fp, err := os.Open(path)
	if err != nil {
		logrus.Warnf("failed to open calibration file %s: %v", path, err)
		return prev, Report{Path: path}, pkgerrors.Wrapf(ErrSourceUnavailable, "failed to open %s: %v", path, err)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", path)
		}
	}(fp)

	results, readErr := Parse(fp)

	next, report := Merge(prev, results)
	report.Path = path

	for _, lineErr := range report.Errors {
		logrus.WithFields(logrus.Fields{
			"path":  path,
			"line":  lineErr.Line,
			"key":   lineErr.Key,
			"value": lineErr.Value,
		}).Warnf("failed to convert value to float for key %q", lineErr.Key)
	}

	if readErr != nil {
		logrus.Warnf("calibration file %s: %v", path, readErr)
		return next, report, readErr
	}

	logrus.WithFields(report.LogrusFields()).Debug("calibration reloaded")

	return next, report, nil
}
