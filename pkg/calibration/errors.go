package calibration

import (
	"errors"
	"fmt"
)

// ErrSourceUnavailable is returned when the calibration file location is not
// set or the file cannot be opened. The state is left untouched.
var ErrSourceUnavailable = errors.New("calibration source unavailable")

// LineError describes a line whose value is not a decimal number.
type LineError struct {
	Line  int    `json:"line"`
	Key   string `json:"key"`
	Value string `json:"value"`
	Err   error  `json:"-"`
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: failed to convert value to float for key %q: %q", e.Line, e.Key, e.Value)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
