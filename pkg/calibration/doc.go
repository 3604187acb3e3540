// Package calibration holds the operator-tunable correction applied to hand
// joint poses and the loader that refreshes it from a key=value text file.
// It contains:
//
//   - State: yaw, pitch and translation offset, treated as an immutable snapshot
//   - ParseLine / Parse / Merge: per-line parsing and the field-by-field merge
//   - Locator: where the calibration file lives, resolved on every reload
//   - Loader: the reload routine tying the above together
//
// A reload never resets the state. Only keys that parse successfully replace
// the matching field, everything else keeps its last good value.
package calibration
