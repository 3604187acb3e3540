package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	pkgerrors "github.com/pkg/errors"

	"github.com/charlie0129/handfix/pkg/calibration"
	"github.com/charlie0129/handfix/pkg/types"
)

// readLocateRequest reads a joint batch from file, or from stdin when file
// is "-".
func readLocateRequest(stdin io.Reader, file string) (*types.LocateRequest, error) {
	var (
		data []byte
		err  error
	)
	if file == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to read joint batch %s", file)
	}

	var req types.LocateRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to parse joint batch %s", file)
	}
	return &req, nil
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func printCalibration(w io.Writer, indent string, s calibration.State) {
	q := s.Rotation()
	fmt.Fprintf(w, "%sYaw: %s\n", indent, bold("%g°", s.YawDeg))
	fmt.Fprintf(w, "%sPitch: %s\n", indent, bold("%g°", s.PitchDeg))
	fmt.Fprintf(w, "%sTranslation: %s\n", indent, bold("(%g, %g, %g) m", s.Translation.X, s.Translation.Y, s.Translation.Z))
	fmt.Fprintf(w, "%sRotation: %s\n", indent, bold("x=%.6f y=%.6f z=%.6f w=%.6f", q.X, q.Y, q.Z, q.W))
}

func bool2Text(b bool) string {
	if b {
		return good()
	}
	return bad()
}

func good() string {
	return color.New(color.Bold, color.FgGreen).Sprint("✔")
}

func bad() string {
	return color.New(color.Bold, color.FgRed).Sprint("✘")
}

func skipped() string {
	return color.New(color.Bold, color.FgYellow).Sprint("-")
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
