package main

import (
	"fmt"
	"io"
	"os"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/handfix/pkg/calibration"
)

func NewCalibrationCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "calibration",
		Short:   "Inspect a calibration file",
		GroupID: gOffline,
		Long: `Inspect a calibration file without the daemon.

Without a file argument, the file named by HAND_TRACKING_CONFIG_PATH is used.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show [file]",
			Short: "Print the calibration a file results in",
			Long: `Print the calibration a file results in when loaded on top of the factory
calibration. Lines that cannot be parsed keep the factory value.`,
			Args: cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				loader := calibration.NewLoader(locatorFromArgs(args))
				state, _, err := loader.Reload(calibration.Default())
				if err != nil {
					return err
				}
				printCalibration(cmd.OutOrStdout(), "", state)
				return nil
			},
		},
		&cobra.Command{
			Use:   "check [file]",
			Short: "Check every line of a calibration file",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				path, ok, err := locatorFromArgs(args).Locate()
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("no calibration file given and %s not set", calibration.EnvPath)
				}

				return checkCalibrationFile(cmd.OutOrStdout(), path)
			},
		},
	)

	return cmd
}

// checkCalibrationFile checks the file at path line by line and fails when
// any line is invalid.
func checkCalibrationFile(w io.Writer, path string) error {
	fp, err := os.Open(path)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open %s", path)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", path)
		}
	}(fp)

	invalid, err := checkCalibration(w, fp)
	if err != nil {
		return err
	}
	if invalid > 0 {
		return fmt.Errorf("%s: %d invalid line(s)", path, invalid)
	}
	return nil
}

func locatorFromArgs(args []string) calibration.Locator {
	if len(args) == 1 {
		return calibration.StaticLocator(args[0])
	}
	return calibration.EnvLocator{}
}

// checkCalibration writes one diagnostic per non-blank line of r and returns
// the number of lines whose value is not a number.
func checkCalibration(w io.Writer, r io.Reader) (int, error) {
	results, readErr := calibration.Parse(r)

	invalid := 0
	for _, res := range results {
		switch res.Kind {
		case calibration.LineNoSeparator:
			fmt.Fprintf(w, "%s line %d: no '=', ignored\n", skipped(), res.Line)
		case calibration.LineValue:
			if calibration.IsKey(res.Key) {
				fmt.Fprintf(w, "%s line %d: %s = %g\n", good(), res.Line, res.Key, res.Value)
			} else {
				fmt.Fprintf(w, "%s line %d: unknown key %q, ignored\n", skipped(), res.Line, res.Key)
			}
		case calibration.LineInvalid:
			invalid++
			fmt.Fprintf(w, "%s %s\n", bad(), res.Err)
		}
	}

	return invalid, readErr
}
