package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/charlie0129/handfix/pkg/client"
)

var (
	logLevel       = "info"
	unixSocketPath = "/var/run/handfix.sock"
	configPath     = "/etc/handfix.json"
)

var (
	gBasic        = "Basic:"
	gInstance     = "Instances:"
	gOffline      = "Offline:"
	commandGroups = []string{
		gBasic,
		gInstance,
		gOffline,
	}
)

var apiClient *client.Client

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(err error) {
	if errors.Is(err, client.ErrDaemonNotRunning) {
		fmt.Fprintln(os.Stderr, "\nError: handfix daemon is not running")
		fmt.Fprintln(os.Stderr, "Start it with 'handfix daemon' or check --daemon-socket.")
	} else if errors.Is(err, client.ErrPermissionDenied) {
		fmt.Fprintln(os.Stderr, "\nError: Permission Denied")
		fmt.Fprintln(os.Stderr, "  - Try running the command again with 'sudo'")
		fmt.Fprintln(os.Stderr, "  - Or set allowNonRootAccess in the daemon config to grant permissions to your user")
	}
}

// groupOf returns the group of cmd or of its closest grouped ancestor.
func groupOf(cmd *cobra.Command) string {
	for c := cmd; c != nil; c = c.Parent() {
		if c.GroupID != "" {
			return c.GroupID
		}
	}
	return ""
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "handfix",
		Short: "handfix corrects the pose of tracked hand joints",
		Long: `handfix corrects the pose of tracked hand joints reported by a hand tracking
provider. Every joint is rotated by a calibrated yaw and pitch and offset by a
calibrated translation.

The calibration is read from the key=value file named by HAND_TRACKING_CONFIG_PATH
and re-read periodically, so it can be tuned while an application is running.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			err := setupLogger()
			if err != nil {
				return err
			}

			apiClient = client.NewClient(unixSocketPath)

			if g := groupOf(cmd); g != gBasic && g != gInstance {
				return nil
			}

			if clientVersion, daemonVersion, err := getVersion(); err == nil {
				if daemonVersion != clientVersion {
					logrus.WithFields(logrus.Fields{
						"clientVersion": clientVersion,
						"daemonVersion": daemonVersion,
					}).Warn("Version mismatch between client and daemon. handfix may not work as expected.")
				}
			}

			return nil
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", configPath, "config file path")
	globalFlags.StringVar(&unixSocketPath, "daemon-socket", unixSocketPath, "handfix daemon unix socket path")

	for _, i := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewDaemonCommand(),
		NewVersionCommand(),
		NewStatusCommand(),
		NewInstanceCommand(),
		NewLocateCommand(),
		NewReloadCommand(),
		NewCalibrationCommand(),
		NewTransformCommand(),
		NewInstallCommand(),
		NewUninstallCommand(),
	)

	return cmd
}
