package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	daemonutils "github.com/charlie0129/handfix/pkg/utils/daemon"
)

var gInstallation = "Installation:"

func init() {
	commandGroups = append(commandGroups, gInstallation)
}

// NewInstallCommand .
func NewInstallCommand() *cobra.Command {
	allowNonRootAccess := false
	calibrationPath := os.Getenv("HAND_TRACKING_CONFIG_PATH")

	cmd := &cobra.Command{
		Use:     "install",
		Short:   "Install handfix daemon as a systemd service",
		GroupID: gInstallation,
		Long: `Install handfix daemon as a systemd service (system-wide).

This makes handfix run in the background and automatically start on boot. You must run this command as root.

By default, only root user is allowed to access the handfix daemon. Use --allow-non-root-access to let other users talk to it without sudo.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if allowNonRootAccess {
				logrus.Info("non-root users are allowed to access the handfix daemon.")
			} else {
				logrus.Info("only root user is allowed to access the handfix daemon.")
			}
			if calibrationPath == "" {
				logrus.Warn("no calibration file given, the daemon will use the factory calibration")
			}

			err := daemonutils.Install(daemonutils.UnitOptions{
				ConfigPath:         configPath,
				SocketPath:         unixSocketPath,
				CalibrationPath:    calibrationPath,
				AllowNonRootAccess: allowNonRootAccess,
			})
			if err != nil {
				// check if current user is root
				if os.Geteuid() != 0 {
					logrus.Errorf("you must run this command as root")
				}
				return fmt.Errorf("failed to install daemon: %v", err)
			}

			logrus.Infof("installation succeeded")

			exePath, _ := os.Executable()

			cmd.Printf("systemd will use current binary (%s) at startup so please make sure you do not move this binary. Once this binary is moved or deleted, you will need to run ``handfix install'' again.\n", exePath)

			return nil
		},
	}

	cmd.Flags().BoolVar(&allowNonRootAccess, "allow-non-root-access", false, "Allow non-root users to access handfix daemon.")
	cmd.Flags().StringVar(&calibrationPath, "calibration", calibrationPath, "calibration file the daemon reads (HAND_TRACKING_CONFIG_PATH)")

	return cmd
}

// NewUninstallCommand .
func NewUninstallCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "uninstall",
		Short:   "Uninstall handfix daemon",
		GroupID: gInstallation,
		Long: `Stop handfix daemon and remove its systemd service.

You must run this command as root.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			err := daemonutils.Uninstall()
			if err != nil {
				// check if current user is root
				if os.Geteuid() != 0 {
					logrus.Errorf("you must run this command as root")
				}
				return fmt.Errorf("failed to uninstall daemon: %v", err)
			}

			logrus.Infof("successfully uninstalled handfix")
			return nil
		},
	}
}
