package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/charlie0129/handfix/pkg/config"
	"github.com/charlie0129/handfix/pkg/version"
)

func getVersion() (clientVersion, daemonVersion string, err error) {
	daemonVersion, err = apiClient.GetVersion()
	if err != nil {
		return version.Version, "", err
	}
	return version.Version, daemonVersion, nil
}

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)
		},
	}
}

func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		GroupID: gBasic,
		Short:   "Get the current status of handfix",
		Long:    `Get the daemon configuration and the calibration of every instance.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := apiClient.GetConfig()
			if err != nil {
				return fmt.Errorf("failed to get config: %w", err)
			}
			ids, err := apiClient.ListInstances()
			if err != nil {
				return fmt.Errorf("failed to list instances: %w", err)
			}

			conf := config.NewFileFromConfig(raw, "")

			cmd.Println(bold("Daemon configuration:"))
			if conf.ReloadEvery() > 0 {
				cmd.Printf("  Reload calibration every: %s\n", bold("%d batches", conf.ReloadEvery()))
			} else {
				cmd.Printf("  Reload calibration every: %s\n", bold("never (disabled)"))
			}
			cmd.Printf("  Reload in background: %s\n", bool2Text(conf.AsyncReload()))
			if s := conf.RefreshSchedule(); s != "" {
				cmd.Printf("  Refresh schedule: %s\n", bold("%s", s))
			} else {
				cmd.Printf("  Refresh schedule: %s\n", bold("none"))
			}
			cmd.Printf("  Allow non-root users to access the daemon: %s\n", bool2Text(conf.AllowNonRootAccess()))

			cmd.Println()

			cmd.Println(bold("Instances:"))
			if len(ids) == 0 {
				cmd.Println("  No instances.")
				return nil
			}
			for _, id := range ids {
				state, err := apiClient.GetCalibration(id)
				if err != nil {
					cmd.Printf("  %s: %s\n", id, err)
					continue
				}
				cmd.Printf("  %s:\n", bold("%s", id))
				printCalibration(cmd.OutOrStdout(), "    ", *state)
			}
			return nil
		},
	}
}
