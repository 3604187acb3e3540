package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func NewLocateCommand() *cobra.Command {
	var (
		id   string
		file string
	)

	cmd := &cobra.Command{
		Use:     "locate",
		Short:   "Correct a located joint batch through an instance",
		GroupID: gInstance,
		Long: `Send a joint batch to an instance as if it came from the upstream provider,
and print the corrected batch.

The batch is a JSON document: {"result": 0, "isActive": true, "joints": [...]}.
Use "-" to read it from stdin.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := readLocateRequest(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			resp, err := apiClient.Locate(id, *req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&id, "instance", "i", "", "instance id")
	f.StringVarP(&file, "file", "f", "-", "joint batch file")
	_ = cmd.MarkFlagRequired("instance")

	return cmd
}

func NewReloadCommand() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:     "reload",
		Short:   "Reload the calibration of an instance now",
		GroupID: gInstance,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := apiClient.ReloadCalibration(id)
			if err != nil {
				return err
			}
			if resp.Error != "" {
				logrus.Warnf("calibration not reloaded: %s", resp.Error)
			} else {
				logrus.WithFields(resp.Report.LogrusFields()).Info("calibration reloaded")
			}
			for _, lineErr := range resp.Report.Errors {
				cmd.Printf("%s %s\n", bad(), lineErr)
			}
			printCalibration(cmd.OutOrStdout(), "", resp.Calibration)
			if resp.Error != "" {
				return fmt.Errorf("reload failed: %s", resp.Error)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&id, "instance", "i", "", "instance id")
	_ = cmd.MarkFlagRequired("instance")

	return cmd
}
