package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func NewInstanceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "instance",
		Short:   "Manage layer instances in the daemon",
		GroupID: gInstance,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "create",
			Short: "Create an instance with the factory calibration",
			RunE: func(cmd *cobra.Command, _ []string) error {
				id, err := apiClient.CreateInstance()
				if err != nil {
					return err
				}
				cmd.Println(id)
				return nil
			},
		},
		&cobra.Command{
			Use:   "destroy [id]",
			Short: "Reset and remove an instance",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				if err := apiClient.DestroyInstance(args[0]); err != nil {
					return err
				}
				logrus.Infof("successfully destroyed instance %s", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List instances",
			RunE: func(cmd *cobra.Command, _ []string) error {
				ids, err := apiClient.ListInstances()
				if err != nil {
					return fmt.Errorf("failed to list instances: %w", err)
				}
				for _, id := range ids {
					cmd.Println(id)
				}
				return nil
			},
		},
	)

	return cmd
}
