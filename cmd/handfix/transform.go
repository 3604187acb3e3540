package main

import (
	"github.com/spf13/cobra"

	"github.com/charlie0129/handfix/pkg/calibration"
	"github.com/charlie0129/handfix/pkg/layer"
	"github.com/charlie0129/handfix/pkg/types"
)

func NewTransformCommand() *cobra.Command {
	var (
		file    string
		calFile string
	)

	cmd := &cobra.Command{
		Use:     "transform",
		Short:   "Correct a joint batch without the daemon",
		GroupID: gOffline,
		Long: `Correct a joint batch once, in process, and print the result.

The batch has the same format as for "handfix locate". Without --calibration
the factory calibration is used.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := readLocateRequest(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			resp, err := transformBatch(*req, calFile)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&file, "file", "f", "-", "joint batch file")
	f.StringVarP(&calFile, "calibration", "c", "", "calibration file")

	return cmd
}

// transformBatch runs req through a throwaway instance loaded from calFile.
func transformBatch(req types.LocateRequest, calFile string) (*types.LocateResponse, error) {
	inst := layer.NewInstance("offline",
		layer.WithLocator(calibration.StaticLocator(calFile)),
		layer.WithReloadEvery(0),
		layer.WithSynchronousReload(),
	)
	if calFile != "" {
		if _, err := inst.Reload(); err != nil {
			return nil, err
		}
	}

	upstream := func(_ layer.TrackerHandle, _ *layer.LocateInfo, locations *layer.HandJointLocations) layer.Result {
		locations.IsActive = req.IsActive
		locations.Joints = req.Joints
		return req.Result
	}

	var locations layer.HandJointLocations
	result := inst.LocateHandJoints(upstream, req.Tracker, &req.Info, &locations)

	return &types.LocateResponse{
		Result:   result,
		IsActive: locations.IsActive,
		Joints:   locations.Joints,
	}, nil
}
