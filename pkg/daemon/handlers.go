package daemon

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/handfix/pkg/config"
	"github.com/charlie0129/handfix/pkg/layer"
	"github.com/charlie0129/handfix/pkg/types"
	"github.com/charlie0129/handfix/pkg/version"
)

func statusFor(err error) int {
	if errors.Is(err, layer.ErrInstanceNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func getConfig(c *gin.Context) {
	fc, err := config.NewRawFileConfigFromConfig(conf)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, fc)
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}

func createInstance(c *gin.Context) {
	id := registry.Create()
	c.IndentedJSON(http.StatusCreated, types.InstanceResponse{ID: id})
}

func listInstances(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, registry.List())
}

func destroyInstance(c *gin.Context) {
	id := c.Param("id")
	if err := registry.Destroy(id); err != nil {
		abortWithError(c, statusFor(err), err)
		return
	}
	c.IndentedJSON(http.StatusOK, "ok")
}

// locateHandJoints runs a batch located by the caller through the layer, as
// if the caller were the upstream provider.
func locateHandJoints(c *gin.Context) {
	var req types.LocateRequest
	if err := c.BindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}

	upstream := func(_ layer.TrackerHandle, _ *layer.LocateInfo, locations *layer.HandJointLocations) layer.Result {
		locations.IsActive = req.IsActive
		locations.Joints = req.Joints
		return req.Result
	}

	var locations layer.HandJointLocations
	var result layer.Result
	err := registry.Do(c.Param("id"), func(inst *layer.Instance) error {
		result = inst.LocateHandJoints(upstream, req.Tracker, &req.Info, &locations)
		return nil
	})
	if err != nil {
		abortWithError(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, types.LocateResponse{
		Result:   result,
		IsActive: locations.IsActive,
		Joints:   locations.Joints,
	})
}

func getCalibration(c *gin.Context) {
	inst, err := registry.Get(c.Param("id"))
	if err != nil {
		abortWithError(c, statusFor(err), err)
		return
	}
	c.IndentedJSON(http.StatusOK, inst.Calibration())
}

func reloadCalibration(c *gin.Context) {
	var resp types.ReloadResponse
	err := registry.Do(c.Param("id"), func(inst *layer.Instance) error {
		report, err := inst.Reload()
		resp.Report = report
		resp.Calibration = inst.Calibration()
		if err != nil {
			resp.Error = err.Error()
		}
		return nil
	})
	if err != nil {
		abortWithError(c, statusFor(err), err)
		return
	}

	logrus.WithFields(resp.Report.LogrusFields()).Infof("calibration of %s reloaded on request", c.Param("id"))

	c.IndentedJSON(http.StatusOK, resp)
}

func streamEvents(c *gin.Context) {
	ch, cancel := hub.Subscribe()
	defer cancel()

	ctx := c.Request.Context()
	c.Stream(func(_ io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, ev.Data)
			return true
		case <-ctx.Done():
			return false
		}
	})
}
