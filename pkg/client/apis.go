package client

import (
	"encoding/json"

	pkgerrors "github.com/pkg/errors"

	"github.com/charlie0129/handfix/pkg/calibration"
	"github.com/charlie0129/handfix/pkg/config"
	"github.com/charlie0129/handfix/pkg/types"
)

func getJSON[T any](c *Client, path, what string) (*T, error) {
	ret, err := c.Get(path)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get %s", what)
	}
	var v T
	if err := json.Unmarshal([]byte(ret), &v); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal %s", what)
	}
	return &v, nil
}

func (c *Client) GetConfig() (*config.RawFileConfig, error) {
	return getJSON[config.RawFileConfig](c, "/config", "config")
}

func (c *Client) GetVersion() (string, error) {
	v, err := getJSON[string](c, "/version", "version")
	if err != nil {
		return "", err
	}
	return *v, nil
}

func (c *Client) ListInstances() ([]string, error) {
	ids, err := getJSON[[]string](c, "/instances", "instances")
	if err != nil {
		return nil, err
	}
	return *ids, nil
}

func (c *Client) CreateInstance() (string, error) {
	ret, err := c.Post("/instances", "")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to create instance")
	}
	var resp types.InstanceResponse
	if err := json.Unmarshal([]byte(ret), &resp); err != nil {
		return "", pkgerrors.Wrapf(err, "failed to unmarshal instance")
	}
	return resp.ID, nil
}

func (c *Client) DestroyInstance(id string) error {
	_, err := c.Delete("/instances/" + id)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to destroy instance %s", id)
	}
	return nil
}

func (c *Client) GetCalibration(id string) (*calibration.State, error) {
	return getJSON[calibration.State](c, "/instances/"+id+"/calibration", "calibration")
}

func (c *Client) ReloadCalibration(id string) (*types.ReloadResponse, error) {
	ret, err := c.Put("/instances/"+id+"/reload", "")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to reload calibration of %s", id)
	}
	var resp types.ReloadResponse
	if err := json.Unmarshal([]byte(ret), &resp); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal reload response")
	}
	return &resp, nil
}

func (c *Client) Locate(id string, req types.LocateRequest) (*types.LocateResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	ret, err := c.Post("/instances/"+id+"/locate", string(payload))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to locate hand joints")
	}
	var resp types.LocateResponse
	if err := json.Unmarshal([]byte(ret), &resp); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal locate response")
	}
	return &resp, nil
}
