package client

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlie0129/handfix/pkg/layer"
	"github.com/charlie0129/handfix/pkg/types"
	"github.com/charlie0129/handfix/pkg/xrmath"
)

// serve runs handler on a unix socket and returns its path.
func serve(t *testing.T, handler http.Handler) string {
	t.Helper()

	dir, err := os.MkdirTemp("", "handfix")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	socket := filepath.Join(dir, "d.sock")
	l, err := net.Listen("unix", socket)
	require.NoError(t, err)

	srv := &http.Server{Handler: handler}
	go func() { _ = srv.Serve(l) }()
	t.Cleanup(func() { _ = srv.Close() })

	return socket
}

func TestDaemonNotRunning(t *testing.T) {
	c := NewClient(filepath.Join(t.TempDir(), "missing.sock"))
	_, err := c.GetVersion()
	assert.ErrorIs(t, err, ErrDaemonNotRunning)
}

func TestInstanceLifecycle(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /version", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `"v1.2.3"`)
	})
	mux.HandleFunc("POST /instances", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"abc"}`)
	})
	mux.HandleFunc("GET /instances", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `["abc"]`)
	})
	mux.HandleFunc("DELETE /instances/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "abc" {
			http.Error(w, `"layer instance not found"`, http.StatusNotFound)
			return
		}
		_, _ = io.WriteString(w, `"ok"`)
	})

	c := NewClient(serve(t, mux))

	v, err := c.GetVersion()
	require.NoError(t, err)
	assert.Equal(t, "v1.2.3", v)

	id, err := c.CreateInstance()
	require.NoError(t, err)
	assert.Equal(t, "abc", id)

	ids, err := c.ListInstances()
	require.NoError(t, err)
	assert.Equal(t, []string{"abc"}, ids)

	require.NoError(t, c.DestroyInstance("abc"))
	assert.ErrorIs(t, c.DestroyInstance("nope"), ErrNotFound)
}

func TestLocate(t *testing.T) {
	var got types.LocateRequest
	mux := http.NewServeMux()
	mux.HandleFunc("POST /instances/{id}/locate", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(types.LocateResponse{
			Result:   layer.ResultSuccess,
			IsActive: got.IsActive,
			Joints:   got.Joints,
		})
	})

	c := NewClient(serve(t, mux))

	req := types.LocateRequest{
		Result:   layer.ResultSuccess,
		IsActive: true,
		Joints: []layer.JointLocation{
			{Pose: xrmath.Pose{Orientation: xrmath.Identity(), Position: xrmath.Vector3{X: 1}}},
		},
	}
	resp, err := c.Locate("abc", req)
	require.NoError(t, err)
	assert.Equal(t, req.Joints, got.Joints)
	assert.Equal(t, layer.ResultSuccess, resp.Result)
	assert.Equal(t, req.Joints, resp.Joints)
}

func TestServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /instances/{id}/reload", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	c := NewClient(serve(t, mux))

	_, err := c.ReloadCalibration("abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "got 500")
	assert.NotErrorIs(t, err, ErrNotFound)
}
