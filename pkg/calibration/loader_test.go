package calibration

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calibration.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoaderReloadKeepsFieldOnParseFailure(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	path := writeSource(t, "yaw=90\npitch=notanumber\n")
	prev := Default()

	next, report, err := NewLoader(StaticLocator(path)).Reload(prev)
	require.NoError(t, err)

	assert.Equal(t, 90.0, next.YawDeg)
	assert.Equal(t, prev.PitchDeg, next.PitchDeg)
	assert.Equal(t, prev.Translation, next.Translation)
	assert.Equal(t, path, report.Path)
	require.Len(t, report.Errors, 1)

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Data["key"] == KeyPitch && e.Data["value"] == "notanumber" {
			warned = true
		}
	}
	assert.True(t, warned, "expected a warning naming the offending key")
}

func TestLoaderReloadUnavailable(t *testing.T) {
	prev := State{YawDeg: 12.5, PitchDeg: -3, Translation: Default().Translation}

	tests := []struct {
		name    string
		locator Locator
	}{
		{name: "unset", locator: StaticLocator("")},
		{name: "missing file", locator: StaticLocator(filepath.Join(t.TempDir(), "nope.txt"))},
		{name: "directory", locator: StaticLocator(t.TempDir())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, report, err := NewLoader(tt.locator).Reload(prev)
			if tt.name == "directory" {
				// Opening a directory succeeds on most platforms, reading it fails.
				if err != nil {
					assert.Equal(t, prev, next)
				}
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSourceUnavailable))
			assert.Equal(t, prev, next)
			assert.Empty(t, report.Applied)
		})
	}
}

func TestLoaderFullSource(t *testing.T) {
	path := writeSource(t, "yaw=10\npitch=20\ntranslation_x=1\ntranslation_y=2\ntranslation_z=3\nunknown=4\n")

	next, report, err := NewLoader(StaticLocator(path)).Reload(Default())
	require.NoError(t, err)
	assert.Equal(t, State{YawDeg: 10, PitchDeg: 20, Translation: next.Translation}, next)
	assert.Equal(t, 1.0, next.Translation.X)
	assert.Equal(t, 2.0, next.Translation.Y)
	assert.Equal(t, 3.0, next.Translation.Z)
	assert.Equal(t, []string{"unknown"}, report.Ignored)
}

func TestEnvLocatorResolvedEveryReload(t *testing.T) {
	first := writeSource(t, "yaw=1\n")
	second := writeSource(t, "yaw=2\n")
	loader := NewLoader(nil)

	t.Setenv(EnvPath, "")
	next, _, err := loader.Reload(Default())
	assert.True(t, errors.Is(err, ErrSourceUnavailable))
	assert.Equal(t, Default(), next)

	t.Setenv(EnvPath, first)
	next, _, err = loader.Reload(next)
	require.NoError(t, err)
	assert.Equal(t, 1.0, next.YawDeg)

	t.Setenv(EnvPath, second)
	next, _, err = loader.Reload(next)
	require.NoError(t, err)
	assert.Equal(t, 2.0, next.YawDeg)
}

func TestDefaultRotation(t *testing.T) {
	q := Default().Rotation()
	assert.InDelta(t, 0, q.X, 1e-9)
	assert.InDelta(t, 0.7071067811865476, q.Y, 1e-9)
	assert.InDelta(t, -0.7071067811865476, q.Z, 1e-9)
	assert.InDelta(t, 0, q.W, 1e-9)
}
