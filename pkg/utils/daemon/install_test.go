package daemon

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderUnit(t *testing.T) {
	unit := RenderUnit(UnitOptions{
		ExePath:            "/usr/local/bin/handfix",
		ConfigPath:         "/etc/handfix.json",
		SocketPath:         "/run/handfix.sock",
		CalibrationPath:    "/etc/handfix/calibration.txt",
		AllowNonRootAccess: true,
	})

	assert.Contains(t, unit, "ExecStart=/usr/local/bin/handfix daemon --config /etc/handfix.json --daemon-socket /run/handfix.sock --always-allow-non-root-access\n")
	assert.Contains(t, unit, "Environment=HAND_TRACKING_CONFIG_PATH=/etc/handfix/calibration.txt\nRestart=on-failure\n")
	assert.NotContains(t, unit, "@")
}

func TestRenderUnitMinimal(t *testing.T) {
	unit := RenderUnit(UnitOptions{ExePath: "/opt/handfix"})

	assert.Contains(t, unit, "ExecStart=/opt/handfix daemon\nRestart=on-failure\n")
	assert.False(t, strings.Contains(unit, "Environment="))
}
