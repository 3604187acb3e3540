package daemon

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	unitName = "handfix.service"
	unitPath = "/etc/systemd/system/" + unitName
)

const unitTemplate = `[Unit]
Description=handfix hand joint pose correction daemon
After=local-fs.target

[Service]
Type=simple
ExecStart=@EXEC@
@ENVIRONMENT@Restart=on-failure
RestartSec=2

[Install]
WantedBy=multi-user.target
`

// UnitOptions is what the generated unit passes to the daemon.
type UnitOptions struct {
	ExePath            string
	ConfigPath         string
	SocketPath         string
	CalibrationPath    string
	AllowNonRootAccess bool
}

// RenderUnit returns the systemd unit running the daemon with o.
func RenderUnit(o UnitOptions) string {
	args := []string{o.ExePath, "daemon"}
	if o.ConfigPath != "" {
		args = append(args, "--config", o.ConfigPath)
	}
	if o.SocketPath != "" {
		args = append(args, "--daemon-socket", o.SocketPath)
	}
	if o.AllowNonRootAccess {
		args = append(args, "--always-allow-non-root-access")
	}

	environment := ""
	if o.CalibrationPath != "" {
		environment = fmt.Sprintf("Environment=HAND_TRACKING_CONFIG_PATH=%s\n", o.CalibrationPath)
	}

	return strings.NewReplacer(
		"@EXEC@", strings.Join(args, " "),
		"@ENVIRONMENT@", environment,
	).Replace(unitTemplate)
}

func Install(o UnitOptions) error {
	// Get the path to the current executable
	exePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get the path to the current executable: %w", err)
	}
	exePath, err = filepath.Abs(exePath)
	if err != nil {
		return fmt.Errorf("failed to get the absolute path to the current executable: %w", err)
	}

	err = os.Chmod(exePath, 0755)
	if err != nil {
		return fmt.Errorf("failed to chmod the current executable to 0755: %w", err)
	}

	logrus.Infof("current executable path: %s", exePath)
	o.ExePath = exePath

	// warn if the file already exists
	_, err = os.Stat(unitPath)
	if err == nil {
		logrus.Warnf("%s already exists, overwriting", unitPath)
	}

	logrus.Infof("writing systemd unit to %s", unitPath)

	err = os.WriteFile(unitPath, []byte(RenderUnit(o)), 0644)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", unitPath, err)
	}

	logrus.Infof("starting handfix")

	if err := systemctl("daemon-reload"); err != nil {
		return err
	}
	return systemctl("enable", "--now", unitName)
}

func systemctl(args ...string) error {
	out, err := exec.Command("systemctl", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("systemctl %s failed: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return nil
}
