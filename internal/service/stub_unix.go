//go:build !windows
// +build !windows

package service

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrServiceUnsupported is returned by the service controls outside Windows,
// where the gateway is meant to run under systemd or a container runtime.
var ErrServiceUnsupported = errors.New("service control is only available on Windows")

func unsupported(action string) error {
	return fmt.Errorf("%s on %s: %w", action, runtime.GOOS, ErrServiceUnsupported)
}

// RunService runs app in the foreground. isDebug has no effect here.
func RunService(isDebug bool, app *Application) {
	app.Run()
}

func InstallService(exePath string) error {
	return unsupported("install " + exePath)
}

func UninstallService() error {
	return unsupported("uninstall")
}

func StartService() error {
	return unsupported("start")
}

func StopService() error {
	return unsupported("stop")
}

// IsWindowsService is always false outside Windows
func IsWindowsService() (bool, error) {
	return false, nil
}
