package service

import (
	"os"
	"syscall"
	"time"

	"condo-panel/logger"
)

// PanelService handles panel-level controls such as restarting the process.
type PanelService struct{}

// RestartPanel asks the running process to restart itself after the delay.
// main traps SIGHUP and rebuilds the web server, so new settings take effect.
func (s *PanelService) RestartPanel(delay time.Duration) error {
	p, err := os.FindProcess(syscall.Getpid())
	if err != nil {
		return err
	}
	go func() {
		time.Sleep(delay)
		err := p.Signal(syscall.SIGHUP)
		if err != nil {
			logger.Error("failed to send SIGHUP signal:", err)
		}
	}()
	return nil
}
