package player

import (
	"fmt"
	"os/exec"
	"runtime"
)

// IINA implements the Backend interface for macOS native IINA playback.
// IINA does not expose mpv's IPC socket, so progress, seeking and volume
// degrade to no-ops; the process is fire-and-forget.
type IINA struct {
	cmd    *exec.Cmd
	exited chan struct{}
}

func NewIINA() *IINA {
	return &IINA{
		exited: make(chan struct{}),
	}
}

func (m *IINA) Load(rawURL string, title string) error {
	if runtime.GOOS != "darwin" {
		return fmt.Errorf("IINA is only supported on macOS")
	}

	safeURL, err := sanitizeMediaTarget(rawURL)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	// IINA accepts mpv-specific arguments via the '--args' separator.
	args := []string{
		"-a", "IINA",
		"--args", fmt.Sprintf("--force-media-title=%s", sanitizeTitle(title)),
		safeURL,
	}

	m.cmd = exec.Command("open", args...)

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("LaunchServices failed to invoke IINA: %w", err)
	}

	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	return nil
}

func (m *IINA) Done() <-chan struct{} {
	return m.exited
}

// Stub implementations for the rest of the interface.
func (m *IINA) TogglePause() error         { return nil }
func (m *IINA) Paused() (bool, error)      { return false, fmt.Errorf("not supported on IINA") }
func (m *IINA) Position() (float64, error) { return 0, fmt.Errorf("not supported on IINA") }
func (m *IINA) Duration() (float64, error) { return 0, fmt.Errorf("not supported on IINA") }
func (m *IINA) SeekTo(float64) error       { return nil }
func (m *IINA) SetVolume(float64) error    { return nil }

func (m *IINA) StartTicker(func(position, duration float64)) {}
func (m *IINA) StopTicker()                                  {}

func (m *IINA) Close() error {
	if m.cmd != nil && m.cmd.Process != nil {
		_ = m.cmd.Process.Kill()
	}
	return nil
}
