package player

import (
	"crypto/rand"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/afrorhythm/afro/log"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
)

// MPV implements the Backend interface over mpv's JSON-IPC protocol.
type MPV struct {
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when the mpv process exits
	ended      chan struct{} // closed on eof or process exit
	endedOnce  *sync.Once
	events     *EventListener
	tickerStop chan struct{}
	mu         sync.Mutex // protects socket writes
}

// NewMPV creates an MPV backend. No process is started until Load.
func NewMPV() *MPV {
	return &MPV{
		exited: make(chan struct{}),
		ended:  make(chan struct{}),
	}
}

// Load starts playback of the given URL. If an mpv instance is already
// running it loads the new source into it over IPC instead of spawning a
// second process.
func (m *MPV) Load(rawURL string, title string) error {
	safeURL, err := sanitizeMediaTarget(rawURL)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}
	safeTitle := sanitizeTitle(title)

	m.ended = make(chan struct{})
	m.endedOnce = &sync.Once{}

	if m.IsRunning() {
		if _, err := m.sendCommand([]interface{}{"loadfile", safeURL, "replace"}); err != nil {
			return fmt.Errorf("load into running mpv: %w", err)
		}
		_ = m.Set("force-media-title", safeTitle)
		return nil
	}

	// Random socket path under os.TempDir for cross-platform support
	// (macOS $TMPDIR is /var/folders/..., not /tmp).
	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(os.TempDir(), fmt.Sprintf("afro-%x.sock", randomBytes))
	}

	// Pass only the socket, title and URL. No --vo, --profile or --hwdec,
	// the user's mpv.conf stays in charge.
	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--no-video",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		fmt.Sprintf("--force-media-title=%s", safeTitle),
		"--idle=yes",
		safeURL,
	}

	m.cmd = exec.Command("mpv", args...)

	// Detach from the parent process group so a shell exit does not take
	// the player down with it.
	m.cmd.SysProcAttr = sysProcAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	// Reap the process to prevent zombies.
	m.exited = make(chan struct{})
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
		m.signalEnded()
	}()

	if err := m.waitForSocket(); err != nil {
		select {
		case <-m.exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = m.cmd.Process.Kill()
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	// Natural completion comes in as an eof-reached property change.
	m.events = NewEventListener(m.socketPath, func(property string, data interface{}) {
		if property == "eof-reached" {
			if reached, ok := data.(bool); ok && reached {
				m.signalEnded()
			}
		}
	})
	if err := m.events.Start(); err != nil {
		log.Warnf("mpv event listener unavailable, relying on process exit: %v", err)
	}

	return nil
}

func (m *MPV) signalEnded() {
	if m.endedOnce == nil {
		return
	}
	ended := m.ended
	m.endedOnce.Do(func() { close(ended) })
}

// Done returns a channel closed when the loaded track finishes or the mpv
// process goes away.
func (m *MPV) Done() <-chan struct{} {
	return m.ended
}

// waitForSocket polls until the mpv IPC socket accepts connections.
func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// Position returns the current playback position in seconds.
func (m *MPV) Position() (float64, error) {
	return m.getFloatProperty("time-pos")
}

// Duration returns the total length of the current media in seconds.
func (m *MPV) Duration() (float64, error) {
	return m.getFloatProperty("duration")
}

// Paused returns whether playback is currently suspended.
func (m *MPV) Paused() (bool, error) {
	data, err := m.sendCommand([]interface{}{"get_property", "pause"})
	if err != nil {
		return false, err
	}
	paused, ok := data.(bool)
	if !ok {
		return false, nil
	}
	return paused, nil
}

// SeekTo moves playback to the given absolute position in seconds.
func (m *MPV) SeekTo(seconds float64) error {
	_, err := m.sendCommand([]interface{}{"seek", seconds, "absolute"})
	return err
}

// SetVolume applies a [0, 1] volume. mpv's native scale is 0-100.
func (m *MPV) SetVolume(volume float64) error {
	return m.Set("volume", volume*100)
}

// IsRunning reports whether mpv is responding to IPC commands.
func (m *MPV) IsRunning() bool {
	if m.socketPath == "" {
		return false
	}

	select {
	case <-m.exited:
		return false
	default:
	}

	_, err := m.sendCommand([]interface{}{"get_property", "pid"})
	return err == nil
}

// StartTicker polls the engine for position and duration and reports them
// through the callback once a second.
func (m *MPV) StartTicker(callback func(position, duration float64)) {
	if m.tickerStop != nil {
		return
	}

	m.tickerStop = make(chan struct{})
	go func() {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-m.tickerStop:
				return
			case <-m.exited:
				m.tickerStop = nil
				return
			case <-ticker.C:
				if !m.IsRunning() {
					continue
				}

				pos, err := m.Position()
				if err != nil {
					continue
				}

				// Duration can be unknown for live streams.
				dur, err := m.Duration()
				if err != nil {
					dur = 0
				}

				callback(pos, dur)
			}
		}
	}()
}

// StopTicker stops the polling task if it is running.
func (m *MPV) StopTicker() {
	if m.tickerStop != nil {
		close(m.tickerStop)
		m.tickerStop = nil
	}
}

// TogglePause inverts the engine's pause property.
func (m *MPV) TogglePause() error {
	paused, err := m.Paused()
	if err != nil {
		return err
	}
	return m.Set("pause", !paused)
}

// Set assigns an mpv property.
func (m *MPV) Set(property string, value interface{}) error {
	_, err := m.sendCommand([]interface{}{"set_property", property, value})
	return err
}

// Close shuts the mpv process down and cleans up its socket.
func (m *MPV) Close() error {
	m.StopTicker()

	if m.events != nil {
		m.events.Stop()
	}

	if m.socketPath == "" {
		return nil
	}

	// Graceful quit first.
	_, _ = m.sendCommand([]interface{}{"quit"})

	select {
	case <-m.exited:
	case <-time.After(3 * time.Second):
		_ = killProcess(m.cmd)
	}

	_ = os.Remove(m.socketPath)
	return nil
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

// getFloatProperty retrieves a float64 mpv property over IPC.
func (m *MPV) getFloatProperty(name string) (float64, error) {
	data, err := m.sendCommand([]interface{}{"get_property", name})
	if err != nil {
		return 0, err
	}

	if data == nil {
		return 0, fmt.Errorf("property %s: nil response", name)
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}

	return val, nil
}

// sanitizeMediaTarget validates that a target is safe to hand to mpv and
// cannot be mistaken for a flag.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	// Treat as a local file path.
	return filepath.Clean(l), nil
}

// sanitizeTitle strips characters that break the IPC line protocol.
func sanitizeTitle(title string) string {
	t := strings.ReplaceAll(title, "\n", " ")
	t = strings.ReplaceAll(t, "\r", " ")
	t = strings.ReplaceAll(t, "\t", " ")
	t = strings.ReplaceAll(t, "\x00", "")
	return strings.TrimSpace(t)
}
