package player

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pgale/chime/internal/errors"
)

const (
	connectTimeout  = 10 * time.Second
	connectInterval = 200 * time.Millisecond
	requestTimeout  = 2 * time.Second
)

// MpvBridge drives a hidden mpv instance over its JSON IPC socket. It is
// the production embedded player: media identifiers are resolved through
// mpv's YouTube URL support, audio only. The IPC protocol is fully
// asynchronous, so readiness and state changes arrive as events.
type MpvBridge struct {
	mu         sync.Mutex
	log        *log.Logger
	binary     string
	socketPath string
	cmd        *exec.Cmd
	conn       net.Conn
	enc        *json.Encoder

	nextID   int64
	requests map[int64]chan mpvResponse
	stopped  bool

	events chan BridgeEvent
	done   chan struct{}
}

type mpvRequest struct {
	Command   []any `json:"command"`
	RequestID int64 `json:"request_id,omitempty"`
}

type mpvResponse struct {
	Error     string          `json:"error"`
	Data      json.RawMessage `json:"data"`
	RequestID int64           `json:"request_id"`
}

type mpvMessage struct {
	Event     string          `json:"event"`
	Name      string          `json:"name"`
	Data      json.RawMessage `json:"data"`
	Reason    string          `json:"reason"`
	Error     string          `json:"error"`
	RequestID int64           `json:"request_id"`
}

// NewMpvBridge creates a bridge that will launch the given mpv binary.
// An empty socketPath picks a per-process path in the temp directory.
func NewMpvBridge(binary, socketPath string, logger *log.Logger) *MpvBridge {
	if logger == nil {
		logger = log.Default()
	}
	if binary == "" {
		binary = "mpv"
	}
	if socketPath == "" {
		socketPath = filepath.Join(os.TempDir(), fmt.Sprintf("chime-mpv-%d.sock", os.Getpid()))
	}
	return &MpvBridge{
		log:        logger.With("component", "mpv"),
		binary:     binary,
		socketPath: socketPath,
		requests:   make(map[int64]chan mpvResponse),
		events:     make(chan BridgeEvent, 16),
		done:       make(chan struct{}),
	}
}

// Start launches mpv idle with the IPC server enabled and connects to the
// socket in the background. Readiness is reported through the event stream
// once the connection and property observers are in place.
func (b *MpvBridge) Start(ctx context.Context) error {
	cmd := exec.Command(b.binary,
		"--no-video",
		"--idle=yes",
		"--really-quiet",
		"--no-terminal",
		"--input-ipc-server="+b.socketPath,
	)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch %s: %w", b.binary, err)
	}
	b.mu.Lock()
	b.cmd = cmd
	b.mu.Unlock()

	go b.connect(ctx)
	return nil
}

// connect dials the IPC socket with retries; mpv creates it asynchronously.
func (b *MpvBridge) connect(ctx context.Context) {
	deadline := time.Now().Add(connectTimeout)
	for {
		select {
		case <-ctx.Done():
			return
		case <-b.done:
			return
		default:
		}

		conn, err := net.Dial("unix", b.socketPath)
		if err == nil {
			b.mu.Lock()
			b.conn = conn
			b.enc = json.NewEncoder(conn)
			b.mu.Unlock()

			go b.readLoop(conn)

			// Observe pause transitions; everything else arrives as
			// named events.
			if err := b.send(mpvRequest{Command: []any{"observe_property", 1, "pause"}}); err != nil {
				b.log.Warn("observe_property failed", "err", err)
			}
			b.emit(BridgeEvent{Ready: true})
			return
		}

		if time.Now().After(deadline) {
			b.log.Warn("ipc socket never appeared", "path", b.socketPath)
			return
		}
		time.Sleep(connectInterval)
	}
}

func (b *MpvBridge) readLoop(conn net.Conn) {
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var msg mpvMessage
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			b.log.Debug("unparseable ipc message", "err", err)
			continue
		}

		if msg.Event == "" && msg.RequestID != 0 {
			b.mu.Lock()
			ch, ok := b.requests[msg.RequestID]
			delete(b.requests, msg.RequestID)
			b.mu.Unlock()
			if ok {
				ch <- mpvResponse{Error: msg.Error, Data: msg.Data, RequestID: msg.RequestID}
			}
			continue
		}

		switch msg.Event {
		case "file-loaded":
			b.emit(BridgeEvent{Code: StateCued})
		case "end-file":
			// Only a natural end maps to the ended state; stops and
			// replacements are internal transitions.
			if msg.Reason == "eof" {
				b.emit(BridgeEvent{Code: StateEnded})
			}
		case "property-change":
			if msg.Name != "pause" {
				continue
			}
			var paused bool
			if err := json.Unmarshal(msg.Data, &paused); err != nil {
				continue
			}
			if paused {
				b.emit(BridgeEvent{Code: StatePaused})
			} else {
				b.emit(BridgeEvent{Code: StatePlaying})
			}
		}
	}
}

func (b *MpvBridge) emit(ev BridgeEvent) {
	select {
	case b.events <- ev:
	case <-b.done:
	}
}

// send writes a fire-and-forget command.
func (b *MpvBridge) send(req mpvRequest) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.enc == nil {
		return errors.ErrPlayerNotReady
	}
	return b.enc.Encode(req)
}

// call writes a command and waits for its response.
func (b *MpvBridge) call(command ...any) (json.RawMessage, error) {
	b.mu.Lock()
	if b.enc == nil {
		b.mu.Unlock()
		return nil, errors.ErrPlayerNotReady
	}
	b.nextID++
	id := b.nextID
	ch := make(chan mpvResponse, 1)
	b.requests[id] = ch
	err := b.enc.Encode(mpvRequest{Command: command, RequestID: id})
	b.mu.Unlock()
	if err != nil {
		b.mu.Lock()
		delete(b.requests, id)
		b.mu.Unlock()
		return nil, err
	}

	select {
	case resp := <-ch:
		if resp.Error != "" && resp.Error != "success" {
			return nil, fmt.Errorf("mpv: %s", resp.Error)
		}
		return resp.Data, nil
	case <-time.After(requestTimeout):
		b.mu.Lock()
		delete(b.requests, id)
		b.mu.Unlock()
		return nil, errors.ErrTimeout
	}
}

// LoadVideo replaces the current media with the given video id.
func (b *MpvBridge) LoadVideo(id string) error {
	url := "https://www.youtube.com/watch?v=" + id
	return b.send(mpvRequest{Command: []any{"loadfile", url, "replace"}})
}

// Play resumes playback.
func (b *MpvBridge) Play() error {
	return b.send(mpvRequest{Command: []any{"set_property", "pause", false}})
}

// Pause pauses playback.
func (b *MpvBridge) Pause() error {
	return b.send(mpvRequest{Command: []any{"set_property", "pause", true}})
}

// SeekTo jumps to an absolute offset in seconds.
func (b *MpvBridge) SeekTo(seconds float64) error {
	return b.send(mpvRequest{Command: []any{"seek", seconds, "absolute"}})
}

// SetVolume sets the native 0-100 volume.
func (b *MpvBridge) SetVolume(percent int) error {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return b.send(mpvRequest{Command: []any{"set_property", "volume", percent}})
}

// CurrentTime reads the playback offset in seconds.
func (b *MpvBridge) CurrentTime() (float64, error) {
	data, err := b.call("get_property", "time-pos")
	if err != nil {
		return 0, err
	}
	var seconds float64
	if err := json.Unmarshal(data, &seconds); err != nil {
		return 0, nil
	}
	return seconds, nil
}

// Events returns the raw event stream.
func (b *MpvBridge) Events() <-chan BridgeEvent {
	return b.events
}

// Stop quits mpv and releases the socket.
func (b *MpvBridge) Stop() error {
	b.mu.Lock()
	if b.stopped {
		b.mu.Unlock()
		return nil
	}
	b.stopped = true
	conn := b.conn
	cmd := b.cmd
	b.conn = nil
	b.enc = nil
	b.mu.Unlock()

	close(b.done)

	if conn != nil {
		_ = json.NewEncoder(conn).Encode(mpvRequest{Command: []any{"quit"}})
		_ = conn.Close()
	}
	if cmd != nil && cmd.Process != nil {
		_ = cmd.Wait()
	}
	_ = os.Remove(b.socketPath)
	return nil
}

// Ensure MpvBridge implements Bridge
var _ Bridge = (*MpvBridge)(nil)
