package player

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/VuDung/serenity/internal/domain"
)

// completionSlack is how close to the end a position counts as watched
const completionSlack = 30 * time.Second

// InternalPlayer plays queued items as one mpv playlist and tracks the
// playback position over mpv's JSON IPC socket.
type InternalPlayer struct {
	command string
	args    []string
	logger  *slog.Logger
}

// NewInternalPlayer creates the built-in player. An empty command means "mpv".
func NewInternalPlayer(command string, args []string, logger *slog.Logger) *InternalPlayer {
	if command == "" {
		command = "mpv"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &InternalPlayer{command: command, args: args, logger: logger}
}

// Play drains the request queue into a single session and blocks until the
// player exits. The queue is drained only once the player has started, so a
// failed start leaves it intact. A result is reported for every item that
// was reached.
func (p *InternalPlayer) Play(ctx context.Context, req domain.InternalRequest) error {
	if req.Queue == nil || req.Queue.IsEmpty() {
		return domain.ErrQueueEmpty
	}
	if _, err := exec.LookPath(p.command); err != nil {
		return fmt.Errorf("internal player %s: %w", p.command, domain.ErrPlayerNotFound)
	}
	items := req.Queue.Items()

	// Randomized IPC socket path
	socketDir, err := os.MkdirTemp("", "serenity-mpv-*")
	if err != nil {
		return fmt.Errorf("creating temp dir for mpv socket: %w", err)
	}
	defer os.RemoveAll(socketDir)
	socketPath := filepath.Join(socketDir, "socket")

	args := append([]string{}, p.args...)
	args = append(args, "--input-ipc-server="+socketPath, "--really-quiet")
	args = append(args, sessionArgs(items, req.AutoResume)...)

	cmd := exec.CommandContext(ctx, p.command, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	p.logger.Info("starting internal player", "command", p.command, "items", len(items), "autoResume", req.AutoResume)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", p.command, err)
	}
	drain(req.Queue, len(items))

	exited := make(chan struct{})
	tracked := make(chan progress, 1)
	go func() {
		tracked <- trackSocket(socketPath, len(items), exited)
	}()

	if err := cmd.Wait(); err != nil {
		// mpv exits non-zero on user quit, which is normal
		p.logger.Debug("internal player exited", "error", err)
	}
	close(exited)

	prog := <-tracked
	if req.OnResult != nil {
		for _, r := range prog.results(items) {
			req.OnResult(r)
		}
	}
	return nil
}

// drain removes the n items handed to the session from the queue head
func drain(q domain.Queue, n int) {
	for i := 0; i < n; i++ {
		if _, ok := q.DequeueHead(); !ok {
			return
		}
	}
}

// sessionArgs builds one mpv file-local option group per item:
// --{ --force-media-title=T [--start=+N] URL --}
// Only a single-item session resumes, and only when asked to.
func sessionArgs(items []*domain.MediaItem, autoResume bool) []string {
	var args []string
	for _, item := range items {
		args = append(args, "--{", "--force-media-title="+item.DisplayTitle())
		if start := sessionStart(item, autoResume, len(items)); start > 0 {
			args = append(args, fmt.Sprintf("--start=+%.0f", start.Seconds()))
		}
		args = append(args, item.URL, "--}")
	}
	return args
}

func sessionStart(item *domain.MediaItem, autoResume bool, sessionLen int) time.Duration {
	if !autoResume || sessionLen != 1 || !item.IsPartiallyWatched() {
		return 0
	}
	return item.ResumeOffset
}

// progress is what the IPC tracker observed for a session
type progress struct {
	positions map[int]time.Duration // playlist index -> last time-pos
	lastIndex int                   // highest playlist index reached, -1 if none
}

// results converts tracked positions into one PlaybackResult per item that
// reported a position. An item is completed only when it stopped within
// completionSlack of its runtime; skipping ahead keeps the position.
func (p progress) results(items []*domain.MediaItem) []domain.PlaybackResult {
	var out []domain.PlaybackResult
	for i, item := range items {
		if i > p.lastIndex {
			break
		}
		pos, ok := p.positions[i]
		if !ok {
			continue
		}
		completed := item.Duration > 0 && pos >= item.Duration-completionSlack
		out = append(out, domain.PlaybackResult{Item: item, Position: pos, Completed: completed})
	}
	return out
}

// trackSocket waits for the mpv IPC socket and follows it until mpv exits
func trackSocket(socketPath string, n int, exited <-chan struct{}) progress {
	if !waitForSocket(socketPath, exited) {
		return progress{lastIndex: -1}
	}

	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return progress{lastIndex: -1}
	}
	defer conn.Close()

	for i, prop := range []string{"time-pos", "playlist-pos"} {
		cmd := map[string]interface{}{
			"command":    []interface{}{"observe_property", i + 1, prop},
			"request_id": 100 + i,
		}
		data, _ := json.Marshal(cmd)
		data = append(data, '\n')
		if _, err := conn.Write(data); err != nil {
			return progress{lastIndex: -1}
		}
	}

	return trackEvents(conn, n)
}

// waitForSocket polls for the socket for up to 5s. It gives up as soon as
// exited is closed.
func waitForSocket(socketPath string, exited <-chan struct{}) bool {
	for i := 0; i < 50; i++ {
		if _, err := os.Stat(socketPath); err == nil {
			return true
		}
		select {
		case <-exited:
			return false
		case <-time.After(100 * time.Millisecond):
		}
	}
	return false
}

// trackEvents reads mpv property-change events until r is exhausted
func trackEvents(r io.Reader, n int) progress {
	p := progress{positions: make(map[int]time.Duration), lastIndex: -1}
	current := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		var event struct {
			Event string   `json:"event"`
			Name  string   `json:"name"`
			Data  *float64 `json:"data"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil {
			continue
		}
		if event.Event != "property-change" || event.Data == nil {
			continue
		}

		switch event.Name {
		case "playlist-pos":
			idx := int(*event.Data)
			if idx >= 0 && idx < n {
				current = idx
				if idx > p.lastIndex {
					p.lastIndex = idx
				}
			}
		case "time-pos":
			if *event.Data > 0 {
				p.positions[current] = time.Duration(*event.Data * float64(time.Second))
				if current > p.lastIndex {
					p.lastIndex = current
				}
			}
		}
	}

	return p
}

var _ domain.InternalPlayer = (*InternalPlayer)(nil)
