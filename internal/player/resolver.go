// Package player resolves player identifiers to launchable handles and
// launches them. All invocations use explicit argument slices, never a shell.
package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"

	"github.com/VuDung/serenity/internal/domain"
)

// commander abstracts process execution so launch paths can be tested
type commander interface {
	LookPath(file string) (string, error)
	// Start launches a process without waiting for it
	Start(name string, args ...string) error
	// Run launches a process and waits for it to exit
	Run(name string, args ...string) error
}

type execCommander struct{}

func (execCommander) LookPath(file string) (string, error) { return exec.LookPath(file) }

func (execCommander) Start(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

func (execCommander) Run(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// Resolver maps player identifiers to handles and launches them
type Resolver struct {
	goos      string
	cmd       commander
	overrides map[domain.PlayerID]Override
	logger    *slog.Logger
}

// NewResolver creates a resolver for the current platform.
// overrides replace the registry entry of individual players.
func NewResolver(overrides map[domain.PlayerID]Override, logger *slog.Logger) *Resolver {
	return newResolver(runtime.GOOS, execCommander{}, overrides, logger)
}

func newResolver(goos string, cmd commander, overrides map[domain.PlayerID]Override, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	if overrides == nil {
		overrides = map[domain.PlayerID]Override{}
	}
	return &Resolver{
		goos:      goos,
		cmd:       cmd,
		overrides: overrides,
		logger:    logger,
	}
}

// Resolve returns a handle for playing item with the given player.
// It never fails: unknown identifiers yield a handle that fails at launch.
func (r *Resolver) Resolve(playerID string, item *domain.MediaItem) domain.PlayerHandle {
	id, known := domain.ParsePlayerID(playerID)
	h := domain.PlayerHandle{Player: id, Known: known}
	if item != nil {
		h.Target = item.URL
		h.Title = item.DisplayTitle()
		h.StartOffset = item.ResumeOffset
	}
	if !known {
		r.logger.Debug("unrecognized player identifier", "player", playerID)
	}
	return h
}

// Launch starts the player behind h. It returns once the process has been
// started or has failed to start. Errors wrap domain.ErrPlayerNotFound when
// no launch path exists for the handle.
func (r *Resolver) Launch(ctx context.Context, h domain.PlayerHandle) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !h.Known {
		return fmt.Errorf("unknown player %q: %w", h.Player, domain.ErrPlayerNotFound)
	}
	if h.Target == "" {
		return fmt.Errorf("no playable URL for %q", h.Title)
	}

	if h.Player == domain.PlayerDefault {
		return r.launchDefault(h)
	}
	if o, ok := r.overrides[h.Player]; ok && o.Command != "" {
		return r.launchConfigured(o, h)
	}
	return r.launchRegistered(h)
}

// Available reports whether a launch path for the player exists right now
func (r *Resolver) Available(id domain.PlayerID) bool {
	if id == domain.PlayerDefault {
		_, err := r.cmd.LookPath(r.opener())
		return err == nil
	}
	if o, ok := r.overrides[id]; ok && o.Command != "" {
		_, err := r.cmd.LookPath(o.Command)
		return err == nil || r.goos == "darwin"
	}
	cfg, ok := players[id]
	if !ok {
		return false
	}
	for _, lp := range cfg.platforms[r.goos] {
		if strings.HasPrefix(lp.path, "open-a:") {
			return true
		}
		if _, err := r.cmd.LookPath(lp.path); err == nil {
			return true
		}
	}
	return false
}

// launchRegistered tries each registry launch path for the current platform
func (r *Resolver) launchRegistered(h domain.PlayerHandle) error {
	cfg, ok := players[h.Player]
	if !ok {
		return fmt.Errorf("player %q has no launch configuration: %w", h.Player, domain.ErrPlayerNotFound)
	}
	paths, ok := cfg.platforms[r.goos]
	if !ok {
		return fmt.Errorf("player %q is not available on %s: %w", h.Player, r.goos, domain.ErrPlayerNotFound)
	}

	args := playerArgs(cfg, h)
	var lastErr error

	for _, lp := range paths {
		var err error
		if strings.HasPrefix(lp.path, "open-a:") {
			appName := strings.TrimPrefix(lp.path, "open-a:")
			err = r.openWithApp(appName, h.Target, args, lp.openFlags)
		} else {
			cmdArgs := args
			if lp.argSeparator != "" && len(args) > 0 {
				cmdArgs = append([]string{lp.argSeparator}, args...)
			}
			err = r.startCommand(lp.path, h.Target, cmdArgs)
		}

		if err == nil {
			r.logger.Info("launched player", "player", h.Player, "path", lp.path, "offset", h.StartOffset)
			return nil
		}
		if !errors.Is(err, domain.ErrPlayerNotFound) {
			return err
		}

		r.logger.Debug("launch path not available", "player", h.Player, "path", lp.path, "error", err)
		lastErr = err
	}

	return fmt.Errorf("player %q: %w", h.Player, lastErr)
}

// launchConfigured launches a player whose command comes from configuration
func (r *Resolver) launchConfigured(o Override, h domain.PlayerHandle) error {
	args := append([]string{}, o.Args...)
	args = append(args, titleArgs(players[h.Player].titleFlag, h.Title)...)

	flag := o.StartFlag
	if flag == "" {
		flag = players[h.Player].offsetFlag
	}
	args = append(args, offsetArgs(flag, h.StartOffset)...)

	r.logger.Info("launching configured player", "player", h.Player, "command", o.Command, "args", args)

	// On macOS, GUI apps outside PATH are reachable through 'open -a'
	if r.goos == "darwin" {
		if _, err := r.cmd.LookPath(o.Command); err != nil {
			var openFlags []string
			for _, lp := range players[h.Player].platforms["darwin"] {
				if strings.HasPrefix(lp.path, "open-a:") {
					openFlags = lp.openFlags
					break
				}
			}
			return r.openWithApp(o.Command, h.Target, args, openFlags)
		}
	}

	return r.startCommand(o.Command, h.Target, args)
}

// launchDefault opens the URL using the system default handler
func (r *Resolver) launchDefault(h domain.PlayerHandle) error {
	opener := r.opener()
	if _, err := r.cmd.LookPath(opener); err != nil {
		return fmt.Errorf("system opener %s: %w", opener, domain.ErrPlayerNotFound)
	}

	var args []string
	if r.goos == "windows" {
		args = []string{"/c", "start", "", h.Target}
	} else {
		args = []string{h.Target}
	}

	r.logger.Info("launching with system default", "os", r.goos, "url", h.Target)

	if err := r.cmd.Start(opener, args...); err != nil {
		return wrapStartErr(opener, err)
	}
	return nil
}

func (r *Resolver) opener() string {
	switch r.goos {
	case "darwin":
		return "open"
	case "windows":
		return "cmd"
	default:
		return "xdg-open"
	}
}

// startCommand launches url with a CLI command found in PATH
func (r *Resolver) startCommand(command, url string, args []string) error {
	if _, err := r.cmd.LookPath(command); err != nil {
		return fmt.Errorf("%s: %w", command, domain.ErrPlayerNotFound)
	}
	cmdArgs := append(append([]string{}, args...), url)
	if err := r.cmd.Start(command, cmdArgs...); err != nil {
		return wrapStartErr(command, err)
	}
	return nil
}

// openWithApp opens url with a macOS app using "open -a".
// open exits non-zero when the application does not exist.
func (r *Resolver) openWithApp(appName, url string, playerArgs, openFlags []string) error {
	cmdArgs := append([]string{}, openFlags...)
	cmdArgs = append(cmdArgs, "-a", appName)
	if len(playerArgs) > 0 {
		cmdArgs = append(cmdArgs, "--args")
		cmdArgs = append(cmdArgs, playerArgs...)
	}
	cmdArgs = append(cmdArgs, url)

	if err := r.cmd.Run("open", cmdArgs...); err != nil {
		return fmt.Errorf("open -a %s: %v: %w", appName, err, domain.ErrPlayerNotFound)
	}
	return nil
}

func wrapStartErr(command string, err error) error {
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%s: %w", command, domain.ErrPlayerNotFound)
	}
	return fmt.Errorf("starting %s: %w", command, err)
}
