package player

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VuDung/serenity/internal/domain"
)

type call struct {
	name string
	args []string
	wait bool
}

type fakeCommander struct {
	installed map[string]bool
	startErr  error
	runErr    map[string]error // keyed by app name passed to open -a
	calls     []call
}

func (f *fakeCommander) LookPath(file string) (string, error) {
	if f.installed[file] {
		return "/usr/bin/" + file, nil
	}
	return "", exec.ErrNotFound
}

func (f *fakeCommander) Start(name string, args ...string) error {
	f.calls = append(f.calls, call{name: name, args: args})
	return f.startErr
}

func (f *fakeCommander) Run(name string, args ...string) error {
	f.calls = append(f.calls, call{name: name, args: args, wait: true})
	for i, a := range args {
		if a == "-a" && i+1 < len(args) {
			if err := f.runErr[args[i+1]]; err != nil {
				return err
			}
		}
	}
	return nil
}

func testItem() *domain.MediaItem {
	return &domain.MediaItem{
		ID:           "42",
		Title:        "Heat",
		URL:          "http://server/heat.mkv",
		Duration:     2 * time.Hour,
		ResumeOffset: 90 * time.Second,
	}
}

func TestResolveNeverFails(t *testing.T) {
	r := newResolver("linux", &fakeCommander{}, nil, nil)

	h := r.Resolve("VLC", testItem())
	assert.Equal(t, domain.PlayerVLC, h.Player)
	assert.True(t, h.Known)
	assert.Equal(t, "http://server/heat.mkv", h.Target)
	assert.Equal(t, 90*time.Second, h.StartOffset)

	h = r.Resolve("mxplayer", testItem())
	assert.False(t, h.Known)

	h = r.Resolve("", testItem())
	assert.Equal(t, domain.PlayerDefault, h.Player)
}

func TestLaunchRegisteredPlayer(t *testing.T) {
	fc := &fakeCommander{installed: map[string]bool{"vlc": true}}
	r := newResolver("linux", fc, nil, nil)

	err := r.Launch(context.Background(), r.Resolve("vlc", testItem()))
	require.NoError(t, err)
	require.Len(t, fc.calls, 1)
	assert.Equal(t, "vlc", fc.calls[0].name)
	assert.Equal(t, []string{"--meta-title=Heat", "--start-time=90", "http://server/heat.mkv"}, fc.calls[0].args)
}

func TestLaunchMissingBinaryIsNotFound(t *testing.T) {
	fc := &fakeCommander{}
	r := newResolver("linux", fc, nil, nil)

	err := r.Launch(context.Background(), r.Resolve("vlc", testItem()))
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
	assert.Empty(t, fc.calls)
}

func TestLaunchUnknownPlayerIsNotFound(t *testing.T) {
	fc := &fakeCommander{installed: map[string]bool{"mxplayer": true}}
	r := newResolver("linux", fc, nil, nil)

	err := r.Launch(context.Background(), r.Resolve("mxplayer", testItem()))
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
}

func TestLaunchWrongPlatformIsNotFound(t *testing.T) {
	fc := &fakeCommander{installed: map[string]bool{"iina-cli": true}}
	r := newResolver("linux", fc, nil, nil)

	err := r.Launch(context.Background(), r.Resolve("iina", testItem()))
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
}

func TestLaunchDefaultUsesSystemOpener(t *testing.T) {
	tests := []struct {
		goos   string
		opener string
		args   []string
	}{
		{"linux", "xdg-open", []string{"http://server/heat.mkv"}},
		{"darwin", "open", []string{"http://server/heat.mkv"}},
		{"windows", "cmd", []string{"/c", "start", "", "http://server/heat.mkv"}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			fc := &fakeCommander{installed: map[string]bool{tt.opener: true}}
			r := newResolver(tt.goos, fc, nil, nil)

			require.NoError(t, r.Launch(context.Background(), r.Resolve("default", testItem())))
			require.Len(t, fc.calls, 1)
			assert.Equal(t, tt.opener, fc.calls[0].name)
			assert.Equal(t, tt.args, fc.calls[0].args)
		})
	}
}

func TestLaunchDefaultWithoutOpener(t *testing.T) {
	r := newResolver("linux", &fakeCommander{}, nil, nil)
	err := r.Launch(context.Background(), r.Resolve("default", testItem()))
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
}

func TestLaunchDarwinFallsBackToOpenApp(t *testing.T) {
	fc := &fakeCommander{}
	r := newResolver("darwin", fc, nil, nil)

	require.NoError(t, r.Launch(context.Background(), r.Resolve("vlc", testItem())))
	require.Len(t, fc.calls, 1)
	c := fc.calls[0]
	assert.True(t, c.wait)
	assert.Equal(t, "open", c.name)
	assert.Equal(t, []string{"-a", "VLC", "--args", "--meta-title=Heat", "--start-time=90", "http://server/heat.mkv"}, c.args)
}

func TestLaunchDarwinMissingApp(t *testing.T) {
	fc := &fakeCommander{runErr: map[string]error{"IINA": errors.New("exit status 1")}}
	r := newResolver("darwin", fc, nil, nil)

	err := r.Launch(context.Background(), r.Resolve("iina", testItem()))
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
}

func TestLaunchStartFailureIsNotNotFound(t *testing.T) {
	fc := &fakeCommander{installed: map[string]bool{"mpv": true}, startErr: errors.New("permission denied")}
	r := newResolver("linux", fc, nil, nil)

	err := r.Launch(context.Background(), r.Resolve("mpv", testItem()))
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrPlayerNotFound)
}

func TestLaunchConfiguredOverride(t *testing.T) {
	fc := &fakeCommander{installed: map[string]bool{"/opt/mpv/bin/mpv": true}}
	overrides := map[domain.PlayerID]Override{
		domain.PlayerMPV: {Command: "/opt/mpv/bin/mpv", Args: []string{"--fs"}},
	}
	r := newResolver("linux", fc, overrides, nil)

	require.NoError(t, r.Launch(context.Background(), r.Resolve("mpv", testItem())))
	require.Len(t, fc.calls, 1)
	assert.Equal(t, "/opt/mpv/bin/mpv", fc.calls[0].name)
	assert.Equal(t, []string{"--fs", "--force-media-title=Heat", "--start=90", "http://server/heat.mkv"}, fc.calls[0].args)
}

func TestLaunchConfiguredOverrideWithoutTitleFlag(t *testing.T) {
	fc := &fakeCommander{installed: map[string]bool{"haruna-git": true}}
	overrides := map[domain.PlayerID]Override{
		domain.PlayerHaruna: {Command: "haruna-git"},
	}
	r := newResolver("linux", fc, overrides, nil)

	require.NoError(t, r.Launch(context.Background(), r.Resolve("haruna", testItem())))
	assert.Equal(t, []string{"--mpv-start=90", "http://server/heat.mkv"}, fc.calls[0].args)
}

func TestLaunchSeparateArgFlag(t *testing.T) {
	fc := &fakeCommander{installed: map[string]bool{"ffplay": true}}
	overrides := map[domain.PlayerID]Override{
		domain.PlayerMPV: {Command: "ffplay", StartFlag: "-ss "},
	}
	r := newResolver("linux", fc, overrides, nil)

	require.NoError(t, r.Launch(context.Background(), r.Resolve("mpv", testItem())))
	assert.Equal(t, []string{"--force-media-title=Heat", "-ss", "90", "http://server/heat.mkv"}, fc.calls[0].args)
}

func TestLaunchHonoursCancelledContext(t *testing.T) {
	fc := &fakeCommander{installed: map[string]bool{"vlc": true}}
	r := newResolver("linux", fc, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Launch(ctx, r.Resolve("vlc", testItem()))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fc.calls)
}

func TestAvailable(t *testing.T) {
	fc := &fakeCommander{installed: map[string]bool{"mpv": true, "xdg-open": true}}
	r := newResolver("linux", fc, nil, nil)

	assert.True(t, r.Available(domain.PlayerDefault))
	assert.True(t, r.Available(domain.PlayerMPV))
	assert.False(t, r.Available(domain.PlayerVLC))
	assert.False(t, r.Available(domain.PlayerPotPlayer))
}
