// Package playback routes playback requests to the internal player or an
// external player application, with a single fallback to the default player.
package playback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/VuDung/serenity/internal/domain"
	"github.com/VuDung/serenity/internal/queue"
	"github.com/VuDung/serenity/internal/resume"
)

// preferences supplies the dispatch settings (consumer-defined interface)
type preferences interface {
	Snapshot() domain.PlaybackConfig
}

// playerResolver maps player identifiers to handles and launches them
// (consumer-defined interface)
type playerResolver interface {
	Resolve(playerID string, item *domain.MediaItem) domain.PlayerHandle
	Launch(ctx context.Context, h domain.PlayerHandle) error
}

// ResumeRecorder persists the position reached by the internal player
type ResumeRecorder interface {
	RecordResume(ctx context.Context, itemID string, offset time.Duration, completed bool) error
}

// Dispatcher decides which player handles a request and launches it.
// It is driven by a single actor; calls must not overlap.
type Dispatcher struct {
	prefs    preferences
	queue    *queue.PlaybackQueue
	resolver playerResolver
	internal domain.InternalPlayer
	prompter domain.Prompter
	notifier domain.Notifier
	recorder ResumeRecorder
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher that owns q for its lifetime.
// A nil prompter dismisses every prompt; a nil notifier drops notices.
func NewDispatcher(
	prefs preferences,
	q *queue.PlaybackQueue,
	resolver playerResolver,
	internal domain.InternalPlayer,
	prompter domain.Prompter,
	notifier domain.Notifier,
	logger *slog.Logger,
) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	if q == nil {
		q = queue.New()
	}
	if prompter == nil {
		prompter = dismissPrompter{}
	}
	if notifier == nil {
		notifier = discardNotifier{}
	}
	return &Dispatcher{
		prefs:    prefs,
		queue:    q,
		resolver: resolver,
		internal: internal,
		prompter: prompter,
		notifier: notifier,
		logger:   logger,
	}
}

// SetResumeRecorder registers where internal playback positions are saved
func (d *Dispatcher) SetResumeRecorder(r ResumeRecorder) {
	d.recorder = r
}

// Queue returns the queue owned by the dispatcher
func (d *Dispatcher) Queue() *queue.PlaybackQueue {
	return d.queue
}

// PlayVideo plays a single item. Any pending queue is discarded first.
func (d *Dispatcher) PlayVideo(ctx context.Context, item *domain.MediaItem, autoResume bool) (Result, error) {
	if item == nil {
		return Result{State: StateReported}, fmt.Errorf("play video: %w", domain.ErrItemNotFound)
	}
	logger := d.requestLogger("play_video", item)
	d.discardQueue(logger)

	cfg := d.snapshot(logger)
	if cfg.ExternalPlayerEnabled {
		return d.launchExternal(ctx, logger, cfg, item, autoResume)
	}

	d.queue.Enqueue(item)
	res, err := d.playInternal(ctx, logger, autoResume)
	if err != nil {
		// Leave no trace of a request that never started
		d.queue.Clear()
	}
	return res, err
}

// LaunchExternalPlayer plays item with the selected external player,
// asking whether to resume when the item is partially watched.
func (d *Dispatcher) LaunchExternalPlayer(ctx context.Context, item *domain.MediaItem, autoResume bool) (Result, error) {
	if item == nil {
		return Result{State: StateReported}, fmt.Errorf("launch external player: %w", domain.ErrItemNotFound)
	}
	logger := d.requestLogger("launch_external", item)
	return d.launchExternal(ctx, logger, d.snapshot(logger), item, autoResume)
}

// PlayAllFromQueue plays the pending queue. The internal player takes the
// whole queue; an external player takes only the head item and only when
// queue continuation is enabled.
func (d *Dispatcher) PlayAllFromQueue(ctx context.Context) (Result, error) {
	logger := d.requestLogger("play_all", nil)

	if d.queue.IsEmpty() {
		d.notify(logger, domain.NoticeQueueEmpty)
		return Result{State: StateReported}, domain.ErrQueueEmpty
	}

	cfg := d.snapshot(logger)
	if !cfg.ExternalPlayerEnabled {
		return d.playInternal(ctx, logger, false)
	}

	if !cfg.QueueContinuationEnabled {
		logger.Info("queue continuation disabled for external players", "queued", d.queue.Len())
		d.notify(logger, domain.NoticeContinuationUnsupported)
		return Result{State: StateReported, Route: RouteExternal}, domain.ErrContinuationUnsupported
	}

	head, _ := d.queue.DequeueHead()
	logger = logger.With("itemID", head.ID)
	return d.launchExternal(ctx, logger, cfg, head, false)
}

// DiscardQueue clears any pending queue ahead of single-item playback and
// tells the user. It reports how many items were dropped.
func (d *Dispatcher) DiscardQueue() int {
	return d.discardQueue(d.requestLogger("discard_queue", nil))
}

func (d *Dispatcher) discardQueue(logger *slog.Logger) int {
	n := d.queue.Len()
	if n == 0 {
		return 0
	}
	logger.Info("clearing queue before single-item playback", "queued", n)
	d.queue.Clear()
	d.notify(logger, domain.NoticeQueueCleared)
	return n
}

func (d *Dispatcher) launchExternal(
	ctx context.Context,
	logger *slog.Logger,
	cfg domain.PlaybackConfig,
	item *domain.MediaItem,
	autoResume bool,
) (Result, error) {
	selected := cfg.SelectedExternalPlayer
	id, _ := domain.ParsePlayerID(selected)

	decision := resume.Decide(item, autoResume, id != domain.PlayerDefault, !d.queue.IsEmpty())
	res := Result{State: StateRouteChosen, Route: RouteExternal, Decision: decision}
	logger.Debug("dispatch state", "state", res.State, "player", selected, "decision", decision)

	switch decision {
	case resume.PlayImmediately:
		item.ResumeOffset = 0
	case resume.Prompt:
		res.State = StateResumePrompted
		choice, err := d.prompter.Ask(ctx, resumePrompt(item.ResumeOffset))
		logger.Info("resume prompt answered", "choice", choice, "error", err)
		if err != nil {
			res.State = StateAbandoned
			return res, fmt.Errorf("resume prompt: %w", err)
		}
		switch choice {
		case domain.ChoiceResume:
		case domain.ChoiceRestart:
			item.ResumeOffset = 0
		default:
			res.State = StateAbandoned
			return res, nil
		}
	}

	return d.launch(ctx, logger, res, selected, item)
}

// launch tries the selected player, then the default player once if the
// selected one could not be found.
func (d *Dispatcher) launch(
	ctx context.Context,
	logger *slog.Logger,
	res Result,
	selected string,
	item *domain.MediaItem,
) (Result, error) {
	res.State = StateLaunching

	h := d.resolver.Resolve(selected, item)
	logger.Info("launching external player", "player", h.Player, "offset", h.StartOffset)

	first := d.resolver.Launch(ctx, h)
	if first == nil {
		res.State = StateSucceeded
		res.Player = h.Player
		return res, nil
	}

	// Retrying the default player with itself cannot change the outcome
	if !errors.Is(first, domain.ErrPlayerNotFound) || h.Player == domain.PlayerDefault {
		return d.fail(logger, res, first)
	}

	logger.Warn("selected player not found, falling back to default", "player", h.Player, "error", first)
	fallback := d.resolver.Resolve(string(domain.PlayerDefault), item)
	if second := d.resolver.Launch(ctx, fallback); second != nil {
		return d.fail(logger, res, first, second)
	}

	res.State = StateFellBackToDefault
	res.Player = fallback.Player
	res.FellBack = true
	return res, nil
}

func (d *Dispatcher) playInternal(ctx context.Context, logger *slog.Logger, autoResume bool) (Result, error) {
	res := Result{State: StateLaunching, Route: RouteInternal}
	logger.Info("routing to internal player", "queued", d.queue.Len(), "autoResume", autoResume)

	err := d.internal.Play(ctx, domain.InternalRequest{
		Queue:      d.queue,
		AutoResume: autoResume,
		OnResult:   d.resultHandler(ctx, logger),
	})
	if err != nil {
		return d.fail(logger, res, err)
	}

	res.State = StateSucceeded
	return res, nil
}

// fail reports a terminal launch failure to the user exactly once
func (d *Dispatcher) fail(logger *slog.Logger, res Result, errs ...error) (Result, error) {
	res.State = StateReported
	err := errors.Join(append([]error{domain.ErrDispatchFailed}, errs...)...)
	logger.Error("playback dispatch failed", "error", err)
	d.notify(logger, domain.NoticeLaunchFailed)
	return res, err
}

// resultHandler writes positions reported by the internal player back into
// the items and hands them to the recorder.
func (d *Dispatcher) resultHandler(ctx context.Context, logger *slog.Logger) func(domain.PlaybackResult) {
	return func(r domain.PlaybackResult) {
		if r.Item == nil {
			return
		}
		offset := r.Position
		if r.Completed {
			offset = 0
			r.Item.IsPlayed = true
		}
		r.Item.ResumeOffset = offset

		logger.Info("playback result", "itemID", r.Item.ID, "position", r.Position, "completed", r.Completed)

		if d.recorder == nil {
			return
		}
		if err := d.recorder.RecordResume(ctx, r.Item.ID, offset, r.Completed); err != nil {
			logger.Warn("failed to record resume offset", "itemID", r.Item.ID, "error", err)
		}
	}
}

func (d *Dispatcher) snapshot(logger *slog.Logger) domain.PlaybackConfig {
	cfg := d.prefs.Snapshot()
	logger.Debug("dispatch state",
		"state", StateConfigChecked,
		"externalPlayer", cfg.ExternalPlayerEnabled,
		"continuation", cfg.QueueContinuationEnabled,
		"selected", cfg.SelectedExternalPlayer,
	)
	return cfg
}

func (d *Dispatcher) notify(logger *slog.Logger, kind domain.NoticeKind) {
	logger.Debug("notice", "kind", kind)
	d.notifier.Notify(notice(kind))
}

func (d *Dispatcher) requestLogger(op string, item *domain.MediaItem) *slog.Logger {
	logger := d.logger.With("requestID", uuid.NewString(), "op", op)
	if item != nil {
		logger = logger.With("itemID", item.ID)
	}
	logger.Debug("dispatch state", "state", StateReceived)
	return logger
}

type dismissPrompter struct{}

func (dismissPrompter) Ask(context.Context, domain.Prompt) (domain.Choice, error) {
	return domain.ChoiceDismissed, nil
}

type discardNotifier struct{}

func (discardNotifier) Notify(domain.Notice) {}
