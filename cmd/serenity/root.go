package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/VuDung/serenity/internal/config"
	"github.com/VuDung/serenity/internal/domain"
	"github.com/VuDung/serenity/internal/library"
	"github.com/VuDung/serenity/internal/log"
	"github.com/VuDung/serenity/internal/playback"
	"github.com/VuDung/serenity/internal/player"
	"github.com/VuDung/serenity/internal/queue"
	"github.com/VuDung/serenity/internal/store"
	"github.com/VuDung/serenity/internal/tui"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagConfig string
	flagDebug  bool
)

// annotationPrefsOnly marks commands that need settings but not the catalog
const annotationPrefsOnly = "prefs-only"

// application holds everything loadApp builds for the running command.
type application struct {
	prefs      *config.Preferences
	cfg        *config.Config
	logger     *slog.Logger
	logCloser  io.Closer
	store      *store.CatalogStore
	library    *library.Service
	queue      *queue.PlaybackQueue
	resolver   *player.Resolver
	dispatcher *playback.Dispatcher
}

var app = &application{}

var rootCmd = &cobra.Command{
	Use:   "serenity",
	Short: "Play your catalog with the built-in or an external video player",
	Long: `Serenity keeps a small catalog of videos with their resume points and
hands them to mpv, or to the external player chosen in your settings.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadApp,
}

// execute runs the root command, then saves the queue and releases resources.
func execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if cerr := app.close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default: ~/.config/serenity/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(queueCmd)
	rootCmd.AddCommand(itemCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadApp loads settings and wires the catalog, queue and dispatcher.
func loadApp(cmd *cobra.Command, args []string) error {
	prefs, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg, err := prefs.Config()
	if err != nil {
		return err
	}
	app.prefs = prefs
	app.cfg = cfg

	app.logger, app.logCloser = newLogger(cfg)
	slog.SetDefault(app.logger)

	if cmd.Annotations[annotationPrefsOnly] == "true" {
		return nil
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	app.logger.Info("starting serenity", "version", Version, "command", cmd.Name())

	st, err := store.NewCatalogStore(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	app.store = st
	app.library = library.NewService(st, app.logger)

	app.queue = queue.New()
	if _, err := app.library.RestoreQueue(app.queue); err != nil {
		app.logger.Warn("failed to restore queue", "error", err)
	}

	app.resolver = player.NewResolver(cfg.Overrides(), app.logger)
	internal := player.NewInternalPlayer(cfg.InternalPlayer.Command, cfg.InternalPlayer.Args, app.logger)

	app.dispatcher = playback.NewDispatcher(
		prefs,
		app.queue,
		app.resolver,
		internal,
		tui.NewPrompter(app.logger),
		tui.NewNotifier(os.Stderr),
		app.logger,
	)
	app.dispatcher.SetResumeRecorder(app.library)
	return nil
}

// newLogger returns a stderr logger in debug mode, otherwise the configured
// file logger. File logging failures fall back to a null logger.
func newLogger(cfg *config.Config) (*slog.Logger, io.Closer) {
	if flagDebug {
		return log.NewConsoleLogger(os.Stderr, slog.LevelDebug), nil
	}
	logger, closer, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		return log.NullLogger(), nil
	}
	return logger, closer
}

// close persists the queue and releases the catalog and log file
func (a *application) close() error {
	var errs []error
	if a.library != nil && a.queue != nil {
		if err := a.library.SnapshotQueue(a.queue); err != nil {
			errs = append(errs, fmt.Errorf("saving queue: %w", err))
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			errs = append(errs, err)
		}
		a.store = nil
	}
	if a.logCloser != nil {
		a.logCloser.Close()
		a.logCloser = nil
	}
	return errors.Join(errs...)
}

// reported maps dispatch outcomes that were already shown to the user as a
// notice to success. Dispatch failures stay errors.
func reported(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrDispatchFailed):
		return err
	case errors.Is(err, domain.ErrQueueEmpty), errors.Is(err, domain.ErrContinuationUnsupported):
		return nil
	default:
		return err
	}
}
