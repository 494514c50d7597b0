package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/VuDung/serenity/internal/domain"
	"github.com/VuDung/serenity/internal/playback"
	"github.com/VuDung/serenity/internal/tui"
)

var (
	flagAutoResume bool
	flagRestart    bool
	flagPlayer     string
)

var playCmd = &cobra.Command{
	Use:   "play <title or id>",
	Short: "Play a single item from the catalog",
	Long: `Play a single item. Any pending queue is discarded first.

With --player the item goes straight to that external player for this run,
whatever the saved settings say.`,
	Args: cobra.MinimumNArgs(1),
	RunE: playRun,
}

func init() {
	playCmd.Flags().BoolVarP(&flagAutoResume, "auto-resume", "c", false, "Resume without asking")
	playCmd.Flags().BoolVar(&flagRestart, "restart", false, "Ignore the saved resume point")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "External player for this run: "+playerNames())
}

func playRun(cmd *cobra.Command, args []string) error {
	item, err := app.library.Find(strings.Join(args, " "))
	if err != nil {
		return err
	}
	if flagRestart {
		item.ResumeOffset = 0
	}

	var res playback.Result
	if flagPlayer != "" {
		// In-memory only; never saved
		if err := app.prefs.Set(domain.PrefExternalPlayerFilter, flagPlayer); err != nil {
			return err
		}
		app.dispatcher.DiscardQueue()
		res, err = app.dispatcher.LaunchExternalPlayer(cmd.Context(), item, flagAutoResume)
	} else {
		res, err = app.dispatcher.PlayVideo(cmd.Context(), item, flagAutoResume)
	}
	if errors.Is(err, tui.ErrNoTerminal) {
		return fmt.Errorf("%w (use --auto-resume or --restart)", err)
	}
	if err != nil {
		return reported(err)
	}

	if line := describeResult(res, item); line != "" {
		fmt.Fprintln(os.Stderr, line)
	}
	return nil
}

func playerNames() string {
	names := make([]string, 0, len(domain.KnownPlayers()))
	for _, p := range domain.KnownPlayers() {
		names = append(names, string(p))
	}
	return strings.Join(names, " | ")
}
