package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/VuDung/serenity/internal/domain"
	"github.com/VuDung/serenity/internal/tui/styles"
)

// Flags for item add
var (
	flagItemID      string
	flagItemTitle   string
	flagItemURL     string
	flagItemLength  time.Duration
	flagItemOffset  time.Duration
	flagItemShow    string
	flagItemSeason  int
	flagItemEpisode int
	flagItemWatched bool
)

var itemCmd = &cobra.Command{
	Use:     "item",
	Aliases: []string{"items"},
	Short:   "Manage the catalog",
	Args:    cobra.NoArgs,
	RunE:    itemListRun,
}

var itemAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add or replace a catalog item",
	Example: `  serenity item add --title "Ronin" --url ~/Videos/ronin.mkv --duration 2h2m
  serenity item add --show "Firefly" --season 1 --episode 2 --title "The Train Job" --url https://example.com/ff0102.mkv`,
	Args: cobra.NoArgs,
	RunE: itemAddRun,
}

var itemListCmd = &cobra.Command{
	Use:     "list [query]",
	Aliases: []string{"ls"},
	Short:   "List catalog items, optionally filtered by a fuzzy title query",
	RunE:    itemListRun,
}

var itemRemoveCmd = &cobra.Command{
	Use:     "rm <title or id>",
	Aliases: []string{"remove"},
	Short:   "Remove an item from the catalog",
	Args:    cobra.MinimumNArgs(1),
	RunE:    itemRemoveRun,
}

var itemWatchedCmd = &cobra.Command{
	Use:   "watched <title or id>",
	Short: "Mark an item as watched",
	Args:  cobra.MinimumNArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return markRun(args, true) },
}

var itemUnwatchedCmd = &cobra.Command{
	Use:   "unwatched <title or id>",
	Short: "Mark an item as unwatched and clear its resume point",
	Args:  cobra.MinimumNArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return markRun(args, false) },
}

func init() {
	f := itemAddCmd.Flags()
	f.StringVar(&flagItemID, "id", "", "Item ID (generated when empty)")
	f.StringVarP(&flagItemTitle, "title", "t", "", "Title")
	f.StringVarP(&flagItemURL, "url", "u", "", "Playable URL or file path")
	f.DurationVarP(&flagItemLength, "duration", "d", 0, "Runtime, e.g. 1h42m")
	f.DurationVar(&flagItemOffset, "offset", 0, "Resume point, e.g. 25m30s")
	f.StringVar(&flagItemShow, "show", "", "Show title (makes the item an episode)")
	f.IntVar(&flagItemSeason, "season", 0, "Season number")
	f.IntVar(&flagItemEpisode, "episode", 0, "Episode number")
	f.BoolVar(&flagItemWatched, "watched", false, "Mark as watched")
	_ = itemAddCmd.MarkFlagRequired("title")
	_ = itemAddCmd.MarkFlagRequired("url")

	itemCmd.AddCommand(itemAddCmd)
	itemCmd.AddCommand(itemListCmd)
	itemCmd.AddCommand(itemRemoveCmd)
	itemCmd.AddCommand(itemWatchedCmd)
	itemCmd.AddCommand(itemUnwatchedCmd)
}

func itemAddRun(cmd *cobra.Command, args []string) error {
	item := &domain.MediaItem{
		ID:           flagItemID,
		Title:        flagItemTitle,
		URL:          flagItemURL,
		Duration:     flagItemLength,
		ResumeOffset: flagItemOffset,
		IsPlayed:     flagItemWatched,
		Type:         domain.MediaTypeMovie,
	}
	if flagItemShow != "" {
		item.Type = domain.MediaTypeEpisode
		item.ShowTitle = flagItemShow
		item.SeasonNum = flagItemSeason
		item.EpisodeNum = flagItemEpisode
	}

	if err := app.library.Add(item); err != nil {
		return err
	}
	fmt.Printf("Added %s %s\n", styles.AccentStyle.Render(item.DisplayTitle()), styles.DimStyle.Render("("+item.ID+")"))
	return nil
}

func itemListRun(cmd *cobra.Command, args []string) error {
	var (
		items []*domain.MediaItem
		err   error
	)
	if query := strings.Join(args, " "); query != "" {
		items, err = app.library.Search(query)
	} else {
		items, err = app.library.List()
	}
	if err != nil {
		return err
	}

	if len(items) == 0 {
		fmt.Println(styles.DimStyle.Render("No items."))
		return nil
	}
	width := terminalWidth()
	for _, item := range items {
		fmt.Println(formatItemRow(item, width))
	}
	return nil
}

func itemRemoveRun(cmd *cobra.Command, args []string) error {
	item, err := app.library.Find(strings.Join(args, " "))
	if err != nil {
		return err
	}
	if err := app.library.Remove(item.ID); err != nil {
		return err
	}
	fmt.Printf("Removed %s\n", item.DisplayTitle())
	return nil
}

func markRun(args []string, watched bool) error {
	item, err := app.library.Find(strings.Join(args, " "))
	if err != nil {
		return err
	}
	if watched {
		err = app.library.MarkWatched(item.ID)
	} else {
		err = app.library.MarkUnwatched(item.ID)
	}
	if err != nil {
		return err
	}

	status := "unwatched"
	if watched {
		status = "watched"
	}
	fmt.Printf("Marked %s as %s\n", item.DisplayTitle(), status)
	return nil
}
