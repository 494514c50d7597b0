package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/VuDung/serenity/internal/tui/styles"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Manage the playback queue",
	Args:  cobra.NoArgs,
	RunE:  queueListRun,
}

var queueAddCmd = &cobra.Command{
	Use:   "add <title or id>...",
	Short: "Append items to the queue",
	Long:  "Append items to the queue. Each argument is one reference; items already queued are skipped.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  queueAddRun,
}

var queueListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show the queue in play order",
	Args:    cobra.NoArgs,
	RunE:    queueListRun,
}

var queueClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every item from the queue",
	Args:  cobra.NoArgs,
	RunE:  queueClearRun,
}

var queuePlayCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the whole queue",
	Args:  cobra.NoArgs,
	RunE:  queuePlayRun,
}

func init() {
	queueCmd.AddCommand(queueAddCmd)
	queueCmd.AddCommand(queueListCmd)
	queueCmd.AddCommand(queueClearCmd)
	queueCmd.AddCommand(queuePlayCmd)
}

func queueAddRun(cmd *cobra.Command, args []string) error {
	for _, ref := range args {
		item, err := app.library.Find(ref)
		if err != nil {
			return err
		}
		if app.queue.Enqueue(item) {
			fmt.Printf("Queued %s\n", styles.AccentStyle.Render(item.DisplayTitle()))
		} else {
			fmt.Println(styles.DimStyle.Render(item.DisplayTitle() + " is already queued"))
		}
	}
	return nil
}

func queueListRun(cmd *cobra.Command, args []string) error {
	items := app.queue.Items()
	if len(items) == 0 {
		fmt.Println(styles.DimStyle.Render("Queue is empty."))
		return nil
	}
	width := terminalWidth()
	for i, item := range items {
		fmt.Printf("%s %s\n", styles.DimStyle.Render(fmt.Sprintf("%2d.", i+1)), formatItemRow(item, width-4))
	}
	return nil
}

func queueClearRun(cmd *cobra.Command, args []string) error {
	n := app.queue.Len()
	app.queue.Clear()
	fmt.Printf("Removed %d %s from the queue\n", n, plural(n, "item"))
	return nil
}

func queuePlayRun(cmd *cobra.Command, args []string) error {
	res, err := app.dispatcher.PlayAllFromQueue(cmd.Context())
	if err != nil {
		return reported(err)
	}
	if line := describeResult(res, nil); line != "" {
		fmt.Fprintln(os.Stderr, line)
	}
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

