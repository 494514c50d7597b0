package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/VuDung/serenity/internal/tui/styles"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := execute(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
