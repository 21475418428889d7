package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run in the foreground, probing the server and syncing periodically",
	Long: `watch keeps the agent running. Type "slide" (or just press Enter) to
clock in or out, "status" to print the clock status, "sync" to force a pass.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() { errCh <- app.Run(ctx) }()

		go readCommands(ctx)

		color.Cyan("Watching %s, Ctrl+C to stop", cfg.ServerURL)
		<-ctx.Done()
		return <-errCh
	},
}

func readCommands(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		switch strings.TrimSpace(scanner.Text()) {
		case "", "slide":
			_ = reportPunch(app.Producer.Slide(ctx, 1))
		case "status":
			status := app.Producer.Status()
			if d := app.Producer.Duration(time.Now()); d > 0 {
				fmt.Printf("%s for %s\n", status, d.Truncate(time.Second))
			} else {
				fmt.Println(status)
			}
		case "sync":
			result, err := app.Dispatcher.SyncNow(ctx)
			if err != nil {
				color.Red("sync failed: %v", err)
				continue
			}
			fmt.Printf("%s: synced %d of %d\n", result.Status, result.Synced, result.Attempted)
		default:
			fmt.Println(`commands: slide, status, sync`)
		}
	}
}
