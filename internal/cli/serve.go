package cli

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"knight-quest/internal/app"
	"knight-quest/internal/config"
)

// ServeCmd runs the Telegram bot and the scheduler until interrupted.
func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram bot with the daily reset and morning briefing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			application, err := app.New(cfg)
			if err != nil {
				return fmt.Errorf("create application: %w", err)
			}

			if err := application.Start(); err != nil {
				return fmt.Errorf("start application: %w", err)
			}
			defer application.Stop()

			waitForShutdown()
			log.Println("👋 Shutting down")
			return nil
		},
	}
}

func waitForShutdown() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
}
