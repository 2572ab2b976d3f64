package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartsight-ai/sightchat/internal/backend"
	"github.com/smartsight-ai/sightchat/internal/config"
	"github.com/smartsight-ai/sightchat/internal/logging"
)

// newResetCmd clears the backend's server-held session context without
// opening the chat view.
func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Discard the backend's session memory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
			if err != nil {
				return err
			}
			defer cleanup()

			client := backend.NewClient(cfg.BackendURL, cfg.SessionID, logger)
			msg, err := client.Reset(cmd.Context())
			if err != nil {
				return fmt.Errorf("reset failed: %w", err)
			}
			cmd.Println(msg)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the sightchat version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println("sightchat " + Version)
		},
	}
}
