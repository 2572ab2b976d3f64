// Package cli wires configuration, logging, the backend client, and the chat
// view into the sightchat command tree.
package cli

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/smartsight-ai/sightchat/internal/backend"
	"github.com/smartsight-ai/sightchat/internal/camera"
	"github.com/smartsight-ai/sightchat/internal/config"
	"github.com/smartsight-ai/sightchat/internal/logging"
	"github.com/smartsight-ai/sightchat/internal/session"
	"github.com/smartsight-ai/sightchat/internal/ui"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var newSession bool
	var noCamera bool

	rootCmd := &cobra.Command{
		Use:           "sightchat",
		Short:         "Terminal chat client for the SmartSight multimodal search backend",
		Long:          "sightchat talks to a SmartSight inference backend: type a question, attach images or capture one from the camera, and get back refined insights alongside the reference images the backend retrieved.",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runChat(newSession, noCamera)
		},
	}

	rootCmd.Flags().BoolVar(&newSession, "new-session", false, "start with a fresh server-side session id")
	rootCmd.Flags().BoolVar(&noCamera, "no-camera", false, "disable camera capture commands")

	rootCmd.AddCommand(newResetCmd(), newVersionCmd())
	return rootCmd
}

func runChat(newSession, noCamera bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Printf("failed to initialize logger: %v", err)
		return err
	}
	defer cleanup()

	sessionID := cfg.SessionID
	if newSession {
		sessionID = uuid.NewString()
	}
	logger.Info("starting chat", "backend", cfg.BackendURL, "session_id", sessionID)

	client := backend.NewClient(cfg.BackendURL, sessionID, logger)
	controller := session.NewController(client, logger)

	var cam *camera.Camera
	if !noCamera {
		cam = camera.New(&camera.FFmpegDevice{Path: cfg.CameraDevice}, cfg.CameraSingleShot, logger)
		defer func() {
			if err := cam.Close(); err != nil {
				logger.Error("failed to release camera", "error", err)
			}
		}()
	}

	model := ui.New(controller, cam, client, ui.NewTheme(cfg.Theme), logger)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("chat ui failed: %w", err)
	}
	return nil
}
