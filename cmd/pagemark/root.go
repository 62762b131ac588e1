package main

import (
	"fmt"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"pagemark/internal/app"
	"pagemark/internal/config"
	"pagemark/internal/prefs"
	"pagemark/internal/settings"
	"pagemark/internal/storage"
	"pagemark/internal/store"
	"pagemark/internal/util"
	"pagemark/pkg/ai"
	"pagemark/pkg/reader"
)

// cliState carries the wired application for command Run funcs.
type cliState struct {
	cfg      config.Config
	app      *app.App
	settings *settings.Store
	prefs    *prefs.Store
}

func newRootCmd() *cobra.Command {
	state := &cliState{}
	var configPath string

	root := &cobra.Command{
		Use:           "pagemark",
		Short:         "Personal e-book reader with an offline-aware AI assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional; a missing file is not an error.
			_ = godotenv.Load()

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			util.InitLogger(cfg.LogLevel)

			st, err := store.NewGormStore(filepath.Join(cfg.DataDir, "library.db"))
			if err != nil {
				return fmt.Errorf("open library: %w", err)
			}
			files, err := storage.NewFileStore(cfg.DataDir)
			if err != nil {
				return err
			}
			settingsStore, err := settings.NewStore(filepath.Join(cfg.DataDir, "settings.yaml"), cfg.GeminiAPIKey)
			if err != nil {
				return err
			}
			prefsStore, err := prefs.NewStore(filepath.Join(cfg.DataDir, "prefs.yaml"))
			if err != nil {
				return err
			}
			assistant, err := ai.NewAssistant(ai.AssistantConfig{
				DataDir:   cfg.DataDir,
				Settings:  settingsStore,
				Probe:     ai.NewHTTPProbe(cfg.NetworkProbeURL),
				Generator: ai.NewGeminiClient(settingsStore.APIKey, cfg.GeminiModel),
			})
			if err != nil {
				return err
			}
			application, err := app.New(app.Config{
				Store:     st,
				Files:     files,
				Engines:   reader.NewRegistry(reader.NewEpubEngine(), reader.NewPdfEngine()),
				Assistant: assistant,
			})
			if err != nil {
				return err
			}

			state.cfg = cfg
			state.app = application
			state.settings = settingsStore
			state.prefs = prefsStore
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml (optional)")

	root.AddCommand(
		newImportCmd(state),
		newLibraryCmd(state),
		newOpenCmd(state),
		newDeleteCmd(state),
		newSearchCmd(state),
		newProgressCmd(state),
		newAskCmd(state),
		newExplainCmd(state),
		newTranslateCmd(state),
		newSimilarCmd(state),
		newSummarizeCmd(state),
		newQueueCmd(state),
		newAICmd(state),
		newHighlightCmd(state),
		newNoteCmd(state),
		newPrefsCmd(state),
	)
	return root
}
