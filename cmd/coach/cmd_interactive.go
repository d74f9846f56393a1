package main

import (
	"playcoach/cmd/coach/tui"
	"playcoach/cmd/coach/ui"
	"playcoach/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runInteractive launches the situation form.
func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := currentConfig()
	if err != nil {
		return err
	}
	logger := currentLogger()
	client := newClient(cfg, logger)

	logger.For(logging.CategoryUI).Info("starting interactive form",
		zap.String("endpoint", client.Endpoint()),
		zap.String("theme", cfg.UI.Theme),
	)

	return tui.Run(tui.Options{
		Context:     commandContext(cmd),
		Recommender: client,
		Styles:      ui.NewStyles(ui.ResolveTheme(cfg.UI.Theme)),
		Logger:      logger,
		Endpoint:    client.Endpoint(),
	})
}
