package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AI2HU/pepychart/internal/chart"
	"github.com/AI2HU/pepychart/internal/config"
	"github.com/AI2HU/pepychart/internal/logger"
	"github.com/AI2HU/pepychart/internal/opener"
	"github.com/AI2HU/pepychart/internal/pepy"
	"github.com/AI2HU/pepychart/internal/services"
)

var (
	cfgFile  string
	logLevel string
	cfg      *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pepychart",
	Short: "Download charts for Python packages",
	Long: `pepychart fetches daily download statistics for a Python package from pepy.tech,
sums them across versions, optionally smooths them with a rolling mean and
draws a line chart.

The API key is read from --api-key, $PEPY_API_KEY (a .env file in the current
directory is honoured) or the config file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		wd, err := os.Getwd()
		if err == nil {
			if err := config.LoadEnv(wd); err != nil {
				logger.Warning("%v", err)
			}
		}

		if cfgFile == "" {
			cfgFile = config.GetConfigPath()
		}

		cfg, err = config.LoadOptional(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		level := cfg.LogLevel
		if cmd.Flags().Changed("log-level") {
			level = logLevel
		}
		logger.Init(logger.ParseLogLevel(level), os.Stderr)
		logger.Debug("Using config %s", cfgFile)

		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pepychart/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warning, error)")

	// Disable completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}

// chartStyle returns the configured style with flag overrides applied by the caller
func chartStyle() chart.Style {
	return chart.Style{
		Color:           cfg.Chart.Color,
		TitleFontSize:   cfg.Chart.TitleFontSize,
		AxisFontSizeAdj: cfg.Chart.AxisFontSizeAdj,
		Width:           cfg.Chart.Width,
		Height:          cfg.Chart.Height,
		DPI:             cfg.Chart.DPI,
	}
}

// newChartService wires the pepy client, renderer and opener together.
// A nil style means the caller never renders.
func newChartService(apiKey string, style *chart.Style, op opener.Opener) (*services.ChartService, *chart.Renderer, error) {
	client := pepy.New(apiKey, cfg.BaseURL, cfg.Timeout)

	if style == nil {
		return services.NewChartService(client, nil, op), nil, nil
	}

	renderer, err := chart.NewRenderer(*style)
	if err != nil {
		return nil, nil, err
	}
	return services.NewChartService(client, renderer, op), renderer, nil
}
