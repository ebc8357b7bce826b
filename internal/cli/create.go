package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AI2HU/pepychart/internal/config"
	"github.com/AI2HU/pepychart/internal/opener"
)

var createOpts config.CreateOptions

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Fetch statistics for a package and draw its download chart",
	Example: `  pepychart create -p requests -i -o requests.png
  pepychart create -p requests -a $PEPY_API_KEY -i -o requests.png -r 30 -c "#1E90FFFF" -O`,
	RunE: runCreate,
}

func init() {
	f := createCmd.Flags()
	f.StringVarP(&createOpts.Package, "package", "p", "", "The name of the Python package")
	f.StringVarP(&createOpts.APIKey, "api-key", "a", "", "The pepy.tech API key")
	f.BoolVarP(&createOpts.CreateImage, "create-image", "i", false, "Whether to create the chart or not")
	f.StringVarP(&createOpts.OutputPath, "output-path", "o", "", "Where to save the image")
	f.IntVarP(&createOpts.RollingWindow, "rolling-window", "r", 7, "The size of the rolling window (0 disables smoothing)")
	f.BoolVarP(&createOpts.OpenImage, "open-image", "O", false, "Whether to open the image after it's created")
	f.StringVarP(&createOpts.Color, "color", "c", "#FF0000FF", "The prevailing color")
	f.IntVarP(&createOpts.TitleFontSize, "font-size", "f", 14, "The title font size; axis labels are 4 points smaller")

	createCmd.MarkFlagRequired("package")
}

func runCreate(cmd *cobra.Command, args []string) error {
	opts := createOpts
	applyChartDefaults(cmd, &opts)

	apiKey, err := cfg.ResolveAPIKey(opts.APIKey)
	if err != nil {
		return err
	}
	opts.APIKey = apiKey

	if err := opts.Validate(); err != nil {
		return err
	}

	style := chartStyle()
	style.Color = opts.Color
	style.TitleFontSize = opts.TitleFontSize
	style.AxisFontSizeAdj = opts.AxisFontSizeAdj

	var op opener.Opener = opener.Nop{}
	if opts.OpenImage {
		op = opener.System{}
	}

	service, _, err := newChartService(opts.APIKey, &style, op)
	if err != nil {
		return err
	}

	data, err := service.Create(context.Background(), &opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.CreateImage {
		fmt.Fprintf(out, "%sImage saved at %s%s\n", SuccessStyle, opts.OutputPath, Reset)
		return nil
	}

	summary := data.Summary
	fmt.Fprintf(out, "%s: %s downloads over %s days (%s all time)\n",
		FormatValue(summary.Package),
		FormatCount64(summary.PeriodTotal),
		FormatCount(summary.Days),
		FormatCount64(summary.TotalDownloads),
	)
	fmt.Fprintf(out, "%sUse --create-image and --output-path to draw the chart%s\n", DimStyle, Reset)
	return nil
}

// applyChartDefaults fills unset chart flags from the config file
func applyChartDefaults(cmd *cobra.Command, opts *config.CreateOptions) {
	flags := cmd.Flags()
	if !flags.Changed("rolling-window") {
		opts.RollingWindow = cfg.Chart.RollingWindow
	}
	if !flags.Changed("color") {
		opts.Color = cfg.Chart.Color
	}
	if !flags.Changed("font-size") {
		opts.TitleFontSize = cfg.Chart.TitleFontSize
	}
	opts.AxisFontSizeAdj = cfg.Chart.AxisFontSizeAdj
}
