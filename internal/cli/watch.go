package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AI2HU/pepychart/internal/config"
	"github.com/AI2HU/pepychart/internal/models"
	"github.com/AI2HU/pepychart/internal/scheduler"
)

var (
	watchCron   string
	watchRunNow bool
	watchOpts   config.CreateOptions
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate a package chart on a cron schedule",
	Long: `Regenerate the download chart of one package on a cron schedule, for example
to keep an image embedded in a README up to date. Values not given as flags
are taken from the watch section of the config file.`,
	Example: `  pepychart watch -p requests -o requests.png --cron "0 6 * * *" --run-now`,
	RunE:    runWatch,
}

func init() {
	f := watchCmd.Flags()
	f.StringVarP(&watchOpts.Package, "package", "p", "", "The name of the Python package")
	f.StringVarP(&watchOpts.APIKey, "api-key", "a", "", "The pepy.tech API key")
	f.StringVarP(&watchOpts.OutputPath, "output-path", "o", "", "Where to save the image")
	f.IntVarP(&watchOpts.RollingWindow, "rolling-window", "r", 7, "The size of the rolling window (0 disables smoothing)")
	f.StringVar(&watchCron, "cron", "", "Cron expression or descriptor such as @daily (default from config)")
	f.BoolVar(&watchRunNow, "run-now", false, "Regenerate the chart once before waiting for the schedule")
}

func runWatch(cmd *cobra.Command, args []string) error {
	opts := watchOpts
	flags := cmd.Flags()

	if opts.Package == "" {
		opts.Package = cfg.Watch.Package
	}
	if opts.OutputPath == "" {
		opts.OutputPath = cfg.Watch.OutputPath
	}
	if !flags.Changed("rolling-window") {
		opts.RollingWindow = cfg.Chart.RollingWindow
		if cfg.Watch.RollingWindow > 0 {
			opts.RollingWindow = cfg.Watch.RollingWindow
		}
	}
	expr := watchCron
	if expr == "" {
		expr = cfg.Watch.Cron
	}
	if opts.Package == "" {
		return fmt.Errorf("package name is required (use --package or watch.package in the config)")
	}

	apiKey, err := cfg.ResolveAPIKey(opts.APIKey)
	if err != nil {
		return err
	}
	opts.APIKey = apiKey
	opts.Color = cfg.Chart.Color
	opts.TitleFontSize = cfg.Chart.TitleFontSize
	opts.AxisFontSizeAdj = cfg.Chart.AxisFontSizeAdj

	style := chartStyle()
	service, _, err := newChartService(apiKey, &style, nil)
	if err != nil {
		return err
	}

	sched := scheduler.New(service)
	if _, err := sched.Add(expr, opts); err != nil {
		return err
	}

	fmt.Printf("%s👀 Watching %s%s\n", HeaderStyle, opts.Package, Reset)
	fmt.Printf("%s=========%s\n", DimStyle, Reset)
	fmt.Println(FormatLabelValue("Cron:", expr))
	fmt.Println(FormatLabelValue("Output:", opts.OutputPath))
	fmt.Println(FormatLabelValue("Rolling window:", fmt.Sprintf("%d", opts.RollingWindow)))

	if watchRunNow {
		opts.CreateImage = true
		if err := sched.RunNow(context.Background(), opts); err != nil {
			return err
		}
		fmt.Printf("%sImage saved at %s%s\n", SuccessStyle, opts.OutputPath, Reset)
	}

	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	for _, next := range sched.Next() {
		fmt.Println(FormatLabelValue("Next run:", next.Format(models.DateLayout+" 15:04:05")))
	}
	fmt.Printf("%s📝 Press Ctrl+C to stop%s\n", InfoStyle, Reset)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c
	fmt.Printf("\n%s⏹️  Stopping scheduler...%s\n", InfoStyle, Reset)
	sched.Stop()
	fmt.Printf("%s✅ Scheduler stopped%s\n", SuccessStyle, Reset)

	return nil
}
