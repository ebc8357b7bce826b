package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/AI2HU/pepychart/internal/models"
)

var (
	statsPackage string
	statsAPIKey  string
	statsWindow  int
	statsDays    int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print daily download statistics for a package",
	Long: `Print the downloads reported by pepy.tech for a package, the daily totals
across all versions (optionally smoothed) and a short summary.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVarP(&statsPackage, "package", "p", "", "The name of the Python package")
	statsCmd.Flags().StringVarP(&statsAPIKey, "api-key", "a", "", "The pepy.tech API key")
	statsCmd.Flags().IntVarP(&statsWindow, "rolling-window", "r", 0, "The size of the rolling window (0 disables smoothing)")
	statsCmd.Flags().IntVarP(&statsDays, "days", "d", 14, "Number of most recent days to list (0 lists all)")

	statsCmd.MarkFlagRequired("package")
}

func runStats(cmd *cobra.Command, args []string) error {
	apiKey, err := cfg.ResolveAPIKey(statsAPIKey)
	if err != nil {
		return err
	}

	service, _, err := newChartService(apiKey, nil, nil)
	if err != nil {
		return err
	}

	data, err := service.Load(context.Background(), statsPackage, statsWindow)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	summary := data.Summary

	fmt.Fprintf(out, "%s📊 Download Statistics: %s%s\n", HeaderStyle, CountStyle+statsPackage+Reset, Reset)
	fmt.Fprintf(out, "%s========================%s\n", DimStyle, Reset)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%sAll-time Downloads: %s\n", LabelStyle, FormatCount64(summary.TotalDownloads))
	fmt.Fprintf(out, "%sPeriod Downloads: %s\n", LabelStyle, FormatCount64(summary.PeriodTotal))
	fmt.Fprintf(out, "%sPeriod: %s\n", LabelStyle, FormatMeta(fmt.Sprintf("%s to %s (%d days)",
		summary.FirstDay.Format(models.DateLayout), summary.LastDay.Format(models.DateLayout), summary.Days)))
	fmt.Fprintf(out, "%sPeak Day: %s\n", LabelStyle, FormatMeta(fmt.Sprintf("%s with %d downloads",
		summary.PeakDay.Format(models.DateLayout), summary.PeakDownloads)))
	fmt.Fprintf(out, "%sMean per Day: %s\n", LabelStyle, FormatValue(fmt.Sprintf("%.1f", summary.MeanPerDay)))
	fmt.Fprintln(out)

	printSeries(out, data.Series, data.Totals, statsDays)
	return nil
}

// printSeries lists the last days of the series, newest last
func printSeries(out io.Writer, series *models.Series, totals models.DailyTotals, days int) {
	start := 0
	if days > 0 && series.Len() > days {
		start = series.Len() - days
	}

	valueHeader := "DOWNLOADS"
	if series.Window > 0 {
		valueHeader = fmt.Sprintf("MEAN(%d)", series.Window)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%sDATE\tTOTAL\t%s%s\n", LabelStyle, valueHeader, Reset)
	fmt.Fprintf(w, "%s────\t─────\t─────────%s\n", DimStyle, Reset)

	for i := start; i < series.Len(); i++ {
		date := series.Timestamps[i].Format(models.DateLayout)
		value := FormatMeta("-")
		if series.Defined(i) {
			value = FormatValue(fmt.Sprintf("%.1f", series.Values[i]))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", date, FormatCount64(totals[date]), value)
	}

	w.Flush()
}
