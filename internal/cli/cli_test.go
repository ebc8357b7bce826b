package cli

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AI2HU/pepychart/internal/config"
	"github.com/AI2HU/pepychart/internal/models"
	"github.com/AI2HU/pepychart/internal/pepy"
	"github.com/AI2HU/pepychart/internal/stats"
)

const sampleBody = `{
	"id": "requests",
	"total_downloads": 2500000,
	"downloads": {
		"2023-01-01": {"1.0": 5, "1.1": 3},
		"2023-01-02": {"1.1": 10},
		"2023-01-03": {"1.1": 12, "2.0": 3}
	}
}`

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	rootCmd.PersistentFlags().VisitAll(reset)
	cfgFile = ""
}

// run executes the CLI against a fake pepy server and a temporary config
func run(t *testing.T, handler http.HandlerFunc, args ...string) (string, error) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	testCfg := config.DefaultConfig()
	testCfg.BaseURL = server.URL
	testCfg.APIKey = "file-key"
	require.NoError(t, testCfg.Save(cfgPath))

	t.Setenv(config.EnvAPIKey, "")
	for _, c := range rootCmd.Commands() {
		resetFlags(c)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := Execute()
	return out.String(), err
}

func okHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/projects/requests", r.URL.Path)
		assert.Equal(t, "file-key", r.Header.Get("X-API-Key"))
		w.Write([]byte(sampleBody))
	}
}

func TestCreateWritesImage(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "requests.png")

	out, err := run(t, okHandler(t), "create", "-p", "requests", "-i", "-o", outPath, "-r", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Image saved at "+outPath)

	img, err := imaging.Open(outPath)
	require.NoError(t, err)
	assert.Equal(t, 720, img.Bounds().Dx())
}

func TestCreateWithoutImagePrintsSummary(t *testing.T) {
	out, err := run(t, okHandler(t), "create", "-p", "requests")
	require.NoError(t, err)
	assert.Contains(t, out, "requests")
	assert.Contains(t, out, "2.5M")
}

func TestCreateMissingOutputPath(t *testing.T) {
	_, err := run(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}, "create", "-p", "requests", "-i")
	assert.ErrorIs(t, err, config.ErrMissingOutputPath)
}

func TestCreateInvalidColor(t *testing.T) {
	_, err := run(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}, "create", "-p", "requests", "-i", "-o", filepath.Join(t.TempDir(), "x.png"), "-c", "crimson")
	assert.ErrorContains(t, err, "invalid color")
}

func TestCreateHTTPError(t *testing.T) {
	_, err := run(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "Invalid API key"}`))
	}, "create", "-p", "requests", "-i", "-o", filepath.Join(t.TempDir(), "x.png"))

	var httpErr *pepy.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
}

func TestCreateEmptyData(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "x.png")
	_, err := run(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total_downloads": 0}`))
	}, "create", "-p", "requests", "-i", "-o", outPath)

	assert.ErrorIs(t, err, stats.ErrEmptyData)
	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestStatsCommand(t *testing.T) {
	out, err := run(t, okHandler(t), "stats", "-p", "requests", "-d", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "Download Statistics")
	assert.Contains(t, out, "2023-01-02")
	assert.Contains(t, out, "2023-01-03")
	assert.Equal(t, 1, strings.Count(out, "2023-01-01"), "only the period line mentions the first day")
	assert.Contains(t, out, "2023-01-03 with 15 downloads")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, okHandler(t), "version")
	require.NoError(t, err)
	assert.Equal(t, "pepychart "+Version+"\n", out)
}

func TestPrintSeriesRollingWindow(t *testing.T) {
	totals := models.DailyTotals{"2023-01-01": 10, "2023-01-02": 20, "2023-01-03": 30}
	series, err := stats.BuildSeries(totals, 3)
	require.NoError(t, err)

	var buf bytes.Buffer
	printSeries(&buf, series, totals, 0)

	out := buf.String()
	assert.Contains(t, out, "MEAN(3)")
	assert.Equal(t, 3, strings.Count(out, "2023-01-0"))
	assert.Contains(t, out, "20.0")
}

func TestHumanCount(t *testing.T) {
	tests := []struct {
		count    int64
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1500, "1.5K"},
		{2500000, "2.5M"},
		{3200000000, "3.2B"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.count), func(t *testing.T) {
			assert.Equal(t, tt.expected, humanCount(tt.count))
		})
	}
}

func TestValidateNumber(t *testing.T) {
	n, err := validateNumber("7", 0, 365)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	_, err = validateNumber("seven", 0, 365)
	assert.Error(t, err)

	_, err = validateNumber("400", 0, 365)
	assert.Error(t, err)
}

func TestMaskSensitiveData(t *testing.T) {
	assert.Equal(t, "(not set)", maskSensitiveData("", "*"))
	assert.Equal(t, "***", maskSensitiveData("short", "*"))
	assert.Equal(t, "abcd...wxyz", maskSensitiveData("abcdefghijklmnopqrstuvwxyz", "*"))
}
