package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/AI2HU/pepychart/internal/api"
	"github.com/AI2HU/pepychart/internal/logger"
)

var (
	servePort   string
	serveHost   string
	serveAPIKey string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the pepychart REST API server",
	Long: `Start a REST API serving download series and chart images:
- GET /api/v1/health
- GET /api/v1/projects/:package/series?window=N
- GET /api/v1/projects/:package/chart?window=N&format=png|jpeg|gif

Every project request performs one upstream fetch; requests are rate limited
by server.requests_per_minute to protect the API key.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "P", "", "Port to run the API server on (overrides config)")
	serveCmd.Flags().StringVarP(&serveHost, "host", "H", "", "Host to bind the API server to (overrides config)")
	serveCmd.Flags().StringVarP(&serveAPIKey, "api-key", "a", "", "The pepy.tech API key")
}

func runServe(cmd *cobra.Command, args []string) error {
	apiKey, err := cfg.ResolveAPIKey(serveAPIKey)
	if err != nil {
		return err
	}

	host := cfg.Server.Host
	if serveHost != "" {
		host = serveHost
	}
	port := cfg.Server.Port
	if servePort != "" {
		port = servePort
	}

	style := chartStyle()
	service, renderer, err := newChartService(apiKey, &style, nil)
	if err != nil {
		return err
	}

	if !logger.IsDebugEnabled() {
		gin.SetMode(gin.ReleaseMode)
	}

	server := api.NewServer(service, renderer, api.Options{
		DefaultWindow:     cfg.Chart.RollingWindow,
		RequestsPerMinute: cfg.Server.RequestsPerMinute,
	})

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Println("\n🛑 Shutting down API server...")
		os.Exit(0)
	}()

	fmt.Printf("%s🚀 Starting pepychart API Server%s\n", HeaderStyle, Reset)
	fmt.Printf("%s===============================%s\n", DimStyle, Reset)
	fmt.Println(FormatLabelValue("Host:", host))
	fmt.Println(FormatLabelValue("Port:", port))
	fmt.Println(FormatLabelValue("Rate limit:", fmt.Sprintf("%d requests/minute", cfg.Server.RequestsPerMinute)))
	fmt.Println(FormatLabelValue("URL:", fmt.Sprintf("http://%s:%s/api/v1", host, port)))
	fmt.Println()
	fmt.Println("Press Ctrl+C to stop the server")

	address := fmt.Sprintf("%s:%s", host, port)
	return server.Run(address)
}
