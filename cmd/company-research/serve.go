package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/company-research/internal/research"
	"github.com/pdiddy/company-research/internal/search"
	"github.com/pdiddy/company-research/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the research web UI",
	Long: `Serve starts the web UI: a form that takes a company name, runs the
three queries, shows the summary, and offers the PDF report for download.
It also exposes /api/report, /api/report.pdf, /health and /metrics.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config, :8080)")
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(viper.GetViper(), credentials)
	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	if cfg.Provider.APIKey == "" {
		// The UI still starts; every query will fail until a key is provided.
		logger.Warn("no SerpAPI key configured")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	client := search.NewSerpAPIClient(cfg.Provider, search.NewMetrics(reg))
	researcher := research.New(client, cfg.Research, logger)
	srv := web.NewServer(researcher, cfg.Server, logger, web.NewMetrics(reg), reg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}
