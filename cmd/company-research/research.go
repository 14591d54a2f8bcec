package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/company-research/internal/report"
	"github.com/pdiddy/company-research/internal/research"
	"github.com/pdiddy/company-research/internal/search"
	"github.com/pdiddy/company-research/internal/secrets"
	"github.com/pdiddy/company-research/pkg/types"
)

var researchCmd = &cobra.Command{
	Use:   "research <company>",
	Short: "Research one company and write the PDF report",
	Long: `Research runs the profile lookup, job listing, and contact discovery
queries for one company, prints the summary to stdout, and writes the PDF
report. The company name may span several arguments.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResearch,
}

func init() {
	researchCmd.Flags().Bool("json", false, "print the report as JSON instead of markdown")
	researchCmd.Flags().StringP("output", "o", report.DefaultFilename, "PDF report path (empty to skip)")
	researchCmd.Flags().String("export", "", "also write the report to this path (.json, .yaml, .md or .pdf)")
	researchCmd.Flags().Int("max-leads", 0, "maximum number of HR contacts (default from config, 10)")
	researchCmd.Flags().Duration("page-delay", 0, "pause between contact result pages (default from config, 1s; 0 disables)")

	viper.BindPFlag("research.max_leads", researchCmd.Flags().Lookup("max-leads"))
	viper.BindPFlag("research.page_delay", researchCmd.Flags().Lookup("page-delay"))

	rootCmd.AddCommand(researchCmd)
}

func runResearch(cmd *cobra.Command, args []string) error {
	company := strings.TrimSpace(strings.Join(args, " "))
	if company == "" {
		return research.ErrEmptyCompany
	}

	cfg := loadConfig(viper.GetViper(), credentials)
	if cmd.Flags().Changed("page-delay") {
		if d, _ := cmd.Flags().GetDuration("page-delay"); d <= 0 {
			cfg.Research.PageDelay = types.NoPageDelay
		}
	}
	if cfg.Provider.APIKey == "" {
		return fmt.Errorf("%w: use --api-key, .secrets/%s, or %s",
			search.ErrMissingAPIKey, secrets.SerpAPIKeyFile, secrets.SerpAPIKeyEnv)
	}
	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}

	client := search.NewSerpAPIClient(cfg.Provider, nil)
	r := research.New(client, cfg.Research, logger)

	rep, err := r.Run(cmd.Context(), company)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		err = report.WriteJSON(out, rep)
	} else {
		err = report.WriteMarkdown(out, rep)
	}
	if err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	output, _ := cmd.Flags().GetString("output")
	if output != "" {
		if err := report.SavePDF(output, rep); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "PDF report written to %s\n", output)
	}

	export, _ := cmd.Flags().GetString("export")
	if export != "" {
		if err := report.Export(export, rep); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Report exported to %s\n", export)
	}
	return nil
}
