// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the company-research CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/company-research/internal/logging"
	"github.com/pdiddy/company-research/internal/secrets"
	"github.com/pdiddy/company-research/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultUserAgent = "company-research/0.1"
	secretsDir       = ".secrets/"
	dotenvFile       = ".env"
)

// credentials holds the key sources loaded at startup.
var credentials secrets.Sources

// rootCmd is the base command for the company-research CLI.
var rootCmd = &cobra.Command{
	Use:   "company-research",
	Short: "Company profile, hiring, and HR contact research over SerpAPI",
	Long: `company-research looks up a company's public profile, its open job
postings, and HR / talent-acquisition contacts through the SerpAPI search
service, then assembles the results into a PDF report.

Run a single query from the terminal with "research", or start the web UI
with "serve". The SerpAPI key is read from --api-key, .secrets/serpapi-api-key,
the SERPAPI_KEY environment variable, or SERPAPI_KEY in .env.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		files, err := secrets.Load(secretsDir)
		if err != nil {
			return err
		}
		dotenv, err := secrets.LoadDotenv(dotenvFile)
		if err != nil {
			return err
		}
		if len(files) > 0 {
			keys := make([]string, 0, len(files))
			for k := range files {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		explicit, _ := cmd.Flags().GetString("api-key")
		if explicit == "" {
			explicit = viper.GetString("provider.api_key")
		}
		credentials = secrets.Sources{Explicit: explicit, Files: files, Dotenv: dotenv}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./company-research.yaml or ~/.config/company-research/config.yaml)")
	rootCmd.PersistentFlags().String("api-key", "", "SerpAPI key (overrides .secrets/, SERPAPI_KEY and .env)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text or json")

	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))

	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("research.max_leads", types.DefaultMaxLeads)
	v.SetDefault("research.page_size", types.DefaultPageSize)
	v.SetDefault("research.page_delay", types.DefaultPageDelay)
	v.SetDefault("research.timeout", 2*time.Minute)
	v.SetDefault("provider.timeout", 30*time.Second)
	v.SetDefault("provider.user_agent", defaultUserAgent)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("company-research")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "company-research"))
		}
	}

	viper.SetEnvPrefix("COMPANY_RESEARCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the application configuration from v and the
// loaded credentials.
func loadConfig(v *viper.Viper, creds secrets.Sources) types.AppConfig {
	return types.AppConfig{
		Provider: types.ProviderConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   v.GetDuration("provider.timeout"),
				UserAgent: v.GetString("provider.user_agent"),
			},
			APIKey:  creds.APIKey(),
			BaseURL: v.GetString("provider.base_url"),
		},
		Research: types.ResearchConfig{
			MaxLeads:  v.GetInt("research.max_leads"),
			PageSize:  v.GetInt("research.page_size"),
			PageDelay: v.GetDuration("research.page_delay"),
			Timeout:   v.GetDuration("research.timeout"),
		},
		Server: types.ServerConfig{
			Addr:           v.GetString("server.addr"),
			ReportFilename: v.GetString("server.report_filename"),
		},
		Log: types.LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}
}

func newLogger(cfg types.LogConfig) (logging.Logger, error) {
	return logging.New(cfg.Level, cfg.Format, os.Stderr)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
