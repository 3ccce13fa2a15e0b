// Package cli wires the factgate commands: audit, config, version.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wzhuo/factgate/internal/logger"
	"github.com/wzhuo/factgate/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "factgate",
	Short: "Factgate - fact verification for machine-generated financial briefs",
	Long: `Factgate audits machine-generated Chinese financial news summaries
against the source articles they were drafted from.

Each draft is checked deterministically for unsupported institutions,
numbers that match nothing in the sources, and years the sources never
mention, then adjudicated by an external model. The outcome per draft is
PASS (publishable as-is), FIXED (corrected copy attached), or FLAGGED
(held for human review).

Factgate never silently drops a draft: every input produces an outcome
or an explicit unmatched report.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("factgate v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.factgate/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.factgate")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match FACTGATE_*
	viper.SetEnvPrefix("FACTGATE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig builds the effective configuration: defaults, then config
// file and FACTGATE_* environment values, then API keys from their
// conventional environment variables.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	if viper.IsSet("llm.provider") {
		cfg.LLM.Provider = viper.GetString("llm.provider")
	}
	if viper.IsSet("llm.model") {
		cfg.LLM.Model = viper.GetString("llm.model")
	}
	if viper.IsSet("llm.base_url") {
		cfg.LLM.BaseURL = viper.GetString("llm.base_url")
	}
	if viper.IsSet("llm.api_key") {
		cfg.LLM.APIKey = viper.GetString("llm.api_key")
	}
	if viper.IsSet("llm.timeout") {
		cfg.LLM.Timeout = viper.GetInt("llm.timeout")
	}
	if viper.IsSet("llm.max_tokens") {
		cfg.LLM.MaxTokens = viper.GetInt("llm.max_tokens")
	}
	if viper.IsSet("audit.critical_entities") {
		cfg.Audit.CriticalEntities = viper.GetStringSlice("audit.critical_entities")
	}
	if viper.IsSet("audit.max_evidence_runes") {
		cfg.Audit.MaxEvidenceRunes = viper.GetInt("audit.max_evidence_runes")
	}
	if viper.IsSet("audit.tone_check") {
		cfg.Audit.ToneCheck = viper.GetBool("audit.tone_check")
	}
	if viper.IsSet("concurrency.workers") {
		cfg.Concurrency.Workers = viper.GetInt("concurrency.workers")
	}
	if viper.IsSet("concurrency.rpm") {
		cfg.Concurrency.RPM = viper.GetInt("concurrency.rpm")
	}
	if viper.IsSet("concurrency.burst") {
		cfg.Concurrency.Burst = viper.GetInt("concurrency.burst")
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if viper.IsSet("cache.ttl") {
		cfg.Cache.TTL = viper.GetDuration("cache.ttl")
	}
	if viper.IsSet("log.level") {
		cfg.Log.Level = viper.GetString("log.level")
	}
	if viper.IsSet("log.file") {
		cfg.Log.File = viper.GetString("log.file")
	}

	if cfg.LLM.APIKey == "" {
		switch cfg.LLM.Provider {
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		default:
			cfg.LLM.APIKey = os.Getenv("DEEPSEEK_API_KEY")
		}
	}

	if verbose {
		cfg.Log.Level = "debug"
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.File); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logging: %v\n", err)
	}

	return cfg
}
