package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/policylens/internal/logging"
	"github.com/ppiankov/policylens/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const version = "policylens v0.3.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "policylens",
	Short: "Policylens - insurance policy digests and claim rejection review",
	Long: `Policylens reads an insurance policy that has already been converted to text.

It decides whether the text is a policy, splits it into sections (coverage,
exclusions, claims, premium, terms), summarizes each section into short
bullet points, and checks a claim rejection reason against the policy's own
wording to flag possible grounds for appeal.

All checks are lexical. Policylens surfaces possible contestability; it does
not make legal determinations.`,
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
	Long:  `Display the version number of Policylens.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.policylens/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	setDefaults(model.DefaultConfig())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".policylens"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// POLICYLENS_SUMMARIZER_PROVIDER overrides summarizer.provider
	viper.SetEnvPrefix("POLICYLENS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so env vars can override it
func setDefaults(cfg *model.Config) {
	viper.SetDefault("classifier.threshold", cfg.Classifier.Threshold)

	viper.SetDefault("digest.sentence_count", cfg.Digest.SentenceCount)
	viper.SetDefault("digest.min_bullet_length", cfg.Digest.MinBulletLength)
	viper.SetDefault("digest.workers", cfg.Digest.Workers)

	viper.SetDefault("summarizer.provider", cfg.Summarizer.Provider)
	viper.SetDefault("summarizer.model", cfg.Summarizer.Model)
	viper.SetDefault("summarizer.api_key", "")
	viper.SetDefault("summarizer.base_url", cfg.Summarizer.BaseURL)
	viper.SetDefault("summarizer.timeout", cfg.Summarizer.Timeout)
	viper.SetDefault("summarizer.max_tokens", cfg.Summarizer.MaxTokens)
	viper.SetDefault("summarizer.strict_extraction", cfg.Summarizer.StrictExtraction)
	viper.SetDefault("summarizer.http_proxy", cfg.Summarizer.HTTPProxy)
	viper.SetDefault("summarizer.https_proxy", cfg.Summarizer.HTTPSProxy)
	viper.SetDefault("summarizer.no_proxy", cfg.Summarizer.NoProxy)

	viper.SetDefault("rate_limiting.requests_per_second", cfg.RateLimiting.RequestsPerSecond)
	viper.SetDefault("rate_limiting.burst_size", cfg.RateLimiting.BurstSize)

	viper.SetDefault("cache.enabled", cfg.Cache.Enabled)
	viper.SetDefault("cache.dir", cfg.Cache.Dir)
	viper.SetDefault("cache.memory_ttl", cfg.Cache.MemoryTTL)
	viper.SetDefault("cache.disk_ttl", cfg.Cache.DiskTTL)

	viper.SetDefault("lexicon.path", cfg.Lexicon.Path)
	viper.SetDefault("loader.max_bytes", cfg.Loader.MaxBytes)
	viper.SetDefault("concurrency.workers", cfg.Concurrency.Workers)

	viper.SetDefault("log.level", cfg.Log.Level)
	viper.SetDefault("log.format", cfg.Log.Format)

	viper.SetDefault("output.verbose", cfg.Output.Verbose)
	viper.SetDefault("output.include_footer", cfg.Output.IncludeFooter)
}

// loadConfig returns the effective configuration: flags > env > file > defaults
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// applyProviderEnv fills backend credentials from the conventional environment variables
func applyProviderEnv(cfg *model.Config) error {
	switch strings.ToLower(cfg.Summarizer.Provider) {
	case "openai":
		if cfg.Summarizer.APIKey == "" {
			cfg.Summarizer.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if cfg.Summarizer.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		if cfg.Summarizer.APIKey == "" {
			cfg.Summarizer.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if cfg.Summarizer.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" && cfg.Summarizer.BaseURL == "" {
			cfg.Summarizer.BaseURL = baseURL
		}
	}
	return nil
}

// newLogger builds the zap logger for a command run
func newLogger(cfg *model.Config) (*zap.Logger, error) {
	return logging.New(cfg.Log, verbose || cfg.Output.Verbose)
}
