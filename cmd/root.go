package cmd

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/careersuite/internal/filtering"
	"github.com/spigell/careersuite/internal/logger"
	"github.com/spigell/careersuite/internal/matcher"
)

const (
	app       = "careersuite"
	envPrefix = "CAREERSUITE"
)

type Config struct {
	Resume    string            `mapstructure:"resume"`
	Role      string            `mapstructure:"role"`
	Catalog   string            `mapstructure:"catalog"`
	Report    *ReportConfig     `mapstructure:"report"`
	Matcher   *MatcherConfig    `mapstructure:"matcher"`
	Jobs      *JobsConfig       `mapstructure:"jobs"`
	Search    *filtering.Config `mapstructure:"search"`
	Favorites *FavoritesConfig  `mapstructure:"favorites"`
	AI        *AIConfig         `mapstructure:"ai"`
	CV        *CVConfig         `mapstructure:"cv"`
}

type ReportConfig struct {
	Top int `mapstructure:"top"`
}

type MatcherConfig struct {
	Rules matcher.RuleSet `mapstructure:"rules"`
}

type JobsConfig struct {
	Source string `mapstructure:"source"`
	File   string `mapstructure:"file"`
	Seed   uint64 `mapstructure:"seed"`
	Count  int    `mapstructure:"count"`
}

type FavoritesConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type CVConfig struct {
	ChromeTimeout time.Duration `mapstructure:"chrome-timeout"`
	ChromePath    string        `mapstructure:"chrome-path"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "careersuite scores resumes against target roles, browses a job board and builds CVs",
	}
)

// Execute executes the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is careersuite.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().StringP("resume", "r", "", "resume file (.pdf, .docx, .html, .txt or .md)")
	rootCmd.PersistentFlags().String("catalog", "", "role catalog file (default is the built-in catalog)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("resume", rootCmd.PersistentFlags().Lookup("resume"))
	viper.BindPFlag("catalog", rootCmd.PersistentFlags().Lookup("catalog"))
}

func initConfig() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	// The default config file is optional, an explicit one is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}

	if config.Report == nil {
		config.Report = &ReportConfig{}
	}
	if config.Matcher == nil {
		config.Matcher = &MatcherConfig{}
	}
	if config.Jobs == nil {
		config.Jobs = &JobsConfig{}
	}
	if config.Search == nil {
		config.Search = &filtering.Config{}
	}
	if config.Favorites == nil {
		config.Favorites = &FavoritesConfig{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.AI.Gemini == nil {
		config.AI.Gemini = &GeminiConfig{}
	}
	if config.CV == nil {
		config.CV = &CVConfig{}
	}

	return config, nil
}

// setup builds the logger and reads the config, exiting on failure.
func setup() (*zap.Logger, *Config) {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	l.Debug("starting", zap.String("app", app), zap.String("version", version), zap.String("config", viper.ConfigFileUsed()))

	return l, config
}
