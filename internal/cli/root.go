package cli

import (
	"context"
	"fmt"

	"skill-passport/internal/config"
	"skill-passport/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const app = "passportctl"

var rootCmd = &cobra.Command{
	Use:           app,
	Short:         "passportctl maintains the skill passport catalog and store",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// ExecuteContext executes the root command with ctx as the command context.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	rootCmd.AddCommand(newEmbedJobsCmd(), newMigrateCmd(), newTokenCmd())
}

// setup loads the environment configuration and builds the logger. The
// command line flags win over LOG_JSON and LOG_DEBUG.
func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}

	json := cfg.Log.JSON || viper.GetBool("json")
	debug := cfg.Log.Debug || viper.GetBool("debug")
	log, err := logger.New(json, debug)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("build logger: %w", err)
	}
	return cfg, log, nil
}
