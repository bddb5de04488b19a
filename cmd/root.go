package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cfgFile  string
	logLevel string
	// Logger is built once flags are parsed.
	Logger = zap.NewNop()
)

var RootCmd = &cobra.Command{
	Use:   "db-migcheck",
	Short: "Validate a database migration",
	Long: `
  __  __ ___ ___    ___ _  _ ___ ___ _  __
 |  \/  |_ _/ __|  / __| || | __/ __| |/ /
 | |\/| || | (_ | | (__| __ | _| (__| ' <
 |_|  |_|___\___|  \___|_||_|___\___|_|\_\

DB MIGCHECK 🔎 - Post-migration schema validation
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(viper.GetString("log_level"))
		if err != nil {
			return err
		}
		Logger = l
		if f := viper.ConfigFileUsed(); f != "" {
			Logger.Debug("using config file", zap.String("path", f))
		}
		return nil
	},
}

func Execute() {
	// Ctrl-C cancels in-flight catalog queries.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := RootCmd.ExecuteContext(ctx)
	stop()
	Logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./db-migcheck.yaml)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	viper.BindPFlag("log_level", RootCmd.PersistentFlags().Lookup("log-level"))
}

// newLogger builds the console logger. Logs go to stderr so reports on
// stdout stay clean.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// executable directory first, then the working directory
		ex, err := os.Executable()
		if err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}
		viper.AddConfigPath(".")

		viper.SetConfigName("db-migcheck")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("MIGCHECK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			fmt.Fprintln(os.Stderr, "Error reading config file:", err)
		}
	}
}
