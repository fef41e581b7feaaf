package cmd

import (
	"io"
	"strings"

	"github.com/Iron-Ham/unlockcalc/internal/config"
	"github.com/Iron-Ham/unlockcalc/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "unlockcalc",
	Short: "Unlock code calculator plugin",
	Long: `unlockcalc is a guest-side UI plugin that derives a device unlock code
from a MAC address and serial number.

Run it under a host with 'unlockcalc serve', try the UI in a terminal with
'unlockcalc preview', or compute a code directly with 'unlockcalc derive'.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/unlockcalc/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix(config.EnvPrefix)
	// e.g. UNLOCKCALC_LOGGING_LEVEL for logging.level
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// newLogger builds the plugin logger from cfg. console receives the
// "[Plugin] " prefixed mirror when console logging is on.
func newLogger(cfg *config.Config, console io.Writer) (*logging.Logger, error) {
	opts := logging.Options{
		Level: cfg.Logging.Level,
		Rotation: logging.RotationConfig{
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			Compress:   cfg.Logging.Compress,
			Daily:      cfg.Logging.Daily,
		},
	}
	if cfg.Logging.Enabled {
		opts.Dir = cfg.Logging.Dir
	}
	if cfg.Logging.Console {
		opts.Console = console
	}
	return logging.New(opts)
}
