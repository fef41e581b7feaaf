package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/Iron-Ham/unlockcalc/internal/config"
	tuiconfig "github.com/Iron-Ham/unlockcalc/internal/tui/config"
	"github.com/Iron-Ham/unlockcalc/internal/tui/styles"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify unlockcalc configuration",
	Long: `View or modify unlockcalc configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  unlockcalc config set logging.level debug
  unlockcalc config set preview.theme nord
  unlockcalc config set serve.render_target root

Run 'unlockcalc config show' to list every key.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	RunE:  runConfigInit,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the configuration interactively",
	RunE:  runConfigEdit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Inspect preview color themes",
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in themes",
	RunE:  runThemeList,
}

var themeExportCmd = &cobra.Command{
	Use:   "export <theme-name> [output-file]",
	Short: "Export a built-in theme to YAML",
	Long: `Export a built-in theme as a theme file. Edit the file and pass it to
'unlockcalc preview --theme-file' to use it.

Examples:
  unlockcalc config theme export default
  unlockcalc config theme export nord my-theme.yaml`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runThemeExport,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(themeCmd)
	themeCmd.AddCommand(themeListCmd)
	themeCmd.AddCommand(themeExportCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintln(out, "Config file: (none - using defaults)")
	}
	fmt.Fprintln(out)

	section := ""
	for _, key := range config.Keys() {
		group, name, _ := strings.Cut(key, ".")
		if group != section {
			fmt.Fprintf(out, "%s:\n", group)
			section = group
		}
		fmt.Fprintf(out, "  %s: %v\n", name, viper.Get(key))
	}

	if _, err := config.Load(); err != nil {
		fmt.Fprintf(out, "\nWarning: %v\n", err)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	if !slices.Contains(config.Keys(), key) {
		return fmt.Errorf("unknown configuration key: %s\nValid keys: %s", key, strings.Join(config.Keys(), ", "))
	}

	previous := viper.Get(key)
	typed, err := parseConfigValue(key, value, previous)
	if err != nil {
		return err
	}
	viper.Set(key, typed)

	if _, err := config.Load(); err != nil {
		viper.Set(key, previous)
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	if err := os.MkdirAll(config.ConfigDir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	configFile := config.ConfigFile()
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, typed)
	fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", configFile)
	return nil
}

// parseConfigValue converts value to the type of the key's current value.
func parseConfigValue(key, value string, current any) (any, error) {
	switch current.(type) {
	case bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		return b, nil
	case int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected integer", key)
		}
		return n, nil
	default:
		return value, nil
	}
}

const defaultConfigFile = `# unlockcalc configuration

# Plugin logs. Records are JSON lines in <dir>/app.log.
logging:
  enabled: true
  # debug, info, warn or error
  level: info
  dir: logs
  # Rotate app.log once it reaches this size
  max_size_mb: 10
  max_backups: 3
  compress: false
  # Start a new app.log each day
  daily: true
  # Mirror records to stderr with a "[Plugin] " prefix
  console: true

# Terminal preview host
preview:
  target: root
  # default, dracula, nord or solarized-light
  theme: default

# stdio host binding
serve:
  # Render into this target right after on_load (empty waits for on_ui_render)
  render_target: ""
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configFile := config.ConfigFile()

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'unlockcalc config set' to modify values", configFile)
	}
	if err := os.MkdirAll(config.ConfigDir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(configFile, []byte(defaultConfigFile), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("config edit needs an interactive terminal")
	}
	path := viper.ConfigFileUsed()
	if path == "" {
		path = config.ConfigFile()
	}
	return tuiconfig.Run(path, styles.ForTheme(viper.GetString("preview.theme")))
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", config.ConfigFile())
	}

	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
	fmt.Fprintln(out, "  2. ./config.yaml (current directory)")
	fmt.Fprintf(out, "\nEnvironment variables: %s_* (e.g., %s_LOGGING_LEVEL)\n", config.EnvPrefix, config.EnvPrefix)
	return nil
}

func runThemeList(cmd *cobra.Command, args []string) error {
	current := viper.GetString("preview.theme")
	for _, name := range styles.ValidThemes() {
		marker := "  "
		if name == current {
			marker = "* "
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", marker, name)
	}
	return nil
}

func runThemeExport(cmd *cobra.Command, args []string) error {
	name := args[0]
	if !styles.IsValidTheme(name) {
		return fmt.Errorf("unknown theme: %s\nAvailable: %s", name, strings.Join(styles.ValidThemes(), ", "))
	}

	data, err := yaml.Marshal(styles.ThemeFileFor(styles.ThemeName(name)))
	if err != nil {
		return fmt.Errorf("failed to encode theme: %w", err)
	}

	if len(args) == 1 {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(args[1], data, 0644); err != nil {
		return fmt.Errorf("failed to write theme file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Theme %s exported to %s\n", name, args[1])
	return nil
}
