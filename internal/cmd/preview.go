package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/Iron-Ham/unlockcalc/internal/config"
	"github.com/Iron-Ham/unlockcalc/internal/host"
	"github.com/Iron-Ham/unlockcalc/internal/plugin"
	"github.com/Iron-Ham/unlockcalc/internal/tui/preview"
	"github.com/Iron-Ham/unlockcalc/internal/tui/styles"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Try the plugin UI in the terminal",
	Long: `Preview runs the plugin against a terminal host. The host renders the
plugin's element tree, sends your key presses back as UI events and shows
each re-render.

Keys:
  tab / shift+tab   move between fields and buttons
  enter             commit a field or press a button
  esc / ctrl+c      quit`,
	Args: cobra.NoArgs,
	RunE: runPreview,
}

var previewThemeFile string

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().String("target", "", "render target (default from preview.target)")
	previewCmd.Flags().String("theme", "", "built-in theme (default from preview.theme)")
	previewCmd.Flags().StringVar(&previewThemeFile, "theme-file", "", "load a custom theme from a YAML file")
	_ = viper.BindPFlag("preview.target", previewCmd.Flags().Lookup("target"))
	_ = viper.BindPFlag("preview.theme", previewCmd.Flags().Lookup("theme"))
}

func runPreview(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("preview needs an interactive terminal")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	s, err := previewStyles(cfg.Preview.Theme, previewThemeFile)
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal, so only the file sink is kept.
	logger, err := newLogger(cfg, nil)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Close() }()

	rec := host.NewRecorder()
	p := plugin.New(rec, plugin.Options{Logger: logger})
	p.OnLoad()

	err = preview.Run(cmd.Context(), p, rec, preview.Options{
		Target: cfg.Preview.Target,
		Styles: s,
	})
	logger.Info("preview closed",
		"renders", rec.Count(),
		"targets", rec.Targets(),
		"rolled_back_updates", p.Recovered())
	return err
}

// previewStyles picks the theme file when one is given, otherwise the
// named built-in theme.
func previewStyles(theme, themeFile string) (*styles.ThemedStyles, error) {
	if themeFile == "" {
		return styles.ForTheme(theme), nil
	}
	tf, err := styles.LoadThemeFile(themeFile)
	if err != nil {
		return nil, err
	}
	return styles.NewThemedStyles(tf.ToPalette()), nil
}
