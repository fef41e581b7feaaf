package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Iron-Ham/unlockcalc/internal/config"
	"github.com/Iron-Ham/unlockcalc/internal/event"
	"github.com/Iron-Ham/unlockcalc/internal/plugin"
	"github.com/Iron-Ham/unlockcalc/internal/transport"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the plugin over stdin/stdout",
	Long: `Serve the plugin hooks to a host over stdin and stdout.

The host writes one JSON request per line on stdin. The plugin answers on
stdout with render, ack and error frames, one per line. Logs go to stderr
and to the configured log directory, never to stdout.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("render-target", "", "render into this target right after on_load")
	_ = viper.BindPFlag("serve.render_target", serveCmd.Flags().Lookup("render-target"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Close() }()

	out := transport.NewWriter(cmd.OutOrStdout(), logger)
	p := plugin.New(out, plugin.Options{Logger: logger})

	if target := cfg.Serve.RenderTarget; target != "" {
		p.Bus().Subscribe(event.TypeLoaded, func(event.Event) {
			<-p.OnUIRender(target)
		})
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("serving", "plugin_id", p.ID())
	err = transport.NewServer(p, out, logger).Serve(ctx, cmd.InOrStdin())
	logger.Info("session ended",
		"failed_frames", out.Failures(),
		"rolled_back_updates", p.Recovered())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
