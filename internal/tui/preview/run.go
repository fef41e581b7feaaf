package preview

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/unlockcalc/internal/host"
	"github.com/Iron-Ham/unlockcalc/internal/plugin"
)

// Run starts the preview program and blocks until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, p *plugin.Plugin, rec *host.Recorder, opts Options) error {
	program := tea.NewProgram(
		New(p, rec, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := program.Run()
	return err
}
