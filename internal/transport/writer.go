package transport

import (
	"io"
	"sync"

	"github.com/Iron-Ham/unlockcalc/internal/errors"
	"github.com/Iron-Ham/unlockcalc/internal/logging"
	"github.com/Iron-Ham/unlockcalc/internal/ui"
)

// Writer serializes outbound frames onto a stream. It implements
// host.Surface, so a plugin can render straight onto the wire.
type Writer struct {
	mu     sync.Mutex
	w      io.Writer
	logger *logging.Logger
	failed int
}

// NewWriter creates a Writer. A nil logger discards delivery failures.
func NewWriter(w io.Writer, logger *logging.Logger) *Writer {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Writer{w: w, logger: logger.WithComponent("transport")}
}

// Render writes a render frame. Write failures are logged; the caller is
// never told.
func (w *Writer) Render(target string, tree ui.Element) {
	err := w.write(RenderFrame{Type: TypeRender, Target: target, Tree: tree})
	if err != nil {
		derr := errors.NewDeliveryError("write render frame", err).WithTarget(target)
		logFault(w.logger, "render delivery failed", derr, "retryable", errors.IsRetryable(derr))
	}
}

// Ack writes an ack frame.
func (w *Writer) Ack(id int64, result string) error {
	return w.write(AckFrame{Type: TypeAck, ID: id, Result: result})
}

// Reject writes an error frame for id.
func (w *Writer) Reject(id int64, cause error) error {
	return w.write(ErrorFrame{Type: TypeError, ID: id, Error: cause.Error()})
}

// Failures returns how many frames could not be written.
func (w *Writer) Failures() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.failed
}

func (w *Writer) write(v any) error {
	line, err := encodeLine(v)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.w.Write(line); err != nil {
		w.failed++
		return err
	}
	return nil
}

// logFault logs err at the level its severity calls for.
func logFault(logger *logging.Logger, msg string, err error, args ...any) {
	severity := errors.GetSeverity(err)
	args = append(args, "error", err.Error(), "severity", severity.String())
	switch severity {
	case errors.SeverityDebug:
		logger.Debug(msg, args...)
	case errors.SeverityInfo:
		logger.Info(msg, args...)
	case errors.SeverityWarning:
		logger.Warn(msg, args...)
	default:
		logger.Error(msg, args...)
	}
}
