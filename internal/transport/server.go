package transport

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/Iron-Ham/unlockcalc/internal/errors"
	"github.com/Iron-Ham/unlockcalc/internal/logging"
	"github.com/Iron-Ham/unlockcalc/internal/plugin"
	"github.com/Iron-Ham/unlockcalc/internal/ui"
)

// maxFrameSize bounds a single inbound line.
const maxFrameSize = 1 << 20

// Hooks is the set of plugin entry points the server routes to.
// *plugin.Plugin satisfies it.
type Hooks interface {
	OnLoad()
	OnEvent(kind plugin.EventType, payload string) <-chan string
	OnUIEvent(id string, interaction ui.Interaction, payload string) <-chan string
	OnUIRender(target string) <-chan struct{}
	OnCardRender(cardID string) <-chan struct{}
}

// Server reads hook calls from a stream and answers them on a Writer.
type Server struct {
	hooks  Hooks
	out    *Writer
	logger *logging.Logger
}

// NewServer creates a Server routing to hooks and answering on out.
func NewServer(hooks Hooks, out *Writer, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Server{hooks: hooks, out: out, logger: logger.WithComponent("transport")}
}

// Serve processes frames from r in order until r is exhausted or ctx is
// cancelled. A clean end of input returns nil. A line longer than
// maxFrameSize is answered with an error frame and skipped.
func (s *Server) Serve(ctx context.Context, r io.Reader) error {
	lines := make(chan inboundLine)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		br := bufio.NewReaderSize(r, 64*1024)
		for {
			line, err := readLine(br, maxFrameSize)
			if len(line.data) > 0 || line.oversized {
				select {
				case lines <- line:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				if err != io.EOF {
					readErr <- err
				}
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if err := ctx.Err(); err != nil {
					return err
				}
				select {
				case err := <-readErr:
					return errors.NewTransportError("read frames", err)
				default:
				}
				s.logger.Info("host closed input")
				return nil
			}
			var err error
			if line.oversized {
				err = s.rejectOversized(line)
			} else {
				err = s.Handle(line.data)
			}
			if err != nil {
				logFault(s.logger, "stopping", err, "retryable", errors.IsRetryable(err))
				return err
			}
		}
	}
}

// Handle processes one inbound line. Frame-level problems are answered with
// an error frame; only a failure to write the answer is returned.
func (s *Server) Handle(line []byte) error {
	req, err := DecodeRequest(line)
	if err != nil {
		logFault(s.logger, "rejecting frame", err)
		return s.reply(req.ID, s.out.Reject(req.ID, err))
	}

	result, err := s.route(req)
	if err != nil {
		logFault(s.logger, "rejecting frame", err, "id", req.ID, "hook", req.Hook)
		return s.reply(req.ID, s.out.Reject(req.ID, err))
	}
	return s.reply(req.ID, s.out.Ack(req.ID, result))
}

// rejectOversized answers a line that exceeded maxFrameSize. The id is
// recovered from the head of the line when it leads the frame.
func (s *Server) rejectOversized(line inboundLine) error {
	id := peekID(line.data)
	err := errors.NewTransportError(
		fmt.Sprintf("frame of %d bytes exceeds %d", line.size, maxFrameSize),
		errors.ErrMalformedFrame,
	).WithFrame(id)
	logFault(s.logger, "rejecting frame", err)
	return s.reply(id, s.out.Reject(id, err))
}

func (s *Server) reply(id int64, err error) error {
	if err == nil {
		return nil
	}
	return errors.NewDeliveryError("write reply", fmt.Errorf("%w: %v", errors.ErrHostClosed, err)).
		WithTarget("frame:" + strconv.FormatInt(id, 10))
}

// route dispatches a request to its hook and waits for the acknowledgement.
func (s *Server) route(req Request) (string, error) {
	reject := func(msg string, cause error) error {
		return errors.NewTransportError(msg, cause).WithFrame(req.ID).WithHook(req.Hook)
	}

	switch req.Hook {
	case HookLoad:
		s.hooks.OnLoad()
		return "", nil

	case HookEvent:
		kind, ok := plugin.ParseEventType(req.EventType)
		if !ok {
			return "", reject("event type "+strconv.Quote(req.EventType), errors.ErrUnknownEventType)
		}
		return <-s.hooks.OnEvent(kind, req.Payload), nil

	case HookUIEvent:
		interaction, ok := ui.ParseInteraction(req.Interaction)
		if !ok {
			return "", reject("interaction "+strconv.Quote(req.Interaction), errors.ErrUnknownInteraction)
		}
		return <-s.hooks.OnUIEvent(req.EventID, interaction, req.Payload), nil

	case HookUIRender:
		if req.Target == "" {
			return "", reject("missing target", errors.ErrMalformedFrame)
		}
		<-s.hooks.OnUIRender(req.Target)
		return "", nil

	case HookCardRender:
		<-s.hooks.OnCardRender(req.CardID)
		return "", nil

	default:
		return "", reject("hook "+strconv.Quote(req.Hook), errors.ErrUnknownHook)
	}
}
