package transport

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Iron-Ham/unlockcalc/internal/errors"
	"github.com/Iron-Ham/unlockcalc/internal/ui"
)

// Hook names accepted in inbound frames.
const (
	HookLoad       = "on_load"
	HookEvent      = "on_event"
	HookUIEvent    = "on_ui_event"
	HookUIRender   = "on_ui_render"
	HookCardRender = "on_card_render"
)

// Outbound frame types.
const (
	TypeRender = "render"
	TypeAck    = "ack"
	TypeError  = "error"
)

// Request is an inbound hook call. Only the fields of the named hook are
// meaningful.
type Request struct {
	ID          int64  `json:"id"`
	Hook        string `json:"hook"`
	EventID     string `json:"event_id,omitempty"`
	Interaction string `json:"interaction,omitempty"`
	EventType   string `json:"event_type,omitempty"`
	Payload     string `json:"payload,omitempty"`
	Target      string `json:"target,omitempty"`
	CardID      string `json:"card_id,omitempty"`
}

// RenderFrame carries a tree for the host to display.
type RenderFrame struct {
	Type   string     `json:"type"`
	Target string     `json:"target"`
	Tree   ui.Element `json:"tree"`
}

// AckFrame completes a hook call.
type AckFrame struct {
	Type   string `json:"type"`
	ID     int64  `json:"id"`
	Result string `json:"result"`
}

// ErrorFrame rejects a frame the transport could not handle.
type ErrorFrame struct {
	Type  string `json:"type"`
	ID    int64  `json:"id"`
	Error string `json:"error"`
}

// DecodeRequest parses one inbound line.
func DecodeRequest(line []byte) (Request, error) {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		return Request{}, errors.NewTransportError("decode frame", fmt.Errorf("%w: %v", errors.ErrMalformedFrame, err))
	}
	if req.Hook == "" {
		return req, errors.NewTransportError("missing hook", errors.ErrMalformedFrame).WithFrame(req.ID)
	}
	return req, nil
}

// encodeLine marshals v and appends the line terminator.
func encodeLine(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// inboundLine is one newline-terminated line read from the host. An
// oversized line keeps only its first maxFrameSize bytes in data.
type inboundLine struct {
	data      []byte
	size      int
	oversized bool
}

// readLine reads up to the next '\n', holding at most limit bytes. The rest
// of a longer line is consumed and dropped so the next read starts on a
// frame boundary.
func readLine(br *bufio.Reader, limit int) (inboundLine, error) {
	var line inboundLine
	for {
		chunk, err := br.ReadSlice('\n')
		if room := limit - len(line.data); room > 0 {
			line.data = append(line.data, chunk[:min(room, len(chunk))]...)
		}
		line.size += len(chunk)
		if err == bufio.ErrBufferFull {
			continue
		}
		if bytes.HasSuffix(chunk, []byte("\n")) {
			line.size--
			if len(line.data) > line.size {
				line.data = line.data[:line.size]
			}
		}
		line.oversized = line.size > limit
		if !line.oversized {
			line.data = bytes.TrimSuffix(line.data, []byte("\r"))
		}
		return line, err
	}
}

// peekID returns the id of a frame whose "id" key precedes any value that
// cannot be decoded from head, or 0.
func peekID(head []byte) int64 {
	dec := json.NewDecoder(bytes.NewReader(head))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return 0
	}
	for dec.More() {
		key, err := dec.Token()
		if err != nil {
			return 0
		}
		if key == "id" {
			var id int64
			if dec.Decode(&id) != nil {
				return 0
			}
			return id
		}
		var skip json.RawMessage
		if dec.Decode(&skip) != nil {
			return 0
		}
	}
	return 0
}
