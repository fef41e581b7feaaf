// Package logging provides structured logging for the unlock code plugin.
//
// The package wraps log/slog with a JSON handler. A plugin logger has two
// optional sinks, mirroring how plugin hosts expect guest output:
//
//   - a console writer that prefixes every record with "[Plugin] " so plugin
//     lines can be told apart from host lines on a shared stream
//   - a size-rotated file at {dir}/app.log
//
// # Basic Usage
//
//	logger, err := logging.New(logging.Options{
//	    Dir:      "logs",
//	    Level:    "INFO",
//	    Console:  os.Stderr,
//	    Rotation: logging.DefaultRotationConfig(),
//	})
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.WithSession(id).WithComponent("processor").Info("ui event", "event_id", "mac")
//
// # Reading Logs Back
//
// [ReadEntries] parses app.log and its uncompressed backups; [FilterEntries]
// and [WriteText] back the "logs" command.
//
// # Testing
//
// Use [NopLogger] to discard all output.
package logging
