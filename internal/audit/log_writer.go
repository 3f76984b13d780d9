package audit

import (
	"context"
	"errors"
	"log"
	"time"
)

// LogWriter writes audit entries to a logger.
type LogWriter struct {
	logger *log.Logger
	now    func() time.Time
}

// NewLogWriter constructs an audit writer.
func NewLogWriter(logger *log.Logger) *LogWriter {
	if logger == nil {
		logger = log.Default()
	}
	return &LogWriter{logger: logger, now: time.Now}
}

// Log writes an audit entry as a single key=value line.
func (w *LogWriter) Log(_ context.Context, entry Entry) error {
	if w == nil || w.logger == nil {
		return errors.New("audit writer: nil logger")
	}
	entry.complete(w.now())
	w.logger.Printf("audit: id=%s action=%s resource=%s/%s circuit=%s actor=%q role=%s ip=%s agent=%q digest=%s metadata=%s at=%s",
		entry.ID, entry.Action, entry.Resource.Type, entry.Resource.ID, entry.Resource.CircuitID,
		entry.Actor, entry.Role, entry.Origin.IP, entry.Origin.UserAgent, entry.Digest,
		string(entry.Metadata), entry.CreatedAt.Format(time.RFC3339))
	return nil
}
