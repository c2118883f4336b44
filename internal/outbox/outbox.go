// Package outbox implements a file-based Messenger. Outbound messages land
// as files in an outbox directory where an external delivery process (or an
// operator during a dry run) picks them up.
package outbox

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alexanderramin/dealflow/internal/app"
	"github.com/google/uuid"
)

// Outbox writes each outbound message to its own file. The returned message
// ID is the file name, so a delivery log can be joined back to the deal's
// communication history.
type Outbox struct {
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

var _ app.Messenger = (*Outbox)(nil)

// New creates an outbox over dir, creating the directory if needed.
func New(dir string, logger *slog.Logger) (*Outbox, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating outbox directory: %w", err)
	}
	return &Outbox{dir: dir, logger: logger, now: time.Now}, nil
}

// Send writes the message to a new file and returns its ID.
func (o *Outbox) Send(ctx context.Context, recipient, subject, body string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	now := o.now().UTC()
	id := fmt.Sprintf("%s-%s.msg", now.Format("20060102T150405"), uuid.New().String()[:8])
	content := fmt.Sprintf("To: %s\nSubject: %s\nDate: %s\n\n%s\n",
		recipient, subject, now.Format(time.RFC3339), body)

	path := filepath.Join(o.dir, id)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing outbox message: %w", err)
	}

	o.logger.Debug("queued outbound message", "recipient", recipient, "message_id", id)
	return id, nil
}
