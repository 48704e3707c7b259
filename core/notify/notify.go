package notify

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"shopify-sync/core/storage"

	"go.uber.org/zap"
)

// Message is one end-of-run report.
type Message struct {
	RunID   string
	Subject string
	Body    string
}

// Notifier delivers run reports to the operator.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// New builds the notifier selected by cfg.
func New(cfg Config, files storage.FileStore, logger *zap.Logger) (Notifier, error) {
	switch cfg.Driver {
	case DriverStorage, "":
		return NewStorageNotifier(files, cfg.Prefix), nil
	case DriverLog:
		return NewLogNotifier(logger), nil
	case DriverNone:
		return Discard{}, nil
	default:
		return nil, fmt.Errorf("unknown notify driver %q", cfg.Driver)
	}
}

// StorageNotifier writes each report to <prefix>/<timestamp>-<run>.log.
type StorageNotifier struct {
	files  storage.FileStore
	prefix string
	now    func() time.Time
}

// NewStorageNotifier creates a notifier that stores reports in the file store.
func NewStorageNotifier(files storage.FileStore, prefix string) *StorageNotifier {
	return &StorageNotifier{files: files, prefix: strings.Trim(prefix, "/"), now: time.Now}
}

// Notify implements Notifier.
func (n *StorageNotifier) Notify(ctx context.Context, msg Message) error {
	name := fmt.Sprintf("%s-%s.log", n.now().UTC().Format("20060102T150405Z"), msg.RunID)
	p := path.Join(n.prefix, name)

	body := msg.Subject + "\n\n" + msg.Body + "\n"
	if err := n.files.Put(ctx, p, []byte(body)); err != nil {
		return fmt.Errorf("failed to store report %s: %w", p, err)
	}
	return nil
}

// LogNotifier writes reports through the process logger.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a notifier that logs reports.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify implements Notifier.
func (n *LogNotifier) Notify(ctx context.Context, msg Message) error {
	n.logger.Info(msg.Subject,
		zap.String("run_id", msg.RunID),
		zap.String("report", msg.Body),
	)
	return nil
}

// Discard drops every report.
type Discard struct{}

// Notify implements Notifier.
func (Discard) Notify(ctx context.Context, msg Message) error {
	return nil
}
