package operator

import (
	"log/slog"

	"github.com/heartmarshall/studio-bookings/internal/domain"
)

// Notifier surfaces failures the operator has to see. Poll failures are
// only reported through SyncStateChanged once a run of them crosses the
// out-of-sync threshold.
type Notifier interface {
	AuthFailed(err error)
	MutationFailed(kind domain.Kind, id string, err error)
	SyncStateChanged(view string, inSync bool, err error)
}

// LogNotifier writes notifications to a structured logger.
type LogNotifier struct {
	log *slog.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{log: logger.With("component", "operator.notifier")}
}

func (n *LogNotifier) AuthFailed(err error) {
	n.log.Error("operator session rejected, log in again", slog.String("error", err.Error()))
}

func (n *LogNotifier) MutationFailed(kind domain.Kind, id string, err error) {
	n.log.Error("status update failed",
		slog.String("kind", kind.String()),
		slog.String("record_id", id),
		slog.String("error", err.Error()),
	)
}

func (n *LogNotifier) SyncStateChanged(view string, inSync bool, err error) {
	if inSync {
		n.log.Info("view back in sync", slog.String("view", view))
		return
	}
	attrs := []any{slog.String("view", view)}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	n.log.Warn("view out of sync", attrs...)
}
