package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wganko/liff-for-auto-responce/messaging"
)

const (
	PlaceholderRosterNumber = "{bambooNo}"
	PlaceholderStatus       = "{status}"
)

// Notifier sends reply messages. Delivery is best effort: failures are logged
// and never returned, so a committed reconciliation is never undone by it.
type Notifier struct {
	pusher messaging.Pusher
	logger *slog.Logger
}

func NewNotifier(pusher messaging.Pusher, logger *slog.Logger) *Notifier {
	return &Notifier{pusher: pusher, logger: logger}
}

// Compose fills the roster number and status placeholders of a template.
func Compose(template, rosterNumber, status string) string {
	return strings.NewReplacer(
		PlaceholderRosterNumber, rosterNumber,
		PlaceholderStatus, status,
	).Replace(template)
}

// Notify pushes text to messagingID and reports whether it was delivered.
func (n *Notifier) Notify(ctx context.Context, messagingID, text string) bool {
	if messagingID == "" || text == "" {
		return false
	}
	n.logger.Info("sending reply", slog.String("to", messagingID), slog.String("text", text))

	if err := n.pusher.Push(ctx, messagingID, messaging.TextMessage(text)); err != nil {
		n.logger.Warn("reply delivery failed",
			slog.String("to", messagingID),
			slog.Any("error", fmt.Errorf("%w: %w", ErrTransportFailure, err)),
		)
		return false
	}
	return true
}
