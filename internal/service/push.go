package service

import (
	"context"
	"log/slog"

	"firebase.google.com/go/v4/messaging"

	"github.com/pushrelay/api/internal/model"
)

// Delivery failure reasons reported in DispatchResult errors
const (
	ReasonUnregistered    = "unregistered"
	ReasonInvalidArgument = "invalid-argument"
	ReasonQuotaExceeded   = "quota-exceeded"
	ReasonUnavailable     = "unavailable"
	ReasonInternal        = "internal"
)

// Sender is the slice of the FCM messaging client the dispatcher needs.
// *messaging.Client satisfies it.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// PushService dispatches notifications to FCM registration tokens
type PushService struct {
	sender Sender
}

// PushServiceConfig holds configuration for the push service
type PushServiceConfig struct {
	Sender Sender
}

// NewPushService creates a new push service
func NewPushService(cfg PushServiceConfig) *PushService {
	return &PushService{sender: cfg.Sender}
}

// Send delivers one {title, body} notification per token and aggregates
// the outcomes. Each attempt is independent: a failing token never aborts
// delivery to the remaining tokens, and nothing is retried. An empty
// token slice is a normal outcome and returns a zero result without any
// calls.
func (s *PushService) Send(ctx context.Context, title, body string, tokens []string) *model.DispatchResult {
	result := model.NewDispatchResult()
	if len(tokens) == 0 {
		return result
	}

	title = truncate(title, model.MaxTitleLength)
	body = truncate(body, model.MaxBodyLength)

	for _, token := range tokens {
		message := &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
		}

		messageID, err := s.sender.Send(ctx, message)
		if err != nil {
			reason := failureReason(err)
			result.RecordFailure(token, reason)
			slog.WarnContext(ctx, "push delivery failed",
				slog.String("token", maskToken(token)),
				slog.String("reason", reason),
				slog.String("error", err.Error()),
			)
			continue
		}

		result.RecordSuccess()
		slog.DebugContext(ctx, "push delivered",
			slog.String("token", maskToken(token)),
			slog.String("message_id", messageID),
		)
	}

	return result
}

// failureReason classifies an FCM send error into a stable reason string
func failureReason(err error) string {
	switch {
	case messaging.IsRegistrationTokenNotRegistered(err):
		return ReasonUnregistered
	case messaging.IsInvalidArgument(err):
		return ReasonInvalidArgument
	case messaging.IsQuotaExceeded(err):
		return ReasonQuotaExceeded
	case messaging.IsUnavailable(err):
		return ReasonUnavailable
	default:
		return ReasonInternal
	}
}

// truncate limits s to max runes
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// maskToken masks a registration token for logging
func maskToken(token string) string {
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
