package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pushrelay/api/internal/model"
)

// TokenRepository interface for the handler
type TokenRepository interface {
	ListAll(ctx context.Context) ([]string, error)
	ListByDeviceName(ctx context.Context, name string) ([]string, error)
}

// PushDispatcher interface for the handler
type PushDispatcher interface {
	Send(ctx context.Context, title, body string, tokens []string) *model.DispatchResult
}

// PushHandler handles send-push HTTP requests
type PushHandler struct {
	tokens     TokenRepository
	dispatcher PushDispatcher
}

// PushHandlerConfig holds push handler dependencies
type PushHandlerConfig struct {
	Tokens     TokenRepository
	Dispatcher PushDispatcher
}

// NewPushHandler creates a new push handler
func NewPushHandler(cfg PushHandlerConfig) *PushHandler {
	return &PushHandler{
		tokens:     cfg.Tokens,
		dispatcher: cfg.Dispatcher,
	}
}

// SendPush handles POST /api/send-push. Validation failures reject the
// request before any side effect; once tokens are resolved the response
// is always 200, with per-token failures reported in-band rather than
// through the HTTP status.
func (h *PushHandler) SendPush(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.SendPushRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		WriteError(w, validationError(errs))
		return
	}

	tokens, err := h.resolveTokens(ctx, req.DeviceName)
	if err != nil {
		slog.ErrorContext(ctx, "token resolution failed",
			slog.String("device_name", req.DeviceName),
			slog.String("error", err.Error()),
		)
		WriteError(w, model.NewInternalError("failed to load device tokens"))
		return
	}

	// An empty audience is a normal outcome, not an error
	if len(tokens) == 0 {
		WriteJSON(w, http.StatusOK, model.NewDispatchResult())
		return
	}

	result := h.dispatcher.Send(ctx, req.Title, req.Body, tokens)

	slog.InfoContext(ctx, "push dispatched",
		slog.Int("tokens", len(tokens)),
		slog.Int("success", result.SuccessCount),
		slog.Int("failure", result.FailureCount),
	)

	WriteJSON(w, http.StatusOK, result)
}

// resolveTokens narrows the audience to the named device when a
// deviceName was supplied, otherwise targets every registered token
func (h *PushHandler) resolveTokens(ctx context.Context, deviceName string) ([]string, error) {
	if name := strings.TrimSpace(deviceName); name != "" {
		return h.tokens.ListByDeviceName(ctx, name)
	}
	return h.tokens.ListAll(ctx)
}

// validationError maps field errors to the client-facing message. Missing
// title or body keeps the exact wording the frontend matches on.
func validationError(errs []model.FieldError) *model.APIError {
	for _, fe := range errs {
		if strings.HasSuffix(fe.Message, "is required") {
			return model.NewTitleBodyRequiredError()
		}
	}
	return model.NewBadRequestError(errs[0].Message)
}
