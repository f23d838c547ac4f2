package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pushrelay/api/internal/model"
)

// ============================================================================
// Mocks
// ============================================================================

type mockTokenRepo struct {
	listAllFunc          func(ctx context.Context) ([]string, error)
	listByDeviceNameFunc func(ctx context.Context, name string) ([]string, error)
}

func (m *mockTokenRepo) ListAll(ctx context.Context) ([]string, error) {
	if m.listAllFunc != nil {
		return m.listAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockTokenRepo) ListByDeviceName(ctx context.Context, name string) ([]string, error) {
	if m.listByDeviceNameFunc != nil {
		return m.listByDeviceNameFunc(ctx, name)
	}
	return nil, nil
}

type mockDispatcher struct {
	sendFunc func(ctx context.Context, title, body string, tokens []string) *model.DispatchResult
	calls    int
}

func (m *mockDispatcher) Send(ctx context.Context, title, body string, tokens []string) *model.DispatchResult {
	m.calls++
	if m.sendFunc != nil {
		return m.sendFunc(ctx, title, body, tokens)
	}
	result := model.NewDispatchResult()
	for range tokens {
		result.RecordSuccess()
	}
	return result
}

// ============================================================================
// Test Helpers
// ============================================================================

func newTestPushHandler(repo *mockTokenRepo, dispatcher *mockDispatcher) *PushHandler {
	if repo == nil {
		repo = &mockTokenRepo{}
	}
	if dispatcher == nil {
		dispatcher = &mockDispatcher{}
	}
	return NewPushHandler(PushHandlerConfig{
		Tokens:     repo,
		Dispatcher: dispatcher,
	})
}

func makeJSONRequest(t *testing.T, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(http.MethodPost, "/api/send-push", &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func parseResult(t *testing.T, body []byte) *model.DispatchResult {
	t.Helper()
	var result model.DispatchResult
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return &result
}

func parseErrorResponse(t *testing.T, body []byte) string {
	t.Helper()
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("failed to parse error response: %v", err)
	}
	return resp.Error
}

// ============================================================================
// Validation Tests
// ============================================================================

func TestSendPush_MissingTitle_Returns400(t *testing.T) {
	t.Parallel()

	dispatcher := &mockDispatcher{}
	h := newTestPushHandler(nil, dispatcher)

	req := makeJSONRequest(t, map[string]string{"title": "", "body": "x"})
	rr := httptest.NewRecorder()
	h.SendPush(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}
	if msg := parseErrorResponse(t, rr.Body.Bytes()); msg != "title and body are required" {
		t.Errorf("expected 'title and body are required', got %q", msg)
	}
	if dispatcher.calls != 0 {
		t.Errorf("expected no dispatch attempts, got %d", dispatcher.calls)
	}
}

func TestSendPush_MissingBody_Returns400(t *testing.T) {
	t.Parallel()

	dispatcher := &mockDispatcher{}
	h := newTestPushHandler(nil, dispatcher)

	req := makeJSONRequest(t, map[string]string{"title": "Hi"})
	rr := httptest.NewRecorder()
	h.SendPush(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}
	if msg := parseErrorResponse(t, rr.Body.Bytes()); msg != "title and body are required" {
		t.Errorf("expected 'title and body are required', got %q", msg)
	}
	if dispatcher.calls != 0 {
		t.Errorf("expected no dispatch attempts, got %d", dispatcher.calls)
	}
}

func TestSendPush_WhitespaceTitle_Returns400(t *testing.T) {
	t.Parallel()

	h := newTestPushHandler(nil, nil)

	req := makeJSONRequest(t, map[string]string{"title": "   ", "body": "x"})
	rr := httptest.NewRecorder()
	h.SendPush(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}
}

func TestSendPush_TitleTooLong_Returns400(t *testing.T) {
	t.Parallel()

	h := newTestPushHandler(nil, nil)

	req := makeJSONRequest(t, map[string]string{
		"title": strings.Repeat("a", model.MaxTitleLength+1),
		"body":  "x",
	})
	rr := httptest.NewRecorder()
	h.SendPush(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}
	if msg := parseErrorResponse(t, rr.Body.Bytes()); !strings.Contains(msg, "maximum length") {
		t.Errorf("expected length message, got %q", msg)
	}
}

func TestSendPush_InvalidJSON_Returns400(t *testing.T) {
	t.Parallel()

	h := newTestPushHandler(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/send-push", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	h.SendPush(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}
}

// ============================================================================
// Dispatch Tests
// ============================================================================

func TestSendPush_NoTokens_ReturnsZeroResult(t *testing.T) {
	t.Parallel()

	repo := &mockTokenRepo{
		listAllFunc: func(ctx context.Context) ([]string, error) {
			return []string{}, nil
		},
	}
	dispatcher := &mockDispatcher{}
	h := newTestPushHandler(repo, dispatcher)

	req := makeJSONRequest(t, map[string]string{"title": "Hi", "body": "There"})
	rr := httptest.NewRecorder()
	h.SendPush(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
	result := parseResult(t, rr.Body.Bytes())
	if result.SuccessCount != 0 || result.FailureCount != 0 {
		t.Errorf("expected zero counts, got %d/%d", result.SuccessCount, result.FailureCount)
	}
	if result.Errors == nil || len(result.Errors) != 0 {
		t.Errorf("expected empty errors array, got %v", result.Errors)
	}
	if dispatcher.calls != 0 {
		t.Errorf("expected no dispatch for empty audience, got %d calls", dispatcher.calls)
	}
	// The array must serialize as [], not null
	if !strings.Contains(rr.Body.String(), `"errors":[]`) {
		t.Errorf("expected errors to serialize as [], got %s", rr.Body.String())
	}
}

func TestSendPush_PartialFailure_Returns200WithDetail(t *testing.T) {
	t.Parallel()

	repo := &mockTokenRepo{
		listAllFunc: func(ctx context.Context) ([]string, error) {
			return []string{"t1", "t2", "t3"}, nil
		},
	}
	dispatcher := &mockDispatcher{
		sendFunc: func(ctx context.Context, title, body string, tokens []string) *model.DispatchResult {
			result := model.NewDispatchResult()
			result.RecordSuccess()
			result.RecordSuccess()
			result.RecordFailure("t3", "unregistered")
			return result
		},
	}
	h := newTestPushHandler(repo, dispatcher)

	req := makeJSONRequest(t, map[string]string{"title": "Hi", "body": "There"})
	rr := httptest.NewRecorder()
	h.SendPush(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected 200 on partial failure, got %d", rr.Code)
	}
	result := parseResult(t, rr.Body.Bytes())
	if result.SuccessCount != 2 || result.FailureCount != 1 {
		t.Errorf("expected 2/1, got %d/%d", result.SuccessCount, result.FailureCount)
	}
	if len(result.Errors) != 1 || result.Errors[0].Token != "t3" || result.Errors[0].Reason != "unregistered" {
		t.Errorf("unexpected error detail: %+v", result.Errors)
	}
}

func TestSendPush_DeviceName_RoutesToFilteredLookup(t *testing.T) {
	t.Parallel()

	var queriedName string
	repo := &mockTokenRepo{
		listByDeviceNameFunc: func(ctx context.Context, name string) ([]string, error) {
			queriedName = name
			return []string{"t1"}, nil
		},
		listAllFunc: func(ctx context.Context) ([]string, error) {
			t.Error("ListAll should not be called when deviceName is set")
			return nil, nil
		},
	}
	h := newTestPushHandler(repo, nil)

	req := makeJSONRequest(t, map[string]string{"title": "Hi", "body": "There", "deviceName": "phoneA"})
	rr := httptest.NewRecorder()
	h.SendPush(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
	if queriedName != "phoneA" {
		t.Errorf("expected lookup for phoneA, got %q", queriedName)
	}
}

func TestSendPush_DeviceNameNoMatch_ReturnsZeroResult(t *testing.T) {
	t.Parallel()

	repo := &mockTokenRepo{
		listByDeviceNameFunc: func(ctx context.Context, name string) ([]string, error) {
			return []string{}, nil
		},
	}
	h := newTestPushHandler(repo, nil)

	req := makeJSONRequest(t, map[string]string{"title": "Hi", "body": "There", "deviceName": "phoneA"})
	rr := httptest.NewRecorder()
	h.SendPush(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected 200 for empty audience, got %d", rr.Code)
	}
	result := parseResult(t, rr.Body.Bytes())
	if result.SuccessCount != 0 || result.FailureCount != 0 || len(result.Errors) != 0 {
		t.Errorf("expected zero result, got %+v", result)
	}
}

func TestSendPush_RepositoryError_Returns500(t *testing.T) {
	t.Parallel()

	repo := &mockTokenRepo{
		listAllFunc: func(ctx context.Context) ([]string, error) {
			return nil, errors.New("firestore unreachable")
		},
	}
	dispatcher := &mockDispatcher{}
	h := newTestPushHandler(repo, dispatcher)

	req := makeJSONRequest(t, map[string]string{"title": "Hi", "body": "There"})
	rr := httptest.NewRecorder()
	h.SendPush(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rr.Code)
	}
	if dispatcher.calls != 0 {
		t.Errorf("expected no dispatch after repository failure, got %d", dispatcher.calls)
	}
}

// ============================================================================
// Health Tests
// ============================================================================

func TestHealth_Returns200OK(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	Health(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
}
