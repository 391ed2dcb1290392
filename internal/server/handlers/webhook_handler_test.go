package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tahmidrayat/dukandost/internal/domain/models"
	"github.com/tahmidrayat/dukandost/internal/server/handlers"
	"github.com/tahmidrayat/dukandost/internal/server/router"
)

type MessagingServiceMock struct{ mock.Mock }

func (m *MessagingServiceMock) VerifyWebhookToken(mode, verifyToken, challenge string) (string, error) {
	args := m.Called(mode, verifyToken, challenge)
	return args.String(0), args.Error(1)
}

func (m *MessagingServiceMock) HandleWebhook(ctx context.Context, payload models.WebhookPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *MessagingServiceMock) SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func newTestRouter(svc *MessagingServiceMock) http.Handler {
	return router.New(handlers.NewWebhookHandler(svc, nil), nil)
}

func TestVerifyEndpoint(t *testing.T) {
	svc := new(MessagingServiceMock)
	svc.On("VerifyWebhookToken", "subscribe", "secret", "challenge-1").Return("challenge-1", nil)

	r := newTestRouter(svc)
	req := httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=secret&hub.challenge=challenge-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "challenge-1", w.Body.String())
	svc.AssertExpectations(t)
}

func TestVerifyEndpoint_Forbidden(t *testing.T) {
	svc := new(MessagingServiceMock)
	svc.On("VerifyWebhookToken", "subscribe", "wrong", "c").Return("", errors.New("invalid verify token"))

	r := newTestRouter(svc)
	req := httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=c", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReceiveEndpoint(t *testing.T) {
	svc := new(MessagingServiceMock)
	svc.On("HandleWebhook", mock.Anything, mock.AnythingOfType("models.WebhookPayload")).Return(nil)

	body := `{
		"object": "whatsapp_business_account",
		"entry": [{"id": "1", "changes": [{"field": "messages", "value": {
			"messages": [{"from": "8801700000000", "id": "wamid.1", "type": "text", "text": {"body": "5 kg chal"}}]
		}}]}]
	}`

	r := newTestRouter(svc)
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestReceiveEndpoint_BadPayload(t *testing.T) {
	svc := new(MessagingServiceMock)

	r := newTestRouter(svc)
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "HandleWebhook")
}

func TestSendMessageEndpoint(t *testing.T) {
	svc := new(MessagingServiceMock)
	svc.On("SendOutbound", mock.Anything, models.OutboundMessageRequest{
		To:      "8801700000000",
		Message: "restocked 20 kg chal",
	}).Return(nil)

	r := newTestRouter(svc)
	req := httptest.NewRequest(http.MethodPost, "/send-message",
		strings.NewReader(`{"to": "8801700000000", "message": "restocked 20 kg chal"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
	svc.AssertExpectations(t)
}

func TestRootAndHealthz(t *testing.T) {
	r := newTestRouter(new(MessagingServiceMock))

	for _, path := range []string{"/", "/healthz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, path)
	}
}
