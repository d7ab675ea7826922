package callback

import (
	"bytes"
	"context"
	"docbridge-svc/src/internal/config"
	"docbridge-svc/src/internal/models"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubCallbackService struct {
	err      error
	received *models.Callback
}

func (s *stubCallbackService) Process(ctx context.Context, headers http.Header, cb *models.Callback) error {
	s.received = cb
	return s.err
}

func postCallback(t *testing.T, service Service, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Configuration{}
	cfg.App.Timeout = 5

	router := gin.New()
	router.POST("/callback", NewHandler(cfg, service).HandleCallback)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/callback?file=F1", bytes.NewReader([]byte(body)))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)

	return recorder
}

func TestHandleCallbackAcknowledges(t *testing.T) {
	service := &stubCallbackService{}

	recorder := postCallback(t, service, `{"key":"F1_T1_U1_n","status":2,"token":"t"}`)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"error":0}`, recorder.Body.String())

	assert.Equal(t, "F1_T1_U1_n", service.received.Key)
	assert.Equal(t, models.StatusSave, service.received.Status)
}

func TestHandleCallbackRejectsMalformedBody(t *testing.T) {
	service := &stubCallbackService{}

	recorder := postCallback(t, service, `{"key":`)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"error":1}`, recorder.Body.String())
	assert.Nil(t, service.received)
}

func TestHandleCallbackRejectsOnProcessingFailure(t *testing.T) {
	service := &stubCallbackService{err: models.ErrTokenVerification}

	recorder := postCallback(t, service, `{"key":"F1_T1_U1_n","status":1}`)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"error":1}`, recorder.Body.String())
}
