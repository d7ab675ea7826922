package validation

import (
	"context"
	"docbridge-svc/src/internal/config"
	"docbridge-svc/src/internal/models"
	"docbridge-svc/src/internal/token"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingTransport fails every request and records how many were made.
type countingTransport struct {
	calls atomic.Int64
}

func (t *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	t.calls.Add(1)
	return nil, http.ErrHandlerTimeout
}

func newTokenService(t *testing.T) token.Service {
	t.Helper()
	cfg := &config.Configuration{}
	cfg.DocumentServer.Jwt.KeepAliveMinutes = 5
	cfg.DocumentServer.Jwt.AcceptableLeewaySeconds = 3
	return token.NewTokenService(cfg)
}

func newService(t *testing.T, client *http.Client, retries int) *validationService {
	t.Helper()
	return &validationService{
		httpClient:   client,
		tokenService: newTokenService(t),
		retries:      retries,
		retryDelay:   time.Millisecond,
	}
}

func validRequest(address string) *Request {
	return &Request{
		Address: address,
		Header:  "AuthorizationJwt",
		Secret:  "endpoint-secret",
	}
}

func TestValidateConnectionRejectsMalformedAddress(t *testing.T) {
	transport := &countingTransport{}
	service := newService(t, &http.Client{Transport: transport}, 3)

	addresses := []string{
		"http://docs.example.com",
		"docs.example.com",
		"https://",
		"ftp://docs.example.com",
		"",
	}

	for _, address := range addresses {
		err := service.ValidateConnection(context.Background(), validRequest(address))
		assert.ErrorIs(t, err, models.ErrMalformedAddress, "address %q", address)
	}

	// Malformed addresses fail before any probe is sent.
	assert.Zero(t, transport.calls.Load())
}

func TestValidateConnectionDemoWithoutCredentials(t *testing.T) {
	transport := &countingTransport{}
	service := newService(t, &http.Client{Transport: transport}, 3)

	err := service.ValidateConnection(context.Background(), &Request{DemoEnabled: true})
	require.NoError(t, err)
	assert.Zero(t, transport.calls.Load())
}

func TestValidateConnectionDemoWithCredentialsStillProbes(t *testing.T) {
	transport := &countingTransport{}
	service := newService(t, &http.Client{Transport: transport}, 1)

	request := validRequest("https://docs.example.com")
	request.DemoEnabled = true

	err := service.ValidateConnection(context.Background(), request)
	require.Error(t, err)
	assert.NotZero(t, transport.calls.Load())
}

func TestValidateConnectionAddressTrimsTrailingSlashes(t *testing.T) {
	address, err := validateConnectionAddress("https://docs.example.com///")
	require.NoError(t, err)
	assert.Equal(t, "https://docs.example.com", address)
}

// newDocumentServer fakes the rendering service's healthcheck and
// command endpoints over TLS.
func newDocumentServer(t *testing.T, commandError int, failFirst *atomic.Int64) (*httptest.Server, *atomic.Int64) {
	t.Helper()

	var headerValues atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if failFirst != nil && failFirst.Add(-1) >= 0 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/command", func(w http.ResponseWriter, r *http.Request) {
		if failFirst != nil && failFirst.Add(-1) >= 0 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		if r.URL.Query().Get("shardkey") == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.Header.Get("AuthorizationJwt") != "" {
			headerValues.Add(1)
		}
		json.NewEncoder(w).Encode(serverVersionResponse{Version: "8.1.0", Error: commandError})
	})

	server := httptest.NewTLSServer(mux)
	t.Cleanup(server.Close)
	return server, &headerValues
}

func TestValidateConnectionSucceeds(t *testing.T) {
	server, headerValues := newDocumentServer(t, 0, nil)
	service := newService(t, server.Client(), 1)

	err := service.ValidateConnection(context.Background(), validRequest(server.URL))
	require.NoError(t, err)

	// Both version probes carried the secret in the configured header.
	assert.Equal(t, int64(2), headerValues.Load())
}

func TestValidateConnectionVersionCommandError(t *testing.T) {
	server, _ := newDocumentServer(t, 1, nil)
	service := newService(t, server.Client(), 1)

	err := service.ValidateConnection(context.Background(), validRequest(server.URL))
	require.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrMalformedAddress)
}

func TestValidateConnectionRetriesTransientFailures(t *testing.T) {
	var failFirst atomic.Int64
	failFirst.Store(3)

	server, _ := newDocumentServer(t, 0, &failFirst)
	service := newService(t, server.Client(), 5)

	err := service.ValidateConnection(context.Background(), validRequest(server.URL))
	require.NoError(t, err)
}

func TestValidateConnectionExhaustsRetries(t *testing.T) {
	transport := &countingTransport{}
	service := newService(t, &http.Client{Transport: transport}, 2)

	err := service.ValidateConnection(context.Background(), validRequest("https://docs.example.com"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrMalformedAddress)
	assert.Positive(t, transport.calls.Load())
}

func TestCheckHealthRejectsNon200(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	server := httptest.NewTLSServer(mux)
	t.Cleanup(server.Close)

	service := newService(t, server.Client(), 1)
	err := service.checkHealth(context.Background(), server.URL)
	assert.ErrorIs(t, err, models.ErrHealthCheckFailed)
}

func TestValidateConnectionHonoursContextCancel(t *testing.T) {
	transport := &countingTransport{}
	service := newService(t, &http.Client{Transport: transport}, 5)
	service.retryDelay = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	started := time.Now()
	err := service.ValidateConnection(ctx, validRequest("https://docs.example.com"))
	require.Error(t, err)

	// The retry delay observes the cancel instead of sleeping a minute.
	assert.Less(t, time.Since(started), 5*time.Second)
}
