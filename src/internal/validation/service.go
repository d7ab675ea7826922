package validation

import (
	"bytes"
	"context"
	"docbridge-svc/src/internal/config"
	"docbridge-svc/src/internal/models"
	"docbridge-svc/src/internal/token"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Request is a transient, one-shot validation of a rendering-service
// endpoint an administrator submitted.
type Request struct {
	Address     string `json:"address"`
	Header      string `json:"header"`
	Secret      string `json:"secret"`
	DemoEnabled bool   `json:"demoEnabled"`
}

// HasCredentials reports whether real credentials were supplied.
func (r *Request) HasCredentials() bool {
	return r.Address != "" && r.Header != "" && r.Secret != ""
}

// Service verifies that a configured rendering-service endpoint is
// reachable and protocol-compatible before settings are accepted.
type Service interface {
	ValidateConnection(ctx context.Context, request *Request) error
}

type validationService struct {
	httpClient   *http.Client
	tokenService token.Service
	retries      int
	retryDelay   time.Duration
}

func NewValidationService(tokenService token.Service, cfg *config.Configuration) Service {
	return &validationService{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.App.Timeout) * time.Second,
		},
		tokenService: tokenService,
		retries:      cfg.Session.ValidationRetries,
		retryDelay:   time.Duration(cfg.Session.ValidationRetryDelay) * time.Second,
	}
}

type serverCommand struct {
	C string `json:"c"`
}

type serverTokenCommand struct {
	Token string `json:"token"`
}

type serverVersionResponse struct {
	Version string `json:"version"`
	Error   int    `json:"error"`
}

func (s *validationService) ValidateConnection(ctx context.Context, request *Request) error {
	log := logrus.WithFields(logrus.Fields{
		"address": request.Address,
		"header":  request.Header,
	})

	log.Info("Starting document server connection validation")

	if request.DemoEnabled && !request.HasCredentials() {
		log.Info("Demo mode enabled without credentials, skipping validation")
		return nil
	}

	// A malformed address is a caller mistake; retrying cannot fix it
	// and no network call is made.
	address, err := validateConnectionAddress(request.Address)
	if err != nil {
		return err
	}

	log.Info("Connection address validated")

	var lastErr error
	for attempt := 0; attempt < s.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.retryDelay):
			}
		}

		lastErr = s.runChecks(ctx, address, request)
		if lastErr == nil {
			log.Info("Document server connection validation completed successfully")
			return nil
		}

		log.WithError(lastErr).WithField("attempt", attempt+1).Warn("Document server validation attempt failed")
	}

	return lastErr
}

// runChecks probes the endpoint three ways concurrently: reachability,
// a signed version command with the secret in the configured header,
// and the same command with a bearer-style header. Administrators may
// have set up either header convention, so both must work.
func (s *validationService) runChecks(ctx context.Context, address string, request *Request) error {
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return s.checkHealth(ctx, address)
	})

	group.Go(func() error {
		return s.checkVersion(ctx, address, request)
	})

	group.Go(func() error {
		return s.checkVersionHeader(ctx, address, request)
	})

	return group.Wait()
}

func (s *validationService) checkHealth(ctx context.Context, address string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, address+"/healthcheck", nil)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrHealthCheckFailed, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrHealthCheckFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", models.ErrHealthCheckFailed, resp.StatusCode)
	}

	logrus.Debug("Document server health validated")
	return nil
}

func (s *validationService) checkVersion(ctx context.Context, address string, request *Request) error {
	signed, err := s.tokenService.IssueObject(serverCommand{C: "version"}, request.Secret)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrVersionCheckFailed, err)
	}

	err = s.executeVersionRequest(ctx, address, request.Header, signed, serverTokenCommand{Token: signed})
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrVersionCheckFailed, err)
	}

	logrus.Debug("Document server version validated")
	return nil
}

func (s *validationService) checkVersionHeader(ctx context.Context, address string, request *Request) error {
	signed, err := s.tokenService.IssueObject(serverCommand{C: "version"}, request.Secret)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrVersionHeaderCheckFailed, err)
	}

	err = s.executeVersionRequest(ctx, address, request.Header, "Bearer "+signed, serverCommand{C: "version"})
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrVersionHeaderCheckFailed, err)
	}

	logrus.Debug("Document server version header validated")
	return nil
}

func (s *validationService) executeVersionRequest(
	ctx context.Context,
	address, headerName, headerValue string,
	body interface{},
) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/command?shardkey=%s", address, uuid.NewString())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerName, headerValue)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("version command returned status %d", resp.StatusCode)
	}

	var version serverVersionResponse
	if err := json.NewDecoder(resp.Body).Decode(&version); err != nil {
		return err
	}

	if version.Error != 0 {
		return fmt.Errorf("version command returned error %d", version.Error)
	}

	return nil
}

func validateConnectionAddress(address string) (string, error) {
	sanitized := strings.TrimRight(address, "/")

	parsed, err := url.Parse(sanitized)
	if err != nil {
		return "", models.ErrMalformedAddress
	}

	if !strings.EqualFold(parsed.Scheme, "https") || parsed.Host == "" {
		return "", models.ErrMalformedAddress
	}

	return sanitized, nil
}
