package clients

import (
	"context"
	"docbridge-svc/src/internal/config"
	"docbridge-svc/src/internal/models"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

// ChatClient talks to the chat platform's Web API on behalf of an
// installed workspace user.
type ChatClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewChatClient(cfg *config.Configuration) *ChatClient {
	return &ChatClient{
		baseURL: cfg.Chat.ApiUrl,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Chat.Timeout) * time.Second,
		},
	}
}

type apiEnvelope struct {
	Ok    bool             `json:"ok"`
	Error string           `json:"error"`
	File  *models.ChatFile `json:"file"`
	User  *models.ChatUser `json:"user"`
}

// GetFileInfo retrieves file metadata from the chat platform.
func (c *ChatClient) GetFileInfo(ctx context.Context, accessToken, fileID string) (*models.ChatFile, error) {
	envelope, err := c.call(ctx, accessToken, "files.info", url.Values{"file": {fileID}})
	if err != nil {
		return nil, err
	}

	if envelope.File == nil {
		return nil, fmt.Errorf("%w: files.info returned no file", models.ErrUpstreamUnavailable)
	}

	return envelope.File, nil
}

// GetUserInfo retrieves user metadata from the chat platform.
func (c *ChatClient) GetUserInfo(ctx context.Context, accessToken, userID string) (*models.ChatUser, error) {
	envelope, err := c.call(ctx, accessToken, "users.info", url.Values{"user": {userID}})
	if err != nil {
		return nil, err
	}

	if envelope.User == nil {
		return nil, fmt.Errorf("%w: users.info returned no user", models.ErrUpstreamUnavailable)
	}

	return envelope.User, nil
}

// DownloadFile opens a stream for the file's private download URL.
// The caller owns the returned body and must close it.
func (c *ChatClient) DownloadFile(ctx context.Context, accessToken, downloadURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create download request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: file download returned status %d", models.ErrUpstreamUnavailable, resp.StatusCode)
	}

	return resp.Body, nil
}

func (c *ChatClient) call(ctx context.Context, accessToken, method string, params url.Values) (*apiEnvelope, error) {
	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, method, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).WithField("method", method).Error("Chat API call failed")
		return nil, fmt.Errorf("%w: %v", models.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: chat API returned status %d", models.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var envelope apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode chat API response: %w", err)
	}

	if !envelope.Ok {
		logrus.WithFields(logrus.Fields{
			"method": method,
			"error":  envelope.Error,
		}).Error("Chat API returned an error")
		return nil, fmt.Errorf("%w: %s", models.ErrUpstreamUnavailable, envelope.Error)
	}

	return &envelope, nil
}
