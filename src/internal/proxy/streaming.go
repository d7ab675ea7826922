package proxy

import (
	"context"
	"docbridge-svc/src/clients"
	"docbridge-svc/src/internal/credentials"
	"docbridge-svc/src/internal/models"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// StreamingService fetches file bytes from chat-platform storage and
// writes them to the sink.
type StreamingService interface {
	Stream(ctx context.Context, teamID, userID, fileID string, sink io.Writer) error
}

type streamingService struct {
	chatClient      *clients.ChatClient
	credentialsRepo credentials.Repository
}

func NewStreamingService(chatClient *clients.ChatClient, credentialsRepo credentials.Repository) StreamingService {
	return &streamingService{
		chatClient:      chatClient,
		credentialsRepo: credentialsRepo,
	}
}

func (s *streamingService) Stream(ctx context.Context, teamID, userID, fileID string, sink io.Writer) error {
	creds, err := s.credentialsRepo.Find(ctx, teamID, userID)
	if err != nil {
		return fmt.Errorf("%w: no credentials for download", models.ErrUpstreamUnavailable)
	}

	file, err := s.chatClient.GetFileInfo(ctx, creds.AccessToken, fileID)
	if err != nil {
		return err
	}

	downloadURL := file.URLPrivateDownload
	if downloadURL == "" {
		downloadURL = file.URLPrivate
	}
	if downloadURL == "" {
		return fmt.Errorf("%w: file has no download url", models.ErrUpstreamUnavailable)
	}

	body, err := s.chatClient.DownloadFile(ctx, creds.AccessToken, downloadURL)
	if err != nil {
		return err
	}
	defer body.Close()

	written, err := io.Copy(sink, body)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrUpstreamUnavailable, err)
	}

	logrus.WithFields(logrus.Fields{
		"file_id": fileID,
		"bytes":   written,
	}).Debug("File streamed to rendering service")

	return nil
}
