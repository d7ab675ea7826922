package proxy

import (
	"context"
	"docbridge-svc/src/internal/config"
	"docbridge-svc/src/internal/models"
	"docbridge-svc/src/internal/token"
	"encoding/json"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Handler serves file bytes to the rendering service. Responses carry
// bare status codes only; bodies would leak internals to a third party.
type Handler interface {
	DownloadFile(c *gin.Context)
}

type handler struct {
	tokenService     token.Service
	streamingService StreamingService
	cryptoSecret     string
	downloadTimeout  time.Duration
}

func NewHandler(tokenService token.Service, streamingService StreamingService, cfg *config.Configuration) Handler {
	return &handler{
		tokenService:     tokenService,
		streamingService: streamingService,
		cryptoSecret:     cfg.Cryptography.Secret,
		downloadTimeout:  time.Duration(cfg.Session.DownloadTimeout) * time.Second,
	}
}

// decodeDownloadToken verifies against the process-wide cryptography
// secret. Per-team secrets never sign download tokens; the rendering
// service only ever echoes this one back.
func (h *handler) decodeDownloadToken(rawToken string) (*models.DownloadSession, error) {
	payload, err := h.tokenService.Verify(rawToken, h.cryptoSecret)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, models.ErrTokenVerification
	}

	var session models.DownloadSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, models.ErrTokenVerification
	}

	if session.TeamID == "" || session.UserID == "" || session.FileID == "" {
		return nil, models.ErrTokenVerification
	}

	return &session, nil
}

// countingWriter tracks whether any bytes reached the client so a
// timeout after partial output does not try to rewrite the status.
type countingWriter struct {
	sink    io.Writer
	written atomic.Int64
}

func (w *countingWriter) Write(p []byte) (int, error) {
	n, err := w.sink.Write(p)
	w.written.Add(int64(n))
	return n, err
}

func (h *handler) DownloadFile(c *gin.Context) {
	downloadToken, err := h.decodeDownloadToken(c.Param("token"))
	if err != nil {
		logrus.WithError(err).Warn("Rejected download request with a bad token")
		c.Status(http.StatusForbidden)
		return
	}

	log := logrus.WithFields(logrus.Fields{
		"team_id": downloadToken.TeamID,
		"user_id": downloadToken.UserID,
		"file_id": downloadToken.FileID,
	})

	log.Info("Initializing file download")

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.downloadTimeout)
	defer cancel()

	// The stream runs on its own goroutine so a stalled upstream cannot
	// pin a request-handling worker past the timeout bound.
	writer := &countingWriter{sink: c.Writer}
	done := make(chan error, 1)
	go func() {
		done <- h.streamingService.Stream(ctx, downloadToken.TeamID, downloadToken.UserID, downloadToken.FileID, writer)
	}()

	select {
	case err := <-done:
		if err != nil {
			log.WithError(err).Error("File download failed")
			if writer.written.Load() == 0 {
				c.Status(http.StatusBadGateway)
			}
			return
		}
		log.Debug("Download completed for file")
	case <-ctx.Done():
		cancel()
		// Wait for the worker to observe cancellation and release the
		// upstream connection before responding.
		<-done
		log.Warn("Download request timed out")
		if writer.written.Load() == 0 {
			c.Status(http.StatusRequestTimeout)
		}
	}
}
