package callback

import (
	"context"
	"docbridge-svc/src/internal/config"
	"docbridge-svc/src/internal/models"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler interface {
	HandleCallback(c *gin.Context)
}

type handler struct {
	config  *config.Configuration
	service Service
}

func NewHandler(cfg *config.Configuration, service Service) Handler {
	return &handler{config: cfg, service: service}
}

// HandleCallback receives lifecycle reports from the rendering service.
// The response body is the protocol acknowledgment: error 0 accepts the
// callback, error 1 tells the sender it was rejected.
func (h *handler) HandleCallback(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
	defer cancel()

	var cb models.Callback
	if err := c.ShouldBindJSON(&cb); err != nil {
		logrus.WithError(err).Warn("Received a malformed callback body")
		c.JSON(http.StatusOK, gin.H{"error": 1})
		return
	}

	if err := h.service.Process(ctx, c.Request.Header, &cb); err != nil {
		// Not retried here; the rendering service owns retries.
		logrus.WithError(err).WithField("file", c.Query("file")).Error("Callback rejected")
		c.JSON(http.StatusOK, gin.H{"error": 1})
		return
	}

	c.JSON(http.StatusOK, gin.H{"error": 0})
}
