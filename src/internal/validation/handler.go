package validation

import (
	"docbridge-svc/src/internal/models"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler interface {
	ValidateSettings(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// ValidateSettings checks a submitted rendering-service endpoint and
// reports which aspect is broken so the settings UI can say so.
func (h *handler) ValidateSettings(c *gin.Context) {
	var request Request
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"cause": "bad_request"})
		return
	}

	if err := h.service.ValidateConnection(c.Request.Context(), &request); err != nil {
		logrus.WithError(err).Warn("Document server settings validation failed")
		c.JSON(statusForCause(err), gin.H{"cause": causeName(err)})
		return
	}

	c.Status(http.StatusNoContent)
}

func statusForCause(err error) int {
	if errors.Is(err, models.ErrMalformedAddress) {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

func causeName(err error) string {
	switch {
	case errors.Is(err, models.ErrMalformedAddress):
		return "malformed_address"
	case errors.Is(err, models.ErrHealthCheckFailed):
		return "health"
	case errors.Is(err, models.ErrVersionCheckFailed):
		return "version"
	case errors.Is(err, models.ErrVersionHeaderCheckFailed):
		return "version_header"
	default:
		return "unknown"
	}
}
