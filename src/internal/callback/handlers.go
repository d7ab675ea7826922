package callback

import (
	"context"
	"docbridge-svc/src/internal/events"
	"docbridge-svc/src/internal/filekey"
	"docbridge-svc/src/internal/models"
	"docbridge-svc/src/internal/session"

	"github.com/sirupsen/logrus"
)

// closedHandler purges the file's active-session entry once the last
// editor leaves. An empty user list is the "no editor open" signal.
type closedHandler struct {
	sessionService session.Service
	publisher      events.Publisher
}

func NewClosedHandler(sessionService session.Service, publisher events.Publisher) Registrar {
	return &closedHandler{sessionService: sessionService, publisher: publisher}
}

func (h *closedHandler) Status() models.CallbackStatus { return models.StatusClosed }

func (h *closedHandler) Handler() HandlerFunc {
	return func(ctx context.Context, teamID, userID string, cb *models.Callback) error {
		fileID := filekey.Extract(cb.Key, filekey.FieldFile)
		if fileID == "" {
			return nil
		}

		if len(cb.Users) > 0 {
			return nil
		}

		logrus.WithField("file_id", fileID).Info("Removing an active session on all users exit for current file")

		if err := h.sessionService.PurgeFileKey(ctx, fileID); err != nil {
			return err
		}

		if err := h.publisher.PublishDocumentEvent(fileID, teamID, userID, "closed"); err != nil {
			logrus.WithError(err).Warn("Failed to publish document closed event")
		}

		return nil
	}
}

// editingHandler refreshes the file's persisted last-activity so the
// sweeper keeps long-running editing sessions alive.
type editingHandler struct {
	sessionService session.Service
}

func NewEditingHandler(sessionService session.Service) Registrar {
	return &editingHandler{sessionService: sessionService}
}

func (h *editingHandler) Status() models.CallbackStatus { return models.StatusEditing }

func (h *editingHandler) Handler() HandlerFunc {
	return func(ctx context.Context, teamID, userID string, cb *models.Callback) error {
		fileID := filekey.Extract(cb.Key, filekey.FieldFile)
		if fileID == "" {
			return nil
		}

		return h.sessionService.RefreshActivity(ctx, fileID)
	}
}

// saveHandler notifies the chat collaborator that a new document
// version was produced.
type saveHandler struct {
	sessionService session.Service
	publisher      events.Publisher
}

func NewSaveHandler(sessionService session.Service, publisher events.Publisher) Registrar {
	return &saveHandler{sessionService: sessionService, publisher: publisher}
}

func (h *saveHandler) Status() models.CallbackStatus { return models.StatusSave }

func (h *saveHandler) Handler() HandlerFunc {
	return func(ctx context.Context, teamID, userID string, cb *models.Callback) error {
		fileID := filekey.Extract(cb.Key, filekey.FieldFile)
		if fileID == "" {
			return nil
		}

		if err := h.sessionService.RefreshActivity(ctx, fileID); err != nil {
			logrus.WithError(err).WithField("file_id", fileID).Warn("Failed to refresh file activity on save")
		}

		if err := h.publisher.PublishDocumentEvent(fileID, teamID, userID, "saved"); err != nil {
			logrus.WithError(err).Warn("Failed to publish document saved event")
		}

		return nil
	}
}

// saveErrorHandler only records the failure; the rendering service owns
// the retry.
type saveErrorHandler struct{}

func NewSaveErrorHandler() Registrar {
	return &saveErrorHandler{}
}

func (h *saveErrorHandler) Status() models.CallbackStatus { return models.StatusSaveError }

func (h *saveErrorHandler) Handler() HandlerFunc {
	return func(ctx context.Context, teamID, userID string, cb *models.Callback) error {
		logrus.WithFields(logrus.Fields{
			"team_id": teamID,
			"user_id": userID,
			"key":     cb.Key,
		}).Error("Rendering service reported a save error")

		return nil
	}
}
