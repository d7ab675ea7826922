package session

import (
	"context"
	"docbridge-svc/src/internal/config"
	"docbridge-svc/src/internal/filekey"
	"docbridge-svc/src/internal/models"
	"docbridge-svc/src/internal/store"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	handoffKeyPrefix = "handoff:"
	fileKeyPrefix    = "filekey:"
)

// Service owns the two shared maps: TTL'd one-time handoff sessions and
// the longer-lived fileId -> composite key map that marks "an editor is
// still open". The latter is not governed by the handoff TTL; the
// sweeper reaps it from persisted last-activity instead.
type Service interface {
	PutSession(ctx context.Context, session *models.EditorSession) error
	TakeSession(ctx context.Context, sessionID string) (*models.EditorSession, error)
	SessionExists(ctx context.Context, sessionID string) (bool, error)

	ResolveFileKey(ctx context.Context, fileID, teamID, userID string) (string, error)
	RefreshActivity(ctx context.Context, fileID string) error
	PurgeFileKey(ctx context.Context, fileID string) error
}

type sessionService struct {
	store      store.KeyValue
	repository Repository
	handoffTTL time.Duration
}

func NewSessionService(kv store.KeyValue, repository Repository, cfg *config.Configuration) Service {
	return &sessionService{
		store:      kv,
		repository: repository,
		handoffTTL: time.Duration(cfg.Session.HandoffTTLMinutes) * time.Minute,
	}
}

func (s *sessionService) PutSession(ctx context.Context, session *models.EditorSession) error {
	if session == nil || session.SessionID == "" {
		return models.ErrValidation
	}

	data, err := json.Marshal(session)
	if err != nil {
		logrus.WithError(err).Error("Failed to marshal editor session")
		return models.ErrSessionCreating
	}

	if err := s.store.Put(ctx, handoffKeyPrefix+session.SessionID, data, s.handoffTTL); err != nil {
		return models.ErrSessionCreating
	}

	logrus.WithFields(logrus.Fields{
		"session_id": session.SessionID,
		"file_id":    session.FileID,
	}).Debug("Editor session stored")

	return nil
}

// TakeSession consumes the handoff session. Consumed, expired and
// never-existed are indistinguishable so link validity does not leak.
func (s *sessionService) TakeSession(ctx context.Context, sessionID string) (*models.EditorSession, error) {
	data, err := s.store.TakeOnce(ctx, handoffKeyPrefix+sessionID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, models.ErrSessionNotFound
		}
		return nil, err
	}

	var session models.EditorSession
	if err := json.Unmarshal(data, &session); err != nil {
		logrus.WithError(err).WithField("session_id", sessionID).Error("Failed to unmarshal editor session")
		return nil, models.ErrSessionNotFound
	}

	return &session, nil
}

func (s *sessionService) SessionExists(ctx context.Context, sessionID string) (bool, error) {
	_, err := s.store.Get(ctx, handoffKeyPrefix+sessionID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// ResolveFileKey returns the composite key for a file with an open
// editor, creating one when none exists. Reusing the stored key keeps
// concurrent editors of the same file in one co-editing session.
func (s *sessionService) ResolveFileKey(ctx context.Context, fileID, teamID, userID string) (string, error) {
	data, err := s.store.Get(ctx, fileKeyPrefix+fileID)
	if err == nil {
		var record models.DocumentSessionKey
		if err := json.Unmarshal(data, &record); err == nil && record.Key != "" {
			if err := s.RefreshActivity(ctx, fileID); err != nil {
				logrus.WithError(err).WithField("file_id", fileID).Warn("Failed to refresh file activity")
			}
			return record.Key, nil
		}
	} else if !errors.Is(err, models.ErrRecordNotFound) {
		return "", err
	}

	key := filekey.Build(fileID, teamID, userID)
	record := models.DocumentSessionKey{FileID: fileID, Key: key}

	data, err = json.Marshal(record)
	if err != nil {
		return "", err
	}

	if err := s.store.Put(ctx, fileKeyPrefix+fileID, data, 0); err != nil {
		return "", err
	}

	if err := s.repository.Upsert(ctx, fileID); err != nil {
		return "", err
	}

	logrus.WithField("file_id", fileID).Debug("New document session key created")

	return key, nil
}

func (s *sessionService) RefreshActivity(ctx context.Context, fileID string) error {
	return s.repository.Upsert(ctx, fileID)
}

// PurgeFileKey removes the active key entry and its persisted record.
// Safe to run repeatedly; a second run is a no-op. The compare-and-delete
// keeps a key that a new editor session wrote in the meantime.
func (s *sessionService) PurgeFileKey(ctx context.Context, fileID string) error {
	data, err := s.store.Get(ctx, fileKeyPrefix+fileID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return s.repository.Delete(ctx, fileID)
		}
		return err
	}

	removed, err := s.store.RemoveIf(ctx, fileKeyPrefix+fileID, data)
	if err != nil {
		return err
	}
	if !removed {
		logrus.WithField("file_id", fileID).Debug("File key replaced during purge, keeping new session")
		return nil
	}

	return s.repository.Delete(ctx, fileID)
}
