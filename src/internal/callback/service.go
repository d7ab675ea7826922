package callback

import (
	"context"
	"docbridge-svc/src/internal/filekey"
	"docbridge-svc/src/internal/models"
	"docbridge-svc/src/internal/settings"
	"docbridge-svc/src/internal/token"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

// Service verifies and dispatches callbacks posted by the rendering
// service. Callback payloads are attacker-reachable: malformed input is
// dropped with a logged rejection, never a panic or an oracle.
type Service interface {
	Process(ctx context.Context, headers http.Header, cb *models.Callback) error
}

type callbackService struct {
	tokenService    token.Service
	settingsService settings.Service
	registry        Registry
}

func NewCallbackService(tokenService token.Service, settingsService settings.Service, registry Registry) Service {
	return &callbackService{
		tokenService:    tokenService,
		settingsService: settingsService,
		registry:        registry,
	}
}

func (s *callbackService) Process(ctx context.Context, headers http.Header, cb *models.Callback) error {
	teamID := filekey.Extract(cb.Key, filekey.FieldTeam)
	userID := filekey.Extract(cb.Key, filekey.FieldUser)

	if teamID == "" {
		logrus.Warn("Received an invalid callback key. Team id is missing or blank")
		return nil
	}

	if userID == "" {
		logrus.Warn("Received an invalid callback key. User id is missing or blank")
		return nil
	}

	log := logrus.WithFields(logrus.Fields{
		"team_id":      teamID,
		"user_id":      userID,
		"callback_key": cb.Key,
		"status":       cb.Status.String(),
	})

	log.Info("Processing callback")

	// EffectiveSettings applies the demo endpoint's header and secret
	// before verification when demo or fallback mode is in force.
	teamSettings, err := s.settingsService.EffectiveSettings(ctx, teamID)
	if err != nil {
		return fmt.Errorf("could not resolve settings for team %s: %w", teamID, err)
	}

	if cb.Token == "" {
		log.WithField("header", teamSettings.Header).Info("No token in callback. Attempting to extract from headers")
		cb.Token = strings.TrimPrefix(headers.Get(teamSettings.Header), "Bearer ")
	}

	payload, err := s.tokenService.Verify(cb.Token, teamSettings.Secret)
	if err != nil {
		return fmt.Errorf("could not validate callback: %w", err)
	}
	if len(payload) == 0 {
		return fmt.Errorf("could not validate callback: %w", models.ErrTokenVerification)
	}

	log.Info("Callback token validated successfully for current team")

	handler, ok := s.registry.Find(cb.Status)
	if !ok {
		log.Info("No handler found for callback status")
		return nil
	}

	log.Info("Invoking callback handler")

	return handler(ctx, teamID, userID, cb)
}
