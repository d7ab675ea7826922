package settings

import (
	"context"
	"docbridge-svc/src/internal/config"
	"docbridge-svc/src/internal/models"
	"errors"

	"github.com/sirupsen/logrus"
)

// Service resolves the rendering-service endpoint a team should use.
// Teams without a complete endpoint of their own fall back to the
// operator-provided demo endpoint while the trial window is open.
type Service interface {
	FindSettings(ctx context.Context, teamID string) (*TeamSettings, error)
	EffectiveSettings(ctx context.Context, teamID string) (*TeamSettings, error)
}

type settingsService struct {
	repository Repository
	demo       *config.DemoConfig
}

func NewSettingsService(repository Repository, cfg *config.Configuration) Service {
	return &settingsService{
		repository: repository,
		demo:       &cfg.DocumentServer.Demo,
	}
}

func (s *settingsService) FindSettings(ctx context.Context, teamID string) (*TeamSettings, error) {
	found, err := s.repository.FindByTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			// A team with no row yet behaves like one with empty settings.
			return &TeamSettings{TeamID: teamID}, nil
		}
		return nil, err
	}

	return found, nil
}

func (s *settingsService) EffectiveSettings(ctx context.Context, teamID string) (*TeamSettings, error) {
	found, err := s.FindSettings(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if found.DemoWindowOpen(s.demo.DurationDays) || !found.HasValidCredentials() {
		logrus.WithField("team_id", teamID).Info("Using demo document server settings for team")
		demo := *found
		demo.Address = s.demo.Address
		demo.Header = s.demo.Header
		demo.Secret = s.demo.Secret

		if !demo.HasValidCredentials() {
			return nil, models.ErrSettingsInvalid
		}

		return &demo, nil
	}

	return found, nil
}
