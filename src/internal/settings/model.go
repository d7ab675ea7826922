package settings

import "time"

// TeamSettings holds a team's configured rendering-service endpoint.
// Secrets are stored as-is; encryption at rest is handled elsewhere.
type TeamSettings struct {
	TeamID        string     `bson:"team_id" json:"teamId"`
	Address       string     `bson:"address" json:"address"`
	Header        string     `bson:"header" json:"header"`
	Secret        string     `bson:"secret" json:"-"`
	DemoEnabled   bool       `bson:"demo_enabled" json:"demoEnabled"`
	DemoStartedAt *time.Time `bson:"demo_started_date,omitempty" json:"demoStartedAt,omitempty"`
}

// HasValidCredentials reports whether the team configured a complete
// endpoint of its own.
func (s *TeamSettings) HasValidCredentials() bool {
	return s.Address != "" && s.Header != "" && s.Secret != ""
}

// DemoWindowOpen reports whether the demo trial is still running.
func (s *TeamSettings) DemoWindowOpen(durationDays int) bool {
	if !s.DemoEnabled {
		return false
	}
	if s.DemoStartedAt == nil {
		return true
	}
	return time.Now().Before(s.DemoStartedAt.Add(time.Duration(durationDays) * 24 * time.Hour))
}
