package token

import (
	"docbridge-svc/src/internal/config"
	"docbridge-svc/src/internal/models"
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// Service issues and verifies HMAC-SHA256 signed tokens. The wire shape
// is header.payload.signature in base64url with iat/exp claims, which is
// what the rendering service's verifier expects.
type Service interface {
	Issue(payload map[string]interface{}, secret string) (string, error)
	IssueObject(payload interface{}, secret string) (string, error)
	Verify(token, secret string) (map[string]interface{}, error)
}

type tokenService struct {
	keepAlive time.Duration
	leeway    time.Duration
	now       func() time.Time
}

func NewTokenService(cfg *config.Configuration) Service {
	return &tokenService{
		keepAlive: time.Duration(cfg.DocumentServer.Jwt.KeepAliveMinutes) * time.Minute,
		leeway:    time.Duration(cfg.DocumentServer.Jwt.AcceptableLeewaySeconds) * time.Second,
		now:       time.Now,
	}
}

func (s *tokenService) Issue(payload map[string]interface{}, secret string) (string, error) {
	if secret == "" {
		return "", models.ErrValidation
	}

	issuedAt := s.now()
	claims := jwt.MapClaims{}
	for k, v := range payload {
		claims[k] = v
	}
	claims["iat"] = issuedAt.Unix()
	claims["exp"] = issuedAt.Add(s.keepAlive).Unix()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		logrus.WithError(err).Error("Failed to sign token")
		return "", err
	}

	return signed, nil
}

func (s *tokenService) IssueObject(payload interface{}, secret string) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	var payloadMap map[string]interface{}
	if err := json.Unmarshal(data, &payloadMap); err != nil {
		return "", err
	}

	return s.Issue(payloadMap, secret)
}

// Verify checks the signature and expiry and returns the token payload.
// Parse, signature and expiry failures all collapse into a single error
// kind so callers cannot use verification as an oracle on the secret.
func (s *tokenService) Verify(token, secret string) (map[string]interface{}, error) {
	if token == "" || secret == "" {
		return nil, models.ErrTokenVerification
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(s.leeway),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)

	claims := jwt.MapClaims{}
	parsed, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		logrus.WithError(err).Debug("Token verification failed")
		return nil, models.ErrTokenVerification
	}

	return claims, nil
}
