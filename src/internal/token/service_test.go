package token

import (
	"docbridge-svc/src/internal/config"
	"docbridge-svc/src/internal/models"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Configuration {
	cfg := &config.Configuration{}
	cfg.DocumentServer.Jwt.KeepAliveMinutes = 10
	cfg.DocumentServer.Jwt.AcceptableLeewaySeconds = 5
	return cfg
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	service := NewTokenService(testConfig())

	payload := map[string]interface{}{
		"teamId": "T1",
		"userId": "U1",
		"fileId": "F1",
	}

	signed, err := service.Issue(payload, "secret-key")
	require.NoError(t, err)
	require.Len(t, strings.Split(signed, "."), 3)

	verified, err := service.Verify(signed, "secret-key")
	require.NoError(t, err)

	assert.Equal(t, "T1", verified["teamId"])
	assert.Equal(t, "U1", verified["userId"])
	assert.Equal(t, "F1", verified["fileId"])
	assert.Contains(t, verified, "iat")
	assert.Contains(t, verified, "exp")
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	service := NewTokenService(testConfig())

	signed, err := service.Issue(map[string]interface{}{"fileId": "F1"}, "secret-one")
	require.NoError(t, err)

	_, err = service.Verify(signed, "secret-two")
	assert.ErrorIs(t, err, models.ErrTokenVerification)
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	service := NewTokenService(testConfig())

	signed, err := service.Issue(map[string]interface{}{"fileId": "F1"}, "secret-key")
	require.NoError(t, err)

	parts := strings.Split(signed, ".")
	require.Len(t, parts, 3)

	signature := []byte(parts[2])
	for i := range signature {
		flipped := append([]byte(nil), signature...)
		if flipped[i] == 'A' {
			flipped[i] = 'B'
		} else {
			flipped[i] = 'A'
		}

		tampered := parts[0] + "." + parts[1] + "." + string(flipped)
		if tampered == signed {
			continue
		}

		_, err := service.Verify(tampered, "secret-key")
		assert.ErrorIs(t, err, models.ErrTokenVerification)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	service := NewTokenService(testConfig())

	for _, raw := range []string{"", "not-a-token", "a.b", "a.b.c.d", "..."} {
		_, err := service.Verify(raw, "secret-key")
		assert.ErrorIs(t, err, models.ErrTokenVerification, raw)
	}
}

func TestVerifyHonorsLeeway(t *testing.T) {
	issuedAt := time.Now()

	service := &tokenService{
		keepAlive: 0,
		leeway:    5 * time.Second,
		now:       func() time.Time { return issuedAt },
	}

	signed, err := service.Issue(map[string]interface{}{"fileId": "F1"}, "secret-key")
	require.NoError(t, err)

	// Strictly within TTL+leeway the token still verifies.
	service.now = func() time.Time { return issuedAt.Add(3 * time.Second) }
	_, err = service.Verify(signed, "secret-key")
	assert.NoError(t, err)

	// Once the leeway elapses it must fail.
	service.now = func() time.Time { return issuedAt.Add(10 * time.Second) }
	_, err = service.Verify(signed, "secret-key")
	assert.ErrorIs(t, err, models.ErrTokenVerification)
}

func TestIssueObject(t *testing.T) {
	service := NewTokenService(testConfig())

	type downloadPayload struct {
		TeamID string `json:"teamId"`
		FileID string `json:"fileId"`
	}

	signed, err := service.IssueObject(downloadPayload{TeamID: "T1", FileID: "F1"}, "secret-key")
	require.NoError(t, err)

	verified, err := service.Verify(signed, "secret-key")
	require.NoError(t, err)
	assert.Equal(t, "T1", verified["teamId"])
	assert.Equal(t, "F1", verified["fileId"])
}
