package editor

import (
	"docbridge-svc/src/internal/config"
	"docbridge-svc/src/internal/models"
	"docbridge-svc/src/internal/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	teamSecret   = "team-signing-secret"
	cryptoSecret = "process-crypto-secret"
)

func editorTestConfig() *config.Configuration {
	cfg := &config.Configuration{}
	cfg.App.BaseAddress = "https://bridge.example.com"
	cfg.Cryptography.Secret = cryptoSecret
	cfg.DocumentServer.Jwt.KeepAliveMinutes = 10
	cfg.DocumentServer.Jwt.AcceptableLeewaySeconds = 5
	return cfg
}

func sampleCommand() *BuildConfigCommand {
	return &BuildConfigCommand{
		ChannelID:     "C1",
		MessageTs:     "1700000000.000100",
		SigningSecret: teamSecret,
		DocumentKey:   "F1_T1_U1_nonce",
		User: &models.ChatUser{
			ID:       "U1",
			TeamID:   "T1",
			Name:     "jdoe",
			RealName: "John Doe",
			Profile: models.ChatUserProfile{
				DisplayName: "Johnny",
				RealName:    "John Doe",
				Image32:     "https://chat.example.com/avatar32.png",
			},
		},
		File: &models.ChatFile{
			ID:       "F1",
			Name:     "report.docx",
			Title:    "Quarterly report",
			FileType: "docx",
		},
		Mode:   ModeEdit,
		Type:   TypeDesktop,
		Locale: "de-DE",
	}
}

func newEditorService(t *testing.T) (Service, token.Service) {
	t.Helper()
	cfg := editorTestConfig()
	tokenService := token.NewTokenService(cfg)
	return NewEditorService(tokenService, cfg), tokenService
}

func TestBuildConfig(t *testing.T) {
	service, tokenService := newEditorService(t)

	built, err := service.BuildConfig(sampleCommand())
	require.NoError(t, err)

	assert.Equal(t, "100%", built.Width)
	assert.Equal(t, "100%", built.Height)
	assert.Equal(t, TypeDesktop, built.Type)
	assert.Equal(t, DocumentTypeWord, built.DocumentType)
	assert.Equal(t, "docx", built.Document.FileType)
	assert.Equal(t, "F1_T1_U1_nonce", built.Document.Key)
	assert.Equal(t, "Quarterly report", built.Document.Title)
	assert.Equal(t, ModeEdit, built.EditorConfig.Mode)
	assert.Equal(t, "de-DE", built.EditorConfig.Lang)
	assert.Equal(t, "https://bridge.example.com/callback?file=F1", built.EditorConfig.CallbackUrl)
	assert.Equal(t, "U1", built.EditorConfig.User.ID)
	assert.Equal(t, "Johnny", built.EditorConfig.User.Name)

	// The attached token verifies against the team secret.
	payload, err := tokenService.Verify(built.Token, teamSecret)
	require.NoError(t, err)
	assert.Equal(t, "word", payload["documentType"])
}

func TestBuildConfigDownloadToken(t *testing.T) {
	service, tokenService := newEditorService(t)

	built, err := service.BuildConfig(sampleCommand())
	require.NoError(t, err)

	prefix := "https://bridge.example.com/files/download/"
	require.Contains(t, built.Document.URL, prefix)

	downloadToken := built.Document.URL[len(prefix):]

	// Signed with the process secret, not the team secret.
	_, err = tokenService.Verify(downloadToken, teamSecret)
	assert.ErrorIs(t, err, models.ErrTokenVerification)

	payload, err := tokenService.Verify(downloadToken, cryptoSecret)
	require.NoError(t, err)
	assert.Equal(t, "T1", payload["teamId"])
	assert.Equal(t, "U1", payload["userId"])
	assert.Equal(t, "F1", payload["fileId"])
}

func TestBuildConfigDisplayNameResolution(t *testing.T) {
	service, _ := newEditorService(t)

	cases := []struct {
		name     string
		mutate   func(user *models.ChatUser)
		expected string
	}{
		{"display name wins", func(u *models.ChatUser) {}, "Johnny"},
		{"profile real name next", func(u *models.ChatUser) { u.Profile.DisplayName = "" }, "John Doe"},
		{"real name next", func(u *models.ChatUser) {
			u.Profile.DisplayName = ""
			u.Profile.RealName = ""
		}, "John Doe"},
		{"username last", func(u *models.ChatUser) {
			u.Profile.DisplayName = ""
			u.Profile.RealName = ""
			u.RealName = ""
		}, "jdoe"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			command := sampleCommand()
			tc.mutate(command.User)

			built, err := service.BuildConfig(command)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, built.EditorConfig.User.Name)
		})
	}
}

func TestBuildConfigNonEditableFormatOpensReadOnly(t *testing.T) {
	service, _ := newEditorService(t)

	command := sampleCommand()
	command.File.FileType = "csv"

	built, err := service.BuildConfig(command)
	require.NoError(t, err)
	assert.Equal(t, ModeView, built.EditorConfig.Mode)
	assert.Equal(t, DocumentTypeCell, built.DocumentType)
}

func TestBuildConfigDefaultsLocale(t *testing.T) {
	service, _ := newEditorService(t)

	command := sampleCommand()
	command.Locale = ""

	built, err := service.BuildConfig(command)
	require.NoError(t, err)
	assert.Equal(t, "en-US", built.EditorConfig.Lang)
}

func TestBuildConfigValidation(t *testing.T) {
	service, _ := newEditorService(t)

	mutations := []func(cmd *BuildConfigCommand){
		func(cmd *BuildConfigCommand) { cmd.SigningSecret = "" },
		func(cmd *BuildConfigCommand) { cmd.DocumentKey = "" },
		func(cmd *BuildConfigCommand) { cmd.ChannelID = "" },
		func(cmd *BuildConfigCommand) { cmd.MessageTs = "" },
		func(cmd *BuildConfigCommand) { cmd.User = nil },
		func(cmd *BuildConfigCommand) { cmd.File = nil },
	}

	for _, mutate := range mutations {
		command := sampleCommand()
		mutate(command)

		_, err := service.BuildConfig(command)
		assert.ErrorIs(t, err, models.ErrValidation)
	}
}
