package editor

import (
	"docbridge-svc/src/internal/config"
	"docbridge-svc/src/internal/models"
	"docbridge-svc/src/internal/token"
	"fmt"

	"github.com/sirupsen/logrus"
)

const (
	ModeEdit = "edit"
	ModeView = "view"

	TypeDesktop = "desktop"

	defaultLocale = "en-US"
)

// BuildConfigCommand carries everything the config builder needs. The
// caller resolves the user and file records (concurrently) beforehand;
// the builder itself performs no I/O.
type BuildConfigCommand struct {
	ChannelID     string
	MessageTs     string
	SigningSecret string
	DocumentKey   string
	User          *models.ChatUser
	File          *models.ChatFile
	Mode          string
	Type          string
	Locale        string
}

// Service assembles and signs the editor configuration.
type Service interface {
	BuildConfig(command *BuildConfigCommand) (*models.EditorConfig, error)
}

type editorService struct {
	tokenService token.Service
	baseAddress  string
	cryptoSecret string
}

func NewEditorService(tokenService token.Service, cfg *config.Configuration) Service {
	return &editorService{
		tokenService: tokenService,
		baseAddress:  cfg.App.BaseAddress,
		cryptoSecret: cfg.Cryptography.Secret,
	}
}

func (s *editorService) BuildConfig(command *BuildConfigCommand) (*models.EditorConfig, error) {
	if err := validateCommand(command); err != nil {
		return nil, err
	}

	file := command.File
	user := command.User

	mode := command.Mode
	if mode == "" || !IsEditable(file.FileType) {
		mode = ModeView
	}

	locale := command.Locale
	if locale == "" {
		locale = defaultLocale
	}

	downloadToken, err := s.tokenService.IssueObject(models.DownloadSession{
		TeamID: user.TeamID,
		UserID: user.ID,
		FileID: file.ID,
	}, s.cryptoSecret)
	if err != nil {
		logrus.WithError(err).Error("Failed to issue download token")
		return nil, err
	}

	cfg := &models.EditorConfig{
		Width:        "100%",
		Height:       "100%",
		Type:         command.Type,
		DocumentType: DocumentType(file.FileType),
		Document: models.Document{
			FileType: file.FileType,
			Key:      command.DocumentKey,
			Title:    documentTitle(file),
			URL:      fmt.Sprintf("%s/files/download/%s", s.baseAddress, downloadToken),
		},
		EditorConfig: models.EditorConfigInner{
			Mode:        mode,
			Lang:        locale,
			CallbackUrl: fmt.Sprintf("%s/callback?file=%s", s.baseAddress, file.ID),
			User: models.EditorUser{
				ID:    user.ID,
				Name:  displayName(user),
				Image: user.Profile.Image32,
			},
		},
	}

	// The signed config doubles as the authenticity token the rendering
	// service must echo back on every callback.
	signed, err := s.tokenService.IssueObject(cfg, command.SigningSecret)
	if err != nil {
		logrus.WithError(err).Error("Failed to sign editor config")
		return nil, err
	}
	cfg.Token = signed

	return cfg, nil
}

func validateCommand(command *BuildConfigCommand) error {
	if command == nil ||
		command.SigningSecret == "" ||
		command.DocumentKey == "" ||
		command.ChannelID == "" ||
		command.MessageTs == "" ||
		command.User == nil ||
		command.File == nil {
		return models.ErrValidation
	}

	return nil
}

// displayName resolves the name shown in the editor: display name, else
// profile real name, else real name, else username. First non-blank wins.
func displayName(user *models.ChatUser) string {
	if user.Profile.DisplayName != "" {
		return user.Profile.DisplayName
	}
	if user.Profile.RealName != "" {
		return user.Profile.RealName
	}
	if user.RealName != "" {
		return user.RealName
	}
	return user.Name
}

func documentTitle(file *models.ChatFile) string {
	if file.Title != "" {
		return file.Title
	}
	return file.Name
}
