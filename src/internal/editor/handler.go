package editor

import (
	"context"
	"docbridge-svc/src/clients"
	"docbridge-svc/src/internal/config"
	"docbridge-svc/src/internal/credentials"
	"docbridge-svc/src/internal/models"
	"docbridge-svc/src/internal/session"
	"docbridge-svc/src/internal/settings"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Handler interface {
	CreateSession(c *gin.Context)
	Editor(c *gin.Context)
	EditorContent(c *gin.Context)
	SessionStatus(c *gin.Context)
}

type handler struct {
	config          *config.Configuration
	editorService   Service
	sessionService  session.Service
	settingsService settings.Service
	credentialsRepo credentials.Repository
	chatClient      *clients.ChatClient
}

func NewHandler(
	cfg *config.Configuration,
	editorService Service,
	sessionService session.Service,
	settingsService settings.Service,
	credentialsRepo credentials.Repository,
	chatClient *clients.ChatClient,
) Handler {
	return &handler{
		config:          cfg,
		editorService:   editorService,
		sessionService:  sessionService,
		settingsService: settingsService,
		credentialsRepo: credentialsRepo,
		chatClient:      chatClient,
	}
}

type createSessionRequest struct {
	TeamID    string `json:"teamId" binding:"required"`
	UserID    string `json:"userId" binding:"required"`
	ChannelID string `json:"channelId" binding:"required"`
	MessageTs string `json:"messageTs" binding:"required"`
	FileID    string `json:"fileId" binding:"required"`
}

// CreateSession writes a one-time handoff session and returns the link
// the chat collaborator embeds in its open-editor button.
func (h *handler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required session fields"})
		return
	}

	editorSession := &models.EditorSession{
		SessionID: uuid.NewString(),
		TeamID:    req.TeamID,
		UserID:    req.UserID,
		ChannelID: req.ChannelID,
		MessageTs: req.MessageTs,
		FileID:    req.FileID,
	}

	if err := h.sessionService.PutSession(c.Request.Context(), editorSession); err != nil {
		logrus.WithError(err).Error("Failed to store editor session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session": editorSession.SessionID,
		"link":    fmt.Sprintf("%s/editor?session=%s", h.config.App.BaseAddress, editorSession.SessionID),
	})
}

// Editor returns the loading view descriptor. The page polls the status
// endpoint and then loads the content endpoint exactly once.
func (h *handler) Editor(c *gin.Context) {
	sessionID := c.Query("session")
	locale := c.DefaultQuery("locale", "en-US")

	c.JSON(http.StatusOK, gin.H{
		"view":    "loading",
		"session": sessionID,
		"locale":  locale,
	})
}

// SessionStatus is a read-only existence probe; it never consumes.
func (h *handler) SessionStatus(c *gin.Context) {
	exists, err := h.sessionService.SessionExists(c.Request.Context(), c.Query("session"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"ready": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ready": exists})
}

// EditorContent consumes the handoff session and returns the signed
// editor configuration. Each error kind maps to its own view so the
// page can render a themed message with a retry action.
func (h *handler) EditorContent(c *gin.Context) {
	sessionID := c.Query("session")
	locale := c.DefaultQuery("locale", "en-US")

	storedSession, err := h.sessionService.TakeSession(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, errorView("bad_session"))
		return
	}

	log := logrus.WithFields(logrus.Fields{
		"session_id": sessionID,
		"team_id":    storedSession.TeamID,
		"user_id":    storedSession.UserID,
		"file_id":    storedSession.FileID,
	})

	creds, err := h.credentialsRepo.Find(c.Request.Context(), storedSession.TeamID, storedSession.UserID)
	if err != nil {
		log.WithError(err).Warn("No workspace credentials for session")
		c.JSON(http.StatusServiceUnavailable, errorView("not_available"))
		return
	}

	teamSettings, err := h.settingsService.EffectiveSettings(c.Request.Context(), storedSession.TeamID)
	if err != nil {
		log.WithError(err).Warn("No usable document server settings for team")
		c.JSON(http.StatusUnprocessableEntity, errorView("no_settings"))
		return
	}

	file, user, err := h.fetchChatRecords(c.Request.Context(), creds.AccessToken, storedSession)
	if err != nil {
		log.WithError(err).Error("Failed to fetch chat platform records")
		c.JSON(http.StatusBadGateway, errorView("bad_chat_api"))
		return
	}

	documentKey, err := h.sessionService.ResolveFileKey(
		c.Request.Context(), storedSession.FileID, storedSession.TeamID, storedSession.UserID)
	if err != nil {
		log.WithError(err).Error("Failed to resolve document session key")
		c.JSON(http.StatusBadGateway, errorView("bad_chat_api"))
		return
	}

	editorConfig, err := h.editorService.BuildConfig(&BuildConfigCommand{
		ChannelID:     storedSession.ChannelID,
		MessageTs:     storedSession.MessageTs,
		SigningSecret: teamSettings.Secret,
		DocumentKey:   documentKey,
		User:          user,
		File:          file,
		Mode:          ModeEdit,
		Type:          TypeDesktop,
		Locale:        locale,
	})
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			log.WithError(err).Error("Editor config validation failed")
			c.JSON(http.StatusUnprocessableEntity, errorView("no_settings"))
			return
		}
		log.WithError(err).Error("Failed to build editor config")
		c.JSON(http.StatusBadGateway, errorView("bad_chat_api"))
		return
	}

	log.Info("Editor config built")

	c.JSON(http.StatusOK, gin.H{
		"config": editorConfig,
		"apiUrl": fmt.Sprintf("%s/web-apps/apps/api/documents/api.js", teamSettings.Address),
	})
}

// fetchChatRecords loads the file and user records concurrently and
// fails the whole request when either call errors or times out.
func (h *handler) fetchChatRecords(
	ctx context.Context,
	accessToken string,
	storedSession *models.EditorSession,
) (*models.ChatFile, *models.ChatUser, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(h.config.App.Timeout)*time.Second)
	defer cancel()

	var (
		file *models.ChatFile
		user *models.ChatUser
	)

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error
		file, err = h.chatClient.GetFileInfo(ctx, accessToken, storedSession.FileID)
		return err
	})

	group.Go(func() error {
		var err error
		user, err = h.chatClient.GetUserInfo(ctx, accessToken, storedSession.UserID)
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, nil, err
	}

	return file, user, nil
}

func errorView(view string) gin.H {
	return gin.H{
		"view":  view,
		"retry": true,
	}
}
