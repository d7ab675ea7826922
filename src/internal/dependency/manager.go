package dependency

import (
	"docbridge-svc/src/clients"
	"docbridge-svc/src/internal/callback"
	"docbridge-svc/src/internal/config"
	"docbridge-svc/src/internal/credentials"
	"docbridge-svc/src/internal/editor"
	"docbridge-svc/src/internal/events"
	"docbridge-svc/src/internal/proxy"
	"docbridge-svc/src/internal/session"
	"docbridge-svc/src/internal/settings"
	"docbridge-svc/src/internal/store"
	"docbridge-svc/src/internal/token"
	"docbridge-svc/src/internal/validation"

	"github.com/gin-gonic/gin"
)

type Manager struct {
	Router            *gin.Engine
	Config            *config.Configuration
	Mongodb           *clients.MongoDB
	Redis             *clients.RedisClient
	RabbitMQ          *clients.RabbitMQ
	ChatClient        *clients.ChatClient
	TokenService      token.Service
	SessionService    session.Service
	SessionSweeper    *session.Sweeper
	SettingsService   settings.Service
	CallbackService   callback.Service
	EditorHandler     editor.Handler
	CallbackHandler   callback.Handler
	ProxyHandler      proxy.Handler
	ValidationHandler validation.Handler
}

func NewDependencyManager(router *gin.Engine,
	mongodb *clients.MongoDB,
	redisClient *clients.RedisClient,
	rabbitMQ *clients.RabbitMQ,
	cfg *config.Configuration) *Manager {
	chatClient := clients.NewChatClient(cfg)
	keyValue := store.NewRedisStore(redisClient.Client)

	tokenService := token.NewTokenService(cfg)

	sessionRepo := session.NewSessionRepository(mongodb, cfg.Database.SessionCollection)
	sessionService := session.NewSessionService(keyValue, sessionRepo, cfg)
	sessionSweeper := session.NewSweeper(sessionService, sessionRepo, cfg)

	settingsRepo := settings.NewSettingsRepository(mongodb, cfg.Database.SettingsCollection)
	settingsService := settings.NewSettingsService(settingsRepo, cfg)

	credentialsRepo := credentials.NewCredentialsRepository(mongodb, cfg.Database.CredentialsCollection)

	publisher := events.NewPublisher(rabbitMQ.Channel, cfg)

	// Registration order decides which handler wins a status; the first
	// one registered stays.
	registry := callback.NewRegistry()
	registry.Register(callback.NewEditingHandler(sessionService))
	registry.Register(callback.NewSaveHandler(sessionService, publisher))
	registry.Register(callback.NewSaveErrorHandler())
	registry.Register(callback.NewClosedHandler(sessionService, publisher))

	callbackService := callback.NewCallbackService(tokenService, settingsService, registry)

	editorService := editor.NewEditorService(tokenService, cfg)
	streamingService := proxy.NewStreamingService(chatClient, credentialsRepo)
	validationService := validation.NewValidationService(tokenService, cfg)

	return &Manager{
		Router:            router,
		Config:            cfg,
		Mongodb:           mongodb,
		Redis:             redisClient,
		RabbitMQ:          rabbitMQ,
		ChatClient:        chatClient,
		TokenService:      tokenService,
		SessionService:    sessionService,
		SessionSweeper:    sessionSweeper,
		SettingsService:   settingsService,
		CallbackService:   callbackService,
		EditorHandler:     editor.NewHandler(cfg, editorService, sessionService, settingsService, credentialsRepo, chatClient),
		CallbackHandler:   callback.NewHandler(cfg, callbackService),
		ProxyHandler:      proxy.NewHandler(tokenService, streamingService, cfg),
		ValidationHandler: validation.NewHandler(validationService),
	}
}
