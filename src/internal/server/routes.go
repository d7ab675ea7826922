package server

import (
	"docbridge-svc/src/clients"
	"docbridge-svc/src/internal/dependency"
	"docbridge-svc/src/internal/middleware"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func SetupRoutes(deps *dependency.Manager) {
	router := deps.Router
	router.Use(enableCORS)
	router.Use(middleware.RequestLogger())

	setupHealthEndpoint(deps)
	setupEditorRoutes(router, deps)
	setupDocumentServerRoutes(router, deps)
}

func setupHealthEndpoint(deps *dependency.Manager) {
	router := deps.Router
	mongodb := deps.Mongodb
	redisClient := deps.Redis
	cfg := deps.Config

	router.GET("/health", func(c *gin.Context) {
		log.Info("Health check endpoint requested")

		mongoStatus := "ok"
		if err := mongodb.Client.Ping(c.Request.Context(), nil); err != nil {
			mongoStatus = "error: " + err.Error()
		}

		redisStatus := "ok"
		if err := redisClient.Client.Ping(c.Request.Context()).Err(); err != nil {
			redisStatus = "error: " + err.Error()
		}

		c.JSON(200, gin.H{
			"status":    "ok",
			"service":   cfg.App.Name,
			"version":   cfg.App.Version,
			"mongodb":   mongoStatus,
			"redis":     redisStatus,
			"timestamp": time.Now().UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	})

	router.GET("/health/detailed", func(c *gin.Context) {
		log.Info("Detailed health check endpoint requested")

		c.JSON(200, gin.H{
			"status":  "operational",
			"service": cfg.App.Name,
			"version": cfg.App.Version,
			"components": gin.H{
				"database": gin.H{
					"mongodb": getStatus(isMongoConnected(mongodb, c)),
					"redis":   getStatus(isRedisConnected(redisClient.Client, c)),
				},
				"services": gin.H{
					"editor":   "operational",
					"callback": "operational",
					"proxy":    "operational",
				},
			},
		})
	})
}

func setupEditorRoutes(router *gin.Engine, deps *dependency.Manager) {
	handler := deps.EditorHandler

	editor := router.Group("/editor")
	{
		editor.GET("",
			setRouteName("editorLoading"),
			handler.Editor)

		editor.GET("/content",
			setRouteName("editorContent"),
			handler.EditorContent)

		editor.GET("/status",
			setRouteName("editorStatus"),
			handler.SessionStatus)

		editor.POST("/sessions",
			setRouteName("createEditorSession"),
			handler.CreateSession)
	}
}

func setupDocumentServerRoutes(router *gin.Engine, deps *dependency.Manager) {
	router.POST("/callback",
		setRouteName("documentCallback"),
		deps.CallbackHandler.HandleCallback)

	router.GET("/files/download/:token",
		setRouteName("downloadFile"),
		deps.ProxyHandler.DownloadFile)

	router.POST("/settings/validate",
		setRouteName("validateSettings"),
		deps.ValidationHandler.ValidateSettings)
}

func setRouteName(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("route_name", name)
		c.Next()
	}
}

func isMongoConnected(mongodb *clients.MongoDB, c *gin.Context) bool {
	if err := mongodb.Client.Ping(c.Request.Context(), nil); err != nil {
		return false
	}
	return true
}

func isRedisConnected(redisClient *redis.Client, c *gin.Context) bool {
	if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
		return false
	}
	return true
}

func enableCORS(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if c.Request.Method == "OPTIONS" {
		c.AbortWithStatus(204)
		return
	}

	c.Next()
}

func getStatus(b bool) string {
	if b {
		return "connected"
	}
	return "disconnected"
}
