package models

import "errors"

var (
	ErrRedisConnection = errors.New("redis connection error")
	ErrRedisGet        = errors.New("redis get error")
	ErrRedisSet        = errors.New("redis set error")
	ErrRedisDelete     = errors.New("redis delete error")
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionCreating = errors.New("error creating session")
	ErrSessionDeleting = errors.New("error deleting session")
)

var (
	ErrDatabaseConnection = errors.New("database connection error")
	ErrDatabaseQuery      = errors.New("database query error")
	ErrDatabaseInsert     = errors.New("database insert error")
	ErrDatabaseUpdate     = errors.New("database update error")
	ErrDatabaseDelete     = errors.New("database delete error")
	ErrRecordNotFound     = errors.New("record not found")
)

var (
	ErrValidation        = errors.New("invalid or missing input")
	ErrTokenVerification = errors.New("token verification failed")
	ErrSettingsInvalid   = errors.New("team settings incomplete or expired")
)

var (
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
	ErrMalformedAddress    = errors.New("malformed document server address")
	ErrHealthCheckFailed   = errors.New("document server health check failed")
	ErrVersionCheckFailed  = errors.New("document server version check failed")
	ErrVersionHeaderCheckFailed = errors.New("document server version header check failed")
	ErrDownloadTimeout          = errors.New("file download timed out")
)
