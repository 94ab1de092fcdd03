package constants

import "time"

const (
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"

	DefaultRequestTimeout = 10 * time.Second

	// Redis key prefix for the public by-code invitation cache.
	RedisKeyInvitationCode = "invitation:code:"
	InvitationCodeCacheTTL = 60 * time.Second

	// Asynq task queue for outgoing invitation emails.
	QueueEmails = "emails"
)
