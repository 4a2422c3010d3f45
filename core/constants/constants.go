package constants

import "time"

const (
	DefaultTimeout        = 30 * time.Second
	DefaultRequestTimeout = 15 * time.Second

	// Reminder scan cadence. Notification latency is bounded by one interval.
	ReminderScanSpec     = "@every 1m"
	ReminderScanInterval = time.Minute

	DefaultPageSize = 20
	MaxPageSize     = 100

	// How many conflicting events are surfaced to the caller on a duplicate
	// result. The full set stays available on the service result.
	MaxSurfacedDuplicates = 3

	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 20
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes

	ContextTokenData = "token_data"

	ScopeTokenAccess  = "access"
	ScopeTokenRefresh = "refresh"

	TaskNotificationDeliver = "notification:deliver"
	QueueNotifications      = "notifications"

	MaxLoginAttempts = 5
	BlockDuration    = 15 * time.Minute

	RedisKeyLoginAttempts = "login_attempts:"
	RedisKeyLastScanAt    = "scheduler:last_scan_at"

	DefaultTimezone = "Asia/Ho_Chi_Minh"

	// Name shown when extraction leaves nothing usable for the event name.
	DefaultEventName = "Sự kiện"
)
