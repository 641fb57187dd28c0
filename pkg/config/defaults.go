package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "shoptrack"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultSlotLockTTL = 10 * time.Second

	DefaultDefaultJobDurationMin = 60
	DefaultDefaultMaxDailyHours  = 8.0
	DefaultAllowOverlap          = false

	DefaultEventsEnabled = false

	DefaultPaginationLimit = 100

	// Cap on how many same-resource work orders are fetched for a
	// single overlap check. Realistic volumes are tens per resource
	// per day.
	DefaultMaxOverlapFetch = 30

	DefaultMaxTechniciansPerShop = 100
	DefaultMaxDayOrdersFetch     = 200
)
