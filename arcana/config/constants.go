package config

import "time"

// Application-wide constants organized by domain

// Database and Performance Constants
const (
	// Timeouts
	DefaultQueryTimeout = 10 * time.Second
	BatchQueryTimeout   = 30 * time.Second
	TxTimeout           = 30 * time.Second
	StorageTimeout      = 15 * time.Second
	StartupTimeout      = 30 * time.Second

	// Cache settings
	CatalogCacheSize = 256

	// Search
	DefaultSearchLimit = 10
	MaxSearchLimit     = 50
)

// Pack Constants
const (
	PackInterval = 4 * time.Hour
	MaxPacks     = 2
	CardsPerPack = 5
)

// Upload Constants
const (
	MaxUploadSize   = 5 << 20
	UploadKeyPrefix = "uploads"
)

// Logging Constants
const (
	LogPrefix = "[Arcana]"
)
