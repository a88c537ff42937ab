package constants

import "time"

// Centralized default values for timeouts and related settings. Environment
// configuration may override where supported.

const (
	// Database
	DBReadTimeoutDefault  = 8 * time.Second
	DBWriteTimeoutDefault = 6 * time.Second

	// Health
	HealthTimeoutDefault = 5 * time.Second

	// App shutdown
	GracefulShutdownTimeoutDefault = 10 * time.Second

	// Run history
	RecentRunsDefaultLimit = 20
	RecentRunsMaxLimit     = 200
)
