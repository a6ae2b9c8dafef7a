package domain

import "errors"

// Sentinel errors for the failure classes the pipeline distinguishes.
// Startup-fatal: ErrConfiguration, ErrChunking. Per-query, recovered at the
// orchestrator boundary: ErrRetrieval, ErrGeneration.
var (
	ErrConfiguration = errors.New("invalid configuration")
	ErrChunking      = errors.New("profile cannot be chunked")
	ErrRetrieval     = errors.New("vector index request failed")
	ErrGeneration    = errors.New("completion request failed")
)
