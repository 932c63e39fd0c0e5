package config

import "errors"

var (
	ErrRedisAddrMissing = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB   = errors.New("REDIS_DB must be a valid integer")

	ErrInvalidLaneCount        = errors.New("TICKER_LANE_COUNT must be at least 1")
	ErrNoLaneRates             = errors.New("at least one lane rate is required")
	ErrInvalidLaneRate         = errors.New("lane rates must be positive numbers")
	ErrInvalidLanePicker       = errors.New("TICKER_LANE_PICKER must be one of random, round_robin, least_recent")
	ErrInvalidFieldLength      = errors.New("TICKER_FIELD_LENGTH must be positive")
	ErrInvalidDefaultExtent    = errors.New("TICKER_DEFAULT_EXTENT must be positive")
	ErrInvalidDispatchInterval = errors.New("dispatch interval bounds must be positive with min <= max")
	ErrInvalidRetryDelay       = errors.New("TICKER_RETRY_DELAY_MS must be positive")
	ErrInvalidClearanceFactor  = errors.New("TICKER_CLEARANCE_FACTOR must not be negative")
	ErrInvalidDestroyBuffer    = errors.New("TICKER_DESTROY_BUFFER_MS must not be negative")
	ErrInvalidReuseGap         = errors.New("reuse gap bounds must not be negative with min <= max")
	ErrInvalidPacingStrategy   = errors.New("TICKER_PACING_STRATEGY must be one of uniform, triangular")
	ErrInvalidRandSeed         = errors.New("TICKER_RAND_SEED must be a valid integer")
)
