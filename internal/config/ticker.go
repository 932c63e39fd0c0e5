package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	laneCountEnv           = "TICKER_LANE_COUNT"
	laneRatesEnv           = "TICKER_LANE_RATES"
	lanePickerEnv          = "TICKER_LANE_PICKER"
	fieldLengthEnv         = "TICKER_FIELD_LENGTH"
	defaultExtentEnv       = "TICKER_DEFAULT_EXTENT"
	minDispatchIntervalEnv = "TICKER_MIN_DISPATCH_INTERVAL_MS"
	maxDispatchIntervalEnv = "TICKER_MAX_DISPATCH_INTERVAL_MS"
	retryDelayEnv          = "TICKER_RETRY_DELAY_MS"
	clearanceFactorEnv     = "TICKER_CLEARANCE_FACTOR"
	destroyBufferEnv       = "TICKER_DESTROY_BUFFER_MS"
	reuseGapMinEnv         = "TICKER_REUSE_GAP_MIN_MS"
	reuseGapMaxEnv         = "TICKER_REUSE_GAP_MAX_MS"
	pacingStrategyEnv      = "TICKER_PACING_STRATEGY"
	randSeedEnv            = "TICKER_RAND_SEED"

	defaultLaneCount           = 3
	defaultFieldLength         = 800.0
	defaultExtent              = 160.0
	defaultMinDispatchInterval = 800 * time.Millisecond
	defaultMaxDispatchInterval = 1300 * time.Millisecond
	defaultRetryDelay          = 400 * time.Millisecond
	defaultClearanceFactor     = 1.5
	defaultDestroyBuffer       = 250 * time.Millisecond
	defaultReuseGapMin         = 1200 * time.Millisecond
	defaultReuseGapMax         = 3000 * time.Millisecond
)

// defaultLaneRates cycle across lanes when TICKER_LANE_RATES configures
// fewer rates than TICKER_LANE_COUNT.
var defaultLaneRates = []float64{38, 40, 42}

type LanePicker string

const (
	LanePickerRandom      LanePicker = "random"
	LanePickerRoundRobin  LanePicker = "round_robin"
	LanePickerLeastRecent LanePicker = "least_recent"
)

type PacingStrategy string

const (
	PacingStrategyUniform    PacingStrategy = "uniform"
	PacingStrategyTriangular PacingStrategy = "triangular"
)

type TickerConfig struct {
	LaneCount int
	LaneRates []float64
	Picker    LanePicker

	FieldLength   float64
	DefaultExtent float64

	MinDispatchInterval time.Duration
	MaxDispatchInterval time.Duration
	RetryDelay          time.Duration
	Pacing              PacingStrategy

	ClearanceFactor float64
	DestroyBuffer   time.Duration
	ReuseGapMin     time.Duration
	ReuseGapMax     time.Duration

	// RandSeed seeds lane selection, shuffling and jitter. Zero means
	// time-seeded (the normal case); tests pin it for reproducible runs.
	RandSeed int64
}

func LoadTickerConfig() (*TickerConfig, error) {
	cfg := &TickerConfig{
		LaneCount:           envInt(laneCountEnv, defaultLaneCount),
		LaneRates:           defaultLaneRates,
		Picker:              LanePickerRandom,
		FieldLength:         envFloat(fieldLengthEnv, defaultFieldLength),
		DefaultExtent:       envFloat(defaultExtentEnv, defaultExtent),
		MinDispatchInterval: envDurationMS(minDispatchIntervalEnv, defaultMinDispatchInterval),
		MaxDispatchInterval: envDurationMS(maxDispatchIntervalEnv, defaultMaxDispatchInterval),
		RetryDelay:          envDurationMS(retryDelayEnv, defaultRetryDelay),
		Pacing:              PacingStrategyUniform,
		ClearanceFactor:     envFloat(clearanceFactorEnv, defaultClearanceFactor),
		DestroyBuffer:       envDurationMS(destroyBufferEnv, defaultDestroyBuffer),
		ReuseGapMin:         envDurationMS(reuseGapMinEnv, defaultReuseGapMin),
		ReuseGapMax:         envDurationMS(reuseGapMaxEnv, defaultReuseGapMax),
	}

	if raw := os.Getenv(laneRatesEnv); raw != "" {
		rates, err := parseRates(raw)
		if err != nil {
			return nil, err
		}
		cfg.LaneRates = rates
	}

	if raw := os.Getenv(lanePickerEnv); raw != "" {
		picker := LanePicker(raw)
		switch picker {
		case LanePickerRandom, LanePickerRoundRobin, LanePickerLeastRecent:
			cfg.Picker = picker
		default:
			return nil, ErrInvalidLanePicker
		}
	}

	if raw := os.Getenv(pacingStrategyEnv); raw != "" {
		pacing := PacingStrategy(raw)
		switch pacing {
		case PacingStrategyUniform, PacingStrategyTriangular:
			cfg.Pacing = pacing
		default:
			return nil, ErrInvalidPacingStrategy
		}
	}

	if raw := os.Getenv(randSeedEnv); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, ErrInvalidRandSeed
		}
		cfg.RandSeed = seed
	}

	return cfg, nil
}

func (c *TickerConfig) Validate() error {
	switch {
	case c.LaneCount < 1:
		return ErrInvalidLaneCount
	case len(c.LaneRates) == 0:
		return ErrNoLaneRates
	case c.FieldLength <= 0:
		return ErrInvalidFieldLength
	case c.DefaultExtent <= 0:
		return ErrInvalidDefaultExtent
	case c.MinDispatchInterval <= 0 || c.MaxDispatchInterval < c.MinDispatchInterval:
		return ErrInvalidDispatchInterval
	case c.RetryDelay <= 0:
		return ErrInvalidRetryDelay
	case c.ClearanceFactor < 0:
		return ErrInvalidClearanceFactor
	case c.DestroyBuffer < 0:
		return ErrInvalidDestroyBuffer
	case c.ReuseGapMin < 0 || c.ReuseGapMax < c.ReuseGapMin:
		return ErrInvalidReuseGap
	}

	for _, rate := range c.LaneRates {
		if rate <= 0 {
			return ErrInvalidLaneRate
		}
	}

	return nil
}

func parseRates(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	rates := make([]float64, 0, len(parts))
	for _, part := range parts {
		rate, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || rate <= 0 {
			return nil, ErrInvalidLaneRate
		}
		rates = append(rates, rate)
	}
	return rates, nil
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func envDurationMS(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			return time.Duration(parsed) * time.Millisecond
		}
	}
	return fallback
}
