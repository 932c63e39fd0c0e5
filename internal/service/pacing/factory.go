package pacing

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/finchboard/tickerlane/internal/config"
)

// NewStrategy builds the pacing strategy selected by configuration, falling
// back to uniform jitter.
func NewStrategy(kind config.PacingStrategy, min, max time.Duration, rng *rand.Rand) Strategy {
	switch kind {
	case config.PacingStrategyTriangular:
		slog.Info("using triangular dispatch pacing",
			slog.Duration("min_interval", min),
			slog.Duration("max_interval", max),
		)
		return NewTriangularStrategy(min, max, rng)

	case config.PacingStrategyUniform:
		fallthrough
	default:
		slog.Info("using uniform dispatch pacing",
			slog.Duration("min_interval", min),
			slog.Duration("max_interval", max),
		)
		return NewUniformStrategy(min, max, rng)
	}
}
