package pacing

import "time"

// Strategy draws the delay before the next dispatch tick. Jittered pacing
// keeps consecutive dispatches from clumping into visually bursty groups.
type Strategy interface {
	NextInterval() time.Duration
}
