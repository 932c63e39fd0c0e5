package ticker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finchboard/tickerlane/internal/domain"
	"github.com/finchboard/tickerlane/internal/events"
	"github.com/finchboard/tickerlane/internal/observability/metrics"
	"github.com/finchboard/tickerlane/internal/service/backlog"
	"github.com/finchboard/tickerlane/internal/service/lanepool"
	"github.com/finchboard/tickerlane/internal/service/pacing"
	"github.com/finchboard/tickerlane/internal/service/traversal"
)

// Retry reasons reported on ticks that could not dispatch.
const (
	retryEmptyBacklog = "empty_backlog"
	retryNoLane       = "no_lane"
)

// ActivateFunc is invoked when a live event is activated by the host
// (typically a click on the rendered item). The scheduler does not
// interpret the headline.
type ActivateFunc func(domain.Headline)

// Config holds the dispatch-loop tunables not already owned by the
// collaborators (pool, calculator, pacer).
type Config struct {
	DefaultExtent float64
	RetryDelay    time.Duration
}

// liveEvent tracks one dispatched event together with its pending timers.
type liveEvent struct {
	event        *domain.Event
	laneFreed    bool
	laneTimer    *time.Timer
	destroyTimer *time.Timer
}

// Scheduler drives the dispatch loop: each tick pulls the next headline
// from the backlog, places it on a free lane, and arms the lane-reuse and
// destroy timers for the new event. All lane, backlog and registry state is
// owned by the scheduler and mutated only under its mutex; timer callbacks
// re-enter through the same lock, so there is a single logical writer.
//
// A generation counter fences stale timer callbacks: Stop bumps the
// generation, and any callback armed before the bump returns without
// touching state even if it was already waiting on the lock.
type Scheduler struct {
	cfg     Config
	backlog *backlog.Backlog
	pool    *lanepool.Pool
	calc    *traversal.Calculator
	pacer   pacing.Strategy
	bus     *events.Bus
	metrics *metrics.TickerMetrics

	mu         sync.Mutex
	running    bool
	gen        uint64
	tickTimer  *time.Timer
	live       map[string]*liveEvent
	extents    map[string]float64
	onActivate ActivateFunc
}

func New(
	cfg Config,
	bl *backlog.Backlog,
	pool *lanepool.Pool,
	calc *traversal.Calculator,
	pacer pacing.Strategy,
	bus *events.Bus,
	tickerMetrics *metrics.TickerMetrics,
) *Scheduler {
	return &Scheduler{
		cfg:     cfg,
		backlog: bl,
		pool:    pool,
		calc:    calc,
		pacer:   pacer,
		bus:     bus,
		metrics: tickerMetrics,
		live:    make(map[string]*liveEvent),
		extents: make(map[string]float64),
	}
}

// SetOnActivate wires the host's activation callback. Must be called before
// Start; activations with no callback still publish a lifecycle event.
func (s *Scheduler) SetOnActivate(fn ActivateFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onActivate = fn
}

// Start populates the backlog source (when headlines are given) and begins
// the dispatch loop. The first dispatch happens one jittered interval after
// Start returns.
func (s *Scheduler) Start(headlines []domain.Headline) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return domain.ErrAlreadyRunning
	}

	if len(headlines) > 0 {
		s.backlog.SetSource(headlines)
	}
	s.backlog.ResetQueue()

	s.running = true
	s.gen++

	s.bus.Publish(events.EventTickerStarted, events.Payload{
		"lane_count":  s.pool.Len(),
		"source_size": s.backlog.SourceLen(),
	})

	slog.Info("ticker started",
		slog.Int("lane_count", s.pool.Len()),
		slog.Int("source_size", s.backlog.SourceLen()),
	)

	s.armTickLocked(s.pacer.NextInterval())
	return nil
}

// Stop cancels the tick and every per-event timer, destroys all live
// events, and resets lanes and backlog queue. Afterwards the scheduler is
// indistinguishable from one that never started; a later Start begins a
// fresh run with no residue.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return domain.ErrNotRunning
	}

	s.gen++
	s.running = false

	if s.tickTimer != nil {
		s.tickTimer.Stop()
		s.tickTimer = nil
	}

	for id := range s.live {
		s.destroyLocked(id, "stopped")
	}

	s.pool.Reset()
	s.backlog.ResetQueue()

	s.bus.Publish(events.EventTickerStopped, events.Payload{})
	slog.Info("ticker stopped")
	return nil
}

// IsRunning reports whether the dispatch loop is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// SetHeadlines replaces the backlog source set. Takes effect on the next
// backlog refill so the in-flight cycle keeps its no-repeat guarantee.
func (s *Scheduler) SetHeadlines(headlines []domain.Headline) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backlog.SetSource(headlines)
}

// ReportExtent records the measured extent for a headline. Dispatches of
// headlines without a measurement fall back to the configured default.
func (s *Scheduler) ReportExtent(headlineID string, extent float64) error {
	if extent <= 0 {
		return domain.ErrInvalidExtent
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.extents[headlineID] = extent
	return nil
}

// Activate signals that a live event was interacted with. The headline is
// handed to the activation callback and published on the bus; the event's
// lifecycle is unaffected.
func (s *Scheduler) Activate(eventID string) error {
	s.mu.Lock()
	le, ok := s.live[eventID]
	if !ok {
		s.mu.Unlock()
		return domain.ErrEventNotFound
	}
	headline := le.event.Headline
	fn := s.onActivate
	s.mu.Unlock()

	s.bus.Publish(events.EventActivate, events.Payload{
		"event_id":    eventID,
		"headline_id": headline.ID,
		"text":        headline.Text,
		"url":         headline.URL,
	})

	if fn != nil {
		fn(headline)
	}
	return nil
}

// Destroy removes a live event ahead of its timers, e.g. when the host
// dismisses it. Destroying an unknown or already destroyed event is a
// no-op; the return reports whether anything was removed.
func (s *Scheduler) Destroy(eventID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.destroyLocked(eventID, "dismissed")
}

// Status is a point-in-time view of the scheduler, used by the status API
// and readiness checks.
type Status struct {
	Running      bool          `json:"running"`
	Lanes        []domain.Lane `json:"lanes"`
	LiveEvents   int           `json:"live_events"`
	BacklogDepth int           `json:"backlog_depth"`
	SourceSize   int           `json:"source_size"`
}

func (s *Scheduler) Snapshot() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		Running:      s.running,
		Lanes:        s.pool.Snapshot(),
		LiveEvents:   len(s.live),
		BacklogDepth: s.backlog.Len(),
		SourceSize:   s.backlog.SourceLen(),
	}
}

// tick is the loop's only entry point for advancing time. It re-arms itself
// after every pass, dispatching or retrying, until Stop fences it out.
func (s *Scheduler) tick(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || gen != s.gen {
		return
	}

	ctx := context.Background()

	if s.backlog.SourceLen() == 0 {
		if s.metrics != nil {
			s.metrics.RecordRetry(ctx, retryEmptyBacklog)
		}
		s.armTickLocked(s.cfg.RetryDelay)
		return
	}

	lane, ok := s.pool.PickAvailable()
	if !ok {
		if s.metrics != nil {
			s.metrics.RecordRetry(ctx, retryNoLane)
		}
		slog.Debug("all lanes busy, retrying",
			slog.Duration("retry_delay", s.cfg.RetryDelay),
		)
		s.armTickLocked(s.cfg.RetryDelay)
		return
	}

	refillsBefore := s.backlog.Refills()
	headline, err := s.backlog.Dequeue()
	if err != nil {
		// Source emptied between the check and the dequeue; idle.
		s.armTickLocked(s.cfg.RetryDelay)
		return
	}
	if s.metrics != nil && s.backlog.Refills() > refillsBefore {
		s.metrics.RecordBacklogRefill(ctx)
	}

	s.dispatchLocked(ctx, gen, headline, lane)
	s.armTickLocked(s.pacer.NextInterval())
}

func (s *Scheduler) dispatchLocked(ctx context.Context, gen uint64, headline domain.Headline, lane domain.Lane) {
	extent := s.extents[headline.ID]
	if extent <= 0 {
		extent = s.cfg.DefaultExtent
	}

	timing := s.calc.Compute(extent, lane.Rate)
	now := time.Now()

	event := domain.NewEvent(uuid.NewString(), headline, extent, lane.ID)
	_ = event.TransitionTo(domain.EventStateTraversing)

	if err := s.pool.MarkBusy(lane.ID, now.Add(timing.LaneReuse)); err != nil {
		slog.Error("failed to occupy picked lane",
			slog.Int("lane_id", lane.ID),
			slog.String("error", err.Error()),
		)
		return
	}

	le := &liveEvent{event: event}
	eventID := event.ID
	laneID := lane.ID
	le.laneTimer = time.AfterFunc(timing.LaneReuse, func() {
		s.releaseLane(gen, laneID, eventID)
	})
	le.destroyTimer = time.AfterFunc(timing.DestroyAfter, func() {
		s.expire(gen, eventID)
	})
	s.live[eventID] = le

	s.bus.Publish(events.EventDispatch, events.Payload{
		"event_id":     eventID,
		"headline_id":  headline.ID,
		"text":         headline.Text,
		"url":          headline.URL,
		"lane_id":      lane.ID,
		"rate":         lane.Rate,
		"extent":       extent,
		"traversal_ms": timing.Traversal.Milliseconds(),
		"reuse_ms":     timing.LaneReuse.Milliseconds(),
		"destroy_ms":   timing.DestroyAfter.Milliseconds(),
	})

	if s.metrics != nil {
		s.metrics.RecordDispatch(ctx, lane.ID)
		s.metrics.RecordEventStarted(ctx)
		s.metrics.RecordTraversalDuration(ctx, lane.ID, timing.Traversal)
	}

	slog.Debug("event dispatched",
		slog.String("event_id", eventID),
		slog.String("headline_id", headline.ID),
		slog.Int("lane_id", lane.ID),
		slog.Float64("extent", extent),
		slog.Duration("traversal", timing.Traversal),
		slog.Duration("lane_reuse", timing.LaneReuse),
	)
}

// releaseLane fires once the event has fully entered the field plus its
// random gap. The lane becomes reusable here, well before the event itself
// expires; the event stays live and visible.
func (s *Scheduler) releaseLane(gen uint64, laneID int, eventID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return
	}

	le, ok := s.live[eventID]
	if !ok || le.laneFreed {
		return
	}
	le.laneFreed = true
	s.pool.MarkFree(laneID)

	s.bus.Publish(events.EventLaneFree, events.Payload{
		"event_id": eventID,
		"lane_id":  laneID,
	})
}

func (s *Scheduler) expire(gen uint64, eventID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return
	}
	s.destroyLocked(eventID, "expired")
}

// destroyLocked idempotently removes an event's resources: its timers, its
// registry entry, and, if the event still holds its lane, the lane
// occupation. The lane check matters: once the reuse timer has fired the
// lane may already host a trailing event, and releasing it again would
// break the one-event-per-lane invariant.
func (s *Scheduler) destroyLocked(eventID, reason string) bool {
	le, ok := s.live[eventID]
	if !ok {
		return false
	}

	if le.laneTimer != nil {
		le.laneTimer.Stop()
	}
	if le.destroyTimer != nil {
		le.destroyTimer.Stop()
	}

	if !le.laneFreed {
		le.laneFreed = true
		s.pool.MarkFree(le.event.LaneID)
	}

	if le.event.State == domain.EventStateTraversing {
		_ = le.event.TransitionTo(domain.EventStateExpired)
	}
	_ = le.event.TransitionTo(domain.EventStateDestroyed)

	delete(s.live, eventID)

	s.bus.Publish(events.EventExpire, events.Payload{
		"event_id":    eventID,
		"headline_id": le.event.Headline.ID,
		"lane_id":     le.event.LaneID,
		"reason":      reason,
	})

	if s.metrics != nil {
		s.metrics.RecordEventFinished(context.Background())
	}
	return true
}

func (s *Scheduler) armTickLocked(delay time.Duration) {
	gen := s.gen
	s.tickTimer = time.AfterFunc(delay, func() {
		s.tick(gen)
	})
}
