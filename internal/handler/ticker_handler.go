package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finchboard/tickerlane/internal/domain"
	"github.com/finchboard/tickerlane/internal/observability/tracing"
	"github.com/finchboard/tickerlane/internal/service/ticker"
)

type TickerHandler struct {
	scheduler    *ticker.Scheduler
	headlineRepo domain.HeadlineRepository
}

func NewTickerHandler(scheduler *ticker.Scheduler, headlineRepo domain.HeadlineRepository) *TickerHandler {
	return &TickerHandler{
		scheduler:    scheduler,
		headlineRepo: headlineRepo,
	}
}

type measurementRequest struct {
	HeadlineID string  `json:"headline_id" binding:"required"`
	Extent     float64 `json:"extent" binding:"required"`
}

type startRequest struct {
	Headlines []createHeadlineRequest `json:"headlines"`
}

// HandleStart begins dispatching. An inline headline set replaces the
// stored pool before start; without one the stored pool is used as-is.
func (h *TickerHandler) HandleStart(c *gin.Context) {
	ctx := c.Request.Context()

	var headlines []domain.Headline

	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		var req startRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			slog.WarnContext(ctx, "start request bind failed",
				slog.String("error", err.Error()),
			)
			respondError(c, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		for _, item := range req.Headlines {
			if item.Text == "" {
				respondError(c, http.StatusBadRequest, "validation_error", "headline text is required")
				return
			}
			headlines = append(headlines, domain.NewHeadline(uuid.NewString(), item.Text, item.URL))
		}
		if len(headlines) > 0 {
			if err := h.headlineRepo.ReplaceHeadlines(ctx, headlines); err != nil {
				slog.ErrorContext(ctx, "failed to store inline headlines",
					slog.String("error", err.Error()),
				)
				respondError(c, http.StatusInternalServerError, "storage_error", "failed to store headlines")
				return
			}
		}
	}

	if len(headlines) == 0 {
		stored, err := h.headlineRepo.ListHeadlines(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "failed to load headlines for start",
				slog.String("error", err.Error()),
			)
			respondError(c, http.StatusInternalServerError, "storage_error", "failed to load headlines")
			return
		}
		headlines = stored
	}

	ctx, span := tracing.StartTickerStartSpan(ctx, len(headlines))
	err := h.scheduler.Start(headlines)
	tracing.RecordResult(span, err)
	span.End()

	if err != nil {
		if errors.Is(err, domain.ErrAlreadyRunning) {
			respondError(c, http.StatusConflict, "already_running", "ticker is already running")
			return
		}
		slog.ErrorContext(ctx, "failed to start ticker", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "start_error", "failed to start ticker")
		return
	}

	slog.InfoContext(ctx, "ticker start requested",
		slog.Int("headline_count", len(headlines)),
	)

	c.JSON(http.StatusOK, gin.H{
		"running":     true,
		"source_size": len(headlines),
	})
}

func (h *TickerHandler) HandleStop(c *gin.Context) {
	ctx := c.Request.Context()

	ctx, span := tracing.StartTickerStopSpan(ctx)
	err := h.scheduler.Stop()
	tracing.RecordResult(span, err)
	span.End()

	if err != nil {
		if errors.Is(err, domain.ErrNotRunning) {
			respondError(c, http.StatusConflict, "not_running", "ticker is not running")
			return
		}
		slog.ErrorContext(ctx, "failed to stop ticker", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "stop_error", "failed to stop ticker")
		return
	}

	slog.InfoContext(ctx, "ticker stop requested")

	c.JSON(http.StatusOK, gin.H{"running": false})
}

func (h *TickerHandler) HandleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.scheduler.Snapshot())
}

func (h *TickerHandler) HandleActivate(c *gin.Context) {
	ctx := c.Request.Context()
	eventID := c.Param("id")

	_, span := tracing.StartActivateSpan(ctx, eventID)
	err := h.scheduler.Activate(eventID)
	tracing.RecordResult(span, err)
	span.End()

	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			respondError(c, http.StatusNotFound, "event_not_found", "no live event with that id")
			return
		}
		slog.ErrorContext(ctx, "failed to activate event",
			slog.String("event_id", eventID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "activate_error", "failed to activate event")
		return
	}

	c.JSON(http.StatusOK, gin.H{"event_id": eventID, "activated": true})
}

func (h *TickerHandler) HandleDestroy(c *gin.Context) {
	eventID := c.Param("id")
	removed := h.scheduler.Destroy(eventID)

	c.JSON(http.StatusOK, gin.H{"event_id": eventID, "removed": removed})
}

func (h *TickerHandler) HandleMeasurement(c *gin.Context) {
	ctx := c.Request.Context()

	var req measurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "measurement request bind failed",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if err := h.scheduler.ReportExtent(req.HeadlineID, req.Extent); err != nil {
		if errors.Is(err, domain.ErrInvalidExtent) {
			respondError(c, http.StatusBadRequest, "invalid_extent", "extent must be positive")
			return
		}
		slog.ErrorContext(ctx, "failed to record measurement",
			slog.String("headline_id", req.HeadlineID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "measurement_error", "failed to record measurement")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"headline_id": req.HeadlineID,
		"extent":      req.Extent,
	})
}

func respondError(c *gin.Context, status int, errType, message string) {
	c.JSON(status, gin.H{
		"error":   errType,
		"message": message,
	})
}
