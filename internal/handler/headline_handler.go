package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finchboard/tickerlane/internal/domain"
	"github.com/finchboard/tickerlane/internal/observability/tracing"
)

// SourceUpdater receives the full headline set after a storage mutation so
// the running scheduler picks it up on its next backlog refill.
type SourceUpdater interface {
	SetHeadlines(headlines []domain.Headline)
}

type HeadlineHandler struct {
	headlineRepo domain.HeadlineRepository
	updater      SourceUpdater
}

func NewHeadlineHandler(headlineRepo domain.HeadlineRepository, updater SourceUpdater) *HeadlineHandler {
	return &HeadlineHandler{
		headlineRepo: headlineRepo,
		updater:      updater,
	}
}

type createHeadlineRequest struct {
	Text string `json:"text" binding:"required"`
	URL  string `json:"url"`
}

type replaceHeadlinesRequest struct {
	Headlines []createHeadlineRequest `json:"headlines" binding:"required"`
}

func (h *HeadlineHandler) HandleCreate(c *gin.Context) {
	ctx := c.Request.Context()

	var req createHeadlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "headline request bind failed",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	headline := domain.NewHeadline(uuid.NewString(), req.Text, req.URL)
	if err := h.headlineRepo.SaveHeadline(ctx, &headline); err != nil {
		slog.ErrorContext(ctx, "failed to save headline",
			slog.String("headline_id", headline.ID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "storage_error", "failed to save headline")
		return
	}

	h.syncScheduler(c)

	c.JSON(http.StatusCreated, headline)
}

func (h *HeadlineHandler) HandleList(c *gin.Context) {
	ctx := c.Request.Context()

	headlines, err := h.headlineRepo.ListHeadlines(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list headlines", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "storage_error", "failed to list headlines")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"headlines": headlines,
		"count":     len(headlines),
	})
}

func (h *HeadlineHandler) HandleDelete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if err := h.headlineRepo.DeleteHeadline(ctx, id); err != nil {
		if errors.Is(err, domain.ErrHeadlineNotFound) {
			respondError(c, http.StatusNotFound, "headline_not_found", "no headline with that id")
			return
		}
		slog.ErrorContext(ctx, "failed to delete headline",
			slog.String("headline_id", id),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "storage_error", "failed to delete headline")
		return
	}

	h.syncScheduler(c)

	c.JSON(http.StatusOK, gin.H{"headline_id": id, "deleted": true})
}

func (h *HeadlineHandler) HandleReplace(c *gin.Context) {
	ctx := c.Request.Context()

	var req replaceHeadlinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "headline replace bind failed",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	headlines := make([]domain.Headline, 0, len(req.Headlines))
	for _, item := range req.Headlines {
		if item.Text == "" {
			respondError(c, http.StatusBadRequest, "validation_error", "headline text is required")
			return
		}
		headlines = append(headlines, domain.NewHeadline(uuid.NewString(), item.Text, item.URL))
	}

	if err := h.headlineRepo.ReplaceHeadlines(ctx, headlines); err != nil {
		slog.ErrorContext(ctx, "failed to replace headlines", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "storage_error", "failed to replace headlines")
		return
	}

	h.syncScheduler(c)

	c.JSON(http.StatusOK, gin.H{"count": len(headlines)})
}

// syncScheduler pushes the current stored set into the running scheduler.
// Storage stays the source of truth; a sync failure only delays pickup
// until the next mutation.
func (h *HeadlineHandler) syncScheduler(c *gin.Context) {
	if h.updater == nil {
		return
	}

	ctx := c.Request.Context()

	headlines, err := h.headlineRepo.ListHeadlines(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to sync headlines to scheduler",
			slog.String("error", err.Error()),
		)
		return
	}

	_, span := tracing.StartHeadlineSyncSpan(ctx, len(headlines))
	h.updater.SetHeadlines(headlines)
	span.End()
}
