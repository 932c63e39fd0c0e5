package handler

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"

	"github.com/finchboard/tickerlane/internal/config"
	"github.com/finchboard/tickerlane/internal/domain"
	"github.com/finchboard/tickerlane/internal/events"
	"github.com/finchboard/tickerlane/internal/service/backlog"
	"github.com/finchboard/tickerlane/internal/service/lanepool"
	"github.com/finchboard/tickerlane/internal/service/pacing"
	"github.com/finchboard/tickerlane/internal/service/ticker"
	"github.com/finchboard/tickerlane/internal/service/traversal"
)

func newTestTickerScheduler(t *testing.T) *ticker.Scheduler {
	t.Helper()

	rng := rand.New(rand.NewSource(7))
	sched := ticker.New(ticker.Config{
		DefaultExtent: 160,
		RetryDelay:    5 * time.Millisecond,
	},
		backlog.New(rng),
		lanepool.New(3, []float64{38, 40, 42}, lanepool.NewPicker(config.LanePickerRandom, rng)),
		traversal.NewCalculator(800, 1.5, 250*time.Millisecond, time.Second, 3*time.Second, rng),
		pacing.NewUniformStrategy(800*time.Millisecond, 1300*time.Millisecond, rng),
		events.NewBus(),
		nil,
	)

	t.Cleanup(func() {
		if sched.IsRunning() {
			_ = sched.Stop()
		}
	})
	return sched
}

func setupTickerRouter(sched *ticker.Scheduler, repo domain.HeadlineRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewTickerHandler(sched, repo)

	r := gin.New()
	v1 := r.Group("/api/v1")
	{
		v1.POST("/ticker/start", h.HandleStart)
		v1.POST("/ticker/stop", h.HandleStop)
		v1.GET("/ticker/status", h.HandleStatus)
		v1.POST("/ticker/events/:id/activate", h.HandleActivate)
		v1.DELETE("/ticker/events/:id", h.HandleDestroy)
		v1.POST("/ticker/measurements", h.HandleMeasurement)
	}
	return r
}

func TestHandleStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := domain.NewMockHeadlineRepository(ctrl)
	sched := newTestTickerScheduler(t)
	router := setupTickerRouter(sched, repo)

	stored := []domain.Headline{
		domain.NewHeadline("h-1", "First headline", ""),
		domain.NewHeadline("h-2", "Second headline", ""),
	}
	repo.EXPECT().ListHeadlines(gomock.Any()).Return(stored, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ticker/start", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}
	if !sched.IsRunning() {
		t.Error("scheduler not running after start")
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["source_size"].(float64) != 2 {
		t.Errorf("source_size = %v, want 2", resp["source_size"])
	}
}

func TestHandleStartWithInlineHeadlines(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := domain.NewMockHeadlineRepository(ctrl)
	sched := newTestTickerScheduler(t)
	router := setupTickerRouter(sched, repo)

	var replaced []domain.Headline
	repo.EXPECT().ReplaceHeadlines(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, headlines []domain.Headline) error {
			replaced = headlines
			return nil
		})

	w := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"headlines":[{"text":"Inline one"},{"text":"Inline two","url":"https://example.com/2"}]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ticker/start", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}
	if len(replaced) != 2 {
		t.Errorf("stored %d inline headlines, want 2", len(replaced))
	}
	if !sched.IsRunning() {
		t.Error("scheduler not running after inline start")
	}
}

func TestHandleStartWhenAlreadyRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := domain.NewMockHeadlineRepository(ctrl)
	sched := newTestTickerScheduler(t)
	router := setupTickerRouter(sched, repo)

	repo.EXPECT().ListHeadlines(gomock.Any()).Return([]domain.Headline{
		domain.NewHeadline("h-1", "First headline", ""),
	}, nil).Times(2)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/ticker/start", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("first start status = %d, want %d", w.Code, http.StatusOK)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/ticker/start", nil))
	if w.Code != http.StatusConflict {
		t.Errorf("second start status = %d, want %d", w.Code, http.StatusConflict)
	}
}

func TestHandleStopWhenNotRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := domain.NewMockHeadlineRepository(ctrl)
	sched := newTestTickerScheduler(t)
	router := setupTickerRouter(sched, repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/ticker/stop", nil))
	if w.Code != http.StatusConflict {
		t.Errorf("stop status = %d, want %d", w.Code, http.StatusConflict)
	}
}

func TestHandleStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := domain.NewMockHeadlineRepository(ctrl)
	sched := newTestTickerScheduler(t)
	router := setupTickerRouter(sched, repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ticker/status", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var status ticker.Status
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("failed to decode status: %v", err)
	}
	if status.Running {
		t.Error("status.Running = true before start")
	}
	if len(status.Lanes) != 3 {
		t.Errorf("lane count = %d, want 3", len(status.Lanes))
	}
}

func TestHandleActivateUnknownEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := domain.NewMockHeadlineRepository(ctrl)
	sched := newTestTickerScheduler(t)
	router := setupTickerRouter(sched, repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/ticker/events/no-such-event/activate", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("activate status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestHandleDestroyUnknownEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := domain.NewMockHeadlineRepository(ctrl)
	sched := newTestTickerScheduler(t)
	router := setupTickerRouter(sched, repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/ticker/events/no-such-event", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("destroy status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["removed"].(bool) {
		t.Error("removed = true for unknown event")
	}
}

func TestHandleMeasurement(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "valid measurement",
			body:           `{"headline_id":"h-1","extent":240.5}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "negative extent",
			body:           `{"headline_id":"h-1","extent":-10}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing headline id",
			body:           `{"extent":100}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed json",
			body:           `{"headline_id":`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := domain.NewMockHeadlineRepository(ctrl)
			sched := newTestTickerScheduler(t)
			router := setupTickerRouter(sched, repo)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/ticker/measurements", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d, body %s", w.Code, tt.expectedStatus, w.Body.String())
			}
		})
	}
}
