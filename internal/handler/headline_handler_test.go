package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"

	"github.com/finchboard/tickerlane/internal/domain"
)

type captureUpdater struct {
	mu    sync.Mutex
	calls int
	last  []domain.Headline
}

func (c *captureUpdater) SetHeadlines(headlines []domain.Headline) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	c.last = headlines
}

func setupHeadlineRouter(repo domain.HeadlineRepository, updater SourceUpdater) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHeadlineHandler(repo, updater)

	r := gin.New()
	v1 := r.Group("/api/v1")
	{
		v1.POST("/headlines", h.HandleCreate)
		v1.GET("/headlines", h.HandleList)
		v1.DELETE("/headlines/:id", h.HandleDelete)
		v1.PUT("/headlines", h.HandleReplace)
	}
	return r
}

func TestHandleCreateHeadline(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := domain.NewMockHeadlineRepository(ctrl)
	updater := &captureUpdater{}
	router := setupHeadlineRouter(repo, updater)

	var saved *domain.Headline
	repo.EXPECT().SaveHeadline(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, headline *domain.Headline) error {
			saved = headline
			return nil
		})
	repo.EXPECT().ListHeadlines(gomock.Any()).DoAndReturn(
		func(_ any) ([]domain.Headline, error) {
			return []domain.Headline{*saved}, nil
		})

	w := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"text":"Breaking story","url":"https://example.com/story"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/headlines", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusCreated, w.Body.String())
	}
	if saved == nil {
		t.Fatal("headline was not saved")
	}
	if saved.Text != "Breaking story" {
		t.Errorf("saved Text = %q, want %q", saved.Text, "Breaking story")
	}
	if saved.ID == "" {
		t.Error("saved headline has empty ID")
	}
	if updater.calls != 1 {
		t.Errorf("scheduler sync calls = %d, want 1", updater.calls)
	}
}

func TestHandleCreateHeadlineValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := domain.NewMockHeadlineRepository(ctrl)
	router := setupHeadlineRouter(repo, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/headlines", bytes.NewBufferString(`{"url":"https://example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestHandleListHeadlines(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := domain.NewMockHeadlineRepository(ctrl)
	router := setupHeadlineRouter(repo, nil)

	stored := []domain.Headline{
		domain.NewHeadline("h-1", "First", ""),
		domain.NewHeadline("h-2", "Second", ""),
	}
	repo.EXPECT().ListHeadlines(gomock.Any()).Return(stored, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/headlines", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Headlines []domain.Headline `json:"headlines"`
		Count     int               `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 2 {
		t.Errorf("count = %d, want 2", resp.Count)
	}
	if len(resp.Headlines) != 2 {
		t.Errorf("headlines length = %d, want 2", len(resp.Headlines))
	}
}

func TestHandleDeleteHeadlineNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := domain.NewMockHeadlineRepository(ctrl)
	router := setupHeadlineRouter(repo, nil)

	repo.EXPECT().DeleteHeadline(gomock.Any(), "missing").Return(domain.ErrHeadlineNotFound)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/headlines/missing", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestHandleReplaceHeadlines(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := domain.NewMockHeadlineRepository(ctrl)
	updater := &captureUpdater{}
	router := setupHeadlineRouter(repo, updater)

	var replaced []domain.Headline
	repo.EXPECT().ReplaceHeadlines(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, headlines []domain.Headline) error {
			replaced = headlines
			return nil
		})
	repo.EXPECT().ListHeadlines(gomock.Any()).DoAndReturn(
		func(_ any) ([]domain.Headline, error) {
			return replaced, nil
		})

	w := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"headlines":[{"text":"One"},{"text":"Two","url":"https://example.com/2"}]}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/headlines", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}
	if len(replaced) != 2 {
		t.Fatalf("replaced %d headlines, want 2", len(replaced))
	}
	if updater.calls != 1 {
		t.Errorf("scheduler sync calls = %d, want 1", updater.calls)
	}
	if len(updater.last) != 2 {
		t.Errorf("synced %d headlines, want 2", len(updater.last))
	}
}
