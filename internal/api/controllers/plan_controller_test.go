package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briculinos/voyana/internal/models/request_models"
	"github.com/briculinos/voyana/internal/models/response_models"
)

type stubPipeline struct {
	result *response_models.PlanResult
	err    error
}

func (s *stubPipeline) Run(_ context.Context, _ request_models.PlanRequest) (*response_models.PlanResult, error) {
	return s.result, s.err
}

func (s *stubPipeline) RunStream(_ context.Context, _ request_models.PlanRequest) (<-chan response_models.StageEvent, error) {
	events := make(chan response_models.StageEvent, 2)
	events <- response_models.StageEvent{Type: response_models.EventStage, Stage: "searched"}
	events <- response_models.StageEvent{Type: response_models.EventComplete, Result: s.result}
	close(events)
	return events, nil
}

// sseRecorder satisfies http.CloseNotifier, which gin's c.Stream requires
// and the plain httptest recorder does not implement.
type sseRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func newSSERecorder() *sseRecorder {
	return &sseRecorder{ResponseRecorder: httptest.NewRecorder(), closed: make(chan bool, 1)}
}

func (r *sseRecorder) CloseNotify() <-chan bool { return r.closed }

func newTestRouter(pipeline *stubPipeline) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewPlanController(pipeline)

	r := gin.New()
	r.POST("/api/plan", controller.PlanTripHandler)
	r.POST("/api/plan/stream", controller.StreamPlanHandler)
	r.GET("/health", controller.HealthHandler)
	return r
}

func TestPlanTripHandler(t *testing.T) {
	router := newTestRouter(&stubPipeline{
		result: &response_models.PlanResult{PlanID: "p-1", Success: true},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/plan",
		strings.NewReader(`{"message": "Rome for 10 days with 5000 EUR"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"plan_id":"p-1"`)
	assert.Contains(t, w.Body.String(), `"status":"success"`)
}

func TestPlanTripHandlerRejectsEmptyBody(t *testing.T) {
	router := newTestRouter(&stubPipeline{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStreamPlanHandlerEmitsSSE(t *testing.T) {
	router := newTestRouter(&stubPipeline{
		result: &response_models.PlanResult{PlanID: "p-2", Success: true},
	})

	w := newSSERecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/plan/stream",
		strings.NewReader(`{"message": "Rome for 10 days"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, w.Header().Get("Content-Type"), "text/event-stream")
	assert.Contains(t, body, "event:stage")
	assert.Contains(t, body, "event:complete")
	assert.Contains(t, body, "p-2")
}

func TestHealthHandler(t *testing.T) {
	router := newTestRouter(&stubPipeline{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
