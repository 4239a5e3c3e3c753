package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/briculinos/voyana/internal/models/request_models"
	"github.com/briculinos/voyana/internal/services"
	"github.com/briculinos/voyana/pkg/utils"
)

type PlanController struct {
	pipeline services.PipelineServiceInterface
}

func NewPlanController(pipeline services.PipelineServiceInterface) *PlanController {
	return &PlanController{
		pipeline: pipeline,
	}
}

// POST /api/plan
func (p *PlanController) PlanTripHandler(c *gin.Context) {
	var req request_models.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.Message == "" && req.Request == nil {
		utils.RespondError(c, http.StatusBadRequest, "message or request is required")
		return
	}

	result, err := p.pipeline.Run(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Travel plan created")
}

// POST /api/plan/stream emits one SSE event per completed pipeline stage,
// then a terminal event carrying the full result.
func (p *PlanController) StreamPlanHandler(c *gin.Context) {
	var req request_models.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.Message == "" && req.Request == nil {
		utils.RespondError(c, http.StatusBadRequest, "message or request is required")
		return
	}

	events, err := p.pipeline.RunStream(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		event, ok := <-events
		if !ok {
			return false
		}
		c.SSEvent(event.Type, event)
		return true
	})
}

// GET /health
func (p *PlanController) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
