package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceIDFrom(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceIDFrom(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceIDFrom(c),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, "Invalid request")
	case errors.Is(err, ErrIntentExtractionFailed):
		RespondError(c, http.StatusUnprocessableEntity, "Could not understand the travel request")
	case errors.Is(err, ErrMissingCriticalInfo):
		RespondError(c, http.StatusUnprocessableEntity, "Destination or budget is required")
	case errors.Is(err, ErrUnexpectedBehaviorOfAI):
		log.Printf("AI provider error: %v", err)
		RespondError(c, http.StatusBadGateway, "Upstream AI provider failed")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
