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

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	traceID := c.GetString("trace_id")
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	traceID := c.GetString("trace_id")
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID,
	})
}

func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrPOINotFound):
		RespondError(c, http.StatusNotFound, "POI not found")
	case errors.Is(err, ErrInvalidBoundingBox):
		RespondError(c, http.StatusBadRequest, "Invalid bounding box")
	case errors.Is(err, ErrChangesetOpenFailed):
		RespondError(c, http.StatusUnauthorized, "Could not open a changeset, check your credentials")
	case errors.Is(err, ErrChangesetCloseFailed):
		log.Printf("Changeset close error: %v", err)
		RespondError(c, http.StatusBadGateway, "The edit was saved but the changeset could not be closed")
	case errors.Is(err, ErrUnsupportedGeometry):
		RespondError(c, http.StatusUnprocessableEntity, "The referenced element could not be resolved for its geometry")
	case errors.Is(err, ErrGatewayUnavailable):
		log.Printf("Gateway error: %v", err)
		RespondError(c, http.StatusBadGateway, "Upstream store is unavailable")
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
