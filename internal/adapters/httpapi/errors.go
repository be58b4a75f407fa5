package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/core/chore"
	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/core/session"
	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/ports/secondary"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, secondary.ErrNotFound), errors.Is(err, session.ErrOwnerNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrSessionFinished), errors.Is(err, secondary.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, chore.ErrInvalidChoreConfig),
		errors.Is(err, session.ErrEmptyTaskList),
		errors.Is(err, session.ErrInvalidTaskList),
		errors.Is(err, session.ErrUnknownTask):
		return http.StatusUnprocessableEntity
	case errors.Is(err, secondary.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{
		"success": false,
		"error":   err.Error(),
	})
}

func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}

func respondOK(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}
