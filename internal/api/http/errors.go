package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/finder/backend/internal/api/middleware"
	"github.com/GriffinCanCode/finder/backend/internal/providers/filesystem"
)

var kindStatus = map[filesystem.Kind]int{
	filesystem.KindInvalidPath:     http.StatusNotFound,
	filesystem.KindSourceMissing:   http.StatusNotFound,
	filesystem.KindDestMissing:     http.StatusNotFound,
	filesystem.KindAccessDenied:    http.StatusForbidden,
	filesystem.KindAlreadyExists:   http.StatusConflict,
	filesystem.KindTooLarge:        http.StatusRequestEntityTooLarge,
	filesystem.KindUnsupportedType: http.StatusUnsupportedMediaType,
	filesystem.KindInvalidName:     http.StatusBadRequest,
	filesystem.KindNotADirectory:   http.StatusBadRequest,
	filesystem.KindNotAFile:        http.StatusBadRequest,
	filesystem.KindEmptyQuery:      http.StatusBadRequest,
	filesystem.KindConfiguration:   http.StatusInternalServerError,
	filesystem.KindIO:              http.StatusInternalServerError,
}

// StatusFor maps an operation error to an HTTP status and wire code
func StatusFor(err error) (int, string) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusRequestTimeout, "cancelled"
	}
	kind := filesystem.KindOf(err)
	if status, ok := kindStatus[kind]; ok {
		return status, kind.String()
	}
	return http.StatusInternalServerError, kind.String()
}

// respondError writes {"error", "code"} for err
func (h *Handlers) respondError(c *gin.Context, err error) {
	status, code := StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Filesystem request failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("code", code),
			zap.Error(err),
		)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error(), "code": code})
}
