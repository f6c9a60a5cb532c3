package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/finder/backend/internal/api/middleware"
	"github.com/GriffinCanCode/finder/backend/internal/domain/service"
	"github.com/GriffinCanCode/finder/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/finder/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/finder/backend/internal/providers/filesystem"
	"github.com/GriffinCanCode/finder/backend/internal/shared/types"
	"github.com/GriffinCanCode/finder/backend/internal/shared/utils"
)

// Version is reported by the root endpoint
const Version = "0.3.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	registry *service.Registry
	fs       *filesystem.Provider
	metrics  *monitoring.Metrics
	logger   *logging.Logger
}

// NewHandlers creates a new handler set. metrics may be nil.
func NewHandlers(registry *service.Registry, fs *filesystem.Provider, metrics *monitoring.Metrics, logger *logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handlers{registry: registry, fs: fs, metrics: metrics, logger: logger}
}

// Root handles the liveness check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "Finder Service (Go)",
		"version": Version,
	})
}

// Health reports the access boundary and service state
func (h *Handlers) Health(c *gin.Context) {
	validator := h.fs.Directory().Validator
	status := "healthy"
	boundary := gin.H{"readonly_roots": validator.ReadOnlyRoots()}
	if home, err := validator.Home(); err != nil {
		status = "degraded"
		boundary["error"] = err.Error()
	} else {
		boundary["home"] = home
	}

	body := gin.H{
		"status":           status,
		"boundary":         boundary,
		"service_registry": h.registry.Stats(),
	}
	if h.metrics != nil {
		body["metrics"] = h.metrics.Snapshot()
	}
	c.JSON(http.StatusOK, body)
}

// ListServices lists available services, optionally filtered by category
// or ranked against an intent
func (h *Handlers) ListServices(c *gin.Context) {
	categoryStr := c.Query("category")
	if err := utils.ValidateCategory(categoryStr, false); err != nil {
		abortBadRequest(c, err)
		return
	}

	if intent := c.Query("intent"); intent != "" {
		c.JSON(http.StatusOK, gin.H{"services": h.registry.Discover(intent, 5)})
		return
	}

	var category *types.Category
	if categoryStr != "" {
		cat := types.Category(categoryStr)
		category = &cat
	}

	c.JSON(http.StatusOK, gin.H{
		"services": h.registry.List(category),
		"stats":    h.registry.Stats(),
	})
}

// ExecuteService runs a tool through the registry. Tool failures are
// reported in the result body with status 200.
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req types.ExecuteRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := utils.ValidateToolID(req.ToolID, "tool_id", true); err != nil {
		abortBadRequest(c, err)
		return
	}
	if err := utils.ValidateParams(req.Params); err != nil {
		abortBadRequest(c, err)
		return
	}

	reqID := middleware.GetRequestID(c)
	clientIP := c.ClientIP()
	appCtx := &types.Context{ClientIP: &clientIP}
	if reqID != "" {
		appCtx.RequestID = &reqID
	}

	result, err := h.registry.Execute(c.Request.Context(), req.ToolID, req.Params, appCtx)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": "unknown_tool"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// bindJSON decodes a bounded JSON body, writing a 400 on failure
func bindJSON(c *gin.Context, v interface{}) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, utils.MaxJSONSize)
	if err := c.ShouldBindJSON(v); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large", "code": "too_large"})
			return false
		}
		abortBadRequest(c, err)
		return false
	}
	return true
}

func abortBadRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "invalid_request"})
}
