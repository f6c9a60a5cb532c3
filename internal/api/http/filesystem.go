package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/finder/backend/internal/shared/types"
)

// Home returns the home directory
func (h *Handlers) Home(c *gin.Context) {
	home, err := h.fs.Directory().Home()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": home})
}

// ListDirectory lists the children of ?path=
func (h *Handlers) ListDirectory(c *gin.Context) {
	listing, err := h.fs.Directory().List(c.Request.Context(), c.Query("path"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// ItemInfo describes ?path=
func (h *Handlers) ItemInfo(c *gin.Context) {
	entry, err := h.fs.Directory().ItemInfo(c.Request.Context(), c.Query("path"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// Search finds entries under ?path= whose name contains ?query=
func (h *Handlers) Search(c *gin.Context) {
	result, err := h.fs.Search().Search(c.Request.Context(), c.Query("path"), c.Query("query"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Glob finds entries under ?path= matching ?pattern=
func (h *Handlers) Glob(c *gin.Context) {
	result, err := h.fs.Search().Glob(c.Request.Context(), c.Query("path"), c.Query("pattern"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Preview renders ?path= for display
func (h *Handlers) Preview(c *gin.Context) {
	preview, err := h.fs.Preview().Preview(c.Request.Context(), c.Query("path"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

// CreateFolder creates {name} inside {path}
func (h *Handlers) CreateFolder(c *gin.Context) {
	var req types.CreateFolderRequest
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.fs.Operations().CreateFolder(c.Request.Context(), req.Path, req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"path": created})
}

// DeleteItem removes ?path= recursively
func (h *Handlers) DeleteItem(c *gin.Context) {
	path := c.Query("path")
	if err := h.fs.Operations().Delete(c.Request.Context(), path); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true, "path": path})
}

// Rename renames {path} to {new_name} in place
func (h *Handlers) Rename(c *gin.Context) {
	var req types.RenameRequest
	if !bindJSON(c, &req) {
		return
	}
	renamed, err := h.fs.Operations().Rename(c.Request.Context(), req.Path, req.NewName)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": renamed})
}

// Copy copies {source} into the {destination} directory
func (h *Handlers) Copy(c *gin.Context) {
	var req types.TransferRequest
	if !bindJSON(c, &req) {
		return
	}
	copied, err := h.fs.Operations().Copy(c.Request.Context(), req.Source, req.Destination)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"path": copied})
}

// Move moves {source} into the {destination} directory
func (h *Handlers) Move(c *gin.Context) {
	var req types.TransferRequest
	if !bindJSON(c, &req) {
		return
	}
	moved, err := h.fs.Operations().Move(c.Request.Context(), req.Source, req.Destination)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": moved})
}

// Register mounts every route on router
func (h *Handlers) Register(router gin.IRouter) {
	router.GET("/", h.Root)
	router.GET("/health", h.Health)

	router.GET("/services", h.ListServices)
	router.POST("/services/execute", h.ExecuteService)

	fs := router.Group("/fs")
	fs.GET("/home", h.Home)
	fs.GET("/list", h.ListDirectory)
	fs.GET("/info", h.ItemInfo)
	fs.GET("/search", h.Search)
	fs.GET("/glob", h.Glob)
	fs.GET("/preview", h.Preview)
	fs.POST("/folders", h.CreateFolder)
	fs.DELETE("/items", h.DeleteItem)
	fs.POST("/rename", h.Rename)
	fs.POST("/copy", h.Copy)
	fs.POST("/move", h.Move)
}
