package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/neurobridge-navigation/internal/http/response"
	"github.com/yungbote/neurobridge-navigation/internal/navigation"
	"github.com/yungbote/neurobridge-navigation/internal/services"
)

type NavigationHandler struct {
	svc services.NavigationService
}

func NewNavigationHandler(svc services.NavigationService) *NavigationHandler {
	return &NavigationHandler{svc: svc}
}

// POST /api/navigation/secondary
func (h *NavigationHandler) BuildSecondary(c *gin.Context) {
	var req services.PageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := h.svc.BuildSecondary(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"navigation": res})
}

// POST /api/navigation/primary
func (h *NavigationHandler) BuildPrimary(c *gin.Context) {
	var req services.PageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := h.svc.BuildPrimary(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"navigation": res})
}

// GET /api/navigation/layouts/:view/:level/:source
func (h *NavigationHandler) GetLayout(c *gin.Context) {
	layout, err := h.svc.GetLayout(c.Request.Context(), c.Param("view"), c.Param("level"), c.Param("source"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"layout": layout})
}

type putLayoutRequest struct {
	Entries []navigation.Placement `json:"entries"`
}

// PUT /api/navigation/layouts/:view/:level/:source
func (h *NavigationHandler) PutLayout(c *gin.Context) {
	var req putLayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	layout, err := h.svc.PutLayout(c.Request.Context(), c.Param("view"), c.Param("level"), c.Param("source"), req.Entries)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"layout": layout})
}

// DELETE /api/navigation/layouts/:view/:level/:source
func (h *NavigationHandler) DeleteLayout(c *gin.Context) {
	if err := h.svc.DeleteLayout(c.Request.Context(), c.Param("view"), c.Param("level"), c.Param("source")); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}

// GET /api/navigation/extensions?level=&instance_id=
func (h *NavigationHandler) ListExtensions(c *gin.Context) {
	var instanceID int64
	if raw := strings.TrimSpace(c.Query("instance_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_instance_id", errors.New("instance_id must be an integer"))
			return
		}
		instanceID = id
	}
	exts, err := h.svc.ListExtensions(c.Request.Context(), c.Query("level"), instanceID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"extensions": exts})
}

// POST /api/navigation/extensions
func (h *NavigationHandler) CreateExtension(c *gin.Context) {
	var in services.ExtensionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	ext, err := h.svc.CreateExtension(c.Request.Context(), in)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"extension": ext})
}

// GET /api/navigation/extensions/:id
func (h *NavigationHandler) GetExtension(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_extension_id", err)
		return
	}
	ext, err := h.svc.GetExtension(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"extension": ext})
}

// DELETE /api/navigation/extensions/:id
func (h *NavigationHandler) DeleteExtension(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_extension_id", err)
		return
	}
	if err := h.svc.DeleteExtension(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}
