package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/safra-cheia/budget-backend/internal/api/http"
	"github.com/safra-cheia/budget-backend/internal/apperr"
	"github.com/safra-cheia/budget-backend/internal/auth"
	"github.com/safra-cheia/budget-backend/internal/projects/service"
)

type Handler struct {
	svc *service.ProjectService
}

func NewHandler(svc *service.ProjectService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) create(c *gin.Context) {
	ownerID := auth.CurrentUserID(c)
	if ownerID == "" {
		httpapi.RespondError(c, apperr.ErrUnauthenticated)
		return
	}

	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	in, err := req.toInput()
	if err != nil {
		httpapi.RespondError(c, err)
		return
	}

	p, err := h.svc.Create(c.Request.Context(), ownerID, in)
	if err != nil {
		httpapi.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": newProjectView(p)})
}

func (h *Handler) list(c *gin.Context) {
	ownerID := auth.CurrentUserID(c)
	if ownerID == "" {
		httpapi.RespondError(c, apperr.ErrUnauthenticated)
		return
	}

	items, err := h.svc.List(c.Request.Context(), ownerID)
	if err != nil {
		httpapi.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": newProjectViews(items)})
}

func (h *Handler) get(c *gin.Context) {
	ownerID := auth.CurrentUserID(c)
	if ownerID == "" {
		httpapi.RespondError(c, apperr.ErrUnauthenticated)
		return
	}

	p, err := h.svc.Get(c.Request.Context(), ownerID, c.Param("public_id"))
	if err != nil {
		httpapi.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": newProjectView(p)})
}

func (h *Handler) update(c *gin.Context) {
	ownerID := auth.CurrentUserID(c)
	if ownerID == "" {
		httpapi.RespondError(c, apperr.ErrUnauthenticated)
		return
	}

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	in, err := req.toInput()
	if err != nil {
		httpapi.RespondError(c, err)
		return
	}

	p, err := h.svc.Update(c.Request.Context(), ownerID, c.Param("public_id"), in)
	if err != nil {
		httpapi.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "project": newProjectView(p)})
}

func (h *Handler) delete(c *gin.Context) {
	ownerID := auth.CurrentUserID(c)
	if ownerID == "" {
		httpapi.RespondError(c, apperr.ErrUnauthenticated)
		return
	}

	ok, err := h.svc.Delete(c.Request.Context(), ownerID, c.Param("public_id"))
	if err != nil {
		httpapi.RespondError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) summary(c *gin.Context) {
	ownerID := auth.CurrentUserID(c)
	if ownerID == "" {
		httpapi.RespondError(c, apperr.ErrUnauthenticated)
		return
	}

	s, err := h.svc.Summary(c.Request.Context(), ownerID)
	if err != nil {
		httpapi.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "summary": s})
}
