package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	httpapi "github.com/safra-cheia/budget-backend/internal/api/http"
	"github.com/safra-cheia/budget-backend/internal/apperr"
	"github.com/safra-cheia/budget-backend/internal/auth"
	"github.com/safra-cheia/budget-backend/internal/money"
	"github.com/safra-cheia/budget-backend/internal/transactions/domain"
	"github.com/safra-cheia/budget-backend/internal/transactions/service"
)

type Handler struct {
	svc *service.LedgerService
}

func NewHandler(svc *service.LedgerService) *Handler {
	return &Handler{svc: svc}
}

// RegisterProjectSubroutes nests the per-project transaction routes under
// the projects group.
func (h *Handler) RegisterProjectSubroutes(rg *gin.RouterGroup) {
	rg.POST("/:public_id/transactions", h.create)
	rg.GET("/:public_id/transactions", h.list)
}

// Register attaches routes addressed by transaction id.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.PATCH("/:public_id", h.update)
	rg.DELETE("/:public_id", h.delete)
}

type createReq struct {
	Description     string `json:"description"`
	Amount          string `json:"amount"`
	TransactionDate string `json:"transaction_date"`
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

	amount, err := money.ParseAmount(req.Amount)
	if err != nil {
		httpapi.RespondError(c, err)
		return
	}

	in := domain.AddTransactionInput{
		Description:     strings.TrimSpace(req.Description),
		Amount:          amount,
		TransactionDate: strings.TrimSpace(req.TransactionDate),
	}

	t, err := h.svc.Add(c.Request.Context(), ownerID, c.Param("public_id"), in)
	if err != nil {
		httpapi.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "transaction": t})
}

func (h *Handler) list(c *gin.Context) {
	ownerID := auth.CurrentUserID(c)
	if ownerID == "" {
		httpapi.RespondError(c, apperr.ErrUnauthenticated)
		return
	}

	items, err := h.svc.List(c.Request.Context(), ownerID, c.Param("public_id"))
	if err != nil {
		httpapi.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "transactions": items})
}

type updateReq struct {
	Description     *string `json:"description"`
	Amount          *string `json:"amount"`
	TransactionDate *string `json:"transaction_date"`
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

	in := domain.UpdateTransactionInput{
		Description:     req.Description,
		TransactionDate: req.TransactionDate,
	}
	if req.Amount != nil {
		amount, err := money.ParseAmount(*req.Amount)
		if err != nil {
			httpapi.RespondError(c, err)
			return
		}
		in.Amount = &amount
	}

	t, err := h.svc.Update(c.Request.Context(), ownerID, c.Param("public_id"), in)
	if err != nil {
		httpapi.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "transaction": t})
}

func (h *Handler) delete(c *gin.Context) {
	ownerID := auth.CurrentUserID(c)
	if ownerID == "" {
		httpapi.RespondError(c, apperr.ErrUnauthenticated)
		return
	}

	if err := h.svc.Remove(c.Request.Context(), ownerID, c.Param("public_id")); err != nil {
		httpapi.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
