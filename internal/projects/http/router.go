package http

import "github.com/gin-gonic/gin"

// Register attaches project routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:public_id", h.get)
	rg.PATCH("/:public_id", h.update)
	rg.DELETE("/:public_id", h.delete)
}

// RegisterPortfolio attaches the portfolio rollup route.
func (h *Handler) RegisterPortfolio(rg *gin.RouterGroup) {
	rg.GET("/summary", h.summary)
}
