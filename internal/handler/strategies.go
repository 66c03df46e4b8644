package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"optiontracker/internal/models"
	"optiontracker/internal/repository"
	"optiontracker/internal/service"
)

type StrategyHandler struct {
	Strategies *service.StrategyService
	Repo       repository.Repository
	Logger     *zap.Logger
}

func (h *StrategyHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/strategies")
	group.GET("", h.list)
	group.POST("", h.create)
	group.GET("/:id", h.get)
	group.PUT("/:id", h.update)
	group.DELETE("/:id", h.delete)
	group.GET("/:id/payoff", h.payoff)
	group.GET("/:id/greeks", h.greeks)
	group.GET("/:id/alerts", h.alerts)
}

// @Summary List strategies with live valuation
// @Tags strategies
// @Param parent query string false "underlying symbol filter"
// @Param structure query string false "structure filter"
// @Param objective query string false "objective filter"
// @Param status query string false "open or closed"
// @Param sort query string false "pnl, ticker or parent"
// @Param order query string false "asc (default) or desc"
// @Success 200 {object} map[string]any
// @Router /api/v1/strategies [get]
func (h *StrategyHandler) list(c *gin.Context) {
	opts := service.ListOptions{
		Parent:     strings.TrimSpace(c.Query("parent")),
		Structure:  strings.TrimSpace(c.Query("structure")),
		Objective:  strings.TrimSpace(c.Query("objective")),
		Status:     strings.TrimSpace(c.Query("status")),
		SortBy:     strings.TrimSpace(c.Query("sort")),
		Descending: strings.EqualFold(strings.TrimSpace(c.Query("order")), "desc"),
	}
	views, err := h.Strategies.List(c.Request.Context(), ownerEmail(c), opts)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, views, map[string]any{"count": len(views)})
}

// @Summary Create a strategy
// @Tags strategies
// @Accept json
// @Param body body models.Strategy true "strategy"
// @Success 200 {object} map[string]any
// @Router /api/v1/strategies [post]
func (h *StrategyHandler) create(c *gin.Context) {
	var req models.Strategy
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid payload", nil)
		return
	}
	req.ID = ""
	saved, err := h.Strategies.Save(c.Request.Context(), ownerEmail(c), &req)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, saved, nil)
}

// @Summary Get one strategy with live valuation
// @Tags strategies
// @Param id path string true "strategy id"
// @Success 200 {object} map[string]any
// @Router /api/v1/strategies/{id} [get]
func (h *StrategyHandler) get(c *gin.Context) {
	view, err := h.Strategies.Get(c.Request.Context(), ownerEmail(c), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, view, nil)
}

// @Summary Update a strategy
// @Tags strategies
// @Accept json
// @Param id path string true "strategy id"
// @Param body body models.Strategy true "strategy"
// @Success 200 {object} map[string]any
// @Router /api/v1/strategies/{id} [put]
func (h *StrategyHandler) update(c *gin.Context) {
	var req models.Strategy
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid payload", nil)
		return
	}
	req.ID = c.Param("id")
	saved, err := h.Strategies.Save(c.Request.Context(), ownerEmail(c), &req)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, saved, nil)
}

// @Summary Delete a strategy
// @Tags strategies
// @Param id path string true "strategy id"
// @Success 200 {object} map[string]any
// @Router /api/v1/strategies/{id} [delete]
func (h *StrategyHandler) delete(c *gin.Context) {
	if err := h.Strategies.Delete(c.Request.Context(), ownerEmail(c), c.Param("id")); err != nil {
		Fail(c, err)
		return
	}
	Ok(c, gin.H{"deleted": true}, nil)
}

// @Summary At-expiration payoff curve
// @Tags strategies
// @Param id path string true "strategy id"
// @Success 200 {object} map[string]any
// @Router /api/v1/strategies/{id}/payoff [get]
func (h *StrategyHandler) payoff(c *gin.Context) {
	curve, err := h.Strategies.Payoff(c.Request.Context(), ownerEmail(c), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, curve, map[string]any{"points": len(curve)})
}

// @Summary Live Greeks per leg
// @Tags strategies
// @Param id path string true "strategy id"
// @Success 200 {object} map[string]any
// @Router /api/v1/strategies/{id}/greeks [get]
func (h *StrategyHandler) greeks(c *gin.Context) {
	greeks, err := h.Strategies.LiveGreeks(c.Request.Context(), ownerEmail(c), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, greeks, nil)
}

// @Summary Threshold alerts recorded for a strategy
// @Tags strategies
// @Param id path string true "strategy id"
// @Success 200 {object} map[string]any
// @Router /api/v1/strategies/{id}/alerts [get]
func (h *StrategyHandler) alerts(c *gin.Context) {
	items, err := h.Repo.ListAlertsByStrategy(c.Request.Context(), c.Param("id"), ownerEmail(c))
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, items, map[string]any{"count": len(items)})
}
