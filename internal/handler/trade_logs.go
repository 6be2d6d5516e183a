package handler

import (
	"github.com/gin-gonic/gin"

	"tradedesk/internal/service"
)

type TradeLogHandler struct {
	Service *service.TradeLogService
}

func (h *TradeLogHandler) Register(r *gin.Engine) {
	r.GET("/api/trades/:trade_id/logs", h.list)
}

// @Summary List audit log entries of a trade
// @Description Returns the trade's audit trail, newest entry first.
// @Tags trade-logs
// @Param trade_id path string true "trade id"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/trades/{trade_id}/logs [get]
func (h *TradeLogHandler) list(c *gin.Context) {
	id, ok := tradeIDParam(c)
	if !ok {
		return
	}
	items, err := h.Service.ListByTrade(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, items, nil)
}
