package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tradedesk/internal/models"
	"tradedesk/internal/service"
)

type TradeHandler struct {
	Service *service.TradeService
	Logger  *zap.Logger
}

func (h *TradeHandler) Register(r *gin.Engine) {
	g := r.Group("/api/trades")
	g.GET("", h.list)
	g.POST("", h.create)
	g.POST("/diff", h.diffSnapshots)
	g.GET("/:trade_id", h.get)
	g.PATCH("/:trade_id", h.applyAction)
}

// @Summary List trades
// @Tags trades
// @Param page query int false "page number (1-based)"
// @Param per_page query int false "page size"
// @Param state query string false "exact state filter"
// @Success 200 {object} apiResponse
// @Router /api/trades [get]
func (h *TradeHandler) list(c *gin.Context) {
	page := intQuery(c, "page", 1)
	perPage := intQuery(c, "per_page", 20)
	state := strings.TrimSpace(c.Query("state"))

	result, err := h.Service.List(c.Request.Context(), page, perPage, state)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, result.Items, paginationMeta(pageInfo{
		Page:       result.Page,
		PerPage:    result.PerPage,
		Total:      result.Total,
		TotalPages: result.TotalPages,
	}))
}

// @Summary Create trade
// @Tags trades
// @Accept json
// @Param body body service.CreateTradeInput true "trade fields"
// @Success 201 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Router /api/trades [post]
func (h *TradeHandler) create(c *gin.Context) {
	var in service.CreateTradeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	trade, err := h.Service.Create(c.Request.Context(), in)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, trade)
}

// @Summary Get trade
// @Tags trades
// @Param trade_id path string true "trade id"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/trades/{trade_id} [get]
func (h *TradeHandler) get(c *gin.Context) {
	id, ok := tradeIDParam(c)
	if !ok {
		return
	}
	trade, err := h.Service.Get(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, trade, nil)
}

type applyActionRequest struct {
	ActorID string         `json:"actor_id"`
	Action  string         `json:"action"`
	Fields  map[string]any `json:"fields"`
}

// @Summary Apply an action to a trade
// @Description Performs one workflow transition (submit, approve, cancel, update, send, book) and appends an audit entry.
// @Tags trades
// @Accept json
// @Param trade_id path string true "trade id"
// @Param body body applyActionRequest true "actor, action and optional field updates"
// @Success 200 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Failure 409 {object} apiResponse
// @Router /api/trades/{trade_id} [patch]
func (h *TradeHandler) applyAction(c *gin.Context) {
	id, ok := tradeIDParam(c)
	if !ok {
		return
	}
	var req applyActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}

	actorID := uuid.Nil
	if raw := strings.TrimSpace(req.ActorID); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			Error(c, http.StatusBadRequest, "invalid actor_id", nil)
			return
		}
		actorID = parsed
	}

	trade, err := h.Service.Apply(c.Request.Context(), id, models.Action(req.Action), actorID, req.Fields)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Debug("apply action rejected",
				zap.String("trade_id", id.String()),
				zap.String("action", req.Action),
				zap.Error(err),
			)
		}
		Fail(c, err)
		return
	}
	Ok(c, trade, nil)
}

type diffSnapshotsRequest struct {
	Before map[string]any `json:"before"`
	After  map[string]any `json:"after"`
}

// @Summary Diff two trade-shaped snapshots
// @Description Compares two candidate field sets without persisting anything; date fields are excluded from the result.
// @Tags trades
// @Accept json
// @Param body body diffSnapshotsRequest true "before and after snapshots"
// @Success 200 {object} apiResponse
// @Router /api/trades/diff [post]
func (h *TradeHandler) diffSnapshots(c *gin.Context) {
	var req diffSnapshotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	Ok(c, h.Service.DiffSnapshots(req.Before, req.After), nil)
}

func tradeIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("trade_id")))
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid trade_id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func intQuery(c *gin.Context, key string, def int) int {
	if val := c.Query(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}
