package service

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"tradedesk/internal/apperr"
	"tradedesk/internal/diff"
	"tradedesk/internal/models"
	"tradedesk/internal/repository"
	"tradedesk/internal/workflow"
)

// TradeService owns the trade lifecycle: creation as a draft, validated
// state transitions with their side effects, and the audit entry emitted for
// every successful transition.
type TradeService struct {
	Repo   repository.TradeRepository
	Logger *zap.Logger

	// Now overrides the clock in tests; nil means time.Now.
	Now func() time.Time
}

func (s *TradeService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

type CreateTradeInput struct {
	TradingEntity string           `json:"trading_entity"`
	Counterparty  string           `json:"counterparty"`
	Direction     string           `json:"direction"`
	Style         string           `json:"style"`
	Currency      string           `json:"currency"`
	Amount        *decimal.Decimal `json:"amount"`
	Underlying    []string         `json:"underlying"`
	TradeDate     *time.Time       `json:"trade_date"`
	ValueDate     *time.Time       `json:"value_date"`
	DeliveryDate  *time.Time       `json:"delivery_date"`
}

// Create validates the input and persists a new trade in draft state. A
// validation failure creates no row and no audit entry is written for
// creation.
func (s *TradeService) Create(ctx context.Context, in CreateTradeInput) (*models.Trade, error) {
	if strings.TrimSpace(in.TradingEntity) == "" {
		return nil, apperr.BadRequest("trading_entity is required")
	}
	if strings.TrimSpace(in.Counterparty) == "" {
		return nil, apperr.BadRequest("counterparty is required")
	}
	direction := models.TradeDirection(in.Direction)
	if err := models.ValidateDirection(direction); err != nil {
		return nil, apperr.BadRequest("%v", err)
	}
	if err := models.ValidateCurrency(in.Currency); err != nil {
		return nil, apperr.BadRequest("%v", err)
	}
	if in.Amount == nil {
		return nil, apperr.BadRequest("amount is required")
	}
	if err := models.ValidateUnderlying(in.Underlying); err != nil {
		return nil, apperr.BadRequest("%v", err)
	}
	if !compareDates(in.TradeDate, in.ValueDate) ||
		!compareDates(in.ValueDate, in.DeliveryDate) ||
		!compareDates(in.TradeDate, in.DeliveryDate) {
		return nil, apperr.BadRequest("dates must satisfy trade_date <= value_date <= delivery_date")
	}

	style := strings.TrimSpace(in.Style)
	if style == "" {
		style = "forward"
	}

	trade := &models.Trade{
		TradingEntity: in.TradingEntity,
		Counterparty:  in.Counterparty,
		Direction:     direction,
		Style:         style,
		Currency:      in.Currency,
		Amount:        in.Amount.Round(2),
		Underlying:    in.Underlying,
		TradeDate:     in.TradeDate,
		ValueDate:     in.ValueDate,
		DeliveryDate:  in.DeliveryDate,
		State:         models.StateDraft,
	}
	trade.NormalizeUnderlying()

	if err := s.Repo.CreateTrade(ctx, trade); err != nil {
		return nil, errors.Wrap(err, "create trade")
	}
	if s.Logger != nil {
		s.Logger.Info("trade created",
			zap.String("trade_id", trade.ID.String()),
			zap.String("state", string(trade.State)),
		)
	}
	return trade, nil
}

// Apply performs one state transition: it validates the action against the
// transition table and the required fields, applies field updates and
// action side effects, persists the trade guarded by its version, and
// appends an audit entry in the same transaction. Any validation failure
// aborts before any mutation is persisted.
func (s *TradeService) Apply(ctx context.Context, tradeID uuid.UUID, action models.Action, actorID uuid.UUID, fieldUpdates map[string]any) (*models.Trade, error) {
	trade, err := s.Repo.GetTradeByID(ctx, tradeID)
	if err != nil {
		return nil, errors.Wrap(err, "load trade")
	}
	if trade == nil {
		return nil, apperr.NotFound("trade %s not found", tradeID)
	}
	if actorID == uuid.Nil {
		return nil, apperr.BadRequest("actor_id is required")
	}
	if !models.ValidAction(action) {
		return nil, apperr.BadRequest("action should be one of %v", models.Actions())
	}
	if action == models.ActionUpdate && len(fieldUpdates) == 0 {
		return nil, apperr.BadRequest("fields are required for action %q", models.ActionUpdate)
	}
	if action == models.ActionBook {
		if _, ok := fieldUpdates["strike"]; !ok {
			return nil, apperr.BadRequest("strike must be present in fields for action %q", models.ActionBook)
		}
	}
	next, ok := workflow.Next(trade.State, action)
	if !ok {
		return nil, apperr.BadRequest("invalid action %q for state %q", action, trade.State)
	}

	before := trade.Snapshot()

	for name, value := range fieldUpdates {
		// Strike is only ever set through booking; under any other action a
		// supplied strike is ignored rather than applied.
		if name == "strike" && action != models.ActionBook {
			continue
		}
		if err := trade.SetField(name, value); err != nil {
			return nil, apperr.BadRequest("invalid field update: %v", err)
		}
	}

	trade.State = next
	now := s.now()
	switch action {
	case models.ActionApprove:
		trade.TradeDate = &now
	case models.ActionSend:
		trade.ValueDate = &now
	case models.ActionBook:
		trade.DeliveryDate = &now
	case models.ActionUpdate:
		trade.TradeDate = nil
		trade.ValueDate = nil
		trade.DeliveryDate = nil
	}
	trade.NormalizeUnderlying()

	expected := trade.Version
	trade.Version = expected + 1
	trade.UpdatedAt = now

	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.Repo.UpdateTradeVersionedTx(ctx, tx, trade, expected); err != nil {
			if errors.Is(err, repository.ErrVersionConflict) {
				return apperr.Conflict("trade %s was modified concurrently, retry with a fresh read", trade.ID)
			}
			return errors.Wrap(err, "persist trade")
		}

		// The audit entry is only written once the trade row is confirmed,
		// so a persistence failure can never leave an orphaned entry.
		after := trade.Snapshot()
		changes := diff.Compute(before, after)
		beforeRaw, _ := json.Marshal(before)
		afterRaw, _ := json.Marshal(after)
		diffRaw, _ := json.Marshal(changes)
		entry := &models.TradeLog{
			TradeID:     trade.ID,
			ActorID:     actorID,
			Action:      action,
			BeforeState: datatypes.JSON(beforeRaw),
			AfterState:  datatypes.JSON(afterRaw),
			Diff:        datatypes.JSON(diffRaw),
			Timestamp:   now,
		}
		if err := s.Repo.InsertTradeLogTx(ctx, tx, entry); err != nil {
			return errors.Wrap(err, "append audit entry")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.Info("trade transition applied",
			zap.String("trade_id", trade.ID.String()),
			zap.String("action", string(action)),
			zap.String("from", before["state"]),
			zap.String("to", string(trade.State)),
			zap.String("actor_id", actorID.String()),
		)
	}
	return trade, nil
}

// Get loads one trade by id.
func (s *TradeService) Get(ctx context.Context, id uuid.UUID) (*models.Trade, error) {
	trade, err := s.Repo.GetTradeByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "load trade")
	}
	if trade == nil {
		return nil, apperr.NotFound("trade %s not found", id)
	}
	return trade, nil
}

type ListTradesResult struct {
	Page       int
	PerPage    int
	Total      int64
	TotalPages int
	Items      []models.Trade
}

// List returns one page of trades, newest created first, optionally
// filtered by exact state.
func (s *TradeService) List(ctx context.Context, page, perPage int, state string) (ListTradesResult, error) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}

	var stateFilter *models.TradeState
	if strings.TrimSpace(state) != "" {
		st := models.TradeState(state)
		if !models.ValidState(st) {
			return ListTradesResult{}, apperr.BadRequest("unknown state %q", state)
		}
		stateFilter = &st
	}

	params := repository.ListTradesParams{
		Limit:   perPage,
		Offset:  (page - 1) * perPage,
		State:   stateFilter,
		OrderBy: "created_at",
		Asc:     boolPtr(false),
	}
	items, err := s.Repo.ListTrades(ctx, params)
	if err != nil {
		return ListTradesResult{}, errors.Wrap(err, "list trades")
	}
	total, err := s.Repo.CountTrades(ctx, params)
	if err != nil {
		return ListTradesResult{}, errors.Wrap(err, "count trades")
	}
	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	return ListTradesResult{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		Items:      items,
	}, nil
}

// DiffSnapshots compares two arbitrary trade-shaped snapshots without
// persisting anything, for pre-submission comparison.
func (s *TradeService) DiffSnapshots(a, b map[string]any) map[string]diff.Change {
	return diff.Compute(stringifySnapshot(a), stringifySnapshot(b))
}

func stringifySnapshot(snapshot map[string]any) map[string]string {
	out := make(map[string]string, len(snapshot))
	for field, value := range snapshot {
		out[field] = stringifyValue(value)
	}
	return out
}

func stringifyValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(raw)
	}
}

// compareDates reports a <= b, treating a missing side as unconstrained.
func compareDates(a, b *time.Time) bool {
	if a == nil || b == nil {
		return true
	}
	return !a.After(*b)
}

func boolPtr(v bool) *bool { return &v }
