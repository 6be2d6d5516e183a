package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tradedesk/internal/models"
	"tradedesk/internal/repository"
)

// stubRepo is an in-memory repository.TradeRepository for exercising the
// services without a database. Reads hand out copies so service-side
// mutation only becomes visible through an explicit update.
type stubRepo struct {
	trades map[uuid.UUID]*models.Trade
	logs   []models.TradeLog

	clock time.Time

	// updateErr forces the next versioned update to fail.
	updateErr error
	// insertLogErr forces the next audit insert to fail.
	insertLogErr error
}

var _ repository.TradeRepository = (*stubRepo)(nil)

func newStubRepo() *stubRepo {
	return &stubRepo{
		trades: map[uuid.UUID]*models.Trade{},
		clock:  time.Date(2025, 11, 25, 8, 0, 0, 0, time.UTC),
	}
}

func (r *stubRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func copyTrade(t *models.Trade) *models.Trade {
	out := *t
	out.Underlying = append([]string(nil), t.Underlying...)
	return &out
}

func (r *stubRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (r *stubRepo) CreateTrade(ctx context.Context, item *models.Trade) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	now := r.tick()
	item.CreatedAt = now
	item.UpdatedAt = now
	r.trades[item.ID] = copyTrade(item)
	return nil
}

func (r *stubRepo) GetTradeByID(ctx context.Context, id uuid.UUID) (*models.Trade, error) {
	stored, ok := r.trades[id]
	if !ok {
		return nil, nil
	}
	return copyTrade(stored), nil
}

func (r *stubRepo) ListTrades(ctx context.Context, params repository.ListTradesParams) ([]models.Trade, error) {
	matched := r.matching(params)
	sort.Slice(matched, func(i, j int) bool {
		if params.Asc != nil && *params.Asc {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if params.Offset >= len(matched) {
		return nil, nil
	}
	matched = matched[params.Offset:]
	if params.Limit > 0 && params.Limit < len(matched) {
		matched = matched[:params.Limit]
	}
	return matched, nil
}

func (r *stubRepo) CountTrades(ctx context.Context, params repository.ListTradesParams) (int64, error) {
	return int64(len(r.matching(params))), nil
}

func (r *stubRepo) CountTradesByState(ctx context.Context) (map[models.TradeState]int64, error) {
	out := map[models.TradeState]int64{}
	for _, t := range r.trades {
		out[t.State]++
	}
	return out, nil
}

func (r *stubRepo) matching(params repository.ListTradesParams) []models.Trade {
	var out []models.Trade
	for _, t := range r.trades {
		if params.State != nil && t.State != *params.State {
			continue
		}
		out = append(out, *copyTrade(t))
	}
	return out
}

func (r *stubRepo) UpdateTradeVersionedTx(ctx context.Context, tx *gorm.DB, item *models.Trade, expectedVersion int64) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	stored, ok := r.trades[item.ID]
	if !ok || stored.Version != expectedVersion {
		return repository.ErrVersionConflict
	}
	updated := copyTrade(item)
	updated.CreatedAt = stored.CreatedAt
	r.trades[item.ID] = updated
	return nil
}

func (r *stubRepo) InsertTradeLogTx(ctx context.Context, tx *gorm.DB, item *models.TradeLog) error {
	if r.insertLogErr != nil {
		return r.insertLogErr
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.logs = append(r.logs, *item)
	return nil
}

func (r *stubRepo) ListTradeLogsByTradeID(ctx context.Context, tradeID uuid.UUID) ([]models.TradeLog, error) {
	var out []models.TradeLog
	for _, l := range r.logs {
		if l.TradeID == tradeID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (r *stubRepo) CountTradeLogsByTradeID(ctx context.Context, tradeID uuid.UUID) (int64, error) {
	var n int64
	for _, l := range r.logs {
		if l.TradeID == tradeID {
			n++
		}
	}
	return n, nil
}

func (r *stubRepo) logsFor(tradeID uuid.UUID) []models.TradeLog {
	out, _ := r.ListTradeLogsByTradeID(context.Background(), tradeID)
	return out
}
