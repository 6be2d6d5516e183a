package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tradedesk/internal/models"
)

// ErrVersionConflict is returned by UpdateTradeVersionedTx when the row's
// version no longer matches the expected value, i.e. a concurrent writer
// won the race.
var ErrVersionConflict = errors.New("trade version conflict")

// TradeRepository is the persistence collaborator of the transition engine:
// transactional load-by-id, save-with-conflict-detection, append-only audit
// insert, and ordered/paginated/filtered queries.
type TradeRepository interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	CreateTrade(ctx context.Context, item *models.Trade) error
	GetTradeByID(ctx context.Context, id uuid.UUID) (*models.Trade, error)
	ListTrades(ctx context.Context, params ListTradesParams) ([]models.Trade, error)
	CountTrades(ctx context.Context, params ListTradesParams) (int64, error)
	CountTradesByState(ctx context.Context) (map[models.TradeState]int64, error)

	// UpdateTradeVersionedTx persists item only if the stored row still
	// carries expectedVersion; otherwise ErrVersionConflict.
	UpdateTradeVersionedTx(ctx context.Context, tx *gorm.DB, item *models.Trade, expectedVersion int64) error

	InsertTradeLogTx(ctx context.Context, tx *gorm.DB, item *models.TradeLog) error
	ListTradeLogsByTradeID(ctx context.Context, tradeID uuid.UUID) ([]models.TradeLog, error)
	CountTradeLogsByTradeID(ctx context.Context, tradeID uuid.UUID) (int64, error)
}

type ListTradesParams struct {
	Limit   int
	Offset  int
	State   *models.TradeState
	OrderBy string
	Asc     *bool
}
