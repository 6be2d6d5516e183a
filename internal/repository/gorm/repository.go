package gormrepository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tradedesk/internal/models"
	"tradedesk/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

func (s *Store) CreateTrade(ctx context.Context, item *models.Trade) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetTradeByID(ctx context.Context, id uuid.UUID) (*models.Trade, error) {
	if s == nil || s.db == nil || id == uuid.Nil {
		return nil, nil
	}
	var item models.Trade
	err := s.db.WithContext(ctx).Model(&models.Trade{}).Where("id = ?", id).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListTrades(ctx context.Context, params repository.ListTradesParams) ([]models.Trade, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := applyTradeFilters(s.db.WithContext(ctx).Model(&models.Trade{}), params)
	query = applyOrder(query, params.OrderBy, params.Asc, "created_at")
	limit := normalizeLimit(params.Limit, 50)
	offset := normalizeOffset(params.Offset)
	var items []models.Trade
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountTrades(ctx context.Context, params repository.ListTradesParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	query := applyTradeFilters(s.db.WithContext(ctx).Model(&models.Trade{}), params)
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) CountTradesByState(ctx context.Context) (map[models.TradeState]int64, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	type row struct {
		State models.TradeState
		N     int64
	}
	var rows []row
	err := s.db.WithContext(ctx).
		Model(&models.Trade{}).
		Select("state, COUNT(*) AS n").
		Group("state").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[models.TradeState]int64, len(rows))
	for _, r := range rows {
		out[r.State] = r.N
	}
	return out, nil
}

// UpdateTradeVersionedTx writes every column of item guarded by the version
// the caller read. Zero rows affected means another transition won the race.
func (s *Store) UpdateTradeVersionedTx(ctx context.Context, tx *gorm.DB, item *models.Trade, expectedVersion int64) error {
	if tx == nil || item == nil {
		return nil
	}
	res := tx.WithContext(ctx).
		Model(item).
		Where("version = ?", expectedVersion).
		Select("*").
		Omit("id", "created_at").
		Updates(item)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrVersionConflict
	}
	return nil
}

func (s *Store) InsertTradeLogTx(ctx context.Context, tx *gorm.DB, item *models.TradeLog) error {
	if tx == nil || item == nil {
		return nil
	}
	return tx.WithContext(ctx).Create(item).Error
}

func (s *Store) ListTradeLogsByTradeID(ctx context.Context, tradeID uuid.UUID) ([]models.TradeLog, error) {
	if s == nil || s.db == nil || tradeID == uuid.Nil {
		return nil, nil
	}
	var items []models.TradeLog
	err := s.db.WithContext(ctx).
		Model(&models.TradeLog{}).
		Where("trade_id = ?", tradeID).
		Order("timestamp desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountTradeLogsByTradeID(ctx context.Context, tradeID uuid.UUID) (int64, error) {
	if s == nil || s.db == nil || tradeID == uuid.Nil {
		return 0, nil
	}
	var total int64
	err := s.db.WithContext(ctx).
		Model(&models.TradeLog{}).
		Where("trade_id = ?", tradeID).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func applyTradeFilters(query *gorm.DB, params repository.ListTradesParams) *gorm.DB {
	if params.State != nil && strings.TrimSpace(string(*params.State)) != "" {
		query = query.Where("state = ?", *params.State)
	}
	return query
}

func applyOrder(query *gorm.DB, orderBy string, asc *bool, fallback string) *gorm.DB {
	column := strings.TrimSpace(orderBy)
	if column == "" {
		column = fallback
	}
	direction := "desc"
	if asc != nil && *asc {
		direction = "asc"
	}
	return query.Order(column + " " + direction)
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > 500 {
		return 500
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
