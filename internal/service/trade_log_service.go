package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"tradedesk/internal/apperr"
	"tradedesk/internal/models"
	"tradedesk/internal/repository"
)

// TradeLogService exposes the audit trail of a trade.
type TradeLogService struct {
	Repo repository.TradeRepository
}

// ListByTrade returns the trade's audit entries, newest timestamp first.
func (s *TradeLogService) ListByTrade(ctx context.Context, tradeID uuid.UUID) ([]models.TradeLog, error) {
	trade, err := s.Repo.GetTradeByID(ctx, tradeID)
	if err != nil {
		return nil, errors.Wrap(err, "load trade")
	}
	if trade == nil {
		return nil, apperr.NotFound("trade %s not found", tradeID)
	}
	items, err := s.Repo.ListTradeLogsByTradeID(ctx, tradeID)
	if err != nil {
		return nil, errors.Wrap(err, "list trade logs")
	}
	return items, nil
}
