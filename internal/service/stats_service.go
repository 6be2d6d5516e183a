package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"tradedesk/internal/models"
	"tradedesk/internal/repository"
)

// WorkflowStatsService periodically logs how many trades sit in each
// lifecycle state. Registered on the cron runner as an operational
// heartbeat; it never mutates anything.
type WorkflowStatsService struct {
	Repo   repository.TradeRepository
	Logger *zap.Logger
}

func (s *WorkflowStatsService) LogStateCounts(ctx context.Context) error {
	counts, err := s.Repo.CountTradesByState(ctx)
	if err != nil {
		return errors.Wrap(err, "count trades by state")
	}
	fields := make([]zap.Field, 0, len(models.States()))
	var total int64
	for _, state := range models.States() {
		n := counts[state]
		total += n
		fields = append(fields, zap.Int64(string(state), n))
	}
	fields = append(fields, zap.Int64("total", total))
	if s.Logger != nil {
		s.Logger.Info("trade state counts", fields...)
	}
	return nil
}
