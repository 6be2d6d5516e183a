package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"tradedesk/internal/apperr"
	"tradedesk/internal/models"
)

func TestListByTradeUnknownTrade(t *testing.T) {
	repo := newStubRepo()
	svc := &TradeLogService{Repo: repo}

	_, err := svc.ListByTrade(context.Background(), uuid.New())
	require.True(t, apperr.IsNotFound(err), "got %v", err)
}

func TestListByTradeNewestFirst(t *testing.T) {
	repo := newStubRepo()
	trades := newTradeService(repo)
	logs := &TradeLogService{Repo: repo}
	ctx := context.Background()
	trade := seedTrade(t, repo, models.StateDraft)
	actor := uuid.New()

	_, err := trades.Apply(ctx, trade.ID, models.ActionSubmit, actor, nil)
	require.NoError(t, err)
	_, err = trades.Apply(ctx, trade.ID, models.ActionApprove, actor, nil)
	require.NoError(t, err)

	entries, err := logs.ListByTrade(ctx, trade.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		require.Equal(t, trade.ID, entry.TradeID)
	}
	require.False(t, entries[0].Timestamp.Before(entries[1].Timestamp))
}

func TestListByTradeEmptyTrail(t *testing.T) {
	repo := newStubRepo()
	svc := &TradeLogService{Repo: repo}
	trade := seedTrade(t, repo, models.StateDraft)

	entries, err := svc.ListByTrade(context.Background(), trade.ID)
	require.NoError(t, err)
	require.Empty(t, entries)
}
