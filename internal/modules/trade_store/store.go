package trade_store

import (
	"context"
	"fmt"

	"futures_bot/internal/models"
	"futures_bot/internal/modules/trade_store/pg/trades"
	"futures_bot/pkg/db"

	"github.com/jackc/pgx/v5"
)

// Store — журнал сделок в Postgres: то, что раньше писалось в CSV,
// плюс способ разрешения цены закрытия.
type Store struct {
	db     *db.PgTxManager
	trades *trades.Trades
}

func New(manager *db.PgTxManager) *Store {
	return &Store{
		db:     manager,
		trades: trades.New(),
	}
}

// Journal пишет открытую сделку.
func (s *Store) Journal(ctx context.Context, tr *models.Trade) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("trade_store.Journal: %w", err)
		}
	}()
	return s.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		return s.trades.Insert(ctxTx, tx, tr)
	})
}

// MarkClosed фиксирует закрытие: цена, способ разрешения, время.
func (s *Store) MarkClosed(ctx context.Context, tr *models.Trade) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("trade_store.MarkClosed: %w", err)
		}
	}()
	return s.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		return s.trades.Close(ctxTx, tx, tr)
	})
}

func (s *Store) Recent(ctx context.Context, limit int) (out []*models.Trade, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("trade_store.Recent: %w", err)
		}
	}()
	err = s.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		out, err = s.trades.Recent(ctxTx, tx, limit)
		return err
	})
	return out, err
}
