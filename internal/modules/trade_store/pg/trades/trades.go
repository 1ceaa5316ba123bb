package trades

import (
	"context"
	"fmt"

	"futures_bot/internal/models"

	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const insertSQL = `
INSERT INTO trades (trade_id, symbol, side, entry_price, quantity, sl, tp, opened_at, features, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

const closeSQL = `
UPDATE trades
SET status = $2, close_price = $3, close_via = $4, closed_at = $5
WHERE trade_id = $1`

const recentSQL = `
SELECT trade_id, symbol, side, entry_price, quantity, status
FROM trades
ORDER BY opened_at DESC
LIMIT $1`

// Trades implement db store
type Trades struct{}

func New() *Trades {
	return &Trades{}
}

func (t *Trades) Insert(ctx context.Context, tx pgx.Tx, tr *models.Trade) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("Trades.Insert: %w", err)
		}
	}()

	var data []byte
	data, err = sonic.Marshal(tr.Features)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, insertSQL,
		tr.ID, tr.Symbol, string(tr.Side),
		tr.Entry, tr.Qty, tr.SL, tr.TP,
		tr.OpenedAt, data, string(tr.Status),
	)
	return err
}

func (t *Trades) Close(ctx context.Context, tx pgx.Tx, tr *models.Trade) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("Trades.Close: %w", err)
		}
	}()

	_, err = tx.Exec(ctx, closeSQL,
		tr.ID, string(models.TradeClosed), nullableNumeric(tr.ClosePx), tr.CloseVia, tr.ClosedAt,
	)
	return err
}

// nullableNumeric: нулевая цена значит "неизвестна" — в nullable-колонку
// идёт NULL, а не фиктивный ноль.
func nullableNumeric(d decimal.Decimal) any {
	if d.IsZero() {
		return nil
	}
	return d
}

func (t *Trades) Recent(ctx context.Context, tx pgx.Tx, limit int) (out []*models.Trade, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("Trades.Recent: %w", err)
		}
	}()

	rows, err := tx.Query(ctx, recentSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			tr    models.Trade
			side  string
			state string
			entry decimal.Decimal
			qty   decimal.Decimal
		)
		if err = rows.Scan(&tr.ID, &tr.Symbol, &side, &entry, &qty, &state); err != nil {
			return nil, err
		}
		tr.Side = models.Side(side)
		tr.Status = models.TradeStatus(state)
		tr.Entry = entry
		tr.Qty = qty
		out = append(out, &tr)
	}
	return out, rows.Err()
}
