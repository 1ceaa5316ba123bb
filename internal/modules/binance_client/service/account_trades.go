package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"futures_bot/internal/models"

	"github.com/opentracing/opentracing-go"
	"github.com/shopspring/decimal"
)

// AccountTrades — история исполненных сделок аккаунта по символу.
// Время у биржи в миллисекундах эпохи.
func (c *Client) AccountTrades(ctx context.Context, symbol string) ([]models.Fill, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "binance.userTrades")
	defer span.Finish()

	params := url.Values{}
	params.Set("symbol", symbol)

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+"/fapi/v1/userTrades?"+c.signedQuery(params),
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-MBX-APIKEY", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, string(b))
	}

	var rows []struct {
		Price string `json:"price"`
		Time  int64  `json:"time"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	fills := make([]models.Fill, 0, len(rows))
	for _, row := range rows {
		px, err := decimal.NewFromString(row.Price)
		if err != nil {
			return nil, fmt.Errorf("price parse: %w (%q)", err, row.Price)
		}
		fills = append(fills, models.Fill{
			Price: px,
			Time:  time.UnixMilli(row.Time),
		})
	}
	return fills, nil
}
