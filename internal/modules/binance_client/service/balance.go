package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/opentracing/opentracing-go"
	"github.com/shopspring/decimal"
)

// USDTBalance — доступный баланс фьючерсного кошелька в USDT.
func (c *Client) USDTBalance(ctx context.Context) (decimal.Decimal, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "binance.balance")
	defer span.Finish()

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+"/fapi/v2/balance?"+c.signedQuery(url.Values{}),
		nil,
	)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-MBX-APIKEY", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(resp.Body)
		return decimal.Decimal{}, fmt.Errorf("http %d: %s", resp.StatusCode, string(b))
	}

	var rows []struct {
		Asset   string `json:"asset"`
		Balance string `json:"balance"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return decimal.Decimal{}, fmt.Errorf("decode: %w", err)
	}

	for _, row := range rows {
		if row.Asset != "USDT" {
			continue
		}
		bal, err := decimal.NewFromString(row.Balance)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("balance parse: %w (%q)", err, row.Balance)
		}
		return bal, nil
	}
	return decimal.Decimal{}, fmt.Errorf("no USDT balance in response")
}
