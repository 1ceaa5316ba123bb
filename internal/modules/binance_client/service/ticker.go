package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
)

// LastPrice — последняя цена по символу.
func (c *Client) LastPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+"/fapi/v1/ticker/price?symbol="+url.QueryEscape(symbol),
		nil,
	)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(resp.Body)
		return decimal.Decimal{}, fmt.Errorf("http %d: %s", resp.StatusCode, string(b))
	}

	var payload struct {
		Price string `json:"price"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Decimal{}, fmt.Errorf("decode: %w", err)
	}

	px, err := decimal.NewFromString(payload.Price)
	if err != nil || px.Sign() <= 0 {
		return decimal.Decimal{}, fmt.Errorf("price parse: %v (%q)", err, payload.Price)
	}
	return px, nil
}
