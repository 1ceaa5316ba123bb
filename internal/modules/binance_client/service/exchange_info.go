package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"futures_bot/internal/models"

	"github.com/opentracing/opentracing-go"
)

// Instruments отдаёт полный список инструментов биржи с фильтрами.
// Публичный эндпоинт, подпись не нужна.
func (c *Client) Instruments(ctx context.Context) ([]models.Instrument, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "binance.exchangeInfo")
	defer span.Finish()

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+"/fapi/v1/exchangeInfo",
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, string(b))
	}

	var payload struct {
		Symbols []struct {
			Symbol  string `json:"symbol"`
			Status  string `json:"status"`
			Filters []struct {
				FilterType string `json:"filterType"`
				StepSize   string `json:"stepSize"`
				TickSize   string `json:"tickSize"`
			} `json:"filters"`
		} `json:"symbols"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	out := make([]models.Instrument, 0, len(payload.Symbols))
	for _, s := range payload.Symbols {
		inst := models.Instrument{
			Symbol:  s.Symbol,
			Status:  s.Status,
			Filters: make([]models.Filter, 0, len(s.Filters)),
		}
		for _, f := range s.Filters {
			inst.Filters = append(inst.Filters, models.Filter{
				Type:     f.FilterType,
				StepSize: f.StepSize,
				TickSize: f.TickSize,
			})
		}
		out = append(out, inst)
	}
	return out, nil
}
