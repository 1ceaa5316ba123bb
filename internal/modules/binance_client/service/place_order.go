package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"futures_bot/internal/models"

	"github.com/bytedance/sonic"
	"github.com/opentracing/opentracing-go"
	"github.com/shopspring/decimal"
)

type OrderResult struct {
	OrderID     int64  `json:"orderId"`
	Symbol      string `json:"symbol"`
	Status      string `json:"status"`
	AvgPrice    string `json:"avgPrice"`
	ExecutedQty string `json:"executedQty"`
}

// FillPrice — средняя цена исполнения, если биржа её сообщила.
// Binance для только что размещённого MARKET-ордера может отдать "0" —
// тогда цену закрытия восстанавливает closeprice.Resolver.
func (r *OrderResult) FillPrice() (decimal.Decimal, bool) {
	if r.AvgPrice == "" {
		return decimal.Decimal{}, false
	}
	px, err := decimal.NewFromString(r.AvgPrice)
	if err != nil || px.Sign() <= 0 {
		return decimal.Decimal{}, false
	}
	return px, true
}

// PlaceMarket размещает рыночный ордер. Количество уже должно быть
// приведено к шагу LOT_SIZE — иначе биржа отклонит запрос.
func (c *Client) PlaceMarket(
	ctx context.Context,
	symbol string,
	side models.Side,
	qty decimal.Decimal,
	reduceOnly bool,
) (*OrderResult, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "binance.order")
	defer span.Finish()

	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("side", string(side))
	params.Set("type", "MARKET")
	params.Set("quantity", qty.String())
	if reduceOnly {
		params.Set("reduceOnly", "true")
	}

	return c.postOrder(ctx, params)
}

// PlaceStopMarket вешает стоп-ордер на закрытие позиции: STOP_MARKET для SL,
// TAKE_PROFIT_MARKET для TP. closePosition=true — закрыть всю позицию по триггеру.
func (c *Client) PlaceStopMarket(
	ctx context.Context,
	symbol string,
	side models.Side,
	stopPrice decimal.Decimal,
	takeProfit bool,
) (*OrderResult, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "binance.orderAlgo")
	defer span.Finish()

	ordType := "STOP_MARKET"
	if takeProfit {
		ordType = "TAKE_PROFIT_MARKET"
	}

	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("side", string(side))
	params.Set("type", ordType)
	params.Set("stopPrice", stopPrice.String())
	params.Set("closePosition", "true")
	params.Set("workingType", "MARK_PRICE")

	return c.postOrder(ctx, params)
}

func (c *Client) postOrder(ctx context.Context, params url.Values) (*OrderResult, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/fapi/v1/order?"+c.signedQuery(params),
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

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		var apiErr struct {
			Code int    `json:"code"`
			Msg  string `json:"msg"`
		}
		if sonic.Unmarshal(body, &apiErr) == nil && apiErr.Code != 0 {
			return nil, fmt.Errorf("binance error %d: %s", apiErr.Code, apiErr.Msg)
		}
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, string(body))
	}

	var res OrderResult
	if err := sonic.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &res, nil
}
