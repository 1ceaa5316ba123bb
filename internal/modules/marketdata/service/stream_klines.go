package service

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"futures_bot/internal/models"
	"futures_bot/pkg/logger"

	"github.com/gorilla/websocket"
)

// StreamKlines стримит ЗАКРЫТЫЕ свечи по всем символам одним
// combined-стримом. Реконнект с бэкоффом, канал закрывается по ctx.
func (c *Client) StreamKlines(ctx context.Context, symbols []string, interval string) <-chan models.CandleTick {
	out := make(chan models.CandleTick)

	streams := make([]string, 0, len(symbols))
	for _, s := range symbols {
		streams = append(streams, strings.ToLower(s)+"@kline_"+interval)
	}
	url := c.wsURL + "?streams=" + strings.Join(streams, "/")

	go func() {
		defer close(out)
		retry := 0
		for {
			conn, _, err := c.wsDialer.Dial(url, nil)
			if err != nil {
				retry++
				if retry > 8 {
					logger.Error("marketdata: ws dial failed for good: %v", err)
					return
				}
				select {
				case <-ctx.Done():
					return
				case <-time.After(time.Duration(300*retry) * time.Millisecond):
				}
				continue
			}
			retry = 0

			stopPing := make(chan struct{})
			go func() {
				t := time.NewTicker(3 * time.Minute)
				defer t.Stop()
				for {
					select {
					case <-stopPing:
						return
					case <-ctx.Done():
						return
					case <-t.C:
						_ = conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
					}
				}
			}()

			c.readLoop(ctx, conn, out)
			close(stopPing)
			_ = conn.Close()

			select {
			case <-ctx.Done():
				return
			default:
				time.Sleep(1 * time.Second)
			}
		}
	}()

	return out
}

func (c *Client) readLoop(ctx context.Context, conn wsConn, out chan<- models.CandleTick) {
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var frame struct {
			Data struct {
				K struct {
					Symbol   string `json:"s"`
					Interval string `json:"i"`
					Open     string `json:"o"`
					High     string `json:"h"`
					Low      string `json:"l"`
					Close    string `json:"c"`
					Closed   bool   `json:"x"`
					EndTime  int64  `json:"T"`
				} `json:"k"`
			} `json:"data"`
		}
		if err := json.Unmarshal(msg, &frame); err != nil {
			continue
		}
		k := frame.Data.K
		if !k.Closed || k.Symbol == "" {
			// интересуют только закрытые свечи
			continue
		}

		tick := models.CandleTick{
			Symbol:    k.Symbol,
			Timeframe: k.Interval,
			Open:      parseF(k.Open),
			High:      parseF(k.High),
			Low:       parseF(k.Low),
			Close:     parseF(k.Close),
			Time:      time.UnixMilli(k.EndTime),
		}
		if tick.Close == 0 {
			continue
		}

		select {
		case <-ctx.Done():
			return
		case out <- tick:
		}
	}
}

// wsConn — минимум от *websocket.Conn, в тестах подменяем фейком.
type wsConn interface {
	ReadMessage() (int, []byte, error)
}

func parseF(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
