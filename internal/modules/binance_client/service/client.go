package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"futures_bot/internal/modules/config"
)

// Client — REST-клиент Binance USDT-M futures. Подпись HMAC-SHA256
// по строке запроса, ключ в заголовке X-MBX-APIKEY.
type Client struct {
	http *http.Client

	baseURL   string
	apiKey    string
	apiSecret string

	// для тестов: подменяемые часы
	now func() time.Time
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		http:      &http.Client{Timeout: 10 * time.Second},
		baseURL:   cfg.Binance.BaseURL,
		apiKey:    cfg.Binance.APIKey,
		apiSecret: cfg.Binance.APISecret,
		now:       time.Now,
	}
}

func (c *Client) sign(query string) string {
	mac := hmac.New(sha256.New, []byte(c.apiSecret))
	mac.Write([]byte(query))
	return hex.EncodeToString(mac.Sum(nil))
}

// signedQuery добавляет timestamp и подпись к параметрам приватного эндпоинта.
func (c *Client) signedQuery(params url.Values) string {
	params.Set("timestamp", strconv.FormatInt(c.now().UnixMilli(), 10))
	q := params.Encode()
	return q + "&signature=" + c.sign(q)
}
