package service

import (
	"futures_bot/internal/modules/config"

	"github.com/gorilla/websocket"
)

type Client struct {
	cfg      *config.Config
	wsDialer *websocket.Dialer
	wsURL    string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		cfg:      cfg,
		wsDialer: &websocket.Dialer{},
		wsURL:    cfg.Binance.WSURL,
	}
}
