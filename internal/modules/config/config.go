package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	tokenTelegramENV  = "TELEGRAM_TOKEN"
	chatTelegramENV   = "TELEGRAM_CHAT_ID"
	databaseDSN       = "DATABASE_DSN"
	binanceKeyENV     = "BINANCE_API_KEY"
	binanceSecretENV  = "BINANCE_API_SECRET"
)

// Config ...
type Config struct {
	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`
	DB string `yaml:"db_dsn"`

	Binance struct {
		APIKey    string `yaml:"api_key"`
		APISecret string `yaml:"api_secret"`
		BaseURL   string `yaml:"base_url"` // testnet: https://testnet.binancefuture.com
		WSURL     string `yaml:"ws_url"`
	} `yaml:"binance"`

	Jaeger struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"jaeger"`

	Trading Trading `yaml:"trading"`
}

type Trading struct {
	Symbols   []string `yaml:"symbols"`
	Timeframe string   `yaml:"timeframe"`

	// Сколько от депозита мы готовы потерять по СТОПУ, а не по ликвидации
	RiskPct float64 `yaml:"risk_pct"` // например 1.0 => 1% equity
	// расстояние до SL от цены, напр. 0.5 => 0.5%
	StopPct float64 `yaml:"stop_pct"`
	// tp = entry ± RR*dist до SL
	TakeProfitRR float64 `yaml:"take_profit_rr"`
	// минимальная дистанция TP/SL от входа, доля цены (0.04 => 4%)
	MinGap float64 `yaml:"min_gap"`
	// стоп на всю сессию: просадка от стартового баланса
	MaxDrawdown float64 `yaml:"max_drawdown"` // 0.2 => 20%

	Leverage         int `yaml:"leverage"`
	MaxOpenPositions int `yaml:"max_open_positions"`

	EMAShort      int     `yaml:"ema_short"`
	EMALong       int     `yaml:"ema_long"`
	RSIPeriod     int     `yaml:"rsi_period"`
	RSIOverbought float64 `yaml:"rsi_overbought"`
	RSIOversold   float64 `yaml:"rsi_oversold"`
}

func NewConfig() (*Config, error) {

	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = "values_local.yaml"
	}
	file, err := os.Open("configs/" + configFileName)
	if err != nil {
		log.Fatalf("Failed to open config file: %v", err)
	}

	defer func() {
		_ = file.Close()
	}()

	decoder := yaml.NewDecoder(file)
	config := Config{
		Trading: Trading{
			Symbols:   strings.Split(getenvDefault("SYMBOLS", "BTCUSDT"), ","),
			Timeframe: getenvDefault("TIMEFRAME", "1m"),

			RiskPct:      floatFromEnv("RISK_PCT", 1.0),
			StopPct:      floatFromEnv("STOP_PCT", 0.5),
			TakeProfitRR: floatFromEnv("TAKE_PROFIT_RR", 3.0),
			MinGap:       floatFromEnv("MIN_GAP", 0.04),
			MaxDrawdown:  floatFromEnv("MAX_DRAWDOWN", 0.2),

			Leverage:         intFromEnv("LEVERAGE", 5),
			MaxOpenPositions: intFromEnv("MAX_OPEN_POSITIONS", 10),

			EMAShort:      intFromEnv("EMA_SHORT", 9),
			EMALong:       intFromEnv("EMA_LONG", 21),
			RSIPeriod:     intFromEnv("RSI_PERIOD", 14),
			RSIOverbought: floatFromEnv("RSI_OVERBOUGHT", 70),
			RSIOversold:   floatFromEnv("RSI_OVERSOLD", 30),
		},
	}
	err = decoder.Decode(&config)
	if err != nil {
		log.Fatalf("Failed to decode config file: %v", err)
	}

	if config.Binance.BaseURL == "" {
		config.Binance.BaseURL = "https://fapi.binance.com"
	}
	if config.Binance.WSURL == "" {
		config.Binance.WSURL = "wss://fstream.binance.com/stream"
	}

	// секреты — только из окружения, yaml их может не содержать
	if token := os.Getenv(tokenTelegramENV); token != "" {
		config.Telegram.Token = token
	}
	if chat := os.Getenv(chatTelegramENV); chat != "" {
		if id, err := strconv.ParseInt(chat, 10, 64); err == nil {
			config.Telegram.ChatID = id
		}
	}
	if dsn := os.Getenv(databaseDSN); dsn != "" {
		config.DB = dsn
	}
	if key := os.Getenv(binanceKeyENV); key != "" {
		config.Binance.APIKey = key
	}
	if secret := os.Getenv(binanceSecretENV); secret != "" {
		config.Binance.APISecret = secret
	}

	return &config, nil
}

func intFromEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func floatFromEnv(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
