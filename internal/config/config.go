package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken     string        `envconfig:"BOT_TOKEN" required:"true"`
	AlertChatID  int64         `envconfig:"ALERT_CHAT_ID" required:"true"` // channel receiving spawn alerts
	DBPath       string        `envconfig:"DB_PATH" default:"./data/botboss.db"`
	Timezone     string        `envconfig:"BOT_TZ" default:"Asia/Bangkok"` // civil timezone for all spawn math
	ScanInterval time.Duration `envconfig:"SCAN_INTERVAL" default:"60s"`
	AlertWindow  time.Duration `envconfig:"ALERT_WINDOW" default:"12m"`
	CatalogPath  string        `envconfig:"CATALOG_PATH" default:""` // optional YAML boss catalogue
	LogLevel     string        `envconfig:"LOG_LEVEL" default:"info"`
	HTTPAddr     string        `envconfig:"HTTP_ADDR" default:":8080"` // healthz
}

// Load reads environment variables into Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
