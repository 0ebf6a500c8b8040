package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"btc-yardstick/internal/domain"

	"gopkg.in/yaml.v3"
)

const defaultStartDate = "2010-01-01"

type Config struct {
	DataDir     string
	CatalogFile string
	StartDate   time.Time

	HTTPPort    int
	RefreshCron string
	RunOnStart  bool

	SSHPort        int
	SSHHostKeyPath string

	TelegramBotToken string
	TelegramChatID   int64
}

func Load() *Config {
	cfg := &Config{
		CatalogFile:      os.Getenv("CATALOG_FILE"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
	}

	cfg.DataDir = strings.TrimSpace(os.Getenv("DATA_DIR"))
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}

	cfg.StartDate, _ = time.ParseInLocation("2006-01-02", defaultStartDate, time.UTC)
	if v := strings.TrimSpace(os.Getenv("START_DATE")); v != "" {
		if d, err := time.ParseInLocation("2006-01-02", v, time.UTC); err == nil {
			cfg.StartDate = d
		} else {
			log.Printf("Warning: invalid START_DATE=%q, defaulting to %s", v, defaultStartDate)
		}
	}

	cfg.HTTPPort = 8080
	if v := strings.TrimSpace(os.Getenv("HTTP_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HTTPPort = n
		}
	}

	// Seconds-resolution cron spec; default is daily at 07:00 UTC.
	cfg.RefreshCron = strings.TrimSpace(os.Getenv("REFRESH_CRON"))
	if cfg.RefreshCron == "" {
		cfg.RefreshCron = "0 0 7 * * *"
	}

	cfg.RunOnStart = strings.EqualFold(strings.TrimSpace(os.Getenv("RUN_ON_START")), "true")

	cfg.SSHPort = 2222
	if v := strings.TrimSpace(os.Getenv("SSH_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SSHPort = n
		}
	}

	cfg.SSHHostKeyPath = strings.TrimSpace(os.Getenv("SSH_HOST_KEY_PATH"))
	if cfg.SSHHostKeyPath == "" {
		cfg.SSHHostKeyPath = ".ssh/yardstick_ed25519"
	}

	if cfg.TelegramBotToken == "" {
		log.Println("Warning: TELEGRAM_BOT_TOKEN not set, notifications disabled")
	}
	if v := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.TelegramChatID = n
		} else {
			log.Printf("Warning: invalid TELEGRAM_CHAT_ID=%q, summaries will not be pushed", v)
		}
	}

	return cfg
}

// LoadCatalog returns the validated asset catalog. An empty path selects the
// built-in default; a YAML file replaces it entirely. Any validation failure
// is fatal to the caller, before a single fetch happens.
func LoadCatalog(path string) (domain.Catalog, error) {
	catalog := domain.DefaultCatalog()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog file: %w", err)
		}
		var loaded struct {
			Assets domain.Catalog `yaml:"assets"`
		}
		if err := yaml.Unmarshal(raw, &loaded); err != nil {
			return nil, fmt.Errorf("parse catalog file: %w", err)
		}
		catalog = loaded.Assets
	}

	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return catalog, nil
}
