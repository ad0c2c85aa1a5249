package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ModePolling = "polling"
	ModeWebhook = "webhook"

	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

var ErrInvalidConfig = errors.New("invalid config")

type TelegramBot struct {
	Token        string        `yaml:"token"`
	Mode         string        `yaml:"mode"`
	WebhookURL   string        `yaml:"webhook_url"`
	ListenAddr   string        `yaml:"listen_addr"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

type Server struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

// Quiz - параметры викторин по умолчанию
type Quiz struct {
	DefaultTimeLimit       int           `yaml:"default_time_limit"`
	DefaultNegativeMarking float64       `yaml:"default_negative_marking"`
	AdvanceDelay           time.Duration `yaml:"advance_delay"`
}

type Redis struct {
	Addr       string        `yaml:"addr"`
	Password   string        `yaml:"password"`
	DB         int           `yaml:"db"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

// Storage выбирает хранилище викторин и результатов.
// Redis, если задан адрес, дополнительно хранит отметки активных попыток.
type Storage struct {
	Type        string `yaml:"type"`
	DatabaseURL string `yaml:"database_url"`
	Redis       Redis  `yaml:"redis"`
}

type Report struct {
	FontDir string `yaml:"font_dir"`
}

type Config struct {
	TelegramBot TelegramBot `yaml:"telegram_bot"`
	Server      Server      `yaml:"server"`
	Quiz        Quiz        `yaml:"quiz"`
	Admins      []int64     `yaml:"admins"`
	Storage     Storage     `yaml:"storage"`
	Report      Report      `yaml:"report"`
	Debug       bool        `yaml:"debug"`
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		TelegramBot: TelegramBot{
			Mode:         ModePolling,
			ListenAddr:   ":8443",
			PollInterval: 10 * time.Second,
		},
		Server: Server{Host: "0.0.0.0", Port: "8080"},
		Quiz: Quiz{
			DefaultTimeLimit:       60,
			DefaultNegativeMarking: 0.25,
			AdvanceDelay:           2 * time.Second,
		},
		Storage: Storage{
			Type:  StorageMemory,
			Redis: Redis{SessionTTL: time.Hour},
		},
		Report: Report{FontDir: "fonts"},
	}
}

// LoadConfig читает YAML-файл (если путь не пустой), затем .env и переменные окружения,
// и проверяет результат. Переменные окружения имеют приоритет над файлом.
func LoadConfig(filename string) (*Config, error) {
	cfg, err := Decode(filename)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode собирает конфигурацию так же, как LoadConfig, но без проверки.
// Используется командами, которым не нужен токен бота.
func Decode(filename string) (*Config, error) {
	cfg := Default()

	if filename != "" {
		f, err := os.Open(filename)
		if err != nil {
			return nil, err
		}
		defer func(f *os.File) {
			err := f.Close()
			if err != nil {
				fmt.Println("f.Close() failed ", err)
			}
		}(f)

		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", filename, err)
		}
	}

	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.TelegramBot.Token = v
	}
	if v := os.Getenv("BOT_MODE"); v != "" {
		c.TelegramBot.Mode = v
	}
	if v := os.Getenv("WEBHOOK_URL"); v != "" {
		c.TelegramBot.WebhookURL = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.TelegramBot.ListenAddr = v
	}
	if v := os.Getenv("STORAGE_TYPE"); v != "" {
		c.Storage.Type = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Storage.DatabaseURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Storage.Redis.Addr = v
	}
	if v := os.Getenv("DEBUG"); v != "" {
		c.Debug = v == "true" || v == "1"
	}
	if v := os.Getenv("ADMIN_USERS"); v != "" {
		ids, err := parseIDs(v)
		if err != nil {
			return fmt.Errorf("%w: ADMIN_USERS: %w", ErrInvalidConfig, err)
		}
		c.Admins = ids
	}
	return nil
}

func parseIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Validate проверяет обязательные поля и диапазоны значений
func (c *Config) Validate() error {
	if c.TelegramBot.Token == "" {
		return fmt.Errorf("%w: telegram bot token is required", ErrInvalidConfig)
	}
	switch c.TelegramBot.Mode {
	case ModePolling, ModeWebhook:
	default:
		return fmt.Errorf("%w: unknown bot mode %q", ErrInvalidConfig, c.TelegramBot.Mode)
	}
	if c.Quiz.DefaultTimeLimit < 10 || c.Quiz.DefaultTimeLimit > 300 {
		return fmt.Errorf("%w: default time limit must be between 10 and 300 seconds", ErrInvalidConfig)
	}
	if c.Quiz.DefaultNegativeMarking < 0 || c.Quiz.DefaultNegativeMarking > 1 {
		return fmt.Errorf("%w: default negative marking must be between 0 and 1", ErrInvalidConfig)
	}
	if c.Quiz.AdvanceDelay < 0 {
		return fmt.Errorf("%w: advance delay must not be negative", ErrInvalidConfig)
	}
	switch c.Storage.Type {
	case StorageMemory:
	case StoragePostgres:
		if c.Storage.DatabaseURL == "" {
			return fmt.Errorf("%w: postgres storage requires database_url", ErrInvalidConfig)
		}
	case StorageRedis:
		if c.Storage.Redis.Addr == "" {
			return fmt.Errorf("%w: redis storage requires redis addr", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage type %q", ErrInvalidConfig, c.Storage.Type)
	}
	return nil
}

// IsAdmin сообщает, входит ли пользователь в список администраторов
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.Admins {
		if id == userID {
			return true
		}
	}
	return false
}

// HTTPAddr - адрес HTTP-сервера
func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
