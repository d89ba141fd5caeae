package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Telegram TelegramConfig `yaml:"telegram"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Check    CheckConfig    `yaml:"check"`
	Sources  SourcesConfig  `yaml:"sources"`
	LogLevel string         `yaml:"log_level"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

type TelegramConfig struct {
	Token  string `yaml:"token"`
	ChatID int64  `yaml:"chat_id"`
}

// RabbitMQConfig configures the optional notification event feed. An
// empty URL disables it.
type RabbitMQConfig struct {
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
	QueueName  string `yaml:"queue_name"`
}

type CheckConfig struct {
	IntervalMinutes      int           `yaml:"interval_minutes"`
	FetchLimit           int           `yaml:"fetch_limit"`
	InitialDelay         time.Duration `yaml:"initial_delay"`
	CleanupTime          string        `yaml:"cleanup_time"`
	RetentionDays        int           `yaml:"retention_days"`
	MessageDelay         time.Duration `yaml:"message_delay"`
	ErrorSummaryInterval time.Duration `yaml:"error_summary_interval"`
}

type SourcesConfig struct {
	YouTube   YouTubeConfig   `yaml:"youtube"`
	Instagram InstagramConfig `yaml:"instagram"`
	RSS       RSSConfig       `yaml:"rss"`
}

type YouTubeConfig struct {
	Enabled   bool   `yaml:"enabled"`
	APIKey    string `yaml:"api_key"`
	ChannelID string `yaml:"channel_id"`
}

type InstagramConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Username  string `yaml:"username"`
	SessionID string `yaml:"session_id"`
}

type RSSConfig struct {
	Enabled bool   `yaml:"enabled"`
	FeedURL string `yaml:"feed_url"`
	Title   string `yaml:"title"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "content_watcher"
	}
	if c.RabbitMQ.RoutingKey == "" {
		c.RabbitMQ.RoutingKey = "notifications"
	}
	if c.RabbitMQ.QueueName == "" {
		c.RabbitMQ.QueueName = "sent_notifications"
	}
	if c.Check.IntervalMinutes == 0 {
		c.Check.IntervalMinutes = 30
	}
	if c.Check.FetchLimit == 0 {
		c.Check.FetchLimit = 10
	}
	if c.Check.InitialDelay == 0 {
		c.Check.InitialDelay = 10 * time.Second
	}
	if c.Check.CleanupTime == "" {
		c.Check.CleanupTime = "04:00"
	}
	if c.Check.RetentionDays == 0 {
		c.Check.RetentionDays = 30
	}
	if c.Check.MessageDelay == 0 {
		c.Check.MessageDelay = 2 * time.Second
	}
	if c.Check.ErrorSummaryInterval == 0 {
		c.Check.ErrorSummaryInterval = time.Hour
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
