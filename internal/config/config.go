// Package config provides configuration management for the application.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Gateway    GatewayConfig    `mapstructure:"gateway"`
	Receiver   ReceiverConfig   `mapstructure:"receiver"`
	WhatsApp   WhatsAppConfig   `mapstructure:"whatsapp"`
	Webhook    WebhookConfig    `mapstructure:"webhook"`
	Media      MediaConfig      `mapstructure:"media"`
	Middleware MiddlewareConfig `mapstructure:"middleware"`
}

// GatewayConfig holds the HTTP server settings for the send API.
type GatewayConfig struct {
	Port         string `mapstructure:"port"`
	APIKey       string `mapstructure:"api_key"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
}

// ReceiverConfig holds the HTTP server settings for the webhook receiver.
type ReceiverConfig struct {
	Port           string `mapstructure:"port"`
	ReadTimeout    int    `mapstructure:"read_timeout"`
	WriteTimeout   int    `mapstructure:"write_timeout"`
	MaxBodyBytes   int64  `mapstructure:"max_body_bytes"`
	RequestTimeout int    `mapstructure:"request_timeout"`
}

// WhatsAppConfig holds session settings for the WhatsApp client.
type WhatsAppConfig struct {
	SessionPath string `mapstructure:"session_path"`
	TestMode    bool   `mapstructure:"test_mode"`
}

// WebhookConfig holds settings for forwarding inbound events.
type WebhookConfig struct {
	URL            string               `mapstructure:"url"`
	Timeout        int                  `mapstructure:"timeout"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

type CircuitBreakerConfig struct {
	MaxRequests      uint32  `mapstructure:"max_requests"`
	Interval         int     `mapstructure:"interval"`
	Timeout          int     `mapstructure:"timeout"`
	FailureRatio     float64 `mapstructure:"failure_ratio"`
	ConsecutiveFails uint32  `mapstructure:"consecutive_fails"`
}

// MediaConfig holds settings for persisting received media.
type MediaConfig struct {
	Dir string `mapstructure:"dir"`
}

type MiddlewareConfig struct {
	RateLimit      int      `mapstructure:"rate_limit"`
	RateLimitBurst int      `mapstructure:"rate_limit_burst"`
	EnableCORS     bool     `mapstructure:"enable_cors"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func LoadConfig(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	viper.SetDefault("gateway.port", "3000")
	viper.SetDefault("gateway.read_timeout", 10)
	viper.SetDefault("gateway.write_timeout", 10)
	viper.SetDefault("receiver.port", "5000")
	viper.SetDefault("receiver.read_timeout", 30)
	viper.SetDefault("receiver.write_timeout", 30)
	viper.SetDefault("receiver.max_body_bytes", 50*1024*1024)
	viper.SetDefault("receiver.request_timeout", 30)
	viper.SetDefault("whatsapp.session_path", ".walink/session.db")
	viper.SetDefault("whatsapp.test_mode", false)
	viper.SetDefault("webhook.timeout", 30)
	viper.SetDefault("webhook.circuit_breaker.max_requests", 3)
	viper.SetDefault("webhook.circuit_breaker.interval", 60)
	viper.SetDefault("webhook.circuit_breaker.timeout", 60)
	viper.SetDefault("webhook.circuit_breaker.failure_ratio", 0.6)
	viper.SetDefault("webhook.circuit_breaker.consecutive_fails", 5)
	viper.SetDefault("media.dir", "./received_media")
	viper.SetDefault("middleware.rate_limit", 100)
	viper.SetDefault("middleware.rate_limit_burst", 1000)
	viper.SetDefault("middleware.enable_cors", true)
	viper.SetDefault("middleware.allowed_origins", []string{"*"})

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
