package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	API struct {
		BaseURL string `env:"BASE_URL,required,notEmpty"`
		Timeout int    `env:"TIMEOUT" envDefault:"5000"` // 밀리초
	} `envPrefix:"API_"`
	Storage struct {
		Backend   string `env:"BACKEND" envDefault:"redis"` // redis | memory
		KeyPrefix string `env:"KEY_PREFIX" envDefault:"julge:"`
	} `envPrefix:"STORAGE_"`
	Redis struct {
		Host             string `env:"HOST" envDefault:"localhost"`
		Port             int    `env:"PORT" envDefault:"6379"`
		Password         string `env:"PASSWORD"`
		DB               int    `env:"DB" envDefault:"0"`
		ConnectTimeout   int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		OperationTimeout int    `env:"OPERATION_TIMEOUT" envDefault:"3"`
	} `envPrefix:"REDIS_"`
	Session struct {
		RefreshMinInterval int `env:"REFRESH_MIN_INTERVAL" envDefault:"30"`
		RefreshTimeout     int `env:"REFRESH_TIMEOUT" envDefault:"5"`
	} `envPrefix:"SESSION_"`
	Cache struct {
		ProfileStaleTime int `env:"PROFILE_STALE_TIME" envDefault:"300"` // 5 분
	} `envPrefix:"CACHE_"`
	Poller struct {
		Enabled         bool `env:"ENABLED" envDefault:"true"`
		Interval        int  `env:"INTERVAL" envDefault:"60000"` // 밀리초
		VisibilityAware bool `env:"VISIBILITY_AWARE" envDefault:"true"`
		PageSize        int  `env:"PAGE_SIZE" envDefault:"50"`
	} `envPrefix:"POLLER_"`
	Pagination struct {
		NoticeLimit      int `env:"NOTICE_LIMIT" envDefault:"6"`
		RecommendLimit   int `env:"RECOMMEND_LIMIT" envDefault:"9"`
		ApplicationLimit int `env:"APPLICATION_LIMIT" envDefault:"5"`
		ShopNoticeLimit  int `env:"SHOP_NOTICE_LIMIT" envDefault:"6"`
		ApplicantLimit   int `env:"APPLICANT_LIMIT" envDefault:"5"`
	} `envPrefix:"PAGINATION_"`
	RabbitMQ struct {
		DSN            string `env:"DSN"` // 비어 있으면 알림 릴레이를 끈다
		Queue          string `env:"QUEUE" envDefault:"alert_queue"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Email struct {
		SMTP struct {
			Username    string `env:"USERNAME"`
			Password    string `env:"PASSWORD"`
			Host        string `env:"HOST"`
			Port        int    `env:"PORT" envDefault:"465"`
			DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
		} `envPrefix:"SMTP_"`
	} `envPrefix:"EMAIL_"`
	Seed struct {
		Password    string `env:"PASSWORD" envDefault:"julge1234!"`
		EmailDomain string `env:"EMAIL_DOMAIN" envDefault:"example.com"`
	} `envPrefix:"SEED_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// 첫 번째 오류만 돌려줘야 로그가 읽기 쉽다
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	return cfg, nil
}

func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.API.Timeout) * time.Millisecond
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Poller.Interval) * time.Millisecond
}

func (c *Config) RedisTimeout() time.Duration {
	return time.Duration(c.Redis.OperationTimeout) * time.Second
}
