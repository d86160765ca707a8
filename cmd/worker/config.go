package main

import (
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"dashboard-backend/internal/config"
	"dashboard-backend/internal/shared"
)

// Config holds worker settings derived from the application config.
type Config struct {
	Redis       asynq.RedisClientOpt
	SMTPHost    string
	SMTPPort    string
	SMTPFrom    string
	Concurrency int
	Queues      map[string]int
	HealthAddr  string
}

// loadConfig maps the shared config onto the worker.
func loadConfig(appCfg *config.Config) *Config {
	cfg := &Config{
		Redis: asynq.RedisClientOpt{
			Addr:     appCfg.Redis.Addr,
			Password: appCfg.Redis.Password,
			DB:       appCfg.Redis.DB,
		},
		SMTPHost:    appCfg.SMTP.Host,
		SMTPPort:    appCfg.SMTP.Port,
		SMTPFrom:    appCfg.SMTP.From,
		Concurrency: 10,
		Queues: map[string]int{
			shared.QueueUser:    6,
			shared.QueueDefault: 3,
		},
		HealthAddr: ":9999",
	}

	log.Info().
		Str("redis", cfg.Redis.Addr).
		Str("smtp", cfg.SMTPHost+":"+cfg.SMTPPort).
		Msg("[Config] Worker configuration loaded")

	return cfg
}
