package main

import (
	"github.com/hibiken/asynq"

	"dashboard-backend/internal/domains/user/job"
	"dashboard-backend/internal/infrastructure/email"
	"dashboard-backend/internal/shared"
	"dashboard-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	// Security handlers
	securityAlert *job.SecurityAlertHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container, cfg *Config) *HandlerRegistry {
	emailSvc := email.NewSMTPEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom)

	return &HandlerRegistry{
		securityAlert: job.NewSecurityAlertHandler(emailSvc, c.UserRepo),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Security tasks
	mux.HandleFunc(shared.TypeSendSecurityAlert, h.securityAlert.ProcessTask)
}
