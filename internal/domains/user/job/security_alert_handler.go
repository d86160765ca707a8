package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"dashboard-backend/internal/domains/user"
	"dashboard-backend/internal/infrastructure/email"
	"dashboard-backend/internal/shared"
	"dashboard-backend/internal/shared/i18n"
	"dashboard-backend/internal/shared/utils"
)

type SecurityAlertHandler struct {
	emailService email.EmailService
	userRepo     user.Repository
}

func NewSecurityAlertHandler(
	emailService email.EmailService,
	userRepo user.Repository,
) *SecurityAlertHandler {
	return &SecurityAlertHandler{
		emailService: emailService,
		userRepo:     userRepo,
	}
}

// ProcessTask implements asynq.Handler for shared.TypeSendSecurityAlert.
func (h *SecurityAlertHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.SecurityAlertPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal SecurityAlert payload")
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	log.Info().
		Str("user_id", payload.UserID).
		Str("alert_type", string(payload.AlertType)).
		Str("ip_address", payload.IPAddress).
		Msg("Processing security alert")

	uid, err := utils.ParseStringToUUID(payload.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", payload.UserID).Msg("Invalid user id in SecurityAlert payload")
		return fmt.Errorf("invalid user id: %w: %w", err, asynq.SkipRetry)
	}

	u, err := h.userRepo.FindByID(ctx, uid)
	if err != nil {
		log.Error().Err(err).Str("user_id", payload.UserID).Msg("User not found")
		if errors.Is(err, user.ErrUserNotFound) {
			return fmt.Errorf("get user info: %w: %w", err, asynq.SkipRetry)
		}
		return fmt.Errorf("get user info: %w", err)
	}

	subject, body, ok := buildEmailContent(payload, u)
	if !ok {
		log.Warn().Str("alert_type", string(payload.AlertType)).Msg("Unsupported alert type")
		return fmt.Errorf("unsupported alert type %q: %w", payload.AlertType, asynq.SkipRetry)
	}

	recipient := payload.Email
	if recipient == "" {
		recipient = u.Email
	}

	if err := h.emailService.SendEmail(ctx, email.EmailRequest{
		To:      []string{recipient},
		Subject: subject,
		Body:    body,
	}); err != nil {
		log.Error().Err(err).Msg("Failed to send security alert email")
		return fmt.Errorf("send email: %w", err)
	}

	log.Info().
		Str("user_id", payload.UserID).
		Str("alert_type", string(payload.AlertType)).
		Msg("Security alert sent successfully")

	return nil
}

// buildEmailContent renders the alert in the user's stored language.
func buildEmailContent(payload shared.SecurityAlertPayload, u *user.User) (subject, body string, ok bool) {
	lang := i18n.Resolve(payload.Language, u.Language)

	at := payload.OccurredAt
	if at.IsZero() {
		at = time.Now()
	}
	when := at.UTC().Format("2006-01-02 15:04:05 UTC")

	ip := payload.IPAddress
	if ip == "" {
		ip = "-"
	}

	name := u.FullName
	if name == "" {
		name = u.Email
	}

	switch payload.AlertType {
	case shared.AlertPasswordChanged:
		return i18n.T(lang, i18n.KeyPasswordChangedEmailSubj),
			i18n.T(lang, i18n.KeyPasswordChangedEmailBody, name, when, ip),
			true
	}
	return "", "", false
}
