package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"dashboard-backend/internal/domains/user"
	"dashboard-backend/internal/shared"
	"dashboard-backend/pkg/jwt"
)

// TaskEnqueuer is the part of *asynq.Client the service needs.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type userService struct {
	repo        user.Repository
	credentials user.CredentialStore
	queue       TaskEnqueuer
	now         func() time.Time
}

// NewUserService wires the user service. queue may be nil, in which case no
// security alerts are sent.
func NewUserService(repo user.Repository, credentials user.CredentialStore, queue TaskEnqueuer) user.Service {
	return &userService{
		repo:        repo,
		credentials: credentials,
		queue:       queue,
		now:         time.Now,
	}
}

// ========================================
// AUTHORIZATION
// ========================================

func (s *userService) Authorize(ctx context.Context, claims *jwt.Claims, uid string) *user.User {
	if claims == nil {
		return nil
	}

	id, err := uuid.Parse(uid)
	if err != nil {
		return nil
	}

	if claims.UserID != id.String() && !claims.IsAdmin() {
		return nil
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, user.ErrUserNotFound) {
			log.Error().Err(err).Str("user_id", uid).Msg("authorize: user lookup failed")
		}
		return nil
	}

	return u
}

// ========================================
// PASSWORD
// ========================================

// ChangePassword: validate, require the old password when one is set,
// verify it, update, then invalidate the cache and queue the alert.
func (s *userService) ChangePassword(ctx context.Context, userID uuid.UUID, req user.ChangePasswordRequest, ipAddress string) error {
	if err := req.Validate(); err != nil {
		return user.NewValidationError(err)
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return err
		}
		return user.NewRemoteError(err)
	}

	if u.HasSetPassword {
		if req.OldPassword == "" {
			return user.NewRequiredError()
		}

		ok, err := s.credentials.VerifyPassword(ctx, userID, req.OldPassword)
		if err != nil {
			return user.NewRemoteError(err)
		}
		if !ok {
			return user.NewMismatchError()
		}
	}

	if err := s.credentials.UpdatePassword(ctx, userID, req.NewPassword); err != nil {
		if errors.Is(err, user.ErrSamePassword) {
			return user.NewSamePasswordError()
		}
		return user.NewRemoteError(err)
	}

	if err := s.repo.Invalidate(ctx, userID); err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("failed to invalidate user cache")
	}

	s.enqueuePasswordChanged(ctx, u, ipAddress)

	log.Info().Str("user_id", userID.String()).Msg("password changed")
	return nil
}

// enqueuePasswordChanged never fails the request.
func (s *userService) enqueuePasswordChanged(ctx context.Context, u *user.User, ipAddress string) {
	if s.queue == nil {
		return
	}

	payload, err := json.Marshal(shared.SecurityAlertPayload{
		UserID:     u.ID.String(),
		Email:      u.Email,
		AlertType:  shared.AlertPasswordChanged,
		Language:   u.Language,
		IPAddress:  ipAddress,
		OccurredAt: s.now(),
	})
	if err != nil {
		log.Error().Err(err).Msg("marshal security alert payload")
		return
	}

	task := asynq.NewTask(shared.TypeSendSecurityAlert, payload)
	info, err := s.queue.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueUser),
		asynq.MaxRetry(3),
		asynq.Timeout(time.Minute),
	)
	if err != nil {
		log.Error().Err(err).Str("user_id", u.ID.String()).Msg("failed to enqueue security alert")
		return
	}

	log.Debug().Str("task_id", info.ID).Str("queue", info.Queue).Msg("security alert enqueued")
}

// ========================================
// PROFILE
// ========================================

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*user.UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) UpdateLanguage(ctx context.Context, userID uuid.UUID, req user.UpdateLanguageRequest) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateLanguage(ctx, userID, req.Language); err != nil {
		return nil, fmt.Errorf("update language: %w", err)
	}

	return s.GetProfile(ctx, userID)
}
