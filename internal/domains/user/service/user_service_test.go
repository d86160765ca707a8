package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard-backend/internal/domains/user"
	"dashboard-backend/internal/shared"
	"dashboard-backend/pkg/jwt"
)

// ========================================
// FAKES
// ========================================

type fakeRepo struct {
	users       map[uuid.UUID]*user.User
	findErr     error
	invalidated []uuid.UUID
}

func newFakeRepo(users ...*user.User) *fakeRepo {
	r := &fakeRepo{users: make(map[uuid.UUID]*user.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeRepo) UpdateLanguage(ctx context.Context, id uuid.UUID, language string) error {
	u, ok := r.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.Language = language
	return r.Invalidate(ctx, id)
}

func (r *fakeRepo) Invalidate(_ context.Context, id uuid.UUID) error {
	r.invalidated = append(r.invalidated, id)
	return nil
}

type fakeCredentials struct {
	password    string
	verifyErr   error
	updateErr   error
	verifyCalls int
	updateCalls int
}

func (c *fakeCredentials) VerifyPassword(_ context.Context, _ uuid.UUID, password string) (bool, error) {
	c.verifyCalls++
	if c.verifyErr != nil {
		return false, c.verifyErr
	}
	return password == c.password, nil
}

func (c *fakeCredentials) UpdatePassword(_ context.Context, _ uuid.UUID, password string) error {
	c.updateCalls++
	if c.updateErr != nil {
		return c.updateErr
	}
	if password == c.password {
		return user.ErrSamePassword
	}
	c.password = password
	return nil
}

type fakeQueue struct {
	tasks []*asynq.Task
	err   error
}

func (q *fakeQueue) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if q.err != nil {
		return nil, q.err
	}
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Queue: shared.QueueUser}, nil
}

type fixture struct {
	svc   user.Service
	repo  *fakeRepo
	creds *fakeCredentials
	queue *fakeQueue
	user  *user.User
}

func newFixture(hasPassword bool) *fixture {
	u := &user.User{
		ID:             uuid.New(),
		Email:          "jane@example.com",
		FullName:       "Jane",
		Role:           user.RoleUser,
		Language:       "ko",
		HasSetPassword: hasPassword,
	}
	f := &fixture{
		repo:  newFakeRepo(u),
		creds: &fakeCredentials{password: "old-secret"},
		queue: &fakeQueue{},
		user:  u,
	}
	f.svc = NewUserService(f.repo, f.creds, f.queue)
	return f
}

func changeReq(old, next, confirm string) user.ChangePasswordRequest {
	return user.ChangePasswordRequest{OldPassword: old, NewPassword: next, ConfirmNewPassword: confirm}
}

func requirePasswordError(t *testing.T, err error, kind user.ErrorKind, field string) {
	t.Helper()
	var pe *user.PasswordError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, kind, pe.Kind)
	assert.Equal(t, field, pe.Field)
}

// ========================================
// CHANGE PASSWORD
// ========================================

func TestChangePassword_Success(t *testing.T) {
	f := newFixture(true)

	err := f.svc.ChangePassword(context.Background(), f.user.ID, changeReq("old-secret", "new-secret", "new-secret"), "10.0.0.1")

	require.NoError(t, err)
	assert.Equal(t, 1, f.creds.verifyCalls)
	assert.Equal(t, 1, f.creds.updateCalls)
	assert.Equal(t, "new-secret", f.creds.password)
	assert.Equal(t, []uuid.UUID{f.user.ID}, f.repo.invalidated)

	require.Len(t, f.queue.tasks, 1)
	assert.Equal(t, shared.TypeSendSecurityAlert, f.queue.tasks[0].Type())

	var payload shared.SecurityAlertPayload
	require.NoError(t, json.Unmarshal(f.queue.tasks[0].Payload(), &payload))
	assert.Equal(t, f.user.ID.String(), payload.UserID)
	assert.Equal(t, shared.AlertPasswordChanged, payload.AlertType)
	assert.Equal(t, "ko", payload.Language)
	assert.Equal(t, "10.0.0.1", payload.IPAddress)
}

func TestChangePassword_OldPasswordRequired(t *testing.T) {
	f := newFixture(true)

	err := f.svc.ChangePassword(context.Background(), f.user.ID, changeReq("", "new-secret", "new-secret"), "")

	requirePasswordError(t, err, user.KindRequired, user.FieldOldPassword)
	assert.ErrorIs(t, err, user.ErrOldPasswordRequired)
	assert.Zero(t, f.creds.verifyCalls)
	assert.Zero(t, f.creds.updateCalls)
	assert.Empty(t, f.queue.tasks)
}

func TestChangePassword_Mismatch(t *testing.T) {
	f := newFixture(true)

	err := f.svc.ChangePassword(context.Background(), f.user.ID, changeReq("not-it!", "new-secret", "new-secret"), "")

	requirePasswordError(t, err, user.KindMismatch, user.FieldOldPassword)
	assert.Equal(t, 1, f.creds.verifyCalls)
	assert.Zero(t, f.creds.updateCalls)
	assert.Empty(t, f.repo.invalidated)
}

func TestChangePassword_SamePassword(t *testing.T) {
	f := newFixture(true)

	err := f.svc.ChangePassword(context.Background(), f.user.ID, changeReq("old-secret", "old-secret", "old-secret"), "")

	requirePasswordError(t, err, user.KindSamePassword, user.FieldNewPassword)
	assert.ErrorIs(t, err, user.ErrSamePassword)
	assert.Empty(t, f.queue.tasks)
}

func TestChangePassword_RemoteFailures(t *testing.T) {
	t.Run("verify", func(t *testing.T) {
		f := newFixture(true)
		f.creds.verifyErr = errors.New("connection reset")

		err := f.svc.ChangePassword(context.Background(), f.user.ID, changeReq("old-secret", "new-secret", "new-secret"), "")

		requirePasswordError(t, err, user.KindRemote, "")
		assert.Zero(t, f.creds.updateCalls)
	})

	t.Run("update", func(t *testing.T) {
		f := newFixture(true)
		f.creds.updateErr = errors.New("rate limited")

		err := f.svc.ChangePassword(context.Background(), f.user.ID, changeReq("old-secret", "new-secret", "new-secret"), "")

		requirePasswordError(t, err, user.KindRemote, "")
		assert.Empty(t, f.repo.invalidated)
	})
}

func TestChangePassword_AccountWithoutPasswordSkipsVerify(t *testing.T) {
	f := newFixture(false)

	err := f.svc.ChangePassword(context.Background(), f.user.ID, changeReq("", "first-secret", "first-secret"), "")

	require.NoError(t, err)
	assert.Zero(t, f.creds.verifyCalls)
	assert.Equal(t, 1, f.creds.updateCalls)
}

func TestChangePassword_ValidationRunsFirst(t *testing.T) {
	f := newFixture(true)

	err := f.svc.ChangePassword(context.Background(), f.user.ID, changeReq("old-secret", "new-secret", "different"), "")

	assert.Equal(t, user.KindValidation, user.KindOf(err))
	assert.Zero(t, f.creds.verifyCalls)
}

func TestChangePassword_UserNotFound(t *testing.T) {
	f := newFixture(true)

	err := f.svc.ChangePassword(context.Background(), uuid.New(), changeReq("old-secret", "new-secret", "new-secret"), "")

	assert.ErrorIs(t, err, user.ErrUserNotFound)
	assert.Equal(t, user.ErrorKind(""), user.KindOf(err))
}

func TestChangePassword_EnqueueFailureIsSwallowed(t *testing.T) {
	f := newFixture(true)
	f.queue.err = errors.New("redis down")

	err := f.svc.ChangePassword(context.Background(), f.user.ID, changeReq("old-secret", "new-secret", "new-secret"), "")

	assert.NoError(t, err)
}

// ========================================
// AUTHORIZE
// ========================================

func TestAuthorize(t *testing.T) {
	f := newFixture(true)
	own := &jwt.Claims{UserID: f.user.ID.String(), Role: "user"}
	other := &jwt.Claims{UserID: uuid.NewString(), Role: "user"}
	admin := &jwt.Claims{UserID: uuid.NewString(), Role: "admin"}
	ctx := context.Background()

	got := f.svc.Authorize(ctx, own, f.user.ID.String())
	require.NotNil(t, got)
	assert.Equal(t, f.user.ID, got.ID)

	assert.Nil(t, f.svc.Authorize(ctx, nil, f.user.ID.String()))
	assert.Nil(t, f.svc.Authorize(ctx, own, "not-a-uuid"))
	assert.Nil(t, f.svc.Authorize(ctx, other, f.user.ID.String()))
	assert.NotNil(t, f.svc.Authorize(ctx, admin, f.user.ID.String()))
	assert.Nil(t, f.svc.Authorize(ctx, admin, uuid.NewString()))

	f.repo.findErr = errors.New("db down")
	assert.Nil(t, f.svc.Authorize(ctx, own, f.user.ID.String()))
}

// ========================================
// PROFILE
// ========================================

func TestUpdateLanguage(t *testing.T) {
	f := newFixture(true)

	dto, err := f.svc.UpdateLanguage(context.Background(), f.user.ID, user.UpdateLanguageRequest{Language: "en"})
	require.NoError(t, err)
	assert.Equal(t, "en", dto.Language)
	assert.Equal(t, []uuid.UUID{f.user.ID}, f.repo.invalidated)

	_, err = f.svc.UpdateLanguage(context.Background(), f.user.ID, user.UpdateLanguageRequest{Language: "fr"})
	assert.Error(t, err)

	_, err = f.svc.UpdateLanguage(context.Background(), uuid.New(), user.UpdateLanguageRequest{Language: "en"})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestGetProfile(t *testing.T) {
	f := newFixture(false)

	dto, err := f.svc.GetProfile(context.Background(), f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", dto.Email)
	assert.False(t, dto.HasSetPassword)
}
