package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard-backend/internal/domains/user"
	"dashboard-backend/internal/shared/middleware"
	"dashboard-backend/pkg/jwt"
)

type fakeService struct {
	changeErr  error
	changeReqs []user.ChangePasswordRequest
	users      map[string]*user.User
	langErr    error
}

func (s *fakeService) GetProfile(_ context.Context, id uuid.UUID) (*user.UserDTO, error) {
	u, ok := s.users[id.String()]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	dto := u.ToDTO()
	return &dto, nil
}

func (s *fakeService) ChangePassword(_ context.Context, _ uuid.UUID, req user.ChangePasswordRequest, _ string) error {
	s.changeReqs = append(s.changeReqs, req)
	return s.changeErr
}

func (s *fakeService) UpdateLanguage(ctx context.Context, id uuid.UUID, req user.UpdateLanguageRequest) (*user.UserDTO, error) {
	if s.langErr != nil {
		return nil, s.langErr
	}
	dto, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	dto.Language = req.Language
	return dto, nil
}

func (s *fakeService) Authorize(_ context.Context, claims *jwt.Claims, uid string) *user.User {
	if claims == nil || claims.UserID != uid {
		return nil
	}
	return s.users[uid]
}

type testEnv struct {
	router *gin.Engine
	svc    *fakeService
	jm     *jwt.Manager
	user   *user.User
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	u := &user.User{ID: uuid.New(), Email: "jane@example.com", Role: user.RoleUser, Language: "en", HasSetPassword: true}
	svc := &fakeService{users: map[string]*user.User{u.ID.String(): u}}
	jm := jwt.NewManager("test-secret", time.Minute)
	h := NewUserHandler(svc)

	r := gin.New()
	r.Use(middleware.Language(), middleware.ClientIP())
	r.GET("/user/:uid", middleware.OptionalAuth(jm), h.GetUser)
	r.GET("/languages", h.ListLanguages)
	me := r.Group("/users/me", middleware.AuthMiddleware(jm))
	me.PUT("/password", h.ChangePassword)
	me.PUT("/language", h.UpdateLanguage)

	return &testEnv{router: r, svc: svc, jm: jm, user: u}
}

func (e *testEnv) token(t *testing.T) string {
	t.Helper()
	tok, err := e.jm.GenerateAccessToken(e.user.ID.String(), e.user.Email, string(e.user.Role))
	require.NoError(t, err)
	return tok
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func (e *testEnv) auth(t *testing.T) map[string]string {
	return map[string]string{"Authorization": "Bearer " + e.token(t)}
}

var validChange = map[string]string{
	"old_password":         "old-secret",
	"new_password":         "new-secret",
	"confirm_new_password": "new-secret",
}

func TestChangePassword_Success(t *testing.T) {
	e := setup(t)

	w, env := e.do(t, http.MethodPut, "/users/me/password", validChange, e.auth(t))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Your password has been changed.", env.Message)
	require.Len(t, e.svc.changeReqs, 1)
	assert.Equal(t, "new-secret", e.svc.changeReqs[0].NewPassword)
}

func TestChangePassword_RequiresToken(t *testing.T) {
	e := setup(t)

	w, env := e.do(t, http.MethodPut, "/users/me/password", validChange, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, env.Success)
	assert.Empty(t, e.svc.changeReqs)
}

func TestChangePassword_ConfirmMismatchIsLocalFieldError(t *testing.T) {
	e := setup(t)
	body := map[string]string{
		"old_password":         "old-secret",
		"new_password":         "new-secret",
		"confirm_new_password": "other-secret",
	}

	w, env := e.do(t, http.MethodPut, "/users/me/password", body, e.auth(t))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Passwords do not match.", env.Error.Details["confirm_new_password"])
	assert.Empty(t, e.svc.changeReqs)
}

func TestChangePassword_FieldErrors(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		lang    string
		code    string
		field   string
		message string
	}{
		{"required", user.NewRequiredError(), "en", CodeOldPasswordRequired, "old_password", "Please enter your current password."},
		{"mismatch", user.NewMismatchError(), "en", CodeOldPasswordMismatch, "old_password", "Old password does not match."},
		{"mismatch ko", user.NewMismatchError(), "ko", CodeOldPasswordMismatch, "old_password", "이전 비밀번호가 일치하지 않습니다."},
		{"same password", user.NewSamePasswordError(), "en", CodeSamePassword, "new_password", "New password should be different from the old password."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := setup(t)
			e.svc.changeErr = tc.err
			headers := e.auth(t)
			headers["Accept-Language"] = tc.lang

			w, env := e.do(t, http.MethodPut, "/users/me/password", validChange, headers)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tc.code, env.Error.Code)
			assert.Equal(t, map[string]string{tc.field: tc.message}, env.Error.Details)
		})
	}
}

func TestChangePassword_RemoteIsGeneric(t *testing.T) {
	e := setup(t)
	e.svc.changeErr = user.NewRemoteError(errors.New("identity provider timeout"))

	w, env := e.do(t, http.MethodPut, "/users/me/password", validChange, e.auth(t))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Something went wrong. Please try again.", env.Error.Message)
	assert.NotContains(t, w.Body.String(), "identity provider")
}

func TestChangePassword_LanguageCookieWins(t *testing.T) {
	e := setup(t)
	e.svc.changeErr = user.NewRequiredError()
	headers := e.auth(t)
	headers["Accept-Language"] = "en-US"
	headers["Cookie"] = "lang=ko"

	_, env := e.do(t, http.MethodPut, "/users/me/password", validChange, headers)

	require.NotNil(t, env.Error)
	assert.Equal(t, "현재 비밀번호를 입력해 주세요.", env.Error.Details["old_password"])
}

func TestGetUser(t *testing.T) {
	e := setup(t)

	w, env := e.do(t, http.MethodGet, "/user/"+e.user.ID.String(), nil, e.auth(t))
	assert.Equal(t, http.StatusOK, w.Code)

	var dto user.UserDTO
	require.NoError(t, json.Unmarshal(env.Data, &dto))
	assert.Equal(t, e.user.ID, dto.ID)
	assert.True(t, dto.HasSetPassword)

	w, _ = e.do(t, http.MethodGet, "/user/"+e.user.ID.String(), nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = e.do(t, http.MethodGet, "/user/"+uuid.NewString(), nil, e.auth(t))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateLanguage(t *testing.T) {
	e := setup(t)

	w, env := e.do(t, http.MethodPut, "/users/me/language", map[string]string{"language": "ko"}, e.auth(t))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "lang=ko")

	w, env = e.do(t, http.MethodPut, "/users/me/language", map[string]string{"language": "fr"}, e.auth(t))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Unsupported language.", env.Error.Details["language"])
}

func TestListLanguages(t *testing.T) {
	e := setup(t)

	w, env := e.do(t, http.MethodGet, "/languages", nil, map[string]string{"Accept-Language": "ko-KR,ko;q=0.9"})
	assert.Equal(t, http.StatusOK, w.Code)

	var res user.LanguagesResponse
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "ko", res.Current)
	require.Len(t, res.Languages, 2)
	assert.Equal(t, "en", res.Languages[0].Value)
}
