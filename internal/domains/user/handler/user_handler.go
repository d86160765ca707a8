package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"dashboard-backend/internal/domains/user"
	"dashboard-backend/internal/shared/i18n"
	"dashboard-backend/internal/shared/middleware"
	"dashboard-backend/internal/shared/response"
)

// Error codes of the password form.
const (
	CodeOldPasswordRequired = "OLD_PASSWORD_REQUIRED"
	CodeOldPasswordMismatch = "OLD_PASSWORD_MISMATCH"
	CodeSamePassword        = "SAME_PASSWORD"
)

// UserHandler serves the profile, password and language endpoints.
type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// GetUser handles GET /user/:uid
func (h *UserHandler) GetUser(c *gin.Context) {
	u := h.service.Authorize(c.Request.Context(), middleware.GetClaims(c), c.Param("uid"))
	if u == nil {
		response.Unauthorized(c, i18n.T(middleware.GetLanguage(c), i18n.KeyUnauthorized))
		return
	}

	response.Success(c, http.StatusOK, "", u.ToDTO())
}

// ChangePassword handles PUT /users/me/password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, i18n.T(middleware.GetLanguage(c), i18n.KeyUnauthorized))
		return
	}

	var req user.ChangePasswordRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return
	}

	ip := middleware.ClientIPFromContext(c.Request.Context())
	if err := h.service.ChangePassword(c.Request.Context(), userID, req, ip); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, i18n.T(middleware.GetLanguage(c), i18n.KeyChangedSuccessfully), nil)
}

// UpdateLanguage handles PUT /users/me/language
func (h *UserHandler) UpdateLanguage(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, i18n.T(middleware.GetLanguage(c), i18n.KeyUnauthorized))
		return
	}

	var req user.UpdateLanguageRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return
	}

	dto, err := h.service.UpdateLanguage(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.SetCookie(middleware.LanguageCookie, dto.Language, 365*24*3600, "/", "", false, false)
	response.Success(c, http.StatusOK, "", dto)
}

// ListLanguages handles GET /languages
func (h *UserHandler) ListLanguages(c *gin.Context) {
	response.Success(c, http.StatusOK, "", user.LanguagesResponse{
		Languages: i18n.Languages,
		Current:   middleware.GetLanguage(c),
	})
}

// handleError maps service errors to HTTP responses.
func (h *UserHandler) handleError(c *gin.Context, err error) {
	lang := middleware.GetLanguage(c)

	switch user.KindOf(err) {
	case user.KindValidation:
		h.validationError(c, err)
		return

	case user.KindRequired:
		fieldError(c, CodeOldPasswordRequired, user.FieldOldPassword, i18n.T(lang, i18n.KeyOldPasswordRequired))
		return

	case user.KindMismatch:
		fieldError(c, CodeOldPasswordMismatch, user.FieldOldPassword, i18n.T(lang, i18n.KeyOldPasswordDoesNotMatch))
		return

	case user.KindSamePassword:
		fieldError(c, CodeSamePassword, user.FieldNewPassword, i18n.T(lang, i18n.KeyNewPasswordMustDiffer))
		return

	case user.KindRemote:
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Msg("credential store failure")
		response.Internal(c, i18n.T(lang, i18n.KeySomethingWentWrong))
		return
	}

	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		h.validationError(c, err)

	case errors.Is(err, user.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error(), nil)

	default:
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.Request.URL.Path).
			Msg("internal error")
		response.Internal(c, i18n.T(lang, i18n.KeySomethingWentWrong))
	}
}

// validationError answers 400 with one localized message per field.
func (h *UserHandler) validationError(c *gin.Context, err error) {
	details := localizeValidation(middleware.GetLanguage(c), err)
	response.Error(c, http.StatusBadRequest, response.CodeValidation, "validation failed", details)
}

func (h *UserHandler) bindAndValidate(c *gin.Context, req interface{ Validate() error }) error {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "Invalid request body", nil)
		return err
	}

	if err := req.Validate(); err != nil {
		h.validationError(c, err)
		return err
	}

	return nil
}

func fieldError(c *gin.Context, code, field, message string) {
	response.Error(c, http.StatusBadRequest, code, message, map[string]string{field: message})
}

// localizeValidation translates the custom rule codes; built-in ozzo rules
// keep their English message.
func localizeValidation(lang string, err error) map[string]string {
	details := make(map[string]string)

	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		details["_"] = err.Error()
		return details
	}

	for field, fieldErr := range verrs {
		msg := fieldErr.Error()

		var ve validation.Error
		if errors.As(fieldErr, &ve) {
			switch ve.Code() {
			case user.CodeConfirmMismatch:
				msg = i18n.T(lang, i18n.KeyInvalidConfirmPassword)
			case user.CodeInvalidLanguage:
				msg = i18n.T(lang, i18n.KeyInvalidLanguage)
			}
		}
		details[field] = msg
	}

	return details
}
