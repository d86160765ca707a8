package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"dashboard-backend/internal/domains/post/editor"
	"dashboard-backend/internal/domains/post/model"
	"dashboard-backend/internal/domains/post/service"
	"dashboard-backend/internal/domains/user"
	"dashboard-backend/internal/infrastructure/database"
	"dashboard-backend/internal/shared/middleware"
	"dashboard-backend/internal/shared/response"
	"dashboard-backend/pkg/jwt"
)

// Authorizer resolves the user the caller may act as for a path uid.
type Authorizer interface {
	Authorize(ctx context.Context, claims *jwt.Claims, uid string) *user.User
}

// =====================================================
// POST HANDLER
// =====================================================

type PostHandler struct {
	postService service.ServiceInterface
	authorizer  Authorizer
	slugQuiet   time.Duration
}

// NewPostHandler: slugQuiet is advertised to editors by PreviewSlug so they
// debounce slug edits the same way.
func NewPostHandler(postService service.ServiceInterface, authorizer Authorizer, slugQuiet time.Duration) *PostHandler {
	if slugQuiet <= 0 {
		slugQuiet = editor.DefaultQuietPeriod
	}
	return &PostHandler{
		postService: postService,
		authorizer:  authorizer,
		slugQuiet:   slugQuiet,
	}
}

// countResponse is the envelope of the count endpoint. Every key is always
// present; null marks the half that does not apply.
type countResponse struct {
	Data  []model.StatusCount `json:"data"`
	Count *int                `json:"count"`
	Error interface{}         `json:"error"`
}

type statusError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// CountPosts returns the user's post counts per status
// GET /api/v1/posts/:uid/count
func (h *PostHandler) CountPosts(c *gin.Context) {
	u := h.authorizer.Authorize(c.Request.Context(), middleware.GetClaims(c), c.Param("uid"))
	if u == nil {
		c.JSON(http.StatusUnauthorized, countResponse{
			Error: statusError{Status: http.StatusUnauthorized, Message: "Unauthorized"},
		})
		return
	}

	res, err := h.postService.CountPosts(c.Request.Context(), u.ID)
	if err != nil {
		log.Warn().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("user_id", u.ID.String()).
			Msg("count_posts failed")
		c.JSON(http.StatusBadRequest, countResponse{Error: database.Payload(err)})
		return
	}

	c.JSON(http.StatusOK, countResponse{Data: res.Data, Count: &res.Count})
}

// CreatePost creates a post for the user in the path
// POST /api/v1/posts/:uid
func (h *PostHandler) CreatePost(c *gin.Context) {
	u := h.authorizer.Authorize(c.Request.Context(), middleware.GetClaims(c), c.Param("uid"))
	if u == nil {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "Invalid request body", nil)
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), u.ID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/post/"+post.ID.String())
	response.Success(c, http.StatusCreated, "Post created", post)
}

// GetPost returns one post of the caller
// GET /api/v1/post/:id
func (h *PostHandler) GetPost(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "Invalid post ID", nil)
		return
	}

	post, err := h.postService.GetPost(c.Request.Context(), actor, postID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", post)
}

// UpdatePost edits title, slug, content or status
// PUT /api/v1/post/:id
func (h *PostHandler) UpdatePost(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "Invalid post ID", nil)
		return
	}

	var req model.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "Invalid request body", nil)
		return
	}

	post, err := h.postService.UpdatePost(c.Request.Context(), actor, postID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Post updated", post)
}

// PreviewSlug returns the slug the server would store
// GET /api/v1/post/slug?title=&slug=
func (h *PostHandler) PreviewSlug(c *gin.Context) {
	slug := h.postService.PreviewSlug(c.Query("title"), c.Query("slug"))
	response.Success(c, http.StatusOK, "", gin.H{
		"slug":            slug,
		"quiet_period_ms": h.slugQuiet.Milliseconds(),
	})
}

// =====================================================
// HELPERS
// =====================================================

func actorFrom(c *gin.Context) (model.Actor, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return model.Actor{}, false
	}
	return model.Actor{UserID: userID, IsAdmin: middleware.GetClaims(c).IsAdmin()}, true
}

func (h *PostHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors

	switch {
	case errors.As(err, &verrs):
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "validation failed", verrs)

	case errors.Is(err, model.ErrInvalidStatus),
		errors.Is(err, model.ErrInvalidTransition),
		errors.Is(err, model.ErrFutureDateRequired):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error(), nil)

	case errors.Is(err, model.ErrPostNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error(), nil)

	case errors.Is(err, model.ErrSlugTaken):
		response.Error(c, http.StatusConflict, response.CodeConflict, err.Error(), nil)

	default:
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.Request.URL.Path).
			Msg("internal error")
		response.Internal(c, "Internal server error")
	}
}
