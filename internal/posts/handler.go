package posts

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/inkwell-blog/inkwell/internal/auth"
	"github.com/inkwell-blog/inkwell/internal/authz"
	"github.com/inkwell-blog/inkwell/internal/platform/httpx"
	"github.com/inkwell-blog/inkwell/internal/shared"
)

// Handler wires HTTP endpoints for posts.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	guard     auth.Middleware
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, guard auth.Middleware) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		guard:     guard,
		validator: validator.New(),
	}
}

// MountRoutes registers post routes with their role requirements.
func (h *Handler) MountRoutes(r chi.Router) {
	anyRole := h.guard.RequireRoles(shared.RoleUser, shared.RoleAdmin)

	r.With(anyRole).Post("/", h.createPost)
	r.With(h.guard.RequireRoles(shared.RoleUser)).Get("/user", h.listOwn)
	r.With(h.guard.RequireRoles(shared.RoleAdmin)).Get("/admin", h.listAll)
	r.With(anyRole).Get("/{id}", h.getPost)
	r.With(anyRole).Put("/{id}", h.updatePost)
	r.With(anyRole).Delete("/{id}", h.deletePost)
}

type createPostRequest struct {
	Title   string   `json:"title" validate:"required"`
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags" validate:"required,min=1"`
}

type updatePostRequest struct {
	Title   *string  `json:"title" validate:"omitempty,min=1"`
	Content *string  `json:"content" validate:"omitempty,min=1"`
	Tags    []string `json:"tags" validate:"omitempty,min=1"`
}

func (h *Handler) createPost(w http.ResponseWriter, r *http.Request) {
	principal := shared.PrincipalFromContext(r.Context())
	if principal == nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}

	var req createPostRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	post, err := h.service.Create(r.Context(), CreatePostParams{
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		AuthorID: principal.ID,
	})
	if err != nil {
		h.logger.Error("create post", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, post)
}

func (h *Handler) listOwn(w http.ResponseWriter, r *http.Request) {
	principal := shared.PrincipalFromContext(r.Context())
	if principal == nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}

	filter := listFilterFromQuery(r)
	filter.AuthorID = principal.ID

	result, err := h.service.List(r.Context(), "user:"+strconv.FormatInt(principal.ID, 10), filter)
	if err != nil {
		h.logger.Error("list own posts", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) listAll(w http.ResponseWriter, r *http.Request) {
	filter := listFilterFromQuery(r)
	if raw := r.URL.Query().Get("authorId"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.AuthorID = id
		}
	}

	result, err := h.service.List(r.Context(), "admin", filter)
	if err != nil {
		h.logger.Error("list all posts", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) getPost(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if !h.authorizeOwnership(w, r, authz.PostReadPolicy, id) {
		return
	}

	post, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, post)
}

func (h *Handler) updatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if !h.authorizeOwnership(w, r, authz.PostUpdatePolicy, id) {
		return
	}

	var req updatePostRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	post, err := h.service.Update(r.Context(), id, UpdatePostParams{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, post)
}

func (h *Handler) deletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if !h.authorizeOwnership(w, r, authz.PostDeletePolicy, id) {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "post deleted"})
}

// authorizeOwnership runs the ownership step of the access pipeline: resolve
// the post's author, then apply the policy. Missing posts answer 404, policy
// denials 401.
func (h *Handler) authorizeOwnership(w http.ResponseWriter, r *http.Request, policy authz.OwnershipPolicy, id int64) bool {
	principal := shared.PrincipalFromContext(r.Context())
	if principal == nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "")
		return false
	}
	if err := authz.Authorize(r.Context(), h.service, policy, *principal, id); err != nil {
		httpx.RespondError(w, err)
		return false
	}
	return true
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "id must be an integer")
		return 0, false
	}
	return id, true
}

func listFilterFromQuery(r *http.Request) ListFilter {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	filter := ListFilter{
		Title:    q.Get("title"),
		SortBy:   q.Get("sortBy"),
		SortDesc: strings.EqualFold(q.Get("sortOrder"), "desc"),
		Page:     shared.NewPagination(page, limit),
	}
	if raw := q.Get("tags"); raw != "" {
		filter.Tags = strings.Split(raw, ",")
	}
	if raw := q.Get("fields"); raw != "" {
		filter.Fields = strings.Split(raw, ",")
	}
	return filter
}
