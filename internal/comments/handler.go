package comments

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/inkwell-blog/inkwell/internal/auth"
	"github.com/inkwell-blog/inkwell/internal/authz"
	"github.com/inkwell-blog/inkwell/internal/platform/httpx"
	"github.com/inkwell-blog/inkwell/internal/shared"
)

// Handler wires HTTP endpoints for comments.
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

// MountRoutes registers comment routes with their role requirements. Creation
// and listing key on the post id; update and delete key on the comment id.
func (h *Handler) MountRoutes(r chi.Router) {
	anyRole := h.guard.RequireRoles(shared.RoleUser, shared.RoleAdmin)

	r.With(anyRole).Post("/{postID}", h.addComment)
	r.With(anyRole).Get("/{postID}", h.listForPost)
	r.With(anyRole).Put("/{id}", h.updateComment)
	r.With(anyRole).Delete("/{id}", h.deleteComment)
}

type commentRequest struct {
	Content string `json:"content" validate:"required"`
}

func (h *Handler) addComment(w http.ResponseWriter, r *http.Request) {
	principal := shared.PrincipalFromContext(r.Context())
	if principal == nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}
	postID, ok := pathInt(w, r, "postID")
	if !ok {
		return
	}

	var req commentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	comment, err := h.service.Add(r.Context(), postID, *principal, req.Content)
	if err != nil {
		h.logger.Error("add comment", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, comment)
}

func (h *Handler) listForPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathInt(w, r, "postID")
	if !ok {
		return
	}

	list, err := h.service.ListForPost(r.Context(), postID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) updateComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	if !h.authorizeOwnership(w, r, authz.CommentUpdatePolicy, id) {
		return
	}

	var req commentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	comment, err := h.service.Update(r.Context(), id, req.Content)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, comment)
}

func (h *Handler) deleteComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	if !h.authorizeOwnership(w, r, authz.CommentDeletePolicy, id) {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "comment deleted"})
}

// authorizeOwnership runs the ownership step of the access pipeline against
// the route's comment policy.
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

func pathInt(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", name+" must be an integer")
		return 0, false
	}
	return id, true
}
