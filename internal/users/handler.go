package users

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"campusgate/internal/auth"
	"campusgate/internal/shared"
)

// Store is the slice of the account store the handlers need.
type Store interface {
	List(ctx context.Context) ([]auth.User, error)
	GetByUserID(ctx context.Context, userID string) (*auth.User, error)
	Create(ctx context.Context, p auth.CreateParams) (*auth.User, error)
	Update(ctx context.Context, userID string, p auth.UpdateParams) (*auth.User, error)
	Delete(ctx context.Context, userID string) error
}

type Handler struct {
	store    Store
	logger   *slog.Logger
	validate *validator.Validate
}

func NewHandler(store Store, logger *slog.Logger) *Handler {
	return &Handler{
		store:    store,
		logger:   logger,
		validate: validator.New(),
	}
}

// MountRoutes registers the protected user routes. The authentication gate
// must already be installed on r; Register is mounted separately on the open
// surface.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAdmin)
		r.Get("/users", h.List)
		r.Post("/users", h.Create)
		r.Delete("/users/{userID}", h.Delete)
	})
	r.Get("/users/{userID}", h.Get)
	r.Put("/users/{userID}", h.Update)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error("list users", "err", err)
		shared.RespondError(w, http.StatusInternalServerError, "could not list users")
		return
	}
	shared.RespondJSON(w, http.StatusOK, auth.PublicUsers(users))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "userID")
	caller, _ := auth.UserFromContext(r.Context())
	if !auth.CanAccess(caller, targetID) {
		shared.RespondError(w, http.StatusForbidden, "unauthorized")
		return
	}
	user, err := h.store.GetByUserID(r.Context(), targetID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			shared.RespondError(w, http.StatusNotFound, "user not found")
			return
		}
		h.logger.Error("get user", "err", err)
		shared.RespondError(w, http.StatusInternalServerError, "could not load user")
		return
	}
	shared.RespondJSON(w, http.StatusOK, user.Public())
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, shared.ValidationMessage(err))
		return
	}
	h.create(w, r, auth.CreateParams{
		UserID:          req.UserID,
		Password:        req.Password,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		IsAdministrator: req.IsAdministrator,
	})
}

// Register is the open self-service variant of Create. It never produces an
// administrator account.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, shared.ValidationMessage(err))
		return
	}
	h.create(w, r, auth.CreateParams{
		UserID:    req.UserID,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request, p auth.CreateParams) {
	user, err := h.store.Create(r.Context(), p)
	if err != nil {
		if errors.Is(err, auth.ErrDuplicateUser) {
			shared.RespondError(w, http.StatusConflict, "user with userID "+auth.NormalizeUserID(p.UserID)+" already exists")
			return
		}
		h.logger.Error("create user", "err", err)
		shared.RespondError(w, http.StatusInternalServerError, "could not create user")
		return
	}
	shared.RespondJSON(w, http.StatusCreated, user.Public())
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "userID")
	caller, _ := auth.UserFromContext(r.Context())
	if !auth.CanAccess(caller, targetID) {
		shared.RespondError(w, http.StatusForbidden, "unauthorized")
		return
	}

	var req UpdateUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, shared.ValidationMessage(err))
		return
	}
	// Identity is immutable for everyone, administrators included.
	if req.UserID != nil && auth.NormalizeUserID(*req.UserID) != auth.NormalizeUserID(targetID) {
		shared.RespondError(w, http.StatusBadRequest, "userID cannot be changed")
		return
	}

	params := auth.UpdateParams{
		Password:        req.Password,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		IsAdministrator: req.IsAdministrator,
	}
	if !caller.IsAdministrator {
		if req.IsAdministrator != nil {
			shared.RespondError(w, http.StatusForbidden, "you are not allowed to change isAdministrator")
			return
		}
		// Self-service updates touch display fields only.
		params = auth.UpdateParams{
			FirstName: req.FirstName,
			LastName:  req.LastName,
		}
	}

	user, err := h.store.Update(r.Context(), targetID, params)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			shared.RespondError(w, http.StatusNotFound, "user not found")
			return
		}
		h.logger.Error("update user", "err", err)
		shared.RespondError(w, http.StatusInternalServerError, "could not update user")
		return
	}
	shared.RespondJSON(w, http.StatusOK, user.Public())
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "userID")
	err := h.store.Delete(r.Context(), targetID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			shared.RespondError(w, http.StatusNotFound, "user not found")
			return
		}
		h.logger.Error("delete user", "err", err)
		shared.RespondError(w, http.StatusInternalServerError, "could not delete user")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
