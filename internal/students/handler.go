package students

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"campusgate/internal/auth"
	"campusgate/internal/shared"
)

type Store interface {
	List(ctx context.Context, status Status) ([]Student, error)
	GetByID(ctx context.Context, id string) (*Student, error)
	Create(ctx context.Context, st *Student) (*Student, error)
	Update(ctx context.Context, id string, p UpdateStudentRequest) (*Student, error)
	Delete(ctx context.Context, id string) error
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
		validate: newValidator(),
	}
}

// MountRoutes registers the administrator-only application routes. Create is
// not here: submission is open and mounted on the public surface, since
// applicants have no account yet.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAdmin)
		r.Get("/students", h.List)
		r.Get("/students/{id}", h.Get)
		r.Put("/students/{id}", h.Update)
		r.Delete("/students/{id}", h.Delete)
	})
}

func studentID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid student id")
		return "", false
	}
	return id, true
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	status := Status(r.URL.Query().Get("status"))
	switch status {
	case "", StatusPending, StatusAccepted, StatusRejected:
	default:
		shared.RespondError(w, http.StatusBadRequest, "invalid status filter")
		return
	}
	list, err := h.store.List(r.Context(), status)
	if err != nil {
		h.logger.Error("list students", "err", err)
		shared.RespondError(w, http.StatusInternalServerError, "could not list students")
		return
	}
	if list == nil {
		list = []Student{}
	}
	shared.RespondJSON(w, http.StatusOK, list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := studentID(w, r)
	if !ok {
		return
	}
	st, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			shared.RespondError(w, http.StatusNotFound, "student not found")
			return
		}
		h.logger.Error("get student", "err", err)
		shared.RespondError(w, http.StatusInternalServerError, "could not load student")
		return
	}
	shared.RespondJSON(w, http.StatusOK, st)
}

// Create accepts a new application. Status and application date are always
// server-assigned.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateStudentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, shared.ValidationMessage(err))
		return
	}
	st, err := h.store.Create(r.Context(), &Student{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		StudentID: req.StudentID,
		Course:    req.Course,
		Semester:  req.Semester,
		Documents: req.Documents,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			shared.RespondError(w, http.StatusConflict, "an application with this email or studentId already exists")
			return
		}
		h.logger.Error("create student", "err", err)
		shared.RespondError(w, http.StatusInternalServerError, "could not create student")
		return
	}
	shared.RespondJSON(w, http.StatusCreated, st)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := studentID(w, r)
	if !ok {
		return
	}
	var req UpdateStudentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, shared.ValidationMessage(err))
		return
	}
	st, err := h.store.Update(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			shared.RespondError(w, http.StatusNotFound, "student not found")
		case errors.Is(err, ErrDuplicate):
			shared.RespondError(w, http.StatusConflict, "an application with this email already exists")
		default:
			h.logger.Error("update student", "err", err)
			shared.RespondError(w, http.StatusInternalServerError, "could not update student")
		}
		return
	}
	shared.RespondJSON(w, http.StatusOK, st)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := studentID(w, r)
	if !ok {
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			shared.RespondError(w, http.StatusNotFound, "student not found")
			return
		}
		h.logger.Error("delete student", "err", err)
		shared.RespondError(w, http.StatusInternalServerError, "could not delete student")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
