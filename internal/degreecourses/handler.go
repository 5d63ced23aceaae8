package degreecourses

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
	List(ctx context.Context, universityShortName string) ([]DegreeCourse, error)
	GetByID(ctx context.Context, id string) (*DegreeCourse, error)
	Create(ctx context.Context, c *DegreeCourse) (*DegreeCourse, error)
	Update(ctx context.Context, id string, p UpdateDegreeCourseRequest) (*DegreeCourse, error)
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
		validate: validator.New(),
	}
}

// MountRoutes registers the degree course routes. Reads are open to every
// authenticated account, writes are administrator-only.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/degreeCourses", h.List)
	r.Get("/degreeCourses/{id}", h.Get)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAdmin)
		r.Post("/degreeCourses", h.Create)
		r.Put("/degreeCourses/{id}", h.Update)
		r.Delete("/degreeCourses/{id}", h.Delete)
	})
}

// courseID validates the id path parameter before it reaches the store; a
// malformed id is a 400, not a store error.
func courseID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid degree course id")
		return "", false
	}
	return id, true
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	courses, err := h.store.List(r.Context(), r.URL.Query().Get("universityShortName"))
	if err != nil {
		h.logger.Error("list degree courses", "err", err)
		shared.RespondError(w, http.StatusInternalServerError, "could not list degree courses")
		return
	}
	if courses == nil {
		courses = []DegreeCourse{}
	}
	shared.RespondJSON(w, http.StatusOK, courses)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := courseID(w, r)
	if !ok {
		return
	}
	course, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			shared.RespondError(w, http.StatusNotFound, "degree course not found")
			return
		}
		h.logger.Error("get degree course", "err", err)
		shared.RespondError(w, http.StatusInternalServerError, "could not load degree course")
		return
	}
	shared.RespondJSON(w, http.StatusOK, course)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateDegreeCourseRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, shared.ValidationMessage(err))
		return
	}
	course, err := h.store.Create(r.Context(), &DegreeCourse{
		UniversityName:      req.UniversityName,
		UniversityShortName: req.UniversityShortName,
		DepartmentName:      req.DepartmentName,
		DepartmentShortName: req.DepartmentShortName,
		Name:                req.Name,
		ShortName:           req.ShortName,
	})
	if err != nil {
		h.logger.Error("create degree course", "err", err)
		shared.RespondError(w, http.StatusInternalServerError, "could not create degree course")
		return
	}
	shared.RespondJSON(w, http.StatusCreated, course)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := courseID(w, r)
	if !ok {
		return
	}
	var req UpdateDegreeCourseRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, shared.ValidationMessage(err))
		return
	}
	course, err := h.store.Update(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			shared.RespondError(w, http.StatusNotFound, "degree course not found")
			return
		}
		h.logger.Error("update degree course", "err", err)
		shared.RespondError(w, http.StatusInternalServerError, "could not update degree course")
		return
	}
	shared.RespondJSON(w, http.StatusOK, course)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := courseID(w, r)
	if !ok {
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			shared.RespondError(w, http.StatusNotFound, "degree course not found")
			return
		}
		h.logger.Error("delete degree course", "err", err)
		shared.RespondError(w, http.StatusInternalServerError, "could not delete degree course")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
