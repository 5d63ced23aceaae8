package students

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusgate/internal/auth"
)

const studentUUID = "f3d9c2e4-7b5a-4d1c-9e8f-6a0b3c2d1e4f"

type fakeStore struct {
	students   map[string]*Student
	lastStatus Status
}

func (f *fakeStore) List(ctx context.Context, status Status) ([]Student, error) {
	f.lastStatus = status
	var out []Student
	for _, st := range f.students {
		if status == "" || st.Status == status {
			out = append(out, *st)
		}
	}
	return out, nil
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (*Student, error) {
	st, ok := f.students[id]
	if !ok {
		return nil, ErrNotFound
	}
	copy := *st
	return &copy, nil
}

func (f *fakeStore) Create(ctx context.Context, st *Student) (*Student, error) {
	for _, existing := range f.students {
		if existing.Email == strings.ToLower(st.Email) || existing.StudentID == st.StudentID {
			return nil, ErrDuplicate
		}
	}
	created := *st
	created.ID = studentUUID
	created.Email = strings.ToLower(created.Email)
	if created.Status == "" {
		created.Status = StatusPending
	}
	f.students[created.ID] = &created
	return &created, nil
}

func (f *fakeStore) Update(ctx context.Context, id string, p UpdateStudentRequest) (*Student, error) {
	st, ok := f.students[id]
	if !ok {
		return nil, ErrNotFound
	}
	if p.Status != nil {
		st.Status = *p.Status
	}
	if p.Semester != nil {
		st.Semester = *p.Semester
	}
	return st, nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	if _, ok := f.students[id]; !ok {
		return ErrNotFound
	}
	delete(f.students, id)
	return nil
}

func newFixture() (*fakeStore, *Handler, http.Handler) {
	store := &fakeStore{students: map[string]*Student{
		studentUUID: {
			ID:        studentUUID,
			FirstName: "Mara",
			LastName:  "Schulz",
			Email:     "mara.schulz@example.org",
			StudentID: "1234567",
			Course:    "Informatik",
			Semester:  1,
			Status:    StatusPending,
		},
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(store, logger)

	r := chi.NewRouter()
	r.Post("/students", h.Create)
	r.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				admin := &auth.User{UserID: "root", IsAdministrator: true}
				next.ServeHTTP(w, req.WithContext(auth.WithUser(req.Context(), admin)))
			})
		})
		h.MountRoutes(r)
	})
	return store, h, r
}

func do(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCreateApplication(t *testing.T) {
	_, _, router := newFixture()

	body := `{
		"firstName":"Jonas",
		"lastName":"Weber",
		"email":"Jonas.Weber@Example.org",
		"studentId":"7654321",
		"course":"Cybersecurity",
		"semester":2
	}`
	rec := do(t, router, http.MethodPost, "/students", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created Student
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, StatusPending, created.Status)
	assert.Equal(t, "jonas.weber@example.org", created.Email)
}

func TestCreateApplicationValidation(t *testing.T) {
	_, _, router := newFixture()

	cases := []struct {
		name string
		body string
	}{
		{"bad email", `{"firstName":"J","lastName":"W","email":"nope","studentId":"1234567","course":"Informatik","semester":1}`},
		{"short studentId", `{"firstName":"J","lastName":"W","email":"j@w.de","studentId":"123","course":"Informatik","semester":1}`},
		{"non-numeric studentId", `{"firstName":"J","lastName":"W","email":"j@w.de","studentId":"12345ab","course":"Informatik","semester":1}`},
		{"unknown course", `{"firstName":"J","lastName":"W","email":"j@w.de","studentId":"1234567","course":"Astrologie","semester":1}`},
		{"semester out of range", `{"firstName":"J","lastName":"W","email":"j@w.de","studentId":"1234567","course":"Informatik","semester":11}`},
		{"missing lastName", `{"firstName":"J","email":"j@w.de","studentId":"1234567","course":"Informatik","semester":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/students", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateApplicationDuplicate(t *testing.T) {
	_, _, router := newFixture()

	body := `{"firstName":"M","lastName":"S","email":"mara.schulz@example.org","studentId":"9999999","course":"Informatik","semester":1}`
	rec := do(t, router, http.MethodPost, "/students", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestListStatusFilter(t *testing.T) {
	store, _, router := newFixture()

	rec := do(t, router, http.MethodGet, "/students?status=pending", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, StatusPending, store.lastStatus)

	rec = do(t, router, http.MethodGet, "/students?status=weird", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateStatus(t *testing.T) {
	_, _, router := newFixture()

	rec := do(t, router, http.MethodPut, "/students/"+studentUUID, `{"status":"accepted"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"accepted"`)

	rec = do(t, router, http.MethodPut, "/students/"+studentUUID, `{"status":"maybe"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAndDelete(t *testing.T) {
	_, _, router := newFixture()

	rec := do(t, router, http.MethodGet, "/students/"+studentUUID, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/students/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodDelete, "/students/"+studentUUID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, router, http.MethodDelete, "/students/"+studentUUID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
