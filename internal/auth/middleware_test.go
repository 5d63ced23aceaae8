package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gateSetup(t *testing.T) (*Service, *User) {
	t.Helper()
	u := testUser(t, "secret1")
	store := &fakeUserSource{users: map[string]*User{"alice": u}}
	return NewService(store, "test-secret", time.Hour), u
}

func runGate(svc *Service, header string) (*httptest.ResponseRecorder, *User, bool) {
	var captured *User
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		captured, _ = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	Middleware(svc)(next).ServeHTTP(rec, req)
	return rec, captured, called
}

func TestMiddlewareNoHeader(t *testing.T) {
	svc, _ := gateSetup(t)
	rec, _, called := runGate(svc, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "authentication required")
	assert.False(t, called)
}

func TestMiddlewareBasicCredentials(t *testing.T) {
	svc, _ := gateSetup(t)
	// base64 of alice:secret1 - raw credentials, not a token.
	rec, _, called := runGate(svc, "Basic YWxpY2U6c2VjcmV0MQ==")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token format")
	assert.False(t, called)
}

func TestMiddlewareInvalidToken(t *testing.T) {
	svc, _ := gateSetup(t)
	rec, _, called := runGate(svc, "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token")
	assert.False(t, called)
}

func TestMiddlewareUnknownUser(t *testing.T) {
	svc, u := gateSetup(t)
	ghost := *u
	ghost.UserID = "ghost"
	token, err := svc.IssueToken(&ghost)
	require.NoError(t, err)

	rec, _, called := runGate(svc, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "user not found")
	assert.False(t, called)
}

func TestMiddlewareAttachesSanitizedUser(t *testing.T) {
	svc, u := gateSetup(t)
	token, err := svc.IssueToken(u)
	require.NoError(t, err)

	rec, captured, called := runGate(svc, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, called)
	require.NotNil(t, captured)
	assert.Equal(t, "alice", captured.UserID)
	assert.Empty(t, captured.PasswordHash, "credential must be stripped before the handler runs")
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	run := func(u *User) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		if u != nil {
			req = req.WithContext(WithUser(req.Context(), u))
		}
		rec := httptest.NewRecorder()
		RequireAdmin(next).ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusUnauthorized, run(nil).Code)
	assert.Equal(t, http.StatusForbidden, run(&User{UserID: "alice"}).Code)
	assert.Equal(t, http.StatusOK, run(&User{UserID: "root", IsAdministrator: true}).Code)
}

func TestCanAccess(t *testing.T) {
	alice := &User{UserID: "alice"}
	admin := &User{UserID: "root", IsAdministrator: true}

	assert.True(t, CanAccess(alice, "alice"))
	assert.True(t, CanAccess(alice, "Alice"), "owner match is case-insensitive")
	assert.False(t, CanAccess(alice, "bob"))
	assert.True(t, CanAccess(admin, "bob"))
	assert.False(t, CanAccess(nil, "bob"))
}
