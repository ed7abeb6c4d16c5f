package user_test

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
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/taskboard/modules/user"
	"github.com/dmitrymomot/taskboard/pkg/rbac"
	"github.com/dmitrymomot/taskboard/pkg/validator"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Meta  map[string]any  `json:"meta"`
	Error *struct {
		Code    string              `json:"code"`
		Details map[string][]string `json:"details"`
	} `json:"error"`
}

func newServer(t *testing.T, store user.Storage) http.Handler {
	t.Helper()

	auth, err := rbac.NewAuthorizer(context.Background(), rbac.NewMemorySource(rbac.DefaultRoles()))
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := user.NewService(store, log, user.WithBcryptCost(bcrypt.MinCost))
	rt := user.NewRouter(svc, validator.New(), auth, auth.Roles(), log)

	r := chi.NewRouter()
	r.Use(rbac.Middleware(rbac.HeaderExtractor("X-Role")))
	r.Mount("/users", rt.Handle())
	return r
}

func post(t *testing.T, h http.Handler, role, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Role", role)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestCreateUser(t *testing.T) {
	t.Parallel()

	t.Run("hashes password and hides it", func(t *testing.T) {
		store := user.NewMemoryStorage()
		h := newServer(t, store)

		rec, env := post(t, h, "admin", `{"name":" Ada  Lovelace ","email":"  Ada@Example.com","password":"correct horse","role":"member"}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.NotContains(t, rec.Body.String(), "password")

		var u user.User
		require.NoError(t, json.Unmarshal(env.Data, &u))
		assert.Equal(t, "ada@example.com", u.Email)
		assert.Equal(t, "Ada Lovelace", u.Name)
		assert.Equal(t, "member", u.Role)

		users, err := store.List(context.Background())
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.True(t, user.CheckPassword(users[0], "correct horse"))
		assert.False(t, user.CheckPassword(users[0], "wrong"))
	})

	t.Run("invalid input", func(t *testing.T) {
		rec, env := post(t, newServer(t, user.NewMemoryStorage()), "admin",
			`{"name":"","email":"nope","password":"short","role":"owner"}`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, []string{"The name field is required."}, env.Error.Details["name"])
		assert.Equal(t, []string{"The email field must be a valid email address."}, env.Error.Details["email"])
		assert.Equal(t, []string{"The password must be at least 8 characters."}, env.Error.Details["password"])
		require.Len(t, env.Error.Details["role"], 1)
		assert.Contains(t, env.Error.Details["role"][0], "The selected role is invalid.")
	})

	t.Run("duplicate email", func(t *testing.T) {
		h := newServer(t, user.NewMemoryStorage())
		body := `{"name":"Ada","email":"ada@example.com","password":"correct horse","role":"viewer"}`

		rec, _ := post(t, h, "admin", body)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec, env := post(t, h, "admin", strings.Replace(body, "ada@", "ADA@", 1))
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "conflict", env.Error.Code)
	})

	t.Run("only admins create users", func(t *testing.T) {
		rec, _ := post(t, newServer(t, user.NewMemoryStorage()), "manager",
			`{"name":"Ada","email":"ada@example.com","password":"correct horse","role":"viewer"}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestCreateUser_PasswordTooLongForBcrypt(t *testing.T) {
	t.Parallel()

	// 40 runes, 80 bytes.
	password := strings.Repeat("é", 40)
	rec, env := post(t, newServer(t, user.NewMemoryStorage()), "admin",
		`{"name":"Ada","email":"ada@example.com","password":"`+password+`","role":"viewer"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, []string{"The password must not be longer than 72 bytes."}, env.Error.Details["password"])
}

func TestListUsers(t *testing.T) {
	t.Parallel()

	h := newServer(t, user.NewMemoryStorage())
	rec, _ := post(t, h, "admin", `{"name":"Ada","email":"ada@example.com","password":"correct horse","role":"viewer"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	list := func(role string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set("X-Role", role)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	rec = list("manager")
	require.Equal(t, http.StatusOK, rec.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.EqualValues(t, 1, env.Meta["total"])

	assert.Equal(t, http.StatusForbidden, list("member").Code)
}
