package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-api/internal/config"
	"bookstore-api/internal/domains/home/handler"
	"bookstore-api/internal/domains/user/model"
	"bookstore-api/internal/testutil"
	"bookstore-api/pkg/container"
	"bookstore-api/pkg/logger"
)

const (
	adminPassword    = "Adm1n!pass"
	customerPassword = "Cust0mer!pass"
)

func newTestServer(t *testing.T) (*gin.Engine, *testutil.Catalog) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		App:  config.AppConfig{Environment: config.EnvironmentDevelopment, Version: "test", BcryptCost: 4},
		JWT:  config.JWTConfig{Secret: strings.Repeat("k", 32), Issuer: "bookstore-api"},
		CORS: config.CORSConfig{AllowedOrigins: []string{"*"}},
	}

	cat := testutil.NewCatalog()
	users := testutil.NewUsers()
	users.Add("admin", "admin@bookstore.com", adminPassword, model.RoleAdministrator)
	users.Add("customer01", "customer01@mail.com", customerPassword, model.RoleCustomer)

	c := container.Wire(cfg, logger.Nop(), container.Repositories{
		Authors: cat.Authors,
		Books:   cat.Books,
		Users:   users,
	})
	return SetupRouter(c), cat
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func call(t *testing.T, r http.Handler, method, path, token, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 && strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func login(t *testing.T, r http.Handler, user, password string) string {
	t.Helper()
	w, env := call(t, r, http.MethodPost, "/api/users/login", "",
		`{"username":"`+user+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res model.LoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

func TestAnonymousRoutes(t *testing.T) {
	r, _ := newTestServer(t)

	w, env := call(t, r, http.MethodGet, "/api/home", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), handler.Greeting)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w, _ = call(t, r, http.MethodGet, "/api/health", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "disconnected")
}

func TestCatalogRequiresToken(t *testing.T) {
	r, _ := newTestServer(t)

	for _, path := range []string{"/api/authors", "/api/books", "/api/books/1"} {
		w, _ := call(t, r, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w, _ := call(t, r, http.MethodGet, "/api/authors", "not-a-jwt", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCustomerCannotMutate(t *testing.T) {
	r, cat := newTestServer(t)
	token := login(t, r, "customer01", customerPassword)

	w, _ := call(t, r, http.MethodGet, "/api/authors", token, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = call(t, r, http.MethodPost, "/api/authors", token, `{"first_name":"Jane","last_name":"Doe"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Zero(t, cat.Authors.Len())
}

func TestLoginFailure(t *testing.T) {
	r, _ := newTestServer(t)

	w, env := call(t, r, http.MethodPost, "/api/users", "", `{"username":"admin","password":"wrong-one"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotNil(t, env.Error)
	assert.NotContains(t, w.Body.String(), "wrong-one")
}

func TestCatalogScenario(t *testing.T) {
	r, _ := newTestServer(t)
	token := login(t, r, "admin", adminPassword)

	w, _ := call(t, r, http.MethodPost, "/api/authors", token, `{"first_name":"Jane","last_name":"Doe","bio":"b"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "/api/authors/1", w.Header().Get("Location"))

	w, _ = call(t, r, http.MethodPost, "/api/books", token, `{"title":"Go","price":"12.50","author_id":1}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env := call(t, r, http.MethodGet, "/api/books/1", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	var book struct {
		Title  string `json:"title"`
		Author *struct {
			FirstName string `json:"first_name"`
		} `json:"author"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &book))
	require.NotNil(t, book.Author)
	assert.Equal(t, "Jane", book.Author.FirstName)

	w, env = call(t, r, http.MethodDelete, "/api/authors/1", token, "")
	require.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, env.Error)

	w, _ = call(t, r, http.MethodDelete, "/api/books/1", token, "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w, _ = call(t, r, http.MethodDelete, "/api/authors/1", token, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, _ = call(t, r, http.MethodGet, "/api/authors/1", token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
