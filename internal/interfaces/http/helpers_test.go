package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/bazar-api/internal/application/auth"
	"github.com/jhoicas/bazar-api/internal/application/dto"
	"github.com/jhoicas/bazar-api/internal/application/usecase"
	"github.com/jhoicas/bazar-api/internal/infrastructure/security"
	apphttp "github.com/jhoicas/bazar-api/internal/interfaces/http"
	"github.com/jhoicas/bazar-api/internal/testsupport/memstore"
	"github.com/jhoicas/bazar-api/pkg/jwt"
)

const testJWTSecret = "test-secret-key-for-unit-tests"

type testEnv struct {
	app    *fiber.App
	store  *memstore.Store
	tokens *jwt.Manager
}

// newTestEnv arma la app real sobre el store en memoria, con bcrypt de costo mínimo.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memstore.New()
	tokens, err := jwt.NewManager(jwt.Config{Secret: testJWTSecret, TTL: time.Hour, Issuer: "bazar-test"})
	require.NoError(t, err)
	hasher := security.NewBcryptHasherWithCost(bcrypt.MinCost)

	app := apphttp.NewApp(apphttp.AppConfig{Name: "bazar-test"}, apphttp.RouterDeps{
		AuthUC:     auth.NewAuthUseCase(store, hasher, tokens),
		CatalogUC:  usecase.NewCatalogUseCase(store),
		CategoryUC: usecase.NewCategoryUseCase(store),
		ProductUC:  usecase.NewProductUseCase(store),
		UserUC:     usecase.NewUserUseCase(store, hasher),
	})
	return &testEnv{app: app, store: store, tokens: tokens}
}

// do lanza la petición; body nil, string (form) o cualquier valor serializable a JSON.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	contentType := ""
	switch b := body.(type) {
	case nil:
	case url.Values:
		reader = strings.NewReader(b.Encode())
		contentType = fiber.MIMEApplicationForm
	case string:
		reader = strings.NewReader(b)
		contentType = fiber.MIMEApplicationJSON
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
		contentType = fiber.MIMEApplicationJSON
	}
	req := httptest.NewRequest(method, path, reader)
	if contentType != "" {
		req.Header.Set(fiber.HeaderContentType, contentType)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// register crea un usuario y devuelve su token.
func (e *testEnv) register(t *testing.T, username string) string {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/v1/auth/register", "", map[string]string{
		"email":    username + "@bazar.test",
		"username": username,
		"password": "secret-" + username,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.TokenResponse
	decode(t, resp, &out)
	require.NotEmpty(t, out.AccessToken)
	return out.AccessToken
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var out dto.ErrorResponse
	decode(t, resp, &out)
	return out.Code
}
