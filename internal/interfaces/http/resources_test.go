package http_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bazar-api/internal/application/dto"
)

type fixture struct {
	catalog  dto.CatalogResponse
	category dto.CategoryResponse
	product  dto.ProductResponse
}

func (e *testEnv) seed(t *testing.T, token string) fixture {
	t.Helper()
	var f fixture
	resp := e.do(t, http.MethodPost, "/v1/catalogs/", token, map[string]any{"name": "Verano", "description": "Ropa de temporada"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &f.catalog)

	resp = e.do(t, http.MethodPost, "/v1/categories/", token, map[string]any{"name": "Camisas"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &f.category)

	resp = e.do(t, http.MethodPost, "/v1/products/", token, map[string]any{
		"name":        "Camisa lino",
		"description": "Talla M",
		"price":       "9.99",
		"catalog_id":  f.catalog.ID,
		"category_id": f.category.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &f.product)
	return f
}

func TestProtectedRoutes_RequireBearer(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/v1/catalogs/", "/v1/categories/", "/v1/products/", "/v1/users/me"} {
		resp := env.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
		assert.Equal(t, "UNAUTHORIZED", errorCode(t, resp))
	}

	resp := env.do(t, http.MethodGet, "/v1/catalogs/", "no-es-un-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoutes_DeletedUserTokenRejected(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "eva")

	resp := env.do(t, http.MethodDelete, "/v1/users/me", token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/v1/catalogs/", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOwnership_OtherUsersResourcesAreNotFound(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	f := env.seed(t, bob)

	paths := []string{
		fmt.Sprintf("/v1/catalogs/%d", f.catalog.ID),
		fmt.Sprintf("/v1/categories/%d", f.category.ID),
		fmt.Sprintf("/v1/products/%d", f.product.ID),
	}
	for _, path := range paths {
		resp := env.do(t, http.MethodGet, path, alice, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		assert.Equal(t, "NOT_FOUND", errorCode(t, resp))

		resp = env.do(t, http.MethodDelete, path, alice, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}

	resp := env.do(t, http.MethodPut, paths[0], alice, map[string]any{"name": "robado"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = env.do(t, http.MethodPut, paths[1], alice, map[string]any{"name": "robada"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Un id inexistente responde igual que un id ajeno.
	resp = env.do(t, http.MethodGet, "/v1/catalogs/999999", alice, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = env.do(t, http.MethodGet, "/v1/catalogs/abc", alice, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Los datos de bob siguen intactos.
	resp = env.do(t, http.MethodGet, paths[0], bob, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var catalog dto.CatalogResponse
	decode(t, resp, &catalog)
	assert.Equal(t, "Verano", catalog.Name)
}

func TestList_NeverIncludesOtherTenants(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	env.seed(t, bob)
	env.seed(t, bob)
	mine := env.seed(t, alice)

	var catalogs []dto.CatalogResponse
	decode(t, env.do(t, http.MethodGet, "/v1/catalogs/", alice, nil), &catalogs)
	require.Len(t, catalogs, 1)
	assert.Equal(t, mine.catalog.ID, catalogs[0].ID)

	var products []dto.ProductResponse
	decode(t, env.do(t, http.MethodGet, "/v1/products/", alice, nil), &products)
	require.Len(t, products, 1)
	assert.Equal(t, mine.product.ID, products[0].ID)

	var categories []dto.CategoryResponse
	decode(t, env.do(t, http.MethodGet, "/v1/categories", bob, nil), &categories)
	assert.Len(t, categories, 2)
	for _, c := range categories {
		assert.NotEqual(t, mine.category.ID, c.ID)
	}
}

func TestProduct_PriceRoundTripsExactly(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "fer")
	f := env.seed(t, token)
	assert.Equal(t, "9.99", f.product.Price.String())

	path := fmt.Sprintf("/v1/products/%d", f.product.ID)
	resp := env.do(t, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), `"price":"9.99"`)

	// El precio también se acepta como número JSON.
	resp = env.do(t, http.MethodPut, path, token, `{"name":"Camisa lino","price":9.99,"catalog_id":`+
		fmt.Sprint(f.catalog.ID)+`,"category_id":`+fmt.Sprint(f.category.ID)+`}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated dto.ProductResponse
	decode(t, resp, &updated)
	assert.Equal(t, "9.99", updated.Price.String())

	resp = env.do(t, http.MethodGet, path, token, nil)
	assert.Contains(t, readBody(t, resp), `"price":"9.99"`)
}

func TestProduct_InvalidPriceRejected(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "gabi")
	f := env.seed(t, token)

	for _, price := range []string{"-1", "9.999", "100000000"} {
		resp := env.do(t, http.MethodPost, "/v1/products/", token, map[string]any{
			"name": "x", "price": price, "catalog_id": f.catalog.ID, "category_id": f.category.ID,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, price)
	}
	resp := env.do(t, http.MethodPost, "/v1/products/", token, map[string]any{
		"name": "x", "catalog_id": f.catalog.ID, "category_id": f.category.ID,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))
}

func TestProduct_ForeignCatalogOrCategoryRejected(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	theirs := env.seed(t, bob)
	mine := env.seed(t, alice)

	resp := env.do(t, http.MethodPost, "/v1/products/", alice, map[string]any{
		"name": "x", "price": "1.00", "catalog_id": theirs.catalog.ID, "category_id": mine.category.ID,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_REFERENCE", errorCode(t, resp))

	resp = env.do(t, http.MethodPut, fmt.Sprintf("/v1/products/%d", mine.product.ID), alice, map[string]any{
		"name": "x", "price": "1.00", "catalog_id": mine.catalog.ID, "category_id": theirs.category.ID,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_REFERENCE", errorCode(t, resp))
}

func TestCatalog_PartialUpdateKeepsOtherFields(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "hugo")
	f := env.seed(t, token)
	path := fmt.Sprintf("/v1/catalogs/%d", f.catalog.ID)

	resp := env.do(t, http.MethodPut, path, token, map[string]any{"name": "Invierno"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.CatalogResponse
	decode(t, resp, &out)
	assert.Equal(t, "Invierno", out.Name)
	require.NotNil(t, out.Description)
	assert.Equal(t, "Ropa de temporada", *out.Description)
	assert.Equal(t, f.catalog.CreatedAt.Unix(), out.CreatedAt.Unix())

	resp = env.do(t, http.MethodPut, path, token, map[string]any{"description": "Nueva"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &out)
	assert.Equal(t, "Invierno", out.Name)
	assert.Equal(t, "Nueva", *out.Description)

	resp = env.do(t, http.MethodPut, fmt.Sprintf("/v1/categories/%d", f.category.ID), token, map[string]any{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var category dto.CategoryResponse
	decode(t, resp, &category)
	assert.Equal(t, "Camisas", category.Name)
}

func TestProduct_UpdateOverwritesAllFields(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "ines")
	f := env.seed(t, token)
	require.NotNil(t, f.product.Description)

	resp := env.do(t, http.MethodPut, fmt.Sprintf("/v1/products/%d", f.product.ID), token, map[string]any{
		"name": "Camisa algodón", "price": "12.50", "catalog_id": f.catalog.ID, "category_id": f.category.ID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.ProductResponse
	decode(t, resp, &out)
	assert.Equal(t, "Camisa algodón", out.Name)
	assert.Nil(t, out.Description)
	assert.Equal(t, "12.5", out.Price.String())

	// Sin los campos requeridos no hay actualización.
	resp = env.do(t, http.MethodPut, fmt.Sprintf("/v1/products/%d", f.product.ID), token, map[string]any{"name": "solo nombre"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteUser_CascadesToOwnedResources(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	f := env.seed(t, bob)

	resp := env.do(t, http.MethodDelete, "/v1/users/me", bob, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, readBody(t, resp))

	ctx := context.Background()
	repos := env.store.Repositories()
	c, err := repos.Catalogs.GetOwned(ctx, f.catalog.ID, f.catalog.OwnerID)
	require.NoError(t, err)
	assert.Nil(t, c)
	p, err := repos.Products.GetOwned(ctx, f.product.ID, f.product.OwnerID)
	require.NoError(t, err)
	assert.Nil(t, p)

	resp = env.do(t, http.MethodGet, fmt.Sprintf("/v1/products/%d", f.product.ID), alice, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteCatalog_CascadesToProducts(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "juan")
	f := env.seed(t, token)

	resp := env.do(t, http.MethodDelete, fmt.Sprintf("/v1/catalogs/%d", f.catalog.ID), token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = env.do(t, http.MethodGet, fmt.Sprintf("/v1/products/%d", f.product.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = env.do(t, http.MethodGet, fmt.Sprintf("/v1/categories/%d", f.category.ID), token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStorageFailure_Returns500WithGenericMessage(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "kai")
	env.store.FailWith(fmt.Errorf("conexión rechazada: 10.0.0.1:5432"))

	resp := env.do(t, http.MethodGet, "/v1/catalogs/", token, nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "INTERNAL")
	assert.NotContains(t, body, "10.0.0.1")
}

func TestUpdateMe(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "lola")
	env.register(t, "mara")

	resp := env.do(t, http.MethodPut, "/v1/users/me", token, map[string]any{"username": "mara"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "USER_EXISTS", errorCode(t, resp))

	resp = env.do(t, http.MethodPut, "/v1/users/me", token, map[string]any{"password": "nueva-clave"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me dto.UserResponse
	decode(t, resp, &me)
	assert.Equal(t, "lola", me.Username)
	assert.Equal(t, "lola@bazar.test", me.Email)

	resp = env.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{"username": "lola", "password": "nueva-clave"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = env.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{"username": "lola", "password": "secret-lola"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
