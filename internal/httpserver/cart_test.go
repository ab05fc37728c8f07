package httpserver

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type cartResp struct {
	ID    uuid.UUID `json:"id"`
	Items []struct {
		ID      uint `json:"id"`
		Product struct {
			ID        uint            `json:"id"`
			Title     string          `json:"title"`
			UnitPrice decimal.Decimal `json:"unit_price"`
		} `json:"product"`
		Quantity   int             `json:"quantity"`
		TotalPrice decimal.Decimal `json:"total_price"`
	} `json:"items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

func createCart(t *testing.T, env *testEnv) uuid.UUID {
	t.Helper()
	rec := env.doJSON(http.MethodPost, "/store/carts", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp cartResp
	env.decode(rec, &resp)
	require.NotEqual(t, uuid.Nil, resp.ID)
	return resp.ID
}

func TestCartLifecycle(t *testing.T) {
	env := newTestEnv(t)
	collection := seedCollection(t, env, "bakery")
	bread := seedProduct(t, env, collection.ID, "bread", "2.50", 10)

	cartID := createCart(t, env)

	// Anonymous access: possession of the id is enough.
	rec := env.doJSON(http.MethodPost, "/store/carts/"+cartID.String()+"/items",
		map[string]interface{}{"product_id": bread.ID, "quantity": 2})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.doJSON(http.MethodGet, "/store/carts/"+cartID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp cartResp
	env.decode(rec, &resp)
	require.Len(t, resp.Items, 1)
	require.Equal(t, 2, resp.Items[0].Quantity)
	require.True(t, resp.TotalPrice.Equal(mustDecimal(t, "5.00")))

	rec = env.doJSON(http.MethodDelete, "/store/carts/"+cartID.String(), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.doJSON(http.MethodGet, "/store/carts/"+cartID.String(), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartMalformedID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(http.MethodGet, "/store/carts/not-a-uuid", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddItemUnknownProduct(t *testing.T) {
	env := newTestEnv(t)
	cartID := createCart(t, env)

	rec := env.doJSON(http.MethodPost, "/store/carts/"+cartID.String()+"/items",
		map[string]interface{}{"product_id": 99, "quantity": 1})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddItemMergesDuplicateProduct(t *testing.T) {
	env := newTestEnv(t)
	collection := seedCollection(t, env, "bakery")
	bread := seedProduct(t, env, collection.ID, "bread", "2.50", 10)
	cartID := createCart(t, env)

	body := map[string]interface{}{"product_id": bread.ID, "quantity": 2}
	rec := env.doJSON(http.MethodPost, "/store/carts/"+cartID.String()+"/items", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = env.doJSON(http.MethodPost, "/store/carts/"+cartID.String()+"/items", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.doJSON(http.MethodGet, "/store/carts/"+cartID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp cartResp
	env.decode(rec, &resp)
	require.Len(t, resp.Items, 1)
	require.Equal(t, 4, resp.Items[0].Quantity)
}

func TestUpdateAndRemoveItem(t *testing.T) {
	env := newTestEnv(t)
	collection := seedCollection(t, env, "bakery")
	bread := seedProduct(t, env, collection.ID, "bread", "2.50", 10)
	cartID := createCart(t, env)

	rec := env.doJSON(http.MethodPost, "/store/carts/"+cartID.String()+"/items",
		map[string]interface{}{"product_id": bread.ID, "quantity": 5})
	require.Equal(t, http.StatusCreated, rec.Code)

	var added struct {
		ID uint `json:"id"`
	}
	env.decode(rec, &added)

	itemPath := "/store/carts/" + cartID.String() + "/items/1"
	rec = env.doJSON(http.MethodPatch, itemPath, map[string]interface{}{"quantity": 1})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated struct {
		Quantity int `json:"quantity"`
	}
	env.decode(rec, &updated)
	require.Equal(t, 1, updated.Quantity)

	rec = env.doJSON(http.MethodDelete, itemPath, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	var resp cartResp
	rec = env.doJSON(http.MethodGet, "/store/carts/"+cartID.String(), nil)
	env.decode(rec, &resp)
	require.Empty(t, resp.Items)
}
