package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elcafe/go-admin-client/api"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, router chi.Router) *api.Client {
	t.Helper()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	client, err := api.NewClient(server.URL, server.Client())
	require.NoError(t, err)
	return client
}

func TestMenuCategories(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/menu/restaurants/3/categories", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, "", []map[string]any{
			{"id": 10, "restaurantId": 3, "name": "Starters", "sortOrder": 1, "active": true},
			{"id": 11, "restaurantId": 3, "name": "Mains", "sortOrder": 2, "active": true},
		})
	})
	client := newTestClient(t, router)

	categories, err := client.Menu.Categories(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	require.Equal(t, "Starters", categories[0].Name)
	require.Equal(t, int64(3), categories[0].RestaurantID)
}

func TestMenuCreateProduct(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/products", func(w http.ResponseWriter, r *http.Request) {
		var product api.Product
		require.NoError(t, json.NewDecoder(r.Body).Decode(&product))
		require.Equal(t, "Tortilla", product.Name)
		require.Equal(t, int64(10), product.CategoryID)

		product.ID = 42
		product.Status = api.ProductStatusDraft
		writeEnvelope(w, http.StatusCreated, "", product)
	})
	client := newTestClient(t, router)

	created, err := client.Menu.CreateProduct(context.Background(), api.Product{
		Name:       "Tortilla",
		CategoryID: 10,
		Price:      8.50,
	})
	require.NoError(t, err)
	require.Equal(t, int64(42), created.ID)
	require.Equal(t, api.ProductStatusDraft, created.Status)
}

func TestMenuAddCollectionProducts(t *testing.T) {
	var gotIDs []int64
	router := chi.NewRouter()
	router.Post("/menu-collections/7/products", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotIDs))
		writeEnvelope(w, http.StatusOK, "", nil)
	})
	client := newTestClient(t, router)

	err := client.Menu.AddCollectionProducts(context.Background(), 7, []int64{42, 43})
	require.NoError(t, err)
	require.Equal(t, []int64{42, 43}, gotIDs)
}

func TestMenuCollectionsScopedToRestaurant(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/menu-collections", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "3", r.URL.Query().Get("restaurantId"))
		writeEnvelope(w, http.StatusOK, "", []map[string]any{
			{"id": 7, "restaurantId": 3, "name": "Lunch", "isActive": true},
		})
	})
	client := newTestClient(t, router)

	collections, err := client.Menu.Collections(context.Background(), 3, nil)
	require.NoError(t, err)
	require.Len(t, collections, 1)
	require.True(t, collections[0].Active)
}

func TestMenuLinkedItems(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/products/42/linked-items/by-type", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "UPSELL", r.URL.Query().Get("linkType"))
		writeEnvelope(w, http.StatusOK, "", []map[string]any{
			{"id": 1, "productId": 42, "linkedProductId": 43, "linkType": "UPSELL"},
		})
	})
	client := newTestClient(t, router)

	items, err := client.Menu.LinkedItemsByType(context.Background(), 42, "UPSELL")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, int64(43), items[0].LinkedProductID)
}
