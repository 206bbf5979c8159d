package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	catalog "github.com/tair/pos-engine/internal/catalog/domain"
	catalogrepo "github.com/tair/pos-engine/internal/catalog/repository"
	"github.com/tair/pos-engine/internal/inventory/domain"
	"github.com/tair/pos-engine/internal/inventory/repository"
	"github.com/tair/pos-engine/internal/inventory/usecase/command"
	"github.com/tair/pos-engine/internal/inventory/usecase/query"
	"github.com/tair/pos-engine/internal/testutil"
	"github.com/tair/pos-engine/pkg/httpx"
)

type envelope struct {
	Success bool            `json:"success"`
	Kind    string          `json:"kind"`
	Data    json.RawMessage `json:"data"`
}

func setupRouter(t *testing.T) (*mux.Router, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	repo := repository.NewTracedSupplyRepository(repository.NewGormSupplyRepository(db))

	h := NewSupplyHandler(
		command.NewCreateSupplyHandler(repo),
		command.NewRestockHandler(repo),
		query.NewGetSupplyHandler(repo),
		query.NewListSuppliesHandler(repo),
		query.NewListLowStockHandler(repo),
		query.NewListHistoryHandler(repo),
		query.NewGetRecipeHandler(repo),
		query.NewCheckAvailabilityHandler(repo),
	)
	router := mux.NewRouter()
	h.RegisterRoutes(router)
	return router, db
}

func do(t *testing.T, router http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(httpx.ActorHeader, "2")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestSupplyLifecycle(t *testing.T) {
	router, _ := setupRouter(t)

	rec, env := do(t, router, "POST", "/api/supplies", `{"name":"Milk","unit":"ml","stock":500,"min_stock":200}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var supply domain.Supply
	require.NoError(t, json.Unmarshal(env.Data, &supply))
	require.NotZero(t, supply.ID)

	rec, env = do(t, router, "PUT", fmt.Sprintf("/api/supplies/%d/stock", supply.ID), `{"new_stock":150,"notes":"Night count"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var result command.RestockResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.True(t, result.Delta.Equal(decimal.NewFromInt(-350)), result.Delta.String())

	rec, env = do(t, router, "GET", "/api/supplies/low-stock", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var low []domain.Supply
	require.NoError(t, json.Unmarshal(env.Data, &low))
	require.Len(t, low, 1)
	assert.Equal(t, "Milk", low[0].Name)

	rec, env = do(t, router, "GET", fmt.Sprintf("/api/inventory/history?supply_id=%d", supply.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var history []domain.HistoryEntry
	require.NoError(t, json.Unmarshal(env.Data, &history))
	require.Len(t, history, 2)
	assert.Equal(t, "Night count", history[0].Description)
	assert.Equal(t, uint(2), history[0].UserID)

	rec, env = do(t, router, "GET", fmt.Sprintf("/api/supplies/%d", supply.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &supply))
	assert.True(t, supply.Stock.Equal(decimal.NewFromInt(150)))

	rec, env = do(t, router, "GET", "/api/supplies?limit=10", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all []domain.Supply
	require.NoError(t, json.Unmarshal(env.Data, &all))
	assert.Len(t, all, 1)
}

func TestSupplyErrors(t *testing.T) {
	router, _ := setupRouter(t)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
	}{
		{"missing name", "POST", "/api/supplies", `{"unit":"g"}`, http.StatusBadRequest},
		{"negative opening stock", "POST", "/api/supplies", `{"name":"Sugar","unit":"g","stock":-1}`, http.StatusBadRequest},
		{"unknown supply", "GET", "/api/supplies/99", "", http.StatusNotFound},
		{"restock unknown supply", "PUT", "/api/supplies/99/stock", `{"new_stock":1}`, http.StatusNotFound},
		{"negative restock", "PUT", "/api/supplies/1/stock", `{"new_stock":-5}`, http.StatusBadRequest},
		{"bad lookback", "GET", "/api/inventory/history?days=abc", "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, router, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.False(t, env.Success)
		})
	}
}

func TestCheckAvailability(t *testing.T) {
	router, db := setupRouter(t)
	ctx := context.Background()

	supplies := repository.NewGormSupplyRepository(db)
	beans := &domain.Supply{Name: "Coffee beans", Unit: "g", Stock: decimal.NewFromInt(40)}
	require.NoError(t, supplies.Create(ctx, beans, 0))

	products := catalogrepo.NewGormProductRepository(db)
	espresso := &catalog.Product{Name: "Espresso", Active: true}
	require.NoError(t, products.Create(ctx, espresso))
	require.NoError(t, products.SetRecipe(ctx, espresso.ID, []catalog.RecipeLine{
		{SupplyID: beans.ID, Quantity: decimal.NewFromInt(18)},
	}))

	rec, env := do(t, router, "GET", fmt.Sprintf("/api/products/%d/availability?quantity=2", espresso.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var ok query.Availability
	require.NoError(t, json.Unmarshal(env.Data, &ok))
	assert.True(t, ok.Available)
	assert.Nil(t, ok.Shortage)

	rec, env = do(t, router, "GET", fmt.Sprintf("/api/products/%d/availability?quantity=3", espresso.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var short query.Availability
	require.NoError(t, json.Unmarshal(env.Data, &short))
	assert.False(t, short.Available)
	require.NotNil(t, short.Shortage)
	assert.Equal(t, "Coffee beans", short.Shortage.SupplyName)

	rec, _ = do(t, router, "GET", "/api/products/99/availability", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetRecipeStock(t *testing.T) {
	router, db := setupRouter(t)
	ctx := context.Background()

	supplies := repository.NewGormSupplyRepository(db)
	milk := &domain.Supply{Name: "Milk", Unit: "ml", Stock: decimal.NewFromInt(900)}
	require.NoError(t, supplies.Create(ctx, milk, 0))
	syrup := &domain.Supply{Name: "Vanilla syrup", Unit: "ml", Stock: decimal.NewFromInt(50)}
	require.NoError(t, supplies.Create(ctx, syrup, 0))

	products := catalogrepo.NewGormProductRepository(db)
	latte := &catalog.Product{Name: "Latte", Active: true}
	require.NoError(t, products.Create(ctx, latte))
	require.NoError(t, products.SetRecipe(ctx, latte.ID, []catalog.RecipeLine{
		{SupplyID: milk.ID, Quantity: decimal.NewFromInt(200)},
		{SupplyID: syrup.ID, Quantity: decimal.NewFromInt(10), Optional: true},
	}))
	water := &catalog.Product{Name: "Tap water", Active: true}
	require.NoError(t, products.Create(ctx, water))

	t.Run("lines with stock", func(t *testing.T) {
		rec, env := do(t, router, "GET", fmt.Sprintf("/api/products/%d/recipe/stock", latte.ID), "")
		require.Equal(t, http.StatusOK, rec.Code)

		var lines []domain.RecipeRequirement
		require.NoError(t, json.Unmarshal(env.Data, &lines))
		require.Len(t, lines, 2)
		assert.Equal(t, "Milk", lines[0].SupplyName)
		assert.Equal(t, "ml", lines[0].Unit)
		assert.True(t, lines[0].Quantity.Equal(decimal.NewFromInt(200)))
		assert.True(t, lines[0].Stock.Equal(decimal.NewFromInt(900)))
		assert.False(t, lines[0].Optional)
		assert.Equal(t, "Vanilla syrup", lines[1].SupplyName)
		assert.True(t, lines[1].Optional)
	})

	t.Run("empty recipe", func(t *testing.T) {
		rec, env := do(t, router, "GET", fmt.Sprintf("/api/products/%d/recipe/stock", water.ID), "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, string(env.Data))
	})

	t.Run("unknown product", func(t *testing.T) {
		rec, env := do(t, router, "GET", "/api/products/999/recipe/stock", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "not_found", env.Kind)
	})
}
