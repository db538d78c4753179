package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"launchops/internal/models"
	"launchops/internal/monitoring"
	"launchops/internal/recon"
	"launchops/internal/store"
)

func newTestServer(t *testing.T, secret string) (*Server, *store.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := store.NewMemoryStore()
	engine := recon.NewEngine(s)
	srv := NewServer(s, engine, monitoring.NewMonitor(), NewHub(), secret)
	return srv, s
}

func doJSON(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, "")
	w := doJSON(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateAndListRequests(t *testing.T) {
	srv, _ := newTestServer(t, "")

	w := doJSON(t, srv, http.MethodPost, "/api/v1/requests", models.PurchaseRequest{
		ItemName: "Widget", Vendor: "V1", Quantity: 10, Team: "Avionics",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.PurchaseRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.StatusPending, created.Status)

	w = doJSON(t, srv, http.MethodGet, "/api/v1/requests?status=pending", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []models.PurchaseRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Len(t, listed, 1)
}

func TestRequestLifecycleAppliesInventoryOnce(t *testing.T) {
	srv, s := newTestServer(t, "")

	w := doJSON(t, srv, http.MethodPost, "/api/v1/requests", models.PurchaseRequest{
		ItemName: "Widget", Vendor: "V1", Quantity: 10, Team: "Avionics",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var req models.PurchaseRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &req))

	transition := func(status models.RequestStatus) *httptest.ResponseRecorder {
		return doJSON(t, srv, http.MethodPost,
			fmt.Sprintf("/api/v1/requests/%s/transition", req.ID),
			map[string]string{"status": string(status)})
	}

	require.Equal(t, http.StatusOK, transition(models.StatusApproved).Code)
	require.Equal(t, http.StatusOK, transition(models.StatusOrdered).Code)
	require.Equal(t, http.StatusOK, transition(models.StatusCompleted).Code)

	items, err := store.Collection[models.InventoryItem](s, store.KeyInventory)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 10, items[0].CurrentStock)

	// Completed is terminal; a replayed completion is rejected and the
	// stock increment is not repeated.
	assert.Equal(t, http.StatusConflict, transition(models.StatusCompleted).Code)
	items, _ = store.Collection[models.InventoryItem](s, store.KeyInventory)
	assert.Equal(t, 10, items[0].CurrentStock)
}

func TestTransitionUndo(t *testing.T) {
	srv, _ := newTestServer(t, "")

	w := doJSON(t, srv, http.MethodPost, "/api/v1/requests", models.PurchaseRequest{
		ItemName: "Widget", Vendor: "V1", Quantity: 2,
	})
	var req models.PurchaseRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &req))

	path := fmt.Sprintf("/api/v1/requests/%s/transition", req.ID)
	w = doJSON(t, srv, http.MethodPost, path, map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, w.Code)

	// approved -> pending undo edge
	w = doJSON(t, srv, http.MethodPost, path, map[string]string{"status": "pending"})
	assert.Equal(t, http.StatusOK, w.Code)

	// pending -> completed is not an edge
	w = doJSON(t, srv, http.MethodPost, path, map[string]string{"status": "completed"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTransitionUnknownRequest(t *testing.T) {
	srv, _ := newTestServer(t, "")
	w := doJSON(t, srv, http.MethodPost, "/api/v1/requests/nope/transition",
		map[string]string{"status": "approved"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMoveToPendingOnlyWhenCompleted(t *testing.T) {
	srv, s := newTestServer(t, "")

	require.NoError(t, store.SaveCollection(s, store.KeyPurchaseRequests, []models.PurchaseRequest{
		{ID: "r1", ItemName: "Widget", Vendor: "V1", Status: models.StatusPending},
		{ID: "r2", ItemName: "Gasket", Vendor: "V2", Status: models.StatusCompleted},
	}))

	w := doJSON(t, srv, http.MethodPost, "/api/v1/requests/r1/move-to-pending", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/api/v1/requests/r2/move-to-pending", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var moved models.PurchaseRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &moved))
	assert.True(t, moved.MovedToPending)
}

func TestBOMShortfallEndpoint(t *testing.T) {
	srv, s := newTestServer(t, "")
	require.NoError(t, store.SaveCollection(s, store.KeyInventory, []models.InventoryItem{
		{Name: "Widget", Vendor: "V1", CurrentStock: 2},
	}))

	w := doJSON(t, srv, http.MethodPost, "/api/v1/bom/shortfall", models.BillOfMaterials{
		ItemName: "Widget", RequiredQuantity: 8, Vendor: "V1", Team: "Avionics",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var drafts []models.PurchaseRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &drafts))
	require.Len(t, drafts, 1)
	assert.Equal(t, 6, drafts[0].Quantity)
}

func TestLowStockEndpoint(t *testing.T) {
	srv, s := newTestServer(t, "")
	five := 5
	require.NoError(t, store.SaveCollection(s, store.KeyInventory, []models.InventoryItem{
		{Name: "Widget", Vendor: "V1", CurrentStock: 2, MinStock: &five},
		{Name: "Gasket", Vendor: "V2", CurrentStock: 50, MinStock: &five},
	}))

	w := doJSON(t, srv, http.MethodGet, "/api/v1/inventory/low-stock", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var low []models.InventoryItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &low))
	require.Len(t, low, 1)
	assert.Equal(t, "Widget", low[0].Name)
}

func TestPurchaseListTotalRecomputed(t *testing.T) {
	srv, _ := newTestServer(t, "")

	w := doJSON(t, srv, http.MethodPost, "/api/v1/lists", models.PurchaseList{
		Name:    "March order",
		Vendors: []string{"v1"},
		Items: []models.PurchaseListItem{
			{ItemName: "Widget", VendorID: "v1", Quantity: 3, UnitPrice: 2.5},
			{ItemName: "Gasket", VendorID: "v1", Quantity: 2, UnitPrice: 1.0},
		},
		TotalAmount: 999, // ignored; recomputed on write
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var list models.PurchaseList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.InDelta(t, 9.5, list.TotalAmount, 0.001)
}

func TestAuthMiddleware(t *testing.T) {
	const secret = "test-secret"
	srv, _ := newTestServer(t, secret)

	// Missing token
	w := doJSON(t, srv, http.MethodGet, "/api/v1/inventory", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Wrong secret
	bad := signToken(t, "other-secret")
	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory", nil)
	req.Header.Set("Authorization", bad)
	rec := httptest.NewRecorder()
	srv.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid token
	good := signToken(t, secret)
	req = httptest.NewRequest(http.MethodGet, "/api/v1/inventory", nil)
	req.Header.Set("Authorization", good)
	rec = httptest.NewRecorder()
	srv.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Health stays open
	w = doJSON(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func signToken(t *testing.T, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "tester"})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}
