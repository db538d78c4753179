package notify

import (
	"testing"
	"time"

	"launchops/internal/models"
	"launchops/internal/store"
)

func TestDailyDigestCounts(t *testing.T) {
	s := store.NewMemoryStore()
	five := 5

	if err := store.SaveCollection(s, store.KeyPurchaseRequests, []models.PurchaseRequest{
		{ItemName: "Widget", Status: models.StatusPending},
		{ItemName: "Gasket", Status: models.StatusPending},
		{ItemName: "Bolt", Status: models.StatusCompleted},
	}); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveCollection(s, store.KeyInventory, []models.InventoryItem{
		{Name: "Widget", CurrentStock: 2, MinStock: &five},
		{Name: "Gasket", CurrentStock: 50, MinStock: &five},
	}); err != nil {
		t.Fatal(err)
	}

	d := New(s, 24*time.Hour).DailyDigest()
	if d.PendingRequests != 2 {
		t.Errorf("PendingRequests = %d, want 2", d.PendingRequests)
	}
	if d.LowStockItems != 1 {
		t.Errorf("LowStockItems = %d, want 1", d.LowStockItems)
	}
}

func TestOverdueScan(t *testing.T) {
	s := store.NewMemoryStore()
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	if err := store.SaveCollection(s, store.KeyPurchaseRequests, []models.PurchaseRequest{
		{ID: "old", Status: models.StatusPending, CreatedAt: now.Add(-48 * time.Hour)},
		{ID: "fresh", Status: models.StatusPending, CreatedAt: now.Add(-1 * time.Hour)},
		{ID: "old-but-approved", Status: models.StatusApproved, CreatedAt: now.Add(-48 * time.Hour)},
		{ID: "no-timestamp", Status: models.StatusPending},
	}); err != nil {
		t.Fatal(err)
	}

	n := New(s, 24*time.Hour).WithClock(func() time.Time { return now })
	overdue := n.OverdueScan()

	if len(overdue) != 1 || overdue[0].ID != "old" {
		t.Errorf("OverdueScan() = %+v, want just the 48h-old pending request", overdue)
	}
}
