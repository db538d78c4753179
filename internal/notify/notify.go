// Package notify implements the two non-reconciliation scheduled jobs: the
// morning digest and the overdue purchase-request scan. Both only read the
// store and report; neither mutates any collection.
package notify

import (
	"log"
	"time"

	"launchops/internal/models"
	"launchops/internal/recon"
	"launchops/internal/store"
)

// Notifier produces digest and overdue reports from store snapshots.
type Notifier struct {
	store      store.Store
	now        func() time.Time
	feed       recon.Publisher
	overdueAge time.Duration
}

// New creates a notifier. Requests pending longer than overdueAge are
// considered overdue.
func New(s store.Store, overdueAge time.Duration) *Notifier {
	return &Notifier{store: s, now: time.Now, overdueAge: overdueAge}
}

// WithClock overrides the notifier's time source.
func (n *Notifier) WithClock(now func() time.Time) *Notifier {
	n.now = now
	return n
}

// WithPublisher forwards reports to the dashboard feed.
func (n *Notifier) WithPublisher(p recon.Publisher) *Notifier {
	n.feed = p
	return n
}

// Digest summarizes the morning state: open purchase requests and low-stock
// item counts.
type Digest struct {
	PendingRequests int `json:"pendingRequests"`
	LowStockItems   int `json:"lowStockItems"`
}

// DailyDigest computes and logs the morning summary.
func (n *Notifier) DailyDigest() Digest {
	var d Digest

	requests, err := store.Collection[models.PurchaseRequest](n.store, store.KeyPurchaseRequests)
	if err != nil {
		log.Printf("notify: digest request scan failed: %v", err)
	}
	for _, r := range requests {
		if r.Status == models.StatusPending {
			d.PendingRequests++
		}
	}

	items, err := store.Collection[models.InventoryItem](n.store, store.KeyInventory)
	if err != nil {
		log.Printf("notify: digest inventory scan failed: %v", err)
	}
	for _, item := range items {
		if item.CurrentStock <= item.LowStockThreshold() {
			d.LowStockItems++
		}
	}

	log.Printf("notify: daily digest: %d pending requests, %d low-stock items",
		d.PendingRequests, d.LowStockItems)
	if n.feed != nil {
		n.feed.Publish(recon.Event{
			Type: "daily_digest",
			Detail: map[string]interface{}{
				"pendingRequests": d.PendingRequests,
				"lowStockItems":   d.LowStockItems,
			},
			At: n.now(),
		})
	}
	return d
}

// OverdueScan returns the pending requests that have sat unactioned longer
// than the configured age.
func (n *Notifier) OverdueScan() []models.PurchaseRequest {
	requests, err := store.Collection[models.PurchaseRequest](n.store, store.KeyPurchaseRequests)
	if err != nil {
		log.Printf("notify: overdue scan failed: %v", err)
		return nil
	}

	cutoff := n.now().Add(-n.overdueAge)
	var overdue []models.PurchaseRequest
	for _, r := range requests {
		if r.Status != models.StatusPending || r.CreatedAt.IsZero() {
			continue
		}
		if r.CreatedAt.Before(cutoff) {
			overdue = append(overdue, r)
		}
	}

	if len(overdue) > 0 {
		log.Printf("notify: %d purchase requests overdue", len(overdue))
		if n.feed != nil {
			n.feed.Publish(recon.Event{
				Type:   "overdue_requests",
				Detail: map[string]interface{}{"count": len(overdue)},
				At:     n.now(),
			})
		}
	}
	return overdue
}
