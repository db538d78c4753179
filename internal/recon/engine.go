// Package recon keeps the inventory, purchase-request, and bill-of-materials
// collections consistent with each other. Every operation follows the same
// read-full-collection, compute, write-full-collection cycle against the
// keyed store; an engine-internal mutex serializes operations so a UI call
// and a timer tick cannot interleave their cycles in-process. The store
// itself offers no such guarantee across processes (see the store package).
package recon

import (
	"errors"
	"log"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"launchops/internal/models"
	"launchops/internal/monitoring"
	"launchops/internal/store"
)

var (
	ErrNotCompleted = errors.New("purchase request is not completed")
)

// Event describes one engine action, published to the dashboard feed.
type Event struct {
	Type   string                 `json:"type"`
	Detail map[string]interface{} `json:"detail,omitempty"`
	At     time.Time              `json:"at"`
}

// Publisher receives engine events. Implemented by the websocket hub.
type Publisher interface {
	Publish(Event)
}

// Engine runs the reconciliation operations against a keyed store.
type Engine struct {
	store   store.Store
	mu      sync.Mutex
	now     func() time.Time
	monitor *monitoring.Monitor
	feed    Publisher
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the engine's time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithMonitor records operation counts into the given monitor.
func WithMonitor(m *monitoring.Monitor) Option {
	return func(e *Engine) { e.monitor = m }
}

// WithPublisher forwards engine events to the given publisher.
func WithPublisher(p Publisher) Option {
	return func(e *Engine) { e.feed = p }
}

// NewEngine creates an engine over the given store.
func NewEngine(s store.Store, opts ...Option) *Engine {
	e := &Engine{
		store: s,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) record(metric string) {
	if e.monitor != nil {
		e.monitor.Increment(metric)
	}
}

func (e *Engine) publish(eventType string, detail map[string]interface{}) {
	if e.feed != nil {
		e.feed.Publish(Event{Type: eventType, Detail: detail, At: e.now()})
	}
}

// SyncPurchaseToInventory applies a completed purchase to the inventory
// collection: an existing item matched by (name, vendor) accumulates the
// purchased quantity; an unmatched pair synthesizes a new item with
// inferred category and derived thresholds. The stock increment is one-way;
// nothing compensates it if the purchase is later disputed.
func (e *Engine) SyncPurchaseToInventory(req models.PurchaseRequest) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.syncPurchaseToInventory(req)
}

func (e *Engine) syncPurchaseToInventory(req models.PurchaseRequest) error {
	if req.Status != models.StatusCompleted {
		return ErrNotCompleted
	}

	items, err := store.Collection[models.InventoryItem](e.store, store.KeyInventory)
	if err != nil {
		return err
	}

	updatedBy := req.RequestedBy
	if updatedBy == "" {
		updatedBy = models.SystemUser
	}

	matched := false
	for i := range items {
		if items[i].Matches(req.ItemName, req.Vendor) {
			items[i].CurrentStock += req.Quantity
			items[i].Quantity += req.Quantity
			items[i].LastUpdated = e.now()
			items[i].UpdatedBy = updatedBy
			matched = true
			break
		}
	}

	if !matched {
		reorder := max(5, int(math.Floor(float64(req.Quantity)*0.2)))
		minStock := max(3, int(math.Floor(float64(req.Quantity)*0.1)))
		items = append(items, models.InventoryItem{
			ID:           uuid.NewString(),
			Name:         req.ItemName,
			Vendor:       req.Vendor,
			Category:     CategoryFromTeam(req.Team),
			UnitPrice:    req.UnitPrice,
			CurrentStock: req.Quantity,
			Quantity:     req.Quantity,
			ReorderPoint: &reorder,
			MinStock:     &minStock,
			Location:     models.DefaultLocation,
			LastUpdated:  e.now(),
			UpdatedBy:    updatedBy,
		})
	}

	if err := store.SaveCollection(e.store, store.KeyInventory, items); err != nil {
		return err
	}

	e.record("purchases_synced")
	monitoring.PurchasesSynced.Inc()
	e.publish("purchase_synced", map[string]interface{}{
		"itemName": req.ItemName,
		"vendor":   req.Vendor,
		"quantity": req.Quantity,
	})
	return nil
}

// SyncBOMWithInventory computes the shortfall drafts for a bill of
// materials without touching any collection: one pending low-stock draft
// per line whose required quantity exceeds available stock. BOM lines match
// inventory by name only.
func (e *Engine) SyncBOMWithInventory(bom models.BillOfMaterials) ([]models.PurchaseRequest, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	items, err := store.Collection[models.InventoryItem](e.store, store.KeyInventory)
	if err != nil {
		return nil, err
	}

	var drafts []models.PurchaseRequest
	for _, line := range bom.Lines() {
		available := 0
		if item := findByName(items, line.ItemName); item != nil {
			available = item.CurrentStock
		}
		if available >= line.RequiredQuantity {
			continue
		}
		drafts = append(drafts, models.PurchaseRequest{
			ItemName:       line.ItemName,
			Vendor:         line.Vendor,
			Quantity:       line.RequiredQuantity - available,
			UnitPrice:      line.UnitPrice,
			Team:           line.Team,
			Status:         models.StatusPending,
			Urgency:        models.UrgencyMedium,
			IsLowStockItem: true,
		})
	}
	return drafts, nil
}

// AllocateInventoryToBOM consumes stock for each BOM line that can be
// covered in full. Lines are evaluated independently: an insufficient line
// is skipped without affecting its siblings, and there is no rollback of
// lines already allocated.
func (e *Engine) AllocateInventoryToBOM(bom models.BillOfMaterials) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	items, err := store.Collection[models.InventoryItem](e.store, store.KeyInventory)
	if err != nil {
		return err
	}

	allocated := 0
	for _, line := range bom.Lines() {
		item := findByName(items, line.ItemName)
		if item == nil || item.CurrentStock < line.RequiredQuantity {
			continue
		}
		item.CurrentStock -= line.RequiredQuantity
		item.LastUpdated = e.now()
		item.UpdatedBy = models.SystemUser
		allocated++
	}

	if err := store.SaveCollection(e.store, store.KeyInventory, items); err != nil {
		return err
	}

	if allocated > 0 {
		e.record("bom_allocations")
		monitoring.Allocations.Add(float64(allocated))
		e.publish("bom_allocated", map[string]interface{}{
			"bom":   bom.Name,
			"lines": allocated,
		})
	}
	return nil
}

// GenerateLowStockPurchaseRequests scans inventory and drafts one pending
// request per item at or below its low-stock threshold. Out-of-stock items
// are drafted critical/important-urgent, the rest high/important-not-urgent.
// Drafts are returned, not persisted; FullSync dedupes and appends them.
func (e *Engine) GenerateLowStockPurchaseRequests() ([]models.PurchaseRequest, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generateLowStockPurchaseRequests()
}

func (e *Engine) generateLowStockPurchaseRequests() ([]models.PurchaseRequest, error) {
	items, err := store.Collection[models.InventoryItem](e.store, store.KeyInventory)
	if err != nil {
		return nil, err
	}

	var drafts []models.PurchaseRequest
	for _, item := range items {
		if item.CurrentStock > item.LowStockThreshold() {
			continue
		}

		reorder := 0
		if item.ReorderPoint != nil {
			reorder = *item.ReorderPoint
		}
		urgency := models.UrgencyHigh
		quadrant := models.QuadrantImportantNotUrgent
		if item.CurrentStock == 0 {
			urgency = models.UrgencyCritical
			quadrant = models.QuadrantImportantUrgent
		}

		drafts = append(drafts, models.PurchaseRequest{
			ItemName:           item.Name,
			Vendor:             item.Vendor,
			Quantity:           max(reorder*2, 10),
			UnitPrice:          item.UnitPrice,
			Team:               TeamFromCategory(item.Category),
			Status:             models.StatusPending,
			Urgency:            urgency,
			EisenhowerQuadrant: quadrant,
			IsLowStockItem:     true,
		})
	}
	return drafts, nil
}

// SyncPurchaseListsWithVendors prunes vendor ids that no longer exist in
// the vendor directory from every purchase list. Items referencing a pruned
// vendor are left alone; this is a referential-integrity sweep only.
func (e *Engine) SyncPurchaseListsWithVendors() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.syncPurchaseListsWithVendors()
}

func (e *Engine) syncPurchaseListsWithVendors() error {
	lists, err := store.Collection[models.PurchaseList](e.store, store.KeyPurchaseLists)
	if err != nil {
		return err
	}
	vendors, err := store.Collection[models.Vendor](e.store, store.KeyVendors)
	if err != nil {
		return err
	}

	live := make(map[string]bool, len(vendors))
	for _, v := range vendors {
		live[v.ID] = true
	}

	for i := range lists {
		kept := lists[i].Vendors[:0]
		for _, id := range lists[i].Vendors {
			if live[id] {
				kept = append(kept, id)
			}
		}
		lists[i].Vendors = kept
	}

	return store.SaveCollection(e.store, store.KeyPurchaseLists, lists)
}

// FullSync is the periodic reconciliation job: prune stale vendor
// references, generate low-stock drafts, dedupe them against the open
// low-stock requests already on file, and persist the survivors. Sub-step
// failures are logged and skipped; the next tick retries by polling. This
// is the idempotency boundary for the whole engine.
func (e *Engine) FullSync() {
	e.mu.Lock()
	defer e.mu.Unlock()

	monitoring.SyncTicks.Inc()
	e.record("full_syncs")

	if err := e.syncPurchaseListsWithVendors(); err != nil {
		log.Printf("recon: vendor sweep failed: %v", err)
	}

	drafts, err := e.generateLowStockPurchaseRequests()
	if err != nil {
		log.Printf("recon: low-stock scan failed: %v", err)
		drafts = nil
	}

	if len(drafts) > 0 {
		if err := e.appendNewDrafts(drafts); err != nil {
			log.Printf("recon: draft append failed: %v", err)
		}
	}

	e.publish("full_sync", nil)
}

// appendNewDrafts filters drafts against the existing request collection
// using the (itemName, vendor, status=pending, isLowStockItem) key and
// appends the survivors.
func (e *Engine) appendNewDrafts(drafts []models.PurchaseRequest) error {
	requests, err := store.Collection[models.PurchaseRequest](e.store, store.KeyPurchaseRequests)
	if err != nil {
		return err
	}

	open := make(map[string]bool)
	for _, r := range requests {
		if r.IsOpenLowStock() {
			open[r.DedupeKey()] = true
		}
	}

	appended := 0
	for _, d := range drafts {
		if open[d.DedupeKey()] {
			continue
		}
		d.ID = uuid.NewString()
		d.CreatedAt = e.now()
		d.UpdatedAt = d.CreatedAt
		requests = append(requests, d)
		open[d.DedupeKey()] = true
		appended++
	}

	if appended == 0 {
		return nil
	}
	if err := store.SaveCollection(e.store, store.KeyPurchaseRequests, requests); err != nil {
		return err
	}

	monitoring.DraftsGenerated.Add(float64(appended))
	e.record("low_stock_drafts")
	e.publish("low_stock_drafts", map[string]interface{}{"count": appended})
	log.Printf("recon: appended %d low-stock purchase requests", appended)
	return nil
}

// WasSynced reports whether a completed request id is already recorded in
// the processed ledger.
func (e *Engine) WasSynced(requestID string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ids, err := store.Collection[string](e.store, store.KeySyncedRequests)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == requestID {
			return true, nil
		}
	}
	return false, nil
}

// MarkSynced records a completed request id in the processed ledger so a
// replayed completion does not increment stock twice. The engine operations
// themselves do not consult the ledger; the completion handler does.
func (e *Engine) MarkSynced(requestID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ids, err := store.Collection[string](e.store, store.KeySyncedRequests)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == requestID {
			return nil
		}
	}
	ids = append(ids, requestID)
	return store.SaveCollection(e.store, store.KeySyncedRequests, ids)
}

func findByName(items []models.InventoryItem, name string) *models.InventoryItem {
	for i := range items {
		if strings.EqualFold(items[i].Name, name) {
			return &items[i]
		}
	}
	return nil
}
