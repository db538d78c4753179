package models

import (
	"strings"
	"time"
)

// InventoryItem represents a stocked part or material in the team's storage.
// Items are matched during reconciliation by the (lowercased name, vendor)
// pair; no surrogate key participates in matching.
type InventoryItem struct {
	ID           string    `json:"id,omitempty"`
	Name         string    `json:"name"`
	Vendor       string    `json:"vendor"`
	Category     string    `json:"category"`
	UnitPrice    float64   `json:"unitPrice"`
	CurrentStock int       `json:"currentStock"`
	Quantity     int       `json:"quantity"`
	ReorderPoint *int      `json:"reorderPoint,omitempty"`
	MinStock     *int      `json:"minStock,omitempty"`
	Location     string    `json:"location"`
	LastUpdated  time.Time `json:"lastUpdated"`
	UpdatedBy    string    `json:"updatedBy"`
	Notes        string    `json:"notes,omitempty"`
}

// Matches reports whether the item is the one identified by the given
// name/vendor pair. Names compare case-insensitively, vendors exactly.
func (i InventoryItem) Matches(name, vendor string) bool {
	return strings.EqualFold(i.Name, name) && i.Vendor == vendor
}

// LowStockThreshold returns the stock level at or below which the item is
// flagged low: min stock when present, else reorder point, else 10.
func (i InventoryItem) LowStockThreshold() int {
	if i.MinStock != nil {
		return *i.MinStock
	}
	if i.ReorderPoint != nil {
		return *i.ReorderPoint
	}
	return DefaultLowStockThreshold
}

// DefaultLowStockThreshold applies when an item carries neither a min stock
// nor a reorder point.
const DefaultLowStockThreshold = 10

// InventoryLocation represents the storage location of an inventory item
type InventoryLocation string

const (
	// Storage locations
	LocationMainStorage      InventoryLocation = "main_storage"
	LocationElectronicsBench InventoryLocation = "electronics_bench"
	LocationPropulsionBay    InventoryLocation = "propulsion_bay"
	LocationCompositesLab    InventoryLocation = "composites_lab"
	LocationToolCrib         InventoryLocation = "tool_crib"
)

// DefaultLocation is assigned to items synthesized from completed purchases.
const DefaultLocation = string(LocationMainStorage)
