package models

import "testing"

func TestMatches(t *testing.T) {
	item := InventoryItem{Name: "Widget", Vendor: "V1"}

	if !item.Matches("widget", "V1") {
		t.Error("name match should be case-insensitive")
	}
	if !item.Matches("WIDGET", "V1") {
		t.Error("name match should be case-insensitive")
	}
	if item.Matches("Widget", "v1") {
		t.Error("vendor match must be exact")
	}
	if item.Matches("Gadget", "V1") {
		t.Error("different names must not match")
	}
}

func TestLowStockThreshold(t *testing.T) {
	five, twenty := 5, 20

	tests := []struct {
		name string
		item InventoryItem
		want int
	}{
		{"min stock wins", InventoryItem{MinStock: &five, ReorderPoint: &twenty}, 5},
		{"reorder point fallback", InventoryItem{ReorderPoint: &twenty}, 20},
		{"default", InventoryItem{}, 10},
	}
	for _, tt := range tests {
		if got := tt.item.LowStockThreshold(); got != tt.want {
			t.Errorf("%s: LowStockThreshold() = %d, want %d", tt.name, got, tt.want)
		}
	}
}
