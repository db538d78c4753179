package models

import "testing"

func TestBOMLines(t *testing.T) {
	single := BillOfMaterials{ItemName: "Widget", RequiredQuantity: 4, Vendor: "V1"}
	lines := single.Lines()
	if len(lines) != 1 || lines[0].ItemName != "Widget" || lines[0].RequiredQuantity != 4 {
		t.Errorf("single-line BOM normalized to %+v", lines)
	}

	multi := BillOfMaterials{Items: []BOMItem{{ItemName: "A"}, {ItemName: "B"}}}
	if got := len(multi.Lines()); got != 2 {
		t.Errorf("multi-line BOM returned %d lines, want 2", got)
	}

	// Presence of Items is the discriminant, even when empty.
	empty := BillOfMaterials{ItemName: "ignored", Items: []BOMItem{}}
	if got := len(empty.Lines()); got != 0 {
		t.Errorf("empty multi-line BOM returned %d lines, want 0", got)
	}
}

func TestPurchaseListRecalculateTotal(t *testing.T) {
	list := PurchaseList{
		Items: []PurchaseListItem{
			{ItemName: "Widget", Quantity: 3, UnitPrice: 2.5},
			{ItemName: "Gasket", Quantity: 2, UnitPrice: 1.0},
		},
		TotalAmount: 999,
	}
	list.RecalculateTotal()
	if list.TotalAmount != 9.5 {
		t.Errorf("RecalculateTotal() = %v, want 9.5", list.TotalAmount)
	}
}
