package models

// Vendor represents a supplier in the vendor directory. The directory is
// read-only from the reconciliation engine's perspective.
type Vendor struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Contact  string `json:"contact,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Website  string `json:"website,omitempty"`
	Notes    string `json:"notes,omitempty"`
	Active   bool   `json:"active"`
	Category string `json:"category,omitempty"`
}

// PurchaseListItem represents one line of a purchase list.
type PurchaseListItem struct {
	ItemName  string  `json:"itemName"`
	VendorID  string  `json:"vendorId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// PurchaseList is a denormalized aggregate of items grouped for ordering.
// Its vendors slice must stay a subset of the live vendor directory; the
// engine prunes stale ids but does not cascade into the items.
type PurchaseList struct {
	ID          string             `json:"id,omitempty"`
	Name        string             `json:"name,omitempty"`
	Vendors     []string           `json:"vendors"`
	Items       []PurchaseListItem `json:"items"`
	TotalAmount float64            `json:"totalAmount"`
}

// RecalculateTotal recomputes TotalAmount from the list's items.
func (l *PurchaseList) RecalculateTotal() {
	total := 0.0
	for _, item := range l.Items {
		total += float64(item.Quantity) * item.UnitPrice
	}
	l.TotalAmount = total
}
