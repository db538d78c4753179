package models

// BOMItem represents one line of a multi-line bill of materials.
type BOMItem struct {
	ItemName         string  `json:"itemName"`
	RequiredQuantity int     `json:"requiredQuantity"`
	UnitPrice        float64 `json:"unitPrice"`
	Vendor           string  `json:"vendor"`
	Team             string  `json:"team"`
}

// BillOfMaterials represents a parts requirement for a build. It comes in
// two shapes: a single-line BOM carrying its line fields inline, or a
// multi-line BOM carrying an Items collection. The shape is structural —
// presence of Items is the discriminant, not an explicit tag.
type BillOfMaterials struct {
	ID               string    `json:"id,omitempty"`
	Name             string    `json:"name,omitempty"`
	ItemName         string    `json:"itemName,omitempty"`
	RequiredQuantity int       `json:"requiredQuantity,omitempty"`
	UnitPrice        float64   `json:"unitPrice,omitempty"`
	Vendor           string    `json:"vendor,omitempty"`
	Team             string    `json:"team,omitempty"`
	Items            []BOMItem `json:"items,omitempty"`
}

// Lines normalizes both BOM shapes into a flat slice of lines. A multi-line
// BOM returns its Items; a single-line BOM returns its inline fields as the
// only line.
func (b BillOfMaterials) Lines() []BOMItem {
	if b.Items != nil {
		return b.Items
	}
	return []BOMItem{{
		ItemName:         b.ItemName,
		RequiredQuantity: b.RequiredQuantity,
		UnitPrice:        b.UnitPrice,
		Vendor:           b.Vendor,
		Team:             b.Team,
	}}
}
