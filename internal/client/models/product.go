package models

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/gosimple/slug"
)

// BOMItem is one line of a product's bill of materials.
type BOMItem struct {
	RawMaterialID   ID      `json:"rawMaterialId"`
	RawMaterialName string  `json:"rawMaterialName,omitempty"`
	QuantityNeeded  float64 `json:"quantityNeeded"`
}

// MaterialRequirement is the payload line of PUT /products/{id}/materials.
type MaterialRequirement struct {
	RawMaterialID    json.Number `json:"rawMaterialId"`
	QuantityRequired float64     `json:"quantityRequired"`
}

// Product is a catalog entry. On the wire the unit value is named "value".
type Product struct {
	ID            ID        `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	UnitValue     float64   `json:"value"`
	UnitOfMeasure string    `json:"unitOfMeasure,omitempty"`
	BOM           []BOMItem `json:"bom"`
}

func (p *Product) UnmarshalJSON(data []byte) error {
	type wire Product
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.BOM == nil {
		w.BOM = []BOMItem{}
	}
	*p = Product(w)
	return nil
}

// ProductRequest is the body of POST /products and PUT /products/{id}.
type ProductRequest struct {
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	UnitValue     float64 `json:"value"`
	UnitOfMeasure string  `json:"unitOfMeasure,omitempty"`
}

func (r ProductRequest) Validate() error {
	if strings.TrimSpace(r.Code) == "" {
		return invalid("product code is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return invalid("product name is required")
	}
	if math.IsNaN(r.UnitValue) || math.IsInf(r.UnitValue, 0) || r.UnitValue <= 0 {
		return invalid("unit value must be greater than zero")
	}
	return nil
}

// Requirements converts BOM lines to the materials payload. Raw material ids
// must be numeric and quantities positive.
func Requirements(items []BOMItem) ([]MaterialRequirement, error) {
	out := make([]MaterialRequirement, 0, len(items))
	for _, it := range items {
		n, err := it.RawMaterialID.Number()
		if err != nil {
			return nil, err
		}
		if math.IsNaN(it.QuantityNeeded) || it.QuantityNeeded <= 0 {
			return nil, invalid("quantity for raw material %s must be greater than zero", it.RawMaterialID)
		}
		out = append(out, MaterialRequirement{RawMaterialID: n, QuantityRequired: it.QuantityNeeded})
	}
	return out, nil
}

// DefaultCode derives an upper-case code from a name,
// e.g. "Steel Bar 10mm" -> "STEEL-BAR-10MM".
func DefaultCode(name string) string {
	return strings.ToUpper(slug.Make(name))
}
