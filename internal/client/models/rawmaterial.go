package models

import (
	"math"
	"strings"
)

type RawMaterial struct {
	ID            ID      `json:"id"`
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	StockQuantity float64 `json:"stockQuantity"`
}

// Label is the form used in lists and pickers.
func (m RawMaterial) Label() string {
	return m.Code + " - " + m.Name
}

type RawMaterialRequest struct {
	Code          string  `json:"code,omitempty"`
	Name          string  `json:"name"`
	StockQuantity float64 `json:"stockQuantity"`
}

func (r RawMaterialRequest) Validate() error {
	if strings.TrimSpace(r.Code) == "" {
		return invalid("raw material code is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return invalid("raw material name is required")
	}
	if r.StockQuantity < 0 || r.StockQuantity != math.Trunc(r.StockQuantity) || math.IsInf(r.StockQuantity, 0) {
		return invalid("stock quantity must be a whole number, zero or more")
	}
	return nil
}
