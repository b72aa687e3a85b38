package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

type ProductionSuggestion struct {
	ProductID   ID      `json:"productId"`
	ProductCode string  `json:"productCode"`
	ProductName string  `json:"productName"`
	Quantity    int64   `json:"quantity"`
	UnitValue   float64 `json:"unitValue"`
	TotalValue  float64 `json:"totalValue"`
}

type ProductionPlan struct {
	Suggestions []ProductionSuggestion `json:"suggestions"`
	TotalValue  float64                `json:"totalValue"`
}

// NormalizeProductionPlan decodes the answer of GET /production/suggestions
// leniently. The list may be under "suggestions" or "items"; numbers may be
// strings, with a decimal comma; entries without a product id are dropped.
// Quantities are floored and never negative. A missing line total is
// quantity * unit value and a missing plan total is the sum of line totals.
func NormalizeProductionPlan(raw []byte) (*ProductionPlan, error) {
	plan := &ProductionPlan{Suggestions: []ProductionSuggestion{}}
	if len(bytes.TrimSpace(raw)) == 0 {
		return plan, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("decode production plan: %w", err)
	}

	list, ok := body["suggestions"].([]any)
	if !ok {
		list, _ = body["items"].([]any)
	}

	var sum float64
	for _, v := range list {
		s, ok := normalizeSuggestion(v)
		if !ok {
			continue
		}
		sum += s.TotalValue
		plan.Suggestions = append(plan.Suggestions, s)
	}
	plan.TotalValue = toNumber(body["totalValue"], sum)
	return plan, nil
}

func normalizeSuggestion(v any) (ProductionSuggestion, bool) {
	r, ok := v.(map[string]any)
	if !ok {
		return ProductionSuggestion{}, false
	}

	s := ProductionSuggestion{
		ProductID:   ID(toText(r["productId"])),
		ProductCode: toText(r["productCode"]),
		ProductName: toText(r["productName"]),
	}
	if s.ProductID == "" {
		return ProductionSuggestion{}, false
	}

	s.Quantity = floorCount(toNumber(r["quantity"], 0))
	s.UnitValue = toNumber(r["unitValue"], 0)
	s.TotalValue = toNumber(r["totalValue"], float64(s.Quantity)*s.UnitValue)
	return s, true
}

// floorCount floors f into [0, math.MaxInt64]. NaN counts as zero.
func floorCount(f float64) int64 {
	switch {
	case math.IsNaN(f) || f <= 0:
		return 0
	case f >= math.MaxInt64: // float64(math.MaxInt64) is 2^63
		return math.MaxInt64
	}
	return int64(math.Floor(f))
}

func toText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// toNumber converts a JSON number or numeric string. A blank string is zero.
func toNumber(v any, fallback float64) float64 {
	var f float64
	switch t := v.(type) {
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return fallback
		}
		f = n
	case float64:
		f = t
	case string:
		s := strings.TrimSpace(strings.Replace(t, ",", ".", 1))
		if s == "" {
			return 0
		}
		if strings.ContainsAny(s, "xXnN_") {
			return fallback
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fallback
		}
		f = n
	default:
		return fallback
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fallback
	}
	return f
}

// MaxProducible returns how many units can be built from the current stock:
// the smallest floor(stock / quantity needed) over the BOM. An empty BOM or a
// line naming an unknown material yields zero.
func MaxProducible(bom []BOMItem, materials []RawMaterial) int64 {
	if len(bom) == 0 {
		return 0
	}
	stock := make(map[ID]float64, len(materials))
	for _, m := range materials {
		stock[m.ID] = m.StockQuantity
	}

	result := int64(-1)
	for _, line := range AggregateBOM(bom, materials) {
		if line.Quantity <= 0 {
			continue
		}
		have, ok := stock[line.RawMaterialID]
		if !ok {
			return 0
		}
		n := floorCount(have / line.Quantity)
		if result < 0 || n < result {
			result = n
		}
	}
	if result < 0 {
		return 0
	}
	return result
}

// BOMLine is an aggregated BOM entry ready for display.
type BOMLine struct {
	RawMaterialID ID
	Label         string
	Quantity      float64
}

// AggregateBOM merges lines naming the same raw material, labels each line
// "CODE - Name" when the material is known, and sorts by label.
func AggregateBOM(items []BOMItem, materials []RawMaterial) []BOMLine {
	byID := make(map[ID]RawMaterial, len(materials))
	for _, m := range materials {
		byID[m.ID] = m
	}

	index := make(map[ID]int)
	lines := make([]BOMLine, 0, len(items))
	for _, it := range items {
		if i, ok := index[it.RawMaterialID]; ok {
			lines[i].Quantity += it.QuantityNeeded
			continue
		}

		label := string(it.RawMaterialID)
		if m, ok := byID[it.RawMaterialID]; ok {
			label = m.Label()
		} else if name := strings.TrimSpace(it.RawMaterialName); name != "" {
			label = name
		}

		index[it.RawMaterialID] = len(lines)
		lines = append(lines, BOMLine{RawMaterialID: it.RawMaterialID, Label: label, Quantity: it.QuantityNeeded})
	}

	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].Label != lines[j].Label {
			return lines[i].Label < lines[j].Label
		}
		return lines[i].RawMaterialID < lines[j].RawMaterialID
	})
	return lines
}
