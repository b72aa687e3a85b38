package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeProductionPlan(t *testing.T) {
	raw := `{
		"suggestions": [
			{"productId": 1, "productCode": "P1", "productName": " Beam ", "quantity": 3.9, "unitValue": 10, "totalValue": 39},
			{"productId": "2", "productCode": "P2", "productName": "Plate", "quantity": "2", "unitValue": "7,5"},
			{"productId": "", "productCode": "P3", "quantity": 5},
			{"productCode": "P4"},
			"garbage",
			{"productId": "5", "quantity": -4, "unitValue": "abc"}
		],
		"totalValue": "100,25"
	}`

	plan, err := NormalizeProductionPlan([]byte(raw))
	require.NoError(t, err)
	require.Len(t, plan.Suggestions, 3)

	assert.Equal(t, ProductionSuggestion{
		ProductID: "1", ProductCode: "P1", ProductName: "Beam", Quantity: 3, UnitValue: 10, TotalValue: 39,
	}, plan.Suggestions[0])
	assert.Equal(t, ProductionSuggestion{
		ProductID: "2", ProductCode: "P2", ProductName: "Plate", Quantity: 2, UnitValue: 7.5, TotalValue: 15,
	}, plan.Suggestions[1])
	assert.Equal(t, int64(0), plan.Suggestions[2].Quantity)
	assert.Equal(t, 0.0, plan.Suggestions[2].UnitValue)

	assert.Equal(t, 100.25, plan.TotalValue)
}

func TestNormalizeProductionPlan_ItemsAndComputedTotal(t *testing.T) {
	raw := `{"items": [
		{"productId": "a", "quantity": 2, "unitValue": 1.5},
		{"productId": "b", "quantity": 1, "unitValue": 4, "totalValue": "x"}
	]}`

	plan, err := NormalizeProductionPlan([]byte(raw))
	require.NoError(t, err)
	require.Len(t, plan.Suggestions, 2)
	assert.Equal(t, 3.0, plan.Suggestions[0].TotalValue)
	assert.Equal(t, 4.0, plan.Suggestions[1].TotalValue)
	assert.Equal(t, 7.0, plan.TotalValue)
}

func TestNormalizeProductionPlan_EmptyAndInvalid(t *testing.T) {
	plan, err := NormalizeProductionPlan(nil)
	require.NoError(t, err)
	assert.Empty(t, plan.Suggestions)
	assert.Zero(t, plan.TotalValue)

	plan, err = NormalizeProductionPlan([]byte(`{"suggestions": "nope"}`))
	require.NoError(t, err)
	assert.Empty(t, plan.Suggestions)

	_, err = NormalizeProductionPlan([]byte(`[1,2]`))
	require.Error(t, err)
}

func TestMaxProducible(t *testing.T) {
	materials := []RawMaterial{
		{ID: "1", Code: "RM1", Name: "Steel", StockQuantity: 10},
		{ID: "2", Code: "RM2", Name: "Paint", StockQuantity: 3},
	}

	assert.Equal(t, int64(0), MaxProducible(nil, materials))
	assert.Equal(t, int64(5), MaxProducible([]BOMItem{{RawMaterialID: "1", QuantityNeeded: 2}}, materials))
	assert.Equal(t, int64(3), MaxProducible([]BOMItem{
		{RawMaterialID: "1", QuantityNeeded: 2},
		{RawMaterialID: "2", QuantityNeeded: 1},
	}, materials))
	assert.Equal(t, int64(2), MaxProducible([]BOMItem{
		{RawMaterialID: "1", QuantityNeeded: 2},
		{RawMaterialID: "1", QuantityNeeded: 2},
	}, materials), "duplicate lines add up")
	assert.Equal(t, int64(0), MaxProducible([]BOMItem{{RawMaterialID: "9", QuantityNeeded: 1}}, materials))
}

func TestNormalizeProductionPlan_QuantityBounds(t *testing.T) {
	tests := []struct {
		name     string
		quantity string
		want     int64
	}{
		{"huge", `1e20`, math.MaxInt64},
		{"huge string", `"1e300"`, math.MaxInt64},
		{"just below 2^63", `9.2e18`, 9200000000000000000},
		{"negative", `-1e20`, 0},
		{"tiny", `1e-300`, 0},
		{"fraction", `7.99`, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := `{"suggestions":[{"productId":1,"quantity":` + tt.quantity + `,"unitValue":1}]}`
			plan, err := NormalizeProductionPlan([]byte(raw))
			require.NoError(t, err)
			require.Len(t, plan.Suggestions, 1)

			s := plan.Suggestions[0]
			assert.Equal(t, tt.want, s.Quantity)
			assert.GreaterOrEqual(t, s.TotalValue, 0.0)
			assert.GreaterOrEqual(t, plan.TotalValue, 0.0)
		})
	}
}

func TestMaxProducible_Bounds(t *testing.T) {
	materials := []RawMaterial{{ID: "1", Code: "RM1", Name: "Steel", StockQuantity: 5}}

	tests := []struct {
		name string
		need float64
		want int64
	}{
		{"tiny need", 1e-300, math.MaxInt64},
		{"small need", 1e-20, math.MaxInt64},
		{"huge need", 1e300, 0},
		{"regular", 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaxProducible([]BOMItem{{RawMaterialID: "1", QuantityNeeded: tt.need}}, materials)
			assert.Equal(t, tt.want, got)
		})
	}

	negative := []RawMaterial{{ID: "1", StockQuantity: -3}}
	assert.Equal(t, int64(0), MaxProducible([]BOMItem{{RawMaterialID: "1", QuantityNeeded: 1}}, negative))
}

func TestAggregateBOM(t *testing.T) {
	materials := []RawMaterial{
		{ID: "1", Code: "RM2", Name: "Steel"},
		{ID: "2", Code: "RM1", Name: "Paint"},
	}
	lines := AggregateBOM([]BOMItem{
		{RawMaterialID: "1", QuantityNeeded: 2},
		{RawMaterialID: "9", RawMaterialName: "Bolts", QuantityNeeded: 4},
		{RawMaterialID: "2", QuantityNeeded: 1},
		{RawMaterialID: "1", QuantityNeeded: 0.5},
	}, materials)

	assert.Equal(t, []BOMLine{
		{RawMaterialID: "9", Label: "Bolts", Quantity: 4},
		{RawMaterialID: "2", Label: "RM1 - Paint", Quantity: 1},
		{RawMaterialID: "1", Label: "RM2 - Steel", Quantity: 2.5},
	}, lines)
}
