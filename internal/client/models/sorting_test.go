package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func materialNames(items []RawMaterial) []string {
	out := make([]string, len(items))
	for i, m := range items {
		out[i] = m.Name
	}
	return out
}

func TestSortRawMaterials(t *testing.T) {
	base := []RawMaterial{
		{ID: "1", Name: "steel", StockQuantity: 5},
		{ID: "2", Name: "Bolts", StockQuantity: 40},
		{ID: "3", Name: "paint", StockQuantity: 0},
	}

	tests := []struct {
		order string
		want  []string
	}{
		{"", []string{"Bolts", "paint", "steel"}},
		{SortNameAsc, []string{"Bolts", "paint", "steel"}},
		{SortNameDesc, []string{"steel", "paint", "Bolts"}},
		{SortStockAsc, []string{"paint", "steel", "Bolts"}},
		{SortStockDesc, []string{"Bolts", "steel", "paint"}},
	}
	for _, tt := range tests {
		t.Run("order "+tt.order, func(t *testing.T) {
			items := append([]RawMaterial(nil), base...)
			require.NoError(t, SortRawMaterials(items, tt.order))
			assert.Equal(t, tt.want, materialNames(items))
		})
	}

	err := SortRawMaterials(base, "code-asc")
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "stock-desc")
}

func TestSortUnits(t *testing.T) {
	base := []UnitOfMeasure{
		{ID: "1", Code: "KG", Name: "Kilogram"},
		{ID: "2", Code: "m3", Name: "Cubic metre"},
		{ID: "3", Code: "UN", Name: "unit"},
	}
	codes := func(items []UnitOfMeasure) []string {
		out := make([]string, len(items))
		for i, u := range items {
			out[i] = u.Code
		}
		return out
	}

	tests := []struct {
		order string
		want  []string
	}{
		{"", []string{"m3", "KG", "UN"}},
		{SortNameDesc, []string{"UN", "KG", "m3"}},
		{SortCodeAsc, []string{"KG", "m3", "UN"}},
		{SortCodeDesc, []string{"UN", "m3", "KG"}},
	}
	for _, tt := range tests {
		t.Run("order "+tt.order, func(t *testing.T) {
			items := append([]UnitOfMeasure(nil), base...)
			require.NoError(t, SortUnits(items, tt.order))
			assert.Equal(t, tt.want, codes(items))
		})
	}

	require.ErrorIs(t, SortUnits(base, SortStockAsc), ErrValidation)
}
