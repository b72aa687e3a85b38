package models

import (
	"sort"
	"strings"
)

// List orderings accepted by SortRawMaterials and SortUnits.
const (
	SortNameAsc   = "name-asc"
	SortNameDesc  = "name-desc"
	SortStockAsc  = "stock-asc"
	SortStockDesc = "stock-desc"
	SortCodeAsc   = "code-asc"
	SortCodeDesc  = "code-desc"
)

var (
	RawMaterialSorts = []string{SortNameAsc, SortNameDesc, SortStockAsc, SortStockDesc}
	UnitSorts        = []string{SortNameAsc, SortNameDesc, SortCodeAsc, SortCodeDesc}
)

// compareText orders case-insensitively, falling back to byte order so the
// result is total.
func compareText(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func unknownSort(order string, allowed []string) error {
	return invalid("unknown sort %q, use one of %s", order, strings.Join(allowed, ", "))
}

// SortRawMaterials orders items in place. An empty order means name-asc.
func SortRawMaterials(items []RawMaterial, order string) error {
	var less func(a, b RawMaterial) bool
	switch order {
	case "", SortNameAsc:
		less = func(a, b RawMaterial) bool { return compareText(a.Name, b.Name) < 0 }
	case SortNameDesc:
		less = func(a, b RawMaterial) bool { return compareText(a.Name, b.Name) > 0 }
	case SortStockAsc:
		less = func(a, b RawMaterial) bool { return a.StockQuantity < b.StockQuantity }
	case SortStockDesc:
		less = func(a, b RawMaterial) bool { return a.StockQuantity > b.StockQuantity }
	default:
		return unknownSort(order, RawMaterialSorts)
	}
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
	return nil
}

// SortUnits orders units in place. An empty order means name-asc.
func SortUnits(items []UnitOfMeasure, order string) error {
	var less func(a, b UnitOfMeasure) bool
	switch order {
	case "", SortNameAsc:
		less = func(a, b UnitOfMeasure) bool { return compareText(a.Name, b.Name) < 0 }
	case SortNameDesc:
		less = func(a, b UnitOfMeasure) bool { return compareText(a.Name, b.Name) > 0 }
	case SortCodeAsc:
		less = func(a, b UnitOfMeasure) bool { return compareText(a.Code, b.Code) < 0 }
	case SortCodeDesc:
		less = func(a, b UnitOfMeasure) bool { return compareText(a.Code, b.Code) > 0 }
	default:
		return unknownSort(order, UnitSorts)
	}
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
	return nil
}
