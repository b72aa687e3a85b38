package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/alphastock/internal/client/client"
	"github.com/dmitrijs2005/alphastock/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedCatalog creates a unit, one raw material with 10 in stock and one
// product, and returns the product and material ids.
func seedCatalog(t *testing.T, e *testEnv) (productID, materialID models.ID) {
	t.Helper()
	require.NoError(t, e.run("units", "create", "--code", "KG", "--name", "Kilogram"))
	require.NoError(t, e.run("materials", "create", "--name", "Iron ore", "--stock", "10"))
	require.NoError(t, e.run("products", "create", "--name", "Steel Beam", "--value", "120.5", "--unit", "KG"))

	ctx := context.Background()
	products, err := e.app.productService.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	materials, err := e.app.rawMaterialService.List(ctx)
	require.NoError(t, err)
	require.Len(t, materials, 1)

	e.out.Reset()
	return products[0].ID, materials[0].ID
}

func TestProducts_CreateAndList(t *testing.T) {
	e := newTestEnv(t, "")
	e.login(t)

	require.NoError(t, e.run("products", "list"))
	assert.Equal(t, "No products.\n", e.out.String())

	seedCatalog(t, e)

	require.NoError(t, e.run("products", "list"))
	out := e.out.String()
	assert.Contains(t, out, "| ID | Code | Name | Unit value | Unit | BOM lines |")
	assert.Contains(t, out, "| STEEL-BEAM | Steel Beam | 120.50 | KG | 0 |")
}

func TestProducts_BOMAndSuggestion(t *testing.T) {
	e := newTestEnv(t, "")
	e.login(t)
	pid, mid := seedCatalog(t, e)

	require.NoError(t, e.run("products", "set-bom", pid.String(), mid.String()+"=2,5"))
	assert.Contains(t, e.out.String(), "Saved 1 BOM line(s)")
	e.out.Reset()

	require.NoError(t, e.run("products", "bom", pid.String()))
	out := e.out.String()
	assert.Contains(t, out, "| IRON-ORE - Iron ore | 2.5 |")
	assert.Contains(t, out, "Max producible: 4")
	e.out.Reset()

	require.NoError(t, e.run("products", "get", pid.String()))
	out = e.out.String()
	assert.Contains(t, out, "# STEEL-BEAM Steel Beam")
	assert.Contains(t, out, "| Max producible | 4 |")
	assert.Contains(t, out, "## Bill of materials")
	e.out.Reset()

	require.NoError(t, e.run("production", "suggest"))
	out = e.out.String()
	assert.Contains(t, out, "| STEEL-BEAM | Steel Beam | 4 | 120.50 | 482.00 |")
	assert.Contains(t, out, "**Total value:** 482.00")
	e.out.Reset()

	require.NoError(t, e.run("products", "set-bom", pid.String()))
	assert.Contains(t, e.out.String(), "Saved 0 BOM line(s)")
}

func TestProducts_UpdateKeepsOmittedFields(t *testing.T) {
	e := newTestEnv(t, "")
	e.login(t)
	pid, _ := seedCatalog(t, e)

	require.NoError(t, e.run("products", "update", pid.String(), "--value", "99.9"))
	assert.Contains(t, e.out.String(), "Updated product")

	p, err := e.app.productService.Get(context.Background(), pid)
	require.NoError(t, err)
	assert.Equal(t, 99.9, p.UnitValue)
	assert.Equal(t, "Steel Beam", p.Name)
	assert.Equal(t, "STEEL-BEAM", p.Code)
}

func TestProducts_CreateValidation(t *testing.T) {
	e := newTestEnv(t, "")
	e.login(t)

	err := e.run("products", "create", "--name", "Beam")
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestProducts_Delete(t *testing.T) {
	e := newTestEnv(t, "")
	e.login(t)
	pid, _ := seedCatalog(t, e)

	require.NoError(t, e.run("products", "delete", pid.String()))
	assert.Contains(t, e.out.String(), "Deleted product")

	require.ErrorIs(t, e.run("products", "get", pid.String()), client.ErrNotFound)
	require.ErrorIs(t, e.run("products", "delete", pid.String()), client.ErrNotFound)
}

func TestProducts_ArgsChecked(t *testing.T) {
	e := newTestEnv(t, "")
	e.login(t)

	require.Error(t, e.run("products", "get"))
	require.Error(t, e.run("products", "set-bom"))
	require.ErrorIs(t, e.run("products", "set-bom", "1", "broken"), models.ErrValidation)
}

func TestParseBOMArgs(t *testing.T) {
	items, err := parseBOMArgs([]string{"1=2", " 7 = 0,5 "})
	require.NoError(t, err)
	assert.Equal(t, []models.BOMItem{
		{RawMaterialID: "1", QuantityNeeded: 2},
		{RawMaterialID: "7", QuantityNeeded: 0.5},
	}, items)

	for _, bad := range []string{"1", "=2", "1=x", "1="} {
		_, err := parseBOMArgs([]string{bad})
		assert.ErrorIs(t, err, models.ErrValidation, bad)
	}

	items, err = parseBOMArgs(nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMaterials_Lifecycle(t *testing.T) {
	e := newTestEnv(t, "")
	e.login(t)

	require.NoError(t, e.run("materials", "list"))
	assert.Equal(t, "No raw materials.\n", e.out.String())

	_, mid := seedCatalog(t, e)

	require.NoError(t, e.run("materials", "list"))
	assert.Contains(t, e.out.String(), "| IRON-ORE | Iron ore | 10 |")
	e.out.Reset()

	require.NoError(t, e.run("materials", "update", mid.String(), "--stock", "25"))
	assert.Contains(t, e.out.String(), "stock 25")

	m, err := e.app.findMaterial(context.Background(), mid)
	require.NoError(t, err)
	assert.Equal(t, "Iron ore", m.Name)
	assert.Equal(t, 25.0, m.StockQuantity)

	require.ErrorIs(t, e.run("materials", "update", mid.String(), "--stock", "2.5"), models.ErrValidation)
	require.ErrorIs(t, e.run("materials", "update", "999", "--stock", "1"), client.ErrNotFound)

	require.NoError(t, e.run("materials", "delete", mid.String()))
	err = e.run("materials", "delete", mid.String())
	require.ErrorIs(t, err, client.ErrNotFound)
	assert.Contains(t, err.Error(), "raw material "+mid.String())
}

func TestUnits_Lifecycle(t *testing.T) {
	e := newTestEnv(t, "")
	e.login(t)

	require.NoError(t, e.run("units", "list"))
	assert.Equal(t, "No units of measure.\n", e.out.String())

	require.NoError(t, e.run("units", "create", "--code", "KG", "--name", "Kilogram"))
	units, err := e.app.unitService.List(context.Background())
	require.NoError(t, err)
	require.Len(t, units, 1)
	id := units[0].ID.String()
	e.out.Reset()

	require.NoError(t, e.run("units", "get", id))
	assert.Equal(t, id+" KG (Kilogram)\n", e.out.String())
	e.out.Reset()

	require.NoError(t, e.run("units", "update", id, "--name", "Kilo"))
	require.NoError(t, e.run("units", "list"))
	assert.Contains(t, e.out.String(), "| KG | Kilo |")

	require.NoError(t, e.run("units", "delete", id))
	require.ErrorIs(t, e.run("units", "get", id), client.ErrNotFound)
	require.ErrorIs(t, e.run("units", "create", "--code", "KG"), models.ErrValidation)
}

func TestProduction_NothingToProduce(t *testing.T) {
	e := newTestEnv(t, "")
	e.login(t)

	require.NoError(t, e.run("production", "suggest"))
	assert.Equal(t, "Nothing can be produced with the current stock.\n", e.out.String())
}

func TestProduction_LegacyShape(t *testing.T) {
	e := newTestEnv(t, "")
	e.login(t)
	e.srv.SetSuggestions(`{"items":[{"productId":3,"productCode":"P3","productName":"Gear","quantity":2.9,"unitValue":"10,5"}]}`)

	require.NoError(t, e.run("production", "suggest"))
	out := e.out.String()
	assert.Contains(t, out, "| P3 | Gear | 2 | 10.50 | 21.00 |")
	assert.Contains(t, out, "**Total value:** 21.00")
}

func TestCatalog_RequiresLogin(t *testing.T) {
	e := newTestEnv(t, "")

	require.ErrorIs(t, e.run("products", "list"), client.ErrUnauthorized)
	require.ErrorIs(t, e.run("materials", "list"), client.ErrUnauthorized)
	assert.Zero(t, e.srv.RefreshCalls())
}

func TestMaterials_ListSorted(t *testing.T) {
	e := newTestEnv(t, "")
	e.login(t)
	require.NoError(t, e.run("materials", "create", "--name", "steel", "--stock", "5"))
	require.NoError(t, e.run("materials", "create", "--name", "Bolts", "--stock", "40"))
	require.NoError(t, e.run("materials", "create", "--name", "paint", "--stock", "0"))

	// positions returns where Bolts, paint and steel appear in the listing.
	positions := func(args ...string) []int {
		t.Helper()
		e.out.Reset()
		require.NoError(t, e.run(append([]string{"materials", "list"}, args...)...))
		out := e.out.String()
		pos := []int{
			strings.Index(out, "| Bolts |"),
			strings.Index(out, "| paint |"),
			strings.Index(out, "| steel |"),
		}
		for _, p := range pos {
			require.Positive(t, p)
		}
		return pos
	}
	assertOrder := func(pos []int, first, second, third int) {
		t.Helper()
		assert.Less(t, pos[first], pos[second])
		assert.Less(t, pos[second], pos[third])
	}

	const bolts, paint, steel = 0, 1, 2
	assertOrder(positions(), bolts, paint, steel)
	assertOrder(positions("--sort", "name-desc"), steel, paint, bolts)
	assertOrder(positions("--sort", "stock-asc"), paint, steel, bolts)
	assertOrder(positions("--sort", "stock-desc"), bolts, steel, paint)

	require.ErrorIs(t, e.run("materials", "list", "--sort", "code-asc"), models.ErrValidation)
}

func TestUnits_ListSorted(t *testing.T) {
	e := newTestEnv(t, "")
	e.login(t)
	require.NoError(t, e.run("units", "create", "--code", "UN", "--name", "Unit"))
	require.NoError(t, e.run("units", "create", "--code", "KG", "--name", "Kilogram"))

	e.out.Reset()
	require.NoError(t, e.run("units", "list"))
	out := e.out.String()
	assert.Less(t, strings.Index(out, "| KG |"), strings.Index(out, "| UN |"))

	e.out.Reset()
	require.NoError(t, e.run("units", "list", "--sort", "code-desc"))
	out = e.out.String()
	assert.Less(t, strings.Index(out, "| UN |"), strings.Index(out, "| KG |"))

	require.ErrorIs(t, e.run("units", "list", "--sort", "stock-asc"), models.ErrValidation)
}
