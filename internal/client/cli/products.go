package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/alphastock/internal/client/models"
	"github.com/spf13/cobra"
)

type productFlags struct {
	code  string
	name  string
	value float64
	unit  string
}

func (f *productFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.code, "code", "", "product code (derived from the name when omitted)")
	cmd.Flags().StringVar(&f.name, "name", "", "product name")
	cmd.Flags().Float64Var(&f.value, "value", 0, "unit value")
	cmd.Flags().StringVar(&f.unit, "unit", "", "unit of measure code")
}

func newProductsCommand(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product", "p"},
		Short:   "Manage the product catalog",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := st.app
			products, err := a.productService.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(products) == 0 {
				fmt.Fprintln(a.out, "No products.")
				return nil
			}
			rows := make([][]string, 0, len(products))
			for _, p := range products {
				rows = append(rows, []string{
					p.ID.String(), p.Code, p.Name, formatMoney(p.UnitValue), p.UnitOfMeasure, strconv.Itoa(len(p.BOM)),
				})
			}
			a.printMarkdown(mdTable([]string{"ID", "Code", "Name", "Unit value", "Unit", "BOM lines"}, rows))
			return nil
		},
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a product with its bill of materials",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := st.app
			p, err := a.productService.Get(cmd.Context(), models.ID(args[0]))
			if err != nil {
				return err
			}
			materials, err := a.rawMaterialService.List(cmd.Context())
			if err != nil {
				return err
			}

			var b strings.Builder
			fmt.Fprintf(&b, "# %s %s\n\n", p.Code, p.Name)
			b.WriteString(mdTable([]string{"Field", "Value"}, [][]string{
				{"ID", p.ID.String()},
				{"Unit value", formatMoney(p.UnitValue)},
				{"Unit", p.UnitOfMeasure},
				{"Max producible", strconv.FormatInt(models.MaxProducible(p.BOM, materials), 10)},
			}))
			b.WriteString("\n## Bill of materials\n\n")
			b.WriteString(bomTable(models.AggregateBOM(p.BOM, materials)))
			a.printMarkdown(b.String())
			return nil
		},
	}

	var createFlags productFlags
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := st.app
			req := models.ProductRequest{
				Code:          createFlags.code,
				Name:          strings.TrimSpace(createFlags.name),
				UnitValue:     createFlags.value,
				UnitOfMeasure: createFlags.unit,
			}
			if req.Code == "" {
				req.Code = models.DefaultCode(req.Name)
			}
			p, err := a.productService.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Created product %s (%s)\n", p.ID, p.Code)
			return nil
		},
	}
	createFlags.register(create)

	var updateFlags productFlags
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a product; omitted flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := st.app
			id := models.ID(args[0])
			cur, err := a.productService.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			req := models.ProductRequest{Code: cur.Code, Name: cur.Name, UnitValue: cur.UnitValue, UnitOfMeasure: cur.UnitOfMeasure}
			fs := cmd.Flags()
			if fs.Changed("code") {
				req.Code = updateFlags.code
			}
			if fs.Changed("name") {
				req.Name = strings.TrimSpace(updateFlags.name)
			}
			if fs.Changed("value") {
				req.UnitValue = updateFlags.value
			}
			if fs.Changed("unit") {
				req.UnitOfMeasure = updateFlags.unit
			}

			p, err := a.productService.Update(cmd.Context(), id, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Updated product %s (%s)\n", p.ID, p.Code)
			return nil
		},
	}
	updateFlags.register(update)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := st.app
			if err := a.productService.Delete(cmd.Context(), models.ID(args[0])); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted product %s\n", args[0])
			return nil
		},
	}

	bom := &cobra.Command{
		Use:   "bom <id>",
		Short: "Show the bill of materials of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := st.app
			items, err := a.productService.Materials(cmd.Context(), models.ID(args[0]))
			if err != nil {
				return err
			}
			materials, err := a.rawMaterialService.List(cmd.Context())
			if err != nil {
				return err
			}
			a.printMarkdown(bomTable(models.AggregateBOM(items, materials)) +
				fmt.Sprintf("\nMax producible: %d\n", models.MaxProducible(items, materials)))
			return nil
		},
	}

	setBOM := &cobra.Command{
		Use:   "set-bom <id> [<material-id>=<quantity>...]",
		Short: "Replace the bill of materials of a product",
		Long:  "Replace the bill of materials of a product. Without material arguments the BOM is cleared.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := st.app
			items, err := parseBOMArgs(args[1:])
			if err != nil {
				return err
			}
			saved, err := a.productService.UpdateMaterials(cmd.Context(), models.ID(args[0]), items)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Saved %d BOM line(s) for product %s\n", len(saved), args[0])
			return nil
		},
	}

	cmd.AddCommand(list, get, create, update, del, bom, setBOM)
	return cmd
}

// parseBOMArgs parses "id=quantity" pairs. A decimal comma is accepted.
func parseBOMArgs(args []string) ([]models.BOMItem, error) {
	items := make([]models.BOMItem, 0, len(args))
	for _, arg := range args {
		id, qty, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("%w: BOM line %q must be <material-id>=<quantity>", models.ErrValidation, arg)
		}
		q, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(qty), ",", ".", 1), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: quantity in %q is not a number", models.ErrValidation, arg)
		}
		items = append(items, models.BOMItem{RawMaterialID: models.ID(strings.TrimSpace(id)), QuantityNeeded: q})
	}
	return items, nil
}

func bomTable(lines []models.BOMLine) string {
	if len(lines) == 0 {
		return "No materials.\n"
	}
	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, []string{l.RawMaterialID.String(), l.Label, formatNumber(l.Quantity)})
	}
	return mdTable([]string{"Material ID", "Material", "Quantity"}, rows)
}

// findMaterial looks a raw material up by id; the API has no single-item GET.
func (a *App) findMaterial(ctx context.Context, id models.ID) (*models.RawMaterial, error) {
	all, err := a.rawMaterialService.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("raw material %s: %w", id, errNotFound)
}
