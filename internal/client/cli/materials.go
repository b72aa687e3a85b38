package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/alphastock/internal/client/client"
	"github.com/dmitrijs2005/alphastock/internal/client/models"
	"github.com/spf13/cobra"
)

var errNotFound = client.ErrNotFound

type materialFlags struct {
	code  string
	name  string
	stock float64
}

func (f *materialFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.code, "code", "", "material code (derived from the name when omitted)")
	cmd.Flags().StringVar(&f.name, "name", "", "material name")
	cmd.Flags().Float64Var(&f.stock, "stock", 0, "stock quantity (whole number)")
}

func newMaterialsCommand(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "materials",
		Aliases: []string{"material", "m"},
		Short:   "Manage raw materials and their stock",
	}

	var order string
	list := &cobra.Command{
		Use:   "list",
		Short: "List raw materials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := st.app
			materials, err := a.rawMaterialService.List(cmd.Context())
			if err != nil {
				return err
			}
			if err := models.SortRawMaterials(materials, order); err != nil {
				return err
			}
			if len(materials) == 0 {
				fmt.Fprintln(a.out, "No raw materials.")
				return nil
			}
			rows := make([][]string, 0, len(materials))
			for _, m := range materials {
				rows = append(rows, []string{m.ID.String(), m.Code, m.Name, formatNumber(m.StockQuantity)})
			}
			a.printMarkdown(mdTable([]string{"ID", "Code", "Name", "Stock"}, rows))
			return nil
		},
	}

	list.Flags().StringVar(&order, "sort", models.SortNameAsc, "order: "+strings.Join(models.RawMaterialSorts, ", "))

	var createFlags materialFlags
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a raw material",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := st.app
			req := models.RawMaterialRequest{
				Code:          createFlags.code,
				Name:          strings.TrimSpace(createFlags.name),
				StockQuantity: createFlags.stock,
			}
			if req.Code == "" {
				req.Code = models.DefaultCode(req.Name)
			}
			m, err := a.rawMaterialService.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Created raw material %s (%s)\n", m.ID, m.Code)
			return nil
		},
	}
	createFlags.register(create)

	var updateFlags materialFlags
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a raw material; omitted flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := st.app
			id := models.ID(args[0])
			cur, err := a.findMaterial(cmd.Context(), id)
			if err != nil {
				return err
			}

			req := models.RawMaterialRequest{Code: cur.Code, Name: cur.Name, StockQuantity: cur.StockQuantity}
			fs := cmd.Flags()
			if fs.Changed("code") {
				req.Code = updateFlags.code
			}
			if fs.Changed("name") {
				req.Name = strings.TrimSpace(updateFlags.name)
			}
			if fs.Changed("stock") {
				req.StockQuantity = updateFlags.stock
			}

			m, err := a.rawMaterialService.Update(cmd.Context(), id, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Updated raw material %s (%s), stock %s\n", m.ID, m.Code, formatNumber(m.StockQuantity))
			return nil
		},
	}
	updateFlags.register(update)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a raw material",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := st.app
			err := a.rawMaterialService.Delete(cmd.Context(), models.ID(args[0]))
			if errors.Is(err, client.ErrNotFound) {
				return fmt.Errorf("raw material %s: %w", args[0], err)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted raw material %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, create, update, del)
	return cmd
}
