package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/alphastock/internal/client/models"
	"github.com/spf13/cobra"
)

func newUnitsCommand(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "units",
		Aliases: []string{"unit", "u"},
		Short:   "Manage units of measure",
	}

	var order string
	list := &cobra.Command{
		Use:   "list",
		Short: "List units of measure",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := st.app
			units, err := a.unitService.List(cmd.Context())
			if err != nil {
				return err
			}
			if err := models.SortUnits(units, order); err != nil {
				return err
			}
			if len(units) == 0 {
				fmt.Fprintln(a.out, "No units of measure.")
				return nil
			}
			rows := make([][]string, 0, len(units))
			for _, u := range units {
				rows = append(rows, []string{u.ID.String(), u.Code, u.Name})
			}
			a.printMarkdown(mdTable([]string{"ID", "Code", "Name"}, rows))
			return nil
		},
	}

	list.Flags().StringVar(&order, "sort", models.SortNameAsc, "order: "+strings.Join(models.UnitSorts, ", "))

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a unit of measure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := st.app
			u, err := a.unitService.Get(cmd.Context(), models.ID(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s %s (%s)\n", u.ID, u.Code, u.Name)
			return nil
		},
	}

	var code, name string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a unit of measure",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := st.app
			u, err := a.unitService.Create(cmd.Context(), models.UnitRequest{
				Code: strings.TrimSpace(code),
				Name: strings.TrimSpace(name),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Created unit %s (%s)\n", u.ID, u.Code)
			return nil
		},
	}
	create.Flags().StringVar(&code, "code", "", "unit code, e.g. KG")
	create.Flags().StringVar(&name, "name", "", "unit name")

	var newCode, newName string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a unit of measure; omitted flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := st.app
			id := models.ID(args[0])
			cur, err := a.unitService.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			req := models.UnitRequest{Code: cur.Code, Name: cur.Name}
			if cmd.Flags().Changed("code") {
				req.Code = strings.TrimSpace(newCode)
			}
			if cmd.Flags().Changed("name") {
				req.Name = strings.TrimSpace(newName)
			}
			u, err := a.unitService.Update(cmd.Context(), id, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Updated unit %s (%s)\n", u.ID, u.Code)
			return nil
		},
	}
	update.Flags().StringVar(&newCode, "code", "", "unit code")
	update.Flags().StringVar(&newName, "name", "", "unit name")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a unit of measure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := st.app
			if err := a.unitService.Delete(cmd.Context(), models.ID(args[0])); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted unit %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, get, create, update, del)
	return cmd
}
