package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newProductionCommand(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "production",
		Short: "Production planning",
	}

	suggest := &cobra.Command{
		Use:   "suggest",
		Short: "Show what can be produced from the current stock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := st.app
			plan, err := a.productionService.Suggest(cmd.Context())
			if err != nil {
				return err
			}
			if len(plan.Suggestions) == 0 {
				fmt.Fprintln(a.out, "Nothing can be produced with the current stock.")
				return nil
			}

			rows := make([][]string, 0, len(plan.Suggestions))
			for _, s := range plan.Suggestions {
				rows = append(rows, []string{
					s.ProductCode, s.ProductName, strconv.FormatInt(s.Quantity, 10),
					formatMoney(s.UnitValue), formatMoney(s.TotalValue),
				})
			}
			a.printMarkdown(mdTable([]string{"Code", "Product", "Quantity", "Unit value", "Total"}, rows) +
				fmt.Sprintf("\n**Total value:** %s\n", formatMoney(plan.TotalValue)))
			return nil
		},
	}

	cmd.AddCommand(suggest)
	return cmd
}
