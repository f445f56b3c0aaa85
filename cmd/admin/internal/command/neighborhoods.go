package command

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var importNeighborhoodsCmd = &cobra.Command{
	Use:   "import-neighborhoods <file.csv>",
	Short: "Import neighborhood delivery fees from a rate table",
	Long: `Reads a ';' separated rate table with either the
"Bairro;Região;Taxa" or the "Nome;Zona;Valor" header and upserts the
neighborhood fees by name. Missing regions are created.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		svc, db, err := open(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		result, err := svc.Importer.Import(cmd.Context(), f)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d bairros criados, %d atualizados, %d regiões criadas\n",
			result.Created, result.Updated, result.RegionsCreated)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(importNeighborhoodsCmd)
}
