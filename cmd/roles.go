package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/careersuite/internal/catalog"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the target roles of the catalog",
	Run: func(_ *cobra.Command, _ []string) {
		logger, config := setup()

		roles, err := catalog.Load(config.Catalog)
		if err != nil {
			logger.Fatal("loading role catalog", zap.Error(err))
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTITLE\tKEYWORDS")
		for _, r := range roles.Roles {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", r.ID, r.Title, strings.Join(r.Keywords, ", "))
		}
		if err := tw.Flush(); err != nil {
			logger.Fatal("writing roles", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(rolesCmd)
}
