package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mithrel/sakura/pkg/api"
)

// facets is a shortcut for "how do my notes break down by <field>" without
// composing a full search.
func newFacetsCmd() *cobra.Command {
	var parent string

	cmd := &cobra.Command{
		Use:   "facets <field>...",
		Short: "Count notes by field value",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)

			notes, err := app.Store.Snapshot(cmd.Context(), parent)
			if err != nil {
				return err
			}

			res, err := app.Engine.Search(notes, api.SearchRequest{
				Query:         "*",
				Limit:         1, // facets cover the whole set regardless of page size
				IncludeFacets: true,
				FacetFields:   args,
			})
			if err != nil {
				return err
			}

			for _, field := range args {
				fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", field)
				for _, fv := range res.Facets[field] {
					fmt.Fprintf(cmd.OutOrStdout(), "  %v\t%d\n", fv.Value, fv.Count)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "restrict to one notebook id")
	return cmd
}
