package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mithrel/sakura/internal/util"
)

func newSuggestCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "suggest <partial>",
		Short: "Suggest note titles for a partial query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)

			notes, err := app.Store.Snapshot(cmd.Context(), "")
			if err != nil {
				return err
			}

			seen := make(map[string]struct{}, len(notes))
			titles := make([]string, 0, len(notes))
			for _, n := range notes {
				if n.Title == "" {
					continue
				}
				if _, ok := seen[n.Title]; ok {
					continue
				}
				seen[n.Title] = struct{}{}
				titles = append(titles, n.Title)
			}

			for _, title := range util.ScoreCompletions(args[0], titles, limit) {
				fmt.Fprintln(cmd.OutOrStdout(), title)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 3, "max suggestions")
	return cmd
}
