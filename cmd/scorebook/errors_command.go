package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scorebook/internal/store"
)

func newErrorsCommand(ctx *commandContext) *cobra.Command {
	var (
		runID      string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "errors",
		Short: "List games that failed to ingest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var failures []*store.IngestErrorRow
			err := ctx.withStore(func(st *store.Store) error {
				var err error
				failures, err = st.IngestErrors(cmd.Context(), runID)
				return err
			})
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, failures)
			}
			if len(failures) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No ingest errors recorded.")
				return nil
			}

			rows := make([][]string, 0, len(failures))
			for _, f := range failures {
				rows = append(rows, []string{
					f.RunID,
					f.SourceFile,
					f.GameID,
					f.Message,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Run", "File", "Game", "Error"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run", "", "Only errors from this ingest run")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the errors as JSON")
	return cmd
}
