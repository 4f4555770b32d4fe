package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"scorebook/internal/store"
)

func newGameCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "game <id>",
		Short: "Show one game play by play",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				row   *store.GameRow
				plays []*store.PlayRow
			)
			err := ctx.withStore(func(st *store.Store) error {
				var err error
				row, err = st.GetGame(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				plays, err = st.PlaysForGame(cmd.Context(), args[0])
				return err
			})
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, struct {
					Game  *store.GameRow  `json:"game"`
					Plays []*store.PlayRow `json:"plays"`
				}{row, plays})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s at %s, %s", row.VisitTeam, row.HomeTeam, row.Date)
			if row.Park != "" {
				fmt.Fprintf(out, " (%s)", row.Park)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, renderTable(
				[]string{"", "R", "H", "LOB"},
				[][]string{
					{row.VisitTeam, strconv.Itoa(row.VisitorRuns), strconv.Itoa(row.VisitorHits), strconv.Itoa(row.VisitorLOB)},
					{row.HomeTeam, strconv.Itoa(row.HomeRuns), strconv.Itoa(row.HomeHits), strconv.Itoa(row.HomeLOB)},
				},
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight},
			))

			rows := make([][]string, 0, len(plays))
			for _, p := range plays {
				rows = append(rows, []string{
					strconv.Itoa(p.PlayNumber),
					fmt.Sprintf("%s%d", p.Half[:1], p.Inning),
					p.BatterID,
					p.Raw,
					strconv.Itoa(p.Outs),
					strconv.Itoa(p.Runs),
					p.RunnersAfter,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Inn", "Batter", "Play", "Outs", "Runs", "Runners after"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the game as JSON")
	return cmd
}
