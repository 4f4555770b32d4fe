package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"scorebook/internal/store"
)

func newGamesCommand(ctx *commandContext) *cobra.Command {
	var (
		team       string
		year       int
		date       string
		limit      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "games",
		Short: "List ingested games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var games []*store.GameRow
			err := ctx.withStore(func(st *store.Store) error {
				var err error
				games, err = st.ListGames(cmd.Context(), store.ListFilter{
					Team:  team,
					Year:  year,
					Date:  date,
					Limit: limit,
				})
				return err
			})
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, games)
			}
			if len(games) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No games match. Ingest a season first with `scorebook ingest <year>`.")
				return nil
			}

			rows := make([][]string, 0, len(games))
			for _, g := range games {
				rows = append(rows, []string{
					g.ID,
					g.Date,
					g.VisitTeam,
					g.HomeTeam,
					fmt.Sprintf("%d-%d", g.VisitorRuns, g.HomeRuns),
					strconv.Itoa(g.Innings),
					yesNo(g.UsesDH),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Game", "Date", "Away", "Home", "Score", "Inn", "DH"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&team, "team", "", "Only games involving this team code")
	cmd.Flags().IntVar(&year, "year", 0, "Only games from this season")
	cmd.Flags().StringVar(&date, "date", "", "Only games on this date (YYYY/MM/DD)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of games to list")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the games as JSON")
	return cmd
}
