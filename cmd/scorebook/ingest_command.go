package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"scorebook/internal/ingest"
	"scorebook/internal/season"
	"scorebook/internal/store"
)

func newIngestCommand(ctx *commandContext) *cobra.Command {
	var (
		team       string
		park       string
		workers    int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "ingest <year> [year...]",
		Short: "Parse season event files into the database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			years := make([]int, 0, len(args))
			for _, arg := range args {
				year, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("invalid year %q", arg)
				}
				years = append(years, year)
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if workers > 0 {
				cfg.Ingest.Workers = workers
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			var summary *ingest.Summary
			err = ctx.withStore(func(st *store.Store) error {
				ing := ingest.New(cfg, st, logger)
				ing.Filter = season.Filter{Team: team, Park: park}
				summary, err = ing.Run(cmd.Context(), years)
				return err
			})
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, summary)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s finished in %s\n", summary.RunID, summary.Duration.Round(time.Millisecond))
			fmt.Fprintln(out, renderTable(
				[]string{"Files", "Games stored", "Games failed"},
				[][]string{{
					strconv.Itoa(summary.Files),
					strconv.Itoa(summary.GamesStored),
					strconv.Itoa(summary.GamesFailed),
				}},
				[]columnAlignment{alignRight, alignRight, alignRight},
			))
			if summary.GamesFailed > 0 {
				fmt.Fprintf(out, "Run `scorebook errors --run %s` to inspect the failures.\n", summary.RunID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&team, "team", "", "Only ingest games involving this team code")
	cmd.Flags().StringVar(&park, "park", "", "Only ingest games played at this park code")
	cmd.Flags().IntVar(&workers, "workers", 0, "Override the configured worker count")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the run summary as JSON")
	return cmd
}
