package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"scorebook/internal/retro"
)

func newPlayCommand() *cobra.Command {
	var (
		batter     string
		runnersOn  string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:         "play <event>",
		Short:       "Parse a single play string without touching the database",
		Long:        "Parse one Retrosheet play string, such as 'S8/G.3-H;1-2', and show the resulting outs, runs, and baserunner state.",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			before, err := parseRunnersFlag(runnersOn)
			if err != nil {
				return err
			}

			play := retro.NewPlay(1, retro.HalfTop, batter, "", "", args[0])
			play.RunnersBefore = before

			pe, err := play.PlayEvent()
			if err != nil {
				return err
			}
			re, err := play.RunnerEvent()
			if err != nil {
				return err
			}
			outs, err := play.OutsMadeOnPlay()
			if err != nil {
				return err
			}
			rbis, err := play.RBIs()
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, struct {
					Event         string   `json:"event"`
					Hit           bool     `json:"hit"`
					AtBat         bool     `json:"at_bat"`
					Outs          int      `json:"outs"`
					Runs          int      `json:"runs"`
					RBIs          int      `json:"rbis"`
					ScoringRunners []string `json:"scoring_runners,omitempty"`
					RunnersAfter  string   `json:"runners_after"`
					Anomalies     []string `json:"anomalies,omitempty"`
				}{
					Event:          describeEvent(pe),
					Hit:            pe.IsHit(),
					AtBat:          pe.AtBat,
					Outs:           outs,
					Runs:           re.Runs,
					RBIs:           rbis,
					ScoringRunners: re.ScoringRunners,
					RunnersAfter:   play.RunnersAfter.String(),
					Anomalies:      re.Anomalies,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %s\n", args[0], describeEvent(pe))
			fmt.Fprintf(out, "  outs %d, runs %d, rbis %d\n", outs, re.Runs, rbis)
			if len(re.ScoringRunners) > 0 {
				fmt.Fprintf(out, "  scored: %s\n", strings.Join(re.ScoringRunners, ", "))
			}
			fmt.Fprintf(out, "  runners after: %s\n", play.RunnersAfter)
			for _, anomaly := range re.Anomalies {
				fmt.Fprintf(out, "  anomaly: %s\n", anomaly)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&batter, "batter", "batter", "Player id for the batter")
	cmd.Flags().StringVar(&runnersOn, "runners", "", "Runners before the play, e.g. '1=smitj001,3=jonec002'")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the parse as JSON")
	return cmd
}

func parseRunnersFlag(value string) (retro.BaseRunners, error) {
	var br retro.BaseRunners
	value = strings.TrimSpace(value)
	if value == "" {
		return br, nil
	}
	for _, part := range strings.Split(value, ",") {
		base, id, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok || id == "" {
			return br, fmt.Errorf("invalid runner %q, want base=player", part)
		}
		switch base {
		case "1":
			br.First = id
		case "2":
			br.Second = id
		case "3":
			br.Third = id
		default:
			return br, fmt.Errorf("invalid base %q, want 1, 2, or 3", base)
		}
	}
	return br, nil
}

func describeEvent(pe *retro.PlayEvent) string {
	switch {
	case pe.NoPlay:
		return "no play"
	case pe.StrikeOut:
		return "strikeout"
	case pe.IntentionalWalk:
		return "intentional walk"
	case pe.BaseOnBalls:
		return "walk"
	case pe.HitByPitch:
		return "hit by pitch"
	case pe.HomeRun:
		return "home run"
	case pe.Triple:
		return "triple"
	case pe.Double:
		return "double"
	case pe.Single:
		return "single"
	case pe.FieldersChoice:
		return "fielder's choice"
	case pe.Balk:
		return "balk"
	case pe.WildPitch:
		return "wild pitch"
	case pe.PassedBall:
		return "passed ball"
	case pe.DefensiveIndifference:
		return "defensive indifference"
	case pe.CaughtStealing:
		return "caught stealing"
	case pe.Pickoff:
		return "pickoff"
	case pe.StolenBase:
		return "stolen base"
	case pe.Errors > 0 && !pe.Out:
		return "reached on error"
	case pe.TriplePlay:
		return "triple play"
	case pe.DoublePlay:
		return "double play"
	case pe.Out:
		return "out"
	default:
		return "other advance"
	}
}
