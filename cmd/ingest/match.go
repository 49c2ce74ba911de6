package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/match-ingest/internal/domain/match"
	"github.com/riskibarqy/match-ingest/internal/usecase"
)

const matchDateLayout = "2006-01-02"

// matchSpec is the metadata that accompanies one feed file.
type matchSpec struct {
	File             string `json:"file"`
	ClubID           string `json:"club_id"`
	Opponent         string `json:"opponent"`
	OpponentCrestURL string `json:"opponent_crest_url"`
	Date             string `json:"date"`
	Venue            string `json:"venue"`
	HomeScore        int    `json:"home_score"`
	AwayScore        int    `json:"away_score"`
	Replace          bool   `json:"replace"`
}

func (m matchSpec) input(feedData []byte) (usecase.IngestInput, error) {
	date, err := time.Parse(matchDateLayout, strings.TrimSpace(m.Date))
	if err != nil {
		return usecase.IngestInput{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", usecase.ErrValidation, m.Date)
	}
	return usecase.IngestInput{
		ClubID:           strings.TrimSpace(m.ClubID),
		OpponentName:     strings.TrimSpace(m.Opponent),
		OpponentCrestURL: strings.TrimSpace(m.OpponentCrestURL),
		MatchDate:        date,
		Venue:            match.NormalizeVenue(m.Venue),
		HomeScore:        m.HomeScore,
		AwayScore:        m.AwayScore,
		Feed:             feedData,
		Replace:          m.Replace,
	}, nil
}

func newMatchCmd(state *cliState) *cobra.Command {
	var spec matchSpec

	cmd := &cobra.Command{
		Use:   "match <feed.json>",
		Short: "Ingest one match feed file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec.File = args[0]
			feedData, err := os.ReadFile(spec.File)
			if err != nil {
				return fmt.Errorf("read feed: %w", err)
			}
			input, err := spec.input(feedData)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), state.cfg.IngestTimeout)
			defer cancel()
			svc, release, err := state.service(ctx)
			if err != nil {
				return err
			}
			defer release()

			result, err := svc.Ingest(ctx, input)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&spec.ClubID, "club", "", "club id the match belongs to")
	cmd.Flags().StringVar(&spec.Opponent, "opponent", "", "opponent name as entered by the club")
	cmd.Flags().StringVar(&spec.OpponentCrestURL, "crest", "", "opponent crest url")
	cmd.Flags().StringVar(&spec.Date, "date", "", "match date, YYYY-MM-DD")
	cmd.Flags().StringVar(&spec.Venue, "venue", string(match.VenueHome), "home or away")
	cmd.Flags().IntVar(&spec.HomeScore, "home", 0, "entered home score")
	cmd.Flags().IntVar(&spec.AwayScore, "away", 0, "entered away score")
	cmd.Flags().BoolVar(&spec.Replace, "replace", false, "replace an existing match for the same club, opponent and date")
	for _, name := range []string{"club", "opponent", "date", "home", "away"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
