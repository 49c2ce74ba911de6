package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRollupCmd(state *cliState) *cobra.Command {
	var clubID string

	cmd := &cobra.Command{
		Use:   "rollup",
		Short: "Recompute season rollups for one club, or for every club",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, release, err := state.service(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			if clubID != "" {
				result, err := svc.RecomputeClubSeason(cmd.Context(), clubID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), result.Club)
			}

			result, rebuildErr := svc.RebuildAllSeasons(cmd.Context())
			if err := printJSON(cmd.OutOrStdout(), result); err != nil {
				return err
			}
			if rebuildErr != nil {
				return fmt.Errorf("%d of %d club rollups failed: %w", result.Failed, result.Clubs, rebuildErr)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&clubID, "club", "", "recompute a single club")
	return cmd
}
