package main

import (
	"fmt"
	"strings"

	"github.com/EncoreMusictech/encore-live-sub011/pkg/models"
	"github.com/EncoreMusictech/encore-live-sub011/pkg/royalty"
	"github.com/EncoreMusictech/encore-live-sub011/pkg/royalty/matching"
	"github.com/spf13/cobra"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var song models.SongRecord
	var minConfidence float64
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Rank catalog works against a reported song",
		RunE: func(cmd *cobra.Command, args []string) error {
			song.Title = strings.TrimSpace(song.Title)
			if song.Title == "" {
				return fmt.Errorf("--title is required")
			}

			return ctx.withService(cmd, func(svc royalty.Service) error {
				matches, err := svc.MatchSong(cmd.Context(), song, minConfidence)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, matches)
				}

				out := cmd.OutOrStdout()
				if len(matches) == 0 {
					fmt.Fprintf(out, "❌ No works at or above %s confidence\n", formatPercent(minConfidence))
					return nil
				}

				fmt.Fprintf(out, "🎯 %d candidate(s) for %q\n", len(matches), song.Title)
				rows := make([][]string, 0, len(matches))
				for i, m := range matches {
					rows = append(rows, []string{
						fmt.Sprintf("%d", i+1),
						m.Work.Title,
						string(m.MatchType),
						formatPercent(m.Confidence),
						fmt.Sprintf("%.3f", m.Factors.TitleSimilarity),
						fmt.Sprintf("%.3f", m.Factors.ArtistSimilarity),
						yesNo(m.Factors.ISWCMatch),
						m.Work.ID,
					})
				}
				headers := []string{"#", "Title", "Tier", "Confidence", "Title Sim", "Artist Sim", "ISWC", "Work ID"}
				aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight}
				fmt.Fprintln(out, renderTable(headers, rows, aligns))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&song.Title, "title", "", "Reported title (required)")
	cmd.Flags().StringVar(&song.Artist, "artist", "", "Reported artist")
	cmd.Flags().StringVar(&song.ISWC, "iswc", "", "Reported ISWC")
	cmd.Flags().Float64Var(&minConfidence, "min", matching.DefaultSearchFloor, "Minimum confidence (0-1)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
