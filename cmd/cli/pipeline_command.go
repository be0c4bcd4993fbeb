package main

import (
	"fmt"

	"github.com/EncoreMusictech/encore-live-sub011/pkg/models"
	"github.com/EncoreMusictech/encore-live-sub011/pkg/royalty"
	"github.com/spf13/cobra"
)

func newPipelineCommand(ctx *commandContext) *cobra.Command {
	var asJSON, detail bool

	cmd := &cobra.Command{
		Use:   "pipeline [work-id]",
		Short: "Estimate uncollected royalty pipeline for the catalog or one work",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(svc royalty.Service) error {
				if len(args) == 1 {
					result, err := svc.SongPipeline(args[0])
					if err != nil {
						return err
					}
					if asJSON {
						return writeJSON(cmd, result)
					}
					printSongPipeline(cmd, result)
					return nil
				}

				result, err := svc.CatalogPipeline(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, result)
				}
				printCatalogPipeline(cmd, result, detail)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&detail, "detail", false, "List every work in the catalog estimate")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func printSongPipeline(cmd *cobra.Command, r *models.SongPipelineResult) {
	rows := [][]string{
		{"Annual gross estimate", formatMoney(r.AnnualGrossEstimate)},
		{"Monthly net baseline", formatMoney(r.MonthlyNetBaseline)},
		{"Decay k", fmt.Sprintf("%.3f", r.DecayK)},
		{"Domestic pipeline", formatMoney(r.DomesticPipeline)},
		{"International pipeline", formatMoney(r.InternationalPipeline)},
		{"Raw pipeline", formatMoney(r.RawPipeline)},
		{"Collectability", formatPercent(r.Collectability)},
		{"Collectible pipeline", formatMoney(r.CollectiblePipeline)},
		{"  Performance", formatMoney(r.ByRight.Performance)},
		{"  Mechanical", formatMoney(r.ByRight.Mechanical)},
		{"  Sync", formatMoney(r.ByRight.Sync)},
		{"Confidence", string(r.Confidence)},
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "💰 %s (%s)\n", r.Title, r.WorkID)
	fmt.Fprintln(out, renderTable([]string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
}

func printCatalogPipeline(cmd *cobra.Command, r *models.CatalogPipelineResult, detail bool) {
	out := cmd.OutOrStdout()

	if detail && len(r.Songs) > 0 {
		rows := make([][]string, 0, len(r.Songs))
		for _, s := range r.Songs {
			rows = append(rows, []string{
				s.Title,
				formatMoney(s.RawPipeline),
				formatPercent(s.Collectability),
				formatMoney(s.CollectiblePipeline),
				string(s.Confidence),
			})
		}
		headers := []string{"Title", "Raw", "Collectability", "Collectible", "Confidence"}
		aligns := []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignLeft}
		fmt.Fprintln(out, renderTable(headers, rows, aligns))
	}

	rows := [][]string{
		{"Works", fmt.Sprintf("%d", r.SongCount)},
		{"Raw pipeline", formatMoney(r.RawTotal)},
		{"Collectible pipeline", formatMoney(r.Total)},
		{"  Performance", formatMoney(r.ByRight.Performance)},
		{"  Mechanical", formatMoney(r.ByRight.Mechanical)},
		{"  Sync", formatMoney(r.ByRight.Sync)},
		{"Low scenario", formatMoney(r.Scenarios.Low)},
		{"High scenario", formatMoney(r.Scenarios.High)},
		{"Confidence score", fmt.Sprintf("%d/100", r.ConfidenceScore)},
	}
	fmt.Fprintln(out, "📊 Catalog pipeline")
	fmt.Fprintln(out, renderTable([]string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
}
