package main

import (
	"fmt"

	"github.com/EncoreMusictech/encore-live-sub011/pkg/royalty"
	"github.com/EncoreMusictech/encore-live-sub011/pkg/utils"
	"github.com/spf13/cobra"
)

func newReconcileCommand(ctx *commandContext) *cobra.Command {
	var minConfidence float64
	var estimate, asJSON bool

	cmd := &cobra.Command{
		Use:   "reconcile <statement.csv>",
		Short: "Match a royalty statement against the catalog",
		Long: "Reads a CSV statement with title and artist columns (iswc and amount optional),\n" +
			"links each line to its best catalog work and optionally estimates the pipeline\n" +
			"of the works it resolved to.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			songs, err := utils.ReadStatementCSV(args[0])
			if err != nil {
				return err
			}

			return ctx.withService(cmd, func(svc royalty.Service) error {
				if estimate {
					est, err := svc.EstimateStatementPipeline(cmd.Context(), songs, minConfidence)
					if err != nil {
						return err
					}
					if asJSON {
						return writeJSON(cmd, est)
					}
					printReconcileReport(cmd, &est.Reconcile)
					fmt.Fprintln(cmd.OutOrStdout())
					printCatalogPipeline(cmd, &est.Pipeline, false)
					return nil
				}

				report, err := svc.ReconcileStatement(cmd.Context(), songs, minConfidence)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, report)
				}
				printReconcileReport(cmd, report)
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&minConfidence, "min", 0, "Minimum confidence to link a line (default: service auto-link floor)")
	cmd.Flags().BoolVar(&estimate, "estimate", false, "Also estimate the pipeline of matched works")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func printReconcileReport(cmd *cobra.Command, report *royalty.ReconcileReport) {
	out := cmd.OutOrStdout()

	rows := make([][]string, 0, len(report.Lines))
	for _, line := range report.Lines {
		amount := "-"
		if line.Song.GrossAmount != nil {
			amount = formatMoney(*line.Song.GrossAmount)
		}
		work, tier, conf := "-", "unmatched", "-"
		if line.Match != nil {
			work = line.Match.Work.Title
			tier = string(line.Match.MatchType)
			conf = formatPercent(line.Match.Confidence)
		}
		rows = append(rows, []string{line.Song.Title, dash(line.Song.Artist), amount, work, tier, conf})
	}

	headers := []string{"Reported Title", "Artist", "Amount", "Work", "Tier", "Confidence"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignRight}
	fmt.Fprintln(out, renderTable(headers, rows, aligns))
	fmt.Fprintf(out, "✅ Matched:   %d lines (%s)\n", report.Matched, formatMoney(report.MatchedGross))
	fmt.Fprintf(out, "❓ Unmatched: %d lines (%s)\n", report.Unmatched, formatMoney(report.UnmatchedGross))
}
