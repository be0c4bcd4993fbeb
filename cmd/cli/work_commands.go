package main

import (
	"fmt"
	"strings"

	"github.com/EncoreMusictech/encore-live-sub011/pkg/models"
	"github.com/EncoreMusictech/encore-live-sub011/pkg/royalty"
	"github.com/EncoreMusictech/encore-live-sub011/pkg/utils"
	"github.com/spf13/cobra"
)

func newWorkCommand(ctx *commandContext) *cobra.Command {
	workCmd := &cobra.Command{
		Use:   "work",
		Short: "Manage catalog works",
	}

	workCmd.AddCommand(newWorkAddCommand(ctx))
	workCmd.AddCommand(newWorkListCommand(ctx))
	workCmd.AddCommand(newWorkDeleteCommand(ctx))

	return workCmd
}

func newWorkAddCommand(ctx *commandContext) *cobra.Command {
	var title, iswc string
	var akas, writers []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a work (merged into an existing work with the same ISWC or title)",
		RunE: func(cmd *cobra.Command, args []string) error {
			work := models.CatalogWork{
				Title: strings.TrimSpace(title),
				ISWC:  strings.TrimSpace(iswc),
				AKAs:  akas,
			}
			for _, w := range writers {
				credit, err := parseWriter(w)
				if err != nil {
					return err
				}
				work.Writers = append(work.Writers, credit)
			}

			out := cmd.OutOrStdout()
			if work.ISWC != "" && !utils.ValidISWC(work.ISWC) {
				fmt.Fprintf(out, "⚠️  ISWC %s fails check-digit validation; storing it anyway\n", work.ISWC)
			}

			return ctx.withService(cmd, func(svc royalty.Service) error {
				id, err := svc.AddWork(work)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, "✅ Work registered")
				fmt.Fprintf(out, "   ID:    %s\n", id)
				fmt.Fprintf(out, "   Title: %s\n", work.Title)
				if work.ISWC != "" {
					fmt.Fprintf(out, "   ISWC:  %s\n", displayISWC(work.ISWC))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Work title (required)")
	cmd.Flags().StringVar(&iswc, "iswc", "", "ISWC, e.g. T-123.456.789-0")
	cmd.Flags().StringSliceVar(&akas, "aka", nil, "Alternate title (repeatable)")
	cmd.Flags().StringArrayVar(&writers, "writer", nil, "Writer as Name[:percentage[:role]] (repeatable)")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newWorkListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog works",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(svc royalty.Service) error {
				works, err := svc.ListWorks()
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, works)
				}

				out := cmd.OutOrStdout()
				if len(works) == 0 {
					fmt.Fprintln(out, "📭 Catalog is empty")
					return nil
				}

				rows := make([][]string, 0, len(works))
				for _, w := range works {
					rows = append(rows, []string{
						w.ID,
						w.Title,
						dash(displayISWC(w.ISWC)),
						dash(strings.Join(w.AKAs, ", ")),
						dash(writerNames(w.Writers)),
					})
				}
				fmt.Fprintln(out, renderTable([]string{"ID", "Title", "ISWC", "AKAs", "Writers"}, rows, nil))
				fmt.Fprintf(out, "%d works\n", len(works))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newWorkDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <work-id>",
		Short: "Delete a work and its metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(svc royalty.Service) error {
				if err := svc.DeleteWork(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Deleted work %s\n", args[0])
				return nil
			})
		},
	}
}
