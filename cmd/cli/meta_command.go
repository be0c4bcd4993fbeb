package main

import (
	"fmt"

	"github.com/EncoreMusictech/encore-live-sub011/pkg/models"
	"github.com/EncoreMusictech/encore-live-sub011/pkg/royalty"
	"github.com/spf13/cobra"
)

func newMetaCommand(ctx *commandContext) *cobra.Command {
	metaCmd := &cobra.Command{
		Use:   "meta",
		Short: "Manage pipeline metadata for works",
	}
	metaCmd.AddCommand(newMetaSetCommand(ctx))
	return metaCmd
}

func newMetaSetCommand(ctx *commandContext) *cobra.Command {
	var completeness float64
	var status, iswc string
	var publishers, writerSplits, registrations []string

	cmd := &cobra.Command{
		Use:   "set <work-id>",
		Short: "Store completeness, verification and registration data for a work",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta := models.SongMetaForPipeline{
				WorkID:             args[0],
				Completeness:       completeness,
				VerificationStatus: models.VerificationStatus(status),
				ISWC:               iswc,
			}
			if !meta.VerificationStatus.Valid() {
				return fmt.Errorf("unknown verification status %q", status)
			}
			if completeness < 0 || completeness > 1 {
				return fmt.Errorf("completeness must be between 0 and 1, got %g", completeness)
			}

			var err error
			if meta.PublisherSplits, err = parseSplits(publishers); err != nil {
				return err
			}
			if meta.WriterSplits, err = parseSplits(writerSplits); err != nil {
				return err
			}
			for _, r := range registrations {
				reg, err := parseRegistration(r)
				if err != nil {
					return err
				}
				meta.Registrations = append(meta.Registrations, reg)
			}

			return ctx.withService(cmd, func(svc royalty.Service) error {
				if err := svc.SaveSongMeta(meta); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✅ Saved pipeline metadata for %s\n", meta.WorkID)
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&completeness, "completeness", 0, "Metadata completeness score (0-1)")
	cmd.Flags().StringVar(&status, "status", string(models.StatusUnknown),
		"Verification status: pro_verified, alternate_pro_verified, ai_generated, discovered, unknown")
	cmd.Flags().StringVar(&iswc, "iswc", "", "ISWC (defaults to the work's)")
	cmd.Flags().StringArrayVar(&publishers, "publisher", nil, "Publisher split as name=percentage (repeatable)")
	cmd.Flags().StringArrayVar(&writerSplits, "writer-split", nil, "Writer split as name=percentage (repeatable)")
	cmd.Flags().StringArrayVar(&registrations, "registration", nil, "PRO registration as ORG[:id] (repeatable)")
	return cmd
}
