package main

import (
	"LottoSync/internal/model"

	"github.com/spf13/cobra"
)

func newResetCmd() *cobra.Command {
	var typeNames []string
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete stored draws and re-ingest the full history",
		Long:  "Deletes the stored draws and results of the given types (every enabled type when none is given) and re-ingests them from each region's history start.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			types := make([]model.LottoType, 0, len(typeNames))
			for _, name := range typeNames {
				t, err := model.ParseLottoType(name)
				if err != nil {
					return err
				}
				types = append(types, t)
			}

			a, err := bootstrap()
			if err != nil {
				return err
			}
			summaries, err := a.reset.ResetDraws(cmd.Context(), types...)
			if perr := printJSON(summaries); perr != nil {
				return perr
			}
			return err
		},
	}
	cmd.Flags().StringSliceVar(&typeNames, "type", nil, "lottery types to reset (repeatable or comma separated)")
	return cmd
}
