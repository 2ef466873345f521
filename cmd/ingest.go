package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"LottoSync/internal/model"

	"github.com/spf13/cobra"
)

const dateOnly = "2006-01-02"

func parseFlagTime(value string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(dateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: cannot parse %q", model.ErrInvalidDateRange, value)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newIngestCmd() *cobra.Command {
	var (
		typeName string
		from, to string
		all      bool
	)
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest one lottery type or every enabled type",
		Example: `  lottosync ingest --type UK_LOTTO
  lottosync ingest --type EST_KENO --from 2025-01-01 --to 2025-01-31
  lottosync ingest --all`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if all == (typeName != "") {
				return errors.New("exactly one of --type or --all is required")
			}
			var rng *model.DateRange
			if from != "" || to != "" {
				if all {
					return errors.New("--from/--to cannot be combined with --all")
				}
				if from == "" {
					return fmt.Errorf("%w: --to given without --from", model.ErrInvalidDateRange)
				}
				f, err := parseFlagTime(from, false)
				if err != nil {
					return err
				}
				end := time.Now().UTC()
				if to != "" {
					if end, err = parseFlagTime(to, true); err != nil {
						return err
					}
				}
				rng = &model.DateRange{From: f, To: end}
			}

			a, err := bootstrap()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if all {
				summaries, err := a.dispatcher.IngestAll(ctx)
				if perr := printJSON(summaries); perr != nil {
					return perr
				}
				return err
			}
			t, err := model.ParseLottoType(typeName)
			if err != nil {
				return err
			}
			summary, err := a.dispatcher.Ingest(ctx, t, rng)
			if err != nil {
				return err
			}
			return printJSON(summary)
		},
	}
	cmd.Flags().StringVar(&typeName, "type", "", "lottery type, e.g. UK_LOTTO")
	cmd.Flags().StringVar(&from, "from", "", "range start (RFC3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "range end, inclusive (RFC3339 or YYYY-MM-DD); defaults to now")
	cmd.Flags().BoolVar(&all, "all", false, "ingest every enabled type over the default window")
	return cmd
}
