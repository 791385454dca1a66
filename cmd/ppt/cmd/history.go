package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/part-price-tracker/internal/api/client"
)

func historyCmd() *cobra.Command {
	var (
		since string
		from  string
		to    string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "history <product-url-id>",
		Short: "Show the price timeline of a product URL",
		Example: `  ppt history 12
  ppt history 12 --since 168h
  ppt history 12 --from 2026-09-01T00:00:00Z --to 2026-10-01T00:00:00Z`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			q := apiclient.HistoryQuery{Limit: limit}
			if since != "" {
				d, err := time.ParseDuration(since)
				if err != nil {
					return fmt.Errorf("invalid --since: %w", err)
				}
				q.From = time.Now().Add(-d)
			}
			if q.From, err = parseTimeFlag("from", from, q.From); err != nil {
				return err
			}
			if q.To, err = parseTimeFlag("to", to, q.To); err != nil {
				return err
			}

			h, err := newClient().GetHistory(cmd.Context(), id, q)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), h)
			}
			if len(h.Samples) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No samples recorded.")
				return nil
			}
			if err := printSamplesTable(cmd.OutOrStdout(), h.Samples); err != nil {
				return err
			}
			if h.Truncated {
				fmt.Fprintf(cmd.OutOrStdout(), "\nShowing the first %d samples; narrow the window or raise --limit.\n", len(h.Samples))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "only samples newer than this duration (e.g. 72h)")
	cmd.Flags().StringVar(&from, "from", "", "inclusive lower bound (RFC 3339)")
	cmd.Flags().StringVar(&to, "to", "", "inclusive upper bound (RFC 3339)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum samples (server default 1000)")
	return cmd
}

func latestCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "latest <product-url-id>",
		Short:   "Show the newest sample of a product URL",
		Example: `  ppt latest 12`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := newClient().GetLatest(cmd.Context(), id)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), s)
			}
			return printSampleDetail(cmd.OutOrStdout(), s)
		},
	}
}

func priceHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "prices <oem>",
		Short: "Show recent prices of a part across retailers",
		Example: `  ppt prices CMK32GX5M2B6000C36
  ppt prices CMK32GX5M2B6000C36 --limit 20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ph, err := newClient().GetPriceHistory(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), ph)
			}
			if len(ph.Points) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No prices recorded for %s.\n", args[0])
				return nil
			}
			return printPricePointsTable(cmd.OutOrStdout(), ph.Points)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "number of samples (server default 100)")
	return cmd
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", raw)
	}
	return id, nil
}

func parseTimeFlag(name, raw string, fallback time.Time) (time.Time, error) {
	if raw == "" {
		return fallback, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return t, nil
}
