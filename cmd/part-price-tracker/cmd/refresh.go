package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Run one refresh cycle in-process and print its report",
	Long: "Runs a single refresh cycle against the configured database without " +
		"starting the API server. Use ppt refresh to trigger a cycle on a running server.",
	RunE: runRefresh,
}

func runRefresh(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	st, err := openStore(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	report, err := newApp(cfg, st, log).engine.RunCycle(ctx, domain.TriggerCLI)
	if err != nil {
		return fmt.Errorf("running refresh cycle: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	if report.Outcome == domain.OutcomeTotalFailure {
		return fmt.Errorf("refresh cycle failed for all %d items", report.Items)
	}
	return nil
}
