package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/part-price-tracker/internal/api/client"
	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

func refreshCmd() *cobra.Command {
	var last bool

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Run a refresh cycle now",
		Long: "Asks the server to fetch every active product URL once, record the\n" +
			"samples and send notifications. The command waits for the cycle to\n" +
			"finish and prints its report. With --last it only shows the report of\n" +
			"the most recent cycle.",
		Example: `  ppt refresh
  ppt refresh --last --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := newClient()

			var (
				report *domain.CycleReport
				err    error
			)
			if last {
				report, err = c.LastReport(cmd.Context())
				if apiclient.IsStatus(err, http.StatusNotFound) {
					fmt.Fprintln(cmd.OutOrStdout(), "No refresh cycle has run yet.")
					return nil
				}
			} else {
				report, err = c.Refresh(cmd.Context(), domain.TriggerCLI)
				if apiclient.IsStatus(err, http.StatusConflict) {
					return fmt.Errorf("a refresh cycle is already running, try again later")
				}
			}
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), report)
			}
			return printCycleReport(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().BoolVar(&last, "last", false, "show the last cycle report instead of running one")
	return cmd
}
