package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func urlsCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "urls",
		Short: "Manage tracked product URLs",
		Long: "Each OEM part number has at most one listing URL per retailer. Setting\n" +
			"a URL replaces the previous one; removing it stops refreshes but keeps\n" +
			"the recorded history.",
	}

	root.AddCommand(urlsListCmd(), urlsSetCmd(), urlsRemoveCmd())
	return root
}

func urlsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list <oem>",
		Short:   "List a part's listing URLs",
		Example: `  ppt urls list CMK32GX5M2B6000C36`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			urls, err := newClient().ListProductURLs(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), urls)
			}
			if len(urls) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No URLs tracked for %s.\n", args[0])
				return nil
			}
			return printProductURLsTable(cmd.OutOrStdout(), urls)
		},
	}
}

func urlsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "set <oem> <retailer-id> <url>",
		Short:   "Track a part at a retailer",
		Example: `  ppt urls set CMK32GX5M2B6000C36 2 https://www.memoryexpress.com/Products/MX00123456`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			retailerID, err := parseID(args[1])
			if err != nil {
				return err
			}
			pu, err := newClient().SetProductURL(cmd.Context(), args[0], retailerID, args[2])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), pu)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tracking %s at retailer %d as product URL %d.\n", pu.OEM, pu.RetailerID, pu.ID)
			return nil
		},
	}
}

func urlsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <oem> <retailer-id>",
		Short:   "Stop tracking a part at a retailer",
		Example: `  ppt urls remove CMK32GX5M2B6000C36 2`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			retailerID, err := parseID(args[1])
			if err != nil {
				return err
			}
			if err := newClient().DeactivateProductURL(cmd.Context(), args[0], retailerID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stopped tracking %s at retailer %d.\n", args[0], retailerID)
			return nil
		},
	}
}
