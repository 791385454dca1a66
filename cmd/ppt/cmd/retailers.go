package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

func retailersCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "retailers",
		Short: "Manage retailers",
		Long: "List the built-in retailers, add custom selector-driven retailers,\n" +
			"and enable or disable retailers for refresh cycles.",
	}

	root.AddCommand(
		retailersListCmd(),
		retailersAddCmd(),
		retailersSetActiveCmd("enable", true),
		retailersSetActiveCmd("disable", false),
	)
	return root
}

func retailersListCmd() *cobra.Command {
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List retailers",
		Example: `  ppt retailers list
  ppt retailers list --active --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rs, err := newClient().ListRetailers(cmd.Context(), activeOnly)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), rs)
			}
			if len(rs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No retailers found.")
				return nil
			}
			return printRetailersTable(cmd.OutOrStdout(), rs)
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active", false, "only active retailers")
	return cmd
}

func retailersAddCmd() *cobra.Command {
	var r domain.Retailer

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a custom retailer",
		Long: "Add a retailer whose price is read with a CSS selector. Bare $ prices\n" +
			"are read in --currency; US$ and C$ markers always win.",
		Example: `  ppt retailers add --name Vuugo --domain vuugo.com --price-selector ".our-price"

  # Only count listings sold by the retailer itself
  ppt retailers add --name PartsDirect --domain partsdirect.example \
    --price-selector "#price" --sold-by-selector ".vendor" --sold-by-required partsdirect`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r.DefaultCurrency = strings.ToUpper(r.DefaultCurrency)
			created, err := newClient().CreateRetailer(cmd.Context(), &r)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), created)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created retailer %s (id %d).\n", created.Name, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&r.Name, "name", "", "display name (required)")
	cmd.Flags().StringVar(&r.Domain, "domain", "", "listing host, e.g. vuugo.com (required)")
	cmd.Flags().StringVar(&r.PriceSelector, "price-selector", "", "CSS selector of the price element (required)")
	cmd.Flags().StringVar(&r.SoldBySelector, "sold-by-selector", "", "CSS selector of the seller element")
	cmd.Flags().StringVar(&r.SoldByRequired, "sold-by-required", "", "seller text required for a listing to count")
	cmd.Flags().StringVar(&r.DefaultCurrency, "currency", "CAD", "currency of bare $ prices (CAD, USD)")
	for _, f := range []string{"name", "domain", "price-selector"} {
		cobra.CheckErr(cmd.MarkFlagRequired(f))
	}
	return cmd
}

func retailersSetActiveCmd(verb string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:     verb + " <retailer-id>",
		Short:   strings.ToUpper(verb[:1]) + verb[1:] + " a retailer",
		Example: "  ppt retailers " + verb + " 3",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			r, err := newClient().SetRetailerActive(cmd.Context(), id, active)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Retailer %s is now %s.\n", r.Name, activeLabel(r.Active))
			return nil
		},
	}
}

func activeLabel(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}
