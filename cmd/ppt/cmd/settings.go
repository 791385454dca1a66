package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/part-price-tracker/internal/api/client"
)

func settingsCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "settings",
		Short: "View or change notification settings",
	}
	root.AddCommand(settingsShowCmd(), settingsSetCmd())
	return root
}

func settingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show notification settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ns, err := newClient().GetNotificationSettings(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), ns)
			}
			return printSettings(cmd.OutOrStdout(), ns)
		},
	}
}

func settingsSetCmd() *cobra.Command {
	var (
		enable     bool
		disable    bool
		credential string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update notification settings",
		Long: "Only the given fields change. The credential is the Pushbullet access\n" +
			"token or the Discord webhook URL, depending on the server's transport.\n" +
			"Changes apply from the next refresh cycle.",
		Example: `  ppt settings set --credential o.AbCdEf123 --enable
  ppt settings set --disable`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if enable && disable {
				return errors.New("--enable and --disable are mutually exclusive")
			}

			var u apiclient.SettingsUpdate
			switch {
			case enable:
				u.Enabled = &enable
			case disable:
				off := false
				u.Enabled = &off
			}
			if cmd.Flags().Changed("credential") {
				u.Credential = &credential
			}
			if u.Enabled == nil && u.Credential == nil {
				return errors.New("nothing to update: pass --enable, --disable or --credential")
			}

			ns, err := newClient().UpdateNotificationSettings(cmd.Context(), u)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), ns)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Settings updated.")
			return printSettings(cmd.OutOrStdout(), ns)
		},
	}

	cmd.Flags().BoolVar(&enable, "enable", false, "turn notifications on")
	cmd.Flags().BoolVar(&disable, "disable", false, "turn notifications off")
	cmd.Flags().StringVar(&credential, "credential", "", "transport credential (empty string clears it)")
	return cmd
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show server health",
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := newClient().GetHealth(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), h)
			}
			return printHealth(cmd.OutOrStdout(), h)
		},
	}
}
