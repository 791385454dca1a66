package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/part-price-tracker/api/openapi"
	"github.com/donaldgifford/part-price-tracker/pkg/logger"
)

var openapiFormat string

var openapiCmd = &cobra.Command{
	Use:   "openapi",
	Short: "Print the OpenAPI document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Registration only inspects handler types, so no store is needed.
		_, api := newRouter(&app{}, logger.Discard())

		var (
			data []byte
			err  error
		)
		switch openapiFormat {
		case "json":
			data, err = openapi.JSON(api)
		case "yaml":
			data, err = api.OpenAPI().YAML()
		default:
			return fmt.Errorf("unknown format %q (want json or yaml)", openapiFormat)
		}
		if err != nil {
			return fmt.Errorf("rendering openapi document: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	openapiCmd.Flags().StringVar(&openapiFormat, "format", "yaml", "output format (json, yaml)")
}
