package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/yuriy-kovalchuk/yk-bunny-dns/internal/bunnyapi"
)

func newZonesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zones",
		Short: "List, inspect and create zones",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all zones on the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			var zones []string
			err = a.withRetry(cmd.Context(), func() error {
				zones, err = c.ListZones(cmd.Context())
				return err
			})
			if err != nil {
				return err
			}
			text := strings.Join(zones, "\n")
			if text != "" {
				text += "\n"
			}
			return a.render(cmd.OutOrStdout(), zones, text)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <zone>",
		Short: "Show a zone and its records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			var z *bunnyapi.Zone
			err = a.withRetry(cmd.Context(), func() error {
				z, err = c.GetZone(cmd.Context(), args[0])
				return err
			})
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), z, FormatZone(z))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "create <zone>",
		Short: "Create a zone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			var z *bunnyapi.Zone
			err = a.withRetry(cmd.Context(), func() error {
				z, err = c.CreateZone(cmd.Context(), args[0])
				return err
			})
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), z, FormatZone(z))
		},
	})

	return cmd
}
