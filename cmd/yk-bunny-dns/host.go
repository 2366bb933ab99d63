package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yuriy-kovalchuk/yk-bunny-dns/internal/dns"
)

// newHostCommand manages records by hostname through the registered
// provider, finding the zone from the hostname.
func newHostCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "host",
		Short: "Manage records by fully qualified hostname",
	}

	var (
		recordType, value, comment string
		ttl                        int
	)
	apply := &cobra.Command{
		Use:   "apply <hostname>",
		Short: "Create the record, or update it when upsert is enabled in the provider config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.loadProvider(); err != nil {
				return err
			}
			ctx := cmd.Context()
			hostname := args[0]
			record := dns.Record{
				Hostname: hostname,
				Type:     recordType,
				Value:    value,
				TTL:      ttl,
			}
			if comment != "" {
				record.Meta = map[string]string{"comment": comment}
			}

			if a.cfg.Upsert {
				if err := a.withRetry(ctx, func() error { return a.provider.Upsert(ctx, record) }); err != nil {
					return fmt.Errorf("upserting DNS record for %s: %w", hostname, err)
				}
				a.log.Info("upserted DNS record", "hostname", hostname, "value", value)
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s upserted\n", hostname, recordType)
				return nil
			}

			// Non-upsert path: only create if missing
			var exists bool
			err := a.withRetry(ctx, func() (err error) {
				exists, err = a.provider.Exists(ctx, hostname, recordType)
				return err
			})
			if err != nil {
				return fmt.Errorf("checking DNS record for %s: %w", hostname, err)
			}
			if exists {
				a.log.V(1).Info("DNS record already exists, skipping", "hostname", hostname)
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s already exists\n", hostname, recordType)
				return nil
			}
			if err := a.withRetry(ctx, func() error { return a.provider.Create(ctx, record) }); err != nil {
				return fmt.Errorf("creating DNS record for %s: %w", hostname, err)
			}
			a.log.Info("created DNS record", "hostname", hostname, "value", value)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s created\n", hostname, recordType)
			return nil
		},
	}
	apply.Flags().StringVar(&recordType, "type", "A", "record type")
	apply.Flags().StringVar(&value, "value", "", "record value")
	apply.Flags().IntVar(&ttl, "ttl", 0, "time to live in seconds (0 = provider default)")
	apply.Flags().StringVar(&comment, "comment", "", "free-form comment")
	_ = apply.MarkFlagRequired("value")

	var deleteType string
	del := &cobra.Command{
		Use:   "delete <hostname>",
		Short: "Delete the record for a hostname",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.loadProvider(); err != nil {
				return err
			}
			if err := a.withRetry(cmd.Context(), func() error {
				return a.provider.Delete(cmd.Context(), args[0], deleteType)
			}); err != nil {
				return fmt.Errorf("deleting DNS record for %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s deleted\n", args[0], deleteType)
			return nil
		},
	}
	del.Flags().StringVar(&deleteType, "type", "A", "record type")

	cmd.AddCommand(apply, del)
	return cmd
}
