package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yuriy-kovalchuk/yk-bunny-dns/internal/bunnyapi"
)

// recordFlags holds the record fields settable from the command line. Only
// flags the user actually set end up in the payload.
type recordFlags struct {
	typ, name, value, tag, comment string
	ttl, priority, weight, port    int
	flags                          int
	disabled                       bool
}

func (f *recordFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.typ, "type", "", "record type (A, AAAA, CNAME, TXT, MX, SRV, CAA, PTR, NS)")
	fs.StringVar(&f.name, "name", "", "record name relative to the zone (empty for the apex)")
	fs.StringVar(&f.value, "value", "", "record value")
	fs.IntVar(&f.ttl, "ttl", 0, "time to live in seconds")
	fs.IntVar(&f.priority, "priority", 0, "MX/SRV priority")
	fs.IntVar(&f.weight, "weight", 0, "SRV weight")
	fs.IntVar(&f.port, "port", 0, "SRV port")
	fs.IntVar(&f.flags, "flags", 0, "CAA flags")
	fs.StringVar(&f.tag, "tag", "", "CAA tag")
	fs.StringVar(&f.comment, "comment", "", "free-form comment")
	fs.BoolVar(&f.disabled, "disabled", false, "disable the record")
}

func (f *recordFlags) payload(fs *pflag.FlagSet) bunnyapi.RecordPayload {
	var p bunnyapi.RecordPayload
	if fs.Changed("type") {
		p.Type = bunnyapi.Ptr(f.typ)
	}
	if fs.Changed("name") {
		p.Name = bunnyapi.Ptr(f.name)
	}
	if fs.Changed("value") {
		p.Value = bunnyapi.Ptr(f.value)
	}
	if fs.Changed("ttl") {
		p.TTL = bunnyapi.Ptr(f.ttl)
	}
	if fs.Changed("priority") {
		p.Priority = bunnyapi.Ptr(f.priority)
	}
	if fs.Changed("weight") {
		p.Weight = bunnyapi.Ptr(f.weight)
	}
	if fs.Changed("port") {
		p.Port = bunnyapi.Ptr(f.port)
	}
	if fs.Changed("flags") {
		p.Flags = bunnyapi.Ptr(f.flags)
	}
	if fs.Changed("tag") {
		p.Tag = bunnyapi.Ptr(f.tag)
	}
	if fs.Changed("comment") {
		p.Comment = bunnyapi.Ptr(f.comment)
	}
	if fs.Changed("disabled") {
		p.Disabled = bunnyapi.Ptr(f.disabled)
	}
	return p
}

func parseRecordID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid record id %q: %w", s, err)
	}
	return id, nil
}

func newRecordsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Create, update and delete records by ID",
	}

	var createFlags recordFlags
	create := &cobra.Command{
		Use:   "create <zone>",
		Short: "Create a record in a zone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			payload := createFlags.payload(cmd.Flags())
			var rec *bunnyapi.Record
			err = a.withRetry(cmd.Context(), func() error {
				rec, err = c.CreateRecord(cmd.Context(), args[0], payload)
				return err
			})
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), rec, FormatRecord(*rec)+"\n")
		},
	}
	createFlags.register(create.Flags())

	var updateFlags recordFlags
	update := &cobra.Command{
		Use:   "update <zone> <record-id>",
		Short: "Update a record; its name and type cannot change",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRecordID(args[1])
			if err != nil {
				return err
			}
			c, err := a.client()
			if err != nil {
				return err
			}
			// --name and --type are passed through so the client rejects them.
			payload := updateFlags.payload(cmd.Flags())
			if err := a.withRetry(cmd.Context(), func() error {
				return c.UpdateRecord(cmd.Context(), args[0], id, payload)
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "record %d updated\n", id)
			return nil
		},
	}
	updateFlags.register(update.Flags())

	del := &cobra.Command{
		Use:   "delete <zone> <record-id>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRecordID(args[1])
			if err != nil {
				return err
			}
			c, err := a.client()
			if err != nil {
				return err
			}
			if err := a.withRetry(cmd.Context(), func() error {
				return c.DeleteRecord(cmd.Context(), args[0], id)
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "record %d deleted\n", id)
			return nil
		},
	}

	cmd.AddCommand(create, update, del)
	return cmd
}
