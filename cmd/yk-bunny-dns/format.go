package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/yuriy-kovalchuk/yk-bunny-dns/internal/bunnyapi"
)

// FormatZone returns a human-readable representation of a zone and its records.
func FormatZone(z *bunnyapi.Zone) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Zone %s (id %d)\n", z.Domain, z.ID)

	if z.Nameserver1 != "" || z.Nameserver2 != "" {
		fmt.Fprintf(&b, "  Nameservers: %s %s\n", z.Nameserver1, z.Nameserver2)
	}
	if z.SoaEmail != "" {
		fmt.Fprintf(&b, "  SOA email: %s\n", z.SoaEmail)
	}

	if len(z.Records) == 0 {
		fmt.Fprintf(&b, "  Records: none\n")
		return b.String()
	}

	fmt.Fprintf(&b, "  Records:\n")
	for _, r := range z.Records {
		fmt.Fprintf(&b, "    - %s\n", FormatRecord(r))
	}
	return b.String()
}

// FormatRecord renders a record on a single line.
func FormatRecord(r bunnyapi.Record) string {
	typ := r.TypeName()
	if typ == "" {
		typ = fmt.Sprintf("TYPE%d", r.Type)
	}
	name := r.Name
	if name == "" {
		name = "@"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%d] %s %s %s ttl=%d", r.ID, name, typ, r.Value, r.TTL)
	switch typ {
	case "MX":
		fmt.Fprintf(&b, " priority=%d", r.Priority)
	case "SRV":
		fmt.Fprintf(&b, " priority=%d weight=%d port=%d", r.Priority, r.Weight, r.Port)
	case "CAA":
		fmt.Fprintf(&b, " flags=%d tag=%s", r.Flags, r.Tag)
	}
	if r.Disabled {
		b.WriteString(" disabled")
	}
	if r.Comment != "" {
		fmt.Fprintf(&b, " # %s", r.Comment)
	}
	return b.String()
}

// render writes v as JSON when requested, otherwise the text form.
func (a *app) render(w io.Writer, v any, text string) error {
	switch a.output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "text", "":
		_, err := io.WriteString(w, text)
		return err
	default:
		return fmt.Errorf("unknown output format %q (want text or json)", a.output)
	}
}
