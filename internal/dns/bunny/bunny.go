package bunny

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-playground/validator/v10"

	"github.com/yuriy-kovalchuk/yk-bunny-dns/internal/bunnyapi"
	"github.com/yuriy-kovalchuk/yk-bunny-dns/internal/dns"
)

func init() {
	dns.Register("bunny", func(log logr.Logger, settings map[string]string) (dns.Provider, error) {
		return New(log, settings)
	})
}

// settings are the provider settings after parsing.
type settings struct {
	APIKey     string `validate:"required"`
	BaseURL    string `validate:"omitempty,url"`
	UserAgent  string
	DefaultTTL int `validate:"gte=0"`
}

// Provider implements dns.Provider for Bunny DNS.
type Provider struct {
	client     *bunnyapi.Client
	defaultTTL int
	log        logr.Logger
}

// New creates a Bunny DNS provider from the given settings map.
// Required settings: api_key.
// Optional settings: base_url (default https://api.bunny.net),
// default_ttl (default 300), user_agent.
func New(log logr.Logger, raw map[string]string) (*Provider, error) {
	s := settings{
		APIKey:     raw["api_key"],
		BaseURL:    raw["base_url"],
		UserAgent:  raw["user_agent"],
		DefaultTTL: 300,
	}
	if v := raw["default_ttl"]; v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("bunny: invalid default_ttl %q: %w", v, err)
		}
		s.DefaultTTL = parsed
	}

	if err := validator.New().Struct(s); err != nil {
		return nil, fmt.Errorf("bunny: invalid settings: %w", err)
	}

	opts := []bunnyapi.Option{bunnyapi.WithLogger(log.WithName("api"))}
	if s.BaseURL != "" {
		opts = append(opts, bunnyapi.WithBaseURL(s.BaseURL))
	}
	if s.UserAgent != "" {
		opts = append(opts, bunnyapi.WithUserAgent(s.UserAgent))
	}
	client, err := bunnyapi.New(s.APIKey, opts...)
	if err != nil {
		return nil, err
	}

	return &Provider{
		client:     client,
		defaultTTL: s.DefaultTTL,
		log:        log,
	}, nil
}

// Client exposes the underlying API client.
func (p *Provider) Client() *bunnyapi.Client {
	return p.client
}

// locate resolves a hostname to its zone and the record name inside it.
func (p *Provider) locate(ctx context.Context, hostname string) (zone, name string, err error) {
	zones, err := p.client.ListZones(ctx)
	if err != nil {
		return "", "", err
	}
	zone, name, ok := dns.ZoneFor(hostname, zones)
	if !ok {
		return "", "", fmt.Errorf("bunny: no zone found for %s: %w", hostname, bunnyapi.ErrNotFound)
	}
	return zone, name, nil
}

// findRecord returns the zone holding hostname and the matching record, or
// a nil record if there is none.
func (p *Provider) findRecord(ctx context.Context, hostname, recordType string) (string, *bunnyapi.Record, error) {
	code, ok := bunnyapi.RecordTypeCode(recordType)
	if !ok {
		return "", nil, fmt.Errorf("bunny: unsupported record type %q", recordType)
	}
	zone, name, err := p.locate(ctx, hostname)
	if err != nil {
		return "", nil, err
	}

	z, err := p.client.GetZone(ctx, zone)
	if err != nil {
		return "", nil, fmt.Errorf("bunny: get zone %s: %w", zone, err)
	}
	for i, r := range z.Records {
		if r.Type == code && strings.EqualFold(r.Name, name) {
			return zone, &z.Records[i], nil
		}
	}
	return zone, nil, nil
}

func (p *Provider) ttl(record dns.Record) int {
	if record.TTL > 0 {
		return record.TTL
	}
	return p.defaultTTL
}

// Exists checks whether a record exists for the given hostname and record type.
func (p *Provider) Exists(ctx context.Context, hostname, recordType string) (bool, error) {
	p.log.Info("checking if record exists", "hostname", hostname, "type", recordType)
	_, rec, err := p.findRecord(ctx, hostname, recordType)
	if err != nil {
		return false, err
	}
	return rec != nil, nil
}

// Create adds a new record in the zone the hostname belongs to.
func (p *Provider) Create(ctx context.Context, record dns.Record) error {
	p.log.Info("creating record", "hostname", record.Hostname, "type", record.Type, "value", record.Value)

	zone, name, err := p.locate(ctx, record.Hostname)
	if err != nil {
		return err
	}
	payload := bunnyapi.RecordPayload{
		Type:  bunnyapi.Ptr(record.Type),
		Name:  bunnyapi.Ptr(name),
		Value: bunnyapi.Ptr(record.Value),
		TTL:   bunnyapi.Ptr(p.ttl(record)),
	}
	if c := record.Meta["comment"]; c != "" {
		payload.Comment = bunnyapi.Ptr(c)
	}

	created, err := p.client.CreateRecord(ctx, zone, payload)
	if err != nil {
		return fmt.Errorf("bunny: create %s/%s: %w", record.Hostname, record.Type, err)
	}
	p.log.Info("record created", "zone", zone, "id", created.ID)
	return nil
}

// Update changes the value and TTL of an existing record.
func (p *Provider) Update(ctx context.Context, record dns.Record) error {
	p.log.Info("updating record", "hostname", record.Hostname, "type", record.Type, "value", record.Value)

	zone, existing, err := p.findRecord(ctx, record.Hostname, record.Type)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("bunny: no existing record found for %s/%s", record.Hostname, record.Type)
	}

	payload := bunnyapi.RecordPayload{
		Value: bunnyapi.Ptr(record.Value),
		TTL:   bunnyapi.Ptr(p.ttl(record)),
	}
	if c := record.Meta["comment"]; c != "" {
		payload.Comment = bunnyapi.Ptr(c)
	}
	if err := p.client.UpdateRecord(ctx, zone, existing.ID, payload); err != nil {
		return fmt.Errorf("bunny: update %s/%s: %w", record.Hostname, record.Type, err)
	}

	p.log.Info("record updated", "zone", zone, "id", existing.ID)
	return nil
}

// Delete removes a record.
func (p *Provider) Delete(ctx context.Context, hostname, recordType string) error {
	p.log.Info("deleting record", "hostname", hostname, "type", recordType)

	zone, existing, err := p.findRecord(ctx, hostname, recordType)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("bunny: no existing record found for %s/%s", hostname, recordType)
	}
	if err := p.client.DeleteRecord(ctx, zone, existing.ID); err != nil {
		return fmt.Errorf("bunny: delete %s/%s: %w", hostname, recordType, err)
	}

	p.log.Info("record deleted", "zone", zone, "id", existing.ID)
	return nil
}

// Upsert creates or updates a record depending on whether it already exists.
func (p *Provider) Upsert(ctx context.Context, record dns.Record) error {
	exists, err := p.Exists(ctx, record.Hostname, record.Type)
	if err != nil {
		return fmt.Errorf("bunny: upsert check: %w", err)
	}
	if exists {
		return p.Update(ctx, record)
	}
	return p.Create(ctx, record)
}
