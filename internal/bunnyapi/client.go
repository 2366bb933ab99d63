// Package bunnyapi is a client for the Bunny DNS REST API.
//
// Bunny addresses zones by a numeric ID rather than by domain name, so the
// client keeps a ZoneCache of name to ID, loaded from the paged zone listing
// the first time a name has to be resolved. A Client is not safe for
// concurrent use; callers that share one must serialize calls.
package bunnyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultBaseURL is the root of Bunny's public API.
	DefaultBaseURL = "https://api.bunny.net"
	// DefaultUserAgent is sent unless overridden with WithUserAgent.
	DefaultUserAgent = "yk-bunny-dns"

	tracerName = "github.com/yuriy-kovalchuk/yk-bunny-dns/internal/bunnyapi"
)

// Client talks to the Bunny DNS API with a static access key.
type Client struct {
	baseURL   string
	apiKey    string
	userAgent string
	client    *http.Client
	log       logr.Logger
	tracer    trace.Tracer
	zones     *ZoneCache
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the HTTP client. No timeout is set by default.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithLogger sets the logger; requests are logged at V(1).
func WithLogger(log logr.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithTracerProvider sets where request spans go. The global provider is
// used by default.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) { c.tracer = tp.Tracer(tracerName) }
}

// New creates a client authenticating with apiKey.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("bunny: missing API key")
	}
	c := &Client{
		baseURL:   DefaultBaseURL,
		apiKey:    apiKey,
		userAgent: DefaultUserAgent,
		client:    &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()},
		log:       logr.Discard(),
		tracer:    otel.Tracer(tracerName),
		zones:     NewZoneCache(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// do executes a request and decodes the JSON response into out, when out
// is non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	ctx, span := c.tracer.Start(ctx, "bunny."+method)
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("bunny.path", path),
	)

	status, err := c.roundTrip(ctx, method, path, query, body, out)
	if status != 0 {
		span.SetAttributes(attribute.Int("http.status_code", status))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// roundTrip sends one request and returns the response status, or 0 when
// no response was received.
func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body, out any) (int, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, &Error{Kind: KindClient, Message: "marshal request body", Err: err}
		}
		bodyReader = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return 0, &Error{Kind: KindClient, Message: "build request", Err: err}
	}

	req.Header.Set("AccessKey", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.V(1).Info("sending request", "method", method, "path", path, "query", query.Encode())
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, &Error{Kind: KindClient, Message: fmt.Sprintf("%s %s", method, path), Err: err}
	}
	defer resp.Body.Close()

	if err := checkResponse(method, path, resp); err != nil {
		return resp.StatusCode, err
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, &Error{Kind: KindClient, Message: fmt.Sprintf("decode %s %s response", method, path), Err: err}
	}
	return resp.StatusCode, nil
}

// checkResponse maps the response status onto the error taxonomy.
func checkResponse(method, path string, resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return &Error{Kind: KindUnauthorized, StatusCode: resp.StatusCode, Message: "Unauthorized"}
	case resp.StatusCode == http.StatusNotFound:
		return &Error{Kind: KindNotFound, StatusCode: resp.StatusCode, Message: "Not Found"}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		msg := fmt.Sprintf("%s %s failed", method, path)
		if s := strings.TrimSpace(string(respBody)); s != "" {
			msg += ": " + s
		}
		return &Error{Kind: KindClient, StatusCode: resp.StatusCode, Message: msg}
	}
	return nil
}

// loadZones walks the paged zone listing into the cache.
func (c *Client) loadZones(ctx context.Context) error {
	for page := 1; ; page++ {
		var p zonePage
		query := url.Values{"page": {strconv.Itoa(page)}}
		if err := c.do(ctx, http.MethodGet, "/dnszone", query, nil, &p); err != nil {
			return err
		}
		for _, z := range p.Items {
			c.zones.Put(z.Domain, z.ID)
		}
		if !p.HasMoreItems {
			break
		}
	}
	c.zones.MarkLoaded()
	c.log.V(1).Info("zone cache loaded", "zones", c.zones.Len())
	return nil
}

// zoneID resolves a zone name, loading the cache first if needed. An
// unknown name is reported as NotFound without a request of its own.
func (c *Client) zoneID(ctx context.Context, name string) (int64, error) {
	if id, ok := c.zones.Lookup(name); ok {
		return id, nil
	}
	if !c.zones.Loaded() {
		if err := c.loadZones(ctx); err != nil {
			return 0, err
		}
		if id, ok := c.zones.Lookup(name); ok {
			return id, nil
		}
	}
	return 0, &Error{Kind: KindNotFound, Message: fmt.Sprintf("zone %s Not Found", name)}
}

// ListZones returns the names of all zones on the account, sorted.
func (c *Client) ListZones(ctx context.Context) ([]string, error) {
	if !c.zones.Loaded() {
		if err := c.loadZones(ctx); err != nil {
			return nil, err
		}
	}
	return c.zones.Names(), nil
}

// GetZone returns the zone called name, including its records.
func (c *Client) GetZone(ctx context.Context, name string) (*Zone, error) {
	id, err := c.zoneID(ctx, name)
	if err != nil {
		return nil, err
	}
	var z Zone
	if err := c.do(ctx, http.MethodGet, zonePath(id), nil, nil, &z); err != nil {
		return nil, err
	}
	return &z, nil
}

// CreateZone creates a zone and adds it to the cache without reloading it.
func (c *Client) CreateZone(ctx context.Context, name string) (*Zone, error) {
	c.log.Info("creating zone", "zone", name)

	var z Zone
	body := struct {
		Domain string `json:"Domain"`
	}{Domain: name}
	if err := c.do(ctx, http.MethodPost, "/dnszone", nil, body, &z); err != nil {
		return nil, err
	}
	c.zones.Put(name, z.ID)

	c.log.Info("zone created", "zone", name, "id", z.ID)
	return &z, nil
}

// CreateRecord adds a record to a zone. The payload must carry a supported
// Type; it is checked before anything is sent.
func (c *Client) CreateRecord(ctx context.Context, zoneName string, record RecordPayload) (*Record, error) {
	body, err := record.createBody()
	if err != nil {
		return nil, err
	}
	id, err := c.zoneID(ctx, zoneName)
	if err != nil {
		return nil, err
	}

	c.log.Info("creating record", "zone", zoneName, "type", *record.Type, "name", deref(record.Name))
	var r Record
	if err := c.do(ctx, http.MethodPut, zonePath(id)+"/records", nil, body, &r); err != nil {
		return nil, err
	}
	c.log.Info("record created", "zone", zoneName, "id", r.ID)
	return &r, nil
}

// UpdateRecord changes an existing record. Name and Type cannot be changed
// and must be left nil.
func (c *Client) UpdateRecord(ctx context.Context, zoneName string, recordID int64, record RecordPayload) error {
	body, err := record.updateBody()
	if err != nil {
		return err
	}
	id, err := c.zoneID(ctx, zoneName)
	if err != nil {
		return err
	}

	c.log.Info("updating record", "zone", zoneName, "id", recordID)
	return c.do(ctx, http.MethodPost, recordPath(id, recordID), nil, body, nil)
}

// DeleteRecord removes a record from a zone.
func (c *Client) DeleteRecord(ctx context.Context, zoneName string, recordID int64) error {
	id, err := c.zoneID(ctx, zoneName)
	if err != nil {
		return err
	}

	c.log.Info("deleting record", "zone", zoneName, "id", recordID)
	return c.do(ctx, http.MethodDelete, recordPath(id, recordID), nil, nil, nil)
}

// ClearCache drops every cached zone ID.
func (c *Client) ClearCache() {
	c.zones.Clear()
}

func zonePath(id int64) string {
	return "/dnszone/" + strconv.FormatInt(id, 10)
}

func recordPath(zoneID, recordID int64) string {
	return zonePath(zoneID) + "/records/" + strconv.FormatInt(recordID, 10)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
