package bunnyapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	logrtesting "github.com/go-logr/logr/testing"
)

const testAPIKey = "test-key"

// fakeBunny is a minimal in-memory Bunny DNS API.
type fakeBunny struct {
	mu       sync.Mutex
	zones    []*Zone
	pageSize int
	nextID   int64
	calls    []string // "METHOD /path" in order
	bodies   []map[string]any
	headers  http.Header
	// failStatus, when set, is returned for every request.
	failStatus int
}

func newFakeBunny(domains ...string) *fakeBunny {
	f := &fakeBunny{pageSize: 2, nextID: 100}
	for i, d := range domains {
		f.zones = append(f.zones, &Zone{ID: int64(i + 1), Domain: d})
	}
	return f
}

func (f *fakeBunny) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, r.Method+" "+r.URL.Path)
	f.headers = r.Header.Clone()

	if r.Header.Get("AccessKey") != testAPIKey {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if f.failStatus != 0 {
		http.Error(w, `{"Message":"forced failure"}`, f.failStatus)
		return
	}

	var body map[string]any
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.bodies = append(f.bodies, body)
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case len(parts) == 1 && parts[0] == "dnszone" && r.Method == http.MethodGet:
		f.handleList(w, r)
	case len(parts) == 1 && parts[0] == "dnszone" && r.Method == http.MethodPost:
		f.nextID++
		z := &Zone{ID: f.nextID, Domain: body["Domain"].(string)}
		f.zones = append(f.zones, z)
		writeJSON(w, z)
	case len(parts) == 2 && r.Method == http.MethodGet:
		z := f.zone(parts[1])
		if z == nil {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, z)
	case len(parts) == 3 && parts[2] == "records" && r.Method == http.MethodPut:
		z := f.zone(parts[1])
		if z == nil {
			http.NotFound(w, r)
			return
		}
		f.nextID++
		rec := Record{ID: f.nextID, Type: int(body["Type"].(float64))}
		if v, ok := body["Name"].(string); ok {
			rec.Name = v
		}
		if v, ok := body["Value"].(string); ok {
			rec.Value = v
		}
		z.Records = append(z.Records, rec)
		writeJSON(w, rec)
	case len(parts) == 4 && (r.Method == http.MethodPost || r.Method == http.MethodDelete):
		z := f.zone(parts[1])
		if z == nil {
			http.NotFound(w, r)
			return
		}
		rid, _ := strconv.ParseInt(parts[3], 10, 64)
		for i, rec := range z.Records {
			if rec.ID != rid {
				continue
			}
			if r.Method == http.MethodDelete {
				z.Records = append(z.Records[:i], z.Records[i+1:]...)
			} else if v, ok := body["Value"].(string); ok {
				z.Records[i].Value = v
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}
		http.NotFound(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeBunny) handleList(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		http.Error(w, "bad page", http.StatusBadRequest)
		return
	}
	start := (page - 1) * f.pageSize
	end := start + f.pageSize
	if start > len(f.zones) {
		start = len(f.zones)
	}
	if end > len(f.zones) {
		end = len(f.zones)
	}

	items := make([]map[string]any, 0, end-start)
	for _, z := range f.zones[start:end] {
		items = append(items, map[string]any{"Id": z.ID, "Domain": z.Domain})
	}
	writeJSON(w, map[string]any{
		"Items":        items,
		"CurrentPage":  page,
		"TotalItems":   len(f.zones),
		"HasMoreItems": end < len(f.zones),
	})
}

func (f *fakeBunny) zone(id string) *Zone {
	for _, z := range f.zones {
		if strconv.FormatInt(z.ID, 10) == id {
			return z
		}
	}
	return nil
}

// count returns how many calls matched "METHOD /path".
func (f *fakeBunny) count(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeBunny) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeBunny) lastBody() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.bodies) == 0 {
		return nil
	}
	return f.bodies[len(f.bodies)-1]
}

func (f *fakeBunny) setFailStatus(code int) {
	f.mu.Lock()
	f.failStatus = code
	f.mu.Unlock()
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, fake *fakeBunny) *Client {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	c, err := New(testAPIKey,
		WithBaseURL(srv.URL),
		WithHTTPClient(srv.Client()),
		WithLogger(logrtesting.NewTestLogger(t)),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}
