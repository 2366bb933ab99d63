package dns

import (
	"strings"
)

// ZoneFor finds the zone a hostname belongs to by walking up its labels,
// so the most specific zone wins. It returns the zone and the record name
// relative to it ("" for the zone apex).
// e.g. ("app.example.com", [example.com]) → ("example.com", "app")
// e.g. ("a.b.example.com", [example.com b.example.com]) → ("b.example.com", "a")
func ZoneFor(fqdn string, zones []string) (zone, name string, ok bool) {
	fqdn = strings.ToLower(strings.TrimSuffix(fqdn, "."))
	known := make(map[string]string, len(zones))
	for _, z := range zones {
		known[strings.ToLower(strings.TrimSuffix(z, "."))] = z
	}

	for h := fqdn; h != ""; {
		if z, found := known[h]; found {
			name = strings.TrimSuffix(strings.TrimSuffix(fqdn, h), ".")
			return z, name, true
		}
		idx := strings.Index(h, ".")
		if idx < 0 {
			break
		}
		h = h[idx+1:]
	}
	return "", "", false
}
