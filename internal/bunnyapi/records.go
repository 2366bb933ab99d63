package bunnyapi

import "sort"

// recordTypes maps standard record types to Bunny's numeric type IDs.
// 5 (RDR), 6 (Flatten), 7 (PZ) and 11 (SCR) are proprietary Bunny types and
// are not supported.
var recordTypes = map[string]int{
	"A":     0,
	"AAAA":  1,
	"CNAME": 2, // flattened automatically at the zone apex
	"TXT":   3,
	"MX":    4,
	"SRV":   8,
	"CAA":   9,
	"PTR":   10,
	"NS":    12,
}

// RecordTypeCode returns Bunny's numeric ID for a record type. Note that
// the ID for "A" is 0; use ok, not the code, to test for support.
func RecordTypeCode(name string) (code int, ok bool) {
	code, ok = recordTypes[name]
	return code, ok
}

// RecordTypeName is the inverse of RecordTypeCode.
func RecordTypeName(code int) (string, bool) {
	for name, c := range recordTypes {
		if c == code {
			return name, true
		}
	}
	return "", false
}

// RecordTypes returns the supported record types sorted by code.
func RecordTypes() []string {
	names := make([]string, 0, len(recordTypes))
	for name := range recordTypes {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return recordTypes[names[i]] < recordTypes[names[j]]
	})
	return names
}

// RecordPayload is the caller-facing body of a record create or update.
// Nil fields are left out of the request.
type RecordPayload struct {
	Type     *string
	Name     *string
	Value    *string
	TTL      *int
	Priority *int
	Weight   *int
	Port     *int
	Flags    *int
	Tag      *string
	Disabled *bool
	Comment  *string
}

// recordBody is the wire form of RecordPayload. Type is a pointer so the
// code 0 of "A" records is always serialized.
type recordBody struct {
	Type     *int    `json:"Type,omitempty"`
	Name     *string `json:"Name,omitempty"`
	Value    *string `json:"Value,omitempty"`
	TTL      *int    `json:"Ttl,omitempty"`
	Priority *int    `json:"Priority,omitempty"`
	Weight   *int    `json:"Weight,omitempty"`
	Port     *int    `json:"Port,omitempty"`
	Flags    *int    `json:"Flags,omitempty"`
	Tag      *string `json:"Tag,omitempty"`
	Disabled *bool   `json:"Disabled,omitempty"`
	Comment  *string `json:"Comment,omitempty"`
}

func (p RecordPayload) body() recordBody {
	return recordBody{
		Name:     p.Name,
		Value:    p.Value,
		TTL:      p.TTL,
		Priority: p.Priority,
		Weight:   p.Weight,
		Port:     p.Port,
		Flags:    p.Flags,
		Tag:      p.Tag,
		Disabled: p.Disabled,
		Comment:  p.Comment,
	}
}

// createBody checks that the payload carries a supported type and swaps
// it for its numeric code.
func (p RecordPayload) createBody() (recordBody, error) {
	if p.Type == nil || *p.Type == "" {
		return recordBody{}, invalidRecord("no resource record type specified")
	}
	code, ok := RecordTypeCode(*p.Type)
	if !ok {
		return recordBody{}, invalidRecord("unsupported resource record type: %s", *p.Type)
	}
	b := p.body()
	b.Type = &code
	return b, nil
}

// updateBody rejects Name and Type: Bunny does not allow changing either
// once a record exists.
func (p RecordPayload) updateBody() (recordBody, error) {
	if p.Name != nil {
		return recordBody{}, invalidRecord("existing record name can't be updated")
	}
	if p.Type != nil {
		return recordBody{}, invalidRecord("existing record type can't be updated")
	}
	return p.body(), nil
}

// Ptr returns a pointer to v, for filling RecordPayload literals.
func Ptr[T any](v T) *T { return &v }
