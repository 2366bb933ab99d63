package bunnyapi

// Zone is a DNS zone as returned by GET /dnszone/{id} and POST /dnszone.
type Zone struct {
	ID                       int64    `json:"Id"`
	Domain                   string   `json:"Domain"`
	Records                  []Record `json:"Records"`
	Nameserver1              string   `json:"Nameserver1,omitempty"`
	Nameserver2              string   `json:"Nameserver2,omitempty"`
	SoaEmail                 string   `json:"SoaEmail,omitempty"`
	CustomNameserversEnabled bool     `json:"CustomNameserversEnabled,omitempty"`
	DateCreated              string   `json:"DateCreated,omitempty"`
	DateModified             string   `json:"DateModified,omitempty"`
}

// Record is a resource record inside a Zone. Type holds Bunny's numeric
// type ID; see RecordTypeName.
type Record struct {
	ID       int64  `json:"Id"`
	Type     int    `json:"Type"`
	Name     string `json:"Name"`
	Value    string `json:"Value"`
	TTL      int    `json:"Ttl"`
	Priority int    `json:"Priority,omitempty"`
	Weight   int    `json:"Weight,omitempty"`
	Port     int    `json:"Port,omitempty"`
	Flags    int    `json:"Flags,omitempty"`
	Tag      string `json:"Tag,omitempty"`
	Disabled bool   `json:"Disabled,omitempty"`
	Comment  string `json:"Comment,omitempty"`
}

// TypeName returns the symbolic type of r, or "" for proprietary types.
func (r Record) TypeName() string {
	name, _ := RecordTypeName(r.Type)
	return name
}

// zonePage is one page of GET /dnszone.
type zonePage struct {
	Items []struct {
		ID     int64  `json:"Id"`
		Domain string `json:"Domain"`
	} `json:"Items"`
	CurrentPage  int  `json:"CurrentPage"`
	TotalItems   int  `json:"TotalItems"`
	HasMoreItems bool `json:"HasMoreItems"`
}
