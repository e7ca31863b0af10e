package model

// GeoInfo describes geographical information associated with an IP.
type GeoInfo struct {
	Country string `json:"country,omitempty"`
	City    string `json:"city,omitempty"`
}

// IPResolver maps an IP address to geographical information.
type IPResolver interface {
	Lookup(ip string) (GeoInfo, error)
}
