package model

import "time"

type Config struct {
	DefaultKind      ConnectionKind // kind for bare host:port entries
	ContentTimeoutMs int            // budget for the content probe
	HostTimeoutMs    int            // budget for the host probe
	InputFile        string
	OutputFile       string
	OutputFormat     string // json or csv
	ReferenceURL     string // resource fetched through the proxy
	GeoIPPath        string
	Concurrency      int
	Verbose          bool
	Retries          int  // evaluations per proxy while the verdict is a failure
	ResolveHosts     bool // resolve hostnames to record the proxy IP
	Resolver         IPResolver
}

func (c Config) ContentTimeout() time.Duration {
	return time.Duration(c.ContentTimeoutMs) * time.Millisecond
}

func (c Config) HostTimeout() time.Duration {
	return time.Duration(c.HostTimeoutMs) * time.Millisecond
}
