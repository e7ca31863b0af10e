// Package probe implements the two reachability tests run against a
// configured proxy: a TCP handshake with the proxy host and a real HTTP fetch
// through the proxy. Both fail closed; every error, including a timeout,
// is reported as false.
package probe

import (
	"context"
	"net"
	"time"

	"github.com/August26/proxystatus-go/internal/model"
)

const (
	DefaultHostTimeout  = 5 * time.Second
	DefaultReferenceURL = "http://www.google.com/"
)

// Transport opens raw connections. *net.Dialer satisfies it.
type Transport interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Prober runs reachability tests against a proxy. Both tests return false
// without touching the network for a disabled descriptor, a descriptor
// without a host, or a non-positive timeout.
type Prober interface {
	// HostReachable reports whether the proxy host accepts a connection.
	HostReachable(ctx context.Context, d model.ProxyDescriptor, timeout time.Duration) bool
	// ContentReachable reports whether a reference resource can be fetched
	// through the proxy within timeout.
	ContentReachable(ctx context.Context, d model.ProxyDescriptor, timeout time.Duration) bool
}

// NetProber is the Prober backed by real network I/O.
type NetProber struct {
	transport    Transport
	referenceURL string
}

// NewNetProber returns a NetProber dialing through t. A nil t means a plain
// net.Dialer; an empty referenceURL means DefaultReferenceURL.
func NewNetProber(t Transport, referenceURL string) *NetProber {
	if t == nil {
		t = &net.Dialer{}
	}
	if referenceURL == "" {
		referenceURL = DefaultReferenceURL
	}
	return &NetProber{transport: t, referenceURL: referenceURL}
}

// ReferenceURL is the resource ContentReachable fetches.
func (p *NetProber) ReferenceURL() string { return p.referenceURL }

// probeable reports whether d names a proxy that can be tested at all.
// An empty host would make the dialer target the local machine.
func probeable(d model.ProxyDescriptor, timeout time.Duration) bool {
	return d.Enabled() && d.Host != "" && timeout > 0
}

var _ Prober = (*NetProber)(nil)
