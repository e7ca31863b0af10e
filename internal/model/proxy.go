package model

import (
	"fmt"
	"net"
	"net/netip"
	"strconv"
)

// ConnectionKind is the type of connection a proxy setting describes.
type ConnectionKind string

const (
	KindDirect ConnectionKind = "direct" // no proxy configured
	KindHTTP   ConnectionKind = "http"
	KindSOCKS  ConnectionKind = "socks"
)

// ProxyDescriptor is a configured proxy as reported by the OS network layer
// (or loaded from an input file). It is a value type; use WithIP to derive a
// copy carrying the resolved address.
type ProxyDescriptor struct {
	Kind  ConnectionKind `json:"kind"`
	Host  string         `json:"host"` // IP literal or hostname
	Port  int            `json:"port"`
	Label string         `json:"label,omitempty"`
	IP    string         `json:"ip,omitempty"` // resolved address, if known
}

// Enabled reports whether the descriptor points at an actual proxy.
// An empty kind is treated as direct.
func (d ProxyDescriptor) Enabled() bool {
	return d.Kind != "" && d.Kind != KindDirect
}

func (d ProxyDescriptor) ConnectionType() ConnectionKind {
	if d.Kind == "" {
		return KindDirect
	}
	return d.Kind
}

func (d ProxyDescriptor) HostName() string { return d.Host }

func (d ProxyDescriptor) ProxyPort() int { return d.Port }

// IPHost returns the resolved IP of the proxy host. When no resolution has
// been recorded, an IP-literal host is returned as is; otherwise "".
func (d ProxyDescriptor) IPHost() string {
	if d.IP != "" {
		return d.IP
	}
	if addr, err := netip.ParseAddr(d.Host); err == nil {
		return addr.String()
	}
	return ""
}

// Address is the dialable host:port of the proxy.
func (d ProxyDescriptor) Address() string {
	return net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
}

// ShortString is a short human-readable label for the proxy.
func (d ProxyDescriptor) ShortString() string {
	if d.Label != "" {
		return d.Label
	}
	return fmt.Sprintf("%s:%d", d.Host, d.Port)
}

func (d ProxyDescriptor) ShortIPString() string {
	return fmt.Sprintf("%s:%d", d.IPHost(), d.Port)
}

// WithIP returns a copy of d with the resolved address set.
func (d ProxyDescriptor) WithIP(ip string) ProxyDescriptor {
	d.IP = ip
	return d
}
