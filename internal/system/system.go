// Package system reads the proxy the host operating system is configured
// to use (configuration file, proxy environment variables and, depending on
// the platform, scutil or WinHTTP settings).
package system

import (
	"fmt"
	"net/url"

	"github.com/rapid7/go-get-proxied/proxy"

	"github.com/August26/proxystatus-go/internal/model"
	"github.com/August26/proxystatus-go/internal/parser"
)

// configuredProxy is the part of proxy.Proxy used to build a descriptor.
type configuredProxy interface {
	Protocol() string
	Host() string
	Port() uint16
	Src() string
}

// Detector looks up the system proxy for a target URL.
type Detector struct {
	lookup func(protocol, targetURL string) configuredProxy
}

// NewDetector returns a Detector backed by the OS settings. configFile is an
// optional go-get-proxied JSON configuration; "" uses the platform default.
func NewDetector(configFile string) *Detector {
	provider := proxy.NewProvider(configFile)
	return &Detector{
		lookup: func(protocol, targetURL string) configuredProxy {
			if p := provider.GetProxy(protocol, targetURL); p != nil {
				return p
			}
			return nil
		},
	}
}

// Detect returns the descriptor of the proxy the system would use to reach
// targetURL. When no proxy is configured the descriptor is direct.
func (d *Detector) Detect(targetURL string) (model.ProxyDescriptor, error) {
	u, err := url.Parse(targetURL)
	if err != nil || u.Scheme == "" {
		return model.ProxyDescriptor{}, fmt.Errorf("invalid target url %q", targetURL)
	}

	p := d.lookup(u.Scheme, targetURL)
	if p == nil {
		return model.ProxyDescriptor{Kind: model.KindDirect, Label: "system (direct)"}, nil
	}

	kind, err := parser.KindFromScheme(p.Protocol())
	if err != nil || kind == model.KindDirect {
		// proxies from environment variables are plain HTTP proxies unless
		// their URL says otherwise
		kind = model.KindHTTP
	}

	return model.ProxyDescriptor{
		Kind:  kind,
		Host:  p.Host(),
		Port:  int(p.Port()),
		Label: p.Src(),
	}, nil
}
