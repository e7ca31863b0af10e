package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/proxy"

	"github.com/August26/proxystatus-go/internal/model"
)

// ContentReachable fetches the reference URL through the proxy. Any HTTP
// response counts as success; the status code is not inspected.
func (p *NetProber) ContentReachable(ctx context.Context, d model.ProxyDescriptor, timeout time.Duration) bool {
	if !probeable(d, timeout) {
		return false
	}

	client, err := p.clientFor(d, timeout)
	if err != nil {
		return false
	}
	defer client.CloseIdleConnections()

	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, p.referenceURL, nil)
	if err != nil {
		return false
	}

	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
	return true
}

func (p *NetProber) clientFor(d model.ProxyDescriptor, timeout time.Duration) (*http.Client, error) {
	var transport *http.Transport
	switch d.Kind {
	case model.KindHTTP:
		transport = p.httpProxyTransport(d)
	case model.KindSOCKS:
		t, err := p.socksTransport(d)
		if err != nil {
			return nil, err
		}
		transport = t
	default:
		return nil, fmt.Errorf("unsupported proxy kind %q", d.Kind)
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
		// the first response is all we need
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}, nil
}

// httpProxyTransport tunnels requests through an HTTP proxy.
func (p *NetProber) httpProxyTransport(d model.ProxyDescriptor) *http.Transport {
	u := &url.URL{Scheme: "http", Host: d.Address()}
	return &http.Transport{
		Proxy:             http.ProxyURL(u),
		DialContext:       p.transport.DialContext,
		DisableKeepAlives: true,
	}
}

// socksTransport establishes remote TCP connections through a SOCKS5 proxy.
func (p *NetProber) socksTransport(d model.ProxyDescriptor) (*http.Transport, error) {
	dialer, err := proxy.SOCKS5("tcp", d.Address(), nil, forwardDialer{p.transport})
	if err != nil {
		return nil, err
	}
	cd, ok := dialer.(proxy.ContextDialer)
	if !ok {
		return nil, errors.New("socks5 dialer does not implement DialContext")
	}
	return &http.Transport{
		DialContext:       cd.DialContext,
		DisableKeepAlives: true,
	}, nil
}

// forwardDialer lets a Transport serve as the upstream dialer of the SOCKS5
// client, which expects both Dial and DialContext.
type forwardDialer struct {
	t Transport
}

func (f forwardDialer) Dial(network, address string) (net.Conn, error) {
	return f.t.DialContext(context.Background(), network, address)
}

func (f forwardDialer) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	return f.t.DialContext(ctx, network, address)
}
