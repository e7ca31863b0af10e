package probe

import (
	"context"
	"time"

	"github.com/August26/proxystatus-go/internal/model"
)

// HostReachable opens a TCP connection to the proxy itself and closes it as
// soon as the handshake completes. Nothing is written or read.
func (p *NetProber) HostReachable(ctx context.Context, d model.ProxyDescriptor, timeout time.Duration) bool {
	if !probeable(d, timeout) {
		return false
	}

	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, err := p.transport.DialContext(dialCtx, "tcp", d.Address())
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
