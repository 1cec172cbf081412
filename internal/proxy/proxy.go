// Package proxy provides a forward HTTP proxy that enforces
// robots-exclusion policy on outbound crawler traffic.
package proxy

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/google/martian/v3"

	"github.com/crawlward/crawlward/internal/gate"
)

// Proxy is a forward proxy that refuses robots-disallowed requests.
// Point a crawler's HTTP_PROXY at it to get enforcement without
// touching the crawler itself.
type Proxy struct {
	gate     *gate.Gate
	listener net.Listener
	proxy    *martian.Proxy
	logger   *slog.Logger
}

// New creates a Proxy listening on addr.
func New(g *gate.Gate, addr string, logger *slog.Logger) (*Proxy, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen: %w", err)
	}

	return &Proxy{
		gate:     g,
		listener: listener,
		proxy:    martian.NewProxy(),
		logger:   logger,
	}, nil
}

// Addr returns the proxy's listening address.
func (p *Proxy) Addr() string {
	return p.listener.Addr().String()
}

// Start starts the proxy server. Blocks until context is cancelled.
func (p *Proxy) Start(ctx context.Context) error {
	p.proxy.SetRequestModifier(p)

	// Handle shutdown
	go func() {
		<-ctx.Done()
		p.listener.Close()
	}()

	p.logger.Info("proxy started", "addr", p.Addr())
	return p.proxy.Serve(p.listener)
}

// ModifyRequest implements martian.RequestModifier. Returning an error
// makes martian answer the client with a failure instead of forwarding
// the request upstream.
func (p *Proxy) ModifyRequest(req *http.Request) error {
	if req.Method == http.MethodConnect {
		// CONNECT tunnels carry no path to match against; robots
		// checking happens on the plain requests inside, or not at all
		// for opaque TLS.
		return nil
	}

	d := p.gate.Check(req.Context(), req.URL.String())
	if !d.Allowed {
		p.logger.Warn("blocked", "url", req.URL.String(), "reason", d.Reason)
		return fmt.Errorf("blocked by robots policy: %s", d.Reason)
	}

	p.logger.Debug("allowed", "url", req.URL.String(), "reason", d.Reason)
	return nil
}

// Close shuts down the proxy.
func (p *Proxy) Close() error {
	return p.listener.Close()
}
