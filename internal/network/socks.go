// Package network holds proxy dialers shared by the network senders.
package network

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"golang.org/x/net/proxy"
)

// DialContextFunc matches the Dialer hook of go-redis and net/http.
type DialContextFunc func(ctx context.Context, network, addr string) (net.Conn, error)

func proxyAddr(host string, port int) (string, error) {
	if port <= 0 || port > 65535 {
		return "", fmt.Errorf("invalid SOCKS5 port %d", port)
	}
	return net.JoinHostPort(host, strconv.Itoa(port)), nil
}

// NewSOCKS5Dialer creates a SOCKS5 proxy dialer.
func NewSOCKS5Dialer(host string, port int) (proxy.Dialer, error) {
	addr, err := proxyAddr(host, port)
	if err != nil {
		return nil, err
	}
	dialer, err := proxy.SOCKS5("tcp", addr, nil, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("failed to create SOCKS5 dialer for %s: %w", addr, err)
	}
	return dialer, nil
}

// ContextDialer returns a context-aware dial function through the SOCKS5
// proxy, or nil when host is empty.
func ContextDialer(host string, port int) (DialContextFunc, error) {
	if host == "" {
		return nil, nil
	}
	dialer, err := NewSOCKS5Dialer(host, port)
	if err != nil {
		return nil, err
	}
	if cd, ok := dialer.(proxy.ContextDialer); ok {
		return cd.DialContext, nil
	}
	return func(_ context.Context, network, addr string) (net.Conn, error) {
		return dialer.Dial(network, addr)
	}, nil
}
