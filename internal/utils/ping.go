package utils

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"
)

// AuthorizerPingTimeout bounds the Authorizer reachability check
const AuthorizerPingTimeout = 1500 * time.Millisecond

// ServiceAddress resolves the host:port a service URL dials
func ServiceAddress(serviceURL string) (string, error) {
	parsedURL, err := url.Parse(serviceURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	if parsedURL.Hostname() == "" {
		return "", fmt.Errorf("invalid URL: %q has no host", serviceURL)
	}

	port := parsedURL.Port()
	if port == "" {
		port = "80"
		if parsedURL.Scheme == "https" {
			port = "443"
		}
	}

	return net.JoinHostPort(parsedURL.Hostname(), port), nil
}

// PingService checks that a TCP connection to the service URL can be opened before ctx is done
func PingService(ctx context.Context, serviceURL string) error {
	address, err := ServiceAddress(serviceURL)
	if err != nil {
		return err
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	return conn.Close()
}

// PingAuthorizer checks if the Authorizer service is reachable
func PingAuthorizer(authzURL string) error {
	ctx, cancel := context.WithTimeout(context.Background(), AuthorizerPingTimeout)
	defer cancel()
	return PingService(ctx, authzURL)
}
