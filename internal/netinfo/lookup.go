package netinfo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Lookup defaults.
const (
	DefaultURL     = "https://api.ipify.org?format=json"
	DefaultTimeout = 3 * time.Second
)

// Unavailable is shown when the client address cannot be determined.
const Unavailable = "获取失败"

// maxResponseBytes caps how much of the lookup response is read.
const maxResponseBytes = 4 << 10

// HTTPDoer abstracts HTTP clients used by the lookup.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Lookup resolves the public address of the machine running the quiz.
type Lookup struct {
	URL     string
	Timeout time.Duration
	Client  HTTPDoer
}

// NewLookup constructs a lookup, filling in defaults for empty settings.
func NewLookup(url string, timeout time.Duration, client HTTPDoer) Lookup {
	if strings.TrimSpace(url) == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if client == nil {
		client = http.DefaultClient
	}
	return Lookup{URL: url, Timeout: timeout, Client: client}
}

// Fetch queries the lookup service and returns the reported address.
func (l Lookup) Fetch(ctx context.Context) (string, error) {
	if ctx == nil {
		return "", errors.New("netinfo: context is nil")
	}
	if l.Client == nil {
		return "", errors.New("netinfo: client is nil")
	}
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
	if err != nil {
		return "", fmt.Errorf("netinfo: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := l.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("netinfo: request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("netinfo: unexpected status %d", resp.StatusCode)
	}
	var payload struct {
		IP string `json:"ip"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return "", fmt.Errorf("netinfo: decode response: %w", err)
	}
	addr := strings.TrimSpace(payload.IP)
	if addr == "" {
		return "", errors.New("netinfo: empty address in response")
	}
	return addr, nil
}

// ClientAddr returns the reported address, or Unavailable on any failure.
func (l Lookup) ClientAddr(ctx context.Context) string {
	addr, err := l.Fetch(ctx)
	if err != nil {
		return Unavailable
	}
	return addr
}
