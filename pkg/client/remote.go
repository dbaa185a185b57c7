package client

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/grovetools/navshell/config"
	"github.com/grovetools/navshell/errors"
	"github.com/grovetools/navshell/internal/store"
	"github.com/grovetools/navshell/routes"
)

// socketBaseURL is the dummy host used for Unix socket requests.
const socketBaseURL = "http://unix"

// RemoteClient implements Client over the server's HTTP API.
type RemoteClient struct {
	httpClient *http.Client
	baseURL    string
	dial       func(ctx context.Context, network, addr string) (net.Conn, error)
}

// NewRemoteClient creates a client for the server described by cfg. A socket
// path takes precedence over the TCP address.
func NewRemoteClient(cfg config.ServerConfig) *RemoteClient {
	c := &RemoteClient{}
	var d net.Dialer
	if cfg.Socket != "" {
		socket := cfg.Socket
		c.baseURL = socketBaseURL
		c.dial = func(ctx context.Context, _, _ string) (net.Conn, error) {
			return d.DialContext(ctx, "unix", socket)
		}
	} else {
		c.baseURL = "http://" + cfg.Addr
		c.dial = d.DialContext
	}

	c.httpClient = &http.Client{
		Transport: &http.Transport{
			DialContext:     c.dial,
			MaxIdleConns:    10,
			IdleConnTimeout: 90 * time.Second,
		},
		Timeout: 10 * time.Second,
	}
	return c
}

// Routes returns the server's route table.
func (c *RemoteClient) Routes(ctx context.Context) ([]routes.Route, error) {
	var out []routes.Route
	err := c.getJSON(ctx, "/api/routes", &out)
	return out, err
}

// Resolve asks the server which page path maps to.
func (c *RemoteClient) Resolve(ctx context.Context, path string) (Resolution, error) {
	var out Resolution
	err := c.getJSON(ctx, "/api/resolve?path="+url.QueryEscape(path), &out)
	return out, err
}

// Stats returns the server's navigation statistics.
func (c *RemoteClient) Stats(ctx context.Context) (store.Stats, error) {
	var out store.Stats
	err := c.getJSON(ctx, "/api/stats", &out)
	return out, err
}

// Events returns the server's recent events.
func (c *RemoteClient) Events(ctx context.Context, limit int) ([]store.Event, error) {
	var out []store.Event
	err := c.getJSON(ctx, "/api/events?limit="+strconv.Itoa(limit), &out)
	return out, err
}

func (c *RemoteClient) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDaemonNotRunning, "failed to reach navshell server")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var se errors.ShellError
		if json.NewDecoder(resp.Body).Decode(&se) == nil && se.Code != "" {
			return &se
		}
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

// IsRunning returns true if the server answers its health check.
func (c *RemoteClient) IsRunning() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Stream subscribes to store updates via Server-Sent Events.
func (c *RemoteClient) Stream(ctx context.Context) (<-chan store.Update, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/stream", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create stream request: %w", err)
	}

	// Separate transport with no timeout for streaming
	streamTransport := &http.Transport{DialContext: c.dial}
	streamClient := &http.Client{Transport: streamTransport}

	resp, err := streamClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDaemonNotRunning, "failed to connect to stream")
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("stream returned status %d", resp.StatusCode)
	}

	ch := make(chan store.Update, 10)
	go func() {
		defer resp.Body.Close()
		defer close(ch)
		defer streamTransport.CloseIdleConnections()

		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			line := scanner.Text()
			if !strings.HasPrefix(line, "data: ") {
				continue
			}
			var update store.Update
			if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &update); err != nil {
				continue
			}
			select {
			case ch <- update:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}

// Close cleans up any resources used by the client.
func (c *RemoteClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

var _ Client = (*RemoteClient)(nil)
