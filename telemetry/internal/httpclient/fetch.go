package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// Status mirrors the simulator's /status response.
type Status struct {
	Time  float64 `json:"time"`
	Count int     `json:"count"`
}

type resolver interface {
	ServiceURL(ctx context.Context, serviceName string) (string, error)
}

// SimulatorClient reads the simulator's HTTP API. The base URL is resolved
// once and reused.
type SimulatorClient struct {
	resolver resolver
	client   *http.Client

	once    sync.Once
	baseURL string
	err     error
}

func NewSimulatorClient(r resolver) *SimulatorClient {
	return &SimulatorClient{resolver: r, client: http.DefaultClient}
}

func (c *SimulatorClient) getSimulatorBaseURL(ctx context.Context) (string, error) {
	c.once.Do(func() {
		c.baseURL, c.err = c.resolver.ServiceURL(ctx, "simulator")
	})
	return c.baseURL, c.err
}

func (c *SimulatorClient) fetchJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *SimulatorClient) FetchStatus(ctx context.Context) (Status, error) {
	baseURL, err := c.getSimulatorBaseURL(ctx)
	if err != nil {
		return Status{}, fmt.Errorf("discover simulator service: %w", err)
	}

	var st Status
	if err := c.fetchJSON(ctx, baseURL+"/status", &st); err != nil {
		return Status{}, err
	}
	return st, nil
}
