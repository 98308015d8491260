package consul

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	consul "github.com/hashicorp/consul/api"

	discovery "rocket-sim/pkg/registry"
)

// Registry defines a Consul-based service registry.
type Registry struct {
	client *consul.Client
}

var _ discovery.Registry = (*Registry)(nil)

// NewRegistry creates a new Consul-based service registry instance.
func NewRegistry(addr string) (*Registry, error) {
	config := consul.DefaultConfig()
	config.Address = addr
	client, err := consul.NewClient(config)
	if err != nil {
		return nil, err
	}
	return &Registry{client: client}, nil
}

// Register creates a service record in the registry with a TTL check that
// ReportHealthyState keeps passing.
func (r *Registry) Register(ctx context.Context, instanceID string, serviceName string, hostPort string) error {
	host, port, err := splitHostPort(hostPort)
	if err != nil {
		return err
	}
	return r.client.Agent().ServiceRegister(&consul.AgentServiceRegistration{
		Address: host,
		ID:      instanceID,
		Name:    serviceName,
		Port:    port,
		Check: &consul.AgentServiceCheck{
			CheckID:                        instanceID,
			TTL:                            "5s",
			DeregisterCriticalServiceAfter: "1m",
		},
	})
}

// Deregister removes a service record from the registry.
func (r *Registry) Deregister(ctx context.Context, instanceID string, _ string) error {
	return r.client.Agent().ServiceDeregister(instanceID)
}

// ServiceAddresses returns host:port of every healthy instance of serviceName.
func (r *Registry) ServiceAddresses(ctx context.Context, serviceName string) ([]string, error) {
	entries, _, err := r.client.Health().Service(serviceName, "", true, nil)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, discovery.ErrNotFound
	}
	var res []string
	for _, e := range entries {
		res = append(res, fmt.Sprintf("%s:%d", e.Service.Address, e.Service.Port))
	}
	return res, nil
}

// ReportHealthyState is a push mechanism for reporting healthy state to the registry.
func (r *Registry) ReportHealthyState(instanceID string, _ string) error {
	return r.client.Agent().PassTTL(instanceID, "")
}

// ServiceURL resolves serviceName to an http base URL, retrying a few times
// while the service comes up.
func (r *Registry) ServiceURL(ctx context.Context, serviceName string) (string, error) {
	for i := 0; i < 5; i++ {
		addrs, err := r.ServiceAddresses(ctx, serviceName)
		if err == nil {
			return "http://" + addrs[0], nil
		}
		if !errors.Is(err, discovery.ErrNotFound) {
			log.Printf("⚠️ Consul lookup for %s failed (%d/5): %v", serviceName, i+1, err)
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(500 * time.Millisecond):
		}
	}
	return "", fmt.Errorf("%s service not found in Consul: %w", serviceName, discovery.ErrNotFound)
}

func splitHostPort(hostPort string) (string, int, error) {
	parts := strings.Split(hostPort, ":")
	if len(parts) != 2 {
		return "", 0, errors.New("hostPort must be in a form of <host>:<port>, example: localhost:8081")
	}
	port, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, err
	}
	return parts[0], port, nil
}
