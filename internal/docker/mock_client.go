package docker

import (
	"context"
	"strings"
	"sync"
)

// MockClient is a mock implementation of DockerClient for testing.
type MockClient struct {
	mu         sync.Mutex
	containers []ContainerInfo
	closed     bool

	// Configurable behaviors
	PingErr error
	ListErr error
}

// NewMockClient creates a new mock Docker client for testing.
func NewMockClient(containers ...ContainerInfo) *MockClient {
	return &MockClient{containers: containers}
}

func (m *MockClient) Ping(ctx context.Context) error {
	return m.PingErr
}

func (m *MockClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockClient) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// AddContainer adds a container to the listing.
func (m *MockClient) AddContainer(c ContainerInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.containers = append(m.containers, c)
}

func (m *MockClient) ListContainers(ctx context.Context, opts ListOptions) ([]ContainerInfo, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var result []ContainerInfo
	for _, c := range m.containers {
		if !opts.All && c.State != "running" {
			continue
		}
		if opts.Name != "" && !strings.Contains(c.Name, opts.Name) {
			continue
		}
		result = append(result, c)
	}
	sortNewestFirst(result)
	return result, nil
}

// Verify MockClient implements DockerClient at compile time
var _ DockerClient = (*MockClient)(nil)
