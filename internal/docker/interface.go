package docker

import "context"

// DockerClient defines the Docker operations the viewer needs.
// This allows for easy mocking in tests.
type DockerClient interface {
	// Client lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Container listing
	ListContainers(ctx context.Context, opts ListOptions) ([]ContainerInfo, error)
}

// Verify Client implements DockerClient at compile time
var _ DockerClient = (*Client)(nil)
