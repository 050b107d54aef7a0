package source

import (
	"context"
	"fmt"

	"github.com/STRML/tscroll/internal/docker"
	"github.com/dustin/go-humanize"
)

var dockerColumns = []string{"CONTAINER ID", "NAME", "IMAGE", "STATE", "STATUS", "CREATED"}

// Docker lists containers once at open; it pages locally.
type Docker struct {
	*Memory
	client docker.DockerClient
}

// OpenDocker connects to the daemon from the environment and lists
// containers, including stopped ones when all is set.
func OpenDocker(ctx context.Context, all bool) (*Docker, error) {
	client, err := docker.NewClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}
	d, err := NewDocker(ctx, client, all)
	if err != nil {
		client.Close()
		return nil, err
	}
	return d, nil
}

// NewDocker lists containers through client. The source owns client.
func NewDocker(ctx context.Context, client docker.DockerClient, all bool) (*Docker, error) {
	if err := docker.CheckDaemon(ctx, client); err != nil {
		return nil, err
	}
	containers, err := client.ListContainers(ctx, docker.ListOptions{All: all})
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	rows := make([][]string, 0, len(containers))
	for _, c := range containers {
		rows = append(rows, []string{
			c.ShortID(),
			c.Name,
			c.Image,
			c.State,
			c.Status,
			humanize.Time(c.Created),
		})
	}
	name := "docker"
	if all {
		name = "docker:all"
	}
	return &Docker{Memory: NewMemory(name, dockerColumns, rows), client: client}, nil
}

func (d *Docker) Close() error {
	return d.client.Close()
}
