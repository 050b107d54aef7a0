package docker

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
)

// shortIDLen matches the ID width of `docker ps`.
const shortIDLen = 12

// ContainerInfo holds basic info about a container
type ContainerInfo struct {
	ID      string
	Name    string
	Image   string
	State   string // "created", "running", "paused", "exited"
	Status  string // human status, e.g. "Up 2 hours"
	Created time.Time
}

// ShortID returns the abbreviated container ID.
func (c ContainerInfo) ShortID() string {
	if len(c.ID) > shortIDLen {
		return c.ID[:shortIDLen]
	}
	return c.ID
}

// ListOptions narrows a container listing.
type ListOptions struct {
	All  bool   // include stopped containers
	Name string // name substring filter, empty for all
}

// ListContainers lists containers, newest first.
func (c *Client) ListContainers(ctx context.Context, opts ListOptions) ([]ContainerInfo, error) {
	filterArgs := filters.NewArgs()
	if opts.Name != "" {
		filterArgs.Add("name", opts.Name)
	}

	containers, err := c.cli.ContainerList(ctx, container.ListOptions{
		All:     opts.All,
		Filters: filterArgs,
	})
	if err != nil {
		return nil, err
	}

	result := make([]ContainerInfo, 0, len(containers))
	for _, c := range containers {
		name := ""
		if len(c.Names) > 0 {
			name = strings.TrimPrefix(c.Names[0], "/")
		}
		result = append(result, ContainerInfo{
			ID:      c.ID,
			Name:    name,
			Image:   c.Image,
			State:   c.State,
			Status:  c.Status,
			Created: time.Unix(c.Created, 0),
		})
	}
	sortNewestFirst(result)
	return result, nil
}

func sortNewestFirst(cs []ContainerInfo) {
	sort.SliceStable(cs, func(i, j int) bool {
		return cs[i].Created.After(cs[j].Created)
	})
}
