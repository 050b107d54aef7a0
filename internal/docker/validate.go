package docker

import (
	"context"
	"fmt"
	"time"
)

// pingTimeout bounds the daemon check.
const pingTimeout = 5 * time.Second

// ValidationError represents a Docker validation failure
type ValidationError struct {
	Check   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Check, e.Message)
}

// CheckDaemon verifies that the daemon behind client answers a ping.
func CheckDaemon(ctx context.Context, client DockerClient) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx); err != nil {
		return &ValidationError{
			Check:   "docker_ping",
			Message: fmt.Sprintf("Docker daemon not responding: %v", err),
		}
	}
	return nil
}
