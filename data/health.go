package data

import (
	"context"
	"time"
)

// Health checks the store and reports its status with the ping latency.
func (d *Data) Health(ctx context.Context) (map[string]any, bool) {
	start := time.Now()
	err := d.Ping(ctx)
	duration := time.Since(start)

	healthy := err == nil
	status := "healthy"
	if !healthy {
		status = "unavailable"
	}

	return map[string]any{
		"status":    status,
		"timestamp": time.Now(),
		"services": map[string]any{
			"datastore": map[string]any{
				"driver":      d.driver,
				"healthy":     healthy,
				"response_ms": duration.Milliseconds(),
				"error":       getErrorString(err),
			},
		},
	}, healthy
}

func getErrorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
