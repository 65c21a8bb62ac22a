package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

type healthCheck struct {
	name string
	ping func(ctx context.Context) error
}

type healthResult struct {
	name string
	err  error
}

// HealthChecker pings the stores the app depends on
type HealthChecker struct {
	checks []healthCheck
}

func NewHealthChecker(infra Infrastructure) *HealthChecker {
	return &HealthChecker{checks: []healthCheck{
		{name: "postgres", ping: infra.Postgres().Ping},
		{name: "redis", ping: infra.Redis().Ping},
	}}
}

// run pings every dependency concurrently and reports each by name
func (h *HealthChecker) run(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	results := make(chan healthResult, len(h.checks))
	for _, check := range h.checks {
		go func() {
			results <- healthResult{name: check.name, err: check.ping(ctx)}
		}()
	}

	report := make(map[string]string, len(h.checks))
	healthy := true
	for range h.checks {
		r := <-results
		if r.err != nil {
			healthy = false
			report[r.name] = r.err.Error()
			continue
		}
		report[r.name] = "pass"
	}

	return report, healthy
}

func (h *HealthChecker) Handler(c *gin.Context) {
	report, healthy := h.run(c.Request.Context())

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "fail",
			"checks": report,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "pass",
		"checks": report,
	})
}
