package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alextes/calabi/component"
	"github.com/alextes/calabi/observability"
)

// HealthChecker returns health status for registered components.
type HealthChecker func(ctx context.Context) []component.Health

// healthResponse is the /health body.
type healthResponse struct {
	*observability.ServiceHealth
	Timestamp string `json:"timestamp"`
}

// Health returns a handler that reports service health including component
// statuses. An unhealthy component answers 503.
func Health(serviceName, serviceVersion string, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := observability.NewServiceHealth(serviceName, serviceVersion)
		if checker != nil {
			for _, ch := range checker(c.Request.Context()) {
				health.AddComponent(ch)
			}
		}

		httpStatus := http.StatusOK
		if health.Status == component.StatusUnhealthy {
			httpStatus = http.StatusServiceUnavailable
		}

		c.JSON(httpStatus, healthResponse{
			ServiceHealth: health,
			Timestamp:     time.Now().UTC().Format(time.RFC3339),
		})
	}
}
