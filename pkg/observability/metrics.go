package observability

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/BilawalArif/redfin-clone"

// PrometheusHandler returns a Gin handler for Prometheus metrics
func PrometheusHandler(handler http.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if handler != nil {
			handler.ServeHTTP(c.Writer, c.Request)
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "metrics handler not initialized",
			})
		}
	}
}

// Metrics holds the domain counters. A nil *Metrics records nothing,
// which keeps services usable in tests without a meter provider.
type Metrics struct {
	logins           metric.Int64Counter
	signups          metric.Int64Counter
	votes            metric.Int64Counter
	commentMutations metric.Int64Counter
}

// NewMetrics registers the domain counters on the given provider
func NewMetrics(provider metric.MeterProvider) (*Metrics, error) {
	meter := provider.Meter(meterName)

	logins, err := meter.Int64Counter("auth_logins_total",
		metric.WithDescription("Login attempts by result"))
	if err != nil {
		return nil, fmt.Errorf("failed to create logins counter: %w", err)
	}

	signups, err := meter.Int64Counter("auth_signups_total",
		metric.WithDescription("Successful signups"))
	if err != nil {
		return nil, fmt.Errorf("failed to create signups counter: %w", err)
	}

	votes, err := meter.Int64Counter("property_votes_total",
		metric.WithDescription("Property votes by direction"))
	if err != nil {
		return nil, fmt.Errorf("failed to create votes counter: %w", err)
	}

	commentMutations, err := meter.Int64Counter("property_comment_mutations_total",
		metric.WithDescription("Comment add/edit/delete operations"))
	if err != nil {
		return nil, fmt.Errorf("failed to create comment counter: %w", err)
	}

	return &Metrics{
		logins:           logins,
		signups:          signups,
		votes:            votes,
		commentMutations: commentMutations,
	}, nil
}

// RecordLogin counts a login attempt
func (m *Metrics) RecordLogin(ctx context.Context, success bool) {
	if m == nil {
		return
	}
	result := "failure"
	if success {
		result = "success"
	}
	m.logins.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

// RecordSignup counts a created account
func (m *Metrics) RecordSignup(ctx context.Context) {
	if m == nil {
		return
	}
	m.signups.Add(ctx, 1)
}

// RecordVote counts an up or down vote
func (m *Metrics) RecordVote(ctx context.Context, direction string) {
	if m == nil {
		return
	}
	m.votes.Add(ctx, 1, metric.WithAttributes(attribute.String("direction", direction)))
}

// RecordCommentMutation counts a comment add, edit or delete
func (m *Metrics) RecordCommentMutation(ctx context.Context, op string) {
	if m == nil {
		return
	}
	m.commentMutations.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
}
