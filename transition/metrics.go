package transition

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric definitions with appropriate labels.
var (
	// requestsTotal tracks visibility requests by element and direction (enter/exit).
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transition_requests_total",
		Help: "Total number of visibility requests by element and direction",
	}, []string{"element", "direction"})

	// commitsTotal tracks timer commits by element and settled status.
	commitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transition_commits_total",
		Help: "Total number of transitions committed to a settled status by element and status",
	}, []string{"element", "status"})

	// supersededTotal tracks pending commits cancelled by a newer request.
	supersededTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transition_superseded_total",
		Help: "Total number of pending transitions superseded by a newer request by element and direction",
	}, []string{"element", "direction"})

	// commitDelay tracks the time between arming a commit and it landing.
	commitDelay = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "transition_commit_delay_seconds",
		Help:    "Delay between a visibility request and its commit by element and direction",
		Buckets: []float64{0, 0.05, 0.1, 0.2, 0.3, 0.5, 1, 2, 5},
	}, []string{"element", "direction"})

	// activeControllers tracks controllers that have not been closed.
	activeControllers = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "transition_controllers_active",
		Help: "Number of live transition controllers by element",
	}, []string{"element"})
)

func sanitizeElement(name string) string {
	if name == "" {
		return "unnamed"
	}

	return name
}
