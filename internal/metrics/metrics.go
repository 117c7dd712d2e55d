package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	// Registry holds every collector exported on /metrics.
	Registry = prometheus.NewRegistry()

	commandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kasa_commands_total",
			Help: "kasa CLI invocations by first argument and outcome",
		},
		[]string{"command", "outcome"},
	)
	interactionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kasa_interactions_total",
			Help: "Button interactions by action and outcome",
		},
		[]string{"action", "outcome"},
	)
	jobRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kasa_job_runs_total",
			Help: "Scheduled job firings by job and outcome",
		},
		[]string{"job", "outcome"},
	)
)

func init() {
	Registry.MustRegister(commandsTotal, interactionsTotal, jobRunsTotal)
}

func outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}

// ObserveCommand counts one kasa invocation.
func ObserveCommand(args []string, err error) {
	cmd := "none"
	if len(args) > 0 {
		cmd = args[0]
	}
	commandsTotal.WithLabelValues(cmd, outcome(err)).Inc()
}

// ObserveInteraction counts one handled button press.
func ObserveInteraction(action string, err error) {
	interactionsTotal.WithLabelValues(action, outcome(err)).Inc()
}

// ObserveJobRun counts one scheduled job firing.
func ObserveJobRun(job string, err error) {
	jobRunsTotal.WithLabelValues(job, outcome(err)).Inc()
}
