package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Validator lifecycle metrics
	ValidatorStatus = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "solforge_validator_status",
			Help: "Controller status (1 for the active state, 0 otherwise)",
		},
		[]string{"state"},
	)

	ValidatorStarts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "solforge_validator_starts_total",
			Help: "Total number of successful validator starts",
		},
	)

	ValidatorStops = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "solforge_validator_stops_total",
			Help: "Total number of successful validator stops",
		},
	)

	ValidatorFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "solforge_validator_failures_total",
			Help: "Total number of backend-level validator failures",
		},
	)

	// Running validator metrics
	ValidatorUptime = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "solforge_validator_uptime_seconds",
			Help: "Uptime of the running validator in seconds",
		},
	)

	ValidatorMemoryMB = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "solforge_validator_memory_mb",
			Help: "Resident memory of the validator process in MiB",
		},
	)

	ValidatorCPUPercent = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "solforge_validator_cpu_percent",
			Help: "CPU utilization of the validator process",
		},
	)

	ValidatorSlots = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "solforge_validator_slots_processed",
			Help: "Slots processed by the running validator",
		},
	)

	ValidatorTransactions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "solforge_validator_transactions",
			Help: "Transactions processed by the running validator",
		},
	)

	ValidatorAccountsLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "solforge_validator_accounts_loaded",
			Help: "Preset accounts loaded at validator startup",
		},
	)

	// Environment registry metrics
	EnvironmentsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "solforge_environments_total",
			Help: "Total number of configured environments",
		},
	)
)

func init() {
	prometheus.MustRegister(ValidatorStatus)
	prometheus.MustRegister(ValidatorStarts)
	prometheus.MustRegister(ValidatorStops)
	prometheus.MustRegister(ValidatorFailures)
	prometheus.MustRegister(ValidatorUptime)
	prometheus.MustRegister(ValidatorMemoryMB)
	prometheus.MustRegister(ValidatorCPUPercent)
	prometheus.MustRegister(ValidatorSlots)
	prometheus.MustRegister(ValidatorTransactions)
	prometheus.MustRegister(ValidatorAccountsLoaded)
	prometheus.MustRegister(EnvironmentsTotal)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
