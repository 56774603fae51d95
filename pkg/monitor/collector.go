package monitor

import (
	"time"

	"github.com/solforge/solforge/pkg/controller"
	"github.com/solforge/solforge/pkg/events"
	"github.com/solforge/solforge/pkg/metrics"
	"github.com/solforge/solforge/pkg/registry"
	"github.com/solforge/solforge/pkg/types"
)

// DefaultInterval is how often the collector polls the controller
const DefaultInterval = 15 * time.Second

var allStates = []types.State{
	types.StateStopped,
	types.StateStarting,
	types.StateRunning,
	types.StateStopping,
	types.StateError,
}

// Collector periodically feeds the Prometheus gauges from the
// controller's cheap polls. The controller itself stays free of any
// monitoring loop; this is the external consumer the core contracts
// anticipate.
type Collector struct {
	controller *controller.Controller
	registry   *registry.Registry
	interval   time.Duration
	stopCh     chan struct{}
}

// NewCollector creates a collector over a controller and registry
func NewCollector(ctrl *controller.Controller, reg *registry.Registry) *Collector {
	return &Collector{
		controller: ctrl,
		registry:   reg,
		interval:   DefaultInterval,
		stopCh:     make(chan struct{}),
	}
}

// NewCollectorWithInterval creates a collector with an explicit poll
// interval (tests shrink it)
func NewCollectorWithInterval(ctrl *controller.Controller, reg *registry.Registry, interval time.Duration) *Collector {
	c := NewCollector(ctrl, reg)
	c.interval = interval
	return c
}

// WatchEvents counts lifecycle events from the broker into the
// start/stop/failure counters. Runs until the collector stops.
func (c *Collector) WatchEvents(broker *events.Broker) {
	sub := broker.Subscribe()
	go func() {
		defer broker.Unsubscribe(sub)
		for {
			select {
			case ev, ok := <-sub:
				if !ok {
					return
				}
				switch ev.Type {
				case events.EventValidatorStarted:
					metrics.ValidatorStarts.Inc()
				case events.EventValidatorStopped:
					metrics.ValidatorStops.Inc()
				case events.EventValidatorFailed:
					metrics.ValidatorFailures.Inc()
				}
			case <-c.stopCh:
				return
			}
		}
	}()
}

// Start begins collecting metrics
func (c *Collector) Start() {
	ticker := time.NewTicker(c.interval)
	go func() {
		// Collect immediately on start
		c.Collect()

		for {
			select {
			case <-ticker.C:
				c.Collect()
			case <-c.stopCh:
				ticker.Stop()
				return
			}
		}
	}()
}

// Stop stops the collector
func (c *Collector) Stop() {
	close(c.stopCh)
}

// Collect runs one collection pass
func (c *Collector) Collect() {
	status := c.controller.Status()
	for _, state := range allStates {
		v := 0.0
		if state == status.State {
			v = 1.0
		}
		metrics.ValidatorStatus.WithLabelValues(string(state)).Set(v)
	}

	if c.registry != nil {
		metrics.EnvironmentsTotal.Set(float64(c.registry.Len()))
	}

	m, err := c.controller.Metrics()
	if err != nil {
		// Not running: zero the per-run gauges
		metrics.ValidatorUptime.Set(0)
		metrics.ValidatorMemoryMB.Set(0)
		metrics.ValidatorCPUPercent.Set(0)
		metrics.ValidatorSlots.Set(0)
		metrics.ValidatorTransactions.Set(0)
		metrics.ValidatorAccountsLoaded.Set(0)
		return
	}

	metrics.ValidatorUptime.Set(float64(m.UptimeSeconds))
	metrics.ValidatorMemoryMB.Set(m.MemoryUsageMB)
	metrics.ValidatorCPUPercent.Set(m.CPUPercent)
	metrics.ValidatorSlots.Set(float64(m.SlotsProcessed))
	metrics.ValidatorTransactions.Set(float64(m.TransactionCount))
	metrics.ValidatorAccountsLoaded.Set(float64(m.AccountsLoaded))
}
