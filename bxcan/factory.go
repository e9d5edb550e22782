package bxcan

import (
	"sync"

	"omibyte.io/canbus/kernel"
	"omibyte.io/canbus/logging"
	"omibyte.io/canbus/metrics"
	"omibyte.io/canbus/regio"
)

// numControllers is the number of CAN controller instances this peripheral
// revision exposes. Only controller number 1 is legal, mirroring the
// distilled specification's single-instance contract; the table is sized
// for one slot so a future revision with more instances only needs to grow
// this constant.
const numControllers = 1

// factory serializes Controller construction and tracks which controller
// numbers currently have a live instance, the same role package-level
// instance tables play for peripheral singletons elsewhere in this tree.
type factory struct {
	mu    sync.Mutex
	alive [numControllers]bool
}

var theFactory factory

// CreateOptions bundles the capabilities and optional extension points
// Create needs beyond Config. RegisterFile, Platform and Services are
// required; Metrics and OnStatusChange are optional.
type CreateOptions struct {
	RegisterFile   regio.RegisterFile
	Platform       ClockGPIO
	Services       kernel.Services
	Metrics        metrics.Recorder
	OnStatusChange func(StatusSnapshot)
}

// Create brings up one CAN controller instance. It enforces that only one
// live Controller exists per controller number at a time: a second Create
// for the same number fails with ErrControllerInUse until the first
// Controller's Close runs.
func Create(config Config, opts CreateOptions) (*Controller, error) {
	if config.Number != 1 {
		return nil, ErrBadControllerNumber
	}
	slot := config.Number - 1

	theFactory.mu.Lock()
	if theFactory.alive[slot] {
		theFactory.mu.Unlock()
		return nil, ErrControllerInUse
	}
	theFactory.alive[slot] = true
	theFactory.mu.Unlock()

	rec := opts.Metrics
	if rec == nil {
		rec = metrics.Noop{}
	}

	c, err := newController(config, opts.RegisterFile, opts.Platform, opts.Services, newControllerOptions{
		onStatusChange: opts.OnStatusChange,
		metrics:        rec,
	})
	if err != nil {
		theFactory.mu.Lock()
		theFactory.alive[slot] = false
		theFactory.mu.Unlock()
		logging.L().Error("bxcan_create_failed", "number", config.Number, "error", err)
		return nil, err
	}
	logging.L().Info("bxcan_create", "number", config.Number, "bitrate", config.BitRate, "samplepoint", config.SamplePoint)

	c.onClose = func() {
		theFactory.mu.Lock()
		theFactory.alive[slot] = false
		theFactory.mu.Unlock()
	}
	return c, nil
}
