// Package metrics records CAN controller activity for observability,
// grounded on the Prometheus wiring used elsewhere in this codebase's
// ancestry for tallying frame counters per transport.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fifo identifies a hardware RX FIFO for the purposes of labeling metrics.
// It mirrors bxcan.RxFifo's values without importing the bxcan package,
// which would otherwise create an import cycle (bxcan depends on metrics,
// not the other way around).
type Fifo int

const (
	Fifo0 Fifo = iota
	Fifo1
)

func (f Fifo) String() string {
	if f == Fifo1 {
		return "1"
	}
	return "0"
}

// Recorder is the metrics sink a Controller reports activity to. Every
// method must be safe to call from an interrupt handler and must never
// block.
type Recorder interface {
	// TxFrame records one frame accepted into a TX mailbox.
	TxFrame()
	// TxError records one mailbox completing with TXOK clear (arbitration
	// loss or transmission error).
	TxError()
	// RxFrame records one frame admitted into a receive FIFO's software
	// queue.
	RxFrame(fifo Fifo)
	// RxDropped records one frame discarded by the overflow policy instead
	// of being admitted.
	RxDropped(fifo Fifo)
}

// Noop discards everything. It is the default Recorder when a caller does
// not supply one.
type Noop struct{}

func (Noop) TxFrame()       {}
func (Noop) TxError()       {}
func (Noop) RxFrame(Fifo)   {}
func (Noop) RxDropped(Fifo) {}

// Prometheus records controller activity as Prometheus counters. Construct
// one per controller instance and pass it to bxcan.Create through
// CreateOptions.Metrics. NewPrometheus registers its counters with the
// default registry, so calling it twice with the same namespace panics on
// duplicate collector registration, matching promauto's own behavior.
type Prometheus struct {
	txFrames  prometheus.Counter
	txErrors  prometheus.Counter
	rxFrames  *prometheus.CounterVec
	rxDropped *prometheus.CounterVec
}

// NewPrometheus registers a fresh set of counters under the given
// namespace (e.g. "can0") and returns a Recorder backed by them.
func NewPrometheus(namespace string) *Prometheus {
	return &Prometheus{
		txFrames: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tx_frames_total",
			Help:      "Total CAN frames accepted into a TX mailbox.",
		}),
		txErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tx_errors_total",
			Help:      "Total TX mailbox completions with TXOK clear.",
		}),
		rxFrames: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rx_frames_total",
			Help:      "Total CAN frames admitted into a receive FIFO.",
		}, []string{"fifo"}),
		rxDropped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rx_dropped_total",
			Help:      "Total CAN frames discarded by the receive overflow policy.",
		}, []string{"fifo"}),
	}
}

func (p *Prometheus) TxFrame()            { p.txFrames.Inc() }
func (p *Prometheus) TxError()            { p.txErrors.Inc() }
func (p *Prometheus) RxFrame(fifo Fifo)   { p.rxFrames.WithLabelValues(fifo.String()).Inc() }
func (p *Prometheus) RxDropped(fifo Fifo) { p.rxDropped.WithLabelValues(fifo.String()).Inc() }
