package monitor

import (
	"context"
	"log/slog"
	"time"
)

// DefaultRefreshRate is how many times per second a Poller samples by
// default.
const DefaultRefreshRate = 30

type (
	// Poller samples a Source on a ticker and forwards changed readouts to a
	// Sink. It never waits on the sink: a readout the sink cannot take is
	// dropped and the next tick tries again.
	Poller struct {
		src       Source
		sink      Sink
		interval  time.Duration
		threshold float64
		logger    *slog.Logger

		last    Readout
		hasLast bool
	}

	// Option configures a Poller.
	Option func(p *Poller)
)

// RefreshRate sets the sampling rate in Hz. Non-positive rates are ignored.
func RefreshRate(hz float64) Option {
	return func(p *Poller) {
		if hz > 0 {
			p.interval = time.Duration(float64(time.Second) / hz)
		}
	}
}

// Threshold sets the smallest deviation, in ms, that is shown.
func Threshold(ms float64) Option {
	return func(p *Poller) {
		if ms >= 0 {
			p.threshold = ms
		}
	}
}

// Logger sets the logger; by default slog.Default() is used.
func Logger(l *slog.Logger) Option {
	return func(p *Poller) {
		if l != nil {
			p.logger = l
		}
	}
}

func NewPoller(src Source, sink Sink, opts ...Option) *Poller {
	p := &Poller{
		src:       src,
		sink:      sink,
		interval:  time.Second / DefaultRefreshRate,
		threshold: DefaultThreshold,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Poll samples the source once and forwards the readout if it differs from
// the last one delivered. It returns true if something was delivered.
func (p *Poller) Poll() bool {
	_, delivered := p.poll()
	return delivered
}

func (p *Poller) poll() (changed, delivered bool) {
	r := Sample(p.src, p.threshold)
	if p.hasLast && r.SameText(p.last) {
		return false, false
	}
	if !p.sink.Show(r) {
		return true, false
	}
	p.last, p.hasLast = r, true
	return true, true
}

// Run polls until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	p.logger.Debug("poller started", "interval", p.interval, "threshold_ms", p.threshold)
	dropped := 0
	p.poll()
	for {
		select {
		case <-ctx.Done():
			p.logger.Debug("poller stopped", "dropped", dropped)
			return
		case <-ticker.C:
			if changed, delivered := p.poll(); changed && !delivered {
				dropped++
			}
		}
	}
}
