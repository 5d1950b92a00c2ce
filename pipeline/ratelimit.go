package pipeline

import (
	"context"
	"net"
	"strings"
	"sync"

	"github.com/fwojciec/harvest"
	"golang.org/x/time/rate"
)

var _ harvest.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces out page loads per source host. Keys are the values
// of Source.Host(); case and any port are ignored, so "Example.com:443" and
// "example.com" share one bucket. Each bucket has a burst of 1.
type DomainLimiter struct {
	rps float64

	mu    sync.Mutex
	hosts map[string]*rate.Limiter
}

// NewDomainLimiter returns a limiter allowing rps loads per second per host.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{rps: rps, hosts: make(map[string]*rate.Limiter)}
}

// Wait blocks until host may be loaded again or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	return d.limiterFor(host).Wait(ctx)
}

func (d *DomainLimiter) limiterFor(host string) *rate.Limiter {
	key := hostKey(host)

	d.mu.Lock()
	defer d.mu.Unlock()
	l, ok := d.hosts[key]
	if !ok {
		l = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.hosts[key] = l
	}
	return l
}

func hostKey(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.ToLower(host)
}
