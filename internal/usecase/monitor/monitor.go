// Package monitor watches how much of the remote document quota the
// ledger occupies. Purely observational; a probe failure changes
// nothing except the reported status.
package monitor

import (
	"context"
	"log"
	"sync"
	"time"

	"lendingbook/internal/domain/ledger"
)

type Usage struct {
	UsedBytes   int64     `json:"used_bytes"`
	QuotaBytes  int64     `json:"quota_bytes"`
	PercentFree float64   `json:"percent_free"`
	CheckedAt   time.Time `json:"checked_at"`
}

type Monitor struct {
	remote ledger.RemoteStore
	quota  int64

	mu   sync.RWMutex
	last Usage
	ok   bool
}

func New(remote ledger.RemoteStore, quotaBytes int64) *Monitor {
	return &Monitor{remote: remote, quota: quotaBytes}
}

// Check probes the remote document size once and records the result.
func (m *Monitor) Check(ctx context.Context) (Usage, error) {
	used, err := m.remote.Usage(ctx)
	if err != nil {
		return Usage{}, err
	}
	free := 100 * (1 - float64(used)/float64(m.quota))
	if free < 0 {
		free = 0
	}
	u := Usage{
		UsedBytes:   used,
		QuotaBytes:  m.quota,
		PercentFree: free,
		CheckedAt:   time.Now().UTC(),
	}
	m.mu.Lock()
	m.last, m.ok = u, true
	m.mu.Unlock()
	return u, nil
}

// Last returns the most recent successful probe, if any.
func (m *Monitor) Last() (Usage, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last, m.ok
}

// Run probes on a fixed interval until ctx is done.
func (m *Monitor) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if _, err := m.Check(ctx); err != nil {
				log.Printf("monitor: cannot check remote usage: %v", err)
			}
		}
	}
}
