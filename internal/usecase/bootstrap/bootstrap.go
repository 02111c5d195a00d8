// Package bootstrap picks the snapshot source that becomes the live
// ledger, once per process start: remote first, then the local cache,
// then the built-in default. After that nothing re-fetches; every
// later change flows through the save path only.
package bootstrap

import (
	"context"
	"log"

	"lendingbook/internal/domain/ledger"
)

type Source string

const (
	SourceRemote  Source = "remote"
	SourceCache   Source = "cache"
	SourceDefault Source = "default"
)

// Run returns the ledger to install and where it came from. It never
// fails: the worst case is running local-only on the default ledger.
func Run(ctx context.Context, remote ledger.RemoteStore, cache ledger.SnapshotCache) (*ledger.Ledger, Source) {
	l, err := remote.Fetch(ctx)
	if err == nil {
		// Mirror the fetched document locally right away so a later
		// offline start sees the same state.
		if err := cache.Save(ctx, l); err != nil {
			log.Printf("bootstrap: could not mirror remote snapshot locally: %v", err)
		}
		return l, SourceRemote
	}
	log.Printf("bootstrap: remote fetch failed, using local data only: %v", err)

	l, ok, err := cache.Load(ctx)
	if err != nil {
		log.Printf("bootstrap: local snapshot unreadable, starting fresh: %v", err)
	}
	if ok && err == nil {
		return l, SourceCache
	}
	return ledger.Default(), SourceDefault
}
