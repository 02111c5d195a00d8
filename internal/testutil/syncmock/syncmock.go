// Package syncmock provides function-backed fakes for the snapshot
// cache and the remote document store. Set only the fields a test needs.
package syncmock

import (
	"context"

	"lendingbook/internal/domain/ledger"
)

type Cache struct {
	LoadFn func(ctx context.Context) (*ledger.Ledger, bool, error)
	SaveFn func(ctx context.Context, l *ledger.Ledger) error

	// Bookkeeping filled in by the default implementations.
	Saves     int
	LastSaved *ledger.Ledger
}

func (m *Cache) Load(ctx context.Context) (*ledger.Ledger, bool, error) {
	if m.LoadFn != nil {
		return m.LoadFn(ctx)
	}
	return nil, false, nil
}

func (m *Cache) Save(ctx context.Context, l *ledger.Ledger) error {
	m.Saves++
	m.LastSaved = l.Clone()
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

type Remote struct {
	FetchFn func(ctx context.Context) (*ledger.Ledger, error)
	PushFn  func(ctx context.Context, l *ledger.Ledger) error
	UsageFn func(ctx context.Context) (int64, error)

	Pushes     int
	LastPushed *ledger.Ledger
}

func (m *Remote) Fetch(ctx context.Context) (*ledger.Ledger, error) {
	if m.FetchFn != nil {
		return m.FetchFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Remote) Push(ctx context.Context, l *ledger.Ledger) error {
	m.Pushes++
	m.LastPushed = l.Clone()
	if m.PushFn != nil {
		return m.PushFn(ctx, l)
	}
	return nil
}

func (m *Remote) Usage(ctx context.Context) (int64, error) {
	if m.UsageFn != nil {
		return m.UsageFn(ctx)
	}
	return 0, context.Canceled
}
