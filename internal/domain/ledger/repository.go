package ledger

import "context"

// SnapshotCache is the host-local durable slot holding the last full
// serialization of the ledger. Absence is an expected outcome on first
// run, not an error.
type SnapshotCache interface {
	Load(ctx context.Context) (*Ledger, bool, error)
	Save(ctx context.Context, l *Ledger) error
}

// RemoteStore performs whole-document get/put against the remote
// document endpoint. Every failure is returned to the caller, who is
// expected to swallow it; nothing retries or queues.
type RemoteStore interface {
	Fetch(ctx context.Context) (*Ledger, error)
	Push(ctx context.Context, l *Ledger) error
	// Usage reports the serialized size of the stored document in bytes.
	Usage(ctx context.Context) (int64, error)
}
