package mirror

import "context"

// Store persists snapshots. Failures are reported as false, nil or empty
// results and are logged by the implementation; callers never fail a
// primary mutation because of them.
type Store interface {
	// Write overwrites the snapshot at the record's address and upserts the
	// bucket index entry.
	Write(ctx context.Context, bucket Bucket, id uint, name string, rec Record) bool
	// Read checks the snapshot file directly, never the index.
	Read(ctx context.Context, bucket Bucket, id uint, name string) (*Snapshot, bool)
	// Delete reports false when there was nothing to delete.
	Delete(ctx context.Context, bucket Bucket, id uint, name string) bool
	// ListAll returns every snapshot in the bucket in no particular order.
	ListAll(ctx context.Context, bucket Bucket) []*Snapshot
	Index(ctx context.Context, bucket Bucket) *Index
}
