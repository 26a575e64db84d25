// Package mirror defines the backup store that keeps a denormalized snapshot
// of every digital key and permission. The store is not transactional with
// the entity store; callers treat every failure as non-fatal.
package mirror

import (
	"encoding/json"
	"fmt"
	"time"
)

// Bucket names a logical group of snapshots.
type Bucket string

const (
	BucketDigitalKeys Bucket = "digital-keys"
	BucketPermissions Bucket = "permissions"
)

func (b Bucket) IsValid() bool {
	return b == BucketDigitalKeys || b == BucketPermissions
}

func (b Bucket) String() string {
	return string(b)
}

// ParseBucket accepts the canonical bucket names.
func ParseBucket(s string) (Bucket, error) {
	b := Bucket(s)
	if !b.IsValid() {
		return "", fmt.Errorf("unknown mirror bucket %q", s)
	}
	return b, nil
}

// Address returns the snapshot address within a bucket: {id}_{name} for
// keys and perm_{id} for permissions.
func Address(bucket Bucket, id uint, name string) string {
	if bucket == BucketPermissions {
		return fmt.Sprintf("perm_%d", id)
	}
	return fmt.Sprintf("%d_%s", id, name)
}

// Snapshot is one stored record as read back from the store.
type Snapshot struct {
	ID   uint            `json:"id"`
	Name string          `json:"name,omitempty"`
	Path string          `json:"file_path"`
	Data json.RawMessage `json:"data"`
}

// Decode unmarshals the snapshot payload into v.
func (s *Snapshot) Decode(v any) error {
	return json.Unmarshal(s.Data, v)
}

// Index lists what the store believes it holds. It is advisory: reads and
// deletes never consult it.
type Index struct {
	Entries []IndexEntry `json:"entries" yaml:"entries"`
}

type IndexEntry struct {
	ID        uint      `json:"id" yaml:"id"`
	Name      string    `json:"name,omitempty" yaml:"name,omitempty"`
	FilePath  string    `json:"file_path" yaml:"file_path"`
	IndexedAt time.Time `json:"indexed_at" yaml:"indexed_at"`
	// Checksum is the hex BLAKE3 digest of the snapshot bytes.
	Checksum string `json:"checksum" yaml:"checksum"`
}
