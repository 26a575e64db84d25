// Package mirrorstore implements the snapshot store on the local filesystem.
// Each bucket is a directory under the configured root holding one JSON
// file per snapshot plus an advisory index.json.
package mirrorstore

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/zeebo/blake3"

	"keygate/internal/domain/mirror"
	"keygate/internal/shared/config"
	"keygate/internal/shared/logger"
)

const (
	indexFileName = "index.json"
	snapshotExt   = ".json"
)

// FileStore implements mirror.Store. Snapshot writes are atomic (temp file
// and rename). Index read-modify-write is serialized per bucket within the
// process; other processes writing the same root can still drift the
// index, which is tolerated because reads never consult it.
type FileStore struct {
	root   string
	dirs   map[mirror.Bucket]string
	locks  map[mirror.Bucket]*sync.Mutex
	logger logger.Interface
	now    func() time.Time
}

var _ mirror.Store = (*FileStore)(nil)

func NewFileStore(cfg config.MirrorConfig, log logger.Interface) *FileStore {
	keys := cfg.KeysBucket
	if keys == "" {
		keys = mirror.BucketDigitalKeys.String()
	}
	perms := cfg.PermissionsBucket
	if perms == "" {
		perms = mirror.BucketPermissions.String()
	}

	return &FileStore{
		root: cfg.Root,
		dirs: map[mirror.Bucket]string{
			mirror.BucketDigitalKeys: keys,
			mirror.BucketPermissions: perms,
		},
		locks: map[mirror.Bucket]*sync.Mutex{
			mirror.BucketDigitalKeys: {},
			mirror.BucketPermissions: {},
		},
		logger: log,
		now:    time.Now,
	}
}

// Write stamps rec, stores it at its address and upserts the index entry.
// A failed index update is logged and does not fail the write.
func (s *FileStore) Write(ctx context.Context, bucket mirror.Bucket, id uint, name string, rec mirror.Record) bool {
	if err := ctx.Err(); err != nil {
		s.logger.Warnw("mirror write skipped", "bucket", bucket, "id", id, "error", err)
		return false
	}
	dir, ok := s.bucketDir(bucket)
	if !ok {
		return false
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.logger.Warnw("failed to create mirror bucket", "bucket", bucket, "error", err)
		return false
	}

	at := s.now().UTC()
	rec.Stamp(at)
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		s.logger.Warnw("failed to encode mirror snapshot", "bucket", bucket, "id", id, "error", err)
		return false
	}

	file, ok := s.snapshotFile(bucket, id, name)
	if !ok {
		return false
	}

	mu := s.locks[bucket]
	mu.Lock()
	defer mu.Unlock()

	if err := writeAtomic(dir, filepath.Join(dir, file), data); err != nil {
		s.logger.Warnw("failed to write mirror snapshot", "bucket", bucket, "id", id, "error", err)
		return false
	}

	entry := mirror.IndexEntry{
		ID:        id,
		Name:      s.entryName(bucket, name),
		FilePath:  s.relPath(bucket, file),
		IndexedAt: at,
		Checksum:  checksum(data),
	}
	if err := s.updateIndex(dir, func(idx *mirror.Index) { upsertEntry(idx, entry) }); err != nil {
		s.logger.Warnw("failed to update mirror index", "bucket", bucket, "id", id, "error", err)
	}

	s.logger.Debugw("mirror snapshot written", "bucket", bucket, "id", id, "path", entry.FilePath)
	return true
}

// Read returns the snapshot at the address if its file exists.
func (s *FileStore) Read(ctx context.Context, bucket mirror.Bucket, id uint, name string) (*mirror.Snapshot, bool) {
	dir, ok := s.bucketDir(bucket)
	if !ok {
		return nil, false
	}

	file, ok := s.snapshotFile(bucket, id, name)
	if !ok {
		return nil, false
	}
	data, err := os.ReadFile(filepath.Join(dir, file))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debugw("mirror snapshot not found", "bucket", bucket, "id", id, "name", name)
		} else {
			s.logger.Warnw("failed to read mirror snapshot", "bucket", bucket, "id", id, "error", err)
		}
		return nil, false
	}

	return &mirror.Snapshot{
		ID:   id,
		Name: s.entryName(bucket, name),
		Path: s.relPath(bucket, file),
		Data: data,
	}, true
}

// Delete removes the snapshot file and its index entry. It reports false
// when the file did not exist.
func (s *FileStore) Delete(ctx context.Context, bucket mirror.Bucket, id uint, name string) bool {
	dir, ok := s.bucketDir(bucket)
	if !ok {
		return false
	}

	file, ok := s.snapshotFile(bucket, id, name)
	if !ok {
		return false
	}

	mu := s.locks[bucket]
	mu.Lock()
	defer mu.Unlock()

	if err := os.Remove(filepath.Join(dir, file)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Infow("mirror snapshot already absent", "bucket", bucket, "id", id, "name", name)
		} else {
			s.logger.Warnw("failed to delete mirror snapshot", "bucket", bucket, "id", id, "error", err)
		}
		return false
	}

	entryName := s.entryName(bucket, name)
	if err := s.updateIndex(dir, func(idx *mirror.Index) { removeEntry(idx, id, entryName) }); err != nil {
		s.logger.Warnw("failed to update mirror index", "bucket", bucket, "id", id, "error", err)
	}

	s.logger.Debugw("mirror snapshot deleted", "bucket", bucket, "id", id)
	return true
}

// ListAll reads every snapshot file in the bucket. Unreadable files are
// logged and skipped.
func (s *FileStore) ListAll(ctx context.Context, bucket mirror.Bucket) []*mirror.Snapshot {
	dir, ok := s.bucketDir(bucket)
	if !ok {
		return []*mirror.Snapshot{}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warnw("failed to list mirror bucket", "bucket", bucket, "error", err)
		}
		return []*mirror.Snapshot{}
	}

	snapshots := make([]*mirror.Snapshot, 0, len(entries))
	for _, e := range entries {
		if ctx.Err() != nil {
			break
		}
		if e.IsDir() || e.Name() == indexFileName || !strings.HasSuffix(e.Name(), snapshotExt) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			s.logger.Warnw("failed to read mirror snapshot", "bucket", bucket, "file", e.Name(), "error", err)
			continue
		}

		var header struct {
			ID      uint   `json:"id"`
			KeyName string `json:"key_name"`
		}
		if err := json.Unmarshal(data, &header); err != nil {
			s.logger.Warnw("skipping malformed mirror snapshot", "bucket", bucket, "file", e.Name(), "error", err)
			continue
		}

		snapshots = append(snapshots, &mirror.Snapshot{
			ID:   header.ID,
			Name: s.entryName(bucket, header.KeyName),
			Path: s.relPath(bucket, e.Name()),
			Data: data,
		})
	}
	return snapshots
}

// Index returns the bucket's advisory index; an absent or unreadable
// index is reported as empty.
func (s *FileStore) Index(ctx context.Context, bucket mirror.Bucket) *mirror.Index {
	dir, ok := s.bucketDir(bucket)
	if !ok {
		return &mirror.Index{Entries: []mirror.IndexEntry{}}
	}

	idx, err := readIndex(dir)
	if err != nil {
		s.logger.Warnw("failed to read mirror index", "bucket", bucket, "error", err)
		return &mirror.Index{Entries: []mirror.IndexEntry{}}
	}
	return idx
}

func (s *FileStore) bucketDir(bucket mirror.Bucket) (string, bool) {
	name, ok := s.dirs[bucket]
	if !ok {
		s.logger.Warnw("unknown mirror bucket", "bucket", bucket)
		return "", false
	}
	return filepath.Join(s.root, name), true
}

// snapshotFile resolves the file name for an address. Addresses that would
// leave the bucket directory are refused.
func (s *FileStore) snapshotFile(bucket mirror.Bucket, id uint, name string) (string, bool) {
	file := mirror.Address(bucket, id, name) + snapshotExt
	if !filepath.IsLocal(file) || filepath.Base(file) != file {
		s.logger.Warnw("mirror address escapes bucket", "bucket", bucket, "id", id, "name", name)
		return "", false
	}
	return file, true
}

func (s *FileStore) relPath(bucket mirror.Bucket, file string) string {
	return path.Join(s.dirs[bucket], file)
}

// entryName drops the name for buckets whose address does not use it.
func (s *FileStore) entryName(bucket mirror.Bucket, name string) string {
	if bucket == mirror.BucketPermissions {
		return ""
	}
	return name
}

// updateIndex must be called with the bucket lock held.
func (s *FileStore) updateIndex(dir string, mutate func(*mirror.Index)) error {
	idx, err := readIndex(dir)
	if err != nil {
		// Rebuild from scratch rather than keep a corrupt index.
		s.logger.Warnw("discarding unreadable mirror index", "dir", dir, "error", err)
		idx = &mirror.Index{Entries: []mirror.IndexEntry{}}
	}

	mutate(idx)

	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}
	return writeAtomic(dir, filepath.Join(dir, indexFileName), data)
}

func readIndex(dir string) (*mirror.Index, error) {
	data, err := os.ReadFile(filepath.Join(dir, indexFileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &mirror.Index{Entries: []mirror.IndexEntry{}}, nil
		}
		return nil, fmt.Errorf("reading index: %w", err)
	}

	var idx mirror.Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("decoding index: %w", err)
	}
	if idx.Entries == nil {
		idx.Entries = []mirror.IndexEntry{}
	}
	return &idx, nil
}

func upsertEntry(idx *mirror.Index, entry mirror.IndexEntry) {
	for i := range idx.Entries {
		if idx.Entries[i].ID == entry.ID && idx.Entries[i].Name == entry.Name {
			idx.Entries[i] = entry
			return
		}
	}
	idx.Entries = append(idx.Entries, entry)
}

func removeEntry(idx *mirror.Index, id uint, name string) {
	kept := idx.Entries[:0]
	for _, e := range idx.Entries {
		if e.ID == id && e.Name == name {
			continue
		}
		kept = append(kept, e)
	}
	idx.Entries = kept
}

func writeAtomic(dir, finalPath string, data []byte) error {
	tmpFile, err := os.CreateTemp(dir, ".mirror-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	success = true
	return nil
}

func checksum(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
