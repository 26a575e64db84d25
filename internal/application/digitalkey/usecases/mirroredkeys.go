package usecases

import (
	"context"

	"keygate/internal/domain/mirror"
	"keygate/internal/shared/logger"
)

type ListMirroredKeysUseCase struct {
	mirror mirror.Store
	logger logger.Interface
}

func NewListMirroredKeysUseCase(store mirror.Store, logger logger.Interface) *ListMirroredKeysUseCase {
	return &ListMirroredKeysUseCase{mirror: store, logger: logger}
}

// Execute returns every key snapshot, skipping files that do not decode.
func (uc *ListMirroredKeysUseCase) Execute(ctx context.Context) []*mirror.KeyRecord {
	snapshots := uc.mirror.ListAll(ctx, mirror.BucketDigitalKeys)

	records := make([]*mirror.KeyRecord, 0, len(snapshots))
	for _, s := range snapshots {
		var rec mirror.KeyRecord
		if err := s.Decode(&rec); err != nil {
			uc.logger.Warnw("skipping undecodable key snapshot", "path", s.Path, "error", err)
			continue
		}
		records = append(records, &rec)
	}
	return records
}

type DownloadMirroredKeyUseCase struct {
	mirror mirror.Store
	logger logger.Interface
}

func NewDownloadMirroredKeyUseCase(store mirror.Store, logger logger.Interface) *DownloadMirroredKeyUseCase {
	return &DownloadMirroredKeyUseCase{mirror: store, logger: logger}
}

// Execute reads the snapshot addressed by id and the key name it was
// written under.
func (uc *DownloadMirroredKeyUseCase) Execute(ctx context.Context, id uint, name string) (*mirror.KeyRecord, error) {
	snapshot, ok := uc.mirror.Read(ctx, mirror.BucketDigitalKeys, id, name)
	if !ok {
		return nil, mirror.ErrSnapshotNotFound
	}

	var rec mirror.KeyRecord
	if err := snapshot.Decode(&rec); err != nil {
		uc.logger.Warnw("undecodable key snapshot", "id", id, "key_name", name, "error", err)
		return nil, mirror.ErrSnapshotNotFound
	}
	return &rec, nil
}
