package usecases

import (
	"context"

	"keygate/internal/domain/mirror"
	"keygate/internal/shared/logger"
)

// ListMirroredPermissionsUseCase returns every permission snapshot.
type ListMirroredPermissionsUseCase struct {
	mirror mirror.Store
	logger logger.Interface
}

func NewListMirroredPermissionsUseCase(store mirror.Store, logger logger.Interface) *ListMirroredPermissionsUseCase {
	return &ListMirroredPermissionsUseCase{mirror: store, logger: logger}
}

// Execute skips snapshots that do not decode.
func (uc *ListMirroredPermissionsUseCase) Execute(ctx context.Context) []*mirror.PermissionRecord {
	snapshots := uc.mirror.ListAll(ctx, mirror.BucketPermissions)

	records := make([]*mirror.PermissionRecord, 0, len(snapshots))
	for _, s := range snapshots {
		var rec mirror.PermissionRecord
		if err := s.Decode(&rec); err != nil {
			uc.logger.Warnw("skipping undecodable permission snapshot", "path", s.Path, "error", err)
			continue
		}
		records = append(records, &rec)
	}
	return records
}

type DownloadMirroredPermissionUseCase struct {
	mirror mirror.Store
	logger logger.Interface
}

func NewDownloadMirroredPermissionUseCase(store mirror.Store, logger logger.Interface) *DownloadMirroredPermissionUseCase {
	return &DownloadMirroredPermissionUseCase{mirror: store, logger: logger}
}

func (uc *DownloadMirroredPermissionUseCase) Execute(ctx context.Context, id uint) (*mirror.PermissionRecord, error) {
	snapshot, ok := uc.mirror.Read(ctx, mirror.BucketPermissions, id, "")
	if !ok {
		return nil, mirror.ErrSnapshotNotFound
	}

	var rec mirror.PermissionRecord
	if err := snapshot.Decode(&rec); err != nil {
		uc.logger.Warnw("undecodable permission snapshot", "id", id, "error", err)
		return nil, mirror.ErrSnapshotNotFound
	}
	return &rec, nil
}
