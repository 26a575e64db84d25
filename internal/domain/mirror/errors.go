package mirror

import "errors"

var ErrSnapshotNotFound = errors.New("mirror snapshot not found")
